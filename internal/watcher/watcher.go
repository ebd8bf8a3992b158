// Package watcher reports changes to the chinfusor configuration files.
package watcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/RastislavKish/Chinfusor/internal/config"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Kind tells which configuration file changed.
type Kind int

const (
	// AlphabetsChanged means the alphabets table was written.
	AlphabetsChanged Kind = iota + 1
	// SettingsChanged means the settings file was written.
	SettingsChanged
)

func (k Kind) String() string {
	switch k {
	case AlphabetsChanged:
		return "alphabets"
	case SettingsChanged:
		return "settings"
	default:
		return "unknown"
	}
}

// Change is a write to a configuration file.
type Change struct {
	Kind Kind
	Path string
}

// Classify maps a file path to the configuration file it names.
func Classify(path string) (Kind, bool) {
	switch {
	case strings.HasSuffix(path, config.AlphabetsFileName):
		return AlphabetsChanged, true
	case strings.HasSuffix(path, config.SettingsFileName):
		return SettingsChanged, true
	default:
		return 0, false
	}
}

// Watcher watches the configuration directory.
type Watcher struct {
	fs  *fsnotify.Watcher
	dir string
}

// New starts watching dir. The directory must exist.
func New(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("unable to watch %s: %w", dir, err)
	}
	log.Debug("Watching configuration", "dir", dir)
	return &Watcher{fs: fw, dir: dir}, nil
}

// Run sends a Change for every write or creation of a configuration file
// until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, out chan<- Change) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			kind, ok := Classify(event.Name)
			if !ok {
				continue
			}

			log.Debug("Configuration changed", "file", event.Name, "event", event.Op)
			select {
			case out <- Change{Kind: kind, Path: event.Name}:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Debug("fsnotify error", "dir", w.dir, "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
