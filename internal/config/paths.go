package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
)

// AppName names the configuration directory.
const AppName = "chinfusor"

// File names inside the configuration directory.
const (
	AlphabetsFileName = "alphabets_settings.csv"
	SettingsFileName  = "settings.conf"
	OptionsFileName   = "sd_chinfusor.yml"
)

// Paths locates the configuration files.
type Paths struct {
	Dir string
}

// NewPaths returns the paths rooted at dir. A leading ~ is expanded.
func NewPaths(dir string) (Paths, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return Paths{}, fmt.Errorf("unable to expand %q: %w", dir, err)
	}
	return Paths{Dir: expanded}, nil
}

// DefaultPaths resolves the configuration directory from CHINFUSOR_CONFIG_HOME,
// then XDG_CONFIG_HOME, then the platform default (~/.config/chinfusor on
// Linux).
func DefaultPaths() (Paths, error) {
	if c := os.Getenv("CHINFUSOR_CONFIG_HOME"); c != "" {
		return NewPaths(c)
	}
	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		return NewPaths(filepath.Join(c, AppName))
	}

	dirs, err := gap.NewScope(gap.User, AppName).ConfigDirs()
	if err != nil {
		return Paths{}, fmt.Errorf("unable to find configuration directory: %w", err)
	}
	if len(dirs) == 0 {
		return Paths{}, errors.New("unable to find configuration directory")
	}
	return Paths{Dir: dirs[0]}, nil
}

// Alphabets returns the path of the alphabets table.
func (p Paths) Alphabets() string {
	return filepath.Join(p.Dir, AlphabetsFileName)
}

// Settings returns the path of the settings file.
func (p Paths) Settings() string {
	return filepath.Join(p.Dir, SettingsFileName)
}

// Options returns the path of the runtime options file.
func (p Paths) Options() string {
	return filepath.Join(p.Dir, OptionsFileName)
}
