package engine

import (
	"errors"

	"github.com/RastislavKish/Chinfusor/internal/config"
	"github.com/RastislavKish/Chinfusor/internal/protocol"
	"github.com/charmbracelet/log"
)

// Pool is the set of running engines, indexed like the alphabet table.
type Pool struct {
	handles []*Handle
}

// NewPool starts one engine per configuration. If any engine fails to start
// the ones already running are killed and the error is returned.
func NewPool(engines []config.SpeechEngineConfiguration, launcher Launcher, readers *ReaderPool) (*Pool, error) {
	p := &Pool{handles: make([]*Handle, 0, len(engines))}
	for _, e := range engines {
		cmd, err := launcher.Command(e.Module, e.Arg, e.Sandboxed)
		if err == nil {
			var h *Handle
			h, err = Start(e.Name, cmd, readers)
			if err == nil {
				p.handles = append(p.handles, h)
				continue
			}
		}

		for _, h := range p.handles {
			h.kill()
		}
		return nil, err
	}
	return p, nil
}

// Len returns the number of engines.
func (p *Pool) Len() int {
	return len(p.handles)
}

// At returns the engine at index i.
func (p *Pool) At(i int) Conn {
	return p.handles[i]
}

// Quit sends QUIT to every engine. Every engine is tried even if some
// writes fail.
func (p *Pool) Quit() error {
	var errs []error
	for _, h := range p.handles {
		if err := h.WriteLine(protocol.DirectiveQuit); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Wait waits for every engine to exit.
func (p *Pool) Wait() error {
	var errs []error
	for _, h := range p.handles {
		if err := h.Wait(); err != nil {
			log.Debug("Engine exited", "engine", h.Name(), "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
