// Package orchestrator drives the engines: it splits utterances into
// chunks, hands each chunk to the engine of its alphabet, relays engine
// events to the host, and restarts engines when the alphabet table changes.
package orchestrator

import (
	"context"
	"fmt"
	"unicode"

	"github.com/RastislavKish/Chinfusor/internal/alphabet"
	"github.com/RastislavKish/Chinfusor/internal/config"
	"github.com/RastislavKish/Chinfusor/internal/engine"
	"github.com/RastislavKish/Chinfusor/internal/protocol"
	"github.com/RastislavKish/Chinfusor/internal/watcher"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Engines is the set of running engines, indexed like Config.Engines.
type Engines interface {
	Len() int
	At(i int) engine.Conn
	Quit() error
	Wait() error
}

// Builder starts one engine per configuration.
type Builder func(engines []config.SpeechEngineConfiguration) (Engines, error)

// Orchestrator owns the engines and the playback state. All of its methods
// must be called from a single goroutine.
type Orchestrator struct {
	cfg     *config.Config
	build   Builder
	out     *protocol.Writer
	engines Engines
	scheme  alphabet.Scheme
	state   PlaybackState

	// Paths of configuration files changed while speaking.
	pendingAlphabets string
	pendingSettings  string
}

// New starts the configured engines.
func New(cfg *config.Config, build Builder, out *protocol.Writer) (*Orchestrator, error) {
	engines, err := build(cfg.Engines)
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		cfg:     cfg,
		build:   build,
		out:     out,
		engines: engines,
		scheme:  cfg.Scheme(),
		state:   PlaybackState{OriginalPitch: cfg.Fallback().Pitch},
	}, nil
}

// State returns a copy of the playback state.
func (o *Orchestrator) State() PlaybackState {
	return o.state
}

// Run processes host commands, configuration changes and engine output
// until the host quits, the command stream ends, or ctx is done. Engines
// are shut down before Run returns.
func (o *Orchestrator) Run(ctx context.Context, cmds <-chan protocol.Command, changes <-chan watcher.Change) error {
	for {
		if !o.state.Speaking() {
			if err := o.applyPending(); err != nil {
				return err
			}
		}

		var lines <-chan string
		if o.state.Speaking() {
			lines = o.current().Lines()
		}

		select {
		case <-ctx.Done():
			log.Debug("Shutting down", "reason", ctx.Err())
			o.shutdown()
			return nil

		case cmd, ok := <-cmds:
			if !ok {
				log.Debug("Command stream closed, shutting down")
				o.shutdown()
				return nil
			}
			quit, err := o.Handle(ctx, cmd)
			if err != nil {
				return err
			}
			if quit {
				o.wait()
				return nil
			}

		case c := <-changes:
			o.schedule(c)

		case line := <-lines:
			if err := o.handleEngineLine(line); err != nil {
				return err
			}
		}
	}
}

// Handle applies one host command. It reports true when the host asked to
// quit; the engines have then been told to exit but not waited for.
func (o *Orchestrator) Handle(ctx context.Context, cmd protocol.Command) (bool, error) {
	switch c := cmd.(type) {
	case protocol.Init:
		return false, o.broadcast(func(int) string { return protocol.DirectiveInit + "\n" })

	case protocol.Audio:
		o.state.Audio = &c
		return false, o.broadcast(func(i int) string {
			return c.EngineCommand() + protocol.VoiceSettings(o.cfg.Engines[i])
		})

	case protocol.LogLevel:
		o.state.LogLevel = &c
		return false, o.broadcast(func(int) string { return c.EngineCommand() })

	case protocol.Set:
		log.Debug("Ignoring SET, voices come from the alphabet table", "lines", len(c.Lines))
		return false, nil

	case protocol.Speak:
		return false, o.speak(c.Text)

	case protocol.Key:
		return false, o.key(c.Name)

	case protocol.Char:
		return false, o.char(c.Char)

	case protocol.Pause:
		return false, o.interrupt(ctx, protocol.DirectivePause, protocol.EventPause)

	case protocol.Stop:
		return false, o.interrupt(ctx, protocol.DirectiveStop, protocol.EventStop)

	case protocol.Quit:
		if err := o.engines.Quit(); err != nil {
			log.Debug("Unable to quit every engine", "err", err)
		}
		return true, o.out.Send(protocol.ReplyQuit)

	default:
		return false, fmt.Errorf("unknown command %T", cmd)
	}
}

func (o *Orchestrator) current() engine.Conn {
	return o.engines.At(o.state.CurrentEngine)
}

func (o *Orchestrator) broadcast(payload func(i int) string) error {
	for i, n := 0, o.engines.Len(); i < n; i++ {
		if err := o.engines.At(i).Write(payload(i)); err != nil {
			return err
		}
	}
	return nil
}

// begin marks an engine busy, tells the host and starts reading the
// engine's events.
func (o *Orchestrator) begin(idx int) error {
	o.state.State = StateSpeaking
	o.state.CurrentEngine = idx
	if err := o.out.Send(protocol.EventBegin); err != nil {
		return err
	}
	return o.current().ActivateAsyncRead()
}

func (o *Orchestrator) speak(text string) error {
	if o.state.Speaking() {
		log.Debug("Ignoring SPEAK while speaking", "state", o.state.State)
		return nil
	}

	text = protocol.StripSpeakWrapper(text)
	var chunks []alphabet.Chunk
	if text != "" {
		chunks = alphabet.Segment(text, o.scheme, o.cfg.Punctuation, true)
	}
	if len(chunks) == 0 {
		return o.out.Send(protocol.EventBegin, protocol.EventEnd)
	}

	o.state.utterance = uuid.NewString()
	o.state.Chunks = chunks
	o.state.Position = 0
	log.Debug("Speaking", "utterance", o.state.utterance, "chunks", len(chunks))

	first := chunks[0]
	if err := o.engines.At(first.Engine).Write(protocol.SpeakCommand(first.Text)); err != nil {
		return err
	}
	return o.begin(first.Engine)
}

func (o *Orchestrator) key(name string) error {
	if o.state.Speaking() {
		log.Debug("Ignoring KEY while speaking", "key", name)
		return nil
	}

	o.state.Chunks = nil
	o.state.Position = 0
	if err := o.engines.At(alphabet.Fallback).Write(protocol.KeyCommand(name)); err != nil {
		return err
	}
	return o.begin(alphabet.Fallback)
}

func (o *Orchestrator) char(r rune) error {
	if o.state.Speaking() {
		log.Debug("Ignoring CHAR while speaking", "char", string(r))
		return nil
	}

	idx := o.scheme.Classify(r)
	e := o.engines.At(idx)
	voice := o.cfg.Engines[idx]

	o.state.Chunks = nil
	o.state.Position = 0
	o.state.OriginalPitch = voice.Pitch
	if unicode.IsUpper(r) {
		if err := e.Write(protocol.PitchSettings(voice.CapitalsPitch)); err != nil {
			return err
		}
		o.state.Capitalized = true
	}

	if err := e.Write(protocol.CharCommand(r)); err != nil {
		return err
	}
	return o.begin(idx)
}

// interrupt forwards PAUSE or STOP to the speaking engine and blocks until
// it confirms with want or finishes with 702 END. Index marks arriving in
// between are relayed.
func (o *Orchestrator) interrupt(ctx context.Context, directive, want string) error {
	if !o.state.Speaking() {
		return nil
	}

	e := o.current()
	if err := e.WriteLine(directive); err != nil {
		return err
	}
	o.state.State = StatePausedOrStopping

	for {
		var line string
		select {
		case line = <-e.Lines():
		case <-ctx.Done():
			return ctx.Err()
		}

		switch {
		case line == want || line == protocol.EventEnd:
			if err := o.out.Send(line); err != nil {
				return err
			}
			log.Debug("Interrupted", "utterance", o.state.utterance, "event", line)
			return o.finish()
		case protocol.IsIndexMark(line):
			if err := o.out.Send(line); err != nil {
				return err
			}
		}
	}
}

// handleEngineLine reacts to output of the speaking engine.
func (o *Orchestrator) handleEngineLine(line string) error {
	switch {
	case protocol.IsIndexMark(line):
		return o.out.Send(line)

	case line == protocol.EventEnd:
		o.state.Position++
		if o.state.Position >= len(o.state.Chunks) {
			if err := o.finish(); err != nil {
				return err
			}
			return o.out.Send(protocol.EventEnd)
		}

		next := o.state.Chunks[o.state.Position]
		log.Debug("Next chunk", "utterance", o.state.utterance,
			"chunk", humanize.Ordinal(o.state.Position+1), "engine", o.cfg.Engines[next.Engine].Name)
		o.state.CurrentEngine = next.Engine
		if err := o.current().Write(protocol.SpeakCommand(next.Text)); err != nil {
			return err
		}
		return o.current().ActivateAsyncRead()
	}
	return nil
}

// finish returns to idle, restoring the pitch after a capital letter.
func (o *Orchestrator) finish() error {
	o.state.State = StateIdle
	o.state.Chunks = nil
	o.state.Position = 0
	if !o.state.Capitalized {
		return nil
	}
	o.state.Capitalized = false
	return o.current().Write(protocol.PitchSettings(o.state.OriginalPitch))
}

func (o *Orchestrator) schedule(c watcher.Change) {
	switch c.Kind {
	case watcher.AlphabetsChanged:
		o.pendingAlphabets = c.Path
	case watcher.SettingsChanged:
		o.pendingSettings = c.Path
	}
	log.Debug("Configuration change scheduled", "kind", c.Kind, "path", c.Path)
}

// applyPending applies configuration changes received so far. The alphabet
// table is only reloaded once audio settings are known, since restarted
// engines cannot be configured without them.
func (o *Orchestrator) applyPending() error {
	if path := o.pendingSettings; path != "" {
		o.pendingSettings = ""
		if err := o.cfg.LoadSettingsFile(path); err != nil {
			log.Warn("Keeping previous settings", "err", err)
		} else {
			log.Info("Reloaded settings", "path", path)
		}
	}

	if path := o.pendingAlphabets; path != "" && o.state.Audio != nil {
		o.pendingAlphabets = ""
		return o.reload(path)
	}
	return nil
}

// reload restarts every engine with the alphabet table at path and replays
// the host's initialization.
func (o *Orchestrator) reload(path string) error {
	if err := o.cfg.LoadAlphabetsFile(path); err != nil {
		log.Warn("Keeping previous alphabet table", "err", err)
	}

	o.shutdown()

	engines, err := o.build(o.cfg.Engines)
	if err != nil {
		return fmt.Errorf("unable to restart engines: %w", err)
	}
	o.engines = engines
	o.scheme = o.cfg.Scheme()
	o.state.CurrentEngine = alphabet.Fallback

	err = o.broadcast(func(i int) string {
		payload := protocol.DirectiveInit + "\n" +
			o.state.Audio.EngineCommand() +
			protocol.VoiceSettings(o.cfg.Engines[i])
		if o.state.LogLevel != nil {
			payload += o.state.LogLevel.EngineCommand()
		}
		return payload
	})
	if err != nil {
		return err
	}

	log.Info("Reloaded alphabet table", "path", path, "engines", o.engines.Len())
	return nil
}

// shutdown tells every engine to quit and waits for them.
func (o *Orchestrator) shutdown() {
	if err := o.engines.Quit(); err != nil {
		log.Debug("Unable to quit every engine", "err", err)
	}
	o.wait()
}

// wait waits for every engine to exit. Engines that exit with an error are
// only logged since they are being discarded anyway.
func (o *Orchestrator) wait() {
	if err := o.engines.Wait(); err != nil {
		log.Debug("Engines exited", "err", err)
	}
}
