package orchestrator

import (
	"bytes"
	"strings"
	"sync"

	"github.com/RastislavKish/Chinfusor/internal/config"
	"github.com/RastislavKish/Chinfusor/internal/engine"
)

// fakeConn records what is written to an engine and serves scripted output.
type fakeConn struct {
	mu          sync.Mutex
	written     []string
	activations int
	writeErr    error
	lines       chan string
}

func newFakeConn() *fakeConn {
	return &fakeConn{lines: make(chan string, 16)}
}

func (c *fakeConn) Write(payload string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.written = append(c.written, payload)
	return nil
}

func (c *fakeConn) WriteLine(payload string) error {
	return c.Write(payload + "\n")
}

func (c *fakeConn) ActivateAsyncRead() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activations++
	return nil
}

func (c *fakeConn) ReadLine() (string, bool) {
	select {
	case l := <-c.lines:
		return l, true
	default:
		return "", false
	}
}

func (c *fakeConn) Lines() <-chan string {
	return c.lines
}

func (c *fakeConn) Written() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.written...)
}

func (c *fakeConn) Activations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activations
}

// fakeEngines is a set of fake connections.
type fakeEngines struct {
	mu    sync.Mutex
	conns []*fakeConn
	quits int
	waits int
	names []string
}

func (e *fakeEngines) Len() int { return len(e.conns) }

func (e *fakeEngines) At(i int) engine.Conn { return e.conns[i] }

func (e *fakeEngines) Quit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.quits++
	return nil
}

func (e *fakeEngines) Wait() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.waits++
	return nil
}

func (e *fakeEngines) Counts() (quits, waits int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quits, e.waits
}

// fakeBuilder remembers every engine set it built.
type fakeBuilder struct {
	mu    sync.Mutex
	built []*fakeEngines
}

func (b *fakeBuilder) Build(cfgs []config.SpeechEngineConfiguration) (Engines, error) {
	e := &fakeEngines{}
	for _, c := range cfgs {
		e.conns = append(e.conns, newFakeConn())
		e.names = append(e.names, c.Name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.built = append(b.built, e)
	return e, nil
}

func (b *fakeBuilder) Builds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.built)
}

func (b *fakeBuilder) Last() *fakeEngines {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.built[len(b.built)-1]
}

// lineRecorder collects host output line by line and is safe to read while
// the orchestrator writes.
type lineRecorder struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func newLineRecorder() *lineRecorder {
	return &lineRecorder{}
}

func (r *lineRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

func (r *lineRecorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := strings.TrimSuffix(r.buf.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (r *lineRecorder) Contains(line string) bool {
	for _, l := range r.Lines() {
		if l == line {
			return true
		}
	}
	return false
}
