package protocol

import (
	"io"
	"strings"
	"sync"
)

// Writer serializes lines written to the host. Each Send is written in one
// piece so replies from the parser and events from the orchestrator never
// interleave.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Send writes each line followed by a newline.
func (w *Writer) Send(lines ...string) error {
	if len(lines) == 0 {
		return nil
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.w, b.String())
	return err
}
