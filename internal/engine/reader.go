package engine

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/RastislavKish/Chinfusor/internal/protocol"
	"github.com/charmbracelet/log"
)

const linesBuffer = 64

// lineSource is the stdout side of one engine. Reads are serialized by mu so
// only one worker consumes a given engine at a time.
type lineSource struct {
	name  string
	mu    sync.Mutex
	r     *bufio.Reader
	lines chan string
}

func newLineSource(name string, r io.Reader) *lineSource {
	return &lineSource{
		name:  name,
		r:     bufio.NewReader(r),
		lines: make(chan string, linesBuffer),
	}
}

// readUntilTerminal forwards complete lines until a terminal event, the end
// of output, or a read error. A partial last line is dropped.
func (s *lineSource) readUntilTerminal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		line, err := s.r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debug("Engine output failed", "engine", s.name, "err", err)
			} else {
				log.Debug("Engine output closed", "engine", s.name)
			}
			return
		}

		line = strings.TrimSuffix(line, "\n")
		s.lines <- line
		if protocol.IsTerminal(line) {
			return
		}
	}
}

// ReaderPool is a fixed set of goroutines serving read activations.
type ReaderPool struct {
	requests chan *lineSource
	mu       sync.RWMutex
	closed   bool
}

// NewReaderPool starts size reader goroutines. A size below one is raised
// to one.
func NewReaderPool(size int) *ReaderPool {
	if size < 1 {
		size = 1
	}
	p := &ReaderPool{requests: make(chan *lineSource, size*4)}
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *ReaderPool) worker() {
	for src := range p.requests {
		src.readUntilTerminal()
	}
}

func (p *ReaderPool) submit(src *lineSource) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.requests <- src
	return nil
}

// Close stops accepting activations. Workers exit once they finish the
// reads already queued.
func (p *ReaderPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.requests)
}
