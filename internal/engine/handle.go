package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Conn is the orchestrator's view of one engine.
type Conn interface {
	// Write sends payload as is.
	Write(payload string) error
	// WriteLine sends payload followed by a newline.
	WriteLine(payload string) error
	// ActivateAsyncRead queues a read that forwards lines until the next
	// terminal event.
	ActivateAsyncRead() error
	// ReadLine returns a forwarded line without blocking.
	ReadLine() (string, bool)
	// Lines returns the channel forwarded lines arrive on.
	Lines() <-chan string
}

// Handle is a running engine process.
type Handle struct {
	name    string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	src     *lineSource
	readers *ReaderPool
	logDone chan struct{}
}

var _ Conn = (*Handle)(nil)

// Start launches cmd and connects it to readers. The engine's stderr is
// relayed to the debug log.
func Start(name string, cmd *exec.Cmd, readers *ReaderPool) (*Handle, error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStartup, name, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStartup, name, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStartup, name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStartup, name, err)
	}

	h := &Handle{
		name:    name,
		cmd:     cmd,
		stdin:   stdin,
		src:     newLineSource(name, stdout),
		readers: readers,
		logDone: make(chan struct{}),
	}
	go h.logLines(stderr)

	log.Debug("Started engine", "engine", name, "pid", cmd.Process.Pid, "args", cmd.Args)
	return h, nil
}

func (h *Handle) logLines(r io.Reader) {
	defer close(h.logDone)
	logger := log.WithPrefix(h.name)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		logger.Debug(line)
	}
}

// Name returns the engine name from the alphabet table.
func (h *Handle) Name() string {
	return h.name
}

// Write sends payload to the engine's stdin.
func (h *Handle) Write(payload string) error {
	if _, err := io.WriteString(h.stdin, payload); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBackendIO, h.name, err)
	}
	return nil
}

// WriteLine sends payload and a newline.
func (h *Handle) WriteLine(payload string) error {
	return h.Write(payload + "\n")
}

// ActivateAsyncRead queues a read of the engine's output.
func (h *Handle) ActivateAsyncRead() error {
	return h.readers.submit(h.src)
}

// ReadLine returns the next forwarded line, if one is waiting.
func (h *Handle) ReadLine() (string, bool) {
	select {
	case line := <-h.src.lines:
		return line, true
	default:
		return "", false
	}
}

// Lines returns the channel forwarded lines arrive on.
func (h *Handle) Lines() <-chan string {
	return h.src.lines
}

// Wait closes the engine's stdin and waits for it to exit.
func (h *Handle) Wait() error {
	if err := h.stdin.Close(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		log.Debug("Unable to close engine input", "engine", h.name, "err", err)
	}
	<-h.logDone
	if err := h.cmd.Wait(); err != nil {
		return fmt.Errorf("engine %s: %w", h.name, err)
	}
	return nil
}

// kill terminates an engine that never got to run.
func (h *Handle) kill() {
	_ = h.stdin.Close()
	if h.cmd.Process != nil {
		_ = h.cmd.Process.Kill()
	}
	<-h.logDone
	_ = h.cmd.Wait()
}
