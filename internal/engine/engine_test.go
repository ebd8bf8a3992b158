package engine

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/RastislavKish/Chinfusor/internal/config"
	"github.com/RastislavKish/Chinfusor/internal/protocol"
	"github.com/stretchr/testify/require"
)

// fakeModule behaves like a minimal speech-dispatcher module.
const fakeModule = `
while IFS= read -r line; do
  case "$line" in
    SPEAK|CHAR|KEY)
      while IFS= read -r body; do [ "$body" = "." ] && break; done
      echo "700-mark1"
      echo "702 END"
      ;;
    AUDIO|SET|LOGLEVEL)
      while IFS= read -r body; do [ "$body" = "." ] && break; done
      echo "203 OK"
      ;;
    INIT) echo "299 OK LOADED SUCCESSFULLY" ;;
    PAUSE) echo "704 PAUSE" ;;
    STOP) echo "703 STOP" ;;
    QUIT) exit 0 ;;
  esac
done
`

func writeFakeModule(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake module needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "module.sh")
	require.NoError(t, os.WriteFile(path, []byte(fakeModule), 0o600))
	return path
}

func fakeEngine(name, script string) config.SpeechEngineConfiguration {
	e := config.DefaultEngine(name)
	e.Module = "/bin/sh"
	e.Arg = script
	return e
}

// collect reads lines until a terminal event or timeout.
func collect(t *testing.T, c Conn) []string {
	t.Helper()
	var lines []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case line := <-c.Lines():
			lines = append(lines, line)
			if protocol.IsTerminal(line) {
				return lines
			}
		case <-timeout:
			t.Fatalf("timed out waiting for a terminal event, got %q", lines)
		}
	}
}

func TestLauncher_Command(t *testing.T) {
	script := writeFakeModule(t)

	cmd, err := Launcher{}.Command("/bin/sh", script, false)
	require.NoError(t, err)
	require.Equal(t, []string{"/bin/sh", script}, cmd.Args)

	cmd, err = Launcher{SandboxCommand: "env"}.Command("/bin/sh", script, true)
	require.NoError(t, err)
	require.Equal(t, []string{"env", "/bin/sh", script}, cmd.Args)

	_, err = Launcher{}.Command("/nonexistent/sd_module", "", false)
	require.ErrorIs(t, err, ErrStartup)

	_, err = Launcher{SandboxCommand: "nonexistent_sandbox_xyz"}.Command("/bin/sh", script, true)
	require.ErrorIs(t, err, ErrStartup)
}

func TestHandle_SpeakRoundTrip(t *testing.T) {
	script := writeFakeModule(t)
	readers := NewReaderPool(2)
	defer readers.Close()

	cmd, err := Launcher{}.Command("/bin/sh", script, false)
	require.NoError(t, err)
	h, err := Start("latin", cmd, readers)
	require.NoError(t, err)

	require.NoError(t, h.Write(protocol.SpeakCommand("hello")))
	require.NoError(t, h.ActivateAsyncRead())
	require.Equal(t, []string{"700-mark1", protocol.EventEnd}, collect(t, h))

	_, ok := h.ReadLine()
	require.False(t, ok, "no lines past the terminal event")

	require.NoError(t, h.WriteLine(protocol.DirectivePause))
	require.NoError(t, h.ActivateAsyncRead())
	require.Equal(t, []string{protocol.EventPause}, collect(t, h))

	require.NoError(t, h.WriteLine(protocol.DirectiveQuit))
	require.NoError(t, h.Wait())
}

func TestHandle_ReadStopsAtTerminal(t *testing.T) {
	script := writeFakeModule(t)
	readers := NewReaderPool(1)
	defer readers.Close()

	cmd, err := Launcher{}.Command("/bin/sh", script, false)
	require.NoError(t, err)
	h, err := Start("latin", cmd, readers)
	require.NoError(t, err)

	// The SET reply stays buffered until the next activation.
	require.NoError(t, h.Write("SET\npitch=1\n.\n"))
	require.NoError(t, h.Write(protocol.CharCommand('a')))
	require.NoError(t, h.ActivateAsyncRead())
	require.Equal(t, []string{"203 OK", "700-mark1", protocol.EventEnd}, collect(t, h))

	require.NoError(t, h.WriteLine(protocol.DirectiveQuit))
	require.NoError(t, h.Wait())
}

func TestLineSource_EndOfOutput(t *testing.T) {
	src := newLineSource("test", strings.NewReader("700-a\n702 END\n701 BEGIN\npartial"))

	src.readUntilTerminal()
	require.Equal(t, "700-a", <-src.lines)
	require.Equal(t, protocol.EventEnd, <-src.lines)
	require.Empty(t, src.lines)

	src.readUntilTerminal()
	require.Equal(t, "701 BEGIN", <-src.lines)
	require.Empty(t, src.lines, "partial lines are dropped at EOF")
}

func TestReaderPool_Closed(t *testing.T) {
	readers := NewReaderPool(0)
	readers.Close()
	readers.Close()

	err := readers.submit(newLineSource("test", strings.NewReader("")))
	require.ErrorIs(t, err, ErrPoolClosed)
}

func TestPool(t *testing.T) {
	script := writeFakeModule(t)
	readers := NewReaderPool(2)
	defer readers.Close()

	engines := []config.SpeechEngineConfiguration{
		fakeEngine("latin", script),
		fakeEngine("chinese", script),
	}
	p, err := NewPool(engines, Launcher{}, readers)
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())

	for i := 0; i < p.Len(); i++ {
		require.NoError(t, p.At(i).Write(protocol.SpeakCommand("x")))
		require.NoError(t, p.At(i).ActivateAsyncRead())
	}
	for i := 0; i < p.Len(); i++ {
		require.Equal(t, []string{"700-mark1", protocol.EventEnd}, collect(t, p.At(i)))
	}

	require.NoError(t, p.Quit())
	require.NoError(t, p.Wait())
}

func TestPool_StartupFailure(t *testing.T) {
	script := writeFakeModule(t)
	readers := NewReaderPool(1)
	defer readers.Close()

	broken := config.DefaultEngine("broken")
	broken.Module = "/nonexistent/sd_module"

	_, err := NewPool([]config.SpeechEngineConfiguration{fakeEngine("latin", script), broken}, Launcher{}, readers)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrStartup))
}
