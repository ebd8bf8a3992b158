package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Parser reads host commands, acknowledges them and passes the decoded
// commands on. LIST VOICES is answered directly.
type Parser struct {
	r        *bufio.Reader
	out      *Writer
	language string
	unknown  rate.Sometimes
}

// NewParser returns a parser reading from r and replying through out.
// language is advertised in the voice list.
func NewParser(r io.Reader, out *Writer, language string) *Parser {
	return &Parser{
		r:        bufio.NewReader(r),
		out:      out,
		language: language,
		unknown:  rate.Sometimes{Interval: time.Second},
	}
}

// Run parses commands until the input ends, sending them to cmds. cmds is
// closed on return. The end of input is not an error.
func (p *Parser) Run(ctx context.Context, cmds chan<- Command) error {
	defer close(cmds)

	for {
		line, err := p.readLine()
		if err != nil {
			return endOfInput(err)
		}

		cmd, err := p.parse(strings.TrimSpace(line))
		if err != nil {
			return endOfInput(err)
		}
		if cmd == nil {
			continue
		}

		select {
		case cmds <- cmd:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		log.Debug("Host closed the input")
		return nil
	}
	return fmt.Errorf("unable to read host input: %w", err)
}

// parse handles one command keyword, reading its body if it has one.
func (p *Parser) parse(keyword string) (Command, error) {
	switch keyword {
	case "INIT":
		return Init{}, p.out.Send(ReplyInitMessage, ReplyInitOK)

	case "AUDIO":
		lines, err := p.readBlock(ReplyReceivingAudio, ReplyAudioInitialized)
		return Audio{Lines: lines}, err

	case "LOGLEVEL":
		lines, err := p.readBlock(ReplyReceivingLogLevel, ReplyLogLevelSet)
		return LogLevel{Lines: lines}, err

	case "SET":
		lines, err := p.readBlock(ReplyReceivingSettings, ReplySettingsReceived)
		return Set{Lines: lines}, err

	case "SPEAK":
		text, err := p.readText()
		return Speak{Text: text}, err

	case "CHAR":
		line, err := p.readSingle()
		if err != nil {
			return nil, err
		}
		r, size := utf8.DecodeRuneInString(line)
		if size == 0 {
			return nil, nil
		}
		return Char{Char: r}, nil

	case "KEY":
		line, err := p.readSingle()
		if err != nil {
			return nil, err
		}
		return Key{Name: strings.TrimSuffix(line, "\n")}, nil

	case "PAUSE":
		return Pause{}, nil

	case "STOP":
		return Stop{}, nil

	case "QUIT":
		return Quit{}, nil

	case "LIST VOICES":
		return nil, p.out.Send(VoiceListEntry(p.language), ReplyVoiceListSent)

	default:
		p.unknown.Do(func() {
			log.Debug("Ignoring unknown command", "line", keyword)
		})
		return nil, nil
	}
}

// readLine returns the next line including its newline. A final line
// without a newline is returned before io.EOF.
func (p *Parser) readLine() (string, error) {
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return line, nil
}

// readBlock reads trimmed lines up to a lone ".".
func (p *Parser) readBlock(receiving, done string) ([]string, error) {
	if err := p.out.Send(receiving); err != nil {
		return nil, err
	}

	lines := []string{}
	for {
		line, err := p.readLine()
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	return lines, p.out.Send(done)
}

// readText reads raw lines up to a line that is exactly ".".
func (p *Parser) readText() (string, error) {
	if err := p.out.Send(ReplyReceivingMessage); err != nil {
		return "", err
	}

	var b strings.Builder
	for {
		line, err := p.readLine()
		if err != nil {
			return "", err
		}
		if line == ".\n" || line == "." {
			break
		}
		b.WriteString(line)
	}
	return b.String(), p.out.Send(ReplySpeaking)
}

// readSingle reads the payload line of CHAR and KEY and discards the
// terminating line after it.
func (p *Parser) readSingle() (string, error) {
	if err := p.out.Send(ReplyReceivingMessage); err != nil {
		return "", err
	}
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if _, err := p.readLine(); err != nil {
		return "", err
	}
	return line, p.out.Send(ReplySpeaking)
}
