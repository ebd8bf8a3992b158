package protocol

// Command is a host command handed to the orchestrator. It is one of Init,
// Audio, LogLevel, Set, Speak, Char, Key, Pause, Stop or Quit.
type Command interface {
	command()
}

// Init asks every engine to initialize.
type Init struct{}

// Audio carries the body of an AUDIO block, one trimmed line per setting.
type Audio struct {
	Lines []string
}

// LogLevel carries the body of a LOGLEVEL block.
type LogLevel struct {
	Lines []string
}

// Set carries the body of a SET block. Engine voices come from the alphabet
// table, so these values are not forwarded.
type Set struct {
	Lines []string
}

// Speak carries the raw text of a SPEAK block.
type Speak struct {
	Text string
}

// Char asks for a single character to be spoken.
type Char struct {
	Char rune
}

// Key asks for a key name to be spoken.
type Key struct {
	Name string
}

// Pause, Stop and Quit carry no data.
type (
	Pause struct{}
	Stop  struct{}
	Quit  struct{}
)

func (Init) command()     {}
func (Audio) command()    {}
func (LogLevel) command() {}
func (Set) command()      {}
func (Speak) command()    {}
func (Char) command()     {}
func (Key) command()      {}
func (Pause) command()    {}
func (Stop) command()     {}
func (Quit) command()     {}
