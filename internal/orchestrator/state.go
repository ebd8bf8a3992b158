package orchestrator

import (
	"github.com/RastislavKish/Chinfusor/internal/alphabet"
	"github.com/RastislavKish/Chinfusor/internal/protocol"
)

// StateType is the playback state of the dispatcher.
type StateType int

const (
	// StateIdle means no engine is speaking.
	StateIdle StateType = iota
	// StateSpeaking means an engine is speaking a chunk, a key or a
	// character.
	StateSpeaking
	// StatePausedOrStopping means a PAUSE or STOP was forwarded and the
	// engine's confirmation is awaited.
	StatePausedOrStopping
)

// String returns the string representation of the state.
func (s StateType) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpeaking:
		return "speaking"
	case StatePausedOrStopping:
		return "pausing"
	default:
		return "unknown"
	}
}

// PlaybackState is what the orchestrator tracks between commands.
type PlaybackState struct {
	State         StateType
	CurrentEngine int              // Engine speaking now
	Chunks        []alphabet.Chunk // Chunks of the current utterance, nil for KEY and CHAR
	Position      int              // Index of the chunk being spoken
	Capitalized   bool             // Pitch was raised for a capital letter
	OriginalPitch int              // Pitch to restore after a capital letter

	Audio    *protocol.Audio    // Last AUDIO block, replayed after engine restarts
	LogLevel *protocol.LogLevel // Last LOGLEVEL block

	utterance string // Correlation id for logs
}

// Speaking reports whether an engine is busy.
func (s *PlaybackState) Speaking() bool {
	return s.State != StateIdle
}
