package protocol

import (
	"fmt"
	"strings"

	"github.com/RastislavKish/Chinfusor/internal/config"
)

func block(keyword string, lines []string) string {
	return keyword + "\n" + strings.Join(lines, "\n") + "\n.\n"
}

// EngineCommand formats the AUDIO block forwarded to engines.
func (a Audio) EngineCommand() string {
	return block("AUDIO", a.Lines)
}

// EngineCommand formats the LOGLEVEL block forwarded to engines.
func (l LogLevel) EngineCommand() string {
	return block("LOGLEVEL", l.Lines)
}

// EngineCommand formats the SET block with the host's values.
func (s Set) EngineCommand() string {
	return block("SET", s.Lines)
}

// VoiceSettings formats the SET block configuring an engine's voice.
func VoiceSettings(e config.SpeechEngineConfiguration) string {
	return block("SET", []string{
		"language=" + e.Language,
		"voice=" + e.Voice,
		"punctuation_mode=" + e.PunctuationMode,
		fmt.Sprintf("pitch=%d", e.Pitch),
		fmt.Sprintf("rate=%d", e.Rate),
		fmt.Sprintf("volume=%d", e.Volume),
	})
}

// PitchSettings formats a SET block changing only the pitch.
func PitchSettings(pitch int) string {
	return block("SET", []string{fmt.Sprintf("pitch=%d", pitch)})
}

// SpeakCommand wraps text in a speak element and formats a SPEAK block.
func SpeakCommand(text string) string {
	return "SPEAK\n<speak>" + text + "</speak>\n.\n"
}

// CharCommand formats a CHAR block.
func CharCommand(r rune) string {
	return "CHAR\n" + string(r) + "\n.\n"
}

// KeyCommand formats a KEY block.
func KeyCommand(name string) string {
	return "KEY\n" + name + "\n.\n"
}

// StripSpeakWrapper removes every <speak> and </speak> tag from text.
func StripSpeakWrapper(text string) string {
	text = strings.ReplaceAll(text, "<speak>", "")
	return strings.ReplaceAll(text, "</speak>", "")
}
