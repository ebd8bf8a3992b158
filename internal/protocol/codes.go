package protocol

import "strings"

// Events emitted while an utterance is spoken.
const (
	EventIndexMark = "700"
	EventBegin     = "701 BEGIN"
	EventEnd       = "702 END"
	EventStop      = "703 STOP"
	EventPause     = "704 PAUSE"
)

// Replies acknowledging host commands.
const (
	ReplyInitMessage       = "299-Chinfusor: Initialized successfully."
	ReplyInitOK            = "299 OK LOADED SUCCESSFULLY"
	ReplyReceivingAudio    = "207 OK RECEIVING AUDIO SETTINGS"
	ReplyAudioInitialized  = "203 OK AUDIO INITIALIZED"
	ReplyReceivingLogLevel = "207 OK RECEIVING LOGLEVEL SETTINGS"
	ReplyLogLevelSet       = "203 OK LOGLEVEL SET"
	ReplyReceivingSettings = "203 OK RECEIVING SETTINGS"
	ReplySettingsReceived  = "203 OK SETTINGS RECEIVED"
	ReplyReceivingMessage  = "202 OK RECEIVING MESSAGE"
	ReplySpeaking          = "200 OK SPEAKING"
	ReplyVoiceListSent     = "200 OK VOICE LIST SENT"
	ReplyQuit              = "210 OK QUIT"
)

// Directives sent to engines without a body.
const (
	DirectiveInit  = "INIT"
	DirectivePause = "PAUSE"
	DirectiveStop  = "STOP"
	DirectiveQuit  = "QUIT"
)

// IsIndexMark reports whether an engine line is an index mark or other
// progress event that is relayed to the host verbatim.
func IsIndexMark(line string) bool {
	return strings.HasPrefix(line, EventIndexMark)
}

// IsTerminal reports whether an engine line ends a read started after
// SPEAK, CHAR, KEY, PAUSE or STOP.
func IsTerminal(line string) bool {
	switch line {
	case EventEnd, EventStop, EventPause:
		return true
	}
	return false
}

// VoiceListEntry formats the single voice advertised to the host.
func VoiceListEntry(language string) string {
	return "200-Default\t" + language + "\tnone"
}
