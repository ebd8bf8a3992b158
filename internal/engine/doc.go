// Package engine runs speech-dispatcher output modules as child processes
// and talks to them over their stdin and stdout.
//
// Reading engine output is done by a small pool of reader goroutines. A read
// is activated after a command that produces events and lasts until the
// engine prints a terminal event, so the orchestrator never blocks on a
// quiet engine.
package engine
