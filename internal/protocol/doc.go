// Package protocol implements the line oriented speech-dispatcher module
// protocol: it parses host commands read from stdin, writes replies and
// events to stdout, and formats the commands forwarded to engine modules.
package protocol
