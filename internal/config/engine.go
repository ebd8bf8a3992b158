package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Wildcard marks the fallback engine in the ranges column.
const Wildcard = "*"

// Punctuation modes understood by speech-dispatcher modules.
const (
	PunctuationNone = "none"
	PunctuationSome = "some"
	PunctuationAll  = "all"
)

const engineFields = 12

var rangePattern = regexp.MustCompile(`u((0x[0-9a-fA-F]+)|(\d+))-u((0x[0-9a-fA-F]+)|(\d+))`)

// UnicodeRange is an inclusive span of code points.
type UnicodeRange struct {
	Start rune
	End   rune
}

// SpeechEngineConfiguration describes one backend engine process and the
// voice it speaks with.
type SpeechEngineConfiguration struct {
	Name            string
	Ranges          []UnicodeRange // Empty for the fallback engine
	Module          string         // Path to the module binary
	Arg             string         // Single argument passed to the module
	Language        string
	Voice           string
	PunctuationMode string
	Pitch           int
	CapitalsPitch   int
	Rate            int
	Volume          int
	Sandboxed       bool
}

// DefaultEngine returns an espeak-ng engine configuration.
func DefaultEngine(name string) SpeechEngineConfiguration {
	return SpeechEngineConfiguration{
		Name:            name,
		Module:          "/usr/lib/speech-dispatcher-modules/sd_espeak-ng",
		Arg:             "/etc/speech-dispatcher/modules/espeak-ng.conf",
		Language:        "en",
		Voice:           "male1",
		PunctuationMode: PunctuationSome,
		Pitch:           10,
		CapitalsPitch:   50,
		Rate:            2,
		Volume:          100,
	}
}

// IsFallback reports whether the engine is the wildcard engine.
func (e SpeechEngineConfiguration) IsFallback() bool {
	return len(e.Ranges) == 0
}

// ParseEngine parses one line of the alphabets table:
//
//	name,ranges,module,arg,language,voice,punctuation_mode,pitch,capitals_pitch,rate,volume,sandbox
//
// Ranges are space separated uSTART-uEND pairs in decimal or 0x hex, or "*"
// for the fallback engine. Out of range numbers and unknown punctuation modes
// fall back to the defaults.
func ParseEngine(line string) (SpeechEngineConfiguration, error) {
	fields := strings.Split(line, ",")
	if len(fields) != engineFields {
		return SpeechEngineConfiguration{}, fmt.Errorf("%w: got %d", ErrFieldCount, len(fields))
	}

	ranges, err := parseRanges(fields[1])
	if err != nil {
		return SpeechEngineConfiguration{}, err
	}

	cfg := DefaultEngine(fields[0])
	cfg.Ranges = ranges
	cfg.Module = fields[2]
	cfg.Arg = fields[3]
	cfg.Language = fields[4]
	cfg.Voice = fields[5]

	switch mode := fields[6]; mode {
	case PunctuationNone, PunctuationSome, PunctuationAll:
		cfg.PunctuationMode = mode
	}

	cfg.Pitch = parseLevel(fields[7], cfg.Pitch)
	cfg.CapitalsPitch = parseLevel(fields[8], cfg.CapitalsPitch)
	cfg.Rate = parseLevel(fields[9], cfg.Rate)
	cfg.Volume = parseLevel(fields[10], cfg.Volume)

	switch fields[11] {
	case "yes", "true":
		cfg.Sandboxed = true
	}

	return cfg, nil
}

func parseRanges(field string) ([]UnicodeRange, error) {
	if field == "" || field == Wildcard {
		return nil, nil
	}

	matches := rangePattern.FindAllStringSubmatch(field, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRanges, field)
	}

	ranges := make([]UnicodeRange, 0, len(matches))
	for _, m := range matches {
		start, err := parseCodePoint(m[1])
		if err != nil {
			return nil, err
		}
		end, err := parseCodePoint(m[4])
		if err != nil {
			return nil, err
		}
		if start > end {
			start, end = end, start
		}
		ranges = append(ranges, UnicodeRange{Start: start, End: end})
	}
	return ranges, nil
}

func parseCodePoint(s string) (rune, error) {
	var (
		v   uint64
		err error
	)
	if hex, ok := strings.CutPrefix(s, "0x"); ok {
		v, err = strconv.ParseUint(hex, 16, 32)
	} else {
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil || v > utf8.MaxRune {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRange, s)
	}
	return rune(v), nil
}

// parseLevel reads a voice parameter in [-100, 100], returning def for
// anything else.
func parseLevel(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < -100 || v > 100 {
		return def
	}
	return v
}
