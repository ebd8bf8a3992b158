// Package config holds the alphabet table, the global settings and the
// runtime options of chinfusor, along with the parsers for their files.
package config

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/RastislavKish/Chinfusor/internal/alphabet"
	"github.com/charmbracelet/log"
)

// DefaultEngineName names the engine synthesized when a table has no
// fallback engine.
const DefaultEngineName = "latin"

const punctuationKey = "punctuation_characters"

var settingSeparator = regexp.MustCompile(`: ?`)

// Config is the set of engines and the punctuation used for segmentation.
//
// Engines[0] is always the fallback engine; the others are in table order
// and their indexes are the engine indexes used by alphabet.Scheme.
type Config struct {
	Engines     []SpeechEngineConfiguration
	Punctuation alphabet.Punctuation
}

// New returns the built-in configuration: a single latin espeak-ng engine and
// the default punctuation.
func New() *Config {
	return &Config{
		Engines:     []SpeechEngineConfiguration{DefaultEngine(DefaultEngineName)},
		Punctuation: alphabet.DefaultPunctuation(),
	}
}

// Fallback returns the fallback engine configuration.
func (c *Config) Fallback() SpeechEngineConfiguration {
	return c.Engines[0]
}

// Scheme builds the classification scheme from every non-fallback engine.
func (c *Config) Scheme() alphabet.Scheme {
	var ranges []alphabet.Range
	for i, e := range c.Engines {
		for _, r := range e.Ranges {
			ranges = append(ranges, alphabet.Range{Start: r.Start, End: r.End, Engine: i})
		}
	}
	return alphabet.NewScheme(ranges)
}

// LoadAlphabets replaces the engines with the ones described by an alphabets
// table. Lines starting with '#' and blank lines are ignored. Lines that fail
// to parse are skipped and returned as *LineError values.
//
// The first wildcard engine becomes the fallback engine and later ones are
// dropped. A table without a wildcard engine gets a default latin fallback.
func (c *Config) LoadAlphabets(table string) []error {
	var (
		fallback *SpeechEngineConfiguration
		others   []SpeechEngineConfiguration
		skipped  []error
	)

	scanner := bufio.NewScanner(strings.NewReader(table))
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		e, err := ParseEngine(line)
		if err != nil {
			skipped = append(skipped, &LineError{Line: n, Text: line, Err: err})
			continue
		}

		switch {
		case !e.IsFallback():
			others = append(others, e)
		case fallback == nil:
			fallback = &e
		default:
			log.Debug("Ignoring duplicate fallback engine", "name", e.Name, "line", n)
		}
	}

	if fallback == nil {
		d := DefaultEngine(DefaultEngineName)
		fallback = &d
	}
	c.Engines = append([]SpeechEngineConfiguration{*fallback}, others...)
	return skipped
}

// LoadSettings applies a settings file. Only punctuation_characters is
// recognized; unknown keys are ignored.
func (c *Config) LoadSettings(settings string) []error {
	var skipped []error

	scanner := bufio.NewScanner(strings.NewReader(settings))
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		parts := settingSeparator.Split(line, 2)
		if len(parts) != 2 {
			skipped = append(skipped, &LineError{Line: n, Text: line, Err: ErrInvalidSetting})
			continue
		}

		switch parts[0] {
		case punctuationKey:
			c.Punctuation = alphabet.ParsePunctuation(parts[1])
		default:
			log.Debug("Ignoring unknown setting", "key", parts[0], "line", n)
		}
	}
	return skipped
}

// LoadAlphabetsFile loads an alphabets table from disk. When the file cannot
// be read the configuration is left untouched and the error is returned.
func (c *Config) LoadAlphabetsFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read alphabets table: %w", err)
	}
	for _, err := range c.LoadAlphabets(string(b)) {
		log.Warn("Skipping engine", "path", path, "err", err)
	}
	return nil
}

// LoadSettingsFile loads a settings file from disk. When the file cannot be
// read the configuration is left untouched and the error is returned.
func (c *Config) LoadSettingsFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read settings: %w", err)
	}
	for _, err := range c.LoadSettings(string(b)) {
		log.Warn("Skipping setting", "path", path, "err", err)
	}
	return nil
}
