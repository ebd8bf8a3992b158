package alphabet

import (
	"slices"
	"strings"
)

// DefaultPunctuationCharacters are skipped during classification unless the
// settings file says otherwise.
const DefaultPunctuationCharacters = ",.?，。？- :\r\n"

// Punctuation is a set of characters that never switch engines. They stay in
// whichever chunk they fall in.
type Punctuation map[rune]struct{}

// NewPunctuation returns a set holding exactly the characters of chars.
func NewPunctuation(chars string) Punctuation {
	p := make(Punctuation, len(chars))
	for _, r := range chars {
		p[r] = struct{}{}
	}
	return p
}

// DefaultPunctuation returns the built-in punctuation set.
func DefaultPunctuation() Punctuation {
	return NewPunctuation(DefaultPunctuationCharacters)
}

// ParsePunctuation builds the set configured by a punctuation_characters
// setting. Line breaks are always included.
func ParsePunctuation(value string) Punctuation {
	return NewPunctuation("\n\r" + value)
}

// Contains reports whether r is a punctuation character.
func (p Punctuation) Contains(r rune) bool {
	_, ok := p[r]
	return ok
}

// String returns the characters of the set in code point order.
func (p Punctuation) String() string {
	runes := make([]rune, 0, len(p))
	for r := range p {
		runes = append(runes, r)
	}
	slices.Sort(runes)

	var b strings.Builder
	for _, r := range runes {
		b.WriteRune(r)
	}
	return b.String()
}
