package alphabet

import (
	"cmp"
	"slices"
)

// Fallback is the engine index of the wildcard engine. It speaks every code
// point no configured range claims.
const Fallback = 0

// Range assigns the inclusive code point span [Start, End] to an engine.
type Range struct {
	Start  rune
	End    rune
	Engine int
}

// Contains reports whether r lies inside the range.
func (rg Range) Contains(r rune) bool {
	return r >= rg.Start && r <= rg.End
}

// Scheme is an immutable lookup structure built from the configured ranges of
// every non-wildcard engine, ordered by range start.
type Scheme struct {
	ranges []Range
}

// NewScheme builds a scheme from ranges in any order. Ranges with equal starts
// keep their relative order.
func NewScheme(ranges []Range) Scheme {
	sorted := slices.Clone(ranges)
	slices.SortStableFunc(sorted, func(a, b Range) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return Scheme{ranges: sorted}
}

// Len returns the number of ranges in the scheme.
func (s Scheme) Len() int {
	return len(s.ranges)
}

// Empty reports whether the scheme has no ranges at all.
func (s Scheme) Empty() bool {
	return len(s.ranges) == 0
}

// Ranges returns a copy of the ordered ranges.
func (s Scheme) Ranges() []Range {
	return slices.Clone(s.ranges)
}

// Classify returns the engine index for r.
//
// Ranges are walked in ascending start order and the first one containing r
// wins. Overlapping ranges are not merged: a code point past the end of the
// last range, or before the start of the first, always goes to Fallback.
func (s Scheme) Classify(r rune) int {
	if len(s.ranges) == 0 {
		return Fallback
	}
	if r < s.ranges[0].Start || r > s.ranges[len(s.ranges)-1].End {
		return Fallback
	}
	for _, rg := range s.ranges {
		if r < rg.Start {
			return Fallback
		}
		if r <= rg.End {
			return rg.Engine
		}
	}
	return Fallback
}
