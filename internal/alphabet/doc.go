// Package alphabet decides which speech engine speaks which part of an
// utterance. A Scheme maps Unicode code points to engine indexes and Segment
// cuts text into contiguous runs that a single engine can speak.
package alphabet
