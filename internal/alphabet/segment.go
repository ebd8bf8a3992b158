package alphabet

import "strings"

// Chunk is a run of text spoken by a single engine.
type Chunk struct {
	Engine int
	Text   string
}

// Segment splits text into chunks of one alphabet each.
//
// Punctuation characters never start a new chunk. With ssml set, everything
// from a '<' up to and including the matching '>' is ignored for
// classification, but the markup stays in the chunk text so engines still
// receive it. The first classified character decides the type of the first
// chunk; until one is seen the chunk belongs to Fallback.
//
// Chunk texts are trimmed of surrounding whitespace. The last chunk is always
// emitted, even when trimming leaves it empty. A scheme without ranges yields
// the whole text as a single Fallback chunk.
func Segment(text string, scheme Scheme, punctuation Punctuation, ssml bool) []Chunk {
	if scheme.Empty() {
		return []Chunk{{Engine: Fallback, Text: text}}
	}

	chars := []rune(text)
	if len(chars) == 0 {
		return nil
	}

	var (
		chunks  []Chunk
		mark    int
		current = Fallback
		seeded  bool
		inTag   bool
	)

	for i, ch := range chars {
		if ssml {
			if ch == '<' && !inTag {
				inTag = true
			}
			if ch == '>' && inTag {
				inTag = false
				continue
			}
			if inTag {
				continue
			}
		}

		if punctuation.Contains(ch) {
			continue
		}

		kind := scheme.Classify(ch)
		if !seeded {
			current = kind
			seeded = true
			continue
		}

		if kind != current {
			chunks = append(chunks, Chunk{
				Engine: current,
				Text:   strings.TrimSpace(string(chars[mark:i])),
			})
			current = kind
			mark = i
		}
	}

	return append(chunks, Chunk{
		Engine: current,
		Text:   strings.TrimSpace(string(chars[mark:])),
	})
}
