package alphabet

import (
	"testing"
	"unicode/utf8"
)

func TestScheme_Classify(t *testing.T) {
	scheme := NewScheme([]Range{
		{Start: 0x4E00, End: 0x9FA5, Engine: 1},
		{Start: 0x400, End: 0x52F, Engine: 2},
	})

	tests := []struct {
		name string
		r    rune
		want int
	}{
		{name: "Latin letter", r: 'a', want: Fallback},
		{name: "Before first range", r: 0x3FF, want: Fallback},
		{name: "First range start", r: 0x400, want: 2},
		{name: "Cyrillic letter", r: 'Ж', want: 2},
		{name: "First range end", r: 0x52F, want: 2},
		{name: "Gap between ranges", r: 0x530, want: Fallback},
		{name: "Chinese character", r: '你', want: 1},
		{name: "Last range end", r: 0x9FA5, want: 1},
		{name: "After last range", r: 0x9FA6, want: Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scheme.Classify(tt.r); got != tt.want {
				t.Errorf("Classify(%U) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}

func TestScheme_ClassifyEmpty(t *testing.T) {
	var scheme Scheme
	for _, r := range []rune{0, 'a', '你', utf8.MaxRune} {
		if got := scheme.Classify(r); got != Fallback {
			t.Errorf("Classify(%U) = %d on empty scheme, want %d", r, got, Fallback)
		}
	}
}

func TestScheme_OverlapFirstMatchWins(t *testing.T) {
	scheme := NewScheme([]Range{
		{Start: 0x100, End: 0x200, Engine: 2},
		{Start: 0x050, End: 0x150, Engine: 1},
	})

	tests := []struct {
		r    rune
		want int
	}{
		{r: 0x060, want: 1},
		{r: 0x120, want: 1},
		{r: 0x180, want: 2},
	}

	for _, tt := range tests {
		if got := scheme.Classify(tt.r); got != tt.want {
			t.Errorf("Classify(%U) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestScheme_StableOrder(t *testing.T) {
	scheme := NewScheme([]Range{
		{Start: 0x100, End: 0x110, Engine: 1},
		{Start: 0x100, End: 0x120, Engine: 2},
	})

	if got := scheme.Classify(0x105); got != 1 {
		t.Errorf("Classify() = %d, want the earlier of two equal starts (1)", got)
	}
	if got := scheme.Ranges()[1].Engine; got != 2 {
		t.Errorf("Ranges()[1].Engine = %d, want 2", got)
	}
}

func TestScheme_ClassifyIsTotal(t *testing.T) {
	scheme := NewScheme([]Range{
		{Start: 0x4E00, End: 0x9FA5, Engine: 1},
		{Start: 0x400, End: 0x52F, Engine: 2},
	})
	engines := 3

	for r := rune(0); r <= utf8.MaxRune; r += 97 {
		got := scheme.Classify(r)
		if got < 0 || got >= engines {
			t.Fatalf("Classify(%U) = %d, outside [0, %d)", r, got, engines)
		}
	}
}
