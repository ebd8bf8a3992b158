package config

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseEngine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    SpeechEngineConfiguration
		wantErr error
	}{
		{
			name: "Fallback engine",
			line: "latin,*,/usr/lib/sd_espeak-ng,/etc/espeak-ng.conf,sk,female2,all,20,60,-5,90,no",
			want: SpeechEngineConfiguration{
				Name: "latin", Module: "/usr/lib/sd_espeak-ng", Arg: "/etc/espeak-ng.conf",
				Language: "sk", Voice: "female2", PunctuationMode: "all",
				Pitch: 20, CapitalsPitch: 60, Rate: -5, Volume: 90,
			},
		},
		{
			name: "Hex and decimal ranges",
			line: "mixed,u0x4E00-u0x9FA5 u1024-u1327,m,a,cmn,male1,some,10,50,2,100,yes",
			want: SpeechEngineConfiguration{
				Name:   "mixed",
				Ranges: []UnicodeRange{{Start: 0x4E00, End: 0x9FA5}, {Start: 1024, End: 1327}},
				Module: "m", Arg: "a", Language: "cmn", Voice: "male1", PunctuationMode: "some",
				Pitch: 10, CapitalsPitch: 50, Rate: 2, Volume: 100, Sandboxed: true,
			},
		},
		{
			name: "Reversed range is swapped",
			line: "cyrillic,u0x52F-u0x400,m,a,ru,male1,some,10,50,2,100,true",
			want: SpeechEngineConfiguration{
				Name:   "cyrillic",
				Ranges: []UnicodeRange{{Start: 0x400, End: 0x52F}},
				Module: "m", Arg: "a", Language: "ru", Voice: "male1", PunctuationMode: "some",
				Pitch: 10, CapitalsPitch: 50, Rate: 2, Volume: 100, Sandboxed: true,
			},
		},
		{
			name: "Invalid values fall back to defaults",
			line: "latin,,m,a,en,male1,loud,200,x,-101,,maybe",
			want: SpeechEngineConfiguration{
				Name: "latin", Module: "m", Arg: "a", Language: "en", Voice: "male1",
				PunctuationMode: "some", Pitch: 10, CapitalsPitch: 50, Rate: 2, Volume: 100,
			},
		},
		{
			name:    "Too few fields",
			line:    "latin,*,m,a,en",
			wantErr: ErrFieldCount,
		},
		{
			name:    "Too many fields",
			line:    "latin,*,m,a,en,male1,some,10,50,2,100,no,extra",
			wantErr: ErrFieldCount,
		},
		{
			name:    "Garbage ranges",
			line:    "broken,0x400-0x52F,m,a,ru,male1,some,10,50,2,100,no",
			wantErr: ErrNoRanges,
		},
		{
			name:    "Code point out of unicode",
			line:    "broken,u0x110000-u0x110001,m,a,ru,male1,some,10,50,2,100,no",
			wantErr: ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEngine(tt.line)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseEngine() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEngine() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseEngine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSpeechEngineConfiguration_IsFallback(t *testing.T) {
	if !DefaultEngine("latin").IsFallback() {
		t.Error("DefaultEngine() should be a fallback engine")
	}
	e := DefaultEngine("chinese")
	e.Ranges = []UnicodeRange{{Start: 0x4E00, End: 0x9FA5}}
	if e.IsFallback() {
		t.Error("engine with ranges should not be a fallback engine")
	}
}
