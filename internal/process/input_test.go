package process

import (
	"testing"

	"github.com/pdiddy/novel-search/pkg/types"
)

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input string
		want  Answer
	}{
		{"1", Answer{POV: types.POVFirst}},
		{"2", Answer{POV: types.POVSecond}},
		{"3", Answer{POV: types.POVThird}},
		{"1r", Answer{POV: types.POVFirst, Read: true}},
		{"r1", Answer{POV: types.POVFirst, Read: true}},
		{"3R", Answer{POV: types.POVThird, Read: true}},
		{"  2 ", Answer{POV: types.POVSecond}},
		{"quit", Answer{Quit: true}},
		{"exit", Answer{Quit: true}},
		{"QUIT", Answer{Quit: true}},
	}
	for _, tt := range tests {
		got, err := ParseAnswer(tt.input)
		if err != nil {
			t.Errorf("ParseAnswer(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAnswer(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseAnswerRejectsInvalidInput(t *testing.T) {
	for _, input := range []string{"", "4", "r", "rr", "12", "first", "1q"} {
		if _, err := ParseAnswer(input); err == nil {
			t.Errorf("ParseAnswer(%q) succeeded, want error", input)
		}
	}
}
