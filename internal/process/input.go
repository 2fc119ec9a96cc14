// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package process

import (
	"fmt"
	"strings"

	"github.com/pdiddy/novel-search/pkg/types"
)

// Answer is one parsed triage response.
type Answer struct {
	POV  types.POV
	Read bool
	Quit bool
}

// ParseAnswer interprets a triage response. Valid answers combine a POV
// digit (1, 2 or 3) with an optional "r" marker in either order, so
// "1", "2r" and "r3" all work. "quit" and "exit" end the session.
func ParseAnswer(input string) (Answer, error) {
	s := strings.ToLower(strings.TrimSpace(input))

	switch s {
	case "quit", "exit":
		return Answer{Quit: true}, nil
	}

	read := strings.Contains(s, "r")
	s = strings.ReplaceAll(s, "r", "")

	var pov types.POV
	switch s {
	case "1":
		pov = types.POVFirst
	case "2":
		pov = types.POVSecond
	case "3":
		pov = types.POVThird
	default:
		return Answer{}, fmt.Errorf("invalid answer %q: want a POV digit (1/2/3), optional \"r\" for read, or quit", input)
	}

	return Answer{POV: pov, Read: read}, nil
}
