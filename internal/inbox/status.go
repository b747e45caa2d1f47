package inbox

import (
	"fmt"
	"strings"
)

// Status reports whether an assistant is blocked on the user or busy.
type Status int

const (
	// Waiting means the pane needs input from the user.
	Waiting Status = iota
	// Working means the pane is busy in the background.
	Working
)

// Char returns the single-character checkbox encoding used in the document.
func (s Status) Char() rune {
	if s == Working {
		return '/'
	}
	return ' '
}

// SectionName returns the human-readable section title.
func (s Status) SectionName() string {
	if s == Working {
		return "Background"
	}
	return "Waiting for Input"
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == Working {
		return "working"
	}
	return "waiting"
}

// MarshalText encodes the status as "waiting" or "working".
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the same spellings as ParseStatus.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// StatusFromChar decodes a checkbox character. ok is false for unknown characters.
func StatusFromChar(r rune) (status Status, ok bool) {
	switch r {
	case ' ':
		return Waiting, true
	case '/':
		return Working, true
	default:
		return Waiting, false
	}
}

// StatusFromSection maps a "## <name>" section title to a status.
// Both the long and short spellings are accepted.
func StatusFromSection(name string) (status Status, ok bool) {
	switch name {
	case "Waiting for Input", "Waiting":
		return Waiting, true
	case "Background", "Working":
		return Working, true
	default:
		return Waiting, false
	}
}

// ParseStatus parses user input such as "wait" or "working".
func ParseStatus(value string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "wait", "waiting":
		return Waiting, nil
	case "work", "working":
		return Working, nil
	default:
		return Waiting, fmt.Errorf("invalid status %q: use 'wait' or 'work'", value)
	}
}
