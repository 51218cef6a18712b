package redline

import (
	"fmt"
	"strings"
)

// ChangeKind represents the type of a diff span.
type ChangeKind int

// Change kinds.
const (
	ChangeEqual ChangeKind = iota
	ChangeInsert
	ChangeDelete
	ChangeSubstitute
)

// String returns the lowercase name of the kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeEqual:
		return "equal"
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeSubstitute:
		return "substitute"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ChangeKind) MarshalText() ([]byte, error) {
	if k < ChangeEqual || k > ChangeSubstitute {
		return nil, fmt.Errorf("invalid change kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ChangeKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "equal":
		*k = ChangeEqual
	case "insert":
		*k = ChangeInsert
	case "delete":
		*k = ChangeDelete
	case "substitute":
		*k = ChangeSubstitute
	default:
		return fmt.Errorf("invalid change kind %q", b)
	}
	return nil
}

// Change is one span of an edit script between an old and a new string.
// Offsets are byte offsets; OldText is oldText[OldStart:OldEnd] and NewText
// is newText[NewStart:NewEnd]. Equal spans carry their text in OldText only.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	OldText  string     `json:"oldText,omitempty"`
	NewText  string     `json:"newText,omitempty"`
	OldStart int        `json:"oldStart"`
	OldEnd   int        `json:"oldEnd"`
	NewStart int        `json:"newStart"`
	NewEnd   int        `json:"newEnd"`
}

// Differ computes an ordered edit script between two strings.
// Compute(x, x) must return no changes.
type Differ interface {
	Compute(oldText, newText string) []Change
}

// ApplyChanges rebuilds the new text from oldText and an edit script,
// verifying that every span matches oldText.
func ApplyChanges(oldText string, changes []Change) (string, error) {
	if len(changes) == 0 {
		return oldText, nil
	}
	var sb strings.Builder
	pos := 0
	for i, c := range changes {
		if c.OldStart != pos || c.OldEnd < c.OldStart || c.OldEnd > len(oldText) {
			return "", fmt.Errorf("change %d: old span [%d,%d) does not continue at %d", i, c.OldStart, c.OldEnd, pos)
		}
		if oldText[c.OldStart:c.OldEnd] != c.OldText {
			return "", fmt.Errorf("change %d: old text mismatch", i)
		}
		pos = c.OldEnd
		switch c.Kind {
		case ChangeEqual:
			sb.WriteString(c.OldText)
		case ChangeInsert, ChangeSubstitute:
			sb.WriteString(c.NewText)
		case ChangeDelete:
		}
	}
	if pos != len(oldText) {
		return "", fmt.Errorf("changes end at %d, old text has %d bytes", pos, len(oldText))
	}
	return sb.String(), nil
}

// RevertChanges rebuilds the old text from newText and an edit script,
// verifying that every span matches newText.
func RevertChanges(newText string, changes []Change) (string, error) {
	if len(changes) == 0 {
		return newText, nil
	}
	var sb strings.Builder
	pos := 0
	for i, c := range changes {
		if c.NewStart != pos || c.NewEnd < c.NewStart || c.NewEnd > len(newText) {
			return "", fmt.Errorf("change %d: new span [%d,%d) does not continue at %d", i, c.NewStart, c.NewEnd, pos)
		}
		want := c.NewText
		if c.Kind == ChangeEqual {
			want = c.OldText
		}
		if newText[c.NewStart:c.NewEnd] != want {
			return "", fmt.Errorf("change %d: new text mismatch", i)
		}
		pos = c.NewEnd
		switch c.Kind {
		case ChangeEqual, ChangeDelete, ChangeSubstitute:
			sb.WriteString(c.OldText)
		case ChangeInsert:
		}
	}
	if pos != len(newText) {
		return "", fmt.Errorf("changes end at %d, new text has %d bytes", pos, len(newText))
	}
	return sb.String(), nil
}
