// Package redline provides domain types for tracking reviewer changes to a
// document made of ordered, independently editable elements.
package redline

import (
	"maps"
	"slices"
)

// Element is a unit of reviewable content.
type Element struct {
	ID             string          `json:"id"`
	Content        string          `json:"content"` // Markdown text
	Metadata       Metadata        `json:"metadata"`
	SourcePosition *SourcePosition `json:"sourcePosition,omitempty"` // Provenance only
	SourceFile     string          `json:"sourceFile,omitempty"`     // Provenance only
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	c := e
	c.Metadata = e.Metadata.Clone()
	if e.SourcePosition != nil {
		pos := *e.SourcePosition
		c.SourcePosition = &pos
	}
	return c
}

// SourcePosition records where an element came from in the rendered source.
type SourcePosition struct {
	Line   int `json:"line"`
	Column int `json:"column,omitempty"`
}

// Metadata describes the block an element renders as.
type Metadata struct {
	Type       string            `json:"type"`
	Level      int               `json:"level,omitempty"` // Heading level, 0 if not applicable
	Attributes map[string]string `json:"attributes,omitempty"`
	Classes    []string          `json:"classes,omitempty"`
}

// Equal reports whether two metadata values are structurally equal.
// Nil and empty collections compare equal.
func (m Metadata) Equal(other Metadata) bool {
	if m.Type != other.Type || m.Level != other.Level {
		return false
	}
	return maps.Equal(m.Attributes, other.Attributes) && slices.Equal(m.Classes, other.Classes)
}

// Clone returns a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	c := m
	if m.Attributes != nil {
		c.Attributes = maps.Clone(m.Attributes)
	}
	if m.Classes != nil {
		c.Classes = slices.Clone(m.Classes)
	}
	return c
}

// Position anchors an inserted element next to an existing one by id.
// The zero Position means "append at the end".
type Position struct {
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
}

// IsZero reports whether the position carries no anchor.
func (p Position) IsZero() bool {
	return p.After == "" && p.Before == ""
}

// Segment is one logical block produced when an edited element is re-parsed
// into several elements.
type Segment struct {
	Content  string
	Metadata Metadata
}

// SegmentResult reports how a segment replacement reshaped the document.
type SegmentResult struct {
	ElementIDs []string // Ids now holding the segments, in order
	RemovedIDs []string // Previously generated ids that were deleted
}

// CloneElements returns a deep copy of elements.
func CloneElements(elements []Element) []Element {
	if elements == nil {
		return nil
	}
	out := make([]Element, len(elements))
	for i, e := range elements {
		out[i] = e.Clone()
	}
	return out
}

// MarkupRenderer turns tracked-change markdown into display text.
type MarkupRenderer interface {
	Render(markdown string) string
}

// Highlighter applies syntax highlighting to markdown for terminal output.
type Highlighter interface {
	Highlight(markdown string) (string, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}
