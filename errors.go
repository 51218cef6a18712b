package redline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrInvalidExtension is returned when an extension reports an empty id.
	ErrInvalidExtension = errors.New("extension id must not be empty")
	// ErrNoSession is returned when a session directory holds no session.
	ErrNoSession = errors.New("no session found")
)

// DuplicateID names an element id that occurs more than once.
type DuplicateID struct {
	ID    string
	Count int
}

// DuplicateIDError is returned when a document snapshot repeats element ids.
// Duplicates are listed in order of first occurrence.
type DuplicateIDError struct {
	Duplicates []DuplicateID
}

// Error implements the error interface.
func (e *DuplicateIDError) Error() string {
	parts := make([]string, len(e.Duplicates))
	for i, d := range e.Duplicates {
		parts[i] = fmt.Sprintf("%q (%d occurrences)", d.ID, d.Count)
	}
	return "duplicate element ids: " + strings.Join(parts, ", ")
}

// NotFoundError is returned when an element id does not resolve.
type NotFoundError struct {
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("element %q not found", e.ID)
}

// DuplicateExtensionError is returned when an extension id is already registered.
type DuplicateExtensionError struct {
	ID string
}

// Error implements the error interface.
func (e *DuplicateExtensionError) Error() string {
	return fmt.Sprintf("extension %q is already registered", e.ID)
}
