package jsonl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/store"
)

// Session file names within a session directory.
const (
	ElementsFile   = "elements.jsonl"
	OperationsFile = "operations.jsonl"
	RedoFile       = "redo.jsonl"
)

// Compile-time interface verification.
var _ redline.SessionStore = (*Store)(nil)

// Store persists sessions as three JSONL files in a directory: the
// original elements, the applied operations and the redo stack.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the session in dir. It returns redline.ErrNoSession if dir has
// no elements file.
func (s *Store) Load(dir string) (*redline.Session, error) {
	elements, err := readLines[redline.Element](filepath.Join(dir, ElementsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, redline.ErrNoSession)
		}
		return nil, err
	}
	if _, err := store.Load(elements); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	applied, err := readOptionalLines[redline.Operation](filepath.Join(dir, OperationsFile))
	if err != nil {
		return nil, err
	}
	redoable, err := readOptionalLines[redline.Operation](filepath.Join(dir, RedoFile))
	if err != nil {
		return nil, err
	}

	return &redline.Session{
		Elements: elements,
		Applied:  applied,
		Redoable: redoable,
	}, nil
}

// Save writes the session to dir, replacing any previous session files.
// All three files are written to temporary files first, so an encoding or
// write failure leaves the previous session untouched. Each file is then
// renamed into place; the renames are atomic one file at a time, not as a
// set.
func (s *Store) Save(dir string, sess *redline.Session) error {
	files := []struct {
		name  string
		label string
		stage func(path string) (string, error)
	}{
		{RedoFile, "redo stack", func(p string) (string, error) { return stageLines(p, sess.Redoable) }},
		{OperationsFile, "operations", func(p string) (string, error) { return stageLines(p, sess.Applied) }},
		{ElementsFile, "elements", func(p string) (string, error) { return stageLines(p, sess.Elements) }},
	}

	staged := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}()
	for _, f := range files {
		tmp, err := f.stage(filepath.Join(dir, f.name))
		if err != nil {
			return fmt.Errorf("save %s: %w", f.label, err)
		}
		staged = append(staged, tmp)
	}

	for i, f := range files {
		if err := os.Rename(staged[i], filepath.Join(dir, f.name)); err != nil {
			return fmt.Errorf("save %s: %w", f.label, err)
		}
	}
	return nil
}
