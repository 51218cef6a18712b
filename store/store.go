// Package store holds the immutable original snapshot of a document.
package store

import "github.com/fwojciec/redline"

// Store is the read-only original snapshot of a document's elements.
type Store struct {
	elements []redline.Element
	index    map[string]int
}

// Load validates element ids and returns a Store holding a copy of elements.
// Any repeated id fails the load with a *redline.DuplicateIDError listing
// every duplicated id with its occurrence count.
func Load(elements []redline.Element) (*Store, error) {
	counts := make(map[string]int, len(elements))
	var order []string
	for _, e := range elements {
		if counts[e.ID] == 0 {
			order = append(order, e.ID)
		}
		counts[e.ID]++
	}

	var dups []redline.DuplicateID
	for _, id := range order {
		if counts[id] > 1 {
			dups = append(dups, redline.DuplicateID{ID: id, Count: counts[id]})
		}
	}
	if len(dups) > 0 {
		return nil, &redline.DuplicateIDError{Duplicates: dups}
	}

	s := &Store{
		elements: redline.CloneElements(elements),
		index:    make(map[string]int, len(elements)),
	}
	for i, e := range s.elements {
		s.index[e.ID] = i
	}
	return s, nil
}

// ByID returns a copy of the original element with the given id.
func (s *Store) ByID(id string) (redline.Element, bool) {
	i, ok := s.index[id]
	if !ok {
		return redline.Element{}, false
	}
	return s.elements[i].Clone(), true
}

// Contains reports whether id was part of the original snapshot.
func (s *Store) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Snapshot returns a deep copy of the original elements in order.
func (s *Store) Snapshot() []redline.Element {
	out := redline.CloneElements(s.elements)
	if out == nil {
		out = []redline.Element{}
	}
	return out
}

// Len returns the number of original elements.
func (s *Store) Len() int {
	return len(s.elements)
}
