// Package replay reconstructs document state by replaying operations over
// an original snapshot.
package replay

import (
	"fmt"
	"slices"

	"github.com/fwojciec/redline"
)

// Reconstruct replays ops in order over a copy of original and returns the
// resulting element list. original is never modified.
func Reconstruct(original []redline.Element, ops []redline.Operation) []redline.Element {
	state := redline.CloneElements(original)
	if state == nil {
		state = []redline.Element{}
	}
	for _, op := range ops {
		state = Apply(state, op)
	}
	return state
}

// Apply returns the state after applying a single operation. The input
// slice may be reused; callers must not rely on its contents afterwards.
//
// Inserts anchored to an id that is not present are dropped, and moves
// whose source index is out of range leave the state unchanged.
func Apply(state []redline.Element, op redline.Operation) []redline.Element {
	switch d := op.Data.(type) {
	case redline.InsertData:
		return applyInsert(state, op.ElementID, d)
	case redline.DeleteData:
		return slices.DeleteFunc(state, func(e redline.Element) bool {
			return e.ID == op.ElementID
		})
	case redline.EditData:
		for i := range state {
			if state[i].ID != op.ElementID {
				continue
			}
			state[i].Content = d.NewContent
			if d.NewMetadata != nil {
				state[i].Metadata = d.NewMetadata.Clone()
			}
		}
		return state
	case redline.MoveData:
		return applyMove(state, d.FromPosition, d.ToPosition)
	default:
		panic(fmt.Sprintf("replay: unknown operation data %T", d))
	}
}

func applyInsert(state []redline.Element, id string, d redline.InsertData) []redline.Element {
	el := redline.Element{
		ID:       id,
		Content:  d.Content,
		Metadata: d.Metadata.Clone(),
	}

	switch {
	case d.Position.After != "":
		i := indexOf(state, d.Position.After)
		if i < 0 {
			return state
		}
		return slices.Insert(state, i+1, el)
	case d.Position.Before != "":
		i := indexOf(state, d.Position.Before)
		if i < 0 {
			return state
		}
		return slices.Insert(state, i, el)
	default:
		return append(state, el)
	}
}

func applyMove(state []redline.Element, from, to int) []redline.Element {
	if from < 0 || from >= len(state) {
		return state
	}
	el := state[from]
	state = slices.Delete(state, from, from+1)
	to = max(0, min(to, len(state)))
	return slices.Insert(state, to, el)
}

func indexOf(state []redline.Element, id string) int {
	return slices.IndexFunc(state, func(e redline.Element) bool {
		return e.ID == id
	})
}
