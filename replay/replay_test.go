package replay_test

import (
	"testing"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elements(ids ...string) []redline.Element {
	out := make([]redline.Element, len(ids))
	for i, id := range ids {
		out[i] = redline.Element{ID: id, Content: id + " content", Metadata: redline.Metadata{Type: "para"}}
	}
	return out
}

func ids(state []redline.Element) []string {
	out := make([]string, len(state))
	for i, e := range state {
		out[i] = e.ID
	}
	return out
}

func insert(id string, pos redline.Position) redline.Operation {
	return redline.Operation{
		ID:        "op-" + id,
		ElementID: id,
		Data:      redline.InsertData{Content: id + " new", Metadata: redline.Metadata{Type: "para"}, Position: pos},
	}
}

func move(from, to int) redline.Operation {
	return redline.Operation{ID: "mv", Data: redline.MoveData{FromPosition: from, ToPosition: to}}
}

func TestReconstruct_Insert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pos      redline.Position
		expected []string
	}{
		{name: "after neighbor", pos: redline.Position{After: "A"}, expected: []string{"A", "N", "B"}},
		{name: "before neighbor", pos: redline.Position{Before: "A"}, expected: []string{"N", "A", "B"}},
		{name: "after last", pos: redline.Position{After: "B"}, expected: []string{"A", "B", "N"}},
		{name: "no position appends", pos: redline.Position{}, expected: []string{"A", "B", "N"}},
		{name: "unknown neighbor is dropped", pos: redline.Position{After: "missing"}, expected: []string{"A", "B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := replay.Reconstruct(elements("A", "B"), []redline.Operation{insert("N", tt.pos)})

			assert.Equal(t, tt.expected, ids(state))
		})
	}
}

func TestReconstruct_DeleteAndEdit(t *testing.T) {
	t.Parallel()

	newMeta := redline.Metadata{Type: "heading", Level: 2}
	ops := []redline.Operation{
		{ElementID: "A", Data: redline.EditData{OldContent: "A content", NewContent: "edited", NewMetadata: &newMeta}},
		{ElementID: "B", Data: redline.DeleteData{OriginalContent: "B content"}},
		{ElementID: "C", Data: redline.EditData{OldContent: "C content", NewContent: "content only"}},
	}

	state := replay.Reconstruct(elements("A", "B", "C"), ops)

	require.Equal(t, []string{"A", "C"}, ids(state))
	assert.Equal(t, "edited", state[0].Content)
	assert.Equal(t, newMeta, state[0].Metadata)
	assert.Equal(t, "content only", state[1].Content)
	assert.Equal(t, "para", state[1].Metadata.Type)
}

func TestReconstruct_Move(t *testing.T) {
	t.Parallel()

	t.Run("moves last to first", func(t *testing.T) {
		t.Parallel()

		state := replay.Reconstruct(elements("A", "B", "C"), []redline.Operation{move(2, 0)})

		assert.Equal(t, []string{"C", "A", "B"}, ids(state))
	})

	t.Run("moves first to last", func(t *testing.T) {
		t.Parallel()

		state := replay.Reconstruct(elements("A", "B", "C"), []redline.Operation{move(0, 2)})

		assert.Equal(t, []string{"B", "C", "A"}, ids(state))
	})

	t.Run("out of range source is a no-op", func(t *testing.T) {
		t.Parallel()

		state := replay.Reconstruct(elements("A", "B"), []redline.Operation{move(5, 0), move(-1, 0)})

		assert.Equal(t, []string{"A", "B"}, ids(state))
	})

	t.Run("target beyond end appends", func(t *testing.T) {
		t.Parallel()

		state := replay.Reconstruct(elements("A", "B", "C"), []redline.Operation{move(0, 10)})

		assert.Equal(t, []string{"B", "C", "A"}, ids(state))
	})

	t.Run("indices resolve against the replayed state", func(t *testing.T) {
		t.Parallel()

		// The move was recorded against [A, B, C]. Replayed after A was
		// deleted, index 2 no longer exists and the move does nothing.
		ops := []redline.Operation{
			{ElementID: "A", Data: redline.DeleteData{}},
			move(2, 0),
		}

		state := replay.Reconstruct(elements("A", "B", "C"), ops)

		assert.Equal(t, []string{"B", "C"}, ids(state))
	})
}

func TestReconstruct_DoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	original := elements("A", "B", "C")
	ops := []redline.Operation{
		{ElementID: "A", Data: redline.EditData{NewContent: "changed"}},
		{ElementID: "B", Data: redline.DeleteData{}},
		move(1, 0),
	}

	first := replay.Reconstruct(original, ops)
	second := replay.Reconstruct(original, ops)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"A", "B", "C"}, ids(original))
	assert.Equal(t, "A content", original[0].Content)
}

func TestReconstruct_Prefix(t *testing.T) {
	t.Parallel()

	ops := []redline.Operation{
		insert("N", redline.Position{}),
		{ElementID: "A", Data: redline.DeleteData{}},
	}

	assert.Equal(t, []string{"A"}, ids(replay.Reconstruct(elements("A"), ops[:0])))
	assert.Equal(t, []string{"A", "N"}, ids(replay.Reconstruct(elements("A"), ops[:1])))
	assert.Equal(t, []string{"N"}, ids(replay.Reconstruct(elements("A"), ops)))
}
