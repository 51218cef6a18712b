package tracker_test

import (
	"testing"

	"github.com/fwojciec/redline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(content, typ string) redline.Segment {
	return redline.Segment{Content: content, Metadata: redline.Metadata{Type: typ}}
}

func TestTracker_ReplaceWithSegments(t *testing.T) {
	t.Parallel()

	t.Run("split then merge back", func(t *testing.T) {
		t.Parallel()
		tr := newTracker(t, []redline.Element{paragraph("P", "para and list"), paragraph("Q", "next")})

		res, err := tr.ReplaceWithSegments("P", []redline.Segment{
			segment("para", "paragraph"),
			segment("- list", "list"),
		}, "editor")
		require.NoError(t, err)
		assert.Len(t, res.ElementIDs, 2)
		assert.Empty(t, res.RemovedIDs)
		assert.Equal(t, "P", res.ElementIDs[0])
		assert.Equal(t, []string{"P", res.ElementIDs[1], "Q"}, ids(tr.CurrentState()))

		inserted := tr.Operations()[1].Data.(redline.InsertData)
		assert.True(t, inserted.Generated)
		assert.Equal(t, "P", inserted.ParentID)
		assert.Equal(t, "editor", inserted.Source)

		res2, err := tr.ReplaceWithSegments("P", []redline.Segment{segment("para", "paragraph")}, "editor")
		require.NoError(t, err)
		assert.Equal(t, []string{"P"}, res2.ElementIDs)
		assert.Equal(t, []string{res.ElementIDs[1]}, res2.RemovedIDs)
		assert.Equal(t, []string{"P", "Q"}, ids(tr.CurrentState()))
	})

	t.Run("reuses generated children", func(t *testing.T) {
		t.Parallel()
		tr := newTracker(t, []redline.Element{paragraph("P", "one two three")})

		first, err := tr.ReplaceWithSegments("P", []redline.Segment{
			segment("one", "paragraph"),
			segment("two", "paragraph"),
		}, "")
		require.NoError(t, err)

		second, err := tr.ReplaceWithSegments("P", []redline.Segment{
			segment("one", "paragraph"),
			segment("two!", "paragraph"),
			segment("three", "paragraph"),
		}, "")
		require.NoError(t, err)

		require.Len(t, second.ElementIDs, 3)
		assert.Equal(t, first.ElementIDs[1], second.ElementIDs[1], "existing child reused")
		assert.Empty(t, second.RemovedIDs)

		state := tr.CurrentState()
		assert.Equal(t, second.ElementIDs, ids(state))
		assert.Equal(t, "two!", state[1].Content)
		assert.Equal(t, "three", state[2].Content)
	})

	t.Run("deleted children are not reused", func(t *testing.T) {
		t.Parallel()
		tr := newTracker(t, []redline.Element{paragraph("P", "a b")})

		first, err := tr.ReplaceWithSegments("P", []redline.Segment{segment("a", "paragraph"), segment("b", "paragraph")}, "")
		require.NoError(t, err)
		require.NoError(t, tr.Delete(first.ElementIDs[1], ""))

		second, err := tr.ReplaceWithSegments("P", []redline.Segment{segment("a", "paragraph"), segment("c", "paragraph")}, "")
		require.NoError(t, err)

		assert.NotEqual(t, first.ElementIDs[1], second.ElementIDs[1])
		assert.Empty(t, second.RemovedIDs)
	})

	t.Run("first segment keeps metadata when type is empty", func(t *testing.T) {
		t.Parallel()
		tr := newTracker(t, []redline.Element{paragraph("P", "old")})

		_, err := tr.ReplaceWithSegments("P", []redline.Segment{{Content: "new"}}, "")
		require.NoError(t, err)

		e, ok := tr.ElementByID("P")
		require.True(t, ok)
		assert.Equal(t, "new", e.Content)
		assert.Equal(t, "paragraph", e.Metadata.Type)
	})

	t.Run("unchanged single segment records nothing", func(t *testing.T) {
		t.Parallel()
		tr := newTracker(t, []redline.Element{paragraph("P", "same")})

		res, err := tr.ReplaceWithSegments("P", []redline.Segment{segment("same", "paragraph")}, "")
		require.NoError(t, err)

		assert.Equal(t, []string{"P"}, res.ElementIDs)
		assert.Empty(t, tr.Operations())
	})

	t.Run("unknown element", func(t *testing.T) {
		t.Parallel()
		tr := newTracker(t, nil)

		_, err := tr.ReplaceWithSegments("missing", []redline.Segment{segment("x", "paragraph")}, "")

		var nf *redline.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("undo restores single element", func(t *testing.T) {
		t.Parallel()
		tr := newTracker(t, []redline.Element{paragraph("P", "a b")})

		_, err := tr.ReplaceWithSegments("P", []redline.Segment{segment("a", "paragraph"), segment("b", "paragraph")}, "")
		require.NoError(t, err)
		for tr.CanUndo() {
			tr.Undo()
		}

		assert.Equal(t, []redline.Element{paragraph("P", "a b")}, tr.CurrentState())
	})
}
