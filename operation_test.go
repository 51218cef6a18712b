package redline_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/redline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation_JSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes a type discriminator", func(t *testing.T) {
		t.Parallel()

		op := redline.Operation{
			ID:        "op-1",
			ElementID: "a",
			Timestamp: 1700000000000,
			Data:      redline.MoveData{FromPosition: 2, ToPosition: 0, Source: "cli"},
		}

		b, err := json.Marshal(op)
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"id": "op-1",
			"type": "move",
			"elementId": "a",
			"timestamp": 1700000000000,
			"data": {"fromPosition": 2, "toPosition": 0, "source": "cli"}
		}`, string(b))
	})

	t.Run("decodes the variant named by type", func(t *testing.T) {
		t.Parallel()

		var op redline.Operation
		err := json.Unmarshal([]byte(`{"id":"op-2","type":"edit","elementId":"a","timestamp":5,
			"data":{"oldContent":"x","newContent":"y","changes":[{"kind":"substitute","oldText":"x","newText":"y","oldStart":0,"oldEnd":1,"newStart":0,"newEnd":1}]}}`), &op)
		require.NoError(t, err)

		assert.Equal(t, redline.OpEdit, op.Type())
		data, ok := op.Data.(redline.EditData)
		require.True(t, ok)
		assert.Equal(t, "y", data.NewContent)
		require.Len(t, data.Changes, 1)
		assert.Equal(t, redline.ChangeSubstitute, data.Changes[0].Kind)
	})

	t.Run("rejects unknown types", func(t *testing.T) {
		t.Parallel()

		var op redline.Operation
		err := json.Unmarshal([]byte(`{"id":"op","type":"split","data":{}}`), &op)

		assert.ErrorContains(t, err, `unknown operation type "split"`)
	})

	t.Run("rejects missing data", func(t *testing.T) {
		t.Parallel()

		_, err := json.Marshal(redline.Operation{ID: "op"})

		assert.Error(t, err)
	})
}

func TestOperation_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   redline.Operation
		want string
	}{
		{redline.Operation{ElementID: "n", Data: redline.InsertData{Position: redline.Position{After: "a"}}}, "insert n after a"},
		{redline.Operation{ElementID: "n", Data: redline.InsertData{Position: redline.Position{Before: "a"}}}, "insert n before a"},
		{redline.Operation{ElementID: "n", Data: redline.InsertData{}}, "insert n at end"},
		{redline.Operation{ElementID: "a", Data: redline.DeleteData{}}, "delete a"},
		{redline.Operation{ElementID: "a", Data: redline.MoveData{FromPosition: 1, ToPosition: 3}}, "move a from 1 to 3"},
		{redline.Operation{ElementID: "a", Data: redline.EditData{Changes: []redline.Change{
			{Kind: redline.ChangeEqual}, {Kind: redline.ChangeInsert}, {Kind: redline.ChangeDelete},
		}}}, "edit a (2 changes)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.Summary())
	}
}

func TestOperation_Source(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ext", redline.Operation{Data: redline.EditData{Source: "ext"}}.Source())
	assert.Equal(t, "ext", redline.Operation{Data: redline.DeleteData{Source: "ext"}}.Source())
	assert.Empty(t, redline.Operation{}.Source())
	assert.Empty(t, redline.Operation{}.Type())
}
