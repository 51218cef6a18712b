package redline_test

import (
	"testing"

	"github.com/fwojciec/redline"
	"github.com/stretchr/testify/assert"
)

func TestMetadata_Equal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b redline.Metadata
		want bool
	}{
		{"identical", redline.Metadata{Type: "heading", Level: 2}, redline.Metadata{Type: "heading", Level: 2}, true},
		{"different level", redline.Metadata{Type: "heading", Level: 1}, redline.Metadata{Type: "heading", Level: 2}, false},
		{"nil and empty attributes", redline.Metadata{Type: "p"}, redline.Metadata{Type: "p", Attributes: map[string]string{}}, true},
		{"nil and empty classes", redline.Metadata{Type: "p", Classes: []string{}}, redline.Metadata{Type: "p"}, true},
		{"attribute values differ", redline.Metadata{Attributes: map[string]string{"id": "a"}}, redline.Metadata{Attributes: map[string]string{"id": "b"}}, false},
		{"class order matters", redline.Metadata{Classes: []string{"a", "b"}}, redline.Metadata{Classes: []string{"b", "a"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestCloneElements(t *testing.T) {
	t.Parallel()

	original := []redline.Element{{
		ID:             "a",
		Content:        "text",
		Metadata:       redline.Metadata{Type: "p", Attributes: map[string]string{"k": "v"}, Classes: []string{"x"}},
		SourcePosition: &redline.SourcePosition{Line: 3},
	}}

	clone := redline.CloneElements(original)
	clone[0].Metadata.Attributes["k"] = "changed"
	clone[0].Metadata.Classes[0] = "changed"
	clone[0].SourcePosition.Line = 99

	assert.Equal(t, "v", original[0].Metadata.Attributes["k"])
	assert.Equal(t, "x", original[0].Metadata.Classes[0])
	assert.Equal(t, 3, original[0].SourcePosition.Line)
	assert.Nil(t, redline.CloneElements(nil))
}

func TestPosition_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, redline.Position{}.IsZero())
	assert.False(t, redline.Position{After: "a"}.IsZero())
	assert.False(t, redline.Position{Before: "a"}.IsZero())
}

func TestErrors(t *testing.T) {
	t.Parallel()

	dup := &redline.DuplicateIDError{Duplicates: []redline.DuplicateID{{ID: "a", Count: 2}, {ID: "b", Count: 3}}}
	assert.Equal(t, `duplicate element ids: "a" (2 occurrences), "b" (3 occurrences)`, dup.Error())
	assert.Equal(t, `element "x" not found`, (&redline.NotFoundError{ID: "x"}).Error())
	assert.Equal(t, `extension "m" is already registered`, (&redline.DuplicateExtensionError{ID: "m"}).Error())
}
