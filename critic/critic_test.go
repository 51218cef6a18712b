package critic_test

import (
	"testing"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/critic"
	"github.com/fwojciec/redline/worddiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseline string
		changes  []redline.Change
		expected string
	}{
		{
			name:     "no changes returns baseline",
			baseline: "unchanged text",
			expected: "unchanged text",
		},
		{
			name:     "insertion",
			baseline: "hello world",
			changes: []redline.Change{
				{Kind: redline.ChangeEqual, OldText: "hello ", OldEnd: 6, NewEnd: 6},
				{Kind: redline.ChangeInsert, NewText: "big ", OldStart: 6, OldEnd: 6, NewStart: 6, NewEnd: 10},
				{Kind: redline.ChangeEqual, OldText: "world", OldStart: 6, OldEnd: 11, NewStart: 10, NewEnd: 15},
			},
			expected: "hello {++big ++}world",
		},
		{
			name:     "deletion",
			baseline: "hello big world",
			changes: []redline.Change{
				{Kind: redline.ChangeEqual, OldText: "hello ", OldEnd: 6, NewEnd: 6},
				{Kind: redline.ChangeDelete, OldText: "big ", OldStart: 6, OldEnd: 10, NewStart: 6, NewEnd: 6},
				{Kind: redline.ChangeEqual, OldText: "world", OldStart: 10, OldEnd: 15, NewStart: 6, NewEnd: 11},
			},
			expected: "hello {--big --}world",
		},
		{
			name:     "substitution",
			baseline: "quick",
			changes: []redline.Change{
				{Kind: redline.ChangeSubstitute, OldText: "quick", NewText: "slow", OldEnd: 5, NewEnd: 4},
			},
			expected: "{~~quick~>slow~~}",
		},
		{
			name:     "substitution with separator in old text",
			baseline: "a~>b",
			changes: []redline.Change{
				{Kind: redline.ChangeSubstitute, OldText: "a~>b", NewText: "x", OldEnd: 4, NewEnd: 1},
			},
			expected: "{--a~>b--}{++x++}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, critic.Render(tt.baseline, tt.changes))
		})
	}
}

func TestAnnotations(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{==key point==}", critic.Highlight("key point"))
	assert.Equal(t, "{>>check this<<}", critic.Comment("check this"))
	assert.Equal(t, "{++new++}", critic.Insertion("new"))
	assert.Equal(t, "{--old--}", critic.Deletion("old"))
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []critic.Span
	}{
		{
			name:     "plain text",
			input:    "no markup {here}",
			expected: []critic.Span{{Kind: critic.KindText, Text: "no markup {here}"}},
		},
		{
			name:  "all five markers",
			input: "a{++b++}c{--d--}e{~~f~>g~~}h{==i==}j{>>k<<}",
			expected: []critic.Span{
				{Kind: critic.KindText, Text: "a"},
				{Kind: critic.KindInsertion, Text: "b"},
				{Kind: critic.KindText, Text: "c"},
				{Kind: critic.KindDeletion, Text: "d"},
				{Kind: critic.KindText, Text: "e"},
				{Kind: critic.KindSubstitution, Old: "f", New: "g"},
				{Kind: critic.KindText, Text: "h"},
				{Kind: critic.KindHighlight, Text: "i"},
				{Kind: critic.KindText, Text: "j"},
				{Kind: critic.KindComment, Text: "k"},
			},
		},
		{
			name:     "unclosed marker is literal",
			input:    "x {++never closed",
			expected: []critic.Span{{Kind: critic.KindText, Text: "x {++never closed"}},
		},
		{
			name:     "substitution without separator is literal",
			input:    "{~~missing~~}",
			expected: []critic.Span{{Kind: critic.KindText, Text: "{~~missing~~}"}},
		},
		{
			name:  "insertion ending in plus signs",
			input: "{++C++++}",
			expected: []critic.Span{
				{Kind: critic.KindInsertion, Text: "C++"},
			},
		},
		{
			name:  "marker spanning lines",
			input: "{++line one\nline two++}",
			expected: []critic.Span{
				{Kind: critic.KindInsertion, Text: "line one\nline two"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, critic.Parse(tt.input))
		})
	}
}

func TestHasMarkup(t *testing.T) {
	t.Parallel()

	assert.True(t, critic.HasMarkup("a {==b==}"))
	assert.False(t, critic.HasMarkup("a {== b"))
	assert.False(t, critic.HasMarkup(""))
}

func TestStrip(t *testing.T) {
	t.Parallel()

	const input = "Keep {++added++}{--removed--} {~~old~>new~~} {==marked==}{>>note<<}."

	t.Run("accept", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Keep added new marked.", critic.Strip(input, critic.Accept, critic.Options{}))
	})

	t.Run("reject", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Keep removed old marked.", critic.Strip(input, critic.Reject, critic.Options{}))
	})

	t.Run("comments as html", func(t *testing.T) {
		t.Parallel()
		got := critic.Strip(input, critic.Accept, critic.Options{PreserveCommentsAsHTML: true})
		assert.Equal(t, "Keep added new marked<!-- note -->.", got)
	})

	t.Run("comment text is escaped", func(t *testing.T) {
		t.Parallel()
		got := critic.Strip("{>>a & b<<}", critic.Accept, critic.Options{PreserveCommentsAsHTML: true})
		assert.Equal(t, "<!-- a &amp; b -->", got)
	})

	t.Run("nested in list and blockquote", func(t *testing.T) {
		t.Parallel()
		md := "- item {++one++}\n  - nested {~~two~>2~~}\n\n> quoted {--gone--}text"
		assert.Equal(t, "- item one\n  - nested 2\n\n> quoted text", critic.Strip(md, critic.Accept, critic.Options{}))
		assert.Equal(t, "- item \n  - nested two\n\n> quoted gonetext", critic.Strip(md, critic.Reject, critic.Options{}))
	})

	t.Run("multiline insertion across blocks", func(t *testing.T) {
		t.Parallel()
		md := "para{++\n\n- new item++}"
		assert.Equal(t, "para\n\n- new item", critic.Strip(md, critic.Accept, critic.Options{}))
		assert.Equal(t, "para", critic.Strip(md, critic.Reject, critic.Options{}))
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	differ := worddiff.NewDiffer()
	pairs := []struct{ old, new string }{
		{"The quick fox", "The slow fox"},
		{"", "brand new paragraph"},
		{"removed entirely", ""},
		{"unchanged", "unchanged"},
		{"# Title\n\nSome text here.", "# New Title\n\nSome more text here!"},
		{"- one\n- two\n- three", "- one\n- 2\n- three\n- four"},
		{"> quote with emoji 👋", "> quote with emoji 🌍 and café"},
		{"alpha beta gamma", "one two three four"},
		{"a~>b c", "x c"},
		{"a c", "x~>y c"},
	}

	for _, p := range pairs {
		markup := critic.Render(p.old, differ.Compute(p.old, p.new))

		require.Equal(t, p.new, critic.Strip(markup, critic.Accept, critic.Options{}), "accept %q", markup)
		require.Equal(t, p.old, critic.Strip(markup, critic.Reject, critic.Options{}), "reject %q", markup)
	}
}

func TestRemoveNestedReviewWrappers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no wrappers",
			input:    "plain\n\ntext",
			expected: "plain\n\ntext",
		},
		{
			name:     "single wrapper",
			input:    "before\n::: {.review-editable}\nbody {++x++}\n:::\nafter",
			expected: "before\nbody {++x++}\nafter",
		},
		{
			name:     "nested wrappers",
			input:    "::: {.review-section}\n  ::: {.review-editable data-id=\"p1\"}\n      deep\n      deeper\n  :::\n:::",
			expected: "deep\ndeeper",
		},
		{
			name:     "wrapper inside list item keeps list indentation",
			input:    "- item\n  ::: {.review-editable}\n      child\n  :::",
			expected: "- item\n  child",
		},
		{
			name:     "other fenced divs are kept",
			input:    "::: {.note}\n::: {.review-editable}\ninner\n:::\n:::",
			expected: "::: {.note}\ninner\n:::",
		},
		{
			name:     "blank lines inside body",
			input:    "::: {.review-editable}\n    a\n\n      b\n:::",
			expected: "a\n\n  b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := critic.RemoveNestedReviewWrappers(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, critic.RemoveNestedReviewWrappers(got))
		})
	}
}
