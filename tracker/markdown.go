package tracker

import (
	"strings"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/critic"
)

// TrackedContent returns the current content of an element annotated with
// CriticMarkup against its baseline.
func (t *Tracker) TrackedContent(id string) (string, error) {
	e, ok := t.ElementByID(id)
	if !ok {
		return "", &redline.NotFoundError{ID: id}
	}
	return t.tracked(e), nil
}

func (t *Tracker) tracked(e redline.Element) string {
	baseline := t.Baseline(e.ID)
	return critic.Render(baseline, t.differ.Compute(baseline, e.Content))
}

// Markdown joins the current elements into one document.
func (t *Tracker) Markdown() string {
	return JoinMarkdown(t.current())
}

// MarkdownSnapshot joins the elements as they were after n operations.
func (t *Tracker) MarkdownSnapshot(n int) string {
	return JoinMarkdown(t.StateAfter(n))
}

// CleanMarkdown returns the current document with every tracked change
// accepted and comments kept as HTML comments.
func (t *Tracker) CleanMarkdown() string {
	return Clean(t.Markdown())
}

// CleanMarkdownSnapshot is CleanMarkdown for the state after n operations.
func (t *Tracker) CleanMarkdownSnapshot(n int) string {
	return Clean(t.MarkdownSnapshot(n))
}

// TrackedMarkdown renders every current element through its tracked view.
func (t *Tracker) TrackedMarkdown() string {
	state := t.current()
	parts := make([]string, len(state))
	for i, e := range state {
		parts[i] = strings.TrimRight(t.tracked(e), " \t\r\n")
	}
	return strings.Join(parts, "\n\n")
}

// JoinMarkdown joins element contents with a blank line, trimming trailing
// whitespace from each.
func JoinMarkdown(elements []redline.Element) string {
	parts := make([]string, len(elements))
	for i, e := range elements {
		parts[i] = strings.TrimRight(e.Content, " \t\r\n")
	}
	return strings.Join(parts, "\n\n")
}

// Clean removes review wrappers from markdown and accepts every tracked
// change, keeping comments as HTML comments.
func Clean(markdown string) string {
	return critic.Strip(critic.RemoveNestedReviewWrappers(markdown), critic.Accept, critic.Options{
		PreserveCommentsAsHTML: true,
	})
}
