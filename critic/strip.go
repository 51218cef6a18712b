package critic

import (
	"strings"

	"golang.org/x/net/html"
)

// Mode selects how tracked changes are resolved.
type Mode int

// Resolution modes.
const (
	// Accept keeps insertions and the new side of substitutions.
	Accept Mode = iota
	// Reject keeps deletions and the old side of substitutions.
	Reject
)

// Options tunes Strip.
type Options struct {
	// PreserveCommentsAsHTML renders {>>comments<<} as HTML comments
	// instead of dropping them.
	PreserveCommentsAsHTML bool
}

// Strip resolves every marker in markdown. Highlights are unwrapped in both
// modes. Comments are dropped unless opts asks to keep them as HTML.
func Strip(markdown string, mode Mode, opts Options) string {
	spans := Parse(markdown)

	var b strings.Builder
	b.Grow(len(markdown))
	for _, s := range spans {
		switch s.Kind {
		case KindText, KindHighlight:
			b.WriteString(s.Text)
		case KindInsertion:
			if mode == Accept {
				b.WriteString(s.Text)
			}
		case KindDeletion:
			if mode == Reject {
				b.WriteString(s.Text)
			}
		case KindSubstitution:
			if mode == Accept {
				b.WriteString(s.New)
			} else {
				b.WriteString(s.Old)
			}
		case KindComment:
			if opts.PreserveCommentsAsHTML {
				b.WriteString(htmlComment(s.Text))
			}
		}
	}
	return b.String()
}

// htmlComment renders text as an HTML comment node.
func htmlComment(text string) string {
	var b strings.Builder
	node := &html.Node{Type: html.CommentNode, Data: " " + strings.TrimSpace(text) + " "}
	if err := html.Render(&b, node); err != nil {
		return ""
	}
	return b.String()
}
