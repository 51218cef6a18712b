package mock

import "github.com/fwojciec/redline"

// Compile-time interface verification.
var (
	_ redline.Clipboard      = (*Clipboard)(nil)
	_ redline.Highlighter    = (*Highlighter)(nil)
	_ redline.MarkupRenderer = (*MarkupRenderer)(nil)
)

// Clipboard is a mock implementation of redline.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// Highlighter is a mock implementation of redline.Highlighter.
type Highlighter struct {
	HighlightFn func(markdown string) (string, error)
}

func (h *Highlighter) Highlight(markdown string) (string, error) {
	return h.HighlightFn(markdown)
}

// MarkupRenderer is a mock implementation of redline.MarkupRenderer.
type MarkupRenderer struct {
	RenderFn func(markdown string) string
}

func (r *MarkupRenderer) Render(markdown string) string {
	return r.RenderFn(markdown)
}
