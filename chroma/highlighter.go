// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"errors"
	"fmt"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.Highlighter = (*Highlighter)(nil)

// Default names used when no options are given.
const (
	DefaultStyle     = "monokai"
	DefaultFormatter = "terminal256"
)

// Highlighter colors markdown for terminal output.
type Highlighter struct {
	lexer     chromalib.Lexer
	formatter chromalib.Formatter
	style     *chromalib.Style
}

// Option configures a Highlighter.
type Option func(*options)

type options struct {
	style     string
	formatter string
}

// WithStyle selects a named chroma style. Unknown names fall back to the
// chroma default style.
func WithStyle(name string) Option {
	return func(o *options) {
		o.style = name
	}
}

// WithFormatter selects a named chroma formatter, e.g. "terminal16m".
func WithFormatter(name string) Option {
	return func(o *options) {
		o.formatter = name
	}
}

// NewHighlighter creates a markdown highlighter.
func NewHighlighter(opts ...Option) (*Highlighter, error) {
	o := options{style: DefaultStyle, formatter: DefaultFormatter}
	for _, opt := range opts {
		opt(&o)
	}

	lexer := lexers.Get("markdown")
	if lexer == nil {
		return nil, errors.New("chroma: markdown lexer not available")
	}
	formatter, ok := formatters.Registry[o.formatter]
	if !ok {
		return nil, fmt.Errorf("chroma: unknown formatter %q", o.formatter)
	}

	return &Highlighter{
		// Coalesce for better performance with consecutive tokens of the same type
		lexer:     chromalib.Coalesce(lexer),
		formatter: formatter,
		style:     styles.Get(o.style),
	}, nil
}

// Highlight returns markdown wrapped in terminal color escapes.
func (h *Highlighter) Highlight(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}

	iterator, err := h.lexer.Tokenise(nil, markdown)
	if err != nil {
		return "", fmt.Errorf("tokenise markdown: %w", err)
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", fmt.Errorf("format markdown: %w", err)
	}
	return b.String(), nil
}
