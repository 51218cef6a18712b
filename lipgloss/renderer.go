package lipgloss

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/critic"
)

// Compile-time interface verification.
var _ redline.MarkupRenderer = (*Renderer)(nil)

// Arrow separates the two sides of a substitution.
const Arrow = " → "

// Renderer styles CriticMarkup for terminal display. Text outside markers
// is left unstyled.
type Renderer struct {
	inserted  lipgloss.Style
	deleted   lipgloss.Style
	highlight lipgloss.Style
	comment   lipgloss.Style
	arrow     lipgloss.Style
}

// NewRenderer creates a Renderer for theme. A nil renderer uses the
// default Lipgloss renderer.
func NewRenderer(theme redline.Theme, renderer *lipgloss.Renderer) *Renderer {
	styles := theme.Styles()
	return &Renderer{
		inserted:  StyleFromColorPair(styles.Inserted, renderer).Underline(true),
		deleted:   StyleFromColorPair(styles.Deleted, renderer).Strikethrough(true),
		highlight: StyleFromColorPair(styles.Highlight, renderer),
		comment:   StyleFromColorPair(styles.Comment, renderer).Italic(true),
		arrow:     StyleFromColorPair(styles.Arrow, renderer),
	}
}

// Render implements redline.MarkupRenderer.
func (r *Renderer) Render(markdown string) string {
	var b strings.Builder
	for _, s := range critic.Parse(markdown) {
		switch s.Kind {
		case critic.KindText:
			b.WriteString(s.Text)
		case critic.KindInsertion:
			b.WriteString(renderLines(r.inserted, s.Text))
		case critic.KindDeletion:
			b.WriteString(renderLines(r.deleted, s.Text))
		case critic.KindSubstitution:
			b.WriteString(renderLines(r.deleted, s.Old))
			b.WriteString(r.arrow.Render(Arrow))
			b.WriteString(renderLines(r.inserted, s.New))
		case critic.KindHighlight:
			b.WriteString(renderLines(r.highlight, s.Text))
		case critic.KindComment:
			b.WriteString(renderLines(r.comment, s.Text))
		}
	}
	return b.String()
}

// renderLines styles each line on its own so multi-line spans are not
// padded into a block.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// StyleFromColorPair builds a style with the pair's colors.
func StyleFromColorPair(cp redline.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}
