// Package bubbletea provides a terminal UI for browsing the history of a
// tracked document using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/history"
)

// HistoryModel shows one history frame at a time and steps through the
// operation log.
type HistoryModel struct {
	frames   []history.Frame
	step     int
	markup   redline.MarkupRenderer
	keymap   KeyMap
	styles   redline.Styles
	renderer *lipgloss.Renderer
	viewport viewport.Model
	ready    bool
}

// HistoryModelOption configures a HistoryModel.
type HistoryModelOption func(*historyModelConfig)

type historyModelConfig struct {
	renderer *lipgloss.Renderer
	theme    redline.Theme
	markup   redline.MarkupRenderer
	step     int
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) HistoryModelOption {
	return func(cfg *historyModelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme used for the header.
func WithTheme(t redline.Theme) HistoryModelOption {
	return func(cfg *historyModelConfig) {
		cfg.theme = t
	}
}

// WithMarkupRenderer styles frame markdown before display. Without one the
// raw tracked markdown is shown.
func WithMarkupRenderer(r redline.MarkupRenderer) HistoryModelOption {
	return func(cfg *historyModelConfig) {
		cfg.markup = r
	}
}

// WithStartStep opens the browser at step instead of the last one.
func WithStartStep(step int) HistoryModelOption {
	return func(cfg *historyModelConfig) {
		cfg.step = step
	}
}

// NewHistoryModel creates a model over frames, starting at the last step.
func NewHistoryModel(frames []history.Frame, opts ...HistoryModelOption) HistoryModel {
	cfg := &historyModelConfig{step: -1}
	for _, opt := range opts {
		opt(cfg)
	}

	var styles redline.Styles
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
	}

	m := HistoryModel{
		frames:   frames,
		markup:   cfg.markup,
		keymap:   DefaultKeyMap(),
		styles:   styles,
		renderer: cfg.renderer,
	}
	m.step = m.clamp(cfg.step)
	if cfg.step < 0 {
		m.step = m.lastStep()
	}
	return m
}

// Step returns the step currently shown.
func (m HistoryModel) Step() int {
	return m.step
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.PrevStep):
			return m.gotoStep(m.step - 1), nil
		case key.Matches(msg, m.keymap.NextStep):
			return m.gotoStep(m.step + 1), nil
		case key.Matches(msg, m.keymap.FirstStep):
			return m.gotoStep(0), nil
		case key.Matches(msg, m.keymap.LastStep):
			return m.gotoStep(m.lastStep()), nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		headerHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.viewport.SetContent(m.renderContent())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.viewport.View())
}

func (m HistoryModel) gotoStep(step int) HistoryModel {
	step = m.clamp(step)
	if step == m.step {
		return m
	}
	m.step = step
	if m.ready {
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
	}
	return m
}

func (m HistoryModel) lastStep() int {
	return max(len(m.frames)-1, 0)
}

func (m HistoryModel) clamp(step int) int {
	return min(max(step, 0), m.lastStep())
}

func (m HistoryModel) renderContent() string {
	if len(m.frames) == 0 {
		return ""
	}
	content := ExpandTabs(m.frames[m.step].Markdown)
	if m.markup != nil {
		content = m.markup.Render(content)
	}
	return content
}

// headerView renders the step counter and the operation that produced the
// current step.
func (m HistoryModel) headerView() string {
	summary := "original"
	if len(m.frames) > 0 {
		if op := m.frames[m.step].Operation; op != nil {
			summary = op.Summary()
		}
	}
	text := fmt.Sprintf(" step %d/%d  %s ", m.step, m.lastStep(), summary)
	style := m.newStyle().Bold(true)
	if fg := m.styles.Header.Foreground; fg != "" {
		style = style.Foreground(lipgloss.Color(fg))
	}
	if bg := m.styles.Header.Background; bg != "" {
		style = style.Background(lipgloss.Color(bg))
	}
	return style.Render(text)
}

// newStyle creates a style using the model's renderer when set.
func (m HistoryModel) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// Browser runs the history browser as a full screen program.
type Browser struct {
	opts []HistoryModelOption
}

// NewBrowser creates a Browser whose models use opts.
func NewBrowser(opts ...HistoryModelOption) *Browser {
	return &Browser{opts: opts}
}

// Browse displays frames and blocks until the user exits or ctx is done.
func (b *Browser) Browse(ctx context.Context, frames []history.Frame) error {
	m := NewHistoryModel(frames, b.opts...)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
