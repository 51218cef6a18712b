package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/critic"
	"github.com/fwojciec/redline/history"
	"github.com/fwojciec/redline/jsonl"
	"github.com/fwojciec/redline/tracker"
	"github.com/fwojciec/redline/worddiff"
	"go.uber.org/zap"
)

// Source stamps every operation made from the command line.
const Source = "cli"

var (
	// ErrSessionExists is returned by Init when the directory already holds
	// a session.
	ErrSessionExists = errors.New("session already exists (use --force to replace it)")

	// ErrNothingToUndo is returned by Undo when no operation is in effect.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo when the redo stack is empty.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Browser shows history frames interactively.
type Browser interface {
	Browse(ctx context.Context, frames []history.Frame) error
}

// App encapsulates the application logic for testing.
type App struct {
	Dir         string // Session directory
	Sessions    redline.SessionStore
	Clipboard   redline.Clipboard
	Highlighter redline.Highlighter
	Markup      redline.MarkupRenderer
	Browser     Browser
	Differ      redline.Differ // Defaults to worddiff
	Out         io.Writer
	Logger      *zap.Logger

	// PreserveComments keeps {>>comments<<} as HTML comments in clean
	// output instead of dropping them.
	PreserveComments bool

	Extensions     []redline.Extension // Registered on every opened tracker
	TrackerOptions []tracker.Option
}

// ShowMode selects which rendition of the document Show prints.
type ShowMode int

// Show modes.
const (
	ShowCurrent ShowMode = iota // Document as it stands, with markup as stored
	ShowTracked                 // Changes annotated with CriticMarkup
	ShowClean                   // Markup and review wrappers removed
)

// ShowOptions configures Show.
type ShowOptions struct {
	Mode      ShowMode
	At        int  // Step to show; negative means the latest
	Color     bool // Style tracked markup for the terminal
	Highlight bool // Syntax highlight the output
	Copy      bool // Copy the unstyled text to the clipboard
}

// InsertArgs configures Insert.
type InsertArgs struct {
	ID     string
	After  string
	Before string
	Type   string
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) differ() redline.Differ {
	if a.Differ == nil {
		return worddiff.NewDiffer()
	}
	return a.Differ
}

// Init starts a session from an elements file.
func (a *App) Init(path string, force bool) error {
	elements, err := jsonl.LoadElements(path)
	if err != nil {
		return err
	}

	if !force {
		_, err := a.Sessions.Load(a.Dir)
		switch {
		case err == nil:
			return ErrSessionExists
		case !errors.Is(err, redline.ErrNoSession):
			return err
		}
	}

	if err := a.Sessions.Save(a.Dir, &redline.Session{Elements: elements}); err != nil {
		return err
	}
	a.logger().Info("session initialized", zap.String("dir", a.Dir), zap.Int("elements", len(elements)))
	fmt.Fprintf(a.Out, "Initialized session with %d elements in %s\n", len(elements), a.Dir)
	return nil
}

// open restores the tracker for the session directory.
func (a *App) open() (*tracker.Tracker, error) {
	sess, err := a.Sessions.Load(a.Dir)
	if err != nil {
		return nil, err
	}

	opts := []tracker.Option{
		tracker.WithDiffer(a.differ()),
		tracker.WithLogger(a.logger()),
		tracker.WithHistory(sess.Applied, sess.Redoable),
	}
	opts = append(opts, a.TrackerOptions...)

	t, err := tracker.New(sess.Elements, opts...)
	if err != nil {
		return nil, err
	}
	for _, ext := range a.Extensions {
		if _, err := t.RegisterExtension(ext); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// mutate opens the session, applies fn and saves the result if the log
// changed.
func (a *App) mutate(fn func(t *tracker.Tracker) error) error {
	t, err := a.open()
	if err != nil {
		return err
	}
	if err := fn(t); err != nil {
		return err
	}
	if !t.HasUnsavedOperations() {
		return nil
	}
	if err := a.Sessions.Save(a.Dir, t.Session()); err != nil {
		return err
	}
	t.MarkAsSaved()
	return nil
}

// Insert adds a new element and prints its id.
func (a *App) Insert(content string, args InsertArgs) error {
	if args.After != "" && args.Before != "" {
		return errors.New("--after and --before are mutually exclusive")
	}
	return a.mutate(func(t *tracker.Tracker) error {
		meta := redline.Metadata{Type: args.Type}
		if meta.Type == "" {
			meta.Type = "paragraph"
		}
		id, err := t.Insert(content, meta, redline.Position{After: args.After, Before: args.Before},
			tracker.InsertOptions{ID: args.ID, Source: Source})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Out, id)
		return nil
	})
}

// Edit replaces the content of an element.
func (a *App) Edit(id, content string) error {
	return a.mutate(func(t *tracker.Tracker) error {
		return t.Edit(id, content, tracker.EditOptions{Source: Source})
	})
}

// Delete removes an element.
func (a *App) Delete(id string) error {
	return a.mutate(func(t *tracker.Tracker) error {
		return t.Delete(id, Source)
	})
}

// Move repositions an element.
func (a *App) Move(id string, from, to int) error {
	return a.mutate(func(t *tracker.Tracker) error {
		return t.Move(id, from, to, Source)
	})
}

// Undo reverts the most recent operation and prints what was undone.
func (a *App) Undo() error {
	return a.mutate(func(t *tracker.Tracker) error {
		ops := t.Operations()
		if !t.Undo() {
			return ErrNothingToUndo
		}
		fmt.Fprintf(a.Out, "Undid: %s\n", ops[len(ops)-1].Summary())
		return nil
	})
}

// Redo reapplies the most recently undone operation.
func (a *App) Redo() error {
	return a.mutate(func(t *tracker.Tracker) error {
		if !t.Redo() {
			return ErrNothingToRedo
		}
		ops := t.Operations()
		fmt.Fprintf(a.Out, "Redid: %s\n", ops[len(ops)-1].Summary())
		return nil
	})
}

// Show prints the document.
func (a *App) Show(opts ShowOptions) error {
	t, err := a.open()
	if err != nil {
		return err
	}

	text := a.render(t, opts)

	if opts.Copy {
		if err := a.Clipboard.Copy(text); err != nil {
			return err
		}
		a.logger().Debug("copied document", zap.Int("bytes", len(text)))
	}

	out := text
	if opts.Color && opts.Mode == ShowTracked && a.Markup != nil {
		out = a.Markup.Render(out)
	}
	if opts.Highlight && a.Highlighter != nil {
		out, err = a.Highlighter.Highlight(out)
		if err != nil {
			return fmt.Errorf("highlight: %w", err)
		}
	}

	fmt.Fprintln(a.Out, out)
	return nil
}

func (a *App) render(t *tracker.Tracker, opts ShowOptions) string {
	latest := opts.At < 0 || opts.At >= len(t.Operations())
	switch opts.Mode {
	case ShowTracked:
		state := t.CurrentState()
		if !latest {
			state = t.StateAfter(opts.At)
		}
		return history.Render(t.Original(), state, a.differ())
	case ShowClean:
		if a.PreserveComments {
			if latest {
				return t.CleanMarkdown()
			}
			return t.CleanMarkdownSnapshot(opts.At)
		}
		md := t.Markdown()
		if !latest {
			md = t.MarkdownSnapshot(opts.At)
		}
		return critic.Strip(critic.RemoveNestedReviewWrappers(md), critic.Accept, critic.Options{})
	default:
		if latest {
			return t.Markdown()
		}
		return t.MarkdownSnapshot(opts.At)
	}
}

// Log prints the applied operations followed by the redo stack.
func (a *App) Log() error {
	t, err := a.open()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tID\tTIME\tSOURCE\tOPERATION")
	for i, op := range t.Operations() {
		writeLogRow(w, strconv.Itoa(i+1), op)
	}
	redo := t.RedoStack()
	for i := len(redo) - 1; i >= 0; i-- {
		writeLogRow(w, "redo", redo[i])
	}
	return w.Flush()
}

func writeLogRow(w io.Writer, step string, op redline.Operation) {
	source := op.Source()
	if source == "" {
		source = "-"
	}
	ts := time.UnixMilli(op.Timestamp).UTC().Format(time.DateTime)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", step, op.ID, ts, source, op.Summary())
}

// Browse opens the interactive history browser.
func (a *App) Browse(ctx context.Context, workers int) error {
	t, err := a.open()
	if err != nil {
		return err
	}

	frames, err := history.Frames(ctx, t.Original(), t.Operations(), a.differ(), history.WithWorkers(workers))
	if err != nil {
		return err
	}
	a.logger().Debug("rendered history", zap.Int("frames", len(frames)))
	return a.Browser.Browse(ctx, frames)
}
