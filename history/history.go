// Package history renders the tracked-change view of every step of an
// operation log.
package history

import (
	"context"
	"runtime"
	"strings"

	"github.com/fwojciec/redline"
	"github.com/fwojciec/redline/critic"
	"github.com/fwojciec/redline/replay"
	"golang.org/x/sync/errgroup"
)

// Frame is the document as it stood after Step operations, annotated
// against the original snapshot.
type Frame struct {
	Step      int
	Operation *redline.Operation // Operation that produced this step; nil for step 0
	Markdown  string
}

type options struct {
	workers int
}

// Option configures Frames.
type Option func(*options)

// WithWorkers bounds how many frames render at once.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Frames renders one frame per step 0..len(ops). Elements from the
// original snapshot are diffed against their original content, inserted
// elements against the empty string, and deleted originals appear as whole
// deletions where they used to be. differ must be safe for concurrent use.
func Frames(ctx context.Context, original []redline.Element, ops []redline.Operation, differ redline.Differ, opts ...Option) ([]Frame, error) {
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	frames := make([]Frame, len(ops)+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for step := range frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			frame := Frame{
				Step:     step,
				Markdown: Render(original, replay.Reconstruct(original, ops[:step]), differ),
			}
			if step > 0 {
				op := ops[step-1]
				frame.Operation = &op
			}
			frames[step] = frame
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// Render annotates state against original.
func Render(original, state []redline.Element, differ redline.Differ) string {
	originals := make(map[string]string, len(original))
	for _, e := range original {
		originals[e.ID] = e.Content
	}
	present := make(map[string]bool, len(state))
	for _, e := range state {
		present[e.ID] = true
	}

	// Deleted originals are shown before the next original that survives.
	deletedBefore := make(map[string][]string)
	var pending []string
	for _, e := range original {
		if !present[e.ID] {
			if c := trim(e.Content); c != "" {
				pending = append(pending, critic.Deletion(c))
			}
			continue
		}
		if len(pending) > 0 {
			deletedBefore[e.ID] = pending
			pending = nil
		}
	}

	parts := make([]string, 0, len(state)+len(pending))
	for _, e := range state {
		parts = append(parts, deletedBefore[e.ID]...)
		base := originals[e.ID]
		parts = append(parts, trim(critic.Render(base, differ.Compute(base, e.Content))))
	}
	parts = append(parts, pending...)
	return strings.Join(parts, "\n\n")
}

func trim(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}
