// Command redline records and reviews tracked changes to a markdown
// document kept as a session on disk.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"

	"github.com/fwojciec/redline/bubbletea"
	"github.com/fwojciec/redline/chroma"
	"github.com/fwojciec/redline/clipboard"
	"github.com/fwojciec/redline/fs"
	"github.com/fwojciec/redline/jsonl"
	"github.com/fwojciec/redline/koanf"
	"github.com/fwojciec/redline/lipgloss"
	"github.com/fwojciec/redline/prometheus"
	"github.com/fwojciec/redline/tracker"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	session     string
	config      string
	metricsFile string
}

// cli holds the state built before a subcommand runs.
type cli struct {
	flags    globalFlags
	out      io.Writer
	errOut   io.Writer
	app      *App
	logger   *zap.Logger
	registry *promclient.Registry
	render   renderSettings
}

type renderSettings struct {
	highlight bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "redline",
		Short: "Track and review changes to a markdown document",
		Long: `redline keeps an original markdown snapshot and an operation log of
inserts, edits, deletes and moves. Every change can be undone, redone and
shown as CriticMarkup against the original.

Examples:
  # Start a session from a JSONL element snapshot
  redline init elements.jsonl

  # Edit an element and show the tracked changes
  redline edit intro "The slow fox"
  redline show --tracked --color`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.teardown()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.session, "session", "", "Session directory (default: config session.dir or the XDG data dir)")
	pf.StringVar(&c.flags.config, "config", koanf.DefaultPath(), "Configuration file")
	pf.StringVar(&c.flags.metricsFile, "metrics-file", "", "Write operation metrics in Prometheus text format to this file")

	root.AddCommand(
		c.initCmd(),
		c.showCmd(),
		c.insertCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.moveCmd(),
		c.undoCmd(),
		c.redoCmd(),
		c.logCmd(),
		c.browseCmd(),
	)
	return root
}

// setup loads configuration and wires the App.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := koanf.Load(c.flags.config)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, c.errOut)
	if err != nil {
		return err
	}
	c.logger = logger

	dir := c.flags.session
	if dir == "" {
		dir = cfg.Session.Dir
	}
	if dir == "" {
		dir = fs.DefaultDataDir()
	}

	theme := lipgloss.ThemeByName(cfg.Render.Theme)
	c.render = renderSettings{highlight: cfg.Render.Highlight}

	highlighter, err := chroma.NewHighlighter()
	if err != nil {
		return err
	}

	c.app = &App{
		Dir:              dir,
		Sessions:         jsonl.NewStore(),
		Clipboard:        clipboard.NewSystem(),
		Highlighter:      fs.NewHighlighter(highlighter, fs.DefaultCacheDir(), chroma.DefaultStyle+"/"+chroma.DefaultFormatter),
		Markup:           lipgloss.NewRenderer(theme, nil),
		Browser:          bubbletea.NewBrowser(bubbletea.WithTheme(theme), bubbletea.WithMarkupRenderer(lipgloss.NewRenderer(theme, nil))),
		Out:              c.out,
		Logger:           logger,
		PreserveComments: cfg.Render.PreserveComments,
		TrackerOptions:   []tracker.Option{tracker.WithUserID(os.Getenv("USER"))},
	}

	if c.flags.metricsFile != "" {
		c.registry = promclient.NewRegistry()
		c.app.Extensions = append(c.app.Extensions, prometheus.NewExtension(c.registry))
	}

	logger.Debug("configured", zap.String("command", cmd.Name()), zap.String("session", dir))
	return nil
}

func (c *cli) teardown() error {
	if c.registry != nil {
		if err := promclient.WriteToTextfile(c.flags.metricsFile, c.registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	return nil
}

func (c *cli) initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init <elements.jsonl>",
		Short: "Start a session from an element snapshot",
		Long: `Start a session from a JSONL file holding one element per line:

  {"id":"intro","content":"The quick fox","metadata":{"type":"paragraph"}}

Element ids must be unique.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Init(args[0], force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing session")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	var (
		clean, tracked, color, highlight, copyOut bool
		at                                        int
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the document",
		Long: `Print the document as it stands, annotated with tracked changes (--tracked)
or with all markup removed (--clean). --at shows the document after the
given number of operations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := ShowOptions{At: at, Color: color, Copy: copyOut, Highlight: c.render.highlight}
			if cmd.Flags().Changed("highlight") {
				opts.Highlight = highlight
			}
			switch {
			case tracked:
				opts.Mode = ShowTracked
			case clean:
				opts.Mode = ShowClean
			}
			return c.app.Show(opts)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&clean, "clean", false, "Remove all tracked-change markup")
	f.BoolVar(&tracked, "tracked", false, "Annotate changes against the original")
	f.IntVar(&at, "at", -1, "Show the document after this many operations")
	f.BoolVar(&color, "color", false, "Style tracked changes for the terminal")
	f.BoolVar(&highlight, "highlight", false, "Syntax highlight the markdown (default: config render.highlight)")
	f.BoolVar(&copyOut, "copy", false, "Also copy the output to the clipboard")
	cmd.MarkFlagsMutuallyExclusive("clean", "tracked")
	return cmd
}

func (c *cli) insertCmd() *cobra.Command {
	var args InsertArgs
	cmd := &cobra.Command{
		Use:   "insert <content>",
		Short: "Insert a new element",
		Long:  "Insert a new element after or before an existing one, or at the end. Prints the new element id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, pos []string) error {
			return c.app.Insert(pos[0], args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&args.After, "after", "", "Insert after this element")
	f.StringVar(&args.Before, "before", "", "Insert before this element")
	f.StringVar(&args.Type, "type", "paragraph", "Element type")
	f.StringVar(&args.ID, "id", "", "Explicit element id")
	cmd.MarkFlagsMutuallyExclusive("after", "before")
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <content>",
		Short: "Replace the content of an element",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Edit(args[0], args[1])
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.Delete(args[0])
		},
	}
}

func (c *cli) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <from> <to>",
		Short: "Move an element between positions",
		Long:  "Move the element at index <from> to index <to>. Indexes are zero-based positions in the current document.",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("from: %w", err)
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("to: %w", err)
			}
			return c.app.Move(args[0], from, to)
		},
	}
}

func (c *cli) undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the most recent operation",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.app.Undo()
		},
	}
}

func (c *cli) redoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Reapply the most recently undone operation",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.app.Redo()
		},
	}
}

func (c *cli) logCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "List applied operations and the redo stack",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return c.app.Log()
		},
	}
}

func (c *cli) browseCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Step through the document history interactively",
		Long: `Open a full screen browser over every step of the operation log.

Keys: h/← previous step, l/→ next step, g first, G last, j/k scroll, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Browse(cmd.Context(), workers)
		},
	}
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "Frames rendered concurrently")
	return cmd
}
