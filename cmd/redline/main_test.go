package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the command tree with an isolated session and config.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	base := []string{"--session", filepath.Join(dir, "session"), "--config", filepath.Join(dir, "missing.yaml")}
	cmd.SetArgs(append(base, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Commands(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
		assert.NotEmpty(t, sub.Short, "%s should have a short description", sub.Name())
	}
	for _, want := range []string{"init", "show", "insert", "edit", "delete", "move", "undo", "redo", "log", "browse"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_Workflow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	elements := filepath.Join(dir, "elements.jsonl")
	require.NoError(t, os.WriteFile(elements, []byte(`{"id":"a","content":"The quick fox","metadata":{"type":"paragraph"}}
{"id":"b","content":"Second paragraph","metadata":{"type":"paragraph"}}
`), 0o644))

	out, err := run(t, dir, "init", elements)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized session with 2 elements")

	_, err = run(t, dir, "edit", "a", "The slow fox")
	require.NoError(t, err)

	out, err = run(t, dir, "show", "--tracked")
	require.NoError(t, err)
	assert.Equal(t, "The {~~quick~>slow~~} fox\n\nSecond paragraph\n", out)

	out, err = run(t, dir, "show", "--at", "0")
	require.NoError(t, err)
	assert.Equal(t, "The quick fox\n\nSecond paragraph\n", out)

	out, err = run(t, dir, "insert", "--id", "c", "--after", "b", "Third")
	require.NoError(t, err)
	assert.Equal(t, "c\n", out)

	_, err = run(t, dir, "move", "c", "2", "0")
	require.NoError(t, err)

	out, err = run(t, dir, "show")
	require.NoError(t, err)
	assert.Equal(t, "Third\n\nThe slow fox\n\nSecond paragraph\n", out)

	out, err = run(t, dir, "undo")
	require.NoError(t, err)
	assert.Equal(t, "Undid: move c from 2 to 0\n", out)

	_, err = run(t, dir, "delete", "b")
	require.NoError(t, err)

	out, err = run(t, dir, "log")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
	assert.Contains(t, out, "delete b")

	_, err = run(t, dir, "redo")
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestRootCmd_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing session", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, t.TempDir(), "show")
		assert.ErrorContains(t, err, "no session found")
	})

	t.Run("move positions must be integers", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, t.TempDir(), "move", "a", "one", "2")
		assert.ErrorContains(t, err, "from")
	})

	t.Run("clean and tracked are exclusive", func(t *testing.T) {
		t.Parallel()

		_, err := run(t, t.TempDir(), "show", "--clean", "--tracked")
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfg := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("render:\n  theme: neon\n"), 0o644))

		cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
		cmd.SetArgs([]string{"--config", cfg, "--session", dir, "log"})

		assert.ErrorContains(t, cmd.Execute(), "render.theme")
	})
}

func TestRootCmd_MetricsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	elements := filepath.Join(dir, "elements.jsonl")
	require.NoError(t, os.WriteFile(elements, []byte(`{"id":"a","content":"x"}`+"\n"), 0o644))
	_, err := run(t, dir, "init", elements)
	require.NoError(t, err)

	metrics := filepath.Join(dir, "metrics.prom")
	_, err = run(t, dir, "--metrics-file", metrics, "edit", "a", "y")
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `redline_operations_total{source="cli",type="edit"} 1`)
}
