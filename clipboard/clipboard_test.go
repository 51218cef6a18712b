package clipboard_test

import (
	"testing"

	"github.com/fwojciec/redline/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Copy(t *testing.T) {
	// Not parallel: the system clipboard is shared state.
	cb := clipboard.NewSystem()
	testContent := "test clipboard content from redline"

	if err := cb.Copy(testContent); err != nil {
		// Headless CI machines usually have no clipboard utility or display.
		t.Skipf("clipboard not available: %v", err)
	}

	got, err := cb.Paste()
	require.NoError(t, err)
	assert.Equal(t, testContent, got)
}
