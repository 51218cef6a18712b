// Package clipboard provides clipboard operations via the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/redline"
)

// Ensure System implements the Clipboard interface.
var _ redline.Clipboard = (*System)(nil)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard not supported on this system")

// System implements Clipboard using the platform clipboard
// (pbcopy, xclip, xsel, wl-copy or the Windows API).
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Paste reads the current clipboard content.
func (s *System) Paste() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return content, nil
}
