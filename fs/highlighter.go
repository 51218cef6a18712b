package fs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/redline"
)

// Compile-time interface verification.
var _ redline.Highlighter = (*Highlighter)(nil)

// Highlighter wraps a Highlighter with file-based caching.
type Highlighter struct {
	inner    redline.Highlighter
	cacheDir string
	key      string
}

// NewHighlighter creates a new caching highlighter. key separates cache
// entries produced by differently configured inner highlighters.
func NewHighlighter(inner redline.Highlighter, cacheDir, key string) *Highlighter {
	return &Highlighter{
		inner:    inner,
		cacheDir: cacheDir,
		key:      key,
	}
}

type cachedHighlight struct {
	Output string `json:"output"`
}

// Highlight returns cached output or delegates to the inner highlighter.
func (h *Highlighter) Highlight(markdown string) (string, error) {
	hash := h.hashInput(markdown)

	if cached, err := h.loadFromCache(hash); err == nil {
		return cached, nil
	}

	out, err := h.inner.Highlight(markdown)
	if err != nil {
		return "", err
	}

	// Store in cache (best-effort)
	_ = h.saveToCache(hash, out)

	return out, nil
}

func (h *Highlighter) hashInput(markdown string) string {
	sum := sha256.New()
	sum.Write([]byte(h.key))
	sum.Write([]byte{0})
	sum.Write([]byte(markdown))
	return hex.EncodeToString(sum.Sum(nil))
}

func (h *Highlighter) cachePath(hash string) string {
	return filepath.Join(h.cacheDir, hash+".json")
}

func (h *Highlighter) loadFromCache(hash string) (string, error) {
	data, err := os.ReadFile(h.cachePath(hash))
	if err != nil {
		return "", err
	}

	var cached cachedHighlight
	if err := json.Unmarshal(data, &cached); err != nil {
		return "", err
	}

	return cached.Output, nil
}

func (h *Highlighter) saveToCache(hash, out string) error {
	if err := os.MkdirAll(h.cacheDir, 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(cachedHighlight{Output: out})
	if err != nil {
		return err
	}

	return os.WriteFile(h.cachePath(hash), data, 0o644)
}
