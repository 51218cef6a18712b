// Package worddiff computes word-level edit scripts between two texts.
package worddiff

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/redline"
	"github.com/rivo/uniseg"
)

// Compile-time interface verification.
var _ redline.Differ = (*Differ)(nil)

const (
	// defaultSimilarityThreshold is the minimum ratio for word-level diffing.
	// Below this threshold, texts are treated as complete replacements.
	defaultSimilarityThreshold = 0.3

	// maxTableCells bounds the LCS table. Larger inputs fall back to a
	// single replacement of the differing middle.
	maxTableCells = 4 << 20
)

// Differ tokenizes strings into Unicode words and computes word-level
// edit scripts.
type Differ struct {
	threshold     float64
	substitutions bool
}

// Option configures a Differ.
type Option func(*Differ)

// WithSimilarityThreshold sets the minimum token overlap ratio (0..1)
// below which the whole text is reported as replaced.
func WithSimilarityThreshold(ratio float64) Option {
	return func(d *Differ) {
		d.threshold = ratio
	}
}

// WithoutSubstitutions reports replacements as a deletion followed by an
// insertion instead of a single substitution.
func WithoutSubstitutions() Option {
	return func(d *Differ) {
		d.substitutions = false
	}
}

// NewDiffer creates a new Differ instance.
func NewDiffer(opts ...Option) *Differ {
	d := &Differ{
		threshold:     defaultSimilarityThreshold,
		substitutions: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tokenize splits a string into words, whitespace runs and punctuation
// following Unicode word boundaries. Tokens never split a grapheme cluster.
func (d *Differ) Tokenize(s string) []string {
	if len(s) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(s)/4+1)
	state := -1
	var word string
	for len(s) > 0 {
		word, s, state = uniseg.FirstWordInString(s, state)
		tokens = append(tokens, word)
	}
	return tokens
}

// Compute returns the edit script turning oldText into newText. The result
// is empty when the texts are equal; otherwise it covers both texts with
// contiguous, ascending spans.
func (d *Differ) Compute(oldText, newText string) []redline.Change {
	if oldText == newText {
		return nil
	}

	oldTokens := d.Tokenize(oldText)
	newTokens := d.Tokenize(newText)

	var regions []region
	if !d.hasSufficientSimilarity(oldTokens, newTokens) {
		regions = []region{{changed: true, old: oldTokens, new: newTokens}}
	} else {
		regions = diffTokens(oldTokens, newTokens)
	}
	regions = absorbWhitespace(regions)

	return d.toChanges(regions)
}

// hasSufficientSimilarity checks if tokens have enough overlap to warrant word-level diff.
// Uses a simple count of common tokens as an upper bound estimate.
func (d *Differ) hasSufficientSimilarity(oldTokens, newTokens []string) bool {
	oldLen, newLen := len(oldTokens), len(newTokens)
	if oldLen == 0 || newLen == 0 {
		return true
	}

	counts := make(map[string]int, oldLen)
	for _, t := range oldTokens {
		counts[t]++
	}

	common := 0
	for _, t := range newTokens {
		if counts[t] > 0 {
			counts[t]--
			common++
		}
	}

	// Ratio = 2.0 * common / (len(old) + len(new))
	return float64(2*common)/float64(oldLen+newLen) >= d.threshold
}

// region is a maximal run of either matching or differing tokens.
type region struct {
	changed bool
	old     []string
	new     []string // Unused for unchanged regions
}

// diffTokens trims the common prefix and suffix, then aligns the middle
// with an LCS table.
func diffTokens(oldTokens, newTokens []string) []region {
	prefix := 0
	for prefix < len(oldTokens) && prefix < len(newTokens) && oldTokens[prefix] == newTokens[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(oldTokens)-prefix && suffix < len(newTokens)-prefix &&
		oldTokens[len(oldTokens)-1-suffix] == newTokens[len(newTokens)-1-suffix] {
		suffix++
	}

	var b regionBuilder
	b.equal(oldTokens[:prefix]...)

	oldMid := oldTokens[prefix : len(oldTokens)-suffix]
	newMid := newTokens[prefix : len(newTokens)-suffix]
	if (len(oldMid)+1)*(len(newMid)+1) > maxTableCells {
		b.change(oldMid, newMid)
	} else {
		lcsRegions(&b, oldMid, newMid)
	}

	b.equal(oldTokens[len(oldTokens)-suffix:]...)
	return b.regions
}

// lcsRegions computes the LCS of two token sequences and feeds the aligned
// runs into b. Uses O(n×m) dynamic programming with a flat array.
func lcsRegions(b *regionBuilder, oldTokens, newTokens []string) {
	m, n := len(oldTokens), len(newTokens)
	if m == 0 || n == 0 {
		b.change(oldTokens, newTokens)
		return
	}

	// table[i*(n+1)+j] holds the LCS length of oldTokens[i:] and newTokens[j:].
	// Filling from the end lets the walk below run forwards.
	stride := n + 1
	table := make([]int, (m+1)*stride)
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			switch {
			case oldTokens[i] == newTokens[j]:
				table[i*stride+j] = table[(i+1)*stride+j+1] + 1
			case table[(i+1)*stride+j] >= table[i*stride+j+1]:
				table[i*stride+j] = table[(i+1)*stride+j]
			default:
				table[i*stride+j] = table[i*stride+j+1]
			}
		}
	}

	// Walk forwards. Ties prefer consuming old tokens first so deletions
	// precede insertions within a changed run.
	i, j := 0, 0
	oldStart, newStart := 0, 0
	for i < m && j < n {
		if oldTokens[i] == newTokens[j] {
			b.change(oldTokens[oldStart:i], newTokens[newStart:j])
			b.equal(oldTokens[i])
			i++
			j++
			oldStart, newStart = i, j
			continue
		}
		if table[(i+1)*stride+j] >= table[i*stride+j+1] {
			i++
		} else {
			j++
		}
	}
	b.change(oldTokens[oldStart:], newTokens[newStart:])
}

// regionBuilder accumulates regions, merging adjacent runs of the same kind.
type regionBuilder struct {
	regions []region
}

func (b *regionBuilder) equal(tokens ...string) {
	if len(tokens) == 0 {
		return
	}
	if last := b.last(); last != nil && !last.changed {
		last.old = append(last.old, tokens...)
		return
	}
	b.regions = append(b.regions, region{old: append([]string(nil), tokens...)})
}

func (b *regionBuilder) change(oldTokens, newTokens []string) {
	if len(oldTokens) == 0 && len(newTokens) == 0 {
		return
	}
	if last := b.last(); last != nil && last.changed {
		last.old = append(last.old, oldTokens...)
		last.new = append(last.new, newTokens...)
		return
	}
	b.regions = append(b.regions, region{
		changed: true,
		old:     append([]string(nil), oldTokens...),
		new:     append([]string(nil), newTokens...),
	})
}

func (b *regionBuilder) last() *region {
	if len(b.regions) == 0 {
		return nil
	}
	return &b.regions[len(b.regions)-1]
}

// absorbWhitespace folds unchanged whitespace or punctuation runs that sit
// between two changed regions into a single changed region, so that
// "a b c" -> "x y z" yields one replacement instead of three.
func absorbWhitespace(regions []region) []region {
	if len(regions) < 3 {
		return regions
	}
	out := make([]region, 0, len(regions))
	for i := 0; i < len(regions); i++ {
		r := regions[i]
		if !r.changed && i > 0 && i < len(regions)-1 && len(out) > 0 && out[len(out)-1].changed &&
			regions[i+1].changed && isFiller(r.old) {
			prev := &out[len(out)-1]
			prev.old = append(prev.old, r.old...)
			prev.new = append(prev.new, r.old...)
			prev.old = append(prev.old, regions[i+1].old...)
			prev.new = append(prev.new, regions[i+1].new...)
			i++
			continue
		}
		out = append(out, r)
	}
	return out
}

// isFiller reports whether tokens hold only whitespace and at most one
// punctuation token.
func isFiller(tokens []string) bool {
	punct := 0
	for _, t := range tokens {
		r, _ := utf8.DecodeRuneInString(t)
		switch {
		case strings.TrimSpace(t) == "":
		case utf8.RuneCountInString(t) == 1 && unicode.IsPunct(r):
			punct++
		default:
			return false
		}
	}
	return punct <= 1
}

func (d *Differ) toChanges(regions []region) []redline.Change {
	changes := make([]redline.Change, 0, len(regions)+1)
	oldPos, newPos := 0, 0
	for _, r := range regions {
		oldText := joinTokens(r.old)
		if !r.changed {
			changes = append(changes, redline.Change{
				Kind:     redline.ChangeEqual,
				OldText:  oldText,
				OldStart: oldPos,
				OldEnd:   oldPos + len(oldText),
				NewStart: newPos,
				NewEnd:   newPos + len(oldText),
			})
			oldPos += len(oldText)
			newPos += len(oldText)
			continue
		}

		newText := joinTokens(r.new)
		oldEnd, newEnd := oldPos+len(oldText), newPos+len(newText)
		switch {
		case oldText == "":
			changes = append(changes, redline.Change{
				Kind: redline.ChangeInsert, NewText: newText,
				OldStart: oldPos, OldEnd: oldPos, NewStart: newPos, NewEnd: newEnd,
			})
		case newText == "":
			changes = append(changes, redline.Change{
				Kind: redline.ChangeDelete, OldText: oldText,
				OldStart: oldPos, OldEnd: oldEnd, NewStart: newPos, NewEnd: newPos,
			})
		case d.substitutions:
			changes = append(changes, redline.Change{
				Kind: redline.ChangeSubstitute, OldText: oldText, NewText: newText,
				OldStart: oldPos, OldEnd: oldEnd, NewStart: newPos, NewEnd: newEnd,
			})
		default:
			changes = append(changes,
				redline.Change{
					Kind: redline.ChangeDelete, OldText: oldText,
					OldStart: oldPos, OldEnd: oldEnd, NewStart: newPos, NewEnd: newPos,
				},
				redline.Change{
					Kind: redline.ChangeInsert, NewText: newText,
					OldStart: oldEnd, OldEnd: oldEnd, NewStart: newPos, NewEnd: newEnd,
				},
			)
		}
		oldPos, newPos = oldEnd, newEnd
	}
	return changes
}

// joinTokens concatenates tokens using a builder (single allocation for result).
func joinTokens(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) == 1 {
		return tokens[0]
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t)
	}
	return b.String()
}
