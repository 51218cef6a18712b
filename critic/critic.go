// Package critic encodes edit scripts as CriticMarkup and resolves
// CriticMarkup back to plain text.
//
// Five marker shapes are recognized:
//
//	{++inserted++}
//	{--deleted--}
//	{~~old~>new~~}
//	{==highlighted==}
//	{>>comment<<}
//
// Marker text cannot itself contain the closing delimiter of its marker.
package critic

import (
	"strings"

	"github.com/fwojciec/redline"
)

// Marker delimiters.
const (
	InsertOpen     = "{++"
	InsertClose    = "++}"
	DeleteOpen     = "{--"
	DeleteClose    = "--}"
	SubstituteOpen = "{~~"
	SubstituteSep  = "~>"
	SubstituteEnd  = "~~}"
	HighlightOpen  = "{=="
	HighlightClose = "==}"
	CommentOpen    = "{>>"
	CommentClose   = "<<}"
)

// Render writes changes against baseline as CriticMarkup. Equal spans are
// copied through; with no changes the baseline is returned as is.
func Render(baseline string, changes []redline.Change) string {
	if len(changes) == 0 {
		return baseline
	}

	var b strings.Builder
	b.Grow(len(baseline) + 16*len(changes))
	for _, c := range changes {
		switch c.Kind {
		case redline.ChangeEqual:
			b.WriteString(c.OldText)
		case redline.ChangeInsert:
			writeMarker(&b, InsertOpen, c.NewText, InsertClose)
		case redline.ChangeDelete:
			writeMarker(&b, DeleteOpen, c.OldText, DeleteClose)
		case redline.ChangeSubstitute:
			// The old side ends at the first separator when parsed.
			if strings.Contains(c.OldText, SubstituteSep) {
				writeMarker(&b, DeleteOpen, c.OldText, DeleteClose)
				writeMarker(&b, InsertOpen, c.NewText, InsertClose)
				continue
			}
			b.WriteString(SubstituteOpen)
			b.WriteString(c.OldText)
			b.WriteString(SubstituteSep)
			b.WriteString(c.NewText)
			b.WriteString(SubstituteEnd)
		}
	}
	return b.String()
}

// Insertion wraps text in an insertion marker.
func Insertion(text string) string { return InsertOpen + text + InsertClose }

// Deletion wraps text in a deletion marker.
func Deletion(text string) string { return DeleteOpen + text + DeleteClose }

// Highlight wraps text in a highlight marker.
func Highlight(text string) string { return HighlightOpen + text + HighlightClose }

// Comment wraps text in a comment marker.
func Comment(text string) string { return CommentOpen + text + CommentClose }

func writeMarker(b *strings.Builder, open, text, close string) {
	b.WriteString(open)
	b.WriteString(text)
	b.WriteString(close)
}
