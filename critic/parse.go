package critic

import "strings"

// Kind identifies the type of a parsed span.
type Kind int

// Span kinds.
const (
	KindText Kind = iota
	KindInsertion
	KindDeletion
	KindSubstitution
	KindHighlight
	KindComment
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInsertion:
		return "insertion"
	case KindDeletion:
		return "deletion"
	case KindSubstitution:
		return "substitution"
	case KindHighlight:
		return "highlight"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Span is one run of parsed markdown. Substitutions carry Old and New;
// every other kind carries Text.
type Span struct {
	Kind Kind
	Text string
	Old  string
	New  string
}

type delimiters struct {
	open  string
	close string
	kind  Kind
}

var markers = []delimiters{
	{InsertOpen, InsertClose, KindInsertion},
	{DeleteOpen, DeleteClose, KindDeletion},
	{SubstituteOpen, SubstituteEnd, KindSubstitution},
	{HighlightOpen, HighlightClose, KindHighlight},
	{CommentOpen, CommentClose, KindComment},
}

// Parse splits markdown into plain text and marker spans. Adjacent plain
// text is merged into one span. An opening delimiter without a matching
// close, or a substitution without a separator, is kept as plain text.
func Parse(markdown string) []Span {
	var spans []Span
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			spans = append(spans, Span{Kind: KindText, Text: text.String()})
			text.Reset()
		}
	}

	rest := markdown
	for len(rest) > 0 {
		i := strings.IndexByte(rest, '{')
		if i < 0 {
			text.WriteString(rest)
			break
		}
		text.WriteString(rest[:i])
		rest = rest[i:]

		span, n, ok := parseMarker(rest)
		if !ok {
			text.WriteByte('{')
			rest = rest[1:]
			continue
		}
		flush()
		spans = append(spans, span)
		rest = rest[n:]
	}
	flush()
	return spans
}

// parseMarker parses a marker at the start of s and returns the span and
// the number of bytes consumed.
func parseMarker(s string) (Span, int, bool) {
	for _, m := range markers {
		if !strings.HasPrefix(s, m.open) {
			continue
		}
		body := s[len(m.open):]
		end := strings.Index(body, m.close)
		if end < 0 {
			return Span{}, 0, false
		}
		body = body[:end]
		n := len(m.open) + end + len(m.close)

		if m.kind == KindSubstitution {
			oldText, newText, found := strings.Cut(body, SubstituteSep)
			if !found {
				return Span{}, 0, false
			}
			return Span{Kind: KindSubstitution, Old: oldText, New: newText}, n, true
		}
		return Span{Kind: m.kind, Text: body}, n, true
	}
	return Span{}, 0, false
}

// HasMarkup reports whether markdown contains at least one complete marker.
func HasMarkup(markdown string) bool {
	for _, s := range Parse(markdown) {
		if s.Kind != KindText {
			return true
		}
	}
	return false
}
