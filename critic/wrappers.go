package critic

import (
	"regexp"
	"strings"
)

var (
	// fenceOpen matches a fenced div opener such as "::: {.review-block}"
	// or "::: note".
	fenceOpen = regexp.MustCompile(`^([ \t]*):{3,}[ \t]*(\{[^}\n]*\}|[\w-]+)[ \t]*$`)
	// fenceClose matches a bare fenced div closer.
	fenceClose = regexp.MustCompile(`^[ \t]*:{3,}[ \t]*$`)
	// reviewClass matches the review wrapper classes in a fence's attributes.
	reviewClass = regexp.MustCompile(`(^|[\s{])\.review[\w-]*`)
)

// RemoveNestedReviewWrappers removes fenced div wrappers carrying a
// ".review-*" class and dedents their bodies to the wrapper's own
// indentation. Wrappers can nest, so removal repeats until nothing changes.
// Other fenced divs are left in place.
func RemoveNestedReviewWrappers(markdown string) string {
	lines := strings.Split(markdown, "\n")
	for {
		next, ok := removeInnermostWrapper(lines)
		if !ok {
			return strings.Join(lines, "\n")
		}
		lines = next
	}
}

type fence struct {
	line   int
	indent string
	review bool
}

// removeInnermostWrapper removes the first review wrapper whose closer
// appears earliest in the text.
func removeInnermostWrapper(lines []string) ([]string, bool) {
	var stack []fence
	for i, line := range lines {
		if m := fenceOpen.FindStringSubmatch(line); m != nil {
			stack = append(stack, fence{line: i, indent: m[1], review: reviewClass.MatchString(m[2])})
			continue
		}
		if !fenceClose.MatchString(line) || len(stack) == 0 {
			continue
		}
		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !open.review {
			continue
		}

		body := reindent(lines[open.line+1:i], open.indent)
		out := make([]string, 0, len(lines)-2)
		out = append(out, lines[:open.line]...)
		out = append(out, body...)
		out = append(out, lines[i+1:]...)
		return out, true
	}
	return nil, false
}

// reindent strips the minimal common indentation of non-blank lines and
// prefixes each non-blank line with indent.
func reindent(lines []string, indent string) []string {
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			continue
		}
		out[i] = indent + line[common:]
	}
	return out
}
