// Package sanitize normalizes model output into a commit-message-safe
// string. The pipeline is a fixed sequence of steps, each idempotent on its
// own output, so the full pipeline is idempotent too.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	fenceLineRe  = regexp.MustCompile("(?m)^```[a-zA-Z0-9_+-]*[ \t]*\r?\n?")
	backtickSpan = regexp.MustCompile("`([^`\n]*)`")
	blankLineRe  = regexp.MustCompile(`(?m)^[ \t]+$`)
	multiNewline = regexp.MustCompile(`\n{3,}`)
)

var typography = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"„", `"`, // low double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"‚", "'", // low single quote
	"—", "-", // em dash
	"–", "-", // en dash
	"…", "...", // ellipsis
)

// Sanitize runs the full normalization pipeline. Sanitize(Sanitize(x)) ==
// Sanitize(x) for all inputs. Control characters are stripped before the
// defang step so one cannot sit between $ and the opening bracket and
// reassemble into a live substitution after its removal.
func Sanitize(message string) string {
	s := stripCodeFences(message)
	s = stripControlChars(s)
	s = defangShell(s)
	s = typography.Replace(s)
	s = collapseWhitespace(s)
	s = trimTrailingPeriod(s)
	return s
}

// stripCodeFences removes fence marker lines, keeping the enclosed text.
func stripCodeFences(s string) string {
	return fenceLineRe.ReplaceAllString(s, "")
}

// defangShell neutralizes command substitution and variable expansion by
// escaping the $, and converts backtick spans to single-quoted spans. An
// already-escaped $ is left alone so repeated passes are no-ops.
func defangShell(s string) string {
	s = escapeDollarSeq(s, '(')
	s = escapeDollarSeq(s, '{')
	s = backtickSpan.ReplaceAllString(s, "'$1'")
	s = strings.ReplaceAll(s, "`", "'")
	return s
}

func escapeDollarSeq(s string, open byte) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '$' && i+1 < len(s) && s[i+1] == open && (i == 0 || s[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// stripControlChars drops control characters except tab and newline.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// collapseWhitespace trims the ends, empties whitespace-only lines, and
// collapses runs of three or more newlines to exactly two.
func collapseWhitespace(s string) string {
	s = blankLineRe.ReplaceAllString(s, "")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// trimTrailingPeriod strips a single trailing period from the first line,
// unless the line ends in an ellipsis. Lines ending ".." are left alone so
// repeated passes cannot keep shortening them.
func trimTrailingPeriod(s string) string {
	first, rest, found := strings.Cut(s, "\n")
	if strings.HasSuffix(first, ".") && !strings.HasSuffix(first, "..") {
		first = strings.TrimSuffix(first, ".")
	}
	if !found {
		return first
	}
	if first == "" {
		// The first line was a lone period; the next line is the new
		// first line and gets the same treatment.
		return trimTrailingPeriod(strings.TrimLeft(rest, "\n"))
	}
	return first + "\n" + rest
}
