// Package edgecase classifies unusual diff shapes and selects specialized
// prompts for them. Detection is pure: the same diff text and categories
// always yield the same kind.
package edgecase

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/scribeworks/gitscribe/internal/gitio"
)

// Kind is the closed set of recognized change patterns. KindNone means a
// normal diff needing no specialized handling.
type Kind string

const (
	KindNone            Kind = ""
	KindWhitespaceOnly  Kind = "whitespace_only"
	KindBinaryFiles     Kind = "binary_files"
	KindDeletionsOnly   Kind = "deletions_only"
	KindRenamesOnly     Kind = "renames_only"
	KindMixedOperations Kind = "mixed_operations"
)

var binaryMarkerRe = regexp.MustCompile(`Binary files .* differ`)

// Detect classifies a diff's change pattern. Checks run in fixed priority
// order: binary marker, whitespace-only content, then category shape when
// categories are supplied.
func Detect(diffText string, cats *gitio.FileCategories) Kind {
	if binaryMarkerRe.MatchString(diffText) {
		return KindBinaryFiles
	}

	if isWhitespaceOnly(diffText) {
		return KindWhitespaceOnly
	}

	if cats != nil {
		switch n := cats.NonEmptyCount(); {
		case n >= 2:
			return KindMixedOperations
		case n == 1 && len(cats.Deleted) > 0:
			return KindDeletionsOnly
		case n == 1 && len(cats.Renamed) > 0:
			return KindRenamesOnly
		}
	}

	return KindNone
}

// isWhitespaceOnly strips all whitespace from every added line and every
// removed line, concatenates each side, and compares. This deliberately does
// not pair corresponding lines, so some reorderings classify as
// whitespace-only; downstream expectations are written against that.
func isWhitespaceOnly(diffText string) bool {
	var added, removed strings.Builder
	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added.WriteString(stripWhitespace(line[1:]))
		case strings.HasPrefix(line, "-"):
			removed.WriteString(stripWhitespace(line[1:]))
		}
	}
	return added.Len() > 0 && added.String() == removed.String()
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
