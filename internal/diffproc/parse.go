// Package diffproc parses unified diffs into per-file units and packs them
// into a token-budgeted payload, preserving file-boundary integrity.
package diffproc

import (
	"regexp"
	"strings"

	"github.com/scribeworks/gitscribe/internal/tokens"
)

// FileDiff is one file's change within a unified diff. Content is a verbatim
// substring of the source diff, from the file's header line through its hunks.
type FileDiff struct {
	Path      string
	Content   string
	Additions int
	Deletions int
	Tokens    int
	Priority  Priority
}

var fileHeaderRe = regexp.MustCompile(`(?m)^diff --git a/(\S+) b/(\S+)`)

// Parse splits a raw unified diff into ordered per-file segments. Each file's
// span runs from its header to the next header (or end of input). Empty or
// header-less input yields nil; that is "no files detected", not an error.
func Parse(rawDiff string) []FileDiff {
	headers := fileHeaderRe.FindAllStringSubmatchIndex(rawDiff, -1)
	if len(headers) == 0 {
		return nil
	}

	files := make([]FileDiff, 0, len(headers))
	for i, h := range headers {
		start := h[0]
		end := len(rawDiff)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}

		// Use the b/ (destination) path.
		filePath := rawDiff[h[4]:h[5]]
		content := rawDiff[start:end]
		adds, dels := countChangedLines(content)

		files = append(files, FileDiff{
			Path:      filePath,
			Content:   content,
			Additions: adds,
			Deletions: dels,
			Tokens:    tokens.Estimate(content),
			Priority:  Classify(filePath),
		})
	}

	return files
}

// countChangedLines counts +/- lines, skipping the +++/--- header markers.
func countChangedLines(content string) (adds, dels int) {
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			adds++
		case strings.HasPrefix(line, "-"):
			dels++
		}
	}
	return adds, dels
}
