package diffproc

import (
	"strings"

	"github.com/scribeworks/gitscribe/internal/tokens"
)

// DefaultMaxInputTokens is the input ceiling shared by the structured
// assembler path and this string-level fallback.
const DefaultMaxInputTokens = 200_000

const (
	fileBoundary  = "\ndiff --git "
	lineLookahead = 200
)

// Truncated reports a string-level truncation with before/after counts.
type Truncated struct {
	Content         string
	IsTruncated     bool
	OriginalTokens  int
	TruncatedTokens int
}

// Truncate trims an already-serialized diff to maxTokens estimated tokens
// when no parsed structure is available. It prefers cutting at a file
// boundary when one exists past the halfway point of the target length, and
// otherwise nudges the cut forward to the next newline so a line is never
// split. It always returns some valid prefix.
func Truncate(diff string, maxTokens int) Truncated {
	orig := tokens.Estimate(diff)
	if orig <= maxTokens {
		return Truncated{Content: diff, OriginalTokens: orig, TruncatedTokens: orig}
	}

	target := maxTokens * tokens.CharsPerToken
	if target > len(diff) {
		target = len(diff)
	}
	if target < 0 {
		target = 0
	}

	cut := target
	if idx := strings.LastIndex(diff[:cut], fileBoundary); idx > target/2 {
		cut = idx
	} else {
		window := cut + lineLookahead
		if window > len(diff) {
			window = len(diff)
		}
		if nl := strings.IndexByte(diff[cut:window], '\n'); nl >= 0 {
			cut += nl
		}
	}

	content := diff[:cut]
	return Truncated{
		Content:         content,
		IsTruncated:     true,
		OriginalTokens:  orig,
		TruncatedTokens: tokens.Estimate(content),
	}
}
