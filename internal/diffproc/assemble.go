package diffproc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scribeworks/gitscribe/internal/tokens"
)

// Assembled is the result of packing file bodies under a token budget.
type Assembled struct {
	// Content is the summary header plus the packed file bodies, in
	// priority order.
	Content string
	// IncludedCount is the number of files whose full body was packed.
	IncludedCount int
	// SummaryOnlyCount is the number of files represented only in the
	// header: excluded by priority or rejected by the budget.
	SummaryOnlyCount int
	// Overflow holds the files that did not fit, in rejection order.
	Overflow []FileDiff
}

// BuildSummaryHeader renders one summary line with totals, then one bullet
// per file with its own counts and a tag for excluded/generated files.
func BuildSummaryHeader(files []FileDiff) string {
	var totalAdds, totalDels int
	for _, f := range files {
		totalAdds += f.Additions
		totalDels += f.Deletions
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Changes: %d files, +%d/-%d\n", len(files), totalAdds, totalDels)
	for _, f := range files {
		var tag string
		switch f.Priority {
		case PriorityExclude:
			tag = " [LOCK]"
		case PriorityLow:
			tag = " [generated]"
		}
		fmt.Fprintf(&b, "- %s (+%d/-%d)%s\n", f.Path, f.Additions, f.Deletions, tag)
	}
	return b.String()
}

// Assemble greedily packs file bodies after the header until the budget is
// exhausted. Exclude files never contribute a body. Remaining files are
// packed high priority first; the sort is stable so ties keep their original
// diff order. A file that does not fit goes to Overflow and never displaces
// an earlier, higher-priority file; priority order beats utilization here.
func Assemble(files []FileDiff, header string, tokenBudget int) *Assembled {
	res := &Assembled{}
	if len(files) == 0 {
		return res
	}

	remaining := tokenBudget - tokens.Estimate(header)

	excluded := 0
	candidates := make([]FileDiff, 0, len(files))
	for _, f := range files {
		if f.Priority == PriorityExclude {
			excluded++
			continue
		}
		candidates = append(candidates, f)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	var b strings.Builder
	b.WriteString(header)
	for _, f := range candidates {
		if f.Tokens <= remaining {
			b.WriteString(f.Content)
			remaining -= f.Tokens
			res.IncludedCount++
		} else {
			res.Overflow = append(res.Overflow, f)
		}
	}

	res.SummaryOnlyCount = excluded + len(res.Overflow)
	res.Content = b.String()
	return res
}
