package edgecase

import (
	"fmt"
	"strings"

	"github.com/scribeworks/gitscribe/internal/gitio"
)

// PromptOptions carries the inputs the templates embed.
type PromptOptions struct {
	Language   string
	Categories *gitio.FileCategories
}

// Prompt returns the specialized instruction text for the given kind. Every
// template names the kind of change it covers and embeds the relevant file
// lists. KindNone yields "".
func Prompt(kind Kind, opts PromptOptions) string {
	lang := opts.Language
	if lang == "" {
		lang = "english"
	}

	var b strings.Builder
	switch kind {
	case KindWhitespaceOnly:
		b.WriteString("This change only adjusts whitespace and formatting; no code behavior changes.\n")
		b.WriteString("Describe it as a formatting/style cleanup. Do not invent functional changes.\n")

	case KindBinaryFiles:
		b.WriteString("This change only touches binary files; there is no readable diff content.\n")
		if opts.Categories != nil && len(opts.Categories.Binary) > 0 {
			b.WriteString("Binary files changed:\n")
			for _, p := range opts.Categories.Binary {
				fmt.Fprintf(&b, "- %s\n", p)
			}
		}
		b.WriteString("Describe the change in terms of the affected assets.\n")

	case KindDeletionsOnly:
		b.WriteString("This change only deletes files.\n")
		if opts.Categories != nil && len(opts.Categories.Deleted) > 0 {
			b.WriteString("Deleted files:\n")
			for _, p := range opts.Categories.Deleted {
				fmt.Fprintf(&b, "- %s\n", p)
			}
		}
		b.WriteString("Describe what was removed and, if evident, why.\n")

	case KindRenamesOnly:
		b.WriteString("This change only renames or moves files; contents are unchanged.\n")
		if opts.Categories != nil && len(opts.Categories.Renamed) > 0 {
			b.WriteString("Renames:\n")
			for _, r := range opts.Categories.Renamed {
				fmt.Fprintf(&b, "- %s -> %s\n", r.From, r.To)
			}
		}
		b.WriteString("Describe the reorganization, not file contents.\n")

	case KindMixedOperations:
		b.WriteString("This change mixes several kinds of operations.\n")
		if c := opts.Categories; c != nil {
			if len(c.Added) > 0 {
				fmt.Fprintf(&b, "Added: %s\n", strings.Join(c.Added, ", "))
			}
			if len(c.Modified) > 0 {
				fmt.Fprintf(&b, "Modified: %s\n", strings.Join(c.Modified, ", "))
			}
			if len(c.Deleted) > 0 {
				fmt.Fprintf(&b, "Deleted: %s\n", strings.Join(c.Deleted, ", "))
			}
			if len(c.Renamed) > 0 {
				pairs := make([]string, 0, len(c.Renamed))
				for _, r := range c.Renamed {
					pairs = append(pairs, r.From+" -> "+r.To)
				}
				fmt.Fprintf(&b, "Renamed: %s\n", strings.Join(pairs, ", "))
			}
			if len(c.Binary) > 0 {
				fmt.Fprintf(&b, "Binary: %s\n", strings.Join(c.Binary, ", "))
			}
		}
		b.WriteString("Summarize the dominant change first, then the rest.\n")

	default:
		return ""
	}

	fmt.Fprintf(&b, "Write the output in %s.\n", lang)
	return b.String()
}
