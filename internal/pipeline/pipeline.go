// Package pipeline wires the diff-processing core to the completion call:
// parse, budget, scan, complete, sanitize.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scribeworks/gitscribe/internal/completion"
	"github.com/scribeworks/gitscribe/internal/config"
	"github.com/scribeworks/gitscribe/internal/diffproc"
	"github.com/scribeworks/gitscribe/internal/edgecase"
	"github.com/scribeworks/gitscribe/internal/gitio"
	"github.com/scribeworks/gitscribe/internal/prompt"
	"github.com/scribeworks/gitscribe/internal/sanitize"
	"github.com/scribeworks/gitscribe/internal/secrets"
)

// Pipeline orchestrates one generation operation.
type Pipeline struct {
	cfg     *config.Config
	client  completion.Client
	scanner *secrets.Scanner
}

// New creates a pipeline around a completion client.
func New(cfg *config.Config, client completion.Client, scanner *secrets.Scanner) *Pipeline {
	if scanner == nil {
		scanner = secrets.NewScanner()
	}
	return &Pipeline{cfg: cfg, client: client, scanner: scanner}
}

// Result is the outcome of one generation.
type Result struct {
	// Message is the sanitized model output.
	Message string
	// Payload is the budgeted diff text that was sent.
	Payload string
	// EdgeCase is the detected change pattern, if any.
	EdgeCase edgecase.Kind
	// IncludedFiles / SummaryOnlyFiles reconcile against the parsed file
	// list; see OverflowFiles for budget rejections specifically.
	IncludedFiles    int
	SummaryOnlyFiles int
	OverflowFiles    []string
	// Truncated is set when the string-level fallback trimmed the diff.
	Truncated bool
	// Secrets is advisory: surface it to the user, never block on it.
	Secrets secrets.Result
}

// Generate builds a budgeted payload from the diff, runs the completion
// call, and sanitizes the reply. cats may be nil when no status information
// is available. background, when non-empty, is prepended to the payload as
// extra author-supplied context.
func (p *Pipeline) Generate(ctx context.Context, kind prompt.Kind, diffText string, cats *gitio.FileCategories, background string) (*Result, error) {
	res := &Result{}

	p.buildPayload(diffText, res)

	res.EdgeCase = edgecase.Detect(diffText, cats)
	system := prompt.System(kind, p.cfg.Language)
	if res.EdgeCase != edgecase.KindNone {
		system += "\n\n" + edgecase.Prompt(res.EdgeCase, edgecase.PromptOptions{
			Language:   p.cfg.Language,
			Categories: cats,
		})
	}

	// Advisory only. A hit here must reach the user as a warning; it is
	// never a gate (false positives are expected). The scan covers the
	// assembled payload, so it reports what will actually be sent.
	res.Secrets = p.scanner.Scan(res.Payload, secrets.DefaultMaxMatches)
	if res.Secrets.HasPotentialSecrets {
		slog.Warn("possible secrets in diff",
			"patterns", res.Secrets.MatchedPatternIDs)
	}

	user := res.Payload
	if background != "" {
		user = "Context from the author:\n" + background + "\n\n" + user
	}

	resp, err := p.client.Complete(ctx, completion.Request{
		System:          system,
		User:            user,
		MaxTokens:       p.outputTokens(kind),
		ReasoningEffort: p.cfg.ReasoningEffort,
	})
	if err != nil {
		return nil, fmt.Errorf("completion call: %w", err)
	}

	res.Message = sanitize.Sanitize(resp.Content)

	slog.Info("generation complete",
		"kind", string(kind),
		"included", res.IncludedFiles,
		"summary_only", res.SummaryOnlyFiles,
		"truncated", res.Truncated,
		"edge_case", string(res.EdgeCase))

	return res, nil
}

// buildPayload prefers the structured assembler; when the diff has no
// parseable file structure it falls back to string-level truncation.
func (p *Pipeline) buildPayload(diffText string, res *Result) {
	budget := p.cfg.Budget.InputTokens
	if budget <= 0 {
		budget = diffproc.DefaultMaxInputTokens
	}

	files := diffproc.Parse(diffText)
	if len(files) == 0 {
		trunc := diffproc.Truncate(diffText, budget)
		res.Payload = trunc.Content
		res.Truncated = trunc.IsTruncated
		return
	}

	header := diffproc.BuildSummaryHeader(files)
	asm := diffproc.Assemble(files, header, budget)
	res.Payload = asm.Content
	res.IncludedFiles = asm.IncludedCount
	res.SummaryOnlyFiles = asm.SummaryOnlyCount
	for _, f := range asm.Overflow {
		res.OverflowFiles = append(res.OverflowFiles, f.Path)
	}
}

func (p *Pipeline) outputTokens(kind prompt.Kind) int {
	switch kind {
	case prompt.KindPRTitle:
		return p.cfg.Budget.PRTitleTokens
	case prompt.KindPRBody:
		return p.cfg.Budget.PRBodyTokens
	case prompt.KindIssue:
		return p.cfg.Budget.IssueTokens
	default:
		return p.cfg.Budget.CommitTokens
	}
}
