package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scribeworks/gitscribe/internal/completion"
	"github.com/scribeworks/gitscribe/internal/config"
	"github.com/scribeworks/gitscribe/internal/diffproc"
	"github.com/scribeworks/gitscribe/internal/gitio"
	"github.com/scribeworks/gitscribe/internal/pipeline"
	"github.com/scribeworks/gitscribe/internal/prompt"
	"github.com/scribeworks/gitscribe/internal/secrets"
	"github.com/scribeworks/gitscribe/internal/tokens"
)

var cfgFile string

// ExitFindings is returned by scan when potential secrets are found.
const ExitFindings = 2

func main() {
	rootCmd := &cobra.Command{
		Use:   "gitscribe",
		Short: "Generate commit messages, PRs, and issues from git diffs",
		Long:  "Reads your git changes, budgets them into a model-sized payload, and generates commit messages, pull requests, and issue reports.",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	rootCmd.AddCommand(
		commitCmd(),
		prCmd(),
		issueCmd(),
		scanCmd(),
		diffCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func commitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a commit message for staged changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repo, err := gitio.Open(".", cfg.GitHub.Token)
			if err != nil {
				return err
			}

			diffText, err := collectDiff(cmd.Context(), repo)
			if err != nil {
				return err
			}
			if diffText == "" {
				return fmt.Errorf("no changes to describe")
			}

			background, _ := cmd.Flags().GetString("context")

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}

			res, err := p.Generate(cmd.Context(), prompt.KindCommit, diffText, categoriesFor(repo, diffText), background)
			if err != nil {
				return err
			}

			reportAdvisories(res)
			fmt.Println(res.Message)

			if apply, _ := cmd.Flags().GetBool("apply"); apply {
				if err := repo.Commit(res.Message); err != nil {
					return fmt.Errorf("committing: %w", err)
				}
				slog.Info("commit created")
			}
			return nil
		},
	}

	cmd.Flags().Bool("apply", false, "Create the commit with the generated message")
	cmd.Flags().String("context", "", "Extra context for the generator")

	return cmd
}

func prCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Generate a pull request title and description for the current branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			base, _ := cmd.Flags().GetString("base")
			if base == "" {
				base = cfg.GitHub.BaseBranch
			}

			repo, err := gitio.Open(".", cfg.GitHub.Token)
			if err != nil {
				return err
			}

			diffText, err := repo.BranchDiff(cmd.Context(), base)
			if err != nil {
				return fmt.Errorf("diffing against %s: %w", base, err)
			}
			if diffText == "" {
				return fmt.Errorf("no changes against %s", base)
			}

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}

			cats := categoriesFor(repo, diffText)
			titleRes, err := p.Generate(cmd.Context(), prompt.KindPRTitle, diffText, cats, "")
			if err != nil {
				return err
			}
			bodyRes, err := p.Generate(cmd.Context(), prompt.KindPRBody, diffText, cats, "")
			if err != nil {
				return err
			}

			reportAdvisories(bodyRes)
			fmt.Println(titleRes.Message)
			fmt.Println()
			fmt.Println(bodyRes.Message)

			if create, _ := cmd.Flags().GetBool("create"); create {
				head, err := repo.CurrentBranch()
				if err != nil {
					return err
				}
				if err := repo.Push(); err != nil {
					return fmt.Errorf("pushing %s: %w", head, err)
				}
				number, err := p.OpenPR(cmd.Context(), head, titleRes.Message, bodyRes.Message)
				if err != nil {
					return err
				}
				fmt.Printf("\nPR #%d created\n", number)
			}
			return nil
		},
	}

	cmd.Flags().String("base", "", "Base branch to diff against (default: from config)")
	cmd.Flags().Bool("create", false, "Open the pull request on GitHub")

	return cmd
}

func issueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Generate an issue report from current changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repo, err := gitio.Open(".", cfg.GitHub.Token)
			if err != nil {
				return err
			}

			diffText, err := collectDiff(cmd.Context(), repo)
			if err != nil {
				return err
			}

			background, _ := cmd.Flags().GetString("context")
			if diffText == "" && background == "" {
				return fmt.Errorf("nothing to report: no changes and no --context")
			}

			p, err := newPipeline(cfg)
			if err != nil {
				return err
			}

			res, err := p.Generate(cmd.Context(), prompt.KindIssue, diffText, categoriesFor(repo, diffText), background)
			if err != nil {
				return err
			}

			reportAdvisories(res)
			fmt.Println(res.Message)

			if create, _ := cmd.Flags().GetBool("create"); create {
				number, err := p.OpenIssue(cmd.Context(), res.Message)
				if err != nil {
					return err
				}
				fmt.Printf("\nissue #%d created\n", number)
			}
			return nil
		},
	}

	cmd.Flags().String("context", "", "Problem description to include")
	cmd.Flags().Bool("create", false, "File the issue on GitHub")

	return cmd
}

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan current changes for potential secrets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repo, err := gitio.Open(".", cfg.GitHub.Token)
			if err != nil {
				return err
			}

			diffText, err := collectDiff(cmd.Context(), repo)
			if err != nil {
				return err
			}

			scanner, err := newScanner(cfg)
			if err != nil {
				return err
			}

			result := scanner.Scan(diffText, secrets.DefaultMaxMatches)
			if !result.HasPotentialSecrets {
				fmt.Println("no potential secrets found")
				return nil
			}

			fmt.Println("potential secrets found:")
			for _, id := range result.MatchedPatternIDs {
				fmt.Printf("  - %s\n", id)
			}
			os.Exit(ExitFindings)
			return nil
		},
	}
}

func diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the budgeted payload that would be sent (no API calls)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			repo, err := gitio.Open(".", cfg.GitHub.Token)
			if err != nil {
				return err
			}

			diffText, err := collectDiff(cmd.Context(), repo)
			if err != nil {
				return err
			}
			if diffText == "" {
				fmt.Println("no changes")
				return nil
			}

			budget := cfg.Budget.InputTokens
			if budget <= 0 {
				budget = diffproc.DefaultMaxInputTokens
			}

			files := diffproc.Parse(diffText)
			if len(files) == 0 {
				trunc := diffproc.Truncate(diffText, budget)
				fmt.Print(trunc.Content)
				if trunc.IsTruncated {
					fmt.Fprintf(os.Stderr, "\ntruncated: %d -> %d tokens\n", trunc.OriginalTokens, trunc.TruncatedTokens)
				}
				return nil
			}

			header := diffproc.BuildSummaryHeader(files)
			asm := diffproc.Assemble(files, header, budget)
			fmt.Print(asm.Content)

			counter, err := payloadCounter(cmd, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "\n%d files included, %d summary-only, ~%d tokens\n",
				asm.IncludedCount, asm.SummaryOnlyCount, counter.Count(asm.Content))
			return nil
		},
	}

	cmd.Flags().Bool("exact", false, "Count tokens with the model's tokenizer instead of the byte ratio")

	return cmd
}

// payloadCounter picks the token counter for diff reporting. The budgeting
// path always uses the ratio; --exact only changes what is reported.
func payloadCounter(cmd *cobra.Command, cfg *config.Config) (tokens.Counter, error) {
	exact, _ := cmd.Flags().GetBool("exact")
	if !exact {
		return tokens.RatioCounter{}, nil
	}
	model := cfg.OpenAI.Model
	if cfg.Provider == "anthropic" {
		model = cfg.Anthropic.Model
	}
	counter, err := tokens.NewTiktokenCounter(model)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer: %w", err)
	}
	return counter, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func newPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	scanner, err := newScanner(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg, client, scanner), nil
}

func newClient(cfg *config.Config) (completion.Client, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai API key not configured")
		}
		return completion.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.RequestsPerSec), nil
	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key not configured")
		}
		return completion.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.BaseURL, cfg.Anthropic.Model, cfg.RequestsPerSec), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func newScanner(cfg *config.Config) (*secrets.Scanner, error) {
	scanner := secrets.NewScanner()
	if cfg.SecretsFile != "" {
		if err := scanner.LoadExtra(cfg.SecretsFile); err != nil {
			return nil, fmt.Errorf("loading secret patterns: %w", err)
		}
	}
	return scanner, nil
}

// collectDiff prefers the staged diff; when nothing is staged it falls back
// to the worktree diff.
func collectDiff(ctx context.Context, repo *gitio.Repo) (string, error) {
	staged, err := repo.StagedDiff(ctx)
	if err != nil {
		return "", fmt.Errorf("reading staged diff: %w", err)
	}
	if staged != "" {
		return staged, nil
	}
	worktree, err := repo.WorktreeDiff(ctx)
	if err != nil {
		return "", fmt.Errorf("reading worktree diff: %w", err)
	}
	return worktree, nil
}

// categoriesFor builds file categories from repo status; on status failure it
// returns nil and detection falls back to content-only checks.
func categoriesFor(repo *gitio.Repo, diffText string) *gitio.FileCategories {
	entries, err := repo.Status()
	if err != nil {
		slog.Debug("status unavailable", "error", err)
		return nil
	}
	return gitio.BuildCategories(entries, gitio.BinaryPaths(diffText))
}

func reportAdvisories(res *pipeline.Result) {
	if res.Secrets.HasPotentialSecrets {
		fmt.Fprintf(os.Stderr, "warning: diff may contain secrets (%v); review before sharing\n", res.Secrets.MatchedPatternIDs)
	}
	if res.Truncated {
		fmt.Fprintln(os.Stderr, "note: diff was truncated to fit the input budget")
	}
	if len(res.OverflowFiles) > 0 {
		fmt.Fprintf(os.Stderr, "note: %d files summarized only (over budget): %v\n", len(res.OverflowFiles), res.OverflowFiles)
	}
}
