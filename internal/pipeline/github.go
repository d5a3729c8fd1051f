package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// splitTitleBody separates the first line of a generated message from the
// rest, for APIs that take title and body as distinct fields.
func splitTitleBody(message string) (string, string) {
	for i := 0; i < len(message); i++ {
		if message[i] == '\n' {
			title := message[:i]
			body := message[i+1:]
			for len(body) > 0 && body[0] == '\n' {
				body = body[1:]
			}
			return title, body
		}
	}
	return message, ""
}

// OpenPR creates a pull request from head against the configured base branch.
// title and body are the already-generated (and sanitized) texts.
func (p *Pipeline) OpenPR(ctx context.Context, head, title, body string) (int, error) {
	gh := p.cfg.GitHub
	if gh.Token == "" {
		return 0, fmt.Errorf("github token not configured")
	}
	if gh.Owner == "" || gh.Repo == "" {
		return 0, fmt.Errorf("github owner/repo not configured")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: gh.Token})
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	pr, _, err := client.PullRequests.Create(ctx, gh.Owner, gh.Repo, &github.NewPullRequest{
		Title: &title,
		Body:  &body,
		Head:  &head,
		Base:  &gh.BaseBranch,
	})
	if err != nil {
		return 0, fmt.Errorf("creating PR: %w", err)
	}

	slog.Info("PR created",
		"number", pr.GetNumber(),
		"head", head,
		"base", gh.BaseBranch,
		"url", pr.GetHTMLURL())

	return pr.GetNumber(), nil
}

// OpenIssue files an issue from a generated message. The first line becomes
// the issue title, the remainder the body.
func (p *Pipeline) OpenIssue(ctx context.Context, message string) (int, error) {
	gh := p.cfg.GitHub
	if gh.Token == "" {
		return 0, fmt.Errorf("github token not configured")
	}
	if gh.Owner == "" || gh.Repo == "" {
		return 0, fmt.Errorf("github owner/repo not configured")
	}

	title, body := splitTitleBody(message)

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: gh.Token})
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	issue, _, err := client.Issues.Create(ctx, gh.Owner, gh.Repo, &github.IssueRequest{
		Title: &title,
		Body:  &body,
	})
	if err != nil {
		return 0, fmt.Errorf("creating issue: %w", err)
	}

	slog.Info("issue created",
		"number", issue.GetNumber(),
		"url", issue.GetHTMLURL())

	return issue.GetNumber(), nil
}
