// Package prompt holds the default system prompts for each generation
// operation. Edge-case diffs get their specialized instructions appended by
// the pipeline.
package prompt

import "fmt"

// Kind identifies a generation operation.
type Kind string

const (
	KindCommit  Kind = "commit"
	KindPRTitle Kind = "pr_title"
	KindPRBody  Kind = "pr_body"
	KindIssue   Kind = "issue"
)

const commitPrompt = `Write a git commit message for the changes below. Follow these rules:
- Subject: imperative mood, no period, max 72 chars
- If the change is non-trivial, add a blank line then a body explaining what and why, not how
- Wrap body lines at 72 chars
- Focus on the meaningful changes; ignore ancillary updates (lock files, generated code, formatting) unless they are the primary purpose
- No emojis
- Output only the commit message, nothing else`

const prTitlePrompt = `Write a pull request title for the changes below. Follow these rules:
- One line, imperative mood, no trailing period, max 72 chars
- Name the most significant change, not the file list
- Output only the title, nothing else`

const prBodyPrompt = `Write a pull request description for the changes below. Follow these rules:
- Start with one or two sentences saying what the change does and why
- Then a short "Changes" section as a bullet list
- Plain markdown, no headings deeper than two levels
- Do not restate the diff file by file
- Output only the description, nothing else`

const issuePrompt = `Write an issue report for the changes or problem described below. Follow these rules:
- First line: a concise issue title
- Then a blank line and a body with context, observed behavior, and scope
- Plain markdown
- Output only the issue content, nothing else`

// System returns the system prompt for the given operation, targeting the
// given output language.
func System(kind Kind, language string) string {
	if language == "" {
		language = "english"
	}

	var base string
	switch kind {
	case KindPRTitle:
		base = prTitlePrompt
	case KindPRBody:
		base = prBodyPrompt
	case KindIssue:
		base = issuePrompt
	default:
		base = commitPrompt
	}

	return fmt.Sprintf("%s\n\nWrite the output in %s.", base, language)
}
