// Package gitio collects changes from a Git repository and applies generated
// commit messages back to it.
package gitio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// Repo wraps a local repository.
type Repo struct {
	path     string
	repo     *git.Repository
	worktree *git.Worktree
	token    string
}

// Open opens the repository at path. token is used for pushes and may be
// empty for local-only use.
func Open(path, token string) (*Repo, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	return &Repo{path: path, repo: repo, worktree: wt, token: token}, nil
}

// StagedDiff returns the unified diff of staged changes against HEAD.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	return r.runGit(ctx, "diff", "--cached")
}

// WorktreeDiff returns the unified diff of unstaged changes.
func (r *Repo) WorktreeDiff(ctx context.Context) (string, error) {
	return r.runGit(ctx, "diff")
}

// BranchDiff returns the unified diff of the current branch against base.
func (r *Repo) BranchDiff(ctx context.Context, base string) (string, error) {
	return r.runGit(ctx, "diff", base+"...HEAD")
}

// runGit shells out for diff rendering; go-git has no unified-diff text
// output for the index, and the diff text must match what git produces.
func (r *Repo) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.path
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %v: %w: %s", args, err, stderr.String())
	}
	return out.String(), nil
}

// Status returns one entry per changed path, ordered by path. The underlying
// status is a map, so without the sort the order would vary between runs.
func (r *Repo) Status() ([]StatusEntry, error) {
	st, err := r.worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}

	var entries []StatusEntry
	for path, fs := range st {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		entryPath := path
		if fs.Staging == git.Renamed && fs.Extra != "" {
			entryPath = fs.Extra + " -> " + path
		}
		entries = append(entries, StatusEntry{
			Path:     entryPath,
			Index:    byte(fs.Staging),
			Worktree: byte(fs.Worktree),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// CurrentBranch returns the short name of the checked-out branch.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// Commit commits the staged changes with the given message using the
// repository's configured author.
func (r *Repo) Commit(message string) error {
	cfg, err := r.repo.ConfigScoped(gitconfig.GlobalScope)
	if err != nil {
		return fmt.Errorf("reading git config: %w", err)
	}

	_, err = r.worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  cfg.User.Name,
			Email: cfg.User.Email,
			When:  time.Now(),
		},
	})
	return err
}

// Push pushes the current branch to origin.
func (r *Repo) Push() error {
	opts := &git.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec("+refs/heads/*:refs/heads/*")},
	}
	if r.token != "" {
		opts.Auth = &githttp.BasicAuth{
			Username: "x-access-token",
			Password: r.token,
		}
	}
	return r.repo.Push(opts)
}
