package gitio

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
)

func initRepo(t *testing.T) (*Repo, string) {
	t.Helper()
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	repo, err := Open(dir, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return repo, dir
}

func TestOpenMissingRepo(t *testing.T) {
	if _, err := Open(t.TempDir(), ""); err == nil {
		t.Fatal("Open on a non-repo dir should fail")
	}
}

func TestStatusSortedByPath(t *testing.T) {
	repo, dir := initRepo(t)

	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	entries, err := repo.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Status returned %d entries, want 3: %v", len(entries), entries)
	}
	want := []string{"a.txt", "b.txt", "c.txt"}
	for i, w := range want {
		if entries[i].Path != w {
			t.Errorf("entries[%d].Path = %q, want %q", i, entries[i].Path, w)
		}
	}
}

func TestPushWithoutRemote(t *testing.T) {
	repo, _ := initRepo(t)

	if err := repo.Push(); err == nil {
		t.Fatal("Push without an origin remote should fail")
	}
}
