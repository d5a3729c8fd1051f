package gitio

import (
	"regexp"
	"strings"
)

// StatusEntry is one changed path with its single-character status codes,
// as reported by the status collaborator. Renamed entries carry
// "old -> new" in Path.
type StatusEntry struct {
	Path     string
	Index    byte
	Worktree byte
}

// Rename is an ordered from/to pair.
type Rename struct {
	From string
	To   string
}

// FileCategories partitions a changeset's paths. Every changed path lands in
// exactly one category; renames use the pair, not the individual paths.
type FileCategories struct {
	Added    []string
	Modified []string
	Deleted  []string
	Renamed  []Rename
	Binary   []string
}

// NonEmptyCount returns how many categories hold at least one entry.
func (c *FileCategories) NonEmptyCount() int {
	n := 0
	if len(c.Added) > 0 {
		n++
	}
	if len(c.Modified) > 0 {
		n++
	}
	if len(c.Deleted) > 0 {
		n++
	}
	if len(c.Renamed) > 0 {
		n++
	}
	if len(c.Binary) > 0 {
		n++
	}
	return n
}

// BuildCategories folds raw status entries into categories. binaryPaths are
// paths known to be binary from the diff text; a binary path is moved out of
// whatever status category it would otherwise occupy.
func BuildCategories(entries []StatusEntry, binaryPaths []string) *FileCategories {
	binary := make(map[string]bool, len(binaryPaths))
	for _, p := range binaryPaths {
		binary[p] = true
	}

	cats := &FileCategories{}
	for _, e := range entries {
		status := e.Index
		if status == ' ' || status == 0 {
			status = e.Worktree
		}

		if status == 'R' || strings.Contains(e.Path, " -> ") {
			from, to := splitRename(e.Path)
			if binary[to] {
				cats.Binary = append(cats.Binary, to)
			} else {
				cats.Renamed = append(cats.Renamed, Rename{From: from, To: to})
			}
			continue
		}

		if binary[e.Path] {
			cats.Binary = append(cats.Binary, e.Path)
			continue
		}

		switch status {
		case 'A', '?':
			cats.Added = append(cats.Added, e.Path)
		case 'D':
			cats.Deleted = append(cats.Deleted, e.Path)
		default:
			cats.Modified = append(cats.Modified, e.Path)
		}
	}
	return cats
}

var binaryLineRe = regexp.MustCompile(`(?m)^Binary files a/(.+) and b/.+ differ$`)

// BinaryPaths extracts the paths git marked as binary in a unified diff.
func BinaryPaths(diffText string) []string {
	var paths []string
	for _, m := range binaryLineRe.FindAllStringSubmatch(diffText, -1) {
		paths = append(paths, m[1])
	}
	return paths
}

func splitRename(path string) (from, to string) {
	if i := strings.Index(path, " -> "); i >= 0 {
		return path[:i], path[i+4:]
	}
	return path, path
}
