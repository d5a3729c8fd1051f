package diffproc

import (
	"path"
	"regexp"
	"strings"
)

// Priority controls whether a file's diff body is eligible for the payload.
// Exclude files only ever contribute a summary line.
type Priority int

const (
	PriorityExclude Priority = iota
	PriorityLow
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityExclude:
		return "exclude"
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// lockFiles maps lock-file basenames to exclusion. Covers the major package
// managers; matched by exact basename so the check wins regardless of
// directory.
var lockFiles = map[string]bool{
	"package-lock.json":   true,
	"npm-shrinkwrap.json": true,
	"yarn.lock":           true,
	"pnpm-lock.yaml":      true,
	"bun.lockb":           true,
	"go.sum":              true,
	"Cargo.lock":          true,
	"composer.lock":       true,
	"Gemfile.lock":        true,
	"Pipfile.lock":        true,
	"poetry.lock":         true,
	"uv.lock":             true,
	"mix.lock":            true,
	"pubspec.lock":        true,
	"packages.lock.json":  true,
	"gradle.lockfile":     true,
	"flake.lock":          true,
}

// generatedPatterns match minified assets, declaration files, snapshots,
// source maps, *.generated.* files, and common build output directories.
var generatedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.min\.(js|css)$`),
	regexp.MustCompile(`\.d\.ts$`),
	regexp.MustCompile(`\.snap$`),
	regexp.MustCompile(`\.map$`),
	regexp.MustCompile(`\.generated\.`),
	regexp.MustCompile(`(^|/)(dist|build|out|coverage|__snapshots__)/`),
}

// Classify maps a file path to its priority tier. The lock-file check runs
// before the generated-path check so a lock file inside a build directory
// still classifies as Exclude.
func Classify(filePath string) Priority {
	normalized := strings.ReplaceAll(filePath, "\\", "/")

	if lockFiles[path.Base(normalized)] {
		return PriorityExclude
	}

	for _, re := range generatedPatterns {
		if re.MatchString(normalized) {
			return PriorityLow
		}
	}

	return PriorityHigh
}
