package diffproc

import (
	"strings"
	"testing"

	"github.com/scribeworks/gitscribe/internal/tokens"
)

func makeFile(path, body string) FileDiff {
	content := "diff --git a/" + path + " b/" + path + "\n" + body
	f := FileDiff{
		Path:     path,
		Content:  content,
		Tokens:   tokens.Estimate(content),
		Priority: Classify(path),
	}
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			f.Additions++
		}
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			f.Deletions++
		}
	}
	return f
}

func TestAssembleExcludesLockFiles(t *testing.T) {
	files := []FileDiff{
		makeFile("a.ts", "+five\n+added\n+lines\n+of\n+code\n-two\n-removed\n"),
		makeFile("package-lock.json", strings.Repeat("+x\n", 500)+strings.Repeat("-y\n", 300)),
	}

	header := BuildSummaryHeader(files)
	res := Assemble(files, header, 1_000_000)

	if res.IncludedCount != 1 {
		t.Errorf("IncludedCount = %d, want 1", res.IncludedCount)
	}
	if res.SummaryOnlyCount != 1 {
		t.Errorf("SummaryOnlyCount = %d, want 1", res.SummaryOnlyCount)
	}
	if !strings.Contains(res.Content, "diff --git a/a.ts") {
		t.Error("content missing a.ts body")
	}
	if strings.Contains(res.Content, "diff --git a/package-lock.json") {
		t.Error("content must never include a lock file's body")
	}
	// The lock file still appears in the summary header.
	if !strings.Contains(res.Content, "package-lock.json") {
		t.Error("summary header missing lock file entry")
	}
}

func TestAssembleHeaderFormat(t *testing.T) {
	files := []FileDiff{
		makeFile("src/app.go", "+a\n+b\n-c\n"),
		makeFile("go.sum", "+d\n"),
		makeFile("dist/bundle.js", "+e\n"),
	}
	header := BuildSummaryHeader(files)

	if !strings.Contains(header, "3 files") {
		t.Errorf("header missing file count: %q", header)
	}
	if !strings.Contains(header, "+4/-1") {
		t.Errorf("header missing aggregate counts: %q", header)
	}
	if !strings.Contains(header, "go.sum (+1/-0) [LOCK]") {
		t.Errorf("header missing [LOCK] tag: %q", header)
	}
	if !strings.Contains(header, "dist/bundle.js (+1/-0) [generated]") {
		t.Errorf("header missing [generated] tag: %q", header)
	}
	if strings.Contains(header, "src/app.go (+2/-1) [") {
		t.Errorf("high-priority file must carry no tag: %q", header)
	}
}

func TestAssembleRespectsBudget(t *testing.T) {
	files := []FileDiff{
		makeFile("a.go", strings.Repeat("+line of code here\n", 50)),
		makeFile("b.go", strings.Repeat("+another line here\n", 50)),
		makeFile("c.go", strings.Repeat("+yet more content\n", 50)),
	}
	header := BuildSummaryHeader(files)
	budget := tokens.Estimate(header) + files[0].Tokens + 10

	res := Assemble(files, header, budget)

	if got := tokens.Estimate(res.Content); got > budget {
		t.Errorf("assembled content = %d tokens, exceeds budget %d", got, budget)
	}
	if res.IncludedCount != 1 {
		t.Errorf("IncludedCount = %d, want 1", res.IncludedCount)
	}
	if len(res.Overflow) != 2 {
		t.Fatalf("Overflow = %d files, want 2", len(res.Overflow))
	}
	if res.Overflow[0].Path != "b.go" || res.Overflow[1].Path != "c.go" {
		t.Errorf("overflow order = %s, %s; want b.go, c.go", res.Overflow[0].Path, res.Overflow[1].Path)
	}
	if res.SummaryOnlyCount != 2 {
		t.Errorf("SummaryOnlyCount = %d, want 2", res.SummaryOnlyCount)
	}
}

func TestAssembleHighBeforeLow(t *testing.T) {
	// A small generated file must never bump out a larger high-priority one.
	low := makeFile("dist/tiny.js", "+x\n")
	high := makeFile("core.go", strings.Repeat("+important\n", 100))
	files := []FileDiff{low, high}

	header := BuildSummaryHeader(files)
	budget := tokens.Estimate(header) + high.Tokens

	res := Assemble(files, header, budget)

	if !strings.Contains(res.Content, "diff --git a/core.go") {
		t.Error("high-priority body missing from content")
	}
	if strings.Contains(res.Content, "diff --git a/dist/tiny.js") {
		t.Error("low-priority body packed ahead of budget exhaustion")
	}
	if len(res.Overflow) != 1 || res.Overflow[0].Path != "dist/tiny.js" {
		t.Errorf("expected dist/tiny.js in overflow, got %+v", res.Overflow)
	}
}

func TestAssembleStableOrderWithinTier(t *testing.T) {
	files := []FileDiff{
		makeFile("first.go", "+a\n"),
		makeFile("second.go", "+b\n"),
		makeFile("third.go", "+c\n"),
	}
	header := BuildSummaryHeader(files)
	res := Assemble(files, header, 1_000_000)

	iFirst := strings.Index(res.Content, "diff --git a/first.go")
	iSecond := strings.Index(res.Content, "diff --git a/second.go")
	iThird := strings.Index(res.Content, "diff --git a/third.go")
	if !(iFirst < iSecond && iSecond < iThird) {
		t.Errorf("same-tier files reordered: %d, %d, %d", iFirst, iSecond, iThird)
	}
}

func TestAssembleIncludedPathsAppearOnce(t *testing.T) {
	files := []FileDiff{
		makeFile("one.go", "+a\n"),
		makeFile("two.go", "+b\n"),
	}
	header := BuildSummaryHeader(files)
	res := Assemble(files, header, 1_000_000)

	if len(res.Overflow) != 0 {
		t.Fatalf("unexpected overflow: %+v", res.Overflow)
	}
	for _, f := range files {
		if n := strings.Count(res.Content, "diff --git a/"+f.Path); n != 1 {
			t.Errorf("body of %s appears %d times, want 1", f.Path, n)
		}
	}
}

func TestAssembleEmpty(t *testing.T) {
	res := Assemble(nil, "", 1000)
	if res.Content != "" || res.IncludedCount != 0 || res.SummaryOnlyCount != 0 || len(res.Overflow) != 0 {
		t.Errorf("empty input: got %+v, want zero result", res)
	}
}
