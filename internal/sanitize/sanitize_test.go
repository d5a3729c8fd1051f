package sanitize

import (
	"strings"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	in := "```\nfix: handle nil pointer in parser\n```"
	if got := Sanitize(in); got != "fix: handle nil pointer in parser" {
		t.Errorf("got %q", got)
	}
}

func TestStripCodeFencesWithLanguageTag(t *testing.T) {
	in := "```text\nfeat: add retry logic\n```\n"
	if got := Sanitize(in); got != "feat: add retry logic" {
		t.Errorf("got %q", got)
	}
}

func TestDefangCommandSubstitution(t *testing.T) {
	got := Sanitize("fix: escape $(rm -rf /) in output")
	if strings.Contains(got, "$(") && !strings.Contains(got, `\$(`) {
		t.Errorf("command substitution not defanged: %q", got)
	}
}

func TestDefangVariableExpansion(t *testing.T) {
	got := Sanitize("use ${HOME} for config")
	if !strings.Contains(got, `\${HOME}`) {
		t.Errorf("variable expansion not defanged: %q", got)
	}
}

func TestBackticksBecomeSingleQuotes(t *testing.T) {
	got := Sanitize("rename `oldFunc` to `newFunc`")
	if got != "rename 'oldFunc' to 'newFunc'" {
		t.Errorf("got %q", got)
	}
}

func TestStrayBacktick(t *testing.T) {
	got := Sanitize("a stray ` backtick")
	if strings.Contains(got, "`") {
		t.Errorf("stray backtick survived: %q", got)
	}
}

func TestTypographyNormalized(t *testing.T) {
	got := Sanitize("fix “smart” quotes — and dashes…")
	want := `fix "smart" quotes - and dashes...`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestControlCharBetweenDollarAndBracket(t *testing.T) {
	got := Sanitize("run $\x01(cmd)")
	if got != `run \$(cmd)` {
		t.Errorf("got %q, want %q", got, `run \$(cmd)`)
	}
	got = Sanitize("use $\x1b{VAR}")
	if got != `use \${VAR}` {
		t.Errorf("got %q, want %q", got, `use \${VAR}`)
	}
}

func TestControlCharsRemoved(t *testing.T) {
	got := Sanitize("keep\ttabs\nand newlines\x00\x1b but not these")
	if strings.ContainsAny(got, "\x00\x1b") {
		t.Errorf("control chars survived: %q", got)
	}
	if !strings.Contains(got, "\t") || !strings.Contains(got, "\n") {
		t.Errorf("tab or newline stripped: %q", got)
	}
}

func TestNewlinesCollapsed(t *testing.T) {
	got := Sanitize("subject\n\n\n\n\nbody")
	if got != "subject\n\nbody" {
		t.Errorf("got %q", got)
	}
}

func TestBlankLineOnlySeparators(t *testing.T) {
	got := Sanitize("subject\n   \t\nbody")
	if got != "subject\n\nbody" {
		t.Errorf("got %q", got)
	}
}

func TestTrailingPeriodStripped(t *testing.T) {
	if got := Sanitize("fix: remove dead code."); got != "fix: remove dead code" {
		t.Errorf("got %q", got)
	}
	// Only the first line is touched.
	got := Sanitize("subject.\n\nThe body keeps its period.")
	if got != "subject\n\nThe body keeps its period." {
		t.Errorf("got %q", got)
	}
}

func TestEllipsisKept(t *testing.T) {
	if got := Sanitize("work in progress..."); got != "work in progress..." {
		t.Errorf("got %q", got)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain message",
		"```\nfenced.\n```",
		"nested $(cmd $(inner)) calls",
		"$($(adjacent))",
		"run $\x01(cmd)",
		"use $\x1b{VAR} twice $\x00{VAR}",
		"${VAR} and `tick` and “quote”…",
		"first line.\n\n\n\nbody with ${X}\n",
		"trailing period.",
		"lone backtick ` here",
		"  \n\t\nwhitespace soup\n \n\n\n.",
		"dots..",
		"dots...",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}
