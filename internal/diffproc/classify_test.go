package diffproc

import "testing"

func TestClassifyLockFiles(t *testing.T) {
	locks := []string{
		"package-lock.json",
		"yarn.lock",
		"pnpm-lock.yaml",
		"go.sum",
		"Cargo.lock",
		"composer.lock",
		"Gemfile.lock",
		"poetry.lock",
	}
	for _, p := range locks {
		if got := Classify(p); got != PriorityExclude {
			t.Errorf("Classify(%q) = %v, want exclude", p, got)
		}
	}
}

func TestClassifyLockFilePrecedesGenerated(t *testing.T) {
	// A lock file inside a build directory matches both rules; exclude wins.
	if got := Classify("dist/package-lock.json"); got != PriorityExclude {
		t.Errorf("Classify(dist/package-lock.json) = %v, want exclude", got)
	}
}

func TestClassifyGenerated(t *testing.T) {
	cases := []string{
		"assets/app.min.js",
		"styles/site.min.css",
		"types/index.d.ts",
		"src/__snapshots__/view.test.tsx.snap",
		"dist/bundle.js",
		"build/output.txt",
		"out/main.o",
		"coverage/lcov.info",
		"api/client.generated.ts",
		"app.js.map",
	}
	for _, p := range cases {
		if got := Classify(p); got != PriorityLow {
			t.Errorf("Classify(%q) = %v, want low", p, got)
		}
	}
}

func TestClassifySource(t *testing.T) {
	cases := []string{
		"src/main.go",
		"internal/server/handler.go",
		"README.md",
		"cmd/app/main.ts",
		"distance.go", // "dist" must only match as a directory
	}
	for _, p := range cases {
		if got := Classify(p); got != PriorityHigh {
			t.Errorf("Classify(%q) = %v, want high", p, got)
		}
	}
}

func TestClassifyNormalizesSeparators(t *testing.T) {
	if got := Classify(`dist\bundle.js`); got != PriorityLow {
		t.Errorf("Classify(dist\\bundle.js) = %v, want low", got)
	}
	if got := Classify(`vendor\package-lock.json`); got != PriorityExclude {
		t.Errorf("Classify(vendor\\package-lock.json) = %v, want exclude", got)
	}
}
