package tokens

import (
	"strings"
	"testing"
)

func TestEstimateEmpty(t *testing.T) {
	if got := Estimate(""); got != 0 {
		t.Errorf("Estimate(\"\") = %d, want 0", got)
	}
}

func TestEstimateRoundsUp(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"abcdefgh", 2},
		{strings.Repeat("x", 4000), 1000},
		{strings.Repeat("x", 4001), 1001},
	}
	for _, c := range cases {
		if got := Estimate(c.text); got != c.want {
			t.Errorf("Estimate(%d chars) = %d, want %d", len(c.text), got, c.want)
		}
	}
}

func TestEstimateNonNegative(t *testing.T) {
	inputs := []string{"", "\n", "\x00", strings.Repeat("z", 123)}
	for _, in := range inputs {
		if got := Estimate(in); got < 0 {
			t.Errorf("Estimate(%q) = %d, want >= 0", in, got)
		}
	}
}

func TestRatioCounterMatchesEstimate(t *testing.T) {
	var c Counter = RatioCounter{}
	for _, in := range []string{"", "hello", strings.Repeat("q", 17)} {
		if c.Count(in) != Estimate(in) {
			t.Errorf("RatioCounter.Count(%q) = %d, want %d", in, c.Count(in), Estimate(in))
		}
	}
}
