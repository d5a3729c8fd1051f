// Package secrets flags likely credentials in diff text before it is sent
// to an external API. Detection is advisory: matches are surfaced for user
// confirmation, never used to silently block submission, since false
// positives are expected.
package secrets

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DefaultMaxMatches caps how many pattern ids a single scan collects.
const DefaultMaxMatches = 5

// Pattern is one named detector in the ordered table.
type Pattern struct {
	ID     string `yaml:"id"`
	Regex  string `yaml:"pattern"`
	re     *regexp.Regexp
}

// Result reports what a scan found.
type Result struct {
	HasPotentialSecrets bool
	MatchedPatternIDs   []string
}

// builtins is the fixed ordered pattern table. Order matters: ids are
// collected in table order until the match cap is reached.
var builtins = []Pattern{
	{ID: "aws_access_key_id", re: regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`)},
	{ID: "github_token", re: regexp.MustCompile(`\b(?:ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9]{36,}\b`)},
	{ID: "github_fine_grained_pat", re: regexp.MustCompile(`\bgithub_pat_[A-Za-z0-9_]{70,}\b`)},
	{ID: "gitlab_token", re: regexp.MustCompile(`\bglpat-[A-Za-z0-9_-]{20,}\b`)},
	{ID: "slack_token", re: regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`)},
	{ID: "stripe_secret_key", re: regexp.MustCompile(`\bsk_live_[A-Za-z0-9]{24,}\b`)},
	{ID: "openai_project_api_key", re: regexp.MustCompile(`\bsk-proj-[A-Za-z0-9_-]{20,}\b`)},
	{ID: "anthropic_api_key", re: regexp.MustCompile(`\bsk-ant-[A-Za-z0-9_-]{20,}\b`)},
	{ID: "openai_api_key", re: regexp.MustCompile(`\bsk-[A-Za-z0-9]{32,}\b`)},
	{ID: "google_api_key", re: regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}\b`)},
	{ID: "private_key_block", re: regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY-----`)},
	{ID: "connection_string_credentials", re: regexp.MustCompile(`[a-z][a-z0-9+.-]*://[^/\s:@]+:[^@\s]+@`)},
	{ID: "env_credential_assignment", re: regexp.MustCompile(`(?m)\b[A-Z][A-Z0-9_]*(?:API_KEY|SECRET|TOKEN|PASSWORD)\s*=\s*['"]?[^\s'"]{8,}`)},
}

// Scanner holds an ordered pattern list: the built-ins plus any patterns
// loaded from a user file.
type Scanner struct {
	patterns []Pattern
}

// NewScanner returns a scanner with the built-in pattern table.
func NewScanner() *Scanner {
	return &Scanner{patterns: builtins}
}

// LoadExtra appends patterns from a YAML file (a list of {id, pattern}
// entries). Built-in ids keep their precedence; loaded patterns are checked
// after them in file order.
func (s *Scanner) LoadExtra(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading pattern file: %w", err)
	}

	var extra []Pattern
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("parsing pattern file: %w", err)
	}

	for _, p := range extra {
		re, err := regexp.Compile(p.Regex)
		if err != nil {
			return fmt.Errorf("compiling pattern %q: %w", p.ID, err)
		}
		p.re = re
		s.patterns = append(s.patterns, p)
	}
	return nil
}

// Scan tests each pattern against text in table order, collecting matching
// ids until maxMatches are found. Empty text or a non-positive cap
// short-circuits to an empty, negative result.
func (s *Scanner) Scan(text string, maxMatches int) Result {
	if text == "" || maxMatches <= 0 {
		return Result{}
	}

	var ids []string
	for _, p := range s.patterns {
		if p.re.MatchString(text) {
			ids = append(ids, p.ID)
			if len(ids) >= maxMatches {
				break
			}
		}
	}

	return Result{
		HasPotentialSecrets: len(ids) > 0,
		MatchedPatternIDs:   ids,
	}
}

// Scan runs the built-in table with the default match cap.
func Scan(text string) Result {
	return NewScanner().Scan(text, DefaultMaxMatches)
}
