package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for gitscribe.
type Config struct {
	Provider        string          `mapstructure:"provider"`
	Language        string          `mapstructure:"language"`
	ReasoningEffort string          `mapstructure:"reasoning_effort"`
	RequestsPerSec  float64         `mapstructure:"requests_per_sec"`
	SecretsFile     string          `mapstructure:"secrets_file"`
	LogLevel        string          `mapstructure:"log_level"`
	Budget          BudgetConfig    `mapstructure:"budget"`
	OpenAI          ProviderConfig  `mapstructure:"openai"`
	Anthropic       ProviderConfig  `mapstructure:"anthropic"`
	GitHub          GitHubConfig    `mapstructure:"github"`
}

// BudgetConfig holds the token allocations. Input is the estimated-token
// ceiling for the assembled payload; the rest are per-operation output
// allocations.
type BudgetConfig struct {
	InputTokens   int `mapstructure:"input_tokens"`
	CommitTokens  int `mapstructure:"commit_tokens"`
	PRTitleTokens int `mapstructure:"pr_title_tokens"`
	PRBodyTokens  int `mapstructure:"pr_body_tokens"`
	IssueTokens   int `mapstructure:"issue_tokens"`
}

// ProviderConfig holds per-provider API settings.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// GitHubConfig holds GitHub-related settings for PR and issue creation.
type GitHubConfig struct {
	Token      string `mapstructure:"token"`
	Owner      string `mapstructure:"owner"`
	Repo       string `mapstructure:"repo"`
	BaseBranch string `mapstructure:"base_branch"`
}

// Load reads configuration from file, environment, and defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("provider", "openai")
	v.SetDefault("language", "english")
	v.SetDefault("reasoning_effort", "medium")
	v.SetDefault("requests_per_sec", 2.0)
	v.SetDefault("log_level", "info")
	v.SetDefault("budget.input_tokens", 200000)
	v.SetDefault("budget.commit_tokens", 4000)
	v.SetDefault("budget.pr_title_tokens", 500)
	v.SetDefault("budget.pr_body_tokens", 8000)
	v.SetDefault("budget.issue_tokens", 12000)
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("anthropic.base_url", "https://api.anthropic.com/v1")
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("github.base_branch", "main")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/gitscribe")
	}

	// Environment variables
	v.SetEnvPrefix("GITSCRIBE")
	v.AutomaticEnv()

	// Bind specific env vars
	_ = v.BindEnv("github.token", "GITHUB_TOKEN")
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("provider", "GITSCRIBE_PROVIDER")
	_ = v.BindEnv("language", "GITSCRIBE_LANGUAGE")
	_ = v.BindEnv("reasoning_effort", "GITSCRIBE_REASONING_EFFORT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
