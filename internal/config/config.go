// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Default limits and thresholds for a run. All of them can be overridden via
// the JSON config file or CLI flags.
const (
	DefaultFetchLimit        = 50
	DefaultKeywordTopN       = 20
	DefaultEntityCap         = 5
	DefaultForumTopN         = 3
	DefaultStyleThreshold    = 15
	DefaultSentimentMaxChars = 512
)

// DefaultDenyList holds generic terms that carry no signal about a user's
// interests and are dropped from keyword results.
var DefaultDenyList = []string{
	"reddit", "post", "comment", "thing", "stuff", "people", "time", "day",
	"lot", "way", "something", "anything", "everyone",
}

// Credentials holds the externally provisioned secrets for the content source
// and the model provider. They are supplied out-of-band (environment or
// config file), never via positional CLI arguments.
type Credentials struct {
	RedditClientID     string `json:"reddit_client_id,omitempty"`
	RedditClientSecret string `json:"reddit_client_secret,omitempty"`
	RedditUserAgent    string `json:"reddit_user_agent,omitempty"`
	GeminiAPIKey       string `json:"gemini_api_key,omitempty"`
}

// FillFrom copies fields from other into any fields of c that are empty.
func (c *Credentials) FillFrom(other Credentials) {
	if c.RedditClientID == "" {
		c.RedditClientID = other.RedditClientID
	}
	if c.RedditClientSecret == "" {
		c.RedditClientSecret = other.RedditClientSecret
	}
	if c.RedditUserAgent == "" {
		c.RedditUserAgent = other.RedditUserAgent
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = other.GeminiAPIKey
	}
}

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags.
type Config struct {
	// Target
	Username string `json:"username,omitempty"` // User to analyze
	OutDir   string `json:"out_dir,omitempty"`  // Directory for the report file

	// Limits and thresholds
	FetchLimit        int      `json:"fetch_limit,omitempty" validate:"omitempty,gt=0,lte=100"`         // Per-kind record limit
	KeywordTopN       int      `json:"keyword_top_n,omitempty" validate:"omitempty,gt=0"`               // Max keyword phrases surfaced
	EntityCap         int      `json:"entity_cap,omitempty" validate:"omitempty,gt=0"`                  // Max entities shown in the report
	ForumTopN         int      `json:"forum_top_n,omitempty" validate:"omitempty,gt=0"`                 // Max forums ranked
	StyleThreshold    float64  `json:"style_threshold,omitempty" validate:"omitempty,gt=0"`             // Mean-word-count boundary for Concise/Detailed
	SentimentMaxChars int      `json:"sentiment_max_chars,omitempty" validate:"omitempty,gt=0,lte=512"` // Classifier input window
	DenyList          []string `json:"deny_list,omitempty"`                                             // Keywords to drop (case-insensitive exact)

	// Behavior
	Verbose     bool        `json:"verbose,omitempty"`
	Credentials Credentials `json:"credentials,omitempty"`
}

// validate is shared; validator instances cache struct metadata
var validate = validator.New()

// Defaults returns a Config populated with the package defaults.
func Defaults() Config {
	return Config{
		OutDir:            ".",
		FetchLimit:        DefaultFetchLimit,
		KeywordTopN:       DefaultKeywordTopN,
		EntityCap:         DefaultEntityCap,
		ForumTopN:         DefaultForumTopN,
		StyleThreshold:    DefaultStyleThreshold,
		SentimentMaxChars: DefaultSentimentMaxChars,
		DenyList:          append([]string(nil), DefaultDenyList...),
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields (username, credentials) are checked later, after merging
// flags and environment.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config error: field %q fails constraint %q", f.Field(), f.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.OutDir != "" {
		if info, err := os.Stat(c.OutDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: out_dir %s is not a directory", c.OutDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Used to apply defaults underneath config-file and flag values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Username == "" {
		result.Username = defaults.Username
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.FetchLimit == 0 {
		result.FetchLimit = defaults.FetchLimit
	}
	if result.KeywordTopN == 0 {
		result.KeywordTopN = defaults.KeywordTopN
	}
	if result.EntityCap == 0 {
		result.EntityCap = defaults.EntityCap
	}
	if result.ForumTopN == 0 {
		result.ForumTopN = defaults.ForumTopN
	}
	if result.StyleThreshold == 0 {
		result.StyleThreshold = defaults.StyleThreshold
	}
	if result.SentimentMaxChars == 0 {
		result.SentimentMaxChars = defaults.SentimentMaxChars
	}
	if result.DenyList == nil {
		result.DenyList = defaults.DenyList
	}
	result.Credentials.FillFrom(defaults.Credentials)

	return result
}

// CredentialsFromEnv builds Credentials from the conventional environment
// variables. Empty variables yield empty fields; callers decide which
// credentials are required for the run.
func CredentialsFromEnv() Credentials {
	return Credentials{
		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		RedditUserAgent:    os.Getenv("REDDIT_USER_AGENT"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
	}
}
