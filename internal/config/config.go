// Package config loads the settings of a spotlight run.
//
// Values are layered: built-in defaults, then an optional YAML file, then the
// environment. Command-line flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingToken       = errors.New("GITHUB_TOKEN is not set")
	ErrMissingOutputFile  = errors.New("GITHUB_OUTPUT is not set")
	ErrMissingSummaryFile = errors.New("GITHUB_STEP_SUMMARY is not set")
	ErrMissingMessageFile = errors.New("message file is not set")
	ErrMissingOrg         = errors.New("organization is not set")
	ErrInvalidTopN        = errors.New("top contributor count must be positive")
	ErrInvalidPerPage     = errors.New("page size must be between 1 and 100")
)

// Config holds everything a run needs.
type Config struct {
	Token       string `yaml:"-"`
	OutputFile  string `yaml:"-"`
	SummaryFile string `yaml:"-"`

	Org           string   `yaml:"org"`
	OrgName       string   `yaml:"org_name"`
	TopN          int      `yaml:"top_n"`
	PerPage       int      `yaml:"per_page"`
	Ignore        []string `yaml:"ignore"`
	MessageFile   string   `yaml:"message_file"`
	OutputKey     string   `yaml:"output_key"`
	Concurrency   int      `yaml:"concurrency"`
	WaitRateLimit bool     `yaml:"wait_rate_limit"`
	APIBaseURL    string   `yaml:"api_url"`
	GraphQLURL    string   `yaml:"graphql_url"`
}

// Default returns the documented defaults.
func Default() *Config {
	return &Config{
		Org:         "activist-org",
		OrgName:     "activist",
		TopN:        5,
		PerPage:     100,
		Ignore:      []string{"weblate", "dependabot[bot]", "to-sta"},
		MessageFile: "message.txt",
		OutputKey:   "message",
		Concurrency: 4,
	}
}

// LoadDotEnv loads a .env file from the working directory into the
// environment, leaving variables that are already set untouched.
// It reports whether a file was loaded.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Token = getEnv("GITHUB_TOKEN", c.Token)
	c.OutputFile = getEnv("GITHUB_OUTPUT", c.OutputFile)
	c.SummaryFile = getEnv("GITHUB_STEP_SUMMARY", c.SummaryFile)
	c.APIBaseURL = getEnv("GITHUB_API_URL", c.APIBaseURL)
	c.GraphQLURL = getEnv("GITHUB_GRAPHQL_URL", c.GraphQLURL)
	c.Org = getEnv("SPOTLIGHT_ORG", c.Org)
	c.OrgName = getEnv("SPOTLIGHT_ORG_NAME", c.OrgName)
	c.MessageFile = getEnv("SPOTLIGHT_MESSAGE_FILE", c.MessageFile)

	if v := os.Getenv("SPOTLIGHT_TOP_N"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: SPOTLIGHT_TOP_N: %w", err)
		}
		c.TopN = n
	}
	if v := os.Getenv("SPOTLIGHT_IGNORE"); v != "" {
		c.Ignore = SplitList(v)
	}
	return nil
}

// Validate reports the first missing or invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Token == "":
		return ErrMissingToken
	case c.OutputFile == "":
		return ErrMissingOutputFile
	case c.SummaryFile == "":
		return ErrMissingSummaryFile
	case c.MessageFile == "":
		return ErrMissingMessageFile
	case c.Org == "":
		return ErrMissingOrg
	case c.TopN <= 0:
		return ErrInvalidTopN
	case c.PerPage <= 0 || c.PerPage > 100:
		return ErrInvalidPerPage
	}
	return nil
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
