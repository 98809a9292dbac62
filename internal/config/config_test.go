package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"GITHUB_TOKEN", "GITHUB_OUTPUT", "GITHUB_STEP_SUMMARY", "GITHUB_API_URL", "GITHUB_GRAPHQL_URL",
	"SPOTLIGHT_ORG", "SPOTLIGHT_ORG_NAME", "SPOTLIGHT_MESSAGE_FILE", "SPOTLIGHT_TOP_N", "SPOTLIGHT_IGNORE",
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, []string{"weblate", "dependabot[bot]", "to-sta"}, cfg.Ignore)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "secret")
	t.Setenv("GITHUB_OUTPUT", "/tmp/out")
	t.Setenv("GITHUB_STEP_SUMMARY", "/tmp/summary")
	t.Setenv("SPOTLIGHT_ORG", "acme")
	t.Setenv("SPOTLIGHT_ORG_NAME", "Acme")
	t.Setenv("SPOTLIGHT_TOP_N", "3")
	t.Setenv("SPOTLIGHT_IGNORE", "renovate[bot], ,github-actions[bot]")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, "/tmp/out", cfg.OutputFile)
	assert.Equal(t, "/tmp/summary", cfg.SummaryFile)
	assert.Equal(t, "acme", cfg.Org)
	assert.Equal(t, "Acme", cfg.OrgName)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, []string{"renovate[bot]", "github-actions[bot]"}, cfg.Ignore)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidTopN(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPOTLIGHT_TOP_N", "five")

	_, err := Load("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SPOTLIGHT_TOP_N")
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	t.Setenv("SPOTLIGHT_ORG_NAME", "Acme Inc")

	path := filepath.Join(t.TempDir(), "spotlight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
org: acme
org_name: Acme
top_n: 10
ignore:
  - renovate[bot]
message_file: out/message.md
concurrency: 8
wait_rate_limit: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "acme", cfg.Org)
	assert.Equal(t, "Acme Inc", cfg.OrgName, "environment wins over the file")
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, []string{"renovate[bot]"}, cfg.Ignore)
	assert.Equal(t, "out/message.md", cfg.MessageFile)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.True(t, cfg.WaitRateLimit)
	assert.Equal(t, 100, cfg.PerPage, "unset keys keep their defaults")
}

func TestLoad_FileErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_n: [1"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Token = "secret"
		cfg.OutputFile = "/tmp/out"
		cfg.SummaryFile = "/tmp/summary"
		return cfg
	}

	testCases := []struct {
		name     string
		mutate   func(c *Config)
		expected error
	}{
		{name: "valid", mutate: func(c *Config) {}, expected: nil},
		{name: "missing token", mutate: func(c *Config) { c.Token = "" }, expected: ErrMissingToken},
		{name: "missing output", mutate: func(c *Config) { c.OutputFile = "" }, expected: ErrMissingOutputFile},
		{name: "missing summary", mutate: func(c *Config) { c.SummaryFile = "" }, expected: ErrMissingSummaryFile},
		{name: "missing message file", mutate: func(c *Config) { c.MessageFile = "" }, expected: ErrMissingMessageFile},
		{name: "missing org", mutate: func(c *Config) { c.Org = "" }, expected: ErrMissingOrg},
		{name: "zero top n", mutate: func(c *Config) { c.TopN = 0 }, expected: ErrInvalidTopN},
		{name: "page size too large", mutate: func(c *Config) { c.PerPage = 101 }, expected: ErrInvalidPerPage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,b,, "))
	assert.Nil(t, SplitList(""))
}
