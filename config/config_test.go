package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "agfeed.yaml"))

	require.NoError(t, err, "a missing config file should fall back to defaults")
	assert.Equal(t, "data/news.json", cfg.Output)
	assert.Equal(t, 100, cfg.MaxItems)
	assert.Equal(t, 15*time.Second, cfg.Feed.Timeout.Std())
	assert.Equal(t, 30, cfg.Summaries.Budget)
	assert.Equal(t, 48*time.Hour, cfg.Summaries.CacheTTL.Std())
	assert.Equal(t, 3, cfg.Quality.MinScore)
	assert.Equal(t, 2, cfg.Quality.PerSourceCap)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agfeed.yaml")
	content := `output: /var/lib/agfeed/news.json
max_items: 50
feed:
  timeout: 5s
  max_per_source: 3
summaries:
  budget: 10
  cache_ttl: 24h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/var/lib/agfeed/news.json", cfg.Output)
	assert.Equal(t, 50, cfg.MaxItems)
	assert.Equal(t, 5*time.Second, cfg.Feed.Timeout.Std())
	assert.Equal(t, 3, cfg.Feed.MaxPerSource)
	assert.Equal(t, 10, cfg.Summaries.Budget)
	assert.Equal(t, 24*time.Hour, cfg.Summaries.CacheTTL.Std())
	// Untouched sections keep their defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.Summaries.Pacing.Std())
	assert.Equal(t, 3, cfg.Quality.MinScore)
}

func TestLoad_InvalidDurationIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agfeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feed:\n  timeout: fifteen\n"), 0o600))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_InvalidYAMLIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agfeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed"), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agfeed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: from-file.json\napi_key: file-key\n"), 0o600))

	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("AGFEED_OUTPUT", "from-env.json")
	t.Setenv("AGFEED_SOURCES_DSN", "sources.db")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey, "environment key wins over the file")
	assert.Equal(t, "from-env.json", cfg.Output)
	assert.Equal(t, "sources.db", cfg.SourcesDSN)
}

func TestFromEnv_UsesConfigPathVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_items: 7\n"), 0o600))
	t.Setenv("AGFEED_CONFIG", path)

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxItems)
}
