// Package config loads pipeline configuration from a YAML file with
// environment-variable overrides for deployment-specific values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can use "15s" / "48h" notation.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// FeedConfig controls feed fetching and extraction.
type FeedConfig struct {
	Timeout      Duration `yaml:"timeout"`
	Pacing       Duration `yaml:"pacing"`
	MaxPerSource int      `yaml:"max_per_source"`
}

// QualityConfig controls the community quality filter.
type QualityConfig struct {
	MinScore     int      `yaml:"min_score"`
	PerSourceCap int      `yaml:"per_source_cap"`
	Pacing       Duration `yaml:"pacing"`
}

// SummaryConfig controls summary generation.
type SummaryConfig struct {
	Budget         int      `yaml:"budget"`
	CacheTTL       Duration `yaml:"cache_ttl"`
	Pacing         Duration `yaml:"pacing"`
	Model          string   `yaml:"model"`
	Endpoint       string   `yaml:"endpoint"`
	MaxTokens      int      `yaml:"max_tokens"`
	ArticleTimeout Duration `yaml:"article_timeout"`
	ArticlePacing  Duration `yaml:"article_pacing"`
}

// Config is the full pipeline configuration.
type Config struct {
	Output     string        `yaml:"output"`
	SourcesDSN string        `yaml:"sources_dsn"`
	MaxItems   int           `yaml:"max_items"`
	APIKey     string        `yaml:"api_key"`
	Feed       FeedConfig    `yaml:"feed"`
	Quality    QualityConfig `yaml:"quality"`
	Summaries  SummaryConfig `yaml:"summaries"`
}

// Default returns the production defaults used when no config file is
// present.
func Default() Config {
	return Config{
		Output:   "data/news.json",
		MaxItems: 100,
		Feed: FeedConfig{
			Timeout:      Duration(15 * time.Second),
			Pacing:       Duration(300 * time.Millisecond),
			MaxPerSource: 5,
		},
		Quality: QualityConfig{
			MinScore:     3,
			PerSourceCap: 2,
			Pacing:       Duration(300 * time.Millisecond),
		},
		Summaries: SummaryConfig{
			Budget:         30,
			CacheTTL:       Duration(48 * time.Hour),
			Pacing:         Duration(500 * time.Millisecond),
			MaxTokens:      100,
			ArticleTimeout: Duration(10 * time.Second),
			ArticlePacing:  Duration(200 * time.Millisecond),
		},
	}
}

// Load reads the config file at path, merges it over the defaults, and then
// applies environment overrides. A missing file is not an error; the defaults
// plus environment are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// FromEnv resolves the config file path from AGFEED_CONFIG (defaulting to
// agfeed.yaml in the working directory) and loads it.
func FromEnv() (Config, error) {
	path := os.Getenv("AGFEED_CONFIG")
	if path == "" {
		path = "agfeed.yaml"
	}
	return Load(path)
}

// applyEnv layers environment variables over file values. The API key in
// particular is expected to come from the environment in CI.
func (c *Config) applyEnv() {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("AGFEED_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("AGFEED_SOURCES_DSN"); v != "" {
		c.SourcesDSN = v
	}
}
