package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/scrylabs/scry/pkg/models"
)

// Config holds all configuration options for scry.
type Config struct {
	// File selection
	Include ListConfig    `koanf:"include"`
	Exclude ExcludeConfig `koanf:"exclude"`

	// Quality gate settings
	Gate GateConfig `koanf:"gate"`

	// Output settings
	Output OutputConfig `koanf:"output"`

	// AI review settings
	Review ReviewConfig `koanf:"review"`

	// Auto-fix settings
	Fix FixConfig `koanf:"fix"`
}

// ListConfig holds file inclusion patterns.
type ListConfig struct {
	Patterns []string `koanf:"patterns"`
}

// ExcludeConfig defines file exclusion rules.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"`
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// GateConfig controls when the quality gate fails a run.
type GateConfig struct {
	// FailOn lists the severities that fail the gate outright.
	FailOn []string `koanf:"fail_on"`
	// MinQualityScore is the lowest acceptable project average score.
	MinQualityScore float64 `koanf:"min_quality_score"`
}

// OutputConfig controls report output.
type OutputConfig struct {
	Dir    string `koanf:"dir"`
	Format string `koanf:"format"` // text, json
	Color  bool   `koanf:"color"`
}

// ReviewConfig configures the AI review engine. An empty APIKey falls back
// to the OPENROUTER_API_KEY environment variable; without either, reviews
// use the built-in rule templates only.
type ReviewConfig struct {
	Model       string  `koanf:"model"`
	BaseURL     string  `koanf:"base_url"`
	APIKey      string  `koanf:"api_key"`
	Temperature float64 `koanf:"temperature"`
	MaxSmells   int     `koanf:"max_smells"`
}

// FixConfig controls automatic smell fixes.
type FixConfig struct {
	// Smells lists the smell types the fixer is allowed to touch.
	Smells []string `koanf:"smells"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Include: ListConfig{
			Patterns: []string{"*.py", "*.pyw"},
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"test_*.py",
				"*_test.py",
				"conftest.py",
			},
			Dirs: []string{
				".git",
				".venv",
				"venv",
				"__pycache__",
				".scry",
				"node_modules",
				"build",
				"dist",
			},
			Gitignore: true,
		},
		Gate: GateConfig{
			FailOn:          []string{"critical", "high"},
			MinQualityScore: 5.0,
		},
		Output: OutputConfig{
			Dir:    "quality_reports",
			Format: "text",
			Color:  true,
		},
		Review: ReviewConfig{
			Model:       "anthropic/claude-sonnet-4",
			BaseURL:     "https://openrouter.ai/api/v1",
			Temperature: 0.2,
			MaxSmells:   20,
		},
		Fix: FixConfig{
			Smells: []string{string(models.SmellUnusedImports)},
		},
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries standard config locations and falls back to defaults.
func LoadOrDefault() *Config {
	names := []string{
		"scry.toml",
		"scry.yaml",
		"scry.yml",
		"scry.json",
		".scry.toml",
		".scry.yaml",
		".scry.yml",
		".scry.json",
	}
	for _, dir := range []string{".", ".scry"} {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if cfg, err := Load(path); err == nil {
				return cfg
			}
		}
	}
	return DefaultConfig()
}

// FailSeverities resolves the configured gate severities, dropping any
// unknown names.
func (c *Config) FailSeverities() []models.Severity {
	var out []models.Severity
	for _, name := range c.Gate.FailOn {
		if sev, ok := models.ParseSeverity(name); ok {
			out = append(out, sev)
		}
	}
	return out
}

// FixableSmells resolves the configured auto-fixable smell types.
func (c *Config) FixableSmells() map[models.SmellType]bool {
	out := make(map[models.SmellType]bool, len(c.Fix.Smells))
	for _, name := range c.Fix.Smells {
		out[models.SmellType(name)] = true
	}
	return out
}

// ReviewAPIKey returns the configured API key, falling back to the
// environment.
func (c *Config) ReviewAPIKey() string {
	if c.Review.APIKey != "" {
		return c.Review.APIKey
	}
	return os.Getenv("OPENROUTER_API_KEY")
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// ShouldInclude checks if a path matches the inclusion patterns.
func (c *Config) ShouldInclude(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range c.Include.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
