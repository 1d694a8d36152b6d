// Package config loads arklint configuration from TOML, YAML or JSON
// files. Rules are configured by ID with an enable flag, a severity
// override and free-form options read through typed accessors.
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

	"github.com/ets-tools/arklint/pkg/models"
)

// Config holds all configuration options for arklint.
type Config struct {
	// Per-rule settings keyed by rule ID.
	Rules map[string]RuleConfig `koanf:"rules"`

	// File exclusion patterns.
	Exclude ExcludeConfig `koanf:"exclude"`

	// Output settings.
	Output OutputConfig `koanf:"output"`
}

// RuleConfig configures a single rule. A rule absent from the config
// runs with its defaults; enabled=false turns it off. Enabled is a
// pointer so a rule entry that only overrides options stays enabled.
type RuleConfig struct {
	Enabled  *bool          `koanf:"enabled"`
	Severity string         `koanf:"severity"`
	Options  map[string]any `koanf:"options"`
}

// IsEnabled reports whether the rule should run. Unset means enabled.
func (r RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"`
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// IntOption returns the named option as an int, or def when the option
// is absent or holds a value of another type. Config parsers surface
// numbers as int, int64 or float64 depending on format; all three are
// accepted.
func (r RuleConfig) IntOption(name string, def int) int {
	v, ok := r.Options[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	}
	return def
}

// BoolOption returns the named option as a bool, or def when absent or
// mistyped.
func (r RuleConfig) BoolOption(name string, def bool) bool {
	if v, ok := r.Options[name]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// StringOption returns the named option as a string, or def when absent
// or mistyped.
func (r RuleConfig) StringOption(name string, def string) string {
	if v, ok := r.Options[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Rule returns the configuration for a rule ID, falling back to the
// default entry when the config file never mentioned it.
func (c *Config) Rule(id string) RuleConfig {
	if rc, ok := c.Rules[id]; ok {
		return rc
	}
	if rc, ok := DefaultConfig().Rules[id]; ok {
		return rc
	}
	return RuleConfig{}
}

// RuleSeverity maps a rule's configured severity to the issue model,
// falling back to def on unknown values.
func (c *Config) RuleSeverity(id string, def models.Severity) models.Severity {
	switch strings.ToLower(c.Rule(id).Severity) {
	case "error":
		return models.SeverityError
	case "warning":
		return models.SeverityWarning
	case "suggestion":
		return models.SeveritySuggestion
	}
	return def
}

// DefaultConfig returns a config with every rule enabled at its default
// thresholds.
func DefaultConfig() *Config {
	return &Config{
		Rules: map[string]RuleConfig{
			"fragment-clone": {
				Severity: "warning",
				Options: map[string]any{
					"minimumTokens":        100,
					"normalizeIdentifiers": true,
					"normalizeLiterals":    false,
				},
			},
			"method-clone-type1": {
				Severity: "warning",
				Options: map[string]any{
					"minStmts":   5,
					"ignoreLogs": true,
				},
			},
			"method-clone-type2": {
				Severity: "warning",
				Options: map[string]any{
					"minStmts":       5,
					"ignoreLogs":     true,
					"ignoreLiterals": false,
				},
			},
			"code-smells": {
				Severity: "warning",
				Options: map[string]any{
					"maxStmts":       50,
					"maxLines":       100,
					"maxUIStmtsSoft": 30,
					"maxUIStmtsHard": 60,
					"minCases":       10,
				},
			},
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.test.ets",
				"*.test.ts",
				"*.d.ts",
			},
			Dirs: []string{
				"node_modules",
				"oh_modules",
				".git",
				"build",
				"dist",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// Load loads configuration from a file.
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

// LoadOrDefault tries to load config from standard locations or returns
// defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"arklint.toml",
		"arklint.yaml",
		"arklint.yml",
		"arklint.json",
		".arklint.toml",
		".arklint.yaml",
		".arklint.yml",
		".arklint.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
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
