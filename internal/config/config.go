package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file at the repository root.
const FileName = "cashflow.yaml"

// Config represents the top-level cashflow.yaml configuration.
type Config struct {
	Profile        ProfileConfig        `yaml:"profile"`
	Categorization CategorizationConfig `yaml:"categorization"`
	Analytics      AnalyticsConfig      `yaml:"analytics"`
	Forecast       ForecastConfig       `yaml:"forecast"`
	Logging        LoggingConfig        `yaml:"logging"`
}

// ProfileConfig identifies whose ledger this project holds.
type ProfileConfig struct {
	Name string `yaml:"name"`
	User string `yaml:"user"`
}

// CategorizationConfig points at the rule table and sizes the worker pool.
type CategorizationConfig struct {
	RulesFile string `yaml:"rules_file"` // relative to the repo root
	Workers   int    `yaml:"workers"`
}

// AnalyticsConfig sets the default bucket size.
type AnalyticsConfig struct {
	Granularity string `yaml:"granularity"` // month, quarter or year
}

// ForecastConfig controls projections.
type ForecastConfig struct {
	HorizonMonths  int    `yaml:"horizon_months"`
	BaselineMonths int    `yaml:"baseline_months"`
	ScenariosFile  string `yaml:"scenarios_file"` // relative to the repo root
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load reads a cashflow.yaml file from disk. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadRepo reads cashflow.yaml from a repository root.
func LoadRepo(repoRoot string) (*Config, error) {
	return Load(filepath.Join(repoRoot, FileName))
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(name string) *Config {
	return &Config{
		Profile: ProfileConfig{
			Name: name,
			User: "default",
		},
		Categorization: CategorizationConfig{
			RulesFile: "rules/category-rules.yaml",
			Workers:   8,
		},
		Analytics: AnalyticsConfig{
			Granularity: "month",
		},
		Forecast: ForecastConfig{
			HorizonMonths:  12,
			BaselineMonths: 3,
			ScenariosFile:  "scenarios/scenarios.yaml",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Resolve joins a config-relative path onto repoRoot. Absolute paths are kept.
func Resolve(repoRoot, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}
