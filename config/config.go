// Package config loads ecoprompt settings from a YAML file, .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/omegabytes/ecoprompt/report"
	"github.com/omegabytes/ecoprompt/request"
)

// ErrInvalidConfig is returned when a setting has an unusable value.
var ErrInvalidConfig = errors.New("invalid config")

// Environment variables that override the config file.
const (
	EnvDataDir   = "ECOPROMPT_DATA_DIR"
	EnvLogLevel  = "ECOPROMPT_LOG_LEVEL"
	EnvLogFormat = "ECOPROMPT_LOG_FORMAT"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds the application configuration.
type Config struct {
	// DataDir holds the reference JSON documents. Empty selects the embedded copies.
	DataDir     string            `yaml:"data_dir"`
	Logging     LoggingConfig     `yaml:"logging"`
	Defaults    DefaultsConfig    `yaml:"defaults"`
	Comparison  ComparisonConfig  `yaml:"comparison"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DefaultsConfig struct {
	// OutputTokens is assumed when only the prompt text of a query is known.
	OutputTokens int `yaml:"output_tokens"`
}

type ComparisonConfig struct {
	Normalization string `yaml:"normalization"`
}

type SuggestionsConfig struct {
	Candidates []string `yaml:"candidates"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  zerolog.InfoLevel.String(),
			Format: FormatConsole,
		},
		Defaults: DefaultsConfig{
			OutputTokens: request.DefaultOutputTokens,
		},
		Comparison: ComparisonConfig{
			Normalization: string(report.NormalizeMax),
		},
		Suggestions: SuggestionsConfig{
			Candidates: append([]string(nil), report.DefaultCandidates...),
		},
	}
}

// DefaultPath returns ~/.ecoprompt/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".ecoprompt", "config.yaml")
}

// Load reads configuration from path, .env files and environment variables, in increasing
// order of precedence. An empty path reads DefaultPath when it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	loadDotEnv()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.DataDir = getEnvString(EnvDataDir, cfg.DataDir)
	cfg.Logging.Level = getEnvString(EnvLogLevel, cfg.Logging.Level)
	cfg.Logging.Format = getEnvString(EnvLogFormat, cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("%w: logging.format %q must be %s or %s", ErrInvalidConfig, c.Logging.Format, FormatConsole, FormatJSON)
	}
	if c.Defaults.OutputTokens < 0 {
		return fmt.Errorf("%w: defaults.output_tokens must be non-negative, got %d", ErrInvalidConfig, c.Defaults.OutputTokens)
	}
	if _, err := report.ParseNormalization(c.Comparison.Normalization); err != nil {
		return fmt.Errorf("%w: comparison.normalization: %v", ErrInvalidConfig, err)
	}
	if len(c.Suggestions.Candidates) == 0 {
		return fmt.Errorf("%w: suggestions.candidates must not be empty", ErrInvalidConfig)
	}
	return nil
}

// ReportOptions translates the config into report calculator options.
func (c *Config) ReportOptions() []report.Option {
	// Validate has already accepted the normalization.
	norm, _ := report.ParseNormalization(c.Comparison.Normalization)
	return []report.Option{
		report.WithDefaultOutputTokens(c.Defaults.OutputTokens),
		report.WithNormalization(norm),
		report.WithCandidates(c.Suggestions.Candidates),
	}
}

// loadDotEnv loads the first .env file found. Variables already set are kept.
func loadDotEnv() {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".ecoprompt", ".env"))
	}
	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
