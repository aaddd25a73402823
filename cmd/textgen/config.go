package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// GenerationConfig holds the defaults used when generating text.
type GenerationConfig struct {
	WordCount     int     `json:"word_count" yaml:"word_count"`
	BigramFirst   string  `json:"bigram_first" yaml:"bigram_first"`
	TrigramFirst  string  `json:"trigram_first" yaml:"trigram_first"`
	TrigramSecond string  `json:"trigram_second" yaml:"trigram_second"`
	RandomSeed    *uint64 `json:"random_seed,omitempty" yaml:"random_seed,omitempty"`
	WrapWidth     int     `json:"wrap_width" yaml:"wrap_width"`
}

// Config is the top-level configuration struct.
type Config struct {
	LogLevel     string            `json:"log_level" yaml:"log_level"`
	DatabasePath string            `json:"database_path" yaml:"database_path"`
	Generation   *GenerationConfig `json:"generation_config" yaml:"generation_config"`
}

// DefaultGenerationConfig creates a generation configuration with default values.
// Empty seed words mean generation starts from the opening of the corpus.
func DefaultGenerationConfig() *GenerationConfig {
	return &GenerationConfig{
		WordCount: 100,
		WrapWidth: 72,
	}
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "warn",
		DatabasePath: "./textgen.db",
		Generation:   DefaultGenerationConfig(),
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func marshalConfig(path string, config *Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(config)
	}
	return json.MarshalIndent(config, "", "  ")
}

func unmarshalConfig(path string, data []byte, config *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, config)
	}
	return json.Unmarshal(data, config)
}

// LoadConfig reads the configuration from the file at the given path, as YAML
// for .yaml/.yml files and JSON otherwise. If the file doesn't exist, it creates
// one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = marshalConfig(path, config)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = unmarshalConfig(path, file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.Generation == nil {
		config.Generation = DefaultGenerationConfig()
	}
	return config, nil
}

// parseLogLevel maps a config string to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
