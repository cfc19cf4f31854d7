package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/INLOpen/xmrlog/core"
)

// RecorderConfig holds recording-session configurations.
type RecorderConfig struct {
	PreallocBytes    int64  `yaml:"prealloc_bytes"`
	ChunkSizeBytes   int    `yaml:"chunk_size_bytes"`
	Compression      string `yaml:"compression"`
	CompressionLevel int    `yaml:"compression_level"`
	SyncOnFlush      bool   `yaml:"sync_on_flush"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"` // stdout, stderr, file or none
	File   string `yaml:"file"`
}

// Config is the root configuration structure.
type Config struct {
	Recorder RecorderConfig `yaml:"recorder"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DefaultConfig returns a configuration matching the recorder defaults:
// 10 MiB preallocation, 1 MiB chunks, LZ4 level 9.
func DefaultConfig() *Config {
	return &Config{
		Recorder: RecorderConfig{
			PreallocBytes:    10 * 1024 * 1024,
			ChunkSizeBytes:   1024 * 1024,
			Compression:      "lz4",
			CompressionLevel: 9,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stdout",
		},
	}
}

// Load reads a YAML configuration file, applying defaults for absent
// fields and validating the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.Recorder.PreallocBytes < 0 {
		return fmt.Errorf("recorder.prealloc_bytes must not be negative, got %d", c.Recorder.PreallocBytes)
	}
	if c.Recorder.ChunkSizeBytes < 0 {
		return fmt.Errorf("recorder.chunk_size_bytes must not be negative, got %d", c.Recorder.ChunkSizeBytes)
	}
	if _, err := core.ParseCompressionType(c.Recorder.Compression); err != nil {
		return fmt.Errorf("recorder.compression: %w", err)
	}
	if c.Recorder.CompressionLevel < 0 || c.Recorder.CompressionLevel > 9 {
		return fmt.Errorf("recorder.compression_level must be 0-9, got %d", c.Recorder.CompressionLevel)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	switch c.Logging.Output {
	case "stdout", "stderr", "none":
	case "file":
		if c.Logging.File == "" {
			return fmt.Errorf("logging.output is 'file' but logging.file is empty")
		}
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}
	return nil
}

// CompressionType returns the parsed compression scheme. Call Validate
// first; unknown strings fall back to LZ4 here.
func (c *RecorderConfig) CompressionType() core.CompressionType {
	ct, err := core.ParseCompressionType(c.Compression)
	if err != nil {
		return core.CompressionLZ4
	}
	return ct
}
