// Package config provides configuration loading and structs for the document
// processing service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Processing ProcessingConfig `yaml:"processing"`
	Classify   ClassifyConfig   `yaml:"classify"`
	Watch      WatchConfig      `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the record database and uploaded files.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	UploadsPath  string `yaml:"uploads_path"`
}

// ProcessingConfig holds document processing settings.
type ProcessingConfig struct {
	ChunkSize        int      `yaml:"chunk_size"`
	ChunkOverlap     int      `yaml:"chunk_overlap"`
	MinKeywordLength int      `yaml:"min_keyword_length"`
	MaxFileSize      int64    `yaml:"max_file_size"`
	Encodings        []string `yaml:"encodings"`
}

// ClassifyConfig holds optional gazetteer and entity-pattern overrides.
type ClassifyConfig struct {
	GazetteerPath string `yaml:"gazetteer_path"`
	PatternsPath  string `yaml:"patterns_path"`
}

// WatchConfig holds directory watch settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.UploadsPath = expandPath(cfg.Storage.UploadsPath, configDir)
	if cfg.Classify.GazetteerPath != "" {
		cfg.Classify.GazetteerPath = expandPath(cfg.Classify.GazetteerPath, configDir)
	}
	if cfg.Classify.PatternsPath != "" {
		cfg.Classify.PatternsPath = expandPath(cfg.Classify.PatternsPath, configDir)
	}
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
