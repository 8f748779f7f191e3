package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sarahlunette/resilience2reliefai/internal/config"
)

func TestLoadConfig_missingFileUsesDefaults(t *testing.T) {
	cfg, resolved, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if resolved != "" {
		t.Errorf("resolved path = %q, want empty for defaults", resolved)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Processing.ChunkSize != 1000 {
		t.Errorf("chunk size = %d", cfg.Processing.ChunkSize)
	}
}

func TestLoadConfig_explicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9999\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved = %q", resolved)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestBuildProcessor_defaults(t *testing.T) {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	proc, err := buildProcessor(&cfg, nil)
	if err != nil {
		t.Fatalf("buildProcessor: %v", err)
	}
	if !proc.Registry().Supported(".txt") {
		t.Error("registry should support .txt")
	}
}

func TestBuildProcessor_badGazetteerPath(t *testing.T) {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	cfg.Classify.GazetteerPath = "/nonexistent/gazetteer.yaml"
	if _, err := buildProcessor(&cfg, nil); err == nil {
		t.Error("expected error for missing gazetteer file")
	}
}
