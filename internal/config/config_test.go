package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	content := `
input:
  flow_log_path: "logs/flow.txt"
  lookup_path: "tables/lookup.csv"

writers:
  - type: "clickhouse"
    enabled: true
    clickhouse:
      host: "ch.example.com"
      port: 9000
      database: "flows"

publisher:
  enabled: true
  url: "nats://localhost:4222"
  subject: "reports"
`
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Input.FlowLogPath != "logs/flow.txt" {
		t.Errorf("FlowLogPath = %q, expected logs/flow.txt", cfg.Input.FlowLogPath)
	}
	if cfg.Input.LookupPath != "tables/lookup.csv" {
		t.Errorf("LookupPath = %q, expected tables/lookup.csv", cfg.Input.LookupPath)
	}
	// Omitted output path falls back to the default.
	if cfg.Input.OutputPath != DefaultOutputPath {
		t.Errorf("OutputPath = %q, expected default %q", cfg.Input.OutputPath, DefaultOutputPath)
	}

	if len(cfg.Writers) != 1 || cfg.Writers[0].Type != "clickhouse" || !cfg.Writers[0].Enabled {
		t.Errorf("Unexpected writers config: %+v", cfg.Writers)
	}
	if cfg.Writers[0].ClickHouse.Host != "ch.example.com" {
		t.Errorf("ClickHouse host = %q, expected ch.example.com", cfg.Writers[0].ClickHouse.Host)
	}

	if !cfg.Publisher.Enabled || cfg.Publisher.Subject != "reports" {
		t.Errorf("Unexpected publisher config: %+v", cfg.Publisher)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("no_such_config.yaml"); err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Input.FlowLogPath != DefaultFlowLogPath ||
		cfg.Input.LookupPath != DefaultLookupPath ||
		cfg.Input.OutputPath != DefaultOutputPath {
		t.Errorf("Unexpected default paths: %+v", cfg.Input)
	}
	if len(cfg.Writers) != 0 {
		t.Errorf("Expected no default writers, got %d", len(cfg.Writers))
	}
}
