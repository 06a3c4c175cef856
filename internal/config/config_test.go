package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir == "" {
		t.Fatal("data dir must default to a real path")
	}
	if cfg.AIModel != "gpt-4o-mini" {
		t.Fatalf("unexpected default model %q", cfg.AIModel)
	}
	if cfg.AIBaseURL != "" || cfg.AIAPIKey != "" {
		t.Fatal("AI endpoint must be unset by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FOCUSFLOW_DATA_DIR", "/tmp/elsewhere")
	t.Setenv("FOCUSFLOW_AI_BASE_URL", "https://example.test/v1")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/tmp/elsewhere" {
		t.Fatalf("env override ignored, got %q", cfg.DataDir)
	}
	if cfg.AIBaseURL != "https://example.test/v1" {
		t.Fatalf("env override ignored, got %q", cfg.AIBaseURL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := "data_dir: /data/focus\nai_model: custom-model\n"
	if err := os.WriteFile(filepath.Join(dir, ".focusflow.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/data/focus" {
		t.Fatalf("config file ignored, got %q", cfg.DataDir)
	}
	if cfg.AIModel != "custom-model" {
		t.Fatalf("config file ignored, got %q", cfg.AIModel)
	}
}
