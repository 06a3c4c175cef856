package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the process-level configuration: where durable state lives and
// how to reach the optional AI motivator endpoint.
type Config struct {
	DataDir   string
	AIBaseURL string
	AIAPIKey  string
	AIModel   string
}

// Load reads an optional .focusflow.yaml (current directory or home) and
// FOCUSFLOW_* environment overrides.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName(".focusflow")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FOCUSFLOW")
	v.AutomaticEnv()

	defaultDir, err := defaultDataDir()
	if err != nil {
		return Config{}, err
	}
	v.SetDefault("data_dir", defaultDir)
	v.SetDefault("ai_base_url", "")
	v.SetDefault("ai_api_key", "")
	v.SetDefault("ai_model", "gpt-4o-mini")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		DataDir:   v.GetString("data_dir"),
		AIBaseURL: v.GetString("ai_base_url"),
		AIAPIKey:  v.GetString("ai_api_key"),
		AIModel:   v.GetString("ai_model"),
	}, nil
}

// defaultDataDir returns ~/.config/focusflow/data (per-OS user config dir).
func defaultDataDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(cfg, "focusflow", "data"), nil
}
