// Package config loads application configuration from an XDG config file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config represents the application configuration. File values come from
// config.toml; DIVINER_* environment variables take precedence.
type Config struct {
	// Port is the web server listen port.
	Port int `toml:"port" env:"DIVINER_PORT" validate:"gt=0,lt=65536"`
	// LogLevel controls slog output for the server paths.
	LogLevel string `toml:"log_level" env:"DIVINER_LOG_LEVEL" validate:"oneof=debug info warn error"`
	// SavePath is the directory readings are written to. Empty disables saving.
	SavePath string `toml:"save_path" env:"DIVINER_SAVE_PATH"`
	// CardsDir holds the card image files referenced by the catalog.
	CardsDir string `toml:"cards_dir" env:"DIVINER_CARDS_DIR"`
	// GeminiAPIKey enables the interpretation collaborator when set.
	GeminiAPIKey string `toml:"-" env:"GEMINI_API_KEY"`
	// Model is the Gemini model name.
	Model string `toml:"model" env:"DIVINER_MODEL"`
	// InterpretTimeout bounds the outbound interpretation calls.
	InterpretTimeout time.Duration `toml:"interpret_timeout" env:"DIVINER_INTERPRET_TIMEOUT"`
	// ReversalProb is the default per-card reversal probability.
	ReversalProb float64 `toml:"reversal_prob" env:"DIVINER_REVERSAL_PROB" validate:"gte=0,lte=1"`
}

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		Port:             8080,
		LogLevel:         "info",
		Model:            "gemini-2.0-flash",
		InterpretTimeout: 30 * time.Second,
		ReversalProb:     0.5,
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "diviner", "config.toml")
}

// Load builds the effective configuration: defaults, then the config file
// when present, then environment overrides, then validation.
func Load() (*Config, error) {
	return load(GetConfigFilePath())
}

func load(configPath string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("error decoding config file: %v", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %v", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return &cfg, nil
}
