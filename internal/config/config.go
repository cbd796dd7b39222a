package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort               int     `mapstructure:"APP_PORT"`
	GeminiAPIKey          string  `mapstructure:"GEMINI_API_KEY"`
	GeminiModel           string  `mapstructure:"GEMINI_MODEL"`
	GeminiTemperature     float32 `mapstructure:"GEMINI_TEMPERATURE"`
	GeminiMaxOutputTokens int32   `mapstructure:"GEMINI_MAX_OUTPUT_TOKENS"`
	Storage               string  `mapstructure:"STORAGE"`
	DatabasePath          string  `mapstructure:"DATABASE_PATH"`
	PersonaFile           string  `mapstructure:"PERSONA_FILE"`
	LogLevel              string  `mapstructure:"LOG_LEVEL"`
}

// Storage backend names accepted by the STORAGE key.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 5000)
	// Registering the key with an empty default lets AutomaticEnv feed it
	// through Unmarshal; the empty value is rejected below.
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("GEMINI_TEMPERATURE", 0.9)
	viper.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 256)
	viper.SetDefault("STORAGE", StorageMemory)
	viper.SetDefault("DATABASE_PATH", "./data/lumo.db")
	viper.SetDefault("PERSONA_FILE", "")
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// The model provider credential is the one piece of configuration the
	// process cannot run without. Fail fast instead of failing on the first
	// chat request.
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	if cfg.Storage != StorageMemory && cfg.Storage != StorageSQLite {
		return nil, fmt.Errorf("unknown STORAGE backend %q (expected %q or %q)", cfg.Storage, StorageMemory, StorageSQLite)
	}

	return &cfg, nil
}
