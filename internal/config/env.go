package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"talkstudio/internal/domain"
)

// Environment variables override file values without touching the config file.
const (
	EnvAPIKey = "TALKSTUDIO_API_KEY"
	EnvAPIURL = "TALKSTUDIO_API_URL"
)

// LoadDotEnv loads a local .env file into the environment when present.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overlays environment credentials onto loaded settings.
func ApplyEnv(settings domain.Settings) domain.Settings {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		settings.Key = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		settings.URL = v
	}

	return settings
}
