package config

import (
	"os"
	"path/filepath"

	"talkstudio/internal/domain"
)

// DefaultAPIURL is the public endpoint of the talks service.
const DefaultAPIURL = "https://api.d-id.com"

// DefaultSettings returns the placeholder configuration for first launch.
// The key is intentionally empty; diagnostics surface the unconfigured state.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		Key: "",
		URL: DefaultAPIURL,
	}
}

// DefaultPath returns the config file location under the user home.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".talkstudio", "api_config.json"), nil
}

// DefaultDownloadDir returns the directory finished videos are fetched into.
func DefaultDownloadDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".talkstudio", "videos"), nil
}
