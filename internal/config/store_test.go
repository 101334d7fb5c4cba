package config

import (
	"os"
	"path/filepath"
	"testing"

	"talkstudio/internal/domain"
)

// TestDefaultSettings verifies placeholder defaults for first launch.
func TestDefaultSettings(t *testing.T) {
	cfg := DefaultSettings()
	if cfg.Key != "" {
		t.Fatalf("key = %q, want empty", cfg.Key)
	}
	if cfg.URL != DefaultAPIURL {
		t.Fatalf("url = %q, want %q", cfg.URL, DefaultAPIURL)
	}
}

// TestJSONStoreLoadMissingReturnsDefaults checks first-run behavior.
func TestJSONStoreLoadMissingReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "api_config.json")
	store := NewJSONStore(path)

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.URL != DefaultAPIURL {
		t.Fatalf("url = %q, want %q", got.URL, DefaultAPIURL)
	}
	if got.Key != "" {
		t.Fatalf("key = %q, want empty", got.Key)
	}
}

// TestJSONStoreSaveAndLoadRoundTrip checks persisted settings fidelity.
func TestJSONStoreSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "api_config.json")
	store := NewJSONStore(path)
	want := domain.Settings{
		Key: "secret-key",
		URL: "https://api.example.com",
	}

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

// TestJSONStoreLoadInvalidJSON checks parse error handling.
func TestJSONStoreLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "api_config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not-json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewJSONStore(path)
	if _, err := store.Load(); err == nil {
		t.Fatal("expected json parse error")
	}
}

// TestJSONStoreLoadFillsMissingURL checks empty URL gets the default endpoint.
func TestJSONStoreLoadFillsMissingURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "api_config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"key":"abc"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewJSONStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.URL != DefaultAPIURL {
		t.Fatalf("url = %q, want %q", got.URL, DefaultAPIURL)
	}
	if got.Key != "abc" {
		t.Fatalf("key = %q, want abc", got.Key)
	}
}

// TestApplyEnvOverridesFileValues checks environment credentials win.
func TestApplyEnvOverridesFileValues(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvAPIURL, "https://env.example.com")

	got := ApplyEnv(domain.Settings{Key: "file-key", URL: "https://file.example.com"})
	if got.Key != "env-key" {
		t.Fatalf("key = %q, want env-key", got.Key)
	}
	if got.URL != "https://env.example.com" {
		t.Fatalf("url = %q, want env url", got.URL)
	}
}

// TestApplyEnvKeepsFileValuesWhenUnset checks empty env vars are ignored.
func TestApplyEnvKeepsFileValuesWhenUnset(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAPIURL, "  ")

	want := domain.Settings{Key: "file-key", URL: "https://file.example.com"}
	if got := ApplyEnv(want); got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}
