package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"talkstudio/internal/config"
	"talkstudio/internal/diagnostics"
	"talkstudio/internal/domain"
)

// TestInstallOrFixDiagnosticResetsAPIURL ensures the endpoint fix persists
// the default URL and the refreshed report reflects it.
func TestInstallOrFixDiagnosticResetsAPIURL(t *testing.T) {
	clearEnvOverrides(t)
	store := &fakeStore{settings: domain.Settings{Key: "secret", URL: "not a url"}}
	downloadDir := t.TempDir()
	app := &App{
		Store:       store,
		checker:     diagnostics.NewChecker(downloadDir),
		downloadDir: downloadDir,
	}

	report, err := app.InstallOrFixDiagnostic("api_url")
	if err != nil {
		t.Fatalf("fix api_url: %v", err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("save count = %d, want 1", len(store.saved))
	}
	if store.saved[0].URL != config.DefaultAPIURL {
		t.Fatalf("saved url = %q, want %q", store.saved[0].URL, config.DefaultAPIURL)
	}
	assertDiagnosticPasses(t, report, "api_url")
}

// TestInstallOrFixDiagnosticCreatesDownloadDir ensures the directory fix
// creates missing nested paths.
func TestInstallOrFixDiagnosticCreatesDownloadDir(t *testing.T) {
	clearEnvOverrides(t)
	downloadDir := filepath.Join(t.TempDir(), "nested", "videos")
	app := &App{
		Store:       configuredStore(),
		checker:     diagnostics.NewChecker(downloadDir),
		downloadDir: downloadDir,
	}

	report, err := app.InstallOrFixDiagnostic("download_dir")
	if err != nil {
		t.Fatalf("fix download_dir: %v", err)
	}
	if _, err := os.Stat(downloadDir); err != nil {
		t.Fatalf("stat download dir: %v", err)
	}
	assertDiagnosticPasses(t, report, "download_dir")
}

// TestInstallOrFixDiagnosticAPIKeyRequiresManualEntry ensures credentials
// are never auto-fixed; the user is pointed at the Config tab instead.
func TestInstallOrFixDiagnosticAPIKeyRequiresManualEntry(t *testing.T) {
	clearEnvOverrides(t)
	downloadDir := t.TempDir()
	app := &App{
		Store:       &fakeStore{settings: domain.Settings{URL: config.DefaultAPIURL}},
		checker:     diagnostics.NewChecker(downloadDir),
		downloadDir: downloadDir,
	}

	if _, err := app.InstallOrFixDiagnostic("api_key"); err == nil {
		t.Fatal("expected manual-entry error for api_key")
	}
}

// TestInstallOrFixDiagnosticRejectsUnknownItem ensures unrecognized item
// ids fail instead of silently doing nothing.
func TestInstallOrFixDiagnosticRejectsUnknownItem(t *testing.T) {
	clearEnvOverrides(t)
	app := &App{Store: configuredStore()}

	if _, err := app.InstallOrFixDiagnostic("gpu_driver"); err == nil {
		t.Fatal("expected error for unknown item id")
	}
	if _, err := app.InstallOrFixDiagnostic("  "); err == nil {
		t.Fatal("expected error for blank item id")
	}
}

// assertDiagnosticPasses fails unless the named item exists and passes.
func assertDiagnosticPasses(t *testing.T, report domain.DiagnosticReport, itemID string) {
	t.Helper()
	for _, item := range report.Items {
		if item.ID != itemID {
			continue
		}
		if item.Status != domain.DiagnosticStatusPass {
			t.Fatalf("item %s still failing: %+v", itemID, item)
		}
		return
	}
	t.Fatalf("item %s not found in report: %+v", itemID, report.Items)
}
