package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"talkstudio/internal/config"
	"talkstudio/internal/diagnostics"
	"talkstudio/internal/domain"
	"talkstudio/internal/jobs"
	"talkstudio/internal/poll"
	"talkstudio/internal/talks"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

const connectionTestTimeout = 15 * time.Second

var videoDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "MP4 video",
		Pattern:     "*.mp4",
	},
	{
		DisplayName: "All files",
		Pattern:     "*",
	},
}

// App wires configuration, jobs, the poller, and UI runtime callbacks.
type App struct {
	Settings    domain.Settings
	Store       config.Store
	Jobs        *jobs.Manager
	Runner      pollRunner
	Diagnostics domain.DiagnosticReport

	assets      fs.FS
	checker     *diagnostics.Checker
	configPath  string
	downloadDir string

	mu          sync.Mutex
	activeJobID string
	cancel      context.CancelFunc
	events      *jobs.EventBus
	runtimeCtx  context.Context
	submit      createTalkFunc
}

// pollRunner isolates the status poller behind an interface.
type pollRunner interface {
	Run(ctx context.Context, req poll.Request) (poll.Result, error)
}

// createTalkFunc isolates talk submission for app tests.
type createTalkFunc func(ctx context.Context, settings domain.Settings, req domain.TalkRequest) (talks.Talk, error)

// submitTalk dispatches to the injected submit function or the real client.
func (a *App) submitTalk(ctx context.Context, settings domain.Settings, req domain.TalkRequest) (talks.Talk, error) {
	if a.submit != nil {
		return a.submit(ctx, settings, req)
	}
	return talks.NewClient(settings).CreateTalk(ctx, req)
}

// New builds the application with persisted settings and startup diagnostics.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	config.LoadDotEnv()

	configPath, err := config.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	downloadDir, err := config.DefaultDownloadDir()
	if err != nil {
		return nil, fmt.Errorf("resolve download directory: %w", err)
	}

	store := config.NewJSONStore(configPath)
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings = config.ApplyEnv(settings)

	checker := diagnostics.NewChecker(downloadDir)
	report := checker.Run(settings)

	return &App{
		Settings:    settings,
		Store:       store,
		Jobs:        jobs.NewManager(),
		Runner:      poll.New(poll.Options{DownloadDir: downloadDir}),
		Diagnostics: report,
		assets:      assets,
		checker:     checker,
		configPath:  configPath,
		downloadDir: downloadDir,
		events:      jobs.NewEventBus(1000),
	}, nil
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "TalkStudio",
		Width:       1180,
		Height:      780,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
		},
		Bind: []interface{}{a},
	})
}

// Startup stores the Wails runtime context for push events and dialogs.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// GetDiagnostics returns the latest cached diagnostics report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Diagnostics
}

// ConfigPath returns the settings file location for display in the UI.
func (a *App) ConfigPath() string {
	return a.configPath
}

// GetSettings loads and returns the effective settings, including any
// environment overrides.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.loadSettings()
	if err != nil {
		return domain.Settings{}, err
	}

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings validates and persists settings, then refreshes diagnostics.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	normalized, err := normalizeSettings(settings)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := a.Store.Save(normalized); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = normalized
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(normalized)
	}
	a.mu.Unlock()

	return normalized, nil
}

// TestConnection issues the lightweight credits call against the candidate
// credentials. It reports failure as a result, never as an error, so the UI
// can always render the outcome.
func (a *App) TestConnection(key, url string) domain.ConnectionTest {
	key = strings.TrimSpace(key)
	url = strings.TrimSpace(url)
	if key == "" {
		return domain.ConnectionTest{Message: "Enter an API key first."}
	}
	if url == "" {
		url = config.DefaultAPIURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectionTestTimeout)
	defer cancel()

	client := talks.NewClient(domain.Settings{Key: key, URL: url})
	credits, err := client.Credits(ctx)
	if err != nil {
		return domain.ConnectionTest{Message: "API key test failed: " + err.Error()}
	}

	return domain.ConnectionTest{
		OK:        true,
		Message:   "API key is valid.",
		Remaining: credits.Remaining,
		Total:     credits.Total,
	}
}

// RefreshDiagnostics reloads settings and reruns the configuration checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	settings, err := a.loadSettings()
	if err != nil {
		return domain.DiagnosticReport{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.Settings = settings
	a.Diagnostics = a.checker.Run(settings)
	return a.Diagnostics, nil
}

// StartTalk submits one talk and polls it asynchronously. Only one job may
// be in flight at a time.
func (a *App) StartTalk(req domain.TalkRequest) (domain.Job, error) {
	settings, err := a.loadSettings()
	if err != nil {
		return domain.Job{}, err
	}
	if settings.Key == "" {
		return domain.Job{}, fmt.Errorf("api key is not configured")
	}
	if a.Jobs.IsRunning() {
		return domain.Job{}, jobs.ErrJobAlreadyRunning
	}

	talk, err := a.submitTalk(context.Background(), settings, applyRequestDefaults(req))
	if err != nil {
		return domain.Job{}, err
	}

	if err := a.Jobs.Start(talk.ID); err != nil {
		return domain.Job{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.mu.Lock()
	a.activeJobID = talk.ID
	a.cancel = cancel
	a.Settings = settings
	a.mu.Unlock()

	a.publishStatus(talk.ID, domain.JobStatusCreated, "Talk submitted")
	a.publishEvent(jobs.Event{
		JobID:    talk.ID,
		Type:     jobs.EventTypeLog,
		Message:  "Creation response",
		Response: talk.Raw,
	})

	go a.runTalkJob(ctx, talk.ID, settings)
	return a.Jobs.Current(), nil
}

// CancelTalk cancels the currently running job, if any. The remote service
// keeps processing; this only stops local polling.
func (a *App) CancelTalk() error {
	a.mu.Lock()
	cancel := a.cancel
	activeJobID := a.activeJobID
	a.mu.Unlock()

	if cancel == nil {
		return jobs.ErrNoRunningJob
	}

	cancel()
	if err := a.Jobs.Cancel(); err != nil && !errors.Is(err, jobs.ErrNoRunningJob) {
		return err
	}

	if activeJobID != "" {
		a.publishStatus(activeJobID, domain.JobStatusCancelled, "Cancellation requested")
	}
	return nil
}

// CurrentJob returns current job metadata and status.
func (a *App) CurrentJob() domain.Job {
	return a.Jobs.Current()
}

// JobEvents returns all events with sequence greater than sinceSeq.
func (a *App) JobEvents(sinceSeq int64) []jobs.Event {
	return a.events.Since(sinceSeq)
}

// DownloadVideo saves a finished video to a user-chosen location via the
// native save dialog. An empty returned path means the user cancelled.
func (a *App) DownloadVideo(resultURL, suggestedName string) (string, error) {
	resultURL = strings.TrimSpace(resultURL)
	if resultURL == "" {
		return "", fmt.Errorf("result url is empty")
	}

	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	path, err := wailsruntime.SaveFileDialog(ctx, wailsruntime.SaveDialogOptions{
		Title:           "Save video",
		DefaultFilename: downloadFilename(suggestedName),
		Filters:         videoDialogFilter,
	})
	if err != nil {
		return "", err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	settings, err := a.loadSettings()
	if err != nil {
		return "", err
	}

	client := talks.NewClient(settings)
	if err := client.DownloadResult(context.Background(), resultURL, path); err != nil {
		return "", err
	}

	a.publishEvent(jobs.Event{
		Type:      jobs.EventTypeLog,
		Message:   "Video saved",
		LocalPath: path,
	})
	return path, nil
}

// OpenDownloadsFolder opens the given path (or the download dir) in the
// platform file manager.
func (a *App) OpenDownloadsFolder(path string) error {
	target := strings.TrimSpace(path)
	if target == "" {
		target = a.downloadDir
	}
	if target == "" {
		return fmt.Errorf("download path is empty")
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("resolve download path: %w", err)
	}

	openPath := target
	if !info.IsDir() {
		openPath = filepath.Dir(target)
	}

	return openInFileManager(openPath)
}

// runTalkJob polls the talk and maps outcomes to job events.
func (a *App) runTalkJob(ctx context.Context, jobID string, settings domain.Settings) {
	req := poll.Request{
		TalkID:   jobID,
		Settings: settings,
		OnStatus: func(status domain.JobStatus, message string) {
			if err := a.Jobs.Transition(status); err == nil {
				a.publishStatus(jobID, status, message)
			}
		},
		OnResponse: func(body string) {
			a.publishEvent(jobs.Event{
				JobID:    jobID,
				Type:     jobs.EventTypeLog,
				Message:  "Polling response",
				Response: body,
			})
		},
	}

	result, err := a.Runner.Run(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			_ = a.Jobs.Transition(domain.JobStatusCancelled)
			a.publishStatus(jobID, domain.JobStatusCancelled, "Job cancelled")
			a.clearActiveJob(jobID)
			return
		}

		message := "Job failed"
		if errors.Is(err, poll.ErrTimeout) {
			message = "Job timed out before reaching a terminal state"
		}

		_ = a.Jobs.Transition(domain.JobStatusFailed)
		a.publishStatus(jobID, domain.JobStatusFailed, message)
		a.publishEvent(jobs.Event{
			JobID:   jobID,
			Type:    jobs.EventTypeError,
			Status:  domain.JobStatusFailed,
			Message: err.Error(),
		})
		a.clearActiveJob(jobID)
		return
	}

	_ = a.Jobs.Transition(domain.JobStatusDone)
	a.Jobs.SetResult(result.ResultURL)
	a.publishStatus(jobID, domain.JobStatusDone, "Job completed")
	a.publishEvent(jobs.Event{
		JobID:     jobID,
		Type:      jobs.EventTypeResult,
		Status:    domain.JobStatusDone,
		Message:   "Video ready",
		ResultURL: result.ResultURL,
		LocalPath: result.LocalPath,
	})
	a.clearActiveJob(jobID)
}

// publishStatus sends a normalized status event.
func (a *App) publishStatus(jobID string, status domain.JobStatus, message string) {
	a.publishEvent(jobs.Event{
		JobID:   jobID,
		Type:    jobs.EventTypeStatus,
		Status:  status,
		Message: message,
	})
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event jobs.Event) {
	published := a.events.Publish(event)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, "job:event", published)
	}
}

// clearActiveJob clears cancellation handles for completed job IDs.
func (a *App) clearActiveJob(jobID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.activeJobID == jobID {
		a.activeJobID = ""
		a.cancel = nil
	}
}

// loadSettings returns persisted settings with environment overrides applied.
func (a *App) loadSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return config.ApplyEnv(settings), nil
}

// runtimeContext returns the current Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

// downloadFilename sanitizes the dialog default filename, generating one
// when the caller has no suggestion.
func downloadFilename(suggested string) string {
	name := filepath.Base(strings.TrimSpace(suggested))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "talk-" + uuid.NewString() + ".mp4"
	}
	if filepath.Ext(name) == "" {
		name += ".mp4"
	}
	return name
}

// normalizeSettings trims user inputs and rejects an unusable endpoint.
func normalizeSettings(settings domain.Settings) (domain.Settings, error) {
	settings.Key = strings.TrimSpace(settings.Key)
	settings.URL = strings.TrimSpace(settings.URL)

	if settings.URL == "" {
		return domain.Settings{}, fmt.Errorf("api url is required")
	}
	parsed, err := url.Parse(settings.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return domain.Settings{}, fmt.Errorf("api url must be a full http(s) URL")
	}

	return settings, nil
}

// applyRequestDefaults fills the voice defaults for text scripts.
func applyRequestDefaults(req domain.TalkRequest) domain.TalkRequest {
	if req.ScriptType == "" {
		req.ScriptType = domain.ScriptTypeText
	}
	if req.ScriptType == domain.ScriptTypeText {
		if strings.TrimSpace(req.VoiceProvider) == "" {
			req.VoiceProvider = DefaultVoiceProvider
		}
		if strings.TrimSpace(req.VoiceID) == "" {
			req.VoiceID = DefaultVoiceID
		}
	}
	return req
}

// openInFileManager launches the platform file explorer for the provided path.
func openInFileManager(path string) error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", filepath.Clean(path))
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch file manager: %w", err)
	}
	return nil
}
