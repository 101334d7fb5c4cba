package poll

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"talkstudio/internal/domain"
	"talkstudio/internal/talks"
)

const (
	// DefaultInterval matches the service's suggested status poll cadence.
	DefaultInterval = 2 * time.Second

	// DefaultBudget bounds how long one talk may stay non-terminal.
	DefaultBudget = 2 * time.Minute
)

// ErrTimeout is returned when the budget expires without a terminal status.
var ErrTimeout = errors.New("polling budget exceeded")

// Service is the subset of the talks client the poller needs.
type Service interface {
	GetTalk(ctx context.Context, id string) (talks.Talk, error)
	DownloadResult(ctx context.Context, url, path string) error
}

// Options tune poll cadence, overall budget, and the download location.
type Options struct {
	Interval    time.Duration
	Budget      time.Duration
	DownloadDir string

	// NewService builds the API client for a poll run. Defaults to the
	// production talks client; tests inject fakes here.
	NewService func(domain.Settings) Service
}

// Request describes one submitted talk to poll until a terminal state.
type Request struct {
	TalkID   string
	Settings domain.Settings

	// OnStatus receives every observed status for live UI updates.
	OnStatus func(status domain.JobStatus, message string)

	// OnResponse receives each raw API response body for debug logs.
	OnResponse func(body string)
}

// Result is the terminal outcome of a completed talk.
type Result struct {
	ResultURL string
	LocalPath string
}

// Poller drives status checks on a fixed interval until the talk reaches a
// terminal state, the budget expires, or the context is cancelled.
type Poller struct {
	interval    time.Duration
	budget      time.Duration
	downloadDir string
	newService  func(domain.Settings) Service
}

// New builds a poller, applying defaults for unset options.
func New(opts Options) *Poller {
	p := &Poller{
		interval:    opts.Interval,
		budget:      opts.Budget,
		downloadDir: opts.DownloadDir,
		newService:  opts.NewService,
	}
	if p.interval <= 0 {
		p.interval = DefaultInterval
	}
	if p.budget <= 0 {
		p.budget = DefaultBudget
	}
	if p.newService == nil {
		p.newService = func(settings domain.Settings) Service {
			return talks.NewClient(settings)
		}
	}
	return p
}

// Run polls one talk until done, failure, timeout, or cancellation. On done
// it fetches the result video into the download directory. Transient network
// errors are retried on the normal interval until the budget expires;
// credential and unknown-id errors abort immediately since retrying cannot
// change the outcome. The create call is never reissued.
func (p *Poller) Run(ctx context.Context, req Request) (Result, error) {
	if req.TalkID == "" {
		return Result{}, fmt.Errorf("%w: talk id is required", talks.ErrValidation)
	}

	svc := p.newService(req.Settings)
	deadline := time.Now().Add(p.budget)

	for {
		talk, err := svc.GetTalk(ctx, req.TalkID)
		switch {
		case err != nil && ctx.Err() != nil:
			return Result{}, ctx.Err()
		case err != nil && isFatalPollError(err):
			return Result{}, err
		case err == nil:
			emitResponse(req.OnResponse, talk.Raw)
			emitStatus(req.OnStatus, talk.Status, "Status: "+talk.RawStatus)

			switch talk.Status {
			case domain.JobStatusDone:
				return p.fetchResult(ctx, svc, talk)
			case domain.JobStatusFailed:
				detail := talk.ErrorDetail
				if detail == "" {
					detail = "talk generation failed"
				}
				return Result{}, fmt.Errorf("%w: %s", talks.ErrService, detail)
			}
		}

		if time.Now().After(deadline) {
			return Result{}, ErrTimeout
		}

		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(p.interval):
		}
	}
}

// fetchResult downloads the finished video next to the app data directory.
func (p *Poller) fetchResult(ctx context.Context, svc Service, talk talks.Talk) (Result, error) {
	if talk.ResultURL == "" {
		return Result{}, fmt.Errorf("%w: done without a result url", talks.ErrService)
	}

	localPath := filepath.Join(p.downloadDir, "talk-"+uuid.NewString()+".mp4")
	if err := svc.DownloadResult(ctx, talk.ResultURL, localPath); err != nil {
		return Result{}, err
	}

	return Result{ResultURL: talk.ResultURL, LocalPath: localPath}, nil
}

// isFatalPollError reports errors where further polling cannot help.
func isFatalPollError(err error) bool {
	return errors.Is(err, talks.ErrAuth) ||
		errors.Is(err, talks.ErrNotFound) ||
		errors.Is(err, talks.ErrValidation)
}

// emitStatus forwards status updates when a callback is configured.
func emitStatus(cb func(domain.JobStatus, string), status domain.JobStatus, message string) {
	if cb != nil {
		cb(status, message)
	}
}

// emitResponse forwards raw API bodies when a callback is configured.
func emitResponse(cb func(string), body string) {
	if cb != nil && body != "" {
		cb(body)
	}
}
