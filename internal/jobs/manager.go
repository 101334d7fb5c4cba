package jobs

import (
	"errors"
	"fmt"
	"sync"

	"talkstudio/internal/domain"
)

// ErrJobAlreadyRunning is returned when starting a second active job.
var ErrJobAlreadyRunning = errors.New("job already running")

// ErrNoRunningJob is returned when cancel is requested for idle state.
var ErrNoRunningJob = errors.New("no running job")

// Manager tracks the single allowed active talk job and its transitions.
type Manager struct {
	mu      sync.RWMutex
	current domain.Job
}

// NewManager creates a manager in idle state.
func NewManager() *Manager {
	return &Manager{
		current: domain.Job{
			Status: domain.JobStatusIdle,
		},
	}
}

// Start registers a freshly submitted talk in created state.
func (m *Manager) Start(talkID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if isRunning(m.current.Status) {
		return ErrJobAlreadyRunning
	}

	m.current = domain.Job{
		ID:     talkID,
		Status: domain.JobStatusCreated,
	}
	return nil
}

// Transition validates and applies state transitions for the current job.
// Repeating the current status is a no-op so polling can report freely.
func (m *Manager) Transition(status domain.JobStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.ID == "" && status != domain.JobStatusIdle {
		return fmt.Errorf("cannot transition without an active job")
	}
	if status == m.current.Status {
		return nil
	}
	if !isValidTransition(m.current.Status, status) {
		return fmt.Errorf("invalid transition: %s -> %s", m.current.Status, status)
	}

	m.current.Status = status
	return nil
}

// SetResult records the remote result URL on the current job.
func (m *Manager) SetResult(resultURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current.ResultURL = resultURL
}

// Current returns a snapshot of the current job.
func (m *Manager) Current() domain.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Reset clears job metadata and returns manager to idle.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = domain.Job{Status: domain.JobStatusIdle}
}

// IsRunning reports whether the current job is still in flight.
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return isRunning(m.current.Status)
}

// Cancel moves an active job to cancelled state.
func (m *Manager) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !isRunning(m.current.Status) {
		return ErrNoRunningJob
	}
	m.current.Status = domain.JobStatusCancelled
	return nil
}

// isRunning checks if a status represents an in-flight remote job.
func isRunning(status domain.JobStatus) bool {
	switch status {
	case domain.JobStatusCreated, domain.JobStatusStarted:
		return true
	default:
		return false
	}
}

// isValidTransition enforces the allowed job state machine edges. Statuses
// only move forward: done, error, and cancelled are terminal and can only
// be left for a new submission or a reset.
func isValidTransition(from, to domain.JobStatus) bool {
	switch from {
	case domain.JobStatusIdle:
		return to == domain.JobStatusCreated
	case domain.JobStatusCreated:
		// The service may finish between two polls, so created can jump
		// straight to a terminal state.
		return to == domain.JobStatusStarted || to == domain.JobStatusDone ||
			to == domain.JobStatusFailed || to == domain.JobStatusCancelled
	case domain.JobStatusStarted:
		return to == domain.JobStatusDone || to == domain.JobStatusFailed || to == domain.JobStatusCancelled
	case domain.JobStatusDone, domain.JobStatusFailed, domain.JobStatusCancelled:
		return to == domain.JobStatusCreated || to == domain.JobStatusIdle
	default:
		return false
	}
}
