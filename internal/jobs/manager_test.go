package jobs

import (
	"testing"

	"talkstudio/internal/domain"
)

// TestManagerLifecycle verifies normal progression to done state.
func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	if m.IsRunning() {
		t.Fatal("new manager should be idle")
	}

	if err := m.Start("tlk_1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !m.IsRunning() {
		t.Fatal("expected running after start")
	}

	for _, status := range []domain.JobStatus{
		domain.JobStatusStarted,
		domain.JobStatusDone,
	} {
		if err := m.Transition(status); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}

	current := m.Current()
	if current.Status != domain.JobStatusDone {
		t.Fatalf("current status = %s, want done", current.Status)
	}
}

// TestManagerStatusesAreMonotonic checks no transition leaves a terminal
// state except for a new submission.
func TestManagerStatusesAreMonotonic(t *testing.T) {
	m := NewManager()
	if err := m.Start("tlk_1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Transition(domain.JobStatusDone); err != nil {
		t.Fatalf("transition to done: %v", err)
	}

	for _, status := range []domain.JobStatus{
		domain.JobStatusStarted,
		domain.JobStatusFailed,
		domain.JobStatusCancelled,
	} {
		if err := m.Transition(status); err == nil {
			t.Fatalf("expected error leaving done for %s", status)
		}
	}

	// A new submission is the only way forward from a terminal state.
	if err := m.Start("tlk_2"); err != nil {
		t.Fatalf("resubmission: %v", err)
	}
	if m.Current().ID != "tlk_2" {
		t.Fatalf("id = %q, want tlk_2", m.Current().ID)
	}
}

// TestManagerRejectsBackwardTransition checks the state machine ordering.
func TestManagerRejectsBackwardTransition(t *testing.T) {
	m := NewManager()
	if err := m.Start("tlk_1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Transition(domain.JobStatusStarted); err != nil {
		t.Fatalf("transition: %v", err)
	}

	if err := m.Transition(domain.JobStatusCreated); err == nil {
		t.Fatal("expected error moving started back to created")
	}
}

// TestManagerCreatedCanFinishDirectly checks the short-poll edge where the
// service reports done before a started status was ever observed.
func TestManagerCreatedCanFinishDirectly(t *testing.T) {
	m := NewManager()
	if err := m.Start("tlk_1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Transition(domain.JobStatusDone); err != nil {
		t.Fatalf("created -> done: %v", err)
	}
}

// TestManagerSingleActiveJob checks the second submission is rejected.
func TestManagerSingleActiveJob(t *testing.T) {
	m := NewManager()
	if err := m.Start("tlk_1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := m.Start("tlk_2"); err != ErrJobAlreadyRunning {
		t.Fatalf("second start error = %v, want %v", err, ErrJobAlreadyRunning)
	}
}

// TestManagerCancel verifies cancel behavior and repeated cancel handling.
func TestManagerCancel(t *testing.T) {
	m := NewManager()
	if err := m.Start("tlk_1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := m.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if m.Current().Status != domain.JobStatusCancelled {
		t.Fatalf("status = %s, want cancelled", m.Current().Status)
	}

	if err := m.Cancel(); err != ErrNoRunningJob {
		t.Fatalf("second cancel error = %v, want %v", err, ErrNoRunningJob)
	}
}

// TestManagerSetResult checks the result URL lands on the snapshot.
func TestManagerSetResult(t *testing.T) {
	m := NewManager()
	if err := m.Start("tlk_1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Transition(domain.JobStatusDone); err != nil {
		t.Fatalf("transition: %v", err)
	}

	m.SetResult("https://cdn.example.com/v.mp4")
	if m.Current().ResultURL != "https://cdn.example.com/v.mp4" {
		t.Fatalf("result url = %q", m.Current().ResultURL)
	}
}
