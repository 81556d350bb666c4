package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chromedp/chromedp"

	"swipepilot/internal/config"
	"swipepilot/internal/domain"
)

// scriptedRunner feeds run results in order and counts invocations; the
// phase machine can then be tested without a real Chrome.
type scriptedRunner struct {
	results []error
	calls   int
}

func (r *scriptedRunner) run(ctx context.Context, actions ...chromedp.Action) error {
	idx := r.calls
	r.calls++
	if idx < len(r.results) {
		return r.results[idx]
	}
	return nil
}

func newTestSession(cfg config.BrowserConfig, runner *scriptedRunner) *Session {
	s := NewSession(cfg, nil, nil)
	s.allocate = func(ctx context.Context, cfg config.BrowserConfig) (context.Context, []context.CancelFunc) {
		return context.Background(), nil
	}
	s.run = runner.run
	return s
}

func testConfig() config.BrowserConfig {
	return config.BrowserConfig{
		BaseURL:          "https://example.test",
		ControlTimeoutMs: 50,
		MatchTimeoutMs:   20,
		ReadyTimeoutMs:   50,
	}
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{}
	s := newTestSession(testConfig(), runner)
	ctx := context.Background()

	if s.Phase() != domain.PhaseUninitialized {
		t.Fatalf("fresh session in phase %s", s.Phase())
	}

	if err := s.Launch(ctx); err != nil {
		t.Fatalf("Launch error: %v", err)
	}
	if s.Phase() != domain.PhaseLaunched {
		t.Fatalf("expected launched, got %s", s.Phase())
	}

	if err := s.Navigate(ctx, "https://example.test"); err != nil {
		t.Fatalf("Navigate error: %v", err)
	}

	if err := s.AwaitLogin(ctx); err != nil {
		t.Fatalf("AwaitLogin error: %v", err)
	}
	if s.Phase() != domain.PhaseAuthenticated {
		t.Fatalf("expected authenticated, got %s", s.Phase())
	}

	ready, err := s.AwaitReady(ctx, 0)
	if err != nil || !ready {
		t.Fatalf("AwaitReady = %v, %v", ready, err)
	}
	if s.Phase() != domain.PhaseReady {
		t.Fatalf("expected ready, got %s", s.Phase())
	}
}

func TestLaunchFailureIsFatalAndCloses(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{results: []error{errors.New("chrome exited")}}
	s := newTestSession(testConfig(), runner)

	err := s.Launch(context.Background())
	if !errors.Is(err, domain.ErrLaunchFailed) {
		t.Fatalf("expected ErrLaunchFailed, got %v", err)
	}
	if s.Phase() != domain.PhaseClosed {
		t.Fatalf("expected closed after failed launch, got %s", s.Phase())
	}
	if s.LastError() == nil {
		t.Fatal("last error not recorded")
	}
}

func TestNavigateRequiresLaunch(t *testing.T) {
	t.Parallel()

	s := newTestSession(testConfig(), &scriptedRunner{})
	err := s.Navigate(context.Background(), "https://example.test")
	if !errors.Is(err, domain.ErrNavigationFailed) {
		t.Fatalf("expected ErrNavigationFailed, got %v", err)
	}
}

func TestAwaitReadyTimeoutReturnsFalseWithoutError(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{results: []error{nil, context.DeadlineExceeded}}
	s := newTestSession(testConfig(), runner)
	ctx := context.Background()

	if err := s.Launch(ctx); err != nil {
		t.Fatalf("Launch error: %v", err)
	}

	ready, err := s.AwaitReady(ctx, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if ready {
		t.Fatal("expected not ready")
	}
	if s.Phase() != domain.PhaseLaunched {
		t.Fatalf("phase must be unchanged on timeout, got %s", s.Phase())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{}
	s := newTestSession(testConfig(), runner)
	if err := s.Launch(context.Background()); err != nil {
		t.Fatalf("Launch error: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if s.Phase() != domain.PhaseClosed {
		t.Fatalf("expected closed, got %s", s.Phase())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
	if s.Phase() != domain.PhaseClosed {
		t.Fatalf("expected closed after double close, got %s", s.Phase())
	}
}

func readySession(t *testing.T, runner *scriptedRunner) *Session {
	t.Helper()
	s := newTestSession(testConfig(), runner)
	ctx := context.Background()
	if err := s.Launch(ctx); err != nil {
		t.Fatalf("Launch error: %v", err)
	}
	if err := s.AwaitLogin(ctx); err != nil {
		t.Fatalf("AwaitLogin error: %v", err)
	}
	if ready, err := s.AwaitReady(ctx, 0); err != nil || !ready {
		t.Fatalf("AwaitReady = %v, %v", ready, err)
	}
	return s
}

func TestExecuteLeftNeverProbesForMatch(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{}
	s := readySession(t, runner)
	callsBefore := runner.calls

	matched, err := s.Execute(context.Background(), domain.ActionLeft)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if matched {
		t.Fatal("a dismissal can never match")
	}
	// Exactly one round-trip: the click. No popup probe.
	if got := runner.calls - callsBefore; got != 1 {
		t.Fatalf("left swipe issued %d round-trips, want 1", got)
	}
}

func TestExecuteRightReportsMatch(t *testing.T) {
	t.Parallel()

	// Launch, landmark, click succeed; popup probe succeeds; dismissal
	// succeeds → matched.
	runner := &scriptedRunner{}
	s := readySession(t, runner)

	matched, err := s.Execute(context.Background(), domain.ActionRight)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !matched {
		t.Fatal("expected a match when the popup appears")
	}
}

func TestExecuteRightNoMatchWithinTimeout(t *testing.T) {
	t.Parallel()

	// Click succeeds, popup probe times out → matched=false, no error.
	runner := &scriptedRunner{results: []error{nil, nil, nil, context.DeadlineExceeded}}
	s := readySession(t, runner)

	matched, err := s.Execute(context.Background(), domain.ActionRight)
	if err != nil {
		t.Fatalf("absence of a match must not be an error, got %v", err)
	}
	if matched {
		t.Fatal("expected no match")
	}
}

func TestExecuteControlTimeout(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{results: []error{nil, nil, context.DeadlineExceeded}}
	s := readySession(t, runner)

	_, err := s.Execute(context.Background(), domain.ActionLeft)
	if !errors.Is(err, domain.ErrControlNotFound) {
		t.Fatalf("expected ErrControlNotFound, got %v", err)
	}
}

func TestExecuteRequiresReadySession(t *testing.T) {
	t.Parallel()

	s := newTestSession(testConfig(), &scriptedRunner{})
	if _, err := s.Execute(context.Background(), domain.ActionRight); !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestReadProfileRequiresReadySession(t *testing.T) {
	t.Parallel()

	s := newTestSession(testConfig(), &scriptedRunner{})
	if _, err := s.ReadProfile(context.Background()); !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}
