package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"swipepilot/internal/config"
	"swipepilot/internal/domain"
	"swipepilot/internal/ports"
)

// runFunc executes chromedp actions against a browser context. Tests swap
// it for a stub so the phase machine runs without a real Chrome.
type runFunc func(ctx context.Context, actions ...chromedp.Action) error

// allocateFunc starts the browser runtime and returns its context plus
// the cancel functions releasing it, outermost last.
type allocateFunc func(ctx context.Context, cfg config.BrowserConfig) (context.Context, []context.CancelFunc)

// Session drives a single live swipe surface through Chrome DevTools.
// It owns the session phase exclusively: there is exactly one writer, so
// no locking is required; a Session must not be shared across goroutines.
type Session struct {
	cfg    config.BrowserConfig
	logger *slog.Logger
	gate   ports.Gate

	phase   domain.SessionPhase
	lastErr error

	browserCtx context.Context
	cancels    []context.CancelFunc

	allocate allocateFunc
	run      runFunc
}

var (
	_ ports.Session = (*Session)(nil)
	_ ports.Swiper  = (*Session)(nil)
)

// NewSession wires a chromedp-backed session controller. The gate blocks
// AwaitLogin until the operator confirms authentication.
func NewSession(cfg config.BrowserConfig, gate ports.Gate, logger *slog.Logger) *Session {
	return &Session{
		cfg:      cfg,
		logger:   logger,
		gate:     gate,
		phase:    domain.PhaseUninitialized,
		allocate: chromedpAllocate,
		run:      chromedp.Run,
	}
}

func chromedpAllocate(ctx context.Context, cfg config.BrowserConfig) (context.Context, []context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.NoSandbox,
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	return browserCtx, []context.CancelFunc{cancelBrowser, cancelAlloc}
}

// Phase reports the current lifecycle phase.
func (s *Session) Phase() domain.SessionPhase {
	return s.phase
}

// LastError reports the most recent session-level failure, if any.
func (s *Session) LastError() error {
	return s.lastErr
}

// Launch starts the browser runtime. The first DevTools round-trip is
// what actually spawns Chrome, so an empty navigation forces the start
// and surfaces launch failures here instead of on first use.
func (s *Session) Launch(ctx context.Context) error {
	if s.phase == domain.PhaseClosed {
		return s.fail(domain.ErrLaunchFailed, domain.ErrSessionClosed)
	}
	if s.phase != domain.PhaseUninitialized {
		return nil
	}

	s.browserCtx, s.cancels = s.allocate(ctx, s.cfg)

	if err := s.run(s.browserCtx, chromedp.Navigate("about:blank")); err != nil {
		s.Close()
		return s.fail(domain.ErrLaunchFailed, err)
	}

	s.phase = domain.PhaseLaunched
	s.log().Info("browser launched", "headless", s.cfg.Headless)
	return nil
}

// Navigate loads the target URL. Requires at least a launched session;
// the phase does not change.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if s.phase == domain.PhaseUninitialized || s.phase == domain.PhaseClosed {
		return s.fail(domain.ErrNavigationFailed, fmt.Errorf("phase %s", s.phase))
	}

	if err := s.run(s.browserCtx, chromedp.Navigate(url)); err != nil {
		return s.fail(domain.ErrNavigationFailed, err)
	}

	s.log().Info("navigated", "url", url)
	return nil
}

// AwaitLogin blocks on the operator gate until authentication is
// confirmed. This is a hard synchronous checkpoint: it has no timeout of
// its own and honors only ctx cancellation.
func (s *Session) AwaitLogin(ctx context.Context) error {
	if s.phase != domain.PhaseLaunched {
		return fmt.Errorf("await login in phase %s: %w", s.phase, domain.ErrNotReady)
	}
	if s.gate == nil {
		s.phase = domain.PhaseAuthenticated
		return nil
	}

	s.log().Info("waiting for operator to complete login")
	if err := s.gate.Wait(ctx); err != nil {
		return fmt.Errorf("operator gate: %w", err)
	}

	s.phase = domain.PhaseAuthenticated
	s.log().Info("login confirmed")
	return nil
}

// AwaitReady polls for the Like control, the landmark indicating the
// swipe surface is interactive. On success the session becomes ready; on
// timeout it returns (false, nil) and the phase is unchanged so the
// caller decides whether to retry or abort.
func (s *Session) AwaitReady(ctx context.Context, timeout time.Duration) (bool, error) {
	switch s.phase {
	case domain.PhaseReady:
		return true, nil
	case domain.PhaseLaunched, domain.PhaseAuthenticated:
	default:
		return false, fmt.Errorf("await ready in phase %s: %w", s.phase, domain.ErrNotReady)
	}

	if timeout <= 0 {
		timeout = s.cfg.ReadyTimeout()
	}

	waitCtx, cancel := context.WithTimeout(s.withParent(ctx), timeout)
	defer cancel()

	if err := s.run(waitCtx, chromedp.WaitVisible(selLike, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.log().Warn("swipe surface not ready within timeout", "timeout", timeout)
			return false, nil
		}
		return false, fmt.Errorf("wait for swipe surface: %w", err)
	}

	s.phase = domain.PhaseReady
	s.log().Info("swipe surface ready")
	return true, nil
}

// ReadProfile scrapes the currently displayed candidate. Individual
// fields that cannot be located default to empty/zero; only failing to
// read the page at all is an error, and that error is non-fatal to a run.
func (s *Session) ReadProfile(ctx context.Context) (domain.ProfileSnapshot, error) {
	if s.phase != domain.PhaseReady {
		return domain.ProfileSnapshot{}, fmt.Errorf("read profile in phase %s: %w", s.phase, domain.ErrNotReady)
	}

	readCtx, cancel := context.WithTimeout(s.withParent(ctx), s.cfg.ControlTimeout())
	defer cancel()

	var html string
	if err := s.run(readCtx, chromedp.OuterHTML("body", &html, chromedp.ByQuery)); err != nil {
		return domain.ProfileSnapshot{}, fmt.Errorf("capture profile view: %w", domain.ErrLandmarkTimeout)
	}

	snapshot := parseProfile(html, time.Now().UTC())
	s.log().Debug("profile read", "name", snapshot.Name, "age", snapshot.Age, "photos", len(snapshot.Photos))
	return snapshot, nil
}

// Close releases the session deterministically regardless of phase.
// Idempotent: closing twice is a no-op, not an error.
func (s *Session) Close() error {
	if s.phase == domain.PhaseClosed {
		return nil
	}

	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.browserCtx = nil
	s.phase = domain.PhaseClosed
	s.log().Info("browser closed")
	return nil
}

// withParent ties a chromedp call to the caller's cancellation while the
// DevTools session itself lives on the browser context.
func (s *Session) withParent(ctx context.Context) context.Context {
	if s.browserCtx == nil {
		return ctx
	}
	return s.browserCtx
}

func (s *Session) fail(kind, cause error) error {
	err := fmt.Errorf("%w: %v", kind, cause)
	s.lastErr = err
	return err
}

func (s *Session) log() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}
