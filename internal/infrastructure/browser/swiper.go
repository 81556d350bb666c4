package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/chromedp/chromedp"

	"swipepilot/internal/domain"
)

// Execute performs the swipe gesture for the given action and reports a
// resulting match. Requires a ready session. A failed control wait means
// the swipe did not happen; it is surfaced, never silently retried here.
func (s *Session) Execute(ctx context.Context, action domain.Action) (bool, error) {
	if s.phase != domain.PhaseReady {
		return false, fmt.Errorf("execute %s in phase %s: %w", action, s.phase, domain.ErrNotReady)
	}

	var sel string
	switch action {
	case domain.ActionLeft:
		sel = selNope
	case domain.ActionRight:
		sel = selLike
	case domain.ActionSuper:
		sel = selSuperLike
	default:
		return false, fmt.Errorf("unknown action %q", action)
	}

	if err := s.clickControl(ctx, sel); err != nil {
		return false, fmt.Errorf("%s: %w", action, err)
	}
	s.log().Debug("swipe executed", "action", action)

	// A dismissal can never match, so only positive gestures probe for
	// the confirmation popup.
	if action == domain.ActionLeft {
		return false, nil
	}
	return s.detectMatch(ctx), nil
}

// clickControl waits for the control within the control timeout and
// clicks it; a timeout maps to ErrControlNotFound.
func (s *Session) clickControl(ctx context.Context, sel string) error {
	clickCtx, cancel := context.WithTimeout(s.withParent(ctx), s.cfg.ControlTimeout())
	defer cancel()

	err := s.run(clickCtx,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%q: %w", sel, domain.ErrControlNotFound)
		}
		return fmt.Errorf("click %q: %w", sel, err)
	}
	return nil
}

// detectMatch probes briefly for the match-confirmation popup and
// dismisses it when present. Absence within the timeout is not an error;
// match confirmation is best-effort.
func (s *Session) detectMatch(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(s.withParent(ctx), s.cfg.MatchTimeout())
	defer cancel()

	if err := s.run(probeCtx, chromedp.WaitVisible(xpathMatchPopup, chromedp.BySearch)); err != nil {
		return false
	}

	s.log().Info("match detected")

	closeCtx, cancel := context.WithTimeout(s.withParent(ctx), s.cfg.ControlTimeout())
	defer cancel()
	if err := s.run(closeCtx, chromedp.Click(selMatchClose, chromedp.ByQuery)); err != nil {
		s.log().Warn("could not dismiss match popup", "error", err)
	}
	return true
}
