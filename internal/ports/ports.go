package ports

import (
	"context"
	"time"

	"swipepilot/internal/domain"
)

// Session owns the browser lifecycle the rest of the pipeline reads from
// and acts on. Implementations drive a single live swipe surface; callers
// must not share one Session across concurrent runs.
type Session interface {
	Launch(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	// AwaitLogin blocks on the operator gate until authentication is
	// confirmed. It is a hard synchronous checkpoint, not polled.
	AwaitLogin(ctx context.Context) error
	// AwaitReady polls for the swipe-surface landmark. On timeout it
	// returns (false, nil) without changing phase.
	AwaitReady(ctx context.Context, timeout time.Duration) (bool, error)
	ReadProfile(ctx context.Context) (domain.ProfileSnapshot, error)
	Phase() domain.SessionPhase
	Close() error
}

// Swiper executes a single swipe gesture and reports a resulting match.
// A left swipe never match-checks. Retry policy belongs to the caller.
type Swiper interface {
	Execute(ctx context.Context, action domain.Action) (matched bool, err error)
}

// Scorer converts a profile snapshot into a score and recommendation.
type Scorer interface {
	Predict(snapshot domain.ProfileSnapshot) domain.ScoreResult
}

// OutcomeRepository persists swipe outcomes for a dating account.
type OutcomeRepository interface {
	SaveOutcome(ctx context.Context, accountID int64, outcome domain.SwipeOutcome) error
	SaveOutcomes(ctx context.Context, accountID int64, outcomes []domain.SwipeOutcome) error
	ListByAccount(ctx context.Context, accountID int64) ([]domain.StoredRecord, error)
}

// Gate is the operator interaction boundary: Wait blocks until an external
// operator signals completion (e.g. manual login finished).
type Gate interface {
	Wait(ctx context.Context) error
}

// Notifier reports finished runs to an external channel.
type Notifier interface {
	NotifyRunFinished(ctx context.Context, completed, requested int, matchedNames []string) error
}
