package autoswipe

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"swipepilot/internal/domain"
	"swipepilot/internal/ports"
)

// Deps wires the driven adapters into the autoswipe loop.
type Deps struct {
	Session ports.Session
	Swiper  ports.Swiper
	Scorer  ports.Scorer
	Logger  *slog.Logger

	// PacingMin/PacingMax bound the randomized inter-swipe delay.
	PacingMin time.Duration
	PacingMax time.Duration

	// Rand and Sleep are injectable for tests; nil means real randomness
	// and real sleeping.
	Rand  *rand.Rand
	Sleep func(time.Duration)
}

// Result summarizes a run: how many iterations completed out of the
// requested count, and how many matches were detected.
type Result struct {
	Outcomes  []domain.SwipeOutcome
	Requested int
	Completed int
	Matches   int
}

// Runner drives the read → decide → act → record loop over the live
// session. One Runner owns one session; iterations never overlap because
// the swipe surface is a single shared mutable resource.
type Runner struct {
	session   ports.Session
	swiper    ports.Swiper
	scorer    ports.Scorer
	logger    *slog.Logger
	pacingMin time.Duration
	pacingMax time.Duration
	rand      *rand.Rand
	sleep     func(time.Duration)
}

// New constructs the loop with defaults for pacing and randomness.
func New(deps Deps) *Runner {
	r := &Runner{
		session:   deps.Session,
		swiper:    deps.Swiper,
		scorer:    deps.Scorer,
		logger:    deps.Logger,
		pacingMin: deps.PacingMin,
		pacingMax: deps.PacingMax,
		rand:      deps.Rand,
		sleep:     deps.Sleep,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.pacingMin <= 0 {
		r.pacingMin = time.Second
	}
	if r.pacingMax < r.pacingMin {
		r.pacingMax = 3 * time.Second
	}
	if r.rand == nil {
		r.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if r.sleep == nil {
		r.sleep = time.Sleep
	}
	return r
}

// Run executes count iterations under the given strategy. Per-iteration
// failures are logged and skipped; a single bad frame never aborts an
// otherwise healthy run. Cancellation is cooperative and honored only
// between iterations, never mid-action.
func (r *Runner) Run(ctx context.Context, count int, strategy domain.Strategy) (Result, error) {
	result := Result{Requested: count}

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			r.logger.Info("run cancelled", "iteration", i, "completed", result.Completed)
			return result, err
		}

		snapshot, err := r.session.ReadProfile(ctx)
		if err != nil {
			r.logger.Warn("profile read failed, skipping iteration", "iteration", i, "error", err)
			continue
		}

		action, score := r.decide(snapshot, strategy)

		matched, err := r.swiper.Execute(ctx, action)
		if err != nil {
			r.logger.Warn("swipe failed, skipping iteration", "iteration", i, "action", action, "error", err)
			continue
		}

		// All four outcome fields are known at this point; only now is
		// the record appended.
		outcome := domain.SwipeOutcome{
			Profile:    snapshot,
			Action:     action,
			Matched:    matched,
			Score:      score,
			ExecutedAt: time.Now().UTC(),
		}
		result.Outcomes = append(result.Outcomes, outcome)
		result.Completed++
		if matched {
			result.Matches++
		}

		r.logger.Info("swipe recorded",
			"iteration", i+1,
			"of", count,
			"name", snapshot.Name,
			"action", action,
			"matched", matched,
		)

		// Randomized pacing breaks the uniform automation cadence.
		r.sleep(r.pacingDelay())
	}

	return result, nil
}

func (r *Runner) decide(snapshot domain.ProfileSnapshot, strategy domain.Strategy) (domain.Action, *domain.ScoreResult) {
	switch strategy {
	case domain.StrategyForceRight:
		return domain.ActionRight, nil
	case domain.StrategyForceLeft:
		return domain.ActionLeft, nil
	case domain.StrategyScoreBased:
		if r.scorer != nil {
			score := r.scorer.Predict(snapshot)
			return score.Recommendation, &score
		}
		return domain.ActionLeft, nil
	default: // random: an unweighted coin flip
		if r.rand.Float64() > 0.5 {
			return domain.ActionRight, nil
		}
		return domain.ActionLeft, nil
	}
}

func (r *Runner) pacingDelay() time.Duration {
	spread := r.pacingMax - r.pacingMin
	if spread <= 0 {
		return r.pacingMin
	}
	return r.pacingMin + time.Duration(r.rand.Int63n(int64(spread)))
}
