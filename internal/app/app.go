package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"swipepilot/internal/analyzer"
	"swipepilot/internal/autoswipe"
	"swipepilot/internal/config"
	"swipepilot/internal/domain"
	"swipepilot/internal/infrastructure/browser"
	"swipepilot/internal/infrastructure/operator"
	"swipepilot/internal/infrastructure/telegram"
	"swipepilot/internal/logging"
	"swipepilot/internal/ports"
	"swipepilot/internal/scorer"
)

const saveTimeout = 15 * time.Second

// Application wires configuration into the session, scorer and runner.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	session  *browser.Session
	runner   *autoswipe.Runner
	repo     ports.OutcomeRepository
	notifier ports.Notifier
}

// New builds a runnable application instance. The repository may be nil;
// a run without persistence still swipes, it just keeps nothing.
func New(cfg config.Config, baseLogger *slog.Logger, repo ports.OutcomeRepository) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	sc, err := buildScorer(cfg.Scorer)
	if err != nil {
		return nil, err
	}
	baseLogger.Info("scorer ready", "method", sc.Method())

	session := browser.NewSession(cfg.Browser, operator.NewConsoleGate(), logging.Component(baseLogger, "browser"))

	runner := autoswipe.New(autoswipe.Deps{
		Session:   session,
		Swiper:    session,
		Scorer:    sc,
		Logger:    logging.Component(baseLogger, "autoswipe"),
		PacingMin: cfg.Swipe.PacingMin(),
		PacingMax: cfg.Swipe.PacingMax(),
	})

	var notifier ports.Notifier
	if cfg.Telegram.Enabled() {
		notifier = telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		session:  session,
		runner:   runner,
		repo:     repo,
		notifier: notifier,
	}, nil
}

func buildScorer(cfg config.ScorerConfig) (*scorer.Scorer, error) {
	an := analyzer.New(0)
	if cfg.ModelPath == "" {
		return scorer.New(an), nil
	}

	model, err := scorer.Load(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("load scoring model %s: %w", cfg.ModelPath, err)
	}
	return scorer.NewWithModel(an, model), nil
}

// Autoswipe runs the full session lifecycle: launch, navigate, wait for
// the operator to finish logging in, wait for the swipe surface, then
// drive the loop and persist whatever completed. The browser is closed
// on every exit path.
func (a *Application) Autoswipe(ctx context.Context, count int, strategy domain.Strategy) (autoswipe.Result, error) {
	var result autoswipe.Result

	if err := a.session.Launch(ctx); err != nil {
		return result, err
	}
	defer func() {
		if err := a.session.Close(); err != nil {
			a.logger.Warn("session close failed", "error", err)
		}
	}()

	if err := a.session.Navigate(ctx, a.cfg.Browser.BaseURL); err != nil {
		return result, err
	}
	if err := a.session.AwaitLogin(ctx); err != nil {
		return result, err
	}

	ready, err := a.session.AwaitReady(ctx, a.cfg.Browser.ReadyTimeout())
	if err != nil {
		return result, err
	}
	if !ready {
		return result, fmt.Errorf("swipe surface did not appear within %v: %w",
			a.cfg.Browser.ReadyTimeout(), domain.ErrNotReady)
	}

	result, runErr := a.runner.Run(ctx, count, strategy)

	// Persist even a partial run: completed outcomes are real data no
	// matter why the loop stopped. The save gets its own deadline so an
	// interrupted run still lands in the database.
	if a.repo != nil && len(result.Outcomes) > 0 {
		saveCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := a.repo.SaveOutcomes(saveCtx, a.cfg.Account.ID, result.Outcomes); err != nil {
			a.logger.Error("persisting outcomes failed", "count", len(result.Outcomes), "error", err)
			if runErr == nil {
				runErr = err
			}
		}
	}

	a.logger.Info("autoswipe finished",
		"requested", result.Requested,
		"completed", result.Completed,
		"matches", result.Matches,
	)

	// Notification is best effort and never fails the run.
	if a.notifier != nil {
		notifyCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := a.notifier.NotifyRunFinished(notifyCtx, result.Completed, result.Requested, matchedNames(result.Outcomes)); err != nil {
			a.logger.Warn("run notification failed", "error", err)
		}
	}

	return result, runErr
}

func matchedNames(outcomes []domain.SwipeOutcome) []string {
	var names []string
	for _, o := range outcomes {
		if o.Matched {
			names = append(names, o.Profile.Name)
		}
	}
	return names
}
