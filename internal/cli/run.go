package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"swipepilot/internal/app"
	"swipepilot/internal/config"
	"swipepilot/internal/domain"
	"swipepilot/internal/logging"
	"swipepilot/internal/ports"
)

// NewRunCmd creates the 'run' command: an end-to-end autoswipe session.
func NewRunCmd() *cobra.Command {
	var count int
	var strategy string
	var headless bool
	var noPersist bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch the browser and run an autoswipe session",
		Long: `Open the dating site, wait for you to log in manually, then swipe
the requested number of profiles under the chosen strategy.`,
		Example: `  swipepilot run --count 20 --strategy score_based
  swipepilot run --count 5 --strategy force_right --headless`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if count > 0 {
				cfg.Swipe.Count = count
			}
			if strategy != "" {
				cfg.Swipe.Strategy = strategy
			}
			if cmd.Flags().Changed("headless") {
				cfg.Browser.Headless = headless
			}
			return runAutoswipe(cmd, cfg, noPersist)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of profiles to swipe (default from config)")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Swipe strategy: random, force_right, force_left, score_based")
	cmd.Flags().BoolVar(&headless, "headless", false, "Run Chrome without a visible window")
	cmd.Flags().BoolVar(&noPersist, "no-persist", false, "Skip writing outcomes to the database")

	return cmd
}

func runAutoswipe(cmd *cobra.Command, cfg config.Config, noPersist bool) error {
	strategy, ok := domain.ParseStrategy(cfg.Swipe.Strategy)
	if !ok {
		return fmt.Errorf("unknown strategy %q", cfg.Swipe.Strategy)
	}

	logger := logging.New(cfg.Logging.Level)

	// Ctrl-C finishes the current swipe, persists what completed and exits.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo ports.OutcomeRepository
	if !noPersist {
		db, pgRepo, err := openRepository(ctx, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = pgRepo
	}

	application, err := app.New(cfg, logger, repo)
	if err != nil {
		return err
	}

	result, err := application.Autoswipe(ctx, cfg.Swipe.Count, strategy)
	fmt.Fprintf(cmd.OutOrStdout(), "Completed %d/%d swipes, %d matches\n",
		result.Completed, result.Requested, result.Matches)
	if errors.Is(err, context.Canceled) {
		// Interrupted by the operator; completed work is already saved.
		return nil
	}
	return err
}
