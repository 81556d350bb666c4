package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"swipepilot/internal/abtest"
	"swipepilot/internal/config"
)

// NewABTestCmd creates the 'abtest' command: compare the match rates of
// two accounts running different profile variants.
func NewABTestCmd() *cobra.Command {
	var accountA, accountB int64

	cmd := &cobra.Command{
		Use:     "abtest",
		Short:   "Compare match rates between two profile variants",
		Example: `  swipepilot abtest --account-a 1 --account-b 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if accountA <= 0 || accountB <= 0 {
				return fmt.Errorf("both --account-a and --account-b are required")
			}
			if accountA == accountB {
				return fmt.Errorf("arms must be different accounts")
			}

			cfg := config.Load()
			db, repo, err := openRepository(cmd.Context(), cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			recordsA, err := repo.ListByAccount(cmd.Context(), accountA)
			if err != nil {
				return err
			}
			recordsB, err := repo.ListByAccount(cmd.Context(), accountB)
			if err != nil {
				return err
			}

			printComparison(cmd.OutOrStdout(), accountA, accountB, abtest.Compare(recordsA, recordsB))
			return nil
		},
	}

	cmd.Flags().Int64Var(&accountA, "account-a", 0, "Account ID for variant A")
	cmd.Flags().Int64Var(&accountB, "account-b", 0, "Account ID for variant B")

	return cmd
}

func printComparison(w io.Writer, accountA, accountB int64, result abtest.Result) {
	printArm := func(label string, id int64, stats abtest.ArmStats) {
		fmt.Fprintf(w, "  %s (account %d): %d swipes, %d likes, %d matches, %.1f%% match rate\n",
			label, id, stats.TotalSwipes, stats.RightSwipes, stats.Matches, stats.MatchRate)
	}

	fmt.Fprintf(w, "A/B test results\n\n")
	printArm("A", accountA, result.ArmA)
	printArm("B", accountB, result.ArmB)
	fmt.Fprintf(w, "\n  Winner:         %s (%s confidence)\n", result.Winner, result.Confidence)
	fmt.Fprintf(w, "  Recommendation: %s\n", result.Recommendation)
}
