package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"swipepilot/internal/config"
	"swipepilot/internal/report"
)

// NewReportCmd creates the 'report' command: aggregate statistics over
// an account's stored swipe history.
func NewReportCmd() *cobra.Command {
	var accountID int64

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize an account's swipe history",
		Example: `  swipepilot report
  swipepilot report --account 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if accountID > 0 {
				cfg.Account.ID = accountID
			}

			db, repo, err := openRepository(cmd.Context(), cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			records, err := repo.ListByAccount(cmd.Context(), cfg.Account.ID)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), cfg.Account.ID, report.Summarize(records))
			return nil
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "Account ID to report on (default from config)")

	return cmd
}

func printSummary(w io.Writer, accountID int64, s report.Summary) {
	fmt.Fprintf(w, "Swipe report for account %d\n\n", accountID)
	fmt.Fprintf(w, "  Total swipes: %d (right %d, left %d, super %d)\n",
		s.TotalSwipes, s.RightSwipes, s.LeftSwipes, s.SuperLikes)
	fmt.Fprintf(w, "  Matches:      %d (%.1f%% of likes)\n", s.Matches, s.MatchRate)
	if s.AvgScore > 0 {
		fmt.Fprintf(w, "  Avg score:    %.1f\n", s.AvgScore)
	}
	if s.Age.Max > 0 {
		fmt.Fprintf(w, "  Age:          avg %.1f, median %d, range %d-%d\n",
			s.Age.Avg, s.Age.Median, s.Age.Min, s.Age.Max)
	}
	if s.Distance.Max > 0 {
		fmt.Fprintf(w, "  Distance km:  avg %.1f, median %d, range %d-%d\n",
			s.Distance.Avg, s.Distance.Median, s.Distance.Min, s.Distance.Max)
	}
	if s.PeakHour >= 0 {
		fmt.Fprintf(w, "  Peak hour:    %02d:00\n", s.PeakHour)
	}

	if len(s.HourlyDistribution) > 0 {
		fmt.Fprintf(w, "\n  Swipes per hour:\n")
		hours := make([]int, 0, len(s.HourlyDistribution))
		for hour := range s.HourlyDistribution {
			hours = append(hours, hour)
		}
		sort.Ints(hours)
		for _, hour := range hours {
			fmt.Fprintf(w, "    %02d:00  %d\n", hour, s.HourlyDistribution[hour])
		}
	}
}
