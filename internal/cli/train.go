package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"swipepilot/internal/analyzer"
	"swipepilot/internal/config"
	"swipepilot/internal/domain"
	"swipepilot/internal/scorer"
)

// A model fitted on fewer liked profiles than this is noise.
const minTrainingSamples = 10

// NewTrainCmd creates the 'train' command: fit the scoring model on the
// account's swipe history and write it to disk.
func NewTrainCmd() *cobra.Command {
	var accountID int64
	var outPath string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the scoring model on recorded swipe outcomes",
		Long: `Fit the learned scorer on profiles this account liked, labeling each
by whether it produced a match. The written model file switches 'run
--strategy score_based' from rule-based to learned scoring when its path
is set in the config (scorer.modelPath) or SWIPEPILOT_MODEL_PATH.`,
		Example: `  swipepilot train --out model.json
  swipepilot train --account 2 --out /var/lib/swipepilot/model.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if accountID > 0 {
				cfg.Account.ID = accountID
			}
			if outPath == "" {
				return fmt.Errorf("--out is required")
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

			samples, labels := trainingData(records)
			if len(samples) < minTrainingSamples {
				return fmt.Errorf("need at least %d liked profiles to train, have %d", minTrainingSamples, len(samples))
			}

			model, err := scorer.Train(analyzer.New(0), samples, labels)
			if err != nil {
				return err
			}
			if err := model.Save(outPath); err != nil {
				return err
			}

			matches := 0
			for _, label := range labels {
				matches += label
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Trained on %d liked profiles (%d matched), model written to %s\n",
				len(samples), matches, outPath)
			return nil
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "Account ID to train on (default from config)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Path to write the model JSON file")

	return cmd
}

// trainingData keeps only liked profiles: a left swipe says nothing
// about whether the other side would have matched.
func trainingData(records []domain.StoredRecord) ([]domain.ProfileSnapshot, []int) {
	var samples []domain.ProfileSnapshot
	var labels []int
	for _, rec := range records {
		if rec.Action != domain.ActionRight && rec.Action != domain.ActionSuper {
			continue
		}
		samples = append(samples, rec.Profile)
		label := 0
		if rec.Matched {
			label = 1
		}
		labels = append(labels, label)
	}
	return samples, labels
}
