package abtest

import (
	"fmt"

	"swipepilot/internal/domain"
)

// Winner labels for a two-arm comparison.
const (
	WinnerArmA = "arm_a"
	WinnerArmB = "arm_b"
	WinnerTie  = "tie"
)

// Confidence labels for the declared winner.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Relative margins: a winner needs >10% over the other arm's rate, and
// >20% upgrades confidence to high.
const (
	winnerMargin     = 1.1
	confidenceMargin = 1.2
)

// ArmStats summarizes one profile variant's swipe records.
type ArmStats struct {
	TotalSwipes int
	RightSwipes int
	LeftSwipes  int
	Matches     int
	MatchRate   float64
}

// Result is the outcome of comparing two arms.
type Result struct {
	ArmA           ArmStats
	ArmB           ArmStats
	Winner         string
	Confidence     string
	Recommendation string
}

// MatchRate is the percentage of right swipes that produced a match.
// No right swipes means a zero rate, not a division fault.
func MatchRate(records []domain.StoredRecord) float64 {
	rights, matches := 0, 0
	for _, rec := range records {
		if rec.Action != domain.ActionRight && rec.Action != domain.ActionSuper {
			continue
		}
		rights++
		if rec.Matched {
			matches++
		}
	}
	if rights == 0 {
		return 0
	}
	return float64(matches) / float64(rights) * 100
}

// Stats tallies one arm's records.
func Stats(records []domain.StoredRecord) ArmStats {
	stats := ArmStats{TotalSwipes: len(records)}
	for _, rec := range records {
		switch rec.Action {
		case domain.ActionRight, domain.ActionSuper:
			stats.RightSwipes++
			if rec.Matched {
				stats.Matches++
			}
		case domain.ActionLeft:
			stats.LeftSwipes++
		}
	}
	stats.MatchRate = MatchRate(records)
	return stats
}

// Compare declares a winner between two outcome sets. An arm wins only
// when its match rate exceeds the other's by the fixed relative margin;
// anything closer is a low-confidence tie.
func Compare(armA, armB []domain.StoredRecord) Result {
	result := Result{
		ArmA: Stats(armA),
		ArmB: Stats(armB),
	}

	rateA, rateB := result.ArmA.MatchRate, result.ArmB.MatchRate

	switch {
	case rateA > rateB*winnerMargin:
		result.Winner = WinnerArmA
		result.Confidence = ConfidenceMedium
		if rateA > rateB*confidenceMargin {
			result.Confidence = ConfidenceHigh
		}
		result.Recommendation = recommendation("A", rateA, rateB)
	case rateB > rateA*winnerMargin:
		result.Winner = WinnerArmB
		result.Confidence = ConfidenceMedium
		if rateB > rateA*confidenceMargin {
			result.Confidence = ConfidenceHigh
		}
		result.Recommendation = recommendation("B", rateB, rateA)
	default:
		result.Winner = WinnerTie
		result.Confidence = ConfidenceLow
		result.Recommendation = "both profiles perform similarly; keep testing or rotate them"
	}

	return result
}

// recommendation phrases the winning arm's relative improvement. A zero
// baseline would make the improvement undefined, so it saturates at 100%
// instead of propagating a division fault.
func recommendation(arm string, winner, loser float64) string {
	improvement := 100.0
	if loser > 0 {
		improvement = (winner - loser) / loser * 100
	}
	return fmt.Sprintf("use profile %s: match rate higher by %.1f%%", arm, improvement)
}
