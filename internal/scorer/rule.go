package scorer

import (
	"fmt"
	"strings"

	"swipepilot/internal/domain"
)

const baseScore = 50.0

// ruleScore applies fixed additive bands over the snapshot's analysis.
// Bands across categories are independent; within a category only the
// highest matching band fires. The result is clamped to [0,100].
func ruleScore(snapshot domain.ProfileSnapshot, analysis domain.AnalysisResult) float64 {
	score := baseScore

	// Age sweet spot.
	switch {
	case snapshot.Age >= 24 && snapshot.Age <= 32:
		score += 10
	case snapshot.Age >= 20 && snapshot.Age <= 35:
		score += 5
	}

	// Distance: close but not on the doorstep.
	switch {
	case snapshot.DistanceKm >= 2 && snapshot.DistanceKm <= 10:
		score += 10
	case snapshot.DistanceKm <= 20:
		score += 5
	case snapshot.DistanceKm > 50:
		score -= 10
	}

	// Bio quality by length.
	switch {
	case analysis.BioLength >= 50 && analysis.BioLength <= 300:
		score += 10
	case analysis.BioLength >= 20 && analysis.BioLength <= 500:
		score += 5
	case analysis.BioLength == 0:
		score -= 15
	}

	// Photo coverage.
	switch {
	case analysis.PhotoCount >= 4:
		score += 10
	case analysis.PhotoCount >= 2:
		score += 5
	case analysis.PhotoCount <= 1:
		score -= 10
	}

	// Sentiment polarity.
	switch {
	case analysis.Sentiment.Polarity > 0.2:
		score += 10
	case analysis.Sentiment.Polarity < -0.2:
		score -= 5
	}

	// Interest breadth.
	switch {
	case len(analysis.Interests) >= 3:
		score += 10
	case len(analysis.Interests) >= 1:
		score += 5
	}

	// Emoji moderation.
	switch {
	case len(analysis.Emojis) >= 1 && len(analysis.Emojis) <= 5:
		score += 5
	case len(analysis.Emojis) > 10:
		score -= 5
	}

	return clampScore(score)
}

// decisionReason lists the contributing factors whose band fired, positive
// factors first in priority order, then negative flags. It falls back to a
// plain numeric summary when nothing fired.
func decisionReason(snapshot domain.ProfileSnapshot, analysis domain.AnalysisResult, score float64) string {
	var reasons []string

	if analysis.PhotoCount >= 4 {
		reasons = append(reasons, "plenty of photos")
	}
	if analysis.BioLength >= 50 && analysis.BioLength <= 300 {
		reasons = append(reasons, "well-written bio")
	}
	if len(analysis.Interests) >= 3 {
		reasons = append(reasons, fmt.Sprintf("broad interests (%s)", strings.Join(analysis.Interests[:3], ", ")))
	}
	if analysis.Sentiment.Polarity > 0.2 {
		reasons = append(reasons, "positive tone")
	}
	if snapshot.DistanceKm <= 10 {
		reasons = append(reasons, fmt.Sprintf("nearby (%dkm)", snapshot.DistanceKm))
	}

	if analysis.BioLength == 0 {
		reasons = append(reasons, "no bio")
	}
	if analysis.PhotoCount <= 1 {
		reasons = append(reasons, "too few photos")
	}

	if len(reasons) == 0 {
		return fmt.Sprintf("overall score %.0f", score)
	}
	return strings.Join(reasons, "; ")
}
