package scorer

import (
	"math"

	"swipepilot/internal/analyzer"
	"swipepilot/internal/domain"
	"swipepilot/internal/ports"
)

// Scorer turns a profile snapshot into a desirability score with a
// recommendation. It scores via fixed rule bands unless a trained model
// has been attached, in which case the model's match probability drives
// the score. Both modes share the same decision threshold.
type Scorer struct {
	analyzer *analyzer.Analyzer
	model    *Model
}

var _ ports.Scorer = (*Scorer)(nil)

// New builds a rule-based scorer.
func New(an *analyzer.Analyzer) *Scorer {
	if an == nil {
		an = analyzer.New(0)
	}
	return &Scorer{analyzer: an}
}

// NewWithModel builds a scorer in learned mode. A nil model falls back to
// rule-based scoring.
func NewWithModel(an *analyzer.Analyzer, model *Model) *Scorer {
	s := New(an)
	s.model = model
	return s
}

// Method reports which strategy Predict will use.
func (s *Scorer) Method() domain.ScoreMethod {
	if s.model != nil {
		return domain.MethodLearnedModel
	}
	return domain.MethodRuleBased
}

// Predict analyzes the snapshot once and scores it. The score is clamped
// to [0,100]; the recommendation is right iff the score reaches the fixed
// threshold.
func (s *Scorer) Predict(snapshot domain.ProfileSnapshot) domain.ScoreResult {
	analysis := s.analyzer.Analyze(snapshot)

	var score float64
	method := s.Method()
	if method == domain.MethodLearnedModel {
		score = s.model.Probability(featureVector(snapshot, analysis)) * 100
	} else {
		score = ruleScore(snapshot, analysis)
	}
	score = round2(score)

	return domain.ScoreResult{
		Score:          score,
		Method:         method,
		Recommendation: recommend(score),
		Reason:         decisionReason(snapshot, analysis, score),
	}
}

// recommend applies the fixed decision threshold, identical for both
// scoring strategies.
func recommend(score float64) domain.Action {
	if score >= domain.RecommendThreshold {
		return domain.ActionRight
	}
	return domain.ActionLeft
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
