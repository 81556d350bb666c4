package domain

import "time"

// ProfileSnapshot is a single read of the currently displayed candidate
// profile. Fields that could not be located default to empty/zero so
// downstream arithmetic stays well-defined.
type ProfileSnapshot struct {
	Name       string
	Age        int
	Bio        string
	DistanceKm int
	Photos     []string
	CapturedAt time.Time
}

// KeywordCount pairs a bio term with its frequency.
type KeywordCount struct {
	Term  string
	Count int
}

// Sentiment holds the lexical sentiment of a bio text.
// Polarity ranges -1..1, Subjectivity 0..1.
type Sentiment struct {
	Polarity     float64
	Subjectivity float64
}

// AnalysisResult is a derived, read-only view of a ProfileSnapshot.
// It is purely a function of its source snapshot and recomputable idempotently.
type AnalysisResult struct {
	BioLength  int
	Keywords   []KeywordCount
	Sentiment  Sentiment
	Interests  []string
	Emojis     []string
	PhotoCount int
}

// ScoreMethod names the scoring strategy that produced a ScoreResult.
type ScoreMethod string

const (
	MethodRuleBased    ScoreMethod = "rule_based"
	MethodLearnedModel ScoreMethod = "learned_model"
)

// RecommendThreshold is the fixed decision threshold: scores at or above
// it recommend a right swipe regardless of scoring method.
const RecommendThreshold = 60.0

// ScoreResult carries a desirability score with its recommended action
// and a human-readable justification.
type ScoreResult struct {
	Score          float64
	Method         ScoreMethod
	Recommendation Action
	Reason         string
}

// Action is a concrete swipe gesture.
type Action string

const (
	ActionLeft  Action = "left"
	ActionRight Action = "right"
	ActionSuper Action = "super"
)

// Strategy is the per-iteration action policy of the autoswipe loop.
type Strategy string

const (
	StrategyRandom     Strategy = "random"
	StrategyForceRight Strategy = "force_right"
	StrategyForceLeft  Strategy = "force_left"
	StrategyScoreBased Strategy = "score_based"
)

// ParseStrategy validates a strategy name from config or CLI flags.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategyRandom, StrategyForceRight, StrategyForceLeft, StrategyScoreBased:
		return Strategy(s), true
	}
	return "", false
}

// SwipeOutcome is the append-only record of one completed iteration.
// Score is nil unless the score_based strategy drove the decision.
type SwipeOutcome struct {
	Profile    ProfileSnapshot
	Action     Action
	Matched    bool
	Score      *ScoreResult
	ExecutedAt time.Time
}

// StoredRecord is the persisted view of a SwipeOutcome owned by an account.
type StoredRecord struct {
	ID        int64
	AccountID int64
	Profile   ProfileSnapshot
	Action    Action
	Matched   bool
	Score     *float64
	Reason    string
	SwipedAt  time.Time
}

// SessionPhase enumerates the browser session lifecycle. Only the session
// controller mutates it; other components read it to decide legality.
type SessionPhase string

const (
	PhaseUninitialized SessionPhase = "uninitialized"
	PhaseLaunched      SessionPhase = "launched"
	PhaseAuthenticated SessionPhase = "authenticated"
	PhaseReady         SessionPhase = "ready"
	PhaseClosed        SessionPhase = "closed"
)
