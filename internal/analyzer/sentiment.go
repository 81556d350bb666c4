package analyzer

import "swipepilot/internal/domain"

// sentimentEntry carries the polarity (-1..1) and subjectivity (0..1) a
// lexicon word contributes.
type sentimentEntry struct {
	polarity     float64
	subjectivity float64
}

// Fixed sentiment lexicon. Scores follow common lexical sentiment tables;
// the procedure averages contributions from matched words, so text with no
// lexicon hits scores a neutral {0, 0}.
var sentimentLexicon = map[string]sentimentEntry{
	"love":      {0.5, 0.6},
	"loving":    {0.5, 0.6},
	"like":      {0.3, 0.4},
	"enjoy":     {0.4, 0.5},
	"great":     {0.8, 0.75},
	"good":      {0.7, 0.6},
	"amazing":   {0.6, 0.9},
	"awesome":   {1.0, 1.0},
	"happy":     {0.8, 1.0},
	"fun":       {0.3, 0.2},
	"funny":     {0.25, 0.9},
	"beautiful": {0.85, 1.0},
	"best":      {1.0, 0.3},
	"nice":      {0.6, 1.0},
	"perfect":   {1.0, 1.0},
	"wonderful": {1.0, 1.0},
	"passionate": {0.5, 0.9},
	"adventurous": {0.4, 0.7},
	"positive":  {0.25, 0.7},
	"excited":   {0.4, 0.8},
	"kind":      {0.6, 0.9},
	"sweet":     {0.35, 0.65},
	"easygoing": {0.4, 0.6},
	"friendly":  {0.5, 0.7},

	"hate":     {-0.8, 0.9},
	"bad":      {-0.7, 0.67},
	"boring":   {-1.0, 1.0},
	"tired":    {-0.4, 0.7},
	"sad":      {-0.5, 1.0},
	"awful":    {-1.0, 1.0},
	"terrible": {-1.0, 1.0},
	"worst":    {-1.0, 0.3},
	"annoying": {-0.6, 0.9},
	"lazy":     {-0.4, 0.8},
	"drama":    {-0.3, 0.6},
	"negative": {-0.25, 0.7},
	"rude":     {-0.6, 0.9},
	"lonely":   {-0.4, 0.8},
	"angry":    {-0.5, 0.9},
	"ugly":     {-0.8, 1.0},
}

// negations flip and dampen the polarity of the word that follows them.
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "dont": {}, "cant": {}, "wont": {},
	"isnt": {}, "arent": {},
}

// analyzeSentiment maps bio text to polarity in [-1,1] and subjectivity in
// [0,1]. Empty text yields {0, 0}.
func analyzeSentiment(text string) domain.Sentiment {
	if text == "" {
		return domain.Sentiment{}
	}

	tokens := tokenize(text)

	var polSum, subSum float64
	var matched int
	negated := false
	for _, token := range tokens {
		if _, neg := negations[token]; neg {
			negated = true
			continue
		}

		entry, ok := sentimentLexicon[token]
		if !ok {
			negated = false
			continue
		}

		pol := entry.polarity
		if negated {
			pol *= -0.5
			negated = false
		}

		polSum += pol
		subSum += entry.subjectivity
		matched++
	}

	if matched == 0 {
		return domain.Sentiment{}
	}

	return domain.Sentiment{
		Polarity:     clamp(polSum/float64(matched), -1, 1),
		Subjectivity: clamp(subSum/float64(matched), 0, 1),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
