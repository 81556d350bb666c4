package analyzer

import (
	"strings"
	"unicode"

	"swipepilot/internal/domain"
)

const defaultTopKeywords = 10

// Analyzer extracts structured signals from a profile snapshot: keyword
// frequencies, sentiment, interest categories and emoji usage. It holds no
// learned state; Analyze is deterministic for a given snapshot.
type Analyzer struct {
	topN      int
	stopwords map[string]struct{}
}

// New builds an analyzer; topN bounds the keyword list and defaults to 10.
func New(topN int) *Analyzer {
	if topN <= 0 {
		topN = defaultTopKeywords
	}
	return &Analyzer{topN: topN, stopwords: stopwordSet()}
}

// Analyze converts a snapshot into its analysis view. It never fails:
// an empty bio yields zeroed/empty fields rather than an error.
func (a *Analyzer) Analyze(snapshot domain.ProfileSnapshot) domain.AnalysisResult {
	return domain.AnalysisResult{
		BioLength:  len(snapshot.Bio),
		Keywords:   a.extractKeywords(snapshot.Bio),
		Sentiment:  analyzeSentiment(snapshot.Bio),
		Interests:  detectInterests(snapshot.Bio),
		Emojis:     extractEmojis(snapshot.Bio),
		PhotoCount: len(snapshot.Photos),
	}
}

// extractKeywords tokenizes case-insensitively, drops stopwords and tokens
// of length <= 2, and returns the topN terms by frequency. Ties keep the
// order of first appearance in the text.
func (a *Analyzer) extractKeywords(text string) []domain.KeywordCount {
	if text == "" {
		return nil
	}

	counts := map[string]int{}
	var order []string
	for _, token := range tokenize(text) {
		if len(token) <= 2 {
			continue
		}
		if _, stop := a.stopwords[token]; stop {
			continue
		}
		if counts[token] == 0 {
			order = append(order, token)
		}
		counts[token]++
	}

	// Stable sort keeps first-appearance order among equal counts.
	sortStableByCountDesc(order, counts)

	if len(order) > a.topN {
		order = order[:a.topN]
	}

	result := make([]domain.KeywordCount, 0, len(order))
	for _, term := range order {
		result = append(result, domain.KeywordCount{Term: term, Count: counts[term]})
	}
	return result
}

func sortStableByCountDesc(terms []string, counts map[string]int) {
	// Insertion sort is stable and the keyword lists are tiny.
	for i := 1; i < len(terms); i++ {
		for j := i; j > 0 && counts[terms[j]] > counts[terms[j-1]]; j-- {
			terms[j], terms[j-1] = terms[j-1], terms[j]
		}
	}
}

// tokenize lowercases the text and splits it into alphanumeric runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// interestCategory maps a category label to the keywords that signal it.
// A category is present if any keyword occurs as a substring of the bio.
type interestCategory struct {
	name     string
	keywords []string
}

// Fixed category table; iteration order determines output order.
var interestCategories = []interestCategory{
	{"sports", []string{"gym", "fitness", "yoga", "running", "swimming", "sports", "workout"}},
	{"music", []string{"music", "concert", "guitar", "piano", "singing", "band"}},
	{"food", []string{"foodie", "cooking", "chef", "food", "wine", "coffee", "restaurant"}},
	{"travel", []string{"travel", "adventure", "explore", "wanderlust", "hiking", "backpacking"}},
	{"arts", []string{"art", "painting", "drawing", "photography", "design", "creative"}},
	{"reading", []string{"books", "reading", "literature", "novel", "writer"}},
	{"technology", []string{"tech", "coding", "programming", "developer", "engineer", "startup"}},
	{"pets", []string{"dog", "cat", "pet", "puppy", "kitten", "animal"}},
	{"movies", []string{"movie", "film", "cinema", "netflix", "series", "tv"}},
	{"nature", []string{"nature", "outdoors", "camping", "beach", "mountains", "forest"}},
}

func detectInterests(bio string) []string {
	if bio == "" {
		return nil
	}

	lower := strings.ToLower(bio)
	var detected []string
	for _, cat := range interestCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				detected = append(detected, cat.name)
				break
			}
		}
	}
	return detected
}

// emojiRanges covers emoticons, symbols & pictographs, transport & map
// symbols, flags, dingbats and enclosed characters.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2702, 0x27B0},
	{0x24C2, 0x1F251},
}

// extractEmojis returns pictographic runes in order of appearance,
// duplicates retained.
func extractEmojis(text string) []string {
	var emojis []string
	for _, r := range text {
		for _, rng := range emojiRanges {
			if r >= rng[0] && r <= rng[1] {
				emojis = append(emojis, string(r))
				break
			}
		}
	}
	return emojis
}

func stopwordSet() map[string]struct{} {
	words := []string{
		"the", "and", "for", "are", "but", "not", "you", "all", "any",
		"can", "her", "was", "one", "our", "out", "has", "have", "had",
		"his", "him", "she", "they", "them", "their", "this", "that",
		"with", "from", "who", "what", "when", "where", "which", "will",
		"would", "could", "should", "been", "being", "were", "your",
		"yours", "about", "just", "than", "then", "its", "also", "very",
		"some", "more", "most", "such", "only", "own", "too", "into",
		"over", "under", "again", "here", "there", "how", "why", "because",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
