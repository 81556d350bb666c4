package analyzer

import (
	"reflect"
	"testing"
	"time"

	"swipepilot/internal/domain"
)

func TestAnalyzeIsDeterministic(t *testing.T) {
	t.Parallel()

	an := New(0)
	snapshot := domain.ProfileSnapshot{
		Name:       "Alice",
		Age:        26,
		Bio:        "Love traveling, photography, and good coffee. Adventure seeker and dog lover. 🐶☕",
		DistanceKm: 5,
		Photos:     []string{"a.jpg", "b.jpg", "c.jpg"},
		CapturedAt: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}

	first := an.Analyze(snapshot)
	for i := 0; i < 5; i++ {
		if got := an.Analyze(snapshot); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, got, first)
		}
	}
}

func TestAnalyzeEmptyBio(t *testing.T) {
	t.Parallel()

	got := New(0).Analyze(domain.ProfileSnapshot{Bio: ""})

	if got.BioLength != 0 {
		t.Fatalf("expected bio_length 0, got %d", got.BioLength)
	}
	if len(got.Keywords) != 0 {
		t.Fatalf("expected no keywords, got %v", got.Keywords)
	}
	if len(got.Interests) != 0 {
		t.Fatalf("expected no interests, got %v", got.Interests)
	}
	if len(got.Emojis) != 0 {
		t.Fatalf("expected no emojis, got %v", got.Emojis)
	}
	if got.Sentiment.Polarity != 0 || got.Sentiment.Subjectivity != 0 {
		t.Fatalf("expected zero sentiment, got %+v", got.Sentiment)
	}
}

func TestExtractKeywordsOrdering(t *testing.T) {
	t.Parallel()

	an := New(3)
	// "coffee" appears three times, "hiking" twice; "sunsets" and
	// "photography" tie at one and must keep first-appearance order.
	bio := "Coffee hiking sunsets photography coffee hiking coffee"

	got := an.extractKeywords(bio)
	want := []domain.KeywordCount{
		{Term: "coffee", Count: 3},
		{Term: "hiking", Count: 2},
		{Term: "sunsets", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected keywords: %v", got)
	}
}

func TestExtractKeywordsFiltersShortAndStopwords(t *testing.T) {
	t.Parallel()

	got := New(0).extractKeywords("I am the one who is so so up to hiking")
	if len(got) != 1 || got[0].Term != "hiking" {
		t.Fatalf("expected only hiking, got %v", got)
	}
}

func TestDetectInterests(t *testing.T) {
	t.Parallel()

	bio := "Gym rat, amateur chef, and I never miss a Netflix night with my cat."
	got := detectInterests(bio)
	want := []string{"sports", "food", "pets", "movies"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected interests: %v", got)
	}

	if got := detectInterests("nothing interesting here"); got != nil {
		t.Fatalf("expected no interests, got %v", got)
	}
}

func TestExtractEmojis(t *testing.T) {
	t.Parallel()

	got := extractEmojis("sunsets 🌅 and dogs 🐶🐶 ✈")
	want := []string{"🌅", "🐶", "🐶", "✈"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected emojis: %v", got)
	}
}

func TestAnalyzeSentiment(t *testing.T) {
	t.Parallel()

	pos := analyzeSentiment("I love good coffee and happy people")
	if pos.Polarity <= 0 {
		t.Fatalf("expected positive polarity, got %f", pos.Polarity)
	}
	if pos.Subjectivity < 0 || pos.Subjectivity > 1 {
		t.Fatalf("subjectivity out of range: %f", pos.Subjectivity)
	}

	neg := analyzeSentiment("tired of boring dates and drama")
	if neg.Polarity >= 0 {
		t.Fatalf("expected negative polarity, got %f", neg.Polarity)
	}

	flipped := analyzeSentiment("not happy")
	if flipped.Polarity >= 0 {
		t.Fatalf("expected negation to flip polarity, got %f", flipped.Polarity)
	}

	if got := analyzeSentiment("completely neutral words only"); got != (domain.Sentiment{}) {
		t.Fatalf("expected zero sentiment, got %+v", got)
	}
}
