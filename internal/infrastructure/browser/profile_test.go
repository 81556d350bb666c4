package browser

import (
	"reflect"
	"testing"
	"time"
)

const cardHTML = `
<body>
  <div class="recsPage">
    <div style='background-image: url("https://img.example/a.jpg")'></div>
    <div style='background-image: url("https://img.example/b.jpg")'></div>
    <div style='background-image: url("https://img.example/a.jpg")'></div>
    <span itemprop="name">Alice</span>
    <span itemprop="age">26</span>
    <div class="Bdrs(8px)">Love hiking, photography, and good coffee.</div>
    <div class="meta"><div>5 kilometers away</div></div>
  </div>
</body>`

func TestParseProfile(t *testing.T) {
	t.Parallel()

	capturedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	snapshot := parseProfile(cardHTML, capturedAt)

	if snapshot.Name != "Alice" {
		t.Fatalf("unexpected name: %q", snapshot.Name)
	}
	if snapshot.Age != 26 {
		t.Fatalf("unexpected age: %d", snapshot.Age)
	}
	if snapshot.Bio != "Love hiking, photography, and good coffee." {
		t.Fatalf("unexpected bio: %q", snapshot.Bio)
	}
	if snapshot.DistanceKm != 5 {
		t.Fatalf("unexpected distance: %d", snapshot.DistanceKm)
	}
	want := []string{"https://img.example/a.jpg", "https://img.example/b.jpg"}
	if !reflect.DeepEqual(snapshot.Photos, want) {
		t.Fatalf("unexpected photos: %v", snapshot.Photos)
	}
	if !snapshot.CapturedAt.Equal(capturedAt) {
		t.Fatalf("unexpected capture time: %v", snapshot.CapturedAt)
	}
}

func TestParseProfileMissingFieldsDefault(t *testing.T) {
	t.Parallel()

	snapshot := parseProfile(`<body><span itemprop="age">31</span></body>`, time.Now())

	if snapshot.Name != "" {
		t.Fatalf("expected empty name, got %q", snapshot.Name)
	}
	if snapshot.Age != 31 {
		t.Fatalf("unexpected age: %d", snapshot.Age)
	}
	if snapshot.Bio != "" || snapshot.DistanceKm != 0 || len(snapshot.Photos) != 0 {
		t.Fatalf("expected zero defaults, got %+v", snapshot)
	}
}

func TestParseProfileBadAgeIgnored(t *testing.T) {
	t.Parallel()

	snapshot := parseProfile(`<body><span itemprop="age">unknown</span></body>`, time.Now())
	if snapshot.Age != 0 {
		t.Fatalf("expected age 0 for unparseable text, got %d", snapshot.Age)
	}
}
