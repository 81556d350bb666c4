package browser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"swipepilot/internal/domain"
)

var (
	digitsExpr   = regexp.MustCompile(`\d+`)
	photoURLExpr = regexp.MustCompile(`url\("?([^")]+)"?\)`)
)

// parseProfile extracts a snapshot from the rendered swipe-surface HTML.
// Every field defaults to its zero value when its element is missing; a
// profile with an unreadable name is still usable for scoring.
func parseProfile(html string, capturedAt time.Time) domain.ProfileSnapshot {
	snapshot := domain.ProfileSnapshot{CapturedAt: capturedAt}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return snapshot
	}

	snapshot.Name = strings.TrimSpace(doc.Find(selProfileName).First().Text())

	ageText := strings.TrimSpace(doc.Find(selProfileAge).First().Text())
	if age, err := strconv.Atoi(ageText); err == nil && age > 0 {
		snapshot.Age = age
	}

	snapshot.Bio = strings.TrimSpace(doc.Find(selProfileBio).First().Text())
	snapshot.DistanceKm = parseDistance(doc)
	snapshot.Photos = parsePhotos(doc)

	return snapshot
}

// parseDistance scans for the "N kilometers away" line; the hosting
// element has no stable class, so the match is on text content.
func parseDistance(doc *goquery.Document) int {
	distance := 0
	doc.Find("div").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		if !strings.Contains(text, "kilometer") && !strings.Contains(text, "km away") {
			return true
		}
		// Innermost matching div wins; keep scanning until a div with no
		// matching children remains.
		if sel.ChildrenFiltered("div").Length() > 0 {
			return true
		}

		if m := digitsExpr.FindString(text); m != "" {
			if v, err := strconv.Atoi(m); err == nil && v >= 0 {
				distance = v
				return false
			}
		}
		return true
	})
	return distance
}

// parsePhotos collects carousel image URLs from background-image styles,
// preserving order and dropping duplicates.
func parsePhotos(doc *goquery.Document) []string {
	var photos []string
	seen := map[string]struct{}{}

	doc.Find(`div[style*="background-image"]`).Each(func(i int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		m := photoURLExpr.FindStringSubmatch(style)
		if len(m) < 2 {
			return
		}
		url := m[1]
		if _, dup := seen[url]; dup {
			return
		}
		seen[url] = struct{}{}
		photos = append(photos, url)
	})

	return photos
}
