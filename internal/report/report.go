package report

import (
	"sort"

	"swipepilot/internal/domain"
)

// IntStats describes the distribution of an integer field across records
// that carry a positive value for it.
type IntStats struct {
	Avg    float64
	Min    int
	Max    int
	Median int
}

// Summary aggregates a set of persisted swipe records. A pure read-side
// view: it never mutates or re-orders its input.
type Summary struct {
	TotalSwipes int
	RightSwipes int
	LeftSwipes  int
	SuperLikes  int
	Matches     int
	// MatchRate is matches per right swipe, as a percentage.
	MatchRate float64
	// AvgScore averages the records that carry a score.
	AvgScore float64

	Age      IntStats
	Distance IntStats

	// HourlyDistribution counts swipes per hour of day; PeakHour is the
	// busiest hour, or -1 when there are no records.
	HourlyDistribution map[int]int
	PeakHour           int
}

// Summarize computes aggregate statistics over the given records.
func Summarize(records []domain.StoredRecord) Summary {
	summary := Summary{
		HourlyDistribution: map[int]int{},
		PeakHour:           -1,
	}

	var scoreSum float64
	var scored int
	var ages, distances []int

	for _, rec := range records {
		summary.TotalSwipes++

		switch rec.Action {
		case domain.ActionRight:
			summary.RightSwipes++
		case domain.ActionLeft:
			summary.LeftSwipes++
		case domain.ActionSuper:
			summary.SuperLikes++
		}

		if rec.Matched {
			summary.Matches++
		}
		if rec.Score != nil {
			scoreSum += *rec.Score
			scored++
		}
		if rec.Profile.Age > 0 {
			ages = append(ages, rec.Profile.Age)
		}
		if rec.Profile.DistanceKm > 0 {
			distances = append(distances, rec.Profile.DistanceKm)
		}

		summary.HourlyDistribution[rec.SwipedAt.Hour()]++
	}

	positive := summary.RightSwipes + summary.SuperLikes
	if positive > 0 {
		summary.MatchRate = float64(summary.Matches) / float64(positive) * 100
	}
	if scored > 0 {
		summary.AvgScore = scoreSum / float64(scored)
	}

	summary.Age = intStats(ages)
	summary.Distance = intStats(distances)
	summary.PeakHour = peakHour(summary.HourlyDistribution)

	return summary
}

func intStats(values []int) IntStats {
	if len(values) == 0 {
		return IntStats{}
	}

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	sum := 0
	for _, v := range sorted {
		sum += v
	}

	return IntStats{
		Avg:    float64(sum) / float64(len(sorted)),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: sorted[len(sorted)/2],
	}
}

// peakHour picks the busiest hour; ties resolve to the earliest hour so
// the result is deterministic.
func peakHour(hourly map[int]int) int {
	peak, best := -1, 0
	for hour := 0; hour < 24; hour++ {
		if count := hourly[hour]; count > best {
			peak, best = hour, count
		}
	}
	return peak
}
