package services

import (
	"activity-map-service/internal/domain"
	"slices"
	"sort"
	"time"
)

// Selection applied to an activity collection.
// The zero value selects every displayable activity.
type Filter struct {
	// Type restricts results to one activity type; empty means any supported type.
	Type domain.ActivityType
	// Year restricts results to one calendar year; 0 means any year.
	Year int
	// Location used to derive the calendar year; nil means UTC.
	Location *time.Location
}

// Report whether a single activity passes the filter.
func (f Filter) Match(a domain.Activity) bool {
	if !a.Displayable() {
		return false
	}
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.Year != 0 && a.Year(f.Location) != f.Year {
		return false
	}
	return true
}

// Select the activities matching filter and compute their statistics.
//
// The result holds only activities with a polyline and a supported type,
// sorted by start date, most recent first; activities starting at the same
// instant keep their input order. Stats are computed over exactly the
// returned activities. The input slice is never modified.
func FilterAndAggregate(activities []domain.Activity, filter Filter) ([]domain.Activity, domain.Stats) {
	filtered := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if filter.Match(a) {
			filtered = append(filtered, a)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].StartDate.After(filtered[j].StartDate)
	})

	return filtered, ComputeStats(filtered)
}

// Sum count, distance, elevation gain and moving time over activities.
func ComputeStats(activities []domain.Activity) domain.Stats {
	stats := domain.Stats{}
	for _, a := range activities {
		stats.TotalActivities++
		stats.TotalDistanceMeters += a.DistanceMeters
		stats.TotalElevationMeters += a.ElevationGainMeters
		stats.TotalTimeSeconds += a.MovingTimeSeconds
	}
	return stats
}

// List the distinct calendar years of all displayable activities, newest first.
// Type and year filters are not applied.
func AvailableYears(activities []domain.Activity, loc *time.Location) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)

	for _, a := range activities {
		if !a.Displayable() {
			continue
		}
		y := a.Year(loc)
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}

	slices.SortFunc(years, func(a, b int) int { return b - a })
	return years
}
