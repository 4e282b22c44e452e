// Package mapview turns decoded activities into formats a map renderer consumes.
package mapview

import "activity-map-service/internal/domain"

var trackColors = map[domain.ActivityType]string{
	domain.ActivityRun:      "#fc4c02",
	domain.ActivityTrailRun: "#8B4513",
	domain.ActivityRide:     "#1e88e5",
	domain.ActivityHike:     "#4CAF50",
}

var legendLabels = map[domain.ActivityType]string{
	domain.ActivityRun:      "Run",
	domain.ActivityTrailRun: "Trail",
	domain.ActivityRide:     "Ride",
	domain.ActivityHike:     "Hike",
}

// Color of the line drawn for an activity type; unknown types use the run color.
func Color(t domain.ActivityType) string {
	if c, ok := trackColors[t]; ok {
		return c
	}
	return trackColors[domain.ActivityRun]
}

type LegendEntry struct {
	Type  domain.ActivityType `json:"type"`
	Label string              `json:"label"`
	Color string              `json:"color"`
}

// Legend lists one entry per supported type, in display order.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(domain.SupportedActivityTypes))
	for _, t := range domain.SupportedActivityTypes {
		entries = append(entries, LegendEntry{Type: t, Label: legendLabels[t], Color: Color(t)})
	}
	return entries
}
