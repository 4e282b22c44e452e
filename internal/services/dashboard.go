package services

import "activity-map-service/internal/domain"

// What the map view asks for: a filter and, optionally, one activity to focus on.
type DashboardRequest struct {
	Filter     Filter
	SelectedID int64
}

// Everything the map and summary panels need for one filter selection.
// Tracks is index-aligned with Activities.
type Dashboard struct {
	Activities []domain.Activity
	Tracks     []domain.Track
	Stats      domain.Stats
	Years      []int
	Selected   *domain.Activity
	Bounds     domain.Bounds
	HasBounds  bool
	Frame      Frame
	Viewport   Viewport
}

// Build the full view for req over activities.
//
// Every value is derived from scratch on each call. Activities whose route
// fails to decode remain in the list and in Stats but contribute nothing to
// Bounds. When SelectedID names an activity outside the filtered set the
// selection is ignored.
func BuildDashboard(activities []domain.Activity, req DashboardRequest) Dashboard {
	filtered, stats := FilterAndAggregate(activities, req.Filter)
	tracks := DecodeTracks(filtered)

	d := Dashboard{
		Activities: filtered,
		Tracks:     tracks,
		Stats:      stats,
		Years:      AvailableYears(activities, req.Filter.Location),
		Viewport:   DefaultViewport,
	}

	var framed [][]domain.Coordinate
	if req.SelectedID != 0 {
		for i := range filtered {
			if filtered[i].ID == req.SelectedID {
				d.Selected = &filtered[i]
				framed = [][]domain.Coordinate{tracks[i].Coordinates}
				break
			}
		}
	}
	if d.Selected == nil {
		framed = make([][]domain.Coordinate, 0, len(tracks))
		for _, t := range tracks {
			framed = append(framed, t.Coordinates)
		}
	}

	d.Bounds, d.HasBounds = ComputeBounds(framed)
	d.Frame = FrameFor(d.Selected != nil)

	return d
}

// Tracks that failed to decode, for reporting.
func (d Dashboard) FailedTracks() []domain.Track {
	var failed []domain.Track
	for _, t := range d.Tracks {
		if t.Err != nil {
			failed = append(failed, t)
		}
	}
	return failed
}
