package dto

import "time"

// Human-readable renderings of an activity's figures.
type ActivityDisplay struct {
	Distance  string `json:"distance"`
	Duration  string `json:"duration"`
	Elevation string `json:"elevation"`
	Date      string `json:"date"`
}

type ActivityResponse struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Type                string          `json:"type"`
	SportType           string          `json:"sport_type"`
	StartDate           time.Time       `json:"start_date"`
	DistanceMeters      float64         `json:"distance_meters"`
	MovingTimeSeconds   int             `json:"moving_time_seconds"`
	ElevationGainMeters float64         `json:"elevation_gain_meters"`
	Polyline            string          `json:"polyline"`
	Color               string          `json:"color"`
	RouteLengthMeters   float64         `json:"route_length_meters"`
	RouteError          string          `json:"route_error,omitempty"`
	Display             ActivityDisplay `json:"display"`
}

type ActivityDetailResponse struct {
	Activity    ActivityResponse `json:"activity"`
	Coordinates [][2]float64     `json:"coordinates"`
	Bounds      *BoundsResponse  `json:"bounds"`
	Frame       FrameResponse    `json:"frame"`
}
