package dto

type StatsDisplay struct {
	Distance  string `json:"distance"`
	Elevation string `json:"elevation"`
	Duration  string `json:"duration"`
}

type StatsResponse struct {
	TotalActivities      int          `json:"total_activities"`
	TotalDistanceMeters  float64      `json:"total_distance_meters"`
	TotalElevationMeters float64      `json:"total_elevation_meters"`
	TotalTimeSeconds     int          `json:"total_time_seconds"`
	Display              StatsDisplay `json:"display"`
}

type BoundsResponse struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

type FrameResponse struct {
	PaddingPx int `json:"padding_px"`
	MaxZoom   int `json:"max_zoom"`
}

type ViewportResponse struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`
}

type LegendEntryResponse struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type ListActivitiesResponse struct {
	Activities []ActivityResponse    `json:"activities"`
	Stats      StatsResponse         `json:"stats"`
	Years      []int                 `json:"years"`
	SelectedID *int64                `json:"selected_id"`
	Bounds     *BoundsResponse       `json:"bounds"`
	Frame      FrameResponse         `json:"frame"`
	Viewport   ViewportResponse      `json:"viewport"`
	Legend     []LegendEntryResponse `json:"legend"`
}

type SessionResponse struct {
	AthleteID int64  `json:"athlete_id"`
	ExpiresIn int64  `json:"expires_in"`
	Token     string `json:"token"`
}
