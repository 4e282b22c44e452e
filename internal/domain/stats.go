package domain

// Aggregate metrics over a set of activities.
// Stats is always rebuilt from the full included set, never patched in place.
type Stats struct {
	TotalActivities      int
	TotalDistanceMeters  float64
	TotalElevationMeters float64
	TotalTimeSeconds     int
}
