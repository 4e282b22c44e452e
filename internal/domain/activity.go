package domain

import "time"

// Closed set of activity categories the map knows how to display.
// Every upstream tag maps to exactly one value; anything unrecognised is ActivityOther.
type ActivityType string

const (
	ActivityRun      ActivityType = "Run"
	ActivityTrailRun ActivityType = "TrailRun"
	ActivityRide     ActivityType = "Ride"
	ActivityHike     ActivityType = "Hike"
	ActivityOther    ActivityType = "Other"
)

// Displayable activity types in presentation order.
var SupportedActivityTypes = []ActivityType{
	ActivityRun,
	ActivityTrailRun,
	ActivityRide,
	ActivityHike,
}

// Map an upstream type tag onto the closed enumeration.
func ParseActivityType(tag string) ActivityType {
	switch ActivityType(tag) {
	case ActivityRun:
		return ActivityRun
	case ActivityTrailRun:
		return ActivityTrailRun
	case ActivityRide:
		return ActivityRide
	case ActivityHike:
		return ActivityHike
	default:
		return ActivityOther
	}
}

// Report whether activities of this type are shown on the map and counted in stats.
func (t ActivityType) Supported() bool {
	switch t {
	case ActivityRun, ActivityTrailRun, ActivityRide, ActivityHike:
		return true
	case ActivityOther:
		return false
	default:
		return false
	}
}

// Represents one recorded outing as received from the activity provider.
// An Activity is never mutated after it is built; services derive views over
// collections of activities instead.
type Activity struct {
	ID                  int64
	Name                string
	StartDate           time.Time
	Type                ActivityType
	SourceType          string
	DistanceMeters      float64
	MovingTimeSeconds   int
	ElevationGainMeters float64
	Polyline            string
}

// Calendar year of the start timestamp in loc (UTC when loc is nil).
func (a Activity) Year(loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	return a.StartDate.In(loc).Year()
}

// Report whether the activity can be placed on the map at all.
func (a Activity) Displayable() bool {
	return a.Polyline != "" && a.Type.Supported()
}
