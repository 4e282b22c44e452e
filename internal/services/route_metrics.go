package services

import (
	"activity-map-service/internal/domain"
	"activity-map-service/internal/polyline"

	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000

// Great-circle length of a path in meters.
func PathLengthMeters(coords []domain.Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}

	total := 0.0
	prev := s2.LatLngFromDegrees(coords[0].Lat, coords[0].Lng)
	for _, c := range coords[1:] {
		next := s2.LatLngFromDegrees(c.Lat, c.Lng)
		total += prev.Distance(next).Radians() * earthRadiusMeters
		prev = next
	}
	return total
}

// Decode the route of every activity, in order.
// A polyline that fails to decode yields a Track with Err set and no coordinates.
func DecodeTracks(activities []domain.Activity) []domain.Track {
	tracks := make([]domain.Track, 0, len(activities))
	for _, a := range activities {
		coords, err := polyline.Decode(a.Polyline)
		if err != nil {
			tracks = append(tracks, domain.Track{ActivityID: a.ID, Coordinates: []domain.Coordinate{}, Err: err})
			continue
		}
		tracks = append(tracks, domain.Track{ActivityID: a.ID, Coordinates: coords})
	}
	return tracks
}
