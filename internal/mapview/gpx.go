package mapview

import (
	"activity-map-service/internal/domain"
	"errors"
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"
)

const gpxCreator = "activity-map-service"

var ErrNoRoute = errors.New("activity has no route")

// GPX exports the route of a single activity as a GPX 1.1 document.
// Points carry no timestamps; the summary polyline has none.
func GPX(a domain.Activity, coords []domain.Coordinate) ([]byte, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("gpx activity=%d: %w", a.ID, ErrNoRoute)
	}

	points := make([]gpx.GPXPoint, 0, len(coords))
	for _, c := range coords {
		points = append(points, gpx.GPXPoint{
			Point: gpx.Point{Latitude: c.Lat, Longitude: c.Lng},
		})
	}

	start := a.StartDate.UTC()
	doc := &gpx.GPX{
		Version: "1.1",
		Creator: gpxCreator,
		Name:    a.Name,
		Time:    &start,
		Tracks: []gpx.GPXTrack{{
			Name:     a.Name,
			Type:     a.SourceType,
			Segments: []gpx.GPXTrackSegment{{Points: points}},
		}},
	}

	out, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("gpx activity=%d: %w", a.ID, err)
	}
	return out, nil
}
