package mapview

import (
	"activity-map-service/internal/domain"
	"activity-map-service/internal/format"
	"activity-map-service/internal/services"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders one feature per drawable track of d.
// Tracks that failed to decode or hold no coordinates are left out.
// The collection carries a bbox whenever d has bounds.
func FeatureCollection(d services.Dashboard, loc *time.Location) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, t := range d.Tracks {
		if t.Err != nil || len(t.Coordinates) == 0 {
			continue
		}

		a := d.Activities[i]
		f := geojson.NewFeature(geometry(t.Coordinates))
		f.ID = a.ID
		f.Properties = geojson.Properties{
			"id":         a.ID,
			"name":       a.Name,
			"type":       string(a.Type),
			"color":      Color(a.Type),
			"start_date": a.StartDate.UTC().Format(time.RFC3339),
			"date":       format.Date(a.StartDate, loc),
			"distance":   format.Distance(a.DistanceMeters),
			"selected":   d.Selected != nil && d.Selected.ID == a.ID,
		}
		fc.Append(f)
	}

	if d.HasBounds {
		fc.BBox = geojson.NewBBox(toBound(d.Bounds))
	}

	return fc
}

// A single fix cannot form a LineString, so it is drawn as a point.
func geometry(coords []domain.Coordinate) orb.Geometry {
	if len(coords) == 1 {
		return orb.Point(coords[0].LngLat())
	}

	ls := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		ls = append(ls, orb.Point(c.LngLat()))
	}
	return ls
}

func toBound(b domain.Bounds) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinLng, b.MinLat},
		Max: orb.Point{b.MaxLng, b.MaxLat},
	}
}
