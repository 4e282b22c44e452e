package services

import "activity-map-service/internal/domain"

const (
	framePaddingPx    = 50
	selectedMaxZoom   = 15
	collectionMaxZoom = 13
)

// How the map renderer should fit a region on screen.
type Frame struct {
	PaddingPx int
	MaxZoom   int
}

// Viewport used when there is no geometry to fit.
type Viewport struct {
	Center domain.Coordinate
	Zoom   int
}

// Metropolitan France, the original map's home view.
var DefaultViewport = Viewport{
	Center: domain.Coordinate{Lat: 46.603354, Lng: 1.888334},
	Zoom:   6,
}

// Compute the rectangle enclosing every coordinate of every sequence.
// Returns false when the sequences hold no coordinates at all.
func ComputeBounds(sequences [][]domain.Coordinate) (domain.Bounds, bool) {
	var b domain.Bounds
	found := false

	for _, seq := range sequences {
		for _, c := range seq {
			if !found {
				b = domain.Bounds{MinLat: c.Lat, MinLng: c.Lng, MaxLat: c.Lat, MaxLng: c.Lng}
				found = true
				continue
			}

			b.MinLat = min(b.MinLat, c.Lat)
			b.MinLng = min(b.MinLng, c.Lng)
			b.MaxLat = max(b.MaxLat, c.Lat)
			b.MaxLng = max(b.MaxLng, c.Lng)
		}
	}

	return b, found
}

// Pick fit options: a single selected activity may zoom in closer than the full collection.
func FrameFor(selected bool) Frame {
	if selected {
		return Frame{PaddingPx: framePaddingPx, MaxZoom: selectedMaxZoom}
	}
	return Frame{PaddingPx: framePaddingPx, MaxZoom: collectionMaxZoom}
}
