package domain

// Immutable geographic coordinate in decimal degrees (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lng, lat] for GeoJSON compatibility.
func (c Coordinate) LngLat() [2]float64 { return [2]float64{c.Lng, c.Lat} }

// Rectangle enclosing a set of coordinates.
type Bounds struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// Report whether c lies inside b, edges included.
func (b Bounds) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lng >= b.MinLng && c.Lng <= b.MaxLng
}

// Decoded route geometry for a single activity.
// Err is set when the encoded polyline could not be decoded; Coordinates is then empty.
type Track struct {
	ActivityID  int64
	Coordinates []Coordinate
	Err         error
}
