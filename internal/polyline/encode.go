package polyline

import (
	"activity-map-service/internal/domain"
	"math"
)

// Encode converts coordinates into an encoded polyline string.
// Coordinates are rounded to 5 decimal places, so Decode(Encode(c)) matches c within 1e-5.
func Encode(coords []domain.Coordinate) string {
	if len(coords) == 0 {
		return ""
	}

	buf := make([]byte, 0, len(coords)*8)
	var prevLat, prevLng int64

	for _, c := range coords {
		lat := int64(math.Round(c.Lat * scale))
		lng := int64(math.Round(c.Lng * scale))

		buf = encodeValue(buf, lat-prevLat)
		buf = encodeValue(buf, lng-prevLng)

		prevLat = lat
		prevLng = lng
	}

	return string(buf)
}

func encodeValue(buf []byte, value int64) []byte {
	v := value << 1
	if value < 0 {
		v = ^v
	}

	for v >= continuation {
		buf = append(buf, byte((v&chunkMask)|continuation)+chunkOffset)
		v >>= 5
	}
	return append(buf, byte(v)+chunkOffset)
}
