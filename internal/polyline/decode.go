// Package polyline implements Google's Encoded Polyline Algorithm Format.
//
// Coordinates are stored as deltas from the previous point, scaled by 1e5,
// zig-zag encoded and split into 5-bit chunks offset by 63 so that every
// chunk is a printable ASCII character. See
// https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	"activity-map-service/internal/domain"
	"errors"
	"fmt"
)

const (
	scale = 1e5

	chunkOffset  = 63
	chunkMask    = 0x1f
	continuation = 0x20

	// Accumulator bound for a single value; anything longer is not a real polyline.
	maxShift = 55
)

// ErrMalformed is matched by every DecodeError via errors.Is.
var ErrMalformed = errors.New("malformed polyline")

// DecodeError reports where and why an encoded polyline could not be decoded.
type DecodeError struct {
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode polyline: %s at offset %d", e.Reason, e.Offset)
}

func (e *DecodeError) Unwrap() error { return ErrMalformed }

// Decode converts an encoded polyline into coordinates, in encoding order.
//
// An empty string decodes to an empty sequence. Input that ends in the
// middle of a value, ends after a latitude with no longitude, or contains
// bytes outside the encoding alphabet returns a *DecodeError and no
// coordinates.
func Decode(encoded string) ([]domain.Coordinate, error) {
	coords := make([]domain.Coordinate, 0, len(encoded)/4)

	var lat, lng int64
	index := 0

	for index < len(encoded) {
		dlat, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next

		if index >= len(encoded) {
			return nil, &DecodeError{Offset: index, Reason: "latitude without longitude"}
		}

		dlng, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next

		lat += dlat
		lng += dlng

		coords = append(coords, domain.Coordinate{
			Lat: float64(lat) / scale,
			Lng: float64(lng) / scale,
		})
	}

	return coords, nil
}

// decodeValue reads one zig-zag encoded delta starting at index.
// Returns the delta and the index of the first byte after it.
func decodeValue(encoded string, index int) (int64, int, error) {
	var result int64
	var shift uint

	for {
		if index >= len(encoded) {
			return 0, index, &DecodeError{Offset: index, Reason: "truncated value"}
		}

		c := encoded[index]
		if c < chunkOffset || c > chunkOffset+chunkMask+continuation {
			return 0, index, &DecodeError{Offset: index, Reason: fmt.Sprintf("invalid byte %q", c)}
		}
		if shift > maxShift {
			return 0, index, &DecodeError{Offset: index, Reason: "value overflows accumulator"}
		}

		b := int64(c) - chunkOffset
		index++

		result |= (b & chunkMask) << shift
		shift += 5

		if b < continuation {
			break
		}
	}

	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}
