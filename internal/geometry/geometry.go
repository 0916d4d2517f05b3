// Package geometry provides the coordinate and polygon primitives and the
// point-in-polygon containment test used for neighborhood resolution.
package geometry

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrInvalidCoordinate is returned when a textual coordinate cannot be
// parsed into a real lat/lng pair.
var ErrInvalidCoordinate = eris.New("geometry: invalid coordinate")

// Coordinate is a geographic point in degrees. No range validation is
// applied; values outside [-90,90]/[-180,180] are processed as-is.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Polygon is an ordered vertex ring describing a closed region boundary.
// The ring may be supplied open or closed (first vertex repeated at the
// end); containment treats both identically.
type Polygon []Coordinate

// ParseCoordinate parses a "lat,lng" pair. This is the boundary where
// non-numeric input is rejected; everything downstream assumes real
// numbers.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, eris.Wrapf(ErrInvalidCoordinate, "want \"lat,lng\", got %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, eris.Wrapf(ErrInvalidCoordinate, "latitude %q", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, eris.Wrapf(ErrInvalidCoordinate, "longitude %q", parts[1])
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return Coordinate{}, eris.Wrapf(ErrInvalidCoordinate, "non-finite value in %q", s)
	}

	return Coordinate{Lat: lat, Lng: lng}, nil
}

// Contains reports whether point lies inside polygon using the ray-casting
// test: a horizontal ray is cast from the point toward increasing
// longitude and edge crossings are counted; an odd count means inside.
//
// A polygon with fewer than 3 vertices contains nothing. The vertex ring
// is implicitly closed by the trailing-index iteration, so open and
// closed rings behave identically. Points exactly on an edge or vertex
// may classify either way depending on floating-point rounding; that
// ambiguity is inherent to the algorithm and deliberately left as-is.
func Contains(point Coordinate, polygon Polygon) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1

	for i := range polygon {
		xi, yi := polygon[i].Lng, polygon[i].Lat
		xj, yj := polygon[j].Lng, polygon[j].Lat

		// The crossing condition guarantees yi != yj, so the division
		// below cannot hit zero.
		if (yi > point.Lat) != (yj > point.Lat) &&
			point.Lng < (xj-xi)*(point.Lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}

	return inside
}
