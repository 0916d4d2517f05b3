package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitSquare is (0,0),(0,1),(1,1),(1,0) as (lat,lng) vertices.
var unitSquare = Polygon{
	{Lat: 0, Lng: 0},
	{Lat: 0, Lng: 1},
	{Lat: 1, Lng: 1},
	{Lat: 1, Lng: 0},
}

func TestContains_DegeneratePolygons(t *testing.T) {
	point := Coordinate{Lat: 0.5, Lng: 0.5}

	tests := []struct {
		name    string
		polygon Polygon
	}{
		{name: "nil polygon", polygon: nil},
		{name: "empty polygon", polygon: Polygon{}},
		{name: "single vertex", polygon: Polygon{{Lat: 0, Lng: 0}}},
		{name: "two vertices", polygon: Polygon{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Contains(point, tt.polygon))
		})
	}
}

func TestContains_UnitSquare(t *testing.T) {
	tests := []struct {
		name     string
		point    Coordinate
		expected bool
	}{
		{name: "centroid", point: Coordinate{Lat: 0.5, Lng: 0.5}, expected: true},
		{name: "near corner inside", point: Coordinate{Lat: 0.01, Lng: 0.01}, expected: true},
		{name: "far outside", point: Coordinate{Lat: 10, Lng: 10}, expected: false},
		{name: "outside same latitude band", point: Coordinate{Lat: 0.5, Lng: 2}, expected: false},
		{name: "outside negative", point: Coordinate{Lat: -0.5, Lng: 0.5}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Contains(tt.point, unitSquare))
		})
	}
}

func TestContains_CyclicRotationInvariance(t *testing.T) {
	inside := Coordinate{Lat: 0.5, Lng: 0.5}
	outside := Coordinate{Lat: 1.5, Lng: 0.5}

	for start := range unitSquare {
		rotated := make(Polygon, 0, len(unitSquare))
		rotated = append(rotated, unitSquare[start:]...)
		rotated = append(rotated, unitSquare[:start]...)

		assert.True(t, Contains(inside, rotated), "rotation starting at %d", start)
		assert.False(t, Contains(outside, rotated), "rotation starting at %d", start)
	}
}

func TestContains_OpenAndClosedRingsAgree(t *testing.T) {
	closed := append(append(Polygon{}, unitSquare...), unitSquare[0])

	points := []Coordinate{
		{Lat: 0.5, Lng: 0.5},
		{Lat: 0.9, Lng: 0.1},
		{Lat: 10, Lng: 10},
		{Lat: -0.1, Lng: 0.5},
	}
	for _, p := range points {
		assert.Equal(t, Contains(p, unitSquare), Contains(p, closed), "point %+v", p)
	}
}

func TestContains_WindingInvariance(t *testing.T) {
	reversed := make(Polygon, len(unitSquare))
	for i, v := range unitSquare {
		reversed[len(unitSquare)-1-i] = v
	}

	assert.True(t, Contains(Coordinate{Lat: 0.5, Lng: 0.5}, reversed))
	assert.False(t, Contains(Coordinate{Lat: 10, Lng: 10}, reversed))
}

func TestContains_ConcavePolygon(t *testing.T) {
	// U-shaped region: the notch between the prongs is outside.
	u := Polygon{
		{Lat: 0, Lng: 0},
		{Lat: 3, Lng: 0},
		{Lat: 3, Lng: 1},
		{Lat: 1, Lng: 1},
		{Lat: 1, Lng: 2},
		{Lat: 3, Lng: 2},
		{Lat: 3, Lng: 3},
		{Lat: 0, Lng: 3},
	}

	assert.True(t, Contains(Coordinate{Lat: 0.5, Lng: 1.5}, u), "base of the U")
	assert.True(t, Contains(Coordinate{Lat: 2, Lng: 0.5}, u), "left prong")
	assert.False(t, Contains(Coordinate{Lat: 2, Lng: 1.5}, u), "notch")
}

func TestContains_TelAvivSquare(t *testing.T) {
	square := Polygon{
		{Lat: 32.080, Lng: 34.780},
		{Lat: 32.080, Lng: 34.785},
		{Lat: 32.085, Lng: 34.785},
		{Lat: 32.085, Lng: 34.780},
	}

	assert.True(t, Contains(Coordinate{Lat: 32.082, Lng: 34.782}, square))
	assert.False(t, Contains(Coordinate{Lat: 32.090, Lng: 34.782}, square))
}

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Coordinate
		wantErr bool
	}{
		{name: "plain pair", input: "32.0853,34.7818", want: Coordinate{Lat: 32.0853, Lng: 34.7818}},
		{name: "spaces around values", input: " 32.08 , 34.78 ", want: Coordinate{Lat: 32.08, Lng: 34.78}},
		{name: "negative values", input: "-33.86,151.21", want: Coordinate{Lat: -33.86, Lng: 151.21}},
		{name: "missing longitude", input: "32.0853", wantErr: true},
		{name: "too many parts", input: "1,2,3", wantErr: true},
		{name: "non-numeric latitude", input: "abc,34.78", wantErr: true},
		{name: "non-numeric longitude", input: "32.08,xyz", wantErr: true},
		{name: "NaN rejected", input: "NaN,34.78", wantErr: true},
		{name: "Inf rejected", input: "32.08,+Inf", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCoordinate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Out-of-range coordinates are accepted and processed arithmetically.
func TestContains_NoRangeValidation(t *testing.T) {
	huge := Polygon{
		{Lat: 100, Lng: 200},
		{Lat: 100, Lng: 300},
		{Lat: 200, Lng: 300},
		{Lat: 200, Lng: 200},
	}
	assert.True(t, Contains(Coordinate{Lat: 150, Lng: 250}, huge))
	assert.False(t, Contains(Coordinate{Lat: 50, Lng: 250}, huge))
}
