// Package geoio imports and exports neighborhood sets in interchange
// formats: GeoJSON, YAML and ESRI shapefiles.
package geoio

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/danielerenburg1/address-checker/internal/geometry"
	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

// EncodeGeoJSON renders the set as a FeatureCollection of polygons. Rings
// are closed on output as GeoJSON requires; coordinates are [lng, lat].
func EncodeGeoJSON(set neighborhood.Set) ([]byte, error) {
	features := make([]*geojson.Feature, 0, len(set))
	for _, n := range set {
		poly, err := toGeomPolygon(n.Polygon)
		if err != nil {
			return nil, eris.Wrapf(err, "geoio: neighborhood %q", n.Name)
		}
		features = append(features, &geojson.Feature{
			ID:       n.ID,
			Geometry: poly,
			Properties: map[string]any{
				"name": n.Name,
			},
		})
	}

	fc := geojson.FeatureCollection{Features: features}
	data, err := json.MarshalIndent(&fc, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "geoio: marshal feature collection")
	}
	return data, nil
}

// DecodeGeoJSON parses a FeatureCollection of polygons into a set. Only
// the outer ring of each polygon is kept (holes are not supported), and
// the closing vertex is dropped since containment closes rings itself.
func DecodeGeoJSON(data []byte) (neighborhood.Set, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "geoio: parse feature collection")
	}

	var set neighborhood.Set
	for i, f := range fc.Features {
		poly, ok := f.Geometry.(*geom.Polygon)
		if !ok {
			return nil, eris.Errorf("geoio: feature %d: unsupported geometry type %T", i, f.Geometry)
		}
		if poly.NumLinearRings() == 0 {
			return nil, eris.Errorf("geoio: feature %d: polygon has no rings", i)
		}

		name, _ := f.Properties["name"].(string)
		if name == "" {
			return nil, eris.Errorf("geoio: feature %d: missing name property", i)
		}

		set = append(set, neighborhood.Neighborhood{
			Name:    name,
			Polygon: fromGeomRing(poly.LinearRing(0)),
		})
	}
	return set, nil
}

// toGeomPolygon converts a vertex ring to a go-geom polygon, appending the
// closing vertex when the ring is open.
func toGeomPolygon(p geometry.Polygon) (*geom.Polygon, error) {
	if len(p) < 3 {
		return nil, eris.Errorf("geoio: polygon needs at least 3 vertices, got %d", len(p))
	}

	ring := make([]geom.Coord, 0, len(p)+1)
	for _, c := range p {
		ring = append(ring, geom.Coord{c.Lng, c.Lat})
	}
	if p[0] != p[len(p)-1] {
		ring = append(ring, geom.Coord{p[0].Lng, p[0].Lat})
	}

	poly := geom.NewPolygon(geom.XY)
	if _, err := poly.SetCoords([][]geom.Coord{ring}); err != nil {
		return nil, eris.Wrap(err, "geoio: build polygon")
	}
	return poly, nil
}

// fromGeomRing converts a go-geom ring back to a vertex list, dropping the
// closing vertex.
func fromGeomRing(ring *geom.LinearRing) geometry.Polygon {
	coords := ring.Coords()
	if len(coords) > 1 {
		first, last := coords[0], coords[len(coords)-1]
		if first[0] == last[0] && first[1] == last[1] {
			coords = coords[:len(coords)-1]
		}
	}

	poly := make(geometry.Polygon, 0, len(coords))
	for _, c := range coords {
		poly = append(poly, geometry.Coordinate{Lat: c[1], Lng: c[0]})
	}
	return poly
}
