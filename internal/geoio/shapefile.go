package geoio

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/danielerenburg1/address-checker/internal/geometry"
	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

// ReadShapefile imports polygon records from an ESRI shapefile. Names are
// taken from the DBF field nameField (case-insensitive, default "NAME").
// Only the first ring of multi-part polygons is kept. Shapefile points
// are X=longitude, Y=latitude.
func ReadShapefile(path, nameField string) (neighborhood.Set, error) {
	if nameField == "" {
		nameField = "NAME"
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geoio: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	// Build field name → index map.
	nameIdx := -1
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		if strings.EqualFold(name, nameField) {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, eris.Errorf("geoio: shapefile has no %q field", nameField)
	}

	var set neighborhood.Set
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		poly, ok := shape.(*shp.Polygon)
		if !ok || poly.NumParts == 0 || len(poly.Points) == 0 {
			skipped++
			continue
		}

		name := strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		if name == "" {
			skipped++
			continue
		}

		set = append(set, neighborhood.Neighborhood{
			Name:    name,
			Polygon: firstRing(poly),
		})
	}

	if skipped > 0 {
		zap.L().Debug("geoio: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return set, nil
}

// firstRing extracts the outer ring of a shapefile polygon, dropping the
// closing vertex.
func firstRing(p *shp.Polygon) geometry.Polygon {
	end := int32(len(p.Points))
	if p.NumParts > 1 {
		end = p.Parts[1]
	}

	points := p.Points[p.Parts[0]:end]
	if len(points) > 1 && points[0] == points[len(points)-1] {
		points = points[:len(points)-1]
	}

	ring := make(geometry.Polygon, 0, len(points))
	for _, pt := range points {
		ring = append(ring, geometry.Coordinate{Lat: pt.Y, Lng: pt.X})
	}
	return ring
}
