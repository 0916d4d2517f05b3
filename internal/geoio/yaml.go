package geoio

import (
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/danielerenburg1/address-checker/internal/geometry"
	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

// yamlDocument is the YAML export shape.
type yamlDocument struct {
	Neighborhoods []yamlNeighborhood `yaml:"neighborhoods"`
}

type yamlNeighborhood struct {
	ID          string           `yaml:"id,omitempty"`
	Name        string           `yaml:"name"`
	Coordinates []yamlCoordinate `yaml:"coordinates"`
}

type yamlCoordinate struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// EncodeYAML renders the set as a YAML document.
func EncodeYAML(set neighborhood.Set) ([]byte, error) {
	doc := yamlDocument{Neighborhoods: make([]yamlNeighborhood, 0, len(set))}
	for _, n := range set {
		yn := yamlNeighborhood{ID: n.ID, Name: n.Name, Coordinates: make([]yamlCoordinate, 0, len(n.Polygon))}
		for _, c := range n.Polygon {
			yn.Coordinates = append(yn.Coordinates, yamlCoordinate{Lat: c.Lat, Lng: c.Lng})
		}
		doc.Neighborhoods = append(doc.Neighborhoods, yn)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, eris.Wrap(err, "geoio: marshal yaml")
	}
	return data, nil
}

// DecodeYAML parses a YAML document produced by EncodeYAML.
func DecodeYAML(data []byte) (neighborhood.Set, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "geoio: parse yaml")
	}

	var set neighborhood.Set
	for _, yn := range doc.Neighborhoods {
		poly := make(geometry.Polygon, 0, len(yn.Coordinates))
		for _, c := range yn.Coordinates {
			poly = append(poly, geometry.Coordinate{Lat: c.Lat, Lng: c.Lng})
		}
		set = append(set, neighborhood.Neighborhood{ID: yn.ID, Name: yn.Name, Polygon: poly})
	}
	return set, nil
}
