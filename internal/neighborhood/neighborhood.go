// Package neighborhood maps geographic points to the named neighborhoods
// that contain them.
package neighborhood

import (
	"time"

	"github.com/danielerenburg1/address-checker/internal/geometry"
)

// Neighborhood is a named polygon region. Names are not required to be
// unique and regions may overlap; precedence between overlapping regions
// is the caller-supplied list order.
type Neighborhood struct {
	ID        string            `json:"id,omitempty"`
	Name      string            `json:"name"`
	Polygon   geometry.Polygon  `json:"coordinates"`
	CreatedAt time.Time         `json:"created_at,omitempty"`
}

// Set is an ordered collection of neighborhoods. Order determines which
// region wins first-match queries and is otherwise insignificant.
type Set []Neighborhood

// Names returns the neighborhood names in set order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, n := range s {
		names[i] = n.Name
	}
	return names
}

// Mode selects the resolution policy for Resolve.
type Mode string

const (
	// ModeFirst reports only the earliest-listed containing neighborhood.
	ModeFirst Mode = "first"
	// ModeAll reports every containing neighborhood in list order.
	ModeAll Mode = "all"
)

// FindFirst returns the name of the first neighborhood in set whose
// polygon contains point, in supplied order. The second return is false
// when no neighborhood matches.
func FindFirst(point geometry.Coordinate, set Set) (string, bool) {
	for _, n := range set {
		if geometry.Contains(point, n.Polygon) {
			return n.Name, true
		}
	}
	return "", false
}

// FindAll returns the names of every neighborhood in set whose polygon
// contains point, in supplied order. Useful for legitimately overlapping
// regions, e.g. a district inside a larger area.
func FindAll(point geometry.Coordinate, set Set) []string {
	var names []string
	for _, n := range set {
		if geometry.Contains(point, n.Polygon) {
			names = append(names, n.Name)
		}
	}
	return names
}

// Resolve applies the given mode. ModeFirst yields at most one name;
// any other mode behaves as ModeAll. An empty set yields no matches,
// never an error.
func Resolve(point geometry.Coordinate, set Set, mode Mode) []string {
	if mode == ModeFirst {
		if name, ok := FindFirst(point, set); ok {
			return []string{name}
		}
		return nil
	}
	return FindAll(point, set)
}
