// Package store persists named neighborhoods. Three backends are
// available: a flat JSON file (the default), SQLite and Postgres. List
// order is insertion order, which callers rely on as the precedence for
// first-match resolution.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

// ErrNotFound is returned when a neighborhood id does not exist.
var ErrNotFound = eris.New("store: neighborhood not found")

// Store defines the persistence interface for neighborhoods.
type Store interface {
	// Create persists a neighborhood, assigning its ID and CreatedAt.
	Create(ctx context.Context, n neighborhood.Neighborhood) (*neighborhood.Neighborhood, error)

	// List returns all neighborhoods in insertion order.
	List(ctx context.Context) (neighborhood.Set, error)

	// Get returns a neighborhood by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*neighborhood.Neighborhood, error)

	// Delete removes a neighborhood by id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
