// Package checker wires storage, geocoding and neighborhood resolution
// behind explicit request/response commands. It never performs terminal
// I/O; the CLI, menu and HTTP server all dispatch through it.
package checker

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/danielerenburg1/address-checker/internal/geometry"
	"github.com/danielerenburg1/address-checker/internal/neighborhood"
	"github.com/danielerenburg1/address-checker/internal/store"
	"github.com/danielerenburg1/address-checker/pkg/geocode"
)

// Validation and lookup errors surfaced to callers.
var (
	ErrNameRequired    = eris.New("checker: neighborhood name is required")
	ErrTooFewVertices  = eris.New("checker: a neighborhood needs at least 3 points")
	ErrAddressNotFound = eris.New("checker: address not found")
	ErrAmbiguousName   = eris.New("checker: neighborhood name is ambiguous, delete by id")
	ErrNoLocation      = eris.New("checker: address or point is required")
)

// Service dispatches neighborhood commands.
type Service struct {
	store    store.Store
	geocoder geocode.Client
}

// New creates a Service. The geocoder may be nil when only CRUD commands
// are used; Check with a free-text address then fails.
func New(st store.Store, gc geocode.Client) *Service {
	return &Service{store: st, geocoder: gc}
}

// CreateRequest asks for a new named neighborhood.
type CreateRequest struct {
	Name    string           `json:"name"`
	Polygon geometry.Polygon `json:"coordinates"`
}

// CreateResponse reports the stored neighborhood.
type CreateResponse struct {
	Neighborhood neighborhood.Neighborhood `json:"neighborhood"`
}

// Create validates and persists a neighborhood. The stored ring keeps the
// vertices exactly as supplied; containment closes the loop implicitly.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	if req.Name == "" {
		return nil, ErrNameRequired
	}
	if len(req.Polygon) < 3 {
		return nil, ErrTooFewVertices
	}

	created, err := s.store.Create(ctx, neighborhood.Neighborhood{
		Name:    req.Name,
		Polygon: req.Polygon,
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("neighborhood created",
		zap.String("id", created.ID),
		zap.String("name", created.Name),
		zap.Int("vertices", len(created.Polygon)),
	)
	return &CreateResponse{Neighborhood: *created}, nil
}

// ListResponse holds all stored neighborhoods in insertion order.
type ListResponse struct {
	Neighborhoods neighborhood.Set `json:"neighborhoods"`
}

// List returns the stored neighborhoods.
func (s *Service) List(ctx context.Context) (*ListResponse, error) {
	set, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Neighborhoods: set}, nil
}

// DeleteRequest identifies a neighborhood by ID, or by name when ID is
// empty. Deleting by a name shared by several neighborhoods fails with
// ErrAmbiguousName.
type DeleteRequest struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// DeleteResponse reports what was deleted.
type DeleteResponse struct {
	Deleted neighborhood.Neighborhood `json:"deleted"`
}

// Delete removes a neighborhood.
func (s *Service) Delete(ctx context.Context, req DeleteRequest) (*DeleteResponse, error) {
	id := req.ID
	if id == "" {
		resolved, err := s.findByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		id = resolved
	}

	target, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	zap.L().Info("neighborhood deleted", zap.String("id", id), zap.String("name", target.Name))
	return &DeleteResponse{Deleted: *target}, nil
}

func (s *Service) findByName(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", eris.Wrap(store.ErrNotFound, "no id or name given")
	}
	set, err := s.store.List(ctx)
	if err != nil {
		return "", err
	}

	var id string
	for _, n := range set {
		if n.Name != name {
			continue
		}
		if id != "" {
			return "", eris.Wrapf(ErrAmbiguousName, "name %q", name)
		}
		id = n.ID
	}
	if id == "" {
		return "", eris.Wrapf(store.ErrNotFound, "name %q", name)
	}
	return id, nil
}

// CheckRequest asks which neighborhoods contain a location. Either
// Address (geocoded) or Point must be set; Point wins when both are.
// NeighborhoodIDs optionally narrows the check to a subset, preserving
// stored order.
type CheckRequest struct {
	Address         string               `json:"address,omitempty"`
	Point           *geometry.Coordinate `json:"point,omitempty"`
	NeighborhoodIDs []string             `json:"neighborhood_ids,omitempty"`
	Mode            neighborhood.Mode    `json:"mode,omitempty"`
}

// CheckResponse reports the resolved location and the containing
// neighborhoods per the requested mode.
type CheckResponse struct {
	Point            geometry.Coordinate `json:"point"`
	FormattedAddress string              `json:"formatted_address,omitempty"`
	Quality          string              `json:"quality,omitempty"`
	Source           string              `json:"source,omitempty"`
	Matches          []string            `json:"matches"`
}

// Check resolves the location and applies the containment policy. An
// address the geocoder cannot match yields ErrAddressNotFound.
func (s *Service) Check(ctx context.Context, req CheckRequest) (*CheckResponse, error) {
	resp := &CheckResponse{}

	switch {
	case req.Point != nil:
		resp.Point = *req.Point
	case req.Address != "":
		if s.geocoder == nil {
			return nil, eris.New("checker: no geocoder configured")
		}
		result, err := s.geocoder.Geocode(ctx, req.Address)
		if err != nil {
			return nil, eris.Wrap(err, "checker: geocode address")
		}
		if !result.Matched {
			return nil, eris.Wrapf(ErrAddressNotFound, "address %q", req.Address)
		}
		resp.Point = geometry.Coordinate{Lat: result.Latitude, Lng: result.Longitude}
		resp.FormattedAddress = result.FormattedAddress
		resp.Quality = result.Quality
		resp.Source = result.Source
	default:
		return nil, ErrNoLocation
	}

	set, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	set = filterByID(set, req.NeighborhoodIDs)

	resp.Matches = neighborhood.Resolve(resp.Point, set, req.Mode)

	zap.L().Debug("check complete",
		zap.Float64("lat", resp.Point.Lat),
		zap.Float64("lng", resp.Point.Lng),
		zap.Int("candidates", len(set)),
		zap.Strings("matches", resp.Matches),
	)
	return resp, nil
}

// filterByID keeps only the neighborhoods whose ID is in ids, preserving
// set order. An empty ids list keeps everything.
func filterByID(set neighborhood.Set, ids []string) neighborhood.Set {
	if len(ids) == 0 {
		return set
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var filtered neighborhood.Set
	for _, n := range set {
		if want[n.ID] {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
