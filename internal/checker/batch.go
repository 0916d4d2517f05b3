package checker

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/danielerenburg1/address-checker/internal/geometry"
	"github.com/danielerenburg1/address-checker/internal/neighborhood"
)

// BatchCheckRequest checks many addresses in one go.
type BatchCheckRequest struct {
	Addresses       []string          `json:"addresses"`
	NeighborhoodIDs []string          `json:"neighborhood_ids,omitempty"`
	Mode            neighborhood.Mode `json:"mode,omitempty"`
}

// BatchCheckItem is the outcome for a single address. Unresolvable
// addresses are reported with Matched=false rather than failing the batch.
type BatchCheckItem struct {
	Address          string              `json:"address"`
	Matched          bool                `json:"matched"`
	Point            geometry.Coordinate `json:"point,omitempty"`
	FormattedAddress string              `json:"formatted_address,omitempty"`
	Matches          []string            `json:"matches,omitempty"`
}

// CheckBatch geocodes all addresses in parallel and resolves each against
// the same neighborhood snapshot, so one store read serves the batch.
func (s *Service) CheckBatch(ctx context.Context, req BatchCheckRequest) ([]BatchCheckItem, error) {
	if len(req.Addresses) == 0 {
		return nil, nil
	}
	if s.geocoder == nil {
		return nil, eris.New("checker: no geocoder configured")
	}

	set, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	set = filterByID(set, req.NeighborhoodIDs)

	results, err := s.geocoder.BatchGeocode(ctx, req.Addresses)
	if err != nil {
		return nil, eris.Wrap(err, "checker: batch geocode")
	}

	items := make([]BatchCheckItem, len(req.Addresses))
	for i, r := range results {
		item := BatchCheckItem{Address: req.Addresses[i], Matched: r.Matched}
		if r.Matched {
			item.Point = geometry.Coordinate{Lat: r.Latitude, Lng: r.Longitude}
			item.FormattedAddress = r.FormattedAddress
			item.Matches = neighborhood.Resolve(item.Point, set, req.Mode)
		}
		items[i] = item
	}
	return items, nil
}
