package geocode

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchGeocode geocodes addresses in parallel, bounded by the configured
// worker count. Individual failures become unmatched results rather than
// failing the batch; output order matches input order.
func (g *geocoder) BatchGeocode(ctx context.Context, addresses []string) ([]Result, error) {
	if len(addresses) == 0 {
		return nil, nil
	}

	results := make([]Result, len(addresses))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.batchWorkers)

	for i, addr := range addresses {
		eg.Go(func() error {
			r, err := g.Geocode(gCtx, addr)
			if err != nil || r == nil {
				results[i] = Result{Matched: false, Source: "google"}
				return nil //nolint:nilerr // individual geocode failures don't fail the batch
			}
			results[i] = *r
			return nil
		})
	}

	_ = eg.Wait()
	return results, nil
}
