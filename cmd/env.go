package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/danielerenburg1/address-checker/internal/checker"
	"github.com/danielerenburg1/address-checker/internal/store"
	"github.com/danielerenburg1/address-checker/pkg/geocode"
)

// checkerEnv holds the initialized store and service shared by the
// CLI commands. Callers should defer env.Close().
type checkerEnv struct {
	Store   store.Store
	Service *checker.Service
}

func (e *checkerEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv opens the configured store, runs migrations and wires the
// geocoder. The geocoder is nil without an API key; address checks then
// fail while polygon CRUD keeps working.
func initEnv(ctx context.Context) (*checkerEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	var gc geocode.Client
	if cfg.Geocode.GoogleAPIKey != "" {
		opts := []geocode.Option{
			geocode.WithRegion(cfg.Geocode.Region),
			geocode.WithLanguage(cfg.Geocode.Language),
			geocode.WithCountry(cfg.Geocode.Country),
			geocode.WithRateLimit(cfg.Geocode.RateLimit),
			geocode.WithBatchWorkers(cfg.Geocode.BatchWorkers),
		}
		if sq, ok := st.(*store.SQLiteStore); ok && cfg.Geocode.CacheEnabled {
			opts = append(opts, geocode.WithCache(sq.GeocodeCache(cfg.Geocode.CacheTTLDays)))
			zap.L().Debug("geocode cache enabled", zap.Int("ttl_days", cfg.Geocode.CacheTTLDays))
		}
		gc = geocode.NewClient(cfg.Geocode.GoogleAPIKey, opts...)
	} else {
		zap.L().Debug("ADDRCHECK_GEOCODE_GOOGLE_API_KEY not set, address geocoding disabled")
	}

	return &checkerEnv{
		Store:   st,
		Service: checker.New(st, gc),
	}, nil
}

// initStore picks the backend from config.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "file", "":
		return store.NewFile(cfg.Store.Path), nil
	case "sqlite":
		return store.NewSQLite(cfg.Store.Path)
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("postgres driver needs ADDRCHECK_STORE_DATABASE_URL")
		}
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
