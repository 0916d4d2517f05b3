// Package geocode resolves free-text addresses to coordinates via the
// Google Geocoding API.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client geocodes free-text addresses.
type Client interface {
	// Geocode geocodes a single address.
	Geocode(ctx context.Context, address string) (*Result, error)

	// BatchGeocode geocodes multiple addresses.
	BatchGeocode(ctx context.Context, addresses []string) ([]Result, error)
}

// Result holds the geocoding output for an address.
type Result struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	Source           string // "google" or "cache"
	Quality          string // "rooftop", "range", "centroid", "approximate"
	Matched          bool
}

// Cache stores geocode results keyed by normalized address hash. A miss
// is signaled by a nil Result with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (*Result, error)
	Put(ctx context.Context, key string, result *Result) error
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit for Google API calls.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// WithRegion sets the region bias (ccTLD, e.g. "il").
func WithRegion(region string) Option {
	return func(g *geocoder) {
		g.region = region
	}
}

// WithLanguage sets the preferred language for returned addresses
// (e.g. "iw" for Hebrew).
func WithLanguage(lang string) Option {
	return func(g *geocoder) {
		g.language = lang
	}
}

// WithCountry sets a country name appended to addresses that do not
// already mention it, narrowing ambiguous street-level queries.
func WithCountry(country string) Option {
	return func(g *geocoder) {
		g.country = country
	}
}

// WithCache enables caching of geocode results (matches and non-matches).
func WithCache(c Cache) Option {
	return func(g *geocoder) {
		g.cache = c
	}
}

// WithBatchWorkers sets the max parallel calls for BatchGeocode.
func WithBatchWorkers(n int) Option {
	return func(g *geocoder) {
		if n > 0 {
			g.batchWorkers = n
		}
	}
}

type geocoder struct {
	httpClient   *http.Client
	apiKey       string
	region       string
	language     string
	country      string
	limiter      *rate.Limiter
	cache        Cache
	batchWorkers int
}

// NewClient creates a geocoding Client using the given Google API key.
func NewClient(apiKey string, opts ...Option) Client {
	g := &geocoder{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		apiKey:       apiKey,
		limiter:      rate.NewLimiter(10, 10),
		batchWorkers: 10,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode geocodes a single address, consulting the cache first when one
// is configured. An address Google cannot resolve yields Matched=false,
// not an error.
func (g *geocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	address = g.normalizeAddress(address)
	key := cacheKey(address)

	if g.cache != nil {
		cached, err := g.cache.Get(ctx, key)
		if err == nil && cached != nil {
			hit := *cached
			hit.Source = "cache"
			return &hit, nil
		}
	}

	result, err := g.geocodeGoogle(ctx, address)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		// Non-matches are cached too so repeated bad addresses skip the API.
		_ = g.cache.Put(ctx, key, result)
	}
	return result, nil
}
