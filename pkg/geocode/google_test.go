package geocode

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleGeocode_Rooftop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "il", r.URL.Query().Get("region"))
		assert.Equal(t, "iw", r.URL.Query().Get("language"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"status": "OK",
			"results": [{
				"geometry": {
					"location": {"lat": 32.0742, "lng": 34.7749},
					"location_type": "ROOFTOP"
				},
				"formatted_address": "Dizengoff St 50, Tel Aviv-Yafo, Israel"
			}]
		}`)
	}))
	defer srv.Close()

	g := &geocoder{
		httpClient: newRewriteClient(srv.URL, googleGeocodeURL),
		apiKey:     "test-key",
		region:     "il",
		language:   "iw",
		limiter:    newTestLimiter(),
	}

	result, err := g.geocodeGoogle(context.Background(), "Dizengoff St 50, Tel Aviv")
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.InDelta(t, 32.0742, result.Latitude, 0.0001)
	assert.InDelta(t, 34.7749, result.Longitude, 0.0001)
	assert.Equal(t, "google", result.Source)
	assert.Equal(t, "rooftop", result.Quality)
	assert.Equal(t, "Dizengoff St 50, Tel Aviv-Yafo, Israel", result.FormattedAddress)
}

func TestGoogleGeocode_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status": "ZERO_RESULTS", "results": []}`)
	}))
	defer srv.Close()

	g := &geocoder{
		httpClient: newRewriteClient(srv.URL, googleGeocodeURL),
		apiKey:     "test-key",
		limiter:    newTestLimiter(),
	}

	result, err := g.geocodeGoogle(context.Background(), "no such street 999")
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Equal(t, "google", result.Source)
}

func TestGoogleGeocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := &geocoder{
		httpClient: newRewriteClient(srv.URL, googleGeocodeURL),
		apiKey:     "test-key",
		limiter:    newTestLimiter(),
	}

	_, err := g.geocodeGoogle(context.Background(), "Dizengoff St 50")
	assert.Error(t, err)
}

func TestGoogleGeocode_MissingAPIKey(t *testing.T) {
	g := &geocoder{
		httpClient: http.DefaultClient,
		limiter:    newTestLimiter(),
	}

	_, err := g.geocodeGoogle(context.Background(), "Dizengoff St 50")
	assert.Error(t, err)
}

func TestGoogleLocationTypeToQuality(t *testing.T) {
	tests := []struct {
		locType string
		want    string
	}{
		{"ROOFTOP", "rooftop"},
		{"rooftop", "rooftop"},
		{"RANGE_INTERPOLATED", "range"},
		{"GEOMETRIC_CENTER", "centroid"},
		{"APPROXIMATE", "approximate"},
		{"", "approximate"},
		{"SOMETHING_NEW", "approximate"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, googleLocationTypeToQuality(tt.locType))
	}
}
