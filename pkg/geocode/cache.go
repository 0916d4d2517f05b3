package geocode

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeAddress trims and whitespace-collapses the address and appends
// the configured country when the address does not already mention it.
// Unicode is NFKC-normalized so visually identical Hebrew/Latin forms
// compare equal for caching.
func (g *geocoder) normalizeAddress(address string) string {
	address = norm.NFKC.String(strings.Join(strings.Fields(address), " "))

	if g.country != "" {
		lower := strings.ToLower(address)
		if !strings.Contains(lower, strings.ToLower(g.country)) &&
			!strings.Contains(lower, "israel") {
			address += ", " + g.country
		}
	}
	return address
}

// cacheKey returns SHA-256 hex of the lowercased address for cache lookup.
func cacheKey(address string) string {
	h := sha256.Sum256([]byte(strings.ToLower(address)))
	return fmt.Sprintf("%x", h)
}
