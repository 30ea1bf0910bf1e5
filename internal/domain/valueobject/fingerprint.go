package valueobject

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Fingerprint computes the content-addressed cache key for a product set.
//
// Normalization makes the key invariant to (i) the input ordering of the
// products and (ii) each product's own axis labeling:
//  1. for each product, sort its three dimensions ascending and format
//     each dimension and the weight with two decimal places;
//  2. sort the resulting records lexicographically;
//  3. hash the joined records with SHA-256.
//
// The two-decimal precision matches the granularity of the measurement
// bounds and must not change, or previously cached keys become unreachable.
//
// Parameters:
//   - products: the product set to fingerprint
//
// Returns:
//   - string: hex-encoded SHA-256 digest (64 characters)
func Fingerprint(products []Product) string {
	records := make([]string, len(products))
	for i, p := range products {
		dims := p.SortedDims()
		records[i] = fmt.Sprintf("%.2f|%.2f|%.2f|%.2f", dims[0], dims[1], dims[2], p.Weight())
	}
	sort.Strings(records)

	sum := sha256.Sum256([]byte(strings.Join(records, ";")))
	return hex.EncodeToString(sum[:])
}
