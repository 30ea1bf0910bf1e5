package repository

import (
	"context"

	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// PackingCacheRepository defines the interface for the content-addressed
// result cache. Keys are fingerprints of normalized product sets; values
// are catalog box identifiers confirmed by the packing oracle.
//
// Entries are created only on oracle-confirmed successes. Heuristic
// results and exhausted scans are never cached.
type PackingCacheRepository interface {
	// Get looks up the cached box identifier for a product set.
	// The referenced box is not verified to still exist; that is the
	// caller's concern.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - products: the product set to look up
	//
	// Returns:
	//   - int64: the cached box identifier
	//   - error: ErrCacheMiss if no entry exists for the fingerprint
	Get(ctx context.Context, products []valueobject.Product) (int64, error)

	// Put records a confirmed selection for a product set.
	//
	// The write is race-safe: within a single transaction it updates an
	// existing entry, or inserts a new one, and recovers a concurrent
	// insert of the same fingerprint by re-reading and updating instead
	// of failing. Exactly one entry per fingerprint survives any
	// sequence of concurrent calls; the last writer wins.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - products: the product set the selection applies to
	//   - boxID: the confirmed box identifier
	//
	// Returns:
	//   - error: any storage error; uniqueness races are never surfaced
	Put(ctx context.Context, products []valueobject.Product, boxID int64) error
}
