// Package service contains the application services (use cases).
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hapkiduki/boxpick-go/internal/application/port"
	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/repository"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// ErrNoProducts is returned when Resolve is called with an empty set.
// Input validation belongs to the transport layer; this is a guard, not
// an expected path.
var ErrNoProducts = errors.New("product list must not be empty")

// DefaultPageSize is the catalog page size used when none is configured.
const DefaultPageSize = 20

// Resolver selects the smallest usable shipping box for a product set.
//
// Resolution runs through three stages: a content-addressed cache lookup
// (verified against the catalog), then a keyset-paginated scan over
// candidate boxes ordered by volume, handing each page whole to the
// packability checker. Exhausting the catalog without a fit is a normal
// outcome reported as a nil box.
type Resolver struct {
	catalog  repository.BoxRepository
	checker  port.PackabilityChecker
	cache    repository.PackingCacheRepository
	pageSize int
	log      port.Logger
}

// NewResolver creates a new Resolver.
//
// Parameters:
//   - catalog: the box catalog
//   - checker: the packability checker (normally the resilient composite)
//   - cache: the packing result cache
//   - pageSize: catalog page size; DefaultPageSize when <= 0
//   - log: structured logger
//
// Returns:
//   - *Resolver: the configured resolver
func NewResolver(
	catalog repository.BoxRepository,
	checker port.PackabilityChecker,
	cache repository.PackingCacheRepository,
	pageSize int,
	log port.Logger,
) *Resolver {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Resolver{
		catalog:  catalog,
		checker:  checker,
		cache:    cache,
		pageSize: pageSize,
		log:      log,
	}
}

// Resolve finds the smallest box able to hold all given products.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - products: non-empty, already validated product set
//
// Returns:
//   - *entity.Box: the selected box, or nil when no catalog box fits
//   - error: infrastructure failures only; "no box" is not an error
func (r *Resolver) Resolve(ctx context.Context, products []valueobject.Product) (*entity.Box, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	log := r.log.WithContext(ctx)

	if box := r.lookupCache(ctx, products, log); box != nil {
		return box, nil
	}

	req := valueobject.AggregateRequirement(products)
	log.Debug("Scanning box catalog",
		"min_dims", req.MinDims,
		"total_weight", req.TotalWeight,
		"page_size", r.pageSize,
	)

	var cursor *repository.PageCursor
	for {
		page, err := r.catalog.FindPage(ctx, req, r.pageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalog page: %w", err)
		}
		if len(page) == 0 {
			log.Info("Box catalog exhausted, no suitable box", "products", len(products))
			return nil, nil
		}

		box, err := r.checker.FindFirstFit(ctx, products, page)
		if err != nil {
			return nil, fmt.Errorf("packability check failed: %w", err)
		}
		if box != nil {
			log.Info("Box selected", "box", box.String(), "products", len(products))
			return box, nil
		}

		last := page[len(page)-1]
		cursor = &repository.PageCursor{LastVolume: last.Volume(), LastID: *last.ID}
	}
}

// lookupCache resolves a cached decision, verifying the referenced box
// still exists in the catalog. Any cache-side problem degrades to a miss;
// resolution must never fail because the cache did.
func (r *Resolver) lookupCache(ctx context.Context, products []valueobject.Product, log port.Logger) *entity.Box {
	boxID, err := r.cache.Get(ctx, products)
	if err != nil {
		if !errors.Is(err, repository.ErrCacheMiss) {
			log.Warn("Packing cache lookup failed", "error", err)
		}
		return nil
	}

	box, err := r.catalog.FindByID(ctx, boxID)
	if err != nil {
		if repository.IsNotFoundError(err) {
			log.Warn("Cached box no longer in catalog", "box_id", boxID)
		} else {
			log.Warn("Failed to verify cached box", "box_id", boxID, "error", err)
		}
		return nil
	}

	log.Info("Resolved from packing cache", "box_id", boxID)
	return box
}
