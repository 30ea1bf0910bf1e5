package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hapkiduki/boxpick-go/internal/domain/repository"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// PackingCacheRepository is the SQLite implementation of
// repository.PackingCacheRepository. Entries are keyed by the normalized
// product-set fingerprint; the primary key constraint is what resolves
// insert-insert races between concurrent writers.
type PackingCacheRepository struct {
	db *sql.DB
}

// NewPackingCacheRepository creates a new PackingCacheRepository.
//
// Parameters:
//   - db: the open database handle
//
// Returns:
//   - *PackingCacheRepository: the repository
func NewPackingCacheRepository(db *sql.DB) *PackingCacheRepository {
	return &PackingCacheRepository{db: db}
}

// Get looks up the cached box identifier for a product set.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - products: the product set to look up
//
// Returns:
//   - int64: the cached box identifier
//   - error: repository.ErrCacheMiss when no entry exists
func (r *PackingCacheRepository) Get(ctx context.Context, products []valueobject.Product) (int64, error) {
	hash := valueobject.Fingerprint(products)

	var boxID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT box_id FROM packing_cache WHERE product_hash = ?`, hash,
	).Scan(&boxID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrCacheMiss
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query packing cache: %w", err)
	}
	return boxID, nil
}

// Put records a confirmed selection for a product set.
//
// Within a single immediate transaction: update the existing entry if one
// exists, otherwise insert. An insert that loses a race to a concurrent
// writer fails the uniqueness constraint and is recovered by updating the
// freshly inserted row instead of failing the caller. Last writer wins.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - products: the product set the selection applies to
//   - boxID: the confirmed box identifier
//
// Returns:
//   - error: storage errors only; uniqueness races are never surfaced
func (r *PackingCacheRepository) Put(ctx context.Context, products []valueobject.Product, boxID int64) error {
	hash := valueobject.Fingerprint(products)
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE packing_cache SET box_id = ?, updated_at = ? WHERE product_hash = ?`,
		boxID, now, hash,
	)
	if err != nil {
		return fmt.Errorf("failed to update packing cache: %w", err)
	}

	updated, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}

	if updated == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO packing_cache (product_hash, box_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			hash, boxID, now, now,
		)
		if err != nil {
			if !isUniqueViolation(err) {
				return fmt.Errorf("failed to insert packing cache entry: %w", err)
			}
			// Lost the insert race; the entry exists now, so update it.
			if _, err := tx.ExecContext(ctx,
				`UPDATE packing_cache SET box_id = ?, updated_at = ? WHERE product_hash = ?`,
				boxID, now, hash,
			); err != nil {
				return fmt.Errorf("failed to update packing cache after race: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrTransactionFailed, err)
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite uniqueness
// constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
