package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/repository"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// BoxRepository is the SQLite implementation of repository.BoxRepository.
type BoxRepository struct {
	db *sql.DB
}

// NewBoxRepository creates a new BoxRepository.
//
// Parameters:
//   - db: the open database handle
//
// Returns:
//   - *BoxRepository: the repository
func NewBoxRepository(db *sql.DB) *BoxRepository {
	return &BoxRepository{db: db}
}

// Create persists a new box and populates its identifier.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - box: the box to create
//
// Returns:
//   - error: any error encountered during creation
func (r *BoxRepository) Create(ctx context.Context, box *entity.Box) error {
	if box == nil {
		return repository.ErrInvalidInput
	}

	dims := box.SortedDims()
	now := time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO boxes (width, height, length, max_weight, dim_small, dim_mid, dim_large, volume, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		box.Width, box.Height, box.Length, box.MaxWeight,
		dims[0], dims[1], dims[2], box.Volume(),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert box: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read box id: %w", err)
	}
	box.ID = &id
	return nil
}

// FindByID retrieves a box by its catalog identifier.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - id: the box identifier
//
// Returns:
//   - *entity.Box: the retrieved box
//   - error: repository.ErrBoxNotFound if no such box exists
func (r *BoxRepository) FindByID(ctx context.Context, id int64) (*entity.Box, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, width, height, length, max_weight
		FROM boxes WHERE id = ?`, id)

	box, err := scanBox(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrBoxNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query box: %w", err)
	}
	return box, nil
}

// FindPage retrieves one keyset-paginated page of candidate boxes.
//
// The requirement's ascending dimension bounds are matched against the
// box's stored sorted triple, so the filter is rotation-invariant like
// the fit checks downstream. Ordering is (volume, id) ascending; with a
// cursor, only boxes strictly after it are returned.
//
// Parameters:
//   - ctx: context for cancellation and deadlines
//   - req: minimum dimension/weight bounds
//   - limit: maximum number of boxes to return
//   - cursor: position of the last box already seen, or nil
//
// Returns:
//   - []entity.Box: the page, possibly empty
//   - error: any error encountered during retrieval
func (r *BoxRepository) FindPage(ctx context.Context, req valueobject.Requirement, limit int, cursor *repository.PageCursor) ([]entity.Box, error) {
	if limit <= 0 {
		return nil, repository.ErrInvalidInput
	}

	query := `
		SELECT id, width, height, length, max_weight
		FROM boxes
		WHERE dim_small >= ? AND dim_mid >= ? AND dim_large >= ? AND max_weight >= ?`
	args := []any{req.MinDims[0], req.MinDims[1], req.MinDims[2], req.TotalWeight}

	if cursor != nil {
		query += ` AND (volume > ? OR (volume = ? AND id > ?))`
		args = append(args, cursor.LastVolume, cursor.LastVolume, cursor.LastID)
	}

	query += ` ORDER BY volume ASC, id ASC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query box page: %w", err)
	}
	defer rows.Close()

	boxes := make([]entity.Box, 0, limit)
	for rows.Next() {
		box, err := scanBox(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan box: %w", err)
		}
		boxes = append(boxes, *box)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate box page: %w", err)
	}
	return boxes, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBox reads one box row into an entity.
func scanBox(row rowScanner) (*entity.Box, error) {
	var boxID int64
	var width, height, length, maxWeight float64
	if err := row.Scan(&boxID, &width, &height, &length, &maxWeight); err != nil {
		return nil, err
	}

	box, err := entity.NewBoxWithID(boxID, width, height, length, maxWeight)
	if err != nil {
		return nil, err
	}
	return &box, nil
}
