// Package repository contains the repository interfaces (ports) for data access.
package repository

import (
	"context"

	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
)

// PageCursor identifies the last box of a previously fetched page under
// the catalog's (volume, id) ordering. A nil cursor requests the first page.
type PageCursor struct {
	// LastVolume is the volume of the last box seen.
	LastVolume float64

	// LastID is the identifier of the last box seen.
	LastID int64
}

// BoxRepository defines the interface for box catalog access.
// The catalog is read-mostly: the resolution core only queries it,
// while the administration surface may add boxes.
//
// Example usage:
//
//	repo := sqlite.NewBoxRepository(db)
//	box, err := repo.FindByID(ctx, boxID)
type BoxRepository interface {
	// Create persists a new box and assigns its identifier.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - box: the box to create; its ID is populated on success
	//
	// Returns:
	//   - error: any error encountered during creation
	Create(ctx context.Context, box *entity.Box) error

	// FindByID retrieves a box by its catalog identifier.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: the box identifier
	//
	// Returns:
	//   - *entity.Box: the retrieved box
	//   - error: ErrBoxNotFound if no such box exists
	FindByID(ctx context.Context, id int64) (*entity.Box, error)

	// FindPage retrieves one keyset-paginated page of candidate boxes.
	//
	// Contract: every returned box satisfies width ≥ MinDims[0],
	// height ≥ MinDims[1], length ≥ MinDims[2] (compared against the
	// box's own sorted dimensions) and maxWeight ≥ TotalWeight; results
	// are ordered ascending by (volume, id); when a cursor is supplied,
	// only boxes whose (volume, id) strictly follows it are returned.
	// An empty result signals exhaustion.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - req: minimum dimension/weight bounds to filter by
	//   - limit: maximum number of boxes to return
	//   - cursor: position of the last box already seen, or nil
	//
	// Returns:
	//   - []entity.Box: the page of candidate boxes, possibly empty
	//   - error: any error encountered during retrieval
	FindPage(ctx context.Context, req valueobject.Requirement, limit int, cursor *PageCursor) ([]entity.Box, error)
}
