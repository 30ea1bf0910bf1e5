package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/repository"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createBox(t *testing.T, repo *BoxRepository, w, h, l, maxWeight float64) entity.Box {
	t.Helper()
	box, err := entity.NewBox(w, h, l, maxWeight)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &box))
	require.NotNil(t, box.ID)
	return box
}

func TestBoxRepositoryCreateAndFindByID(t *testing.T) {
	repo := NewBoxRepository(openTestDB(t))

	created := createBox(t, repo, 40, 30, 20, 25)

	found, err := repo.FindByID(context.Background(), *created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Width, found.Width)
	assert.Equal(t, created.Height, found.Height)
	assert.Equal(t, created.Length, found.Length)
	assert.Equal(t, created.MaxWeight, found.MaxWeight)
}

func TestBoxRepositoryFindByIDNotFound(t *testing.T) {
	repo := NewBoxRepository(openTestDB(t))

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrBoxNotFound)
}

func TestBoxRepositoryFindPage(t *testing.T) {
	repo := NewBoxRepository(openTestDB(t))
	ctx := context.Background()

	small := createBox(t, repo, 10, 10, 10, 5)    // volume 1000
	medium := createBox(t, repo, 20, 10, 10, 10)  // volume 2000
	large := createBox(t, repo, 20, 20, 10, 20)   // volume 4000
	largest := createBox(t, repo, 20, 20, 20, 30) // volume 8000

	anyReq := valueobject.Requirement{}

	t.Run("ordered by volume ascending", func(t *testing.T) {
		page, err := repo.FindPage(ctx, anyReq, 10, nil)
		require.NoError(t, err)
		require.Len(t, page, 4)
		assert.Equal(t, *small.ID, *page[0].ID)
		assert.Equal(t, *medium.ID, *page[1].ID)
		assert.Equal(t, *large.ID, *page[2].ID)
		assert.Equal(t, *largest.ID, *page[3].ID)
	})

	t.Run("keyset cursor excludes boxes at or before it", func(t *testing.T) {
		cursor := &repository.PageCursor{LastVolume: medium.Volume(), LastID: *medium.ID}
		page, err := repo.FindPage(ctx, anyReq, 10, cursor)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, *large.ID, *page[0].ID)
	})

	t.Run("pages do not overlap", func(t *testing.T) {
		seen := map[int64]bool{}
		var cursor *repository.PageCursor
		for {
			page, err := repo.FindPage(ctx, anyReq, 2, cursor)
			require.NoError(t, err)
			if len(page) == 0 {
				break
			}
			for _, box := range page {
				assert.False(t, seen[*box.ID], "box %d returned twice", *box.ID)
				seen[*box.ID] = true
			}
			last := page[len(page)-1]
			cursor = &repository.PageCursor{LastVolume: last.Volume(), LastID: *last.ID}
		}
		assert.Len(t, seen, 4)
	})

	t.Run("requirement filters rotation-invariantly", func(t *testing.T) {
		// Needs sorted dims >= (10, 10, 20): excludes the 10x10x10 box
		// even though the medium box only reaches 20 on one axis.
		req := valueobject.Requirement{MinDims: [3]float64{10, 10, 20}, TotalWeight: 6}
		page, err := repo.FindPage(ctx, req, 10, nil)
		require.NoError(t, err)
		require.Len(t, page, 3)
		assert.Equal(t, *medium.ID, *page[0].ID)
	})

	t.Run("weight filter", func(t *testing.T) {
		req := valueobject.Requirement{TotalWeight: 25}
		page, err := repo.FindPage(ctx, req, 10, nil)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, *largest.ID, *page[0].ID)
	})

	t.Run("empty page signals exhaustion", func(t *testing.T) {
		req := valueobject.Requirement{MinDims: [3]float64{100, 100, 100}}
		page, err := repo.FindPage(ctx, req, 10, nil)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := repo.FindPage(ctx, anyReq, 0, nil)
		assert.ErrorIs(t, err, repository.ErrInvalidInput)
	})
}

func TestBoxRepositoryEqualVolumeTieBreak(t *testing.T) {
	repo := NewBoxRepository(openTestDB(t))
	ctx := context.Background()

	// Same volume, different shapes; id decides the order.
	first := createBox(t, repo, 10, 10, 10, 5)
	second := createBox(t, repo, 20, 10, 5, 5)

	page, err := repo.FindPage(ctx, valueobject.Requirement{}, 1, nil)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, *first.ID, *page[0].ID)

	cursor := &repository.PageCursor{LastVolume: page[0].Volume(), LastID: *page[0].ID}
	page, err = repo.FindPage(ctx, valueobject.Requirement{}, 1, cursor)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, *second.ID, *page[0].ID)
}
