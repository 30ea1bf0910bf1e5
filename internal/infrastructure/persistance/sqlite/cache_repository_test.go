package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/hapkiduki/boxpick-go/internal/domain/repository"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheProducts(t *testing.T) []valueobject.Product {
	t.Helper()
	a, err := valueobject.NewProduct(10, 20, 30, 1.5)
	require.NoError(t, err)
	b, err := valueobject.NewProduct(5, 5, 5, 0.5)
	require.NoError(t, err)
	return []valueobject.Product{a, b}
}

func TestPackingCacheRepositoryGetMiss(t *testing.T) {
	repo := NewPackingCacheRepository(openTestDB(t))

	_, err := repo.Get(context.Background(), cacheProducts(t))
	assert.ErrorIs(t, err, repository.ErrCacheMiss)
}

func TestPackingCacheRepositoryPutAndGet(t *testing.T) {
	db := openTestDB(t)
	boxes := NewBoxRepository(db)
	repo := NewPackingCacheRepository(db)
	ctx := context.Background()

	box := createBox(t, boxes, 40, 30, 20, 25)
	products := cacheProducts(t)

	require.NoError(t, repo.Put(ctx, products, *box.ID))

	boxID, err := repo.Get(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, *box.ID, boxID)
}

func TestPackingCacheRepositoryGetIsOrderAndRotationInvariant(t *testing.T) {
	db := openTestDB(t)
	boxes := NewBoxRepository(db)
	repo := NewPackingCacheRepository(db)
	ctx := context.Background()

	box := createBox(t, boxes, 40, 30, 20, 25)
	products := cacheProducts(t)
	require.NoError(t, repo.Put(ctx, products, *box.ID))

	rotated, err := valueobject.NewProduct(30, 10, 20, 1.5)
	require.NoError(t, err)
	reordered := []valueobject.Product{products[1], rotated}

	boxID, err := repo.Get(ctx, reordered)
	require.NoError(t, err)
	assert.Equal(t, *box.ID, boxID)
}

func TestPackingCacheRepositoryPutUpdatesExisting(t *testing.T) {
	db := openTestDB(t)
	boxes := NewBoxRepository(db)
	repo := NewPackingCacheRepository(db)
	ctx := context.Background()

	first := createBox(t, boxes, 40, 30, 20, 25)
	second := createBox(t, boxes, 50, 40, 30, 30)
	products := cacheProducts(t)

	require.NoError(t, repo.Put(ctx, products, *first.ID))
	require.NoError(t, repo.Put(ctx, products, *second.ID))

	boxID, err := repo.Get(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, *second.ID, boxID, "last writer wins")

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM packing_cache`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestPackingCacheRepositoryConcurrentPuts(t *testing.T) {
	db := openTestDB(t)
	boxes := NewBoxRepository(db)
	repo := NewPackingCacheRepository(db)
	ctx := context.Background()

	box := createBox(t, boxes, 40, 30, 20, 25)
	products := cacheProducts(t)

	const writers = 16
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Put(ctx, products, *box.ID)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err, "insert races must be recovered, never surfaced")
	}

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM packing_cache`).Scan(&count))
	assert.Equal(t, 1, count, "exactly one entry per fingerprint survives")

	boxID, err := repo.Get(ctx, products)
	require.NoError(t, err)
	assert.Equal(t, *box.ID, boxID)
}
