package packing

import (
	"context"
	"testing"

	"github.com/hapkiduki/boxpick-go/internal/application/port"
	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
	"github.com/stretchr/testify/require"
)

// nopLogger satisfies port.Logger for tests.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})              {}
func (nopLogger) Info(string, ...interface{})               {}
func (nopLogger) Warn(string, ...interface{})               {}
func (nopLogger) Error(string, ...interface{})              {}
func (l nopLogger) With(...interface{}) port.Logger         { return l }
func (l nopLogger) WithContext(context.Context) port.Logger { return l }

// spyCache records Put calls for cache-write-discipline assertions.
type spyCache struct {
	puts []int64
	err  error
}

func (c *spyCache) Get(context.Context, []valueobject.Product) (int64, error) {
	panic("oracle checker must never read the cache")
}

func (c *spyCache) Put(_ context.Context, _ []valueobject.Product, boxID int64) error {
	c.puts = append(c.puts, boxID)
	return c.err
}

// testBox builds an identified box whose volume grows with id, so a
// slice ordered by id is also ordered by volume.
func testBox(t *testing.T, id int64) entity.Box {
	t.Helper()
	side := float64(10 + id)
	box, err := entity.NewBoxWithID(id, side, side, side, 100)
	require.NoError(t, err)
	return box
}

// testBoxes builds n candidate boxes with ids 1..n, ascending volume.
func testBoxes(t *testing.T, n int) []entity.Box {
	t.Helper()
	boxes := make([]entity.Box, n)
	for i := range boxes {
		boxes[i] = testBox(t, int64(i+1))
	}
	return boxes
}

// testProducts builds a small product set.
func testProducts(t *testing.T, dims ...[4]float64) []valueobject.Product {
	t.Helper()
	products := make([]valueobject.Product, len(dims))
	for i, d := range dims {
		p, err := valueobject.NewProduct(d[0], d[1], d[2], d[3])
		require.NoError(t, err)
		products[i] = p
	}
	return products
}
