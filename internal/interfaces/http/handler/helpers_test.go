package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/hapkiduki/boxpick-go/internal/application/dto"
	"github.com/hapkiduki/boxpick-go/internal/application/port"
	"github.com/hapkiduki/boxpick-go/internal/domain/entity"
	"github.com/hapkiduki/boxpick-go/internal/domain/repository"
	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})              {}
func (nopLogger) Info(string, ...interface{})               {}
func (nopLogger) Warn(string, ...interface{})               {}
func (nopLogger) Error(string, ...interface{})              {}
func (l nopLogger) With(...interface{}) port.Logger         { return l }
func (l nopLogger) WithContext(context.Context) port.Logger { return l }

// memoryCatalog is an in-memory BoxRepository for handler tests.
type memoryCatalog struct {
	boxes     map[int64]entity.Box
	nextID    int64
	createErr error
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{boxes: map[int64]entity.Box{}}
}

func (c *memoryCatalog) Create(_ context.Context, box *entity.Box) error {
	if c.createErr != nil {
		return c.createErr
	}
	c.nextID++
	id := c.nextID
	box.ID = &id
	c.boxes[id] = *box
	return nil
}

func (c *memoryCatalog) FindByID(_ context.Context, id int64) (*entity.Box, error) {
	box, ok := c.boxes[id]
	if !ok {
		return nil, repository.ErrBoxNotFound
	}
	return &box, nil
}

func (c *memoryCatalog) FindPage(_ context.Context, req valueobject.Requirement, limit int, cursor *repository.PageCursor) ([]entity.Box, error) {
	var page []entity.Box
	for id := int64(1); id <= c.nextID && len(page) < limit; id++ {
		box, ok := c.boxes[id]
		if !ok {
			continue
		}
		if cursor != nil && box.Volume() <= cursor.LastVolume {
			continue
		}
		dims := box.SortedDims()
		if dims[0] < req.MinDims[0] || dims[1] < req.MinDims[1] || dims[2] < req.MinDims[2] {
			continue
		}
		if box.MaxWeight < req.TotalWeight {
			continue
		}
		page = append(page, box)
	}
	return page, nil
}

// acceptAllChecker reports every candidate page's first box as a fit.
type acceptAllChecker struct{}

func (acceptAllChecker) FindFirstFit(_ context.Context, _ []valueobject.Product, candidates []entity.Box) (*entity.Box, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	box := candidates[0]
	return &box, nil
}

// erroringChecker fails every check.
type erroringChecker struct{ err error }

func (c erroringChecker) FindFirstFit(context.Context, []valueobject.Product, []entity.Box) (*entity.Box, error) {
	return nil, c.err
}

// noopCache misses every lookup and accepts every write.
type noopCache struct{}

func (noopCache) Get(context.Context, []valueobject.Product) (int64, error) {
	return 0, repository.ErrCacheMiss
}

func (noopCache) Put(context.Context, []valueobject.Product, int64) error { return nil }

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) dto.APIResponse[dto.BoxResponse] {
	t.Helper()
	var envelope dto.APIResponse[dto.BoxResponse]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}
