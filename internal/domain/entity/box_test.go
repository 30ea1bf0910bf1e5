package entity

import (
	"testing"

	"github.com/hapkiduki/boxpick-go/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBox(t *testing.T) {
	t.Run("valid box without id", func(t *testing.T) {
		box, err := NewBox(40, 30, 20, 25)
		require.NoError(t, err)
		assert.Nil(t, box.ID)
		assert.Equal(t, 24000.0, box.Volume())
	})

	t.Run("valid box with id", func(t *testing.T) {
		box, err := NewBoxWithID(7, 40, 30, 20, 25)
		require.NoError(t, err)
		require.NotNil(t, box.ID)
		assert.Equal(t, int64(7), *box.ID)
	})

	t.Run("non-positive dimension", func(t *testing.T) {
		_, err := NewBox(0, 30, 20, 25)
		assert.ErrorIs(t, err, ErrInvalidBoxDimension)
	})

	t.Run("non-positive max weight", func(t *testing.T) {
		_, err := NewBox(40, 30, 20, 0)
		assert.ErrorIs(t, err, ErrInvalidBoxMaxWeight)
	})
}

func TestBoxSortedDims(t *testing.T) {
	box, err := NewBox(40, 20, 30, 25)
	require.NoError(t, err)
	assert.Equal(t, [3]float64{20, 30, 40}, box.SortedDims())
}

func TestBoxCanHold(t *testing.T) {
	box, err := NewBox(40, 20, 30, 25)
	require.NoError(t, err)

	t.Run("fits regardless of orientation", func(t *testing.T) {
		p, err := valueobject.NewProduct(30, 40, 20, 1)
		require.NoError(t, err)
		assert.True(t, box.CanHold(p))
	})

	t.Run("too large on one axis", func(t *testing.T) {
		p, err := valueobject.NewProduct(41, 10, 10, 1)
		require.NoError(t, err)
		assert.False(t, box.CanHold(p))
	})

	t.Run("each product dim must fit its own box dim", func(t *testing.T) {
		// 25x25x25 has volume room in 40x20x30 on paper, but the middle
		// sorted dimension exceeds the box's.
		p, err := valueobject.NewProduct(25, 25, 25, 1)
		require.NoError(t, err)
		assert.False(t, box.CanHold(p))
	})
}
