package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		p, err := NewProduct(20, 10, 30, 1.5)
		require.NoError(t, err)
		assert.Equal(t, 20.0, p.Width())
		assert.Equal(t, 10.0, p.Height())
		assert.Equal(t, 30.0, p.Length())
		assert.Equal(t, 1.5, p.Weight())
	})

	t.Run("dimension below minimum", func(t *testing.T) {
		_, err := NewProduct(0, 10, 30, 1.5)
		assert.ErrorIs(t, err, ErrDimensionOutOfRange)
	})

	t.Run("dimension above maximum", func(t *testing.T) {
		_, err := NewProduct(20, 1000.5, 30, 1.5)
		assert.ErrorIs(t, err, ErrDimensionOutOfRange)
	})

	t.Run("non-positive weight", func(t *testing.T) {
		_, err := NewProduct(20, 10, 30, 0)
		assert.ErrorIs(t, err, ErrWeightOutOfRange)
	})

	t.Run("weight above maximum", func(t *testing.T) {
		_, err := NewProduct(20, 10, 30, 1000.1)
		assert.ErrorIs(t, err, ErrWeightOutOfRange)
	})
}

func TestProductSortedDims(t *testing.T) {
	p, err := NewProduct(30, 10, 20, 1)
	require.NoError(t, err)

	assert.Equal(t, [3]float64{10, 20, 30}, p.SortedDims())

	// Any axis relabeling yields the same triple
	rotated, err := NewProduct(10, 30, 20, 1)
	require.NoError(t, err)
	assert.Equal(t, p.SortedDims(), rotated.SortedDims())
}

func TestProductVolume(t *testing.T) {
	p, err := NewProduct(2, 3, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, 24.0, p.Volume())
}
