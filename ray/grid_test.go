package ray

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridCentresLight(t *testing.T) {
	tests := []struct {
		rows, cols int
		want       Point
	}{
		{5, 5, Point{2, 2}},
		{4, 8, Point{2, 4}},
		{1, 1, Point{0, 0}},
		{3, 10, Point{1, 5}},
	}
	for _, tt := range tests {
		g, err := NewGrid(tt.rows, tt.cols)
		require.NoError(t, err)
		assert.Equal(t, tt.want, g.Light())
		assert.Equal(t, LightSource(), g.Get(tt.want))
		assert.Equal(t, 1, g.Count(KindLightSource))
		assert.Equal(t, tt.rows*tt.cols-1, g.Count(KindEmpty))
	}
}

func TestNewGridRejectsBadSize(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := NewGrid(dims[0], dims[1])
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGrid(%d, %d) error = %v, want ErrInvalidSize", dims[0], dims[1], err)
		}
	}
}

func TestRelocateLight(t *testing.T) {
	g, err := NewGrid(5, 5)
	require.NoError(t, err)

	require.NoError(t, g.RelocateLight(Point{0, 4}))
	assert.Equal(t, Point{0, 4}, g.Light())
	assert.Equal(t, Empty(), g.Get(Point{2, 2}))
	assert.Equal(t, LightSource(), g.Get(Point{0, 4}))
	assert.Equal(t, 1, g.Count(KindLightSource))

	// Relocating onto itself keeps exactly one source
	require.NoError(t, g.RelocateLight(Point{0, 4}))
	assert.Equal(t, 1, g.Count(KindLightSource))
}

func TestRelocateLightOutOfBounds(t *testing.T) {
	g, err := NewGrid(3, 4)
	require.NoError(t, err)

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 4}, {3, 4}} {
		err := g.RelocateLight(p)
		assert.ErrorIs(t, err, ErrOutOfBounds, "%v", p)
		assert.Equal(t, Point{1, 2}, g.Light(), "light must not move")
	}
}

func TestPlaceOpaqueAndReset(t *testing.T) {
	g, err := NewGrid(4, 4)
	require.NoError(t, err)

	require.NoError(t, g.PlaceOpaque(Point{0, 0}))
	require.NoError(t, g.PlaceOpaque(g.Light()))
	assert.ErrorIs(t, g.PlaceOpaque(Point{4, 0}), ErrOutOfBounds)
	assert.Equal(t, Opaque(), g.Get(Point{0, 0}))
	assert.Equal(t, LightSource(), g.Get(g.Light()))

	g.Set(Point{1, 1}, Passage(East))
	g.Set(Point{3, 3}, Block(MaxBlockLevel))
	g.Reset()
	assert.Equal(t, 1, g.Count(KindLightSource))
	assert.Equal(t, Opaque(), g.Get(Point{0, 0}))
	assert.Equal(t, 14, g.Count(KindEmpty))
}

func TestRowView(t *testing.T) {
	g, err := NewGrid(2, 3)
	require.NoError(t, err)
	g.Set(Point{1, 0}, Block(2))

	row := g.Row(1)
	assert.Len(t, row, 3)
	assert.Equal(t, Block(2), row[0])
	assert.Equal(t, LightSource(), row[1])
}
