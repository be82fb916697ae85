package umesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smoke tests. The internals are already tested.
func TestFanMesh(t *testing.T) {
	square := Polygon{Points: []Point{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	}}

	mesh, err := FanMesh(square)
	require.NoError(t, err)
	assert.Equal(t, 4, mesh.Np())
	assert.Equal(t, 5, mesh.Ne())
	assert.Equal(t, 2, mesh.Nt())
	assert.NoError(t, Validate(mesh))

	_, err = FanMesh(square.Reverse())
	assert.Error(t, err)
}

func TestCircumcenter(t *testing.T) {
	t.Run("right triangle", func(t *testing.T) {
		center, err := Circumcenter(Point{X: 0, Y: 0}, Point{X: 2, Y: 0}, Point{X: 0, Y: 2})
		require.NoError(t, err)
		assert.InDelta(t, 1, center.X, 1e-12)
		assert.InDelta(t, 1, center.Y, 1e-12)
	})

	t.Run("collinear", func(t *testing.T) {
		_, err := Circumcenter(Point{X: 0, Y: 0}, Point{X: 1, Y: 1}, Point{X: 2, Y: 2})
		assert.Error(t, err)
	})
}

func TestOffcenter(t *testing.T) {
	t.Run("skinny triangle", func(t *testing.T) {
		off, err := Offcenter(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 0.5, Y: 10}, 0.5)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, off.X, 1e-12)
		assert.InDelta(t, 0.5, off.Y, 1e-12)
	})

	t.Run("clockwise triangle", func(t *testing.T) {
		_, err := Offcenter(Point{X: 0, Y: 0}, Point{X: 0.5, Y: 10}, Point{X: 1, Y: 0}, 0.5)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	mesh := NewMesh()
	a := mesh.AddNode(0, 0)
	b := mesh.AddNode(1, 0)
	require.NotEqual(t, NoEdge, mesh.AddEdge(a, b))
	assert.NoError(t, Validate(mesh))
	assert.Equal(t, OnPositiveSide, OrientedSide(mesh.Position(a), mesh.Position(b), Point{X: 0.5, Y: 1}))
}
