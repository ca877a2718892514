package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometryPiecesAndEdges(t *testing.T) {
	g := CreateGeometry(10, 20, 100, 50)
	x, y, w, h := g.Pieces()
	assert.Equal(t, 10, x)
	assert.Equal(t, 20, y)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)
	assert.Equal(t, 110, g.Right())
	assert.Equal(t, 70, g.Bottom())
	assert.Equal(t, Point{X: 60, Y: 45}, g.Center())
}

func TestGeometryContains(t *testing.T) {
	g := CreateGeometry(0, 0, 100, 100)
	assert.True(t, g.Contains(Point{X: 0, Y: 0}))
	assert.True(t, g.Contains(Point{X: 99, Y: 99}))
	assert.False(t, g.Contains(Point{X: 100, Y: 0}))
	assert.False(t, g.Contains(Point{X: -1, Y: 0}))
}

func TestGeometryIntersectArea(t *testing.T) {
	a := CreateGeometry(0, 0, 100, 100)
	b := CreateGeometry(50, 50, 100, 100)
	assert.Equal(t, 2500, a.IntersectArea(b))

	c := CreateGeometry(200, 200, 10, 10)
	assert.Equal(t, 0, a.IntersectArea(c))
}

func TestIsInsideRect(t *testing.T) {
	g := CreateGeometry(0, 0, 10, 10)
	assert.True(t, IsInsideRect(Point{X: 5, Y: 5}, g))
	assert.False(t, IsInsideRect(Point{X: 50, Y: 50}, g))
}

func TestMaxMinInt(t *testing.T) {
	assert.Equal(t, 5, MaxInt(5, 3))
	assert.Equal(t, 3, MaxInt(1, 3))
	assert.Equal(t, 1, MinInt(1, 3))
	assert.Equal(t, 3, MinInt(5, 3))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, ClampInt(-5, 0, 10))
	assert.Equal(t, 10, ClampInt(15, 0, 10))
	assert.Equal(t, 5, ClampInt(5, 0, 10))
}

func TestClampFloat(t *testing.T) {
	assert.InDelta(t, 0.1, ClampFloat(0.01, 0.1, 0.9), 1e-9)
	assert.InDelta(t, 0.9, ClampFloat(0.99, 0.1, 0.9), 1e-9)
	assert.InDelta(t, 0.5, ClampFloat(0.5, 0.1, 0.9), 1e-9)
}
