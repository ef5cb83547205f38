package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointLerp(t *testing.T) {
	p := Point{X: 0, Y: 10}
	q := Point{X: 100, Y: 20}

	assert.Equal(t, p, p.Lerp(q, 0))
	assert.Equal(t, q, p.Lerp(q, 1))
	assert.Equal(t, Point{X: 50, Y: 15}, p.Lerp(q, 0.5))
}

func TestRectEdges(t *testing.T) {
	r := Rect{Origin: Point{X: 10, Y: 20}, Size: Size{Width: 30, Height: 40}}

	assert.Equal(t, 40.0, r.MaxX())
	assert.Equal(t, 60.0, r.MaxY())

	moved := r.Offset(5, -5)
	assert.Equal(t, Point{X: 15, Y: 15}, moved.Origin)
	assert.Equal(t, r.Size, moved.Size)
}

func TestRectIntersects(t *testing.T) {
	a := Rect{Origin: Point{X: 0, Y: 0}, Size: Size{Width: 10, Height: 10}}
	b := Rect{Origin: Point{X: 5, Y: 5}, Size: Size{Width: 10, Height: 10}}
	c := Rect{Origin: Point{X: 10, Y: 0}, Size: Size{Width: 10, Height: 10}}

	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c), "touching edges do not overlap")
}

func TestSizeIsZero(t *testing.T) {
	assert.True(t, Size{}.IsZero())
	assert.False(t, Size{Width: 1}.IsZero())
}
