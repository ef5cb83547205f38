// Package geom provides the small geometry vocabulary shared by the
// presentation coordinator and host adapters. All values are in abstract
// host units (pixels for a desktop host, cells for a terminal host).
package geom

// Point is a 2D coordinate with the origin at the host's top-left corner.
type Point struct {
	X float64
	Y float64
}

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Size holds rectangular dimensions.
type Size struct {
	Width  float64
	Height float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Origin Point
	Size   Size
}

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// Offset returns a copy of r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.Origin.X += dx
	r.Origin.Y += dy
	return r
}

// Intersects reports whether r and o overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.Origin.X < o.MaxX() && o.Origin.X < r.MaxX() &&
		r.Origin.Y < o.MaxY() && o.Origin.Y < r.MaxY()
}

// Insets describes reserved space along each host edge (status bars,
// panels, notches) that banners must not cover.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}
