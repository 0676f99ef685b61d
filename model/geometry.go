package model

// Rect is an axis-aligned rectangle in raster pixel coordinates.
// X and Y locate the top-left corner; W and H are the extent in pixels.
// The right and bottom edges are exclusive, matching image.Rectangle.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle from a top-left corner and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromCorners creates a rectangle spanning two corner points.
// The corners may be given in any order.
func RectFromCorners(x1, y1, x2, y2 int) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Left returns the left edge X coordinate.
func (r Rect) Left() int {
	return r.X
}

// Right returns the exclusive right edge X coordinate.
func (r Rect) Right() int {
	return r.X + r.W
}

// Top returns the top edge Y coordinate.
func (r Rect) Top() int {
	return r.Y
}

// Bottom returns the exclusive bottom edge Y coordinate.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Area returns the area of the rectangle in pixels.
func (r Rect) Area() int {
	if !r.IsValid() {
		return 0
	}
	return r.W * r.H
}

// IsValid returns true if the rectangle has positive dimensions.
func (r Rect) IsValid() bool {
	return r.W > 0 && r.H > 0
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains checks if a pixel coordinate lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left() && x < r.Right() &&
		y >= r.Top() && y < r.Bottom()
}

// Intersects checks if two rectangles overlap by at least one pixel.
func (r Rect) Intersects(other Rect) bool {
	return r.Left() < other.Right() && other.Left() < r.Right() &&
		r.Top() < other.Bottom() && other.Top() < r.Bottom()
}

// Intersection returns the overlapping region of two rectangles, or the
// zero Rect when they do not intersect.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := max(r.Left(), other.Left())
	y := max(r.Top(), other.Top())
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := min(r.Left(), other.Left())
	y := min(r.Top(), other.Top())
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// Expand grows the rectangle outward by a margin on all sides.
// A negative margin shrinks it.
func (r Rect) Expand(margin int) Rect {
	return Rect{
		X: r.X - margin,
		Y: r.Y - margin,
		W: r.W + 2*margin,
		H: r.H + 2*margin,
	}
}

// Clamp clips the rectangle to the bounds [0, width) x [0, height).
// The result may be empty when the rectangle lies entirely outside.
func (r Rect) Clamp(width, height int) Rect {
	x := max(r.Left(), 0)
	y := max(r.Top(), 0)
	right := min(r.Right(), width)
	bottom := min(r.Bottom(), height)
	if right < x {
		right = x
	}
	if bottom < y {
		bottom = y
	}
	return Rect{X: x, Y: y, W: right - x, H: bottom - y}
}

// IoU returns the intersection-over-union ratio of two rectangles,
// a value in [0, 1]. Two identical rectangles score 1.
func (r Rect) IoU(other Rect) float64 {
	inter := r.Intersection(other).Area()
	if inter == 0 {
		return 0
	}
	union := r.Area() + other.Area() - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// ContainmentRatio returns the fraction of this rectangle's area that
// lies within other, a value in [0, 1].
func (r Rect) ContainmentRatio(other Rect) float64 {
	area := r.Area()
	if area == 0 {
		return 0
	}
	return float64(r.Intersection(other).Area()) / float64(area)
}
