// Package render provides the cell-grid frame buffer, its write
// primitives and the diff pass that feeds the terminal writer.
package render

// Rect is a rectangular region in terminal-cell coordinates. Width and
// Height are never negative; operations that shrink a rect saturate at
// zero instead of underflowing.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect builds a rect, clamping negative dimensions to zero
func NewRect(x, y, w, h int) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Area returns the number of cells the rect covers
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Empty reports whether the rect covers no cells
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Right returns the first column past the rect
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the first row past the rect
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Inset returns the rect shrunk by margin cells on all sides,
// collapsing to an empty rect centered in the original when the margin
// exceeds half the size.
func (r Rect) Inset(margin int) Rect {
	if margin < 0 {
		margin = 0
	}
	w := r.Width - 2*margin
	h := r.Height - 2*margin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X + margin, Y: r.Y + margin, Width: w, Height: h}
}

// Contains reports whether the point lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp returns the point moved to the nearest position inside the
// rect. An empty rect clamps everything to its origin.
func (r Rect) Clamp(x, y int) (int, int) {
	if x < r.X {
		x = r.X
	}
	if x >= r.Right() {
		x = r.Right() - 1
	}
	if y < r.Y {
		y = r.Y
	}
	if y >= r.Bottom() {
		y = r.Bottom() - 1
	}
	if x < r.X {
		x = r.X
	}
	if y < r.Y {
		y = r.Y
	}
	return x, y
}

// Intersect returns the overlap of two rects, empty when disjoint
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.X, other.X)
	y1 := max(r.Y, other.Y)
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{X: x1, Y: y1}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
