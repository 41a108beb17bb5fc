package grid

// Rect is an axis-aligned room rectangle. X2/Y2 are exclusive of the
// wall ring: a room drawn from a Rect fills X1+1..X2 and Y1+1..Y2.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect creates a rectangle from its top-left corner and size
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Width returns X2 - X1
func (r Rect) Width() int {
	return abs(r.X2 - r.X1)
}

// Height returns Y2 - Y1
func (r Rect) Height() int {
	return abs(r.Y2 - r.Y1)
}

// Intersect returns true if the rectangles overlap or touch
func (r Rect) Intersect(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 && r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Center returns the middle cell of the rectangle
func (r Rect) Center() Position {
	return Position{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Contains returns true if (x, y) lies within X1..X2, Y1..Y2 inclusive
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
