package grid

import (
	"math"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
)

// Point converts a Position to a gruid point
func (p Position) Point() gruid.Point {
	return gruid.Point{X: p.X, Y: p.Y}
}

// Manhattan returns |dx| + |dy|
func Manhattan(a, b Position) int {
	return paths.DistanceManhattan(a.Point(), b.Point())
}

// Chebyshev returns max(|dx|, |dy|)
func Chebyshev(a, b Position) int {
	return paths.DistanceChebyshev(a.Point(), b.Point())
}

// PythagorasSquared returns dx*dx + dy*dy
func PythagorasSquared(a, b Position) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Pythagoras returns the Euclidean distance
func Pythagoras(a, b Position) float64 {
	return math.Sqrt(float64(PythagorasSquared(a, b)))
}

// Line returns the cells of a Bresenham line from (x0, y0) to (x1, y1), both ends included
func Line(x0, y0, x1, y1 int) []Position {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	points := make([]Position, 0, max(dx, -dy)+1)
	err := dx + dy
	x, y := x0, y0
	for {
		points = append(points, Position{X: x, Y: y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return points
}
