// Package geom holds the integer grid coordinates shared by the search,
// the quest graph and everything that consumes a generated map.
package geom

import "strconv"

// Point is a tile coordinate on the quest grid.
// It is a comparable value and is used directly as a map key.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Key returns the canonical "x,y" form of the point.
func (p Point) Key() string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

// String implements fmt.Stringer
func (p Point) String() string {
	return "(" + p.Key() + ")"
}

// Equals reports whether both points have the same coordinates.
func (p Point) Equals(other Point) bool {
	return p == other
}

// Add returns the point shifted by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Parity returns the coordinate-sum parity class, 0 or 1.
// Diagonal moves never leave a parity class.
func (p Point) Parity() int {
	return ((p.X+p.Y)%2 + 2) % 2
}

// ManhattanDistance returns |dx| + |dy|.
func (p Point) ManhattanDistance(other Point) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
