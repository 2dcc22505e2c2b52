// Package pathing implements the weighted grid the quest map paths are
// carved from. Vertices carry a random traversal cost and only connect to
// their diagonal neighbours, so a grid splits into two parity classes that
// never touch.
package pathing

import (
	"errors"
	"fmt"
	"math"

	"chosenoffset.com/questmap/internal/core/geom"
	"chosenoffset.com/questmap/internal/core/pqueue"
)

// ErrIncompletePath is returned by Find when the end could not be reached.
// The accompanying path is the best-effort backtrace and does not end at
// the requested end point.
var ErrIncompletePath = errors.New("incomplete path")

// Rand is the random source used for vertex costs.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// diagonals is the fixed neighbour order. It decides tie-breaks in Find.
var diagonals = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// Vertex is a grid point with its traversal cost.
type Vertex struct {
	geom.Point
	Cost float64
}

// Grid is a fixed width x height field of weighted vertices.
type Grid struct {
	width  int
	height int
	costs  []float64 // row-major, y*width+x
}

// NewGrid builds a grid whose vertex costs are drawn uniformly from
// [0, (width+height)/10).
func NewGrid(width, height int, rng Rand) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	maxCost := float64(width+height) / 10
	costs := make([]float64, width*height)
	for i := range costs {
		costs[i] = rng.Float64() * maxCost
	}
	return &Grid{width: width, height: height, costs: costs}
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Vertex returns the vertex at p.
func (g *Grid) Vertex(p geom.Point) (Vertex, bool) {
	if !g.InBounds(p) {
		return Vertex{}, false
	}
	return Vertex{Point: p, Cost: g.costs[p.Y*g.width+p.X]}, true
}

// Neighbors returns the in-bounds diagonal neighbours of p.
func (g *Grid) Neighbors(p geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(diagonals))
	for _, d := range diagonals {
		n := p.Add(d[0], d[1])
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// SameParity reports whether a path between a and b can exist at all.
func SameParity(a, b geom.Point) bool {
	return a.Parity() == b.Parity()
}

// heuristic is the Manhattan distance scaled by 1/sqrt(2). It is only
// added to the queue priority, never stored as cost.
func heuristic(from, to geom.Point) float64 {
	return float64(from.ManhattanDistance(to)) / math.Sqrt2
}

// Find runs an A* search from start to end and returns the path, both
// endpoints included. Entering a vertex costs that vertex's own cost.
//
// When the frontier runs dry before end is popped the backtrace from the
// last expanded vertex is returned together with ErrIncompletePath.
func (g *Grid) Find(start, end geom.Point) ([]geom.Point, error) {
	if !g.InBounds(start) || !g.InBounds(end) {
		return []geom.Point{start}, fmt.Errorf("%w: %v -> %v outside %dx%d grid",
			ErrIncompletePath, start, end, g.width, g.height)
	}

	frontier := pqueue.New[geom.Point]()
	frontier.Insert(start, 0)
	costSoFar := map[geom.Point]float64{start: 0}
	origin := make(map[geom.Point]geom.Point)

	current := start
	reached := false
	for {
		next, ok := frontier.Dequeue()
		if !ok {
			break
		}
		current = next
		if current == end {
			reached = true
			break
		}

		for _, neighbor := range g.Neighbors(current) {
			candidate := costSoFar[current] + g.costs[neighbor.Y*g.width+neighbor.X]
			if known, seen := costSoFar[neighbor]; !seen || candidate < known {
				costSoFar[neighbor] = candidate
				origin[neighbor] = current
				frontier.Insert(neighbor, candidate+heuristic(neighbor, end))
			}
		}
	}

	path := backtrace(origin, current, start)
	if !reached {
		return path, fmt.Errorf("%w: %v -> %v stopped at %v", ErrIncompletePath, start, end, current)
	}
	return path, nil
}

// backtrace follows origin links from current back to start and returns
// the points in start-to-current order.
func backtrace(origin map[geom.Point]geom.Point, current, start geom.Point) []geom.Point {
	path := []geom.Point{current}
	for current != start {
		previous, exists := origin[current]
		if !exists {
			break
		}
		path = append(path, previous)
		current = previous
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
