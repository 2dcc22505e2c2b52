package questmap

import "chosenoffset.com/questmap/internal/core/geom"

// Transitions maps each point to the points it is adjacent to on at least
// one merged path. Links are always recorded in both directions and each
// neighbour list keeps first-seen order.
type Transitions map[geom.Point][]geom.Point

// MergePaths builds the transition table of all paths.
func MergePaths(paths ...[]geom.Point) Transitions {
	t := make(Transitions)
	for _, path := range paths {
		t.AddPath(path)
	}
	return t
}

// AddPath links every consecutive pair of path.
func (t Transitions) AddPath(path []geom.Point) {
	for i := 1; i < len(path); i++ {
		t.Link(path[i-1], path[i])
	}
}

// Link records a <-> b. Self links are ignored.
func (t Transitions) Link(a, b geom.Point) {
	if a == b {
		return
	}
	t.add(a, b)
	t.add(b, a)
}

func (t Transitions) add(from, to geom.Point) {
	for _, existing := range t[from] {
		if existing == to {
			return
		}
	}
	t[from] = append(t[from], to)
}

// reaches reports whether end can be reached from start inside the table
// without stepping on a blocked point.
//
// A point that fails once fails for the rest of the query too, since the
// blocked set does not change while searching, so visited points are never
// unmarked.
func (t Transitions) reaches(start, end geom.Point, blocked map[geom.Point]bool) bool {
	if blocked[start] {
		return false
	}
	visited := map[geom.Point]bool{start: true}
	stack := []geom.Point{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == end {
			return true
		}
		for _, next := range t[current] {
			if visited[next] || blocked[next] {
				continue
			}
			visited[next] = true
			stack = append(stack, next)
		}
	}
	return false
}
