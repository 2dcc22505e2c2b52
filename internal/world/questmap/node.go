// Package questmap turns grid paths into a branching quest map and stages
// it for progressive reveal.
//
// The flow is: carve one or more paths on a pathing.Grid, merge them into
// Transitions, build a Graph with BuildGraph, then hand the graph to a
// Scheduler to get the ordered node and edge batches. Generator wires the
// whole sequence together from a Config.
package questmap

import (
	"chosenoffset.com/questmap/internal/core/geom"
	"chosenoffset.com/questmap/internal/world/portrait"
)

// Unresolved marks a node whose encounter distance is not known yet.
const Unresolved = -1

// MapNode is one waypoint of the quest map. A Graph holds exactly one
// MapNode per coordinate and every link points at that shared instance.
type MapNode struct {
	geom.Point

	// DistanceSinceEncounter counts steps since the last encounter on the
	// route that reached this node. 0 means the node is an encounter,
	// Unresolved means staging has not reached it.
	DistanceSinceEncounter int
	IsBoss                 bool
	Portrait               *portrait.Handle

	Parents  []*MapNode
	Children []*MapNode
}

func newMapNode(p geom.Point) *MapNode {
	return &MapNode{Point: p, DistanceSinceEncounter: Unresolved}
}

// IsEncounter reports whether the node hosts an encounter
func (n *MapNode) IsEncounter() bool {
	return n.DistanceSinceEncounter == 0
}

// addChild links n -> child. Linking the same pair twice is a no-op.
func (n *MapNode) addChild(child *MapNode) {
	if !containsNode(n.Children, child) {
		n.Children = append(n.Children, child)
	}
	if !containsNode(child.Parents, n) {
		child.Parents = append(child.Parents, n)
	}
}

// removeChild drops the n -> child link in both directions.
func (n *MapNode) removeChild(child *MapNode) {
	n.Children = withoutNode(n.Children, child)
	child.Parents = withoutNode(child.Parents, n)
}

// IsAncestorOf reports whether n can be reached by walking up the parent
// links of other. A node is not its own ancestor.
func (n *MapNode) IsAncestorOf(other *MapNode) bool {
	seen := make(map[*MapNode]bool)
	stack := append([]*MapNode(nil), other.Parents...)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top == n {
			return true
		}
		if seen[top] {
			continue
		}
		seen[top] = true
		stack = append(stack, top.Parents...)
	}
	return false
}

// ancestors returns the coordinates of every transitive parent of n.
func (n *MapNode) ancestors() map[geom.Point]bool {
	out := make(map[geom.Point]bool)
	stack := append([]*MapNode(nil), n.Parents...)
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if out[top.Point] {
			continue
		}
		out[top.Point] = true
		stack = append(stack, top.Parents...)
	}
	return out
}

func containsNode(list []*MapNode, n *MapNode) bool {
	for _, m := range list {
		if m == n {
			return true
		}
	}
	return false
}

func withoutNode(list []*MapNode, n *MapNode) []*MapNode {
	out := list[:0]
	for _, m := range list {
		if m != n {
			out = append(out, m)
		}
	}
	return out
}

// Segment is an undirected edge between two map nodes.
type Segment struct {
	A, B *MapNode
}

// SegmentKey identifies a segment regardless of direction.
type SegmentKey [2]geom.Point

// Key returns the direction-independent identity of s.
func (s Segment) Key() SegmentKey {
	a, b := s.A.Point, s.B.Point
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}
	return SegmentKey{a, b}
}

// Same reports whether both segments join the same pair of nodes.
func (s Segment) Same(other Segment) bool {
	return s.Key() == other.Key()
}

// String implements fmt.Stringer
func (s Segment) String() string {
	return s.A.Point.String() + "-" + s.B.Point.String()
}
