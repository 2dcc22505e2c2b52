package questmap

import (
	"errors"
	"fmt"

	"chosenoffset.com/questmap/internal/core/geom"
)

// ErrInconsistentTransitions means the transition table disagrees with
// itself or with the nodes built from it. The graph cannot be trusted.
var ErrInconsistentTransitions = errors.New("inconsistent transition table")

// Graph is the quest map: a DAG rooted at Start that funnels into End.
type Graph struct {
	Start *MapNode
	End   *MapNode

	// Nodes is the registry of every node ever created for this graph,
	// including neighbours that were rejected and nodes unlinked by
	// PruneDeadEnds. Use Reachable for the nodes that make up the map.
	Nodes map[geom.Point]*MapNode
}

// Node returns the node registered for p
func (g *Graph) Node(p geom.Point) (*MapNode, bool) {
	n, ok := g.Nodes[p]
	return n, ok
}

func (g *Graph) node(p geom.Point) *MapNode {
	n, ok := g.Nodes[p]
	if !ok {
		n = newMapNode(p)
		g.Nodes[p] = n
	}
	return n
}

// BuildGraph turns a transition table into a quest graph.
//
// Nodes are expanded breadth-first from start. A neighbour becomes a child
// of the node being expanded only when
//   - it is not that node or one of its ancestors, and
//   - it can still reach end in the table without passing through that
//     node or any of its ancestors.
//
// end is never expanded. The result is acyclic and every linked node has a
// route to end inside the transition table.
func BuildGraph(start, end geom.Point, t Transitions) (*Graph, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	g := &Graph{Nodes: make(map[geom.Point]*MapNode)}
	g.Start = g.node(start)
	g.End = g.node(end)
	if start == end {
		return g, nil
	}

	queue := []geom.Point{start}
	queued := map[geom.Point]bool{start: true}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		current, ok := g.Nodes[p]
		if !ok {
			return nil, fmt.Errorf("%w: %v was queued without a node", ErrInconsistentTransitions, p)
		}

		// current's parents cannot change while it is expanded, so the
		// blocked set is computed once.
		blocked := current.ancestors()
		blocked[p] = true

		for _, np := range t[p] {
			neighbor := g.node(np)
			if blocked[np] {
				continue
			}
			if !t.reaches(np, end, blocked) {
				continue
			}

			current.addChild(neighbor)
			if np != end && !queued[np] {
				queued[np] = true
				queue = append(queue, np)
			}
		}
	}
	return g, nil
}

// validate checks that every link is recorded in both directions.
func (t Transitions) validate() error {
	for from, neighbors := range t {
		for _, to := range neighbors {
			if !containsPoint(t[to], from) {
				return fmt.Errorf("%w: %v -> %v has no reverse link", ErrInconsistentTransitions, from, to)
			}
		}
	}
	return nil
}

func containsPoint(list []geom.Point, p geom.Point) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

// Reachable returns the nodes reachable from Start in breadth-first order.
func (g *Graph) Reachable() []*MapNode {
	if g.Start == nil {
		return nil
	}
	seen := map[*MapNode]bool{g.Start: true}
	order := []*MapNode{g.Start}
	for i := 0; i < len(order); i++ {
		for _, child := range order[i].Children {
			if !seen[child] {
				seen[child] = true
				order = append(order, child)
			}
		}
	}
	return order
}

// PruneDeadEnds unlinks reachable nodes that have no children, other than
// Start and End, until none are left. Afterwards every reachable node has
// a directed route to End. Unlinked nodes stay in Nodes. It returns the
// number of nodes unlinked.
func (g *Graph) PruneDeadEnds() int {
	removed := 0
	for {
		var dead []*MapNode
		for _, n := range g.Reachable() {
			if n != g.Start && n != g.End && len(n.Children) == 0 {
				dead = append(dead, n)
			}
		}
		if len(dead) == 0 {
			return removed
		}
		for _, n := range dead {
			for _, parent := range append([]*MapNode(nil), n.Parents...) {
				parent.removeChild(n)
			}
			removed++
		}
	}
}
