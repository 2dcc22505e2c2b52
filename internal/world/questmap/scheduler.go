package questmap

import (
	"chosenoffset.com/questmap/internal/core/geom"
	"chosenoffset.com/questmap/internal/core/pathing"
	"chosenoffset.com/questmap/internal/world/portrait"
)

// Rand is the random source for costs, detours, and encounter rolls.
// *math/rand.Rand satisfies it.
type Rand = pathing.Rand

// PortraitProvider hands out encounter portraits. *portrait.Provider
// satisfies it.
type PortraitProvider interface {
	Portrait() *portrait.Handle
}

// EncounterChance is the linear encounter probability
// Step*distance + Base, where distance is the parent's distance since the
// last encounter.
type EncounterChance struct {
	Base float64 `yaml:"base"`
	Step float64 `yaml:"step"`
}

// DefaultEncounterChance makes every step without an encounter 10% more
// likely to end in one.
var DefaultEncounterChance = EncounterChance{Base: 0.1, Step: 0.1}

// Probability returns the chance that a child of a node at distance d is
// an encounter.
func (c EncounterChance) Probability(d int) float64 {
	return c.Step*float64(d) + c.Base
}

// Reveal is a staged quest map. NodeBatches[i] and EdgeBatches[i] are
// revealed together at step i.
type Reveal struct {
	NodeBatches [][]*MapNode
	EdgeBatches [][]Segment
}

// Steps returns the number of batches.
func (r *Reveal) Steps() int {
	return len(r.NodeBatches)
}

// NodeStep returns the batch index holding the node at p.
func (r *Reveal) NodeStep(p geom.Point) (int, bool) {
	for i, batch := range r.NodeBatches {
		for _, n := range batch {
			if n.Point == p {
				return i, true
			}
		}
	}
	return 0, false
}

// Encounters returns every staged encounter node in reveal order. The boss
// node is included.
func (r *Reveal) Encounters() []*MapNode {
	var out []*MapNode
	for _, batch := range r.NodeBatches {
		for _, n := range batch {
			if n.IsEncounter() {
				out = append(out, n)
			}
		}
	}
	return out
}

// Scheduler levels a quest graph into reveal batches and places
// encounters on the way.
type Scheduler struct {
	rng       Rand
	portraits PortraitProvider
	chance    EncounterChance
}

// NewScheduler creates a scheduler. portraits may be nil, in which case no
// portraits are attached.
func NewScheduler(rng Rand, portraits PortraitProvider, chance EncounterChance) *Scheduler {
	return &Scheduler{rng: rng, portraits: portraits, chance: chance}
}

func (s *Scheduler) portrait() *portrait.Handle {
	if s.portraits == nil {
		return nil
	}
	return s.portraits.Portrait()
}

// Schedule stages g breadth-first from its start node.
//
// Every reachable node lands in exactly one node batch, one step after the
// parent that first discovered it, and every edge between reachable nodes
// lands in exactly one edge batch. The graph must be acyclic, as built by
// BuildGraph.
func (s *Scheduler) Schedule(g *Graph) *Reveal {
	start, end := g.Start, g.End
	start.DistanceSinceEncounter = 1
	end.IsBoss = true
	end.DistanceSinceEncounter = 0
	end.Portrait = s.portrait()

	r := &Reveal{
		NodeBatches: [][]*MapNode{{start}},
		EdgeBatches: [][]Segment{{}},
	}
	staged := map[*MapNode]bool{start: true}
	stagedEdges := make(map[SegmentKey]bool)

	previous := r.NodeBatches[0]
	for {
		var nodes []*MapNode
		var edges []Segment

		for _, node := range previous {
			for _, child := range node.Children {
				if !staged[child] {
					staged[child] = true
					nodes = append(nodes, child)
				}

				seg := Segment{A: node, B: child}
				if key := seg.Key(); !stagedEdges[key] {
					stagedEdges[key] = true
					edges = append(edges, seg)
				}

				s.assignEncounter(node, child)
			}
		}

		if len(nodes) == 0 && len(edges) == 0 {
			return r
		}
		r.NodeBatches = append(r.NodeBatches, nodes)
		r.EdgeBatches = append(r.EdgeBatches, edges)
		previous = nodes
	}
}

// assignEncounter rolls the child's encounter when it has not been
// resolved yet or parent offers a shorter gap.
func (s *Scheduler) assignEncounter(parent, child *MapNode) {
	next := parent.DistanceSinceEncounter + 1
	if child.DistanceSinceEncounter != Unresolved && next >= child.DistanceSinceEncounter {
		return
	}

	if s.rng.Float64() < s.chance.Probability(parent.DistanceSinceEncounter) {
		child.DistanceSinceEncounter = 0
		child.Portrait = s.portrait()
		return
	}
	child.DistanceSinceEncounter = max(next, 1)
}
