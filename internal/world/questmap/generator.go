package questmap

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"chosenoffset.com/questmap/internal/core/geom"
	"chosenoffset.com/questmap/internal/core/pathing"
)

// ErrNoRoute means the start could not be connected to the boss.
var ErrNoRoute = errors.New("no route from start to boss")

// QuestMap is one generated, staged quest map.
type QuestMap struct {
	Seed   int64
	Width  int
	Height int
	Start  geom.Point
	End    geom.Point

	Paths       [][]geom.Point // Raw grid paths that were merged
	Transitions Transitions
	Graph       *Graph
	Reveal      *Reveal
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for generation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithPortraits sets where encounter portraits come from.
func WithPortraits(portraits PortraitProvider) Option {
	return func(g *Generator) { g.portraits = portraits }
}

// WithRand replaces the seeded random source, e.g. for replaying rolls.
func WithRand(rng Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// Generator produces quest maps from a Config.
type Generator struct {
	config    Config
	seed      int64
	rng       Rand
	portraits PortraitProvider
	logger    *slog.Logger
}

// NewGenerator creates a generator. The random source is seeded from
// config.ResolveSeed unless WithRand is given.
func NewGenerator(config Config, opts ...Option) *Generator {
	seed := config.ResolveSeed()
	g := &Generator{
		config: config,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed returns the seed the generator was created with
func (g *Generator) Seed() int64 {
	return g.seed
}

// Endpoints places the start in the middle of the bottom row and the boss
// in the top row, nudged sideways when needed so both share a parity class.
func Endpoints(width, height int) (start, end geom.Point) {
	start = geom.Pt(width/2, height-1)
	end = geom.Pt(width/2, 0)
	if pathing.SameParity(start, end) {
		return start, end
	}
	if end.X+1 < width {
		return start, end.Add(1, 0)
	}
	return start, end.Add(-1, 0)
}

// Generate carves the paths, builds the graph and stages it.
func (g *Generator) Generate() (*QuestMap, error) {
	if err := g.config.Validate(); err != nil {
		return nil, err
	}

	width, height := g.config.Width, g.config.Height
	start, end := Endpoints(width, height)
	grid := pathing.NewGrid(width, height, g.rng)

	main, err := grid.Find(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoRoute, err)
	}
	paths := [][]geom.Point{main}
	for i := 0; i < g.config.Detours; i++ {
		paths = append(paths, g.detour(grid, start, end)...)
	}

	table := MergePaths(paths...)
	graph, err := BuildGraph(start, end, table)
	if err != nil {
		g.logger.Error("quest graph build failed", "seed", g.seed, "err", err)
		return nil, err
	}

	if g.config.PruneDeadEnds {
		if removed := graph.PruneDeadEnds(); removed > 0 {
			g.logger.Debug("pruned dead ends", "removed", removed)
		}
	}
	if !containsNode(graph.Reachable(), graph.End) {
		return nil, fmt.Errorf("%w: boss at %v is not reachable from %v", ErrNoRoute, end, start)
	}

	reveal := NewScheduler(g.rng, g.portraits, g.config.Encounters).Schedule(graph)

	g.logger.Info("generated quest map",
		"seed", g.seed,
		"size", fmt.Sprintf("%dx%d", width, height),
		"paths", len(paths),
		"nodes", len(graph.Reachable()),
		"steps", reveal.Steps(),
		"encounters", len(reveal.Encounters()),
	)

	return &QuestMap{
		Seed:        g.seed,
		Width:       width,
		Height:      height,
		Start:       start,
		End:         end,
		Paths:       paths,
		Transitions: table,
		Graph:       graph,
		Reveal:      reveal,
	}, nil
}

// detour returns the two legs start -> waypoint -> end through a random
// waypoint, or nil when no usable waypoint turned up.
func (g *Generator) detour(grid *pathing.Grid, start, end geom.Point) [][]geom.Point {
	for attempt := 0; attempt < g.config.MaxDetourAttempts; attempt++ {
		via := geom.Pt(g.rng.Intn(grid.Width()), g.rng.Intn(grid.Height()))
		if via == start || via == end || !pathing.SameParity(via, start) {
			continue
		}

		in, err := grid.Find(start, via)
		if err != nil {
			g.logger.Warn("dropping detour leg", "via", via.Key(), "err", err)
			continue
		}
		out, err := grid.Find(via, end)
		if err != nil {
			g.logger.Warn("dropping detour leg", "via", via.Key(), "err", err)
			continue
		}
		g.logger.Debug("detour", "via", via.Key(), "in", len(in), "out", len(out))
		return [][]geom.Point{in, out}
	}
	g.logger.Warn("no detour waypoint found", "attempts", g.config.MaxDetourAttempts)
	return nil
}
