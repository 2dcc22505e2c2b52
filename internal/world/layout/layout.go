// Package layout places quest map nodes on screen and finds the node under
// a cursor.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"

	"chosenoffset.com/questmap/internal/core/geom"
	"chosenoffset.com/questmap/internal/world/questmap"
)

// ErrInvalidRadius is returned by NewIndex for a radius that is not positive.
var ErrInvalidRadius = errors.New("node radius must be positive")

// GridSize returns how many grid columns and rows fit in a viewport when
// nodes are spaced the given number of pixels apart.
func GridSize(viewW, viewH int, spacing float64) (w, h int) {
	if spacing <= 0 {
		return 0, 0
	}
	return int(float64(viewW) / spacing), int(float64(viewH) / spacing)
}

// Layout maps grid coordinates to pixel positions
type Layout struct {
	Spacing float64 // Pixels between neighboring columns and rows
	Margin  float64 // Offset of grid (0,0) from the top-left corner
}

// Position returns the pixel center of a grid point.
func (l Layout) Position(p geom.Point) (x, y float64) {
	return l.Margin + float64(p.X)*l.Spacing, l.Margin + float64(p.Y)*l.Spacing
}

// nodeEntry wraps a node for R-tree storage
type nodeEntry struct {
	node   *questmap.MapNode
	x, y   float64
	bounds rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.bounds
}

// Index answers "which node is under this pixel" for a laid out map.
type Index struct {
	tree   *rtreego.Rtree
	radius float64
}

// NewIndex indexes nodes as circles of the given pixel radius.
func NewIndex(nodes []*questmap.MapNode, layout Layout, radius float64) (*Index, error) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRadius, radius)
	}
	tree := rtreego.NewTree(2, 4, 16)

	for _, n := range nodes {
		x, y := layout.Position(n.Point)
		bbox, err := rtreego.NewRect(
			rtreego.Point{x - radius, y - radius},
			[]float64{2 * radius, 2 * radius},
		)
		if err != nil {
			return nil, fmt.Errorf("indexing node %v: %w", n.Point, err)
		}
		tree.Insert(&nodeEntry{node: n, x: x, y: y, bounds: bbox})
	}

	return &Index{tree: tree, radius: radius}, nil
}

// Len returns the number of indexed nodes
func (i *Index) Len() int {
	return i.tree.Size()
}

// NodeAt returns the node whose circle contains (x, y), preferring the
// closest center when circles overlap. It returns nil on a miss.
func (i *Index) NodeAt(x, y float64) *questmap.MapNode {
	cursor, err := rtreego.NewRect(rtreego.Point{x, y}, []float64{1e-9, 1e-9})
	if err != nil {
		return nil
	}

	var best *questmap.MapNode
	bestDist := math.Inf(1)
	for _, item := range i.tree.SearchIntersect(cursor) {
		entry := item.(*nodeEntry)
		d := math.Hypot(entry.x-x, entry.y-y)
		if d <= i.radius && d < bestDist {
			best, bestDist = entry.node, d
		}
	}
	return best
}
