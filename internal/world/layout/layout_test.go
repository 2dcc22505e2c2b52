package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/questmap/internal/core/geom"
	"chosenoffset.com/questmap/internal/world/questmap"
)

func TestGridSize(t *testing.T) {
	w, h := GridSize(1280, 720, 48)
	assert.Equal(t, 26, w)
	assert.Equal(t, 15, h)

	w, h = GridSize(640, 480, 0)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestPosition(t *testing.T) {
	l := Layout{Spacing: 40, Margin: 20}
	x, y := l.Position(geom.Pt(0, 0))
	assert.Equal(t, 20.0, x)
	assert.Equal(t, 20.0, y)

	x, y = l.Position(geom.Pt(3, 2))
	assert.Equal(t, 140.0, x)
	assert.Equal(t, 100.0, y)
}

func TestNodeAt(t *testing.T) {
	a := &questmap.MapNode{Point: geom.Pt(1, 1)}
	b := &questmap.MapNode{Point: geom.Pt(2, 2)}
	c := &questmap.MapNode{Point: geom.Pt(3, 1)}
	l := Layout{Spacing: 40, Margin: 20}
	idx, err := NewIndex([]*questmap.MapNode{a, b, c}, l, 12)
	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())

	// a is centered at (60, 60)
	assert.Same(t, a, idx.NodeAt(60, 60))
	assert.Same(t, a, idx.NodeAt(68, 55))
	// inside a's box but outside its circle
	assert.Nil(t, idx.NodeAt(71, 71))
	// b is centered at (100, 100)
	assert.Same(t, b, idx.NodeAt(95, 104))
	assert.Same(t, c, idx.NodeAt(140, 60))
	assert.Nil(t, idx.NodeAt(0, 0))
}

func TestNodeAtPrefersClosestCenter(t *testing.T) {
	a := &questmap.MapNode{Point: geom.Pt(0, 0)}
	b := &questmap.MapNode{Point: geom.Pt(1, 1)}
	// circles overlap around the diagonal midpoint (5, 5)
	idx, err := NewIndex([]*questmap.MapNode{a, b}, Layout{Spacing: 10}, 12)
	require.NoError(t, err)

	assert.Same(t, a, idx.NodeAt(4, 4))
	assert.Same(t, b, idx.NodeAt(7, 7))
}

func TestNewIndexRejectsBadRadius(t *testing.T) {
	nodes := []*questmap.MapNode{{Point: geom.Pt(1, 1)}}
	for _, radius := range []float64{0, -4, math.NaN()} {
		idx, err := NewIndex(nodes, Layout{Spacing: 10}, radius)
		assert.ErrorIs(t, err, ErrInvalidRadius, "radius %v", radius)
		assert.Nil(t, idx)
	}
}
