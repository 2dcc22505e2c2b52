package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointKey(t *testing.T) {
	assert.Equal(t, "3,-4", Pt(3, -4).Key())
	assert.Equal(t, "(0,0)", Pt(0, 0).String())
	assert.NotEqual(t, Pt(1, 12).Key(), Pt(11, 2).Key())
}

func TestPointEquals(t *testing.T) {
	a := Pt(2, 5)
	assert.True(t, a.Equals(Point{X: 2, Y: 5}))
	assert.False(t, a.Equals(Pt(5, 2)))

	seen := map[Point]bool{a: true}
	assert.True(t, seen[Pt(2, 5)])
}

func TestPointParity(t *testing.T) {
	tests := []struct {
		p    Point
		want int
	}{
		{Pt(0, 0), 0},
		{Pt(1, 0), 1},
		{Pt(3, 5), 0},
		{Pt(-1, 0), 1},
		{Pt(-3, -4), 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.Parity(), "parity of %v", tt.p)
	}

	// diagonal steps stay in the same class
	p := Pt(4, 7)
	for _, d := range [][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		assert.Equal(t, p.Parity(), p.Add(d[0], d[1]).Parity())
	}
}

func TestPointManhattanDistance(t *testing.T) {
	assert.Equal(t, 0, Pt(1, 1).ManhattanDistance(Pt(1, 1)))
	assert.Equal(t, 7, Pt(0, 0).ManhattanDistance(Pt(3, -4)))
	assert.Equal(t, 7, Pt(3, -4).ManhattanDistance(Pt(0, 0)))
}
