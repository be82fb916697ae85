package internal

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Points are plain values. Nodes store their own copy, so a caller can never
// move a node by mutating a point it passed in.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{s * p.X, s * p.Y}
}

func (p Point) Midpoint(q Point) Point {
	return Point{0.5 * (p.X + q.X), 0.5 * (p.Y + q.Y)}
}

func (p Point) DistanceSquared(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Dot product of the two points treated as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

func PointFromOrb(p orb.Point) Point {
	return Point{p.X(), p.Y()}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
