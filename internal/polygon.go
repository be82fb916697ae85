package internal

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Polygon is a closed chain of points; the last point connects back to the
// first.
type Polygon struct {
	Points []Point
}

// Ring converts the polygon to a closed orb ring.
func (poly Polygon) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(poly.Points)+1)
	for _, p := range poly.Points {
		ring = append(ring, p.Orb())
	}
	if len(poly.Points) > 0 {
		ring = append(ring, poly.Points[0].Orb())
	}
	return ring
}

func (poly Polygon) IsCCW() bool {
	return len(poly.Points) >= 3 && poly.Ring().Orientation() == orb.CCW
}

// Area is the unsigned area enclosed by the polygon.
func (poly Polygon) Area() float64 {
	return planar.Area(orb.Polygon{poly.Ring()})
}

func (poly Polygon) Reverse() Polygon {
	newPoly := Polygon{}
	for i := len(poly.Points) - 1; i >= 0; i-- {
		newPoly.Points = append(newPoly.Points, poly.Points[i])
	}
	return newPoly
}

// IsStrictlyConvex reports whether every corner turns left, using the exact
// orientation test.
func (poly Polygon) IsStrictlyConvex() bool {
	n := len(poly.Points)
	if n < 3 {
		return false
	}
	for i := range poly.Points {
		a := poly.Points[CircularIndex(i-1, n)]
		b := poly.Points[i]
		c := poly.Points[CircularIndex(i+1, n)]
		if OrientedSide(a, b, c) != OnPositiveSide {
			return false
		}
	}
	return true
}

// FanMesh triangulates a strictly convex, counterclockwise polygon as a fan
// around its first point, using only the public mesh operators. Nodes are
// created in polygon order, so node i is at poly.Points[i].
func FanMesh(poly Polygon) (*Mesh, error) {
	if !poly.IsStrictlyConvex() {
		return nil, errors.Errorf("polygon with %d points is not strictly convex and counterclockwise", len(poly.Points))
	}

	m := NewMesh()
	n := len(poly.Points)
	nodes := make([]NodeID, n)
	for i, p := range poly.Points {
		nodes[i] = m.AddNode(p.X, p.Y)
	}

	// sides[i] runs from point i to point i+1
	sides := make([]EdgeID, n)
	for i := range nodes {
		if sides[i] = m.AddEdge(nodes[i], nodes[CircularIndex(i+1, n)]); sides[i] == NoEdge {
			return nil, errors.Errorf("could not add side %d", i)
		}
	}

	// spokes[k] runs from point 0 to point k. The sides stand in for the two
	// spokes that coincide with them.
	spokes := make([]HalfEdgeID, n)
	spokes[1] = sides[0].HalfEdge(0)
	spokes[n-1] = sides[n-1].HalfEdge(1)
	for k := 2; k < n-1; k++ {
		e := m.AddEdge(nodes[0], nodes[k])
		if e == NoEdge {
			return nil, errors.Errorf("could not add diagonal to point %d", k)
		}
		spokes[k] = e.HalfEdge(0)
	}

	for k := 1; k < n-1; k++ {
		t := m.AddElement(spokes[k], sides[k].HalfEdge(0), spokes[k+1].Twin())
		if t == NoElement {
			return nil, errors.Errorf("could not add element %d", k)
		}
	}
	return m, nil
}
