package internal

import (
	"math"

	"github.com/paulmach/orb"
)

// BoundingBox is the smallest axis-aligned box containing every live node.
// ok is false for a mesh without nodes.
func (m *Mesh) BoundingBox() (bound orb.Bound, ok bool) {
	for i := range m.nodes {
		if !m.nodes[i].alive {
			continue
		}
		p := m.nodes[i].position.Orb()
		if !ok {
			bound = orb.Bound{Min: p, Max: p}
			ok = true
			continue
		}
		bound = bound.Extend(p)
	}
	return bound, ok
}

// BoundaryHalfEdge returns a free half-edge whose twin is bound, found by a
// linear scan over the edges. Following Next from it walks one boundary loop.
// If no edge is adjacent to an element, any free half-edge is returned, and
// NoHalfEdge if there is none at all.
func (m *Mesh) BoundaryHalfEdge() HalfEdgeID {
	fallback := NoHalfEdge
	for i := range m.edges {
		if !m.edges[i].alive {
			continue
		}
		e := EdgeID(i)
		for side := 0; side < 2; side++ {
			h := e.HalfEdge(side)
			if !m.IsFree(h) {
				continue
			}
			if !m.IsFree(h.Twin()) {
				return h
			}
			if fallback == NoHalfEdge {
				fallback = h
			}
		}
	}
	return fallback
}

// BoundaryLoop lists the half-edges of the free loop through h.
func (m *Mesh) BoundaryLoop(h HalfEdgeID) []HalfEdgeID {
	if !m.IsFree(h) {
		fatalf("half-edge %d is bound", h)
	}
	var loop []HalfEdgeID
	for current := h; ; {
		loop = append(loop, current)
		current = m.Next(current)
		if current == h {
			break
		}
		if len(loop) > 2*m.ne {
			fatalf("boundary loop through %d does not close", h)
		}
	}
	return loop
}

// OrientedSide classifies p against the directed line along h. Points to the
// left of h, i.e. towards its element, are on the positive side.
func (m *Mesh) OrientedSide(h HalfEdgeID, p Point) Side {
	return OrientedSide(m.Position(m.Origin(h)), m.Position(m.Target(h)), p)
}

// LocateElement walks from start towards p, crossing whichever edge has p on
// its negative side, and returns the element containing p (points on edges are
// contained by both neighbours). NoElement is returned if the walk leaves the
// mesh, or fails to settle within one step per element, which can happen
// around holes and non-convex boundaries.
func (m *Mesh) LocateElement(p Point, start ElementID) ElementID {
	t := start
	for steps := 0; steps <= m.nt; steps++ {
		crossed := NoHalfEdge
		for _, h := range m.ElementHalfEdges(t) {
			if m.OrientedSide(h, p) == OnNegativeSide {
				crossed = h
				break
			}
		}
		if crossed == NoHalfEdge {
			return t
		}
		if t = m.ElementOf(crossed.Twin()); t == NoElement {
			return NoElement
		}
	}
	return NoElement
}

// Edge properties

func (m *Mesh) EdgeMidpoint(e EdgeID) Point {
	a, b := m.EdgeNodes(e)
	return m.Position(a).Midpoint(m.Position(b))
}

func (m *Mesh) EdgeLength(e EdgeID) float64 {
	a, b := m.EdgeNodes(e)
	return math.Sqrt(m.Position(a).DistanceSquared(m.Position(b)))
}

// IsBoundaryEdge reports whether either side of e is unbound.
func (m *Mesh) IsBoundaryEdge(e EdgeID) bool {
	return m.IsFree(e.HalfEdge(0)) || m.IsFree(e.HalfEdge(1))
}

// IsConstrained reports whether e may not be swapped by refinement. Only
// boundary edges are constrained.
func (m *Mesh) IsConstrained(e EdgeID) bool {
	return m.IsBoundaryEdge(e)
}

// IsEncroachedUpon reports whether p lies strictly inside the diametral circle
// of e.
func (m *Mesh) IsEncroachedUpon(e EdgeID, p Point) bool {
	a, b := m.EdgeNodes(e)
	pa, pb := m.Position(a), m.Position(b)
	// The angle apb is obtuse exactly when p is inside the diametral circle.
	return pa.Sub(p).Dot(pb.Sub(p)) < 0
}

// IsDelaunay reports whether e satisfies the empty circumcircle condition
// against the corner opposite it on the other side. Boundary edges always do.
func (m *Mesh) IsDelaunay(e EdgeID) bool {
	if m.IsBoundaryEdge(e) {
		return true
	}
	h0, h1 := e.HalfEdge(0), e.HalfEdge(1)
	a, b := m.Position(m.Origin(h0)), m.Position(m.Origin(h1))
	c := m.Position(m.Origin(m.Prev(h0)))
	d := m.Position(m.Origin(m.Prev(h1)))
	return OrientedCircle(a, d, b, c) != OnPositiveSide
}

// Element properties

func (m *Mesh) elementPositions(t ElementID) (Point, Point, Point) {
	ns := m.ElementNodes(t)
	return m.Position(ns[0]), m.Position(ns[1]), m.Position(ns[2])
}

// ElementArea is the signed area of t, positive for a counterclockwise
// element.
func (m *Mesh) ElementArea(t ElementID) float64 {
	return SignedArea(m.elementPositions(t))
}

func (m *Mesh) ElementCircumcenter(t ElementID) Point {
	return Circumcenter(m.elementPositions(t))
}

func (m *Mesh) ElementOffcenter(t ElementID, offconstant float64) Point {
	p1, p2, p3 := m.elementPositions(t)
	return Offcenter(p1, p2, p3, offconstant)
}

// ElementMinAngle is the smallest interior angle of t, in degrees.
func (m *Mesh) ElementMinAngle(t ElementID) float64 {
	ns := m.ElementNodes(t)
	minAngle := math.Inf(1)
	for i := range ns {
		corner := m.Position(ns[i])
		u := m.Position(ns[CircularIndex(i+1, 3)]).Sub(corner)
		v := m.Position(ns[CircularIndex(i-1, 3)]).Sub(corner)
		cross := u.X*v.Y - u.Y*v.X
		angle := math.Atan2(math.Abs(cross), u.Dot(v))
		minAngle = math.Min(minAngle, angle)
	}
	return RadiansToDegrees(minAngle)
}

// ElementShortestEdge returns the half-edge of t along its shortest side.
func (m *Mesh) ElementShortestEdge(t ElementID) HalfEdgeID {
	shortest := NoHalfEdge
	shortestLength := math.Inf(1)
	for _, h := range m.ElementHalfEdges(t) {
		if length := m.EdgeLength(h.Edge()); length < shortestLength {
			shortest, shortestLength = h, length
		}
	}
	return shortest
}
