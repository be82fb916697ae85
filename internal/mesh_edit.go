package internal

import (
	"go.uber.org/zap"
)

// Basic editing operators. Each one leaves the mesh satisfying all of the
// structural invariants checked by Validate. Operators that can be refused
// (AddEdge, AddElement) decide before touching anything, so a refusal never
// leaves a partial mutation behind.

// AddNode creates an isolated node at (x, y).
func (m *Mesh) AddNode(x, y float64) NodeID {
	return m.newNode(Point{x, y})
}

// RemoveNode removes n together with every edge incident to it, and therefore
// every element around it. This can leave a hole in the mesh.
func (m *Mesh) RemoveNode(n NodeID) {
	for _, h := range m.OutgoingHalfEdges(n) {
		m.RemoveEdge(h.Edge())
	}
	m.freeNode(n)
}

// AddEdge connects two distinct nodes. Each endpoint that already has edges
// must offer a free outgoing half-edge; the new edge is threaded into the gap
// in front of it. The returned edge's first half-edge runs from n1 to n2.
//
// Whether the two nodes are already connected is not checked.
func (m *Mesh) AddEdge(n1, n2 NodeID) EdgeID {
	m.node(n1)
	m.node(n2)
	if n1 == n2 {
		m.logger().Debug("rejected loop edge", zap.Int32("node", int32(n1)))
		return NoEdge
	}

	// Locate the gaps first; nothing is modified until both are known.
	out1, in1 := NoHalfEdge, NoHalfEdge
	if m.NodeHalfEdge(n1) != NoHalfEdge {
		if out1 = m.freeOutgoing(n1); out1 == NoHalfEdge {
			m.logger().Debug("rejected edge, no free half-edge", zap.String("node", m.DescribeNode(n1)))
			return NoEdge
		}
		in1 = m.Prev(out1)
	}
	out2, in2 := NoHalfEdge, NoHalfEdge
	if m.NodeHalfEdge(n2) != NoHalfEdge {
		if out2 = m.freeOutgoing(n2); out2 == NoHalfEdge {
			m.logger().Debug("rejected edge, no free half-edge", zap.String("node", m.DescribeNode(n2)))
			return NoEdge
		}
		in2 = m.Prev(out2)
	}

	e := m.newEdge(n1, n2)
	h0, h1 := e.HalfEdge(0), e.HalfEdge(1)

	if out1 != NoHalfEdge {
		m.setNext(in1, h0)
		m.setNext(h1, out1)
	} else {
		m.setNext(h1, h0)
		m.node(n1).halfEdge = h0
	}

	if out2 != NoHalfEdge {
		m.setNext(in2, h1)
		m.setNext(h0, out2)
	} else {
		m.setNext(h0, h1)
		m.node(n2).halfEdge = h1
	}
	return e
}

// RemoveEdge removes e and the elements on either side of it. Its endpoints
// stay in the mesh, possibly isolated.
func (m *Mesh) RemoveEdge(e EdgeID) {
	for side := 0; side < 2; side++ {
		if t := m.ElementOf(e.HalfEdge(side)); t != NoElement {
			m.RemoveElement(t)
		}
	}
	m.unthreadEdge(e)
	m.freeEdge(e)
}

// unthreadEdge splices the (free) half-edges of e out of their loops and
// moves representatives off them.
func (m *Mesh) unthreadEdge(e EdgeID) {
	h0, h1 := e.HalfEdge(0), e.HalfEdge(1)
	v0, v1 := m.Origin(h0), m.Origin(h1)
	prev0, next0 := m.Prev(h0), m.Next(h0)
	prev1, next1 := m.Prev(h1), m.Next(h1)

	if next1 == h0 {
		m.node(v0).halfEdge = NoHalfEdge
	} else {
		m.setNext(prev0, next1)
		if m.node(v0).halfEdge == h0 {
			m.node(v0).halfEdge = next1
		}
	}

	if next0 == h1 {
		m.node(v1).halfEdge = NoHalfEdge
	} else {
		m.setNext(prev1, next0)
		if m.node(v1).halfEdge == h1 {
			m.node(v1).halfEdge = next0
		}
	}
}

type halfEdgeLink struct {
	from, to HalfEdgeID
}

// AddElement creates a triangle bounded by three free half-edges forming a
// chain (each one ends where the next one starts). The half-edges are relinked
// so that they form the element's next cycle. At a corner where they are not
// already consecutive, the half-edges between them (the "patch") are moved
// into another free gap around that node. If some corner has no such gap the
// element would make the mesh non-manifold, and NoElement is returned with the
// mesh unchanged.
func (m *Mesh) AddElement(h1, h2, h3 HalfEdgeID) ElementID {
	hs := [3]HalfEdgeID{h1, h2, h3}
	if h1 == h2 || h2 == h3 || h3 == h1 {
		m.logger().Debug("rejected element, repeated half-edge")
		return NoElement
	}
	for i, h := range hs {
		if !m.IsFree(h) {
			m.logger().Debug("rejected element, half-edge already bound", zap.String("half_edge", m.DescribeHalfEdge(h)))
			return NoElement
		}
		if m.Target(h) != m.Origin(hs[(i+1)%3]) {
			m.logger().Debug("rejected element, half-edges do not form a chain",
				zap.String("from", m.DescribeHalfEdge(h)),
				zap.String("to", m.DescribeHalfEdge(hs[(i+1)%3])))
			return NoElement
		}
	}

	// Work out every relink against the current topology. Relinks at different
	// corners only rewrite the next pointers of half-edges arriving at that
	// corner, so they do not interfere with each other.
	var relinks [9]halfEdgeLink
	relinkCount := 0
	for i := range hs {
		innerPrev, innerNext := hs[i], hs[(i+1)%3]
		if m.Next(innerPrev) == innerNext {
			continue
		}

		// The gaps outside the patch run from the twin of innerNext around to
		// innerPrev. Find a free one to park the patch in.
		boundaryPrev := innerNext.Twin()
		for boundaryPrev != innerPrev && !m.IsFree(boundaryPrev) {
			boundaryPrev = m.Next(boundaryPrev).Twin()
		}
		if boundaryPrev == innerPrev {
			m.logger().Debug("rejected element, patch relinking failed",
				zap.String("node", m.DescribeNode(m.Origin(innerNext))))
			return NoElement
		}
		boundaryNext := m.Next(boundaryPrev)
		patchStart := m.Next(innerPrev)
		patchEnd := m.Prev(innerNext)

		relinks[relinkCount] = halfEdgeLink{boundaryPrev, patchStart}
		relinks[relinkCount+1] = halfEdgeLink{patchEnd, boundaryNext}
		relinks[relinkCount+2] = halfEdgeLink{innerPrev, innerNext}
		relinkCount += 3
	}

	for _, link := range relinks[:relinkCount] {
		m.setNext(link.from, link.to)
	}

	t := m.newElement(h1)
	for _, h := range hs {
		m.he(h).element = t
	}
	for _, h := range hs {
		m.adjustNodeHalfEdge(m.Origin(h))
	}
	return t
}

// RemoveElement deletes t. Its half-edges become free and keep their links, so
// they now bound a triangular hole.
func (m *Mesh) RemoveElement(t ElementID) {
	hs := m.ElementHalfEdges(t)
	for _, h := range hs {
		m.he(h).element = NoElement
	}
	m.freeElement(t)
	for _, h := range hs {
		m.adjustNodeHalfEdge(m.Origin(h))
	}
}

// FindEdge returns an edge connecting a and b, or NoEdge.
func (m *Mesh) FindEdge(a, b NodeID) EdgeID {
	for _, h := range m.OutgoingHalfEdges(a) {
		if m.Target(h) == b {
			return h.Edge()
		}
	}
	return NoEdge
}
