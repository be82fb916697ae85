package internal

import (
	"go.uber.org/zap"
)

// Refinement operators. They rewire existing records in place and allocate
// whatever is new, so handles not mentioned in an operator's description stay
// valid across it.

// SwapEdge flips the diagonal of the quadrilateral formed by the two elements
// adjacent to e. The same edge handle comes back, now connecting the two
// formerly opposite nodes, and the two element handles are reused.
//
// No geometric check is made: swapping the diagonal of a non-convex
// quadrilateral produces overlapping elements. Use SwapEdgeChecked, or consult
// EdgeIsSwappable first, when that matters.
func (m *Mesh) SwapEdge(e EdgeID) EdgeID {
	h0, h1 := e.HalfEdge(0), e.HalfEdge(1)
	t0, t1 := m.ElementOf(h0), m.ElementOf(h1)
	if t0 == NoElement || t1 == NoElement {
		fatalf("swap of edge %d, which is not interior", e)
	}

	//        c                c
	//       / \              /|\
	//  p0  / t0\ n0         / | \
	//     /  h0 \          /  |  \
	//    a ----- b   =>   a t0|t1 b
	//     \  h1 /          \  |  /
	//  n1  \ t1/ p1         \ | /
	//       \ /              \|/
	//        d                d
	n0, p0 := m.Next(h0), m.Prev(h0)
	n1, p1 := m.Next(h1), m.Prev(h1)
	a, b := m.Origin(h0), m.Origin(h1)
	c, d := m.Origin(p0), m.Origin(p1)

	if m.NodeHalfEdge(a) == h0 {
		m.node(a).halfEdge = n1
	}
	if m.NodeHalfEdge(b) == h1 {
		m.node(b).halfEdge = n0
	}

	m.he(h0).origin = d
	m.he(h1).origin = c

	m.setNext(p0, n1)
	m.setNext(n1, h0)
	m.setNext(h0, p0)
	m.setNext(p1, n0)
	m.setNext(n0, h1)
	m.setNext(h1, p1)

	m.he(n1).element = t0
	m.he(n0).element = t1
	m.element(t0).halfEdge = h0
	m.element(t1).halfEdge = h1
	return e
}

// EdgeIsSwappable reports whether e is interior and swapping it would give two
// strictly counterclockwise elements, i.e. the surrounding quadrilateral is
// strictly convex.
func (m *Mesh) EdgeIsSwappable(e EdgeID) bool {
	h0, h1 := e.HalfEdge(0), e.HalfEdge(1)
	if m.IsFree(h0) || m.IsFree(h1) {
		return false
	}
	a, b := m.Origin(h0), m.Origin(h1)
	c, d := m.Origin(m.Prev(h0)), m.Origin(m.Prev(h1))
	if c == d {
		return false
	}
	pa, pb, pc, pd := m.Position(a), m.Position(b), m.Position(c), m.Position(d)
	return Orient2D(pc, pa, pd) > 0 && Orient2D(pd, pb, pc) > 0
}

// SwapEdgeChecked swaps e if EdgeIsSwappable allows it.
func (m *Mesh) SwapEdgeChecked(e EdgeID) (EdgeID, bool) {
	if !m.EdgeIsSwappable(e) {
		m.logger().Debug("refused swap", zap.Int32("edge", int32(e)))
		return e, false
	}
	return m.SwapEdge(e), true
}

// SplitElement inserts a node at p and connects it to the three corners of t,
// replacing t with three elements. t itself is reused for the one on its first
// half-edge. p is not required to be inside t.
func (m *Mesh) SplitElement(t ElementID, p Point) NodeID {
	hs := m.ElementHalfEdges(t)
	hab, hbc, hca := hs[0], hs[1], hs[2]
	a, b, c := m.Origin(hab), m.Origin(hbc), m.Origin(hca)

	v := m.newNode(p)
	ea, eb, ec := m.newEdge(v, a), m.newEdge(v, b), m.newEdge(v, c)
	va, av := ea.HalfEdge(0), ea.HalfEdge(1)
	vb, bv := eb.HalfEdge(0), eb.HalfEdge(1)
	vc, cv := ec.HalfEdge(0), ec.HalfEdge(1)

	tbc := m.newElement(hbc)
	tca := m.newElement(hca)

	m.setNext(hab, bv)
	m.setNext(bv, va)
	m.setNext(va, hab)

	m.setNext(hbc, cv)
	m.setNext(cv, vb)
	m.setNext(vb, hbc)

	m.setNext(hca, av)
	m.setNext(av, vc)
	m.setNext(vc, hca)

	m.he(bv).element = t
	m.he(va).element = t
	m.he(hbc).element = tbc
	m.he(cv).element = tbc
	m.he(vb).element = tbc
	m.he(hca).element = tca
	m.he(av).element = tca
	m.he(vc).element = tca

	m.element(t).halfEdge = hab
	m.node(v).halfEdge = va
	return v
}

// SplitEdge inserts a node at the midpoint of e. Each element adjacent to e is
// split in two by an edge from the midpoint to its opposite corner. e is kept
// for the half from its first node to the midpoint, and a new edge is created
// for the other half; both are returned along with the new node.
func (m *Mesh) SplitEdge(e EdgeID) (NodeID, EdgeID, EdgeID) {
	h0, h1 := e.HalfEdge(0), e.HalfEdge(1)
	a, b := m.Origin(h0), m.Origin(h1)
	t0, t1 := m.ElementOf(h0), m.ElementOf(h1)
	next0, prev0 := m.Next(h0), m.Prev(h0)
	next1, prev1 := m.Next(h1), m.Prev(h1)

	mid := m.newNode(m.Position(a).Midpoint(m.Position(b)))
	f := m.newEdge(mid, b)
	f0, f1 := f.HalfEdge(0), f.HalfEdge(1)

	// h1 now leaves the midpoint, f1 takes its place at b.
	if m.NodeHalfEdge(b) == h1 {
		m.node(b).halfEdge = f1
	}
	m.he(h1).origin = mid

	if t0 == NoElement {
		if next0 == h1 {
			next0 = f1
		}
		m.setNext(h0, f0)
		m.setNext(f0, next0)
	} else {
		c := m.Origin(prev0)
		g := m.newEdge(mid, c)
		g0, g1 := g.HalfEdge(0), g.HalfEdge(1)
		split := m.newElement(f0)

		m.setNext(h0, g0)
		m.setNext(g0, prev0)
		m.setNext(f0, next0)
		m.setNext(next0, g1)
		m.setNext(g1, f0)

		m.he(g0).element = t0
		m.he(f0).element = split
		m.he(next0).element = split
		m.he(g1).element = split
		m.element(t0).halfEdge = h0
	}

	if t1 == NoElement {
		if prev1 == h0 {
			prev1 = f0
		}
		m.setNext(prev1, f1)
		m.setNext(f1, h1)
	} else {
		d := m.Origin(prev1)
		k := m.newEdge(mid, d)
		k0, k1 := k.HalfEdge(0), k.HalfEdge(1)
		split := m.newElement(f1)

		m.setNext(next1, k1)
		m.setNext(k1, h1)
		m.setNext(f1, k0)
		m.setNext(k0, prev1)
		m.setNext(prev1, f1)

		m.he(k1).element = t1
		m.he(f1).element = split
		m.he(k0).element = split
		m.he(prev1).element = split
		m.element(t1).halfEdge = h1
	}

	if t0 == NoElement {
		m.node(mid).halfEdge = f0
	} else {
		m.node(mid).halfEdge = h1
	}
	return mid, e, f
}

// CollapseEdge merges the endpoints of e into one node at the edge midpoint,
// removing e and the two elements adjacent to it. Every half-edge of the second
// endpoint is re-pointed to the first, which survives. The edges that bounded
// the removed elements stay: each pair of them now joins the same two nodes and
// bounds a free two-sided hole. Np-1, Ne-1, Nt-2.
//
// It refuses (returning false, mesh untouched) when either endpoint is on the
// boundary. Use ContractEdge to merge the endpoints while keeping the mesh
// triangulated.
func (m *Mesh) CollapseEdge(e EdgeID) bool {
	h0, h1 := e.HalfEdge(0), e.HalfEdge(1)
	a, b := m.Origin(h0), m.Origin(h1)
	if m.IsBoundaryNode(a) || m.IsBoundaryNode(b) {
		m.logger().Debug("refused collapse of edge touching the boundary", zap.Int32("edge", int32(e)))
		return false
	}

	//        c                  c
	//   p0 /   \ n0        p0 ( ) n0
	//     a --- b     =>       a
	//   n1 \   / p1        n1 ( ) p1
	//        d                  d
	n0, p0 := m.Next(h0), m.Prev(h0)
	n1, p1 := m.Next(h1), m.Prev(h1)
	outgoingB := m.OutgoingHalfEdges(b)

	m.RemoveElement(m.ElementOf(h0))
	m.RemoveElement(m.ElementOf(h1))

	m.setNext(p0, n0)
	m.setNext(p1, n1)
	for _, h := range outgoingB {
		if h != h1 {
			m.he(h).origin = a
		}
	}
	m.node(a).halfEdge = n1
	m.node(a).position = m.Position(a).Midpoint(m.Position(b))

	m.freeEdge(e)
	m.freeNode(b)

	m.adjustNodeHalfEdge(a)
	m.adjustNodeHalfEdge(m.Origin(p0))
	m.adjustNodeHalfEdge(m.Origin(p1))
	return true
}

// ContractEdge merges the endpoints of an interior edge into one node at the
// edge midpoint, removing the edge and the two elements adjacent to it along
// with one edge on each side, so the mesh stays triangulated: Np-1, Ne-3,
// Nt-2. It refuses (returning false, mesh untouched) when either endpoint is on
// the boundary, or when the endpoints share neighbours other than the two
// opposite corners, since merging would then fold the mesh over itself.
//
// The first node of e survives.
func (m *Mesh) ContractEdge(e EdgeID) bool {
	h0, h1 := e.HalfEdge(0), e.HalfEdge(1)
	a, b := m.Origin(h0), m.Origin(h1)
	if m.IsBoundaryNode(a) || m.IsBoundaryNode(b) {
		m.logger().Debug("refused contraction of edge touching the boundary", zap.Int32("edge", int32(e)))
		return false
	}

	// Interior endpoints imply both sides are bound.
	//
	//        c
	//   p0 /   \ n0
	//     a --- b
	//   n1 \   / p1
	//        d
	n0, p0 := m.Next(h0), m.Prev(h0)
	n1, p1 := m.Next(h1), m.Prev(h1)
	c, d := m.Origin(p0), m.Origin(p1)
	if !m.linkConditionHolds(a, b, c, d) {
		m.logger().Debug("refused contraction violating the link condition", zap.Int32("edge", int32(e)))
		return false
	}

	t0, t1 := m.ElementOf(h0), m.ElementOf(h1)
	tn0 := n0.Twin() // c -> b
	tp1 := p1.Twin() // b -> d
	tn1 := n1.Twin() // d -> a
	outgoingB := m.OutgoingHalfEdges(b)

	// The edges b-c and b-d disappear; a-c and a-d take over their outer sides.
	m.replaceHalfEdge(tn0, p0)
	m.replaceHalfEdge(tp1, n1)

	for _, h := range outgoingB {
		m.he(h).origin = a
	}

	if m.NodeHalfEdge(c) == tn0 {
		m.node(c).halfEdge = p0
	}
	if m.NodeHalfEdge(d) == p1 {
		m.node(d).halfEdge = tn1
	}
	m.node(a).halfEdge = n1
	m.node(a).position = m.Position(a).Midpoint(m.Position(b))

	m.freeElement(t0)
	m.freeElement(t1)
	m.freeEdge(e)
	m.freeEdge(n0.Edge())
	m.freeEdge(p1.Edge())
	m.freeNode(b)

	m.adjustNodeHalfEdge(a)
	m.adjustNodeHalfEdge(c)
	m.adjustNodeHalfEdge(d)
	return true
}

// replaceHalfEdge puts repl where old is in its loop and element.
func (m *Mesh) replaceHalfEdge(old, repl HalfEdgeID) {
	t := m.ElementOf(old)
	prev, next := m.Prev(old), m.Next(old)
	m.setNext(prev, repl)
	m.setNext(repl, next)
	m.he(repl).element = t
	if t != NoElement && m.element(t).halfEdge == old {
		m.element(t).halfEdge = repl
	}
}

// linkConditionHolds reports whether c and d are the only nodes adjacent to
// both a and b.
func (m *Mesh) linkConditionHolds(a, b, c, d NodeID) bool {
	if c == d {
		return false
	}
	neighbours := make(map[NodeID]bool)
	for _, h := range m.OutgoingHalfEdges(a) {
		neighbours[m.Target(h)] = true
	}
	for _, h := range m.OutgoingHalfEdges(b) {
		if n := m.Target(h); neighbours[n] && n != c && n != d {
			return false
		}
	}
	return true
}
