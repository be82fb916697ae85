package internal

import (
	"go.uber.org/zap"
)

// The mesh is a half-edge structure kept in flat arenas. Entities refer to each
// other through integer handles instead of pointers, so removal is a matter of
// marking a slot dead and pushing it on a free list, and a stale handle can be
// detected instead of silently dereferenced.
//
// Half-edges are owned by their edge: edge e holds half-edges 2e and 2e+1, and
// the twin of a half-edge is found by flipping the low bit.
//
// Conventions:
//
//   - next(h) starts where h ends. Around an element the next cycle runs
//     counterclockwise, with the element on the left of each half-edge.
//   - Free half-edges (no element) are threaded by next into loops around the
//     unbound regions: the outside of the domain, or holes left by removed
//     elements.
//   - Around a node, the outgoing half-edges form a single rotation cycle
//     h -> next(twin(h)).
//   - A node's representative half-edge is outgoing, and it is free whenever
//     the node has any free outgoing half-edge.

type NodeID int32
type EdgeID int32
type HalfEdgeID int32
type ElementID int32

const (
	NoNode     NodeID     = -1
	NoEdge     EdgeID     = -1
	NoHalfEdge HalfEdgeID = -1
	NoElement  ElementID  = -1
)

func (n NodeID) IsValid() bool     { return n >= 0 }
func (e EdgeID) IsValid() bool     { return e >= 0 }
func (h HalfEdgeID) IsValid() bool { return h >= 0 }
func (t ElementID) IsValid() bool  { return t >= 0 }

// Twin is the other half of the same edge.
func (h HalfEdgeID) Twin() HalfEdgeID {
	return h ^ 1
}

func (h HalfEdgeID) Edge() EdgeID {
	return EdgeID(h >> 1)
}

// Index is 0 for the half-edge that runs from the first node the edge was
// created with, and 1 for its twin.
func (h HalfEdgeID) Index() int {
	return int(h & 1)
}

func (e EdgeID) HalfEdge(side int) HalfEdgeID {
	return HalfEdgeID(int32(e)<<1 | int32(side&1))
}

type nodeRecord struct {
	position Point
	halfEdge HalfEdgeID
	alive    bool
}

type halfEdgeRecord struct {
	origin  NodeID
	next    HalfEdgeID
	prev    HalfEdgeID
	element ElementID
}

type edgeRecord struct {
	halfEdges [2]halfEdgeRecord
	alive     bool
}

type elementRecord struct {
	halfEdge HalfEdgeID
	alive    bool
}

type Mesh struct {
	nodes    []nodeRecord
	edges    []edgeRecord
	elements []elementRecord

	freeNodes    []NodeID
	freeEdges    []EdgeID
	freeElements []ElementID

	np, ne, nt int

	// Rejected operations are reported here at debug level.
	Logger *zap.Logger
}

func NewMesh() *Mesh {
	return &Mesh{Logger: zap.NewNop()}
}

// Np is the number of live nodes.
func (m *Mesh) Np() int { return m.np }

// Ne is the number of live edges.
func (m *Mesh) Ne() int { return m.ne }

// Nt is the number of live elements.
func (m *Mesh) Nt() int { return m.nt }

func (m *Mesh) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}

// Allocation

func (m *Mesh) newNode(p Point) NodeID {
	record := nodeRecord{position: p, halfEdge: NoHalfEdge, alive: true}
	var n NodeID
	if len(m.freeNodes) > 0 {
		n = m.freeNodes[len(m.freeNodes)-1]
		m.freeNodes = m.freeNodes[:len(m.freeNodes)-1]
		m.nodes[n] = record
	} else {
		n = NodeID(len(m.nodes))
		m.nodes = append(m.nodes, record)
	}
	m.np++
	return n
}

func (m *Mesh) freeNode(n NodeID) {
	m.nodes[n] = nodeRecord{halfEdge: NoHalfEdge}
	m.freeNodes = append(m.freeNodes, n)
	m.np--
}

// newEdge allocates an edge from a to b. Its half-edges are linked to each
// other as an isolated two-cycle; callers thread them into the mesh.
func (m *Mesh) newEdge(a, b NodeID) EdgeID {
	var e EdgeID
	if len(m.freeEdges) > 0 {
		e = m.freeEdges[len(m.freeEdges)-1]
		m.freeEdges = m.freeEdges[:len(m.freeEdges)-1]
	} else {
		e = EdgeID(len(m.edges))
		m.edges = append(m.edges, edgeRecord{})
	}
	h0, h1 := e.HalfEdge(0), e.HalfEdge(1)
	m.edges[e] = edgeRecord{
		halfEdges: [2]halfEdgeRecord{
			{origin: a, next: h1, prev: h1, element: NoElement},
			{origin: b, next: h0, prev: h0, element: NoElement},
		},
		alive: true,
	}
	m.ne++
	return e
}

func (m *Mesh) freeEdge(e EdgeID) {
	m.edges[e] = edgeRecord{}
	m.freeEdges = append(m.freeEdges, e)
	m.ne--
}

func (m *Mesh) newElement(h HalfEdgeID) ElementID {
	record := elementRecord{halfEdge: h, alive: true}
	var t ElementID
	if len(m.freeElements) > 0 {
		t = m.freeElements[len(m.freeElements)-1]
		m.freeElements = m.freeElements[:len(m.freeElements)-1]
		m.elements[t] = record
	} else {
		t = ElementID(len(m.elements))
		m.elements = append(m.elements, record)
	}
	m.nt++
	return t
}

func (m *Mesh) freeElement(t ElementID) {
	m.elements[t] = elementRecord{halfEdge: NoHalfEdge}
	m.freeElements = append(m.freeElements, t)
	m.nt--
}

// Handle validation. Using a handle to a removed entity is a contract
// violation.

func (m *Mesh) node(n NodeID) *nodeRecord {
	if !m.IsNodeAlive(n) {
		fatalf("stale or invalid node handle %d", n)
	}
	return &m.nodes[n]
}

func (m *Mesh) he(h HalfEdgeID) *halfEdgeRecord {
	if !m.IsEdgeAlive(h.Edge()) {
		fatalf("stale or invalid half-edge handle %d", h)
	}
	return &m.edges[h.Edge()].halfEdges[h.Index()]
}

func (m *Mesh) element(t ElementID) *elementRecord {
	if !m.IsElementAlive(t) {
		fatalf("stale or invalid element handle %d", t)
	}
	return &m.elements[t]
}

func (m *Mesh) IsNodeAlive(n NodeID) bool {
	return n >= 0 && int(n) < len(m.nodes) && m.nodes[n].alive
}

func (m *Mesh) IsEdgeAlive(e EdgeID) bool {
	return e >= 0 && int(e) < len(m.edges) && m.edges[e].alive
}

func (m *Mesh) IsElementAlive(t ElementID) bool {
	return t >= 0 && int(t) < len(m.elements) && m.elements[t].alive
}

// Traversal

func (m *Mesh) Position(n NodeID) Point {
	return m.node(n).position
}

// NodeHalfEdge is the representative outgoing half-edge of n, or NoHalfEdge if
// n is isolated.
func (m *Mesh) NodeHalfEdge(n NodeID) HalfEdgeID {
	return m.node(n).halfEdge
}

func (m *Mesh) Origin(h HalfEdgeID) NodeID {
	return m.he(h).origin
}

func (m *Mesh) Target(h HalfEdgeID) NodeID {
	return m.he(h.Twin()).origin
}

func (m *Mesh) Next(h HalfEdgeID) HalfEdgeID {
	return m.he(h).next
}

func (m *Mesh) Prev(h HalfEdgeID) HalfEdgeID {
	return m.he(h).prev
}

// ElementOf is the element bounded by h, or NoElement if h is free.
func (m *Mesh) ElementOf(h HalfEdgeID) ElementID {
	return m.he(h).element
}

func (m *Mesh) IsFree(h HalfEdgeID) bool {
	return m.he(h).element == NoElement
}

func (m *Mesh) ElementHalfEdge(t ElementID) HalfEdgeID {
	return m.element(t).halfEdge
}

// ElementHalfEdges returns the three half-edges of t, starting with its
// representative.
func (m *Mesh) ElementHalfEdges(t ElementID) [3]HalfEdgeID {
	h := m.ElementHalfEdge(t)
	n := m.Next(h)
	return [3]HalfEdgeID{h, n, m.Next(n)}
}

// ElementNodes returns the corners of t in counterclockwise order.
func (m *Mesh) ElementNodes(t ElementID) [3]NodeID {
	hs := m.ElementHalfEdges(t)
	return [3]NodeID{m.Origin(hs[0]), m.Origin(hs[1]), m.Origin(hs[2])}
}

func (m *Mesh) EdgeNodes(e EdgeID) (NodeID, NodeID) {
	h := e.HalfEdge(0)
	return m.Origin(h), m.Target(h)
}

// rotate steps to the next outgoing half-edge around the origin of h.
func (m *Mesh) rotate(h HalfEdgeID) HalfEdgeID {
	return m.Next(h.Twin())
}

// OutgoingHalfEdges lists the half-edges leaving n, in rotation order starting
// at the representative.
func (m *Mesh) OutgoingHalfEdges(n NodeID) []HalfEdgeID {
	start := m.NodeHalfEdge(n)
	if start == NoHalfEdge {
		return nil
	}
	var result []HalfEdgeID
	h := start
	for {
		result = append(result, h)
		h = m.rotate(h)
		if h == start {
			break
		}
		if len(result) > 2*m.ne {
			fatalf("rotation around node %d does not close", n)
		}
	}
	return result
}

func (m *Mesh) NodeDegree(n NodeID) int {
	return len(m.OutgoingHalfEdges(n))
}

// IsBoundaryNode reports whether n touches an unbound region. Isolated nodes
// count as boundary.
func (m *Mesh) IsBoundaryNode(n NodeID) bool {
	h := m.NodeHalfEdge(n)
	return h == NoHalfEdge || m.IsFree(h)
}

// freeOutgoing returns a free outgoing half-edge of n, NoHalfEdge if there is
// none. The representative invariant makes this O(1).
func (m *Mesh) freeOutgoing(n NodeID) HalfEdgeID {
	h := m.NodeHalfEdge(n)
	if h != NoHalfEdge && m.IsFree(h) {
		return h
	}
	return NoHalfEdge
}

// adjustNodeHalfEdge restores the representative invariant of n after its
// neighbourhood changed: prefer a free outgoing half-edge if there is one.
func (m *Mesh) adjustNodeHalfEdge(n NodeID) {
	for _, h := range m.OutgoingHalfEdges(n) {
		if m.IsFree(h) {
			m.node(n).halfEdge = h
			return
		}
	}
}

// setNext links a -> b in both directions.
func (m *Mesh) setNext(a, b HalfEdgeID) {
	m.he(a).next = b
	m.he(b).prev = a
}

// Iteration. These return snapshots, so it is safe to remove entities while
// looping over the result as long as removed handles are skipped.

func (m *Mesh) Nodes() []NodeID {
	result := make([]NodeID, 0, m.np)
	for i := range m.nodes {
		if m.nodes[i].alive {
			result = append(result, NodeID(i))
		}
	}
	return result
}

func (m *Mesh) Edges() []EdgeID {
	result := make([]EdgeID, 0, m.ne)
	for i := range m.edges {
		if m.edges[i].alive {
			result = append(result, EdgeID(i))
		}
	}
	return result
}

func (m *Mesh) Elements() []ElementID {
	result := make([]ElementID, 0, m.nt)
	for i := range m.elements {
		if m.elements[i].alive {
			result = append(result, ElementID(i))
		}
	}
	return result
}
