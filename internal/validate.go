package internal

import (
	"github.com/pkg/errors"
)

// Validate checks every structural invariant of the mesh and returns the first
// violation found. It walks the whole mesh, so it is meant for tests and
// debugging rather than for use between operations.
func (m *Mesh) Validate() error {
	if err := m.validateCounts(); err != nil {
		return err
	}

	outgoingCounts := make([]int, len(m.nodes))
	for i := range m.edges {
		if !m.edges[i].alive {
			continue
		}
		e := EdgeID(i)
		a, b := m.edges[i].halfEdges[0].origin, m.edges[i].halfEdges[1].origin
		if !m.IsNodeAlive(a) || !m.IsNodeAlive(b) {
			return errors.Errorf("edge %d references a dead node", e)
		}
		if a == b {
			return errors.Errorf("edge %d is a loop at node %d", e, a)
		}
		outgoingCounts[a]++
		outgoingCounts[b]++
		for side := 0; side < 2; side++ {
			if err := m.validateHalfEdge(e.HalfEdge(side)); err != nil {
				return errors.Wrapf(err, "edge %d", e)
			}
		}
	}

	for i := range m.elements {
		if !m.elements[i].alive {
			continue
		}
		t := ElementID(i)
		h := m.elements[i].halfEdge
		if !m.IsEdgeAlive(h.Edge()) {
			return errors.Errorf("element %d references dead half-edge %d", t, h)
		}
		if m.ElementOf(h) != t {
			return errors.Errorf("element %d is not bound to its own half-edge %d", t, h)
		}
	}

	for i := range m.nodes {
		if !m.nodes[i].alive {
			continue
		}
		if err := m.validateNode(NodeID(i), outgoingCounts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mesh) validateCounts() error {
	var np, ne, nt int
	for i := range m.nodes {
		if m.nodes[i].alive {
			np++
		}
	}
	for i := range m.edges {
		if m.edges[i].alive {
			ne++
		}
	}
	for i := range m.elements {
		if m.elements[i].alive {
			nt++
		}
	}
	if np != m.np || ne != m.ne || nt != m.nt {
		return errors.Errorf("counts (%d, %d, %d) do not match live entities (%d, %d, %d)",
			m.np, m.ne, m.nt, np, ne, nt)
	}
	return nil
}

func (m *Mesh) validateHalfEdge(h HalfEdgeID) error {
	record := &m.edges[h.Edge()].halfEdges[h.Index()]
	if !m.IsEdgeAlive(record.next.Edge()) || !m.IsEdgeAlive(record.prev.Edge()) {
		return errors.Errorf("half-edge %d links to a dead half-edge", h)
	}
	if m.Prev(record.next) != h {
		return errors.Errorf("prev(next(%d)) is not %d", h, h)
	}
	if m.Origin(record.next) != m.Target(h) {
		return errors.Errorf("next of half-edge %d does not start where it ends", h)
	}
	if m.ElementOf(record.next) != record.element {
		return errors.Errorf("half-edge %d and its next disagree on their element", h)
	}
	if record.element == NoElement {
		return nil
	}
	if !m.IsElementAlive(record.element) {
		return errors.Errorf("half-edge %d is bound to dead element %d", h, record.element)
	}
	if m.Next(m.Next(record.next)) != h {
		return errors.Errorf("element %d is not a triangle", record.element)
	}
	return nil
}

func (m *Mesh) validateNode(n NodeID, outgoingCount int) error {
	rep := m.nodes[n].halfEdge
	if rep == NoHalfEdge {
		if outgoingCount != 0 {
			return errors.Errorf("node %d has edges but no half-edge", n)
		}
		return nil
	}
	if !m.IsEdgeAlive(rep.Edge()) {
		return errors.Errorf("node %d references dead half-edge %d", n, rep)
	}
	if m.Origin(rep) != n {
		return errors.Errorf("half-edge %d of node %d does not leave it", rep, n)
	}

	// The rotation must come back to the representative after visiting every
	// outgoing half-edge exactly once.
	hasFree := false
	h := rep
	for visited := 0; ; {
		if m.Origin(h) != n {
			return errors.Errorf("rotation around node %d reaches half-edge %d of another node", n, h)
		}
		hasFree = hasFree || m.IsFree(h)
		visited++
		h = m.rotate(h)
		if h == rep {
			if visited != outgoingCount {
				return errors.Errorf("node %d is not manifold: rotation visits %d of %d half-edges", n, visited, outgoingCount)
			}
			break
		}
		if visited > outgoingCount {
			return errors.Errorf("rotation around node %d does not close", n)
		}
	}
	if hasFree && !m.IsFree(rep) {
		return errors.Errorf("node %d has a free half-edge but its representative %d is bound", n, rep)
	}
	return nil
}
