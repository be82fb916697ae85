package internal

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/umesh/internal/dbg"
)

// Debug strings. Handles are shown by readable names rather than numbers;
// free half-edges and boundary nodes are shown in red, bound ones in green.

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh { nodes: %d, edges: %d, elements: %d }", m.np, m.ne, m.nt)
}

func (m *Mesh) DbgNodeName(n NodeID) string {
	name := dbg.Name(n)
	if !m.IsNodeAlive(n) {
		return name
	}
	if m.IsBoundaryNode(n) {
		return aurora.Red(name).String()
	}
	return aurora.Green(name).String()
}

func (m *Mesh) DbgHalfEdgeName(h HalfEdgeID) string {
	name := dbg.Name(h)
	if !m.IsEdgeAlive(h.Edge()) {
		return name
	}
	if m.IsFree(h) {
		return aurora.Red(name).String()
	}
	return aurora.Green(name).String()
}

func (m *Mesh) DescribeNode(n NodeID) string {
	if !m.IsNodeAlive(n) {
		return fmt.Sprintf("Node %s <dead>", dbg.Name(n))
	}
	var spokes []string
	for _, h := range m.OutgoingHalfEdges(n) {
		spokes = append(spokes, m.DbgNodeName(m.Target(h)))
	}
	return fmt.Sprintf("Node %s %v { → %s }", m.DbgNodeName(n), m.Position(n), strings.Join(spokes, ", "))
}

func (m *Mesh) DescribeHalfEdge(h HalfEdgeID) string {
	if !m.IsEdgeAlive(h.Edge()) {
		return fmt.Sprintf("HalfEdge %s <dead>", dbg.Name(h))
	}
	return fmt.Sprintf("HalfEdge %s { %s → %s } <next: %s, prev: %s, element: %s>",
		m.DbgHalfEdgeName(h),
		m.DbgNodeName(m.Origin(h)),
		m.DbgNodeName(m.Target(h)),
		m.DbgHalfEdgeName(m.Next(h)),
		m.DbgHalfEdgeName(m.Prev(h)),
		dbg.Name(m.ElementOf(h)),
	)
}

func (m *Mesh) DescribeElement(t ElementID) string {
	if !m.IsElementAlive(t) {
		return fmt.Sprintf("Element %s <dead>", dbg.Name(t))
	}
	ns := m.ElementNodes(t)
	return fmt.Sprintf("Element %s [%s, %s, %s]",
		aurora.Green(dbg.Name(t)),
		m.DbgNodeName(ns[0]),
		m.DbgNodeName(ns[1]),
		m.DbgNodeName(ns[2]),
	)
}
