package internal

// This contains no actual tests. It is just a helper for testing mesh
// validity.

import (
	"os"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a mesh is valid. The rules are:
// 1. Every structural invariant checked by Validate holds.
// 2. The counts match the expected (nodes, edges, elements).
//
// Set UMESH_DRAW to see the mesh in the terminal when the check fails.
func AssertValidMesh(t *testing.T, m *Mesh, np, ne, nt int) {
	t.Helper()
	ok := assert.NoError(t, m.Validate())
	ok = assert.Equal(t, np, m.Np(), "node count") && ok
	ok = assert.Equal(t, ne, m.Ne(), "edge count") && ok
	ok = assert.Equal(t, nt, m.Nt(), "element count") && ok
	if !ok {
		dbgDrawOnFailure(m)
		t.FailNow()
	}
}

// Every element is counterclockwise with nonzero area, and the areas add up
// to the expected total.
func AssertPositiveElements(t *testing.T, m *Mesh, totalArea float64) {
	t.Helper()
	var sum float64
	for _, el := range m.Elements() {
		area := m.ElementArea(el)
		if !assert.Greater(t, area, 0.0, "element %s", m.DescribeElement(el)) {
			dbgDrawOnFailure(m)
		}
		sum += area
	}
	require.InDelta(t, totalArea, sum, 1e-9, "sum of element areas")
}

// cloneMesh copies every arena so that a refused operation can be checked for
// leaving the mesh exactly as it was.
func cloneMesh(m *Mesh) *Mesh {
	c := *m
	c.nodes = slices.Clone(m.nodes)
	c.edges = slices.Clone(m.edges)
	c.elements = slices.Clone(m.elements)
	c.freeNodes = slices.Clone(m.freeNodes)
	c.freeEdges = slices.Clone(m.freeEdges)
	c.freeElements = slices.Clone(m.freeElements)
	return &c
}

func dbgDrawOnFailure(m *Mesh) {
	if os.Getenv("UMESH_DRAW") != "" {
		m.DbgDraw(200)
	}
}

// The unit square split along its diagonal, as two counterclockwise elements:
//
//	n4 ---- n3
//	|  t2  / |
//	|    /   |
//	|  /  t1 |
//	n1 ---- n2
type squareMesh struct {
	*Mesh
	n1, n2, n3, n4     NodeID
	e1, e2, e3, e4, e5 EdgeID
	t1, t2             ElementID
}

func newSquareMesh(t *testing.T) *squareMesh {
	t.Helper()
	s := &squareMesh{Mesh: NewMesh()}
	s.n1 = s.AddNode(0, 0)
	s.n2 = s.AddNode(1, 0)
	s.n3 = s.AddNode(1, 1)
	s.n4 = s.AddNode(0, 1)

	s.e1 = s.AddEdge(s.n1, s.n2)
	s.e2 = s.AddEdge(s.n2, s.n3)
	s.e3 = s.AddEdge(s.n3, s.n4)
	s.e4 = s.AddEdge(s.n4, s.n1)
	s.e5 = s.AddEdge(s.n1, s.n3)

	s.t1 = s.AddElement(s.e1.HalfEdge(0), s.e2.HalfEdge(0), s.e5.HalfEdge(1))
	s.t2 = s.AddElement(s.e5.HalfEdge(0), s.e3.HalfEdge(0), s.e4.HalfEdge(0))
	require.NotEqual(t, NoElement, s.t1)
	require.NotEqual(t, NoElement, s.t2)
	AssertValidMesh(t, s.Mesh, 4, 5, 2)
	return s
}
