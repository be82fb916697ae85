package internal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBoundingBox(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		_, ok := NewMesh().BoundingBox()
		assert.False(t, ok)
	})

	t.Run("diamond", func(t *testing.T) {
		m := NewMesh()
		m.AddNode(1, 2)
		m.AddNode(0, 1)
		m.AddNode(1, 0)
		m.AddNode(2, 1)
		bound, ok := m.BoundingBox()
		require.True(t, ok)
		assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}, bound)

		m.AddNode(2, 3)
		bound, _ = m.BoundingBox()
		assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 3}}, bound)
	})

	t.Run("removed nodes do not count", func(t *testing.T) {
		s := newSquareMesh(t)
		bound, _ := s.BoundingBox()
		assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, bound)

		n := s.AddNode(2, 3)
		bound, _ = s.BoundingBox()
		assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 3}}, bound)

		s.RemoveNode(n)
		s.RemoveNode(s.n1)
		bound, _ = s.BoundingBox()
		assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, bound)
		s.RemoveNode(s.n4)
		bound, _ = s.BoundingBox()
		assert.Equal(t, orb.Bound{Min: orb.Point{1, 0}, Max: orb.Point{1, 1}}, bound)
	})
}

func TestBoundaryHalfEdge(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		assert.Equal(t, NoHalfEdge, NewMesh().BoundaryHalfEdge())
	})

	t.Run("edges only", func(t *testing.T) {
		m := NewMesh()
		m.AddEdge(m.AddNode(0, 0), m.AddNode(1, 0))
		h := m.BoundaryHalfEdge()
		require.NotEqual(t, NoHalfEdge, h)
		assert.True(t, m.IsFree(h))
	})

	t.Run("square", func(t *testing.T) {
		s := newSquareMesh(t)
		h := s.BoundaryHalfEdge()
		require.NotEqual(t, NoHalfEdge, h)
		loop := s.BoundaryLoop(h)
		require.Len(t, loop, 4)
		for _, h := range loop {
			assert.True(t, s.IsFree(h))
			assert.False(t, s.IsFree(h.Twin()))
			// The outside is to the left of the boundary loop, so it runs clockwise
			assert.Equal(t, OnNegativeSide, s.OrientedSide(h, Point{0.5, 0.5}))
		}
		assert.Panics(t, func() { s.BoundaryLoop(s.e5.HalfEdge(0)) })
	})
}

func TestLocateElement(t *testing.T) {
	m, err := FanMesh(RegularPolygon(9, 10))
	require.NoError(t, err)
	for _, target := range m.Elements() {
		centroid := elementCentroid(m, target)
		for _, start := range m.Elements() {
			assert.Equal(t, target, m.LocateElement(centroid, start))
		}
	}

	t.Run("outside the mesh", func(t *testing.T) {
		for _, start := range m.Elements() {
			assert.Equal(t, NoElement, m.LocateElement(Point{20, 1}, start))
		}
	})

	t.Run("on an edge", func(t *testing.T) {
		s := newSquareMesh(t)
		el := s.LocateElement(Point{0.5, 0.5}, s.t1)
		assert.Contains(t, []ElementID{s.t1, s.t2}, el)
	})
}

func elementCentroid(m *Mesh, t ElementID) Point {
	p1, p2, p3 := m.elementPositions(t)
	return p1.Add(p2).Add(p3).Scale(1.0 / 3)
}

func TestEdgeQueries(t *testing.T) {
	s := newSquareMesh(t)

	assert.InDelta(t, math.Sqrt2, s.EdgeLength(s.e5), 1e-15)
	assert.Equal(t, 1.0, s.EdgeLength(s.e1))
	assert.Equal(t, Point{0.5, 0.5}, s.EdgeMidpoint(s.e5))

	assert.True(t, s.IsConstrained(s.e1))
	assert.False(t, s.IsConstrained(s.e5))

	assert.True(t, s.IsEncroachedUpon(s.e1, Point{0.5, 0.1}))
	assert.True(t, s.IsEncroachedUpon(s.e1, Point{0.9, 0.2}))
	assert.False(t, s.IsEncroachedUpon(s.e1, Point{0.5, 0.6}))
	assert.False(t, s.IsEncroachedUpon(s.e1, Point{1, 0.5}))

	// The four corners of the square are cocircular
	assert.True(t, s.IsDelaunay(s.e5))
	assert.True(t, s.IsDelaunay(s.e1))

	t.Run("flat diamond", func(t *testing.T) {
		m := NewMesh()
		a, b := m.AddNode(0, 0), m.AddNode(1, -0.2)
		c, d := m.AddNode(2, 0), m.AddNode(1, 0.2)
		ab, bc, cd, da := m.AddEdge(a, b), m.AddEdge(b, c), m.AddEdge(c, d), m.AddEdge(d, a)
		ac := m.AddEdge(a, c)
		require.NotEqual(t, NoElement, m.AddElement(ab.HalfEdge(0), bc.HalfEdge(0), ac.HalfEdge(1)))
		require.NotEqual(t, NoElement, m.AddElement(ac.HalfEdge(0), cd.HalfEdge(0), da.HalfEdge(0)))
		AssertValidMesh(t, m, 4, 5, 2)

		assert.False(t, m.IsDelaunay(ac))
		_, ok := m.SwapEdgeChecked(ac)
		require.True(t, ok)
		assert.True(t, m.IsDelaunay(ac))
		assert.ElementsMatch(t, []NodeID{b, d}, edgeNodeSlice(m, ac))
		AssertValidMesh(t, m, 4, 5, 2)
		AssertPositiveElements(t, m, 0.4)
	})
}

func TestElementQueries(t *testing.T) {
	s := newSquareMesh(t)

	assert.Equal(t, 0.5, s.ElementArea(s.t1))
	assert.InDelta(t, 45, s.ElementMinAngle(s.t1), 1e-12)
	assert.Equal(t, s.e1.HalfEdge(0), s.ElementShortestEdge(s.t1))

	center := s.ElementCircumcenter(s.t1)
	assert.InDelta(t, 0.5, center.X, 1e-15)
	assert.InDelta(t, 0.5, center.Y, 1e-15)

	// A large off-center constant falls back to the circumcenter
	off := s.ElementOffcenter(s.t1, 1)
	assert.InDelta(t, 0.5, off.X, 1e-15)
	assert.InDelta(t, 0.5, off.Y, 1e-15)

	off = s.ElementOffcenter(s.t1, 0.1)
	assert.InDelta(t, 0.9, off.X, 1e-15)
	assert.InDelta(t, 0.5, off.Y, 1e-15)

	assert.Panics(t, func() { s.ElementArea(ElementID(99)) })
}

func TestRejectionsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newSquareMesh(t)
	s.Logger = zap.New(core)

	assert.Equal(t, NoEdge, s.AddEdge(s.n1, s.n1))
	assert.False(t, s.CollapseEdge(s.e5))
	_, ok := s.SwapEdgeChecked(s.e1)
	assert.False(t, ok)

	assert.Equal(t, 1, logs.FilterMessage("rejected loop edge").Len())
	assert.Equal(t, 1, logs.FilterMessage("refused collapse of edge touching the boundary").Len())
	assert.Equal(t, 1, logs.FilterMessage("refused swap").Len())
	assert.Equal(t, int32(s.e1), logs.FilterMessage("refused swap").All()[0].ContextMap()["edge"])
}

// Drives the operators in random order, checking the invariants after every
// step. Every operation keeps the mesh a triangulated disk, so Euler's
// formula holds throughout.
func TestRandomOperations(t *testing.T) {
	m, err := FanMesh(RegularPolygon(12, 1))
	require.NoError(t, err)
	random := rand.New(rand.NewSource(5))

	pick := func(edges []EdgeID) EdgeID {
		return edges[random.Intn(len(edges))]
	}

	// Contractions never touch the boundary and swaps only affect interior edges,
	// so the boundary stays one loop that grows with each boundary split.
	boundaryLength := 12
	for i := 0; i < 300; i++ {
		switch random.Intn(4) {
		case 0:
			elements := m.Elements()
			el := elements[random.Intn(len(elements))]
			m.SplitElement(el, elementCentroid(m, el))
		case 1:
			e := pick(m.Edges())
			if m.IsBoundaryEdge(e) {
				boundaryLength++
			}
			m.SplitEdge(e)
		case 2:
			m.SwapEdgeChecked(pick(m.Edges()))
		case 3:
			m.ContractEdge(pick(m.Edges()))
		}
		require.NoError(t, m.Validate(), "step %d", i)
		require.Equal(t, 1, m.Np()-m.Ne()+m.Nt(), "Euler characteristic at step %d", i)
		require.Len(t, m.BoundaryLoop(m.BoundaryHalfEdge()), boundaryLength, "step %d", i)
	}
}

// Lawson's algorithm: swap locally non-Delaunay edges until none are left.
func makeDelaunay(t *testing.T, m *Mesh) {
	for iteration := 0; ; iteration++ {
		require.Less(t, iteration, 10000, "flipping did not terminate")
		swapped := false
		for _, e := range m.Edges() {
			if !m.IsDelaunay(e) {
				_, ok := m.SwapEdgeChecked(e)
				require.True(t, ok, "a locally non-Delaunay edge is always swappable")
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

func TestDelaunayFlips(t *testing.T) {
	for _, name := range fixtureNames {
		t.Run(name, func(t *testing.T) {
			poly := LoadFixture(name)
			m, err := FanMesh(poly)
			require.NoError(t, err)
			for _, el := range m.Elements() {
				m.SplitElement(el, elementCentroid(m, el))
			}
			makeDelaunay(t, m)
			n := len(poly.Points)
			AssertValidMesh(t, m, 2*n-2, 5*n-9, 3*n-6)
			AssertPositiveElements(t, m, poly.Area())
			for _, e := range m.Edges() {
				assert.True(t, m.IsDelaunay(e))
			}
		})
	}
}

func TestFanMesh(t *testing.T) {
	for _, name := range fixtureNames {
		t.Run(name, func(t *testing.T) {
			poly := LoadFixture(name)
			require.True(t, poly.IsCCW())
			m, err := FanMesh(poly)
			require.NoError(t, err)

			n := len(poly.Points)
			AssertValidMesh(t, m, n, 2*n-3, n-2)
			AssertPositiveElements(t, m, poly.Area())
			assert.Len(t, m.BoundaryLoop(m.BoundaryHalfEdge()), n)

			bound, ok := m.BoundingBox()
			require.True(t, ok)
			assert.Equal(t, poly.Ring().Bound(), bound)
		})
	}

	t.Run("non-convex polygon", func(t *testing.T) {
		_, err := FanMesh(Polygon{[]Point{{0, 0}, {2, 0}, {1, 0.5}, {2, 2}, {0, 2}}})
		assert.Error(t, err)
	})

	t.Run("clockwise polygon", func(t *testing.T) {
		_, err := FanMesh(RegularPolygon(5, 1).Reverse())
		assert.Error(t, err)
	})

	t.Run("triangle", func(t *testing.T) {
		m, err := FanMesh(RegularPolygon(3, 1))
		require.NoError(t, err)
		AssertValidMesh(t, m, 3, 3, 1)
	})
}
