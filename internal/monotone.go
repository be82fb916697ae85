package internal

import (
	"github.com/pkg/errors"
)

// Building a mesh from a Y-monotone polygon. A Y-monotone polygon is a simple
// polygon such that any horizontal line intersects at most two edges. The
// polygon is triangulated with the classic stack sweep, and the triangles are
// then assembled with the public mesh operators.
//
// Points are ordered lexicographically (see below), which simulates a slightly
// rotated coordinate system without horizontal segments. On the left chain a
// horizontal edge must therefore sit above the inside of the polygon, and on
// the right chain below it.

// below orders points by Y, breaking ties so that the point further left is
// lower.
func below(p, q Point) bool {
	if p.Y == q.Y {
		return p.X < q.X
	}
	return p.Y < q.Y
}

type indexStack []int

func (s *indexStack) Push(i int) {
	*s = append(*s, i)
}

func (s *indexStack) Pop() int {
	i := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return i
}

func (s indexStack) Peek() int {
	return s[len(s)-1]
}

func (s indexStack) Empty() bool {
	return len(s) == 0
}

// MonotoneMesh triangulates a counterclockwise Y-monotone polygon without
// adding points. Node i of the result is at poly.Points[i].
func MonotoneMesh(poly Polygon) (*Mesh, error) {
	triangles, err := triangulateMonotone(poly)
	if err != nil {
		return nil, err
	}
	return meshFromTriangles(poly, triangles)
}

// triangulateMonotone returns counterclockwise triangles as index triples into
// poly.Points.
func triangulateMonotone(poly Polygon) ([][3]int, error) {
	points := poly.Points
	n := len(points)
	if n < 3 {
		return nil, errors.Errorf("cannot triangulate degenerate polygon with point count: %d", n)
	}
	if !poly.IsCCW() {
		return nil, errors.New("polygon is not counterclockwise")
	}

	triangles := make([][3]int, 0, n-2)
	appendTriangle := func(a, b, c int) error {
		if OrientedSide(points[a], points[b], points[c]) != OnPositiveSide {
			return errors.Errorf("triangle %v %v %v is not counterclockwise; polygon is not monotone", points[a], points[b], points[c])
		}
		triangles = append(triangles, [3]int{a, b, c})
		return nil
	}
	if n == 3 {
		return triangles, appendTriangle(0, 1, 2)
	}

	top := 0
	for i := range points {
		if below(points[top], points[i]) {
			top = i
		}
	}

	// Merge the two chains from the top down, noting which points are on the
	// left chain. The bottom point is handled at the very end.
	sorted := make([]int, 0, n)
	sorted = append(sorted, top)
	onLeft := make([]bool, n)
	leftOffset, rightOffset := 1, 1
	lastLeft, lastRight := top, top
	var bottom int
	for {
		left := CircularIndex(top+leftOffset, n)
		right := CircularIndex(top-rightOffset, n)
		if !below(points[left], points[lastLeft]) || !below(points[right], points[lastRight]) {
			return nil, errors.New("polygon is not Y-monotone")
		}
		if left == right {
			bottom = left
			break
		}
		if below(points[right], points[left]) {
			onLeft[left] = true
			sorted = append(sorted, left)
			lastLeft = left
			leftOffset++
		} else {
			sorted = append(sorted, right)
			lastRight = right
			rightOffset++
		}
	}

	stack := indexStack{sorted[0], sorted[1]}
	for i := 2; i < len(sorted); i++ {
		p := sorted[i]
		left := onLeft[p]
		if left != onLeft[stack.Peek()] {
			// Monotonicity guarantees that every point on the stack is visible from
			// p, so the whole stack is emptied into triangles.
			for !stack.Empty() {
				a := stack.Pop()
				if stack.Empty() {
					break
				}
				b := stack.Peek()
				var err error
				if left {
					/*
					              b
					             /|
					 diagonal-> / |
					           p--a
					*/
					err = appendTriangle(p, a, b)
				} else {
					/*
						b
						|\ <- diagonal
						| \
						a--p
					*/
					err = appendTriangle(a, p, b)
				}
				if err != nil {
					return nil, err
				}
			}
			stack.Push(sorted[i-1])
			stack.Push(p)
			continue
		}

		// Same chain: cut off triangles for as long as p sees past the top of the
		// stack.
		v := stack.Pop()
		for !stack.Empty() {
			q := stack.Peek()
			var a, b, c int
			if left {
				a, b, c = p, q, v
			} else {
				a, b, c = p, v, q
			}
			if OrientedSide(points[a], points[b], points[c]) != OnPositiveSide {
				break
			}
			v = stack.Pop()
			triangles = append(triangles, [3]int{a, b, c})
		}
		stack.Push(v)
		stack.Push(p)
	}

	// Fan the remaining stack out from the bottom point. Unlike when only
	// diagonals are wanted, the last point is not skipped, since the final
	// triangle includes it.
	l := stack.Pop()
	for !stack.Empty() {
		p := stack.Pop()
		var err error
		if onLeft[l] {
			err = appendTriangle(bottom, p, l)
		} else {
			err = appendTriangle(bottom, l, p)
		}
		if err != nil {
			return nil, err
		}
		l = p
	}
	return triangles, nil
}

// meshFromTriangles adds the polygon sides, then every diagonal, then the
// elements, which is the order FanMesh uses as well.
func meshFromTriangles(poly Polygon, triangles [][3]int) (*Mesh, error) {
	m := NewMesh()
	n := len(poly.Points)
	nodes := make([]NodeID, n)
	for i, p := range poly.Points {
		nodes[i] = m.AddNode(p.X, p.Y)
	}

	connect := func(a, b int) (HalfEdgeID, error) {
		e := m.FindEdge(nodes[a], nodes[b])
		if e == NoEdge {
			if e = m.AddEdge(nodes[a], nodes[b]); e == NoEdge {
				return NoHalfEdge, errors.Errorf("could not connect points %d and %d", a, b)
			}
		}
		h := e.HalfEdge(0)
		if m.Origin(h) != nodes[a] {
			h = h.Twin()
		}
		return h, nil
	}

	for i := range nodes {
		if _, err := connect(i, CircularIndex(i+1, n)); err != nil {
			return nil, err
		}
	}
	for _, tri := range triangles {
		for k := range tri {
			if _, err := connect(tri[k], tri[(k+1)%3]); err != nil {
				return nil, err
			}
		}
	}
	for _, tri := range triangles {
		var hs [3]HalfEdgeID
		for k := range tri {
			hs[k], _ = connect(tri[k], tri[(k+1)%3])
		}
		if m.AddElement(hs[0], hs[1], hs[2]) == NoElement {
			return nil, errors.Errorf("could not add element %v", tri)
		}
	}
	return m, nil
}
