// A planar triangle mesh with robust geometric predicates for Go.
//
// This package provides a half-edge mesh whose editing operators (adding and
// removing nodes, edges and elements, swapping, splitting and collapsing
// edges) always leave a consistently oriented, manifold mesh, together with
// adaptive exact orientation and in-circle tests. It is the core that mesh
// generators such as Delaunay triangulators and refinement engines are built
// on.
//
// Operators that can be refused report it through their return value
// (NoEdge, NoElement or false). Misuse, such as passing the handle of a removed
// entity, is a programming error and panics.
package umesh

import (
	"github.com/osuushi/umesh/internal"
)

type Point = internal.Point
type Polygon = internal.Polygon
type Mesh = internal.Mesh
type Side = internal.Side

type NodeID = internal.NodeID
type EdgeID = internal.EdgeID
type HalfEdgeID = internal.HalfEdgeID
type ElementID = internal.ElementID

const (
	NoNode     = internal.NoNode
	NoEdge     = internal.NoEdge
	NoHalfEdge = internal.NoHalfEdge
	NoElement  = internal.NoElement
)

const (
	OnNegativeSide = internal.OnNegativeSide
	OnBoundary     = internal.OnBoundary
	OnPositiveSide = internal.OnPositiveSide
)

// NewMesh returns an empty mesh. Set its Logger to see why operations are
// refused.
func NewMesh() *Mesh {
	return internal.NewMesh()
}

// FanMesh triangulates a strictly convex, counterclockwise polygon as a fan
// around its first point.
func FanMesh(poly Polygon) (*Mesh, error) {
	return internal.FanMesh(poly)
}

// MonotoneMesh triangulates a counterclockwise Y-monotone polygon without
// adding points.
func MonotoneMesh(poly Polygon) (*Mesh, error) {
	return internal.MonotoneMesh(poly)
}

// Orient2D is positive if a, b, c are counterclockwise, negative if they are
// clockwise, and exactly zero if they are collinear.
func Orient2D(a, b, c Point) float64 {
	return internal.Orient2D(a, b, c)
}

// InCircle is positive if d is inside the circle through the counterclockwise
// points a, b, c, negative if outside, and exactly zero if cocircular.
func InCircle(a, b, c, d Point) float64 {
	return internal.InCircle(a, b, c, d)
}

// OrientedSide classifies test against the directed line a->b. The left side
// is positive.
func OrientedSide(a, b, test Point) Side {
	return internal.OrientedSide(a, b, test)
}

// OrientedCircle classifies test against the circle through the
// counterclockwise points a, b, c. Inside is positive.
func OrientedCircle(a, b, c, test Point) Side {
	return internal.OrientedCircle(a, b, c, test)
}

func SignedArea(a, b, c Point) float64 {
	return internal.SignedArea(a, b, c)
}

// Circumcenter returns the center of the circle through p1, p2, p3, or an
// error if they are collinear.
func Circumcenter(p1, p2, p3 Point) (result Point, err error) {
	defer func() {
		if recoveredErr := internal.HandleContractPanicRecover(recover()); recoveredErr != nil {
			result = Point{}
			err = recoveredErr
		}
	}()
	return internal.Circumcenter(p1, p2, p3), nil
}

// Offcenter returns the off-center of the triangle p1, p2, p3 for the given
// off-center constant, or an error unless the triangle is strictly
// counterclockwise.
func Offcenter(p1, p2, p3 Point, offconstant float64) (result Point, err error) {
	defer func() {
		if recoveredErr := internal.HandleContractPanicRecover(recover()); recoveredErr != nil {
			result = Point{}
			err = recoveredErr
		}
	}()
	return internal.Offcenter(p1, p2, p3, offconstant), nil
}

// Validate checks the structural invariants of m, recovering from a stale
// handle inside the mesh as an error rather than a panic.
func Validate(m *Mesh) (err error) {
	defer func() {
		if recoveredErr := internal.HandleContractPanicRecover(recover()); recoveredErr != nil {
			err = recoveredErr
		}
	}()
	return m.Validate()
}
