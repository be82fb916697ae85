package internal

// Side is the outcome of a sidedness test.
type Side int

const (
	OnNegativeSide Side = iota - 1
	OnBoundary
	OnPositiveSide
)

func (s Side) String() string {
	switch s {
	case OnNegativeSide:
		return "negative"
	case OnBoundary:
		return "boundary"
	case OnPositiveSide:
		return "positive"
	}
	return "invalid"
}

func sideOf(det float64) Side {
	switch {
	case det > 0:
		return OnPositiveSide
	case det < 0:
		return OnNegativeSide
	}
	return OnBoundary
}

// OrientedSide classifies test against the directed line a->b. Points to the
// left are on the positive side, points exactly on the line are on the
// boundary.
func OrientedSide(a, b, test Point) Side {
	return sideOf(Orient2D(a, b, test))
}

// OrientedCircle classifies test against the circle through a, b, c, which
// must be given counterclockwise. Inside is positive, outside is negative and
// exactly on the circle is the boundary.
func OrientedCircle(a, b, c, test Point) Side {
	return sideOf(InCircle(a, b, c, test))
}

// SignedArea is positive iff a, b, c are counterclockwise.
func SignedArea(a, b, c Point) float64 {
	return 0.5 * Orient2D(a, b, c)
}

// Circumcenter returns the point equidistant from p1, p2 and p3. The points
// must not be collinear.
func Circumcenter(p1, p2, p3 Point) Point {
	area := SignedArea(p1, p2, p3)
	if area == 0 {
		fatalf("circumcenter of collinear points %v, %v, %v", p1, p2, p3)
	}
	dx, dy := circumcenterOffset(p1, p2, p3, area)
	return Point{p1.X + dx, p1.Y + dy}
}

// circumcenterOffset is the circumcenter relative to p1.
func circumcenterOffset(p1, p2, p3 Point, area float64) (dx, dy float64) {
	p2p1 := p2.Sub(p1)
	p3p1 := p3.Sub(p1)
	p2p1dist := p2p1.Dot(p2p1)
	p3p1dist := p3p1.Dot(p3p1)
	denominator := 0.5 / (2 * area)
	dx = (p3p1.Y*p2p1dist - p2p1.Y*p3p1dist) * denominator
	dy = (p2p1.X*p3p1dist - p3p1.X*p2p1dist) * denominator
	return
}

// Offcenter returns the insertion point used by off-center refinement
// (Üngör). The shortest edge of the triangle is found and a point is placed on
// its perpendicular bisector, offconstant edge lengths away from the edge
// midpoint, towards the inside of the triangle. If that point is closer to
// the edge than the circumcenter it is used, otherwise the circumcenter is.
// The triangle must be strictly counterclockwise.
func Offcenter(p1, p2, p3 Point, offconstant float64) Point {
	area := SignedArea(p1, p2, p3)
	if area <= 0 {
		fatalf("offcenter of a degenerate or clockwise triangle %v, %v, %v", p1, p2, p3)
	}

	p2p1 := p2.Sub(p1)
	p3p1 := p3.Sub(p1)
	p3p2 := p3.Sub(p2)
	p2p1dist := p2p1.Dot(p2p1)
	p3p1dist := p3p1.Dot(p3p1)
	p3p2dist := p3p2.Dot(p3p2)
	dx, dy := circumcenterOffset(p1, p2, p3, area)

	var dxoff, dyoff float64
	switch {
	case p2p1dist < p3p1dist && p2p1dist < p3p2dist:
		// Shortest edge is p1p2, measure from p1.
		dxoff = 0.5*p2p1.X - offconstant*p2p1.Y
		dyoff = 0.5*p2p1.Y + offconstant*p2p1.X
		if dxoff*dxoff+dyoff*dyoff < dx*dx+dy*dy {
			dx, dy = dxoff, dyoff
		}
	case p3p1dist < p3p2dist:
		// Shortest edge is p1p3, measure from p1.
		dxoff = 0.5*p3p1.X + offconstant*p3p1.Y
		dyoff = 0.5*p3p1.Y - offconstant*p3p1.X
		if dxoff*dxoff+dyoff*dyoff < dx*dx+dy*dy {
			dx, dy = dxoff, dyoff
		}
	default:
		// Shortest edge is p2p3, measure from p2.
		dxoff = 0.5*p3p2.X - offconstant*p3p2.Y
		dyoff = 0.5*p3p2.Y + offconstant*p3p2.X
		ex, ey := dx-p2p1.X, dy-p2p1.Y
		if dxoff*dxoff+dyoff*dyoff < ex*ex+ey*ey {
			dx = p2p1.X + dxoff
			dy = p2p1.Y + dyoff
		}
	}
	return Point{p1.X + dx, p1.Y + dy}
}
