package internal

import "math"

// Adaptive orientation and in-circle determinants. Each predicate first
// evaluates the determinant in plain floating point and accepts the result
// when its magnitude clears a forward error bound. Only near-degenerate input
// falls through to the exact expansion evaluation. The sign of the returned
// value is always exact; its magnitude is approximate.

var (
	// Half an ulp of 1.0.
	epsilon = math.Ldexp(1, -53)

	ccwErrBoundA = (3 + 16*epsilon) * epsilon
	iccErrBoundA = (10 + 96*epsilon) * epsilon
)

// Orient2D is positive if a, b, c occur in counterclockwise order, negative if
// clockwise, and zero if they are collinear. The value is twice the signed area
// of the triangle.
func Orient2D(a, b, c Point) float64 {
	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight

	var detSum float64
	switch {
	case detLeft > 0:
		if detRight <= 0 {
			return det
		}
		detSum = detLeft + detRight
	case detLeft < 0:
		if detRight >= 0 {
			return det
		}
		detSum = -detLeft - detRight
	default:
		return det
	}

	errBound := ccwErrBoundA * detSum
	if det >= errBound || -det >= errBound {
		return det
	}
	return orient2dExact(a, b, c)
}

func orient2dExact(a, b, c Point) float64 {
	acx := diffExpansion(a.X, c.X)
	bcy := diffExpansion(b.Y, c.Y)
	acy := diffExpansion(a.Y, c.Y)
	bcx := diffExpansion(b.X, c.X)

	var leftBuf, rightBuf, negBuf [8]float64
	var detBuf [16]float64
	left := twoTwoProduct(acx, bcy, leftBuf[:0])
	right := twoTwoProduct(acy, bcx, rightBuf[:0])
	det := expansionSum(left, negateExpansion(right, negBuf[:0]), detBuf[:0])
	return estimate(det)
}

// InCircle is positive if d lies inside the circle through a, b, c, negative
// if it lies outside, and zero if the four points are cocircular. a, b, c must
// be in counterclockwise order, otherwise the sign is reversed.
func InCircle(a, b, c, d Point) float64 {
	adx := a.X - d.X
	bdx := b.X - d.X
	cdx := c.X - d.X
	ady := a.Y - d.Y
	bdy := b.Y - d.Y
	cdy := c.Y - d.Y

	bdxcdy := bdx * cdy
	cdxbdy := cdx * bdy
	alift := adx*adx + ady*ady

	cdxady := cdx * ady
	adxcdy := adx * cdy
	blift := bdx*bdx + bdy*bdy

	adxbdy := adx * bdy
	bdxady := bdx * ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) +
		blift*(cdxady-adxcdy) +
		clift*(adxbdy-bdxady)

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	errBound := iccErrBoundA * permanent
	if det > errBound || -det > errBound {
		return det
	}
	return inCircleExact(a, b, c, d)
}

func inCircleExact(a, b, c, d Point) float64 {
	adx := diffExpansion(a.X, d.X)
	bdx := diffExpansion(b.X, d.X)
	cdx := diffExpansion(c.X, d.X)
	ady := diffExpansion(a.Y, d.Y)
	bdy := diffExpansion(b.Y, d.Y)
	cdy := diffExpansion(c.Y, d.Y)

	lift := func(dx, dy [2]float64) []float64 {
		var xx, yy [8]float64
		return expansionSum(
			twoTwoProduct(dx, dx, xx[:0]),
			twoTwoProduct(dy, dy, yy[:0]),
			make([]float64, 0, 16),
		)
	}
	cross := func(ux, vy, vx, uy [2]float64) []float64 {
		var plus, minus, neg [8]float64
		return expansionSum(
			twoTwoProduct(ux, vy, plus[:0]),
			negateExpansion(twoTwoProduct(vx, uy, minus[:0]), neg[:0]),
			make([]float64, 0, 16),
		)
	}

	aterm := expansionProduct(lift(adx, ady), cross(bdx, cdy, cdx, bdy))
	bterm := expansionProduct(lift(bdx, bdy), cross(cdx, ady, adx, cdy))
	cterm := expansionProduct(lift(cdx, cdy), cross(adx, bdy, bdx, ady))

	abterm := expansionSum(aterm, bterm, make([]float64, 0, len(aterm)+len(bterm)))
	det := expansionSum(abterm, cterm, make([]float64, 0, len(abterm)+len(cterm)))
	return estimate(det)
}
