package internal

import "math"

// Expansion arithmetic, following Shewchuk's "Adaptive Precision
// Floating-Point Arithmetic and Fast Robust Geometric Predicates". An expansion
// is a slice of float64 components, ordered by increasing magnitude and
// pairwise nonoverlapping, whose exact sum is the value it represents. Because
// the largest component dominates the rest, the sign of an expansion is the
// sign of its last component.
//
// All routines append into a caller-supplied slice so that the small fixed
// size cases (orientation) can run out of stack arrays. None of them ever
// return an empty expansion; zero is represented as a single zero component.

// twoSum returns x = fl(a+b) and the roundoff error y, so that a+b = x+y
// exactly.
func twoSum(a, b float64) (x, y float64) {
	x = a + b
	bVirtual := x - a
	aVirtual := x - bVirtual
	bRoundoff := b - bVirtual
	aRoundoff := a - aVirtual
	y = aRoundoff + bRoundoff
	return
}

// fastTwoSum is twoSum for |a| >= |b|.
func fastTwoSum(a, b float64) (x, y float64) {
	x = a + b
	bVirtual := x - a
	y = b - bVirtual
	return
}

func twoDiff(a, b float64) (x, y float64) {
	return twoSum(a, -b)
}

// twoProduct returns x = fl(a*b) and the exact error y. The fused multiply-add
// computes a*b-x with a single rounding, and that difference is representable.
func twoProduct(a, b float64) (x, y float64) {
	x = a * b
	y = math.FMA(a, b, -x)
	return
}

// diffExpansion is the exact difference a-b as a two component expansion.
func diffExpansion(a, b float64) [2]float64 {
	x, y := twoDiff(a, b)
	return [2]float64{y, x}
}

// scaleExpansion appends e*b to h. h needs room for 2*len(e) components.
func scaleExpansion(e []float64, b float64, h []float64) []float64 {
	q, hh := twoProduct(e[0], b)
	if hh != 0 {
		h = append(h, hh)
	}
	for _, c := range e[1:] {
		product1, product0 := twoProduct(c, b)
		sum, hh := twoSum(q, product0)
		if hh != 0 {
			h = append(h, hh)
		}
		q, hh = fastTwoSum(product1, sum)
		if hh != 0 {
			h = append(h, hh)
		}
	}
	if q != 0 || len(h) == 0 {
		h = append(h, q)
	}
	return h
}

// expansionSum appends e+f to h. h needs room for len(e)+len(f) components
// and must not share storage with e or f.
func expansionSum(e, f []float64, h []float64) []float64 {
	// Merge the components by magnitude, then sweep them into an accumulator.
	smaller := func(a, b float64) bool {
		return (b > a) == (b > -a)
	}
	ei, fi := 0, 0
	take := func() float64 {
		if fi >= len(f) || (ei < len(e) && smaller(e[ei], f[fi])) {
			ei++
			return e[ei-1]
		}
		fi++
		return f[fi-1]
	}

	q := take()
	for ei < len(e) || fi < len(f) {
		var hh float64
		q, hh = twoSum(q, take())
		if hh != 0 {
			h = append(h, hh)
		}
	}
	if q != 0 || len(h) == 0 {
		h = append(h, q)
	}
	return h
}

func negateExpansion(e []float64, h []float64) []float64 {
	for _, c := range e {
		h = append(h, -c)
	}
	return h
}

// expansionProduct returns e*f as a freshly allocated expansion. It is only
// used on the slow path of the in-circle test, where the intermediate
// expansions get too large for fixed buffers.
func expansionProduct(e, f []float64) []float64 {
	var h []float64
	for _, c := range f {
		term := scaleExpansion(e, c, make([]float64, 0, 2*len(e)))
		if h == nil {
			h = term
			continue
		}
		h = expansionSum(h, term, make([]float64, 0, len(h)+len(term)))
	}
	return h
}

// twoTwoProduct appends the product of two 2-component expansions to h, which
// needs room for 8 components.
func twoTwoProduct(e, f [2]float64, h []float64) []float64 {
	var low, high [4]float64
	p0 := scaleExpansion(e[:], f[0], low[:0])
	p1 := scaleExpansion(e[:], f[1], high[:0])
	return expansionSum(p0, p1, h)
}

// estimate approximates the value of an expansion, keeping its exact sign.
func estimate(e []float64) float64 {
	var sum float64
	for _, c := range e {
		sum += c
	}
	top := e[len(e)-1]
	if (sum > 0) != (top > 0) || (sum < 0) != (top < 0) {
		return top
	}
	return sum
}
