package physics

import (
	"math"

	"github.com/milk9111/firstperson/common"
	"gonum.org/v1/gonum/spatial/r3"
)

func closestPointOnSegment(a, b, p r3.Vec) (r3.Vec, float64) {
	ab := r3.Sub(b, a)
	den := r3.Dot(ab, ab)
	if den < common.Epsilon*common.Epsilon {
		return a, 0
	}
	t := common.Clamp01(r3.Dot(r3.Sub(p, a), ab) / den)
	return r3.Add(a, r3.Scale(t, ab)), t
}

// closestSegmentSegment returns the closest points c1 on p1q1 and c2 on p2q2.
func closestSegmentSegment(p1, q1, p2, q2 r3.Vec) (c1, c2 r3.Vec) {
	const eps = 1e-12
	d1 := r3.Sub(q1, p1)
	d2 := r3.Sub(q2, p2)
	r := r3.Sub(p1, p2)
	a := r3.Dot(d1, d1)
	e := r3.Dot(d2, d2)
	f := r3.Dot(d2, r)

	var s, t float64
	switch {
	case a <= eps && e <= eps:
	case a <= eps:
		t = common.Clamp01(f / e)
	default:
		c := r3.Dot(d1, r)
		if e <= eps {
			s = common.Clamp01(-c / a)
			break
		}
		b := r3.Dot(d1, d2)
		if denom := a*e - b*b; denom > eps {
			s = common.Clamp01((b*f - c*e) / denom)
		}
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = common.Clamp01(-c / a)
		} else if t > 1 {
			t = 1
			s = common.Clamp01((b - c) / a)
		}
	}
	return r3.Add(p1, r3.Scale(s, d1)), r3.Add(p2, r3.Scale(t, d2))
}

// minOnSegment minimizes a convex function of a point along the segment ab
// by ternary search and returns the minimum and where it occurs.
func minOnSegment(a, b r3.Vec, f func(r3.Vec) float64) (float64, r3.Vec) {
	ab := r3.Sub(b, a)
	if r3.Norm2(ab) < common.Epsilon*common.Epsilon {
		return f(a), a
	}
	at := func(t float64) r3.Vec { return r3.Add(a, r3.Scale(t, ab)) }
	lo, hi := 0.0, 1.0
	for i := 0; i < 48; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if f(at(m1)) <= f(at(m2)) {
			hi = m2
		} else {
			lo = m1
		}
	}
	best := at((lo + hi) / 2)
	d := f(best)
	// Endpoints win ties so flat faces report a deterministic point.
	if da := f(a); da <= d {
		d, best = da, a
	}
	if db := f(b); db < d {
		d, best = db, b
	}
	return d, best
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func minVec(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxVec(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

func grow(v r3.Vec, by float64) r3.Vec {
	return r3.Add(v, r3.Vec{X: by, Y: by, Z: by})
}
