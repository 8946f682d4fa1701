package physics

import (
	"math"

	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// ContactOffset is the gap movers keep from surfaces they stop against.
	ContactOffset = 0.001

	// contactTolerance is the separation below which a sweep reports
	// contact. Overlaps shallower than this are ignored.
	contactTolerance = 1e-4

	maxSweepIterations = 96
	maxRecoveryPasses  = 4
)

// Hit describes the first obstruction found by a sweep or raycast.
type Hit struct {
	Entity   ecs.Entity
	Layer    LayerMask
	Distance float64
	Normal   r3.Vec
	Point    r3.Vec
}

// OverlapCapsule returns every collider in mask that penetrates c, except
// ignore. Resting contact does not count as overlap.
func (w *World) OverlapCapsule(c Capsule, mask LayerMask, ignore ecs.Entity) []ecs.Entity {
	lo, hi, _ := c.Bounds()
	var out []ecs.Entity
	for _, e := range w.candidates(lo, hi, mask, ignore) {
		b, _ := w.bodies.Get(e)
		d, _, _ := b.shape.segmentDistance(c.Bottom, c.Top)
		if d-c.Radius < -contactTolerance {
			out = append(out, e)
		}
	}
	return out
}

// SweepCapsule moves c along dir for up to maxDist and returns the first
// collider it would touch. A collider already touching c only blocks the
// sweep if dir points into it.
func (w *World) SweepCapsule(c Capsule, dir r3.Vec, maxDist float64, mask LayerMask, ignore ecs.Entity) (Hit, bool) {
	dir, ok := common.SafeUnit(dir)
	if !ok || maxDist < 0 || !common.IsFinite(maxDist) {
		return Hit{}, false
	}
	lo, hi, _ := c.Bounds()
	end := c.Translate(r3.Scale(maxDist, dir))
	elo, ehi, _ := end.Bounds()
	lo, hi = grow(minVec(lo, elo), -proxyMargin), grow(maxVec(hi, ehi), proxyMargin)

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, e := range w.candidates(lo, hi, mask, ignore) {
		b, _ := w.bodies.Get(e)
		hit, ok := sweepShape(b.shape, c, dir, maxDist)
		if !ok || hit.Distance >= best.Distance {
			continue
		}
		hit.Entity = e
		hit.Layer = b.layer
		best = hit
		found = true
	}
	return best, found
}

// Raycast returns the first collider in mask hit by the ray. Colliders that
// contain origin are skipped.
func (w *World) Raycast(origin, dir r3.Vec, maxDist float64, mask LayerMask, ignore ecs.Entity) (Hit, bool) {
	dir, ok := common.SafeUnit(dir)
	if !ok || maxDist < 0 || !common.IsFinite(maxDist) {
		return Hit{}, false
	}
	end := r3.Add(origin, r3.Scale(maxDist, dir))
	lo, hi := grow(minVec(origin, end), -proxyMargin), grow(maxVec(origin, end), proxyMargin)

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, e := range w.candidates(lo, hi, mask, ignore) {
		b, _ := w.bodies.Get(e)
		t, n, ok := b.shape.raycast(origin, dir, maxDist)
		if !ok || t >= best.Distance {
			continue
		}
		best = Hit{Entity: e, Layer: b.layer, Distance: t, Normal: n, Point: r3.Add(origin, r3.Scale(t, dir))}
		found = true
	}
	return best, found
}

// Penetration returns the translation that pushes c out of every collider
// in mask it overlaps, leaving ContactOffset of clearance.
func (w *World) Penetration(c Capsule, mask LayerMask, ignore ecs.Entity) (r3.Vec, bool) {
	var total r3.Vec
	moved := false
	for pass := 0; pass < maxRecoveryPasses; pass++ {
		resolved := true
		lo, hi, _ := c.Bounds()
		for _, e := range w.candidates(lo, hi, mask, ignore) {
			b, _ := w.bodies.Get(e)
			d, _, n := b.shape.segmentDistance(c.Bottom, c.Top)
			d -= c.Radius
			if d >= -contactTolerance {
				continue
			}
			push := r3.Scale(-d+ContactOffset, n)
			c = c.Translate(push)
			total = r3.Add(total, push)
			resolved = false
			moved = true
		}
		if resolved {
			break
		}
	}
	return total, moved
}

func sweepShape(s Shape, c Capsule, dir r3.Vec, maxDist float64) (Hit, bool) {
	if p, ok := s.(Plane); ok {
		return sweepPlane(p, c, dir, maxDist)
	}
	probe := func(t float64) (float64, r3.Vec, r3.Vec, float64) {
		moved := c.Translate(r3.Scale(t, dir))
		d, at, n := s.segmentDistance(moved.Bottom, moved.Top)
		return d - c.Radius, at, n, d
	}
	hitAt := func(t float64) (Hit, bool) {
		_, at, n, d := probe(t)
		return Hit{Distance: t, Normal: n, Point: r3.Sub(at, r3.Scale(d, n))}, true
	}

	gap, _, n, _ := probe(0)
	if gap <= contactTolerance {
		if r3.Dot(dir, n) >= -common.Epsilon {
			return Hit{}, false
		}
		return hitAt(0)
	}

	// The gap is convex in t, so once a step lands inside the shape the
	// contact lies between the last two samples.
	minStep := 2 * maxDist / maxSweepIterations
	safe := 0.0
	for i := 0; i < maxSweepIterations && safe < maxDist; i++ {
		t := min(safe+max(gap, minStep), maxDist)
		g, _, _, _ := probe(t)
		switch {
		case g < -contactTolerance:
			lo, hi := safe, t
			for j := 0; j < 40; j++ {
				mid := (lo + hi) / 2
				if gm, _, _, _ := probe(mid); gm > contactTolerance {
					lo = mid
				} else {
					hi = mid
				}
			}
			return hitAt(lo)
		case g <= contactTolerance:
			return hitAt(t)
		}
		safe, gap = t, g
	}
	return Hit{}, false
}

func sweepPlane(p Plane, c Capsule, dir r3.Vec, maxDist float64) (Hit, bool) {
	d, at, n := p.segmentDistance(c.Bottom, c.Top)
	gap := d - c.Radius
	rate := r3.Dot(n, dir)
	if rate >= -common.Epsilon {
		return Hit{}, false
	}
	t := 0.0
	if gap > contactTolerance {
		t = gap / -rate
		if t > maxDist {
			return Hit{}, false
		}
	}
	at = r3.Add(at, r3.Scale(t, dir))
	return Hit{Distance: t, Normal: n, Point: r3.Sub(at, r3.Scale(c.Radius, n))}, true
}
