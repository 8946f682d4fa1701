package physics

import (
	"math"

	"github.com/milk9111/firstperson/common"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shape is a static collision volume. Every shape is convex.
type Shape interface {
	// Bounds returns the axis-aligned bounds. finite is false for
	// unbounded shapes.
	Bounds() (min, max r3.Vec, finite bool)

	// segmentDistance returns the smallest signed distance between the
	// segment ab and the shape surface, the segment point where it occurs,
	// and the outward surface normal there.
	segmentDistance(a, b r3.Vec) (d float64, at, normal r3.Vec)

	// raycast returns the entry distance along the unit direction dir.
	// Rays that start inside the shape do not hit it.
	raycast(origin, dir r3.Vec, maxDist float64) (t float64, normal r3.Vec, ok bool)
}

// Plane is a solid half-space below the surface dot(Normal, p) = Offset.
type Plane struct {
	Normal r3.Vec
	Offset float64
}

func (p Plane) Bounds() (r3.Vec, r3.Vec, bool) {
	return r3.Vec{}, r3.Vec{}, false
}

func (p Plane) signed(q r3.Vec) float64 {
	return r3.Dot(p.Normal, q) - p.Offset
}

func (p Plane) segmentDistance(a, b r3.Vec) (float64, r3.Vec, r3.Vec) {
	da, db := p.signed(a), p.signed(b)
	if db < da {
		return db, b, p.Normal
	}
	return da, a, p.Normal
}

func (p Plane) raycast(origin, dir r3.Vec, maxDist float64) (float64, r3.Vec, bool) {
	d0 := p.signed(origin)
	rate := r3.Dot(p.Normal, dir)
	if d0 < 0 || rate >= -common.Epsilon {
		return 0, r3.Vec{}, false
	}
	t := d0 / -rate
	if t > maxDist {
		return 0, r3.Vec{}, false
	}
	return t, p.Normal, true
}

// Box is an axis-aligned box.
type Box struct {
	Min, Max r3.Vec
}

func (b Box) Bounds() (r3.Vec, r3.Vec, bool) {
	return b.Min, b.Max, true
}

func (b Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

func (b Box) half() r3.Vec {
	return r3.Scale(0.5, r3.Sub(b.Max, b.Min))
}

func (b Box) signed(p r3.Vec) (float64, r3.Vec) {
	d := r3.Sub(p, b.Center())
	h := b.half()
	q := r3.Vec{X: math.Abs(d.X) - h.X, Y: math.Abs(d.Y) - h.Y, Z: math.Abs(d.Z) - h.Z}
	out := r3.Vec{X: math.Max(q.X, 0), Y: math.Max(q.Y, 0), Z: math.Max(q.Z, 0)}
	if n := r3.Norm(out); n > 0 {
		dir := r3.Vec{X: out.X * sign(d.X), Y: out.Y * sign(d.Y), Z: out.Z * sign(d.Z)}
		return n, r3.Scale(1/n, dir)
	}
	switch {
	case q.X >= q.Y && q.X >= q.Z:
		return q.X, r3.Vec{X: sign(d.X)}
	case q.Y >= q.Z:
		return q.Y, r3.Vec{Y: sign(d.Y)}
	default:
		return q.Z, r3.Vec{Z: sign(d.Z)}
	}
}

func (b Box) segmentDistance(a, c r3.Vec) (float64, r3.Vec, r3.Vec) {
	d, at := minOnSegment(a, c, func(p r3.Vec) float64 {
		s, _ := b.signed(p)
		return s
	})
	_, n := b.signed(at)
	return d, at, n
}

// raycast is the slab test extended to three axes.
func (b Box) raycast(origin, dir r3.Vec, maxDist float64) (float64, r3.Vec, bool) {
	tmin, tmax := 0.0, maxDist
	var normal r3.Vec
	inside := true
	axes := [3]struct{ o, d, lo, hi float64 }{
		{origin.X, dir.X, b.Min.X, b.Max.X},
		{origin.Y, dir.Y, b.Min.Y, b.Max.Y},
		{origin.Z, dir.Z, b.Min.Z, b.Max.Z},
	}
	for i, ax := range axes {
		if ax.o < ax.lo || ax.o > ax.hi {
			inside = false
		}
		if ax.d == 0 {
			if ax.o < ax.lo || ax.o > ax.hi {
				return 0, r3.Vec{}, false
			}
			continue
		}
		inv := 1 / ax.d
		t1 := (ax.lo - ax.o) * inv
		t2 := (ax.hi - ax.o) * inv
		n := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			n = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = axisVec(i, n)
		}
		tmax = math.Min(tmax, t2)
		if tmax < tmin {
			return 0, r3.Vec{}, false
		}
	}
	if inside {
		return 0, r3.Vec{}, false
	}
	return tmin, normal, true
}

func axisVec(i int, s float64) r3.Vec {
	switch i {
	case 0:
		return r3.Vec{X: s}
	case 1:
		return r3.Vec{Y: s}
	default:
		return r3.Vec{Z: s}
	}
}

// Sphere is a ball around Center.
type Sphere struct {
	Center r3.Vec
	Radius float64
}

func (s Sphere) Bounds() (r3.Vec, r3.Vec, bool) {
	return grow(s.Center, -s.Radius), grow(s.Center, s.Radius), true
}

func (s Sphere) segmentDistance(a, b r3.Vec) (float64, r3.Vec, r3.Vec) {
	at, _ := closestPointOnSegment(a, b, s.Center)
	off := r3.Sub(at, s.Center)
	n, ok := common.SafeUnit(off)
	if !ok {
		n = common.Up
	}
	return r3.Norm(off) - s.Radius, at, n
}

func (s Sphere) raycast(origin, dir r3.Vec, maxDist float64) (float64, r3.Vec, bool) {
	f := r3.Sub(origin, s.Center)
	b := r3.Dot(f, dir)
	c := r3.Dot(f, f) - s.Radius*s.Radius
	if c < 0 {
		return 0, r3.Vec{}, false
	}
	disc := b*b - c
	if disc < 0 || b > 0 {
		return 0, r3.Vec{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 || t > maxDist {
		return 0, r3.Vec{}, false
	}
	n, _ := common.SafeUnit(r3.Sub(r3.Add(origin, r3.Scale(t, dir)), s.Center))
	return t, n, true
}

// Capsule is a segment between two hemisphere centers swept by Radius.
// The character body and capsule-shaped props share this type.
type Capsule struct {
	Bottom, Top r3.Vec
	Radius      float64
}

// CapsuleAt builds an upright capsule whose lowest point is feet.
func CapsuleAt(feet r3.Vec, height, radius float64) Capsule {
	bottom := r3.Add(feet, r3.Scale(radius, common.Up))
	top := r3.Add(feet, r3.Scale(math.Max(height-radius, radius), common.Up))
	return Capsule{Bottom: bottom, Top: top, Radius: radius}
}

// Translate returns the capsule moved by d.
func (c Capsule) Translate(d r3.Vec) Capsule {
	return Capsule{Bottom: r3.Add(c.Bottom, d), Top: r3.Add(c.Top, d), Radius: c.Radius}
}

// Height is the full extent along the capsule axis.
func (c Capsule) Height() float64 {
	return r3.Norm(r3.Sub(c.Top, c.Bottom)) + 2*c.Radius
}

func (c Capsule) Bounds() (r3.Vec, r3.Vec, bool) {
	return grow(minVec(c.Bottom, c.Top), -c.Radius), grow(maxVec(c.Bottom, c.Top), c.Radius), true
}

func (c Capsule) segmentDistance(a, b r3.Vec) (float64, r3.Vec, r3.Vec) {
	at, on := closestSegmentSegment(a, b, c.Bottom, c.Top)
	off := r3.Sub(at, on)
	n, ok := common.SafeUnit(off)
	if !ok {
		n = common.Up
	}
	return r3.Norm(off) - c.Radius, at, n
}

func (c Capsule) raycast(origin, dir r3.Vec, maxDist float64) (float64, r3.Vec, bool) {
	if d, _, _ := c.segmentDistance(origin, origin); d < 0 {
		return 0, r3.Vec{}, false
	}
	t := 0.0
	for i := 0; i < maxSweepIterations; i++ {
		p := r3.Add(origin, r3.Scale(t, dir))
		d, _, n := c.segmentDistance(p, p)
		if d <= contactTolerance {
			if i == 0 && r3.Dot(dir, n) >= 0 {
				return 0, r3.Vec{}, false
			}
			return t, n, true
		}
		t += d
		if t > maxDist {
			break
		}
	}
	return 0, r3.Vec{}, false
}
