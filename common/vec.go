package common

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	Up      = r3.Vec{Y: 1}
	Down    = r3.Vec{Y: -1}
	Forward = r3.Vec{Z: 1}
	Right   = r3.Vec{X: 1}
)

// SafeUnit normalizes v. The second result is false when v is too short to
// have a direction, in which case the zero vector is returned.
func SafeUnit(v r3.Vec) (r3.Vec, bool) {
	n := r3.Norm(v)
	if n < Epsilon || !IsFinite(n) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/n, v), true
}

// Horizontal drops the vertical component of v.
func Horizontal(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Z: v.Z}
}

// WithY returns v with its vertical component replaced.
func WithY(v r3.Vec, y float64) r3.Vec {
	v.Y = y
	return v
}

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(v, n), n))
}

// ClampMagnitude shortens v to max if it is longer.
func ClampMagnitude(v r3.Vec, max float64) r3.Vec {
	n := r3.Norm(v)
	if n <= max || n < Epsilon {
		return v
	}
	return r3.Scale(max/n, v)
}

// AngleDeg returns the unsigned angle between a and b in degrees.
func AngleDeg(a, b r3.Vec) float64 {
	na, nb := r3.Norm(a), r3.Norm(b)
	if na < Epsilon || nb < Epsilon {
		return 0
	}
	c := Clamp(r3.Dot(a, b)/(na*nb), -1, 1)
	return Rad2Deg(math.Acos(c))
}

func LerpVec(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// YawForward returns the horizontal unit forward vector for a yaw in
// degrees. Yaw 0 faces +Z, yaw 90 faces +X.
func YawForward(yawDeg float64) r3.Vec {
	r := Deg2Rad(yawDeg)
	return r3.Vec{X: math.Sin(r), Z: math.Cos(r)}
}

// YawRight returns the horizontal unit right vector for a yaw in degrees.
func YawRight(yawDeg float64) r3.Vec {
	r := Deg2Rad(yawDeg)
	return r3.Vec{X: math.Cos(r), Z: -math.Sin(r)}
}

// LookForward returns the unit view direction for a yaw and pitch in
// degrees. Positive pitch looks down.
func LookForward(yawDeg, pitchDeg float64) r3.Vec {
	y, p := Deg2Rad(yawDeg), Deg2Rad(pitchDeg)
	cp := math.Cos(p)
	return r3.Vec{X: math.Sin(y) * cp, Y: -math.Sin(p), Z: math.Cos(y) * cp}
}

// VecIsFinite reports whether every component of v is finite.
func VecIsFinite(v r3.Vec) bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}
