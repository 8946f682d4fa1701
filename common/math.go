package common

import "math"

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-6

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// SmoothFactor converts a sharpness and a timestep into an exponential
// smoothing factor in [0, 1).
func SmoothFactor(sharpness, dt float64) float64 {
	if sharpness <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-sharpness*dt)
}

func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
