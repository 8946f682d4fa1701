package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSmoothFactor(t *testing.T) {
	cases := []struct {
		name      string
		sharpness float64
		dt        float64
		want      float64
	}{
		{"ground_walk", 15, 0.1, 1 - math.Exp(-1.5)},
		{"zero_dt", 15, 0, 0},
		{"zero_sharpness", 0, 0.1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SmoothFactor(c.sharpness, c.dt)
			assert.InDelta(t, c.want, got, 1e-12)
			assert.Less(t, got, 1.0)
		})
	}
}

func TestSafeUnit(t *testing.T) {
	u, ok := SafeUnit(r3.Vec{X: 3, Z: 4})
	require.True(t, ok)
	assert.InDelta(t, 1, r3.Norm(u), 1e-12)

	z, ok := SafeUnit(r3.Vec{})
	assert.False(t, ok)
	assert.Equal(t, r3.Vec{}, z)
}

func TestProjectOnPlane(t *testing.T) {
	v := ProjectOnPlane(r3.Vec{X: 1, Y: -2, Z: 3}, Up)
	assert.Equal(t, r3.Vec{X: 1, Z: 3}, v)
}

func TestClampMagnitude(t *testing.T) {
	v := ClampMagnitude(r3.Vec{X: 6, Z: 8}, 5)
	assert.InDelta(t, 5, r3.Norm(v), 1e-12)
	assert.InDelta(t, 3, v.X, 1e-12)

	short := r3.Vec{X: 1}
	assert.Equal(t, short, ClampMagnitude(short, 5))
}

func TestYawBasis(t *testing.T) {
	for _, yaw := range []float64{0, 37, 90, 180, -45} {
		f, r := YawForward(yaw), YawRight(yaw)
		assert.InDelta(t, 0, r3.Dot(f, r), 1e-12)
		cross := r3.Cross(Up, f)
		assert.InDelta(t, r.X, cross.X, 1e-12)
		assert.InDelta(t, r.Z, cross.Z, 1e-12)
	}
	look := LookForward(0, 90)
	assert.InDelta(t, -1, look.Y, 1e-12)
}

func TestAngleDeg(t *testing.T) {
	assert.InDelta(t, 90, AngleDeg(Up, Right), 1e-9)
	assert.InDelta(t, 45, AngleDeg(Up, r3.Vec{X: 1, Y: 1}), 1e-9)
	assert.Equal(t, 0.0, AngleDeg(Up, r3.Vec{}))
}
