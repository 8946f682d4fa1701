package physics

import (
	"testing"

	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld(zerolog.Nop())
	_, err := w.Add("floor", Plane{Normal: common.Up}, LayerDefault)
	require.NoError(t, err)
	return w
}

func mustAdd(t *testing.T, w *World, name string, s Shape, layer LayerMask) ecs.Entity {
	t.Helper()
	e, err := w.Add(name, s, layer)
	require.NoError(t, err)
	return e
}

func TestSweepCapsuleDown(t *testing.T) {
	w := newTestWorld(t)
	crate := mustAdd(t, w, "crate", Box{Min: r3.Vec{X: -1, Z: -1}, Max: r3.Vec{X: 1, Y: 1, Z: 1}}, LayerDefault)

	cases := []struct {
		name   string
		feet   r3.Vec
		want   float64
		entity ecs.Entity
	}{
		{"onto_floor", r3.Vec{X: 5, Y: 1}, 1, 0},
		{"onto_crate", r3.Vec{Y: 2}, 1, crate},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			capsule := CapsuleAt(c.feet, 1.8, 0.35)
			hit, ok := w.SweepCapsule(capsule, common.Down, 5, MaskAll, ecs.NoEntity)
			require.True(t, ok)
			assert.InDelta(t, c.want, hit.Distance, 1e-3)
			assert.InDelta(t, 1, hit.Normal.Y, 1e-6)
			if c.entity != 0 {
				assert.Equal(t, c.entity, hit.Entity)
			}
		})
	}
}

func TestSweepCapsuleRespectsMaxDistance(t *testing.T) {
	w := newTestWorld(t)
	_, ok := w.SweepCapsule(CapsuleAt(r3.Vec{Y: 3}, 1.8, 0.35), common.Down, 1, MaskAll, ecs.NoEntity)
	assert.False(t, ok)
}

func TestSweepCapsuleTouching(t *testing.T) {
	w := newTestWorld(t)
	resting := CapsuleAt(r3.Vec{}, 1.8, 0.35)

	_, ok := w.SweepCapsule(resting, common.Forward, 2, MaskAll, ecs.NoEntity)
	assert.False(t, ok, "moving along the contact plane is free")

	_, ok = w.SweepCapsule(resting, common.Up, 2, MaskAll, ecs.NoEntity)
	assert.False(t, ok, "moving away from contact is free")

	hit, ok := w.SweepCapsule(resting, common.Down, 2, MaskAll, ecs.NoEntity)
	require.True(t, ok)
	assert.Equal(t, 0.0, hit.Distance)
}

func TestSweepCapsuleAlongBoxFloorFindsWall(t *testing.T) {
	w := NewWorld(zerolog.Nop())
	mustAdd(t, w, "slab", Box{Min: r3.Vec{X: -10, Y: -1, Z: -10}, Max: r3.Vec{X: 10, Z: 10}}, LayerDefault)
	wall := mustAdd(t, w, "wall", Box{Min: r3.Vec{X: -10, Z: 6}, Max: r3.Vec{X: 10, Y: 3, Z: 7}}, LayerDefault)

	resting := CapsuleAt(r3.Vec{Y: ContactOffset}, 1.8, 0.35)
	hit, ok := w.SweepCapsule(resting, common.Forward, 8, MaskAll, ecs.NoEntity)
	require.True(t, ok)
	assert.Equal(t, wall, hit.Entity)
	assert.InDelta(t, 6-0.35, hit.Distance, 1e-3)
	assert.InDelta(t, -1, hit.Normal.Z, 1e-6)
}

func TestSweepCapsuleIntoSphereAndCapsule(t *testing.T) {
	w := NewWorld(zerolog.Nop())
	ball := mustAdd(t, w, "ball", Sphere{Center: r3.Vec{Z: 5, Y: 1}, Radius: 1}, LayerDefault)
	pillar := mustAdd(t, w, "pillar", Capsule{Bottom: r3.Vec{X: 5, Y: 0.5}, Top: r3.Vec{X: 5, Y: 3}, Radius: 0.5}, LayerDefault)

	c := CapsuleAt(r3.Vec{}, 1.8, 0.35)
	hit, ok := w.SweepCapsule(c, common.Forward, 10, MaskAll, ecs.NoEntity)
	require.True(t, ok)
	assert.Equal(t, ball, hit.Entity)
	assert.InDelta(t, 5-1-0.35, hit.Distance, 1e-3)
	assert.InDelta(t, -1, hit.Normal.Z, 1e-3)

	hit, ok = w.SweepCapsule(c, common.Right, 10, MaskAll, ecs.NoEntity)
	require.True(t, ok)
	assert.Equal(t, pillar, hit.Entity)
	assert.InDelta(t, 5-0.5-0.35, hit.Distance, 1e-3)
}

func TestQueriesIgnoreSelfAndMask(t *testing.T) {
	w := NewWorld(zerolog.Nop())
	self := mustAdd(t, w, "self", CapsuleAt(r3.Vec{}, 1.8, 0.35), LayerPlayer)
	wall := mustAdd(t, w, "wall", Box{Min: r3.Vec{X: -2, Z: 3}, Max: r3.Vec{X: 2, Y: 3, Z: 4}}, LayerGrapple)

	query := CapsuleAt(r3.Vec{}, 1.8, 0.35)
	assert.Empty(t, w.OverlapCapsule(query, MaskAll, self))
	assert.Equal(t, []ecs.Entity{self}, w.OverlapCapsule(query, MaskAll, ecs.NoEntity))

	_, ok := w.SweepCapsule(query, common.Forward, 10, LayerDefault, self)
	assert.False(t, ok, "wall is on the grapple layer")

	hit, ok := w.SweepCapsule(query, common.Forward, 10, LayerGrapple, self)
	require.True(t, ok)
	assert.Equal(t, wall, hit.Entity)
	assert.Equal(t, LayerGrapple, hit.Layer)
}

func TestOverlapCapsule(t *testing.T) {
	w := newTestWorld(t)
	ceiling := mustAdd(t, w, "ceiling", Box{Min: r3.Vec{X: -2, Y: 1.2, Z: -2}, Max: r3.Vec{X: 2, Y: 1.5, Z: 2}}, LayerDefault)

	standing := CapsuleAt(r3.Vec{Y: ContactOffset}, 1.8, 0.35)
	crouched := CapsuleAt(r3.Vec{Y: ContactOffset}, 0.9, 0.35)

	assert.Equal(t, []ecs.Entity{ceiling}, w.OverlapCapsule(standing, MaskAll, ecs.NoEntity))
	assert.Empty(t, w.OverlapCapsule(crouched, MaskAll, ecs.NoEntity), "resting on the floor is not overlap")
}

func TestRaycast(t *testing.T) {
	w := newTestWorld(t)
	target := mustAdd(t, w, "target", Box{Min: r3.Vec{X: -1, Y: 0, Z: 10}, Max: r3.Vec{X: 1, Y: 4, Z: 11}}, LayerGrapple)
	ball := mustAdd(t, w, "ball", Sphere{Center: r3.Vec{X: 10, Y: 2}, Radius: 1}, LayerDefault)

	origin := r3.Vec{Y: 2}
	hit, ok := w.Raycast(origin, common.Forward, 20, MaskAll, ecs.NoEntity)
	require.True(t, ok)
	assert.Equal(t, target, hit.Entity)
	assert.InDelta(t, 10, hit.Distance, 1e-9)
	assert.Equal(t, r3.Vec{Z: -1}, hit.Normal)
	assert.InDelta(t, 10, hit.Point.Z, 1e-9)

	hit, ok = w.Raycast(origin, common.Right, 20, MaskAll, ecs.NoEntity)
	require.True(t, ok)
	assert.Equal(t, ball, hit.Entity)
	assert.InDelta(t, 9, hit.Distance, 1e-9)

	_, ok = w.Raycast(origin, common.Forward, 5, MaskAll, ecs.NoEntity)
	assert.False(t, ok, "beyond max distance")

	_, ok = w.Raycast(origin, common.Forward, 20, LayerDefault, ecs.NoEntity)
	assert.False(t, ok, "masked out")

	hit, ok = w.Raycast(origin, common.Down, 20, MaskAll, ecs.NoEntity)
	require.True(t, ok)
	assert.InDelta(t, 2, hit.Distance, 1e-9)

	_, ok = w.Raycast(r3.Vec{Y: 2, Z: 10.5}, common.Forward, 20, LayerGrapple, ecs.NoEntity)
	assert.False(t, ok, "ray starting inside a collider skips it")
}

func TestPenetration(t *testing.T) {
	w := newTestWorld(t)
	sunk := CapsuleAt(r3.Vec{Y: -0.2}, 1.8, 0.35)

	push, ok := w.Penetration(sunk, MaskAll, ecs.NoEntity)
	require.True(t, ok)
	assert.InDelta(t, 0.2+ContactOffset, push.Y, 1e-9)

	_, ok = w.Penetration(sunk.Translate(push), MaskAll, ecs.NoEntity)
	assert.False(t, ok)
}

func TestUpdateAndRemove(t *testing.T) {
	w := NewWorld(zerolog.Nop())
	mover := mustAdd(t, w, "mover", CapsuleAt(r3.Vec{}, 1.8, 0.35), LayerDefault)

	probe := CapsuleAt(r3.Vec{X: 20}, 1.8, 0.35)
	assert.Empty(t, w.OverlapCapsule(probe, MaskAll, ecs.NoEntity))

	require.NoError(t, w.Update(mover, CapsuleAt(r3.Vec{X: 20}, 1.8, 0.35)))
	assert.Equal(t, []ecs.Entity{mover}, w.OverlapCapsule(probe, MaskAll, ecs.NoEntity))

	require.ErrorIs(t, w.Update(mover, Plane{Normal: common.Up}), ErrShapeKindChanged)

	require.True(t, w.Remove(mover))
	assert.Empty(t, w.OverlapCapsule(probe, MaskAll, ecs.NoEntity))
	assert.ErrorIs(t, w.Update(mover, probe), ErrUnknownCollider)
	assert.Equal(t, 0, w.Len())
}

func TestAddRejectsInvalidShapes(t *testing.T) {
	w := NewWorld(zerolog.Nop())
	cases := []struct {
		name  string
		shape Shape
	}{
		{"nil", nil},
		{"zero_normal", Plane{}},
		{"inverted_box", Box{Min: r3.Vec{X: 1}, Max: r3.Vec{}}},
		{"flat_sphere", Sphere{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := w.Add(c.name, c.shape, LayerDefault)
			assert.ErrorIs(t, err, ErrInvalidShape)
		})
	}
}

func TestParseMask(t *testing.T) {
	m, err := ParseMask([]string{"default", "grapple"})
	require.NoError(t, err)
	assert.Equal(t, LayerDefault|LayerGrapple, m)
	assert.Equal(t, "default|grapple", m.String())

	m, err = ParseMask([]string{"all"})
	require.NoError(t, err)
	assert.Equal(t, MaskAll, m)

	_, err = ParseMask([]string{"water"})
	assert.Error(t, err)
}
