package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/firstperson/component"
	"github.com/milk9111/firstperson/controller"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/levels"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameDT = 1.0 / 60

func TestSessionWalksForward(t *testing.T) {
	in := &input.Snapshot{MoveZ: 1}
	audio := &Silence{}
	s, err := New(Options{Input: in, Audio: audio, Log: zerolog.Nop()})
	require.NoError(t, err)
	assert.Equal(t, "playground", s.Level.Name)
	assert.Len(t, s.Colliders, len(s.Level.Colliders))
	assert.Equal(t, len(s.Colliders)+1, s.World.Len())

	var events []controller.Event
	for i := 0; i < 60; i++ {
		events = append(events, s.Step(frameDT)...)
	}
	st := s.Controller.State()
	assert.Equal(t, 60, s.Frame())
	assert.True(t, st.Grounded)
	assert.Equal(t, controller.ModeWalk, st.Mode)
	assert.Greater(t, st.Position.Z, 1.0)
	assert.InDelta(t, 0, st.Position.Y, 0.05)
	assert.Equal(t, st.Position.Z, s.Rig.View.Position.Z)
	assert.Greater(t, s.Rig.View.Position.Y, st.Position.Y)
	assert.True(t, s.Rig.Animation.Walking)
	assert.Equal(t, component.ClipWalk, s.Rig.Bob.Clip())
	assert.Positive(t, audio.Count)
	assert.NotEmpty(t, events)

	obs := s.Observation()
	assert.Equal(t, "walk", obs.Mode)
	assert.Equal(t, st.Position.Z, obs.Z)

	s.Respawn()
	st = s.Controller.State()
	assert.Equal(t, s.Spawn().Position, st.Position)
	assert.Zero(t, st.Velocity)
}

func TestSessionFallIsFatal(t *testing.T) {
	dir := t.TempDir()
	prev := levels.Dir
	levels.Dir = dir
	t.Cleanup(func() { levels.Dir = prev })
	level := "spawn: {y: 5}\ncolliders:\n  - {kind: box, min: {x: 50, y: -1, z: 50}, max: {x: 51, y: 0, z: 51}}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pit.yaml"), []byte(level), 0o644))

	s, err := New(Options{Level: "pit", Input: &input.Snapshot{}, Log: zerolog.Nop()})
	require.NoError(t, err)
	for i := 0; i < 300 && s.Deaths() == 0; i++ {
		s.Step(frameDT)
	}
	assert.Equal(t, 1, s.Deaths())
	assert.True(t, s.Health.IsDead())
	assert.True(t, s.Controller.State().Dead)

	s.Respawn()
	assert.False(t, s.Health.IsDead())
	assert.False(t, s.Controller.State().Dead)
	assert.Positive(t, s.Health.Invulnerable)
}

func TestSessionErrors(t *testing.T) {
	_, err := New(Options{Log: zerolog.Nop()})
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = New(Options{Level: "nowhere", Input: &input.Snapshot{}, Log: zerolog.Nop()})
	assert.Error(t, err)
}

func TestRigHeadBob(t *testing.T) {
	r := NewRig()
	r.ApplyView(controller.View{CameraHeight: 1.6})
	assert.Equal(t, 1.6, r.EyeHeight())

	r.ApplyAnimation(controller.Animation{Sliding: true})
	assert.InDelta(t, 1.55, r.EyeHeight(), 1e-9)

	r.ApplyAnimation(controller.Animation{Walking: true})
	for i := 0; i < 10; i++ {
		r.Tick()
	}
	assert.InDelta(t, 1.65, r.EyeHeight(), 1e-9)

	r.StanceChanged(true)
	assert.True(t, r.Crouched)
	assert.Equal(t, 1.6, (&Rig{View: r.View}).EyeHeight())
}
