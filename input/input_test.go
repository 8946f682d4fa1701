package input

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadClampsMove(t *testing.T) {
	s := Read(Snapshot{MoveX: 1, MoveZ: 1, LookX: math.NaN(), JumpDown: true})
	assert.InDelta(t, 1, s.MoveMagnitude(), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, s.MoveX, 1e-12)
	assert.Equal(t, 0.0, s.LookX)
	assert.True(t, s.JumpDown)

	half := Read(Snapshot{MoveZ: 0.5})
	assert.Equal(t, 0.5, half.MoveZ)
}

func TestEdges(t *testing.T) {
	cases := []struct {
		name string
		prev Levels
		cur  Levels
		want Snapshot
	}{
		{
			name: "press",
			cur:  Levels{Crouch: true, Jump: true, Hook: true},
			want: Snapshot{Crouch: true, Jump: true, Hook: true, CrouchDown: true, JumpDown: true, HookDown: true},
		},
		{
			name: "hold",
			prev: Levels{Crouch: true, Sprint: true},
			cur:  Levels{Crouch: true, Sprint: true},
			want: Snapshot{Crouch: true, Sprint: true},
		},
		{
			name: "release",
			prev: Levels{Crouch: true, Sprint: true},
			want: Snapshot{CrouchUp: true, SprintUp: true},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Edges(c.prev, c.cur))
		})
	}
}

const walkThenJump = `
move_z = 1.0
look_x = 0.5
jump = frame == 2
if state.grounded {
	sprint = true
}
if is_undefined(memory.n) {
	memory.n = 0
}
memory.n = memory.n + 1
crouch = memory.n >= 3
`

func TestScriptStep(t *testing.T) {
	s, err := NewScript("walk", []byte(walkThenJump))
	require.NoError(t, err)
	assert.Equal(t, "walk", s.Name())

	require.NoError(t, s.Step(1, 0.016, Observation{Grounded: true}))
	assert.Equal(t, 1.0, s.MoveZ)
	assert.Equal(t, 0.5, s.LookX)
	assert.True(t, s.SprintHeld())
	assert.False(t, s.JumpPressed())

	require.NoError(t, s.Step(2, 0.032, Observation{}))
	assert.True(t, s.JumpPressed())
	assert.False(t, s.SprintHeld())
	assert.True(t, s.SprintReleased())

	require.NoError(t, s.Step(3, 0.048, Observation{}))
	assert.False(t, s.JumpPressed(), "jump is only held on frame 2")
	assert.True(t, s.CrouchPressed(), "memory persists between frames")
	assert.True(t, s.CrouchHeld())
}

func TestScriptErrors(t *testing.T) {
	_, err := NewScript("broken", []byte("move_z = ("))
	assert.Error(t, err)

	var s *Script
	assert.ErrorIs(t, s.Step(0, 0, Observation{}), ErrScriptNotLoaded)

	bad, err := NewScript("runtime", []byte(`x := [1][5]; move_z = x + 1`))
	require.NoError(t, err)
	assert.Error(t, bad.Step(0, 0, Observation{}))
}
