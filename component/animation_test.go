package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnimationTicks(t *testing.T) {
	a := NewAnimation([]float64{1, 2, 3}, 30, false)
	assert.Equal(t, 1.0, a.Value())
	a.Update()
	assert.Equal(t, 0, a.Frame())
	a.Update()
	assert.Equal(t, 2.0, a.Value())
	for i := 0; i < 10; i++ {
		a.Update()
	}
	assert.Equal(t, 3.0, a.Value())

	a.Loop = true
	a.SetFrame(2)
	a.Update()
	a.Update()
	assert.Equal(t, 0, a.Frame())

	a.SetFrame(99)
	assert.Equal(t, 2, a.Frame())
	a.Reset()
	assert.Equal(t, 0, a.Frame())

	var empty *Animation
	empty.Update()
	assert.Zero(t, empty.Value())
}

func TestAnimatorSelect(t *testing.T) {
	a := NewHeadBob()
	assert.Equal(t, ClipIdle, a.Clip())

	a.Select(true, false, false)
	assert.Equal(t, ClipWalk, a.Clip())
	for i := 0; i < 10; i++ {
		a.Update()
	}
	assert.NotZero(t, a.Value())

	a.Select(true, true, false)
	assert.Equal(t, ClipCrouch, a.Clip())
	assert.Zero(t, a.Value())

	a.Select(true, true, true)
	assert.Equal(t, ClipSlide, a.Clip())
	assert.Equal(t, -0.05, a.Value())

	a.Select(false, false, false)
	assert.Equal(t, ClipIdle, a.Clip())
}
