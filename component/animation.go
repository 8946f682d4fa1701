package component

import "math"

// Animation steps through a fixed sequence of camera offsets at a given
// rate, the way a sprite animation steps through frames.
type Animation struct {
	Frames []float64
	FPS    int
	Loop   bool

	current     int
	tick        int
	ticksPerFrm int
}

// NewAnimation creates an Animation. fps defaults to 12 and assumes Update
// is called 60 times per second.
func NewAnimation(frames []float64, fps int, loop bool) *Animation {
	if fps <= 0 {
		fps = 12
	}
	return &Animation{
		Frames:      frames,
		FPS:         fps,
		Loop:        loop,
		ticksPerFrm: int(math.Max(1, math.Round(60.0/float64(fps)))),
	}
}

// Update advances one tick.
func (a *Animation) Update() {
	if a == nil || len(a.Frames) <= 1 {
		return
	}
	a.tick++
	if a.tick < a.ticksPerFrm {
		return
	}
	a.tick = 0
	a.current++
	if a.current >= len(a.Frames) {
		if a.Loop {
			a.current = 0
		} else {
			a.current = len(a.Frames) - 1
		}
	}
}

func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.current = 0
	a.tick = 0
}

// SetFrame jumps to a frame, clamped to the valid range.
func (a *Animation) SetFrame(i int) {
	if a == nil || len(a.Frames) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(a.Frames) {
		i = len(a.Frames) - 1
	}
	a.current = i
	a.tick = 0
}

func (a *Animation) Frame() int {
	if a == nil {
		return 0
	}
	return a.current
}

// Value is the offset of the current frame.
func (a *Animation) Value() float64 {
	if a == nil || len(a.Frames) == 0 {
		return 0
	}
	return a.Frames[a.current]
}

// Clip names used by Animator.
const (
	ClipIdle   = "idle"
	ClipWalk   = "walk"
	ClipCrouch = "crouch"
	ClipSlide  = "slide"
)

// Animator owns one Animation per clip and plays whichever the character's
// animation flags select.
type Animator struct {
	Clips   map[string]*Animation
	current string
}

// NewHeadBob returns an Animator with the default head bob clips.
func NewHeadBob() *Animator {
	return &Animator{
		Clips: map[string]*Animation{
			ClipIdle:   NewAnimation([]float64{0, 0.005, 0.01, 0.005}, 4, true),
			ClipWalk:   NewAnimation([]float64{0, 0.03, 0.05, 0.03, 0, -0.03, -0.05, -0.03}, 12, true),
			ClipCrouch: NewAnimation([]float64{0, 0.015, 0.025, 0.015, 0, -0.015, -0.025, -0.015}, 8, true),
			ClipSlide:  NewAnimation([]float64{-0.05}, 1, false),
		},
		current: ClipIdle,
	}
}

// Select picks the clip for a set of animation flags. Switching clips
// restarts the new one.
func (a *Animator) Select(walking, crouching, sliding bool) {
	next := ClipIdle
	switch {
	case sliding:
		next = ClipSlide
	case walking && crouching:
		next = ClipCrouch
	case walking:
		next = ClipWalk
	}
	if next == a.current {
		return
	}
	a.current = next
	a.Clips[next].Reset()
}

func (a *Animator) Update() {
	a.Clips[a.current].Update()
}

func (a *Animator) Clip() string {
	return a.current
}

func (a *Animator) Value() float64 {
	return a.Clips[a.current].Value()
}
