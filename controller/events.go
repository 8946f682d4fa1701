package controller

import (
	"gonum.org/v1/gonum/spatial/r3"
)

type Sound uint8

const (
	SoundFootstep Sound = iota
	SoundJump
	SoundLand
	SoundFallDamage
)

func (s Sound) String() string {
	switch s {
	case SoundFootstep:
		return "footstep"
	case SoundJump:
		return "jump"
	case SoundLand:
		return "land"
	case SoundFallDamage:
		return "fall_damage"
	}
	return "unknown"
}

type EventKind uint8

const (
	EventFootstep EventKind = iota + 1
	EventJump
	EventLand
	EventFallDamage
	EventStanceChanged
	EventHookFired
	EventHookEnded
	EventModeChanged
	EventDeath
)

func (k EventKind) String() string {
	switch k {
	case EventFootstep:
		return "footstep"
	case EventJump:
		return "jump"
	case EventLand:
		return "land"
	case EventFallDamage:
		return "fall_damage"
	case EventStanceChanged:
		return "stance_changed"
	case EventHookFired:
		return "hook_fired"
	case EventHookEnded:
		return "hook_ended"
	case EventModeChanged:
		return "mode_changed"
	case EventDeath:
		return "death"
	}
	return "unknown"
}

// Event is an outbound notification. Only the fields relevant to Kind are
// set.
type Event struct {
	Kind EventKind
	Time float64

	From, To Mode   // EventModeChanged
	Damage   float64 // EventFallDamage
	Speed    float64 // EventLand, EventFallDamage
	Crouched bool    // EventStanceChanged
	Hit      bool    // EventHookFired
	Point    r3.Vec  // EventHookFired
}

// View is the camera state for a frame.
type View struct {
	Position      r3.Vec
	Yaw, Pitch    float64
	CameraHeight  float64
	FOV           float64
	GrappleLine   bool
	GrappleTarget r3.Vec
}

// Animation carries the animator flags for a frame.
type Animation struct {
	Walking   bool
	Crouching bool
	Sliding   bool
}

// FallDamageSource is passed to Health.TakeDamage for landing damage.
const FallDamageSource = "fall"
