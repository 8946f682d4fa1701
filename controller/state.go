package controller

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Mode is the active locomotion mode.
type Mode uint8

const (
	ModeWalk Mode = iota
	ModeCrouch
	ModeJump
	ModeSlide
	ModeHook

	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeWalk:
		return "walk"
	case ModeCrouch:
		return "crouch"
	case ModeJump:
		return "jump"
	case ModeSlide:
		return "slide"
	case ModeHook:
		return "hook"
	}
	return "unknown"
}

type JumpData struct {
	// AirSpeedModifier is the sprint modifier captured at takeoff.
	AirSpeedModifier float64
}

type SlideData struct {
	Direction r3.Vec
	Drag      float64
	Stopped   bool
}

type HookData struct {
	Return Mode
}

// State is everything the controller simulates. Position is the lowest
// point of the capsule.
type State struct {
	Position   r3.Vec
	Yaw, Pitch float64
	Velocity   r3.Vec

	Grounded     bool
	GroundNormal r3.Vec

	Crouching    bool
	TargetHeight float64
	Height       float64
	CameraHeight float64

	LastJumpTime       float64
	LastImpactVelocity r3.Vec

	HookTimer        float64
	GrappleCooldown  float64
	GrappleLineTimer float64
	GrappleTarget    r3.Vec
	Grappling        bool
	GrappleHit       bool

	Dead bool
	Mode Mode

	Jump  JumpData
	Slide SlideData
	Hook  HookData

	Time             float64
	MeasuredSpeed    float64
	FootstepDistance float64
	Sprinting        bool
	FOV              float64
}

// Spawn places a new character.
type Spawn struct {
	Position r3.Vec
	Yaw      float64
}
