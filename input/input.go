package input

import "math"

// Provider is polled once per frame for the player's intents.
type Provider interface {
	// Move returns strafe (x) and forward (z) intent.
	Move() (x, z float64)
	LookHorizontal() float64
	LookVertical() float64
	SprintHeld() bool
	SprintReleased() bool
	CrouchHeld() bool
	CrouchPressed() bool
	CrouchReleased() bool
	JumpPressed() bool
	HookPressed() bool
}

// Snapshot is a read-only view of one frame of input. It also satisfies
// Provider, which makes it the simplest provider to drive by hand.
type Snapshot struct {
	MoveX, MoveZ float64
	LookX, LookY float64

	Sprint bool
	Crouch bool
	Jump   bool
	Hook   bool

	SprintUp   bool
	CrouchDown bool
	CrouchUp   bool
	JumpDown   bool
	HookDown   bool
}

// Read polls p into a snapshot. Move intent is clamped to unit length so
// diagonal input is not faster.
func Read(p Provider) Snapshot {
	x, z := p.Move()
	if l := math.Hypot(x, z); l > 1 {
		x, z = x/l, z/l
	}
	return Snapshot{
		MoveX:      finite(x),
		MoveZ:      finite(z),
		LookX:      finite(p.LookHorizontal()),
		LookY:      finite(p.LookVertical()),
		Sprint:     p.SprintHeld(),
		SprintUp:   p.SprintReleased(),
		Crouch:     p.CrouchHeld(),
		CrouchDown: p.CrouchPressed(),
		CrouchUp:   p.CrouchReleased(),
		JumpDown:   p.JumpPressed(),
		HookDown:   p.HookPressed(),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// MoveMagnitude is the length of the move intent.
func (s Snapshot) MoveMagnitude() float64 {
	return math.Hypot(s.MoveX, s.MoveZ)
}

func (s Snapshot) Move() (float64, float64) { return s.MoveX, s.MoveZ }
func (s Snapshot) LookHorizontal() float64  { return s.LookX }
func (s Snapshot) LookVertical() float64    { return s.LookY }
func (s Snapshot) SprintHeld() bool         { return s.Sprint }
func (s Snapshot) SprintReleased() bool     { return s.SprintUp }
func (s Snapshot) CrouchHeld() bool         { return s.Crouch }
func (s Snapshot) CrouchPressed() bool      { return s.CrouchDown }
func (s Snapshot) CrouchReleased() bool     { return s.CrouchUp }
func (s Snapshot) JumpPressed() bool        { return s.JumpDown }
func (s Snapshot) HookPressed() bool        { return s.HookDown }

// Levels is the held state of every input for one frame.
type Levels struct {
	MoveX, MoveZ float64
	LookX, LookY float64
	Sprint       bool
	Crouch       bool
	Jump         bool
	Hook         bool
}

// Edges derives a snapshot from the previous and current held state.
func Edges(prev, cur Levels) Snapshot {
	return Snapshot{
		MoveX:      cur.MoveX,
		MoveZ:      cur.MoveZ,
		LookX:      cur.LookX,
		LookY:      cur.LookY,
		Sprint:     cur.Sprint,
		Crouch:     cur.Crouch,
		Jump:       cur.Jump,
		Hook:       cur.Hook,
		SprintUp:   prev.Sprint && !cur.Sprint,
		CrouchDown: !prev.Crouch && cur.Crouch,
		CrouchUp:   prev.Crouch && !cur.Crouch,
		JumpDown:   !prev.Jump && cur.Jump,
		HookDown:   !prev.Hook && cur.Hook,
	}
}
