package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	stickDeadzone = 0.2

	// mouseScale converts pixels of cursor travel into look units.
	mouseScale = 0.01
	// stickScale converts full stick deflection into look units per frame.
	stickScale = 0.05
)

// Ebiten polls keyboard, mouse and the first gamepad. Call Poll once per
// ebiten Update before the controller reads it.
type Ebiten struct {
	Snapshot

	Sensitivity float64
	InvertY     bool

	lastX, lastY int
	primed       bool
}

func NewEbiten(sensitivity float64) *Ebiten {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	return &Ebiten{Sensitivity: sensitivity}
}

func (e *Ebiten) Poll() {
	var s Snapshot

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		s.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		s.MoveZ += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		s.MoveZ -= 1
	}

	s.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	s.SprintUp = inpututil.IsKeyJustReleased(ebiten.KeyShiftLeft)
	s.Crouch = ebiten.IsKeyPressed(ebiten.KeyC) || ebiten.IsKeyPressed(ebiten.KeyControlLeft)
	s.CrouchDown = inpututil.IsKeyJustPressed(ebiten.KeyC) || inpututil.IsKeyJustPressed(ebiten.KeyControlLeft)
	s.CrouchUp = inpututil.IsKeyJustReleased(ebiten.KeyC) || inpututil.IsKeyJustReleased(ebiten.KeyControlLeft)
	s.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
	s.JumpDown = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	s.Hook = ebiten.IsKeyPressed(ebiten.KeyE) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	s.HookDown = inpututil.IsKeyJustPressed(ebiten.KeyE) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	x, y := ebiten.CursorPosition()
	if e.primed {
		s.LookX = float64(x-e.lastX) * mouseScale * e.Sensitivity
		s.LookY = float64(y-e.lastY) * mouseScale * e.Sensitivity
	}
	e.lastX, e.lastY, e.primed = x, y, true

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			s.MoveX, s.MoveZ = lx, -ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			s.LookX += rx * stickScale * e.Sensitivity
			s.LookY += ry * stickScale * e.Sensitivity
		}

		s.Sprint = s.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
		s.SprintUp = s.SprintUp || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonLeftStick)
		s.Crouch = s.Crouch || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
		s.CrouchDown = s.CrouchDown || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
		s.CrouchUp = s.CrouchUp || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightRight)
		s.Jump = s.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		s.JumpDown = s.JumpDown || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		s.Hook = s.Hook || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
		s.HookDown = s.HookDown || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
	}

	if e.InvertY {
		s.LookY = -s.LookY
	}
	e.Snapshot = s
}

// Reset forgets the last cursor position so the next Poll reports no look
// delta, for example after the cursor was released by a pause menu.
func (e *Ebiten) Reset() {
	e.primed = false
	e.Snapshot = Snapshot{}
}
