package controller

import (
	"github.com/milk9111/firstperson/common"
	"gonum.org/v1/gonum/spatial/r3"
)

type transition func(c *Controller) (Mode, bool)

// modeFuncs is the behavior of one Mode.
type modeFuncs struct {
	enter       func(c *Controller, from Mode)
	update      func(c *Controller, dt float64)
	transitions []transition
}

var modeTable [modeCount]modeFuncs

func init() {
	modeTable = [modeCount]modeFuncs{
		ModeWalk: {
			enter:  enterWalk,
			update: updateWalk,
			transitions: []transition{
				func(c *Controller) (Mode, bool) {
					return ModeCrouch, (c.in.Crouch && !c.st.Sprinting) || c.st.Crouching
				},
				func(c *Controller) (Mode, bool) {
					return ModeJump, c.st.Grounded && c.in.JumpDown
				},
				func(c *Controller) (Mode, bool) {
					st := &c.st
					return ModeSlide, c.in.CrouchDown && st.Sprinting && st.Grounded && st.MeasuredSpeed > c.cfg.SlideMinSpeed
				},
				hookRule,
			},
		},
		ModeCrouch: {
			enter:  enterCrouch,
			update: updateCrouch,
			transitions: []transition{
				func(c *Controller) (Mode, bool) {
					return ModeWalk, !c.in.Crouch && c.SetCrouching(false, false)
				},
				hookRule,
			},
		},
		ModeJump: {
			enter:  enterJump,
			update: updateJump,
			transitions: []transition{
				func(c *Controller) (Mode, bool) {
					return ModeWalk, c.st.Grounded
				},
				hookRule,
			},
		},
		ModeSlide: {
			enter:  enterSlide,
			update: updateSlide,
			transitions: []transition{
				func(c *Controller) (Mode, bool) {
					return ModeCrouch, c.st.Slide.Stopped
				},
				hookRule,
			},
		},
		ModeHook: {
			enter:  func(*Controller, Mode) {},
			update: func(c *Controller, _ float64) { c.look() },
			transitions: []transition{
				func(c *Controller) (Mode, bool) {
					st := &c.st
					if c.in.HookDown {
						c.endGrapple()
					}
					return st.Hook.Return, !st.Grappling
				},
			},
		},
	}
}

// evaluateTransitions applies at most one mode switch per frame. When
// several rules match, the last one wins.
func (c *Controller) evaluateTransitions() {
	from := c.st.Mode
	next, matched := from, false
	for _, rule := range modeTable[from].transitions {
		if m, ok := rule(c); ok {
			next, matched = m, true
		}
	}
	if matched && next != from {
		c.switchMode(next)
	}
}

// SwitchMode forces a mode change, running the new mode's entry action.
func (c *Controller) SwitchMode(m Mode) {
	if m >= modeCount || m == c.st.Mode {
		return
	}
	c.switchMode(m)
}

func (c *Controller) switchMode(next Mode) {
	st := &c.st
	from := st.Mode
	if from == ModeSlide {
		st.Slide = SlideData{}
	}
	st.Mode = next
	c.emit(Event{Kind: EventModeChanged, From: from, To: next})
	c.log.Debug().Stringer("from", from).Stringer("to", next).Msg("mode changed")
	modeTable[next].enter(c, from)
}

func enterWalk(c *Controller, _ Mode) {
	if !c.SetCrouching(false, false) {
		c.SetCrouching(true, true)
		return
	}
	c.updateHeight(true, 0)
}

func updateWalk(c *Controller, dt float64) {
	st := &c.st
	c.look()
	st.Sprinting = c.in.Sprint && (!st.Crouching || c.SetCrouching(false, false))
	mod := 1.0
	if st.Sprinting {
		mod = c.cfg.SprintSpeedModifier
	}
	c.integrate(dt, mod)
	c.footsteps(dt)
}

func enterCrouch(c *Controller, from Mode) {
	st := &c.st
	c.SetCrouching(true, true)
	limit := c.cfg.MaxSpeedOnGround * c.cfg.MaxSpeedCrouchedRatio
	st.Velocity = common.WithY(common.ClampMagnitude(common.Horizontal(st.Velocity), limit), st.Velocity.Y)
	if from == ModeSlide {
		c.updateHeight(true, 0)
	}
}

func updateCrouch(c *Controller, dt float64) {
	c.look()
	c.st.Sprinting = false
	c.integrate(dt, 1)
	c.footsteps(dt)
}

func enterJump(c *Controller, _ Mode) {
	st := &c.st
	c.SetCrouching(false, true)
	st.Velocity.Y = 0
	st.Velocity = r3.Add(st.Velocity, r3.Scale(c.cfg.JumpForce, common.Up))
	c.play(SoundJump)
	c.emit(Event{Kind: EventJump})
	st.LastJumpTime = st.Time
	st.Grounded = false
	st.GroundNormal = common.Up
	st.Jump.AirSpeedModifier = 1
	if st.Sprinting {
		st.Jump.AirSpeedModifier = c.cfg.SprintSpeedModifier
	}
}

func updateJump(c *Controller, dt float64) {
	c.look()
	c.integrate(dt, c.st.Jump.AirSpeedModifier)
}

func enterSlide(c *Controller, _ Mode) {
	st := &c.st
	dir, ok := common.SafeUnit(reorientOnSlope(common.YawForward(st.Yaw), st.GroundNormal))
	if !ok {
		dir = common.YawForward(st.Yaw)
	}
	st.Slide = SlideData{Direction: dir, Drag: c.cfg.SlideDrag}
	st.TargetHeight = c.cfg.CapsuleHeightCrouching
	st.Velocity = r3.Scale(c.cfg.SlideSpeed, dir)
}

func updateSlide(c *Controller, dt float64) {
	c.look()
	c.applyGravity(dt)
}
