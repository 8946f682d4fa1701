package controller

import (
	"github.com/milk9111/firstperson/common"
	"gonum.org/v1/gonum/spatial/r3"
)

// CanHook reports whether the grapple cooldown has elapsed.
func (c *Controller) CanHook() bool {
	return c.st.GrappleCooldown <= 0
}

// Fire casts the grapple from the camera along the view direction. A hit
// locks the target and starts grappling at half cooldown; a miss only shows
// the line for a moment and costs the full cooldown.
func (c *Controller) Fire() bool {
	st := &c.st
	origin := c.CameraPosition()
	forward := c.CameraForward()

	hit, ok := c.deps.World.Raycast(origin, forward, c.cfg.GrappleDistance, c.cfg.GrappleLayers, c.deps.Body)
	st.GrappleHit = ok
	st.Grappling = ok
	if ok {
		st.GrappleTarget = hit.Point
		st.GrappleCooldown = c.cfg.GrapplingCooldown / 2
		st.GrappleLineTimer = c.cfg.GrappleHitDuration
	} else {
		st.GrappleTarget = r3.Add(origin, r3.Scale(c.cfg.GrappleDistance, forward))
		st.GrappleCooldown = c.cfg.GrapplingCooldown
		st.GrappleLineTimer = c.cfg.GrappleMissDuration
	}

	c.emit(Event{Kind: EventHookFired, Hit: ok, Point: st.GrappleTarget})
	c.log.Debug().
		Bool("hit", ok).
		Float64("x", st.GrappleTarget.X).
		Float64("y", st.GrappleTarget.Y).
		Float64("z", st.GrappleTarget.Z).
		Msg("grapple fired")
	return ok
}

func (c *Controller) endGrapple() {
	if !c.st.Grappling {
		return
	}
	c.st.Grappling = false
	c.emit(Event{Kind: EventHookEnded, Point: c.st.GrappleTarget})
}

// hookRule starts a grapple from any mode other than Hook. A miss leaves
// stance and grounding untouched.
func hookRule(c *Controller) (Mode, bool) {
	st := &c.st
	if !c.in.HookDown || st.Grappling || !c.CanHook() {
		return 0, false
	}
	if !c.Fire() {
		return 0, false
	}
	c.SetCrouching(false, false)
	st.HookTimer = c.cfg.HookGroundingPrevention
	st.Grounded = false
	st.GroundNormal = common.Up
	st.Hook.Return = returnMode(st.Mode)
	return ModeHook, true
}

// returnMode is where a finished grapple hands control back to.
func returnMode(m Mode) Mode {
	switch m {
	case ModeSlide, ModeJump, ModeHook:
		return ModeWalk
	}
	return m
}
