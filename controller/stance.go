package controller

import (
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/physics"
)

// SetCrouching changes the target stance. Standing up fails while the
// standing capsule would be obstructed, unless force is set.
func (c *Controller) SetCrouching(crouched, force bool) bool {
	st := &c.st
	if !crouched && !force && !c.CanStand() {
		c.log.Trace().Msg("stand blocked")
		return false
	}
	if crouched {
		st.TargetHeight = c.cfg.CapsuleHeightCrouching
	} else {
		st.TargetHeight = c.cfg.CapsuleHeightStanding
	}
	if st.Crouching == crouched {
		return true
	}
	st.Crouching = crouched
	c.deps.Rig.StanceChanged(crouched)
	c.emit(Event{Kind: EventStanceChanged, Crouched: crouched})
	return true
}

// CanStand reports whether the standing capsule is free of colliders other
// than the character's own.
func (c *Controller) CanStand() bool {
	standing := c.capsuleAt(c.cfg.CapsuleHeightStanding)
	return len(c.deps.World.OverlapCapsule(standing, physics.MaskAll, c.deps.Body)) == 0
}

// updateHeight moves the capsule height and camera anchor toward the
// target stance, or snaps them when force is set.
func (c *Controller) updateHeight(force bool, dt float64) {
	st := &c.st
	camera := st.TargetHeight * c.cfg.CameraHeightRatio
	if force {
		st.Height = st.TargetHeight
		st.CameraHeight = camera
		return
	}
	f := common.SmoothFactor(c.cfg.CrouchingSharpness, dt)
	st.Height = common.Lerp(st.Height, st.TargetHeight, f)
	st.CameraHeight = common.Lerp(st.CameraHeight, camera, f)
}
