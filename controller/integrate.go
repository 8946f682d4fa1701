package controller

import (
	"math"

	"github.com/milk9111/firstperson/common"
	"gonum.org/v1/gonum/spatial/r3"
)

// look applies the look input to yaw and pitch. Rotation speed is degrees
// per unit of input and does not scale with dt.
func (c *Controller) look() {
	st := &c.st
	mult := 1.0
	if c.deps.Weapons.IsAiming() {
		mult = c.cfg.AimingRotationMultiplier
	}
	st.Yaw = math.Mod(st.Yaw+c.in.LookX*c.cfg.RotationSpeed*mult, 360)
	if st.Yaw < 0 {
		st.Yaw += 360
	}
	st.Pitch = common.Clamp(st.Pitch+c.in.LookY*c.cfg.RotationSpeed*mult, -c.cfg.PitchLimit, c.cfg.PitchLimit)
}

// worldMove maps the move input onto the horizontal plane for the current
// yaw. Its length is at most 1.
func (c *Controller) worldMove() r3.Vec {
	return r3.Add(
		r3.Scale(c.in.MoveX, common.YawRight(c.st.Yaw)),
		r3.Scale(c.in.MoveZ, common.YawForward(c.st.Yaw)),
	)
}

// integrate updates the velocity from the move input. mod scales the
// speed caps, as sprinting does.
func (c *Controller) integrate(dt, mod float64) {
	st := &c.st
	move := c.worldMove()

	if st.Grounded {
		target := r3.Scale(c.cfg.MaxSpeedOnGround*mod, move)
		if st.Crouching {
			target = r3.Scale(c.cfg.MaxSpeedCrouchedRatio, target)
		}
		target = reorientOnSlope(target, st.GroundNormal)
		st.Velocity = common.LerpVec(st.Velocity, target, common.SmoothFactor(c.cfg.MovementSharpnessOnGround, dt))
		return
	}

	v := r3.Add(st.Velocity, r3.Scale(c.cfg.AccelerationSpeedInAir*dt, move))
	h := common.ClampMagnitude(common.Horizontal(v), c.cfg.MaxSpeedInAir*mod)
	st.Velocity = common.WithY(h, v.Y-c.cfg.GravityDownForce*dt)
}

// applyGravity is used by modes that keep their own horizontal velocity.
func (c *Controller) applyGravity(dt float64) {
	if c.st.Grounded {
		return
	}
	c.st.Velocity.Y -= c.cfg.GravityDownForce * dt
}

// reorientOnSlope turns v to run along the plane with normal n, keeping
// its length. On flat ground it returns v unchanged.
func reorientOnSlope(v, n r3.Vec) r3.Vec {
	mag := r3.Norm(v)
	if mag < common.Epsilon {
		return r3.Vec{}
	}
	right := r3.Cross(r3.Scale(1/mag, v), common.Up)
	dir, ok := common.SafeUnit(r3.Cross(n, right))
	if !ok {
		return v
	}
	return r3.Scale(mag, dir)
}

// footsteps plays a step each 1/frequency meters covered on the ground.
func (c *Controller) footsteps(dt float64) {
	st := &c.st
	if !st.Grounded {
		return
	}
	freq := c.cfg.FootstepFrequency
	if st.Sprinting {
		freq = c.cfg.FootstepFrequencySprinting
	}
	if st.FootstepDistance >= 1/freq {
		st.FootstepDistance = 0
		c.play(SoundFootstep)
		c.emit(Event{Kind: EventFootstep})
	}
	st.FootstepDistance += r3.Norm(st.Velocity) * dt
}
