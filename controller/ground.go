package controller

import (
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// groundCheck refreshes Grounded and GroundNormal with a short downward
// sweep and snaps the capsule onto the ground it finds.
func (c *Controller) groundCheck() {
	st := &c.st
	dist := c.cfg.GroundCheckDistanceInAir
	if st.Grounded {
		dist = c.cfg.SkinWidth + c.cfg.GroundCheckDistance
	}
	st.Grounded = false
	st.GroundNormal = common.Up

	if st.HookTimer > 0 || st.Time < st.LastJumpTime+c.cfg.JumpGroundingPrevention {
		return
	}

	hit, ok := c.deps.World.SweepCapsule(c.Capsule(), common.Down, dist, c.cfg.GroundLayers, c.deps.Body)
	if !ok || !c.isWalkable(hit.Normal) {
		return
	}
	st.Grounded = true
	st.GroundNormal = hit.Normal
	if hit.Distance > c.cfg.SkinWidth {
		st.Position = r3.Add(st.Position, r3.Scale(hit.Distance-physics.ContactOffset, common.Down))
	}
}

func (c *Controller) isWalkable(n r3.Vec) bool {
	return r3.Dot(n, common.Up) > 0 && common.AngleDeg(common.Up, n) <= c.cfg.SlopeLimit
}

// land runs on the frame Grounded turns true.
func (c *Controller) land() {
	st := &c.st
	fallSpeed := -min(st.Velocity.Y, st.LastImpactVelocity.Y)
	ratio := (fallSpeed - c.cfg.MinSpeedForFallDamage) / (c.cfg.MaxSpeedForFallDamage - c.cfg.MinSpeedForFallDamage)

	if c.cfg.ReceivesFallDamage && ratio > 0 {
		damage := common.Lerp(c.cfg.FallDamageAtMinSpeed, c.cfg.FallDamageAtMaxSpeed, common.Clamp01(ratio))
		c.deps.Health.TakeDamage(damage, FallDamageSource)
		c.play(SoundFallDamage)
		c.emit(Event{Kind: EventFallDamage, Damage: damage, Speed: fallSpeed})
		c.log.Debug().Float64("speed", fallSpeed).Float64("damage", damage).Msg("fall damage")
		return
	}
	c.play(SoundLand)
	c.emit(Event{Kind: EventLand, Speed: fallSpeed})
}
