package controller

import (
	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/physics"
	"gonum.org/v1/gonum/spatial/r3"
)

// move displaces the capsule by velocity*dt. The first obstruction stops
// the capsule, records the impact velocity and projects the velocity onto
// the obstruction. The leftover motion slides along that plane once.
func (c *Controller) move(dt float64) {
	st := &c.st
	st.LastImpactVelocity = r3.Vec{}
	if !common.VecIsFinite(st.Velocity) {
		c.log.Warn().Msg("non-finite velocity reset")
		st.Velocity = r3.Vec{}
	}

	motion := r3.Scale(dt, st.Velocity)
	if hit, ok := c.sweep(motion); ok {
		st.LastImpactVelocity = st.Velocity
		st.Velocity = common.ProjectOnPlane(st.Velocity, hit.Normal)
		rest := common.ProjectOnPlane(r3.Sub(motion, r3.Sub(st.Position, hit.from)), hit.Normal)
		c.sweep(rest)
	}

	if c.cfg.EnableOverlapRecovery {
		if push, ok := c.deps.World.Penetration(c.Capsule(), physics.MaskAll, c.deps.Body); ok {
			st.Position = r3.Add(st.Position, push)
		}
	}
	c.syncBody()
}

type sweepHit struct {
	physics.Hit
	from r3.Vec
}

// sweep moves the capsule along motion until it touches something. It
// reports the obstruction, if any, and where the move started.
func (c *Controller) sweep(motion r3.Vec) (sweepHit, bool) {
	st := &c.st
	dist := r3.Norm(motion)
	if dist < common.Epsilon {
		return sweepHit{}, false
	}
	dir := r3.Scale(1/dist, motion)
	from := st.Position
	hit, ok := c.deps.World.SweepCapsule(c.Capsule(), dir, dist, physics.MaskAll, c.deps.Body)
	if !ok {
		st.Position = r3.Add(from, motion)
		return sweepHit{}, false
	}
	advance := max(0, hit.Distance-physics.ContactOffset)
	st.Position = r3.Add(from, r3.Scale(advance, dir))
	return sweepHit{Hit: hit, from: from}, true
}
