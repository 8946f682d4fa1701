package controller

import (
	"errors"
	"fmt"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/physics"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrMissingDependency is returned by New when a collaborator is absent.
var ErrMissingDependency = errors.New("controller: missing dependency")

// Spatial answers the collision queries the controller needs.
// *physics.World implements it.
type Spatial interface {
	OverlapCapsule(c physics.Capsule, mask physics.LayerMask, ignore ecs.Entity) []ecs.Entity
	SweepCapsule(c physics.Capsule, dir r3.Vec, maxDist float64, mask physics.LayerMask, ignore ecs.Entity) (physics.Hit, bool)
	Raycast(origin, dir r3.Vec, maxDist float64, mask physics.LayerMask, ignore ecs.Entity) (physics.Hit, bool)
	Penetration(c physics.Capsule, mask physics.LayerMask, ignore ecs.Entity) (r3.Vec, bool)
}

// bodySyncer is implemented by worlds that keep a collider for the
// character itself.
type bodySyncer interface {
	Update(e ecs.Entity, shape physics.Shape) error
}

type Health interface {
	TakeDamage(amount float64, source any) bool
	Kill()
	IsDead() bool
}

type Audio interface {
	Play(s Sound)
}

type Weapons interface {
	IsAiming() bool
	LowerWeapon()
}

// Rig receives the presentation state computed each frame.
type Rig interface {
	ApplyView(v View)
	ApplyAnimation(a Animation)
	StanceChanged(crouched bool)
}

// Deps are the collaborators a Controller is built with. Every field except
// Body and Log is required.
type Deps struct {
	Input   input.Provider
	World   Spatial
	Health  Health
	Audio   Audio
	Weapons Weapons
	Rig     Rig

	// Body is the character's own collider in World. Queries ignore it and
	// it follows the capsule after every move.
	Body ecs.Entity

	Log *zerolog.Logger
}

func (d Deps) validate() error {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s", ErrMissingDependency, name)
	}
	switch {
	case d.Input == nil:
		return missing("input")
	case d.World == nil:
		return missing("world")
	case d.Health == nil:
		return missing("health")
	case d.Audio == nil:
		return missing("audio")
	case d.Weapons == nil:
		return missing("weapons")
	case d.Rig == nil:
		return missing("rig")
	}
	return nil
}
