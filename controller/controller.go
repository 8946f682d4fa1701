package controller

import (
	"fmt"

	"github.com/milk9111/firstperson/common"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/physics"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"
)

// Controller simulates one first-person character. Update runs once per
// rendered frame and FixedUpdate once per physics step; neither may be
// called concurrently.
type Controller struct {
	cfg  Config
	deps Deps
	log  zerolog.Logger

	st     State
	in     input.Snapshot
	events ecs.EventQueue[Event]

	syncer     bodySyncer
	samplePos  r3.Vec
	sampleTime float64
}

// New validates cfg and deps and places the character at spawn, standing,
// airborne and walking.
func New(cfg Config, deps Deps, spawn Spawn) (*Controller, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := zerolog.Nop()
	if deps.Log != nil {
		log = deps.Log.With().Str("component", "controller").Logger()
	}
	c := &Controller{cfg: cfg, deps: deps, log: log}
	if s, ok := deps.World.(bodySyncer); ok && deps.Body.Valid() {
		c.syncer = s
	}
	c.Respawn(spawn)
	return c, nil
}

// Respawn resets the simulated state at spawn. Health is the caller's
// concern.
func (c *Controller) Respawn(spawn Spawn) {
	c.st = State{
		Position:     spawn.Position,
		Yaw:          spawn.Yaw,
		GroundNormal: common.Up,
		TargetHeight: c.cfg.CapsuleHeightStanding,
		LastJumpTime: -c.cfg.JumpGroundingPrevention,
		Mode:         ModeWalk,
		FOV:          c.cfg.FieldOfView,
	}
	c.updateHeight(true, 0)
	c.samplePos = spawn.Position
	c.sampleTime = 0
	c.events.Reset()
	c.syncBody()
}

// SetConfig swaps the tuning in place, keeping the simulated state.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	st := &c.st
	if st.Crouching || st.Mode == ModeSlide {
		st.TargetHeight = cfg.CapsuleHeightCrouching
	} else {
		st.TargetHeight = cfg.CapsuleHeightStanding
	}
	st.Height = common.Clamp(st.Height, cfg.CapsuleHeightCrouching, cfg.CapsuleHeightStanding)
	st.CameraHeight = common.Clamp(st.CameraHeight,
		cfg.CapsuleHeightCrouching*cfg.CameraHeightRatio, cfg.CapsuleHeightStanding*cfg.CameraHeightRatio)
	c.log.Info().Msg("config updated")
	return nil
}

func (c *Controller) Config() Config {
	return c.cfg
}

// State returns a copy of the simulated state.
func (c *Controller) State() State {
	return c.st
}

// Input returns the snapshot read by the last Update.
func (c *Controller) Input() input.Snapshot {
	return c.in
}

// Drain returns the events emitted since the last call.
func (c *Controller) Drain() []Event {
	return c.events.Drain()
}

// Update advances the frame-rate part of the simulation by dt seconds.
func (c *Controller) Update(dt float64) {
	if dt <= 0 || !common.IsFinite(dt) {
		return
	}
	st := &c.st
	st.Time += dt

	if !st.Dead && st.Position.Y < c.cfg.KillHeight {
		c.log.Info().Float64("y", st.Position.Y).Msg("below kill height")
		c.deps.Health.Kill()
	}
	c.checkDeath()

	c.in = input.Read(c.deps.Input)
	if st.Dead {
		c.in = input.Snapshot{}
		st.Grappling = false
	}

	wasGrounded := st.Grounded
	c.groundCheck()
	if st.Grounded && !wasGrounded {
		c.land()
	}

	if c.in.Sprint && !st.Crouching {
		st.FOV = c.cfg.SprintFieldOfView
	} else if c.in.SprintUp || !c.in.Sprint {
		st.FOV = c.cfg.FieldOfView
	}

	if st.HookTimer > 0 {
		st.HookTimer -= dt
	}
	if st.GrappleCooldown > 0 {
		st.GrappleCooldown -= dt
	}
	if st.GrappleLineTimer > 0 {
		st.GrappleLineTimer -= dt
	}

	c.updateHeight(false, dt)
	modeTable[st.Mode].update(c, dt)
	c.move(dt)
	c.evaluateTransitions()
	c.publish()
}

// FixedUpdate advances the physics-rate part of the simulation.
func (c *Controller) FixedUpdate(dt float64) {
	if dt <= 0 || !common.IsFinite(dt) {
		return
	}
	st := &c.st
	toTarget := r3.Sub(st.GrappleTarget, st.Position)
	if st.Grappling {
		dir, _ := common.SafeUnit(toTarget)
		st.Velocity = r3.Scale(c.cfg.GrappleSpeed, dir)
	}

	c.sampleSpeed()

	if st.Grappling {
		arrived := st.HookTimer <= 0 && r3.Norm(toTarget) < c.cfg.GrappleArriveDistance
		if st.GrappleLineTimer <= 0 || arrived {
			c.endGrapple()
		}
	}

	if st.Mode == ModeSlide && !st.Slide.Stopped {
		if st.MeasuredSpeed > c.cfg.SlideStopSpeed {
			dir := st.Slide.Direction
			st.Velocity = r3.Sub(st.Velocity, r3.Scale(st.Slide.Drag*dt, dir))
			if along := r3.Dot(st.Velocity, dir); along < 0 {
				st.Velocity = r3.Sub(st.Velocity, r3.Scale(along, dir))
			}
			st.Slide.Drag += c.cfg.SlideDragGrowth
		} else {
			st.Slide.Stopped = true
		}
	}
}

// sampleSpeed measures speed from the distance covered since the previous
// sample. Physics steps with no frame in between keep the last value.
func (c *Controller) sampleSpeed() {
	st := &c.st
	elapsed := st.Time - c.sampleTime
	if elapsed <= 0 {
		return
	}
	st.MeasuredSpeed = r3.Norm(r3.Sub(st.Position, c.samplePos)) / elapsed
	c.samplePos = st.Position
	c.sampleTime = st.Time
}

func (c *Controller) checkDeath() {
	st := &c.st
	if st.Dead || !c.deps.Health.IsDead() {
		return
	}
	st.Dead = true
	if st.Grappling {
		c.endGrapple()
	}
	c.deps.Weapons.LowerWeapon()
	c.emit(Event{Kind: EventDeath})
	c.log.Info().Float64("time", st.Time).Msg("character died")
}

func (c *Controller) emit(evt Event) {
	evt.Time = c.st.Time
	c.events.Push(evt)
}

func (c *Controller) play(s Sound) {
	c.deps.Audio.Play(s)
}

// Capsule returns the character capsule at its current height.
func (c *Controller) Capsule() physics.Capsule {
	return c.capsuleAt(c.st.Height)
}

func (c *Controller) capsuleAt(height float64) physics.Capsule {
	return physics.CapsuleAt(c.st.Position, height, c.cfg.CapsuleRadius)
}

// CameraPosition is the eye point.
func (c *Controller) CameraPosition() r3.Vec {
	return r3.Add(c.st.Position, r3.Scale(c.st.CameraHeight, common.Up))
}

// CameraForward is the unit view direction.
func (c *Controller) CameraForward() r3.Vec {
	return common.LookForward(c.st.Yaw, c.st.Pitch)
}

func (c *Controller) publish() {
	st := &c.st
	c.deps.Rig.ApplyView(View{
		Position:      c.CameraPosition(),
		Yaw:           st.Yaw,
		Pitch:         st.Pitch,
		CameraHeight:  st.CameraHeight,
		FOV:           st.FOV,
		GrappleLine:   st.GrappleLineTimer > 0,
		GrappleTarget: st.GrappleTarget,
	})
	c.deps.Rig.ApplyAnimation(Animation{
		Walking:   c.in.MoveMagnitude() > c.cfg.WalkingInputThreshold && st.MeasuredSpeed >= c.cfg.WalkingMinSpeed,
		Crouching: st.Crouching,
		Sliding:   st.Mode == ModeSlide,
	})
}

func (c *Controller) syncBody() {
	if c.syncer == nil {
		return
	}
	if err := c.syncer.Update(c.deps.Body, c.Capsule()); err != nil {
		c.log.Error().Err(err).Msg("sync body")
	}
}

func (c *Controller) String() string {
	st := &c.st
	return fmt.Sprintf("%s pos=(%.2f, %.2f, %.2f) vel=(%.2f, %.2f, %.2f) grounded=%t",
		st.Mode, st.Position.X, st.Position.Y, st.Position.Z, st.Velocity.X, st.Velocity.Y, st.Velocity.Z, st.Grounded)
}
