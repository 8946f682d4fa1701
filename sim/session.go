// Package sim assembles a playable session: a collision world built from a
// level, the player prefab and a movement controller driven by a
// fixed-step scheduler.
package sim

import (
	"errors"
	"fmt"

	"github.com/milk9111/firstperson/component"
	"github.com/milk9111/firstperson/controller"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/levels"
	"github.com/milk9111/firstperson/physics"
	"github.com/milk9111/firstperson/prefabs"
	"github.com/rs/zerolog"
)

var ErrNoInput = errors.New("sim: no input provider")

// Options configure New. Level and Player default to "playground" and the
// player prefab.
type Options struct {
	Level     string
	Player    *prefabs.PlayerSpec
	Input     input.Provider
	Audio     controller.Audio
	FixedStep float64
	Log       zerolog.Logger
}

type Session struct {
	World      *physics.World
	Level      *levels.Level
	Player     prefabs.PlayerSpec
	Health     *component.Health
	Weapons    *component.Weapons
	Rig        *Rig
	Controller *controller.Controller
	Scheduler  *ecs.Scheduler
	Body       ecs.Entity
	// Colliders are the level's entities, in Level.Colliders order.
	Colliders []ecs.Entity

	log    zerolog.Logger
	audio  controller.Audio
	frame  int
	deaths int
}

func New(opts Options) (*Session, error) {
	if opts.Input == nil {
		return nil, ErrNoInput
	}
	name := opts.Level
	if name == "" {
		name = "playground"
	}
	lvl, err := levels.Load(name)
	if err != nil {
		return nil, err
	}
	player := opts.Player
	if player == nil {
		if player, err = prefabs.LoadPlayerSpec(); err != nil {
			return nil, err
		}
	}

	s := &Session{
		Level:   lvl,
		Player:  *player,
		Health:  component.NewHealth(player.Health.Max),
		Weapons: &component.Weapons{},
		Rig:     NewRig(),
		log:     opts.Log.With().Str("component", "sim").Logger(),
		audio:   opts.Audio,
	}
	if s.audio == nil {
		s.audio = &Silence{}
	}

	s.World = physics.NewWorld(opts.Log)
	if s.Colliders, err = lvl.Build(s.World); err != nil {
		return nil, err
	}
	spawn := s.Spawn()
	cfg := player.Movement
	s.Body, err = s.World.Add(player.Name, physics.CapsuleAt(spawn.Position, cfg.CapsuleHeightStanding, cfg.CapsuleRadius), physics.LayerPlayer)
	if err != nil {
		return nil, fmt.Errorf("sim: adding player body: %w", err)
	}

	log := opts.Log
	s.Controller, err = controller.New(cfg, controller.Deps{
		Input:   opts.Input,
		World:   s.World,
		Health:  s.Health,
		Audio:   s.audio,
		Weapons: s.Weapons,
		Rig:     s.Rig,
		Body:    s.Body,
		Log:     &log,
	}, spawn)
	if err != nil {
		return nil, err
	}

	s.Scheduler = ecs.NewScheduler(opts.FixedStep, s.Controller)
	s.Scheduler.AddFixed(s.Controller)

	s.log.Info().
		Str("level", lvl.Name).
		Int("colliders", len(lvl.Colliders)).
		Float64("fixed_step", s.Scheduler.FixedStep()).
		Msg("session ready")
	return s, nil
}

// Spawn is the level's spawn point.
func (s *Session) Spawn() controller.Spawn {
	return s.Level.Spawn.Spawn()
}

// Step advances the simulation by one rendered frame and returns the events
// the controller raised during it.
func (s *Session) Step(dt float64) []controller.Event {
	s.frame++
	s.Health.Tick(dt)
	s.Scheduler.Step(dt)
	s.Rig.Tick()
	events := s.Controller.Drain()
	for _, e := range events {
		s.logEvent(e)
	}
	return events
}

func (s *Session) logEvent(e controller.Event) {
	switch e.Kind {
	case controller.EventFootstep:
		s.log.Trace().Int("frame", s.frame).Msg("footstep")
	case controller.EventDeath:
		s.deaths++
		s.log.Info().Int("frame", s.frame).Int("deaths", s.deaths).Msg("player died")
	default:
		s.log.Debug().Int("frame", s.frame).Stringer("event", e.Kind).Msg("event")
	}
}

// Frame returns the number of frames stepped.
func (s *Session) Frame() int {
	return s.frame
}

func (s *Session) Deaths() int {
	return s.deaths
}

// Respawn restores health and weapons and puts the character back at the
// spawn point.
func (s *Session) Respawn() {
	s.Health.Revive(s.Player.Health.RespawnInvulnerability)
	s.Weapons.Raise()
	s.Controller.Respawn(s.Spawn())
	s.log.Info().Int("frame", s.frame).Msg("respawned")
}

// Reload reapplies the player prefab's movement tuning without resetting
// the character.
func (s *Session) Reload() error {
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return err
	}
	if err := s.Controller.SetConfig(player.Movement); err != nil {
		return err
	}
	s.Player = *player
	s.Health.Max = player.Health.Max
	return nil
}

// Observation describes the character for scripted input.
func (s *Session) Observation() input.Observation {
	st := s.Controller.State()
	return input.Observation{
		X:         st.Position.X,
		Y:         st.Position.Y,
		Z:         st.Position.Z,
		Yaw:       st.Yaw,
		Speed:     st.MeasuredSpeed,
		Grounded:  st.Grounded,
		Grappling: st.Grappling,
		Dead:      st.Dead,
		Mode:      st.Mode.String(),
	}
}
