package input

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ErrScriptNotLoaded is returned when a Script is stepped before it compiled.
var ErrScriptNotLoaded = errors.New("input: script not loaded")

// scriptOutputs are the globals a script assigns each frame.
var scriptOutputs = []string{"move_x", "move_z", "look_x", "look_y", "sprint", "crouch", "jump", "hook"}

// Observation is what a script may read about the character each frame.
type Observation struct {
	X, Y, Z   float64
	Yaw       float64
	Speed     float64
	Grounded  bool
	Grappling bool
	Dead      bool
	Mode      string
}

// Script drives input from a tengo program. The program runs once per
// frame with frame, time, state and a persistent memory map in scope and
// assigns the held state of each input; edges are derived between frames.
type Script struct {
	Snapshot

	name     string
	compiled *tengo.Compiled
	memory   *tengo.Map
	prev     Levels
}

// NewScript compiles src. Output globals are predeclared, so scripts assign
// them with = rather than :=.
func NewScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	_ = script.Add("time", 0.0)
	_ = script.Add("state", map[string]interface{}{})
	_ = script.Add("memory", map[string]interface{}{})
	for _, out := range scriptOutputs {
		_ = script.Add(out, 0)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile %s: %w", name, err)
	}
	return &Script{
		name:     name,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Name returns the script's name.
func (s *Script) Name() string {
	return s.name
}

// Step runs the script for one frame and refreshes the snapshot.
func (s *Script) Step(frame int, t float64, obs Observation) error {
	if s == nil || s.compiled == nil {
		return ErrScriptNotLoaded
	}
	state := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x":         &tengo.Float{Value: obs.X},
		"y":         &tengo.Float{Value: obs.Y},
		"z":         &tengo.Float{Value: obs.Z},
		"yaw":       &tengo.Float{Value: obs.Yaw},
		"speed":     &tengo.Float{Value: obs.Speed},
		"grounded":  boolObject(obs.Grounded),
		"grappling": boolObject(obs.Grappling),
		"dead":      boolObject(obs.Dead),
		"mode":      &tengo.String{Value: obs.Mode},
	}}
	if err := s.compiled.Set("frame", frame); err != nil {
		return err
	}
	if err := s.compiled.Set("time", t); err != nil {
		return err
	}
	if err := s.compiled.Set("state", state); err != nil {
		return err
	}
	if err := s.compiled.Set("memory", s.memory); err != nil {
		return err
	}
	for _, out := range scriptOutputs {
		if err := s.compiled.Set(out, 0); err != nil {
			return err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("input: run %s frame %d: %w", s.name, frame, err)
	}

	cur := Levels{
		MoveX:  s.compiled.Get("move_x").Float(),
		MoveZ:  s.compiled.Get("move_z").Float(),
		LookX:  s.compiled.Get("look_x").Float(),
		LookY:  s.compiled.Get("look_y").Float(),
		Sprint: s.compiled.Get("sprint").Bool(),
		Crouch: s.compiled.Get("crouch").Bool(),
		Jump:   s.compiled.Get("jump").Bool(),
		Hook:   s.compiled.Get("hook").Bool(),
	}
	s.Snapshot = Edges(s.prev, cur)
	s.prev = cur
	return nil
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
