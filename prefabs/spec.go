package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/firstperson/controller"
	"gopkg.in/yaml.v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoadSpec decodes a prefab file into a zero T.
func LoadSpec[T any](filename string) (T, error) {
	var spec T
	err := LoadInto(filename, &spec)
	return spec, err
}

// LoadInto decodes a prefab file over the values already in out, so fields
// the file leaves out keep them.
func LoadInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

const PlayerFile = "player.yaml"

// PlayerSpec is the player prefab: where it spawns, how tough it is, how
// input feels and how it moves.
type PlayerSpec struct {
	Name     string            `yaml:"name"`
	Spawn    SpawnSpec         `yaml:"spawn"`
	Health   HealthSpec        `yaml:"health"`
	Input    InputSpec         `yaml:"input"`
	Audio    []AudioSpec       `yaml:"audio"`
	Movement controller.Config `yaml:"movement"`
}

type SpawnSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

func (s SpawnSpec) Spawn() controller.Spawn {
	return controller.Spawn{Position: r3.Vec{X: s.X, Y: s.Y, Z: s.Z}, Yaw: s.Yaw}
}

type HealthSpec struct {
	Max float64 `yaml:"max"`
	// RespawnInvulnerability is seconds of immunity after a respawn.
	RespawnInvulnerability float64 `yaml:"respawn_invulnerability"`
}

type InputSpec struct {
	Sensitivity float64 `yaml:"sensitivity"`
	InvertY     bool    `yaml:"invert_y"`
}

// AudioSpec describes the tone synthesized for one sound.
type AudioSpec struct {
	Name      string  `yaml:"name"`
	Frequency float64 `yaml:"frequency"`
	Duration  float64 `yaml:"duration"`
	Volume    float64 `yaml:"volume"`
}

// DefaultPlayerSpec is used for anything player.yaml leaves out.
func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:     "player",
		Health:   HealthSpec{Max: 100, RespawnInvulnerability: 1},
		Input:    InputSpec{Sensitivity: 1},
		Movement: controller.DefaultConfig(),
	}
}

// LoadPlayerSpec reads player.yaml over DefaultPlayerSpec and validates it.
func LoadPlayerSpec() (*PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	if err := LoadInto(PlayerFile, &spec); err != nil {
		return nil, err
	}
	if spec.Health.Max <= 0 {
		return nil, fmt.Errorf("prefabs: %s: health.max must be positive", PlayerFile)
	}
	if err := spec.Movement.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", PlayerFile, err)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the color, or fallback when none was set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
