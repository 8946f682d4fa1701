package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/firstperson/controller"
	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/physics"
	"github.com/milk9111/firstperson/prefabs"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Dir is checked for a level before the embedded copies.
var Dir = "levels"

var ErrUnknownKind = errors.New("levels: unknown collider kind")

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3) R3() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

type Spawn struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

func (s Spawn) Spawn() controller.Spawn {
	return controller.Spawn{Position: r3.Vec{X: s.X, Y: s.Y, Z: s.Z}, Yaw: s.Yaw}
}

// Collider is one static shape. Which fields apply depends on Kind:
// plane uses Normal and Offset, box Min and Max, sphere Center and Radius,
// capsule Bottom, Top and Radius.
type Collider struct {
	Name   string            `yaml:"name"`
	Kind   string            `yaml:"kind"`
	Layer  string            `yaml:"layer"`
	Color  prefabs.YAMLColor `yaml:"color"`
	Normal Vec3              `yaml:"normal"`
	Offset float64           `yaml:"offset"`
	Min    Vec3              `yaml:"min"`
	Max    Vec3              `yaml:"max"`
	Center Vec3              `yaml:"center"`
	Bottom Vec3              `yaml:"bottom"`
	Top    Vec3              `yaml:"top"`
	Radius float64           `yaml:"radius"`
}

func (c Collider) Shape() (physics.Shape, error) {
	switch strings.ToLower(c.Kind) {
	case "plane":
		return physics.Plane{Normal: c.Normal.R3(), Offset: c.Offset}, nil
	case "box":
		return physics.Box{Min: c.Min.R3(), Max: c.Max.R3()}, nil
	case "sphere":
		return physics.Sphere{Center: c.Center.R3(), Radius: c.Radius}, nil
	case "capsule":
		return physics.Capsule{Bottom: c.Bottom.R3(), Top: c.Top.R3(), Radius: c.Radius}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, c.Kind)
}

type Level struct {
	Name      string     `yaml:"name"`
	Spawn     Spawn      `yaml:"spawn"`
	Colliders []Collider `yaml:"colliders"`
}

// Load reads a level by name. The .yaml extension is optional.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join(Dir, clean))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", clean, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", clean, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(clean, ".yaml")
	}
	return lvl, nil
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := LevelsFS.ReadDir(".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names
}

// Build adds every collider of the level to w.
func (l *Level) Build(w *physics.World) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(l.Colliders))
	for i, c := range l.Colliders {
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", c.Kind, i)
		}
		shape, err := c.Shape()
		if err != nil {
			return nil, fmt.Errorf("levels: collider %s: %w", name, err)
		}
		layer, err := physics.ParseLayer(c.Layer)
		if err != nil {
			return nil, fmt.Errorf("levels: collider %s: %w", name, err)
		}
		e, err := w.Add(name, shape, layer)
		if err != nil {
			return nil, fmt.Errorf("levels: collider %s: %w", name, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".yaml") {
		s += ".yaml"
	}
	return s
}
