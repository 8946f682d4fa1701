package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/firstperson/controller"
	"github.com/milk9111/firstperson/input"
	"github.com/milk9111/firstperson/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func useDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestEmbeddedPlayerMatchesDefaults(t *testing.T) {
	useDir(t, t.TempDir())
	spec, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Equal(t, "player", spec.Name)
	assert.Equal(t, controller.DefaultConfig(), spec.Movement)
	assert.Equal(t, 100.0, spec.Health.Max)
	assert.Len(t, spec.Audio, 4)
	assert.Equal(t, physics.LayerGrapple, spec.Movement.GrappleLayers)
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	useDir(t, dir)
	data := []byte("movement:\n  jump_force: 12\n  ground_layers: [default]\nspawn:\n  y: 3\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, PlayerFile), data, 0o644))

	spec, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Equal(t, 12.0, spec.Movement.JumpForce)
	assert.Equal(t, physics.LayerDefault, spec.Movement.GroundLayers)
	assert.Equal(t, controller.DefaultConfig().GravityDownForce, spec.Movement.GravityDownForce)
	assert.Equal(t, 3.0, spec.Spawn.Spawn().Position.Y)

	_, ok := ModTime(PlayerFile)
	assert.True(t, ok)
}

func TestLoadPlayerSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		is   error
	}{
		{"bad_yaml", "movement: [", nil},
		{"bad_layer", "movement:\n  ground_layers: water\n", physics.ErrUnknownLayer},
		{"invalid_tuning", "movement:\n  capsule_radius: 2\n", controller.ErrInvalidConfig},
		{"no_health", "health:\n  max: 0\n", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := t.TempDir()
			useDir(t, dir)
			require.NoError(t, os.WriteFile(filepath.Join(dir, PlayerFile), []byte(c.data), 0o644))
			_, err := LoadPlayerSpec()
			require.Error(t, err)
			if c.is != nil {
				assert.ErrorIs(t, err, c.is)
			}
		})
	}
}

func TestScriptsCompile(t *testing.T) {
	useDir(t, t.TempDir())
	names := Scripts()
	require.NotEmpty(t, names)
	for _, name := range names {
		src, err := LoadScript(name)
		require.NoError(t, err, name)
		s, err := input.NewScript(name, src)
		require.NoError(t, err, name)
		require.NoError(t, s.Step(1, 0.016, input.Observation{Grounded: true, Mode: "walk"}), name)
	}
}

func TestScriptPaths(t *testing.T) {
	assert.Equal(t, "scripts/walk.tengo", cleanScriptPath("walk"))
	assert.Equal(t, "scripts/walk.tengo", cleanScriptPath("prefabs/scripts/walk.tengo"))
	assert.Equal(t, "player.yaml", cleanPrefabPath("prefabs/player.yaml"))
	assert.True(t, isSpecFile("a/B.YML"))
	assert.True(t, isScriptFile("x.tengo"))
	assert.False(t, isScriptFile("x.lua"))
}

func TestYAMLColor(t *testing.T) {
	var out struct {
		A YAMLColor `yaml:"a"`
		B YAMLColor `yaml:"b"`
		C YAMLColor `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: '#ff8000'\nb: '00000080'\n"), &out))
	assert.Equal(t, color.NRGBA{R: 255, G: 128, A: 255}, out.A.Color)
	assert.Equal(t, color.NRGBA{A: 128}, out.B.Color)
	assert.Equal(t, color.White, out.C.Or(color.White))

	assert.Error(t, yaml.Unmarshal([]byte("a: '#fff'\n"), &out))
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, PlayerFile)
	require.NoError(t, os.WriteFile(target, []byte("name: p\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for player.yaml")
	}
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
