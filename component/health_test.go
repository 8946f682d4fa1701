package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthTakeDamage(t *testing.T) {
	cases := []struct {
		name      string
		start     float64
		hits      []float64
		wantHP    float64
		wantDead  bool
		wantCalls int
	}{
		{"single_hit", 100, []float64{30}, 70, false, 1},
		{"lethal", 100, []float64{60, 60}, 0, true, 2},
		{"ignored_non_positive", 100, []float64{0, -5}, 100, false, 0},
		{"no_damage_after_death", 10, []float64{20, 5}, 0, true, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewHealth(c.start)
			calls := 0
			deaths := 0
			h.OnDamage = func(*Health, DamageEvent) { calls++ }
			h.OnDeath = func(*Health, DamageEvent) { deaths++ }
			for _, amount := range c.hits {
				h.TakeDamage(amount, "test")
			}
			assert.Equal(t, c.wantHP, h.Current)
			assert.Equal(t, c.wantDead, h.IsDead())
			assert.Equal(t, c.wantCalls, calls)
			if c.wantDead {
				assert.Equal(t, 1, deaths)
			}
		})
	}
}

func TestHealthKillIgnoresInvulnerability(t *testing.T) {
	h := NewHealth(50)
	h.Revive(2)
	assert.False(t, h.TakeDamage(10, nil))

	deaths := 0
	h.OnDeath = func(*Health, DamageEvent) { deaths++ }
	h.Kill()
	h.Kill()
	assert.True(t, h.IsDead())
	assert.Equal(t, 1, deaths)

	h.Revive(0)
	assert.True(t, h.IsAlive())
	assert.Equal(t, 1.0, h.Ratio())
}

func TestHealthTick(t *testing.T) {
	h := NewHealth(10)
	h.Revive(0.5)
	h.Tick(0.3)
	assert.False(t, h.TakeDamage(1, nil))
	h.Tick(0.3)
	assert.True(t, h.TakeDamage(1, nil))
	assert.Equal(t, 9.0, h.Current)
}

func TestWeapons(t *testing.T) {
	w := &Weapons{Aiming: true}
	assert.True(t, w.IsAiming())
	w.LowerWeapon()
	assert.False(t, w.IsAiming())
	assert.True(t, w.Lowered)

	var none *Weapons
	assert.False(t, none.IsAiming())
}
