package component

// DamageEvent describes one application of damage.
type DamageEvent struct {
	Amount float64
	Source any
}

// Health tracks hit points for the controlled character.
type Health struct {
	Max     float64
	Current float64
	Dead    bool

	// Invulnerable is the remaining time in seconds during which damage
	// is ignored.
	Invulnerable float64

	OnDamage func(h *Health, evt DamageEvent)
	OnDeath  func(h *Health, evt DamageEvent)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// IsDead reports whether the entity has died.
func (h *Health) IsDead() bool {
	return h == nil || h.Dead
}

// TakeDamage applies damage unless invulnerable. It returns true if damage
// was applied.
func (h *Health) TakeDamage(amount float64, source any) bool {
	if h == nil || h.Dead || h.Invulnerable > 0 || amount <= 0 {
		return false
	}
	evt := DamageEvent{Amount: amount, Source: source}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, evt)
	}
	if h.Current <= 0 {
		h.die(evt)
	}
	return true
}

// Kill drops health to zero regardless of invulnerability.
func (h *Health) Kill() {
	if h == nil || h.Dead {
		return
	}
	evt := DamageEvent{Amount: h.Current}
	h.Current = 0
	if h.OnDamage != nil {
		h.OnDamage(h, evt)
	}
	h.die(evt)
}

func (h *Health) die(evt DamageEvent) {
	h.Dead = true
	if h.OnDeath != nil {
		h.OnDeath(h, evt)
	}
}

// Heal restores health up to Max.
func (h *Health) Heal(amount float64) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// Revive restores full health and grants seconds of invulnerability.
func (h *Health) Revive(invulnerable float64) {
	if h == nil {
		return
	}
	h.Dead = false
	h.Current = h.Max
	h.Invulnerable = invulnerable
}

// Tick advances the invulnerability timer.
func (h *Health) Tick(dt float64) {
	if h == nil || h.Invulnerable <= 0 {
		return
	}
	h.Invulnerable -= dt
	if h.Invulnerable < 0 {
		h.Invulnerable = 0
	}
}

// Ratio returns Current/Max in [0, 1].
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}
