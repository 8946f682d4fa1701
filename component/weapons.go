package component

// Weapons is the minimal weapon state the movement controller consults.
type Weapons struct {
	Aiming  bool
	Lowered bool
}

func (w *Weapons) IsAiming() bool {
	return w != nil && w.Aiming && !w.Lowered
}

// LowerWeapon holsters the active weapon. Aiming stops until Raise.
func (w *Weapons) LowerWeapon() {
	if w == nil {
		return
	}
	w.Lowered = true
	w.Aiming = false
}

func (w *Weapons) Raise() {
	if w == nil {
		return
	}
	w.Lowered = false
}
