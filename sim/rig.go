package sim

import (
	"github.com/milk9111/firstperson/component"
	"github.com/milk9111/firstperson/controller"
)

// Rig keeps the latest presentation state the controller published and
// plays the head bob it selects.
type Rig struct {
	View      controller.View
	Animation controller.Animation
	Crouched  bool
	Bob       *component.Animator
}

func NewRig() *Rig {
	return &Rig{Bob: component.NewHeadBob()}
}

func (r *Rig) ApplyView(v controller.View) { r.View = v }

func (r *Rig) ApplyAnimation(a controller.Animation) {
	r.Animation = a
	if r.Bob != nil {
		r.Bob.Select(a.Walking, a.Crouching, a.Sliding)
	}
}

func (r *Rig) StanceChanged(crouched bool) { r.Crouched = crouched }

// Tick advances the head bob by one rendered frame.
func (r *Rig) Tick() {
	if r.Bob != nil {
		r.Bob.Update()
	}
}

// EyeHeight is the camera height with the head bob applied.
func (r *Rig) EyeHeight() float64 {
	if r.Bob == nil {
		return r.View.CameraHeight
	}
	return r.View.CameraHeight + r.Bob.Value()
}

// Silence discards sounds, counting them.
type Silence struct {
	Count int
}

func (s *Silence) Play(controller.Sound) { s.Count++ }
