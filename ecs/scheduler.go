package ecs

// System runs once per rendered frame with the variable frame delta.
type System interface {
	Update(dt float64)
}

// FixedSystem runs zero or more times per frame at a constant step.
type FixedSystem interface {
	FixedUpdate(dt float64)
}

// DefaultFixedStep matches a 50 Hz physics tick.
const DefaultFixedStep = 0.02

// maxFixedSteps bounds catch-up work after a long frame.
const maxFixedSteps = 8

// Scheduler orders systems and owns the fixed-step accumulator. Fixed steps
// due in a frame run before that frame's variable-rate systems.
type Scheduler struct {
	systems []System
	fixed   []FixedSystem

	fixedStep   float64
	accumulator float64
	time        float64
}

func NewScheduler(fixedStep float64, systems ...System) *Scheduler {
	if fixedStep <= 0 {
		fixedStep = DefaultFixedStep
	}
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied, fixedStep: fixedStep}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) AddFixed(system FixedSystem) {
	if system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

// Step advances the clock by dt and returns the number of fixed steps run.
func (s *Scheduler) Step(dt float64) int {
	if dt < 0 {
		dt = 0
	}
	s.accumulator += dt
	steps := 0
	for s.accumulator >= s.fixedStep && steps < maxFixedSteps {
		for _, system := range s.fixed {
			system.FixedUpdate(s.fixedStep)
		}
		s.accumulator -= s.fixedStep
		steps++
	}
	if steps == maxFixedSteps && s.accumulator >= s.fixedStep {
		s.accumulator = 0
	}
	for _, system := range s.systems {
		system.Update(dt)
	}
	s.time += dt
	return steps
}

// Time returns the total simulated time.
func (s *Scheduler) Time() float64 {
	return s.time
}

func (s *Scheduler) FixedStep() float64 {
	return s.fixedStep
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
