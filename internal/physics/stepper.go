package physics

// Stepper runs a simulation at a constant timestep regardless of frame
// rate using the accumulator pattern. Rendering reads the latest state;
// there is no interpolation between steps.
type Stepper struct {
	timestep    float64
	accumulator float64

	// MaxElapsed caps the wall time added per Advance call. Zero means no cap.
	MaxElapsed float64
}

// NewStepper creates a stepper with the given fixed timestep in seconds.
func NewStepper(timestep float64) *Stepper {
	return &Stepper{timestep: timestep}
}

// Timestep returns the fixed step length in seconds.
func (s *Stepper) Timestep() float64 {
	return s.timestep
}

// Accumulator returns the wall time not yet consumed by a step.
func (s *Stepper) Accumulator() float64 {
	return s.accumulator
}

// Advance adds elapsed wall time and runs step once for every whole
// timestep available. Returns the number of steps run.
func (s *Stepper) Advance(elapsed float64, step func(dt float64)) int {
	if s.timestep <= 0 || elapsed <= 0 {
		return 0
	}
	if s.MaxElapsed > 0 && elapsed > s.MaxElapsed {
		elapsed = s.MaxElapsed
	}

	s.accumulator += elapsed
	steps := 0
	for s.accumulator >= s.timestep {
		step(s.timestep)
		s.accumulator -= s.timestep
		steps++
	}
	return steps
}

// Reset drops any accumulated time.
func (s *Stepper) Reset() {
	s.accumulator = 0
}
