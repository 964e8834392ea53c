package physics

import "testing"

func TestStepperRunsWholeSteps(t *testing.T) {
	s := NewStepper(0.25)

	steps := 0
	n := s.Advance(0.625, func(dt float64) {
		if dt != 0.25 {
			t.Errorf("dt = %v, expected 0.25", dt)
		}
		steps++
	})

	if n != 2 || steps != 2 {
		t.Errorf("Advance() ran %d steps (reported %d), expected 2", steps, n)
	}
	if s.Accumulator() != 0.125 {
		t.Errorf("Accumulator() = %v, expected 0.125", s.Accumulator())
	}

	// Leftover carries into the next frame.
	n = s.Advance(0.125, func(float64) {})
	if n != 1 {
		t.Errorf("leftover + 0.125 should complete one step, got %d", n)
	}
	if s.Accumulator() != 0 {
		t.Errorf("Accumulator() = %v, expected 0", s.Accumulator())
	}
}

func TestStepperIndependentOfFrameRate(t *testing.T) {
	// One second of wall time split into different frame sizes yields the
	// same number of simulation steps.
	for _, frames := range []int{1, 2, 4, 8, 16} {
		s := NewStepper(0.0625)
		total := 0
		for i := 0; i < frames; i++ {
			total += s.Advance(1/float64(frames), func(float64) {})
		}
		if total != 16 {
			t.Errorf("%d frames: %d steps, expected 16", frames, total)
		}
	}
}

func TestStepperMaxElapsed(t *testing.T) {
	s := NewStepper(0.25)
	s.MaxElapsed = 0.5
	if n := s.Advance(10, func(float64) {}); n != 2 {
		t.Errorf("capped Advance() ran %d steps, expected 2", n)
	}
}

func TestStepperIgnoresNonPositive(t *testing.T) {
	s := NewStepper(0.25)
	if n := s.Advance(-1, func(float64) { t.Error("step should not run") }); n != 0 {
		t.Errorf("negative elapsed ran %d steps", n)
	}
	s.Reset()
	if s.Accumulator() != 0 {
		t.Error("Reset() should clear accumulator")
	}
}
