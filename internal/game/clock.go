package game

// stepper turns variable frame times into a whole number of fixed physics
// steps. Time that would need more than maxSteps is dropped so a long stall
// does not trigger a burst of catch-up steps.
type stepper struct {
	step     float32
	maxSteps int
	acc      float32
}

func newStepper(step float32) *stepper {
	return &stepper{step: step, maxSteps: 16}
}

// Advance adds frameTime and returns how many steps are due.
func (s *stepper) Advance(frameTime float32) int {
	s.acc += frameTime
	n := 0
	for s.acc >= s.step && n < s.maxSteps {
		s.acc -= s.step
		n++
	}
	if n == s.maxSteps {
		s.acc = 0
	}
	return n
}

func (s *stepper) Reset() {
	s.acc = 0
}
