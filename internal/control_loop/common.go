package control_loop

type ControlLoop interface {
	// Cycle advances the control loop towards target and returns
	// the value to apply in this cycle
	Cycle(target float64) float64
}
