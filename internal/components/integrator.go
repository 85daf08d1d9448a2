package components

import "github.com/roach88/philbrick/internal/engine"

// Integrator accumulates its input over time:
// state += in * gain * dt, out = state.
//
// The heart of analog computation.
type Integrator struct {
	engine.Base
	Initial float64
	Gain    float64

	state float64
	in    *engine.Port
	out   *engine.Port
}

// NewIntegrator creates an integrator with the given initial condition
// and gain. The output carries the initial condition immediately.
func NewIntegrator(name string, initial, gain float64) *Integrator {
	i := &Integrator{Base: engine.NewBase(name), Initial: initial, Gain: gain, state: initial}
	i.in = i.AddInput("in")
	i.out = i.AddOutput("out")
	i.out.Write(i.state)
	return i
}

func (i *Integrator) Step(dt float64) {
	i.state += i.in.Read() * i.Gain * dt
	i.out.Write(i.state)
}

func (i *Integrator) Reset() {
	i.state = i.Initial
	i.out.Write(i.state)
}

// State returns the current accumulator value.
func (i *Integrator) State() float64 {
	return i.state
}
