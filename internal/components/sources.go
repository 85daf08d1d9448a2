package components

import (
	"math"

	"github.com/roach88/philbrick/internal/engine"
)

// VoltageSource generates a sinusoidal output:
// out = amplitude * sin(2π * frequency * t).
type VoltageSource struct {
	engine.Base
	Frequency float64
	Amplitude float64

	time float64
	out  *engine.Port
}

// NewVoltageSource creates a sine source at the given frequency (Hz)
// and amplitude.
func NewVoltageSource(name string, frequency, amplitude float64) *VoltageSource {
	v := &VoltageSource{
		Base:      engine.NewBase(name),
		Frequency: frequency,
		Amplitude: amplitude,
	}
	v.out = v.AddOutput("out")
	return v
}

func (v *VoltageSource) Step(dt float64) {
	v.time += dt
	v.out.Write(v.Amplitude * math.Sin(2*math.Pi*v.Frequency*v.time))
}

func (v *VoltageSource) Reset() {
	v.time = 0
	v.out.Write(0)
}

// Constant outputs a fixed value and has no inputs.
type Constant struct {
	engine.Base
	Value float64

	out *engine.Port
}

// NewConstant creates a constant source. The output carries the value
// immediately, before the first step.
func NewConstant(name string, value float64) *Constant {
	c := &Constant{Base: engine.NewBase(name), Value: value}
	c.out = c.AddOutput("out")
	c.out.Write(value)
	return c
}

func (c *Constant) Step(dt float64) {
	c.out.Write(c.Value)
}

func (c *Constant) Reset() {
	c.out.Write(c.Value)
}
