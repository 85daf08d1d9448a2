package components

import (
	"math"
	"sort"

	"github.com/roach88/philbrick/internal/engine"
)

// TriangleWave generates a triangle oscillation between -amplitude and
// +amplitude, rising through the first half of each period.
type TriangleWave struct {
	engine.Base
	Frequency float64
	Amplitude float64

	time float64
	out  *engine.Port
}

// NewTriangleWave creates a triangle wave at the given frequency (Hz).
func NewTriangleWave(name string, frequency, amplitude float64) *TriangleWave {
	t := &TriangleWave{
		Base:      engine.NewBase(name),
		Frequency: frequency,
		Amplitude: amplitude,
	}
	t.out = t.AddOutput("out")
	return t
}

func (t *TriangleWave) Step(dt float64) {
	t.time += dt
	phase := math.Mod(t.Frequency*t.time, 1.0)
	var value float64
	if phase < 0.5 {
		value = -1.0 + 4.0*phase // rising half
	} else {
		value = 3.0 - 4.0*phase // falling half
	}
	t.out.Write(t.Amplitude * value)
}

func (t *TriangleWave) Reset() {
	t.time = 0
	t.out.Write(-t.Amplitude)
}

// SawtoothWave generates a linear ramp from -amplitude to +amplitude
// each period.
type SawtoothWave struct {
	engine.Base
	Frequency float64
	Amplitude float64

	time float64
	out  *engine.Port
}

// NewSawtoothWave creates a sawtooth wave at the given frequency (Hz).
func NewSawtoothWave(name string, frequency, amplitude float64) *SawtoothWave {
	s := &SawtoothWave{
		Base:      engine.NewBase(name),
		Frequency: frequency,
		Amplitude: amplitude,
	}
	s.out = s.AddOutput("out")
	return s
}

func (s *SawtoothWave) Step(dt float64) {
	s.time += dt
	phase := math.Mod(s.Frequency*s.time, 1.0)
	s.out.Write(s.Amplitude * (-1.0 + 2.0*phase))
}

func (s *SawtoothWave) Reset() {
	s.time = 0
	s.out.Write(-s.Amplitude)
}

// SquareWave generates a square oscillation with a configurable duty
// cycle: +amplitude for the first dutyCycle fraction of each period,
// -amplitude for the remainder.
type SquareWave struct {
	engine.Base
	Frequency float64
	Amplitude float64
	DutyCycle float64

	time float64
	out  *engine.Port
}

// NewSquareWave creates a square wave at the given frequency (Hz).
func NewSquareWave(name string, frequency, amplitude, dutyCycle float64) *SquareWave {
	s := &SquareWave{
		Base:      engine.NewBase(name),
		Frequency: frequency,
		Amplitude: amplitude,
		DutyCycle: dutyCycle,
	}
	s.out = s.AddOutput("out")
	return s
}

func (s *SquareWave) Step(dt float64) {
	s.time += dt
	phase := math.Mod(s.Frequency*s.time, 1.0)
	if phase < s.DutyCycle {
		s.out.Write(s.Amplitude)
	} else {
		s.out.Write(-s.Amplitude)
	}
}

func (s *SquareWave) Reset() {
	s.time = 0
	s.out.Write(s.Amplitude)
}

// Breakpoint is one (x, y) pair of a piecewise linear mapping.
type Breakpoint struct {
	X float64
	Y float64
}

// PiecewiseLinear maps its input through a piecewise linear function
// defined by breakpoints, clamping to the first/last y value outside
// the breakpoint domain.
type PiecewiseLinear struct {
	engine.Base
	Breakpoints []Breakpoint

	in  *engine.Port
	out *engine.Port
}

// NewPiecewiseLinear creates a piecewise linear shaper. Breakpoints
// are sorted by x on construction.
func NewPiecewiseLinear(name string, breakpoints []Breakpoint) *PiecewiseLinear {
	bps := make([]Breakpoint, len(breakpoints))
	copy(bps, breakpoints)
	sort.Slice(bps, func(i, j int) bool { return bps[i].X < bps[j].X })
	p := &PiecewiseLinear{Base: engine.NewBase(name), Breakpoints: bps}
	p.in = p.AddInput("in")
	p.out = p.AddOutput("out")
	return p
}

func (p *PiecewiseLinear) Step(dt float64) {
	p.out.Write(p.interpolate(p.in.Read()))
}

func (p *PiecewiseLinear) interpolate(x float64) float64 {
	first, last := p.Breakpoints[0], p.Breakpoints[len(p.Breakpoints)-1]
	if x <= first.X {
		return first.Y
	}
	if x >= last.X {
		return last.Y
	}
	for i := 0; i < len(p.Breakpoints)-1; i++ {
		a, b := p.Breakpoints[i], p.Breakpoints[i+1]
		if a.X <= x && x <= b.X {
			t := (x - a.X) / (b.X - a.X)
			return a.Y + t*(b.Y-a.Y)
		}
	}
	return last.Y
}

func (p *PiecewiseLinear) Reset() {
	p.out.Write(0)
}
