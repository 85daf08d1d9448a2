package components

import (
	"fmt"
	"math"

	"github.com/roach88/philbrick/internal/engine"
)

// Summer computes the weighted sum of N inputs:
// out = Σ in_i * weight_i. One input port in0..inN-1 per weight.
type Summer struct {
	engine.Base
	Weights []float64

	ins []*engine.Port
	out *engine.Port
}

// NewSummer creates a summer with one input per weight.
func NewSummer(name string, weights []float64) *Summer {
	s := &Summer{Base: engine.NewBase(name), Weights: weights}
	s.ins = make([]*engine.Port, len(weights))
	for i := range weights {
		s.ins[i] = s.AddInput(fmt.Sprintf("in%d", i))
	}
	s.out = s.AddOutput("out")
	return s
}

func (s *Summer) Step(dt float64) {
	sum := 0.0
	for i, w := range s.Weights {
		sum += s.ins[i].Read() * w
	}
	s.out.Write(sum)
}

func (s *Summer) Reset() {
	s.out.Write(0)
}

// Coefficient multiplies its input by a constant k (the "pot").
type Coefficient struct {
	engine.Base
	K float64

	in  *engine.Port
	out *engine.Port
}

// NewCoefficient creates a coefficient multiplier.
func NewCoefficient(name string, k float64) *Coefficient {
	c := &Coefficient{Base: engine.NewBase(name), K: k}
	c.in = c.AddInput("in")
	c.out = c.AddOutput("out")
	return c
}

func (c *Coefficient) Step(dt float64) {
	c.out.Write(c.in.Read() * c.K)
}

func (c *Coefficient) Reset() {
	c.out.Write(0)
}

// Inverter negates its input.
type Inverter struct {
	engine.Base

	in  *engine.Port
	out *engine.Port
}

// NewInverter creates a sign inverter.
func NewInverter(name string) *Inverter {
	i := &Inverter{Base: engine.NewBase(name)}
	i.in = i.AddInput("in")
	i.out = i.AddOutput("out")
	return i
}

func (i *Inverter) Step(dt float64) {
	i.out.Write(-i.in.Read())
}

func (i *Inverter) Reset() {
	i.out.Write(0)
}

// Multiplier is a four-quadrant multiplier: out = x * y * scale.
type Multiplier struct {
	engine.Base
	Scale float64

	x   *engine.Port
	y   *engine.Port
	out *engine.Port
}

// NewMultiplier creates a multiplier with the given output scale.
func NewMultiplier(name string, scale float64) *Multiplier {
	m := &Multiplier{Base: engine.NewBase(name), Scale: scale}
	m.x = m.AddInput("x")
	m.y = m.AddInput("y")
	m.out = m.AddOutput("out")
	return m
}

func (m *Multiplier) Step(dt float64) {
	m.out.Write(m.x.Read() * m.y.Read() * m.Scale)
}

func (m *Multiplier) Reset() {
	m.out.Write(0)
}

// Comparator outputs high when in >= threshold, low otherwise.
type Comparator struct {
	engine.Base
	Threshold float64
	High      float64
	Low       float64

	in  *engine.Port
	out *engine.Port
}

// NewComparator creates a threshold comparator.
func NewComparator(name string, threshold, high, low float64) *Comparator {
	c := &Comparator{Base: engine.NewBase(name), Threshold: threshold, High: high, Low: low}
	c.in = c.AddInput("in")
	c.out = c.AddOutput("out")
	return c
}

func (c *Comparator) Step(dt float64) {
	if c.in.Read() >= c.Threshold {
		c.out.Write(c.High)
	} else {
		c.out.Write(c.Low)
	}
}

func (c *Comparator) Reset() {
	c.out.Write(0)
}

// Limiter clips its input to [min, max].
type Limiter struct {
	engine.Base
	Min float64
	Max float64

	in  *engine.Port
	out *engine.Port
}

// NewLimiter creates a range limiter.
func NewLimiter(name string, min, max float64) *Limiter {
	l := &Limiter{Base: engine.NewBase(name), Min: min, Max: max}
	l.in = l.AddInput("in")
	l.out = l.AddOutput("out")
	return l
}

func (l *Limiter) Step(dt float64) {
	l.out.Write(math.Max(l.Min, math.Min(l.Max, l.in.Read())))
}

func (l *Limiter) Reset() {
	l.out.Write(0)
}

// Exp applies the exponential function. The scaled input is clamped to
// [-10, 10] so the output stays finite regardless of input.
type Exp struct {
	engine.Base
	Scale float64

	in  *engine.Port
	out *engine.Port
}

// NewExp creates an exponential shaper: out = exp(clamp(in*scale, -10, 10)).
func NewExp(name string, scale float64) *Exp {
	e := &Exp{Base: engine.NewBase(name), Scale: scale}
	e.in = e.AddInput("in")
	e.out = e.AddOutput("out")
	return e
}

func (e *Exp) Step(dt float64) {
	scaled := math.Max(-10.0, math.Min(10.0, e.in.Read()*e.Scale))
	e.out.Write(math.Exp(scaled))
}

func (e *Exp) Reset() {
	e.out.Write(1) // exp(0)
}

// Divider divides num by den with an epsilon floor on the denominator
// magnitude, preserving the denominator's sign:
// out = num / max(|den|, epsilon) * sign(den).
type Divider struct {
	engine.Base
	Epsilon float64

	num *engine.Port
	den *engine.Port
	out *engine.Port
}

// NewDivider creates a safe divider.
func NewDivider(name string, epsilon float64) *Divider {
	d := &Divider{Base: engine.NewBase(name), Epsilon: epsilon}
	d.num = d.AddInput("num")
	d.den = d.AddInput("den")
	d.out = d.AddOutput("out")
	return d
}

func (d *Divider) Step(dt float64) {
	den := d.den.Read()
	safe := math.Max(math.Abs(den), d.Epsilon)
	sign := 1.0
	if den < 0 {
		sign = -1.0
	}
	d.out.Write(d.num.Read() / safe * sign)
}

func (d *Divider) Reset() {
	d.out.Write(0)
}

// DotProduct computes an N-element dot product of two input vectors on
// ports a0..aN-1 and b0..bN-1.
type DotProduct struct {
	engine.Base
	Size int

	as  []*engine.Port
	bs  []*engine.Port
	out *engine.Port
}

// NewDotProduct creates a dot product of two size-element vectors.
func NewDotProduct(name string, size int) *DotProduct {
	d := &DotProduct{Base: engine.NewBase(name), Size: size}
	d.as = make([]*engine.Port, size)
	d.bs = make([]*engine.Port, size)
	for i := 0; i < size; i++ {
		d.as[i] = d.AddInput(fmt.Sprintf("a%d", i))
	}
	for i := 0; i < size; i++ {
		d.bs[i] = d.AddInput(fmt.Sprintf("b%d", i))
	}
	d.out = d.AddOutput("out")
	return d
}

func (d *DotProduct) Step(dt float64) {
	sum := 0.0
	for i := 0; i < d.Size; i++ {
		sum += d.as[i].Read() * d.bs[i].Read()
	}
	d.out.Write(sum)
}

func (d *DotProduct) Reset() {
	d.out.Write(0)
}

// Max outputs the maximum of its N inputs in0..inN-1.
type Max struct {
	engine.Base
	Size int

	ins []*engine.Port
	out *engine.Port
}

// NewMax creates a maximum selector over size inputs.
func NewMax(name string, size int) *Max {
	m := &Max{Base: engine.NewBase(name), Size: size}
	m.ins = make([]*engine.Port, size)
	for i := 0; i < size; i++ {
		m.ins[i] = m.AddInput(fmt.Sprintf("in%d", i))
	}
	m.out = m.AddOutput("out")
	return m
}

func (m *Max) Step(dt float64) {
	best := m.ins[0].Read()
	for i := 1; i < m.Size; i++ {
		if v := m.ins[i].Read(); v > best {
			best = v
		}
	}
	m.out.Write(best)
}

func (m *Max) Reset() {
	m.out.Write(0)
}
