// Package scope taps circuit ports as named channels and samples them
// during a run, for CSV export, recording, and signal statistics.
package scope

import (
	"fmt"
	"math"

	"github.com/roach88/philbrick/internal/circuit"
	"github.com/roach88/philbrick/internal/engine"
)

// Channel is one tapped port with a display label.
type Channel struct {
	Source string
	Label  string
	port   *engine.Port
}

// Resolve finds the port behind a "component.port" channel source.
// Outputs are checked before inputs, since scope taps are almost
// always outputs.
func Resolve(machine *engine.Machine, source string) (*engine.Port, error) {
	compName, portName, err := circuit.SplitPortRef(source)
	if err != nil {
		return nil, err
	}
	comp, ok := machine.Find(compName)
	if !ok {
		return nil, engine.NewUnknownComponentError(compName)
	}
	if port, ok := comp.Outputs().Get(portName); ok {
		return port, nil
	}
	if port, ok := comp.Inputs().Get(portName); ok {
		return port, nil
	}
	return nil, engine.NewUnknownPortError(compName, portName, "scope")
}

// Sampler reads a set of channels once per tick into bounded buffers.
type Sampler struct {
	channels []Channel
	buffers  [][]float64
	times    []float64
	max      int
}

// NewSampler resolves the declared channels against the machine. An
// empty label defaults to the channel source. maxSamples bounds each
// buffer; zero or less means unbounded.
func NewSampler(machine *engine.Machine, channels []circuit.ChannelDecl, maxSamples int) (*Sampler, error) {
	s := &Sampler{max: maxSamples}
	for _, decl := range channels {
		port, err := Resolve(machine, decl.Source)
		if err != nil {
			return nil, fmt.Errorf("scope channel %s: %w", decl.Source, err)
		}
		label := decl.Label
		if label == "" {
			label = decl.Source
		}
		s.channels = append(s.channels, Channel{Source: decl.Source, Label: label, port: port})
		s.buffers = append(s.buffers, nil)
	}
	return s, nil
}

// Labels returns the channel labels in declaration order.
func (s *Sampler) Labels() []string {
	labels := make([]string, len(s.channels))
	for i, ch := range s.channels {
		labels[i] = ch.Label
	}
	return labels
}

// Sample records the current value of every channel at the given
// simulation time. Oldest samples are dropped once a buffer exceeds
// the sampler's bound.
func (s *Sampler) Sample(time float64) {
	s.times = append(s.times, time)
	for i, ch := range s.channels {
		s.buffers[i] = append(s.buffers[i], ch.port.Read())
	}
	if s.max > 0 && len(s.times) > s.max {
		s.times = s.times[1:]
		for i := range s.buffers {
			s.buffers[i] = s.buffers[i][1:]
		}
	}
}

// Latest returns the most recent value of every channel, aligned with
// Labels. It returns nil before the first Sample call.
func (s *Sampler) Latest() []float64 {
	if len(s.times) == 0 {
		return nil
	}
	values := make([]float64, len(s.channels))
	for i, buf := range s.buffers {
		values[i] = buf[len(buf)-1]
	}
	return values
}

// Len returns the number of recorded samples.
func (s *Sampler) Len() int {
	return len(s.times)
}

// Series returns the recorded times and the value series for channel i.
func (s *Sampler) Series(i int) (times, values []float64) {
	return s.times, s.buffers[i]
}

// Stats summarizes one channel's recorded samples.
type Stats struct {
	Min  float64
	Max  float64
	Mean float64
}

// ChannelStats computes min/max/mean over channel i's buffer.
func (s *Sampler) ChannelStats(i int) Stats {
	buf := s.buffers[i]
	if len(buf) == 0 {
		return Stats{}
	}
	st := Stats{Min: buf[0], Max: buf[0]}
	sum := 0.0
	for _, v := range buf {
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
		sum += v
	}
	st.Mean = sum / float64(len(buf))
	return st
}

// Settled reports whether channel i's last window samples stay within
// tolerance peak-to-peak, i.e. the signal has stopped moving through
// the circuit's serial stages.
func (s *Sampler) Settled(i, window int, tolerance float64) bool {
	buf := s.buffers[i]
	if len(buf) < window {
		return false
	}
	tail := buf[len(buf)-window:]
	lo, hi := tail[0], tail[0]
	for _, v := range tail {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi-lo <= tolerance
}
