package engine

// Signal holds a single scalar value for transmission between components.
//
// A Signal has no history and no units; it is mutated only through
// Read and Write.
type Signal struct {
	value float64
}

// NewSignal creates a signal holding the given initial value.
func NewSignal(initial float64) *Signal {
	return &Signal{value: initial}
}

// Read returns the current signal value.
func (s *Signal) Read() float64 {
	return s.value
}

// Write replaces the signal value.
func (s *Signal) Write(value float64) {
	s.value = value
}

// Port is a named input or output terminal on a component.
//
// Every port owns exactly one Signal. Components always create fresh
// Signals for their ports; sharing one Signal across ports is possible
// through NewPortWithSignal but is never done by the kernel itself.
type Port struct {
	name   string
	signal *Signal
}

// NewPort creates a port with a fresh zero-valued signal.
func NewPort(name string) *Port {
	return &Port{name: name, signal: NewSignal(0)}
}

// NewPortWithSignal creates a port bound to an existing signal.
func NewPortWithSignal(name string, signal *Signal) *Port {
	return &Port{name: name, signal: signal}
}

// Name returns the port's name.
func (p *Port) Name() string {
	return p.name
}

// Signal returns the port's underlying signal.
func (p *Port) Signal() *Signal {
	return p.signal
}

// Read returns the value of the port's signal.
func (p *Port) Read() float64 {
	return p.signal.Read()
}

// Write sets the value of the port's signal.
func (p *Port) Write(value float64) {
	p.signal.Write(value)
}
