package engine

// DefaultDT is the default fixed timestep: 1ms, i.e. a 1000Hz machine.
const DefaultDT = 0.001

// Machine orchestrates simulation execution for registered components.
//
// Components are stepped in registration order, not data-dependency
// order. A component never sees patch-propagated updates from
// components stepped later in the same tick; values cross component
// boundaries only through the next PatchBay.Propagate call. See the
// package documentation for the full tick protocol.
type Machine struct {
	time       float64
	dt         float64
	components []Component
}

// NewMachine creates a machine with the given fixed timestep.
// A dt of zero or less falls back to DefaultDT.
func NewMachine(dt float64) *Machine {
	if dt <= 0 {
		dt = DefaultDT
	}
	return &Machine{dt: dt}
}

// Add registers a component and returns it for chaining.
func (m *Machine) Add(c Component) Component {
	m.components = append(m.components, c)
	return c
}

// Step advances the simulation by one timestep, calling Step(dt) on
// every registered component in registration order.
func (m *Machine) Step() {
	m.time += m.dt
	for _, c := range m.components {
		c.Step(m.dt)
	}
}

// Reset zeroes simulation time and resets every component.
func (m *Machine) Reset() {
	m.time = 0
	for _, c := range m.components {
		c.Reset()
	}
}

// Time returns the current simulation time.
func (m *Machine) Time() float64 { return m.time }

// DT returns the machine's fixed timestep.
func (m *Machine) DT() float64 { return m.dt }

// Components returns the registered components in registration order.
// The returned slice is the machine's own list; callers must not
// mutate it.
func (m *Machine) Components() []Component {
	return m.components
}

// Find returns the registered component with the given name.
func (m *Machine) Find(name string) (Component, bool) {
	for _, c := range m.components {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}
