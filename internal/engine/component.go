package engine

// Component is the contract every analog computer element satisfies.
//
// The primitive catalog is closed: all runtime extensibility comes from
// data-defined subcircuit templates, not new Component implementations.
//
// Step reads the component's current input-port values and rewrites its
// output ports; it never fails and always produces finite values
// (numeric degeneracy is masked by clamps and epsilon floors inside
// the primitives). Reset returns internal state and outputs to their
// initial conditions.
type Component interface {
	Name() string
	Inputs() *Ports
	Outputs() *Ports
	Step(dt float64)
	Reset()
}

// Ports is a name-keyed, insertion-ordered collection of ports.
//
// Order matters for enumerated ports like in0..inN and a0..aN: the
// registration order is the enumeration order.
type Ports struct {
	names  []string
	byName map[string]*Port
}

// NewPorts creates an empty port collection.
func NewPorts() *Ports {
	return &Ports{byName: make(map[string]*Port)}
}

// Add inserts a port under the given key and returns it. The key is
// usually the port's own name; subcircuit exposure may alias an
// internal port under an external name. Adding under an existing key
// replaces the entry without changing its position.
func (ps *Ports) Add(name string, p *Port) *Port {
	if _, ok := ps.byName[name]; !ok {
		ps.names = append(ps.names, name)
	}
	ps.byName[name] = p
	return p
}

// Get returns the port with the given name.
func (ps *Ports) Get(name string) (*Port, bool) {
	p, ok := ps.byName[name]
	return p, ok
}

// Names returns the port names in insertion order.
func (ps *Ports) Names() []string {
	names := make([]string, len(ps.names))
	copy(names, ps.names)
	return names
}

// Len returns the number of ports.
func (ps *Ports) Len() int {
	return len(ps.names)
}

// KeyOf returns the key under which the exact port p is stored.
// Lookup is by port identity, for save and diagram tooling.
func (ps *Ports) KeyOf(p *Port) (string, bool) {
	for _, name := range ps.names {
		if ps.byName[name] == p {
			return name, true
		}
	}
	return "", false
}

// Each calls fn for every port in insertion order.
func (ps *Ports) Each(fn func(p *Port)) {
	for _, name := range ps.names {
		fn(ps.byName[name])
	}
}

// Base carries the name and port tables shared by every component
// implementation. Concrete components embed it and add Step/Reset.
type Base struct {
	name    string
	inputs  *Ports
	outputs *Ports
}

// NewBase creates a component base with empty port tables.
//
// Name uniqueness within a simulation is a contract upheld by the
// circuit resolver and subcircuit composer (via instance prefixing),
// not enforced here.
func NewBase(name string) Base {
	return Base{name: name, inputs: NewPorts(), outputs: NewPorts()}
}

// Name returns the component's instance name.
func (b *Base) Name() string { return b.name }

// Inputs returns the component's input port table.
func (b *Base) Inputs() *Ports { return b.inputs }

// Outputs returns the component's output port table.
func (b *Base) Outputs() *Ports { return b.outputs }

// AddInput creates a fresh input port and returns it.
func (b *Base) AddInput(name string) *Port {
	return b.inputs.Add(name, NewPort(name))
}

// AddOutput creates a fresh output port and returns it.
func (b *Base) AddOutput(name string) *Port {
	return b.outputs.Add(name, NewPort(name))
}
