package registry

import (
	"fmt"
	"strings"

	"github.com/roach88/philbrick/internal/components"
	"github.com/roach88/philbrick/internal/engine"
)

// ComponentDecl declares one internal component of a template.
type ComponentDecl struct {
	Name   string
	Type   string
	Params components.Params
}

// PatchDecl declares one internal patch cable of a template. Both
// endpoints are "localName.portName" references into the template's
// own component namespace.
type PatchDecl struct {
	Source string
	Dest   string
}

// Template is a reusable circuit fragment (macro): internal components
// and wiring plus declared external ports. Templates are immutable
// once registered. An internal component's type may itself be a
// registered template, nesting arbitrarily deep.
type Template struct {
	Name        string
	Description string
	Inputs      []string
	Outputs     []string
	Components  []ComponentDecl
	Patches     []PatchDecl

	// InputMap and OutputMap map declared external port names to
	// "localName.portName" references. A declared port absent from its
	// map falls back to the first internal component (in declaration
	// order) exposing a port with exactly that name.
	InputMap  map[string]string
	OutputMap map[string]string
}

// SubcircuitComponent is the passive wrapper produced when a template
// is instantiated. Its port tables alias the actual underlying ports
// of the flattened internals, so outer wiring can address a subcircuit
// instance like any ordinary component. Step and Reset are no-ops: the
// internals are independently stepped and reset by the machine.
type SubcircuitComponent struct {
	name    string
	inputs  *engine.Ports
	outputs *engine.Ports
}

// Name returns the instance name.
func (s *SubcircuitComponent) Name() string { return s.name }

// Inputs returns the exposed input port table.
func (s *SubcircuitComponent) Inputs() *engine.Ports { return s.inputs }

// Outputs returns the exposed output port table.
func (s *SubcircuitComponent) Outputs() *engine.Ports { return s.outputs }

// Step is a no-op; the flattened internals do the work.
func (s *SubcircuitComponent) Step(dt float64) {}

// Reset is a no-op; the flattened internals are reset by the machine.
func (s *SubcircuitComponent) Reset() {}

// splitLocalRef splits a template-internal "localName.portName"
// reference on the FIRST dot. Local component names inside a template
// may not contain dots, so the remainder after the first dot is the
// port name. (The top-level circuit resolver splits on the last dot
// instead, because flattened instance names are themselves dotted; see
// circuit.SplitPortRef.)
func splitLocalRef(ref string) (comp, port string, err error) {
	i := strings.Index(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return "", "", engine.NewMalformedReferenceError(ref)
	}
	return ref[:i], ref[i+1:], nil
}

// instantiate expands a template into prefixed primitive components
// registered with machine, internal wiring in bay, and the resolved
// external port tables. chain is the stack of template names already
// being expanded; re-entering one is a fatal construction error
// (recursive template sets would otherwise expand until resource
// exhaustion).
func (r *Registry) instantiate(tpl *Template, instance string, machine *engine.Machine, bay *engine.PatchBay, chain []string) (*SubcircuitComponent, error) {
	for _, name := range chain {
		if name == tpl.Name {
			return nil, &engine.BuildError{
				Code:     engine.ErrCodeTemplateCycle,
				Message:  fmt.Sprintf("template expansion cycle: %s -> %s", strings.Join(chain, " -> "), tpl.Name),
				Instance: instance,
			}
		}
	}
	chain = append(chain, tpl.Name)

	// Local map for this instantiation only: local name -> component.
	local := make(map[string]engine.Component, len(tpl.Components))
	localOrder := make([]string, 0, len(tpl.Components))

	for _, decl := range tpl.Components {
		prefixed := instance + "." + decl.Name
		comp, err := r.create(decl.Type, prefixed, decl.Params, machine, bay, chain)
		if err != nil {
			return nil, fmt.Errorf("subcircuit %q component %q: %w", tpl.Name, decl.Name, err)
		}
		// Nested template instances flatten themselves; only primitives
		// join the machine's step list.
		if _, nested := comp.(*SubcircuitComponent); !nested {
			machine.Add(comp)
		}
		local[decl.Name] = comp
		localOrder = append(localOrder, decl.Name)
	}

	for _, patch := range tpl.Patches {
		src, err := resolveLocal(tpl, local, patch.Source, portOutput)
		if err != nil {
			return nil, err
		}
		dst, err := resolveLocal(tpl, local, patch.Dest, portInput)
		if err != nil {
			return nil, err
		}
		bay.Connect(src, dst)
	}

	inputs, err := exposePorts(tpl, local, localOrder, tpl.Inputs, tpl.InputMap, portInput, instance)
	if err != nil {
		return nil, err
	}
	outputs, err := exposePorts(tpl, local, localOrder, tpl.Outputs, tpl.OutputMap, portOutput, instance)
	if err != nil {
		return nil, err
	}

	return &SubcircuitComponent{name: instance, inputs: inputs, outputs: outputs}, nil
}

type portDir int

const (
	portInput portDir = iota
	portOutput
)

func (d portDir) String() string {
	if d == portOutput {
		return "output"
	}
	return "input"
}

func portTable(c engine.Component, dir portDir) *engine.Ports {
	if dir == portOutput {
		return c.Outputs()
	}
	return c.Inputs()
}

// resolveLocal resolves a "localName.portName" reference against the
// instantiation's local component map. References escaping the local
// namespace are fatal construction errors.
func resolveLocal(tpl *Template, local map[string]engine.Component, ref string, dir portDir) (*engine.Port, error) {
	compName, portName, err := splitLocalRef(ref)
	if err != nil {
		return nil, err
	}
	comp, ok := local[compName]
	if !ok {
		return nil, &engine.BuildError{
			Code:      engine.ErrCodeUnknownComponent,
			Message:   fmt.Sprintf("subcircuit %q references unknown component", tpl.Name),
			Component: compName,
		}
	}
	port, ok := portTable(comp, dir).Get(portName)
	if !ok {
		return nil, engine.NewUnknownPortError(compName, portName, dir.String())
	}
	return port, nil
}

// exposePorts builds the external port table for one direction. Each
// declared name resolves through the explicit map when present, else
// by scanning local components in declaration order for the first one
// exposing a port with exactly that name.
func exposePorts(tpl *Template, local map[string]engine.Component, order, declared []string, mapping map[string]string, dir portDir, instance string) (*engine.Ports, error) {
	exposed := engine.NewPorts()
	for _, extName := range declared {
		if ref, ok := mapping[extName]; ok {
			port, err := resolveLocal(tpl, local, ref, dir)
			if err != nil {
				return nil, err
			}
			exposed.Add(extName, port)
			continue
		}
		found := false
		for _, localName := range order {
			if port, ok := portTable(local[localName], dir).Get(extName); ok {
				exposed.Add(extName, port)
				found = true
				break
			}
		}
		if !found {
			return nil, &engine.BuildError{
				Code:     engine.ErrCodePortMapping,
				Message:  fmt.Sprintf("no %s port %q found in subcircuit %q; use an explicit port map", dir, extName, tpl.Name),
				Instance: instance,
				Port:     extName,
			}
		}
	}
	return exposed, nil
}
