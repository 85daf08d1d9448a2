package circuit

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/roach88/philbrick/internal/components"
	"github.com/roach88/philbrick/internal/engine"
)

// Saver produces the declarative schema from a live machine and patch
// bay, so a constructed circuit round-trips through save and load.
//
// Subcircuit instances are saved flattened: the machine only holds the
// prefixed primitives, and those reload to an identical signal graph.
type Saver struct {
	machine *engine.Machine
	bay     *engine.PatchBay
}

// NewSaver creates a saver over the given machine and patch bay.
func NewSaver(machine *engine.Machine, bay *engine.PatchBay) *Saver {
	return &Saver{machine: machine, bay: bay}
}

// Circuit builds the declarative definition of the live circuit.
func (s *Saver) Circuit(name, description string) (*Circuit, error) {
	def := &Circuit{Name: name, Description: description}

	for _, comp := range s.machine.Components() {
		typeName, params, err := describe(comp)
		if err != nil {
			return nil, err
		}
		def.Components = append(def.Components, ComponentDecl{
			Name:   comp.Name(),
			Type:   typeName,
			Params: params,
		})
	}

	for _, conn := range s.bay.Connections() {
		srcRef, ok := s.refFor(conn.Source, true)
		if !ok {
			continue // port not owned by a machine component
		}
		dstRef, ok := s.refFor(conn.Dest, false)
		if !ok {
			continue
		}
		def.Patches = append(def.Patches, PatchDecl{Source: srcRef, Dest: dstRef})
	}
	return def, nil
}

// WriteYAML renders the live circuit as a YAML document.
func (s *Saver) WriteYAML(w io.Writer, name, description string) error {
	def, err := s.Circuit(name, description)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return fmt.Errorf("encode circuit: %w", err)
	}
	return enc.Close()
}

// MarshalYAML renders the live circuit as YAML bytes.
func (s *Saver) MarshalYAML(name, description string) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteYAML(&buf, name, description); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// refFor finds the component owning the exact port and returns its
// "component.port" reference.
func (s *Saver) refFor(port *engine.Port, isOutput bool) (string, bool) {
	for _, comp := range s.machine.Components() {
		table := comp.Inputs()
		if isOutput {
			table = comp.Outputs()
		}
		if key, ok := table.KeyOf(port); ok {
			return comp.Name() + "." + key, true
		}
	}
	return "", false
}

// describe maps a live component back to its type name and parameter
// map, inverting the builders' keyword tables.
func describe(comp engine.Component) (string, map[string]any, error) {
	switch c := comp.(type) {
	case *components.VoltageSource:
		return "VoltageSource", map[string]any{"frequency": c.Frequency, "amplitude": c.Amplitude}, nil
	case *components.TriangleWave:
		return "TriangleWave", map[string]any{"frequency": c.Frequency, "amplitude": c.Amplitude}, nil
	case *components.SawtoothWave:
		return "SawtoothWave", map[string]any{"frequency": c.Frequency, "amplitude": c.Amplitude}, nil
	case *components.SquareWave:
		return "SquareWave", map[string]any{"frequency": c.Frequency, "amplitude": c.Amplitude, "duty_cycle": c.DutyCycle}, nil
	case *components.Integrator:
		return "Integrator", map[string]any{"initial": c.Initial, "gain": c.Gain}, nil
	case *components.Summer:
		return "Summer", map[string]any{"weights": c.Weights}, nil
	case *components.Coefficient:
		return "Coefficient", map[string]any{"k": c.K}, nil
	case *components.Inverter:
		return "Inverter", nil, nil
	case *components.Multiplier:
		return "Multiplier", map[string]any{"scale": c.Scale}, nil
	case *components.Comparator:
		return "Comparator", map[string]any{"threshold": c.Threshold, "high": c.High, "low": c.Low}, nil
	case *components.Limiter:
		return "Limiter", map[string]any{"min_val": c.Min, "max_val": c.Max}, nil
	case *components.Exp:
		return "Exp", map[string]any{"scale": c.Scale}, nil
	case *components.Divider:
		return "Divider", map[string]any{"epsilon": c.Epsilon}, nil
	case *components.DotProduct:
		return "DotProduct", map[string]any{"size": c.Size}, nil
	case *components.Max:
		return "Max", map[string]any{"size": c.Size}, nil
	case *components.Constant:
		return "Constant", map[string]any{"value": c.Value}, nil
	case *components.PiecewiseLinear:
		bps := make([]any, len(c.Breakpoints))
		for i, bp := range c.Breakpoints {
			bps[i] = []any{bp.X, bp.Y}
		}
		return "PiecewiseLinear", map[string]any{"breakpoints": bps}, nil
	}
	return "", nil, fmt.Errorf("cannot save component %q of type %T", comp.Name(), comp)
}
