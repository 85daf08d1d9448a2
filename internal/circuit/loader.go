package circuit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/philbrick/internal/engine"
	"github.com/roach88/philbrick/internal/registry"
)

// Loader resolves a declarative circuit definition against a machine,
// patch bay, and registry: it constructs components (recursing into
// the subcircuit composer for template types), then wires patches by
// resolving "component.port" references against real components or
// subcircuit port tables.
type Loader struct {
	machine *engine.Machine
	bay     *engine.PatchBay
	reg     *registry.Registry

	// Subcircuit wrappers by instance name, for outer port resolution.
	// Wrappers are not added to the machine: their flattened internals
	// already are, and only those carry state.
	instances map[string]*registry.SubcircuitComponent
}

// NewLoader creates a loader targeting the given machine and patch bay.
func NewLoader(machine *engine.Machine, bay *engine.PatchBay, reg *registry.Registry) *Loader {
	return &Loader{
		machine:   machine,
		bay:       bay,
		reg:       reg,
		instances: make(map[string]*registry.SubcircuitComponent),
	}
}

// Load resolves a circuit definition. Any error is fatal to the build
// attempt; no rollback of partially constructed state is performed.
func (l *Loader) Load(def *Circuit) error {
	for name, sub := range def.Subcircuits {
		if err := l.reg.Register(toTemplate(name, sub)); err != nil {
			return err
		}
	}

	for _, decl := range def.Components {
		comp, err := l.reg.Create(decl.Type, decl.Name, decl.Params, l.machine, l.bay)
		if err != nil {
			return fmt.Errorf("component %q: %w", decl.Name, err)
		}
		if wrapper, ok := comp.(*registry.SubcircuitComponent); ok {
			l.instances[decl.Name] = wrapper
		} else {
			l.machine.Add(comp)
		}
	}

	for _, patch := range def.Patches {
		src, err := l.ResolvePort(patch.Source, true)
		if err != nil {
			return fmt.Errorf("patch %s -> %s: %w", patch.Source, patch.Dest, err)
		}
		dst, err := l.ResolvePort(patch.Dest, false)
		if err != nil {
			return fmt.Errorf("patch %s -> %s: %w", patch.Source, patch.Dest, err)
		}
		l.bay.Connect(src, dst)
	}
	return nil
}

// ResolvePort resolves a "component.port" reference to a live port.
// Subcircuit instances resolve through their exposed port tables;
// everything else through the machine's component list.
func (l *Loader) ResolvePort(ref string, isOutput bool) (*engine.Port, error) {
	compName, portName, err := SplitPortRef(ref)
	if err != nil {
		return nil, err
	}
	dir := "input"
	if isOutput {
		dir = "output"
	}

	if wrapper, ok := l.instances[compName]; ok {
		table := wrapper.Inputs()
		if isOutput {
			table = wrapper.Outputs()
		}
		if port, ok := table.Get(portName); ok {
			return port, nil
		}
		return nil, engine.NewUnknownPortError(compName, portName, dir)
	}

	comp, ok := l.machine.Find(compName)
	if !ok {
		return nil, engine.NewUnknownComponentError(compName)
	}
	table := comp.Inputs()
	if isOutput {
		table = comp.Outputs()
	}
	if port, ok := table.Get(portName); ok {
		return port, nil
	}
	return nil, engine.NewUnknownPortError(compName, portName, dir)
}

// toTemplate converts a declarative subcircuit into a registry
// template. The registry key is the definition's own name field.
func toTemplate(name string, sub SubcircuitDecl) *registry.Template {
	tpl := &registry.Template{
		Name:        name,
		Description: sub.Description,
		Inputs:      sub.Inputs,
		Outputs:     sub.Outputs,
		InputMap:    sub.InputMap,
		OutputMap:   sub.OutputMap,
	}
	for _, c := range sub.Components {
		tpl.Components = append(tpl.Components, registry.ComponentDecl{
			Name:   c.Name,
			Type:   c.Type,
			Params: c.Params,
		})
	}
	for _, p := range sub.Patches {
		tpl.Patches = append(tpl.Patches, registry.PatchDecl{Source: p.Source, Dest: p.Dest})
	}
	return tpl
}

// LoadImports parses each imported subcircuit file and merges it into
// the circuit's subcircuit table under the definition's own name
// field. Relative paths resolve against baseDir. A file whose stem
// differs from the declared name is merged under the declared name
// anyway; the mismatch is logged so it stays visible.
func LoadImports(def *Circuit, baseDir string) error {
	if len(def.Imports) == 0 {
		return nil
	}
	if def.Subcircuits == nil {
		def.Subcircuits = make(map[string]SubcircuitDecl)
	}
	for _, imp := range def.Imports {
		path := imp
		if baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("import %s: %w", imp, err)
		}
		sub, err := ParseSubcircuit(data)
		if err != nil {
			return fmt.Errorf("import %s: %w", imp, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if stem != sub.Name {
			slog.Debug("import name differs from file stem",
				"file", path, "stem", stem, "declared", sub.Name)
		}
		def.Subcircuits[sub.Name] = *sub
	}
	return nil
}

// LoadFile reads, validates, and resolves a circuit file into a fresh
// machine and patch bay backed by a registry with the built-in
// subcircuit library. Import paths resolve against the file's
// directory.
func LoadFile(path string, dt float64) (*engine.Machine, *engine.PatchBay, *Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read circuit: %w", err)
	}
	def, err := ParseCircuit(data)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := LoadImports(def, filepath.Dir(path)); err != nil {
		return nil, nil, nil, err
	}

	reg := registry.New()
	if err := registry.RegisterLibrary(reg); err != nil {
		return nil, nil, nil, err
	}
	machine := engine.NewMachine(dt)
	bay := engine.NewPatchBay()
	if err := NewLoader(machine, bay, reg).Load(def); err != nil {
		return nil, nil, nil, err
	}
	return machine, bay, def, nil
}
