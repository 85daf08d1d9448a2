// Package registry maps component type names to constructors and
// expands subcircuit templates into flattened primitive components.
//
// A Registry is an explicit value threaded through every call site:
// there is no process-wide catalog, so independent simulation
// universes can coexist and tests stay deterministic. A Registry is
// populated at startup and never mutated during simulation.
package registry

import (
	"fmt"
	"sort"

	"github.com/roach88/philbrick/internal/components"
	"github.com/roach88/philbrick/internal/engine"
)

// Registry is the type catalog: primitive builders plus registered
// subcircuit templates, in one namespace.
type Registry struct {
	builders  map[string]components.Builder
	templates map[string]*Template
}

// New creates a registry preloaded with the primitive builder table.
// Subcircuit templates (including the built-in library, see
// RegisterLibrary) are added explicitly.
func New() *Registry {
	return &Registry{
		builders:  components.Builtins(),
		templates: make(map[string]*Template),
	}
}

// Register adds a subcircuit template under its type name. Registering
// a name already taken by a template or a primitive fails; templates
// are never redefined.
func (r *Registry) Register(tpl *Template) error {
	if _, ok := r.templates[tpl.Name]; ok {
		return &engine.BuildError{
			Code:    engine.ErrCodeDuplicateRegistration,
			Message: fmt.Sprintf("subcircuit %q is already registered", tpl.Name),
		}
	}
	if _, ok := r.builders[tpl.Name]; ok {
		return &engine.BuildError{
			Code:    engine.ErrCodeDuplicateRegistration,
			Message: fmt.Sprintf("%q is already a primitive type", tpl.Name),
		}
	}
	r.templates[tpl.Name] = tpl
	return nil
}

// IsTemplate reports whether a type name refers to a registered
// subcircuit template.
func (r *Registry) IsTemplate(typeName string) bool {
	_, ok := r.templates[typeName]
	return ok
}

// Template returns the registered template with the given name.
func (r *Registry) Template(typeName string) (*Template, bool) {
	tpl, ok := r.templates[typeName]
	return tpl, ok
}

// ListTypes returns the sorted union of primitive and template names.
func (r *Registry) ListTypes() []string {
	names := make([]string, 0, len(r.builders)+len(r.templates))
	for name := range r.builders {
		names = append(names, name)
	}
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create constructs a component instance from a type name.
//
// For a primitive type the keyword params are passed to its builder
// and the component is returned without being added to any machine;
// adding it is the caller's job. For a registered template the
// subcircuit composer flattens the internals into machine and bay and
// a passive wrapper component is returned (the internals are already
// registered with the machine). machine and bay may be nil when only
// primitives are created.
func (r *Registry) Create(typeName, name string, params components.Params, machine *engine.Machine, bay *engine.PatchBay) (engine.Component, error) {
	return r.create(typeName, name, params, machine, bay, nil)
}

// create is Create with the in-progress template expansion chain
// threaded through for cycle detection.
func (r *Registry) create(typeName, name string, params components.Params, machine *engine.Machine, bay *engine.PatchBay, chain []string) (engine.Component, error) {
	if tpl, ok := r.templates[typeName]; ok {
		if machine == nil || bay == nil {
			return nil, &engine.BuildError{
				Code:     engine.ErrCodeBadParam,
				Message:  fmt.Sprintf("subcircuit %q requires a machine and patch bay", typeName),
				Instance: name,
			}
		}
		return r.instantiate(tpl, name, machine, bay, chain)
	}
	builder, ok := r.builders[typeName]
	if !ok {
		return nil, engine.NewUnknownTypeError(typeName)
	}
	if params == nil {
		params = components.Params{}
	}
	return builder(name, params)
}
