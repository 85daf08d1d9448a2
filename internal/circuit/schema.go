// Package circuit loads declarative circuit definitions, resolves them
// into a live machine and patch bay, and saves live circuits back to
// the same schema.
//
// Circuit files are YAML documents validated against an embedded CUE
// schema before resolution, so malformed documents fail with schema
// positions instead of resolver errors.
package circuit

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/philbrick/internal/engine"
)

// ComponentDecl declares one component instance: a unique name, a type
// (primitive or subcircuit), and optional keyword parameters.
type ComponentDecl struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params,omitempty"`
}

// PatchDecl declares one patch cable as a (source, dest) pair of
// "component.port" references. In YAML a patch is a two-element list
// ["SRC.out", "DST.in"]; a {source, dest} mapping is also accepted.
type PatchDecl struct {
	Source string
	Dest   string
}

// UnmarshalYAML decodes either the two-element list form or the
// mapping form.
func (p *PatchDecl) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pair []string
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: patch must have exactly 2 elements, got %d", node.Line, len(pair))
		}
		p.Source, p.Dest = pair[0], pair[1]
		return nil
	case yaml.MappingNode:
		var m struct {
			Source string `yaml:"source"`
			Dest   string `yaml:"dest"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		p.Source, p.Dest = m.Source, m.Dest
		return nil
	}
	return fmt.Errorf("line %d: patch must be a [source, dest] list", node.Line)
}

// MarshalYAML emits the canonical two-element flow list form.
func (p PatchDecl) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: p.Source},
			{Kind: yaml.ScalarNode, Value: p.Dest},
		},
	}, nil
}

// ChannelDecl declares one scope channel tap.
type ChannelDecl struct {
	Source string `yaml:"source"`
	Label  string `yaml:"label,omitempty"`
}

// ScopeDecl declares the scope channels of a circuit.
type ScopeDecl struct {
	Channels []ChannelDecl `yaml:"channels"`
}

// SubcircuitDecl declares a reusable circuit fragment.
type SubcircuitDecl struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Inputs      []string          `yaml:"inputs,omitempty"`
	Outputs     []string          `yaml:"outputs,omitempty"`
	Components  []ComponentDecl   `yaml:"components,omitempty"`
	Patches     []PatchDecl       `yaml:"patches,omitempty"`
	InputMap    map[string]string `yaml:"input_map,omitempty"`
	OutputMap   map[string]string `yaml:"output_map,omitempty"`
}

// Circuit is a complete declarative circuit definition.
type Circuit struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description,omitempty"`
	Components  []ComponentDecl           `yaml:"components"`
	Patches     []PatchDecl               `yaml:"patches,omitempty"`
	Scope       *ScopeDecl                `yaml:"scope,omitempty"`
	Subcircuits map[string]SubcircuitDecl `yaml:"subcircuits,omitempty"`
	Imports     []string                  `yaml:"imports,omitempty"`
}

// SplitPortRef splits a top-level "component.port" reference on the
// LAST dot: flattened subcircuit internals have dotted instance names
// (outer.inner.leaf) while port names never contain dots. Template-
// internal references use the first-dot rule instead (local names are
// dot-free); see the registry package.
func SplitPortRef(ref string) (component, port string, err error) {
	i := strings.LastIndex(ref, ".")
	if i <= 0 || i == len(ref)-1 {
		return "", "", engine.NewMalformedReferenceError(ref)
	}
	return ref[:i], ref[i+1:], nil
}

// ParseCircuit decodes and schema-validates a YAML circuit document.
func ParseCircuit(data []byte) (*Circuit, error) {
	if err := ValidateCircuitYAML(data); err != nil {
		return nil, err
	}
	var def Circuit
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode circuit: %w", err)
	}
	return &def, nil
}

// ParseSubcircuit decodes and schema-validates a YAML subcircuit
// document, as found in an imported file.
func ParseSubcircuit(data []byte) (*SubcircuitDecl, error) {
	if err := ValidateSubcircuitYAML(data); err != nil {
		return nil, err
	}
	var def SubcircuitDecl
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode subcircuit: %w", err)
	}
	return &def, nil
}
