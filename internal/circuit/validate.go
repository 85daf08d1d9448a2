package circuit

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// schemaSource is the CUE schema every circuit document must satisfy
// before the resolver sees it. Definitions are closed, so unknown
// top-level fields are rejected; component params stay open because
// each primitive validates its own keyword set at construction.
const schemaSource = `
#Ref: string & =~"^.+\\..+$"

#Component: {
	name:    string & != ""
	type:    string & != ""
	params?: {...}
}

#Patch: [#Ref, #Ref] | {source: #Ref, dest: #Ref}

#Channel: {
	source: #Ref
	label?: string
}

#Subcircuit: {
	name:         string & != ""
	description?: string
	inputs?: [...string]
	outputs?: [...string]
	components?: [...#Component]
	patches?: [...#Patch]
	input_map?: {[string]: #Ref}
	output_map?: {[string]: #Ref}
}

#Circuit: {
	name:         string & != ""
	description?: string
	components?: [...#Component]
	patches?: [...#Patch]
	scope?: {
		channels: [...#Channel]
	}
	subcircuits?: {[string]: #Subcircuit}
	imports?: [...string]
}
`

var (
	schemaOnce       sync.Once
	schemaCtx        *cue.Context
	circuitSchema    cue.Value
	subcircuitSchema cue.Value
	schemaErr        error
)

func compileSchema() {
	schemaCtx = cuecontext.New()
	root := schemaCtx.CompileString(schemaSource)
	if err := root.Err(); err != nil {
		schemaErr = fmt.Errorf("compile circuit schema: %w", err)
		return
	}
	circuitSchema = root.LookupPath(cue.ParsePath("#Circuit"))
	subcircuitSchema = root.LookupPath(cue.ParsePath("#Subcircuit"))
}

func validateYAML(data []byte, schema func() cue.Value, what string) error {
	schemaOnce.Do(compileSchema)
	if schemaErr != nil {
		return schemaErr
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", what, err)
	}
	if doc == nil {
		return fmt.Errorf("%s document is empty", what)
	}
	val := schema().Unify(schemaCtx.Encode(doc))
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s does not match schema: %w", what, err)
	}
	return nil
}

// ValidateCircuitYAML checks a circuit document against the schema.
func ValidateCircuitYAML(data []byte) error {
	return validateYAML(data, func() cue.Value { return circuitSchema }, "circuit")
}

// ValidateSubcircuitYAML checks an imported subcircuit document
// against the schema.
func ValidateSubcircuitYAML(data []byte) error {
	return validateYAML(data, func() cue.Value { return subcircuitSchema }, "subcircuit")
}
