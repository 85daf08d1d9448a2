package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCircuitYAML_Accepts(t *testing.T) {
	err := ValidateCircuitYAML([]byte(`
name: ok
components:
  - name: K1
    type: Coefficient
    params:
      k: 2.0
patches:
  - [K1.out, K1.in]
subcircuits:
  Pair:
    name: Pair
    inputs: [in]
    outputs: [out]
`))
	assert.NoError(t, err)
}

func TestValidateCircuitYAML_MissingName(t *testing.T) {
	err := ValidateCircuitYAML([]byte("components: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestValidateCircuitYAML_BadPatchShape(t *testing.T) {
	err := ValidateCircuitYAML([]byte(`
name: bad
patches:
  - [onlyone]
`))
	assert.Error(t, err)
}

func TestValidateCircuitYAML_BadRef(t *testing.T) {
	err := ValidateCircuitYAML([]byte(`
name: bad
patches:
  - [nodot, K1.in]
`))
	assert.Error(t, err, "patch endpoints must look like component.port")
}

func TestValidateCircuitYAML_UnknownField(t *testing.T) {
	err := ValidateCircuitYAML([]byte(`
name: bad
wires: []
`))
	assert.Error(t, err, "definitions are closed; unknown fields rejected")
}

func TestValidateCircuitYAML_Empty(t *testing.T) {
	assert.Error(t, ValidateCircuitYAML([]byte("")))
}

func TestValidateSubcircuitYAML(t *testing.T) {
	err := ValidateSubcircuitYAML([]byte(`
name: Doubler
inputs: [in]
outputs: [out]
components:
  - name: K
    type: Coefficient
    params:
      k: 2.0
input_map:
  in: K.in
output_map:
  out: K.out
`))
	assert.NoError(t, err)

	err = ValidateSubcircuitYAML([]byte("inputs: [in]\n"))
	assert.Error(t, err, "subcircuit requires a name")
}
