package registry

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/philbrick/internal/components"
	"github.com/roach88/philbrick/internal/engine"
)

func TestRegistry_CreatePrimitive(t *testing.T) {
	reg := New()

	comp, err := reg.Create("Coefficient", "K1", components.Params{"k": 2.0}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "K1", comp.Name())
	assert.Equal(t, 2.0, comp.(*components.Coefficient).K)
}

func TestRegistry_CreatePrimitive_NilParams(t *testing.T) {
	reg := New()
	comp, err := reg.Create("Inverter", "INV", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "INV", comp.Name())
}

func TestRegistry_UnknownType(t *testing.T) {
	reg := New()
	_, err := reg.Create("FluxCapacitor", "X", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, engine.IsBuildError(err, engine.ErrCodeUnknownType))
}

func TestRegistry_ParamMismatch(t *testing.T) {
	reg := New()
	_, err := reg.Create("Integrator", "INT", components.Params{"bogus": 1.0}, nil, nil)
	require.Error(t, err)
	assert.True(t, engine.IsBuildError(err, engine.ErrCodeBadParam))
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	reg := New()
	require.NoError(t, reg.Register(&Template{Name: "Pair"}))

	err := reg.Register(&Template{Name: "Pair"})
	require.Error(t, err)
	assert.True(t, engine.IsBuildError(err, engine.ErrCodeDuplicateRegistration))
}

func TestRegistry_RegisterOverPrimitive(t *testing.T) {
	reg := New()
	err := reg.Register(&Template{Name: "Integrator"})
	require.Error(t, err)
	assert.True(t, engine.IsBuildError(err, engine.ErrCodeDuplicateRegistration))
}

func TestRegistry_ListTypes_SortedUnion(t *testing.T) {
	reg := New()
	require.NoError(t, RegisterLibrary(reg))

	types := reg.ListTypes()
	assert.True(t, sort.StringsAreSorted(types))
	assert.Contains(t, types, "Integrator")
	assert.Contains(t, types, "Softmax")
	assert.Contains(t, types, "AttentionHead")
	assert.Len(t, types, 17+2)
}

func TestRegistry_TemplateNeedsMachineAndBay(t *testing.T) {
	reg := New()
	require.NoError(t, RegisterLibrary(reg))

	_, err := reg.Create("Softmax", "S1", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, engine.IsBuildError(err, engine.ErrCodeBadParam))
}

func TestRegistry_IndependentUniverses(t *testing.T) {
	// Two registries do not share template state.
	regA := New()
	regB := New()
	require.NoError(t, regA.Register(&Template{Name: "OnlyInA"}))

	assert.True(t, regA.IsTemplate("OnlyInA"))
	assert.False(t, regB.IsTemplate("OnlyInA"))
}
