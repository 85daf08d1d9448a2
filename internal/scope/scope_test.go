package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/philbrick/internal/circuit"
	"github.com/roach88/philbrick/internal/components"
	"github.com/roach88/philbrick/internal/engine"
)

func machineWithCoef(t *testing.T) *engine.Machine {
	t.Helper()
	m := engine.NewMachine(0.001)
	m.Add(components.NewCoefficient("K", 2.0))
	return m
}

func TestResolve_OutputBeforeInput(t *testing.T) {
	m := machineWithCoef(t)
	comp, _ := m.Find("K")

	port, err := Resolve(m, "K.out")
	require.NoError(t, err)
	want, _ := comp.Outputs().Get("out")
	assert.Same(t, want, port)

	port, err = Resolve(m, "K.in")
	require.NoError(t, err)
	want, _ = comp.Inputs().Get("in")
	assert.Same(t, want, port)
}

func TestResolve_DottedComponentName(t *testing.T) {
	m := engine.NewMachine(0.001)
	m.Add(components.NewCoefficient("SUB.K", 2.0))

	port, err := Resolve(m, "SUB.K.out")
	require.NoError(t, err)
	assert.NotNil(t, port)
}

func TestResolve_Errors(t *testing.T) {
	m := machineWithCoef(t)

	_, err := Resolve(m, "nodot")
	assert.True(t, engine.IsBuildError(err, engine.ErrCodeMalformedReference))

	_, err = Resolve(m, "GHOST.out")
	assert.True(t, engine.IsBuildError(err, engine.ErrCodeUnknownComponent))

	_, err = Resolve(m, "K.volts")
	assert.True(t, engine.IsBuildError(err, engine.ErrCodeUnknownPort))
}

func TestSampler_LabelsAndLatest(t *testing.T) {
	m := machineWithCoef(t)
	s, err := NewSampler(m, []circuit.ChannelDecl{
		{Source: "K.out", Label: "doubled"},
		{Source: "K.in"},
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"doubled", "K.in"}, s.Labels())
	assert.Nil(t, s.Latest())

	comp, _ := m.Find("K")
	in, _ := comp.Inputs().Get("in")
	in.Write(3.0)
	m.Step()
	s.Sample(m.Time())

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []float64{6.0, 3.0}, s.Latest())
}

func TestSampler_UnknownChannel(t *testing.T) {
	m := machineWithCoef(t)
	_, err := NewSampler(m, []circuit.ChannelDecl{{Source: "NOPE.out"}}, 0)
	require.Error(t, err)
}

func TestSampler_BoundedBuffer(t *testing.T) {
	m := machineWithCoef(t)
	s, err := NewSampler(m, []circuit.ChannelDecl{{Source: "K.out"}}, 3)
	require.NoError(t, err)

	comp, _ := m.Find("K")
	in, _ := comp.Inputs().Get("in")
	for i := 1; i <= 5; i++ {
		in.Write(float64(i))
		m.Step()
		s.Sample(m.Time())
	}

	// Only the last three survive: inputs 3, 4, 5 doubled.
	assert.Equal(t, 3, s.Len())
	times, values := s.Series(0)
	assert.Len(t, times, 3)
	assert.Equal(t, []float64{6.0, 8.0, 10.0}, values)
}

func TestChannelStats(t *testing.T) {
	m := machineWithCoef(t)
	s, err := NewSampler(m, []circuit.ChannelDecl{{Source: "K.out"}}, 0)
	require.NoError(t, err)

	comp, _ := m.Find("K")
	in, _ := comp.Inputs().Get("in")
	for _, v := range []float64{1, -2, 3} {
		in.Write(v)
		m.Step()
		s.Sample(m.Time())
	}

	st := s.ChannelStats(0)
	assert.Equal(t, -4.0, st.Min)
	assert.Equal(t, 6.0, st.Max)
	assert.InDelta(t, 4.0/3.0, st.Mean, 1e-12)

	empty, _ := NewSampler(m, []circuit.ChannelDecl{{Source: "K.out"}}, 0)
	assert.Equal(t, Stats{}, empty.ChannelStats(0))
}

func TestSettled(t *testing.T) {
	m := machineWithCoef(t)
	s, err := NewSampler(m, []circuit.ChannelDecl{{Source: "K.out"}}, 0)
	require.NoError(t, err)

	comp, _ := m.Find("K")
	in, _ := comp.Inputs().Get("in")

	// Ramp up, then hold steady.
	for _, v := range []float64{1, 2, 3, 3, 3, 3} {
		in.Write(v)
		m.Step()
		s.Sample(m.Time())
	}

	assert.True(t, s.Settled(0, 3, 1e-9))
	assert.False(t, s.Settled(0, 5, 1e-9))
	assert.False(t, s.Settled(0, 100, 1e-9), "window larger than history")
}
