package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignal_ReadWrite(t *testing.T) {
	s := NewSignal(0)
	assert.Equal(t, 0.0, s.Read())

	s.Write(3.25)
	assert.Equal(t, 3.25, s.Read())

	s.Write(-1.5)
	assert.Equal(t, -1.5, s.Read())
}

func TestSignal_InitialValue(t *testing.T) {
	s := NewSignal(42.0)
	assert.Equal(t, 42.0, s.Read())
}

func TestPort_OwnsFreshSignal(t *testing.T) {
	a := NewPort("a")
	b := NewPort("b")

	a.Write(1.0)
	assert.Equal(t, 1.0, a.Read())
	assert.Equal(t, 0.0, b.Read(), "ports must not share signals by default")
}

func TestPort_SharedSignal(t *testing.T) {
	sig := NewSignal(0)
	a := NewPortWithSignal("a", sig)
	b := NewPortWithSignal("b", sig)

	a.Write(7.0)
	assert.Equal(t, 7.0, b.Read(), "deliberately shared signal is visible on both ports")
}

func TestPorts_InsertionOrder(t *testing.T) {
	ps := NewPorts()
	ps.Add("in0", NewPort("in0"))
	ps.Add("in1", NewPort("in1"))
	ps.Add("in2", NewPort("in2"))

	assert.Equal(t, []string{"in0", "in1", "in2"}, ps.Names())
	assert.Equal(t, 3, ps.Len())
}

func TestPorts_AliasKey(t *testing.T) {
	ps := NewPorts()
	inner := NewPort("in")
	ps.Add("x0", inner)

	got, ok := ps.Get("x0")
	assert.True(t, ok)
	assert.Same(t, inner, got, "alias resolves to the underlying port, not a copy")

	key, ok := ps.KeyOf(inner)
	assert.True(t, ok)
	assert.Equal(t, "x0", key)
}

func TestPorts_KeyOf_Missing(t *testing.T) {
	ps := NewPorts()
	ps.Add("in", NewPort("in"))

	_, ok := ps.KeyOf(NewPort("in"))
	assert.False(t, ok, "lookup is by identity, not name equality")
}
