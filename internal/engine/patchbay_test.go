package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchBay_ConnectPropagate(t *testing.T) {
	pb := NewPatchBay()
	src := NewPort("out")
	dst := NewPort("in")

	pb.Connect(src, dst)
	src.Write(2.5)
	pb.Propagate()

	assert.Equal(t, 2.5, dst.Read())
}

func TestPatchBay_ConnectIdempotent(t *testing.T) {
	pb := NewPatchBay()
	src := NewPort("out")
	dst := NewPort("in")

	pb.Connect(src, dst)
	pb.Connect(src, dst)

	assert.Len(t, pb.Connections(), 1, "identical (src, dst) pair must not be duplicated")
}

func TestPatchBay_DedupByIdentity(t *testing.T) {
	pb := NewPatchBay()
	src := NewPort("out")
	// Same names, different ports: distinct edges.
	dst1 := NewPort("in")
	dst2 := NewPort("in")

	pb.Connect(src, dst1)
	pb.Connect(src, dst2)

	assert.Len(t, pb.Connections(), 2)
}

func TestPatchBay_Disconnect(t *testing.T) {
	pb := NewPatchBay()
	src := NewPort("out")
	dst := NewPort("in")

	pb.Connect(src, dst)
	pb.Disconnect(src, dst)

	src.Write(9.0)
	pb.Propagate()
	assert.Equal(t, 0.0, dst.Read(), "removed destination is no longer written")
}

func TestPatchBay_DisconnectMissing_NoOp(t *testing.T) {
	pb := NewPatchBay()
	pb.Disconnect(NewPort("a"), NewPort("b"))
	assert.Empty(t, pb.Connections())
}

func TestPatchBay_Clear(t *testing.T) {
	pb := NewPatchBay()
	src := NewPort("out")
	dst := NewPort("in")
	pb.Connect(src, dst)

	pb.Clear()

	src.Write(1.0)
	pb.Propagate()
	assert.Equal(t, 0.0, dst.Read())
	assert.Empty(t, pb.Connections())
}

func TestPatchBay_PropagateEmpty_NoOp(t *testing.T) {
	pb := NewPatchBay()
	assert.NotPanics(t, func() { pb.Propagate() })
}

func TestPatchBay_FanOut(t *testing.T) {
	pb := NewPatchBay()
	src := NewPort("out")
	dsts := []*Port{NewPort("in"), NewPort("in"), NewPort("in")}
	for _, d := range dsts {
		pb.Connect(src, d)
	}

	src.Write(4.5)
	pb.Propagate()

	for _, d := range dsts {
		assert.Equal(t, 4.5, d.Read(), "fan-out delivers identical value to every destination")
	}
}

func TestPatchBay_FanIn_LastWriterWins(t *testing.T) {
	pb := NewPatchBay()
	first := NewPort("out")
	second := NewPort("out")
	dst := NewPort("in")

	pb.Connect(first, dst)
	pb.Connect(second, dst)

	first.Write(1.0)
	second.Write(2.0)
	pb.Propagate()

	assert.Equal(t, 2.0, dst.Read(), "latest edge in insertion order wins ambiguous fan-in")
}

func TestPatchBay_Connections_Copy(t *testing.T) {
	pb := NewPatchBay()
	src := NewPort("out")
	dst := NewPort("in")
	pb.Connect(src, dst)

	conns := pb.Connections()
	conns[0] = Connection{}

	assert.Equal(t, src, pb.Connections()[0].Source, "Connections returns a copy")
}
