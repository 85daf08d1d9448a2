package engine

// Connection is a directed patch edge from an output port to an
// input port.
type Connection struct {
	Source *Port
	Dest   *Port
}

// PatchBay manages patch connections between output and input ports.
//
// Edges are kept as a de-duplicated, insertion-ordered list. De-dup is
// by endpoint identity (port pointers), not by value equality of the
// ports' current signals. Fan-out (one source to many destinations) is
// supported directly. Fan-in (many sources to one destination) is
// resolved last-writer-wins: the latest edge in insertion order to
// touch a destination determines its value for that Propagate call.
// That is a deliberate design choice, not an error condition.
type PatchBay struct {
	connections []Connection
}

// NewPatchBay creates an empty patch bay.
func NewPatchBay() *PatchBay {
	return &PatchBay{}
}

// Connect appends an edge from source to dest unless an identical
// (source, dest) pair is already present. Idempotent.
func (pb *PatchBay) Connect(source, dest *Port) {
	for _, c := range pb.connections {
		if c.Source == source && c.Dest == dest {
			return
		}
	}
	pb.connections = append(pb.connections, Connection{Source: source, Dest: dest})
}

// Disconnect removes the exact (source, dest) edge if present; no-op
// otherwise.
func (pb *PatchBay) Disconnect(source, dest *Port) {
	for i, c := range pb.connections {
		if c.Source == source && c.Dest == dest {
			pb.connections = append(pb.connections[:i], pb.connections[i+1:]...)
			return
		}
	}
}

// Clear removes all edges.
func (pb *PatchBay) Clear() {
	pb.connections = nil
}

// Propagate copies each edge's source value into its destination, in
// insertion order. Propagating over zero edges is a no-op.
func (pb *PatchBay) Propagate() {
	for _, c := range pb.connections {
		c.Dest.Write(c.Source.Read())
	}
}

// Connections returns a copy of the edge list in insertion order, for
// diagram and save tooling.
func (pb *PatchBay) Connections() []Connection {
	out := make([]Connection, len(pb.connections))
	copy(out, pb.connections)
	return out
}
