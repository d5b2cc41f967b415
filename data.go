// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// NodeData describes a node to add to a simulation.
//
type NodeData struct {
	// Node id. If nil, the simulation allocates a new one.
	ID NodeID
	// Display name, optional.
	Name string
	// Behaviour name (AND, OR, ...). The engine only stores it.
	Kind string
	// Extra ticks of latency on the node outputs. Must be >= 0.
	Buffer int
	// Input and output terminal settings. Their lengths set the number of
	// terminals.
	Inputs  []TerminalData
	Outputs []TerminalData
	// The behaviour function.
	Transform Transform
}

// TerminalData holds the settings of a single terminal and the terminals it
// is wired to.
//
// Scale is used as is: a terminal with a zero Scale always reads 0. Use
// Terminals to get pass-through settings.
//
type TerminalData struct {
	Invert    bool
	Scale     float64
	Connected []Point
}

// Terminals returns n pass-through terminal settings (no invert, scale 1).
//
func Terminals(n int) []TerminalData {
	ts := make([]TerminalData, n)
	for i := range ts {
		ts[i].Scale = 1
	}
	return ts
}

// ConnectionData describes a wire between two terminals.
//
type ConnectionData struct {
	A, B Point
}

// Snapshot exports the current topology of s. Nodes are ordered by id and
// their terminal settings carry no Connected references; all wires are
// returned as ConnectionData, in canonical order.
//
// The exported NodeData share their Transform with the live nodes of s. A
// simulation built from a snapshot of a stateful behaviour (gatelib.Clock,
// MakeSpec evaluators) shares that state with s; rebuild such nodes from a
// fresh NodeSpec when both simulations must run independently.
//
func (s *Simulation) Snapshot() ([]NodeData, []ConnectionData) {
	nodes := make([]NodeData, 0, len(s.order))
	for _, n := range s.order {
		nd := NodeData{
			ID:        n.id,
			Name:      n.name,
			Kind:      n.kind,
			Buffer:    n.depth,
			Inputs:    make([]TerminalData, len(n.ins)),
			Outputs:   make([]TerminalData, len(n.outs)),
			Transform: n.fn,
		}
		for i, t := range n.ins {
			nd.Inputs[i] = TerminalData{Invert: t.invert, Scale: t.scale}
		}
		for i, t := range n.outs {
			nd.Outputs[i] = TerminalData{Invert: t.invert, Scale: t.scale}
		}
		nodes = append(nodes, nd)
	}
	sorted := s.conns.Sorted()
	conns := make([]ConnectionData, len(sorted))
	for i, c := range sorted {
		conns[i] = ConnectionData{c.A, c.B}
	}
	return nodes, conns
}
