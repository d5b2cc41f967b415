// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// A Transform computes a node's outputs from its inputs. in holds the
// effective values of the node's input terminals and out must be filled with
// one value per output terminal. out is zeroed before each call.
//
// For example, a 2 input AND gate can be written:
//
//	func(in, out []float64) { out[0] = in[0] * in[1] }
//
// A Transform must not retain in or out.
//
type Transform func(in, out []float64)

// A Node is a unit of computation with a fixed set of input and output
// terminals.
//
// Outputs go through a ring buffer of depth+1 slots: a value computed at tick T
// becomes visible on the output terminal at the end of tick T+depth+1.
//
type Node struct {
	id   NodeID
	name string
	kind string

	ins  []*Terminal
	outs []*Terminal
	fn   Transform

	ring  [][]float64 // ring[slot][output]
	slot  int
	inV   []float64 // scratch
	outV  []float64 // scratch
	depth int
}

func newNode(id NodeID, name, kind string, depth int, ins, outs []*Terminal, fn Transform) *Node {
	n := &Node{
		id:    id,
		name:  name,
		kind:  kind,
		ins:   ins,
		outs:  outs,
		fn:    fn,
		depth: depth,
		inV:   make([]float64, len(ins)),
		outV:  make([]float64, len(outs)),
	}
	n.ring = make([][]float64, depth+1)
	for i := range n.ring {
		n.ring[i] = make([]float64, len(outs))
	}
	return n
}

// ID returns the node id.
//
func (n *Node) ID() NodeID { return n.id }

// Name returns the node's display name. It may be empty.
//
func (n *Node) Name() string { return n.name }

// Kind returns the name of the behaviour the node was built from.
//
func (n *Node) Kind() string { return n.kind }

// BufferDepth returns the number of extra ticks of output latency.
//
func (n *Node) BufferDepth() int { return n.depth }

// NumInputs returns the number of input terminals.
//
func (n *Node) NumInputs() int { return len(n.ins) }

// NumOutputs returns the number of output terminals.
//
func (n *Node) NumOutputs() int { return len(n.outs) }

// Input returns input terminal i.
//
func (n *Node) Input(i int) *Terminal { return n.ins[i] }

// Output returns output terminal i.
//
func (n *Node) Output(i int) *Terminal { return n.outs[i] }

// Terminal returns the terminal referenced by an encoded index (see Point) or
// nil if index is out of range.
//
func (n *Node) Terminal(index int) *Terminal {
	if index < 0 {
		index = ^index
		if index >= len(n.outs) {
			return nil
		}
		return n.outs[index]
	}
	if index >= len(n.ins) {
		return nil
	}
	return n.ins[index]
}

// Reset zeroes the output buffer, rewinds the ring and zeroes all terminals.
//
func (n *Node) Reset() {
	for _, s := range n.ring {
		for i := range s {
			s[i] = 0
		}
	}
	n.slot = 0
	for _, t := range n.ins {
		t.Reset()
	}
	for _, t := range n.outs {
		t.Reset()
	}
}

// Update samples the inputs, runs the transform and rotates the output buffer.
//
// The output terminals receive the content of the current ring slot before it
// is overwritten with the freshly computed values, so that even with a zero
// buffer depth, outputs lag by one tick.
//
func (n *Node) Update() {
	for i, t := range n.ins {
		n.inV[i] = t.Value()
	}
	for i := range n.outV {
		n.outV[i] = 0
	}
	n.fn(n.inV, n.outV)
	s := n.ring[n.slot]
	for i, t := range n.outs {
		t.SetValue(s[i])
		s[i] = n.outV[i]
	}
	n.slot++
	if n.slot == len(n.ring) {
		n.slot = 0
	}
}
