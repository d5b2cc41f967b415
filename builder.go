// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/db47h/logicsim/internal/wirespec"
	"github.com/pkg/errors"
)

// A NodeSpec is the blueprint of a node: a behaviour and its terminal counts.
//
// Stateful behaviours must return a new NodeSpec (with a new Transform) for
// every node.
//
type NodeSpec struct {
	Kind      string
	Inputs    int
	Outputs   int
	Transform Transform
}

// A NodeOption customizes a node added with Builder.Add.
//
type NodeOption func(nd *NodeData) error

// WithBuffer sets the buffer depth of a node.
//
func WithBuffer(depth int) NodeOption {
	return func(nd *NodeData) error {
		if depth < 0 {
			return errors.Wrapf(ErrBufferDepth, "buffer depth %d", depth)
		}
		nd.Buffer = depth
		return nil
	}
}

// WithTerminal sets the invert and scale settings of one or more terminals.
// pin is relative to the node: "in[1]", "out", "in[0..3]".
//
func WithTerminal(pin string, invert bool, scale float64) NodeOption {
	return func(nd *NodeData) error {
		p, err := wirespec.ParseTerminal(pin)
		if err != nil {
			return err
		}
		ts := nd.Inputs
		if p.Output {
			ts = nd.Outputs
		}
		if p.End >= len(ts) {
			return errors.Wrap(ErrTerminalRange, pin)
		}
		for i := p.Start; i <= p.End; i++ {
			ts[i].Invert = invert
			ts[i].Scale = scale
		}
		return nil
	}
}

// A Builder assembles a simulation from named nodes.
//
//	b := logicsim.NewBuilder()
//	b.Add("a", gatelib.Constant(1))
//	b.Add("b", gatelib.Constant(1))
//	b.Add("and", gatelib.And(2))
//	b.Connect("a.out", "and.in[0]")
//	b.Connect("b.out", "and.in[1]")
//	sim, err := b.Build()
//
type Builder struct {
	ids   map[string]NodeID
	index map[NodeID]int
	nodes []NodeData
	conns ConnectionSet
	opts  []Option
	newID IDGenerator
}

// NewBuilder returns a new Builder. The options are passed on to New when
// calling Build.
//
func NewBuilder(opts ...Option) *Builder {
	var s Simulation
	for _, o := range opts {
		o(&s)
	}
	if s.newID == nil {
		s.newID = RandomIDs()
	}
	return &Builder{
		ids:   make(map[string]NodeID),
		index: make(map[NodeID]int),
		opts:  opts,
		newID: s.newID,
	}
}

// Add adds a new node with the given name and returns its id.
//
func (b *Builder) Add(name string, spec NodeSpec, opts ...NodeOption) (NodeID, error) {
	if name == "" {
		return NilNodeID, errors.New("empty node name")
	}
	if _, ok := b.ids[name]; ok {
		return NilNodeID, errors.New("duplicate node name " + name)
	}
	if spec.Transform == nil {
		return NilNodeID, errors.Wrap(ErrNoTransform, name)
	}
	if spec.Inputs < 0 || spec.Outputs < 0 {
		return NilNodeID, errors.Errorf("%s: invalid terminal count: %d inputs, %d outputs", name, spec.Inputs, spec.Outputs)
	}
	nd := NodeData{
		ID:        b.newID(),
		Name:      name,
		Kind:      spec.Kind,
		Inputs:    Terminals(spec.Inputs),
		Outputs:   Terminals(spec.Outputs),
		Transform: spec.Transform,
	}
	for _, o := range opts {
		if err := o(&nd); err != nil {
			return NilNodeID, errors.Wrap(err, name)
		}
	}
	b.ids[name] = nd.ID
	b.index[nd.ID] = len(b.nodes)
	b.nodes = append(b.nodes, nd)
	return nd.ID, nil
}

// ID returns the id of the named node.
//
func (b *Builder) ID(name string) (NodeID, bool) {
	id, ok := b.ids[name]
	return id, ok
}

func (b *Builder) resolve(r wirespec.Ref) (Point, error) {
	id, ok := b.ids[r.Node]
	if !ok {
		return Point{}, errors.Wrap(ErrUnknownNode, r.Node)
	}
	nd := &b.nodes[b.index[id]]
	cnt := len(nd.Inputs)
	if r.Output {
		cnt = len(nd.Outputs)
	}
	if r.Index >= cnt {
		return Point{}, errors.Wrap(ErrTerminalRange, r.String())
	}
	if r.Output {
		return Out(id, r.Index), nil
	}
	return In(id, r.Index), nil
}

// Point resolves a single terminal reference like "and.out[0]".
//
func (b *Builder) Point(pin string) (Point, error) {
	p, err := wirespec.ParsePin(pin)
	if err != nil {
		return Point{}, err
	}
	if p.Len() != 1 {
		return Point{}, errors.Errorf("%s: expected a single terminal", pin)
	}
	return b.resolve(p.Expand()[0])
}

// Connect wires pins a and b. Each pin may be a range: "src.out[0..3]",
// connected one to one with a range of the same length or fanned out from a
// single terminal.
//
func (b *Builder) Connect(a, bp string) error {
	pa, err := wirespec.ParsePin(a)
	if err != nil {
		return err
	}
	pb, err := wirespec.ParsePin(bp)
	if err != nil {
		return err
	}
	return b.connect(wirespec.Wire{A: pa, B: pb}, a+" - "+bp)
}

// Wire is like Connect with both pins in a single string: "a.out - b.in[1]".
//
func (b *Builder) Wire(spec string) error {
	w, err := wirespec.ParseWire(spec)
	if err != nil {
		return err
	}
	return b.connect(w, spec)
}

func (b *Builder) connect(w wirespec.Wire, spec string) error {
	pairs, err := w.Pairs()
	if err != nil {
		return errors.Wrap(err, spec)
	}
	cs := make([]Connection, 0, len(pairs))
	for _, pr := range pairs {
		pa, err := b.resolve(pr[0])
		if err != nil {
			return err
		}
		pb, err := b.resolve(pr[1])
		if err != nil {
			return err
		}
		c, err := NewConnection(pa, pb)
		if err != nil {
			return errors.Wrap(err, spec)
		}
		if b.conns.Has(c) {
			return errors.Wrap(ErrDuplicateConnection, pr[0].String()+" - "+pr[1].String())
		}
		cs = append(cs, c)
	}
	for _, c := range cs {
		b.conns.Merge(c)
	}
	return nil
}

// Build returns a new simulation with all the nodes and wires added so far.
//
func (b *Builder) Build() (*Simulation, error) {
	conns := make([]ConnectionData, 0, b.conns.Len())
	for _, c := range b.conns.Sorted() {
		conns = append(conns, ConnectionData{c.A, c.B})
	}
	return New(b.nodes, conns, b.opts...)
}
