// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// State is the run state of a Simulation.
//
type State uint8

// Simulation states.
//
const (
	NotStarted State = iota
	Paused
	Running
)

func (s State) String() string {
	switch s {
	case Paused:
		return "paused"
	case Running:
		return "running"
	}
	return "not started"
}

// An Option configures a Simulation.
//
type Option func(*Simulation)

// WithLogger sets the logger used by the simulation. The default logger
// discards everything.
//
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// WithObserver registers an Observer. It can be used more than once.
//
func WithObserver(o Observer) Option {
	return func(s *Simulation) { s.obs = append(s.obs, o) }
}

// WithIDGenerator sets the generator used to allocate ids of nodes added
// without one. The default is RandomIDs().
//
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Simulation) { s.newID = g }
}

// Simulation is a runnable logic circuit simulation.
//
// A simulation owns a set of nodes and the wires between their terminals. On
// Start, the wire graph is partitioned into networks. Each tick then runs in
// two phases: all networks propagate the values of their drivers to their
// receivers, then all nodes sample their inputs and compute their outputs.
//
// The topology can only be changed while the simulation is not started.
// A Simulation is not safe for concurrent use.
//
type Simulation struct {
	nodes map[NodeID]*Node
	order []*Node // sorted by id
	conns ConnectionSet
	nets  []*Network
	state State
	ticks uint64

	log   *slog.Logger
	obs   []Observer
	newID IDGenerator
}

// New builds a new simulation from the given nodes and connections.
//
// Wires can be given either in the Connected lists of the node terminals, as
// ConnectionData, or both. Wires listed more than once are merged.
//
// Any reference to an unknown node or out of range terminal, self connection,
// negative buffer depth, duplicate node id or missing transform is reported
// here.
//
func New(nodes []NodeData, conns []ConnectionData, opts ...Option) (*Simulation, error) {
	s := &Simulation{
		nodes: make(map[NodeID]*Node, len(nodes)),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.newID == nil {
		s.newID = RandomIDs()
	}

	ids := make([]NodeID, len(nodes))
	for i := range nodes {
		n, err := s.addNode(&nodes[i])
		if err != nil {
			return nil, err
		}
		ids[i] = n.id
	}
	for i := range nodes {
		if err := s.mergeTerminalRefs(ids[i], &nodes[i]); err != nil {
			return nil, err
		}
	}
	for _, cd := range conns {
		c, err := s.checkConnection(cd.A, cd.B)
		if err != nil {
			return nil, err
		}
		s.conns.Merge(c)
	}
	s.sortNodes()
	return s, nil
}

func (s *Simulation) addNode(nd *NodeData) (*Node, error) {
	id := nd.ID
	if id == NilNodeID {
		id = s.newID()
	}
	if _, ok := s.nodes[id]; ok {
		return nil, errors.Wrap(ErrDuplicateNode, id.String())
	}
	if nd.Buffer < 0 {
		return nil, errors.Wrapf(ErrBufferDepth, "node %s: buffer depth %d", id, nd.Buffer)
	}
	if nd.Transform == nil {
		return nil, errors.Wrap(ErrNoTransform, id.String())
	}
	ins := make([]*Terminal, len(nd.Inputs))
	for i := range nd.Inputs {
		ins[i] = NewTerminal(Input, nd.Inputs[i].Invert, nd.Inputs[i].Scale)
	}
	outs := make([]*Terminal, len(nd.Outputs))
	for i := range nd.Outputs {
		outs[i] = NewTerminal(Output, nd.Outputs[i].Invert, nd.Outputs[i].Scale)
	}
	n := newNode(id, nd.Name, nd.Kind, nd.Buffer, ins, outs, nd.Transform)
	s.nodes[id] = n
	return n, nil
}

func (s *Simulation) mergeTerminalRefs(id NodeID, nd *NodeData) error {
	for i := range nd.Inputs {
		for _, p := range nd.Inputs[i].Connected {
			c, err := s.checkConnection(In(id, i), p)
			if err != nil {
				return err
			}
			s.conns.Merge(c)
		}
	}
	for i := range nd.Outputs {
		for _, p := range nd.Outputs[i].Connected {
			c, err := s.checkConnection(Out(id, i), p)
			if err != nil {
				return err
			}
			s.conns.Merge(c)
		}
	}
	return nil
}

func (s *Simulation) sortNodes() {
	s.order = s.order[:0]
	for _, n := range s.nodes {
		s.order = append(s.order, n)
	}
	sort.Slice(s.order, func(i, j int) bool { return s.order[i].id.Compare(s.order[j].id) < 0 })
}

func (s *Simulation) terminal(p Point) (*Terminal, error) {
	n, ok := s.nodes[p.Node]
	if !ok {
		return nil, errors.Wrap(ErrUnknownNode, p.Node.String())
	}
	t := n.Terminal(p.Index)
	if t == nil {
		return nil, errors.Wrap(ErrTerminalRange, p.String())
	}
	return t, nil
}

func (s *Simulation) lookup(p Point) *Terminal {
	t, _ := s.terminal(p)
	return t
}

func (s *Simulation) checkConnection(a, b Point) (Connection, error) {
	if _, err := s.terminal(a); err != nil {
		return Connection{}, err
	}
	if _, err := s.terminal(b); err != nil {
		return Connection{}, err
	}
	return NewConnection(a, b)
}

func (s *Simulation) checkStopped() error {
	if s.state != NotStarted {
		return ErrRunning
	}
	return nil
}

// AddNode adds a node to a stopped simulation and returns its id. Wires listed
// in the node's terminal settings are added as well.
//
func (s *Simulation) AddNode(nd NodeData) (NodeID, error) {
	if err := s.checkStopped(); err != nil {
		return NilNodeID, err
	}
	n, err := s.addNode(&nd)
	if err != nil {
		return NilNodeID, err
	}
	var cs ConnectionSet
	for i := range nd.Inputs {
		for _, p := range nd.Inputs[i].Connected {
			c, err := s.checkConnection(In(n.id, i), p)
			if err != nil {
				delete(s.nodes, n.id)
				return NilNodeID, err
			}
			cs.Merge(c)
		}
	}
	for i := range nd.Outputs {
		for _, p := range nd.Outputs[i].Connected {
			c, err := s.checkConnection(Out(n.id, i), p)
			if err != nil {
				delete(s.nodes, n.id)
				return NilNodeID, err
			}
			cs.Merge(c)
		}
	}
	for _, c := range cs.Sorted() {
		s.conns.Merge(c)
	}
	s.sortNodes()
	return n.id, nil
}

// RemoveNode removes a node and all its wires from a stopped simulation.
//
func (s *Simulation) RemoveNode(id NodeID) error {
	if err := s.checkStopped(); err != nil {
		return err
	}
	if _, ok := s.nodes[id]; !ok {
		return errors.Wrap(ErrUnknownNode, id.String())
	}
	delete(s.nodes, id)
	s.conns.RemoveNode(id)
	s.sortNodes()
	return nil
}

// Connect wires terminals a and b together. The simulation must be stopped.
//
func (s *Simulation) Connect(a, b Point) error {
	if err := s.checkStopped(); err != nil {
		return err
	}
	c, err := s.checkConnection(a, b)
	if err != nil {
		return err
	}
	return s.conns.Add(c)
}

// Disconnect removes the wire between a and b. The simulation must be
// stopped.
//
func (s *Simulation) Disconnect(a, b Point) error {
	if err := s.checkStopped(); err != nil {
		return err
	}
	c, err := NewConnection(a, b)
	if err != nil {
		return err
	}
	return s.conns.Remove(c)
}

// Start builds the networks, resets all nodes and leaves the simulation
// paused. Starting a started simulation restarts it.
//
func (s *Simulation) Start() {
	s.nets = BuildNetworks(&s.conns, s.lookup)
	for _, n := range s.order {
		n.Reset()
	}
	s.ticks = 0
	s.state = Paused
	s.log.Debug("simulation started", "nodes", len(s.order), "connections", s.conns.Len(), "networks", len(s.nets))
	for _, o := range s.obs {
		o.SimulationStarted(len(s.nets), len(s.order))
	}
}

// Pause toggles the simulation between running and paused. If a value is
// given, the simulation is set running if true, paused otherwise.
//
// It returns ErrNotStarted if the simulation is not started.
//
func (s *Simulation) Pause(running ...bool) error {
	if s.state == NotStarted {
		return ErrNotStarted
	}
	run := s.state != Running
	if len(running) > 0 {
		run = running[0]
	}
	if run {
		s.state = Running
	} else {
		s.state = Paused
	}
	return nil
}

// Stop stops the simulation and discards its networks. Nodes keep their
// state until the next Start.
//
func (s *Simulation) Stop() {
	if s.state == NotStarted {
		return
	}
	s.stop(nil)
}

func (s *Simulation) stop(err error) {
	s.nets = nil
	s.state = NotStarted
	if err != nil {
		s.log.Error("simulation stopped", "tick", s.ticks+1, "err", err)
	} else {
		s.log.Debug("simulation stopped", "ticks", s.ticks)
	}
	for _, o := range s.obs {
		o.SimulationStopped(err)
	}
}

// Tick advances a running simulation by one tick. It does nothing if the
// simulation is paused and returns ErrNotStarted if it is not started.
//
// If a node transform panics, the simulation is stopped and the returned
// error wraps ErrNodeFailed.
//
func (s *Simulation) Tick() error {
	switch s.state {
	case NotStarted:
		return ErrNotStarted
	case Paused:
		return nil
	}
	return s.tick()
}

// Step is like Tick but also advances a paused simulation.
//
func (s *Simulation) Step() error {
	if s.state == NotStarted {
		return ErrNotStarted
	}
	return s.tick()
}

func (s *Simulation) tick() error {
	start := time.Now()
	for _, n := range s.nets {
		n.Update()
	}
	for _, n := range s.order {
		if err := updateNode(n); err != nil {
			s.stop(err)
			return err
		}
	}
	s.ticks++
	d := time.Since(start)
	for _, o := range s.obs {
		o.SimulationTicked(s.ticks, d)
	}
	return nil
}

func updateNode(n *Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			name := n.name
			if name == "" {
				name = n.kind
			}
			err = errors.Wrapf(ErrNodeFailed, "node %s (%s): %v", n.id, name, r)
		}
	}()
	n.Update()
	return nil
}

// State returns the current state of the simulation.
//
func (s *Simulation) State() State { return s.state }

// Started returns true if the simulation is either paused or running.
//
func (s *Simulation) Started() bool { return s.state != NotStarted }

// Ticks returns the number of ticks run since the last Start.
//
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Value returns the effective value of the terminal referenced by p.
//
func (s *Simulation) Value(p Point) (float64, error) {
	t, err := s.terminal(p)
	if err != nil {
		return 0, err
	}
	return t.Value(), nil
}

// Raw returns the raw value of the terminal referenced by p.
//
func (s *Simulation) Raw(p Point) (float64, error) {
	t, err := s.terminal(p)
	if err != nil {
		return 0, err
	}
	return t.Raw(), nil
}

// Node returns the node with the given id.
//
func (s *Simulation) Node(id NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns all nodes ordered by id.
//
func (s *Simulation) Nodes() []*Node {
	ns := make([]*Node, len(s.order))
	copy(ns, s.order)
	return ns
}

// Connections returns all wires in canonical order.
//
func (s *Simulation) Connections() []Connection {
	return s.conns.Sorted()
}

// Networks returns the networks built by the last Start, or nil if the
// simulation is not started.
//
func (s *Simulation) Networks() []*Network {
	return s.nets
}
