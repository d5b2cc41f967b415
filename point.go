// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"bytes"
	"encoding/binary"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NodeID uniquely identifies a node. It is a 128 bit GUID.
//
type NodeID uuid.UUID

// NilNodeID is the zero NodeID. Nodes submitted with a nil id get a fresh one
// from the simulation's IDGenerator.
//
var NilNodeID NodeID

// ParseNodeID parses a node id. Both the canonical dashed form and the plain 32
// hex digits form are accepted.
//
func ParseNodeID(s string) (NodeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NilNodeID, errors.Wrapf(err, "invalid node id %q", s)
	}
	return NodeID(u), nil
}

// MustParseNodeID is like ParseNodeID but panics on error.
//
func MustParseNodeID(s string) NodeID {
	id, err := ParseNodeID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id NodeID) String() string { return uuid.UUID(id).String() }

// Compare returns -1, 0 or 1 if id is respectively less than, equal to or
// greater than other.
//
func (id NodeID) Compare(other NodeID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
//
func (id NodeID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
func (id *NodeID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// An IDGenerator returns a new unique NodeID on each call.
//
type IDGenerator func() NodeID

// RandomIDs returns an IDGenerator backed by random (version 4) UUIDs.
//
func RandomIDs() IDGenerator {
	return func() NodeID { return NodeID(uuid.New()) }
}

// SequentialIDs returns an IDGenerator that yields 00000000-0000-0000-0000-000000000001,
// 00000000-0000-0000-0000-000000000002, etc. Each generator has its own counter.
//
func SequentialIDs() IDGenerator {
	var n uint64
	return func() NodeID {
		n++
		var id NodeID
		binary.BigEndian.PutUint64(id[8:], n)
		return id
	}
}

// A Point references a terminal of a node.
//
// Index encodes both the terminal polarity and its slot: Index >= 0 is input
// slot Index, a negative Index is output slot ^Index. This encoding matches the
// one used by saved circuits and must not change.
//
type Point struct {
	Node  NodeID
	Index int
}

// In returns a Point referencing input slot i of node id.
//
func In(id NodeID, i int) Point { return Point{id, i} }

// Out returns a Point referencing output slot i of node id.
//
func Out(id NodeID, i int) Point { return Point{id, ^i} }

// IsOutput returns true if p references an output terminal.
//
func (p Point) IsOutput() bool { return p.Index < 0 }

// Polarity returns the polarity of the referenced terminal.
//
func (p Point) Polarity() Polarity {
	if p.IsOutput() {
		return Output
	}
	return Input
}

// Slot returns the input or output slot number of p.
//
func (p Point) Slot() int {
	if p.Index < 0 {
		return ^p.Index
	}
	return p.Index
}

// Compare orders points by node id, then by index.
//
func (p Point) Compare(o Point) int {
	if c := p.Node.Compare(o.Node); c != 0 {
		return c
	}
	switch {
	case p.Index < o.Index:
		return -1
	case p.Index > o.Index:
		return 1
	}
	return 0
}

func (p Point) String() string {
	return p.Node.String() + ":" + p.Polarity().String() + "[" + strconv.Itoa(p.Slot()) + "]"
}

// A Connection is an undirected wire between two terminals.
//
// Connections are canonical: A always sorts before B, so two connections
// between the same terminals compare equal with == regardless of the order
// in which their ends were given.
//
type Connection struct {
	A, B Point
}

// NewConnection returns the canonical connection between a and b.
//
func NewConnection(a, b Point) (Connection, error) {
	switch c := a.Compare(b); {
	case c == 0:
		return Connection{}, errors.Wrap(ErrSelfConnection, a.String())
	case c > 0:
		a, b = b, a
	}
	return Connection{a, b}, nil
}

// Contains returns true if p is one of the ends of c.
//
func (c Connection) Contains(p Point) bool { return c.A == p || c.B == p }

// Other returns the end of c opposite to p. It returns false if p is not an
// end of c.
//
func (c Connection) Other(p Point) (Point, bool) {
	switch p {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return Point{}, false
}

func (c Connection) String() string { return c.A.String() + " - " + c.B.String() }

// ConnectionSet is a set of connections. The zero value is an empty set ready
// to use.
//
type ConnectionSet struct {
	m map[Connection]struct{}
}

// Add adds c to the set. It returns ErrDuplicateConnection if c is already in
// the set.
//
func (s *ConnectionSet) Add(c Connection) error {
	if s.Has(c) {
		return errors.Wrap(ErrDuplicateConnection, c.String())
	}
	if s.m == nil {
		s.m = make(map[Connection]struct{})
	}
	s.m[c] = struct{}{}
	return nil
}

// Merge adds c to the set unless already present.
//
func (s *ConnectionSet) Merge(c Connection) {
	if s.m == nil {
		s.m = make(map[Connection]struct{})
	}
	s.m[c] = struct{}{}
}

// Remove removes c from the set. It returns ErrUnknownConnection if c was not
// in the set.
//
func (s *ConnectionSet) Remove(c Connection) error {
	if !s.Has(c) {
		return errors.Wrap(ErrUnknownConnection, c.String())
	}
	delete(s.m, c)
	return nil
}

// RemoveNode removes all connections touching node id and returns how many
// were removed.
//
func (s *ConnectionSet) RemoveNode(id NodeID) int {
	n := 0
	for c := range s.m {
		if c.A.Node == id || c.B.Node == id {
			delete(s.m, c)
			n++
		}
	}
	return n
}

// Has returns true if c is in the set.
//
func (s *ConnectionSet) Has(c Connection) bool {
	_, ok := s.m[c]
	return ok
}

// Len returns the number of connections in the set.
//
func (s *ConnectionSet) Len() int { return len(s.m) }

// Sorted returns the connections in the set, ordered by A then B.
//
func (s *ConnectionSet) Sorted() []Connection {
	cs := make([]Connection, 0, len(s.m))
	for c := range s.m {
		cs = append(cs, c)
	}
	sort.Slice(cs, func(i, j int) bool {
		if c := cs[i].A.Compare(cs[j].A); c != 0 {
			return c < 0
		}
		return cs[i].B.Compare(cs[j].B) < 0
	})
	return cs
}
