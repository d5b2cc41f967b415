// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wirespec parses the textual pin and wire references used in circuit
// descriptions.
//
// A pin is written node.in[i] or node.out[i]. The index may be omitted (same
// as [0]) or be a range like [0..3]. A wire is two pins separated by a dash:
//
//	clk.out - and1.in[0]
//	src.out[0..3] - bus.in[0..3]
//
package wirespec

import (
	"strconv"
	"unicode"

	"github.com/pkg/errors"
)

// Token types
//
const (
	EOF = iota
	Raw
	Ident
	Dot
	BracketOpen
	BracketClose
	Int
	Range
	Dash
)

type item struct {
	typ int
	val string
	pos int
}

func (i item) String() string {
	if i.typ == EOF {
		return "end of input"
	}
	return strconv.Quote(i.val)
}

type lexer struct {
	in  []rune
	pos int
}

func (l *lexer) next() item {
	for l.pos < len(l.in) && unicode.IsSpace(l.in[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.in) {
		return item{EOF, "", l.pos}
	}
	start := l.pos
	r := l.in[l.pos]
	l.pos++
	switch {
	case unicode.IsLetter(r) || r == '_':
		for l.pos < len(l.in) && (unicode.IsLetter(l.in[l.pos]) || unicode.IsDigit(l.in[l.pos]) || l.in[l.pos] == '_') {
			l.pos++
		}
		return item{Ident, string(l.in[start:l.pos]), start}
	case '0' <= r && r <= '9':
		for l.pos < len(l.in) && '0' <= l.in[l.pos] && l.in[l.pos] <= '9' {
			l.pos++
		}
		return item{Int, string(l.in[start:l.pos]), start}
	case r == '[':
		return item{BracketOpen, "[", start}
	case r == ']':
		return item{BracketClose, "]", start}
	case r == '-':
		return item{Dash, "-", start}
	case r == '.':
		if l.pos < len(l.in) && l.in[l.pos] == '.' {
			l.pos++
			return item{Range, "..", start}
		}
		return item{Dot, ".", start}
	}
	return item{Raw, string(r), start}
}

// Terminal kinds.
//
const (
	In  = "in"
	Out = "out"
)

// MaxIndex is the largest terminal index accepted in a pin reference.
//
const MaxIndex = 1<<16 - 1

// Pin is a reference to one or more terminals of a named node.
//
type Pin struct {
	Node   string // empty for node-relative pins
	Output bool
	Start  int
	End    int // same as Start for a single terminal
}

// Len returns the number of terminals referenced by p.
//
func (p Pin) Len() int { return p.End - p.Start + 1 }

// Ref references a single terminal of a named node.
//
type Ref struct {
	Node   string
	Output bool
	Index  int
}

func (r Ref) String() string {
	k := In
	if r.Output {
		k = Out
	}
	s := k + "[" + strconv.Itoa(r.Index) + "]"
	if r.Node != "" {
		s = r.Node + "." + s
	}
	return s
}

// Expand returns the individual terminals referenced by p.
//
func (p Pin) Expand() []Ref {
	r := make([]Ref, 0, p.Len())
	for i := p.Start; i <= p.End; i++ {
		r = append(r, Ref{p.Node, p.Output, i})
	}
	return r
}

// Wire is a pair of pins to connect together.
//
type Wire struct {
	A, B Pin
}

// Pairs expands w into individual terminal pairs. Ranges of the same length
// are connected one to one; a single terminal is connected to every terminal
// of a range on the other end.
//
func (w Wire) Pairs() ([][2]Ref, error) {
	as, bs := w.A.Expand(), w.B.Expand()
	var r [][2]Ref
	switch {
	case len(as) == len(bs):
		for i := range as {
			r = append(r, [2]Ref{as[i], bs[i]})
		}
	case len(as) == 1:
		for _, b := range bs {
			r = append(r, [2]Ref{as[0], b})
		}
	case len(bs) == 1:
		for _, a := range as {
			r = append(r, [2]Ref{a, bs[0]})
		}
	default:
		return nil, errors.Errorf("pin count mismatch: %d vs %d", len(as), len(bs))
	}
	return r, nil
}

type parser struct {
	input string
	l     lexer
	i     item
}

func newParser(s string) *parser {
	p := &parser{input: s, l: lexer{in: []rune(s)}}
	p.i = p.l.next()
	return p
}

func (p *parser) advance() { p.i = p.l.next() }

func (p *parser) expect(typ int, msg string) (item, error) {
	i := p.i
	if i.typ != typ {
		return i, parseError(p.input, i.pos, msg+", got "+i.String())
	}
	p.advance()
	return i, nil
}

// pin parses [node "."] ("in" | "out") ["[" int [".." int] "]"]
//
func (p *parser) pin(withNode bool) (Pin, error) {
	var pin Pin
	if withNode {
		n, err := p.expect(Ident, "expected node name")
		if err != nil {
			return pin, err
		}
		pin.Node = n.val
		if _, err = p.expect(Dot, "expected '.' after node name"); err != nil {
			return pin, err
		}
	}
	k, err := p.expect(Ident, "expected in or out")
	if err != nil {
		return pin, err
	}
	switch k.val {
	case In:
	case Out:
		pin.Output = true
	default:
		return pin, parseError(p.input, k.pos, "expected in or out, got "+k.String())
	}
	if p.i.typ != BracketOpen {
		return pin, nil
	}
	p.advance()
	if pin.Start, err = p.number("integer value expected after '['"); err != nil {
		return pin, err
	}
	pin.End = pin.Start
	if p.i.typ == Range {
		p.advance()
		if pin.End, err = p.number("integer value expected after '..'"); err != nil {
			return pin, err
		}
		if pin.End < pin.Start {
			return pin, parseError(p.input, p.i.pos, "invalid range")
		}
	}
	if _, err = p.expect(BracketClose, "closing ']' expected after index or range"); err != nil {
		return pin, err
	}
	return pin, nil
}

func (p *parser) number(msg string) (int, error) {
	i, err := p.expect(Int, msg)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(i.val)
	if err != nil || n > MaxIndex {
		return 0, parseError(p.input, i.pos, "index out of range")
	}
	return n, nil
}

func (p *parser) end() error {
	_, err := p.expect(EOF, "unexpected input")
	return err
}

// ParsePin parses a pin reference of the form node.in[i], node.out[i..j].
//
func ParsePin(s string) (Pin, error) {
	p := newParser(s)
	pin, err := p.pin(true)
	if err != nil {
		return pin, err
	}
	return pin, p.end()
}

// ParseTerminal parses a node relative terminal reference like in[2] or out.
//
func ParseTerminal(s string) (Pin, error) {
	p := newParser(s)
	pin, err := p.pin(false)
	if err != nil {
		return pin, err
	}
	return pin, p.end()
}

// ParseWire parses a wire of the form "pinA - pinB".
//
func ParseWire(s string) (Wire, error) {
	var w Wire
	p := newParser(s)
	var err error
	if w.A, err = p.pin(true); err != nil {
		return w, err
	}
	if _, err = p.expect(Dash, "expected '-' between pins"); err != nil {
		return w, err
	}
	if w.B, err = p.pin(true); err != nil {
		return w, err
	}
	return w, p.end()
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
