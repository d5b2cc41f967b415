// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// Polarity tells whether a terminal receives (Input) or drives (Output) the
// network it is wired into.
//
type Polarity uint8

// Terminal polarities.
//
const (
	Input Polarity = iota
	Output
)

func (p Polarity) String() string {
	if p == Output {
		return "out"
	}
	return "in"
}

// A Terminal is a single input or output pin of a Node.
//
// The raw value is written by network propagation (inputs) or by the owning
// node's output buffer (outputs). Reading goes through the invert and scale
// settings of the terminal.
//
type Terminal struct {
	pol    Polarity
	invert bool
	scale  float64
	raw    float64
}

// NewTerminal returns a new terminal with the given polarity and transform
// settings.
//
func NewTerminal(p Polarity, invert bool, scale float64) *Terminal {
	return &Terminal{pol: p, invert: invert, scale: scale}
}

// Polarity returns the terminal polarity.
//
func (t *Terminal) Polarity() Polarity { return t.pol }

// Invert returns the terminal's invert setting.
//
func (t *Terminal) Invert() bool { return t.invert }

// Scale returns the terminal's scale factor.
//
func (t *Terminal) Scale() float64 { return t.scale }

// Value returns the effective value of the terminal:
//
//	(invert ? (raw == 0 ? 1 : 0) : raw) * scale
//
func (t *Terminal) Value() float64 {
	v := t.raw
	if t.invert {
		if v == 0 {
			v = 1
		} else {
			v = 0
		}
	}
	return v * t.scale
}

// SetValue sets the raw value of the terminal.
//
func (t *Terminal) SetValue(v float64) { t.raw = v }

// Raw returns the raw, untransformed value.
//
func (t *Terminal) Raw() float64 { return t.raw }

// Reset zeroes the raw value.
//
func (t *Terminal) Reset() { t.raw = 0 }
