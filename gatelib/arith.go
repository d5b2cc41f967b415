// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"strconv"

	"github.com/db47h/logicsim"
)

// Composite behaviour kinds.
//
const (
	KindHalfAdder = "HALFADDER"
	KindFullAdder = "FULLADDER"
	KindAdder     = "ADDER"
	KindMux       = "MUX"
	KindDMux      = "DMUX"
)

func bit(x float64) bool { return x != 0 }

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder() logicsim.NodeSpec {
	return logicsim.NodeSpec{
		Kind:    KindHalfAdder,
		Inputs:  2,
		Outputs: 2,
		Transform: func(in, out []float64) {
			a, b := bit(in[0]), bit(in[1])
			out[0] = b2f(a != b)
			out[1] = b2f(a && b)
		},
	}
}

// FullAdder returns a 3 bit adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder() logicsim.NodeSpec {
	return logicsim.NodeSpec{
		Kind:    KindFullAdder,
		Inputs:  3,
		Outputs: 2,
		Transform: func(in, out []float64) {
			a, b, c := bit(in[0]), bit(in[1]), bit(in[2])
			s := a != b
			out[0] = b2f(s != c)
			out[1] = b2f(s && c || a && b)
		},
	}
}

// Adder returns an n bits ripple carry adder.
//
//	Inputs: a[0..n-1], b[0..n-1] (in[0..n-1] and in[n..2n-1])
//	Outputs: out[0..n-1], c (out[n])
//
func Adder(bits int) logicsim.NodeSpec {
	checkArity(KindAdder, bits)
	return logicsim.NodeSpec{
		Kind:    KindAdder + strconv.Itoa(bits),
		Inputs:  2 * bits,
		Outputs: bits + 1,
		Transform: func(in, out []float64) {
			c := false
			for i := 0; i < bits; i++ {
				a, b := bit(in[i]), bit(in[bits+i])
				s := a != b
				out[i] = b2f(s != c)
				c = a && b || s && c
			}
			out[bits] = b2f(c)
		},
	}
}

// Mux returns an n bits multiplexer.
//
//	Inputs: a[0..n-1], b[0..n-1], sel (in[2n])
//	Outputs: out[0..n-1]
//	Function: for i := range out { if sel == 0 { out[i] = a[i] } else { out[i] = b[i] } }
//
// Values are passed through unchanged.
//
func Mux(bits int) logicsim.NodeSpec {
	checkArity(KindMux, bits)
	return logicsim.NodeSpec{
		Kind:    KindMux + strconv.Itoa(bits),
		Inputs:  2*bits + 1,
		Outputs: bits,
		Transform: func(in, out []float64) {
			off := 0
			if bit(in[2*bits]) {
				off = bits
			}
			copy(out, in[off:off+bits])
		},
	}
}

// DMux returns a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux() logicsim.NodeSpec {
	return logicsim.NodeSpec{
		Kind:    KindDMux,
		Inputs:  2,
		Outputs: 2,
		Transform: func(in, out []float64) {
			if bit(in[1]) {
				out[1] = in[0]
			} else {
				out[0] = in[0]
			}
		},
	}
}
