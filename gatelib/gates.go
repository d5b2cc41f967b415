// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package gatelib provides a library of reusable node behaviours for logicsim.
//
// Gates treat any nonzero input as true and output 0 or 1. And, Xor, Sum,
// Relay, Mux and DMux pass values through (see their documentation).
//
package gatelib

import (
	"strconv"

	"github.com/db47h/logicsim"
)

// Behaviour kinds.
//
const (
	KindAnd     = "AND"
	KindOr      = "OR"
	KindXor     = "XOR"
	KindNot     = "NOT"
	KindNand    = "NAND"
	KindNor     = "NOR"
	KindRelay   = "RELAY"
	KindSum     = "SUM"
	KindConst   = "CONSTANT"
	KindControl = "CONTROL"
	KindDisplay = "DISPLAY"
	KindClock   = "CLOCK"
)

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func checkArity(kind string, n int) {
	if n < 1 {
		panic(kind + ": invalid input count " + strconv.Itoa(n))
	}
}

func gate(kind string, n int, fn logicsim.Transform) logicsim.NodeSpec {
	checkArity(kind, n)
	return logicsim.NodeSpec{Kind: kind, Inputs: n, Outputs: 1, Transform: fn}
}

func and(in, out []float64) {
	v := 1.0
	for _, x := range in {
		v *= x
	}
	out[0] = v
}

// And returns an n input AND gate.
//
//	Inputs: in[0..n-1]
//	Outputs: out
//	Function: out = in[0] * in[1] * ... * in[n-1]
//
func And(n int) logicsim.NodeSpec { return gate(KindAnd, n, and) }

// Nand returns an n input NAND gate.
//
//	Function: out = 1 if any input is 0, 0 otherwise
//
func Nand(n int) logicsim.NodeSpec {
	return gate(KindNand, n, func(in, out []float64) {
		and(in, out)
		out[0] = b2f(out[0] == 0)
	})
}

func or(in []float64) bool {
	for _, x := range in {
		if x != 0 {
			return true
		}
	}
	return false
}

// Or returns an n input OR gate.
//
//	Function: out = 1 if any input is nonzero, 0 otherwise
//
func Or(n int) logicsim.NodeSpec {
	return gate(KindOr, n, func(in, out []float64) { out[0] = b2f(or(in)) })
}

// Nor returns an n input NOR gate.
//
//	Function: out = 1 if all inputs are 0, 0 otherwise
//
func Nor(n int) logicsim.NodeSpec {
	return gate(KindNor, n, func(in, out []float64) { out[0] = b2f(!or(in)) })
}

// Xor returns an n input XOR gate.
//
//	Function: out = the value of the only nonzero input, 0 if no input or more
//	than one input is nonzero
//
func Xor(n int) logicsim.NodeSpec {
	return gate(KindXor, n, func(in, out []float64) {
		var v float64
		hot := 0
		for _, x := range in {
			if x != 0 {
				v = x
				hot++
			}
		}
		if hot == 1 {
			out[0] = v
		}
	})
}

// Not returns a NOT gate.
//
//	Function: out = 1 if in is 0, 0 otherwise
//
func Not() logicsim.NodeSpec {
	return gate(KindNot, 1, func(in, out []float64) { out[0] = b2f(in[0] == 0) })
}

// Relay returns a node that copies its input to its output. Combined with a
// buffer depth, it works as a delay line.
//
func Relay() logicsim.NodeSpec {
	return gate(KindRelay, 1, func(in, out []float64) { out[0] = in[0] })
}

// Sum returns an n input adder.
//
//	Function: out = in[0] + in[1] + ... + in[n-1]
//
func Sum(n int) logicsim.NodeSpec {
	return gate(KindSum, n, func(in, out []float64) {
		var v float64
		for _, x := range in {
			v += x
		}
		out[0] = v
	})
}
