// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"strconv"

	"github.com/db47h/logicsim"
)

// Constant returns a source with a constant output value.
//
//	Outputs: out
//	Function: out = v
//
func Constant(v float64) logicsim.NodeSpec {
	return logicsim.NodeSpec{
		Kind:      KindConst,
		Outputs:   1,
		Transform: func(_, out []float64) { out[0] = v },
	}
}

// Input creates a function based input, like a push button.
//
//	Outputs: out
//	Function: out = f()
//
func Input(f func() float64) logicsim.NodeSpec {
	return logicsim.NodeSpec{
		Kind:      KindControl,
		Outputs:   1,
		Transform: func(_, out []float64) { out[0] = f() },
	}
}

// InputN creates an input bus of the given bits size. Bit 0 is out[0].
//
func InputN(bits int, f func() int64) logicsim.NodeSpec {
	checkArity(KindControl+strconv.Itoa(bits), bits)
	return logicsim.NodeSpec{
		Kind:    KindControl + strconv.Itoa(bits),
		Outputs: bits,
		Transform: func(_, out []float64) {
			v := f()
			for bit := range out {
				out[bit] = b2f(v&(1<<uint(bit)) != 0)
			}
		},
	}
}

// Output creates an output or probe. The f function is called with the input
// value on every tick.
//
//	Inputs: in
//	Function: f(in)
//
func Output(f func(float64)) logicsim.NodeSpec {
	return logicsim.NodeSpec{
		Kind:      KindDisplay,
		Inputs:    1,
		Transform: func(in, _ []float64) { f(in[0]) },
	}
}

// OutputN creates an output bus of the given bits size. Nonzero inputs are
// read as set bits.
//
func OutputN(bits int, f func(int64)) logicsim.NodeSpec {
	checkArity(KindDisplay+strconv.Itoa(bits), bits)
	return logicsim.NodeSpec{
		Kind:   KindDisplay + strconv.Itoa(bits),
		Inputs: bits,
		Transform: func(in, _ []float64) {
			var v int64
			for bit, x := range in {
				if x != 0 {
					v |= 1 << uint(bit)
				}
			}
			f(v)
		},
	}
}

// Display returns an n input display. f, if not nil, is called on every tick
// with the input values; it must not retain the slice.
//
func Display(n int, f func([]float64)) logicsim.NodeSpec {
	checkArity(KindDisplay, n)
	return logicsim.NodeSpec{
		Kind:   KindDisplay,
		Inputs: n,
		Transform: func(in, _ []float64) {
			if f != nil {
				f(in)
			}
		},
	}
}

// Lamp returns an n input lamp that is on when any input is nonzero.
//
func Lamp(n int, f func(on bool)) logicsim.NodeSpec {
	return Display(n, func(in []float64) { f(or(in)) })
}

// Clock returns a square wave source. Its output is 0 for period ticks, then 1
// for period ticks, and so on.
//
func Clock(period int) logicsim.NodeSpec {
	if period < 1 {
		panic(KindClock + ": invalid period " + strconv.Itoa(period))
	}
	n := 0
	return logicsim.NodeSpec{
		Kind:    KindClock,
		Outputs: 1,
		Transform: func(_, out []float64) {
			out[0] = float64((n / period) % 2)
			n++
		},
	}
}
