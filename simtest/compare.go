// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for testing circuits.
//
package simtest

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/gatelib"
)

// settle is the number of steps needed for a new input value to show up on the
// outputs of a node with no extra buffering: the input source computes the
// value on the first step and exposes it on the second, the node under test
// picks it up on the third and exposes its result on the fourth.
//
const settle = 4

// CompareSpecs takes two node specs and compares their outputs given the same
// binary inputs. Both specs must have the same number of inputs and outputs.
//
// All inputs are first tested at 0, then at 1, then iter random input vectors
// are tried.
//
func CompareSpecs(t testing.TB, spec1, spec2 logicsim.NodeSpec, iter int) {
	t.Helper()

	if spec1.Inputs != spec2.Inputs {
		t.Fatalf("spec1.Inputs = %d != spec2.Inputs = %d", spec1.Inputs, spec2.Inputs)
	}
	if spec1.Outputs != spec2.Outputs {
		t.Fatalf("spec1.Outputs = %d != spec2.Outputs = %d", spec1.Outputs, spec2.Outputs)
	}

	inputs := make([]float64, spec1.Inputs)
	b := logicsim.NewBuilder(logicsim.WithIDGenerator(logicsim.SequentialIDs()))
	mustAdd(t, b, "spec1", spec1)
	mustAdd(t, b, "spec2", spec2)
	for i := range inputs {
		k := i
		name := "in" + strconv.Itoa(i)
		mustAdd(t, b, name, gatelib.Input(func() float64 { return inputs[k] }))
		for _, s := range []string{"spec1", "spec2"} {
			if err := b.Connect(name+".out", s+".in["+strconv.Itoa(i)+"]"); err != nil {
				t.Fatal(err)
			}
		}
	}
	outs := make([][2]logicsim.Point, spec1.Outputs)
	for o := range outs {
		var err error
		if outs[o][0], err = b.Point("spec1.out[" + strconv.Itoa(o) + "]"); err != nil {
			t.Fatal(err)
		}
		if outs[o][1], err = b.Point("spec2.out[" + strconv.Itoa(o) + "]"); err != nil {
			t.Fatal(err)
		}
	}
	sim, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	sim.Start()

	errString := func(o int, ex, got float64) string {
		var sb strings.Builder
		for i, v := range inputs {
			if sb.Len() > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "in[%d]=%v", i, v)
		}
		return fmt.Sprintf("\nExpected %s => %s out[%d]=%v\nGot %v", sb.String(), spec1.Kind, o, ex, got)
	}

	check := func() {
		t.Helper()
		for i := 0; i < settle; i++ {
			if err := sim.Step(); err != nil {
				t.Fatal(err)
			}
		}
		for o, pts := range outs {
			v1, err := sim.Value(pts[0])
			if err != nil {
				t.Fatal(err)
			}
			v2, err := sim.Value(pts[1])
			if err != nil {
				t.Fatal(err)
			}
			if v1 != v2 {
				t.Fatal(errString(o, v1, v2))
			}
		}
	}

	start := time.Now()
	seed := start.UnixNano()
	rnd := rand.New(rand.NewSource(seed))

	// all 0
	check()
	// all 1
	for i := range inputs {
		inputs[i] = 1
	}
	check()
	for n := 0; n < iter; n++ {
		for i := range inputs {
			inputs[i] = float64(rnd.Int63() & 1)
		}
		check()
	}

	t.Logf("%d nodes. %d ticks in %v (seed %d)", len(sim.Nodes()), sim.Ticks(), time.Since(start), seed)
}

func mustAdd(t testing.TB, b *logicsim.Builder, name string, spec logicsim.NodeSpec) {
	t.Helper()
	if _, err := b.Add(name, spec); err != nil {
		t.Fatal(err)
	}
}
