// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest_test

import (
	"fmt"
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/gatelib"
	"github.com/db47h/logicsim/simtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeT records fatal failures instead of stopping the calling test.
type fakeT struct {
	testing.TB
	msg string
}

type fatal struct{}

func (t *fakeT) Helper()                           {}
func (t *fakeT) Logf(string, ...interface{})       {}
func (t *fakeT) Fatal(args ...interface{})         { t.msg = fmt.Sprint(args...); panic(fatal{}) }
func (t *fakeT) Fatalf(f string, a ...interface{}) { t.msg = fmt.Sprintf(f, a...); panic(fatal{}) }

func (t *fakeT) run(f func()) (failed bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(fatal); !ok {
				panic(r)
			}
			failed = true
		}
	}()
	f()
	return false
}

func TestCompareSpecs(t *testing.T) {
	// De Morgan
	nandOfNots := logicsim.NodeSpec{
		Kind:    "OR",
		Inputs:  3,
		Outputs: 1,
		Transform: func(in, out []float64) {
			v := 1.0
			for _, x := range in {
				if x != 0 {
					v = 0
				}
			}
			out[0] = 1 - v
		},
	}
	simtest.CompareSpecs(t, gatelib.Or(3), nandOfNots, 30)
}

func TestCompareSpecs_mismatch(t *testing.T) {
	ft := &fakeT{TB: t}
	failed := ft.run(func() { simtest.CompareSpecs(ft, gatelib.And(2), gatelib.Nand(2), 10) })
	require.True(t, failed)
	assert.Contains(t, ft.msg, "Expected in[0]=")

	ft = &fakeT{TB: t}
	failed = ft.run(func() { simtest.CompareSpecs(ft, gatelib.And(2), gatelib.And(3), 10) })
	require.True(t, failed)
	assert.Equal(t, "spec1.Inputs = 2 != spec2.Inputs = 3", ft.msg)

	ft = &fakeT{TB: t}
	failed = ft.run(func() { simtest.CompareSpecs(ft, gatelib.Not(), gatelib.Display(1, nil), 10) })
	require.True(t, failed)
	assert.Equal(t, "spec1.Outputs = 1 != spec2.Outputs = 0", ft.msg)
}

func TestTrace(t *testing.T) {
	b := logicsim.NewBuilder()
	_, err := b.Add("one", gatelib.Constant(1))
	require.NoError(t, err)
	_, err = b.Add("delay", gatelib.Relay(), logicsim.WithBuffer(2))
	require.NoError(t, err)
	require.NoError(t, b.Wire("one.out - delay.in"))
	src, err := b.Point("one.out")
	require.NoError(t, err)
	dst, err := b.Point("delay.out")
	require.NoError(t, err)
	sim, err := b.Build()
	require.NoError(t, err)
	sim.Start()

	tr := simtest.NewTrace(sim, src, dst)
	require.NoError(t, tr.Sample())
	require.NoError(t, tr.Run(6))
	assert.Len(t, tr.Rows, 7)
	assert.Equal(t, []float64{0, 0, 1, 1, 1, 1, 1}, tr.Column(0))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 1}, tr.Column(1))

	sim.Stop()
	assert.ErrorIs(t, tr.Run(1), logicsim.ErrNotStarted)
}
