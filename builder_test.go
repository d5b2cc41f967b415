// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim_test

import (
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/gatelib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b := logicsim.NewBuilder(logicsim.WithIDGenerator(logicsim.SequentialIDs()))
	_, err := b.Add("one", gatelib.Constant(1))
	require.NoError(t, err)
	bus, err := b.Add("bus", gatelib.InputN(4, func() int64 { return 0xd }))
	require.NoError(t, err)
	_, err = b.Add("and", gatelib.And(4), logicsim.WithBuffer(1), logicsim.WithTerminal("in[1]", true, 1))
	require.NoError(t, err)
	_, err = b.Add("sum", gatelib.Sum(4), logicsim.WithTerminal("in[0..3]", false, 2))
	require.NoError(t, err)

	id, ok := b.ID("bus")
	assert.True(t, ok)
	assert.Equal(t, bus, id)
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", id.String())

	require.NoError(t, b.Wire("bus.out[0..3] - and.in[0..3]"))
	require.NoError(t, b.Connect("one.out", "sum.in[0..3]"))
	err = b.Connect("sum.in[2]", "one.out")
	assert.ErrorIs(t, err, logicsim.ErrDuplicateConnection)

	andOut, err := b.Point("and.out")
	require.NoError(t, err)
	sumOut, err := b.Point("sum.out[0]")
	require.NoError(t, err)

	sim, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, sim.Nodes(), 4)
	assert.Len(t, sim.Connections(), 8)

	sim.Start()
	for i := 0; i < 5; i++ {
		require.NoError(t, sim.Step())
	}
	// bus = 1101, in[1] inverted
	v, _ := sim.Value(andOut)
	assert.Equal(t, 1.0, v)
	v, _ = sim.Value(sumOut)
	assert.Equal(t, 8.0, v)

	n, ok := sim.Node(id)
	require.True(t, ok)
	assert.Equal(t, "bus", n.Name())
	assert.Equal(t, gatelib.KindControl+"4", n.Kind())
}

func TestBuilder_errors(t *testing.T) {
	b := logicsim.NewBuilder()
	_, err := b.Add("not", gatelib.Not())
	require.NoError(t, err)

	_, err = b.Add("not", gatelib.Not())
	assert.EqualError(t, err, "duplicate node name not")
	_, err = b.Add("", gatelib.Not())
	assert.Error(t, err)
	_, err = b.Add("x", logicsim.NodeSpec{Inputs: 1})
	assert.ErrorIs(t, err, logicsim.ErrNoTransform)
	nop := func(_, _ []float64) {}
	_, err = b.Add("x", logicsim.NodeSpec{Inputs: -1, Outputs: 1, Transform: nop})
	assert.EqualError(t, err, "x: invalid terminal count: -1 inputs, 1 outputs")
	_, err = b.Add("x", logicsim.NodeSpec{Inputs: 1, Outputs: -3, Transform: nop})
	assert.EqualError(t, err, "x: invalid terminal count: 1 inputs, -3 outputs")
	_, ok := b.ID("x")
	assert.False(t, ok)
	_, err = b.Add("x", gatelib.Not(), logicsim.WithBuffer(-1))
	assert.ErrorIs(t, err, logicsim.ErrBufferDepth)
	_, err = b.Add("x", gatelib.Not(), logicsim.WithTerminal("in[1]", true, 1))
	assert.ErrorIs(t, err, logicsim.ErrTerminalRange)
	_, err = b.Add("x", gatelib.Not(), logicsim.WithTerminal("in[", true, 1))
	assert.Error(t, err)

	assert.ErrorIs(t, b.Connect("not.out", "nope.in"), logicsim.ErrUnknownNode)
	assert.ErrorIs(t, b.Connect("not.out", "not.in[1]"), logicsim.ErrTerminalRange)
	assert.ErrorIs(t, b.Connect("not.out", "not.out"), logicsim.ErrSelfConnection)
	assert.NotPanics(t, func() {
		assert.Error(t, b.Connect("not.out", "not.in[0..9223372036854775807]"))
		assert.Error(t, b.Wire("not.out - not.in[0..65536]"))
	})
	assert.Error(t, b.Wire("not.out"))
	_, err = b.Point("not.in[0..1]")
	assert.Error(t, err)
}
