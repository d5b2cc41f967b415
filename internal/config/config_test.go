// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config_test

import (
	"testing"
	"time"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/gatelib"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/simtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := config.Load("testdata/circuit.yaml")
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Ticks)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Len(t, cfg.Nodes, 5)
	assert.Len(t, cfg.Wires, 6)

	c, err := cfg.Build(logicsim.WithIDGenerator(logicsim.SequentialIDs()))
	require.NoError(t, err)
	assert.Len(t, c.Sim.Nodes(), 5)
	assert.Len(t, c.Sim.Connections(), 6)

	var names []string
	var points []logicsim.Point
	for _, p := range c.Probes {
		names = append(names, p.Name)
		points = append(points, p.Point)
	}
	assert.Equal(t, []string{"a.out[0]", "b.out[0]", "lamp.in[0]", "lamp.in[1]"}, names)

	c.Sim.Start()
	tr := simtest.NewTrace(c.Sim, points...)
	require.NoError(t, tr.Run(13))
	carry := tr.Column(3)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 2, 0}, carry)
}

func TestLoad_missing(t *testing.T) {
	_, err := config.Load("testdata/nope.yaml")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`
ticks: 3
interval: 250ms
metrics_addr: ":9100"
nodes:
  - {name: c, gate: constant, options: {value: 1}}
  - {name: n, gate: not, buffer: 2, terminals: [{pin: out, invert: true, scale: 0.5}]}
wires: ["c.out - n.in"]
probes: ["n.out"]
`))
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	require.Len(t, cfg.Nodes[1].Terminals, 1)
	require.NotNil(t, cfg.Nodes[1].Terminals[0].Scale)
	assert.Equal(t, 0.5, *cfg.Nodes[1].Terminals[0].Scale)

	c, err := cfg.Build()
	require.NoError(t, err)
	n := c.Sim.Nodes()
	var not *logicsim.Node
	for _, nd := range n {
		if nd.Name() == "n" {
			not = nd
		}
	}
	require.NotNil(t, not)
	assert.Equal(t, 2, not.BufferDepth())
	assert.Equal(t, gatelib.KindNot, not.Kind())
	assert.True(t, not.Output(0).Invert())
	assert.Equal(t, 0.5, not.Output(0).Scale())
}

func TestParse_errors(t *testing.T) {
	td := []struct {
		name string
		yaml string
	}{
		{"unknown field", "tick: 3"},
		{"bad yaml", "nodes: [}"},
		{"negative ticks", "ticks: -1"},
		{"negative interval", "interval: -1s"},
		{"missing name", "nodes: [{gate: and}]"},
		{"duplicate name", "nodes: [{name: a, gate: and}, {name: a, gate: or}]"},
		{"missing gate", "nodes: [{name: a}]"},
		{"negative buffer", "nodes: [{name: a, gate: and, buffer: -1}]"},
		{"bad terminal", "nodes: [{name: a, gate: and, terminals: [{pin: a.in}]}]"},
		{"bad wire", "wires: [a.out b.in]"},
		{"bad probe", "probes: [a]"},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := config.Parse([]byte(d.yaml))
			assert.Error(t, err)
		})
	}
}

func TestBuild_errors(t *testing.T) {
	td := []struct {
		name string
		yaml string
		err  error
	}{
		{"unknown gate", "nodes: [{name: a, gate: flipflop}]", gatelib.ErrUnknownKind},
		{"unknown node", "nodes: [{name: a, gate: not}]\nwires: [a.out - b.in]", logicsim.ErrUnknownNode},
		{"terminal range", "nodes: [{name: a, gate: not}]\nwires: ['a.out - a.in[1]']", logicsim.ErrTerminalRange},
		{"terminal setting range", "nodes: [{name: a, gate: not, terminals: [{pin: 'out[3]'}]}]", logicsim.ErrTerminalRange},
		{"duplicate wire", "nodes: [{name: a, gate: not}]\nwires: [a.out - a.in, a.in - a.out]", logicsim.ErrDuplicateConnection},
		{"probe", "nodes: [{name: a, gate: not}]\nprobes: [b.out]", logicsim.ErrUnknownNode},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(d.yaml))
			require.NoError(t, err)
			_, err = cfg.Build()
			assert.ErrorIs(t, err, d.err)
		})
	}
}

func TestBuild_terminalScale(t *testing.T) {
	cfg, err := config.Parse([]byte(`
nodes:
  - {name: zero, gate: constant, options: {value: 5}, terminals: [{pin: out, scale: 0}]}
  - {name: unset, gate: constant, options: {value: 5}, terminals: [{pin: out, invert: true}]}
  - {name: plain, gate: constant, options: {value: 5}}
probes: [zero.out, unset.out, plain.out]
`))
	require.NoError(t, err)
	c, err := cfg.Build()
	require.NoError(t, err)
	c.Sim.Start()
	require.NoError(t, c.Sim.Step())
	require.NoError(t, c.Sim.Step())

	want := []struct{ raw, value float64 }{{5, 0}, {5, 0}, {5, 5}}
	for i, p := range c.Probes {
		raw, err := c.Sim.Raw(p.Point)
		require.NoError(t, err)
		v, err := c.Sim.Value(p.Point)
		require.NoError(t, err)
		assert.Equal(t, want[i].raw, raw, p.Name)
		assert.Equal(t, want[i].value, v, p.Name)
	}
}
