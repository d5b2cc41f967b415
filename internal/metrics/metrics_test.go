// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/gatelib"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ logicsim.Observer = (*metrics.Collector)(nil)

func TestCollector(t *testing.T) {
	c := metrics.New()
	b := logicsim.NewBuilder(logicsim.WithObserver(c))
	_, err := b.Add("a", gatelib.Constant(1))
	require.NoError(t, err)
	_, err = b.Add("n", gatelib.Not())
	require.NoError(t, err)
	_, err = b.Add("boom", logicsim.NodeSpec{Inputs: 1, Transform: func(in, _ []float64) {
		if in[0] != 0 {
			panic("boom")
		}
	}})
	require.NoError(t, err)
	require.NoError(t, b.Wire("a.out - n.in"))
	require.NoError(t, b.Wire("a.out - boom.in"))
	sim, err := b.Build()
	require.NoError(t, err)

	sim.Start()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Starts))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Networks))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Nodes))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Started))

	require.NoError(t, sim.Step())
	require.NoError(t, sim.Step())
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Ticks))

	// a.out reaches boom on the third tick
	require.Error(t, sim.Step())
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Failures))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Started))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Ticks))

	sim.Start()
	sim.Stop()
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Starts))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Failures))

	n, err := testutil.GatherAndCount(c.Registry(), "logicsim_tick_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCollector_Handler(t *testing.T) {
	c := metrics.New()
	c.SimulationStarted(4, 7)
	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "logicsim_networks 4")
	assert.Contains(t, string(body), "logicsim_nodes 7")
	assert.Contains(t, string(body), "logicsim_starts_total 1")
}
