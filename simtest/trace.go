// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package simtest

import (
	"github.com/db47h/logicsim"
)

// A Trace records the values of a set of terminals, one row per sample.
//
type Trace struct {
	sim    *logicsim.Simulation
	points []logicsim.Point
	Rows   [][]float64
}

// NewTrace returns a new Trace recording the given terminals of sim.
//
func NewTrace(sim *logicsim.Simulation, points ...logicsim.Point) *Trace {
	return &Trace{sim: sim, points: points}
}

// Sample appends the current effective values of the traced terminals.
//
func (tr *Trace) Sample() error {
	row := make([]float64, len(tr.points))
	for i, p := range tr.points {
		v, err := tr.sim.Value(p)
		if err != nil {
			return err
		}
		row[i] = v
	}
	tr.Rows = append(tr.Rows, row)
	return nil
}

// Column returns the recorded values of the i-th traced terminal.
//
func (tr *Trace) Column(i int) []float64 {
	c := make([]float64, len(tr.Rows))
	for r, row := range tr.Rows {
		c[r] = row[i]
	}
	return c
}

// Run steps sim n times, sampling after each step.
//
func (tr *Trace) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := tr.sim.Step(); err != nil {
			return err
		}
		if err := tr.Sample(); err != nil {
			return err
		}
	}
	return nil
}
