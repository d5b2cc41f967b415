// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package driver runs a simulation loop on behalf of a host program.
//
package driver

import (
	"context"
	"time"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Options configures Run.
//
type Options struct {
	// Number of ticks to run. 0 runs until the context is done.
	Ticks int
	// Minimum time between ticks. 0 runs ticks back to back.
	Interval time.Duration
	// Called after each tick with the tick number. Returning an error stops
	// the simulation and Run returns that error.
	OnTick func(tick uint64) error
}

// Run starts sim if needed, sets it running and ticks it according to opts.
// On return, the simulation is paused, unless it was stopped by an error.
//
func Run(ctx context.Context, sim *logicsim.Simulation, opts Options) error {
	if !sim.Started() {
		sim.Start()
	}
	if err := sim.Pause(true); err != nil {
		return err
	}

	var tc <-chan time.Time
	if opts.Interval > 0 {
		t := time.NewTicker(opts.Interval)
		defer t.Stop()
		tc = t.C
	}

	for i := 0; opts.Ticks == 0 || i < opts.Ticks; i++ {
		if tc != nil {
			select {
			case <-ctx.Done():
				sim.Pause(false)
				return ctx.Err()
			case <-tc:
			}
		} else if err := ctx.Err(); err != nil {
			sim.Pause(false)
			return err
		}
		if err := sim.Tick(); err != nil {
			return err
		}
		if opts.OnTick != nil {
			if err := opts.OnTick(sim.Ticks()); err != nil {
				sim.Stop()
				return errors.Wrapf(err, "tick %d", sim.Ticks())
			}
		}
	}
	return sim.Pause(false)
}
