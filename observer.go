// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "time"

// An Observer gets notified of simulation life cycle events. Observer methods
// are called synchronously from the simulation methods that trigger them and
// must not call back into the simulation.
//
type Observer interface {
	// SimulationStarted is called once networks have been built and nodes reset.
	SimulationStarted(networks, nodes int)
	// SimulationTicked is called after each completed tick with the tick
	// number (starting at 1) and the time it took.
	SimulationTicked(tick uint64, d time.Duration)
	// SimulationStopped is called when the simulation stops. err is non-nil
	// if the simulation was stopped because a node failed.
	SimulationStopped(err error)
}
