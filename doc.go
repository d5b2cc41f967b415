// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package logicsim implements a discrete-time logic circuit simulator.

A circuit is made of nodes (gates, sources, probes) with input and output
terminals, and of wires between terminals. Terminals hold float64 values;
binary logic uses 0 and 1 but nothing prevents analog-ish circuits.

When a Simulation starts, the wire graph is partitioned into networks: maximal
sets of terminals connected to each other. On every tick, each network sums the
values of its output terminals (drivers) and writes that sum to all its input
terminals (receivers). Then every node reads its inputs, computes its outputs
and pushes them into a small ring buffer. Output terminals only see buffered
values, so a node's output always lags its inputs by at least one tick. This is
what makes the order in which nodes are updated irrelevant.

Behaviours are plain functions (see Transform); a library of common gates is
available in the gatelib sub-package.
*/
package logicsim
