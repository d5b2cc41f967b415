// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// Errors returned by the simulation. Returned errors may wrap these with
// additional context; use errors.Cause or errors.Is to test for them.
//
var (
	ErrNotStarted          = errors.New("simulation not started")
	ErrRunning             = errors.New("topology cannot change while the simulation is started")
	ErrNodeFailed          = errors.New("node transform failed")
	ErrUnknownNode         = errors.New("unknown node")
	ErrDuplicateNode       = errors.New("duplicate node id")
	ErrTerminalRange       = errors.New("terminal index out of range")
	ErrSelfConnection      = errors.New("cannot connect a terminal to itself")
	ErrDuplicateConnection = errors.New("connection already exists")
	ErrUnknownConnection   = errors.New("no such connection")
	ErrBufferDepth         = errors.New("buffer depth must not be negative")
	ErrNoTransform         = errors.New("node has no transform")
)
