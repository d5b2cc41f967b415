// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads circuit descriptions for the command line tools.
//
// A circuit description is a YAML document:
//
//	ticks: 8
//	interval: 100ms
//	nodes:
//	  - name: clk
//	    gate: clock
//	    options: {period: 2}
//	  - name: inv
//	    gate: not
//	    buffer: 1
//	  - name: lamp
//	    gate: display
//	    terminals:
//	      - {pin: in, invert: true, scale: 2}
//	wires:
//	  - clk.out - inv.in
//	  - inv.out - lamp.in
//	probes:
//	  - clk.out
//	  - lamp.in
//
package config

import (
	"bytes"
	"os"
	"time"

	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/gatelib"
	"github.com/db47h/logicsim/internal/wirespec"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is a circuit description with its run parameters.
//
type Config struct {
	Ticks       int           `yaml:"ticks"`
	Interval    time.Duration `yaml:"interval"`
	LogLevel    string        `yaml:"log_level"`
	MetricsAddr string        `yaml:"metrics_addr"`
	Nodes       []Node        `yaml:"nodes"`
	Wires       []string      `yaml:"wires"`
	Probes      []string      `yaml:"probes"`
}

// Node describes a single node.
//
type Node struct {
	Name      string                 `yaml:"name"`
	Gate      string                 `yaml:"gate"`
	Buffer    int                    `yaml:"buffer"`
	Options   map[string]interface{} `yaml:"options"`
	Terminals []Terminal             `yaml:"terminals"`
}

// Terminal holds the settings of one or more terminals of a node.
//
type Terminal struct {
	Pin    string   `yaml:"pin"`
	Invert bool     `yaml:"invert"`
	Scale  *float64 `yaml:"scale"`
}

// Probe is a named terminal whose value is reported while running.
//
type Probe struct {
	Name  string
	Point logicsim.Point
}

// Circuit is a built circuit, ready to run.
//
type Circuit struct {
	Sim    *logicsim.Simulation
	Probes []Probe
}

// Load reads and parses a circuit description file.
//
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// Parse parses a circuit description. Unknown fields are rejected.
//
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the run parameters and the syntax of node, wire and probe
// declarations. Topology errors are reported by Build.
//
func (c *Config) Validate() error {
	if c.Ticks < 0 {
		return errors.Errorf("invalid tick count %d", c.Ticks)
	}
	if c.Interval < 0 {
		return errors.Errorf("invalid interval %v", c.Interval)
	}
	names := make(map[string]bool, len(c.Nodes))
	for i, n := range c.Nodes {
		if n.Name == "" {
			return errors.Errorf("node #%d: missing name", i)
		}
		if names[n.Name] {
			return errors.Errorf("node %s: duplicate name", n.Name)
		}
		names[n.Name] = true
		if n.Gate == "" {
			return errors.Errorf("node %s: missing gate", n.Name)
		}
		if n.Buffer < 0 {
			return errors.Errorf("node %s: invalid buffer depth %d", n.Name, n.Buffer)
		}
		for _, t := range n.Terminals {
			if _, err := wirespec.ParseTerminal(t.Pin); err != nil {
				return errors.Wrapf(err, "node %s", n.Name)
			}
		}
	}
	for _, w := range c.Wires {
		if _, err := wirespec.ParseWire(w); err != nil {
			return err
		}
	}
	for _, p := range c.Probes {
		if _, err := wirespec.ParsePin(p); err != nil {
			return errors.Wrap(err, "probe")
		}
	}
	return nil
}

// Build creates the simulation described by c. opts are passed on to
// logicsim.New.
//
func (c *Config) Build(opts ...logicsim.Option) (*Circuit, error) {
	b := logicsim.NewBuilder(opts...)
	for _, n := range c.Nodes {
		spec, err := gatelib.Lookup(n.Gate, n.Options)
		if err != nil {
			return nil, errors.Wrapf(err, "node %s", n.Name)
		}
		nopts := []logicsim.NodeOption{logicsim.WithBuffer(n.Buffer)}
		for _, t := range n.Terminals {
			scale := 1.0
			if t.Scale != nil {
				scale = *t.Scale
			}
			nopts = append(nopts, logicsim.WithTerminal(t.Pin, t.Invert, scale))
		}
		if _, err = b.Add(n.Name, spec, nopts...); err != nil {
			return nil, err
		}
	}
	for _, w := range c.Wires {
		if err := b.Wire(w); err != nil {
			return nil, err
		}
	}
	var probes []Probe
	for _, p := range c.Probes {
		pin, err := wirespec.ParsePin(p)
		if err != nil {
			return nil, errors.Wrap(err, "probe")
		}
		for _, r := range pin.Expand() {
			pt, err := b.Point(r.String())
			if err != nil {
				return nil, errors.Wrap(err, "probe")
			}
			probes = append(probes, Probe{Name: r.String(), Point: pt})
		}
	}
	sim, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Circuit{Sim: sim, Probes: probes}, nil
}
