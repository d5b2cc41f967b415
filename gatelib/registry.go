// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package gatelib

import (
	"sort"
	"strings"

	"github.com/db47h/logicsim"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// ErrUnknownKind is returned by Lookup for unregistered behaviour kinds.
//
var ErrUnknownKind = errors.New("unknown behaviour kind")

// A Factory builds a NodeSpec from configuration options.
//
type Factory func(options map[string]interface{}) (logicsim.NodeSpec, error)

var registry = map[string]Factory{}

// Register adds a factory for the given kind. Kinds are case insensitive.
// Registering a kind twice replaces the previous factory.
//
func Register(kind string, f Factory) {
	if kind == "" || f == nil {
		return
	}
	registry[strings.ToUpper(kind)] = f
}

// Lookup returns a new NodeSpec for the given kind, configured with options.
//
func Lookup(kind string, options map[string]interface{}) (logicsim.NodeSpec, error) {
	f, ok := registry[strings.ToUpper(kind)]
	if !ok {
		return logicsim.NodeSpec{}, errors.Wrap(ErrUnknownKind, kind)
	}
	spec, err := f(options)
	if err != nil {
		return logicsim.NodeSpec{}, errors.Wrapf(err, "%s options", kind)
	}
	return spec, nil
}

// Kinds returns the registered kinds in alphabetical order.
//
func Kinds() []string {
	ks := make([]string, 0, len(registry))
	for k := range registry {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func decode(options map[string]interface{}, v interface{}) error {
	if len(options) == 0 {
		return nil
	}
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           v,
	})
	if err != nil {
		return err
	}
	return d.Decode(options)
}

type gateOptions struct {
	Inputs int `mapstructure:"inputs"`
}

type constantOptions struct {
	Value float64 `mapstructure:"value"`
}

type clockOptions struct {
	Period int `mapstructure:"period"`
}

type busOptions struct {
	Bits int `mapstructure:"bits"`
}

func nGate(fn func(int) logicsim.NodeSpec, defInputs int) Factory {
	return func(options map[string]interface{}) (logicsim.NodeSpec, error) {
		o := gateOptions{Inputs: defInputs}
		if err := decode(options, &o); err != nil {
			return logicsim.NodeSpec{}, err
		}
		if o.Inputs < 1 {
			return logicsim.NodeSpec{}, errors.Errorf("invalid input count %d", o.Inputs)
		}
		return fn(o.Inputs), nil
	}
}

func nBits(fn func(int) logicsim.NodeSpec) Factory {
	return func(options map[string]interface{}) (logicsim.NodeSpec, error) {
		o := busOptions{Bits: 1}
		if err := decode(options, &o); err != nil {
			return logicsim.NodeSpec{}, err
		}
		if o.Bits < 1 {
			return logicsim.NodeSpec{}, errors.Errorf("invalid bus size %d", o.Bits)
		}
		return fn(o.Bits), nil
	}
}

func noOptions(fn func() logicsim.NodeSpec) Factory {
	return func(options map[string]interface{}) (logicsim.NodeSpec, error) {
		var o struct{}
		if err := decode(options, &o); err != nil {
			return logicsim.NodeSpec{}, err
		}
		return fn(), nil
	}
}

func init() {
	Register(KindAnd, nGate(And, 2))
	Register(KindNand, nGate(Nand, 2))
	Register(KindOr, nGate(Or, 2))
	Register(KindNor, nGate(Nor, 2))
	Register(KindXor, nGate(Xor, 2))
	Register(KindSum, nGate(Sum, 2))
	Register(KindNot, noOptions(Not))
	Register(KindRelay, noOptions(Relay))
	Register(KindHalfAdder, noOptions(HalfAdder))
	Register(KindFullAdder, noOptions(FullAdder))
	Register(KindDMux, noOptions(DMux))
	Register(KindAdder, nBits(Adder))
	Register(KindMux, nBits(Mux))
	Register(KindDisplay, nGate(func(n int) logicsim.NodeSpec { return Display(n, nil) }, 1))
	Register(KindConst, func(options map[string]interface{}) (logicsim.NodeSpec, error) {
		var o constantOptions
		if err := decode(options, &o); err != nil {
			return logicsim.NodeSpec{}, err
		}
		return Constant(o.Value), nil
	})
	Register(KindClock, func(options map[string]interface{}) (logicsim.NodeSpec, error) {
		o := clockOptions{Period: 1}
		if err := decode(options, &o); err != nil {
			return logicsim.NodeSpec{}, err
		}
		if o.Period < 1 {
			return logicsim.NodeSpec{}, errors.Errorf("invalid period %d", o.Period)
		}
		return Clock(o.Period), nil
	})
}
