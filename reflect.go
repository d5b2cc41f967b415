// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Evaluator is the interface that custom behaviours built using reflection
// must implement. See MakeSpec.
//
type Evaluator interface {
	Eval()
}

type pinField struct {
	index int // struct field index
	n     int // 1 for a float64, array length for buses
	bus   bool
}

// MakeSpec wraps an Evaluator into a NodeSpec. Input and output terminals are
// identified by field tags.
//
// The field tag must be `logic:"in"` or `logic:"out"`. Fields must be of type
// float64 or arrays of float64 (buses). Terminals are numbered in field order,
// bus elements in index order.
//
// Each call to MakeSpec allocates a new value of the evaluator's type, so
// evaluators can keep state between ticks:
//
//	type counter struct {
//		Clk float64 `logic:"in"`
//		Out float64 `logic:"out"`
//		n   float64
//	}
//
//	func (c *counter) Eval() {
//		if c.Clk != 0 {
//			c.n++
//		}
//		c.Out = c.n
//	}
//
//	spec := logicsim.MakeSpec((*counter)(nil))
//
func MakeSpec(e Evaluator) NodeSpec {
	typ := reflect.TypeOf(e)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	var ins, outs []pinField
	nIn, nOut := 0, 0
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("logic")
		if !ok {
			continue
		}
		pf := pinField{index: i, n: 1}
		switch ft := f.Type; {
		case ft.Kind() == reflect.Float64:
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Float64:
			pf.n = ft.Len()
			pf.bus = true
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft.Kind(), f.Name, typ.Name()))
		}
		switch strings.TrimSpace(tag) {
		case "in":
			ins = append(ins, pf)
			nIn += pf.n
		case "out":
			outs = append(outs, pf)
			nOut += pf.n
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
	}

	v := reflect.New(typ)
	ev := v.Interface().(Evaluator)
	s := v.Elem()
	return NodeSpec{
		Kind:    typ.Name(),
		Inputs:  nIn,
		Outputs: nOut,
		Transform: func(in, out []float64) {
			j := 0
			for _, pf := range ins {
				fv := s.Field(pf.index)
				if !pf.bus {
					fv.SetFloat(in[j])
					j++
					continue
				}
				for k := 0; k < pf.n; k++ {
					fv.Index(k).SetFloat(in[j])
					j++
				}
			}
			ev.Eval()
			j = 0
			for _, pf := range outs {
				fv := s.Field(pf.index)
				if !pf.bus {
					out[j] = fv.Float()
					j++
					continue
				}
				for k := 0; k < pf.n; k++ {
					out[j] = fv.Index(k).Float()
					j++
				}
			}
		},
	}
}
