// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package wirespec_test

import (
	"testing"

	"github.com/db47h/logicsim/internal/wirespec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePin(t *testing.T) {
	data := []struct {
		in  string
		pin wirespec.Pin
		err string
	}{
		{"a.in", wirespec.Pin{Node: "a"}, ""},
		{"and_1.in[3]", wirespec.Pin{Node: "and_1", Start: 3, End: 3}, ""},
		{"clk.out", wirespec.Pin{Node: "clk", Output: true}, ""},
		{" bus.out[0..7] ", wirespec.Pin{Node: "bus", Output: true, Start: 0, End: 7}, ""},
		{"a.io[0]", wirespec.Pin{}, `in "a.io[0]" at pos 3: expected in or out, got "io"`},
		{"a.in[", wirespec.Pin{}, `in "a.in[" at pos 6: integer value expected after '[', got end of input`},
		{"a.in[3..1]", wirespec.Pin{}, `in "a.in[3..1]" at pos 10: invalid range`},
		{"a.in[70000]", wirespec.Pin{}, `in "a.in[70000]" at pos 6: index out of range`},
		{"a.in[0..9223372036854775807]", wirespec.Pin{}, `in "a.in[0..9223372036854775807]" at pos 9: index out of range`},
		{"a.in[99999999999999999999]", wirespec.Pin{}, `in "a.in[99999999999999999999]" at pos 6: index out of range`},
		{"a.in[1", wirespec.Pin{}, `in "a.in[1" at pos 7: closing ']' expected after index or range, got end of input`},
		{"in[1]", wirespec.Pin{}, `in "in[1]" at pos 3: expected '.' after node name, got "["`},
		{"a.in x", wirespec.Pin{}, `in "a.in x" at pos 6: unexpected input, got "x"`},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			pin, err := wirespec.ParsePin(d.in)
			if d.err != "" {
				require.EqualError(t, err, d.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, d.pin, pin)
		})
	}
}

func TestParseTerminal(t *testing.T) {
	p, err := wirespec.ParseTerminal("out[2]")
	require.NoError(t, err)
	assert.Equal(t, wirespec.Pin{Output: true, Start: 2, End: 2}, p)

	_, err = wirespec.ParseTerminal("a.out[2]")
	assert.Error(t, err)
}

func TestWire_Pairs(t *testing.T) {
	data := []struct {
		in    string
		pairs []string
		err   string
	}{
		{"a.out - b.in[1]", []string{"a.out[0]:b.in[1]"}, ""},
		{"a.out[0..1] - b.in[2..3]", []string{"a.out[0]:b.in[2]", "a.out[1]:b.in[3]"}, ""},
		{"a.out - b.in[0..2]", []string{"a.out[0]:b.in[0]", "a.out[0]:b.in[1]", "a.out[0]:b.in[2]"}, ""},
		{"a.out[0..1] - b.in", []string{"a.out[0]:b.in[0]", "a.out[1]:b.in[0]"}, ""},
		{"a.out[0..1] - b.in[0..2]", nil, "pin count mismatch: 2 vs 3"},
		{"a.out b.in", nil, `in "a.out b.in" at pos 7: expected '-' between pins, got "b"`},
	}
	for _, d := range data {
		t.Run(d.in, func(t *testing.T) {
			w, err := wirespec.ParseWire(d.in)
			if err == nil {
				var ps [][2]wirespec.Ref
				ps, err = w.Pairs()
				if err == nil {
					var got []string
					for _, p := range ps {
						got = append(got, p[0].String()+":"+p[1].String())
					}
					assert.Equal(t, d.pairs, got)
				}
			}
			if d.err != "" {
				assert.EqualError(t, err, d.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
