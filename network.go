// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

// A Network is a maximal set of terminals connected to each other by wires.
// Its output terminals drive the network and its input terminals receive the
// sum of all driver values.
//
type Network struct {
	Inputs  []*Terminal // receivers
	Outputs []*Terminal // drivers
	Members []Point     // in discovery order
}

// Update propagates the network value: the sum of the effective values of all
// drivers is written to every receiver. A network without drivers propagates 0.
//
func (n *Network) Update() {
	var v float64
	for _, o := range n.Outputs {
		v += o.Value()
	}
	for _, i := range n.Inputs {
		i.SetValue(v)
	}
}

// Value returns the sum of the effective driver values.
//
func (n *Network) Value() float64 {
	var v float64
	for _, o := range n.Outputs {
		v += o.Value()
	}
	return v
}

// BuildNetworks partitions the wire graph in conns into connected components.
//
// lookup resolves points to terminals. Points for which lookup returns nil are
// still traversed but do not take part in propagation.
//
// Every terminal that has at least one connection ends up in exactly one
// Network. Networks are seeded from connections in canonical order, so that
// calling BuildNetworks twice on the same set yields the same result.
//
func BuildNetworks(conns *ConnectionSet, lookup func(Point) *Terminal) []*Network {
	sorted := conns.Sorted()
	adj := make(map[Point][]Point, 2*len(sorted))
	for _, c := range sorted {
		adj[c.A] = append(adj[c.A], c.B)
		adj[c.B] = append(adj[c.B], c.A)
	}

	var nets []*Network
	explored := make(map[Point]bool, len(adj))
	var queue []Point
	for _, c := range sorted {
		if explored[c.A] {
			continue
		}
		net := &Network{}
		explored[c.A] = true
		queue = append(queue[:0], c.A)
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			net.Members = append(net.Members, p)
			if t := lookup(p); t != nil {
				if t.Polarity() == Output {
					net.Outputs = append(net.Outputs, t)
				} else {
					net.Inputs = append(net.Inputs, t)
				}
			}
			for _, next := range adj[p] {
				if !explored[next] {
					explored[next] = true
					queue = append(queue, next)
				}
			}
		}
		nets = append(nets, net)
	}
	return nets
}
