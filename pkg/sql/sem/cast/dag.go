// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cast

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// strongGraph returns the graph of non-self strong casts, with one node
// per class ordinal.
func (r *Registry) strongGraph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := range r.classes {
		g.AddNode(simple.Node(i))
	}
	for p := range r.strong {
		if p.Source == p.Target {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(r.ordinals[p.Source]), simple.Node(r.ordinals[p.Target])))
	}
	return g
}

// smallestCycle returns nil if g is acyclic. Otherwise it returns one
// elementary cycle with its starting node repeated at the end. Each cycle
// is rotated to start at its smallest node and the lexicographically
// smallest one is returned, so the result does not depend on map order.
func smallestCycle(g graph.Directed) []uint {
	var best []uint
	for _, nodes := range topo.DirectedCyclesIn(g) {
		c := canonicalCycle(nodes)
		if best == nil || slices.Compare(c, best) < 0 {
			best = c
		}
	}
	return best
}

func canonicalCycle(nodes []graph.Node) []uint {
	ids := make([]uint, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, uint(n.ID()))
	}
	if len(ids) > 1 && ids[0] == ids[len(ids)-1] {
		ids = ids[:len(ids)-1]
	}
	start := 0
	for i, id := range ids {
		if id < ids[start] {
			start = i
		}
	}
	out := make([]uint, 0, len(ids)+1)
	out = append(out, ids[start:]...)
	out = append(out, ids[:start]...)
	return append(out, out[0])
}
