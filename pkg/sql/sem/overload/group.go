// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package overload

import (
	"sort"

	"github.com/cockroachdb/sqloverload/pkg/sql/types"
)

// PriorityGroup is the set of overloads of one name sharing a priority,
// with the per-position agreement of their target classes precomputed.
type PriorityGroup struct {
	Priority  int
	Overloads []*Overload

	targets Positional[*types.Class]
}

func newPriorityGroup(priority int, overloads []*Overload) *PriorityGroup {
	return &PriorityGroup{
		Priority:  priority,
		Overloads: overloads,
		targets: FoldPositions(overloads,
			func(s InputSet) *types.Class { return s.Target },
			Equal[*types.Class]),
	}
}

// CommonTypeAt returns the target class every overload in the group
// declares at position i. It returns nil when they disagree, when no
// overload reaches the position, or when the agreed input set is ANY.
func (g *PriorityGroup) CommonTypeAt(i int) *types.Class {
	c := g.targets.At(i)
	if !c.Agree {
		return nil
	}
	return c.Value
}

// HasSameTypeAt reports whether every overload reaching position i
// declares the same target there.
func (g *PriorityGroup) HasSameTypeAt(i int) bool {
	return g.targets.At(i).Agree
}

// Fold partitions the overloads of one name into priority groups ordered
// by ascending priority. An overload with several priorities appears in
// several groups. Within a group overloads keep their input order.
func Fold(overloads []*Overload) []*PriorityGroup {
	byPriority := make(map[int][]*Overload)
	var priorities []int
	for _, o := range overloads {
		for _, p := range o.priorities {
			if _, ok := byPriority[p]; !ok {
				priorities = append(priorities, p)
			}
			byPriority[p] = append(byPriority[p], o)
		}
	}
	sort.Ints(priorities)
	groups := make([]*PriorityGroup, len(priorities))
	for i, p := range priorities {
		groups[i] = newPriorityGroup(p, byPriority[p])
	}
	return groups
}
