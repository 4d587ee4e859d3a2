// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package overload implements function overload resolution: grouping the
// overloads of a name into priority tiers, filtering them against the
// static types of a call's arguments, breaking ties by cast specificity,
// and computing the concrete parameter instances of the winner.
package overload

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
)

// Definition declares an overload.
type Definition struct {
	// Names are the case-insensitive names the overload is called by.
	Names []string
	// Priorities are the tiers the overload is tried in, lowest first.
	// Defaults to a single priority of zero.
	Priorities []int
	// Inputs must cover the positions 0..n-1 exactly once, plus at most
	// one vararg set.
	Inputs []InputSet
	// Result defaults to Picked when a picking input set exists.
	Result ResultTyper
	// Info is a human-readable description.
	Info string
}

// Overload is a validated, immutable overload.
type Overload struct {
	names      []string
	priorities []int
	inputs     []InputSet
	result     ResultTyper
	info       string

	fixedArity int
	// byPosition[i] is the index in inputs of the set covering fixed
	// position i.
	byPosition []int
	vararg     int
	picking    int
}

// New validates a definition.
func New(def Definition) (*Overload, error) {
	o := &Overload{
		names:      append([]string(nil), def.Names...),
		priorities: append([]int(nil), def.Priorities...),
		inputs:     make([]InputSet, len(def.Inputs)),
		result:     def.Result,
		info:       def.Info,
		vararg:     -1,
		picking:    -1,
	}
	if len(o.names) == 0 {
		return nil, invalidOverloadf("overload has no name")
	}
	for _, n := range o.names {
		if strings.TrimSpace(n) == "" {
			return nil, invalidOverloadf("overload %s has an empty name", o.names[0])
		}
	}
	if len(o.priorities) == 0 {
		o.priorities = []int{0}
	}
	sort.Ints(o.priorities)
	for i := 1; i < len(o.priorities); i++ {
		if o.priorities[i] == o.priorities[i-1] {
			return nil, invalidOverloadf("overload %s: duplicate priority %d", o.names[0], o.priorities[i])
		}
	}

	for i, s := range def.Inputs {
		s.Positions = append([]int(nil), s.Positions...)
		sort.Ints(s.Positions)
		o.inputs[i] = s
	}
	// Corresponding input sets of two overloads are compared by index, so
	// order them by their first position, vararg-only sets last.
	sort.SliceStable(o.inputs, func(i, j int) bool {
		a, b := o.inputs[i].Positions, o.inputs[j].Positions
		switch {
		case len(a) == 0:
			return false
		case len(b) == 0:
			return true
		}
		return a[0] < b[0]
	})

	covered := make(map[int]int)
	for idx, s := range o.inputs {
		if len(s.Positions) == 0 && !s.Vararg {
			return nil, invalidOverloadf("overload %s: input set %d covers no positions", o.names[0], idx)
		}
		for _, p := range s.Positions {
			if p < 0 {
				return nil, invalidOverloadf("overload %s: negative position %d", o.names[0], p)
			}
			if _, ok := covered[p]; ok {
				return nil, invalidOverloadf("overload %s: position %d is covered by more than one input set", o.names[0], p)
			}
			covered[p] = idx
			if p+1 > o.fixedArity {
				o.fixedArity = p + 1
			}
		}
		if s.Vararg {
			if o.vararg >= 0 {
				return nil, invalidOverloadf("overload %s: more than one vararg input set", o.names[0])
			}
			o.vararg = idx
		}
		if s.Picking {
			if o.picking >= 0 {
				return nil, invalidOverloadf("overload %s: more than one picking input set", o.names[0])
			}
			o.picking = idx
		}
	}
	o.byPosition = make([]int, o.fixedArity)
	for p := 0; p < o.fixedArity; p++ {
		idx, ok := covered[p]
		if !ok {
			return nil, invalidOverloadf("overload %s: position %d is not covered by any input set", o.names[0], p)
		}
		o.byPosition[p] = idx
	}
	if o.vararg >= 0 {
		// The vararg set's fixed positions, if any, must run up to the last
		// fixed position so that it covers one contiguous tail.
		ps := o.inputs[o.vararg].Positions
		for i, p := range ps {
			if p != o.fixedArity-len(ps)+i {
				return nil, invalidOverloadf("overload %s: vararg input set must cover the trailing positions", o.names[0])
			}
		}
	}

	if o.result == nil {
		if o.picking < 0 {
			return nil, invalidOverloadf("overload %s has no result type", o.names[0])
		}
		o.result = Picked()
	}
	if _, ok := o.result.(pickedResult); ok && o.picking < 0 {
		return nil, invalidOverloadf("overload %s: picked result requires a picking input set", o.names[0])
	}
	return o, nil
}

// MustNew is like New but panics on an invalid definition. It is meant for
// statically declared catalogs.
func MustNew(def Definition) *Overload {
	o, err := New(def)
	if err != nil {
		panic(err)
	}
	return o
}

func invalidOverloadf(format string, args ...interface{}) error {
	return errors.Mark(
		pgerror.NewWithDepthf(1, pgcode.InvalidFunctionDefinition, format, args...),
		ErrInvalidOverload)
}

// Names returns the names the overload is registered under.
func (o *Overload) Names() []string { return o.names }

// Priorities returns the priorities of the overload, ascending.
func (o *Overload) Priorities() []int { return o.priorities }

// Inputs returns the input sets ordered by first covered position.
func (o *Overload) Inputs() []InputSet { return o.inputs }

// Info returns the description of the overload.
func (o *Overload) Info() string { return o.info }

// Result returns the result typer.
func (o *Overload) Result() ResultTyper { return o.result }

// FixedArity is the number of positions covered by the input sets'
// fixed positions.
func (o *Overload) FixedArity() int { return o.fixedArity }

// IsVararg reports whether the overload has a vararg input set.
func (o *Overload) IsVararg() bool { return o.vararg >= 0 }

// AcceptsArity reports whether a call with n arguments matches the
// overload's arity.
func (o *Overload) AcceptsArity(n int) bool {
	if o.vararg >= 0 {
		return n >= o.fixedArity
	}
	return n == o.fixedArity
}

// inputAt returns the index of the input set covering position i, or -1.
func (o *Overload) inputAt(i int) int {
	if i < o.fixedArity {
		return o.byPosition[i]
	}
	return o.vararg
}

// Signature formats the overload's parameters as called by name.
func (o *Overload) Signature(name string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i := 0; i < o.fixedArity; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(o.inputs[o.byPosition[i]].typeName())
	}
	if o.vararg >= 0 {
		if o.fixedArity > 0 {
			b.WriteString(", ")
		}
		b.WriteString(o.inputs[o.vararg].typeName())
		b.WriteString("...")
	}
	b.WriteByte(')')
	if f, ok := o.result.(fixedResult); ok {
		b.WriteString(" -> ")
		b.WriteString(f.typ.SQLString())
	}
	return b.String()
}

func (o *Overload) String() string {
	return o.Signature(o.names[0])
}
