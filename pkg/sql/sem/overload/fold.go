// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package overload

// Cell is the folded value of a per-position attribute.
type Cell[T any] struct {
	// Value is meaningful only when Agree is set.
	Value T
	// Observed is set once any overload contributed to the cell.
	Observed bool
	// Agree is cleared as soon as two contributions fail to combine.
	Agree bool
}

func (c *Cell[T]) add(v T, combine func(a, b T) (T, bool)) {
	if !c.Observed {
		c.Value, c.Observed, c.Agree = v, true, true
		return
	}
	if !c.Agree {
		return
	}
	var ok bool
	if c.Value, ok = combine(c.Value, v); !ok {
		var zero T
		c.Value, c.Agree = zero, false
	}
}

// Positional holds one Cell per fixed position and a single Tail cell
// standing for every position past them.
type Positional[T any] struct {
	Fixed []Cell[T]
	Tail  Cell[T]
}

// At returns the cell for position i.
func (p *Positional[T]) At(i int) Cell[T] {
	if i < len(p.Fixed) {
		return p.Fixed[i]
	}
	return p.Tail
}

// FoldPositions folds a per-input-set attribute across overloads, position
// by position. Each cell is seeded with the first contribution and then
// combined pairwise; a failed combination collapses the cell to
// disagreement. An overload contributes to position i through the input
// set covering it, which past its fixed arity is its vararg set, if any.
// Only vararg sets contribute to the tail.
func FoldPositions[T any](
	overloads []*Overload, attr func(InputSet) T, combine func(a, b T) (T, bool),
) Positional[T] {
	var width int
	for _, o := range overloads {
		if o.fixedArity > width {
			width = o.fixedArity
		}
	}
	p := Positional[T]{Fixed: make([]Cell[T], width)}
	for _, o := range overloads {
		for i := range p.Fixed {
			if idx := o.inputAt(i); idx >= 0 {
				p.Fixed[i].add(attr(o.inputs[idx]), combine)
			}
		}
		if o.vararg >= 0 {
			p.Tail.add(attr(o.inputs[o.vararg]), combine)
		}
	}
	return p
}

// Equal is a combine function for FoldPositions that keeps the value
// while contributions are equal.
func Equal[T comparable](a, b T) (T, bool) {
	return a, a == b
}
