// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package overload

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/sqloverload/pkg/sql/types"
)

// InputSet is a subset of an overload's argument positions that share one
// resolution rule.
type InputSet struct {
	// Target is the class every covered input converts to. A nil target
	// means ANY: the class is inferred from the inputs themselves.
	Target *types.Class
	// Positions are the fixed argument positions covered, ascending.
	Positions []int
	// Vararg sets additionally cover every position past the overload's
	// fixed arity.
	Vararg bool
	// Exact forbids implicit casts: a known input must be of the target
	// class, or for ANY sets, of the class of the first known input.
	Exact bool
	// Picking marks the set whose resolved instance shapes the result.
	Picking bool
}

// Input returns a set converting the inputs at the given positions to
// target.
func Input(target *types.Class, positions ...int) InputSet {
	return InputSet{Target: target, Positions: positions}
}

// AnyInput returns a set whose class is inferred from the inputs at the
// given positions.
func AnyInput(positions ...int) InputSet {
	return InputSet{Positions: positions}
}

// AsVararg returns a copy of the set covering every trailing position.
func (s InputSet) AsVararg() InputSet {
	s.Vararg = true
	return s
}

// AsExact returns a copy of the set that forbids implicit casts.
func (s InputSet) AsExact() InputSet {
	s.Exact = true
	return s
}

// AsPicking returns a copy of the set marked as result-shaping.
func (s InputSet) AsPicking() InputSet {
	s.Picking = true
	return s
}

// IsAny reports whether the set infers its class from its inputs.
func (s InputSet) IsAny() bool { return s.Target == nil }

// covered returns the positions the set covers in a call with n arguments
// against an overload of the given fixed arity.
func (s InputSet) covered(fixedArity, n int) []int {
	if !s.Vararg || n <= fixedArity {
		return s.Positions
	}
	out := make([]int, 0, len(s.Positions)+n-fixedArity)
	out = append(out, s.Positions...)
	for i := fixedArity; i < n; i++ {
		out = append(out, i)
	}
	return out
}

// typeName is the name used for the set in signatures.
func (s InputSet) typeName() string {
	if s.Target == nil {
		return "anyelement"
	}
	return s.Target.Name()
}

func (s InputSet) String() string {
	var b strings.Builder
	b.WriteString(s.typeName())
	b.WriteByte('[')
	for i, p := range s.Positions {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(p))
	}
	if s.Vararg {
		if len(s.Positions) > 0 {
			b.WriteByte(',')
		}
		b.WriteString("...")
	}
	b.WriteByte(']')
	if s.Exact {
		b.WriteString(" exact")
	}
	if s.Picking {
		b.WriteString(" picking")
	}
	return b.String()
}
