// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package overload

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	boolResult := Fixed(types.Bool.WidestInstance(false))
	testCases := []struct {
		name string
		def  Definition
		err  string
	}{
		{
			name: "no name",
			def:  Definition{Inputs: []InputSet{Input(types.Int4, 0)}, Result: boolResult},
			err:  "overload has no name",
		},
		{
			name: "duplicate priority",
			def: Definition{Names: []string{"f"}, Priorities: []int{1, 1},
				Inputs: []InputSet{Input(types.Int4, 0)}, Result: boolResult},
			err: "overload f: duplicate priority 1",
		},
		{
			name: "gap",
			def: Definition{Names: []string{"f"},
				Inputs: []InputSet{Input(types.Int4, 0), Input(types.Int4, 2)}, Result: boolResult},
			err: "overload f: position 1 is not covered by any input set",
		},
		{
			name: "overlap",
			def: Definition{Names: []string{"f"},
				Inputs: []InputSet{Input(types.Int4, 0, 1), Input(types.Int8, 1)}, Result: boolResult},
			err: "overload f: position 1 is covered by more than one input set",
		},
		{
			name: "two varargs",
			def: Definition{Names: []string{"f"},
				Inputs: []InputSet{Input(types.Int4).AsVararg(), AnyInput().AsVararg()}, Result: boolResult},
			err: "overload f: more than one vararg input set",
		},
		{
			name: "vararg before fixed",
			def: Definition{Names: []string{"f"},
				Inputs: []InputSet{Input(types.Int4, 0).AsVararg(), Input(types.Int8, 1)}, Result: boolResult},
			err: "overload f: vararg input set must cover the trailing positions",
		},
		{
			name: "two picking",
			def: Definition{Names: []string{"f"},
				Inputs: []InputSet{AnyInput(0).AsPicking(), Input(types.Int8, 1).AsPicking()}},
			err: "overload f: more than one picking input set",
		},
		{
			name: "empty set",
			def: Definition{Names: []string{"f"},
				Inputs: []InputSet{Input(types.Int4, 0), Input(types.Int8)}, Result: boolResult},
			err: "overload f: input set 1 covers no positions",
		},
		{
			name: "no result",
			def:  Definition{Names: []string{"f"}, Inputs: []InputSet{Input(types.Int4, 0)}},
			err:  "overload f has no result type",
		},
		{
			name: "picked without picking",
			def: Definition{Names: []string{"f"},
				Inputs: []InputSet{Input(types.Int4, 0)}, Result: Picked()},
			err: "overload f: picked result requires a picking input set",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.def)
			require.EqualError(t, err, tc.err)
			require.True(t, errors.Is(err, ErrInvalidOverload))
			require.Equal(t, pgcode.InvalidFunctionDefinition, pgerror.GetPGCode(err))
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	o := MustNew(Definition{
		Names: []string{"substring"},
		Inputs: []InputSet{
			Input(types.Int4, 2, 1),
			Input(types.VarChar, 0).AsPicking(),
		},
	})
	require.Equal(t, 3, o.FixedArity())
	require.False(t, o.IsVararg())
	require.Equal(t, []int{0}, o.Inputs()[0].Positions)
	require.Equal(t, []int{1, 2}, o.Inputs()[1].Positions)
	require.Equal(t, []int{0}, o.Priorities())
	require.Equal(t, "substring(varchar, int4, int4)", o.String())

	v := MustNew(Definition{
		Names:  []string{"concat"},
		Inputs: []InputSet{Input(types.VarChar, 0).AsVararg()},
		Result: Fixed(types.VarChar.WidestInstance(false)),
	})
	require.Equal(t, "concat(varchar, varchar...) -> varchar", v.String())
	require.False(t, v.AcceptsArity(0))
	require.True(t, v.AcceptsArity(1))
	require.True(t, v.AcceptsArity(5))
	require.Equal(t, "varchar[0,...]", v.Inputs()[0].String())
}

func TestFoldPositions(t *testing.T) {
	boolResult := Fixed(types.Bool.WidestInstance(false))
	a := MustNew(Definition{Names: []string{"f"},
		Inputs: []InputSet{Input(types.Int4, 0), Input(types.Int8, 1)}, Result: boolResult})
	b := MustNew(Definition{Names: []string{"f"},
		Inputs: []InputSet{Input(types.Int4, 0), Input(types.VarChar, 1).AsVararg()}, Result: boolResult})
	c := MustNew(Definition{Names: []string{"f"},
		Inputs: []InputSet{Input(types.Int4, 0, 1, 2)}, Result: boolResult})

	targets := FoldPositions([]*Overload{a, b, c},
		func(s InputSet) *types.Class { return s.Target }, Equal[*types.Class])
	require.Len(t, targets.Fixed, 3)
	require.Equal(t, Cell[*types.Class]{Value: types.Int4, Observed: true, Agree: true}, targets.At(0))
	require.False(t, targets.At(1).Agree)
	require.Nil(t, targets.At(1).Value)
	// Position 2 is reached by b's vararg set and c.
	require.False(t, targets.At(2).Agree)
	// Only b reaches past the fixed positions.
	require.Equal(t, Cell[*types.Class]{Value: types.VarChar, Observed: true, Agree: true}, targets.At(7))

	// Without vararg overloads the tail is never observed.
	arity := FoldPositions([]*Overload{a, c},
		func(s InputSet) int { return len(s.Positions) },
		func(x, y int) (int, bool) { return max(x, y), true })
	require.Equal(t, 3, arity.At(0).Value)
	require.Equal(t, 3, arity.At(2).Value)
	require.False(t, arity.At(3).Observed)
}

func TestPriorityGroups(t *testing.T) {
	boolResult := Fixed(types.Bool.WidestInstance(false))
	lo := MustNew(Definition{Names: []string{"f"},
		Inputs: []InputSet{Input(types.Int8, 0), Input(types.Int8, 1)}, Result: boolResult})
	lo2 := MustNew(Definition{Names: []string{"f"},
		Inputs: []InputSet{Input(types.Numeric, 0), Input(types.Int8, 1)}, Result: boolResult})
	both := MustNew(Definition{Names: []string{"f"}, Priorities: []int{2, 0},
		Inputs: []InputSet{AnyInput(0, 1).AsExact()}, Result: boolResult})

	groups := Fold([]*Overload{lo, both, lo2})
	require.Len(t, groups, 2)
	require.Equal(t, 0, groups[0].Priority)
	require.Equal(t, []*Overload{lo, both, lo2}, groups[0].Overloads)
	require.Equal(t, 2, groups[1].Priority)
	require.Equal(t, []*Overload{both}, groups[1].Overloads)

	require.False(t, groups[0].HasSameTypeAt(0))
	require.Nil(t, groups[0].CommonTypeAt(0))
	require.False(t, groups[0].HasSameTypeAt(1))

	require.True(t, groups[1].HasSameTypeAt(0))
	// ANY sets agree but carry no class.
	require.Nil(t, groups[1].CommonTypeAt(0))

	g := Fold([]*Overload{lo})[0]
	require.True(t, g.HasSameTypeAt(1))
	require.Equal(t, types.Int8, g.CommonTypeAt(1))
	require.False(t, g.HasSameTypeAt(2))
}
