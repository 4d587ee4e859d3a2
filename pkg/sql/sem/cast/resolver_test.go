// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cast

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestCommonClass(t *testing.T) {
	r := NewResolver(mustRegistry(t, numericDecls()))

	testCases := []struct {
		a, b     *types.Class
		expected *types.Class
	}{
		{types.Int4, types.Int4, types.Int4},
		{nil, types.Int4, types.Int4},
		{types.Numeric, nil, types.Numeric},
		{types.Int2, types.Int8, types.Int8},
		{types.Int8, types.Int2, types.Int8},
		{types.Int4, types.Numeric, types.Numeric},
		{types.Float8, types.Int2, types.Float8},
	}
	for _, tc := range testCases {
		got, err := r.CommonClass(tc.a, tc.b)
		require.NoError(t, err)
		require.Equalf(t, tc.expected, got, "%s, %s", tc.a, tc.b)
	}

	// Commutativity over every registered pair.
	for _, a := range r.Registry().Classes() {
		for _, b := range r.Registry().Classes() {
			ab, errAB := r.CommonClass(a, b)
			ba, errBA := r.CommonClass(b, a)
			require.Equal(t, errAB == nil, errBA == nil)
			require.Equal(t, ab, ba)
		}
	}
}

func TestCommonClassErrors(t *testing.T) {
	r := NewResolver(mustRegistry(t, numericDecls()))

	_, err := r.CommonClass(nil, nil)
	require.True(t, errors.HasAssertionFailure(err))

	_, err = r.CommonClass(types.Bool, types.Int4)
	require.True(t, errors.Is(err, ErrNoCommonType))
	require.False(t, errors.Is(err, ErrAmbiguousCommonType))
	require.Equal(t, pgcode.DatatypeMismatch, pgerror.GetPGCode(err))
	require.EqualError(t, err, "bool and int4 cannot be matched")
}

func TestCommonClassAmbiguous(t *testing.T) {
	a := types.NewClass("a", oid.Oid(90001))
	b := types.NewClass("b", oid.Oid(90002))
	x := types.NewClass("x", oid.Oid(90003))
	y := types.NewClass("y", oid.Oid(90004))
	reg := mustRegistry(t, Declarations{
		Classes: []*types.Class{a, b, x, y, types.VarChar},
		Bridge:  types.VarChar,
		Casts: []Declared{
			{Source: a, Target: x}, {Source: a, Target: y},
			{Source: b, Target: x}, {Source: b, Target: y},
		},
		Strong: []Pair{{a, x}, {a, y}, {b, x}, {b, y}},
	})
	r := NewResolver(reg)

	_, err := r.CommonClass(a, b)
	require.True(t, errors.Is(err, ErrAmbiguousCommonType))
	require.True(t, errors.Is(err, ErrNoCommonType))
	require.Equal(t, pgcode.DatatypeMismatch, pgerror.GetPGCode(err))
	require.EqualError(t, err, "no unique common type for a and b")
	require.Equal(t, "equally specific candidates: x, y", errors.FlattenDetails(err))

	got, err := r.CommonClass(a, x)
	require.NoError(t, err)
	require.Equal(t, x, got)
	require.True(t, r.StrongCastExists(a, y))
	require.False(t, r.StrongCastExists(x, y))
}
