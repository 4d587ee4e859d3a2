// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/sqloverload/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

// TestCastMap sanity checks that every entry of the cast map is registered
// with its method, and is strong exactly when it is implicit.
func TestCastMap(t *testing.T) {
	casts := buildCatalog(t).Casts()
	for fromOID, targets := range castMap {
		from, ok := types.OidToClass[fromOID]
		require.True(t, ok, fromOID)
		for toOID, c := range targets {
			to, ok := types.OidToClass[toOID]
			require.True(t, ok, toOID)
			t.Run(fmt.Sprintf("%s::%s", from, to), func(t *testing.T) {
				got, ok := casts.Cast(from, to)
				require.True(t, ok)
				require.Equal(t, c.context == castContextImplicit, casts.IsStrong(got))
				if from == types.VarChar || to == types.VarChar {
					require.Equal(t, cast.MethodIO, got.Method())
				} else {
					require.Equal(t, cast.DeclaredCast, got.Kind())
					require.Equal(t, c.method, got.Method())
				}
			})
		}
	}
}

func TestNumericPath(t *testing.T) {
	casts := buildCatalog(t).Casts()
	for i := range numericPath {
		for j := i + 1; j < len(numericPath); j++ {
			require.True(t, casts.StronglyCastable(numericPath[i], numericPath[j]))
			require.False(t, casts.StronglyCastable(numericPath[j], numericPath[i]))
		}
	}
	c, _ := casts.Cast(types.Int2, types.Float8)
	require.Equal(t, cast.ChainedCast, c.Kind())
	require.Equal(t, "int2 -> numeric -> float4 -> float8", c.String())

	// Declared jumps keep their preferred targets.
	c, _ = casts.Cast(types.Int4, types.Numeric)
	require.Equal(t, "numeric(10)", c.PreferredTarget(types.Int4.WidestInstance(false)).SQLString())
}
