// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalog_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/builtins"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/catalog"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/overload"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, reg *catalog.Registry, name string, specs ...string) string {
	t.Helper()
	args, err := reg.ParseArgs(specs)
	require.NoError(t, err)
	res, err := reg.Resolve(context.Background(), name, args)
	require.NoError(t, err)
	typ, err := res.ResultType()
	require.NoError(t, err)
	return res.String() + " -> " + typ.String()
}

func TestExtend(t *testing.T) {
	ctx := context.Background()
	f, err := catalog.LoadFile("testdata/money.yaml")
	require.NoError(t, err)

	cat := builtins.Catalog()
	before := len(cat.Classes)
	require.NoError(t, cat.Extend(f))
	require.Len(t, cat.Classes, before+1)

	reg, err := cat.Build(ctx)
	require.NoError(t, err)

	money, ok := reg.ClassByName("MONEY")
	require.True(t, ok)
	require.True(t, reg.Casts().StronglyCastable(money, money))
	require.True(t, reg.CastResolver().StrongCastExists(money, money))

	// Money converts through numeric to the float classes.
	c, ok := reg.Casts().Cast(money, reg.Casts().Bridge())
	require.True(t, ok)
	require.Equal(t, cast.MethodIO, c.Method())

	require.Equal(t, "+(money, money) -> money", resolve(t, reg, "+", "money", "money"))
	require.Equal(t, "-(money, money) -> money", resolve(t, reg, "-", "money", "money"))
	require.Equal(t, "=(numeric, numeric(10,2)) -> bool", resolve(t, reg, "=", "money", "numeric(10,2)"))
	require.Equal(t, "cash_words(money) -> varchar", resolve(t, reg, "cash_words", "money"))

	// Builtins keep resolving as before.
	require.Equal(t, "+(int8, int8) -> int8", resolve(t, reg, "+", "int4", "int2"))
}

func TestParse(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		_, err := catalog.Parse([]byte("classes:\n- name: money\n  oid: 790\n  colour: green\n"))
		require.Error(t, err)
		require.Equal(t, pgcode.ConfigFile, pgerror.GetPGCode(err))
		require.Contains(t, err.Error(), "parsing catalog")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.LoadFile("testdata/nonexistent.yaml")
		require.Error(t, err)
		require.Equal(t, pgcode.ConfigFile, pgerror.GetPGCode(err))
	})

	t.Run("marshal", func(t *testing.T) {
		f, err := catalog.LoadFile("testdata/money.yaml")
		require.NoError(t, err)
		data, err := f.Marshal()
		require.NoError(t, err)
		g, err := catalog.Parse(data)
		require.NoError(t, err)
		if diff := cmp.Diff(f, g); diff != "" {
			t.Fatalf("unexpected diff (-loaded +reparsed):\n%s", diff)
		}
	})
}

func TestExtendErrors(t *testing.T) {
	testCases := []struct {
		name string
		file string
		code pgcode.Code
		err  string
	}{
		{
			name: "duplicate class",
			file: "classes:\n- name: INT4\n  oid: 23\n",
			code: pgcode.DuplicateObject,
			err:  "class INT4: already declared",
		},
		{
			name: "unknown cast source",
			file: "casts:\n- source: money\n  target: numeric\n",
			code: pgcode.UndefinedObject,
			err:  `cast money -> numeric: unknown class "money"`,
		},
		{
			name: "unknown bridge",
			file: "bridge: text\n",
			code: pgcode.UndefinedObject,
			err:  `bridge: unknown class "text"`,
		},
		{
			name: "unknown method",
			file: "casts:\n- source: int8\n  target: bool\n  method: magic\n",
			code: pgcode.ConfigFile,
			err:  `cast int8 -> bool: unknown method "magic"`,
		},
		{
			name: "unknown params",
			file: "classes:\n- name: point\n  oid: 600\n  params: coordinates\n",
			code: pgcode.ConfigFile,
			err:  `class point: unknown params "coordinates"`,
		},
		{
			name: "unknown path class",
			file: "paths:\n- [int2, int3, int4]\n",
			code: pgcode.UndefinedObject,
			err:  `path 1: unknown class "int3"`,
		},
		{
			name: "unknown input class",
			file: "functions:\n- names: [f]\n  inputs:\n  - type: money\n    positions: [0]\n",
			code: pgcode.UndefinedObject,
			err:  `function f: input 1: unknown class "money"`,
		},
		{
			name: "unknown result type",
			file: "functions:\n- names: [f]\n  result: money\n",
			code: pgcode.UndefinedObject,
			err:  `function f: result: type "money" does not exist`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := catalog.Parse([]byte(tc.file))
			require.NoError(t, err)
			cat := builtins.Catalog()
			before := cat.Clone()
			err = cat.Extend(f)
			require.Error(t, err)
			require.Equal(t, tc.code, pgerror.GetPGCode(err))
			require.EqualError(t, err, tc.err)
			// A failed extension leaves the catalog untouched.
			require.Equal(t, len(before.Classes), len(cat.Classes))
			require.Equal(t, len(before.Casts), len(cat.Casts))
			require.Equal(t, len(before.Overloads), len(cat.Overloads))
		})
	}
}

func TestBuildErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("strong cycle", func(t *testing.T) {
		f, err := catalog.Parse([]byte("strong:\n- source: numeric\n  target: int8\n"))
		require.NoError(t, err)
		cat := builtins.Catalog()
		require.NoError(t, cat.Extend(f))
		_, err = cat.Build(ctx)
		require.Error(t, err)
		require.True(t, errors.Is(err, cast.ErrStrongCastCycle))
		require.Equal(t, pgcode.InvalidObjectDefinition, pgerror.GetPGCode(err))
		require.Contains(t, err.Error(), "building cast graph: strong casts form a cycle")
	})

	t.Run("duplicate cast", func(t *testing.T) {
		f, err := catalog.Parse([]byte("casts:\n- source: int4\n  target: int8\n"))
		require.NoError(t, err)
		cat := builtins.Catalog()
		require.NoError(t, cat.Extend(f))
		_, err = cat.Build(ctx)
		require.True(t, errors.Is(err, cast.ErrDuplicateCast))
	})

	t.Run("invalid overload", func(t *testing.T) {
		f, err := catalog.Parse([]byte("functions:\n- names: [f]\n  inputs:\n  - type: int4\n    positions: [1]\n  result: int4\n"))
		require.NoError(t, err)
		cat := builtins.Catalog()
		require.NoError(t, cat.Extend(f))
		_, err = cat.Build(ctx)
		require.True(t, errors.Is(err, overload.ErrInvalidOverload))
	})
}

func TestParseArgs(t *testing.T) {
	reg, err := builtins.Catalog().Build(context.Background())
	require.NoError(t, err)

	args, err := reg.ParseArgs([]string{"?", "NULL", "varchar(3)", "numeric(10,2)"})
	require.NoError(t, err)
	require.True(t, args[0].IsUnknown())
	require.True(t, args[1].IsUnknown())
	require.Equal(t, "varchar(3)", args[2].String())
	require.Equal(t, "numeric(10,2)", args[3].String())

	_, err = reg.ParseArgs([]string{"int4", "nosuch"})
	require.EqualError(t, err, `argument 2: type "nosuch" does not exist`)
	require.Equal(t, pgcode.UndefinedObject, pgerror.GetPGCode(err))
}
