// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

type standardResolver struct{}

func (standardResolver) ClassByName(name string) (*Class, bool) {
	for _, c := range Standard {
		if strings.EqualFold(c.Name(), name) {
			return c, true
		}
	}
	return nil, false
}

func TestMergePolicies(t *testing.T) {
	testCases := []struct {
		name     string
		merge    MergeFunc
		a, b     Params
		expected Params
	}{
		{"width/larger", MergeWidth, Params{Width: 10}, Params{Width: 20}, Params{Width: 20}},
		{"width/unbounded", MergeWidth, Params{Width: 10}, Params{}, Params{}},
		{"width/charset", MergeWidth, Params{Width: 3, Charset: "utf8"}, Params{Width: 2, Charset: "latin1"}, Params{Width: 3}},
		{"width/same-charset", MergeWidth, Params{Width: 3, Charset: "utf8"}, Params{Width: 2, Charset: "utf8"}, Params{Width: 3, Charset: "utf8"}},
		{"decimal/digits", MergeDecimal, Params{Precision: 10, Scale: 2}, Params{Precision: 5, Scale: 4}, Params{Precision: 12, Scale: 4}},
		{"decimal/unbounded", MergeDecimal, Params{Precision: 10, Scale: 2}, Params{}, Params{Scale: 2}},
		{"none", MergeNone, Params{}, Params{}, Params{}},
		{"charset/differs", MergeCharset, Params{Charset: "utf8"}, Params{Charset: "latin1"}, Params{}},
		{"charset/same", MergeCharset, Params{Charset: "utf8"}, Params{Charset: "utf8"}, Params{Charset: "utf8"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.merge(tc.a, tc.b))
		})
	}
}

func TestMergeInstances(t *testing.T) {
	a := VarChar.Instance(Params{Width: 5}, false /* nullable */)
	b := VarChar.Instance(Params{Width: 8}, true /* nullable */)
	res, err := VarChar.MergeInstances(a, b)
	require.NoError(t, err)
	require.Equal(t, "varchar(8) NULL", res.String())

	// Inputs are never modified.
	require.Equal(t, int32(5), a.Width())
	require.False(t, a.Nullable())

	_, err = VarChar.MergeInstances(a, Int8.WidestInstance(false))
	require.Error(t, err)
	require.True(t, errors.IsAssertionFailure(err))
}

func TestSQLString(t *testing.T) {
	require.Equal(t, "int8", Int8.WidestInstance(false).SQLString())
	require.Equal(t, "varchar", VarChar.WidestInstance(true).SQLString())
	require.Equal(t, "varchar NULL", VarChar.WidestInstance(true).String())
	require.Equal(t, "numeric(10,2)", Numeric.Instance(Params{Precision: 10, Scale: 2}, false).SQLString())
	require.Equal(t, "numeric(7)", Numeric.Instance(Params{Precision: 7}, false).SQLString())
	require.Equal(t, "char(3) CHARACTER SET latin1",
		Char.Instance(Params{Width: 3, Charset: "latin1"}, false).SQLString())
	require.Equal(t, "?", (*T)(nil).String())

	// Type names are safe for reporting.
	require.Equal(t, redact.RedactableString("type int4"),
		redact.Sprintf("type %s", Int4))
}

func TestParseInstance(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		err      string
	}{
		{"int8", "int8", ""},
		{" INT4 ", "int4", ""},
		{"varchar(20)", "varchar(20)", ""},
		{"numeric(10, 2)", "numeric(10,2)", ""},
		{"numeric(10)", "numeric(10)", ""},
		{"numeric(2,10)", "", "scale 10 must be between 0 and precision 2"},
		{"int8(3)", "", "does not accept modifiers"},
		{"varchar(1,2)", "", "accepts a single length"},
		{"varchar(x)", "", "invalid type modifier"},
		{"varchar(3", "", "invalid type name"},
		{"nosuchtype", "", `type "nosuchtype" does not exist`},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			typ, err := ParseInstance(tc.input, standardResolver{})
			if tc.err != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, typ.SQLString())
			require.False(t, typ.Nullable())
		})
	}
}

func TestOidToClass(t *testing.T) {
	for _, c := range Standard {
		require.Same(t, c, OidToClass[c.Oid()])
	}
	require.Equal(t, "bpchar", PGDisplayName(Char))
	require.Equal(t, "int8", PGDisplayName(Int8))
}
