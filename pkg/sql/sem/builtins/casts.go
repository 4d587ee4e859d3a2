// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
	"github.com/lib/pq/oid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// castContext specifies how a given castable can be used.
// A higher value corresponds to a higher strictness.
type castContext uint8

const (
	_ castContext = iota
	// castContextImplicit implies the cast can be set implicitly
	// in any context. Such casts are registered as strong.
	castContextImplicit
	// castContextAssignment implies that the cast can done implicitly
	// in assign contexts (e.g. on UPDATE and INSERT).
	castContextAssignment
	// castContextExplicit implies that the cast can only be used
	// in an explicit context.
	castContextExplicit
)

// castable defines how a source class converts to a target class.
type castable struct {
	method    cast.Method
	context   castContext
	preferred cast.PreferredFunc
}

// numericOf returns a PreferredFunc producing NUMERIC(digits), the
// narrowest numeric holding every value of an integer class.
func numericOf(digits int32) cast.PreferredFunc {
	return func(src *types.T, target *types.Class) *types.T {
		return target.Instance(types.Params{Precision: digits}, src.Nullable())
	}
}

// castMap defines which standard classes can be cast to which others.
// The map goes from src oid -> target oid -> castable.
// Adapted from `pg_cast.dat` from postgres, restricted to the standard
// classes. Integer widenings past the next size up, and casts into the
// float classes, are omitted: they are derived from the numeric cast path.
// Conversions to and from varchar only carry their context, since every
// class with a text form already converts through it.
var castMap = map[oid.Oid]map[oid.Oid]castable{
	oid.T_bool: {
		oid.T_bpchar:  {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int4:    {method: cast.MethodFunc, context: castContextExplicit},
		oid.T_varchar: {method: cast.MethodFunc, context: castContextAssignment},
	},
	oid.T_bpchar: {
		oid.T_varchar: {method: cast.MethodFunc, context: castContextImplicit},
	},
	oid.T_date: {
		oid.T_timestamp:   {method: cast.MethodFunc, context: castContextImplicit},
		oid.T_timestamptz: {method: cast.MethodFunc, context: castContextImplicit},
	},
	oid.T_float4: {
		oid.T_float8:  {method: cast.MethodFunc, context: castContextImplicit},
		oid.T_int2:    {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int4:    {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int8:    {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_numeric: {method: cast.MethodFunc, context: castContextAssignment},
	},
	oid.T_float8: {
		oid.T_float4:  {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int2:    {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int4:    {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int8:    {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_numeric: {method: cast.MethodFunc, context: castContextAssignment},
	},
	oid.T_int2: {
		oid.T_int4:    {method: cast.MethodFunc, context: castContextImplicit},
		oid.T_numeric: {method: cast.MethodFunc, context: castContextImplicit, preferred: numericOf(5)},
	},
	oid.T_int4: {
		oid.T_bool:    {method: cast.MethodFunc, context: castContextExplicit},
		oid.T_int2:    {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int8:    {method: cast.MethodFunc, context: castContextImplicit},
		oid.T_numeric: {method: cast.MethodFunc, context: castContextImplicit, preferred: numericOf(10)},
	},
	oid.T_int8: {
		oid.T_int2:    {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int4:    {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_numeric: {method: cast.MethodFunc, context: castContextImplicit, preferred: numericOf(19)},
	},
	oid.T_interval: {},
	oid.T_jsonb: {
		oid.T_bool:    {method: cast.MethodFunc, context: castContextExplicit},
		oid.T_float8:  {method: cast.MethodFunc, context: castContextExplicit},
		oid.T_int4:    {method: cast.MethodFunc, context: castContextExplicit},
		oid.T_int8:    {method: cast.MethodFunc, context: castContextExplicit},
		oid.T_numeric: {method: cast.MethodFunc, context: castContextExplicit},
	},
	oid.T_numeric: {
		oid.T_float4: {method: cast.MethodFunc, context: castContextImplicit},
		oid.T_int2:   {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int4:   {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_int8:   {method: cast.MethodFunc, context: castContextAssignment},
	},
	oid.T_timestamp: {
		oid.T_date:        {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_timestamptz: {method: cast.MethodFunc, context: castContextImplicit},
	},
	oid.T_timestamptz: {
		oid.T_date:      {method: cast.MethodFunc, context: castContextAssignment},
		oid.T_timestamp: {method: cast.MethodFunc, context: castContextAssignment},
	},
	oid.T_varchar: {
		oid.T_bpchar: {method: cast.MethodFunc, context: castContextAssignment},
	},
}

// numericPath is the chain of implicit numeric widenings. Every forward
// pair along it converts through the intermediate classes.
var numericPath = []*types.Class{
	types.Int2, types.Int4, types.Int8, types.Numeric, types.Float4, types.Float8,
}

// castDeclarations translates castMap into cast declarations and strong
// markers. Pairs involving the bridge class are left to the bridge casts
// every class with a text form gets; only their strength is carried over.
func castDeclarations(bridge *types.Class) ([]cast.Declared, []cast.Pair) {
	var decls []cast.Declared
	var strong []cast.Pair
	sources := maps.Keys(castMap)
	slices.Sort(sources)
	for _, src := range sources {
		targets := maps.Keys(castMap[src])
		slices.Sort(targets)
		for _, tgt := range targets {
			c := castMap[src][tgt]
			s, t := types.OidToClass[src], types.OidToClass[tgt]
			if c.context == castContextImplicit {
				strong = append(strong, cast.Pair{Source: s, Target: t})
			}
			if (s == bridge && t.HasTextIO()) || (t == bridge && s.HasTextIO()) {
				continue
			}
			decls = append(decls, cast.Declared{
				Source:    s,
				Target:    t,
				Method:    c.method,
				Preferred: c.preferred,
			})
		}
	}
	return decls, strong
}
