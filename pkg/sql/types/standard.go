// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import "github.com/lib/pq/oid"

// The standard SQL type classes. Catalogs are free to declare additional
// classes; these are the ones the builtin catalog registers.
var (
	// Bool is the class of boolean values.
	Bool = NewClass("bool", oid.T_bool)
	// Int2 is the class of 2-byte integers.
	Int2 = NewClass("int2", oid.T_int2)
	// Int4 is the class of 4-byte integers.
	Int4 = NewClass("int4", oid.T_int4)
	// Int8 is the class of 8-byte integers.
	Int8 = NewClass("int8", oid.T_int8)
	// Numeric is the class of exact decimal numbers.
	Numeric = NewClass("numeric", oid.T_numeric,
		WithParams(PrecisionScaleParams, Params{}, MergeDecimal))
	// Float4 is the class of single precision floats.
	Float4 = NewClass("float4", oid.T_float4)
	// Float8 is the class of double precision floats.
	Float8 = NewClass("float8", oid.T_float8)
	// VarChar is the class of variable-length strings. It is the bridge
	// class of the builtin catalog.
	VarChar = NewClass("varchar", oid.T_varchar,
		WithParams(WidthParam, Params{}, MergeWidth))
	// Char is the class of blank-padded fixed-length strings.
	Char = NewClass("char", oid.T_bpchar,
		WithParams(WidthParam, Params{}, MergeWidth))
	// Date is the class of calendar dates.
	Date = NewClass("date", oid.T_date)
	// Timestamp is the class of timestamps without time zone.
	Timestamp = NewClass("timestamp", oid.T_timestamp)
	// TimestampTZ is the class of timestamps with time zone.
	TimestampTZ = NewClass("timestamptz", oid.T_timestamptz)
	// Interval is the class of time spans.
	Interval = NewClass("interval", oid.T_interval)
	// Bytes is the class of binary strings.
	Bytes = NewClass("bytea", oid.T_bytea,
		WithParams(WidthParam, Params{}, MergeWidth))
	// UUID is the class of universally unique identifiers.
	UUID = NewClass("uuid", oid.T_uuid)
	// Jsonb is the class of binary JSON documents.
	Jsonb = NewClass("jsonb", oid.T_jsonb)
)

// Standard lists the standard classes in declaration order.
var Standard = []*Class{
	Bool,
	Int2,
	Int4,
	Int8,
	Numeric,
	Float4,
	Float8,
	VarChar,
	Char,
	Date,
	Timestamp,
	TimestampTZ,
	Interval,
	Bytes,
	UUID,
	Jsonb,
}
