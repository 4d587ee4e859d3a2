// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
)

func initOperatorBuiltins() {
	registerBuiltins(operators)
}

// comparableClasses have comparison operators at the first priority. Narrower
// classes reach them through strong casts.
var comparableClasses = []*types.Class{
	types.Bool,
	types.Int8,
	types.Numeric,
	types.Float8,
	types.VarChar,
	types.Bytes,
	types.Date,
	types.Timestamp,
	types.TimestampTZ,
	types.Interval,
	types.UUID,
}

// arithmeticClasses have the four arithmetic operators.
var arithmeticClasses = []*types.Class{types.Int8, types.Numeric, types.Float8}

// sameTypeComparison compares two inputs of one class.
func sameTypeComparison(c *types.Class) overload.Definition {
	return overload.Definition{
		Inputs: []overload.InputSet{overload.Input(c, 0, 1)},
		Result: fixed(types.Bool),
		Info:   "Compares two " + c.Name() + " values.",
	}
}

// exactComparison compares two inputs of any one class, as long as both
// have it without casts. It is tried after the typed comparisons.
func exactComparison() overload.Definition {
	return overload.Definition{
		Priorities: []int{1},
		Inputs:     []overload.InputSet{overload.AnyInput(0, 1).AsExact()},
		Result:     fixed(types.Bool),
		Info:       "Compares two values of the same type.",
	}
}

// sameTypeArithmetic combines two inputs of one class into a result whose
// parameters cover both.
func sameTypeArithmetic(c *types.Class) overload.Definition {
	return overload.Definition{
		Inputs: []overload.InputSet{overload.Input(c, 0, 1).AsPicking()},
		Info:   "Arithmetic on two " + c.Name() + " values.",
	}
}

func comparison() builtinDefinition {
	def := collectOverloads(functionProperties{Category: categoryComparison},
		comparableClasses, sameTypeComparison)
	def.overloads = append(def.overloads, exactComparison())
	return def
}

func arithmetic(extra ...overload.Definition) builtinDefinition {
	def := collectOverloads(functionProperties{Category: categoryMath},
		arithmeticClasses, sameTypeArithmetic)
	def.overloads = append(def.overloads, extra...)
	return def
}

var operators = map[string]builtinDefinition{
	"=":  comparison(),
	"<>": comparison(),
	"<":  comparison(),
	"<=": comparison(),
	">":  comparison(),
	">=": comparison(),

	"+": arithmetic(
		binary(types.Date, types.Int4, types.Date, "Adds days to a date."),
		binary(types.Int4, types.Date, types.Date, "Adds days to a date."),
		binary(types.Timestamp, types.Interval, types.Timestamp, "Adds an interval to a timestamp."),
		binary(types.TimestampTZ, types.Interval, types.TimestampTZ, "Adds an interval to a timestamp."),
		binary(types.Interval, types.Interval, types.Interval, "Adds two intervals."),
	),
	"-": arithmetic(
		binary(types.Date, types.Date, types.Int4, "Returns the number of days between two dates."),
		binary(types.Date, types.Int4, types.Date, "Subtracts days from a date."),
		binary(types.Timestamp, types.Timestamp, types.Interval, "Returns the interval between two timestamps."),
		binary(types.TimestampTZ, types.TimestampTZ, types.Interval, "Returns the interval between two timestamps."),
		binary(types.Timestamp, types.Interval, types.Timestamp, "Subtracts an interval from a timestamp."),
		binary(types.TimestampTZ, types.Interval, types.TimestampTZ, "Subtracts an interval from a timestamp."),
		binary(types.Interval, types.Interval, types.Interval, "Subtracts two intervals."),
	),
	"*": arithmetic(
		binary(types.Interval, types.Float8, types.Interval, "Scales an interval."),
		binary(types.Float8, types.Interval, types.Interval, "Scales an interval."),
	),
	"/": arithmetic(
		binary(types.Interval, types.Float8, types.Interval, "Divides an interval."),
	),

	"||": makeBuiltin(
		functionProperties{Category: categoryString},
		overload.Definition{
			Inputs: []overload.InputSet{overload.Input(types.VarChar, 0, 1)},
			Result: fixed(types.VarChar),
			Info:   "Concatenates two strings.",
		},
		overload.Definition{
			Inputs: []overload.InputSet{overload.Input(types.Bytes, 0, 1)},
			Result: fixed(types.Bytes),
			Info:   "Concatenates two byte strings.",
		},
		overload.Definition{
			Priorities: []int{1},
			Inputs:     []overload.InputSet{overload.Input(types.VarChar, 0), overload.AnyInput(1)},
			Result:     fixed(types.VarChar),
			Info:       "Concatenates a string and the text form of a value.",
		},
		overload.Definition{
			Priorities: []int{2},
			Inputs:     []overload.InputSet{overload.AnyInput(0), overload.Input(types.VarChar, 1)},
			Result:     fixed(types.VarChar),
			Info:       "Concatenates the text form of a value and a string.",
		},
	),
}
