// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
)

func initFunctionBuiltins() {
	registerBuiltins(functions)
}

// sameTypeUnary returns an instance of its input's class.
func sameTypeUnary(info string) func(c *types.Class) overload.Definition {
	return func(c *types.Class) overload.Definition {
		return overload.Definition{
			Inputs: []overload.InputSet{overload.Input(c, 0).AsPicking()},
			Info:   info,
		}
	}
}

// anyPicking takes any number of inputs of one inferred class and returns
// that class.
func anyPicking(info string) overload.Definition {
	return overload.Definition{
		Inputs: []overload.InputSet{overload.AnyInput(0).AsVararg().AsPicking()},
		Info:   info,
	}
}

var functions = map[string]builtinDefinition{
	"abs": collectOverloads(functionProperties{Category: categoryMath},
		[]*types.Class{types.Int8, types.Numeric, types.Float8},
		sameTypeUnary("Calculates the absolute value of val."),
	),
	"round": makeBuiltin(functionProperties{Category: categoryMath},
		unary(types.Float8, types.Float8, "Rounds val to the nearest integer."),
		unary(types.Numeric, types.Numeric, "Rounds val to the nearest integer."),
		overload.Definition{
			Inputs: []overload.InputSet{overload.Input(types.Numeric, 0), overload.Input(types.Int4, 1)},
			Result: overload.ResultFunc(roundResult),
			Info:   "Keeps decimal_accuracy digits of val.",
		},
	),
	"sqrt": makeBuiltin(functionProperties{Category: categoryMath},
		unary(types.Float8, types.Float8, "Calculates the square root of val."),
		unary(types.Numeric, types.Numeric, "Calculates the square root of val."),
	),

	"length": makeBuiltin(
		functionProperties{Category: categoryString, Aliases: []string{"char_length", "character_length"}},
		unary(types.VarChar, types.Int4, "Calculates the number of characters in val."),
		unary(types.Bytes, types.Int4, "Calculates the number of bytes in val."),
	),
	"lower": makeBuiltin(functionProperties{Category: categoryString},
		sameTypeUnary("Converts all characters in val to their lower-case equivalents.")(types.VarChar),
	),
	"upper": makeBuiltin(functionProperties{Category: categoryString},
		sameTypeUnary("Converts all characters in val to their upper-case equivalents.")(types.VarChar),
	),
	"substring": makeBuiltin(functionProperties{Category: categoryString, Aliases: []string{"substr"}},
		overload.Definition{
			Inputs: []overload.InputSet{
				overload.Input(types.VarChar, 0).AsPicking(),
				overload.Input(types.Int4, 1),
			},
			Info: "Returns a substring of input starting at start_pos (count starts at 1).",
		},
		overload.Definition{
			Inputs: []overload.InputSet{
				overload.Input(types.VarChar, 0).AsPicking(),
				overload.Input(types.Int4, 1, 2),
			},
			Info: "Returns a substring of input starting at start_pos (count starts at 1) and " +
				"including up to length characters.",
		},
	),
	"concat": makeBuiltin(functionProperties{Category: categoryString},
		overload.Definition{
			Inputs: []overload.InputSet{overload.Input(types.VarChar, 0).AsVararg()},
			Result: fixed(types.VarChar),
			Info:   "Concatenates a comma-separated list of strings.",
		},
	),

	"coalesce": makeBuiltin(functionProperties{Category: categoryConditional},
		anyPicking("Returns the first non-NULL argument."),
	),
	"greatest": makeBuiltin(functionProperties{Category: categoryConditional},
		anyPicking("Returns the element with the greatest value."),
	),
	"least": makeBuiltin(functionProperties{Category: categoryConditional},
		anyPicking("Returns the element with the lowest value."),
	),
	"nullif": makeBuiltin(functionProperties{Category: categoryConditional},
		overload.Definition{
			Inputs: []overload.InputSet{overload.AnyInput(0, 1).AsPicking()},
			Result: overload.ResultFunc(nullifResult),
			Info:   "Returns NULL if both arguments are equal, otherwise the first.",
		},
	),

	"now": makeBuiltin(
		functionProperties{Category: categoryDateAndTime, Aliases: []string{"current_timestamp"}},
		overload.Definition{Result: fixed(types.TimestampTZ), Info: "Returns the time of the current transaction."},
	),
	"current_date": makeBuiltin(functionProperties{Category: categoryDateAndTime},
		overload.Definition{Result: fixed(types.Date), Info: "Returns the date of the current transaction."},
	),
	"age": makeBuiltin(functionProperties{Category: categoryDateAndTime},
		unary(types.TimestampTZ, types.Interval, "Calculates the interval between val and the current time."),
		binary(types.TimestampTZ, types.TimestampTZ, types.Interval, "Calculates the interval between begin and end."),
	),
}

// roundResult is an unconstrained numeric: the number of kept digits is
// only known at execution.
func roundResult(res *overload.Resolution) (*types.T, error) {
	return types.Numeric.WidestInstance(res.Param(0).Nullable()), nil
}

// nullifResult is the picked instance, always nullable.
func nullifResult(res *overload.Resolution) (*types.T, error) {
	picked, err := res.Picked()
	if err != nil {
		return nil, err
	}
	return picked.WithNullable(true), nil
}
