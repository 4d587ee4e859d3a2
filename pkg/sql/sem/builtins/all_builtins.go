// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package builtins declares the standard catalog: the standard type
// classes, the casts between them and the builtin operator and function
// overloads.
package builtins

import (
	"sort"

	"github.com/cockroachdb/sqloverload/pkg/sql/sem/catalog"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
)

const (
	categoryComparison  = "Comparison"
	categoryMath        = "Math and numeric"
	categoryString      = "String and byte"
	categoryDateAndTime = "Date and time"
	categoryConditional = "Conditional and NULL"
)

// functionProperties hold the properties shared by every overload of a
// builtin.
type functionProperties struct {
	Category string
	// Aliases are additional names the overloads are registered under.
	Aliases []string
}

// builtinDefinition is the declaration of a builtin's overloads. Names are
// filled in from the key of the builtins map.
type builtinDefinition struct {
	props     functionProperties
	overloads []overload.Definition
}

func makeBuiltin(props functionProperties, overloads ...overload.Definition) builtinDefinition {
	return builtinDefinition{props: props, overloads: overloads}
}

// collectOverloads applies every generator to every class.
func collectOverloads(
	props functionProperties, classes []*types.Class, gens ...func(*types.Class) overload.Definition,
) builtinDefinition {
	r := make([]overload.Definition, 0, len(classes)*len(gens))
	for _, f := range gens {
		for _, c := range classes {
			r = append(r, f(c))
		}
	}
	return builtinDefinition{props: props, overloads: r}
}

// builtins is populated by the init functions of this package and never
// modified afterwards.
var builtins = map[string]builtinDefinition{}

// AllBuiltinNames is an array containing all the built-in function
// names, sorted in alphabetical order. This can be used for a
// deterministic walk through the builtins map.
var AllBuiltinNames []string

func init() {
	initOperatorBuiltins()
	initFunctionBuiltins()

	AllBuiltinNames = make([]string, 0, len(builtins))
	for name := range builtins {
		AllBuiltinNames = append(AllBuiltinNames, name)
	}
	sort.Strings(AllBuiltinNames)
}

func registerBuiltins(defs map[string]builtinDefinition) {
	for k, v := range defs {
		if _, exists := builtins[k]; exists {
			panic("duplicate builtin: " + k)
		}
		builtins[k] = v
	}
}

// Category returns the category of the builtin called name, or the empty
// string.
func Category(name string) string {
	if def, ok := builtins[name]; ok {
		return def.props.Category
	}
	for _, def := range builtins {
		for _, a := range def.props.Aliases {
			if a == name {
				return def.props.Category
			}
		}
	}
	return ""
}

// Catalog returns a fresh copy of the standard catalog. Callers may extend
// it before building.
func Catalog() *catalog.Catalog {
	c := &catalog.Catalog{
		Classes: append([]*types.Class(nil), types.Standard...),
		Bridge:  types.VarChar,
		Paths:   [][]*types.Class{numericPath},
	}
	c.Casts, c.Strong = castDeclarations(c.Bridge)
	for _, name := range AllBuiltinNames {
		def := builtins[name]
		names := append([]string{name}, def.props.Aliases...)
		for _, o := range def.overloads {
			o.Names = names
			c.Overloads = append(c.Overloads, o)
		}
	}
	return c
}

// Helpers for declaring overloads.

func fixed(c *types.Class) overload.ResultTyper {
	return overload.Fixed(c.WidestInstance(false /* nullable */))
}

func unary(in *types.Class, result *types.Class, info string) overload.Definition {
	return overload.Definition{
		Inputs: []overload.InputSet{overload.Input(in, 0)},
		Result: fixed(result),
		Info:   info,
	}
}

func binary(left, right, result *types.Class, info string) overload.Definition {
	return overload.Definition{
		Inputs: []overload.InputSet{overload.Input(left, 0), overload.Input(right, 1)},
		Result: fixed(result),
		Info:   info,
	}
}
