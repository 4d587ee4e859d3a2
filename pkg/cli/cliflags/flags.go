// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cliflags describes the command-line flags of overloadcheck.
package cliflags

// FlagInfo contains the static information for a CLI flag.
type FlagInfo struct {
	// Name of the flag as used on the command line.
	Name string

	// Shorthand is the short form of the flag (optional).
	Shorthand string

	// Description of the flag.
	Description string
}

// Flags shared by all commands.
var (
	Catalog = FlagInfo{
		Name: "catalog",
		Description: `
A YAML catalog file whose classes, casts and functions extend the builtin
catalog. The flag may be repeated; files are applied in order.`,
	}

	NoBuiltins = FlagInfo{
		Name: "no-builtins",
		Description: `
Start from an empty catalog instead of the builtin one. The catalog files
must then declare the bridge class.`,
	}

	Format = FlagInfo{
		Name: "format",
		Description: `
Selects how results are displayed. Possible values: table, yaml, dot.
The dot format is only supported by the casts command.`,
	}

	Verbosity = FlagInfo{
		Name: "v",
		Description: `
Logging verbosity. At 1 and above, informational messages about catalog
construction are logged; at 2, each resolution step is logged.`,
	}

	StrongOnly = FlagInfo{
		Name:        "strong-only",
		Description: `Only list strong casts.`,
	}
)
