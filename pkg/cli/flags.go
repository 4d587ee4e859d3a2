// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/cli/cliflags"
	"github.com/spf13/pflag"
)

// displayFormat identifies how results are rendered.
type displayFormat int

const (
	displayFormatTable displayFormat = iota
	displayFormatYAML
	displayFormatDot
)

var displayFormatNames = []string{
	displayFormatTable: "table",
	displayFormatYAML:  "yaml",
	displayFormatDot:   "dot",
}

var _ pflag.Value = (*displayFormat)(nil)

// Type implements the pflag.Value interface.
func (f *displayFormat) Type() string { return "string" }

// String implements the pflag.Value interface.
func (f *displayFormat) String() string { return displayFormatNames[*f] }

// Set implements the pflag.Value interface.
func (f *displayFormat) Set(s string) error {
	for i, name := range displayFormatNames {
		if strings.EqualFold(s, name) {
			*f = displayFormat(i)
			return nil
		}
	}
	return errors.Newf("invalid display format: %q (possible values: %s)",
		s, strings.Join(displayFormatNames, ", "))
}

// cliContext captures the command-line parameters shared by all commands.
type cliContext struct {
	catalogFiles []string
	noBuiltins   bool
	format       displayFormat
	verbosity    int
	strongOnly   bool
}

var cliCtx cliContext

// initCLIDefaults resets the flag variables to their defaults. It is
// called before every invocation so that tests can run several commands
// in the same process.
func initCLIDefaults() {
	cliCtx = cliContext{format: displayFormatTable}
}

func init() {
	initCLIDefaults()

	pf := overloadcheckCmd.PersistentFlags()
	stringArrayFlag(pf, &cliCtx.catalogFiles, cliflags.Catalog)
	boolFlag(pf, &cliCtx.noBuiltins, cliflags.NoBuiltins)
	varFlag(pf, &cliCtx.format, cliflags.Format)
	intFlag(pf, &cliCtx.verbosity, cliflags.Verbosity)

	boolFlag(castsCmd.Flags(), &cliCtx.strongOnly, cliflags.StrongOnly)
}

func stringArrayFlag(f *pflag.FlagSet, valPtr *[]string, flagInfo cliflags.FlagInfo) {
	f.StringArrayVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, nil, flagInfo.Description)
}

func boolFlag(f *pflag.FlagSet, valPtr *bool, flagInfo cliflags.FlagInfo) {
	f.BoolVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, *valPtr, flagInfo.Description)
}

func intFlag(f *pflag.FlagSet, valPtr *int, flagInfo cliflags.FlagInfo) {
	f.IntVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, *valPtr, flagInfo.Description)
}

func varFlag(f *pflag.FlagSet, value pflag.Value, flagInfo cliflags.FlagInfo) {
	f.VarP(value, flagInfo.Name, flagInfo.Shorthand, flagInfo.Description)
}
