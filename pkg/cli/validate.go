// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"

	"github.com/cockroachdb/sqloverload/pkg/sql/sem/overload"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "check that the catalog builds",
	Long: `
Build the cast graph and the overload registry of the catalog. Exits with
an error describing the first problem found, if any.
`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	reg, err := buildRegistry(commandContext(cmd))
	if err != nil {
		return err
	}
	overloads := make(map[*overload.Overload]struct{})
	for _, name := range reg.Names() {
		for _, o := range reg.Overloads(name) {
			overloads[o] = struct{}{}
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d classes, %d casts, %d function names, %d overloads\n",
		len(reg.Casts().Classes()), len(reg.Casts().Casts()), len(reg.Names()), len(overloads))
	return nil
}
