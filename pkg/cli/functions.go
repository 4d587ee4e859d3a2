// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/builtins"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/overload"
	"github.com/spf13/cobra"
)

var functionsCmd = &cobra.Command{
	Use:   "functions [<name>]",
	Short: "list function overloads",
	Long: `
List the overloads registered under every function name, or under the
given name only, in the order resolution considers them.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFunctions,
}

// functionInfo is the yaml rendering of an overload under one name.
type functionInfo struct {
	Name      string `yaml:"name"`
	Priority  int    `yaml:"priority"`
	Signature string `yaml:"signature"`
	Category  string `yaml:"category,omitempty"`
	Info      string `yaml:"info,omitempty"`
}

func runFunctions(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry(commandContext(cmd))
	if err != nil {
		return err
	}
	names := reg.Names()
	if len(args) == 1 {
		if len(reg.Overloads(args[0])) == 0 {
			return errors.Mark(
				pgerror.Newf(pgcode.UndefinedFunction, "unknown function: %s()", args[0]),
				overload.ErrNoSuchFunction)
		}
		names = []string{strings.ToLower(args[0])}
	}

	var infos []functionInfo
	var rows [][]string
	for _, name := range names {
		for _, g := range reg.Resolver().Groups(name) {
			for _, o := range g.Overloads {
				info := functionInfo{
					Name:      name,
					Priority:  g.Priority,
					Signature: o.Signature(name),
					Category:  builtins.Category(name),
					Info:      o.Info(),
				}
				infos = append(infos, info)
				rows = append(rows, []string{
					info.Name, strconv.Itoa(info.Priority), info.Signature, info.Category, info.Info,
				})
			}
		}
	}
	return render(cmd.OutOrStdout(), []string{"name", "priority", "signature", "category", "info"}, rows, infos)
}
