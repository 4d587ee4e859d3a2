// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <function> [<type>...]",
	Short: "resolve a call against the catalog",
	Long: `
Resolve a call of the given function with arguments of the given types.
Types are class names, optionally parameterized, e.g. varchar(10) or
numeric(10,2). Use ? or null for an argument of unknown type.

Prints the selected overload, the parameter type each argument is
converted to, and the result type.
`,
	Example: `  overloadcheck resolve coalesce int4 int8 null
  overloadcheck resolve '||' varchar int4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

// resolution is the yaml rendering of a resolved call.
type resolution struct {
	Call     string      `yaml:"call"`
	Overload string      `yaml:"overload"`
	Params   []paramInfo `yaml:"params,omitempty"`
	Picked   string      `yaml:"picked,omitempty"`
	Result   string      `yaml:"result"`
}

type paramInfo struct {
	Argument  string `yaml:"argument"`
	Parameter string `yaml:"parameter"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	reg, err := buildRegistry(ctx)
	if err != nil {
		return err
	}
	name := args[0]
	callArgs, err := reg.ParseArgs(args[1:])
	if err != nil {
		return err
	}
	res, err := reg.Resolve(ctx, name, callArgs)
	if err != nil {
		return err
	}
	typ, err := res.ResultType()
	if err != nil {
		return err
	}

	out := resolution{
		Call:     res.String(),
		Overload: res.Overload().Signature(name),
		Result:   typ.String(),
	}
	for _, s := range res.Overload().Inputs() {
		if !s.Picking {
			continue
		}
		picked, err := res.Picked()
		if err != nil {
			return err
		}
		out.Picked = picked.String()
	}
	rows := make([][]string, len(callArgs))
	for i, a := range callArgs {
		p := paramInfo{Argument: a.String(), Parameter: res.Param(i).String()}
		out.Params = append(out.Params, p)
		rows[i] = []string{strconv.Itoa(i + 1), p.Argument, p.Parameter}
	}

	w := cmd.OutOrStdout()
	if cliCtx.format == displayFormatTable {
		fmt.Fprintf(w, "overload: %s\n", out.Overload)
		if out.Picked != "" {
			fmt.Fprintf(w, "picked:   %s\n", out.Picked)
		}
		fmt.Fprintf(w, "result:   %s\n", out.Result)
	}
	return render(w, []string{"position", "argument", "parameter"}, rows, out)
}
