// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/sqloverload/pkg/sql/sem/cast"
	"github.com/emicklei/dot"
	"github.com/spf13/cobra"
)

var castsCmd = &cobra.Command{
	Use:   "casts",
	Short: "list the casts of the catalog",
	Long: `
List every registered cast with its kind, method and strength. With
--format=dot, render the cast graph in Graphviz syntax instead: strong
casts are drawn solid and the others dashed. Self casts are omitted from
the graph.
`,
	Args: cobra.NoArgs,
	RunE: runCasts,
}

// castInfo is the yaml rendering of a cast.
type castInfo struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Kind   string `yaml:"kind"`
	Method string `yaml:"method"`
	Strong bool   `yaml:"strong"`
	Path   string `yaml:"path,omitempty"`
}

func runCasts(cmd *cobra.Command, _ []string) error {
	reg, err := buildRegistry(commandContext(cmd))
	if err != nil {
		return err
	}
	casts := reg.Casts()
	var selected []cast.Cast
	for _, c := range casts.Casts() {
		if cliCtx.strongOnly && !casts.IsStrong(c) {
			continue
		}
		selected = append(selected, c)
	}

	w := cmd.OutOrStdout()
	if cliCtx.format == displayFormatDot {
		_, err := fmt.Fprintln(w, castGraph(casts, selected).String())
		return err
	}
	infos := make([]castInfo, len(selected))
	rows := make([][]string, len(selected))
	for i, c := range selected {
		info := castInfo{
			Source: c.Source().Name(),
			Target: c.Target().Name(),
			Kind:   c.Kind().String(),
			Method: c.Method().String(),
			Strong: casts.IsStrong(c),
		}
		if c.Kind() == cast.ChainedCast {
			info.Path = c.String()
		}
		infos[i] = info
		rows[i] = []string{info.Source, info.Target, info.Kind, info.Method, strconv.FormatBool(info.Strong), info.Path}
	}
	return render(w, []string{"source", "target", "kind", "method", "strong", "path"}, rows, infos)
}

// castGraph builds the Graphviz rendering of the given casts.
func castGraph(casts *cast.Registry, selected []cast.Cast) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "LR")
	nodes := make(map[string]dot.Node)
	for _, cl := range casts.Classes() {
		n := g.Node(cl.Name())
		if cl == casts.Bridge() {
			n.Attr("shape", "doublecircle")
		}
		nodes[cl.Name()] = n
	}
	for _, c := range selected {
		if c.Kind() == cast.SelfCast {
			continue
		}
		e := g.Edge(nodes[c.Source().Name()], nodes[c.Target().Name()])
		e.Attr("label", c.Method().String())
		if !casts.IsStrong(c) {
			e.Attr("style", "dashed")
		}
	}
	return g
}
