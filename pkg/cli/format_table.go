// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v2"
)

// render displays rows in the selected format. In the table format the
// rows are rendered under cols; in the yaml format the value is
// marshaled.
func render(w io.Writer, cols []string, rows [][]string, value interface{}) error {
	switch cliCtx.format {
	case displayFormatTable:
		renderTable(w, cols, rows)
		return nil
	case displayFormatYAML:
		return renderYAML(w, value)
	default:
		return errors.Newf("display format %s is not supported by this command", &cliCtx.format)
	}
}

func renderTable(w io.Writer, cols []string, rows [][]string) {
	// Initialize tablewriter and set column names as the header row.
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(cols)
	table.AppendBulk(rows)
	table.Render()
	plural := "s"
	if len(rows) == 1 {
		plural = ""
	}
	fmt.Fprintf(w, "(%d row%s)\n", len(rows), plural)
}

func renderYAML(w io.Writer, value interface{}) error {
	out, err := yaml.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "marshaling output")
	}
	_, err = w.Write(out)
	return err
}
