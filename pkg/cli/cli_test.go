// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqloverload/pkg/util/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v2"
)

// runCLI runs overloadcheck with the given arguments and returns what it
// printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	overloadcheckCmd.SetOut(&buf)
	defer overloadcheckCmd.SetOut(nil)
	err := Run(args)
	return buf.String(), err
}

func TestValidate(t *testing.T) {
	out, err := runCLI(t, "validate")
	require.NoError(t, err)
	require.Contains(t, out, "ok: 16 classes, 256 casts")

	out, err = runCLI(t, "validate", "--no-builtins", "--catalog", "testdata/minimal.yaml")
	require.NoError(t, err)
	require.Equal(t, "ok: 2 classes, 4 casts, 1 function names, 1 overloads\n", out)

	_, err = runCLI(t, "validate", "--no-builtins")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no bridge class declared")
}

func TestResolve(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		out, err := runCLI(t, "resolve", "--format", "yaml", "coalesce", "int4", "int8", "null")
		require.NoError(t, err)
		var got resolution
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		expected := resolution{
			Call:     "coalesce(int8 NULL, int8 NULL, int8 NULL)",
			Overload: "coalesce(anyelement, anyelement...)",
			Params: []paramInfo{
				{Argument: "int4", Parameter: "int8 NULL"},
				{Argument: "int8", Parameter: "int8 NULL"},
				{Argument: "?", Parameter: "int8 NULL"},
			},
			Picked: "int8 NULL",
			Result: "int8 NULL",
		}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Fatalf("unexpected resolution (-expected +got):\n%s", diff)
		}
	})

	t.Run("table", func(t *testing.T) {
		out, err := runCLI(t, "resolve", "||", "varchar", "int4")
		require.NoError(t, err)
		require.Contains(t, out, "overload: ||(varchar, anyelement) -> varchar\n")
		require.Contains(t, out, "result:   varchar\n")
		require.NotContains(t, out, "picked:")
		require.Contains(t, out, "(2 rows)")
	})

	t.Run("extended catalog", func(t *testing.T) {
		out, err := runCLI(t, "resolve", "--catalog", "testdata/money.yaml", "--format", "yaml", "cash_words", "money")
		require.NoError(t, err)
		var got resolution
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		require.Equal(t, "varchar", got.Result)

		out, err = runCLI(t, "resolve", "--no-builtins", "--catalog", "testdata/minimal.yaml",
			"--format", "yaml", "length", "int")
		require.NoError(t, err)
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		require.Equal(t, "length(text)", got.Call)
		require.Equal(t, "int", got.Result)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := runCLI(t, "resolve", "frobnicate")
		require.True(t, errors.Is(err, overload.ErrNoSuchFunction))
		require.Equal(t, "ERROR: unknown function: frobnicate() (SQLSTATE 42883)", pgerror.FullError(err))

		_, err = runCLI(t, "resolve", "abs", "int5")
		require.EqualError(t, err, `argument 1: type "int5" does not exist`)

		_, err = runCLI(t, "resolve", "--format", "dot", "abs", "int4")
		require.EqualError(t, err, "display format dot is not supported by this command")

		_, err = runCLI(t, "resolve", "--format", "xml", "abs", "int4")
		require.Error(t, err)
		require.Contains(t, err.Error(), `invalid display format: "xml"`)

		_, err = runCLI(t, "resolve")
		require.Error(t, err)
	})
}

func TestCasts(t *testing.T) {
	out, err := runCLI(t, "casts", "--strong-only", "--format", "yaml")
	require.NoError(t, err)
	var casts []castInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &casts))
	for _, c := range casts {
		require.True(t, c.Strong, "%+v", c)
	}
	require.Contains(t, casts, castInfo{
		Source: "int4", Target: "int8", Kind: "declared", Method: "function", Strong: true,
	})

	// Chained casts are listed with their path; strength is only reported
	// for casts marked strong.
	out, err = runCLI(t, "casts", "--format", "yaml")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &casts))
	require.Len(t, casts, 256)
	require.Contains(t, casts, castInfo{
		Source: "int2", Target: "float8", Kind: "chained", Method: "function",
		Path: "int2 -> numeric -> float4 -> float8",
	})
	require.Contains(t, casts, castInfo{
		Source: "int4", Target: "varchar", Kind: "declared", Method: "io",
	})

	out, err = runCLI(t, "casts")
	require.NoError(t, err)
	require.Contains(t, out, "(256 rows)")

	out, err = runCLI(t, "casts", "--format", "dot")
	require.NoError(t, err)
	require.Contains(t, out, "digraph")
	require.Contains(t, out, "doublecircle")
	require.Contains(t, out, "dashed")
}

func TestFunctions(t *testing.T) {
	out, err := runCLI(t, "functions", "--format", "yaml", "COALESCE")
	require.NoError(t, err)
	var got []functionInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	expected := []functionInfo{{
		Name:      "coalesce",
		Priority:  0,
		Signature: "coalesce(anyelement, anyelement...)",
		Category:  "Conditional and NULL",
		Info:      "Returns the first non-NULL argument.",
	}}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("unexpected functions (-expected +got):\n%s", diff)
	}

	out, err = runCLI(t, "functions", "--format", "yaml", "||")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	var priorities []int
	for _, f := range got {
		priorities = append(priorities, f.Priority)
	}
	require.Equal(t, []int{0, 0, 1, 2}, priorities)

	_, err = runCLI(t, "functions", "nosuch")
	require.True(t, errors.Is(err, overload.ErrNoSuchFunction))
}

func TestReportError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer log.SetLogger(zap.New(core))()
	defer log.SetVerbosity(0)()

	ctx := context.Background()
	err := errors.Mark(
		pgerror.Newf(pgcode.UndefinedFunction, "unknown function: %s()", "f"),
		overload.ErrNoSuchFunction)
	const expected = "ERROR: unknown function: f() (SQLSTATE 42883)\n"

	var buf bytes.Buffer
	reportError(ctx, &buf, err)
	require.Equal(t, expected, buf.String())
	require.Equal(t, 0, logs.Len())

	// With -v the error is also logged with its stack.
	defer log.SetVerbosity(1)()
	buf.Reset()
	reportError(ctx, &buf, err)
	require.Equal(t, expected, buf.String())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, zapcore.ErrorLevel, entry.Level)
	require.Contains(t, entry.Message, "unknown function: f()")
}
