// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements overloadcheck, a command-line tool to inspect
// a catalog of type classes, casts and function overloads and to resolve
// calls against it.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/builtins"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/catalog"
	"github.com/cockroachdb/sqloverload/pkg/util/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var overloadcheckCmd = &cobra.Command{
	Use:   "overloadcheck [command] (flags)",
	Short: "inspect SQL casts and function overloads",
	Long: `
Inspect the cast graph and the function overloads of a catalog, and
resolve calls against them. The builtin catalog is used unless
--no-builtins is given; --catalog files extend it.
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	cobra.EnableCommandSorting = false

	overloadcheckCmd.AddCommand(
		validateCmd,
		resolveCmd,
		castsCmd,
		functionsCmd,
	)
}

// Main is the entry point of the overloadcheck binary.
func Main() {
	if err := Run(os.Args[1:]); err != nil {
		reportError(context.Background(), os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err the way a SQL client shows it. Once a verbosity
// is requested, the full error with its stack trace is logged as well.
func reportError(ctx context.Context, w io.Writer, err error) {
	if log.V(1) {
		log.Errorf(ctx, "%+v", err)
	}
	fmt.Fprintln(w, pgerror.FullError(err))
}

// Run runs the command line with the given arguments.
func Run(args []string) error {
	initCLIDefaults()
	overloadcheckCmd.SetArgs(args)
	return overloadcheckCmd.Execute()
}

// setupLogging installs a stderr logger. Informational messages are only
// shown once a verbosity is requested.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level := zapcore.WarnLevel
	if cliCtx.verbosity > 0 {
		level = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "configuring logging")
	}
	log.SetLogger(l)
	log.SetVerbosity(log.Level(cliCtx.verbosity))
	return nil
}

// commandContext returns the context under which cmd runs, tagged with
// the command name.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logtags.AddTag(ctx, cmd.Name(), nil)
}

// loadCatalog assembles the catalog selected by the command-line flags.
func loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	cat := &catalog.Catalog{}
	if !cliCtx.noBuiltins {
		cat = builtins.Catalog()
	}
	for _, path := range cliCtx.catalogFiles {
		f, err := catalog.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := cat.Extend(f); err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		log.Infof(ctx, "loaded %s: %d classes, %d casts, %d functions",
			path, len(f.Classes), len(f.Casts), len(f.Functions))
	}
	return cat, nil
}

// buildRegistry loads and builds the catalog selected by the command-line
// flags.
func buildRegistry(ctx context.Context) (*catalog.Registry, error) {
	cat, err := loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return cat.Build(ctx)
}
