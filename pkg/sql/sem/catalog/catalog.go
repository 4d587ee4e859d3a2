// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package catalog assembles type classes, casts and overloads into the
// registry that function calls are resolved against.
package catalog

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
)

// Catalog is the list of declarations a Registry is built from. The host
// application fills it in at startup, in Go or from catalog files.
type Catalog struct {
	Classes   []*types.Class
	Bridge    *types.Class
	Casts     []cast.Declared
	Paths     [][]*types.Class
	Strong    []cast.Pair
	Overloads []overload.Definition
}

// Clone returns a copy of the catalog that can be extended without
// affecting the original.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{
		Classes:   append([]*types.Class(nil), c.Classes...),
		Bridge:    c.Bridge,
		Casts:     append([]cast.Declared(nil), c.Casts...),
		Paths:     append([][]*types.Class(nil), c.Paths...),
		Strong:    append([]cast.Pair(nil), c.Strong...),
		Overloads: append([]overload.Definition(nil), c.Overloads...),
	}
}

// Build validates the declarations and builds the registry.
func (c *Catalog) Build(ctx context.Context) (*Registry, error) {
	casts, err := cast.NewRegistry(ctx, cast.Declarations{
		Classes: c.Classes,
		Bridge:  c.Bridge,
		Casts:   c.Casts,
		Paths:   c.Paths,
		Strong:  c.Strong,
	})
	if err != nil {
		return nil, errors.Wrap(err, "building cast graph")
	}
	overloads := make([]*overload.Overload, 0, len(c.Overloads))
	for _, def := range c.Overloads {
		o, err := overload.New(def)
		if err != nil {
			return nil, err
		}
		overloads = append(overloads, o)
	}
	castResolver := cast.NewResolver(casts)
	resolver, err := overload.NewResolver(ctx, castResolver, overloads)
	if err != nil {
		return nil, err
	}
	return &Registry{casts: castResolver, overloads: resolver}, nil
}

// Registry is the immutable result of building a catalog. It is built
// once and shared by every resolution.
type Registry struct {
	casts     *cast.Resolver
	overloads *overload.Resolver
}

// Casts returns the cast graph.
func (r *Registry) Casts() *cast.Registry { return r.casts.Registry() }

// CastResolver returns the cast resolver.
func (r *Registry) CastResolver() *cast.Resolver { return r.casts }

// Resolver returns the overload resolver.
func (r *Registry) Resolver() *overload.Resolver { return r.overloads }

// ClassByName looks up a class case-insensitively.
func (r *Registry) ClassByName(name string) (*types.Class, bool) {
	return r.casts.Registry().ClassByName(name)
}

var _ types.ClassResolver = (*Registry)(nil)

// Names returns the registered function names.
func (r *Registry) Names() []string { return r.overloads.Names() }

// Overloads returns the overloads registered under name.
func (r *Registry) Overloads(name string) []*overload.Overload {
	return r.overloads.Overloads(name)
}

// Resolve resolves a call of name with the given argument types.
func (r *Registry) Resolve(
	ctx context.Context, name string, args []overload.Arg,
) (*overload.Resolution, error) {
	return r.overloads.Resolve(ctx, name, args)
}

// ParseArgs parses argument type descriptions such as int4, varchar(10)
// or numeric(10,2). The descriptions ? and null stand for an argument of
// unknown type.
func (r *Registry) ParseArgs(specs []string) ([]overload.Arg, error) {
	args := make([]overload.Arg, len(specs))
	for i, s := range specs {
		if s == "?" || strings.EqualFold(s, "null") {
			args[i] = overload.Unknown()
			continue
		}
		t, err := types.ParseInstance(s, r)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i+1)
		}
		args[i] = overload.Known(t)
	}
	return args, nil
}
