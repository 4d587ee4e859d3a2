// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/overload"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
	"github.com/lib/pq/oid"
	"gopkg.in/yaml.v2"
)

// File is the YAML form of catalog declarations. Class names are
// case-insensitive and may refer to classes of the catalog being extended.
type File struct {
	Bridge    string         `yaml:"bridge,omitempty"`
	Classes   []ClassSpec    `yaml:"classes,omitempty"`
	Casts     []CastSpec     `yaml:"casts,omitempty"`
	Paths     [][]string     `yaml:"paths,omitempty"`
	Strong    []PairSpec     `yaml:"strong,omitempty"`
	Functions []FunctionSpec `yaml:"functions,omitempty"`
}

// ClassSpec declares a type class.
type ClassSpec struct {
	Name string `yaml:"name"`
	Oid  uint32 `yaml:"oid"`
	// Params is one of none, width or precision_scale.
	Params string     `yaml:"params,omitempty"`
	Widest ParamsSpec `yaml:"widest,omitempty"`
	// Merge is one of none, width, decimal or charset. It defaults to the
	// policy matching Params.
	Merge  string `yaml:"merge,omitempty"`
	TextIO *bool  `yaml:"text_io,omitempty"`
}

// ParamsSpec holds instance parameters.
type ParamsSpec struct {
	Width     int32  `yaml:"width,omitempty"`
	Precision int32  `yaml:"precision,omitempty"`
	Scale     int32  `yaml:"scale,omitempty"`
	Charset   string `yaml:"charset,omitempty"`
}

// CastSpec declares a cast.
type CastSpec struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Strong bool   `yaml:"strong,omitempty"`
	// Method is one of function, io or binary.
	Method string `yaml:"method,omitempty"`
	// Preferred is widest (the default) or same_params.
	Preferred string `yaml:"preferred,omitempty"`
}

// PairSpec names a cast by its endpoints.
type PairSpec struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// FunctionSpec declares an overload.
type FunctionSpec struct {
	Names      []string    `yaml:"names"`
	Priorities []int       `yaml:"priorities,omitempty"`
	Inputs     []InputSpec `yaml:"inputs,omitempty"`
	// Result is a type such as varchar(10), or picked. It may be omitted
	// when an input is picking.
	Result string `yaml:"result,omitempty"`
	Info   string `yaml:"info,omitempty"`
}

// InputSpec declares an input set.
type InputSpec struct {
	// Type is a class name, or any.
	Type      string `yaml:"type"`
	Positions []int  `yaml:"positions,omitempty"`
	Vararg    bool   `yaml:"vararg,omitempty"`
	Exact     bool   `yaml:"exact,omitempty"`
	Picking   bool   `yaml:"picking,omitempty"`
}

// Parse decodes a catalog file. Unknown fields are errors.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, pgerror.Wrap(err, pgcode.ConfigFile, "parsing catalog")
	}
	return &f, nil
}

// LoadFile reads and decodes the catalog file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pgerror.Wrapf(err, pgcode.ConfigFile, "reading catalog %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return f, nil
}

// Marshal encodes the file as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Extend appends the declarations of f to the catalog. The catalog is left
// unchanged if f references unknown classes or is otherwise malformed.
func (c *Catalog) Extend(f *File) error {
	next := c.Clone()
	classes := make(map[string]*types.Class, len(next.Classes)+len(f.Classes))
	for _, cl := range next.Classes {
		classes[strings.ToLower(cl.Name())] = cl
	}
	for _, spec := range f.Classes {
		cl, err := spec.class()
		if err != nil {
			return err
		}
		key := strings.ToLower(cl.Name())
		if _, ok := classes[key]; ok {
			return pgerror.Newf(pgcode.DuplicateObject, "class %s: already declared", spec.Name)
		}
		classes[key] = cl
		next.Classes = append(next.Classes, cl)
	}
	lookup := func(what, name string) (*types.Class, error) {
		cl, ok := classes[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, pgerror.Newf(pgcode.UndefinedObject, "%s: unknown class %q", what, name)
		}
		return cl, nil
	}

	if f.Bridge != "" {
		b, err := lookup("bridge", f.Bridge)
		if err != nil {
			return err
		}
		next.Bridge = b
	}
	for _, spec := range f.Casts {
		what := "cast " + spec.Source + " -> " + spec.Target
		src, err := lookup(what, spec.Source)
		if err != nil {
			return err
		}
		tgt, err := lookup(what, spec.Target)
		if err != nil {
			return err
		}
		d := cast.Declared{Source: src, Target: tgt}
		if d.Method, err = parseMethod(what, spec.Method); err != nil {
			return err
		}
		switch spec.Preferred {
		case "", "widest":
		case "same_params":
			d.Preferred = cast.SameParams
		default:
			return pgerror.Newf(pgcode.ConfigFile, "%s: unknown preferred target %q", what, spec.Preferred)
		}
		next.Casts = append(next.Casts, d)
		if spec.Strong {
			next.Strong = append(next.Strong, cast.Pair{Source: src, Target: tgt})
		}
	}
	for i, names := range f.Paths {
		path := make([]*types.Class, len(names))
		for j, n := range names {
			var err error
			if path[j], err = lookup(fmt.Sprintf("path %d", i+1), n); err != nil {
				return err
			}
		}
		next.Paths = append(next.Paths, path)
	}
	for _, spec := range f.Strong {
		what := "strong " + spec.Source + " -> " + spec.Target
		src, err := lookup(what, spec.Source)
		if err != nil {
			return err
		}
		tgt, err := lookup(what, spec.Target)
		if err != nil {
			return err
		}
		next.Strong = append(next.Strong, cast.Pair{Source: src, Target: tgt})
	}

	resolver := mapResolver(classes)
	for _, spec := range f.Functions {
		def, err := spec.definition(resolver)
		if err != nil {
			return err
		}
		next.Overloads = append(next.Overloads, def)
	}
	*c = *next
	return nil
}

type mapResolver map[string]*types.Class

func (m mapResolver) ClassByName(name string) (*types.Class, bool) {
	c, ok := m[strings.ToLower(name)]
	return c, ok
}

func (spec ClassSpec) class() (*types.Class, error) {
	what := "class " + spec.Name
	if strings.TrimSpace(spec.Name) == "" {
		return nil, pgerror.New(pgcode.ConfigFile, "class without a name")
	}
	var opts []types.ClassOption
	kind, merge := types.NoParams, types.MergeFunc(types.MergeNone)
	switch spec.Params {
	case "", "none":
	case "width":
		kind, merge = types.WidthParam, types.MergeWidth
	case "precision_scale":
		kind, merge = types.PrecisionScaleParams, types.MergeDecimal
	default:
		return nil, pgerror.Newf(pgcode.ConfigFile, "%s: unknown params %q", what, spec.Params)
	}
	switch spec.Merge {
	case "":
	case "none":
		merge = types.MergeNone
	case "width":
		merge = types.MergeWidth
	case "decimal":
		merge = types.MergeDecimal
	case "charset":
		merge = types.MergeCharset
	default:
		return nil, pgerror.Newf(pgcode.ConfigFile, "%s: unknown merge policy %q", what, spec.Merge)
	}
	if kind != types.NoParams || spec.Merge != "" {
		widest := types.Params{
			Width:     spec.Widest.Width,
			Precision: spec.Widest.Precision,
			Scale:     spec.Widest.Scale,
			Charset:   spec.Widest.Charset,
		}
		opts = append(opts, types.WithParams(kind, widest, merge))
	}
	if spec.TextIO != nil && !*spec.TextIO {
		opts = append(opts, types.WithoutTextIO())
	}
	return types.NewClass(spec.Name, oid.Oid(spec.Oid), opts...), nil
}

func parseMethod(what, m string) (cast.Method, error) {
	switch m {
	case "":
		return 0, nil
	case "function", "f":
		return cast.MethodFunc, nil
	case "io", "i":
		return cast.MethodIO, nil
	case "binary", "b":
		return cast.MethodBinary, nil
	}
	return 0, pgerror.Newf(pgcode.ConfigFile, "%s: unknown method %q", what, m)
}

func (spec FunctionSpec) definition(resolver types.ClassResolver) (overload.Definition, error) {
	what := "function " + strings.Join(spec.Names, "/")
	def := overload.Definition{
		Names:      spec.Names,
		Priorities: spec.Priorities,
		Info:       spec.Info,
	}
	for i, in := range spec.Inputs {
		var s overload.InputSet
		if strings.EqualFold(in.Type, "any") {
			s = overload.AnyInput(in.Positions...)
		} else {
			cl, ok := resolver.ClassByName(strings.TrimSpace(in.Type))
			if !ok {
				return overload.Definition{}, pgerror.Newf(pgcode.UndefinedObject,
					"%s: input %d: unknown class %q", what, i+1, in.Type)
			}
			s = overload.Input(cl, in.Positions...)
		}
		s.Vararg, s.Exact, s.Picking = in.Vararg, in.Exact, in.Picking
		def.Inputs = append(def.Inputs, s)
	}
	switch strings.ToLower(spec.Result) {
	case "":
	case "picked":
		def.Result = overload.Picked()
	default:
		t, err := types.ParseInstance(spec.Result, resolver)
		if err != nil {
			return overload.Definition{}, errors.Wrapf(err, "%s: result", what)
		}
		def.Result = overload.Fixed(t)
	}
	return def, nil
}
