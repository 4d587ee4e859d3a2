// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cast builds and queries the directed graph of conversions
// between type classes.
//
// The graph is assembled once from a Declarations value: a self cast for
// every class, each class's conversions to and from the bridge class,
// the declared casts, compositions derived along declared cast paths, and
// finally compositions through the bridge class for every pair still
// lacking a cast. A subset of the casts is marked strong, meaning safe
// for implicit use without explicit CAST syntax; the strong subgraph must
// be acyclic apart from self casts. The resulting Registry is immutable.
package cast

import (
	"fmt"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
)

// Kind identifies how a cast came to be registered.
type Kind uint8

const (
	_ Kind = iota
	// SelfCast is the identity conversion every class has.
	SelfCast
	// DeclaredCast is a conversion supplied by the catalog, including each
	// class's conversions to and from the bridge class.
	DeclaredCast
	// ChainedCast is the composition of two registered casts through an
	// intermediate class.
	ChainedCast
)

func (k Kind) String() string {
	switch k {
	case SelfCast:
		return "self"
	case DeclaredCast:
		return "declared"
	case ChainedCast:
		return "chained"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// SafeValue implements the redact.SafeValue interface.
func (Kind) SafeValue() {}

// Method specifies how the cast is done.
// This is legacy from postgres, but it is useful to describe the casts.
type Method byte

const (
	// MethodFunc means that a conversion function is used.
	MethodFunc Method = 'f'
	// MethodIO means that the input/output functions are used, i.e. the
	// value round-trips through its text form.
	MethodIO Method = 'i'
	// MethodBinary means that the types are binary-coercible,
	// thus no conversion is required.
	MethodBinary Method = 'b'
)

func (m Method) String() string {
	switch m {
	case MethodFunc:
		return "function"
	case MethodIO:
		return "io"
	case MethodBinary:
		return "binary"
	default:
		return fmt.Sprintf("Method(%c)", byte(m))
	}
}

// SafeValue implements the redact.SafeValue interface.
func (Method) SafeValue() {}

// Cast is a directed conversion from a source class to a target class.
type Cast interface {
	Source() *types.Class
	Target() *types.Class
	Kind() Kind
	Method() Method
	// PreferredTarget returns the instance of the target class that values
	// of the given source instance convert to.
	PreferredTarget(src *types.T) *types.T
	fmt.Stringer
}

// PreferredFunc computes the target instance for a source instance.
type PreferredFunc func(src *types.T, target *types.Class) *types.T

// WidestTarget is the default PreferredFunc: the maximally permissive
// target instance, carrying the nullability of the source.
func WidestTarget(src *types.T, target *types.Class) *types.T {
	return target.WidestInstance(src.Nullable())
}

// SameParams is a PreferredFunc for conversions between classes sharing
// a parameterization, e.g. CHAR(n) to VARCHAR(n).
func SameParams(src *types.T, target *types.Class) *types.T {
	return target.Instance(src.Params(), src.Nullable())
}

// Declared describes a cast supplied by the catalog.
type Declared struct {
	Source, Target *types.Class
	// Method defaults to MethodFunc.
	Method Method
	// Preferred defaults to WidestTarget.
	Preferred PreferredFunc
}

// Pair identifies a cast by its endpoints.
type Pair struct {
	Source, Target *types.Class
}

func (p Pair) String() string {
	return fmt.Sprintf("%s -> %s", p.Source, p.Target)
}

// SafeFormat implements the redact.SafeFormatter interface.
func (p Pair) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s -> %s", p.Source, p.Target)
}

type selfCast struct {
	class *types.Class
}

var _ Cast = (*selfCast)(nil)

func (c *selfCast) Source() *types.Class                  { return c.class }
func (c *selfCast) Target() *types.Class                  { return c.class }
func (c *selfCast) Kind() Kind                            { return SelfCast }
func (c *selfCast) Method() Method                        { return MethodBinary }
func (c *selfCast) PreferredTarget(src *types.T) *types.T { return src }
func (c *selfCast) String() string                        { return fmt.Sprintf("%s -> %s", c.class, c.class) }

type declaredCast struct {
	source, target *types.Class
	method         Method
	preferred      PreferredFunc
}

var _ Cast = (*declaredCast)(nil)

func newDeclaredCast(d Declared) *declaredCast {
	c := &declaredCast{source: d.Source, target: d.Target, method: d.Method, preferred: d.Preferred}
	if c.method == 0 {
		c.method = MethodFunc
	}
	if c.preferred == nil {
		c.preferred = WidestTarget
	}
	return c
}

func (c *declaredCast) Source() *types.Class { return c.source }
func (c *declaredCast) Target() *types.Class { return c.target }
func (c *declaredCast) Kind() Kind           { return DeclaredCast }
func (c *declaredCast) Method() Method       { return c.method }
func (c *declaredCast) String() string       { return fmt.Sprintf("%s -> %s", c.source, c.target) }

func (c *declaredCast) PreferredTarget(src *types.T) *types.T {
	return c.preferred(src, c.target)
}

// chainedCast converts through an intermediate class: first.Target() is
// second.Source().
type chainedCast struct {
	first, second Cast
}

var _ Cast = (*chainedCast)(nil)

func (c *chainedCast) Source() *types.Class { return c.first.Source() }
func (c *chainedCast) Target() *types.Class { return c.second.Target() }
func (c *chainedCast) Kind() Kind           { return ChainedCast }

// Method reports the most expensive method among the links.
func (c *chainedCast) Method() Method {
	a, b := c.first.Method(), c.second.Method()
	switch {
	case a == MethodIO || b == MethodIO:
		return MethodIO
	case a == MethodFunc || b == MethodFunc:
		return MethodFunc
	default:
		return MethodBinary
	}
}

func (c *chainedCast) PreferredTarget(src *types.T) *types.T {
	return c.second.PreferredTarget(c.first.PreferredTarget(src))
}

// Links returns the two casts the chain is composed of.
func (c *chainedCast) Links() (first, second Cast) {
	return c.first, c.second
}

func (c *chainedCast) String() string {
	return fmt.Sprintf("%s -> %s", c.first, c.second.Target())
}

// Chain is implemented by chained casts.
type Chain interface {
	Cast
	Links() (first, second Cast)
}

var _ Chain = (*chainedCast)(nil)
