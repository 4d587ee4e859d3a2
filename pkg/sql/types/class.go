// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package types defines SQL type classes and the concrete, parameterized
// type instances derived from them.
//
// A Class is an abstract named type category such as INT8 or VARCHAR.
// Classes are compared by identity: two *Class values denote the same
// class iff they are the same pointer. A T is an instance of a class
// carrying concrete parameters (width, precision, scale, charset) and a
// nullability bit. Both are immutable once constructed and are safe to
// share across goroutines.
package types

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/lib/pq/oid"
)

// ParamKind describes which instance parameters a class accepts in its
// SQL spelling.
type ParamKind uint8

const (
	// NoParams classes have a single instance per nullability.
	NoParams ParamKind = iota
	// WidthParam classes accept a single length, e.g. VARCHAR(10).
	WidthParam
	// PrecisionScaleParams classes accept a precision and an optional
	// scale, e.g. NUMERIC(10,2).
	PrecisionScaleParams
)

// Params are the attributes distinguishing instances of one class.
type Params struct {
	// Width is the maximum length of text-like classes. Zero means
	// unbounded.
	Width int32
	// Precision is the total number of significant digits of exact
	// numeric classes. Zero means unbounded.
	Precision int32
	// Scale is the number of digits after the decimal point.
	Scale int32
	// Charset is the character set of text-like classes. Empty means the
	// default charset.
	Charset string
}

// MergeFunc combines the parameters of two instances of the same class
// into the parameters of one instance able to represent both.
type MergeFunc func(a, b Params) Params

// Class is a named SQL type category. See the package documentation.
type Class struct {
	name   string
	oid    oid.Oid
	kind   ParamKind
	widest Params
	merge  MergeFunc
	textIO bool
}

// ClassOption configures a Class at construction.
type ClassOption func(*Class)

// WithParams declares the parameters the class accepts, its merge policy
// and its maximally permissive parameterization.
func WithParams(kind ParamKind, widest Params, merge MergeFunc) ClassOption {
	return func(c *Class) {
		c.kind = kind
		c.widest = widest
		c.merge = merge
	}
}

// WithoutTextIO marks a class as having no conversion to and from the
// bridge class.
func WithoutTextIO() ClassOption {
	return func(c *Class) { c.textIO = false }
}

// NewClass creates a type class. By default a class accepts no parameters
// and converts to and from the bridge class through its text form.
func NewClass(name string, o oid.Oid, opts ...ClassOption) *Class {
	c := &Class{name: name, oid: o, merge: MergeNone, textIO: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the canonical SQL name of the class.
func (c *Class) Name() string { return c.name }

// Oid returns the Postgres OID of the class, or 0 if it has none.
func (c *Class) Oid() oid.Oid { return c.oid }

// ParamKind returns the parameters the class accepts.
func (c *Class) ParamKind() ParamKind { return c.kind }

// HasTextIO returns whether the class converts to and from the bridge
// class.
func (c *Class) HasTextIO() bool { return c.textIO }

func (c *Class) String() string { return c.name }

// SafeFormat implements the redact.SafeFormatter interface. Class names
// are not user data.
func (c *Class) SafeFormat(w redact.SafePrinter, _ rune) {
	if c == nil {
		w.SafeString("?")
		return
	}
	w.Print(redact.SafeString(c.name))
}

// Instance returns an instance of the class with the given parameters.
func (c *Class) Instance(p Params, nullable bool) *T {
	return &T{class: c, params: p, nullable: nullable}
}

// WidestInstance returns the maximally permissive instance of the class,
// e.g. VARCHAR with unbounded length.
func (c *Class) WidestInstance(nullable bool) *T {
	return c.Instance(c.widest, nullable)
}

// MergeInstances combines two instances of this class into one
// representative instance. The result is nullable if either input is.
func (c *Class) MergeInstances(a, b *T) (*T, error) {
	if a.class != c || b.class != c {
		return nil, errors.AssertionFailedf(
			"cannot merge %s and %s as instances of %s", a, b, c)
	}
	return c.Instance(c.merge(a.params, b.params), a.nullable || b.nullable), nil
}

var _ redact.SafeFormatter = (*Class)(nil)
