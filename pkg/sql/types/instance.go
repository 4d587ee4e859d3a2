// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/redact"
)

// T is a concrete, parameterized instance of a Class. Instances are
// values: every resolution builds fresh ones, and none is ever mutated.
type T struct {
	class    *Class
	params   Params
	nullable bool
}

// Class returns the class the instance belongs to.
func (t *T) Class() *Class { return t.class }

// Params returns the instance parameters.
func (t *T) Params() Params { return t.params }

// Width returns the maximum length, zero if unbounded.
func (t *T) Width() int32 { return t.params.Width }

// Precision returns the numeric precision, zero if unbounded.
func (t *T) Precision() int32 { return t.params.Precision }

// Scale returns the numeric scale.
func (t *T) Scale() int32 { return t.params.Scale }

// Charset returns the character set, empty for the default.
func (t *T) Charset() string { return t.params.Charset }

// Nullable returns whether values of this instance may be NULL.
func (t *T) Nullable() bool { return t.nullable }

// WithNullable returns a copy of the instance with the given nullability.
func (t *T) WithNullable(nullable bool) *T {
	if t.nullable == nullable {
		return t
	}
	return &T{class: t.class, params: t.params, nullable: nullable}
}

// Equal returns whether both instances have the same class, parameters
// and nullability.
func (t *T) Equal(other *T) bool {
	return t.class == other.class && t.params == other.params && t.nullable == other.nullable
}

// Identical returns whether both instances have the same class and
// parameters, ignoring nullability.
func (t *T) Identical(other *T) bool {
	return t.class == other.class && t.params == other.params
}

// SQLString returns the SQL spelling of the instance, e.g. VARCHAR(10)
// or NUMERIC(10,2), in lower case.
func (t *T) SQLString() string {
	var sb strings.Builder
	sb.WriteString(t.class.name)
	switch t.class.kind {
	case WidthParam:
		if t.params.Width > 0 {
			fmt.Fprintf(&sb, "(%d)", t.params.Width)
		}
	case PrecisionScaleParams:
		if t.params.Precision > 0 {
			if t.params.Scale > 0 {
				fmt.Fprintf(&sb, "(%d,%d)", t.params.Precision, t.params.Scale)
			} else {
				fmt.Fprintf(&sb, "(%d)", t.params.Precision)
			}
		}
	}
	if t.params.Charset != "" {
		fmt.Fprintf(&sb, " CHARACTER SET %s", t.params.Charset)
	}
	return sb.String()
}

func (t *T) String() string {
	if t == nil {
		return "?"
	}
	if t.nullable {
		return t.SQLString() + " NULL"
	}
	return t.SQLString()
}

// SafeFormat implements the redact.SafeFormatter interface.
func (t *T) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(t.String()))
}

var _ redact.SafeFormatter = (*T)(nil)
