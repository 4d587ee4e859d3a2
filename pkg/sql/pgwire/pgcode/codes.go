// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package pgcode defines the PostgreSQL SQLSTATE codes used by the
// overload resolution engine.
package pgcode

// Code is a wrapper around a string to ensure that pgcodes are used in
// different pgerror functions by avoiding accidental string input.
type Code struct {
	code string
}

// MakeCode converts a string into a Code.
func MakeCode(s string) Code {
	return Code{code: s}
}

// String returns the underlying pg code string.
func (c Code) String() string {
	return c.code
}

// SafeValue implements the redact.SafeValue interface.
func (c Code) SafeValue() {}

// PG error codes from:
// http://www.postgresql.org/docs/9.5/static/errcodes-appendix.html.
// Specifically, errcodes.txt is copied from from Postgres' src/backend/utils/errcodes.txt.
var (
	// Section: Class 00 - Successful Completion
	SuccessfulCompletion = MakeCode("00000")
	// Section: Class 22 - Data Exception
	InvalidParameterValue = MakeCode("22023")
	// Section: Class 42 - Syntax Error or Access Rule Violation
	Syntax                    = MakeCode("42601")
	UndefinedObject           = MakeCode("42704")
	DatatypeMismatch          = MakeCode("42804")
	CannotCoerce              = MakeCode("42846")
	UndefinedFunction         = MakeCode("42883")
	DuplicateObject           = MakeCode("42710")
	AmbiguousFunction         = MakeCode("42725")
	InvalidFunctionDefinition = MakeCode("42P13")
	InvalidObjectDefinition   = MakeCode("42P17")
	IndeterminateDatatype     = MakeCode("42P18")
	// Section: Class F0 - Configuration File Error
	ConfigFile = MakeCode("F0000")
	// Section: Class XX - Internal Error
	Internal = MakeCode("XX000")

	// Uncategorized is used for errors that flow out to a client
	// when there's no code known yet.
	Uncategorized = MakeCode("XXUUU")
)
