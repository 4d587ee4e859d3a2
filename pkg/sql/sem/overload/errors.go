// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package overload

import "github.com/cockroachdb/errors"

// Sentinels for errors.Is.
var (
	// ErrNoSuchFunction is returned when no overload has the called name.
	ErrNoSuchFunction = errors.New("no such function")
	// ErrWrongArity is returned when every overload of the name rejected
	// the call on argument count alone.
	ErrWrongArity = errors.New("wrong number of arguments")
	// ErrNoSuitableOverload is returned when no overload passed candidacy
	// filtering, or several remained after tie breaking.
	ErrNoSuitableOverload = errors.New("no suitable overload")
	// ErrAmbiguousCall marks the variant of ErrNoSuitableOverload in which
	// several candidates remained.
	ErrAmbiguousCall = errors.New("ambiguous call")
	// ErrUnresolvableInputType is returned when the type of unknown inputs
	// cannot be determined.
	ErrUnresolvableInputType = errors.New("unresolvable input type")
	// ErrCannotCoerce is returned when an input of the selected overload
	// has no cast to its target class.
	ErrCannotCoerce = errors.New("cannot coerce")
	// ErrInvalidOverload is returned for malformed overload definitions.
	ErrInvalidOverload = errors.New("invalid overload")
)
