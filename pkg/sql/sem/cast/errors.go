// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cast

import "github.com/cockroachdb/errors"

// Sentinels for errors.Is. Every error returned by this package carries a
// pgcode in addition to one of these marks.
var (
	// ErrDuplicateCast is returned when a declared cast collides with one
	// already registered for the same pair of classes.
	ErrDuplicateCast = errors.New("duplicate cast")
	// ErrUnregisteredStrongCast is returned when a strong marker names a
	// pair of classes with no registered cast.
	ErrUnregisteredStrongCast = errors.New("strong marker for unregistered cast")
	// ErrStrongCastCycle is returned when the strong casts form a cycle.
	ErrStrongCastCycle = errors.New("strong cast cycle")
	// ErrCastPathBroken is returned when a declared cast path has a missing
	// link between consecutive classes.
	ErrCastPathBroken = errors.New("broken cast path")
	// ErrUnknownClass is returned when declarations reference a class that
	// was not declared.
	ErrUnknownClass = errors.New("unknown class")
	// ErrNoCommonType is returned when two classes share no strongly
	// castable target.
	ErrNoCommonType = errors.New("no common type")
	// ErrAmbiguousCommonType is returned when two classes share more than
	// one most specific strongly castable target. Errors carrying it are
	// also marked ErrNoCommonType.
	ErrAmbiguousCommonType = errors.New("ambiguous common type")
)
