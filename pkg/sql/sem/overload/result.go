// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package overload

import "github.com/cockroachdb/sqloverload/pkg/sql/types"

// ResultTyper computes the result type of a resolved call.
type ResultTyper interface {
	ResultType(res *Resolution) (*types.T, error)
}

type fixedResult struct {
	typ *types.T
}

// Fixed returns a ResultTyper that always returns typ.
func Fixed(typ *types.T) ResultTyper {
	return fixedResult{typ: typ}
}

func (f fixedResult) ResultType(*Resolution) (*types.T, error) {
	return f.typ, nil
}

type pickedResult struct{}

// Picked returns a ResultTyper that returns the instance picked from the
// overload's picking input set.
func Picked() ResultTyper {
	return pickedResult{}
}

func (pickedResult) ResultType(res *Resolution) (*types.T, error) {
	return res.Picked()
}

// ResultFunc adapts a function to the ResultTyper interface.
type ResultFunc func(res *Resolution) (*types.T, error)

// ResultType implements the ResultTyper interface.
func (f ResultFunc) ResultType(res *Resolution) (*types.T, error) {
	return f(res)
}
