// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cast

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
)

// Resolver answers implicit-conversion questions against a Registry.
type Resolver struct {
	reg *Registry
}

// NewResolver returns a resolver over the given registry.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Registry returns the underlying cast graph.
func (r *Resolver) Registry() *Registry { return r.reg }

// StrongCastExists reports whether values of class a may be implicitly
// converted to class b, directly or through other strong casts.
func (r *Resolver) StrongCastExists(a, b *types.Class) bool {
	return r.reg.StronglyCastable(a, b)
}

// CommonClass returns the most specific class that both a and b strongly
// cast to. A nil class stands for an input of unknown type; the other
// class is returned as is. At most one of a and b may be nil.
//
// When several classes in the intersection are equally specific the
// result is an error marked both ErrAmbiguousCommonType and
// ErrNoCommonType. Falling back to the bridge class is left to callers.
func (r *Resolver) CommonClass(a, b *types.Class) (*types.Class, error) {
	switch {
	case a == nil && b == nil:
		return nil, errors.AssertionFailedf("common class requested for two inputs of unknown type")
	case a == nil:
		return b, nil
	case b == nil:
		return a, nil
	case a == b:
		return a, nil
	}
	oa, ok := r.reg.ordinals[a]
	if !ok {
		return nil, errors.AssertionFailedf("class %s is not registered", a)
	}
	ob, ok := r.reg.ordinals[b]
	if !ok {
		return nil, errors.AssertionFailedf("class %s is not registered", b)
	}

	shared := r.reg.reach[oa].Intersection(r.reg.reach[ob])
	if shared.None() {
		return nil, errors.Mark(
			pgerror.Newf(pgcode.DatatypeMismatch, "%s and %s cannot be matched", a, b),
			ErrNoCommonType)
	}
	// The most specific class strongly casts to every other shared class.
	// Since the strong graph is acyclic, that is the case exactly when it is
	// the only shared class not reachable from another shared class.
	var minimal []*types.Class
	for i, ok := shared.NextSet(0); ok; i, ok = shared.NextSet(i + 1) {
		if !r.reachedFromOther(shared, i) {
			minimal = append(minimal, r.reg.classes[i])
		}
	}
	if len(minimal) == 1 {
		return minimal[0], nil
	}
	err := pgerror.Newf(pgcode.DatatypeMismatch, "no unique common type for %s and %s", a, b)
	err = errors.WithDetailf(err, "equally specific candidates: %s", formatClasses(minimal))
	return nil, errors.Mark(errors.Mark(err, ErrNoCommonType), ErrAmbiguousCommonType)
}

// reachedFromOther reports whether class ordinal i is strongly castable
// from some other member of set.
func (r *Resolver) reachedFromOther(set *bitset.BitSet, i uint) bool {
	for j, ok := set.NextSet(0); ok; j, ok = set.NextSet(j + 1) {
		if j != i && r.reg.reach[j].Test(i) {
			return true
		}
	}
	return false
}

func formatClasses(cs []*types.Class) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}
