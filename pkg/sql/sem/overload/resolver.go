// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package overload

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/sem/cast"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
	"github.com/cockroachdb/sqloverload/pkg/util/log"
)

// Arg describes the static type of an actual argument.
type Arg struct {
	// Type is nil when the type is unknown, e.g. for a NULL literal or an
	// untyped placeholder.
	Type *types.T
}

// Known returns an argument of the given type.
func Known(t *types.T) Arg { return Arg{Type: t} }

// Unknown returns an argument of unknown type.
func Unknown() Arg { return Arg{} }

// IsUnknown reports whether the argument's type is unknown.
func (a Arg) IsUnknown() bool { return a.Type == nil }

// nullable reports whether the argument may be NULL. Unknown arguments
// always may.
func (a Arg) nullable() bool { return a.Type == nil || a.Type.Nullable() }

func (a Arg) String() string {
	if a.Type == nil {
		return "?"
	}
	return a.Type.SQLString()
}

// Resolver selects overloads for calls. It is immutable and safe for
// concurrent use.
type Resolver struct {
	casts     *cast.Resolver
	names     []string
	groups    map[string][]*PriorityGroup
	overloads map[string][]*Overload
}

// NewResolver registers the overloads under each of their names. It
// returns an error if an overload references a class unknown to the cast
// registry.
func NewResolver(ctx context.Context, casts *cast.Resolver, overloads []*Overload) (*Resolver, error) {
	r := &Resolver{
		casts:     casts,
		groups:    make(map[string][]*PriorityGroup),
		overloads: make(map[string][]*Overload),
	}
	unknown := make(map[string]struct{})
	for _, o := range overloads {
		for _, s := range o.inputs {
			if s.Target != nil && !casts.Registry().Contains(s.Target) {
				unknown[o.String()+": "+s.Target.Name()] = struct{}{}
			}
		}
		for _, n := range o.names {
			key := strings.ToLower(n)
			if _, ok := r.overloads[key]; !ok {
				r.names = append(r.names, key)
			}
			r.overloads[key] = append(r.overloads[key], o)
		}
	}
	if len(unknown) > 0 {
		list := make([]string, 0, len(unknown))
		for k := range unknown {
			list = append(list, k)
		}
		sort.Strings(list)
		return nil, errors.Mark(
			pgerror.Newf(pgcode.InvalidFunctionDefinition,
				"overloads reference unregistered classes: %s", strings.Join(list, "; ")),
			ErrInvalidOverload)
	}
	sort.Strings(r.names)
	var numGroups int
	for _, n := range r.names {
		r.groups[n] = Fold(r.overloads[n])
		numGroups += len(r.groups[n])
	}
	log.Infof(ctx, "registered %d overloads under %d names in %d priority groups",
		len(overloads), len(r.names), numGroups)
	return r, nil
}

// Casts returns the cast resolver used for implicit conversions.
func (r *Resolver) Casts() *cast.Resolver { return r.casts }

// Names returns the registered names, lower-cased and sorted.
func (r *Resolver) Names() []string {
	return append([]string(nil), r.names...)
}

// Overloads returns the overloads registered under name in registration
// order.
func (r *Resolver) Overloads(name string) []*Overload {
	return append([]*Overload(nil), r.overloads[strings.ToLower(name)]...)
}

// Groups returns the priority groups of name in ascending priority.
func (r *Resolver) Groups(name string) []*PriorityGroup {
	return r.groups[strings.ToLower(name)]
}

// Resolve selects the overload of name matching the argument types and
// computes its parameter instances.
//
// Priority groups are tried in ascending order. Within a group, overloads
// are filtered by arity and then per argument: positions on which the
// whole group declares the same target admit any argument, otherwise
// known arguments must cast strongly to their input set's target, or match
// it exactly for exact sets. If a single candidate remains it is selected; if several remain,
// those whose targets all cast strongly to another candidate's targets
// win. A group leaving no candidate yields to the next.
func (r *Resolver) Resolve(ctx context.Context, name string, args []Arg) (*Resolution, error) {
	groups, ok := r.groups[strings.ToLower(name)]
	if !ok {
		return nil, errors.Mark(
			pgerror.Newf(pgcode.UndefinedFunction, "unknown function: %s()", name),
			ErrNoSuchFunction)
	}
	arity := arityTracker{n: len(args)}
	for gi, g := range groups {
		last := gi == len(groups)-1
		var candidates []*Overload
		for _, o := range g.Overloads {
			if !o.AcceptsArity(len(args)) {
				arity.reject(o)
				continue
			}
			arity.matched = true
			ok, err := r.admits(g, o, name, args, last)
			if err != nil {
				return nil, err
			}
			if ok {
				candidates = append(candidates, o)
			}
		}
		if log.V(2) {
			log.VEventf(ctx, 2, "%s: priority %d admits %d of %d overloads",
				formatCall(name, args), g.Priority, len(candidates), len(g.Overloads))
		}
		if len(candidates) == 0 {
			continue
		}
		if len(candidates) > 1 {
			candidates = r.reduce(candidates, len(args))
			if len(candidates) != 1 {
				return nil, ambiguousCallError(name, args, candidates)
			}
		}
		log.VEventf(ctx, 2, "%s: selected %s", formatCall(name, args), candidates[0])
		return r.instantiate(name, candidates[0], args)
	}
	if !arity.matched {
		return nil, arity.err(name)
	}
	return nil, errors.Mark(
		pgerror.Newf(pgcode.UndefinedFunction, "unknown signature: %s", formatCall(name, args)),
		ErrNoSuitableOverload)
}

// admits reports whether o is a candidate for the call. last is set when g
// is the final group of the name, in which case inputs of undeterminable
// type are an error rather than a rejection.
func (r *Resolver) admits(
	g *PriorityGroup, o *Overload, name string, args []Arg, last bool,
) (bool, error) {
	// required[k] is the class fixed for exact ANY set k by its first known
	// input in this call.
	var required []*types.Class
	for i, arg := range args {
		k := o.inputAt(i)
		s := o.inputs[k]
		// Positions the whole group agrees on are admitted as is; the
		// instance pass converts through whatever cast is registered.
		if !s.Exact && (s.IsAny() || g.HasSameTypeAt(i)) {
			continue
		}
		if arg.IsUnknown() {
			switch {
			case s.IsAny():
				// Exact ANY; the other inputs of the set decide.
			case g.CommonTypeAt(i) == nil:
				if last {
					return false, errors.Mark(
						pgerror.Newf(pgcode.IndeterminateDatatype,
							"could not determine data type of argument %d in %s", i+1, formatCall(name, args)),
						ErrUnresolvableInputType)
				}
				return false, nil
			}
			continue
		}
		class := arg.Type.Class()
		switch {
		case s.IsAny():
			if required == nil {
				required = make([]*types.Class, len(o.inputs))
			}
			if required[k] == nil {
				required[k] = class
			} else if required[k] != class {
				return false, nil
			}
		case s.Exact:
			if class != s.Target {
				return false, nil
			}
		default:
			if !r.casts.StrongCastExists(class, s.Target) {
				return false, nil
			}
		}
	}
	return true, nil
}

// reduce keeps, among candidates of the same shape, only those not
// dominated by another. Candidate a dominates b when every input set
// target of a casts strongly to the corresponding target of b.
func (r *Resolver) reduce(candidates []*Overload, n int) []*Overload {
	type bucket struct {
		shape string
		kept  []*Overload
	}
	var buckets []*bucket
	for _, b := range candidates {
		shape := shapeOf(b, n)
		var bk *bucket
		for _, x := range buckets {
			if x.shape == shape {
				bk = x
				break
			}
		}
		if bk == nil {
			bk = &bucket{shape: shape}
			buckets = append(buckets, bk)
		}
		dominated := false
		for _, a := range bk.kept {
			if r.dominates(a, b) {
				dominated = true
				break
			}
		}
		if dominated {
			continue
		}
		kept := bk.kept[:0]
		for _, a := range bk.kept {
			if !r.dominates(b, a) {
				kept = append(kept, a)
			}
		}
		bk.kept = append(kept, b)
	}
	var out []*Overload
	for _, bk := range buckets {
		out = append(out, bk.kept...)
	}
	return out
}

func (r *Resolver) dominates(a, b *Overload) bool {
	for k := range a.inputs {
		if !r.castsTo(a.inputs[k].Target, b.inputs[k].Target) {
			return false
		}
	}
	return true
}

// castsTo treats a nil target as ANY, which everything casts to and which
// casts to nothing else.
func (r *Resolver) castsTo(from, to *types.Class) bool {
	if to == nil {
		return true
	}
	if from == nil {
		return false
	}
	return r.casts.StrongCastExists(from, to)
}

// shapeOf identifies overloads whose input sets correspond one to one in a
// call with n arguments.
func shapeOf(o *Overload, n int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(o.inputs)))
	for _, s := range o.inputs {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(len(s.covered(o.fixedArity, n))))
	}
	return b.String()
}

// arityTracker remembers the arity closest to the call's among rejected
// overloads.
type arityTracker struct {
	n       int
	matched bool
	found   bool
	best    int
	dist    int
	vararg  bool
}

func (a *arityTracker) reject(o *Overload) {
	d := o.fixedArity - a.n
	if d < 0 && !o.IsVararg() {
		d = -d
	}
	if !a.found || d < a.dist || (d == a.dist && o.fixedArity < a.best) {
		a.found, a.best, a.dist, a.vararg = true, o.fixedArity, d, o.IsVararg()
	}
}

func (a *arityTracker) err(name string) error {
	expected := strconv.Itoa(a.best)
	if a.vararg {
		expected = "at least " + expected
	}
	return errors.Mark(
		pgerror.Newf(pgcode.UndefinedFunction,
			"wrong number of arguments to %s(): got %d, expected %s", name, a.n, expected),
		ErrWrongArity)
}

func ambiguousCallError(name string, args []Arg, candidates []*Overload) error {
	var b strings.Builder
	for i, o := range candidates {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(o.Signature(name))
	}
	err := pgerror.Newf(pgcode.AmbiguousFunction, "ambiguous call: %s", formatCall(name, args))
	err = errors.WithHintf(err, "candidates are:\n%s", b.String())
	return errors.Mark(errors.Mark(err, ErrNoSuitableOverload), ErrAmbiguousCall)
}

func formatCall(name string, args []Arg) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}
