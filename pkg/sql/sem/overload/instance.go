// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package overload

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
)

// Resolution is the outcome of resolving a call: the selected overload and
// the instances its parameters take for the call's arguments. It is built
// fresh by every Resolve call and never modified afterwards.
type Resolution struct {
	name     string
	overload *Overload
	args     []Arg
	// params holds one instance per argument position.
	params []*types.T
	// inputs holds one instance per input set of the overload.
	inputs []*types.T
	picked *types.T
}

// Name returns the name the overload was called by.
func (res *Resolution) Name() string { return res.name }

// Overload returns the selected overload.
func (res *Resolution) Overload() *Overload { return res.overload }

// Args returns the argument descriptors of the call.
func (res *Resolution) Args() []Arg { return res.args }

// Param returns the instance the argument at position i converts to.
func (res *Resolution) Param(i int) *types.T { return res.params[i] }

// Params returns the instance of every argument position.
func (res *Resolution) Params() []*types.T {
	return append([]*types.T(nil), res.params...)
}

// Input returns the resolved instance of the overload's k-th input set.
func (res *Resolution) Input(k int) *types.T { return res.inputs[k] }

// Picked returns the instance merged from the picking input set's
// positions.
func (res *Resolution) Picked() (*types.T, error) {
	if res == nil || res.overload == nil {
		return nil, errors.AssertionFailedf("picked instance requested before resolution")
	}
	if res.overload.picking < 0 {
		return nil, errors.AssertionFailedf("overload %s has no picking input set", res.overload)
	}
	return res.picked, nil
}

// ResultType returns the result type of the call.
func (res *Resolution) ResultType() (*types.T, error) {
	if res == nil || res.overload == nil {
		return nil, errors.AssertionFailedf("result type requested before resolution")
	}
	return res.overload.result.ResultType(res)
}

func (res *Resolution) String() string {
	var b strings.Builder
	b.WriteString(res.name)
	b.WriteByte('(')
	for i, p := range res.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}

// instantiate computes the parameter instances of the selected overload.
func (r *Resolver) instantiate(name string, o *Overload, args []Arg) (*Resolution, error) {
	res := &Resolution{
		name:     name,
		overload: o,
		args:     args,
		params:   make([]*types.T, len(args)),
		inputs:   make([]*types.T, len(o.inputs)),
	}
	for k, s := range o.inputs {
		positions := s.covered(o.fixedArity, len(args))
		var err error
		if s.IsAny() {
			res.inputs[k], err = r.resolveAny(name, s, positions, args)
			if err != nil {
				return nil, err
			}
			for _, p := range positions {
				res.params[p] = res.inputs[k]
			}
			continue
		}
		if err := r.resolveTargeted(s, positions, args, res.params); err != nil {
			return nil, err
		}
		if res.inputs[k], err = mergeAt(res.params, positions); err != nil {
			return nil, err
		}
		if res.inputs[k] == nil {
			// A vararg set receiving no arguments.
			res.inputs[k] = s.Target.WidestInstance(false)
		}
	}
	if o.picking >= 0 {
		s := o.inputs[o.picking]
		picked, err := mergeAt(res.params, s.covered(o.fixedArity, len(args)))
		if err != nil {
			return nil, err
		}
		if picked == nil {
			picked = res.inputs[o.picking]
		}
		res.picked = picked
	}
	return res, nil
}

// resolveAny folds the known inputs of an ANY set to their common class
// and merges their instances. Unknown inputs only make the result
// nullable. With no known input the set takes the bridge class, unless it
// is picking.
func (r *Resolver) resolveAny(name string, s InputSet, positions []int, args []Arg) (*types.T, error) {
	var class *types.Class
	nullable := false
	for _, p := range positions {
		a := args[p]
		nullable = nullable || a.nullable()
		if a.IsUnknown() {
			continue
		}
		var err error
		if class, err = r.casts.CommonClass(class, a.Type.Class()); err != nil {
			return nil, errors.Wrapf(err, "%s", formatCall(name, args))
		}
	}
	if class == nil {
		if s.Picking {
			return nil, errors.Mark(
				pgerror.Newf(pgcode.IndeterminateDatatype,
					"could not determine polymorphic type: %s", formatCall(name, args)),
				ErrUnresolvableInputType)
		}
		return r.casts.Registry().Bridge().WidestInstance(nullable), nil
	}
	var inst *types.T
	for _, p := range positions {
		a := args[p]
		if a.IsUnknown() {
			continue
		}
		t, err := r.coerce(a.Type, class)
		if err != nil {
			return nil, err
		}
		if inst == nil {
			inst = t
		} else if inst, err = class.MergeInstances(inst, t); err != nil {
			return nil, err
		}
	}
	return inst.WithNullable(nullable), nil
}

// resolveTargeted converts each covered input to the set's target class,
// writing the instances into params. Unknown inputs take the target's
// widest instance.
func (r *Resolver) resolveTargeted(s InputSet, positions []int, args []Arg, params []*types.T) error {
	for _, p := range positions {
		a := args[p]
		if a.IsUnknown() {
			params[p] = s.Target.WidestInstance(true)
			continue
		}
		t, err := r.coerce(a.Type, s.Target)
		if err != nil {
			return err
		}
		params[p] = t
	}
	return nil
}

// coerce returns the instance of target that t converts to.
func (r *Resolver) coerce(t *types.T, target *types.Class) (*types.T, error) {
	if t.Class() == target {
		return t, nil
	}
	c, ok := r.casts.Registry().Cast(t.Class(), target)
	if !ok {
		return nil, errors.Mark(
			pgerror.Newf(pgcode.CannotCoerce, "cannot coerce %s to %s", t.SQLString(), target),
			ErrCannotCoerce)
	}
	return c.PreferredTarget(t).WithNullable(t.Nullable()), nil
}

// mergeAt merges the instances at the given positions in order. It returns
// nil if there are none.
func mergeAt(params []*types.T, positions []int) (*types.T, error) {
	var out *types.T
	for _, p := range positions {
		t := params[p]
		if out == nil {
			out = t
			continue
		}
		var err error
		if out, err = t.Class().MergeInstances(out, t); err != nil {
			return nil, err
		}
	}
	return out, nil
}
