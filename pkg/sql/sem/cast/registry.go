// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cast

import (
	"context"
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/sqloverload/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/sqloverload/pkg/sql/types"
	"github.com/cockroachdb/sqloverload/pkg/util/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Declarations is the input from which a Registry is built.
type Declarations struct {
	// Classes is every class in the catalog. It must include Bridge.
	Classes []*types.Class
	// Bridge is the universal intermediate class, conventionally the
	// variable-length string class.
	Bridge *types.Class
	// Casts are the catalog-supplied conversions.
	Casts []Declared
	// Paths are ordered lists of at least three classes, each consecutive
	// pair of which has a cast. Every forward sub-pair gets a chained cast
	// unless a cast for it already exists.
	Paths [][]*types.Class
	// Strong marks registered casts as safe for implicit use.
	Strong []Pair
}

// Registry is the immutable cast graph. It is safe for concurrent use.
type Registry struct {
	bridge   *types.Class
	classes  []*types.Class
	ordinals map[*types.Class]uint
	byName   map[string]*types.Class
	casts    map[Pair]Cast
	strong   map[Pair]struct{}
	// reach[i] is the set of class ordinals strongly castable from
	// classes[i], including i itself.
	reach []*bitset.BitSet
}

// NewRegistry builds the cast graph from the declarations. It returns an
// error if a declared cast duplicates an existing one, a cast path has a
// missing link, a strong marker names an unregistered cast, or the strong
// casts form a cycle. All such problems are collected and reported
// together.
func NewRegistry(ctx context.Context, decls Declarations) (*Registry, error) {
	r := &Registry{
		bridge:   decls.Bridge,
		ordinals: make(map[*types.Class]uint, len(decls.Classes)),
		byName:   make(map[string]*types.Class, len(decls.Classes)),
		casts:    make(map[Pair]Cast),
		strong:   make(map[Pair]struct{}),
	}
	if err := r.registerClasses(decls); err != nil {
		return nil, err
	}
	if err := r.checkKnown(decls); err != nil {
		return nil, err
	}

	// Self casts.
	for _, c := range r.classes {
		r.casts[Pair{c, c}] = &selfCast{class: c}
	}
	// Bridge conversions supplied by each class's text I/O.
	var bridged int
	for _, c := range r.classes {
		if c == r.bridge || !c.HasTextIO() {
			continue
		}
		r.casts[Pair{c, r.bridge}] = newDeclaredCast(Declared{Source: c, Target: r.bridge, Method: MethodIO})
		r.casts[Pair{r.bridge, c}] = newDeclaredCast(Declared{Source: r.bridge, Target: c, Method: MethodIO})
		bridged++
	}
	// Configuration errors of every phase are collected and reported
	// together.
	var errs []error
	if err := r.registerDeclared(decls.Casts); err != nil {
		errs = append(errs, err)
	}
	var derived int
	for _, path := range decls.Paths {
		n, err := r.derivePath(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		derived += n
	}
	chained := r.chainThroughBridge()
	if err := r.markStrong(decls.Strong); err != nil {
		errs = append(errs, err)
	}
	g := r.strongGraph()
	order, err := topo.Sort(g)
	if err != nil {
		errs = append(errs, r.cycleError(g))
	}
	if len(errs) > 0 {
		return nil, combineErrors(errs)
	}
	r.computeReach(g, order)

	log.Infof(ctx, "cast registry: %d classes, %d casts (%d bridge pairs, %d declared, %d path-derived, %d bridge-chained), %d strong",
		len(r.classes), len(r.casts), bridged, len(decls.Casts), derived, chained, len(r.strong))
	return r, nil
}

func (r *Registry) registerClasses(decls Declarations) error {
	if decls.Bridge == nil {
		return pgerror.New(pgcode.InvalidObjectDefinition, "no bridge class declared")
	}
	var dups []string
	for _, c := range decls.Classes {
		key := strings.ToLower(c.Name())
		if _, ok := r.byName[key]; ok {
			dups = append(dups, c.Name())
			continue
		}
		r.byName[key] = c
		r.classes = append(r.classes, c)
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		return pgerror.Newf(pgcode.DuplicateObject, "duplicate type classes: %s", strings.Join(dups, ", "))
	}
	// Ordinals follow name order so that iteration is deterministic.
	sort.Slice(r.classes, func(i, j int) bool { return r.classes[i].Name() < r.classes[j].Name() })
	for i, c := range r.classes {
		r.ordinals[c] = uint(i)
	}
	if _, ok := r.ordinals[decls.Bridge]; !ok {
		return errors.Mark(
			pgerror.Newf(pgcode.UndefinedObject, "bridge class %s is not among the declared classes", decls.Bridge),
			ErrUnknownClass)
	}
	return nil
}

// checkKnown verifies that every class referenced by the declarations was
// registered.
func (r *Registry) checkKnown(decls Declarations) error {
	unknown := make(map[string]struct{})
	note := func(c *types.Class) {
		if c == nil {
			unknown["<nil>"] = struct{}{}
		} else if _, ok := r.ordinals[c]; !ok {
			unknown[c.Name()] = struct{}{}
		}
	}
	for _, d := range decls.Casts {
		note(d.Source)
		note(d.Target)
	}
	for _, path := range decls.Paths {
		for _, c := range path {
			note(c)
		}
	}
	for _, p := range decls.Strong {
		note(p.Source)
		note(p.Target)
	}
	if len(unknown) == 0 {
		return nil
	}
	return errors.Mark(
		pgerror.Newf(pgcode.UndefinedObject, "declarations reference undeclared classes: %s", sortedKeys(unknown)),
		ErrUnknownClass)
}

func (r *Registry) registerDeclared(decls []Declared) error {
	var dups []string
	for _, d := range decls {
		p := Pair{d.Source, d.Target}
		if _, ok := r.casts[p]; ok {
			dups = append(dups, p.String())
			continue
		}
		r.casts[p] = newDeclaredCast(d)
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Strings(dups)
	return errors.Mark(
		errors.WithHint(
			pgerror.Newf(pgcode.DuplicateObject, "duplicate casts: %s", strings.Join(dups, ", ")),
			"every class already converts to and from the bridge class and to itself"),
		ErrDuplicateCast)
}

// derivePath registers a chained cast for every forward sub-pair of the
// path that lacks a cast. Existing casts are never replaced. It returns
// the number of casts added.
func (r *Registry) derivePath(path []*types.Class) (int, error) {
	if len(path) < 3 {
		return 0, pgerror.Newf(pgcode.InvalidObjectDefinition,
			"cast path %s must name at least three classes", formatPath(path))
	}
	var added int
	visited := make(map[[2]int]struct{})
	var derive func(lo, hi int) (Cast, error)
	derive = func(lo, hi int) (Cast, error) {
		p := Pair{path[lo], path[hi]}
		if hi-lo == 1 {
			c, ok := r.casts[p]
			if !ok {
				return nil, errors.Mark(
					pgerror.Newf(pgcode.InvalidObjectDefinition,
						"cast path %s: no cast from %s to %s", formatPath(path), p.Source, p.Target),
					ErrCastPathBroken)
			}
			return c, nil
		}
		if _, ok := visited[[2]int{lo, hi}]; ok {
			return r.casts[p], nil
		}
		visited[[2]int{lo, hi}] = struct{}{}
		// Both shorter sub-paths are derived even when the pair itself
		// already has a cast, so that interior pairs are covered.
		if _, err := derive(lo+1, hi); err != nil {
			return nil, err
		}
		first, err := derive(lo, hi-1)
		if err != nil {
			return nil, err
		}
		if c, ok := r.casts[p]; ok {
			return c, nil
		}
		c := &chainedCast{first: first, second: r.casts[Pair{path[hi-1], path[hi]}]}
		r.casts[p] = c
		added++
		return c, nil
	}
	_, err := derive(0, len(path)-1)
	return added, err
}

// chainThroughBridge registers source->bridge->target for every ordered
// pair of distinct classes still lacking a cast.
func (r *Registry) chainThroughBridge() int {
	var added int
	for _, s := range r.classes {
		toBridge, ok := r.casts[Pair{s, r.bridge}]
		if !ok {
			continue
		}
		for _, t := range r.classes {
			if s == t {
				continue
			}
			if _, ok := r.casts[Pair{s, t}]; ok {
				continue
			}
			fromBridge, ok := r.casts[Pair{r.bridge, t}]
			if !ok {
				continue
			}
			r.casts[Pair{s, t}] = &chainedCast{first: toBridge, second: fromBridge}
			added++
		}
	}
	return added
}

func (r *Registry) markStrong(markers []Pair) error {
	for _, c := range r.classes {
		r.strong[Pair{c, c}] = struct{}{}
	}
	missing := make(map[string]struct{})
	for _, p := range markers {
		if _, ok := r.casts[p]; !ok {
			missing[p.String()] = struct{}{}
			continue
		}
		r.strong[p] = struct{}{}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.Mark(
		pgerror.Newf(pgcode.UndefinedObject, "strong markers name unregistered casts: %s", sortedKeys(missing)),
		ErrUnregisteredStrongCast)
}

func (r *Registry) cycleError(g graph.Directed) error {
	cycle := smallestCycle(g)
	path := make([]*types.Class, len(cycle))
	for i, o := range cycle {
		path[i] = r.classes[o]
	}
	return errors.Mark(
		errors.WithHint(
			pgerror.Newf(pgcode.InvalidObjectDefinition, "strong casts form a cycle: %s", formatPath(path)),
			"at most one direction of a conversion may be strong"),
		ErrStrongCastCycle)
}

// computeReach fills in the strong closure of every class. order is a
// topological order of g, so visiting it backwards sees every successor
// before its predecessors.
func (r *Registry) computeReach(g *simple.DirectedGraph, order []graph.Node) {
	r.reach = make([]*bitset.BitSet, len(r.classes))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i].ID()
		set := bitset.New(uint(len(r.classes)))
		set.Set(uint(id))
		for succ := g.From(id); succ.Next(); {
			set.InPlaceUnion(r.reach[succ.Node().ID()])
		}
		r.reach[id] = set
	}
}

// buildErrorMarks are the sentinels a combined build error carries for
// each of its parts.
var buildErrorMarks = []error{
	ErrDuplicateCast, ErrCastPathBroken, ErrUnregisteredStrongCast, ErrStrongCastCycle,
}

// combineErrors reports the first error, with the others attached as
// secondary errors and listed in the detail. The result is marked with
// the sentinels of every part so that errors.Is finds each of them.
func combineErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	combined := errs[0]
	others := make([]string, 0, len(errs)-1)
	for _, err := range errs[1:] {
		combined = errors.CombineErrors(combined, err)
		others = append(others, err.Error())
	}
	combined = errors.WithDetailf(combined, "also: %s", strings.Join(others, "; "))
	for _, err := range errs[1:] {
		for _, m := range buildErrorMarks {
			if errors.Is(err, m) {
				combined = errors.Mark(combined, m)
			}
		}
	}
	return combined
}

// Bridge returns the bridge class.
func (r *Registry) Bridge() *types.Class { return r.bridge }

// Classes returns the registered classes ordered by name.
func (r *Registry) Classes() []*types.Class {
	return append([]*types.Class(nil), r.classes...)
}

// ClassByName looks up a class case-insensitively. It implements
// types.ClassResolver.
func (r *Registry) ClassByName(name string) (*types.Class, bool) {
	c, ok := r.byName[strings.ToLower(name)]
	return c, ok
}

var _ types.ClassResolver = (*Registry)(nil)

// Contains reports whether c is registered.
func (r *Registry) Contains(c *types.Class) bool {
	_, ok := r.ordinals[c]
	return ok
}

// Cast returns the cast from source to target. Every ordered pair of
// registered classes has a cast unless one of them lacks text I/O.
func (r *Registry) Cast(source, target *types.Class) (Cast, bool) {
	c, ok := r.casts[Pair{source, target}]
	return c, ok
}

// IsStrong reports whether c is marked strong.
func (r *Registry) IsStrong(c Cast) bool {
	_, ok := r.strong[Pair{c.Source(), c.Target()}]
	return ok
}

// Casts returns every registered cast ordered by source and target name.
func (r *Registry) Casts() []Cast {
	out := maps.Values(r.casts)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Source() != b.Source() {
			return r.ordinals[a.Source()] < r.ordinals[b.Source()]
		}
		return r.ordinals[a.Target()] < r.ordinals[b.Target()]
	})
	return out
}

// StronglyCastableFrom returns the classes reachable from c through strong
// casts, c included, ordered by name. It returns nil for an unregistered
// class.
func (r *Registry) StronglyCastableFrom(c *types.Class) []*types.Class {
	o, ok := r.ordinals[c]
	if !ok {
		return nil
	}
	return r.classesOf(r.reach[o])
}

// StronglyCastable reports whether b is strongly castable from a.
func (r *Registry) StronglyCastable(a, b *types.Class) bool {
	oa, ok := r.ordinals[a]
	if !ok {
		return false
	}
	ob, ok := r.ordinals[b]
	if !ok {
		return false
	}
	return r.reach[oa].Test(ob)
}

func (r *Registry) classesOf(set *bitset.BitSet) []*types.Class {
	out := make([]*types.Class, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, r.classes[i])
	}
	return out
}

func formatPath(path []*types.Class) string {
	var b strings.Builder
	for i, c := range path {
		if i > 0 {
			b.WriteString(" -> ")
		}
		if c == nil {
			b.WriteString("<nil>")
		} else {
			b.WriteString(c.Name())
		}
	}
	return b.String()
}

func sortedKeys(m map[string]struct{}) string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return strings.Join(keys, ", ")
}
