// Copyright 2026 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package intervals

import (
	"slices"
	"strings"
)

// CanonicalForm is the normalized representation of a constraint: a sorted,
// non-overlapping list of numeric intervals plus an ordered list of branch
// constraints (atomic comparisons on branch tokens, or AnyBranch).
//
// Canonical forms are the unit of comparison for subset, intersection and
// equality queries. They are cached and shared; callers must treat them as
// read-only.
type CanonicalForm struct {
	Numeric  []Interval
	Branches []Constraint
}

// IsEmpty returns true if the form matches no version at all.
func (f *CanonicalForm) IsEmpty() bool {
	return len(f.Numeric) == 0 && len(f.Branches) == 0
}

// String returns a rendering of the form for diagnostics.
func (f *CanonicalForm) String() string {
	if f.IsEmpty() {
		return "∅"
	}

	parts := make([]string, 0, len(f.Numeric)+len(f.Branches))
	for _, iv := range f.Numeric {
		parts = append(parts, "["+iv.String()+"]")
	}
	for _, b := range f.Branches {
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " || ")
}

func fullForm() *CanonicalForm {
	return &CanonicalForm{
		Numeric:  []Interval{fullInterval()},
		Branches: []Constraint{AnyBranch},
	}
}

// canonicalize reduces a constraint tree to its canonical form. Child
// composites go through the cached Canonicalize so shared subtrees are
// computed once. With stopOnFirst set, the numeric sweep stops after the
// first valid interval; such partial forms serve existence checks only and
// are never cached.
func (e *Engine) canonicalize(c Constraint, stopOnFirst bool) *CanonicalForm {
	switch c := c.(type) {
	case MatchAllConstraint:
		return fullForm()
	case MatchNoneConstraint:
		return &CanonicalForm{}
	case AnyBranchConstraint:
		return &CanonicalForm{Branches: []Constraint{AnyBranch}}
	case AtomicConstraint:
		return atomicForm(c)
	case CompositeConstraint:
		return e.compositeForm(c, stopOnFirst)
	case nil:
		panic("intervals: nil constraint")
	default:
		// The Constraint union is sealed; reaching this means a new
		// variant was added without updating the engine.
		panic("intervals: unknown constraint variant " + c.String())
	}
}

// atomicForm maps a single comparison onto the numeric line and the branch
// dimension.
func atomicForm(c AtomicConstraint) *CanonicalForm {
	v := c.version

	if v.IsBranch() {
		f := &CanonicalForm{Branches: []Constraint{c}}
		// Excluding a branch says nothing about numeric versions.
		if c.op == OpNeq {
			f.Numeric = []Interval{fullInterval()}
		}
		return f
	}

	var f CanonicalForm
	switch c.op {
	case OpGt, OpGe:
		f.Numeric = []Interval{{Start: c, End: posInfBound}}
	case OpLt, OpLe:
		f.Numeric = []Interval{{Start: zeroBound, End: c}}
	case OpEq:
		f.Numeric = []Interval{{
			Start: AtomicConstraint{op: OpGe, version: v},
			End:   AtomicConstraint{op: OpLe, version: v},
		}}
	case OpNeq:
		f.Numeric = []Interval{
			{Start: zeroBound, End: AtomicConstraint{op: OpLt, version: v}},
			{Start: AtomicConstraint{op: OpGt, version: v}, End: posInfBound},
		}
		// Excluding a numeric version leaves every branch possible.
		f.Branches = []Constraint{AnyBranch}
	default:
		panic("intervals: unknown operator")
	}

	f.Numeric = slices.DeleteFunc(f.Numeric, Interval.isEmpty)
	return &f
}

func (e *Engine) compositeForm(c CompositeConstraint, stopOnFirst bool) *CanonicalForm {
	conjunctive := c.mode == ModeAnd

	// An empty conjunction is the identity of AND and matches everything;
	// an empty disjunction is the identity of OR and matches nothing.
	if len(c.children) == 0 {
		if conjunctive {
			return fullForm()
		}
		return &CanonicalForm{}
	}

	groups := make([]*CanonicalForm, len(c.children))
	for i, child := range c.children {
		groups[i] = e.Canonicalize(child)
	}

	f := &CanonicalForm{
		Numeric: mergeNumeric(groups, conjunctive, stopOnFirst),
	}
	if conjunctive {
		f.Branches = mergeBranchesAnd(groups)
	} else {
		f.Branches = mergeBranchesOr(groups)
	}
	return f
}

// sweepBound is one tagged interval boundary in the numeric merge.
type sweepBound struct {
	bound   AtomicConstraint
	isStart bool
}

// boundPrecedence breaks ties between boundaries at the same version. An
// inclusive start must open before an exclusive end closes at that point,
// and symmetrically for the end operators; the sweep depends on this exact
// ordering for correct semantics at coincident boundaries.
func boundPrecedence(op Op) int {
	switch op {
	case OpGe:
		return -3
	case OpLt:
		return -2
	case OpGt:
		return 2
	case OpLe:
		return 3
	default:
		panic("intervals: operator cannot bound an interval")
	}
}

// mergeNumeric combines the numeric interval lists of all child groups with
// a left-to-right boundary sweep. An interval opens whenever the number of
// active groups crosses the activation threshold (all groups for AND, one
// for OR) and closes when it drops back below. Empty results of boundary
// pairs coinciding at one version are discarded.
func mergeNumeric(groups []*CanonicalForm, conjunctive, stopOnFirst bool) []Interval {
	threshold := 1
	if conjunctive {
		threshold = len(groups)
	}

	var bounds []sweepBound
	for _, g := range groups {
		for _, iv := range g.Numeric {
			bounds = append(bounds,
				sweepBound{bound: iv.Start, isStart: true},
				sweepBound{bound: iv.End, isStart: false},
			)
		}
	}
	if len(bounds) == 0 {
		return nil
	}

	slices.SortStableFunc(bounds, func(a, b sweepBound) int {
		if cmp := a.bound.version.Compare(b.bound.version); cmp != 0 {
			return cmp
		}
		return boundPrecedence(a.bound.op) - boundPrecedence(b.bound.op)
	})

	var (
		out    []Interval
		depth  int
		start  AtomicConstraint
		active bool
	)
	for _, b := range bounds {
		if b.isStart {
			depth++
			if depth == threshold && !active {
				active = true
				start = b.bound
			}
			continue
		}

		if depth == threshold && active {
			iv := Interval{Start: start, End: b.bound}
			if !iv.isEmpty() {
				out = append(out, iv)
				if stopOnFirst {
					return out
				}
			}
			active = false
		}
		depth--
	}
	return out
}

func containsAnyBranch(list []Constraint) bool {
	return slices.ContainsFunc(list, isAnyBranch)
}

// branchAtom unpacks a branch-list entry into its atomic comparison.
// Returns false for the AnyBranch sentinel.
func branchAtom(c Constraint) (AtomicConstraint, bool) {
	a, ok := c.(AtomicConstraint)
	return a, ok
}

func isBranchInequality(c Constraint) bool {
	a, ok := branchAtom(c)
	return ok && a.op == OpNeq
}

func containsVerbatim(list []Constraint, c Constraint) bool {
	want := c.String()
	return slices.ContainsFunc(list, func(o Constraint) bool {
		return o.String() == want
	})
}

func containsInequalityOn(list []Constraint, v Version) bool {
	return slices.ContainsFunc(list, func(o Constraint) bool {
		a, ok := branchAtom(o)
		return ok && a.op == OpNeq && a.version.Equal(v)
	})
}

func containsInequality(list []Constraint) bool {
	return slices.ContainsFunc(list, isBranchInequality)
}

// mergeBranchesOr merges the branch dimension of a disjunction.
//
// AnyBranch in any operand covers every branch outright, as does an
// inequality meeting an equality on the same token (between them they
// accept everything). Equalities always survive, except when an inequality
// on a different token already implies them. An inequality only survives
// when every other operand keeps it alive: by being empty, by carrying the
// same inequality verbatim, or by being a lone inequality on another token
// opposite a lone one.
func mergeBranchesOr(groups []*CanonicalForm) []Constraint {
	for _, g := range groups {
		if containsAnyBranch(g.Branches) {
			return []Constraint{AnyBranch}
		}
	}

	var inequalities []AtomicConstraint
	for _, g := range groups {
		for _, c := range g.Branches {
			if a, ok := branchAtom(c); ok && a.op == OpNeq {
				inequalities = append(inequalities, a)
			}
		}
	}
	for _, g := range groups {
		for _, c := range g.Branches {
			a, ok := branchAtom(c)
			if !ok || a.op == OpNeq {
				continue
			}
			for _, ineq := range inequalities {
				if ineq.version.Equal(a.version) {
					return []Constraint{AnyBranch}
				}
			}
		}
	}

	// Drop equalities subsumed by an inequality on a different token.
	filtered := make([][]Constraint, len(groups))
	for i, g := range groups {
		filtered[i] = slices.Clone(g.Branches)
		if len(inequalities) == 0 {
			continue
		}
		filtered[i] = slices.DeleteFunc(filtered[i], func(c Constraint) bool {
			a, ok := branchAtom(c)
			return ok && a.op != OpNeq
		})
	}

	var out []Constraint
	seen := make(map[string]bool)
	keep := func(c Constraint) {
		if key := c.String(); !seen[key] {
			seen[key] = true
			out = append(out, c)
		}
	}

	for i, g := range filtered {
		for _, c := range g {
			a, ok := branchAtom(c)
			if !ok || a.op != OpNeq {
				keep(c)
				continue
			}

			matches := 0
			for j, other := range filtered {
				if j == i {
					continue
				}
				switch {
				case len(other) == 0:
					matches++
				case containsVerbatim(other, c):
					matches++
				case len(g) == 1 && len(other) == 1:
					if o, ok := branchAtom(other[0]); ok && o.op == OpNeq && !o.version.Equal(a.version) {
						matches++
					}
				}
			}
			if matches == len(groups)-1 {
				keep(c)
			}
		}
	}
	return out
}

// mergeBranchesAnd merges the branch dimension of a conjunction. A
// constraint survives only when every other operand agrees with it: by
// carrying it verbatim, by covering all branches with AnyBranch, or, for
// inequalities, by excluding something itself. An equality meeting an
// inequality on the same token is a contradiction and cancels both; against
// an inequality on a different token the equality wins and the inequality
// is dropped as redundant.
func mergeBranchesAnd(groups []*CanonicalForm) []Constraint {
	var out []Constraint
	seen := make(map[string]bool)

	for i, g := range groups {
		for _, c := range g.Branches {
			if !survivesAnd(c, i, groups) {
				continue
			}
			if key := c.String(); !seen[key] {
				seen[key] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func survivesAnd(c Constraint, group int, groups []*CanonicalForm) bool {
	a, atomic := branchAtom(c)

	for j, other := range groups {
		if j == group {
			continue
		}
		list := other.Branches

		if containsVerbatim(list, c) {
			continue
		}
		if !atomic {
			// AnyBranch survives only against AnyBranch.
			return false
		}
		if containsAnyBranch(list) {
			continue
		}

		if a.op == OpNeq {
			// Two exclusions narrow each other and both stand.
			if containsInequality(list) {
				continue
			}
			return false
		}

		// Equality against an inequality on the same token contradicts;
		// against a different token the equality stands.
		if containsInequalityOn(list, a.version) {
			return false
		}
		if containsInequality(list) {
			continue
		}
		return false
	}
	return true
}
