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

// Compact rewrites a constraint into the smallest tree equivalent to its
// canonical form.
//
// When the numeric intervals cover the whole line except for single-point
// gaps, the result is a conjunction of != comparisons, one per gap. That
// rewrite only admits branch constraints that are themselves exclusions;
// a branch equality would turn the disjunctive form into a conjunction
// that drops numeric versions, so it falls through to the interval path.
// There each interval becomes its tightest expression (an equality for
// point intervals, a single bound where the other bound is a sentinel, a
// two-way conjunction otherwise) and surviving branch constraints are
// recombined with the numeric clauses disjunctively.
func (e *Engine) Compact(c Constraint) Constraint {
	f := e.Canonicalize(c)

	if gaps, ok := pointHoleGaps(f.Numeric); ok && conjoinableBranches(f.Branches) {
		clauses := make([]Constraint, 0, len(gaps)+len(f.Branches))
		for _, v := range gaps {
			clauses = append(clauses, AtomicConstraint{op: OpNeq, version: v})
		}
		// AnyBranch is implied by the holed line and dropped; any other
		// branch constraints join the conjunction.
		for _, b := range f.Branches {
			if !isAnyBranch(b) {
				clauses = append(clauses, b)
			}
		}
		return assemble(clauses, ModeAnd)
	}

	var clauses []Constraint
	numericMatchAll := false
	for _, iv := range f.Numeric {
		switch {
		case iv.isFull():
			numericMatchAll = true
		case iv.isPoint():
			clauses = append(clauses, AtomicConstraint{op: OpEq, version: iv.Start.version})
		case iv.startsAtZero():
			clauses = append(clauses, iv.End)
		case iv.endsAtInfinity():
			clauses = append(clauses, iv.Start)
		default:
			clauses = append(clauses, NewAnd(iv.Start, iv.End))
		}
	}

	if containsAnyBranch(f.Branches) && numericMatchAll {
		return MatchAll
	}

	if negations, ok := allNegations(f.Branches); ok {
		disjunction := assemble(negations, ModeOr)
		if numericMatchAll && len(clauses) == 0 {
			return disjunction
		}
		clauses = append(clauses, disjunction)
	} else {
		clauses = append(clauses, f.Branches...)
	}

	if numericMatchAll {
		// Nothing consumed the marker: the numeric line is whole but
		// branches are not all covered. The full interval starts at
		// Zero, so only its end bound is emitted.
		clauses = append([]Constraint{posInfBound}, clauses...)
	}
	return assemble(clauses, ModeOr)
}

// pointHoleGaps detects a numeric line broken only at single-point gaps:
// the intervals span Zero to infinity and every adjacent pair meets as <x
// immediately followed by >x. Returns the gap versions.
func pointHoleGaps(numeric []Interval) ([]Version, bool) {
	if len(numeric) < 2 {
		return nil, false
	}
	if !numeric[0].startsAtZero() || !numeric[len(numeric)-1].endsAtInfinity() {
		return nil, false
	}

	gaps := make([]Version, 0, len(numeric)-1)
	for i := 0; i < len(numeric)-1; i++ {
		end, start := numeric[i].End, numeric[i+1].Start
		if end.op != OpLt || start.op != OpGt || !end.version.Equal(start.version) {
			return nil, false
		}
		gaps = append(gaps, end.version)
	}
	return gaps, true
}

// conjoinableBranches reports whether every branch constraint may join the
// != gap clauses conjunctively: AnyBranch (implied by the holed line) and
// branch exclusions qualify, equalities do not.
func conjoinableBranches(branches []Constraint) bool {
	for _, b := range branches {
		if !isAnyBranch(b) && !isBranchInequality(b) {
			return false
		}
	}
	return true
}

// allNegations returns the branch list as-is if it is non-empty and every
// entry is an inequality.
func allNegations(branches []Constraint) ([]Constraint, bool) {
	if len(branches) == 0 {
		return nil, false
	}
	for _, b := range branches {
		if !isBranchInequality(b) {
			return nil, false
		}
	}
	return branches, true
}

// assemble wraps clauses into a result constraint: none at all matches
// nothing, a single clause stands alone, several are combined in the given
// mode.
func assemble(clauses []Constraint, mode Mode) Constraint {
	switch len(clauses) {
	case 0:
		return MatchNone
	case 1:
		return clauses[0]
	default:
		return newComposite(mode, clauses)
	}
}
