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

// Predicate is a compiled constraint: a reusable function answering whether
// the atomic comparison (op, version) intersects the constraint it was
// compiled from. Evaluating a predicate is equivalent to recursively
// walking the original tree but without per-node dispatch on every call.
type Predicate func(op Op, version Version) bool

// CompileAndMatch treats (op, version) as an atomic constraint and tests
// whether it intersects the given tree. The tree is compiled once into a
// predicate, cached by its canonical rendering, and evaluated per call.
func (e *Engine) CompileAndMatch(c Constraint, op Op, version Version) bool {
	return e.Compile(c)(op, version)
}

// compilePredicate builds a closure mirroring the tree's logical shape:
// AND/OR nodes fold their children's predicates, leaves close over a single
// primitive comparison.
func compilePredicate(c Constraint) Predicate {
	switch c := c.(type) {
	case MatchAllConstraint:
		return func(Op, Version) bool { return true }
	case MatchNoneConstraint:
		return func(Op, Version) bool { return false }
	case AnyBranchConstraint:
		// Matched by any branch version, and by any exclusion (which
		// accepts every branch but the excluded point).
		return func(op Op, version Version) bool {
			return version.IsBranch() || op == OpNeq
		}
	case AtomicConstraint:
		this := c
		return func(op Op, version Version) bool {
			return atomicsIntersect(this.op, this.version, op, version)
		}
	case CompositeConstraint:
		children := make([]Predicate, len(c.children))
		for i, child := range c.children {
			children[i] = compilePredicate(child)
		}
		if c.mode == ModeAnd {
			return func(op Op, version Version) bool {
				for _, p := range children {
					if !p(op, version) {
						return false
					}
				}
				return true
			}
		}
		return func(op Op, version Version) bool {
			for _, p := range children {
				if p(op, version) {
					return true
				}
			}
			return false
		}
	case nil:
		panic("intervals: nil constraint")
	default:
		panic("intervals: unknown constraint variant " + c.String())
	}
}

// atomicsIntersect is the atomic comparison primitive: it reports whether
// two single comparisons admit at least one common version. Branch versions
// are never numerically compared; a ranged operator over a branch token
// selects nothing.
func atomicsIntersect(aOp Op, aVer Version, bOp Op, bVer Version) bool {
	if rangedOnBranch(aOp, aVer) || rangedOnBranch(bOp, bVer) {
		return false
	}

	switch {
	case aOp == OpNeq && bOp == OpNeq:
		// Two exclusions always leave room.
		return true
	case aOp == OpNeq:
		if bOp == OpEq {
			return !aVer.Equal(bVer)
		}
		// A range holds more than the one excluded point.
		return true
	case bOp == OpNeq:
		if aOp == OpEq {
			return !aVer.Equal(bVer)
		}
		return true
	case aOp == OpEq && bOp == OpEq:
		return aVer.Equal(bVer)
	case aOp == OpEq:
		if aVer.IsBranch() {
			return false
		}
		return satisfies(aVer, bOp, bVer)
	case bOp == OpEq:
		if bVer.IsBranch() {
			return false
		}
		return satisfies(bVer, aOp, aVer)
	}

	// Two ranges. Same direction always overlaps; opposite directions
	// overlap when the lower bound sits below the upper one, or meets it
	// with both bounds inclusive.
	aLower := aOp == OpGt || aOp == OpGe
	bLower := bOp == OpGt || bOp == OpGe
	if aLower == bLower {
		return true
	}

	loOp, loVer, hiOp, hiVer := aOp, aVer, bOp, bVer
	if bLower {
		loOp, loVer, hiOp, hiVer = bOp, bVer, aOp, aVer
	}
	if cmp := loVer.Compare(hiVer); cmp != 0 {
		return cmp < 0
	}
	return loOp == OpGe && hiOp == OpLe
}

func rangedOnBranch(op Op, v Version) bool {
	return v.IsBranch() && op != OpEq && op != OpNeq
}

// satisfies reports whether version v falls under the comparison (op, w).
func satisfies(v Version, op Op, w Version) bool {
	cmp := v.Compare(w)
	switch op {
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	default:
		panic("intervals: operator is not a range")
	}
}
