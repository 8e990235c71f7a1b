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

// IsSubsetOf returns true if every version matched by candidate is also
// matched by constraint. The general case intersects the two constraints
// and compares the result's canonical form against the candidate's, both
// lists index by index through their renderings.
func (e *Engine) IsSubsetOf(candidate, constraint Constraint) bool {
	if isMatchAll(constraint) {
		return true
	}
	if isMatchNone(candidate) {
		// The empty set is a subset of everything.
		return true
	}
	if isMatchNone(constraint) {
		return false
	}

	intersection := e.Canonicalize(NewAnd(candidate, constraint))
	base := e.Canonicalize(candidate)
	return formsEqual(intersection, base)
}

// HaveIntersections returns true if the two constraints match at least one
// version in common. The intersection is computed with the early-exit
// sweep, stopping at the first valid interval.
func (e *Engine) HaveIntersections(a, b Constraint) bool {
	if isMatchNone(a) || isMatchNone(b) {
		return false
	}
	if isMatchAll(a) || isMatchAll(b) {
		return true
	}

	f := e.canonicalize(NewAnd(a, b), true)
	return !f.IsEmpty()
}

// formsEqual compares two canonical forms for equality, order-sensitively,
// by the rendering of each interval bound and branch constraint.
func formsEqual(a, b *CanonicalForm) bool {
	if len(a.Numeric) != len(b.Numeric) || len(a.Branches) != len(b.Branches) {
		return false
	}
	for i, iv := range a.Numeric {
		if iv.Start.String() != b.Numeric[i].Start.String() ||
			iv.End.String() != b.Numeric[i].End.String() {
			return false
		}
	}
	for i, c := range a.Branches {
		if c.String() != b.Branches[i].String() {
			return false
		}
	}
	return true
}
