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

// Package intervals answers set-theoretic questions about version-range
// constraints: does a version satisfy a constraint, is one constraint
// wholly contained in another, do two constraints overlap at all, and what
// is the smallest tree equivalent to an arbitrarily nested boolean
// combination of ranges.
//
// Constraints mix two orthogonal dimensions: the numeric version line,
// represented as sorted disjoint intervals, and branch pseudo-versions
// ("dev-" tokens) which are never numerically compared. Canonicalization
// reduces any constraint tree to that pair; subset, intersection and
// compaction queries operate on the canonical form. A separate compiling
// matcher turns a tree into a reusable predicate for per-version checks.
//
// These queries run at very high frequency inside a resolution search, so
// canonical forms and compiled predicates are memoized, keyed by each
// constraint's canonical rendering.
//
// Example:
//
//	c, _ := intervals.ParseConstraint(">=1.0.0, <2.0.0 || >=3.0.0")
//	d, _ := intervals.ParseConstraint(">=0.5.0")
//	intervals.IsSubsetOf(c, d)        // true
//	intervals.Compact(c)              // minimal equivalent tree
package intervals

// defaultEngine backs the package-level functions. Its caches live for the
// lifetime of the process until ClearCache is called.
var defaultEngine = NewEngine()

// Canonicalize reduces a constraint tree to its canonical form using the
// process-wide engine. The returned form is shared and read-only.
func Canonicalize(c Constraint) *CanonicalForm {
	return defaultEngine.Canonicalize(c)
}

// IsSubsetOf returns true if every version matched by candidate is also
// matched by constraint.
func IsSubsetOf(candidate, constraint Constraint) bool {
	return defaultEngine.IsSubsetOf(candidate, constraint)
}

// HaveIntersections returns true if the two constraints match at least one
// version in common.
func HaveIntersections(a, b Constraint) bool {
	return defaultEngine.HaveIntersections(a, b)
}

// Compact rewrites a constraint into the smallest tree equivalent to its
// canonical form.
func Compact(c Constraint) Constraint {
	return defaultEngine.Compact(c)
}

// CompileAndMatch tests whether the atomic comparison (op, version)
// intersects the constraint, compiling the tree once and caching the
// resulting predicate.
func CompileAndMatch(c Constraint, op Op, version Version) bool {
	return defaultEngine.CompileAndMatch(c, op, version)
}

// ClearCache drops the process-wide engine's cached canonical forms and
// compiled predicates. Long-lived processes should call this periodically
// to bound memory.
func ClearCache() {
	defaultEngine.ClearCache()
}
