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
	"fmt"
	"strings"
)

// ParseConstraint parses a version range string into a constraint tree.
//
// Supported syntax:
//   - Comparison operators: >=, >, <=, <, ==, !=, =
//   - Comma-separated conjunctions (AND): ">=1.0.0, <2.0.0"
//   - Double-pipe disjunctions (OR): ">=1.0.0 || >=3.0.0"
//   - Wildcard "*" for any version, "dev*" for any branch
//   - Branch tokens with the dev- prefix: "==dev-main", "!=dev-main"
//   - A bare version is an exact match
//
// Examples:
//
//	ParseConstraint(">=1.0.0, <2.0.0")          // [1.0.0, 2.0.0)
//	ParseConstraint(">=1.0.0 || ==dev-main")    // >=1.0.0 OR branch dev-main
//	ParseConstraint("!=1.5.0")                  // everything but 1.5.0
func ParseConstraint(s string) (Constraint, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return MatchAll, nil
	}

	orParts := strings.Split(s, "||")
	orClauses := make([]Constraint, 0, len(orParts))

	for _, orPart := range orParts {
		orPart = strings.TrimSpace(orPart)
		if orPart == "" {
			return nil, fmt.Errorf("invalid empty range in %q", s)
		}

		andParts := strings.Split(orPart, ",")
		andClauses := make([]Constraint, 0, len(andParts))

		for _, andPart := range andParts {
			token := strings.TrimSpace(andPart)
			if token == "" {
				return nil, fmt.Errorf("invalid empty constraint in %q", orPart)
			}

			clause, err := parseComparison(token)
			if err != nil {
				return nil, err
			}
			andClauses = append(andClauses, clause)
		}

		if len(andClauses) == 1 {
			orClauses = append(orClauses, andClauses[0])
		} else {
			orClauses = append(orClauses, NewAnd(andClauses...))
		}
	}

	if len(orClauses) == 1 {
		return orClauses[0], nil
	}
	return NewOr(orClauses...), nil
}

// comparison operators in prefix-match order; "=" must come after the
// two-character operators it prefixes.
var comparisonOps = []struct {
	prefix string
	op     Op
}{
	{">=", OpGe},
	{">", OpGt},
	{"<=", OpLe},
	{"<", OpLt},
	{"==", OpEq},
	{"!=", OpNeq},
	{"=", OpEq},
}

// parseComparison parses a single comparison like ">=1.0.0" or "!=dev-main".
func parseComparison(expr string) (Constraint, error) {
	if expr == "dev*" {
		return AnyBranch, nil
	}

	for _, c := range comparisonOps {
		if rest, ok := strings.CutPrefix(expr, c.prefix); ok {
			rest = strings.TrimSpace(rest)
			if rest == "" {
				return nil, fmt.Errorf("missing version in %q", expr)
			}
			version, err := NewVersion(rest)
			if err != nil {
				return nil, err
			}
			return NewAtomic(c.op, version), nil
		}
	}

	// No operator: exact version match.
	version, err := NewVersion(expr)
	if err != nil {
		return nil, err
	}
	return NewAtomic(OpEq, version), nil
}
