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

// Op is an atomic comparison operator.
type Op uint8

const (
	OpEq Op = iota
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
)

// String returns the operator's rendering.
func (op Op) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		panic("intervals: unknown operator")
	}
}

// Mode is the boolean composition mode of a composite constraint.
type Mode uint8

const (
	ModeAnd Mode = iota
	ModeOr
)

// Constraint is the sealed union of the five constraint variants:
// AtomicConstraint, CompositeConstraint, MatchAllConstraint,
// MatchNoneConstraint and AnyBranchConstraint.
//
// Constraints are immutable values created once by the caller (typically a
// range parser) and rendered to a canonical string. The rendering doubles
// as the memoization key and as the contract for subset and intersection
// comparisons, so it must stay stable.
type Constraint interface {
	// String returns the canonical rendering of the constraint.
	String() string

	sealedConstraint()
}

// AtomicConstraint is a single comparison of an operator against a version.
type AtomicConstraint struct {
	op      Op
	version Version
}

// NewAtomic creates an atomic comparison constraint.
func NewAtomic(op Op, version Version) AtomicConstraint {
	return AtomicConstraint{op: op, version: version}
}

// Op returns the comparison operator.
func (c AtomicConstraint) Op() Op {
	return c.op
}

// Version returns the compared version.
func (c AtomicConstraint) Version() Version {
	return c.version
}

// String returns the canonical rendering, e.g. ">=1.0.0".
func (c AtomicConstraint) String() string {
	return c.op.String() + c.version.String()
}

func (AtomicConstraint) sealedConstraint() {}

// CompositeConstraint is an ordered boolean combination of child
// constraints, either conjunctive (AND) or disjunctive (OR).
type CompositeConstraint struct {
	mode     Mode
	children []Constraint
}

// NewAnd creates a conjunctive composite over the given children.
// An empty conjunction matches everything.
func NewAnd(children ...Constraint) CompositeConstraint {
	return newComposite(ModeAnd, children)
}

// NewOr creates a disjunctive composite over the given children.
// An empty disjunction matches nothing.
func NewOr(children ...Constraint) CompositeConstraint {
	return newComposite(ModeOr, children)
}

func newComposite(mode Mode, children []Constraint) CompositeConstraint {
	return CompositeConstraint{mode: mode, children: slices.Clone(children)}
}

// Mode returns the boolean composition mode.
func (c CompositeConstraint) Mode() Mode {
	return c.mode
}

// Children returns a copy of the ordered child list.
func (c CompositeConstraint) Children() []Constraint {
	return slices.Clone(c.children)
}

// String returns the canonical rendering: children joined by ", " for AND
// and " || " for OR, wrapped in brackets so nesting stays unambiguous.
// With no children the two modes are semantically distinct, so they render
// as their identities ("*" and "∅") rather than sharing "[]".
func (c CompositeConstraint) String() string {
	if len(c.children) == 0 {
		if c.mode == ModeAnd {
			return MatchAll.String()
		}
		return MatchNone.String()
	}

	sep := ", "
	if c.mode == ModeOr {
		sep = " || "
	}

	parts := make([]string, len(c.children))
	for i, child := range c.children {
		parts[i] = child.String()
	}
	return "[" + strings.Join(parts, sep) + "]"
}

func (CompositeConstraint) sealedConstraint() {}

// MatchAllConstraint matches every version, numeric or branch.
type MatchAllConstraint struct{}

// String renders the match-all constraint as "*".
func (MatchAllConstraint) String() string { return "*" }

func (MatchAllConstraint) sealedConstraint() {}

// MatchNoneConstraint matches no version at all.
type MatchNoneConstraint struct{}

// String renders the match-none constraint as "∅".
func (MatchNoneConstraint) String() string { return "∅" }

func (MatchNoneConstraint) sealedConstraint() {}

// AnyBranchConstraint matches every branch pseudo-version and no numeric
// version.
type AnyBranchConstraint struct{}

// String renders the any-branch constraint as "dev*".
func (AnyBranchConstraint) String() string { return "dev*" }

func (AnyBranchConstraint) sealedConstraint() {}

// Singleton sentinel constraints.
var (
	MatchAll  = MatchAllConstraint{}
	MatchNone = MatchNoneConstraint{}
	AnyBranch = AnyBranchConstraint{}
)

func isMatchAll(c Constraint) bool {
	_, ok := c.(MatchAllConstraint)
	return ok
}

func isMatchNone(c Constraint) bool {
	_, ok := c.(MatchNoneConstraint)
	return ok
}

func isAnyBranch(c Constraint) bool {
	_, ok := c.(AnyBranchConstraint)
	return ok
}

var (
	_ Constraint = AtomicConstraint{}
	_ Constraint = CompositeConstraint{}
	_ Constraint = MatchAllConstraint{}
	_ Constraint = MatchNoneConstraint{}
	_ Constraint = AnyBranchConstraint{}
)
