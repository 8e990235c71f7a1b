package intervals

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustConstraint(t *testing.T, s string) Constraint {
	t.Helper()
	c, err := ParseConstraint(s)
	if err != nil {
		t.Fatalf("ParseConstraint(%q): %v", s, err)
	}
	return c
}

func TestCanonicalizeAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		constraint string
		expect     string
	}{
		{">=1.0.0", "[>=1.0.0, <∞]"},
		{">1.0.0", "[>1.0.0, <∞]"},
		{"<2.0.0", "[>=0.0.0.0-dev, <2.0.0]"},
		{"<=2.0.0", "[>=0.0.0.0-dev, <=2.0.0]"},
		{"==1.5.0", "[>=1.5.0, <=1.5.0]"},
		{"!=1.5.0", "[>=0.0.0.0-dev, <1.5.0] || [>1.5.0, <∞] || dev*"},
		{"==dev-main", "==dev-main"},
		{"!=dev-main", "[>=0.0.0.0-dev, <∞] || !=dev-main"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			form := Canonicalize(mustConstraint(t, tt.constraint))
			if got := form.String(); got != tt.expect {
				t.Fatalf("Canonicalize(%s) = %q, want %q", tt.constraint, got, tt.expect)
			}
		})
	}
}

func TestCanonicalizeSentinels(t *testing.T) {
	t.Parallel()

	if got := Canonicalize(MatchAll).String(); got != "[>=0.0.0.0-dev, <∞] || dev*" {
		t.Fatalf("Canonicalize(MatchAll) = %q", got)
	}
	if form := Canonicalize(MatchNone); !form.IsEmpty() {
		t.Fatalf("Canonicalize(MatchNone) = %q, want empty", form)
	}
	if got := Canonicalize(AnyBranch).String(); got != "dev*" {
		t.Fatalf("Canonicalize(AnyBranch) = %q", got)
	}
}

func TestCanonicalizeComposite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		constraint string
		expect     string
	}{
		// Conjunctions intersect.
		{">=1.0.0, <2.0.0", "[>=1.0.0, <2.0.0]"},
		{">=1.0.0, >=1.5.0", "[>=1.5.0, <∞]"},
		{">=2.0.0, <1.0.0", "∅"},
		// Disjunctions union, merging overlap and keeping holes.
		{">=1.0.0, <2.0.0 || >=1.5.0, <3.0.0", "[>=1.0.0, <3.0.0]"},
		{"<1.0.0 || >1.0.0", "[>=0.0.0.0-dev, <1.0.0] || [>1.0.0, <∞]"},
		{"<=1.0.0 || >=1.0.0", "[>=0.0.0.0-dev, <∞]"},
		{"<1.0.0 || >=1.0.0", "[>=0.0.0.0-dev, <∞]"},
		// A point interval meeting an exclusive bound at the same
		// version closes the gap.
		{"<1.0.0 || ==1.0.0", "[>=0.0.0.0-dev, <=1.0.0]"},
		// Empty boundary pairs are discarded, not retained.
		{">1.0.0, <=1.0.0", "∅"},
		{">=1.0.0, <1.0.0", "∅"},
		{">=1.0.0, <=1.0.0", "[>=1.0.0, <=1.0.0]"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			form := Canonicalize(mustConstraint(t, tt.constraint))
			if diff := cmp.Diff(tt.expect, form.String()); diff != "" {
				t.Fatalf("Canonicalize(%s) mismatch (-want +got):\n%s", tt.constraint, diff)
			}
		})
	}
}

func TestCanonicalizeBranchMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		constraint string
		expect     string
	}{
		// OR: equalities accumulate.
		{"==dev-a || ==dev-b", "==dev-a || ==dev-b"},
		// OR: an inequality against an equality on the same token
		// covers every branch; the numeric line is already whole.
		{"!=dev-a || ==dev-a", "[>=0.0.0.0-dev, <∞] || dev*"},
		// OR: an inequality implies equalities on other tokens.
		{"!=dev-a || ==dev-b", "[>=0.0.0.0-dev, <∞] || !=dev-a"},
		// OR: a numeric operand leaves a lone inequality standing.
		{">=1.0.0 || !=dev-a", "[>=0.0.0.0-dev, <∞] || !=dev-a"},
		// AND: contradiction cancels both sides.
		{"==dev-a, !=dev-a", "∅"},
		// AND: the equality wins over an inequality on another token.
		{"==dev-a, !=dev-b", "==dev-a"},
		// AND: two exclusions both stand.
		{"!=dev-a, !=dev-b", "[>=0.0.0.0-dev, <∞] || !=dev-a || !=dev-b"},
		// AND: AnyBranch keeps the other side alive.
		{"!=1.0.0, !=dev-a", "[>=0.0.0.0-dev, <1.0.0] || [>1.0.0, <∞] || !=dev-a"},
		// AND: numeric operands exclude branches entirely.
		{">=1.0.0, ==dev-a", "∅"},
		{"!=dev-a, <=5.0.0", "[>=0.0.0.0-dev, <=5.0.0]"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			form := Canonicalize(mustConstraint(t, tt.constraint))
			if got := form.String(); got != tt.expect {
				t.Fatalf("Canonicalize(%s) = %q, want %q", tt.constraint, got, tt.expect)
			}
		})
	}
}

func TestCanonicalizeEmptyComposite(t *testing.T) {
	t.Parallel()

	// An empty conjunction is the identity of AND and matches everything;
	// an empty disjunction is the identity of OR and matches nothing. The
	// two must not share a cache key, so check both canonicalization
	// orders on fresh engines.
	for _, andFirst := range []bool{true, false} {
		e := NewEngine()
		if andFirst {
			e.Canonicalize(NewAnd())
		} else {
			e.Canonicalize(NewOr())
		}

		if got := e.Canonicalize(NewAnd()).String(); got != "[>=0.0.0.0-dev, <∞] || dev*" {
			t.Fatalf("Canonicalize(empty AND) = %q (AND first: %v)", got, andFirst)
		}
		if form := e.Canonicalize(NewOr()); !form.IsEmpty() {
			t.Fatalf("Canonicalize(empty OR) = %q, want empty (AND first: %v)", form, andFirst)
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	t.Parallel()

	constraints := []string{
		">=1.0.0, <2.0.0",
		"<1.0.0 || >1.0.0",
		"!=dev-a || ==dev-b",
		"*",
	}

	for _, s := range constraints {
		t.Run(s, func(t *testing.T) {
			c := mustConstraint(t, s)
			first := Canonicalize(c)
			second := Canonicalize(c)
			if first != second {
				t.Fatal("expected the cached form to be returned on the second call")
			}
			if !formsEqual(first, second) {
				t.Fatalf("forms differ: %q vs %q", first, second)
			}
		})
	}
}

func TestCanonicalIntervalInvariants(t *testing.T) {
	t.Parallel()

	constraints := []string{
		"<1.0.0 || >1.0.0",
		">=1.0.0, <2.0.0 || >=3.0.0 || ==2.5.0",
		"!=1.0.0, !=2.0.0",
	}

	for _, s := range constraints {
		t.Run(s, func(t *testing.T) {
			form := Canonicalize(mustConstraint(t, s))
			for i, iv := range form.Numeric {
				if iv.isEmpty() {
					t.Fatalf("interval %d is empty: %s", i, iv)
				}
				if i == 0 {
					continue
				}
				prev := form.Numeric[i-1]
				if prev.Start.Version().Compare(iv.Start.Version()) >= 0 {
					t.Fatalf("intervals not ordered by start: %s before %s", prev, iv)
				}
				if prev.End.Version().Compare(iv.Start.Version()) > 0 {
					t.Fatalf("intervals overlap: %s and %s", prev, iv)
				}
			}
		})
	}
}
