package intervals

import (
	"sync"
	"testing"
)

func TestEngineCanonicalizeCaches(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	c := mustConstraint(t, ">=1.0.0")

	first := e.Canonicalize(c)
	second := e.Canonicalize(c)
	if first != second {
		t.Fatal("expected the same cached form on the second call")
	}

	stats := e.Stats()
	if stats.CanonicalizeCalls != 2 {
		t.Fatalf("CanonicalizeCalls = %d, want 2", stats.CanonicalizeCalls)
	}
	if stats.CanonicalizeHits != 1 {
		t.Fatalf("CanonicalizeHits = %d, want 1", stats.CanonicalizeHits)
	}
	if stats.CachedForms != 1 {
		t.Fatalf("CachedForms = %d, want 1", stats.CachedForms)
	}
}

func TestEngineCachesCompositeChildren(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	e.Canonicalize(mustConstraint(t, ">=1.0.0, <2.0.0"))

	// The composite and both of its children are cached.
	if stats := e.Stats(); stats.CachedForms != 3 {
		t.Fatalf("CachedForms = %d, want 3", stats.CachedForms)
	}

	// A second composite sharing a child reuses its form.
	e.Canonicalize(mustConstraint(t, ">=1.0.0, <3.0.0"))
	stats := e.Stats()
	if stats.CachedForms != 5 {
		t.Fatalf("CachedForms = %d, want 5", stats.CachedForms)
	}
	if stats.CanonicalizeHits != 1 {
		t.Fatalf("CanonicalizeHits = %d, want 1", stats.CanonicalizeHits)
	}
}

func TestEngineClearCache(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	c := mustConstraint(t, ">=1.0.0")

	before := e.Canonicalize(c)
	e.Compile(c)
	e.ClearCache()

	stats := e.Stats()
	if stats.CachedForms != 0 || stats.CachedPredicates != 0 {
		t.Fatalf("caches not empty after ClearCache: %+v", stats)
	}
	if stats.CanonicalizeCalls != 0 || stats.CompileCalls != 0 {
		t.Fatalf("counters not reset after ClearCache: %+v", stats)
	}

	// Recomputation yields an equal but distinct form.
	after := e.Canonicalize(c)
	if before == after {
		t.Fatal("expected a fresh form after ClearCache")
	}
	if !formsEqual(before, after) {
		t.Fatalf("recomputed form differs: %q vs %q", before, after)
	}
}

func TestEngineConcurrentAccess(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	constraints := []Constraint{
		mustConstraint(t, ">=1.0.0, <2.0.0"),
		mustConstraint(t, "<1.0.0 || >1.0.0"),
		mustConstraint(t, "!=1.5.0"),
		mustConstraint(t, "==dev-main"),
	}
	v := MustVersion("1.5.0")

	var wg sync.WaitGroup
	forms := make([][]*CanonicalForm, 8)
	for i := range forms {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, c := range constraints {
				forms[i] = append(forms[i], e.Canonicalize(c))
				e.CompileAndMatch(c, OpEq, v)
				e.IsSubsetOf(c, c)
			}
		}(i)
	}
	wg.Wait()

	// Every goroutine must observe the same cached form per constraint.
	for i := 1; i < len(forms); i++ {
		for j := range constraints {
			if forms[i][j] != forms[0][j] {
				t.Fatalf("goroutine %d got a different form for %s", i, constraints[j])
			}
		}
	}
}
