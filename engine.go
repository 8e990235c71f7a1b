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
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Engine computes and memoizes canonical forms and compiled predicates,
// keyed by a constraint's canonical rendering. Both caches grow without
// bound and are never evicted automatically; long-lived processes should
// call ClearCache periodically.
//
// An Engine is safe for concurrent use. Racing computations of the same key
// are collapsed so only one goroutine does the work.
type Engine struct {
	mu         sync.RWMutex
	forms      map[string]*CanonicalForm
	predicates map[string]Predicate
	group      singleflight.Group

	formCalls      atomic.Int64
	formHits       atomic.Int64
	predicateCalls atomic.Int64
	predicateHits  atomic.Int64
}

// NewEngine creates an empty engine with its own caches.
func NewEngine() *Engine {
	return &Engine{
		forms:      make(map[string]*CanonicalForm),
		predicates: make(map[string]Predicate),
	}
}

// Canonicalize reduces a constraint tree to its canonical form, computing
// it on first use and serving the cached form afterwards. The returned form
// is shared and must be treated as read-only.
func (e *Engine) Canonicalize(c Constraint) *CanonicalForm {
	key := c.String()

	e.formCalls.Add(1)
	e.mu.RLock()
	f, ok := e.forms[key]
	e.mu.RUnlock()
	if ok {
		e.formHits.Add(1)
		return f
	}

	v, _, _ := e.group.Do("form\x00"+key, func() (any, error) {
		f := e.canonicalize(c, false)
		e.mu.Lock()
		e.forms[key] = f
		e.mu.Unlock()
		return f, nil
	})
	return v.(*CanonicalForm)
}

// Compile returns the reusable predicate for a constraint tree, compiling
// it on first use and serving the cached predicate afterwards.
func (e *Engine) Compile(c Constraint) Predicate {
	key := c.String()

	e.predicateCalls.Add(1)
	e.mu.RLock()
	p, ok := e.predicates[key]
	e.mu.RUnlock()
	if ok {
		e.predicateHits.Add(1)
		return p
	}

	v, _, _ := e.group.Do("pred\x00"+key, func() (any, error) {
		p := compilePredicate(c)
		e.mu.Lock()
		e.predicates[key] = p
		e.mu.Unlock()
		return p, nil
	})
	return v.(Predicate)
}

// ClearCache drops all cached canonical forms and compiled predicates and
// resets the cache statistics.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	e.forms = make(map[string]*CanonicalForm)
	e.predicates = make(map[string]Predicate)
	e.mu.Unlock()

	e.formCalls.Store(0)
	e.formHits.Store(0)
	e.predicateCalls.Store(0)
	e.predicateHits.Store(0)
}

// EngineStats reports cache performance counters.
type EngineStats struct {
	CanonicalizeCalls int64
	CanonicalizeHits  int64
	CompileCalls      int64
	CompileHits       int64

	CachedForms      int
	CachedPredicates int
}

// Stats returns a snapshot of the engine's cache statistics.
func (e *Engine) Stats() EngineStats {
	e.mu.RLock()
	forms, predicates := len(e.forms), len(e.predicates)
	e.mu.RUnlock()

	return EngineStats{
		CanonicalizeCalls: e.formCalls.Load(),
		CanonicalizeHits:  e.formHits.Load(),
		CompileCalls:      e.predicateCalls.Load(),
		CompileHits:       e.predicateHits.Load(),
		CachedForms:       forms,
		CachedPredicates:  predicates,
	}
}
