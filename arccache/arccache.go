// Package arccache implements the per-state arc memoization (C4) that
// every lazy algebraic view builds on: a mapping from synthetic state id
// to its expanded, shared-immutable arc sequence, populated at most once
// per state.
//
// Grounded in original_source/src/automata/lazy.rs's ArcCache, whose
// RefCell<BTreeMap<S, Rc<Vec<A>>>> this reproduces as a plain Go map
// guarded by the single-threaded usage contract in spec §5 (lazy machines
// are not safe to share across goroutines, matching "callers must not
// share a lazy machine across threads").
package arccache

import "github.com/coregx/fsagrep/automaton"

// Cache memoizes Query(s, expand) so expand is invoked at most once per
// distinct key (a synthetic lazy-view state id). The returned slice must
// be treated as immutable by every caller — it may be the exact slice
// returned by a previous Query call for the same key.
type Cache struct {
	entries map[automaton.State][]automaton.Arc
}

// New constructs an empty arc cache.
func New() *Cache {
	return &Cache{entries: make(map[automaton.State][]automaton.Arc)}
}

// Query returns the cached arc sequence for s if present; otherwise it
// invokes expand(s), stores the result, and returns it. Repeated calls
// for the same s always return the identical slice, which is what gives
// lazy views their referential-transparency guarantee (spec §3's arc
// cache invariant, §8's arc-cache-determinism universal property).
func (c *Cache) Query(s automaton.State, expand func(automaton.State) []automaton.Arc) []automaton.Arc {
	if arcs, ok := c.entries[s]; ok {
		return arcs
	}
	arcs := expand(s)
	c.entries[s] = arcs
	return arcs
}
