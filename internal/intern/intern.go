// Package intern provides a small bijection between structural composite
// keys and dense automaton.State ids, assigned in discovery order.
//
// Every lazy view and every composite-state algorithm in this module
// (Concat/Union's Left/Right tags, determinize's residual maps, rmeps's
// closure maps) needs to map a structural state — per the design notes,
// "a tagged sum for union, a (left, right, filter) tuple for composition,
// a reference-counted immutable mapping source-state -> residual-weight
// for determinization" — onto the fixed int64 state space every
// automaton.Machine exposes. This is that one mapping, implemented once.
package intern

import "github.com/coregx/fsagrep/automaton"

// Interner assigns a fresh automaton.State to each distinct K on first
// sight, in discovery order, and remembers the mapping in both
// directions. K's equality (Go's built-in == for comparable types) must
// coincide with the structural equality the composite state requires —
// true of every K used in this module, each a small struct of comparable
// fields or a canonically-encoded string.
type Interner[K comparable] struct {
	ids  map[K]automaton.State
	keys []K
}

// New constructs an empty interner.
func New[K comparable]() *Interner[K] {
	return &Interner[K]{ids: make(map[K]automaton.State)}
}

// ID returns the id for k, assigning a fresh one in discovery order the
// first time k is seen.
func (n *Interner[K]) ID(k K) automaton.State {
	if id, ok := n.ids[k]; ok {
		return id
	}
	id := automaton.State(len(n.keys))
	n.ids[k] = id
	n.keys = append(n.keys, k)
	return id
}

// Key returns the structural key for a previously interned id.
func (n *Interner[K]) Key(id automaton.State) K {
	return n.keys[id]
}

// Len returns the number of distinct keys interned so far.
func (n *Interner[K]) Len() int {
	return len(n.keys)
}
