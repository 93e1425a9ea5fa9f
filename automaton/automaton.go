// Package automaton defines the polymorphic automaton abstraction (state,
// arc, label, weight family) that every FSA representation and algebraic
// view in this module implements.
//
// Per the design notes on polymorphism over State/Arc/Weight/Label: Go has
// no associated-type mechanism that would let every algorithm in this
// package be generic over State/Label the way the original's trait system
// is. Rather than model a four-way type family with generics (which would
// force every composite state — Left/Right pairs, residual maps, closure
// maps — to be expressed as a type parameter threaded through a dozen
// packages), this module fixes State to an opaque int64 and Label to byte,
// as the grep use case allows, and keeps only the weight type polymorphic
// via the semiring.Weight interface. Composite state spaces (lazy views,
// determinize, rmeps) map their structural composite states onto this
// fixed int64 space through their own state tables; see intern.Interner.
package automaton

import (
	"errors"

	"github.com/coregx/fsagrep/semiring"
)

// State identifies a state within some automaton. For materialized FSAs it
// is a dense, non-negative integer id; for lazy views it is a synthetic id
// assigned on first encounter (see intern.Interner), ordered deterministically
// by discovery order.
type State = int64

// Label is the arc alphabet symbol. The grep pipeline always uses raw
// bytes; Epsilon is the distinguished "no input consumed" symbol.
type Label = byte

// Epsilon is the sentinel label meaning "no input consumed". It is fixed
// at byte 0x00 per the design notes: this collides with a legitimate
// input byte, so epsilon arcs must only ever appear transiently during NFA
// construction and be eliminated by rmeps before a machine is used to scan
// arbitrary (possibly binary) input.
const Epsilon Label = 0x00

// Arc is an immutable transition (label, weight, next-state) triple.
type Arc struct {
	Label Label
	Weight semiring.Weight
	Next  State
}

// WithNext returns a copy of a with its next-state replaced.
func (a Arc) WithNext(next State) Arc {
	a.Next = next
	return a
}

// Machine is the read-only automaton interface: initial state, final
// weight, outgoing arcs, and a lazy breadth-first enumeration of every
// reachable state (each yielded exactly once, per the automaton
// invariant). Implementations backed by an arc cache guarantee
// outgoing_arcs(s) returns the identical arc sequence on every call for
// the same s (referential transparency — required for the cache to ever
// hit, and relied upon by every algorithm downstream).
type Machine interface {
	// Init returns the initial state. It is always enumerable by States.
	Init() State
	// FinalWeight returns the final weight of s; zero means non-final.
	FinalWeight(s State) semiring.Weight
	// Arcs returns the outgoing arcs of s.
	Arcs(s State) []Arc
	// States enumerates every reachable state exactly once, in breadth
	// first discovery order from Init.
	States() []State
}

// Sized is implemented by automata with a known, finite state count
// (always true of materialized FSAs; never assumed of lazy views, whose
// size is a function of their operands' sizes only when those are known
// too).
type Sized interface {
	Machine
	NStates() int
}

// Mutable extends Machine with in-place construction operations, used by
// the materialized vector representation (vector.FSA) to build or rewrite
// an automaton.
type Mutable interface {
	Sized
	AddState() State
	AddArc(s State, a Arc)
	SetFinalWeight(s State, w semiring.Weight)
	// DeleteStates removes every state in remove, compacting and
	// renumbering survivors while preserving their relative order. It
	// returns ErrDeleteInitialState if remove contains the initial state,
	// rather than silently corrupting state 0 (design notes open question
	// #5).
	DeleteStates(remove []State) error
}

// BFSStates performs the breadth-first reachability enumeration every
// Machine.States implementation is required to produce: each state
// reachable from Init is yielded exactly once, in discovery order, and
// every arc target of a yielded state is itself yielded (spec §3's
// reachability-closure invariant).
func BFSStates(m Machine) []State {
	visited := map[State]bool{m.Init(): true}
	queue := []State{m.Init()}
	order := []State{m.Init()}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, a := range m.Arcs(s) {
			if !visited[a.Next] {
				visited[a.Next] = true
				queue = append(queue, a.Next)
				order = append(order, a.Next)
			}
		}
	}
	return order
}

var (
	// ErrDeleteInitialState is returned by Mutable.DeleteStates when asked
	// to remove the initial state (id 0); the original left this
	// unhandled, this implementation rejects it explicitly per design
	// notes open question #5.
	ErrDeleteInitialState = errors.New("automaton: cannot delete the initial state")
	// ErrInvalidState reports a state id out of the valid range for a
	// materialized automaton. No function in this module returns it:
	// vector.FSA's accessors do not bounds-check and panic on an
	// out-of-range id.
	ErrInvalidState = errors.New("automaton: invalid state id")
)
