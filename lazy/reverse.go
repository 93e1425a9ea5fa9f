package lazy

import (
	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/semiring"
)

// Reverse materializes the reversal of a Sized (materialized) automaton
// of n states into n+1 states: new state 0 is the new initial (never
// final), and for every arc (s -> t, l, w) of m a reversed arc
// (t+1 -> s+1, l, w) is emitted; every old final (s, w) additionally
// contributes an epsilon arc (0 -> s+1, w). Grounded in
// original_source/src/automata/reverse.rs. Unlike Concat/Union/Closure,
// reversal needs the predecessor structure of the whole machine up front
// (you cannot answer "what are the reversed-arcs out of t+1" without
// knowing every arc that targets t in m), so this view precomputes its
// arc index eagerly at construction rather than behind an arc cache —
// the cache technique only pays off when expansion is itself lazy, and
// here it is already fully determined by m's (already-materialized)
// data.
type Reverse struct {
	init automaton.State
	// byTarget[t] holds every reversed arc sourced from old state t
	// (i.e. new state t+1).
	byTarget [][]automaton.Arc
	initArcs []automaton.Arc
	zero     semiring.Weight
	one      semiring.Weight
}

// NewReverse builds the reversal of m.
func NewReverse(m automaton.Sized, zero, one semiring.Weight) *Reverse {
	n := m.NStates()
	byTarget := make([][]automaton.Arc, n)
	var initArcs []automaton.Arc
	for s := automaton.State(0); int(s) < n; s++ {
		for _, a := range m.Arcs(s) {
			byTarget[a.Next] = append(byTarget[a.Next], automaton.Arc{Label: a.Label, Weight: a.Weight, Next: s + 1})
		}
		if fw := m.FinalWeight(s); !fw.IsZero() {
			initArcs = append(initArcs, automaton.Arc{Label: automaton.Epsilon, Weight: fw, Next: s + 1})
		}
	}
	return &Reverse{init: m.Init(), byTarget: byTarget, initArcs: initArcs, zero: zero, one: one}
}

func (r *Reverse) Init() automaton.State { return 0 }

func (r *Reverse) FinalWeight(s automaton.State) semiring.Weight {
	if s == 0 {
		return r.zero
	}
	if s-1 == r.init {
		return r.one
	}
	return r.zero
}

func (r *Reverse) Arcs(s automaton.State) []automaton.Arc {
	if s == 0 {
		return r.initArcs
	}
	return r.byTarget[s-1]
}

func (r *Reverse) States() []automaton.State {
	return automaton.BFSStates(r)
}

func (r *Reverse) NStates() int { return len(r.byTarget) + 1 }
