// Package dist implements generalized shortest distance (C7): a
// Bellman-Ford-style relaxation over an arbitrary semiring, filtered to a
// subgraph by an arc predicate, used by epsilon removal (C8) to compute
// each state's epsilon-closure.
//
// Grounded in original_source/src/automata/shortestdistance.rs for the
// breadth-first worklist structure (a FIFO queue plus a visited set to
// avoid re-enqueuing a state already pending), generalized per spec 4.5
// to accumulate d[s] ⊗ w rather than the original's plain w — the
// original only ever calls this with boolean weights, where d[s] is
// always `one` once s is reachable and the distinction is invisible, but
// the spec text is explicit that the relaxation step is d[t] ⊕ (d[s] ⊗ w),
// which is what makes this algorithm correct for a non-boolean semiring
// like semiring.Tropical too.
package dist

import (
	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/semiring"
)

// ShortestDistance computes, for every state reachable from s0 through
// arcs accepted by filter, its distance from s0 under the semiring
// implied by zero/one (d[s0] = one; relaxation d[t] := d[t] ⊕ (d[s] ⊗ w)
// for every accepted arc s -> t with weight w). filter may be nil to
// accept every arc. Returns only the states actually reached (including
// s0). Termination requires the semiring to be k-closed on the filtered
// subgraph, or that subgraph to be acyclic on nonzero weights — every
// caller in this module (epsilon-closure, reachability) satisfies this.
func ShortestDistance(
	m automaton.Machine,
	s0 automaton.State,
	zero, one semiring.Weight,
	filter func(automaton.Arc) bool,
) map[automaton.State]semiring.Weight {
	distance := map[automaton.State]semiring.Weight{s0: one}
	queued := map[automaton.State]bool{s0: true}
	queue := []automaton.State{s0}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		queued[s] = false

		for _, a := range m.Arcs(s) {
			if filter != nil && !filter(a) {
				continue
			}
			cur, ok := distance[a.Next]
			if !ok {
				cur = zero
			}
			nw := cur.Plus(distance[s].Times(a.Weight))
			if !nw.Equal(cur) {
				distance[a.Next] = nw
				if !queued[a.Next] {
					queued[a.Next] = true
					queue = append(queue, a.Next)
				}
			}
		}
	}
	return distance
}
