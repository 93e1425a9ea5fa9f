package visit

import "github.com/coregx/fsagrep/automaton"

// AccessCoaccess computes the access set (states reachable from the
// initial state) and the coaccess set (states from which a final state
// is reachable) of m.
//
// This resolves design notes open question #1: the original computes
// coaccess in a single DFS pass that propagates it to the parent only on
// exit, which the design notes flag as potentially missing cases where a
// state's coaccess status is established after its own exit event. This
// implementation instead runs two independent passes — a forward DFS for
// access, and a reverse breadth-first search seeded at every final state
// for coaccess — exactly the "two-pass" remedy the design notes
// recommend, and takes its output as authoritative.
func AccessCoaccess(m automaton.Machine) (access, coaccess map[automaton.State]bool) {
	access = map[automaton.State]bool{}
	DFS(m, FuncVisitor(func(e Event) bool {
		if e.Kind == EnterState {
			access[e.State] = true
		}
		return true
	}), nil)

	preds := map[automaton.State][]automaton.State{}
	for s := range access {
		for _, a := range m.Arcs(s) {
			preds[a.Next] = append(preds[a.Next], s)
		}
	}

	coaccess = map[automaton.State]bool{}
	var queue []automaton.State
	for s := range access {
		if !m.FinalWeight(s).IsZero() {
			coaccess[s] = true
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, p := range preds[s] {
			if !coaccess[p] {
				coaccess[p] = true
				queue = append(queue, p)
			}
		}
	}
	return access, coaccess
}

// Connect deletes every state of m that is not both access and coaccess,
// via Mutable.DeleteStates (C3). It returns ErrDeleteInitialState,
// unmodified, if the initial state itself turns out not to be connected
// (e.g. the automaton accepts no string reachable from its start state) —
// Connect does not special-case that away, since silently keeping the
// initial state alive would violate the "preserves the language" property
// for an automaton whose language genuinely is empty from that state.
func Connect(m automaton.Mutable) error {
	access, coaccess := AccessCoaccess(m)
	var remove []automaton.State
	for _, s := range m.States() {
		if !access[s] || !coaccess[s] {
			remove = append(remove, s)
		}
	}
	return m.DeleteStates(remove)
}
