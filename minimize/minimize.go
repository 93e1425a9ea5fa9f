// Package minimize implements Hopcroft partition refinement for unweighted
// (boolean) automata (C10): trim, build the reversal, initialize the
// final/non-final partition, and refine by predecessor sets until no
// partition can be split further.
//
// Grounded line-for-line in original_source/src/automata/minimize.rs's
// minimize_unweighted, including its worklist bookkeeping (replace a
// partition still on the stack in place rather than pushing a duplicate;
// push whichever half is smaller when the original partition was already
// consumed).
package minimize

import (
	"sort"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/lazy"
	"github.com/coregx/fsagrep/semiring"
	"github.com/coregx/fsagrep/vector"
	"github.com/coregx/fsagrep/visit"
)

// stateSet is a sorted, deduplicated set of states, used both for
// partitions and for predecessor sets — sorted slices give the same
// structural-equality-by-value the design notes call for elsewhere in
// this module, and keep iteration order deterministic.
type stateSet []automaton.State

func newSet(states []automaton.State) stateSet {
	s := append(stateSet(nil), states...)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s
}

func (a stateSet) contains(s automaton.State) bool {
	i := sort.Search(len(a), func(i int) bool { return a[i] >= s })
	return i < len(a) && a[i] == s
}

func intersectDiff(a, b stateSet) (inter, diff stateSet) {
	bs := map[automaton.State]bool{}
	for _, s := range b {
		bs[s] = true
	}
	for _, s := range a {
		if bs[s] {
			inter = append(inter, s)
		} else {
			diff = append(diff, s)
		}
	}
	return inter, diff
}

func equalSets(a, b stateSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Minimize returns the Hopcroft-minimized equivalent of m: m is first
// connected (C6), then its states are partitioned by iterative refinement
// against the reversal (C5's Reverse), and the quotient automaton is
// materialized with the partition containing the original initial state
// renumbered to state 0.
func Minimize(m *vector.FSA, zero, one semiring.Weight) (*vector.FSA, error) {
	if err := visit.Connect(m); err != nil {
		return nil, err
	}

	rev := lazy.NewReverse(m, zero, one)

	var allStates []automaton.State
	for _, s := range m.States() {
		allStates = append(allStates, s)
	}
	var finals []automaton.State
	for _, s := range allStates {
		if !m.FinalWeight(s).IsZero() {
			finals = append(finals, s)
		}
	}
	finalSet := newSet(finals)
	nonFinalSet := newSet(diffAll(allStates, finalSet))

	partitions := []stateSet{finalSet, nonFinalSet}
	stack := []stateSet{finalSet}

	for len(stack) > 0 {
		set := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		prevsByLabel := map[automaton.Label]map[automaton.State]bool{}
		var labelOrder []automaton.Label
		for _, s := range set {
			for _, rarc := range rev.Arcs(s + 1) {
				bucket, ok := prevsByLabel[rarc.Label]
				if !ok {
					bucket = map[automaton.State]bool{}
					prevsByLabel[rarc.Label] = bucket
					labelOrder = append(labelOrder, rarc.Label)
				}
				bucket[rarc.Next-1] = true
			}
		}
		sort.Slice(labelOrder, func(i, j int) bool { return labelOrder[i] < labelOrder[j] })

		for _, lab := range labelOrder {
			bucket := prevsByLabel[lab]
			var prevList []automaton.State
			for s := range bucket {
				prevList = append(prevList, s)
			}
			prevSet := newSet(prevList)

			var newPartitions []stateSet
			for _, partition := range partitions {
				inter, diff := intersectDiff(partition, prevSet)
				if len(inter) == 0 || len(diff) == 0 {
					newPartitions = append(newPartitions, partition)
					continue
				}
				newPartitions = append(newPartitions, inter, diff)

				found := false
				for i, elem := range stack {
					if equalSets(elem, partition) {
						stack[i] = inter
						found = true
					}
				}
				if found {
					stack = append(stack, diff)
				} else if len(inter) <= len(diff) {
					stack = append(stack, inter)
				} else {
					stack = append(stack, diff)
				}
			}
			partitions = newPartitions
		}
	}

	initPart := -1
	for i, part := range partitions {
		if part.contains(m.Init()) {
			initPart = i
		}
	}
	if initPart < 0 {
		panic("minimize: initial state not found in any partition")
	}
	partitions[0], partitions[initPart] = partitions[initPart], partitions[0]

	state2part := map[automaton.State]int{}
	for partID, part := range partitions {
		for _, s := range part {
			state2part[s] = partID
		}
	}

	ret := vector.New(zero)
	type quotientArc struct {
		label automaton.Label
		next  automaton.State
	}
	for partID, part := range partitions {
		st := ret.AddState()
		if int(st) != partID {
			panic("minimize: quotient state id did not match partition order")
		}
		isFinal := false
		arcSet := map[quotientArc]bool{}
		var arcOrder []quotientArc
		for _, os := range part {
			if !m.FinalWeight(os).IsZero() {
				isFinal = true
			}
			for _, a := range m.Arcs(os) {
				qa := quotientArc{label: a.Label, next: automaton.State(state2part[a.Next])}
				if !arcSet[qa] {
					arcSet[qa] = true
					arcOrder = append(arcOrder, qa)
				}
			}
		}
		sort.Slice(arcOrder, func(i, j int) bool {
			if arcOrder[i].label != arcOrder[j].label {
				return arcOrder[i].label < arcOrder[j].label
			}
			return arcOrder[i].next < arcOrder[j].next
		})
		for _, qa := range arcOrder {
			ret.AddArc(st, automaton.Arc{Label: qa.label, Weight: one, Next: qa.next})
		}
		if isFinal {
			ret.SetFinalWeight(st, one)
		}
	}
	return ret, nil
}

func diffAll(all []automaton.State, remove stateSet) []automaton.State {
	var out []automaton.State
	for _, s := range all {
		if !remove.contains(s) {
			out = append(out, s)
		}
	}
	return out
}
