// Package rmeps implements epsilon removal (C8): rewrites every state to
// its epsilon-closure (a source-state -> weight mapping produced by C7
// restricted to epsilon-labeled arcs), so that outgoing arcs become the
// non-epsilon arcs reachable through that closure, weighted by the
// closure weight composed with the original arc weight.
//
// Grounded in original_source/src/automata/rmeps.rs for the per-state
// closure construction; the canonical-form requirement (closure maps
// with identical contents must compare equal, or the arc cache backing
// this lazy view would never hit) is implemented by encoding each closure
// as a sorted, canonically-formatted string key before interning it,
// rather than relying on map identity.
package rmeps

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/fsagrep/arccache"
	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/dist"
	"github.com/coregx/fsagrep/internal/intern"
	"github.com/coregx/fsagrep/semiring"
)

// entry is one (source-state, weight) pair of a closure mapping.
type entry struct {
	state  automaton.State
	weight semiring.Weight
}

func isEpsilon(a automaton.Arc) bool { return a.Label == automaton.Epsilon }

// canonicalKey renders a closure mapping into a string that is equal iff
// the mapping contents are equal — the structural-equality requirement
// the design notes call out explicitly for this component.
func canonicalKey(entries []entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatInt(e.state, 10))
		b.WriteByte(':')
		b.WriteString(e.weight.String())
	}
	return b.String()
}

// RmEps is the lazy epsilon-removal view (C8). Its state space is the set
// of distinct epsilon-closures encountered, each interned to a dense id
// on first sight.
type RmEps struct {
	m        automaton.Machine
	zero     semiring.Weight
	one      semiring.Weight
	interner *intern.Interner[string]
	closures map[string][]entry
	cache    *arccache.Cache
}

// New builds the lazy epsilon-removed view of m.
func New(m automaton.Machine, zero, one semiring.Weight) *RmEps {
	r := &RmEps{
		m:        m,
		zero:     zero,
		one:      one,
		interner: intern.New[string](),
		closures: map[string][]entry{},
		cache:    arccache.New(),
	}
	return r
}

func (r *RmEps) closureOf(s automaton.State) []entry {
	d := dist.ShortestDistance(r.m, s, r.zero, r.one, isEpsilon)
	entries := make([]entry, 0, len(d))
	for st, w := range d {
		entries = append(entries, entry{state: st, weight: w})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].state < entries[j].state })
	return entries
}

func (r *RmEps) idFor(entries []entry) automaton.State {
	key := canonicalKey(entries)
	if _, ok := r.closures[key]; !ok {
		r.closures[key] = entries
	}
	return r.interner.ID(key)
}

func (r *RmEps) Init() automaton.State {
	return r.idFor(r.closureOf(r.m.Init()))
}

func (r *RmEps) FinalWeight(s automaton.State) semiring.Weight {
	key := r.interner.Key(s)
	w := r.zero
	for _, e := range r.closures[key] {
		w = w.Plus(e.weight.Times(r.m.FinalWeight(e.state)))
	}
	return w
}

func (r *RmEps) Arcs(s automaton.State) []automaton.Arc {
	return r.cache.Query(s, func(s automaton.State) []automaton.Arc {
		key := r.interner.Key(s)
		var out []automaton.Arc
		for _, e := range r.closures[key] {
			for _, a := range r.m.Arcs(e.state) {
				if isEpsilon(a) {
					continue
				}
				nextEntries := r.closureOf(a.Next)
				nid := r.idFor(nextEntries)
				out = append(out, automaton.Arc{Label: a.Label, Weight: e.weight.Times(a.Weight), Next: nid})
			}
		}
		return out
	})
}

func (r *RmEps) States() []automaton.State {
	return automaton.BFSStates(r)
}
