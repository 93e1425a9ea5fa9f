// Package determinize implements weighted subset construction (C9): a
// determinized state is the canonical mapping source-state -> residual
// weight built up by Determinize.Arcs, requiring the operand's weight
// type to be weakly-left-divisible (semiring.Divisible).
//
// Grounded in original_source/src/automata/determinize.rs's
// DeterminizedMachine, with one corrected bug: the original's residual
// accumulation at a shared target state overwrites an existing entry
// ("TO DO: If there's already an entry, need to take a plus" in the
// source's own comment); this implementation combines contributions with
// Plus, per spec 4.7's explicit "implementations must not silently
// overwrite".
package determinize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/fsagrep/arccache"
	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/internal/intern"
	"github.com/coregx/fsagrep/semiring"
)

// entry is one (source-state, residual-weight) pair of a residual map.
type entry struct {
	state  automaton.State
	weight semiring.Divisible
}

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

// Determinize is the lazy weighted-subset-construction view (C9). Its
// state space is the set of distinct residual maps encountered, each
// interned to a dense id on first sight (spec 4.7's "a determinized
// state is a canonical mapping source-state -> residual-weight").
type Determinize struct {
	m        automaton.Machine
	zero     semiring.Divisible
	one      semiring.Divisible
	interner *intern.Interner[string]
	residues map[string][]entry
	cache    *arccache.Cache
}

// New builds the lazy determinization of m. zero/one must be the
// identities of m's (weakly-left-divisible) weight type.
func New(m automaton.Machine, zero, one semiring.Divisible) *Determinize {
	return &Determinize{
		m:        m,
		zero:     zero,
		one:      one,
		interner: intern.New[string](),
		residues: map[string][]entry{},
		cache:    arccache.New(),
	}
}

func (d *Determinize) idFor(entries []entry) automaton.State {
	key := canonicalKey(entries)
	if _, ok := d.residues[key]; !ok {
		d.residues[key] = entries
	}
	return d.interner.ID(key)
}

func (d *Determinize) Init() automaton.State {
	return d.idFor([]entry{{state: d.m.Init(), weight: d.one}})
}

func (d *Determinize) FinalWeight(s automaton.State) semiring.Weight {
	key := d.interner.Key(s)
	w := semiring.Weight(d.zero)
	for _, e := range d.residues[key] {
		fw := d.m.FinalWeight(e.state)
		if !fw.IsZero() {
			w = w.Plus(e.weight.Times(fw))
		}
	}
	return w
}

func (d *Determinize) Arcs(s automaton.State) []automaton.Arc {
	return d.cache.Query(s, func(s automaton.State) []automaton.Arc {
		key := d.interner.Key(s)
		residual := d.residues[key]

		labels := map[automaton.Label]bool{}
		for _, e := range residual {
			for _, a := range d.m.Arcs(e.state) {
				labels[a.Label] = true
			}
		}
		sortedLabels := make([]automaton.Label, 0, len(labels))
		for l := range labels {
			sortedLabels = append(sortedLabels, l)
		}
		sort.Slice(sortedLabels, func(i, j int) bool { return sortedLabels[i] < sortedLabels[j] })

		var out []automaton.Arc
		for _, l := range sortedLabels {
			transW := semiring.Weight(d.zero)
			for _, e := range residual {
				for _, a := range d.m.Arcs(e.state) {
					if a.Label == l {
						transW = transW.Plus(e.weight.Times(a.Weight))
					}
				}
			}

			nextResid := map[automaton.State]semiring.Weight{}
			var order []automaton.State
			for _, e := range residual {
				for _, a := range d.m.Arcs(e.state) {
					if a.Label != l {
						continue
					}
					rw, err := transW.(semiring.Divisible).Leftdiv(e.weight.Times(a.Weight))
					if err != nil {
						panic(err)
					}
					if cur, ok := nextResid[a.Next]; ok {
						nextResid[a.Next] = cur.Plus(rw)
					} else {
						nextResid[a.Next] = rw
						order = append(order, a.Next)
					}
				}
			}
			sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
			nextEntries := make([]entry, 0, len(order))
			for _, st := range order {
				nextEntries = append(nextEntries, entry{state: st, weight: nextResid[st].(semiring.Divisible)})
			}

			out = append(out, automaton.Arc{Label: l, Weight: transW, Next: d.idFor(nextEntries)})
		}
		return out
	})
}

func (d *Determinize) States() []automaton.State {
	return automaton.BFSStates(d)
}
