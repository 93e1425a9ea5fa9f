package lazy

import (
	"sort"

	"github.com/coregx/fsagrep/arccache"
	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/semiring"
)

// ArcSort wraps a machine, presenting each state's arcs materialized and
// stably sorted by less. Init, FinalWeight, and States pass through
// unchanged — only arc order changes. Grounded in
// original_source/src/automata/arcsort.rs.
type ArcSort struct {
	m     automaton.Machine
	less  func(a, b automaton.Arc) bool
	cache *arccache.Cache
}

// ByLabel is the comparator used by the optimization pipeline (C12) to
// canonicalize arcs for binary-search dispatch.
func ByLabel(a, b automaton.Arc) bool { return a.Label < b.Label }

// NewArcSort wraps m, sorting each state's arcs stably by less.
func NewArcSort(m automaton.Machine, less func(a, b automaton.Arc) bool) *ArcSort {
	return &ArcSort{m: m, less: less, cache: arccache.New()}
}

func (s *ArcSort) Init() automaton.State { return s.m.Init() }

func (s *ArcSort) FinalWeight(st automaton.State) semiring.Weight {
	return s.m.FinalWeight(st)
}

func (s *ArcSort) Arcs(st automaton.State) []automaton.Arc {
	return s.cache.Query(st, func(st automaton.State) []automaton.Arc {
		arcs := append([]automaton.Arc(nil), s.m.Arcs(st)...)
		sort.SliceStable(arcs, func(i, j int) bool { return s.less(arcs[i], arcs[j]) })
		return arcs
	})
}

func (s *ArcSort) States() []automaton.State { return s.m.States() }

// NStates passes through when the wrapped machine exposes a known size.
func (s *ArcSort) NStates() (int, bool) {
	sized, ok := s.m.(automaton.Sized)
	if !ok {
		return 0, false
	}
	return sized.NStates(), true
}
