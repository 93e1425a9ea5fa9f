package lazy

import (
	"github.com/coregx/fsagrep/arccache"
	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/semiring"
)

// ClosurePlus is the lazy Kleene-plus view (C5): same state space as the
// operand, with an extra epsilon arc of the final weight back to the
// operand's initial state from every final state. Grounded in
// original_source/src/automata/closure.rs.
type ClosurePlus struct {
	m     automaton.Machine
	cache *arccache.Cache
}

// NewClosurePlus builds the lazy Kleene-plus closure of m.
func NewClosurePlus(m automaton.Machine) *ClosurePlus {
	return &ClosurePlus{m: m, cache: arccache.New()}
}

func (c *ClosurePlus) Init() automaton.State { return c.m.Init() }

func (c *ClosurePlus) FinalWeight(s automaton.State) semiring.Weight {
	return c.m.FinalWeight(s)
}

func (c *ClosurePlus) Arcs(s automaton.State) []automaton.Arc {
	return c.cache.Query(s, func(s automaton.State) []automaton.Arc {
		out := append([]automaton.Arc(nil), c.m.Arcs(s)...)
		if fw := c.m.FinalWeight(s); !fw.IsZero() {
			out = append(out, automaton.Arc{Label: automaton.Epsilon, Weight: fw, Next: c.m.Init()})
		}
		return out
	})
}

func (c *ClosurePlus) States() []automaton.State {
	return automaton.BFSStates(c)
}

// singleAccept is the one-state FSA used as ClosureStar's empty-string
// operand: no arcs, final weight one.
type singleAccept struct {
	one semiring.Weight
}

func (s *singleAccept) Init() automaton.State                            { return 0 }
func (s *singleAccept) FinalWeight(automaton.State) semiring.Weight      { return s.one }
func (s *singleAccept) Arcs(automaton.State) []automaton.Arc             { return nil }
func (s *singleAccept) States() []automaton.State                        { return []automaton.State{0} }
func (s *singleAccept) NStates() int                                     { return 1 }

// closureStarInit forces the initial state's final weight to one on top
// of an otherwise-unmodified inner machine, matching spec 4.3's
// "result's initial state made final of weight one".
type closureStarInit struct {
	inner automaton.Machine
	one   semiring.Weight
}

func (w *closureStarInit) Init() automaton.State { return w.inner.Init() }

func (w *closureStarInit) FinalWeight(s automaton.State) semiring.Weight {
	if s == w.inner.Init() {
		return w.one
	}
	return w.inner.FinalWeight(s)
}

func (w *closureStarInit) Arcs(s automaton.State) []automaton.Arc { return w.inner.Arcs(s) }
func (w *closureStarInit) States() []automaton.State              { return w.inner.States() }

// NewClosureStar builds ClosureStar(m) = Concat(emptyAccept, ClosurePlus(m))
// with the result's initial state forced final of weight one, exactly as
// spec 4.3 defines it.
func NewClosureStar(m automaton.Machine, zero, one semiring.Weight) automaton.Machine {
	empty := &singleAccept{one: one}
	plus := NewClosurePlus(m)
	c := NewConcat(empty, plus, zero)
	return &closureStarInit{inner: c, one: one}
}
