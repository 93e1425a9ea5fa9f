package lazy

import (
	"github.com/coregx/fsagrep/arccache"
	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/internal/intern"
	"github.com/coregx/fsagrep/semiring"
)

type concatKey struct {
	right bool
	s     automaton.State
}

// Concat is the lazy concatenation view (C5): state is Left(s) or
// Right(s), final weight is zero on Left and R's final weight on Right,
// and every Left state whose operand final weight is nonzero gets an
// extra epsilon bridge arc into Right(R.Init). Grounded in
// original_source/src/automata/concat.rs.
type Concat struct {
	l, r     automaton.Machine
	interner *intern.Interner[concatKey]
	cache    *arccache.Cache
	zero     semiring.Weight
}

// NewConcat builds the lazy concatenation of l then r.
func NewConcat(l, r automaton.Machine, zero semiring.Weight) *Concat {
	return &Concat{l: l, r: r, interner: intern.New[concatKey](), cache: arccache.New(), zero: zero}
}

func (c *Concat) Init() automaton.State {
	return c.interner.ID(concatKey{false, c.l.Init()})
}

func (c *Concat) FinalWeight(s automaton.State) semiring.Weight {
	k := c.interner.Key(s)
	if !k.right {
		return c.zero
	}
	return c.r.FinalWeight(k.s)
}

func (c *Concat) Arcs(s automaton.State) []automaton.Arc {
	return c.cache.Query(s, func(s automaton.State) []automaton.Arc {
		k := c.interner.Key(s)
		if !k.right {
			var out []automaton.Arc
			for _, a := range c.l.Arcs(k.s) {
				out = append(out, a.WithNext(c.interner.ID(concatKey{false, a.Next})))
			}
			if fw := c.l.FinalWeight(k.s); !fw.IsZero() {
				rid := c.interner.ID(concatKey{true, c.r.Init()})
				out = append(out, automaton.Arc{Label: automaton.Epsilon, Weight: fw, Next: rid})
			}
			return out
		}
		var out []automaton.Arc
		for _, a := range c.r.Arcs(k.s) {
			out = append(out, a.WithNext(c.interner.ID(concatKey{true, a.Next})))
		}
		return out
	})
}

func (c *Concat) States() []automaton.State {
	return automaton.BFSStates(c)
}

// NStates returns L.n + R.n when both operands expose a known size.
func (c *Concat) NStates() (int, bool) {
	ls, lok := c.l.(automaton.Sized)
	rs, rok := c.r.(automaton.Sized)
	if !lok || !rok {
		return 0, false
	}
	return ls.NStates() + rs.NStates(), true
}
