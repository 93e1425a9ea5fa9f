package lazy

import (
	"github.com/coregx/fsagrep/arccache"
	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/internal/intern"
	"github.com/coregx/fsagrep/semiring"
)

type unionSide uint8

const (
	unionSuperInit unionSide = iota
	unionLeft
	unionRight
)

type unionKey struct {
	side unionSide
	s    automaton.State
}

// Union is the lazy union view (C5): state is SuperInit, Left(s), or
// Right(s); SuperInit has two weight-one epsilon arcs to Left(L.Init) and
// Right(R.Init). Grounded in original_source/src/automata/union.rs.
type Union struct {
	l, r     automaton.Machine
	interner *intern.Interner[unionKey]
	cache    *arccache.Cache
	zero     semiring.Weight
	one      semiring.Weight
}

// NewUnion builds the lazy union of l and r.
func NewUnion(l, r automaton.Machine, zero, one semiring.Weight) *Union {
	return &Union{l: l, r: r, interner: intern.New[unionKey](), cache: arccache.New(), zero: zero, one: one}
}

func (u *Union) Init() automaton.State {
	return u.interner.ID(unionKey{unionSuperInit, 0})
}

func (u *Union) FinalWeight(s automaton.State) semiring.Weight {
	k := u.interner.Key(s)
	switch k.side {
	case unionSuperInit:
		return u.zero
	case unionLeft:
		return u.l.FinalWeight(k.s)
	default:
		return u.r.FinalWeight(k.s)
	}
}

func (u *Union) Arcs(s automaton.State) []automaton.Arc {
	return u.cache.Query(s, func(s automaton.State) []automaton.Arc {
		k := u.interner.Key(s)
		switch k.side {
		case unionSuperInit:
			lid := u.interner.ID(unionKey{unionLeft, u.l.Init()})
			rid := u.interner.ID(unionKey{unionRight, u.r.Init()})
			return []automaton.Arc{
				{Label: automaton.Epsilon, Weight: u.one, Next: lid},
				{Label: automaton.Epsilon, Weight: u.one, Next: rid},
			}
		case unionLeft:
			var out []automaton.Arc
			for _, a := range u.l.Arcs(k.s) {
				out = append(out, a.WithNext(u.interner.ID(unionKey{unionLeft, a.Next})))
			}
			return out
		default:
			var out []automaton.Arc
			for _, a := range u.r.Arcs(k.s) {
				out = append(out, a.WithNext(u.interner.ID(unionKey{unionRight, a.Next})))
			}
			return out
		}
	})
}

func (u *Union) States() []automaton.State {
	return automaton.BFSStates(u)
}

// NStates returns L.n + R.n + 1 when both operands expose a known size.
func (u *Union) NStates() (int, bool) {
	ls, lok := u.l.(automaton.Sized)
	rs, rok := u.r.(automaton.Sized)
	if !lok || !rok {
		return 0, false
	}
	return ls.NStates() + rs.NStates() + 1, true
}
