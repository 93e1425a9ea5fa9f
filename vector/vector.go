// Package vector implements the materialized automaton representation
// (C3): two parallel slices indexed by dense state id — arcs[s] the
// outgoing arcs of s, finals[s] the final weight of s — plus a TSV debug
// codec (C16).
//
// Grounded in original_source/src/automata/vector.rs's VectorFSA: the
// struct shape (arcs Vec<Vec<SimpleArc>>, finals Vec<W>), the
// new_from_automaton BFS-discovery builder, and delete_states's
// renumbering algorithm are all reproduced with the same invariants.
package vector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/semiring"
)

// FSA is the materialized, dense-state-id automaton representation.
type FSA struct {
	arcs   [][]automaton.Arc
	finals []semiring.Weight
	zero   semiring.Weight
}

// New constructs an empty FSA over the given semiring's zero weight. zero
// must be the semiring's additive identity (e.g. semiring.BoolZero); every
// newly added state starts non-final (final weight zero).
func New(zero semiring.Weight) *FSA {
	return &FSA{zero: zero}
}

// FromMachine materializes src by breadth-first discovery from its
// initial state, assigning dense ids in discovery order. The initial
// state is required to receive id 0 (the BFS always visits it first).
func FromMachine(src automaton.Machine, zero semiring.Weight) *FSA {
	ret := New(zero)
	ids := make(map[automaton.State]automaton.State)

	getID := func(s automaton.State) (automaton.State, bool) {
		if id, ok := ids[s]; ok {
			return id, false
		}
		id := automaton.State(len(ids))
		ids[s] = id
		return id, true
	}

	init, isNew := getID(src.Init())
	if init != 0 {
		panic("vector: initial state did not receive id 0")
	}
	_ = isNew

	queue := []automaton.State{src.Init()}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		prev := ids[s]
		for ret.NStates() <= int(prev) {
			ret.AddState()
		}
		ret.SetFinalWeight(prev, src.FinalWeight(s))

		for _, arc := range src.Arcs(s) {
			next, fresh := getID(arc.Next)
			if fresh {
				queue = append(queue, arc.Next)
			}
			for ret.NStates() <= int(next) {
				ret.AddState()
			}
			ret.AddArc(prev, arc.WithNext(next))
		}
	}
	return ret
}

func (f *FSA) Init() automaton.State { return 0 }

func (f *FSA) NStates() int { return len(f.arcs) }

func (f *FSA) FinalWeight(s automaton.State) semiring.Weight {
	return f.finals[s]
}

func (f *FSA) Arcs(s automaton.State) []automaton.Arc {
	return f.arcs[s]
}

// States enumerates every state, reachable or not, in ascending id
// order — for an FSA built by FromMachine this coincides with
// breadth-first discovery order, since FromMachine assigns ids that way.
func (f *FSA) States() []automaton.State {
	out := make([]automaton.State, len(f.arcs))
	for i := range out {
		out[i] = automaton.State(i)
	}
	return out
}

func (f *FSA) AddState() automaton.State {
	n := automaton.State(len(f.arcs))
	f.arcs = append(f.arcs, nil)
	f.finals = append(f.finals, f.zero)
	return n
}

func (f *FSA) AddArc(s automaton.State, a automaton.Arc) {
	f.arcs[s] = append(f.arcs[s], a)
}

func (f *FSA) SetFinalWeight(s automaton.State, w semiring.Weight) {
	f.finals[s] = w
}

// DeleteStates compacts the FSA, dropping every state in remove and
// renumbering survivors while preserving their relative order; arcs
// targeting a removed state are dropped along with it. Returns
// ErrDeleteInitialState if remove contains state 0.
func (f *FSA) DeleteStates(remove []automaton.State) error {
	removeSet := make(map[automaton.State]bool, len(remove))
	for _, s := range remove {
		if s == 0 {
			return automaton.ErrDeleteInitialState
		}
		removeSet[s] = true
	}

	renumber := make([]automaton.State, len(f.arcs))
	next := automaton.State(0)
	for s := automaton.State(0); int(s) < len(f.arcs); s++ {
		if removeSet[s] {
			renumber[s] = -1
			continue
		}
		renumber[s] = next
		next++
	}

	newArcs := make([][]automaton.Arc, 0, next)
	newFinals := make([]semiring.Weight, 0, next)
	for s := automaton.State(0); int(s) < len(f.arcs); s++ {
		if removeSet[s] {
			continue
		}
		newFinals = append(newFinals, f.finals[s])
		var kept []automaton.Arc
		for _, a := range f.arcs[s] {
			if removeSet[a.Next] {
				continue
			}
			kept = append(kept, a.WithNext(renumber[a.Next]))
		}
		newArcs = append(newArcs, kept)
	}
	f.arcs = newArcs
	f.finals = newFinals
	return nil
}

// ErrMalformedTSV is returned by Load on unparseable input.
var ErrMalformedTSV = errors.New("vector: malformed TSV record")

// ParseWeight converts a TSV weight field into a semiring.Weight. Callers
// supply the parser matching the semiring in use (semiring.ParseBool for
// the boolean semiring the grep pipeline always uses).
type ParseWeight func(s string) (semiring.Weight, error)

// Dump writes f in the TSV debug format (spec §6): states in ascending
// id order, each preceded (if final weight is nonzero) by a final record
// `state\tweight`, followed by its arc records `state\tnext\tlabel\tweight`
// in arc order. Grounded in vector.rs's dump_tsv.
func Dump(w io.Writer, f *FSA) error {
	bw := bufio.NewWriter(w)
	for _, s := range f.States() {
		fw := f.FinalWeight(s)
		if !fw.IsZero() {
			if _, err := fmt.Fprintf(bw, "%d\t%s\n", s, fw.String()); err != nil {
				return err
			}
		}
		for _, a := range f.Arcs(s) {
			if _, err := fmt.Fprintf(bw, "%d\t%d\t%d\t%s\n", s, a.Next, a.Label, a.Weight.String()); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Load reads the TSV debug format into a new FSA, tolerating either
// 2-field (final) or 4-field (arc) records per line and growing state ids
// implicitly, exactly as vector.rs's load_tsv does.
func Load(r io.Reader, zero semiring.Weight, parse ParseWeight) (*FSA, error) {
	ret := New(zero)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 2:
			st, err := strconv.ParseInt(fields[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedTSV, err)
			}
			w, err := parse(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedTSV, err)
			}
			growTo(ret, automaton.State(st))
			ret.SetFinalWeight(automaton.State(st), w)
		case 4:
			p, err1 := strconv.ParseInt(fields[0], 10, 64)
			q, err2 := strconv.ParseInt(fields[1], 10, 64)
			lab, err3 := strconv.ParseUint(fields[2], 10, 8)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, ErrMalformedTSV
			}
			w, err := parse(fields[3])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedTSV, err)
			}
			maxPQ := p
			if q > maxPQ {
				maxPQ = q
			}
			growTo(ret, automaton.State(maxPQ))
			ret.AddArc(automaton.State(p), automaton.Arc{Label: automaton.Label(lab), Weight: w, Next: automaton.State(q)})
		default:
			return nil, fmt.Errorf("%w: expected 2 or 4 fields, got %d", ErrMalformedTSV, len(fields))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func growTo(f *FSA, s automaton.State) {
	for f.NStates() <= int(s) {
		f.AddState()
	}
}
