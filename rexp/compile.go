package rexp

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/lazy"
	"github.com/coregx/fsagrep/rmeps"
	"github.com/coregx/fsagrep/semiring"
	"github.com/coregx/fsagrep/vector"
)

// printableASCIILo/Hi bound the Dot/CharSetInv alphabet per spec §9 note
// 2: printable ASCII [0x20, 0x7F) only, multibyte Dot left unimplemented.
const (
	printableASCIILo = 0x20
	printableASCIIHi = 0x7F
)

func materialize(m automaton.Machine) *vector.FSA {
	return vector.FromMachine(m, semiring.BoolZero)
}

// makeChar builds the linear chain over ch's UTF-8 byte encoding, final
// at the last state (spec 4.9's Char(c) construction).
func makeChar(ch rune) *vector.FSA {
	fsa := vector.New(semiring.BoolZero)
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], ch)
	prev := fsa.AddState()
	for i := 0; i < n; i++ {
		next := fsa.AddState()
		fsa.AddArc(prev, automaton.Arc{Label: buf[i], Weight: semiring.BoolOne, Next: next})
		prev = next
	}
	fsa.SetFinalWeight(prev, semiring.BoolOne)
	return fsa
}

// makeEmpty builds the single-state FSA accepting only the empty string.
func makeEmpty() *vector.FSA {
	fsa := vector.New(semiring.BoolZero)
	init := fsa.AddState()
	fsa.SetFinalWeight(init, semiring.BoolOne)
	return fsa
}

// makeDot builds the two-state FSA matching any one printable-ASCII byte
// (spec 4.9's Dot construction; spec §9 note 2 bounds it to ASCII).
func makeDot() *vector.FSA {
	fsa := vector.New(semiring.BoolZero)
	init := fsa.AddState()
	final := fsa.AddState()
	fsa.SetFinalWeight(final, semiring.BoolOne)
	for b := printableASCIILo; b < printableASCIIHi; b++ {
		fsa.AddArc(init, automaton.Arc{Label: automaton.Label(b), Weight: semiring.BoolOne, Next: final})
	}
	return fsa
}

// expandItems expands a CharSetItem list into the set of runes it
// denotes, with end < beg ranges silently reinterpreted as [end, beg]
// per spec §9 note 3 (applied to both CharSet and CharSetInv here,
// correcting the original's CharSetInv asymmetry).
func expandItems(items []CharSetItem) []rune {
	var out []rune
	for _, it := range items {
		beg, end := it.Beg, it.End
		if end < beg {
			beg, end = end, beg
		}
		for r := beg; r <= end; r++ {
			out = append(out, r)
		}
	}
	return out
}

// unionChars folds Union(Char(c0), Char(c1), ...) left to right; chars
// must be nonempty.
func unionChars(chars []rune) automaton.Machine {
	var ret automaton.Machine = makeChar(chars[0])
	for _, ch := range chars[1:] {
		ret = lazy.NewUnion(ret, makeChar(ch), semiring.BoolZero, semiring.BoolOne)
	}
	return ret
}

// makeCharSet builds CharSet(items): Union of Char(c) for every c the
// items enumerate, then passed through rmeps (spec 4.9).
func makeCharSet(items []CharSetItem) (*vector.FSA, error) {
	chars := expandItems(items)
	if len(chars) == 0 {
		return nil, fmt.Errorf("%w: empty character class", ErrParse)
	}
	u := unionChars(chars)
	return materialize(rmeps.New(u, semiring.BoolZero, semiring.BoolOne)), nil
}

// makeCharSetInv builds CharSetInv(items): Union of Char(c) for every
// printable-ASCII byte NOT matched by items; no rmeps (spec 4.9).
func makeCharSetInv(items []CharSetItem) (*vector.FSA, error) {
	excluded := map[rune]bool{}
	for _, r := range expandItems(items) {
		excluded[r] = true
	}
	var chars []rune
	for b := printableASCIILo; b < printableASCIIHi; b++ {
		if !excluded[rune(b)] {
			chars = append(chars, rune(b))
		}
	}
	if len(chars) == 0 {
		return nil, fmt.Errorf("%w: empty character class", ErrParse)
	}
	return materialize(unionChars(chars)), nil
}

// Compile translates n into an NFA by structural recursion (C11), using
// the lazy algebraic views of package lazy for Concat/Union/Closure and
// materializing only where the AST itself requires it (CharSet's rmeps
// pass, CharSetInv's fully expanded union). The result is always a
// boolean-weighted machine — the grep pipeline never uses any other
// semiring.
func Compile(n *Node) (automaton.Machine, error) {
	switch n.Kind {
	case KindChar:
		return makeChar(n.Char), nil
	case KindDot:
		return makeDot(), nil
	case KindCharSet:
		return makeCharSet(n.Items)
	case KindCharSetInv:
		return makeCharSetInv(n.Items)
	case KindGroup:
		return Compile(n.Child)
	case KindMany1:
		child, err := Compile(n.Child)
		if err != nil {
			return nil, err
		}
		return lazy.NewClosurePlus(child), nil
	case KindMany0:
		child, err := Compile(n.Child)
		if err != nil {
			return nil, err
		}
		return lazy.NewClosureStar(child, semiring.BoolZero, semiring.BoolOne), nil
	case KindOption:
		child, err := Compile(n.Child)
		if err != nil {
			return nil, err
		}
		return lazy.NewUnion(child, makeEmpty(), semiring.BoolZero, semiring.BoolOne), nil
	case KindRepeat:
		return compileRepeat(n)
	case KindOr:
		return compileOr(n)
	case KindSeq:
		return compileSeq(n)
	default:
		return nil, fmt.Errorf("rexp: unknown node kind %d", n.Kind)
	}
}

// compileRepeat builds Repeat(a, b, r): a concatenations of r, then b-a
// concatenations of Option(r) (spec 4.9).
func compileRepeat(n *Node) (automaton.Machine, error) {
	var ret automaton.Machine = makeEmpty()
	for i := 0; i < n.RepeatMin; i++ {
		child, err := Compile(n.Child)
		if err != nil {
			return nil, err
		}
		ret = lazy.NewConcat(ret, child, semiring.BoolZero)
	}
	for i := n.RepeatMin; i < n.RepeatMax; i++ {
		child, err := Compile(n.Child)
		if err != nil {
			return nil, err
		}
		opt := lazy.NewUnion(child, makeEmpty(), semiring.BoolZero, semiring.BoolOne)
		ret = lazy.NewConcat(ret, opt, semiring.BoolZero)
	}
	return ret, nil
}

// compileOr builds Or(children) as a left-to-right reduction under
// Union. The original source reduces the first pair under Concat before
// switching to Union for the remainder — a bug this authoritative spec
// corrects (see SPEC_FULL.md §9 / DESIGN.md): every child is joined by
// Union here.
func compileOr(n *Node) (automaton.Machine, error) {
	if len(n.Children) < 2 {
		return nil, fmt.Errorf("rexp: Or must have at least 2 children")
	}
	ret, err := Compile(n.Children[0])
	if err != nil {
		return nil, err
	}
	for _, c := range n.Children[1:] {
		child, err := Compile(c)
		if err != nil {
			return nil, err
		}
		ret = lazy.NewUnion(ret, child, semiring.BoolZero, semiring.BoolOne)
	}
	return ret, nil
}

// compileSeq builds Seq(children): left-to-right reduction under
// Concat; an empty Seq yields the single-state accepting-empty-string
// FSA (spec 4.9's edge case).
func compileSeq(n *Node) (automaton.Machine, error) {
	if len(n.Children) == 0 {
		return makeEmpty(), nil
	}
	ret, err := Compile(n.Children[0])
	if err != nil {
		return nil, err
	}
	for _, c := range n.Children[1:] {
		child, err := Compile(c)
		if err != nil {
			return nil, err
		}
		ret = lazy.NewConcat(ret, child, semiring.BoolZero)
	}
	return ret, nil
}
