// Package litfilter implements the literal prefilter (C18): when a
// compiled pattern's AST reduces to a finite set of required literal
// byte sequences, an Aho-Corasick automaton over those literals can
// reject an input line without ever running the FSA runner. This is
// strictly a throughput optimization — a line is only ever skipped
// when it is provably impossible for it to match.
//
// Grounded in coregx-coregex/meta/compile.go's ahocorasick-backed
// literal strategy (buildStrategyEngines' UseAhoCorasick branch) and
// literal/seq.go's Literal/Seq shape, reusing the teacher's own
// literal-engine dependency github.com/coregx/ahocorasick.
package litfilter

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/fsagrep/literal"
	"github.com/coregx/fsagrep/rexp"
)

// maxAlternatives bounds the cross-product/union expansion Extract
// will perform before giving up and declaring the pattern inconclusive
// — without this, a pattern like (a|b|c|d){8} would blow up combinatorially.
const maxAlternatives = 64

// Extract walks n and returns the finite set of literal byte strings
// n requires at least one of (ok=true), or reports ok=false when n is
// not reducible to such a set (e.g. it contains Dot, Many0/Many1, or a
// character class too wide to enumerate as literal alternatives).
func Extract(n *rexp.Node) (lits [][]byte, ok bool) {
	switch n.Kind {
	case rexp.KindChar:
		buf := make([]byte, utf8.UTFMax)
		w := utf8.EncodeRune(buf, n.Char)
		return [][]byte{buf[:w]}, true

	case rexp.KindGroup:
		return Extract(n.Child)

	case rexp.KindCharSet:
		return extractCharSet(n.Items)

	case rexp.KindSeq:
		return extractSeq(n.Children)

	case rexp.KindOr:
		return extractOr(n.Children)

	default:
		// Dot, CharSetInv, Many0/Many1, Option, Repeat: none of these
		// is expanded into literal alternatives here, so the pattern is
		// reported inconclusive.
		return nil, false
	}
}

func extractCharSet(items []rexp.CharSetItem) ([][]byte, bool) {
	var runes []rune
	for _, it := range items {
		beg, end := it.Beg, it.End
		if end < beg {
			beg, end = end, beg
		}
		for r := beg; r <= end; r++ {
			runes = append(runes, r)
			if len(runes) > maxAlternatives {
				return nil, false
			}
		}
	}
	if len(runes) == 0 {
		return nil, false
	}
	out := make([][]byte, 0, len(runes))
	for _, r := range runes {
		buf := make([]byte, utf8.UTFMax)
		w := utf8.EncodeRune(buf, r)
		out = append(out, buf[:w])
	}
	return out, true
}

func extractSeq(children []*rexp.Node) ([][]byte, bool) {
	acc := [][]byte{nil}
	for _, c := range children {
		next, ok := Extract(c)
		if !ok {
			return nil, false
		}
		var combined [][]byte
		for _, prefix := range acc {
			for _, suffix := range next {
				joined := make([]byte, 0, len(prefix)+len(suffix))
				joined = append(joined, prefix...)
				joined = append(joined, suffix...)
				combined = append(combined, joined)
				if len(combined) > maxAlternatives {
					return nil, false
				}
			}
		}
		acc = combined
	}
	if len(acc) == 0 {
		return nil, false
	}
	return acc, true
}

func extractOr(children []*rexp.Node) ([][]byte, bool) {
	var out [][]byte
	for _, c := range children {
		lits, ok := Extract(c)
		if !ok {
			return nil, false
		}
		out = append(out, lits...)
		if len(out) > maxAlternatives {
			return nil, false
		}
	}
	return out, true
}

// Filter wraps an Aho-Corasick automaton built over a pattern's
// required literals.
type Filter struct {
	auto *ahocorasick.Automaton
}

// Build extracts n's required literals, minimizes the resulting set
// with literal.Seq.Minimize (dropping literals made redundant by a
// shorter one that is already a prefix of them) and, if the extraction
// is conclusive, returns a ready-to-use Filter. ok is false whenever
// Extract itself was inconclusive or the Aho-Corasick build failed.
func Build(n *rexp.Node) (*Filter, bool, error) {
	lits, ok := Extract(n)
	if !ok || len(lits) == 0 {
		return nil, false, nil
	}

	seqLits := make([]literal.Literal, 0, len(lits))
	for _, l := range lits {
		if len(l) == 0 {
			// A required literal of length zero (e.g. an empty
			// character class slipped through) can't prefilter
			// anything; bail out rather than build a useless automaton.
			return nil, false, nil
		}
		seqLits = append(seqLits, literal.NewLiteral(l, true))
	}
	seq := literal.NewSeq(seqLits...)
	seq.Minimize()
	if seq.IsEmpty() {
		return nil, false, nil
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false, err
	}
	return &Filter{auto: auto}, true, nil
}

// MayMatch reports whether line could possibly match the pattern
// Build was called with. false is a proof of non-match; true is not a
// guarantee of a match, only that the FSA runner must decide.
func (f *Filter) MayMatch(line []byte) bool {
	return f.auto.IsMatch(line)
}
