package runner

import (
	"bufio"
	"io"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/internal/linescan"
	"github.com/coregx/fsagrep/vector"
)

// jit is the C14 runner. Spec 4.12 leaves the actual code generator as
// an implementation decision and only fixes the observable contract:
// given the same optimized FSA, it must accept exactly the same lines
// as the table runner, for every input. No native-codegen library
// appears anywhere in the retrieved example pack (see DESIGN.md), so
// this is a from-scratch Go runner honoring that contract by precomputing
// a packed output word per (state, byte) pair — the state/accept bit
// packed into a single value the way a generated dispatch table would
// read it — rather than reusing table's two-branch loop verbatim.
//
// Grounded in original_source/src/runner/jit.rs's IR shape (one output
// word per transition, sign/high-bit encodes finality) and
// original_source/src/runner/mod.rs's find_best_runner selection.
type jit[I tableElement] struct {
	// out packs, for each (state, byte), the next state, negated when
	// that state is final, so the sign of I carries the finality flag —
	// the "instruction operand" a real JIT would bake into generated code.
	out     []I
	nStates int
}

func buildJIT[I tableElement](fsa *vector.FSA) *jit[I] {
	n := fsa.NStates()
	j := &jit[I]{out: make([]I, n*256), nStates: n}
	for s := automaton.State(0); int(s) < n; s++ {
		for _, a := range fsa.Arcs(s) {
			next := int64(a.Next)
			if !fsa.FinalWeight(a.Next).IsZero() {
				next = -next
			}
			j.out[int(s)*256+int(a.Label)] = I(next)
		}
	}
	return j
}

// Run has the identical observable behavior as table.Run (spec 4.12's
// contract): same acceptance decision per line, same output. It is
// kept as a structurally separate execution loop (not a thin alias)
// since a genuine JIT would own its own dispatch path independent of
// the interpreted table runner.
func (j *jit[I]) Run(r io.Reader, w io.Writer) error {
	sc := linescan.NewScanner(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for sc.Scan() {
		line := sc.Bytes()
		if j.exec(line) {
			if _, werr := bw.Write(line); werr != nil {
				return werr
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return bw.Flush()
}

// exec replays the packed transition words for line, starting fresh
// from state 0 as every runner does per input line.
func (j *jit[I]) exec(line []byte) bool {
	var st int64
	accepted := false
	base := 0
	for i := 0; i < len(line); i++ {
		word := int64(j.out[base+int(line[i])])
		if word < 0 {
			accepted = true
			word = -word
		}
		st = word
		base = int(st) * 256
	}
	return accepted
}

// NewJITRunner builds the JIT-contract runner (C14) for fsa, using the
// same narrow-width selection as the table runner.
func NewJITRunner(fsa *vector.FSA) Runner {
	switch widthFor(fsa.NStates()) {
	case 8:
		return buildJIT[int8](fsa)
	case 16:
		return buildJIT[int16](fsa)
	case 32:
		return buildJIT[int32](fsa)
	default:
		return buildJIT[int64](fsa)
	}
}
