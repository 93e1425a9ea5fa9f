package runner

import (
	"bufio"
	"io"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/internal/linescan"
	"github.com/coregx/fsagrep/vector"
)

// table holds a dense nStates x 256 transition table over the narrowed
// integer family I, plus the line-matching loop shared by every width
// instantiation (spec 4.11; grounded on
// original_source/src/runner/table.rs's TableFSARunner<I>).
//
// A missing arc is left at the zero value, which always means "go to
// state 0", i.e. restarting the scan at the current input position. In
// an FSA from pipeline.Optimize every state's row is populated except
// for byte 0x00: the head-skipper's self-loop on that byte carries the
// epsilon label and is removed by rmeps.
type table[I tableElement] struct {
	transition []I
	nStates    int
}

func buildTable[I tableElement](fsa *vector.FSA) *table[I] {
	n := fsa.NStates()
	t := &table[I]{transition: make([]I, n*256), nStates: n}
	for s := automaton.State(0); int(s) < n; s++ {
		for _, a := range fsa.Arcs(s) {
			next := int64(a.Next)
			if !fsa.FinalWeight(a.Next).IsZero() {
				next = -next
			}
			t.transition[int(s)*256+int(a.Label)] = I(next)
		}
	}
	return t
}

// Run feeds r line by line, restarting at state 0 for every line and
// printing each line (with its terminator, if any) to w whenever the
// scan ever reached a final state (spec 4.11's accepted-flag-sticks
// behavior: once set, it is not cleared until the next line).
func (t *table[I]) Run(r io.Reader, w io.Writer) error {
	sc := linescan.NewScanner(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for sc.Scan() {
		line := sc.Bytes()
		if t.matches(line) {
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

func (t *table[I]) matches(line []byte) bool {
	var st int64
	accepted := false
	for i := 0; i < len(line); i++ {
		v := int64(t.transition[int(st)*256+int(line[i])])
		if v < 0 {
			accepted = true
			v = -v
		}
		st = v
	}
	return accepted
}

// NewTableRunner builds the table runner (C13) for fsa, selecting the
// narrowest signed integer width (int8/int16/int32/int64) that can
// represent every state id, matching spec 4.11's table-width rule and
// original_source/src/runner/mod.rs's width-selection thresholds.
func NewTableRunner(fsa *vector.FSA) Runner {
	switch widthFor(fsa.NStates()) {
	case 8:
		return buildTable[int8](fsa)
	case 16:
		return buildTable[int16](fsa)
	case 32:
		return buildTable[int32](fsa)
	default:
		return buildTable[int64](fsa)
	}
}
