// Package runner implements the two FSA execution backends (C13 table
// runner, C14 JIT-contract runner): both compile the same optimized,
// deterministic, minimal, arc-sorted FSA (pipeline.Optimize's output)
// into a dense state x 256 transition table and execute it line by line,
// signaling acceptance by the sign of the stored next-state.
//
// Grounded in original_source/src/runner/{mod,table,jit}.rs.
package runner

import "io"

// Runner executes a compiled FSA against a byte stream, printing every
// matching line verbatim, with its trailing newline, to its output. A
// final input line that has no newline is printed without one.
type Runner interface {
	Run(r io.Reader, w io.Writer) error
}

// tableElement is the narrowest signed integer family usable as a
// transition-table element; widthFor below picks the narrowest one that
// fits the automaton's state count (spec 4.11's "choose the narrowest
// signed integer type that fits n_states").
type tableElement interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// widthFor returns 8, 16, 32, or 64 depending on which signed integer
// width can represent every state id in [0, nStates) (and its negation,
// used to encode finality by sign).
func widthFor(nStates int) int {
	switch {
	case nStates < 0x80:
		return 8
	case nStates < 0x8000:
		return 16
	case nStates < 0x80000000:
		return 32
	default:
		return 64
	}
}
