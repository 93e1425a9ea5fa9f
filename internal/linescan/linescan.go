// Package linescan provides the CLI's line-splitter: a bufio.SplitFunc
// that keeps the trailing newline attached to each token, matching the
// runner's per-line reset-to-state-0 contract (spec 4.11/4.12).
package linescan

import (
	"bufio"
	"bytes"
	"io"
)

// maxLineSize bounds a single scanned line so a pathological input
// without any newline cannot force unbounded buffering.
const maxLineSize = 16 << 20

// splitLines is a bufio.SplitFunc that keeps the trailing '\n' attached
// to its line (the table/JIT runners reset to state 0 per line
// regardless, so this only affects whether the final byte fed is '\n').
func splitLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		return idx + 1, data[:idx+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// NewScanner returns a bufio.Scanner over r, with its token buffer
// sized to maxLineSize.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(splitLines)
	return sc
}
