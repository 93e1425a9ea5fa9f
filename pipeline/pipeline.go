// Package pipeline implements the optimization pipeline (C12): prepend a
// head-skipper so whole-string matching becomes substring matching, then
// rmeps -> determinize -> minimize -> arcsort, producing a deterministic,
// minimal, arc-sorted FSA ready for the table or JIT runner.
//
// Grounded in original_source/src/runner/mod.rs's optimize_fsa and
// make_head_skipper.
package pipeline

import (
	"fmt"
	"io"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/config"
	"github.com/coregx/fsagrep/determinize"
	"github.com/coregx/fsagrep/lazy"
	"github.com/coregx/fsagrep/minimize"
	"github.com/coregx/fsagrep/rmeps"
	"github.com/coregx/fsagrep/semiring"
	"github.com/coregx/fsagrep/vector"
)

// headSkipper builds the one-state FSA with a self-loop on every byte
// [0, 256), accepting — the "head-skipper" of the glossary, which turns
// whole-string acceptance into "some prefix of the input ending here is
// a match" when concatenated in front of the compiled pattern.
func headSkipper() *vector.FSA {
	fsa := vector.New(semiring.BoolZero)
	init := fsa.AddState()
	fsa.SetFinalWeight(init, semiring.BoolOne)
	for b := 0; b < 256; b++ {
		fsa.AddArc(init, automaton.Arc{Label: automaton.Label(b), Weight: semiring.BoolOne, Next: init})
	}
	return fsa
}

// Optimize runs the full pipeline on nfa (the compiled but unoptimized
// pattern automaton) using config.DefaultConfig()'s state ceilings, and
// returns the deterministic, minimal, arc-sorted FSA the table/JIT
// runners execute. If dumpTSV is non-nil, the optimized FSA is dumped
// to it in the TSV debug format before returning (spec §6's
// RUSTRE_DUMP_OPTFSA contract).
func Optimize(nfa automaton.Machine, dumpTSV io.Writer) (*vector.FSA, error) {
	return OptimizeWithConfig(nfa, config.DefaultConfig(), dumpTSV)
}

// OptimizeWithConfig is Optimize with an explicit config.Config,
// enforcing cfg.MaxDeterminizeStates and cfg.MaxMinimizeStates as hard
// ceilings. Each ceiling is checked after its stage's result has been
// fully materialized, so it stops the later stages from running on an
// oversized machine but does not bound the memory the exceeding stage
// has already used.
func OptimizeWithConfig(nfa automaton.Machine, cfg config.Config, dumpTSV io.Writer) (*vector.FSA, error) {
	skipped := lazy.NewConcat(headSkipper(), nfa, semiring.BoolZero)

	removed := rmeps.New(skipped, semiring.BoolZero, semiring.BoolOne)

	det := determinize.New(removed, semiring.BoolZero, semiring.BoolOne)
	detVec := vector.FromMachine(det, semiring.BoolZero)
	if detVec.NStates() > cfg.MaxDeterminizeStates {
		return nil, fmt.Errorf("pipeline: determinize produced %d states, exceeding the %d-state ceiling", detVec.NStates(), cfg.MaxDeterminizeStates)
	}

	min, err := minimize.Minimize(detVec, semiring.BoolZero, semiring.BoolOne)
	if err != nil {
		return nil, err
	}
	if min.NStates() > cfg.MaxMinimizeStates {
		return nil, fmt.Errorf("pipeline: minimize produced %d states, exceeding the %d-state ceiling", min.NStates(), cfg.MaxMinimizeStates)
	}

	sorted := lazy.NewArcSort(min, lazy.ByLabel)
	final := vector.FromMachine(sorted, semiring.BoolZero)

	if dumpTSV != nil {
		if err := vector.Dump(dumpTSV, final); err != nil {
			return nil, err
		}
	}
	return final, nil
}
