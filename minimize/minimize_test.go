package minimize

import (
	"testing"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/semiring"
	"github.com/coregx/fsagrep/vector"
)

// TestMinimizeScenario reproduces spec.md §8 scenario 3: minimize on the
// 5-state FSA {0->1 on 1,2,3; 0->2 on 4,6; 1->3 on 6,7; 2->4 on 6,7;
// 3,4 final} should yield a 3-state FSA in which states 1 and 2 merge
// and states 3 and 4 merge.
func TestMinimizeScenario(t *testing.T) {
	f := vector.New(semiring.BoolZero)
	for i := 0; i < 5; i++ {
		f.AddState()
	}
	f.AddArc(0, automaton.Arc{Label: 1, Weight: semiring.BoolOne, Next: 1})
	f.AddArc(0, automaton.Arc{Label: 2, Weight: semiring.BoolOne, Next: 1})
	f.AddArc(0, automaton.Arc{Label: 3, Weight: semiring.BoolOne, Next: 1})
	f.AddArc(0, automaton.Arc{Label: 4, Weight: semiring.BoolOne, Next: 2})
	f.AddArc(0, automaton.Arc{Label: 6, Weight: semiring.BoolOne, Next: 2})
	f.AddArc(1, automaton.Arc{Label: 6, Weight: semiring.BoolOne, Next: 3})
	f.AddArc(1, automaton.Arc{Label: 7, Weight: semiring.BoolOne, Next: 3})
	f.AddArc(2, automaton.Arc{Label: 6, Weight: semiring.BoolOne, Next: 4})
	f.AddArc(2, automaton.Arc{Label: 7, Weight: semiring.BoolOne, Next: 4})
	f.SetFinalWeight(3, semiring.BoolOne)
	f.SetFinalWeight(4, semiring.BoolOne)

	out, err := Minimize(f, semiring.BoolZero, semiring.BoolOne)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if out.NStates() != 3 {
		t.Fatalf("minimized FSA has %d states, want 3", out.NStates())
	}

	// Exactly one state is final in the quotient (the merge of 3 and 4).
	finals := 0
	for _, s := range out.States() {
		if !out.FinalWeight(s).IsZero() {
			finals++
		}
	}
	if finals != 1 {
		t.Fatalf("minimized FSA has %d final states, want 1 (states 3,4 should merge)", finals)
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	f := vector.New(semiring.BoolZero)
	for i := 0; i < 3; i++ {
		f.AddState()
	}
	f.AddArc(0, automaton.Arc{Label: 'a', Weight: semiring.BoolOne, Next: 1})
	f.AddArc(1, automaton.Arc{Label: 'b', Weight: semiring.BoolOne, Next: 2})
	f.SetFinalWeight(2, semiring.BoolOne)

	once, err := Minimize(f, semiring.BoolZero, semiring.BoolOne)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	twice, err := Minimize(once, semiring.BoolZero, semiring.BoolOne)
	if err != nil {
		t.Fatalf("Minimize (second pass): %v", err)
	}
	if once.NStates() != twice.NStates() {
		t.Fatalf("minimize is not idempotent: %d states then %d states", once.NStates(), twice.NStates())
	}
}

func TestMinimizePreservesInitialStateZero(t *testing.T) {
	f := vector.New(semiring.BoolZero)
	for i := 0; i < 4; i++ {
		f.AddState()
	}
	f.AddArc(0, automaton.Arc{Label: 'a', Weight: semiring.BoolOne, Next: 1})
	f.AddArc(1, automaton.Arc{Label: 'b', Weight: semiring.BoolOne, Next: 2})
	f.SetFinalWeight(2, semiring.BoolOne)
	// state 3 is unreachable; Connect (inside Minimize) should drop it.

	out, err := Minimize(f, semiring.BoolZero, semiring.BoolOne)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if out.Init() != 0 {
		t.Fatal("minimized FSA must keep initial state id 0")
	}
}
