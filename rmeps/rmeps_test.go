package rmeps

import (
	"testing"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/semiring"
	"github.com/coregx/fsagrep/vector"
)

// TestRmEpsScenario reproduces spec.md §8 scenario 4: RmEps on
// {0->1 eps, 1->2 on 1, 1->2 on 2, 1->2 eps, 2->2 eps, 2->3 eps, 3 final}
// should yield {0 final, 0->1 on 1, 0->1 on 2, 1 final}.
func TestRmEpsScenario(t *testing.T) {
	f := vector.New(semiring.BoolZero)
	for i := 0; i < 4; i++ {
		f.AddState()
	}
	f.AddArc(0, automaton.Arc{Label: automaton.Epsilon, Weight: semiring.BoolOne, Next: 1})
	f.AddArc(1, automaton.Arc{Label: 1, Weight: semiring.BoolOne, Next: 2})
	f.AddArc(1, automaton.Arc{Label: 2, Weight: semiring.BoolOne, Next: 2})
	f.AddArc(1, automaton.Arc{Label: automaton.Epsilon, Weight: semiring.BoolOne, Next: 2})
	f.AddArc(2, automaton.Arc{Label: automaton.Epsilon, Weight: semiring.BoolOne, Next: 2})
	f.AddArc(2, automaton.Arc{Label: automaton.Epsilon, Weight: semiring.BoolOne, Next: 3})
	f.SetFinalWeight(3, semiring.BoolOne)

	r := New(f, semiring.BoolZero, semiring.BoolOne)
	out := vector.FromMachine(r, semiring.BoolZero)

	if out.NStates() != 2 {
		t.Fatalf("RmEps result has %d states, want 2", out.NStates())
	}
	if out.FinalWeight(0).IsZero() {
		t.Fatal("state 0 (closure of original state 0) should be final — it epsilon-reaches final state 3")
	}
	if out.FinalWeight(1).IsZero() {
		t.Fatal("state 1 (closure of original state 1) should be final — it epsilon-reaches final state 3")
	}

	arcs0 := out.Arcs(0)
	if len(arcs0) != 2 {
		t.Fatalf("state 0 should have exactly 2 outgoing arcs (labels 1 and 2), got %v", arcs0)
	}
	labels := map[automaton.Label]bool{}
	for _, a := range arcs0 {
		labels[a.Label] = true
		if a.Next != 1 {
			t.Fatalf("arc %v should target the closure-of-state-1 state (id 1)", a)
		}
	}
	if !labels[1] || !labels[2] {
		t.Fatalf("state 0 should have arcs on both label 1 and label 2, got %v", arcs0)
	}
}

func TestRmEpsArcCacheDeterminism(t *testing.T) {
	f := vector.New(semiring.BoolZero)
	for i := 0; i < 3; i++ {
		f.AddState()
	}
	f.AddArc(0, automaton.Arc{Label: automaton.Epsilon, Weight: semiring.BoolOne, Next: 1})
	f.AddArc(1, automaton.Arc{Label: 'a', Weight: semiring.BoolOne, Next: 2})
	f.SetFinalWeight(2, semiring.BoolOne)

	r := New(f, semiring.BoolZero, semiring.BoolOne)
	init := r.Init()
	a1 := r.Arcs(init)
	a2 := r.Arcs(init)
	if len(a1) != len(a2) {
		t.Fatalf("Arcs(init) not stable across calls: %v vs %v", a1, a2)
	}
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("Arcs(init) not stable across calls: %v vs %v", a1, a2)
		}
	}
}
