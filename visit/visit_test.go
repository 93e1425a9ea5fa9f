package visit

import (
	"fmt"
	"strings"
	"testing"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/semiring"
	"github.com/coregx/fsagrep/vector"
)

// buildFixture builds the fixed 6-state machine from spec.md §8 scenario
// 7 (state 5 is present but unreachable from the initial state, so it
// never appears in the DFS trace): 0 -1-> 1 -2-> 2 -3-> 3, then 3 -4-> 0
// (a back edge to the still-grey root) and 3 -9-> 4 (a tree edge to a
// leaf).
func buildFixture(t *testing.T) *vector.FSA {
	t.Helper()
	f := vector.New(semiring.BoolZero)
	for i := 0; i < 6; i++ {
		f.AddState()
	}
	f.AddArc(0, automaton.Arc{Label: 1, Weight: semiring.BoolOne, Next: 1})
	f.AddArc(1, automaton.Arc{Label: 2, Weight: semiring.BoolOne, Next: 2})
	f.AddArc(2, automaton.Arc{Label: 3, Weight: semiring.BoolOne, Next: 3})
	f.AddArc(3, automaton.Arc{Label: 4, Weight: semiring.BoolOne, Next: 0})
	f.AddArc(3, automaton.Arc{Label: 9, Weight: semiring.BoolOne, Next: 4})
	return f
}

func TestDFSEventTrace(t *testing.T) {
	f := buildFixture(t)
	var trace []string
	DFS(f, FuncVisitor(func(e Event) bool {
		switch e.Kind {
		case EnterState:
			trace = append(trace, fmt.Sprintf("EN%d", e.State))
		case ExitState:
			trace = append(trace, fmt.Sprintf("EX%d", e.State))
		case VisitTreeArc:
			trace = append(trace, fmt.Sprintf("VT%d,%d,%d", e.State, e.Arc.Next, e.Arc.Label))
		case VisitBackArc:
			trace = append(trace, fmt.Sprintf("VB%d,%d,%d", e.State, e.Arc.Next, e.Arc.Label))
		case VisitCrossArc:
			trace = append(trace, fmt.Sprintf("VC%d,%d,%d", e.State, e.Arc.Next, e.Arc.Label))
		}
		return true
	}), nil)

	got := strings.Join(trace, " ")
	want := "EN0 VT0,1,1 EN1 VT1,2,2 EN2 VT2,3,3 EN3 VB3,0,4 VT3,4,9 EN4 EX4 EX3 EX2 EX1 EX0"
	if got != want {
		t.Fatalf("DFS trace =\n  %s\nwant\n  %s", got, want)
	}
}

func TestDFSShortCircuitsOnFalse(t *testing.T) {
	f := buildFixture(t)
	seen := 0
	DFS(f, FuncVisitor(func(e Event) bool {
		if e.Kind == EnterState {
			seen++
			return seen < 2 // stop right after entering state 1
		}
		return true
	}), nil)
	if seen != 2 {
		t.Fatalf("expected traversal to stop after 2 EnterState events, got %d", seen)
	}
}

func TestDFSArcFilter(t *testing.T) {
	f := buildFixture(t)
	var entered []automaton.State
	// Filter out the label-9 arc entirely: state 4 must never be
	// visited.
	DFS(f, FuncVisitor(func(e Event) bool {
		if e.Kind == EnterState {
			entered = append(entered, e.State)
		}
		return true
	}), func(a automaton.Arc) bool { return a.Label != 9 })

	for _, s := range entered {
		if s == 4 {
			t.Fatal("state 4 should have been filtered out")
		}
	}
}

func TestAccessCoaccessAndConnect(t *testing.T) {
	f := vector.New(semiring.BoolZero)
	for i := 0; i < 5; i++ {
		f.AddState()
	}
	// 0 -> 1 -> 2 (final). 3 is reachable from 0 but is a dead end
	// (not coaccessible). 4 is unreachable from 0 entirely.
	f.AddArc(0, automaton.Arc{Label: 'a', Weight: semiring.BoolOne, Next: 1})
	f.AddArc(1, automaton.Arc{Label: 'b', Weight: semiring.BoolOne, Next: 2})
	f.AddArc(0, automaton.Arc{Label: 'c', Weight: semiring.BoolOne, Next: 3})
	f.SetFinalWeight(2, semiring.BoolOne)

	access, coaccess := AccessCoaccess(f)
	for _, s := range []automaton.State{0, 1, 2, 3} {
		if !access[s] {
			t.Fatalf("state %d should be access", s)
		}
	}
	if access[4] {
		t.Fatal("state 4 should not be access (unreachable)")
	}
	for _, s := range []automaton.State{0, 1, 2} {
		if !coaccess[s] {
			t.Fatalf("state %d should be coaccess", s)
		}
	}
	if coaccess[3] {
		t.Fatal("state 3 should not be coaccess (dead end)")
	}

	if err := Connect(f); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if f.NStates() != 3 {
		t.Fatalf("Connect should leave exactly the 3 access∩coaccess states, got %d", f.NStates())
	}
	if f.Init() != 0 {
		t.Fatal("Connect must preserve initial state id 0")
	}
}

func TestConnectRejectsDisconnectedInitialState(t *testing.T) {
	f := vector.New(semiring.BoolZero)
	f.AddState() // state 0, no arcs, never final: access but not coaccess
	f.AddState()
	f.SetFinalWeight(1, semiring.BoolOne) // unreachable from 0

	err := Connect(f)
	if err != automaton.ErrDeleteInitialState {
		t.Fatalf("Connect on a machine whose initial state isn't coaccessible = %v, want ErrDeleteInitialState", err)
	}
}
