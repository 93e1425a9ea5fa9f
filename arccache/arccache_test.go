package arccache

import (
	"testing"

	"github.com/coregx/fsagrep/automaton"
	"github.com/coregx/fsagrep/semiring"
)

func TestQueryMemoizesAtMostOneExpansion(t *testing.T) {
	c := New()
	calls := 0
	expand := func(s automaton.State) []automaton.Arc {
		calls++
		return []automaton.Arc{{Label: 'a', Weight: semiring.BoolOne, Next: s + 1}}
	}

	first := c.Query(0, expand)
	second := c.Query(0, expand)

	if calls != 1 {
		t.Fatalf("expand called %d times, want 1", calls)
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Fatalf("cached arcs differ across calls: %v vs %v", first, second)
	}
}

func TestQueryPerKeyIndependence(t *testing.T) {
	c := New()
	calls := map[automaton.State]int{}
	expand := func(s automaton.State) []automaton.Arc {
		calls[s]++
		return []automaton.Arc{{Label: 'z', Weight: semiring.BoolOne, Next: s}}
	}

	c.Query(0, expand)
	c.Query(1, expand)
	c.Query(0, expand)

	if calls[0] != 1 || calls[1] != 1 {
		t.Fatalf("unexpected per-state call counts: %v", calls)
	}
}
