// Package visit implements the colored depth-first traversal (C6): an
// iterative three-color DFS from an automaton's initial state, emitting
// enter-state, exit-state (with parent), and arc-visit events classified
// as tree/back/cross depending on the target's color, with an optional
// arc filter and short-circuiting on a false return from any pre-event.
//
// Grounded line-for-line in original_source/src/automata/connect.rs's
// dfs_visit: the explicit (state, arc-iterator) stack avoids recursion
// per spec §5's "iterative...to avoid unbounded recursion", and only
// states reachable from the initial state are ever visited.
package visit

import "github.com/coregx/fsagrep/automaton"

type color uint8

const (
	white color = iota
	grey
	black
)

// Visitor receives DFS events. Every method has a default no-op
// implementation via BaseVisitor, matching the "trait with default no-op
// methods" shape from the design notes; FuncVisitor gives the second,
// single-closure shape.
type Visitor interface {
	// EnterState is called when s is first discovered. Returning false
	// stops the traversal immediately.
	EnterState(s automaton.State) bool
	// ExitState is called when every arc out of s has been processed.
	// hasParent is false when s is the initial state.
	ExitState(s automaton.State, parent automaton.State, hasParent bool)
	// VisitTreeArc is called for an arc to a white (undiscovered) state,
	// immediately before that state is entered. Returning false stops
	// the traversal.
	VisitTreeArc(from automaton.State, a automaton.Arc) bool
	// VisitBackArc is called for an arc to a grey (on the current DFS
	// stack) state. Returning false stops the traversal.
	VisitBackArc(from automaton.State, a automaton.Arc) bool
	// VisitCrossArc is called for an arc to a black (fully processed)
	// state. Returning false stops the traversal.
	VisitCrossArc(from automaton.State, a automaton.Arc) bool
}

// BaseVisitor implements Visitor with every method a no-op returning
// true; embed it to override only the events you need.
type BaseVisitor struct{}

func (BaseVisitor) EnterState(automaton.State) bool                             { return true }
func (BaseVisitor) ExitState(automaton.State, automaton.State, bool)             {}
func (BaseVisitor) VisitTreeArc(automaton.State, automaton.Arc) bool             { return true }
func (BaseVisitor) VisitBackArc(automaton.State, automaton.Arc) bool             { return true }
func (BaseVisitor) VisitCrossArc(automaton.State, automaton.Arc) bool            { return true }

// Event is the single-callback adapter's event sum, covering every
// Visitor method in one type so a plain func(Event) bool can satisfy
// Visitor via FuncVisitor.
type Event struct {
	Kind      EventKind
	State     automaton.State
	Parent    automaton.State
	HasParent bool
	Arc       automaton.Arc
}

type EventKind uint8

const (
	EnterState EventKind = iota
	ExitState
	VisitTreeArc
	VisitBackArc
	VisitCrossArc
)

// FuncVisitor adapts a single func(Event) bool into a Visitor, mirroring
// the original's blanket `impl<F: FnMut(VisitorEvent) -> bool> DFSVisitor
// for F`. The return value is ignored for ExitState, which cannot
// short-circuit the traversal (there is no event before it to abort).
type FuncVisitor func(Event) bool

func (f FuncVisitor) EnterState(s automaton.State) bool {
	return f(Event{Kind: EnterState, State: s})
}
func (f FuncVisitor) ExitState(s, parent automaton.State, hasParent bool) {
	f(Event{Kind: ExitState, State: s, Parent: parent, HasParent: hasParent})
}
func (f FuncVisitor) VisitTreeArc(from automaton.State, a automaton.Arc) bool {
	return f(Event{Kind: VisitTreeArc, State: from, Arc: a})
}
func (f FuncVisitor) VisitBackArc(from automaton.State, a automaton.Arc) bool {
	return f(Event{Kind: VisitBackArc, State: from, Arc: a})
}
func (f FuncVisitor) VisitCrossArc(from automaton.State, a automaton.Arc) bool {
	return f(Event{Kind: VisitCrossArc, State: from, Arc: a})
}

type frame struct {
	state automaton.State
	arcs  []automaton.Arc
	idx   int
}

// DFS traverses m from its initial state, calling v's methods as
// described above. filter, if non-nil, is consulted before an arc is
// classified; arcs it rejects are skipped entirely (no event fires).
func DFS(m automaton.Machine, v Visitor, filter func(automaton.Arc) bool) {
	colors := map[automaton.State]color{}
	start := m.Init()
	colors[start] = grey

	stack := []*frame{{state: start, arcs: m.Arcs(start)}}
	if !v.EnterState(start) {
		return
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.idx >= len(top.arcs) {
			colors[top.state] = black
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := stack[len(stack)-1].state
				v.ExitState(top.state, parent, true)
			} else {
				v.ExitState(top.state, 0, false)
			}
			continue
		}

		a := top.arcs[top.idx]
		top.idx++

		if filter != nil && !filter(a) {
			continue
		}

		switch colors[a.Next] {
		case white:
			if !v.VisitTreeArc(top.state, a) {
				return
			}
			colors[a.Next] = grey
			stack = append(stack, &frame{state: a.Next, arcs: m.Arcs(a.Next)})
			if !v.EnterState(a.Next) {
				return
			}
		case grey:
			if !v.VisitBackArc(top.state, a) {
				return
			}
		case black:
			if !v.VisitCrossArc(top.state, a) {
				return
			}
		}
	}
}
