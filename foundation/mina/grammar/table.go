// File: table.go
// Title: LALR(1) Parse Table
// Description: The immutable action/goto table, conflict records and the
//              build-time report.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Accessors return production copies

package grammar

import (
	"fmt"
	"strings"

	"github.com/msto63/mina/foundation/mina/token"
)

// ActionType is the kind of parser action
type ActionType uint8

const (
	ActionError ActionType = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// String implements fmt.Stringer
func (t ActionType) String() string {
	switch t {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "error"
	}
}

// Action is one cell of the action table. Arg is the target state for
// shifts and the production index for reduces.
type Action struct {
	Type ActionType
	Arg  int
}

// String renders the action in the usual s12 / r3 / acc notation
func (a Action) String() string {
	switch a.Type {
	case ActionShift:
		return fmt.Sprintf("s%d", a.Arg)
	case ActionReduce:
		return fmt.Sprintf("r%d", a.Arg)
	case ActionAccept:
		return "acc"
	default:
		return "err"
	}
}

// ConflictKind distinguishes shift/reduce from reduce/reduce conflicts
type ConflictKind uint8

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

// Conflict records a table cell with more than one candidate action
type Conflict struct {
	State      int
	Lookahead  token.Kind
	Kind       ConflictKind
	Shift      int   // target state, shift/reduce only
	Reduce     []int // production indices
	Resolution ActionType
	Resolved   bool // decided by precedence
}

// String implements fmt.Stringer
func (c Conflict) String() string {
	how := "by precedence"
	if !c.Resolved {
		how = "by default"
	}
	if c.Kind == ShiftReduce {
		return fmt.Sprintf("state %d on %s: shift/reduce (s%d, r%d) resolved as %s %s",
			c.State, c.Lookahead, c.Shift, c.Reduce[0], c.Resolution, how)
	}
	return fmt.Sprintf("state %d on %s: reduce/reduce (r%d, r%d) resolved as r%d %s",
		c.State, c.Lookahead, c.Reduce[0], c.Reduce[1], min(c.Reduce[0], c.Reduce[1]), how)
}

// Table is an immutable LALR(1) parse table
type Table struct {
	name         string
	actions      [][]Action
	gotos        [][]int
	productions  []*Production
	nonterminals []string
	conflicts    []Conflict
	items        [][]string
}

func (g *automaton) buildTable() *Table {
	t := &Table{
		name:         g.name,
		actions:      make([][]Action, len(g.states)),
		gotos:        make([][]int, len(g.states)),
		productions:  g.prods,
		nonterminals: g.ntNames,
		items:        make([][]string, len(g.states)),
	}

	for s, st := range g.states {
		t.actions[s] = make([]Action, g.nTerm)
		t.gotos[s] = make([]int, len(g.ntNames))
		for i := range t.gotos[s] {
			t.gotos[s][i] = -1
		}

		for _, sym := range st.order {
			if g.isTerm(sym) {
				t.actions[s][sym] = Action{Type: ActionShift, Arg: st.trans[sym]}
			} else {
				t.gotos[s][sym-g.nTerm] = st.trans[sym]
			}
		}

		kernel := make([]laItem, len(st.kernel))
		for i, it := range st.kernel {
			kernel[i] = laItem{item: it, la: st.la[i]}
			t.items[s] = append(t.items[s], g.itemString(it))
		}

		blocked := make(map[int]bool)
		for _, ci := range g.closure1(kernel) {
			if ci.dot < len(g.rhs[ci.prod]) {
				continue
			}
			if ci.prod == 0 {
				t.actions[s][token.EOF] = Action{Type: ActionAccept}
				continue
			}
			ci.la.each(func(a int) {
				if a < g.nTerm {
					g.addReduce(t, s, a, ci.prod, blocked)
				}
			})
		}
	}
	return t
}

// addReduce places a reduce action, resolving conflicts with any action
// already in the cell. blocked marks cells made errors by nonassoc.
func (g *automaton) addReduce(t *Table, s, a, prod int, blocked map[int]bool) {
	cur := t.actions[s][a]
	reduce := Action{Type: ActionReduce, Arg: prod}

	switch cur.Type {
	case ActionError:
		if !blocked[a] {
			t.actions[s][a] = reduce
		}

	case ActionShift:
		c := Conflict{State: s, Lookahead: token.Kind(a), Kind: ShiftReduce, Shift: cur.Arg, Reduce: []int{prod}}
		pp := g.prods[prod].prec
		tp, ok := g.termPrec[token.Kind(a)]

		switch {
		case !ok || !pp.defined():
			c.Resolution = ActionShift
		case tp.rank > pp.rank:
			c.Resolution, c.Resolved = ActionShift, true
		case tp.rank < pp.rank:
			c.Resolution, c.Resolved = ActionReduce, true
		case tp.assoc == AssocLeft:
			c.Resolution, c.Resolved = ActionReduce, true
		case tp.assoc == AssocRight:
			c.Resolution, c.Resolved = ActionShift, true
		default:
			c.Resolution, c.Resolved = ActionError, true
		}

		switch c.Resolution {
		case ActionReduce:
			t.actions[s][a] = reduce
		case ActionError:
			t.actions[s][a] = Action{}
			blocked[a] = true
		}
		t.conflicts = append(t.conflicts, c)

	case ActionReduce:
		winner := min(cur.Arg, prod)
		t.conflicts = append(t.conflicts, Conflict{
			State:      s,
			Lookahead:  token.Kind(a),
			Kind:       ReduceReduce,
			Reduce:     []int{cur.Arg, prod},
			Resolution: ActionReduce,
		})
		t.actions[s][a] = Action{Type: ActionReduce, Arg: winner}
	}
}

// Name returns the grammar name
func (t *Table) Name() string {
	return t.name
}

// NumStates returns the number of automaton states
func (t *Table) NumStates() int {
	return len(t.actions)
}

// Action returns the action for a state and lookahead. Out-of-range
// arguments yield an error action.
func (t *Table) Action(state int, k token.Kind) Action {
	if state < 0 || state >= len(t.actions) || int(k) >= len(t.actions[state]) {
		return Action{}
	}
	return t.actions[state][k]
}

// Goto returns the successor state after reducing to nonterminal nt
func (t *Table) Goto(state, nt int) (int, bool) {
	if state < 0 || state >= len(t.gotos) || nt < 0 || nt >= len(t.gotos[state]) {
		return 0, false
	}
	next := t.gotos[state][nt]
	return next, next >= 0
}

// Expected returns the terminals with a non-error action in state, in kind
// order. The recovery pseudo-terminal is never included.
func (t *Table) Expected(state int) []token.Kind {
	if state < 0 || state >= len(t.actions) {
		return nil
	}
	var out []token.Kind
	for k, a := range t.actions[state] {
		if a.Type != ActionError && token.Kind(k) != token.ERROR {
			out = append(out, token.Kind(k))
		}
	}
	return out
}

// ShiftsError reports whether state can shift the recovery pseudo-terminal
func (t *Table) ShiftsError(state int) bool {
	return t.Action(state, token.ERROR).Type == ActionShift
}

// Production returns a copy of production i; production 0 is the
// augmented start
func (t *Table) Production(i int) *Production {
	if i < 0 || i >= len(t.productions) {
		return nil
	}
	return t.productions[i].clone()
}

// Productions returns copies of every production including the augmented
// start
func (t *Table) Productions() []*Production {
	out := make([]*Production, len(t.productions))
	for i, p := range t.productions {
		out[i] = p.clone()
	}
	return out
}

// Reduction returns the right-hand side length and nonterminal index of
// production i without copying it
func (t *Table) Reduction(i int) (rhsLen, nt int, ok bool) {
	if i < 0 || i >= len(t.productions) {
		return 0, 0, false
	}
	p := t.productions[i]
	return len(p.RHS), p.lhsID, true
}

// Labels returns the distinct reduce labels in declaration order,
// excluding the augmented start production
func (t *Table) Labels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range t.productions[1:] {
		if !seen[p.Label] {
			seen[p.Label] = true
			out = append(out, p.Label)
		}
	}
	return out
}

// Nonterminals returns nonterminal names by index
func (t *Table) Nonterminals() []string {
	return append([]string(nil), t.nonterminals...)
}

// Conflicts returns every conflict met during construction
func (t *Table) Conflicts() []Conflict {
	return append([]Conflict(nil), t.conflicts...)
}

// Unresolved returns the conflicts that precedence did not decide
func (t *Table) Unresolved() []Conflict {
	var out []Conflict
	for _, c := range t.conflicts {
		if !c.Resolved {
			out = append(out, c)
		}
	}
	return out
}

// Report summarizes the table for diagnostics
type Report struct {
	Grammar      string
	Terminals    int
	Nonterminals int
	Productions  []string
	States       []StateReport
	Conflicts    []Conflict
}

// StateReport lists the kernel items and non-error actions of one state
type StateReport struct {
	ID      int
	Items   []string
	Actions []string
	Gotos   []string
}

// Report builds a diagnostic report of the table
func (t *Table) Report() *Report {
	r := &Report{
		Grammar:      t.name,
		Terminals:    token.Count(),
		Nonterminals: len(t.nonterminals),
		Conflicts:    t.Conflicts(),
	}
	for _, p := range t.productions {
		r.Productions = append(r.Productions, fmt.Sprintf("%d: %s", p.Index, p))
	}
	for s := range t.actions {
		sr := StateReport{ID: s, Items: t.items[s]}
		for k, a := range t.actions[s] {
			if a.Type != ActionError {
				sr.Actions = append(sr.Actions, fmt.Sprintf("%s %s", token.Kind(k), a))
			}
		}
		for nt, next := range t.gotos[s] {
			if next >= 0 {
				sr.Gotos = append(sr.Gotos, fmt.Sprintf("%s %d", t.nonterminals[nt], next))
			}
		}
		r.States = append(r.States, sr)
	}
	return r
}

// String renders the report as plain text
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grammar %s: %d terminals, %d nonterminals, %d productions, %d states\n",
		r.Grammar, r.Terminals, r.Nonterminals, len(r.Productions), len(r.States))

	sb.WriteString("\nproductions:\n")
	for _, p := range r.Productions {
		fmt.Fprintf(&sb, "  %s\n", p)
	}

	for _, s := range r.States {
		fmt.Fprintf(&sb, "\nstate %d\n", s.ID)
		for _, it := range s.Items {
			fmt.Fprintf(&sb, "  %s\n", it)
		}
		for _, a := range s.Actions {
			fmt.Fprintf(&sb, "    %s\n", a)
		}
		for _, g := range s.Gotos {
			fmt.Fprintf(&sb, "    goto %s\n", g)
		}
	}

	fmt.Fprintf(&sb, "\nconflicts: %d\n", len(r.Conflicts))
	for _, c := range r.Conflicts {
		fmt.Fprintf(&sb, "  %s\n", c)
	}
	return sb.String()
}
