// File: lalr.go
// Title: LALR(1) Automaton Construction
// Description: LR(0) item sets with LALR(1) lookaheads computed by
//              spontaneous generation and propagation between kernel items.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation
// - 2026-10-19 v0.1.1: Productions are copied from the builder

package grammar

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/msto63/mina/foundation/mina/token"
)

// Symbols are encoded as ints: terminals are their token kind, nonterminal
// i is nTerm+i. Nonterminal 0 is $accept and production 0 is $accept -> start.
type automaton struct {
	name     string
	nTerm    int
	dummy    int
	termPrec map[token.Kind]Level

	ntNames    []string
	prods      []*Production
	rhs        [][]int
	prodsByLHS [][]int

	nullable []bool
	first    []termSet

	states     []*lr0State
	stateIndex map[string]int
}

type item struct {
	prod int
	dot  int
}

type lr0State struct {
	kernel    []item
	kernelIdx map[item]int
	trans     map[int]int
	order     []int
	la        []termSet
	propagate [][][2]int
}

type laItem struct {
	item
	la termSet
}

func newAutomaton(b *Builder) *automaton {
	g := &automaton{
		name:       b.name,
		nTerm:      token.Count(),
		termPrec:   b.termPrec,
		stateIndex: make(map[string]int),
	}
	g.dummy = g.nTerm

	ntIndex := map[string]int{acceptSymbol: 0}
	g.ntNames = []string{acceptSymbol}
	for _, p := range b.productions {
		if _, ok := ntIndex[p.LHS]; !ok {
			ntIndex[p.LHS] = len(g.ntNames)
			g.ntNames = append(g.ntNames, p.LHS)
		}
	}

	accept := &Production{Index: 0, Label: acceptSymbol, LHS: acceptSymbol, RHS: []Symbol{N(b.start)}}
	g.prods = make([]*Production, 0, len(b.productions)+1)
	g.prods = append(g.prods, accept)
	for _, p := range b.productions {
		g.prods = append(g.prods, p.clone())
	}
	g.prodsByLHS = make([][]int, len(g.ntNames))

	for i, p := range g.prods {
		p.Index = i
		p.lhsID = ntIndex[p.LHS]
		g.prodsByLHS[p.lhsID] = append(g.prodsByLHS[p.lhsID], i)

		codes := make([]int, len(p.RHS))
		var last Level
		for j, s := range p.RHS {
			if s.terminal {
				codes[j] = int(s.kind)
				if lvl, ok := g.termPrec[s.kind]; ok {
					last = lvl
				}
			} else {
				codes[j] = g.nTerm + ntIndex[s.name]
			}
		}
		g.rhs = append(g.rhs, codes)
		if !p.prec.defined() {
			p.prec = last
		}
	}
	return g
}

func (g *automaton) isTerm(sym int) bool {
	return sym < g.nTerm
}

func (g *automaton) symbolName(sym int) string {
	if g.isTerm(sym) {
		return token.Kind(sym).String()
	}
	return g.ntNames[sym-g.nTerm]
}

func (g *automaton) computeNullable() {
	g.nullable = make([]bool, len(g.ntNames))
	for changed := true; changed; {
		changed = false
		for i, p := range g.prods {
			if g.nullable[p.lhsID] {
				continue
			}
			if g.seqNullable(g.rhs[i]) {
				g.nullable[p.lhsID] = true
				changed = true
			}
		}
	}
}

func (g *automaton) seqNullable(seq []int) bool {
	for _, sym := range seq {
		if g.isTerm(sym) || !g.nullable[sym-g.nTerm] {
			return false
		}
	}
	return true
}

func (g *automaton) computeFirst() {
	g.first = make([]termSet, len(g.ntNames))
	for i := range g.first {
		g.first[i] = newTermSet(g.nTerm + 1)
	}
	for changed := true; changed; {
		changed = false
		for i, p := range g.prods {
			f, _ := g.firstOf(g.rhs[i])
			if g.first[p.lhsID].union(f) {
				changed = true
			}
		}
	}
}

// firstOf returns FIRST(seq) and whether seq derives the empty string
func (g *automaton) firstOf(seq []int) (termSet, bool) {
	out := newTermSet(g.nTerm + 1)
	for _, sym := range seq {
		if g.isTerm(sym) {
			out.add(sym)
			return out, false
		}
		nt := sym - g.nTerm
		out.union(g.first[nt])
		if !g.nullable[nt] {
			return out, false
		}
	}
	return out, true
}

func (g *automaton) closure0(kernel []item) []item {
	items := append([]item(nil), kernel...)
	added := make(map[int]bool)
	for i := 0; i < len(items); i++ {
		it := items[i]
		rhs := g.rhs[it.prod]
		if it.dot >= len(rhs) || g.isTerm(rhs[it.dot]) {
			continue
		}
		nt := rhs[it.dot] - g.nTerm
		if added[nt] {
			continue
		}
		added[nt] = true
		for _, q := range g.prodsByLHS[nt] {
			items = append(items, item{prod: q})
		}
	}
	return items
}

// closure1 is the LR(1) closure of kernel items carrying lookahead sets
func (g *automaton) closure1(kernel []laItem) []laItem {
	items := make([]laItem, 0, len(kernel))
	index := make(map[item]int)
	queued := make(map[int]bool)
	var work []int

	for _, k := range kernel {
		index[k.item] = len(items)
		queued[len(items)] = true
		work = append(work, len(items))
		items = append(items, laItem{item: k.item, la: k.la.clone()})
	}

	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]
		queued[i] = false

		it := items[i]
		rhs := g.rhs[it.prod]
		if it.dot >= len(rhs) || g.isTerm(rhs[it.dot]) {
			continue
		}

		la, nullable := g.firstOf(rhs[it.dot+1:])
		if nullable {
			la.union(it.la)
		}

		for _, q := range g.prodsByLHS[rhs[it.dot]-g.nTerm] {
			key := item{prod: q}
			j, ok := index[key]
			if !ok {
				j = len(items)
				index[key] = j
				items = append(items, laItem{item: key, la: la.clone()})
			} else if !items[j].la.union(la) {
				continue
			}
			if !queued[j] {
				queued[j] = true
				work = append(work, j)
			}
		}
	}
	return items
}

func kernelKey(kernel []item) string {
	var sb strings.Builder
	for _, it := range kernel {
		sb.WriteString(strconv.Itoa(it.prod))
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(it.dot))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func (g *automaton) addState(kernel []item) int {
	key := kernelKey(kernel)
	if id, ok := g.stateIndex[key]; ok {
		return id
	}
	st := &lr0State{
		kernel:    kernel,
		kernelIdx: make(map[item]int, len(kernel)),
		trans:     make(map[int]int),
	}
	for i, it := range kernel {
		st.kernelIdx[it] = i
	}
	id := len(g.states)
	g.states = append(g.states, st)
	g.stateIndex[key] = id
	return id
}

func (g *automaton) buildLR0() {
	g.addState([]item{{prod: 0, dot: 0}})

	for s := 0; s < len(g.states); s++ {
		st := g.states[s]
		groups := make(map[int][]item)
		var order []int
		for _, it := range g.closure0(st.kernel) {
			rhs := g.rhs[it.prod]
			if it.dot >= len(rhs) {
				continue
			}
			sym := rhs[it.dot]
			if _, seen := groups[sym]; !seen {
				order = append(order, sym)
			}
			groups[sym] = append(groups[sym], item{prod: it.prod, dot: it.dot + 1})
		}
		for _, sym := range order {
			kernel := groups[sym]
			sort.Slice(kernel, func(i, j int) bool {
				if kernel[i].prod != kernel[j].prod {
					return kernel[i].prod < kernel[j].prod
				}
				return kernel[i].dot < kernel[j].dot
			})
			st.trans[sym] = g.addState(kernel)
		}
		st.order = order
	}
}

// computeLookaheads determines spontaneous lookaheads and propagation
// links for every kernel item, then propagates to a fixed point.
func (g *automaton) computeLookaheads() {
	for _, st := range g.states {
		st.la = make([]termSet, len(st.kernel))
		st.propagate = make([][][2]int, len(st.kernel))
		for i := range st.la {
			st.la[i] = newTermSet(g.nTerm + 1)
		}
	}
	g.states[0].la[0].add(int(token.EOF))

	for _, st := range g.states {
		for k, kit := range st.kernel {
			probe := newTermSet(g.nTerm + 1)
			probe.add(g.dummy)

			for _, ci := range g.closure1([]laItem{{item: kit, la: probe}}) {
				rhs := g.rhs[ci.prod]
				if ci.dot >= len(rhs) {
					continue
				}
				target := g.states[st.trans[rhs[ci.dot]]]
				tid := st.trans[rhs[ci.dot]]
				tk := target.kernelIdx[item{prod: ci.prod, dot: ci.dot + 1}]

				ci.la.each(func(a int) {
					if a == g.dummy {
						st.propagate[k] = append(st.propagate[k], [2]int{tid, tk})
					} else {
						target.la[tk].add(a)
					}
				})
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for _, st := range g.states {
			for k, links := range st.propagate {
				for _, l := range links {
					if g.states[l[0]].la[l[1]].union(st.la[k]) {
						changed = true
					}
				}
			}
		}
	}
}

func (g *automaton) itemString(it item) string {
	p := g.prods[it.prod]
	var sb strings.Builder
	sb.WriteString(p.LHS)
	sb.WriteString(" ->")
	for i, sym := range g.rhs[it.prod] {
		if i == it.dot {
			sb.WriteString(" •")
		}
		sb.WriteByte(' ')
		sb.WriteString(g.symbolName(sym))
	}
	if it.dot == len(g.rhs[it.prod]) {
		sb.WriteString(" •")
	}
	return sb.String()
}
