// File: sets.go
// Title: Terminal Sets
// Description: Bitsets over terminal indices used for FIRST sets and
//              lookaheads.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package grammar

import (
	"math/bits"
)

type termSet []uint64

func newTermSet(n int) termSet {
	return make(termSet, (n+63)/64)
}

func (s termSet) add(i int) bool {
	w, b := i/64, uint64(1)<<(uint(i)%64)
	if s[w]&b != 0 {
		return false
	}
	s[w] |= b
	return true
}

func (s termSet) has(i int) bool {
	return s[i/64]&(uint64(1)<<(uint(i)%64)) != 0
}

// union adds every member of o and reports whether s changed
func (s termSet) union(o termSet) bool {
	changed := false
	for i, w := range o {
		if s[i]|w != s[i] {
			s[i] |= w
			changed = true
		}
	}
	return changed
}

func (s termSet) clone() termSet {
	out := make(termSet, len(s))
	copy(out, s)
	return out
}

// each calls fn for every member in ascending order
func (s termSet) each(fn func(int)) {
	for wi, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(wi*64 + b)
			w &= w - 1
		}
	}
}

func (s termSet) len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}
