// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package csa builds circular suffix arrays.
//
// A circular suffix array orders all cyclic rotations of a byte string without
// materializing them. The ordering is computed in place with a 3-way radix
// quicksort keyed on the character at an increasing depth into each rotation,
// as described by Bentley and Sedgewick.
//
// References:
//	https://www.cs.princeton.edu/~rs/strings/paper.pdf
//	https://algs4.cs.princeton.edu/51radix/Quick3string.java.html
package csa

import (
	"sort"

	"github.com/dsnet/bwtmtf/internal"
	"github.com/dsnet/bwtmtf/internal/errors"
)

// Array is the sorted order of all rotations of a string.
// It is immutable once constructed and safe for concurrent reads.
type Array struct {
	sa []int // sa[r] is the starting offset of the rotation with rank r
}

// New computes the circular suffix array of buf. The input is neither mutated
// nor retained. It reports an error if buf is empty.
//
// Rotations that are identical as byte strings (which only happens when buf
// is periodic) are ordered by ascending offset.
func New(buf []byte) (*Array, error) {
	if len(buf) == 0 {
		return nil, errors.Error{Code: errors.Invalid, Pkg: "csa", Msg: "empty input"}
	}

	sa := make([]int, len(buf))
	for i := range sa {
		sa[i] = i
	}
	sortRotations(buf, sa)

	if internal.Debug {
		if err := verify(buf, sa); err != nil {
			return nil, err
		}
	}
	return &Array{sa: sa}, nil
}

// Len reports the length of the original string.
func (a *Array) Len() int { return len(a.sa) }

// Index returns the starting offset of the rotation with the given rank.
func (a *Array) Index(rank int) (int, error) {
	if rank < 0 || rank >= len(a.sa) {
		return 0, errors.Errorf(errors.Invalid, "csa", "rank %d out of range [0, %d)", rank, len(a.sa))
	}
	return a.sa[rank], nil
}

// Offsets returns a copy of the rank to offset mapping.
func (a *Array) Offsets() []int {
	return append([]int(nil), a.sa...)
}

// span is a pending range sa[lo:hi+1] whose rotations agree on their first
// d characters.
type span struct {
	lo, hi, d int
}

func sortRotations(buf []byte, sa []int) {
	// Rotations that agree on their first p characters are identical.
	p := period(buf)

	stack := []span{{0, len(sa) - 1, 0}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi <= s.lo {
			continue
		}
		if s.d >= p {
			sort.Ints(sa[s.lo : s.hi+1])
			continue
		}

		lt, gt := partition(buf, sa, s.lo, s.hi, s.d)
		stack = append(stack,
			span{s.lo, lt - 1, s.d},
			span{gt + 1, s.hi, s.d},
			span{lt, gt, s.d + 1},
		)
	}
}

// partition rearranges sa[lo:hi+1] so that the rotations whose character at
// depth d is less than, equal to, or greater than the pivot character occupy
// sa[lo:lt], sa[lt:gt+1], and sa[gt+1:hi+1], respectively. The pivot is the
// character of the rotation at sa[lo].
func partition(buf []byte, sa []int, lo, hi, d int) (lt, gt int) {
	v := charAt(buf, sa[lo], d)
	lt, gt = lo, hi
	for i := lo + 1; i <= gt; {
		switch c := charAt(buf, sa[i], d); {
		case c < v:
			sa[lt], sa[i] = sa[i], sa[lt]
			lt++
			i++
		case c > v:
			sa[i], sa[gt] = sa[gt], sa[i]
			gt--
		default:
			i++
		}
	}
	return lt, gt
}

// charAt returns the character d positions into the rotation starting at off.
// It requires that off < len(buf) and d <= len(buf).
func charAt(buf []byte, off, d int) byte {
	if i := off + d; i < len(buf) {
		return buf[i]
	}
	return buf[off+d-len(buf)]
}

// period returns the smallest p dividing len(buf) such that buf consists of
// len(buf)/p copies of buf[:p]. An aperiodic string has a period of len(buf).
func period(buf []byte) int {
	n := len(buf)
	pi := make([]int, n) // Knuth-Morris-Pratt failure function
	for i := 1; i < n; i++ {
		k := pi[i-1]
		for k > 0 && buf[i] != buf[k] {
			k = pi[k-1]
		}
		if buf[i] == buf[k] {
			k++
		}
		pi[i] = k
	}
	if p := n - pi[n-1]; n%p == 0 {
		return p
	}
	return n
}

// compareRotations compares the rotations of buf starting at i and j in
// circular lexicographic order.
func compareRotations(buf []byte, i, j int) int {
	for d := 0; d < len(buf); d++ {
		ci, cj := charAt(buf, i, d), charAt(buf, j, d)
		switch {
		case ci < cj:
			return -1
		case ci > cj:
			return +1
		}
	}
	return 0
}

// verify checks that sa is a permutation sorted by rotation, with identical
// rotations in ascending offset order. It runs in O(n^2) time.
func verify(buf []byte, sa []int) error {
	seen := make([]bool, len(sa))
	for _, off := range sa {
		if off < 0 || off >= len(sa) || seen[off] {
			return errors.Errorf(errors.Internal, "csa", "offset %d is not a permutation member", off)
		}
		seen[off] = true
	}
	for r := 1; r < len(sa); r++ {
		c := compareRotations(buf, sa[r-1], sa[r])
		if c > 0 || (c == 0 && sa[r-1] > sa[r]) {
			return errors.Errorf(errors.Internal, "csa", "ranks %d and %d are out of order", r-1, r)
		}
	}
	return nil
}
