// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwt implements the Burrows-Wheeler Transform and its inverse.
//
// The forward transform sorts all cyclic rotations of the input and outputs
// the last column of the sorted rotation matrix, along with the origin pointer,
// which is the rank of the unrotated input within that order. The inverse
// transform uses the LF-mapping between the first and last columns to walk the
// original string back out in O(n) time.
//
// References:
//	https://en.wikipedia.org/wiki/Burrows%E2%80%93Wheeler_transform
//	https://www.hpl.hp.com/techreports/Compaq-DEC/SRC-RR-124.pdf
package bwt

import (
	"github.com/dsnet/bwtmtf/csa"
	"github.com/dsnet/bwtmtf/internal"
	"github.com/dsnet/bwtmtf/internal/errors"
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Errorf(c, "bwt", f, a...)
}

// Forward applies the Burrows-Wheeler Transform to buf and returns the
// origin pointer together with the transformed bytes. The input is not
// mutated. It reports an error if buf is empty.
func Forward(buf []byte) (ptr int, out []byte, err error) {
	if len(buf) == 0 {
		return -1, nil, errorf(errors.Invalid, "empty input")
	}
	sa, err := csa.New(buf)
	if err != nil {
		return -1, nil, err
	}

	ptr = -1
	out = make([]byte, len(buf))
	for i := range out {
		idx, err := sa.Index(i)
		if err != nil {
			return -1, nil, err
		}
		if idx == 0 {
			ptr = i
			idx = len(buf)
		}
		out[i] = buf[idx-1]
	}
	return ptr, out, nil
}

// Inverse reverses the Burrows-Wheeler Transform of buf with the given origin
// pointer and returns the original bytes. The input is not mutated.
// It reports an error if buf is empty or ptr is not within [0, len(buf)).
//
// Any buf and ptr satisfying those constraints are decoded without failure,
// but the output is only meaningful for values produced by Forward.
func Inverse(ptr int, buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		return nil, errorf(errors.Invalid, "empty input")
	}
	if ptr < 0 || ptr >= len(buf) {
		return nil, errorf(errors.Invalid, "origin pointer %d out of range [0, %d)", ptr, len(buf))
	}

	// Exclusive prefix sums of the symbol counts give the first row of each
	// symbol in the sorted first column.
	var c [internal.AlphabetSize]int
	for _, v := range buf {
		c[v]++
	}
	var sum int
	for i, v := range c {
		sum += v
		c[i] = sum - v
	}

	next := make([]int, len(buf))
	for i, b := range buf {
		next[c[b]] = i
		c[b]++
	}

	out := make([]byte, len(buf))
	for i := range out {
		ptr = next[ptr]
		out[i] = buf[ptr]
	}
	return out, nil
}
