// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package mtf implements the move-to-front transform over the byte alphabet.
//
// Each symbol is replaced by its current position in a recency list, after
// which the symbol is moved to the front of that list. Runs of a repeated
// symbol therefore encode as zeros, and recently seen symbols encode as small
// values. The recency list always starts in ascending order.
//
// For example, encoding "ARD!RCAAAABB" produces:
//	[]uint8{65, 82, 69, 36, 2, 69, 4, 0, 0, 0, 69, 0}
package mtf

import "github.com/dsnet/bwtmtf/internal"

// Encode applies the move-to-front transform to vals using a fresh recency
// list. The output has the same length as the input.
func Encode(vals []byte) []byte {
	return NewCoder().Encode(vals)
}

// Decode reverses the move-to-front transform of idxs using a fresh recency
// list. The output has the same length as the input.
func Decode(idxs []byte) []byte {
	return NewCoder().Decode(idxs)
}

// Coder is a move-to-front codec whose recency list persists across calls,
// so that a long sequence may be processed in pieces.
// A Coder is not safe for concurrent use.
type Coder struct {
	dict [internal.AlphabetSize]uint8
}

// NewCoder returns a Coder with its recency list in ascending order.
func NewCoder() *Coder {
	m := new(Coder)
	m.Reset()
	return m
}

// Reset restores the recency list to ascending order.
func (m *Coder) Reset() {
	m.dict = internal.IdentityLUT
}

// Encode transforms vals, continuing from the current recency list.
func (m *Coder) Encode(vals []byte) (idxs []uint8) {
	dict := m.dict[:]

	idxs = make([]uint8, len(vals))
	for i, val := range vals {
		var idx uint8 // Reverse lookup idx in dict
		for di, dv := range dict {
			if dv == val {
				idx = uint8(di)
				break
			}
		}
		copy(dict[1:], dict[:idx])
		dict[0] = val
		idxs[i] = idx
	}
	return idxs
}

// Decode reverses the transform of idxs, continuing from the current
// recency list.
func (m *Coder) Decode(idxs []uint8) (vals []byte) {
	dict := m.dict[:]

	vals = make([]byte, len(idxs))
	for i, idx := range idxs {
		val := dict[idx] // Forward lookup val in dict
		copy(dict[1:], dict[:idx])
		dict[0] = val
		vals[i] = val
	}
	return vals
}
