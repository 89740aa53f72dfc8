// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package internal is a collection of helpers shared by the transforms.
//
// For performance reasons, these packages lack strong error checking and
// require that the caller to ensure that strict invariants are kept.
package internal

// AlphabetSize is the number of distinct symbols in a byte alphabet.
const AlphabetSize = 256

// IdentityLUT returns the input key itself. It is the initial ordering of
// every move-to-front table and must never be mutated.
var IdentityLUT [AlphabetSize]byte

func init() {
	for i := range IdentityLUT {
		IdentityLUT[i] = uint8(i)
	}
}
