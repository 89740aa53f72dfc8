// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bwtmtf is a collection of block-sorting transforms used as the
// front end of lossless compressors.
//
// The bwt package implements the Burrows-Wheeler Transform on top of the
// circular suffix array in the csa package. The mtf package implements the
// move-to-front recoder that is normally applied to the BWT output. The block
// package chains both stages over a framed, checksummed stream of blocks.
package bwtmtf

// Error is the interface implemented by all errors returned by packages in
// this repository.
type Error interface {
	error
	CompressError()

	// IsInvalid reports whether the error was caused by misuse of the API,
	// such as an empty input or an out-of-range index.
	IsInvalid() bool

	// IsCorrupted reports whether the input stream was malformed.
	IsCorrupted() bool

	// IsClosed reports whether the operation was attempted on a closed
	// reader or writer.
	IsClosed() bool
}
