// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package block implements a framed stream format that applies the
// Burrows-Wheeler Transform followed by the move-to-front transform to
// independent blocks of the input.
//
// The stream format is as follows, where all integers are 32-bit big-endian:
//
//	stream := magic block* end
//	magic  := "BWM1"
//	block  := length ptr crc codes
//	end    := 0 streamCRC
//
// The length is the number of bytes in the block, between 1 and MaxBlockSize.
// The ptr is the BWT origin pointer, the crc is the CRC-32 (IEEE) of the
// original block data, and codes are the length move-to-front encoded bytes
// of the transformed block. The streamCRC is the CRC-32 of all original data.
//
// There is no entropy coding stage; the output is meant to be fed to one.
package block

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/dsnet/bwtmtf/internal/errors"
	hashutil "github.com/dsnet/golib/hashmerge"
)

const (
	magic   = "BWM1"
	hdrSize = 12 // Size of the length, ptr, and crc fields

	// MaxBlockSize is the largest block length a stream may declare.
	MaxBlockSize = 1 << 26

	BestSpeed          = 1
	BestCompression    = 9
	DefaultCompression = 6

	levelUnit = 100000 // Block size per level, as in bzip2
)

func errorf(c int, f string, a ...interface{}) error {
	return errors.Errorf(c, "block", f, a...)
}

var (
	errClosed  error = errors.Error{Code: errors.Closed, Pkg: "block"}
	errCorrupt error = errors.Error{Code: errors.Corrupted, Pkg: "block"}
)

var be = binary.BigEndian

// combineCRC combines two CRC-32 checksums together, where len2 is the
// length of the data that crc2 was computed over.
func combineCRC(crc1, crc2 uint32, len2 int64) uint32 {
	return hashutil.CombineCRC32(crc32.IEEE, crc1, crc2, len2)
}
