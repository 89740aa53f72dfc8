// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwt

import (
	"encoding/binary"
	"io"
	"io/ioutil"
	"math"

	"github.com/dsnet/bwtmtf/internal/errors"
)

// The serialized form of a transformed block is the origin pointer as a
// big-endian 32-bit unsigned integer, followed by the transformed bytes.
// The block length is not stored; it is the remainder of the stream.
const ptrSize = 4

// WriteBlock writes the serialized form of a transformed block to w.
func WriteBlock(w io.Writer, ptr int, buf []byte) error {
	if ptr < 0 || ptr >= len(buf) || int64(ptr) > math.MaxUint32 {
		return errorf(errors.Invalid, "origin pointer %d out of range [0, %d)", ptr, len(buf))
	}
	var hdr [ptrSize]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(ptr))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(buf)
	return err
}

// ReadBlock reads the serialized form of a transformed block from r,
// consuming r until io.EOF.
func ReadBlock(r io.Reader) (ptr int, buf []byte, err error) {
	var hdr [ptrSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return -1, nil, errorf(errors.Corrupted, "missing origin pointer")
		}
		return -1, nil, err
	}
	ptr = int(binary.BigEndian.Uint32(hdr[:]))

	buf, err = ioutil.ReadAll(r)
	if err != nil {
		return -1, nil, err
	}
	if ptr >= len(buf) {
		return -1, nil, errorf(errors.Invalid, "origin pointer %d out of range [0, %d)", ptr, len(buf))
	}
	return ptr, buf, nil
}
