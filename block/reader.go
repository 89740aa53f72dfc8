// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package block

import (
	"hash/crc32"
	"io"

	"github.com/dsnet/bwtmtf/bwt"
	"github.com/dsnet/bwtmtf/internal/errors"
	"github.com/dsnet/bwtmtf/mtf"
)

// ReaderConfig configures a Reader. There are currently no options.
type ReaderConfig struct {
	_ struct{} // Blank field to prevent unkeyed struct literals
}

type Reader struct {
	InputOffset  int64 // Total number of bytes read from underlying io.Reader
	OutputOffset int64 // Total number of bytes emitted from Read

	rd  io.Reader
	err error  // Persistent error
	crc uint32 // CRC-32 of all data decoded so far
	buf []byte // Decoded data yet to be consumed
	hdr [hdrSize]byte
}

// NewReader creates a new Reader reading the given stream. It reads and
// validates the stream magic before returning.
// If conf is nil, then the default configuration is used.
func NewReader(r io.Reader, conf *ReaderConfig) (*Reader, error) {
	zr := new(Reader)
	if err := zr.Reset(r); err != nil {
		return nil, err
	}
	return zr, nil
}

func (zr *Reader) Read(buf []byte) (int, error) {
	var cnt int
	for len(buf) > 0 {
		if len(zr.buf) > 0 {
			n := copy(buf, zr.buf)
			buf, zr.buf = buf[n:], zr.buf[n:]
			cnt += n
			zr.OutputOffset += int64(n)
			continue
		}
		if zr.err != nil {
			return cnt, zr.err
		}
		zr.buf, zr.err = zr.decodeBlock()
	}
	return cnt, nil
}

// Close ends the stream. It does not close the underlying io.Reader.
func (zr *Reader) Close() error {
	if zr.err == errClosed || zr.err == io.EOF {
		zr.err = errClosed
		return nil
	}
	err := zr.err
	zr.err = errClosed
	return err
}

// Reset discards the Reader's state and makes it equivalent to the result
// of NewReader, but reading from r instead.
func (zr *Reader) Reset(r io.Reader) (err error) {
	*zr = Reader{rd: r}
	defer func() { zr.err = err }()
	defer errors.Recover(&err)

	var m [len(magic)]byte
	zr.readFull(m[:])
	if string(m[:]) != magic {
		errors.Panic(errorf(errors.Corrupted, "invalid stream magic %q", m[:]))
	}
	return nil
}

// decodeBlock reads and inverts the next block. It returns io.EOF once the
// end of stream marker has been read and the stream checksum verified.
func (zr *Reader) decodeBlock() (out []byte, err error) {
	defer errors.Recover(&err)

	zr.readFull(zr.hdr[:4])
	n := int64(be.Uint32(zr.hdr[:4]))
	if n == 0 {
		zr.readFull(zr.hdr[:4])
		if crc := be.Uint32(zr.hdr[:4]); crc != zr.crc {
			errors.Panic(errorf(errors.Corrupted, "stream checksum mismatch: got %08x, want %08x", zr.crc, crc))
		}
		return nil, io.EOF
	}
	if n > MaxBlockSize {
		errors.Panic(errorf(errors.Corrupted, "block length %d exceeds %d", n, MaxBlockSize))
	}

	zr.readFull(zr.hdr[4:])
	ptr := int(be.Uint32(zr.hdr[4:8]))
	crc := be.Uint32(zr.hdr[8:12])
	if int64(ptr) >= n {
		errors.Panic(errorf(errors.Corrupted, "origin pointer %d out of range [0, %d)", ptr, n))
	}

	codes := make([]byte, n)
	zr.readFull(codes)
	raw, err := bwt.Inverse(ptr, mtf.Decode(codes))
	if err != nil {
		errors.Panic(err)
	}
	if got := crc32.ChecksumIEEE(raw); got != crc {
		errors.Panic(errorf(errors.Corrupted, "block checksum mismatch: got %08x, want %08x", got, crc))
	}
	zr.crc = combineCRC(zr.crc, crc, n)
	return raw, nil
}

// readFull fills buf from the underlying reader, panicking with a corruption
// error if the stream ends early.
func (zr *Reader) readFull(buf []byte) {
	n, err := io.ReadFull(zr.rd, buf)
	zr.InputOffset += int64(n)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		errors.Panic(errCorrupt)
	default:
		errors.Panic(err)
	}
}
