// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package block

import (
	"hash/crc32"
	"io"
	"runtime"

	"github.com/dsnet/bwtmtf/bwt"
	"github.com/dsnet/bwtmtf/internal/errors"
	"github.com/dsnet/bwtmtf/mtf"
	"golang.org/x/sync/errgroup"
)

// WriterConfig configures a Writer. The zero value selects the defaults.
type WriterConfig struct {
	// Level selects a block size of Level*100000 bytes and must be within
	// BestSpeed and BestCompression. Zero selects DefaultCompression.
	Level int

	// BlockSize is the block size in bytes. When non-zero, it overrides Level
	// and must be within 1 and MaxBlockSize.
	BlockSize int

	// Concurrency is the maximum number of blocks transformed in parallel.
	// Zero selects runtime.GOMAXPROCS(0).
	Concurrency int

	_ struct{} // Blank field to prevent unkeyed struct literals
}

type Writer struct {
	InputOffset  int64 // Total number of bytes issued to Write
	OutputOffset int64 // Total number of bytes written to underlying io.Writer

	wr      io.Writer
	err     error  // Persistent error
	blkSize int    // Maximum length of each block
	conc    int    // Maximum parallel transforms
	wroteHd bool   // Whether the stream magic has been written
	crc     uint32 // CRC-32 of all data issued so far

	buf   []byte   // Block being filled
	queue [][]byte // Full blocks awaiting transformation
	enc   []encBlock
}

type encBlock struct {
	ptr   int
	crc   uint32
	codes []byte
}

// NewWriter creates a new Writer that writes the output stream to w.
// If conf is nil, then the default configuration is used.
func NewWriter(w io.Writer, conf *WriterConfig) (*Writer, error) {
	var lvl, blkSize, conc int
	if conf != nil {
		lvl, blkSize, conc = conf.Level, conf.BlockSize, conf.Concurrency
	}
	switch {
	case lvl == 0:
		lvl = DefaultCompression
	case lvl < BestSpeed || lvl > BestCompression:
		return nil, errorf(errors.Invalid, "level %d out of range [%d, %d]", lvl, BestSpeed, BestCompression)
	}
	switch {
	case blkSize == 0:
		blkSize = lvl * levelUnit
	case blkSize < 1 || blkSize > MaxBlockSize:
		return nil, errorf(errors.Invalid, "block size %d out of range [1, %d]", blkSize, MaxBlockSize)
	}
	switch {
	case conc == 0:
		conc = runtime.GOMAXPROCS(0)
	case conc < 0:
		return nil, errorf(errors.Invalid, "negative concurrency %d", conc)
	}

	zw := &Writer{blkSize: blkSize, conc: conc}
	zw.Reset(w)
	return zw, nil
}

func (zw *Writer) Write(buf []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}

	cnt := len(buf)
	for len(buf) > 0 {
		if zw.buf == nil {
			zw.buf = make([]byte, 0, zw.blkSize)
		}
		n := copy(zw.buf[len(zw.buf):cap(zw.buf)], buf)
		zw.buf, buf = zw.buf[:len(zw.buf)+n], buf[n:]
		zw.InputOffset += int64(n)
		if len(zw.buf) == zw.blkSize {
			zw.queue = append(zw.queue, zw.buf)
			zw.buf = nil
		}
		if len(zw.queue) == zw.conc {
			if zw.err = zw.flush(); zw.err != nil {
				return cnt - len(buf), zw.err
			}
		}
	}
	return cnt, nil
}

// Close flushes all buffered blocks and writes the end of stream marker.
// It does not close the underlying io.Writer.
func (zw *Writer) Close() error {
	if zw.err == errClosed {
		return nil
	}
	if zw.err != nil {
		return zw.err
	}

	if len(zw.buf) > 0 {
		zw.queue = append(zw.queue, zw.buf)
		zw.buf = nil
	}
	if zw.err = zw.flush(); zw.err != nil {
		return zw.err
	}
	var end [8]byte
	be.PutUint32(end[4:], zw.crc)
	if zw.err = zw.write(end[:]); zw.err != nil {
		return zw.err
	}
	zw.err = errClosed
	return nil
}

// Reset discards the Writer's state and makes it equivalent to the result
// of NewWriter with the original configuration, but writing to w instead.
func (zw *Writer) Reset(w io.Writer) {
	*zw = Writer{
		wr:      w,
		blkSize: zw.blkSize,
		conc:    zw.conc,
		queue:   zw.queue[:0],
		enc:     zw.enc[:0],
	}
}

// flush transforms all queued blocks in parallel and writes them in order.
func (zw *Writer) flush() error {
	if !zw.wroteHd {
		if err := zw.write([]byte(magic)); err != nil {
			return err
		}
		zw.wroteHd = true
	}
	if len(zw.queue) == 0 {
		return nil
	}

	enc := append(zw.enc[:0], make([]encBlock, len(zw.queue))...)
	var g errgroup.Group
	g.SetLimit(zw.conc)
	for i, raw := range zw.queue {
		i, raw := i, raw
		g.Go(func() error {
			ptr, perm, err := bwt.Forward(raw)
			if err != nil {
				return err
			}
			enc[i] = encBlock{ptr: ptr, crc: crc32.ChecksumIEEE(raw), codes: mtf.Encode(perm)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var hdr [hdrSize]byte
	for i, b := range enc {
		be.PutUint32(hdr[0:], uint32(len(b.codes)))
		be.PutUint32(hdr[4:], uint32(b.ptr))
		be.PutUint32(hdr[8:], b.crc)
		if err := zw.write(hdr[:]); err != nil {
			return err
		}
		if err := zw.write(b.codes); err != nil {
			return err
		}
		zw.crc = combineCRC(zw.crc, b.crc, int64(len(zw.queue[i])))
		enc[i] = encBlock{}
	}
	zw.queue, zw.enc = zw.queue[:0], enc[:0]
	return nil
}

func (zw *Writer) write(buf []byte) error {
	n, err := zw.wr.Write(buf)
	zw.OutputOffset += int64(n)
	return err
}
