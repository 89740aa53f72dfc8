// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// +build gofuzz

package bwtmtf

import (
	"bytes"
	"io/ioutil"

	"github.com/dsnet/bwtmtf"
	"github.com/dsnet/bwtmtf/block"
	"github.com/dsnet/bwtmtf/bwt"
	"github.com/dsnet/bwtmtf/mtf"
)

func Fuzz(data []byte) int {
	ok := testReader(data)
	testTransforms(data)
	for _, n := range []int{1, 7, 256, 1 << 16} {
		testBlocks(data, n)
	}
	if ok {
		return 1 // Favor valid inputs
	}
	return 0
}

// testReader tests that arbitrary input is either decoded or rejected with
// a corrupted error, and never causes a panic.
func testReader(data []byte) bool {
	zr, err := block.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		mustCorrupt(err)
		return false
	}
	if _, err := ioutil.ReadAll(zr); err != nil {
		mustCorrupt(err)
		return false
	}
	if err := zr.Close(); err != nil {
		panic(err)
	}
	return true
}

// testTransforms tests that the transforms are invertible and that the
// inverse transforms accept garbage without panicking.
func testTransforms(data []byte) {
	if got := mtf.Decode(mtf.Encode(data)); !bytes.Equal(got, data) {
		panic("mismatching MTF round trip")
	}
	_ = mtf.Encode(mtf.Decode(data))

	ptr, out, err := bwt.Forward(data)
	if len(data) == 0 {
		if err == nil {
			panic("expected error on empty input")
		}
		return
	}
	if err != nil {
		panic(err)
	}
	got, err := bwt.Inverse(ptr, out)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(got, data) {
		panic("mismatching BWT round trip")
	}
	if _, err := bwt.Inverse(len(data)/2, data); err != nil {
		panic(err)
	}
}

func testBlocks(data []byte, blkSize int) {
	bb := new(bytes.Buffer)
	zw, err := block.NewWriter(bb, &block.WriterConfig{BlockSize: blkSize})
	if err != nil {
		panic(err)
	}
	if _, err := zw.Write(data); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	zr, err := block.NewReader(bb, nil)
	if err != nil {
		panic(err)
	}
	got, err := ioutil.ReadAll(zr)
	if err != nil {
		panic(err)
	}
	if !bytes.Equal(got, data) {
		panic("mismatching block round trip")
	}
}

func mustCorrupt(err error) {
	if err, ok := err.(bwtmtf.Error); !ok || !err.IsCorrupted() {
		panic(err)
	}
}
