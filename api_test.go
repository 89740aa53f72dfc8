// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bwtmtf_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/dsnet/bwtmtf"
	"github.com/dsnet/bwtmtf/block"
	"github.com/dsnet/bwtmtf/bwt"
	"github.com/dsnet/bwtmtf/csa"
	"github.com/dsnet/bwtmtf/mtf"
)

func TestErrorInterface(t *testing.T) {
	_, err := csa.New(nil)
	if e, ok := err.(bwtmtf.Error); !ok || !e.IsInvalid() {
		t.Errorf("csa.New(nil) error: got %v, want invalid bwtmtf.Error", err)
	}
	_, err = bwt.Inverse(7, []byte("abc"))
	if e, ok := err.(bwtmtf.Error); !ok || !e.IsInvalid() {
		t.Errorf("bwt.Inverse error: got %v, want invalid bwtmtf.Error", err)
	}
	_, err = block.NewReader(bytes.NewReader([]byte("junk")), nil)
	if e, ok := err.(bwtmtf.Error); !ok || !e.IsCorrupted() {
		t.Errorf("block.NewReader error: got %v, want corrupted bwtmtf.Error", err)
	}
}

// TestPipeline runs the full forward pipeline followed by the full inverse
// pipeline and checks that the original input is reproduced.
func TestPipeline(t *testing.T) {
	var inputs = []string{
		"A",
		"AAAA",
		"ABRACADABRA!",
		"SIX.MIXED.PIXIES.SIFT.SIXTY.PIXIE.DUST.BOXES",
	}

	for i, s := range inputs {
		ptr, perm, err := bwt.Forward([]byte(s))
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		codes := mtf.Encode(perm)
		if got := mtf.Decode(codes); !bytes.Equal(got, perm) {
			t.Errorf("test %d, MTF round-trip of BWT output mismatch", i)
		}

		var bb bytes.Buffer
		if err := bwt.WriteBlock(&bb, ptr, mtf.Decode(codes)); err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		ptr2, perm2, err := bwt.ReadBlock(&bb)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		out, err := bwt.Inverse(ptr2, perm2)
		if err != nil {
			t.Fatalf("test %d, unexpected error: %v", i, err)
		}
		if string(out) != s {
			t.Errorf("test %d, output mismatch: got %q, want %q", i, out, s)
		}
	}
}

func TestClosedError(t *testing.T) {
	wr, err := block.NewWriter(io.Discard, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := wr.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = wr.Write([]byte("x"))
	if err, ok := err.(bwtmtf.Error); !ok || !err.IsClosed() {
		t.Errorf("Write after Close error: got %v, want closed bwtmtf.Error", err)
	}
}
