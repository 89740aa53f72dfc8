// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package csa

import (
	"fmt"
	"testing"

	"github.com/dsnet/bwtmtf/internal/errors"
	"github.com/dsnet/bwtmtf/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestArray(t *testing.T) {
	var vectors = []struct {
		input   string
		offsets []int
	}{{
		input:   "A",
		offsets: []int{0},
	}, {
		input:   "AAAA",
		offsets: []int{0, 1, 2, 3},
	}, {
		input:   "ABAB",
		offsets: []int{0, 2, 1, 3},
	}, {
		input:   "abcabcabc",
		offsets: []int{0, 3, 6, 1, 4, 7, 2, 5, 8},
	}, {
		input:   "banana",
		offsets: []int{5, 3, 1, 0, 4, 2},
	}, {
		input:   "ABRACADABRA!",
		offsets: []int{11, 10, 7, 0, 3, 5, 8, 1, 4, 6, 9, 2},
	}, {
		input:   "Hello, world!",
		offsets: []int{6, 12, 5, 0, 11, 1, 10, 2, 3, 4, 8, 9, 7},
	}, {
		input:   "0123456789",
		offsets: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
	}, {
		input:   "9876543210",
		offsets: []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}, {
		input:   "\x00\xff\x00\xff",
		offsets: []int{0, 2, 1, 3},
	}}

	for i, v := range vectors {
		a, err := New([]byte(v.input))
		if err != nil {
			t.Errorf("test %d, unexpected error: %v", i, err)
			continue
		}
		if a.Len() != len(v.input) {
			t.Errorf("test %d, length mismatch: got %d, want %d", i, a.Len(), len(v.input))
		}
		if diff := cmp.Diff(v.offsets, a.Offsets()); diff != "" {
			t.Errorf("test %d, offsets mismatch (-want +got):\n%s", i, diff)
		}
		for r, want := range v.offsets {
			got, err := a.Index(r)
			if err != nil || got != want {
				t.Errorf("test %d, Index(%d) = (%d, %v), want (%d, nil)", i, r, got, err, want)
			}
		}
	}
}

func TestArrayErrors(t *testing.T) {
	if _, err := New(nil); !errors.IsInvalid(err) {
		t.Errorf("New(nil) error: got %v, want invalid argument", err)
	}
	if _, err := New([]byte{}); !errors.IsInvalid(err) {
		t.Errorf("New([]byte{}) error: got %v, want invalid argument", err)
	}

	a, err := New([]byte("banana"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range []int{-1, 6, 1 << 20} {
		if _, err := a.Index(r); !errors.IsInvalid(err) {
			t.Errorf("Index(%d) error: got %v, want invalid argument", r, err)
		}
	}
}

func TestArrayOrder(t *testing.T) {
	var alphabets = [][]byte{
		[]byte("a"),
		[]byte("ab"),
		[]byte("abc"),
		[]byte("ACGT"),
		nil, // Full byte range
	}

	rand := testutil.NewRand(0)
	for _, alpha := range alphabets {
		for n := 1; n <= 96; n++ {
			var buf []byte
			if alpha == nil {
				buf = rand.Bytes(n)
			} else {
				buf = rand.BytesFrom(n, alpha)
			}
			a, err := New(buf)
			if err != nil {
				t.Fatalf("input %q, unexpected error: %v", buf, err)
			}
			if err := verify(buf, a.sa); err != nil {
				t.Errorf("input %q, order mismatch: %v", buf, err)
			}
		}
	}
}

func TestArrayPeriodic(t *testing.T) {
	// Periodic inputs contain identical rotations, so the sort must stop
	// before running out of distinguishing characters.
	for _, unit := range []string{"A", "AB", "ABA", "xyzzy"} {
		for k := 1; k <= 64; k *= 2 {
			var buf []byte
			for i := 0; i < k; i++ {
				buf = append(buf, unit...)
			}
			a, err := New(buf)
			if err != nil {
				t.Fatalf("unit %q*%d, unexpected error: %v", unit, k, err)
			}
			if err := verify(buf, a.sa); err != nil {
				t.Errorf("unit %q*%d, order mismatch: %v", unit, k, err)
			}
		}
	}
}

func TestPeriod(t *testing.T) {
	var vectors = []struct {
		input  string
		period int
	}{
		{input: "A", period: 1},
		{input: "AAAA", period: 1},
		{input: "ABAB", period: 2},
		{input: "ABA", period: 3},
		{input: "ABABA", period: 5},
		{input: "abcabcabc", period: 3},
		{input: "abcabcab", period: 8},
		{input: "banana", period: 6},
	}

	for i, v := range vectors {
		if got := period([]byte(v.input)); got != v.period {
			t.Errorf("test %d, period(%q): got %d, want %d", i, v.input, got, v.period)
		}
	}
}

func BenchmarkNew(b *testing.B) {
	rand := testutil.NewRand(0)
	for _, n := range []int{1e3, 1e4, 1e5} {
		inputs := map[string][]byte{
			"Random": rand.Bytes(n),
			"Text":   rand.Words(n),
		}
		for _, name := range []string{"Random", "Text"} {
			buf := inputs[name]
			b.Run(fmt.Sprintf("%s/%d", name, n), func(b *testing.B) {
				b.SetBytes(int64(len(buf)))
				for i := 0; i < b.N; i++ {
					if _, err := New(buf); err != nil {
						b.Fatalf("unexpected error: %v", err)
					}
				}
			})
		}
	}
}
