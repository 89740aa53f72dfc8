// Copyright 2016, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/bwtmtf/internal/testutil"
)

// TestCodecs tests that the output of each registered encoder is a valid input
// for each registered decoder, both with and without preprocessing.
func TestCodecs(t *testing.T) {
	rand := testutil.NewRand(0)
	inputs := map[string][]byte{
		"random": rand.Bytes(1e4),
		"words":  rand.Words(1e5),
		"zeros":  make([]byte, 1e3),
	}
	for _, name := range []string{"random", "words", "zeros"} {
		dd := inputs[name]
		t.Run(fmt.Sprintf("Input:%v", name), func(t *testing.T) { testFormats(t, dd) })
	}
}

func testFormats(t *testing.T, dd []byte) {
	t.Parallel()
	pre, err := Preprocess(dd, 1<<14)
	if err != nil {
		t.Fatalf("unexpected Preprocess error: %v", err)
	}
	for _, ft := range []Format{FormatFlate, FormatXZ} {
		if len(Encoders[ft]) == 0 || len(Decoders[ft]) == 0 {
			t.Skip("no codecs available")
		}
		t.Run(fmt.Sprintf("Format:%v", ft), func(t *testing.T) { testEncoders(t, ft, dd, pre) })
	}
}

func testEncoders(t *testing.T, ft Format, dd, pre []byte) {
	const level = 6 // Default compression on all encoders
	for encName := range Encoders[ft] {
		encName := encName
		t.Run(fmt.Sprintf("Encoder:%v", encName), func(t *testing.T) {
			for decName := range Decoders[ft] {
				de, err := Compress(pre, Encoders[ft][encName], level)
				if err != nil {
					t.Fatalf("unexpected Compress error: %v", err)
				}
				dp, err := Decompress(de, Decoders[ft][decName])
				if err != nil {
					t.Fatalf("decoder %v, unexpected Decompress error: %v", decName, err)
				}
				got, err := Postprocess(dp)
				if err != nil {
					t.Fatalf("decoder %v, unexpected Postprocess error: %v", decName, err)
				}
				if !bytes.Equal(got, dd) {
					t.Errorf("decoder %v, data mismatch", decName)
				}
			}
		})
	}
}

func TestRatioSuite(t *testing.T) {
	dir, err := ioutil.TempDir("", "bench")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "words.txt")
	if err := ioutil.WriteFile(file, testutil.NewRand(1).Words(5e4), 0664); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := RatioSuite(FormatFlate, []string{"std", "kp"}, []string{file}, 6, 1e5, 1<<14, nil)
	if err != nil {
		t.Fatalf("unexpected RatioSuite error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("result count mismatch: got %d, want 2", len(results))
	}
	for _, r := range results {
		if r.Name != "words.txt:6:1e5" {
			t.Errorf("name mismatch: got %q, want %q", r.Name, "words.txt:6:1e5")
		}
		if r.Raw <= 1 || r.Pre <= 1 {
			t.Errorf("codec %v, ratios should exceed 1: got raw %.2f, pre %.2f", r.Codec, r.Raw, r.Pre)
		}
	}

	if _, err := RatioSuite(FormatFlate, []string{"bogus"}, []string{file}, 6, -1, 1<<14, nil); err == nil {
		t.Errorf("RatioSuite with unknown codec: got nil error")
	}
}

func TestParseFormat(t *testing.T) {
	for _, ft := range []Format{FormatFlate, FormatXZ} {
		got, err := ParseFormat(ft.String())
		if err != nil || got != ft {
			t.Errorf("ParseFormat(%q) = (%v, %v), want (%v, nil)", ft.String(), got, err, ft)
		}
	}
	if _, err := ParseFormat("bz2"); err == nil {
		t.Errorf("ParseFormat(%q): got nil error", "bz2")
	}
}
