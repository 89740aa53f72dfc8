// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bench measures how much the BWT and MTF preprocessing stages
// improve the compression ratio of various back-end compressors.
//
// The back ends are registered per format and referred to as codecs.
// They are used only for measurement and are not part of the transform.
package bench

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"path"
	"regexp"
	"strings"

	"github.com/dsnet/bwtmtf/block"
	strconv "github.com/dsnet/golib/unitconv"
)

type Format int

const (
	FormatFlate Format = iota
	FormatXZ
)

func (f Format) String() string {
	switch f {
	case FormatFlate:
		return "fl"
	case FormatXZ:
		return "xz"
	default:
		return "unknown"
	}
}

// ParseFormat parses the short name of a format.
func ParseFormat(s string) (Format, error) {
	for _, f := range []Format{FormatFlate, FormatXZ} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("bench: unknown format %q", s)
}

type Encoder func(io.Writer, int) io.WriteCloser
type Decoder func(io.Reader) io.ReadCloser

var (
	Encoders map[Format]map[string]Encoder
	Decoders map[Format]map[string]Decoder
)

func RegisterEncoder(format Format, name string, enc Encoder) {
	if Encoders == nil {
		Encoders = make(map[Format]map[string]Encoder)
	}
	if Encoders[format] == nil {
		Encoders[format] = make(map[string]Encoder)
	}
	Encoders[format][name] = enc
}

func RegisterDecoder(format Format, name string, dec Decoder) {
	if Decoders == nil {
		Decoders = make(map[Format]map[string]Decoder)
	}
	if Decoders[format] == nil {
		Decoders[format] = make(map[string]Decoder)
	}
	Decoders[format][name] = dec
}

// LoadFile loads the first n bytes of the input file. If n < 0, then the
// whole file is loaded. If the file is smaller than n, then it will
// replicate the input until it matches n. Each copy will be XORed by some
// mask to avoid favoring algorithms with large LZ77 windows.
func LoadFile(file string, n int) ([]byte, error) {
	input, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if n < 0 || len(input) >= n {
		if n >= 0 {
			input = input[:n]
		}
		return input, nil
	}
	if len(input) == 0 {
		return nil, io.ErrNoProgress
	}

	var rb byte // Chunk mask
	output := make([]byte, n)
	buf := output
	for {
		for _, c := range input {
			if len(buf) == 0 {
				return output, nil
			}
			buf[0] = c ^ rb
			buf = buf[1:]
		}
		rb++
	}
}

// Preprocess applies the BWT and MTF transforms to input in blocks of the
// given size.
func Preprocess(input []byte, blockSize int) ([]byte, error) {
	bb := new(bytes.Buffer)
	wr, err := block.NewWriter(bb, &block.WriterConfig{BlockSize: blockSize})
	if err != nil {
		return nil, err
	}
	if _, err := wr.Write(input); err != nil {
		return nil, err
	}
	if err := wr.Close(); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

// Postprocess reverses Preprocess.
func Postprocess(input []byte) ([]byte, error) {
	rd, err := block.NewReader(bytes.NewReader(input), nil)
	if err != nil {
		return nil, err
	}
	output, err := ioutil.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return output, rd.Close()
}

// Compress compresses input with the encoder at the given level.
func Compress(input []byte, enc Encoder, lvl int) ([]byte, error) {
	bb := new(bytes.Buffer)
	wr := enc(bb, lvl)
	if _, err := io.Copy(wr, bytes.NewReader(input)); err != nil {
		return nil, err
	}
	if err := wr.Close(); err != nil {
		return nil, err
	}
	return bb.Bytes(), nil
}

// Decompress decompresses input with the decoder.
func Decompress(input []byte, dec Decoder) ([]byte, error) {
	rd := dec(bytes.NewReader(input))
	output, err := ioutil.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	return output, rd.Close()
}

type Result struct {
	Name  string  // Name of the input, level, and size
	Codec string  // Name of the codec
	Raw   float64 // Ratio (rawSize/compSize) compressing the input as is
	Pre   float64 // Ratio (rawSize/compSize) compressing the preprocessed input
}

// Gain reports how much preprocessing improved the ratio.
func (r Result) Gain() float64 { return r.Pre / r.Raw }

// RatioSuite measures the compression ratio of every codec on every file,
// both with and without preprocessing. A size of n < 0 uses each whole file.
func RatioSuite(format Format, codecs, files []string, lvl, n, blockSize int, tick func()) ([]Result, error) {
	var results []Result
	for _, f := range files {
		input, err := LoadFile(f, n)
		if err != nil {
			return nil, err
		}
		pre, err := Preprocess(input, blockSize)
		if err != nil {
			return nil, err
		}

		name := getName(f, lvl, len(input))
		for _, c := range codecs {
			enc, ok := Encoders[format][c]
			if !ok {
				return nil, fmt.Errorf("bench: no %v encoder named %q", format, c)
			}
			if tick != nil {
				tick()
			}
			raw, err := Compress(input, enc, lvl)
			if err != nil {
				return nil, err
			}
			pp, err := Compress(pre, enc, lvl)
			if err != nil {
				return nil, err
			}
			results = append(results, Result{
				Name:  name,
				Codec: c,
				Raw:   float64(len(input)) / float64(len(raw)),
				Pre:   float64(len(input)) / float64(len(pp)),
			})
		}
	}
	return results, nil
}

func getName(f string, l, n int) string {
	var sn string
	switch n {
	case 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12:
		s := fmt.Sprintf("%e", float64(n))
		re := regexp.MustCompile("\\.0*e\\+0*")
		sn = re.ReplaceAllString(s, "e")
	default:
		s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
		sn = strings.Replace(s, ".00", "", -1)
	}
	return fmt.Sprintf("%s:%d:%s", path.Base(f), l, sn)
}
