// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_uk_lib
// +build !no_uk_lib

package bench

import (
	"io"
	"io/ioutil"

	"github.com/ulikunitz/xz"
)

func init() {
	RegisterEncoder(FormatXZ, "uk",
		func(w io.Writer, lvl int) io.WriteCloser {
			// The level only selects the dictionary capacity.
			conf := xz.WriterConfig{DictCap: 1 << uint(16+lvl)}
			zw, err := conf.NewWriter(w)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatXZ, "uk",
		func(r io.Reader) io.ReadCloser {
			zr, err := xz.NewReader(r)
			if err != nil {
				panic(err)
			}
			return ioutil.NopCloser(zr)
		})
}
