// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command bwtmtf applies the Burrows-Wheeler and move-to-front transforms
// to standard input and writes the result to standard output.
//
// Example usage:
//	$ bwtmtf bwt - < input > input.bwt
//	$ bwtmtf bwt + < input.bwt > input
//	$ bwtmtf mtf - < input.bwt > input.mtf
//	$ bwtmtf pack --level 9 < input > input.bwm
//	$ bwtmtf unpack < input.bwm > input
//	$ bwtmtf bench --format xz --codecs uk --size 1e6 twain.txt
package main

import (
	"fmt"
	"math"
	"os"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const usageStatus = 2

var (
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Value: "warn",
		Usage: "log level (panic, fatal, error, warn, info, debug, trace)",
	}

	levelFlag = &cli.IntFlag{
		Name:  "level",
		Value: 0,
		Usage: "block size in units of 100k, from 1 to 9 (0 selects the default)",
	}
	blockSizeFlag = &cli.StringFlag{
		Name:  "block-size",
		Usage: "block size in bytes, overrides --level (e.g., 64Ki, 1e5, 900k)",
	}
	concurrencyFlag = &cli.IntFlag{
		Name:  "concurrency",
		Usage: "maximum number of blocks transformed in parallel (0 selects GOMAXPROCS)",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Value: "fl",
		Usage: "back-end format to measure against (fl, xz)",
	}
	codecsFlag = &cli.StringFlag{
		Name:  "codecs",
		Value: "std,kp,uk",
		Usage: "comma-separated list of back-end codecs",
	}
	benchLevelFlag = &cli.IntFlag{
		Name:  "level",
		Value: 6,
		Usage: "compression level of the back-end codecs",
	}
	sizeFlag = &cli.StringFlag{
		Name:  "size",
		Usage: "number of bytes of each file to use (empty uses the whole file)",
	}
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(app.ErrWriter, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	log := logrus.New()
	app := &cli.App{
		Name:      "bwtmtf",
		Usage:     "Burrows-Wheeler and move-to-front transforms",
		Flags:     []cli.Flag{verbosityFlag},
		Reader:    os.Stdin,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}
	app.Before = func(c *cli.Context) error {
		lvl, err := logrus.ParseLevel(c.String(verbosityFlag.Name))
		if err != nil {
			return cli.Exit(err, usageStatus)
		}
		log.SetOutput(c.App.ErrWriter)
		log.SetLevel(lvl)
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:      "bwt",
			Usage:     "apply the Burrows-Wheeler transform",
			ArgsUsage: "-|+",
			Action:    func(c *cli.Context) error { return runBWT(c, log) },
		},
		{
			Name:      "mtf",
			Usage:     "apply the move-to-front transform",
			ArgsUsage: "-|+",
			Action:    func(c *cli.Context) error { return runMTF(c, log) },
		},
		{
			Name:   "pack",
			Usage:  "apply both transforms to a framed multi-block stream",
			Flags:  []cli.Flag{levelFlag, blockSizeFlag, concurrencyFlag},
			Action: func(c *cli.Context) error { return runPack(c, log) },
		},
		{
			Name:   "unpack",
			Usage:  "invert a stream produced by pack",
			Action: func(c *cli.Context) error { return runUnpack(c, log) },
		},
		{
			Name:      "bench",
			Usage:     "measure how the transforms affect back-end compression ratios",
			ArgsUsage: "FILE...",
			Flags:     []cli.Flag{formatFlag, codecsFlag, benchLevelFlag, sizeFlag, blockSizeFlag},
			Action:    func(c *cli.Context) error { return runBench(c, log) },
		},
	}
	return app
}

// parseSize parses a byte count with an optional SI or IEC prefix.
// The empty string parses as zero.
func parseSize(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParsePrefix(s, strconv.AutoParse)
	if err != nil {
		return 0, cli.Exit(fmt.Sprintf("invalid size %q: %v", s, err), usageStatus)
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, cli.Exit(fmt.Sprintf("invalid size %q", s), usageStatus)
	}
	return int(f), nil
}
