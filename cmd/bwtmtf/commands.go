// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/dsnet/bwtmtf/block"
	"github.com/dsnet/bwtmtf/bwt"
	"github.com/dsnet/bwtmtf/internal/tool/bench"
	"github.com/dsnet/bwtmtf/mtf"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

type mode int

const (
	modeForward mode = iota // "-"
	modeInverse             // "+"
)

// parseMode parses the single mode argument of the bwt and mtf commands.
// It must be called before any input is consumed.
func parseMode(c *cli.Context) (mode, error) {
	if c.Args().Len() != 1 {
		return 0, cli.Exit(fmt.Sprintf("%s: expected exactly one mode argument (- or +)", c.Command.Name), usageStatus)
	}
	switch s := c.Args().First(); s {
	case "-":
		return modeForward, nil
	case "+":
		return modeInverse, nil
	default:
		return 0, cli.Exit(fmt.Sprintf("%s: invalid mode %q: want - or +", c.Command.Name, s), usageStatus)
	}
}

func runBWT(c *cli.Context, log *logrus.Logger) error {
	m, err := parseMode(c)
	if err != nil {
		return err
	}
	switch m {
	case modeForward:
		in, err := ioutil.ReadAll(c.App.Reader)
		if err != nil {
			return err
		}
		ptr, out, err := bwt.Forward(in)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"len": len(in), "ptr": ptr}).Info("bwt forward")
		return bwt.WriteBlock(c.App.Writer, ptr, out)
	default:
		ptr, in, err := bwt.ReadBlock(c.App.Reader)
		if err != nil {
			return err
		}
		out, err := bwt.Inverse(ptr, in)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"len": len(in), "ptr": ptr}).Info("bwt inverse")
		_, err = c.App.Writer.Write(out)
		return err
	}
}

func runMTF(c *cli.Context, log *logrus.Logger) error {
	m, err := parseMode(c)
	if err != nil {
		return err
	}
	in, err := ioutil.ReadAll(c.App.Reader)
	if err != nil {
		return err
	}
	var out []byte
	if m == modeForward {
		out = mtf.Encode(in)
	} else {
		out = mtf.Decode(in)
	}
	log.WithField("len", len(in)).Infof("mtf %s", c.Args().First())
	_, err = c.App.Writer.Write(out)
	return err
}

func runPack(c *cli.Context, log *logrus.Logger) error {
	blkSize, err := parseSize(c.String(blockSizeFlag.Name))
	if err != nil {
		return err
	}
	conf := &block.WriterConfig{
		Level:       c.Int(levelFlag.Name),
		BlockSize:   blkSize,
		Concurrency: c.Int(concurrencyFlag.Name),
	}
	log.WithFields(logrus.Fields{
		"level":       conf.Level,
		"blockSize":   conf.BlockSize,
		"concurrency": conf.Concurrency,
	}).Debug("pack config")

	zw, err := block.NewWriter(c.App.Writer, conf)
	if err != nil {
		return cli.Exit(err, usageStatus)
	}
	if _, err := io.Copy(zw, c.App.Reader); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"in": zw.InputOffset, "out": zw.OutputOffset}).Info("pack")
	return nil
}

func runUnpack(c *cli.Context, log *logrus.Logger) error {
	zr, err := block.NewReader(c.App.Reader, nil)
	if err != nil {
		return err
	}
	if _, err := io.Copy(c.App.Writer, zr); err != nil {
		return err
	}
	if err := zr.Close(); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"in": zr.InputOffset, "out": zr.OutputOffset}).Info("unpack")
	return nil
}

func runBench(c *cli.Context, log *logrus.Logger) error {
	if c.Args().Len() == 0 {
		return cli.Exit("bench: no input files", usageStatus)
	}
	format, err := bench.ParseFormat(c.String(formatFlag.Name))
	if err != nil {
		return cli.Exit(err, usageStatus)
	}
	size, err := parseSize(c.String(sizeFlag.Name))
	if err != nil {
		return err
	}
	if size == 0 {
		size = -1
	}
	blkSize, err := parseSize(c.String(blockSizeFlag.Name))
	if err != nil {
		return err
	}
	if blkSize == 0 {
		blkSize = block.DefaultCompression * 100000
	}

	// Keep only the codecs available for the format.
	var codecs []string
	for _, s := range strings.Split(c.String(codecsFlag.Name), ",") {
		if _, ok := bench.Encoders[format][s]; ok {
			codecs = append(codecs, s)
		} else {
			log.WithField("codec", s).Debugf("no %v encoder", format)
		}
	}
	if len(codecs) == 0 {
		return cli.Exit(fmt.Sprintf("bench: no %v encoders among %q", format, c.String(codecsFlag.Name)), usageStatus)
	}

	var cnt int
	tick := func() {
		cnt++
		log.WithField("run", cnt).Debug("bench")
	}
	results, err := bench.RatioSuite(format, codecs, c.Args().Slice(), c.Int(benchLevelFlag.Name), size, blkSize, tick)
	if err != nil {
		return err
	}
	printResults(c.App.Writer, format, results)
	return nil
}

func printResults(w io.Writer, format bench.Format, results []bench.Result) {
	fmt.Fprintf(w, "BENCHMARK: %v:ratio\n", format)
	fmt.Fprintf(w, "\t%-24s %-6s %8s %8s %8s\n", "benchmark", "codec", "raw", "bwtmtf", "gain")
	for _, r := range results {
		fmt.Fprintf(w, "\t%-24s %-6s %7.2fx %7.2fx %7.2fx\n", r.Name, r.Codec, r.Raw, r.Pre, r.Gain())
	}
}
