// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ogier/pflag"
)

const usageStr = `Usage: zpress [OPTION]... [FILE]...
Compress FILEs as zlib streams (by default, compress FILES in place).

  -c, --stdout      write to standard output and don't delete input files
  -f, --force       force overwrite of output file
  -h, --help        give this help
  -k, --keep        keep (don't delete) input files
  -q, --quiet       suppress all warnings
  -V, --version     display version string
      --raw         produce headerless deflate streams (.deflate)
      --gzip        produce gzip members (.gz)
      --chunk N     output chunk capacity in bytes
  -0 ... -9         compression preset; default is 6, 0 stores only

With no file, or when FILE is -, read standard input and write to
standard output.
`

const version = "0.1.0"

// Preset holds the compression preset selected with the -0 to -9
// digit options, which pflag cannot parse itself.
type Preset int

const defaultPreset Preset = 6

func (p *Preset) filterArg(arg string) string {
	if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
		return arg
	}
	buf := new(bytes.Buffer)
	buf.Grow(len(arg))
	for _, c := range arg {
		if '0' <= c && c <= '9' {
			*p = Preset(c - '0')
			continue
		}
		buf.WriteRune(c)
	}
	return buf.String()
}

// filter removes the preset digits from os.Args before pflag sees them.
func (p *Preset) filter() {
	args := make([]string, 1, len(os.Args))
	args[0] = os.Args[0]
	for i, arg := range os.Args[1:] {
		if arg == "--" {
			args = append(args, os.Args[1+i:]...)
			break
		}
		arg = p.filterArg(arg)
		if arg != "-" {
			args = append(args, arg)
		}
	}
	os.Args = args
}

func usage(w io.Writer) {
	fmt.Fprint(w, usageStr)
}

func main() {
	cmdName := filepath.Base(os.Args[0])
	log.SetPrefix(fmt.Sprintf("%s: ", cmdName))
	log.SetFlags(0)

	pflag.CommandLine = pflag.NewFlagSet(cmdName, pflag.ExitOnError)
	pflag.Usage = func() { usage(os.Stderr); os.Exit(1) }
	var (
		help        = pflag.BoolP("help", "h", false, "")
		stdout      = pflag.BoolP("stdout", "c", false, "")
		force       = pflag.BoolP("force", "f", false, "")
		keep        = pflag.BoolP("keep", "k", false, "")
		quiet       = pflag.BoolP("quiet", "q", false, "")
		showVersion = pflag.BoolP("version", "V", false, "")
		raw         = pflag.Bool("raw", false, "")
		gz          = pflag.Bool("gzip", false, "")
		chunkSize   = pflag.Int("chunk", 0, "")
		preset      = defaultPreset
	)

	preset.filter()
	pflag.Parse()

	if *help {
		usage(os.Stdout)
		os.Exit(0)
	}
	if *showVersion {
		fmt.Printf("%s %s\n", cmdName, version)
		os.Exit(0)
	}

	opts := &options{
		stdout:    *stdout,
		force:     *force,
		keep:      *keep,
		quiet:     *quiet,
		raw:       *raw,
		gzip:      *gz,
		chunkSize: *chunkSize,
		preset:    int(preset),
	}

	files := pflag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	exitCode := 0
	for _, path := range files {
		if err := compressFile(path, opts); err != nil {
			exitCode = 1
			if !opts.quiet {
				log.Print(err)
			}
		}
	}
	os.Exit(exitCode)
}
