// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zpress/zpress"
	"github.com/zpress/zpress/codec"
)

type options struct {
	stdout    bool
	force     bool
	keep      bool
	quiet     bool
	raw       bool
	gzip      bool
	chunkSize int
	preset    int
}

// ext returns the suffix for the selected framing.
func (o *options) ext() string {
	switch {
	case o.raw:
		return ".deflate"
	case o.gzip:
		return ".gz"
	}
	return ".zz"
}

// level maps the preset digit to a driver level. Preset 0 stores only;
// the config's zero value would select the default level instead.
func (o *options) level() int {
	if o.preset == 0 {
		return zpress.Store
	}
	return o.preset
}

// compressStream pushes everything from r through a driver whose
// emission hook streams chunks into out.
func compressStream(r io.Reader, out io.Writer, o *options, hdr *codec.Header) error {
	bw := bufio.NewWriter(out)
	var werr error
	cfg := zpress.WriterConfig{
		Level:     o.level(),
		ChunkSize: o.chunkSize,
		Raw:       o.raw,
		GZip:      o.gzip,
		Header:    hdr,
		OnData: func(chunk []byte) {
			if werr == nil {
				_, werr = bw.Write(chunk)
			}
		},
	}
	w, err := zpress.NewWriterConfig(cfg)
	if err != nil {
		return err
	}

	buf := make([]byte, 1<<16)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if !w.Push(buf[:n], zpress.NoFlush) {
				return fmt.Errorf("compression failed: %s", w.Msg())
			}
			if werr != nil {
				return werr
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	if !w.Push(nil, zpress.Finish) {
		return fmt.Errorf("compression failed: %s", w.Msg())
	}
	if werr != nil {
		return werr
	}
	return bw.Flush()
}

// gzipHeader builds the member header recorded for a named input file.
func gzipHeader(name string, modTime time.Time) *codec.Header {
	return &codec.Header{
		Name:    filepath.Base(name),
		ModTime: modTime,
		OS:      codec.OSUnknown,
	}
}

// compressFile compresses one input file, or stdin to stdout for the
// path "-".
func compressFile(path string, o *options) error {
	if path == "-" {
		return compressStream(os.Stdin, os.Stdout, o, nil)
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	fi, err := in.Stat()
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}

	var hdr *codec.Header
	if o.gzip {
		hdr = gzipHeader(path, fi.ModTime())
	}

	if o.stdout {
		return compressStream(in, os.Stdout, o, hdr)
	}

	target := path + o.ext()
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !o.force {
		flags |= os.O_EXCL
	}
	out, err := os.OpenFile(target, flags, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if err = compressStream(in, out, o, hdr); err != nil {
		out.Close()
		os.Remove(target)
		return err
	}
	if err = out.Close(); err != nil {
		os.Remove(target)
		return err
	}
	if !o.keep {
		in.Close()
		if err = os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}
