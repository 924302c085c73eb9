// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"hash"
	"hash/adler32"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// wrapper formats selected by the window-bits parameter
const (
	wrapRaw = iota
	wrapZlib
	wrapGzip
)

// flushWriter is the surface the engine requires from its body
// compressor.
type flushWriter interface {
	io.WriteCloser
	Flush() error
}

// engine is the opaque state behind a Stream. The deflate body comes
// from klauspost/compress; the engine adds the cursor protocol, the
// gzip framing and the running checksum.
type engine struct {
	wrap     int
	level    int
	strategy Strategy
	dict     []byte
	hdr      *Header

	// compressed bytes not yet moved into Stream.Out
	pending bytes.Buffer

	fw      flushWriter
	check   hash.Hash32
	started bool
	closed  bool

	// input written since the last sync flush; a drain-only step must
	// not emit another empty-block marker
	dirty bool
}

// DeflateInit allocates the engine state for strm. The window-bits
// parameter selects the wrapper format: -15..-8 headerless (raw) deflate,
// 8..15 zlib, 24..31 gzip (the zlib range shifted by 16). Level follows
// zlib numbering (-1 default, 0 stored, 1..9); method must be Deflated.
// The memory level is validated for range but does not constrain this
// engine, which sizes its own buffers. Invalid parameters return
// ErrStream with the diagnostic message set.
func DeflateInit(strm *Stream, level, method, windowBits, memLevel int, strategy Strategy) Status {
	if strm == nil {
		return ErrStream
	}
	var wrap int
	switch {
	case -15 <= windowBits && windowBits <= -8:
		wrap = wrapRaw
	case 8 <= windowBits && windowBits <= 15:
		wrap = wrapZlib
	case 24 <= windowBits && windowBits <= 31:
		wrap = wrapGzip
	default:
		return strm.fail(ErrStream)
	}
	if method != Deflated ||
		!(level == flate.DefaultCompression ||
			(flate.NoCompression <= level && level <= flate.BestCompression)) ||
		!(1 <= memLevel && memLevel <= 9) ||
		!(DefaultStrategy <= strategy && strategy <= Fixed) {
		return strm.fail(ErrStream)
	}

	e := &engine{wrap: wrap, level: level, strategy: strategy}
	switch wrap {
	case wrapZlib:
		e.check = adler32.New()
	case wrapGzip:
		e.check = crc32.NewIEEE()
	}

	strm.e = e
	strm.Msg = ""
	strm.TotalIn, strm.TotalOut = 0, 0
	strm.DataType = Unknown
	strm.Checksum = initChecksum(e)
	return OK
}

func initChecksum(e *engine) uint32 {
	if e.wrap == wrapZlib {
		return 1 // Adler-32 of the empty string
	}
	return 0
}

// DeflateSetHeader attaches a gzip member header. It takes effect only
// on a gzip stream and only before the first step; in every other case
// the call is ignored, matching the zlib contract for wrappers that
// carry no header. Ownership of hdr transfers to the engine.
func DeflateSetHeader(strm *Stream, hdr *Header) {
	if strm == nil || strm.e == nil {
		return
	}
	e := strm.e
	if e.wrap != wrapGzip || e.started {
		return
	}
	e.hdr = hdr
}

// DeflateSetDictionary presets the compression dictionary. It is valid
// for raw and zlib streams before the first step; gzip defines no
// dictionary and returns ErrStream. For zlib streams the Checksum field
// is set to the Adler-32 of the dictionary, the DICTID recorded in the
// stream header.
func DeflateSetDictionary(strm *Stream, dict []byte) Status {
	if strm == nil || strm.e == nil {
		return ErrStream
	}
	e := strm.e
	if e.wrap == wrapGzip || e.started {
		return strm.fail(ErrStream)
	}
	e.dict = dict
	if e.wrap == wrapZlib {
		strm.Checksum = adler32.Checksum(dict)
	}
	return OK
}

// start builds the body compressor. It runs on the first step so that
// the dictionary and header can be attached between init and the first
// step, the same deferred construction the wrapper headers themselves
// use.
func (e *engine) start(strm *Stream) Status {
	level := e.level
	if e.strategy == HuffmanOnly {
		level = flate.HuffmanOnly
	}

	var err error
	switch e.wrap {
	case wrapRaw:
		if len(e.dict) > 0 {
			e.fw, err = flate.NewWriterDict(&e.pending, level, e.dict)
		} else {
			e.fw, err = flate.NewWriter(&e.pending, level)
		}
	case wrapZlib:
		e.fw, err = zlib.NewWriterLevelDict(&e.pending, level, e.dict)
	case wrapGzip:
		var p []byte
		if p, err = marshalGzipHeader(e.hdr, e.level); err != nil {
			strm.Msg = err.Error()
			return ErrStream
		}
		e.pending.Write(p)
		e.fw, err = flate.NewWriter(&e.pending, level)
	}
	if err != nil {
		strm.Msg = err.Error()
		return ErrStream
	}
	if e.check != nil {
		e.check.Reset()
		strm.Checksum = initChecksum(e)
	}
	e.started = true
	return OK
}

// Deflate performs one engine step: it consumes all available input,
// applies the requested flush and moves up to AvailOut pending bytes
// into the output buffer. It returns StreamEnd once the stream has been
// finished and fully drained, OK while more work may remain, and an
// error status otherwise.
func Deflate(strm *Stream, flush Flush) Status {
	if strm == nil || strm.e == nil {
		return ErrStream
	}
	switch flush {
	case NoFlush, SyncFlush, Finish:
	default:
		return strm.fail(ErrStream)
	}
	if strm.AvailIn != len(strm.In)-strm.NextIn ||
		strm.AvailOut != len(strm.Out)-strm.NextOut {
		return strm.fail(ErrStream)
	}
	e := strm.e

	if e.closed && strm.AvailIn > 0 {
		// no progress possible on a finished stream
		return strm.fail(ErrBuf)
	}

	if strm.AvailIn > 0 {
		if !e.started {
			if st := e.start(strm); st != OK {
				return st
			}
		}
		p := strm.In[strm.NextIn : strm.NextIn+strm.AvailIn]
		if _, err := e.fw.Write(p); err != nil {
			strm.Msg = err.Error()
			return ErrStream
		}
		if e.check != nil {
			e.check.Write(p)
			strm.Checksum = e.check.Sum32()
		}
		observeDataType(strm, p)
		strm.NextIn += len(p)
		strm.TotalIn += int64(len(p))
		strm.AvailIn = 0
		e.dirty = true
	}

	switch flush {
	case SyncFlush:
		if !e.closed && (e.dirty || !e.started) {
			if !e.started {
				if st := e.start(strm); st != OK {
					return st
				}
			}
			if err := e.fw.Flush(); err != nil {
				strm.Msg = err.Error()
				return ErrStream
			}
			e.dirty = false
		}
	case Finish:
		if !e.closed {
			if !e.started {
				if st := e.start(strm); st != OK {
					return st
				}
			}
			if err := e.fw.Close(); err != nil {
				strm.Msg = err.Error()
				return ErrStream
			}
			if e.wrap == wrapGzip {
				e.writeGzipTrailer(strm)
			}
			e.closed = true
		}
	}

	if strm.AvailOut > 0 && e.pending.Len() > 0 {
		n := copy(strm.Out[strm.NextOut:strm.NextOut+strm.AvailOut],
			e.pending.Bytes())
		e.pending.Next(n)
		strm.NextOut += n
		strm.AvailOut -= n
		strm.TotalOut += int64(n)
	}

	if e.closed && e.pending.Len() == 0 {
		return StreamEnd
	}
	return OK
}

// writeGzipTrailer appends CRC32 and ISIZE, both little-endian.
func (e *engine) writeGzipTrailer(strm *Stream) {
	crc := uint32(0)
	if e.check != nil {
		crc = e.check.Sum32()
	}
	isize := uint32(strm.TotalIn)
	var t [8]byte
	t[0] = byte(crc)
	t[1] = byte(crc >> 8)
	t[2] = byte(crc >> 16)
	t[3] = byte(crc >> 24)
	t[4] = byte(isize)
	t[5] = byte(isize >> 8)
	t[6] = byte(isize >> 16)
	t[7] = byte(isize >> 24)
	e.pending.Write(t[:])
}

// DeflateEnd releases the engine state. It returns OK for a stream that
// was finished and drained or never produced output, ErrData for a
// stream discarded with work outstanding, and ErrStream for an
// uninitialized stream. The Stream is unusable afterwards until the
// next DeflateInit.
func DeflateEnd(strm *Stream) Status {
	if strm == nil || strm.e == nil {
		return ErrStream
	}
	e := strm.e
	strm.e = nil
	if e.started && !(e.closed && e.pending.Len() == 0) {
		return strm.fail(ErrData)
	}
	return OK
}
