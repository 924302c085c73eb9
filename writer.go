// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zpress

import (
	"fmt"

	"github.com/zpress/zpress/codec"
	"github.com/zpress/zpress/xlog"
)

// Flush modes accepted by Push, re-exported from the codec package.
// FlushFromBool covers call sites using the two-value shorthand.
type Flush = codec.Flush

const (
	NoFlush   = codec.NoFlush
	SyncFlush = codec.SyncFlush
	Finish    = codec.Finish
)

// FlushFromBool maps false to NoFlush and true to Finish.
func FlushFromBool(finish bool) Flush { return codec.FlushFromBool(finish) }

// Writer is the streaming driver. It owns its codec stream and the
// current output chunk exclusively; input passed to Push is borrowed
// only for the duration of the call. A Writer is not safe for
// concurrent use.
type Writer struct {
	cfg  WriterConfig
	strm codec.Stream

	onData func([]byte)
	onEnd  func(codec.Status)

	chunks [][]byte
	result []byte
	err    codec.Status
	msg    string
	ended  bool
}

// NewWriter creates a Writer with the default configuration, producing
// zlib-framed output.
func NewWriter() (*Writer, error) {
	return NewWriterConfig(WriterConfig{})
}

// NewWriterConfig creates a Writer for the given configuration. It
// normalizes the configuration, initializes the engine and registers
// the optional header and dictionary. Any failure is a construction
// failure: no partially usable Writer is ever returned.
func NewWriterConfig(cfg WriterConfig) (*Writer, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	w := &Writer{cfg: cfg}
	strm := &w.strm

	st := codec.DeflateInit(strm, cfg.engineLevel(), cfg.Method,
		cfg.engineWindowBits(), cfg.MemLevel, cfg.Strategy)
	if st != codec.OK {
		return nil, fmt.Errorf("zpress: engine init failed: %s",
			diagnostic(strm, st))
	}
	if cfg.Header != nil {
		codec.DeflateSetHeader(strm, cfg.Header)
	}
	if len(cfg.Dictionary) > 0 {
		if st = codec.DeflateSetDictionary(strm, cfg.Dictionary); st != codec.OK {
			return nil, fmt.Errorf("zpress: set dictionary failed: %s",
				diagnostic(strm, st))
		}
	}

	w.onData = cfg.OnData
	if w.onData == nil {
		w.onData = w.appendChunk
	}
	w.onEnd = cfg.OnEnd
	if w.onEnd == nil {
		w.onEnd = w.aggregate
	}
	return w, nil
}

// diagnostic prefers the engine's message over the fixed table entry.
func diagnostic(strm *codec.Stream, st codec.Status) string {
	if strm.Msg != "" {
		return strm.Msg
	}
	return st.String()
}

// Push feeds data into the compressor with the requested flush mode and
// reports success. A false return on a live Writer means the engine
// failed; the end hook has fired with the error status and the Writer
// is terminated. Pushing into a terminated Writer is a no-op returning
// false without invoking any hook.
//
// A finishing push drains the engine, fires the end hook exactly once
// and terminates the Writer. A sync-flush push emits all pending output
// and fires the end hook, but leaves the Writer usable. Pushing no data
// with Finish or SyncFlush is valid.
func (w *Writer) Push(data []byte, flush Flush) bool {
	if w.ended {
		return false
	}
	strm := &w.strm
	strm.In = data
	strm.NextIn = 0
	strm.AvailIn = len(data)
	// the input buffer is borrowed; drop it before returning
	defer func() {
		strm.In = nil
		strm.NextIn = 0
		strm.AvailIn = 0
	}()

	for {
		if strm.AvailOut == 0 {
			strm.Out = make([]byte, w.cfg.ChunkSize)
			strm.NextOut = 0
			strm.AvailOut = w.cfg.ChunkSize
		}
		status := codec.Deflate(strm, flush)
		xlog.Printf(w.cfg.DebugLog,
			"deflate step flush=%d status=%d avail_in=%d next_out=%d",
			flush, status, strm.AvailIn, strm.NextOut)
		if status != codec.OK && status != codec.StreamEnd {
			w.terminate(status)
			return false
		}
		if strm.AvailOut == 0 ||
			(strm.AvailIn == 0 && (flush == Finish || flush == SyncFlush)) {
			w.onData(strm.Out[:strm.NextOut])
		}
		if !((strm.AvailIn > 0 || strm.AvailOut == 0) &&
			status != codec.StreamEnd) {
			break
		}
	}

	switch flush {
	case Finish:
		status := codec.DeflateEnd(strm)
		w.terminate(status)
		return status == codec.OK
	case SyncFlush:
		w.onEnd(codec.OK)
		// force a fresh chunk on the next push; the current one has
		// been handed to the emission hook
		strm.AvailOut = 0
		return true
	}
	return true
}

// PushString is Push for textual input.
func (w *Writer) PushString(s string, flush Flush) bool {
	return w.Push([]byte(s), flush)
}

// terminate fires the end hook once and makes the Writer permanently
// inert.
func (w *Writer) terminate(status codec.Status) {
	w.onEnd(status)
	w.ended = true
}

// appendChunk is the default emission hook: it collects chunks in
// production order.
func (w *Writer) appendChunk(chunk []byte) {
	w.chunks = append(w.chunks, chunk)
}

// aggregate is the default end hook. On success it joins the pending
// chunks into the result; in all cases it releases the pending chunks
// and records the status and the engine's diagnostic message.
func (w *Writer) aggregate(status codec.Status) {
	if status == codec.OK {
		n := 0
		for _, c := range w.chunks {
			n += len(c)
		}
		buf := make([]byte, 0, n)
		for _, c := range w.chunks {
			buf = append(buf, c...)
		}
		w.result = buf
	}
	w.chunks = nil
	w.err = status
	w.msg = w.strm.Msg
}

// Err returns the status recorded by the default end hook; zero means
// success.
func (w *Writer) Err() codec.Status { return w.err }

// Msg returns the engine's last diagnostic message as recorded by the
// default end hook.
func (w *Writer) Msg() string { return w.msg }

// Ended reports whether the Writer has terminated, either by a
// finishing push or by an engine error.
func (w *Writer) Ended() bool { return w.ended }

// Result returns the output aggregated by the default end hook. It is
// set after a successful finishing or sync-flushing push; a sync flush
// restarts aggregation for the chunks that follow it.
func (w *Writer) Result() []byte { return w.result }

// TextResult returns the aggregated output as a binary string, one
// character per output byte.
func (w *Writer) TextResult() string { return string(w.result) }
