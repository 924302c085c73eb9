// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

// Data type tags inferred from the consumed input. The engine tracks
// them as a hint only; they never change the produced stream.
const (
	Binary  = 0
	Text    = 1
	Unknown = 2
)

// Stream is the cursor record shared between a driver and the engine.
// The In slice is borrowed for the duration of a single step; the engine
// keeps no reference to it. Before every step the invariants
//
//	AvailIn = len(In) - NextIn
//	AvailOut = len(Out) - NextOut
//
// must hold. The engine consumes from In[NextIn:], produces into
// Out[NextOut:] and advances all four cursors.
type Stream struct {
	In      []byte // input buffer, borrowed per step
	NextIn  int    // read cursor into In
	AvailIn int    // bytes left to consume
	TotalIn int64  // cumulative consumed input

	Out      []byte // output buffer, owned by the driver
	NextOut  int    // write cursor into Out
	AvailOut int    // capacity left in Out
	TotalOut int64  // cumulative produced output

	Msg      string // last diagnostic message
	DataType int    // Binary, Text or Unknown
	Checksum uint32 // running wrapper checksum (Adler-32 or CRC-32)

	// engine-internal state; opaque to the driver
	e *engine
}

// fail records the fixed diagnostic message for the status and returns
// the status, so error paths stay one-liners.
func (strm *Stream) fail(s Status) Status {
	strm.Msg = s.String()
	return s
}

// observeDataType updates the data-type hint from one consumed input
// slice. Once input looks binary the tag sticks.
func observeDataType(strm *Stream, p []byte) {
	if strm.DataType == Binary || len(p) == 0 {
		return
	}
	for _, c := range p {
		if c == '\t' || c == '\n' || c == '\r' || (0x20 <= c && c <= 0x7e) {
			continue
		}
		strm.DataType = Binary
		return
	}
	strm.DataType = Text
}
