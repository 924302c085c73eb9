// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

// Flush selects how much buffered state a deflate step must push out.
// The values match the zlib flush constants.
type Flush int

const (
	// NoFlush lets the engine buffer freely for the best compression.
	NoFlush Flush = 0
	// SyncFlush forces all pending output to a byte boundary, closed by
	// the empty stored-block marker, and keeps the stream open.
	SyncFlush Flush = 2
	// Finish completes the stream and appends the wrapper trailer.
	Finish Flush = 4
)

// FlushFromBool maps the boolean shorthand used by call sites that only
// distinguish "keep going" from "finish".
func FlushFromBool(finish bool) Flush {
	if finish {
		return Finish
	}
	return NoFlush
}

// Strategy tunes the compressor for special data. Only HuffmanOnly
// changes the behavior of this engine: it disables match search
// entirely. Filtered, RLE and Fixed are accepted for zlib compatibility
// and compress with the default matcher; every deflate stream the
// default matcher produces is a valid encoding of the input.
type Strategy int

const (
	DefaultStrategy Strategy = 0
	Filtered        Strategy = 1
	HuffmanOnly     Strategy = 2
	RLE             Strategy = 3
	Fixed           Strategy = 4
)

// Deflated is the only compression method defined for the zlib and gzip
// wrapper formats.
const Deflated = 8
