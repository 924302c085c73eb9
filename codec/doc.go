// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codec implements the block codec engine consumed by the
// zpress driver: a stateful deflate-family compressor operating on the
// Stream cursor record through DeflateInit, DeflateSetHeader,
// DeflateSetDictionary, Deflate and DeflateEnd.
//
// The engine produces raw deflate, zlib or gzip framing, selected by
// the window-bits parameter of DeflateInit. The deflate body is
// provided by github.com/klauspost/compress; this package contributes
// the cursor protocol, the gzip member framing and the running
// checksums.
package codec
