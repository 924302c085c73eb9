// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zpress provides a streaming deflate driver. A Writer turns
// arbitrary-sized pushes of input into a sequence of bounded output
// chunks produced by the codec engine, delivered through an emission
// hook and aggregated into a single result by default. The one-shot
// functions Compress, CompressRaw and CompressGzip cover callers that
// have the whole input at hand.
package zpress
