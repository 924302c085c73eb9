// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zpress

import (
	"fmt"

	"github.com/zpress/zpress/codec"
)

// Compress compresses data in one shot using the given configuration.
// A nil cfg selects the defaults. Streaming failures that Push reports
// through its boolean return are escalated to an error here, carrying
// the engine's diagnostic message.
func Compress(data []byte, cfg *WriterConfig) ([]byte, error) {
	var c WriterConfig
	if cfg != nil {
		c = *cfg
	}
	return oneShot(data, c)
}

// CompressRaw compresses data into a headerless deflate stream. The Raw
// flag of the configuration is forced.
func CompressRaw(data []byte, cfg *WriterConfig) ([]byte, error) {
	var c WriterConfig
	if cfg != nil {
		c = *cfg
	}
	c.Raw = true
	return oneShot(data, c)
}

// CompressGzip compresses data into a gzip member. The GZip flag of the
// configuration is forced.
func CompressGzip(data []byte, cfg *WriterConfig) ([]byte, error) {
	var c WriterConfig
	if cfg != nil {
		c = *cfg
	}
	c.GZip = true
	c.Raw = false
	return oneShot(data, c)
}

func oneShot(data []byte, cfg WriterConfig) ([]byte, error) {
	// the one-shot path relies on the default aggregator
	cfg.OnData = nil
	cfg.OnEnd = nil
	w, err := NewWriterConfig(cfg)
	if err != nil {
		return nil, err
	}
	w.Push(data, codec.Finish)
	if w.err != codec.OK {
		msg := w.msg
		if msg == "" {
			msg = w.err.String()
		}
		return nil, fmt.Errorf("zpress: compression failed: %s", msg)
	}
	return w.result, nil
}
