// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zpress

import (
	"errors"
	"fmt"

	"github.com/zpress/zpress/codec"
	"github.com/zpress/zpress/xlog"
)

// Compression levels. The zero value of WriterConfig.Level selects
// DefaultCompression; Store requests stored (uncompressed) blocks,
// which the engine knows as level 0.
const (
	DefaultCompression = -1
	Store              = -2
	BestSpeed          = 1
	BestCompression    = 9
)

// DefaultChunkSize is the output chunk capacity used when the
// configuration leaves ChunkSize zero.
const DefaultChunkSize = 16384

// WriterConfig describes the parameters for a Writer. The zero value is
// a usable configuration producing zlib-framed output. The struct is
// copied at construction and immutable afterwards.
type WriterConfig struct {
	// Compression level: DefaultCompression, Store or 1..9.
	// (default: DefaultCompression)
	Level int
	// Compression method; only codec.Deflated is defined.
	Method int
	// Base-two logarithm of the window size (default: 15). Raw and
	// GZip adjust the value passed to the engine; see NewWriterConfig.
	WindowBits int
	// Memory level 1..9 (default: 8).
	MemLevel int
	// Compression strategy (default: codec.DefaultStrategy).
	Strategy codec.Strategy
	// Capacity in bytes of each emitted output chunk.
	// (default: DefaultChunkSize)
	ChunkSize int

	// Preset dictionary registered with the engine at construction.
	Dictionary []byte
	// Raw selects headerless deflate framing. It takes precedence
	// over GZip.
	Raw bool
	// GZip selects gzip framing instead of zlib framing.
	GZip bool
	// Header is the optional gzip member header; it is only
	// meaningful with gzip framing and ignored otherwise.
	Header *codec.Header

	// OnData consumes one emitted chunk. Ownership of the chunk
	// transfers to the hook. A nil OnData appends chunks to the
	// default aggregator.
	OnData func(chunk []byte)
	// OnEnd observes the final status of a finishing push and the
	// success status of every sync flush; the two cases are not
	// distinguished here, callers tell them apart with Ended(). A nil
	// OnEnd installs the default aggregator, which joins the pending
	// chunks into Result and records the status.
	OnEnd func(status codec.Status)

	// DebugLog enables step tracing when non-nil.
	DebugLog xlog.Logger
}

// SetDefaults replaces zero values by default values.
func (cfg *WriterConfig) SetDefaults() {
	if cfg.Level == 0 {
		cfg.Level = DefaultCompression
	}
	if cfg.Method == 0 {
		cfg.Method = codec.Deflated
	}
	if cfg.WindowBits == 0 {
		cfg.WindowBits = 15
	}
	if cfg.MemLevel == 0 {
		cfg.MemLevel = 8
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
}

// Verify checks the configuration for errors. Zero values will be
// replaced by default values. Window bits are validated by the engine
// at construction, after the framing adjustment.
func (cfg *WriterConfig) Verify() error {
	if cfg == nil {
		return errors.New("zpress: writer configuration is nil")
	}
	cfg.SetDefaults()
	switch {
	case cfg.Level == DefaultCompression || cfg.Level == Store:
	case BestSpeed <= cfg.Level && cfg.Level <= BestCompression:
	default:
		return fmt.Errorf("zpress: compression level %d out of range",
			cfg.Level)
	}
	if cfg.Method != codec.Deflated {
		return fmt.Errorf("zpress: unsupported compression method %d",
			cfg.Method)
	}
	if !(1 <= cfg.MemLevel && cfg.MemLevel <= 9) {
		return fmt.Errorf("zpress: memory level %d out of range",
			cfg.MemLevel)
	}
	if !(codec.DefaultStrategy <= cfg.Strategy &&
		cfg.Strategy <= codec.Fixed) {
		return fmt.Errorf("zpress: unknown strategy %d", cfg.Strategy)
	}
	if cfg.ChunkSize <= 0 {
		return errors.New("zpress: chunk size must be positive")
	}
	return nil
}

// engineWindowBits applies the framing adjustment: raw mode negates a
// positive window-bits value, otherwise gzip mode shifts a zlib-range
// value up by 16. Exactly one adjustment applies.
func (cfg *WriterConfig) engineWindowBits() int {
	wb := cfg.WindowBits
	if cfg.Raw && wb > 0 {
		return -wb
	}
	if cfg.GZip && 0 < wb && wb < 16 {
		return wb + 16
	}
	return wb
}

// engineLevel maps the configuration level to the engine's zlib-style
// numbering.
func (cfg *WriterConfig) engineLevel() int {
	if cfg.Level == Store {
		return 0
	}
	return cfg.Level
}
