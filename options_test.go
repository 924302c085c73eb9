// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zpress

import (
	"testing"

	"github.com/kr/pretty"

	"github.com/zpress/zpress/codec"
)

func TestSetDefaults(t *testing.T) {
	var cfg WriterConfig
	cfg.SetDefaults()
	want := WriterConfig{
		Level:      DefaultCompression,
		Method:     codec.Deflated,
		WindowBits: 15,
		MemLevel:   8,
		Strategy:   codec.DefaultStrategy,
		ChunkSize:  DefaultChunkSize,
	}
	if diff := pretty.Diff(cfg, want); len(diff) > 0 {
		t.Fatalf("unexpected defaults:\n%s", diff)
	}
}

func TestSetDefaultsKeepsOverrides(t *testing.T) {
	cfg := WriterConfig{
		Level:      BestSpeed,
		WindowBits: 12,
		MemLevel:   1,
		ChunkSize:  64,
		Raw:        true,
	}
	cfg.SetDefaults()
	want := WriterConfig{
		Level:      BestSpeed,
		Method:     codec.Deflated,
		WindowBits: 12,
		MemLevel:   1,
		Strategy:   codec.DefaultStrategy,
		ChunkSize:  64,
		Raw:        true,
	}
	if diff := pretty.Diff(cfg, want); len(diff) > 0 {
		t.Fatalf("overrides not preserved:\n%s", diff)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name string
		cfg  WriterConfig
		ok   bool
	}{
		{"zero value", WriterConfig{}, true},
		{"store level", WriterConfig{Level: Store}, true},
		{"best compression", WriterConfig{Level: BestCompression}, true},
		{"level 10", WriterConfig{Level: 10}, false},
		{"level -3", WriterConfig{Level: -3}, false},
		{"method 7", WriterConfig{Method: 7}, false},
		{"mem level 10", WriterConfig{MemLevel: 10}, false},
		{"strategy fixed", WriterConfig{Strategy: codec.Fixed}, true},
		{"strategy 5", WriterConfig{Strategy: codec.Strategy(5)}, false},
		{"negative chunk", WriterConfig{ChunkSize: -4}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Verify()
			if tc.ok && err != nil {
				t.Fatalf("Verify error %s", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("Verify succeeded; want error")
			}
		})
	}
	var nilCfg *WriterConfig
	if err := nilCfg.Verify(); err == nil {
		t.Fatal("Verify on nil configuration succeeded; want error")
	}
}

func TestEngineWindowBits(t *testing.T) {
	tests := []struct {
		name string
		cfg  WriterConfig
		want int
	}{
		{"default zlib", WriterConfig{WindowBits: 15}, 15},
		{"raw negates", WriterConfig{WindowBits: 15, Raw: true}, -15},
		{"gzip shifts", WriterConfig{WindowBits: 15, GZip: true}, 31},
		{"gzip smallest", WriterConfig{WindowBits: 9, GZip: true}, 25},
		{"raw precedence", WriterConfig{
			WindowBits: 15, Raw: true, GZip: true,
		}, -15},
		{"explicit negative untouched", WriterConfig{
			WindowBits: -13, Raw: true,
		}, -13},
		{"no flag untouched", WriterConfig{WindowBits: 13}, 13},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.engineWindowBits(); got != tc.want {
				t.Fatalf("engineWindowBits() is %d; want %d",
					got, tc.want)
			}
		})
	}
}

func TestEngineLevel(t *testing.T) {
	cfg := WriterConfig{Level: Store}
	if got := cfg.engineLevel(); got != 0 {
		t.Fatalf("engineLevel() for Store is %d; want 0", got)
	}
	cfg = WriterConfig{Level: DefaultCompression}
	if got := cfg.engineLevel(); got != -1 {
		t.Fatalf("engineLevel() for default is %d; want -1", got)
	}
}
