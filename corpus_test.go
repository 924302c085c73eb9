// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zpress

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/ulikunitz/zdata"
)

type corpusFile struct {
	Name string
	Data []byte
}

func loadFiles(t testing.TB, corpus fs.FS) (files []corpusFile) {
	t.Helper()
	err := fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			files = append(files, corpusFile{Name: path, Data: data})
			return nil
		})
	if err != nil {
		t.Fatalf("loading corpus error %s", err)
	}
	return files
}

func TestSilesiaRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping corpus round trip in short mode")
	}
	files := loadFiles(t, zdata.Silesia)
	if len(files) == 0 {
		t.Fatal("empty corpus")
	}
	for _, f := range files[:1] {
		out, err := Compress(f.Data, &WriterConfig{Level: BestSpeed})
		if err != nil {
			t.Fatalf("%s: Compress error %s", f.Name, err)
		}
		t.Logf("%s: %d -> %d bytes", f.Name, len(f.Data), len(out))
		if !bytes.Equal(decodeZlib(t, out), f.Data) {
			t.Fatalf("%s: decompressed data differs from original",
				f.Name)
		}
	}
}

func BenchmarkWriter(b *testing.B) {
	files := loadFiles(b, zdata.Silesia)
	if len(files) == 0 {
		b.Fatal("empty corpus")
	}
	data := files[0].Data
	out := 0
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := Compress(data, &WriterConfig{Level: BestSpeed})
		if err != nil {
			b.Fatalf("Compress error %s", err)
		}
		out = len(p)
	}
	b.ReportMetric(float64(out)/float64(len(data)), "rate")
}
