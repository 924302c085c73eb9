// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zpress_test

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/klauspost/compress/zlib"

	"github.com/zpress/zpress"
	"github.com/zpress/zpress/codec"
)

func Example() {
	const text = "The quick brown fox jumps over the lazy dog."

	// compress text
	out, err := zpress.Compress([]byte(text), nil)
	if err != nil {
		log.Fatalf("Compress error %s", err)
	}

	// decompress and write the result to stdout
	r, err := zlib.NewReader(bytes.NewReader(out))
	if err != nil {
		log.Fatalf("zlib.NewReader error %s", err)
	}
	if _, err = io.Copy(os.Stdout, r); err != nil {
		log.Fatalf("io.Copy error %s", err)
	}

	// Output:
	// The quick brown fox jumps over the lazy dog.
}

func ExampleWriter_Push() {
	var out bytes.Buffer
	w, err := zpress.NewWriterConfig(zpress.WriterConfig{
		OnData: func(chunk []byte) { out.Write(chunk) },
		OnEnd:  func(status codec.Status) {},
	})
	if err != nil {
		log.Fatalf("NewWriterConfig error %s", err)
	}
	w.Push([]byte("streamed "), zpress.NoFlush)
	w.Push([]byte("input"), zpress.Finish)
	fmt.Println(w.Ended(), out.Len() > 0)
	// Output:
	// true true
}
