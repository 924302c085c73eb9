// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xlog provides a nil-safe logger for debug output. The driver
// keeps a Logger field that is nil in normal operation; the functions
// here do nothing for a nil Logger, so tracing costs a single nil check
// unless it has been switched on. The standard library's *log.Logger
// satisfies the interface.
package xlog

import "fmt"

// Logger is the output sink for debug messages. *log.Logger implements
// it.
type Logger interface {
	Output(calldepth int, s string) error
}

// Printf formats and logs the arguments. A nil Logger suppresses the
// message without formatting it.
func Printf(l Logger, format string, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintf(format, v...))
	}
}

// Println logs the arguments followed by a newline. A nil Logger
// suppresses the message.
func Println(l Logger, v ...interface{}) {
	if l != nil {
		l.Output(2, fmt.Sprintln(v...))
	}
}
