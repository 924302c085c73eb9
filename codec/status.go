// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import "fmt"

// Status is the result of an engine call. Zero is success, StreamEnd
// reports that the stream has been completed and fully drained, negative
// values are errors. The numbering follows the zlib convention so that
// callers porting zlib code can keep their tables.
type Status int

const (
	OK         Status = 0
	StreamEnd  Status = 1
	NeedDict   Status = 2
	ErrErrno   Status = -1
	ErrStream  Status = -2
	ErrData    Status = -3
	ErrMem     Status = -4
	ErrBuf     Status = -5
	ErrVersion Status = -6
)

// String returns the fixed diagnostic message for the status code. The
// message for OK is empty, again following the zlib convention.
func (s Status) String() string {
	switch s {
	case OK:
		return ""
	case StreamEnd:
		return "stream end"
	case NeedDict:
		return "need dictionary"
	case ErrErrno:
		return "file error"
	case ErrStream:
		return "stream error"
	case ErrData:
		return "data error"
	case ErrMem:
		return "insufficient memory"
	case ErrBuf:
		return "buffer error"
	case ErrVersion:
		return "incompatible version"
	}
	return fmt.Sprintf("unknown status code %d", int(s))
}
