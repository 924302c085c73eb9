// Copyright 2024 The zpress authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"errors"
	"hash/crc32"
	"strings"
	"time"
)

// OSUnknown is the RFC 1952 operating-system code for "unknown".
const OSUnknown = 0xff

// gzip header flag bits (RFC 1952).
const (
	flagText    = 1 << 0
	flagHCRC    = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4
)

// Header describes the optional gzip member header. It is attached to
// the engine once, before the first step, and must not be modified
// afterwards. Name and Comment must be NUL-free Latin-1 text; Extra is
// limited to 65535 bytes because the XLEN field is a uint16 on the
// wire. The zero value of OS is recorded as OSUnknown.
type Header struct {
	Text    bool      // sets the FTEXT hint flag
	ModTime time.Time // MTIME field; the zero time is recorded as 0
	OS      byte      // operating-system code
	Extra   []byte    // FEXTRA payload
	Name    string    // original file name
	Comment string    // free-form comment
	HCRC    bool      // append the CRC16 header checksum
}

var (
	errExtraTooLarge = errors.New("codec: gzip extra field exceeds 65535 bytes")
	errHeaderString  = errors.New("codec: gzip header strings must be NUL-free Latin-1")
)

// marshalGzipHeader renders the gzip member header. A nil Header yields
// the minimal ten-byte header. The compression level only selects the
// XFL hint byte.
func marshalGzipHeader(h *Header, level int) ([]byte, error) {
	var flags byte
	if h != nil {
		if len(h.Extra) > 0xffff {
			return nil, errExtraTooLarge
		}
		if strings.IndexByte(h.Name, 0) >= 0 ||
			strings.IndexByte(h.Comment, 0) >= 0 {
			return nil, errHeaderString
		}
		if h.Text {
			flags |= flagText
		}
		if h.HCRC {
			flags |= flagHCRC
		}
		if len(h.Extra) > 0 {
			flags |= flagExtra
		}
		if h.Name != "" {
			flags |= flagName
		}
		if h.Comment != "" {
			flags |= flagComment
		}
	}

	var mtime uint32
	if h != nil && !h.ModTime.IsZero() {
		if s := h.ModTime.Unix(); 0 < s && s <= 0xffffffff {
			mtime = uint32(s)
		}
	}

	var xfl byte
	switch {
	case level == 9:
		xfl = 2
	case 1 <= level && level <= 2:
		xfl = 4
	}

	osCode := byte(OSUnknown)
	if h != nil && h.OS != 0 {
		osCode = h.OS
	}

	p := make([]byte, 10, 32)
	p[0], p[1], p[2] = gzipID1, gzipID2, Deflated
	p[3] = flags
	p[4] = byte(mtime)
	p[5] = byte(mtime >> 8)
	p[6] = byte(mtime >> 16)
	p[7] = byte(mtime >> 24)
	p[8] = xfl
	p[9] = osCode

	if h != nil {
		if flags&flagExtra != 0 {
			n := len(h.Extra)
			p = append(p, byte(n), byte(n>>8))
			p = append(p, h.Extra...)
		}
		if flags&flagName != 0 {
			p = append(p, h.Name...)
			p = append(p, 0)
		}
		if flags&flagComment != 0 {
			p = append(p, h.Comment...)
			p = append(p, 0)
		}
		if flags&flagHCRC != 0 {
			crc := crc32.ChecksumIEEE(p)
			p = append(p, byte(crc), byte(crc>>8))
		}
	}
	return p, nil
}

// gzip member magic.
const (
	gzipID1 = 0x1f
	gzipID2 = 0x8b
)
