/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"encoding/binary"
	"math"
)

// EncodeVarNum encodes a non-negative integer in the NDN variable-length form.
func EncodeVarNum(in uint64) []byte {
	if in <= 0xFC {
		return []byte{byte(in)}
	} else if in <= 0xFFFF {
		out := make([]byte, 3)
		out[0] = 0xFD
		binary.BigEndian.PutUint16(out[1:], uint16(in))
		return out
	} else if in <= 0xFFFFFFFF {
		out := make([]byte, 5)
		out[0] = 0xFE
		binary.BigEndian.PutUint32(out[1:], uint32(in))
		return out
	}
	out := make([]byte, 9)
	out[0] = 0xFF
	binary.BigEndian.PutUint64(out[1:], in)
	return out
}

// ReadVarNum decodes a variable-length number at offset and returns the value
// and the offset just past it. Returns ErrOverflow when called at or after the
// end of buf, and ErrTruncated when the first octet declares a width that
// would read past the end of buf.
func ReadVarNum(buf []byte, offset int) (uint64, int, error) {
	if offset >= len(buf) {
		return 0, 0, ErrOverflow
	}

	first := buf[offset]
	if first < 0xFD {
		return uint64(first), offset + 1, nil
	} else if first == 0xFD {
		if offset+3 > len(buf) {
			return 0, 0, ErrTruncated
		}
		return uint64(binary.BigEndian.Uint16(buf[offset+1 : offset+3])), offset + 3, nil
	} else if first == 0xFE {
		if offset+5 > len(buf) {
			return 0, 0, ErrTruncated
		}
		return uint64(binary.BigEndian.Uint32(buf[offset+1 : offset+5])), offset + 5, nil
	}
	// Must be 0xFF
	if offset+9 > len(buf) {
		return 0, 0, ErrTruncated
	}
	return binary.BigEndian.Uint64(buf[offset+1 : offset+9]), offset + 9, nil
}

// EncodeNNI encodes a non-negative integer into a TLV value slice.
func EncodeNNI(v uint64) []byte {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, v)

	if v <= math.MaxUint8 {
		return value[7:]
	} else if v <= math.MaxUint16 {
		return value[6:]
	} else if v <= math.MaxUint32 {
		return value[4:]
	}
	return value
}

// DecodeNNI decodes a non-negative integer from a TLV value slice.
func DecodeNNI(value []byte) (uint64, error) {
	if len(value) > 8 {
		return 0, ErrTooLong
	} else if len(value) == 0 {
		return 0, ErrTooShort
	}

	// Pad buffer
	buf := make([]byte, 8)
	copy(buf[8-len(value):], value)
	return binary.BigEndian.Uint64(buf), nil
}
