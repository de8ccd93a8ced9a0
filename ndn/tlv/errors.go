/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import "errors"

// TLV errors.
var (
	ErrTruncated     = errors.New("declared TLV width exceeds buffer size")
	ErrOverflow      = errors.New("read past end of buffer")
	ErrMissingLength = errors.New("missing TLV length")
	ErrTooLong       = errors.New("value too long")
	ErrTooShort      = errors.New("value too short")
)
