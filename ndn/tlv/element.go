/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// Element is a decoded TLV viewed in place: Value aliases the buffer it was
// decoded from and owns nothing, so its lifetime is bounded by the frame that
// produced it.
type Element struct {
	Type  uint64
	Value []byte
	// End is the offset just past this element in the parent buffer.
	End int
}

// ReadElement decodes one TLV at offset. The returned value slice has exactly
// the declared length; ErrTruncated is returned when the declared length runs
// past the end of buf.
func ReadElement(buf []byte, offset int) (Element, error) {
	elemType, offset, err := ReadVarNum(buf, offset)
	if err != nil {
		return Element{}, err
	}
	length, offset, err := ReadVarNum(buf, offset)
	if err != nil {
		if err == ErrOverflow {
			err = ErrMissingLength
		}
		return Element{}, err
	}
	// Compare against the remaining bytes before any offset arithmetic: an
	// 8-byte length near 2^64 must not wrap into a plausible end offset.
	if length > uint64(len(buf)-offset) {
		return Element{}, ErrTruncated
	}
	end := offset + int(length)
	return Element{Type: elemType, Value: buf[offset:end], End: end}, nil
}

// Children decodes the value of e as a sequence of nested TLVs, advancing
// until the value is exhausted. Any decode failure invalidates the whole
// sequence.
func (e Element) Children() ([]Element, error) {
	var children []Element
	offset := 0
	for offset < len(e.Value) {
		child, err := ReadElement(e.Value, offset)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		offset = child.End
	}
	return children, nil
}

// Find returns the first child of the specified type, or false if none exists
// or the value does not parse as a TLV sequence.
func (e Element) Find(elemType uint64) (Element, bool) {
	children, err := e.Children()
	if err != nil {
		return Element{}, false
	}
	for _, child := range children {
		if child.Type == elemType {
			return child, true
		}
	}
	return Element{}, false
}
