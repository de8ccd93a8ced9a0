/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import "bytes"

// Block is an encodable TLV tree. Unlike Element it owns its contents; the
// validator uses it to synthesize wire encodings (mainly in tests), never on
// the decode path.
type Block struct {
	tlvType     uint64
	value       []byte
	subelements []*Block
}

// NewEmptyBlock creates an empty block of the specified type.
func NewEmptyBlock(tlvType uint64) *Block {
	return &Block{tlvType: tlvType}
}

// NewBlock creates a block containing the specified type and value.
func NewBlock(tlvType uint64, value []byte) *Block {
	b := &Block{tlvType: tlvType}
	b.value = make([]byte, len(value))
	copy(b.value, value)
	return b
}

// NewNNIBlock creates a block containing a non-negative integer value.
func NewNNIBlock(tlvType uint64, v uint64) *Block {
	return &Block{tlvType: tlvType, value: EncodeNNI(v)}
}

// Type returns the type of the block.
func (b *Block) Type() uint64 {
	return b.tlvType
}

// Value returns the value contained in the block.
func (b *Block) Value() []byte {
	return b.value
}

// Append appends a subelement onto the end of the block's value.
func (b *Block) Append(block *Block) *Block {
	b.subelements = append(b.subelements, block)
	return b
}

// Wire returns the wire encoding of the block. Subelements, if any, take
// precedence over a directly-set value.
func (b *Block) Wire() []byte {
	var value []byte
	if len(b.subelements) > 0 {
		var buf bytes.Buffer
		for _, elem := range b.subelements {
			buf.Write(elem.Wire())
		}
		value = buf.Bytes()
	} else {
		value = b.value
	}

	var buf bytes.Buffer
	buf.Write(EncodeVarNum(b.tlvType))
	buf.Write(EncodeVarNum(uint64(len(value))))
	buf.Write(value)
	return buf.Bytes()
}
