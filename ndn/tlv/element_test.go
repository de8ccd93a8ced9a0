/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv_test

import (
	"testing"

	"github.com/optoflood/tracecheck/ndn/tlv"
	"github.com/stretchr/testify/assert"
)

func TestElementDecode(t *testing.T) {
	elem, err := tlv.ReadElement([]byte{0x28, 0x04, 0x01, 0x02, 0x03, 0x04}, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0x28), elem.Type)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, elem.Value)
	assert.Equal(t, 6, elem.End)
}

func TestElementZeroCopy(t *testing.T) {
	wire := []byte{0x28, 0x02, 0xAA, 0xBB}
	elem, err := tlv.ReadElement(wire, 0)
	assert.NoError(t, err)
	// The value is a borrowed view into the original buffer.
	wire[2] = 0xCC
	assert.Equal(t, []byte{0xCC, 0xBB}, elem.Value)
}

func TestElementTruncated(t *testing.T) {
	// Declared length overruns the buffer.
	_, err := tlv.ReadElement([]byte{0x28, 0x05, 0x01, 0x02}, 0)
	assert.ErrorIs(t, err, tlv.ErrTruncated)

	// Type present but no length octet.
	_, err = tlv.ReadElement([]byte{0x28}, 0)
	assert.ErrorIs(t, err, tlv.ErrMissingLength)

	// Nothing at all.
	_, err = tlv.ReadElement([]byte{}, 0)
	assert.ErrorIs(t, err, tlv.ErrOverflow)
}

func TestElementHugeLength(t *testing.T) {
	// An 8-byte length near 2^64 must be rejected as truncation, not wrap
	// around the offset arithmetic into an inverted slice.
	wire := []byte{0x06, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00}
	assert.NotPanics(t, func() {
		_, err := tlv.ReadElement(wire, 0)
		assert.ErrorIs(t, err, tlv.ErrTruncated)
	})

	// Same with a 4-byte length that exceeds the remaining bytes by enough to
	// overflow 32-bit arithmetic.
	wire = []byte{0x06, 0xFE, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}
	_, err := tlv.ReadElement(wire, 0)
	assert.ErrorIs(t, err, tlv.ErrTruncated)
}

func TestElementRoundTrip(t *testing.T) {
	// Encoding a synthetic TLV tree and decoding it must reproduce the same
	// type/length/value tuples.
	wire := tlv.NewEmptyBlock(tlv.LpPacket).
		Append(tlv.NewNNIBlock(tlv.OptoHopLimit, 3)).
		Append(tlv.NewBlock(tlv.LpFragment, []byte{0xDE, 0xAD})).
		Wire()

	outer, err := tlv.ReadElement(wire, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint64(tlv.LpPacket), outer.Type)
	assert.Equal(t, len(wire), outer.End)

	children, err := outer.Children()
	assert.NoError(t, err)
	assert.Len(t, children, 2)
	assert.Equal(t, uint64(tlv.OptoHopLimit), children[0].Type)
	hop, err := tlv.DecodeNNI(children[0].Value)
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), hop)
	assert.Equal(t, uint64(tlv.LpFragment), children[1].Type)
	assert.Equal(t, []byte{0xDE, 0xAD}, children[1].Value)

	// Truncation anywhere within the encoding must surface as an error.
	for cut := 1; cut < len(wire); cut++ {
		_, err := tlv.ReadElement(wire[:cut], 0)
		assert.Error(t, err, "cut at %d", cut)
	}
}

func TestElementFind(t *testing.T) {
	wire := tlv.NewEmptyBlock(tlv.MetaInfo).
		Append(tlv.NewNNIBlock(tlv.FreshnessPeriod, 1000)).
		Append(tlv.NewNNIBlock(tlv.FloodID, 42)).
		Wire()

	elem, err := tlv.ReadElement(wire, 0)
	assert.NoError(t, err)

	flood, ok := elem.Find(tlv.FloodID)
	assert.True(t, ok)
	id, err := tlv.DecodeNNI(flood.Value)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	_, ok = elem.Find(tlv.ContentType)
	assert.False(t, ok)
}
