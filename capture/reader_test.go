/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package capture_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/optoflood/tracecheck/capture"
	"github.com/stretchr/testify/assert"
)

// encodeCapture builds a legacy capture file in memory: little-endian,
// microsecond timestamps, one record per frame at one-second intervals.
func encodeCapture(linkType capture.LinkType, frames [][]byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xd4, 0xc3, 0xb2, 0xa1})
	header := make([]byte, 20)
	binary.LittleEndian.PutUint16(header[0:2], 2)      // version major
	binary.LittleEndian.PutUint16(header[2:4], 4)      // version minor
	binary.LittleEndian.PutUint32(header[12:16], 65535) // snaplen
	binary.LittleEndian.PutUint32(header[16:20], uint32(linkType))
	buf.Write(header)

	for i, frame := range frames {
		record := make([]byte, 16)
		binary.LittleEndian.PutUint32(record[0:4], uint32(1700000000+i))
		binary.LittleEndian.PutUint32(record[4:8], uint32(500000))
		binary.LittleEndian.PutUint32(record[8:12], uint32(len(frame)))
		binary.LittleEndian.PutUint32(record[12:16], uint32(len(frame)))
		buf.Write(record)
		buf.Write(frame)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, contents []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, contents, 0o644))
	return path
}

func TestReaderRecords(t *testing.T) {
	frames := [][]byte{{0x01, 0x02}, {0x03}, {0x04, 0x05, 0x06}}
	path := writeFile(t, "node.pcap", encodeCapture(capture.LinkTypeLinuxSLL, frames))

	reader, err := capture.Open(path)
	assert.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, capture.LinkTypeLinuxSLL, reader.LinkType())

	for i, frame := range frames {
		record, ok := reader.Next()
		assert.True(t, ok)
		assert.Equal(t, frame, record.Frame)
		assert.Equal(t, capture.LinkTypeLinuxSLL, record.LinkType)
		assert.InDelta(t, float64(1700000000+i)+0.5, record.Timestamp, 1e-6)
	}
	_, ok := reader.Next()
	assert.False(t, ok)
	_, ok = reader.Next()
	assert.False(t, ok)
}

func TestReaderBigEndianNanosecond(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x4d, 0x3c, 0xb2, 0xa1})
	header := make([]byte, 20)
	binary.BigEndian.PutUint32(header[16:20], uint32(capture.LinkTypeEthernet))
	buf.Write(header)
	record := make([]byte, 16)
	binary.BigEndian.PutUint32(record[0:4], 100)
	binary.BigEndian.PutUint32(record[4:8], 250000000) // quarter second in ns
	binary.BigEndian.PutUint32(record[8:12], 1)
	binary.BigEndian.PutUint32(record[12:16], 1)
	buf.Write(record)
	buf.WriteByte(0xAB)

	path := writeFile(t, "be.pcap", buf.Bytes())
	records := capture.ReadFile(path)
	assert.Len(t, records, 1)
	assert.InDelta(t, 100.25, records[0].Timestamp, 1e-9)
	assert.Equal(t, []byte{0xAB}, records[0].Frame)
	assert.Equal(t, capture.LinkTypeEthernet, records[0].LinkType)
}

func TestReaderTruncatedTail(t *testing.T) {
	frames := [][]byte{{0x01, 0x02}, {0x03, 0x04}}
	whole := encodeCapture(capture.LinkTypeEthernet, frames)

	// A file truncated mid-record yields one fewer record, silently.
	path := writeFile(t, "cut-frame.pcap", whole[:len(whole)-1])
	assert.Len(t, capture.ReadFile(path), 1)

	// Truncated inside the second record header.
	path = writeFile(t, "cut-header.pcap", whole[:len(whole)-2-8])
	assert.Len(t, capture.ReadFile(path), 1)

	// Intact file yields both.
	path = writeFile(t, "whole.pcap", whole)
	assert.Len(t, capture.ReadFile(path), 2)
}

func TestReaderHugeDeclaredLength(t *testing.T) {
	// A corrupt record header declaring near-4GiB must be treated as the
	// truncated-tail case without allocating the declared size.
	frames := [][]byte{{0x01, 0x02}}
	contents := encodeCapture(capture.LinkTypeEthernet, frames)

	bogus := make([]byte, 16)
	binary.LittleEndian.PutUint32(bogus[0:4], 1700000002)
	binary.LittleEndian.PutUint32(bogus[8:12], 0xFFFFFFF0)
	binary.LittleEndian.PutUint32(bogus[12:16], 0xFFFFFFF0)
	contents = append(contents, bogus...)
	contents = append(contents, 0xAA)

	path := writeFile(t, "huge-len.pcap", contents)
	records := capture.ReadFile(path)
	assert.Len(t, records, 1)
	assert.Equal(t, frames[0], records[0].Frame)
}

func TestReaderRejectsUnknownMagic(t *testing.T) {
	path := writeFile(t, "bad.pcap", append([]byte{0x0a, 0x0d, 0x0d, 0x0a}, make([]byte, 20)...))
	_, err := capture.Open(path)
	assert.Error(t, err)
	assert.Empty(t, capture.ReadFile(path))
}

func TestReaderShortGlobalHeader(t *testing.T) {
	path := writeFile(t, "short.pcap", []byte{0xd4, 0xc3, 0xb2, 0xa1, 0x00})
	assert.Empty(t, capture.ReadFile(path))
}

func TestReadFileMissing(t *testing.T) {
	// No records is a valid, inconclusive outcome, not a hard error.
	assert.Empty(t, capture.ReadFile(filepath.Join(t.TempDir(), "absent.pcap")))
}
