/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package capture

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/optoflood/tracecheck/core"
)

// Record is one on-disk frame. Ordering across records equals file order,
// which equals arrival order at the capturing interface.
type Record struct {
	// Timestamp in seconds with sub-microsecond resolution.
	Timestamp float64
	Frame     []byte
	LinkType  LinkType
}

type magicEntry struct {
	order   binary.ByteOrder
	tsScale float64
}

// The four accepted byte-order/timestamp-unit combinations of the legacy
// capture format. pcap-ng is out of scope.
var pcapMagic = map[[4]byte]magicEntry{
	{0xd4, 0xc3, 0xb2, 0xa1}: {binary.LittleEndian, 1e6},
	{0xa1, 0xb2, 0xc3, 0xd4}: {binary.BigEndian, 1e6},
	{0x4d, 0x3c, 0xb2, 0xa1}: {binary.BigEndian, 1e9},
	{0xa1, 0xb2, 0x3c, 0x4d}: {binary.LittleEndian, 1e9},
}

const (
	globalHeaderLen = 24
	recordHeaderLen = 16
)

// Reader produces a lazy, finite, non-restartable sequence of Records from a
// legacy capture file. Re-scanning a file requires re-opening it.
type Reader struct {
	file     *os.File
	order    binary.ByteOrder
	tsScale  float64
	linkType LinkType
	// remaining bounds frame allocations: a corrupt record header cannot
	// declare more bytes than the file still holds.
	remaining int64
	done      bool
}

// Open opens a capture file and validates its global header. An unrecognized
// magic number is reported as an error; callers that treat "no records" as an
// inconclusive outcome should use ReadFile instead.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	header := make([]byte, globalHeaderLen)
	if _, err := io.ReadFull(file, header); err != nil {
		file.Close()
		return nil, core.ErrMalformed
	}

	var magic [4]byte
	copy(magic[:], header[:4])
	entry, ok := pcapMagic[magic]
	if !ok {
		file.Close()
		return nil, core.ErrMalformed
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	// Version, snaplen and timezone fields are informational; only the link
	// type is consumed downstream.
	return &Reader{
		file:      file,
		order:     entry.order,
		tsScale:   entry.tsScale,
		linkType:  LinkType(entry.order.Uint32(header[20:24])),
		remaining: info.Size() - globalHeaderLen,
	}, nil
}

// LinkType returns the datalink type declared in the global header.
func (r *Reader) LinkType() LinkType {
	return r.linkType
}

// Next returns the next record, or false at end of file. A truncated trailing
// record (partial header or partial frame) is treated as end-of-file, not
// corruption.
func (r *Reader) Next() (Record, bool) {
	if r.done {
		return Record{}, false
	}

	header := make([]byte, recordHeaderLen)
	if _, err := io.ReadFull(r.file, header); err != nil {
		r.done = true
		return Record{}, false
	}
	r.remaining -= recordHeaderLen

	tsSec := r.order.Uint32(header[0:4])
	tsFrac := r.order.Uint32(header[4:8])
	inclLen := r.order.Uint32(header[8:12])

	// A declared length past the end of the file is the truncated-tail case;
	// refuse it before allocating.
	if int64(inclLen) > r.remaining {
		r.done = true
		return Record{}, false
	}

	frame := make([]byte, inclLen)
	if _, err := io.ReadFull(r.file, frame); err != nil {
		r.done = true
		return Record{}, false
	}
	r.remaining -= int64(inclLen)

	return Record{
		Timestamp: float64(tsSec) + float64(tsFrac)/r.tsScale,
		Frame:     frame,
		LinkType:  r.linkType,
	}, true
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	r.done = true
	return r.file.Close()
}

// ReadFile reads every complete record of a capture file. A missing file or
// unrecognized magic yields an empty slice: callers must treat "no records"
// as a valid, inconclusive outcome rather than a hard error.
func ReadFile(path string) []Record {
	reader, err := Open(path)
	if err != nil {
		core.LogDebug("Capture", "Skipping ", path, ": ", err)
		return nil
	}
	defer reader.Close()

	var records []Record
	for {
		record, ok := reader.Next()
		if !ok {
			break
		}
		records = append(records, record)
	}
	return records
}
