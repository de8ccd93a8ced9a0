/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package trace

import (
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/optoflood/tracecheck/capture"
	"github.com/optoflood/tracecheck/core"
	"github.com/optoflood/tracecheck/ndn"
)

// Entry is one NDN-classified frame of a node's capture.
type Entry struct {
	// FrameIndex is 1-based, matching the frame numbering of interactive
	// dissectors so evidence lines can be cross-checked by hand.
	FrameIndex int
	Timestamp  float64
	Direction  capture.Direction
	// Digest fingerprints the stripped payload so duplicate evidence can
	// distinguish identical retransmissions from distinct content. Zero for
	// entries loaded from a tabular extract.
	Digest uint64
	// Iface and Dst are only known when the trace was loaded from a tabular
	// extract; raw link headers do not carry them.
	Iface  string
	Dst    string
	Packet ndn.DecodedPacket
}

// NodeTrace is the decoded, ordered view of one capture file's NDN-relevant
// packets. It is read-only once built; all grouping helpers derive fresh
// views, so concurrent use needs no locking.
type NodeTrace struct {
	Node    string
	Entries []Entry
}

// NodeName derives the node identity from a capture or extract path.
func NodeName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FromCapture scans a capture file end-to-end into a NodeTrace. Frames that
// are not NDN, or that fail to decode, are skipped; one corrupt frame never
// loses the rest of the trace. A missing or unreadable file yields an empty
// trace.
func FromCapture(path string) *NodeTrace {
	nodeTrace := &NodeTrace{Node: NodeName(path)}
	for i, record := range capture.ReadFile(path) {
		direction, protocol, payload, ok := capture.Strip(record.Frame, record.LinkType)
		if !ok || protocol != capture.EthernetTypeNDN {
			continue
		}
		packet := ndn.DecodePacket(payload)
		if packet == nil {
			core.LogTrace("Trace", "Skipping undecodable frame ", i+1, " in ", path)
			continue
		}
		nodeTrace.Entries = append(nodeTrace.Entries, Entry{
			FrameIndex: i + 1,
			Timestamp:  record.Timestamp,
			Direction:  direction,
			Digest:     xxhash.Sum64(payload),
			Packet:     *packet,
		})
	}
	return nodeTrace
}

// FirstByFloodID returns the first Data entry carrying the flood identifier in
// the given direction. First arrival/departure governs forwarding semantics;
// later duplicates are retained in Entries but never selected here. Entries
// with identical timestamps keep insertion order.
func (t *NodeTrace) FirstByFloodID(id uint64, direction capture.Direction) (Entry, bool) {
	for _, entry := range t.Entries {
		if entry.Packet.Kind != ndn.KindData || entry.Direction != direction {
			continue
		}
		if entry.Packet.FloodID != nil && *entry.Packet.FloodID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

// FirstByNonce returns the first Interest entry carrying the nonce in the
// given direction.
func (t *NodeTrace) FirstByNonce(nonce uint64, direction capture.Direction) (Entry, bool) {
	for _, entry := range t.Entries {
		if entry.Packet.Kind != ndn.KindInterest || entry.Direction != direction {
			continue
		}
		if entry.Packet.Nonce != nil && *entry.Packet.Nonce == nonce {
			return entry, true
		}
	}
	return Entry{}, false
}

// FloodIDs returns the set of flood identifiers observed at this node in any
// direction.
func (t *NodeTrace) FloodIDs() map[uint64]struct{} {
	ids := make(map[uint64]struct{})
	for _, entry := range t.Entries {
		if entry.Packet.Kind == ndn.KindData && entry.Packet.FloodID != nil {
			ids[*entry.Packet.FloodID] = struct{}{}
		}
	}
	return ids
}

// Nonces returns the set of Interest nonces observed in the given direction.
func (t *NodeTrace) Nonces(direction capture.Direction) map[uint64]struct{} {
	nonces := make(map[uint64]struct{})
	for _, entry := range t.Entries {
		if entry.Packet.Kind != ndn.KindInterest || entry.Direction != direction {
			continue
		}
		if entry.Packet.Nonce != nil {
			nonces[*entry.Packet.Nonce] = struct{}{}
		}
	}
	return nonces
}

// HasInterest reports whether any Interest was observed at this node.
func (t *NodeTrace) HasInterest() bool {
	for _, entry := range t.Entries {
		if entry.Packet.Kind == ndn.KindInterest {
			return true
		}
	}
	return false
}

// DupKey groups outbound Data records for duplicate suppression: the same
// flood identifier leaving twice through the same interface toward the same
// destination is a forwarding fault.
type DupKey struct {
	FloodID uint64
	Iface   string
	Dst     string
}

// OutboundDataGroups groups outbound Data entries by (flood id, egress
// interface, destination). Entries without a resolvable destination are
// excluded: without it the key cannot distinguish fan-out from duplication.
func (t *NodeTrace) OutboundDataGroups() map[DupKey][]Entry {
	groups := make(map[DupKey][]Entry)
	for _, entry := range t.Entries {
		if entry.Packet.Kind != ndn.KindData || entry.Direction != capture.DirOutbound {
			continue
		}
		if entry.Packet.FloodID == nil || entry.Dst == "" || entry.Dst == "?" {
			continue
		}
		key := DupKey{FloodID: *entry.Packet.FloodID, Iface: entry.Iface, Dst: entry.Dst}
		groups[key] = append(groups[key], entry)
	}
	return groups
}
