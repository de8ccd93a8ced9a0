/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package capture

import (
	"encoding/binary"

	"github.com/google/gopacket/layers"
)

// EthernetTypeNDN is the ethertype of NDN traffic on a link.
const EthernetTypeNDN = 0x8624

// LinkType is the pcap datalink type. gopacket's layers.LinkType is only
// eight bits wide, which cannot represent SLL2 (276), so the full 32-bit
// pcap field width is kept here.
type LinkType uint32

// Supported link types, mapped from gopacket's named constants where they
// exist. LinkTypeLinuxSLL2 is absent from gopacket's link type table.
const (
	LinkTypeEthernet  = LinkType(layers.LinkTypeEthernet)
	LinkTypeLinuxSLL  = LinkType(layers.LinkTypeLinuxSLL)
	LinkTypeLinuxSLL2 = LinkType(276)
)

// Direction is the inbound/outbound hint recovered from link types that carry
// a packet-type field. Unknown is non-discriminating evidence: checkers must
// never read it as inbound or outbound.
type Direction uint8

// Directions.
const (
	DirUnknown Direction = iota
	DirInbound
	DirOutbound
)

func (d Direction) String() string {
	switch d {
	case DirInbound:
		return "in"
	case DirOutbound:
		return "out"
	}
	return "unknown"
}

// The cooked-capture packet-type value for locally generated frames.
const sllPacketTypeOutgoing = 4

func sllDirection(packetType uint16) Direction {
	if packetType == sllPacketTypeOutgoing {
		return DirOutbound
	}
	return DirInbound
}

// Strip removes the datalink framing from a frame, returning the direction
// hint, the protocol identifier, and the network-layer payload. Returns false
// for an unsupported link type or a frame shorter than the minimum header
// size for its type.
func Strip(frame []byte, linkType LinkType) (Direction, uint16, []byte, bool) {
	switch linkType {
	case LinkTypeEthernet:
		if len(frame) < 18 {
			return DirUnknown, 0, nil, false
		}
		// Ethernet has no packet-type field, so no direction hint.
		return DirUnknown, binary.BigEndian.Uint16(frame[12:14]), frame[14:], true
	case LinkTypeLinuxSLL:
		if len(frame) < 18 {
			return DirUnknown, 0, nil, false
		}
		packetType := binary.BigEndian.Uint16(frame[0:2])
		return sllDirection(packetType), binary.BigEndian.Uint16(frame[14:16]), frame[16:], true
	case LinkTypeLinuxSLL2:
		if len(frame) < 22 {
			return DirUnknown, 0, nil, false
		}
		packetType := binary.BigEndian.Uint16(frame[8:10])
		return sllDirection(packetType), binary.BigEndian.Uint16(frame[20:22]), frame[22:], true
	}
	return DirUnknown, 0, nil, false
}
