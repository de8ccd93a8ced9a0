/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// TLV types for NDN.
const (
	// Packet types
	Interest = 0x05
	Data     = 0x06

	// Name and components
	Name                 = 0x07
	GenericNameComponent = 0x08

	// Interest packets
	CanBePrefix      = 0x21
	MustBeFresh      = 0x12
	Nonce            = 0x0a
	InterestLifetime = 0x0c
	HopLimit         = 0x22

	// Data packets
	MetaInfo       = 0x14
	Content        = 0x15
	SignatureInfo  = 0x16
	SignatureValue = 0x17

	// Data/MetaInfo
	ContentType     = 0x18
	FreshnessPeriod = 0x19
	FinalBlockID    = 0x1a
)

// TLV types for NDNLPv2.
const (
	LpFragment = 0x50
	LpSequence = 0x51
	LpPacket   = 0x64
)

// TLV types added by the OptoFlood forwarder extension.
const (
	// OptoHopLimit is the per-hop hop limit the forwarder prepends to Data
	// deliveries inside the LpPacket header. It is distinct from the in-band
	// Interest HopLimit.
	OptoHopLimit = 0x60

	// FloodID tags duplicate deliveries of the same content across paths. It is
	// carried inside Data's MetaInfo.
	FloodID = 0xca
)
