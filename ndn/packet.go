/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"github.com/optoflood/tracecheck/ndn/tlv"
)

// PacketKind identifies the decoded network-layer packet type.
type PacketKind uint8

// Packet kinds.
const (
	KindUnknown PacketKind = iota
	KindInterest
	KindData
)

func (k PacketKind) String() string {
	switch k {
	case KindInterest:
		return "Interest"
	case KindData:
		return "Data"
	}
	return "Unknown"
}

// DecodedPacket holds the protocol signals the validator extracts from one
// NDN frame. HopLimit is the in-band Interest field; LpHopLimit is the
// per-hop field the forwarder adds to Data deliveries in the LpPacket header.
// The two are semantically distinct and are never merged.
type DecodedPacket struct {
	Kind       PacketKind
	Name       string
	HopLimit   *uint64
	LpHopLimit *uint64
	FloodID    *uint64
	Nonce      *uint64
}

// DecodePacket decodes an NDN network-layer payload, unwrapping an LpPacket
// if present. Returns nil for any malformed encoding; a corrupt frame must
// not interrupt the scan of the rest of a capture.
func DecodePacket(payload []byte) *DecodedPacket {
	outer, err := tlv.ReadElement(payload, 0)
	if err != nil {
		return nil
	}

	var lpHopLimit *uint64
	if outer.Type == tlv.LpPacket {
		children, err := outer.Children()
		if err != nil {
			return nil
		}
		var fragment *tlv.Element
		for i, child := range children {
			switch child.Type {
			case tlv.OptoHopLimit:
				if hop, err := tlv.DecodeNNI(child.Value); err == nil {
					hopCopy := hop
					lpHopLimit = &hopCopy
				}
			case tlv.LpFragment:
				fragment = &children[i]
			}
		}
		if fragment == nil {
			// A bare LpPacket (e.g. an idle ack) carries nothing to validate.
			return nil
		}
		outer, err = tlv.ReadElement(fragment.Value, 0)
		if err != nil {
			return nil
		}
	}

	switch outer.Type {
	case tlv.Interest:
		return decodeInterest(outer, lpHopLimit)
	case tlv.Data:
		return decodeData(outer, lpHopLimit)
	}
	return &DecodedPacket{Kind: KindUnknown, LpHopLimit: lpHopLimit}
}

func decodeInterest(elem tlv.Element, lpHopLimit *uint64) *DecodedPacket {
	children, err := elem.Children()
	if err != nil {
		return nil
	}

	p := &DecodedPacket{Kind: KindInterest, LpHopLimit: lpHopLimit}
	for _, child := range children {
		switch child.Type {
		case tlv.Name:
			name, err := RenderName(child.Value)
			if err != nil {
				return nil
			}
			p.Name = name
		case tlv.HopLimit:
			// A zero-length HopLimit is a decode failure for the field, not a 0.
			if len(child.Value) == 1 {
				hop := uint64(child.Value[0])
				p.HopLimit = &hop
			}
		case tlv.Nonce:
			if nonce, err := tlv.DecodeNNI(child.Value); err == nil {
				nonceCopy := nonce
				p.Nonce = &nonceCopy
			}
		}
	}
	return p
}

func decodeData(elem tlv.Element, lpHopLimit *uint64) *DecodedPacket {
	children, err := elem.Children()
	if err != nil {
		return nil
	}

	p := &DecodedPacket{Kind: KindData, LpHopLimit: lpHopLimit}
	for _, child := range children {
		switch child.Type {
		case tlv.Name:
			name, err := RenderName(child.Value)
			if err != nil {
				return nil
			}
			p.Name = name
		case tlv.MetaInfo:
			// Absence of MetaInfo or of the flood field is not an error.
			if flood, ok := child.Find(tlv.FloodID); ok {
				if id, err := tlv.DecodeNNI(flood.Value); err == nil {
					idCopy := id
					p.FloodID = &idCopy
				}
			}
		}
	}
	return p
}
