/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package trace

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/optoflood/tracecheck/capture"
	"github.com/optoflood/tracecheck/ndn"
)

// A tabular extract is the column-per-field text an external dissector emits
// (one header line naming the fields, then one tab-separated line per frame).
// It is accepted as an equivalent source of the same logical fields as raw
// frame decoding and must produce identical verdicts.

// Logical fields of a tabular extract.
const (
	fieldPacketType = iota
	fieldName
	fieldHopLimit
	fieldLpHopLimit
	fieldFloodID
	fieldNonce
	fieldDirection
	fieldIface
	fieldDst
	fieldFrame
	numFields
)

// Accepted column-name synonyms per logical field, tried in priority order.
// Dissector revisions renamed several of these; the list is the single place
// the aliases live.
var fieldSynonyms = [numFields][]string{
	fieldPacketType: {"ndn.type", "ndn_type", "type"},
	fieldName:       {"ndn.name", "ndn_name", "name"},
	fieldHopLimit:   {"ndn.hoplimit", "ndn_interest_hoplimit", "hoplimit"},
	fieldLpHopLimit: {"ndn.lp.hoplimit", "ndn_lp_hoplimit", "ndn.optop_hoplimit"},
	fieldFloodID:    {"ndn.flood_id", "ndn_flood_id", "flood_id"},
	fieldNonce:      {"ndn.nonce", "ndn_nonce", "nonce"},
	fieldDirection:  {"sll.pkttype", "sll_pkttype", "pkttype"},
	fieldIface:      {"sll.ifindex", "sll_ifindex", "ifindex"},
	fieldDst:        {"ip.dst", "ip_dst", "dst"},
	fieldFrame:      {"frame.number", "frame_number", "frame"},
}

func resolveColumns(header []string) [numFields]int {
	var columns [numFields]int
	for field := range columns {
		columns[field] = -1
		for _, synonym := range fieldSynonyms[field] {
			for i, name := range header {
				if name == synonym {
					columns[field] = i
					break
				}
			}
			if columns[field] != -1 {
				break
			}
		}
	}
	return columns
}

func tabularKind(raw string) ndn.PacketKind {
	switch raw {
	case "Interest", "5":
		return ndn.KindInterest
	case "Data", "6":
		return ndn.KindData
	}
	return ndn.KindUnknown
}

func tabularDirection(raw string) capture.Direction {
	if raw == "" {
		return capture.DirUnknown
	}
	if raw == "4" {
		return capture.DirOutbound
	}
	return capture.DirInbound
}

func parseUintField(raw string) *uint64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return nil
	}
	return &value
}

// FromExtract loads a NodeTrace from a tabular field extract. A missing or
// headerless file yields an empty trace, mirroring FromCapture.
func FromExtract(path string) *NodeTrace {
	nodeTrace := &NodeTrace{Node: NodeName(path)}

	file, err := os.Open(path)
	if err != nil {
		return nodeTrace
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return nodeTrace
	}
	columns := resolveColumns(strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t"))

	cell := func(cols []string, field int) string {
		index := columns[field]
		if index < 0 || index >= len(cols) {
			return ""
		}
		return strings.TrimSpace(cols[index])
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")

		kind := tabularKind(cell(cols, fieldPacketType))
		packet := ndn.DecodedPacket{
			Kind:     kind,
			Name:     cell(cols, fieldName),
			FloodID:  parseUintField(cell(cols, fieldFloodID)),
			Nonce:    parseUintField(cell(cols, fieldNonce)),
			HopLimit: parseUintField(cell(cols, fieldHopLimit)),
		}
		// The per-hop field only accompanies Data deliveries; an extract that
		// repeats the column on Interests must not leak it into the Data-plane
		// analysis.
		if kind == ndn.KindData {
			packet.LpHopLimit = parseUintField(cell(cols, fieldLpHopLimit))
		}

		frameIndex := lineNo
		if frame := parseUintField(cell(cols, fieldFrame)); frame != nil {
			frameIndex = int(*frame)
		}

		nodeTrace.Entries = append(nodeTrace.Entries, Entry{
			FrameIndex: frameIndex,
			Direction:  tabularDirection(cell(cols, fieldDirection)),
			Iface:      cell(cols, fieldIface),
			Dst:        cell(cols, fieldDst),
			Packet:     packet,
		})
	}
	return nodeTrace
}
