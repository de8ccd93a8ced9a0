/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package trace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/optoflood/tracecheck/capture"
	"github.com/optoflood/tracecheck/ndn"
	"github.com/optoflood/tracecheck/trace"
	"github.com/stretchr/testify/assert"
)

func writeExtract(t *testing.T, dir string, node string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, node+".fields")
	contents := ""
	for _, line := range lines {
		contents += line + "\n"
	}
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestFromExtract(t *testing.T) {
	path := writeExtract(t, t.TempDir(), "r3", []string{
		"sll.pkttype\tsll.ifindex\tip.dst\tndn.type\tndn.name\tndn.flood_id\tndn.lp.hoplimit\tndn.hoplimit\tndn.nonce\tframe.number",
		"0\t2\t10.0.0.2\tData\t/producer/seg0\t42\t3\t\t\t17",
		"4\t3\t10.0.0.4\tData\t/producer/seg0\t42\t2\t\t\t21",
		"0\t2\t10.0.0.2\tInterest\t/producer/seg0\t\t\t5\t0xcafe\t33",
	})

	nodeTrace := trace.FromExtract(path)
	assert.Equal(t, "r3", nodeTrace.Node)
	assert.Len(t, nodeTrace.Entries, 3)

	first := nodeTrace.Entries[0]
	assert.Equal(t, 17, first.FrameIndex)
	assert.Equal(t, capture.DirInbound, first.Direction)
	assert.Equal(t, "2", first.Iface)
	assert.Equal(t, "10.0.0.2", first.Dst)
	assert.Equal(t, ndn.KindData, first.Packet.Kind)
	assert.Equal(t, "/producer/seg0", first.Packet.Name)
	assert.Equal(t, uint64(42), *first.Packet.FloodID)
	assert.Equal(t, uint64(3), *first.Packet.LpHopLimit)
	assert.Nil(t, first.Packet.HopLimit)

	interest := nodeTrace.Entries[2]
	assert.Equal(t, ndn.KindInterest, interest.Packet.Kind)
	assert.Equal(t, uint64(5), *interest.Packet.HopLimit)
	assert.Equal(t, uint64(0xcafe), *interest.Packet.Nonce)
	assert.Nil(t, interest.Packet.LpHopLimit)
	assert.Nil(t, interest.Packet.FloodID)
}

func TestFromExtractSynonyms(t *testing.T) {
	// Dissector revisions renamed fields; any accepted synonym must resolve.
	path := writeExtract(t, t.TempDir(), "r4", []string{
		"pkttype\ttype\tflood_id\tndn_lp_hoplimit\tframe",
		"4\t6\t9\t1\t2",
	})

	nodeTrace := trace.FromExtract(path)
	assert.Len(t, nodeTrace.Entries, 1)
	entry := nodeTrace.Entries[0]
	assert.Equal(t, capture.DirOutbound, entry.Direction)
	assert.Equal(t, ndn.KindData, entry.Packet.Kind)
	assert.Equal(t, uint64(9), *entry.Packet.FloodID)
	assert.Equal(t, uint64(1), *entry.Packet.LpHopLimit)
	assert.Equal(t, 2, entry.FrameIndex)
}

func TestFromExtractOutboundGroups(t *testing.T) {
	path := writeExtract(t, t.TempDir(), "r5", []string{
		"sll.pkttype\tsll.ifindex\tip.dst\tndn.type\tndn.flood_id\tndn.lp.hoplimit\tframe.number",
		"4\teth0\t10.0.0.2\tData\t7\t2\t41",
		"4\teth0\t10.0.0.2\tData\t7\t2\t57",
		"4\teth1\t10.0.0.3\tData\t7\t2\t58",
		"0\teth0\t10.0.0.2\tData\t7\t3\t60", // inbound, excluded
		"4\teth0\t\tData\t7\t2\t61",         // no destination, excluded
	})

	groups := trace.FromExtract(path).OutboundDataGroups()
	assert.Len(t, groups, 2)
	dup := groups[trace.DupKey{FloodID: 7, Iface: "eth0", Dst: "10.0.0.2"}]
	assert.Len(t, dup, 2)
	assert.Equal(t, 41, dup[0].FrameIndex)
	assert.Equal(t, 57, dup[1].FrameIndex)
	assert.Len(t, groups[trace.DupKey{FloodID: 7, Iface: "eth1", Dst: "10.0.0.3"}], 1)
}

func TestFromExtractMissingOrHeaderless(t *testing.T) {
	assert.Empty(t, trace.FromExtract(filepath.Join(t.TempDir(), "absent.fields")).Entries)

	path := writeExtract(t, t.TempDir(), "empty", nil)
	assert.Empty(t, trace.FromExtract(path).Entries)
}
