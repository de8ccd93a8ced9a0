/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/optoflood/tracecheck/trace"
)

func formatDupGroup(node string, key trace.DupKey, entries []trace.Entry) string {
	frames := make([]string, 0, len(entries))
	hops := make([]string, 0, len(entries))
	for _, entry := range entries {
		frames = append(frames, fmt.Sprintf("%d", entry.FrameIndex))
		if entry.Packet.LpHopLimit != nil {
			hops = append(hops, fmt.Sprintf("%d", *entry.Packet.LpHopLimit))
		} else {
			hops = append(hops, "?")
		}
	}
	return fmt.Sprintf("%s:fid=%d,iface=%s,dst=%s,count=%d,frames=[%s],hoplimit=[%s]",
		node, key.FloodID, key.Iface, key.Dst, len(entries),
		strings.Join(frames, ","), strings.Join(hops, ","))
}

// checkDedup verifies duplicate suppression: every (flood id, egress
// interface, destination) group of outbound Data has exactly one record.
func checkDedup(ctx *Context) Result {
	const id = "dedup"

	groupCount := 0
	var offenders []string
	for _, node := range ctx.PathNodes {
		nodeTrace := ctx.LoadTrace(node)
		groups := nodeTrace.OutboundDataGroups()
		groupCount += len(groups)

		keys := make([]trace.DupKey, 0, len(groups))
		for key := range groups {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			a, b := keys[i], keys[j]
			if a.FloodID != b.FloodID {
				return a.FloodID < b.FloodID
			}
			if a.Iface != b.Iface {
				return a.Iface < b.Iface
			}
			return a.Dst < b.Dst
		})
		for _, key := range keys {
			if entries := groups[key]; len(entries) > 1 {
				offenders = append(offenders, formatDupGroup(nodeTrace.Node, key, entries))
			}
		}
	}

	if groupCount == 0 {
		return failInsufficient(id, "no outbound Data with a flood id and destination observed at %v", ctx.PathNodes)
	}
	if len(offenders) > 0 {
		return failViolation(id, "duplicate outbound Data detected -> %s", strings.Join(offenders, "; "))
	}
	return pass(id, fmt.Sprintf("no duplicates across %d outbound (flood id, iface, dst) groups", groupCount))
}
