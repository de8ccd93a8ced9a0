/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package check

import (
	"fmt"
	"strings"

	"github.com/optoflood/tracecheck/ndn"
	"github.com/optoflood/tracecheck/trace"
)

// hopObservation is the first hop-limit value seen at one node.
type hopObservation struct {
	node       string
	frameIndex int
	hop        uint64
}

// collectHopChain walks the expected path order and records, per node, the
// first observed hop-limit value selected by the extractor. Nodes with no
// capture or no matching packets are skipped; forwarding order is judged over
// the nodes that did observe traffic.
func collectHopChain(ctx *Context, kind ndn.PacketKind, hopOf func(trace.Entry) *uint64) []hopObservation {
	var chain []hopObservation
	for _, node := range ctx.PathNodes {
		nodeTrace := ctx.LoadTrace(node)
		for _, entry := range nodeTrace.Entries {
			if entry.Packet.Kind != kind {
				continue
			}
			if hop := hopOf(entry); hop != nil {
				chain = append(chain, hopObservation{node: node, frameIndex: entry.FrameIndex, hop: *hop})
				break
			}
		}
	}
	return chain
}

func formatHopChain(chain []hopObservation) string {
	parts := make([]string, 0, len(chain))
	for _, obs := range chain {
		parts = append(parts, fmt.Sprintf("%s:frame=%d,hop=%d", obs.node, obs.frameIndex, obs.hop))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// checkHopChain verifies a chain of first-observed hop limits is strictly
// decreasing by exactly 1 and terminates at 0, with the routing-snapshot
// escape hatch for chains that legitimately stop early because the
// terminating node already had a route to the producer.
func checkHopChain(ctx *Context, id string, chain []hopObservation) Result {
	if len(chain) == 0 {
		return failInsufficient(id, "no hop-limit values observed at any of %v", ctx.PathNodes)
	}
	if len(chain) == 1 {
		return failInsufficient(id, "only one node observed a hop limit: %s", formatHopChain(chain))
	}

	for i := 1; i < len(chain); i++ {
		if chain[i].hop+1 != chain[i-1].hop {
			return failViolation(id, "hop limits do not decrement by 1 between %s and %s: observed %s",
				chain[i-1].node, chain[i].node, formatHopChain(chain))
		}
	}

	last := chain[len(chain)-1]
	if last.hop > 0 {
		if ctx.snapshotHasPrefix(last.node, ctx.ProducerPrefix) {
			return pass(id, "hop limits %s decrement by 1; chain ends at %s with hop=%d, explained by a %s route at %s",
				formatHopChain(chain), last.node, last.hop, ctx.ProducerPrefix, last.node)
		}
		return failViolation(id, "terminal hop limit is %d at %s with no %s route in its snapshots: observed %s",
			last.hop, last.node, ctx.ProducerPrefix, formatHopChain(chain))
	}
	return pass(id, "hop limits %s decrement by 1 to 0", formatHopChain(chain))
}

// checkHopDecrementData validates the forwarder-added per-hop hop limit on
// Data deliveries (the LpPacket header field, never the in-band Interest one).
func checkHopDecrementData(ctx *Context) Result {
	chain := collectHopChain(ctx, ndn.KindData, func(entry trace.Entry) *uint64 {
		return entry.Packet.LpHopLimit
	})
	return checkHopChain(ctx, "hop-decrement-data", chain)
}

// checkHopDecrementInterest validates the in-band Interest hop limit.
func checkHopDecrementInterest(ctx *Context) Result {
	chain := collectHopChain(ctx, ndn.KindInterest, func(entry trace.Entry) *uint64 {
		return entry.Packet.HopLimit
	})
	return checkHopChain(ctx, "hop-decrement-interest", chain)
}
