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

	"github.com/optoflood/tracecheck/capture"
	"github.com/optoflood/tracecheck/trace"
	"github.com/optoflood/tracecheck/utils/comparison"
)

// candidateNonces selects the nonces worth evaluating: those seen inbound at a
// quorum of nodes (the configured size, relaxing down to 2), falling back to
// any nonce leaving the first node that also arrives somewhere downstream.
func candidateNonces(traces []*trace.NodeTrace, quorum int) []uint64 {
	inboundCount := make(map[uint64]int)
	for _, nodeTrace := range traces {
		for nonce := range nodeTrace.Nonces(capture.DirInbound) {
			inboundCount[nonce]++
		}
	}

	for q := comparison.Max(quorum, 2); q >= 2; q-- {
		var candidates []uint64
		for nonce, count := range inboundCount {
			if count >= q {
				candidates = append(candidates, nonce)
			}
		}
		if len(candidates) > 0 {
			sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
			return candidates
		}
	}

	if len(traces) == 0 {
		return nil
	}
	// The first node's own inbound sighting is not an arrival downstream.
	downstreamInbound := make(map[uint64]struct{})
	for _, nodeTrace := range traces[1:] {
		for nonce := range nodeTrace.Nonces(capture.DirInbound) {
			downstreamInbound[nonce] = struct{}{}
		}
	}
	var candidates []uint64
	for nonce := range traces[0].Nonces(capture.DirOutbound) {
		if _, ok := downstreamInbound[nonce]; ok {
			candidates = append(candidates, nonce)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
	return candidates
}

// evaluateNonceChain verifies one candidate: wherever a node saw the nonce in
// both directions, inbound hop must equal outbound hop plus 1; the inbound
// hop sequence across nodes must strictly decrease by 1; and a chain that
// terminates before the last path node is accepted only when the terminating
// node's routing snapshot explains why forwarding stopped.
func evaluateNonceChain(ctx *Context, traces []*trace.NodeTrace, nonce uint64) (string, string, bool) {
	var inChain []hopObservation
	lastObserved := -1

	for i, nodeTrace := range traces {
		inEntry, inOK := nodeTrace.FirstByNonce(nonce, capture.DirInbound)
		outEntry, outOK := nodeTrace.FirstByNonce(nonce, capture.DirOutbound)
		if inOK || outOK {
			lastObserved = i
		}

		if inOK && outOK && inEntry.Packet.HopLimit != nil && outEntry.Packet.HopLimit != nil {
			if *inEntry.Packet.HopLimit != *outEntry.Packet.HopLimit+1 {
				return "", fmt.Sprintf("%s forwarded with in=%d out=%d (frames %d,%d), want out = in - 1",
					nodeTrace.Node, *inEntry.Packet.HopLimit, *outEntry.Packet.HopLimit,
					inEntry.FrameIndex, outEntry.FrameIndex), false
			}
		}
		if inOK && inEntry.Packet.HopLimit != nil {
			inChain = append(inChain, hopObservation{node: nodeTrace.Node, frameIndex: inEntry.FrameIndex, hop: *inEntry.Packet.HopLimit})
		}
	}

	if len(inChain) < 2 {
		return "", fmt.Sprintf("inbound hop limits observed at %d node(s), need at least 2", len(inChain)), false
	}
	for i := 1; i < len(inChain); i++ {
		if inChain[i].hop+1 != inChain[i-1].hop {
			return "", fmt.Sprintf("inbound hops do not decrement by 1 between %s and %s: %s",
				inChain[i-1].node, inChain[i].node, formatHopChain(inChain)), false
		}
	}

	if lastObserved >= 0 && lastObserved < len(traces)-1 {
		terminator := traces[lastObserved].Node
		if !ctx.snapshotHasPrefix(terminator, ctx.ProducerPrefix) {
			return "", fmt.Sprintf("chain ends at %s with no %s route in its snapshots: %s",
				terminator, ctx.ProducerPrefix, formatHopChain(inChain)), false
		}
		return fmt.Sprintf("inbound hops %s; early termination at %s explained by a %s route",
			formatHopChain(inChain), terminator, ctx.ProducerPrefix), "", true
	}
	return fmt.Sprintf("inbound hops %s across the full path", formatHopChain(inChain)), "", true
}

// checkRetxChain validates the Interest retransmission chain after a handoff.
func checkRetxChain(ctx *Context) Result {
	const id = "retx-chain"

	traces := make([]*trace.NodeTrace, 0, len(ctx.PathNodes))
	for _, node := range ctx.PathNodes {
		traces = append(traces, ctx.LoadTrace(node))
	}

	candidates := candidateNonces(traces, ctx.RetxQuorum)
	if len(candidates) == 0 {
		return failInsufficient(id, "0 candidate nonces (no nonce reached a %d-node inbound quorum, and none left %s toward a downstream node)",
			comparison.Max(ctx.RetxQuorum, 2), ctx.PathNodes[0])
	}

	var reasons []string
	for _, nonce := range candidates {
		evidence, reason, ok := evaluateNonceChain(ctx, traces, nonce)
		if ok {
			return pass(id, fmt.Sprintf("nonce 0x%08x: %s", nonce, evidence))
		}
		reasons = append(reasons, fmt.Sprintf("nonce 0x%08x: %s", nonce, reason))
	}
	return failViolation(id, "none of %d candidate nonces satisfied the chain -> %s",
		len(candidates), strings.Join(reasons, "; "))
}
