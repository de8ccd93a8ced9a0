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

	"github.com/optoflood/tracecheck/utils/comparison"
)

func sortedIDs(set map[uint64]struct{}) []uint64 {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func minID(set map[uint64]struct{}) (uint64, bool) {
	var min uint64
	found := false
	for id := range set {
		if !found {
			min = id
			found = true
		} else {
			min = comparison.Min(min, id)
		}
	}
	return min, found
}

// checkFloodScope verifies a guided flood stays within the core node's
// branch: no other node may observe a flood identifier the core node did not.
// The sibling-ordering clause (minimum flood id of the first configured
// branch not exceeding the second's) encodes the experiment's timing
// assumption about which branch was exercised first; it is a heuristic
// ordering check over experiment scheduling, not a protocol invariant.
func checkFloodScope(ctx *Context) Result {
	const id = "flood-scope"

	coreSet := ctx.LoadTrace(ctx.CoreNode).FloodIDs()
	if len(coreSet) == 0 {
		return failInsufficient(id, "no flood ids observed at core node %s", ctx.CoreNode)
	}

	var offenders []string
	for _, node := range ctx.PathNodes {
		if node == ctx.CoreNode {
			continue
		}
		var extra []uint64
		for _, floodID := range sortedIDs(ctx.LoadTrace(node).FloodIDs()) {
			if _, ok := coreSet[floodID]; !ok {
				extra = append(extra, floodID)
			}
		}
		if len(extra) > 0 {
			offenders = append(offenders, fmt.Sprintf("%s:extra=%v", node, extra))
		}
	}
	if len(offenders) > 0 {
		return failViolation(id, "flood ids escaped the %s branch -> %s", ctx.CoreNode, strings.Join(offenders, "; "))
	}

	ordering := "ordering: not evaluated (a sibling branch observed no flood ids)"
	if !ctx.CheckBranchOrder {
		ordering = "ordering: not evaluated (disabled by configuration)"
	} else if len(ctx.Branches) >= 2 {
		minFirst, okFirst := minID(ctx.LoadTrace(ctx.Branches[0]).FloodIDs())
		minSecond, okSecond := minID(ctx.LoadTrace(ctx.Branches[1]).FloodIDs())
		if okFirst && okSecond {
			if minFirst > minSecond {
				return failViolation(id, "sibling ordering inconsistent: min flood id %d at %s exceeds %d at %s",
					minFirst, ctx.Branches[0], minSecond, ctx.Branches[1])
			}
			ordering = fmt.Sprintf("ordering: min %d at %s <= min %d at %s",
				minFirst, ctx.Branches[0], minSecond, ctx.Branches[1])
		}
	}

	return pass(id, fmt.Sprintf("all nodes within flood ids %v of core %s; %s",
		sortedIDs(coreSet), ctx.CoreNode, ordering))
}
