/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package check

import (
	"fmt"
)

func lineSet(lines []string) map[string]struct{} {
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}
	return set
}

func (c *Context) windowSnapshots(id string) ([]string, []string, string, string, *Result) {
	if len(c.RIBLabels) < 2 {
		result := failInsufficient(id, "need two snapshot labels, have %v", c.RIBLabels)
		return nil, nil, "", "", &result
	}
	before, after := c.RIBLabels[0], c.RIBLabels[1]

	beforeLines, err := c.LoadSnapshot(c.RIBNode, before)
	if err != nil {
		result := failMissing(id, c.SnapshotPath(c.RIBNode, before))
		return nil, nil, "", "", &result
	}
	afterLines, err := c.LoadSnapshot(c.RIBNode, after)
	if err != nil {
		result := failMissing(id, c.SnapshotPath(c.RIBNode, after))
		return nil, nil, "", "", &result
	}
	return beforeLines, afterLines, before, after, nil
}

// checkRIBWindow verifies the transient-route window left a structural mark:
// the routing table changed across the two snapshots, and the node actually
// saw Interest traffic within the window.
func checkRIBWindow(ctx *Context) Result {
	const id = "rib-window"

	beforeLines, afterLines, before, after, failure := ctx.windowSnapshots(id)
	if failure != nil {
		return *failure
	}

	beforeSet, afterSet := lineSet(beforeLines), lineSet(afterLines)
	changed := len(beforeSet) != len(afterSet)
	if !changed {
		for line := range beforeSet {
			if _, ok := afterSet[line]; !ok {
				changed = true
				break
			}
		}
	}
	if !changed {
		return failViolation(id, "routing table at %s did not change across %s->%s (%d lines)",
			ctx.RIBNode, before, after, len(beforeSet))
	}

	if !ctx.LoadTrace(ctx.RIBNode).HasInterest() {
		return failViolation(id, "routing table at %s changed across %s->%s but no Interest was observed there",
			ctx.RIBNode, before, after)
	}
	return pass(id, fmt.Sprintf("routing table at %s changed across %s->%s with Interest traffic present",
		ctx.RIBNode, before, after))
}

// checkRIBTransient verifies at least one route present in the earlier
// snapshot is gone from the later one: a route appeared and disappeared
// within the window.
func checkRIBTransient(ctx *Context) Result {
	const id = "rib-transient"

	beforeLines, afterLines, before, after, failure := ctx.windowSnapshots(id)
	if failure != nil {
		return *failure
	}

	afterSet := lineSet(afterLines)
	var disappeared []string
	for _, line := range beforeLines {
		if _, ok := afterSet[line]; !ok {
			disappeared = append(disappeared, line)
		}
	}
	if len(disappeared) == 0 {
		return failViolation(id, "no route present at %s disappeared by %s at %s (%d lines unchanged)",
			before, after, ctx.RIBNode, len(beforeLines))
	}
	return pass(id, fmt.Sprintf("%d transient route(s) at %s disappeared between %s and %s, e.g. %q",
		len(disappeared), ctx.RIBNode, before, after, disappeared[0]))
}
