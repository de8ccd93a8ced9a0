/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/optoflood/tracecheck/core"
	"github.com/optoflood/tracecheck/trace"
)

// Result is the verdict of one checker. Every failure message carries enough
// raw evidence (node names, frame indices, value sequences) to reconstruct
// the reasoning without re-running the tool.
type Result struct {
	ID      string
	Passed  bool
	Message string
}

func (r Result) String() string {
	if r.Passed {
		return "PASS: " + r.ID + " " + r.Message
	}
	return "FAIL: " + r.ID + " " + r.Message
}

func pass(id string, format string, args ...interface{}) Result {
	return Result{ID: id, Passed: true, Message: fmt.Sprintf(format, args...)}
}

// failViolation reports data that was found but breaks the invariant.
func failViolation(id string, format string, args ...interface{}) Result {
	return Result{ID: id, Message: fmt.Sprintf(format, args...)}
}

// failInsufficient reports that decoding succeeded but the invariant had no
// matching data to evaluate.
func failInsufficient(id string, format string, args ...interface{}) Result {
	return Result{ID: id, Message: "insufficient evidence: " + fmt.Sprintf(format, args...)}
}

// failMissing reports an absent required input file. This is the only failure
// class raised without a decode attempt.
func failMissing(id string, path string) Result {
	return Result{ID: id, Message: "missing artifact: " + path}
}

// Context carries the experiment profile every checker reads: where the
// artifacts live and which nodes play which role. Checkers share nothing
// mutable; each re-reads artifacts through the context.
type Context struct {
	PcapDir     string
	SnapshotDir string
	// PathNodes is the expected forwarding path in order. Hop-limit chains are
	// evaluated against this order rather than inferred from the traces, which
	// would make the check circular.
	PathNodes []string
	CoreNode  string
	// Branches are the two sibling downstream nodes of CoreNode, in expected
	// exercise order.
	Branches       []string
	RIBNode        string
	RIBLabels      []string
	ProducerPrefix string
	// RetxQuorum is the number of nodes that must see a nonce inbound before
	// it is considered a retransmission-chain candidate; values below 2 are
	// clamped to 2.
	RetxQuorum int
	// CheckBranchOrder enables the sibling branch ordering heuristic of the
	// flood-scope check.
	CheckBranchOrder bool
}

// NewContextFromConfig builds a Context from the loaded configuration.
func NewContextFromConfig() *Context {
	return &Context{
		PcapDir:          core.GetConfigStringDefault("experiment.pcap_dir", "pcap"),
		SnapshotDir:      core.GetConfigStringDefault("experiment.snapshot_dir", "."),
		PathNodes:        core.GetConfigArrayStringDefault("experiment.path", []string{"r2", "r3", "r4", "r5"}),
		CoreNode:         core.GetConfigStringDefault("experiment.core_node", "r3"),
		Branches:         core.GetConfigArrayStringDefault("experiment.branches", []string{"r4", "r5"}),
		RIBNode:          core.GetConfigStringDefault("experiment.rib_node", "r3"),
		RIBLabels:        core.GetConfigArrayStringDefault("experiment.rib_labels", []string{"T1", "T2"}),
		ProducerPrefix:   core.GetConfigStringDefault("experiment.producer_prefix", "/producer"),
		RetxQuorum:       core.GetConfigIntDefault("experiment.retx_quorum", 3),
		CheckBranchOrder: core.GetConfigBoolDefault("experiment.branch_ordering", true),
	}
}

// LoadTrace loads the trace for a node, preferring the raw capture and
// falling back to a tabular field extract. Both sources feed the same model
// and must yield identical verdicts. A node with neither artifact yields an
// empty trace; multi-capture checks treat that as inconclusive, not fatal.
func (c *Context) LoadTrace(node string) *trace.NodeTrace {
	pcapPath := filepath.Join(c.PcapDir, node+".pcap")
	if _, err := os.Stat(pcapPath); err == nil {
		return trace.FromCapture(pcapPath)
	}
	extractPath := filepath.Join(c.PcapDir, node+".fields")
	if _, err := os.Stat(extractPath); err == nil {
		return trace.FromExtract(extractPath)
	}
	core.LogDebug("Check", "No capture or extract for node ", node)
	return &trace.NodeTrace{Node: node}
}

// SnapshotPath returns the on-disk location of a routing snapshot.
func (c *Context) SnapshotPath(node string, label string) string {
	return filepath.Join(c.SnapshotDir, node+"_"+label+"_rib.txt")
}

// LoadSnapshot reads a routing snapshot as its raw lines. Snapshots are only
// ever diffed by line-set membership; route semantics are never parsed.
func (c *Context) LoadSnapshot(node string, label string) ([]string, error) {
	raw, err := os.ReadFile(c.SnapshotPath(node, label))
	if err != nil {
		return nil, core.ErrMissingArtifact
	}
	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// snapshotHasPrefix reports whether any snapshot of the node, at any
// configured label, mentions the destination prefix.
func (c *Context) snapshotHasPrefix(node string, prefix string) bool {
	for _, label := range c.RIBLabels {
		lines, err := c.LoadSnapshot(node, label)
		if err != nil {
			continue
		}
		for _, line := range lines {
			if strings.Contains(line, prefix) {
				return true
			}
		}
	}
	return false
}

// Registration binds a check identifier to its implementation.
type Registration struct {
	ID   string
	Help string
	Run  func(*Context) Result
}

var registry = []Registration{
	{"hop-decrement-data", "Data-plane per-hop hop limit decrements by 1 along the path", checkHopDecrementData},
	{"hop-decrement-interest", "Interest in-band hop limit decrements by 1 along the path", checkHopDecrementInterest},
	{"dedup", "no duplicate outbound Data per (flood id, interface, destination)", checkDedup},
	{"flood-scope", "guided flood never escapes the core node's branch", checkFloodScope},
	{"retx-chain", "Interest retransmission chain decrements hop limits per node", checkRetxChain},
	{"rib-window", "routing table changed across the window with Interest traffic present", checkRIBWindow},
	{"rib-transient", "a transient route appeared and disappeared within the window", checkRIBTransient},
}

// All returns the closed set of check identifiers in execution order.
func All() []Registration {
	return registry
}

// Lookup resolves a check identifier.
func Lookup(id string) (Registration, bool) {
	for _, registration := range registry {
		if registration.ID == id {
			return registration, true
		}
	}
	return Registration{}, false
}
