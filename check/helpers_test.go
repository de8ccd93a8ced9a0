/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package check_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/optoflood/tracecheck/check"
	"github.com/stretchr/testify/assert"
)

func newTestContext(dir string) *check.Context {
	return &check.Context{
		PcapDir:          dir,
		SnapshotDir:      dir,
		PathNodes:        []string{"r2", "r3", "r4", "r5"},
		CoreNode:         "r3",
		Branches:         []string{"r4", "r5"},
		RIBNode:          "r3",
		RIBLabels:        []string{"T1", "T2"},
		ProducerPrefix:   "/producer",
		RetxQuorum:       3,
		CheckBranchOrder: true,
	}
}

func writeExtract(t *testing.T, dir string, node string, lines ...string) {
	t.Helper()
	contents := strings.Join(lines, "\n") + "\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, node+".fields"), []byte(contents), 0o644))
}

func writeSnapshot(t *testing.T, dir string, node string, label string, lines ...string) {
	t.Helper()
	contents := strings.Join(lines, "\n") + "\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, node+"_"+label+"_rib.txt"), []byte(contents), 0o644))
}

func runCheck(t *testing.T, id string, ctx *check.Context) check.Result {
	t.Helper()
	registration, ok := check.Lookup(id)
	assert.True(t, ok, "unknown check id %s", id)
	return registration.Run(ctx)
}
