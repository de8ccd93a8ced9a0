/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/optoflood/tracecheck/check"
	"github.com/optoflood/tracecheck/core"
)

// Version of tracecheck.
var Version string

// BuildTime of tracecheck.
var BuildTime string

func main() {
	core.Version = Version
	core.BuildTime = BuildTime

	var shouldPrintVersion bool
	flag.BoolVar(&shouldPrintVersion, "version", false, "Print version and exit")
	var configFileName string
	flag.StringVar(&configFileName, "config", "", "Configuration file location")
	var pcapDir string
	flag.StringVar(&pcapDir, "pcap-dir", "", "Directory containing per-node captures (overrides config)")
	var snapshotDir string
	flag.StringVar(&snapshotDir, "snapshot-dir", "", "Directory containing routing snapshots (overrides config)")
	var shouldListChecks bool
	flag.BoolVar(&shouldListChecks, "list", false, "List available check identifiers and exit")
	flag.Parse()

	if shouldPrintVersion {
		fmt.Println("tracecheck: OptoFlood handoff trace validator")
		fmt.Println("Version " + core.Version + " (built " + core.BuildTime + ")")
		fmt.Println("Copyright (C) 2026 The OptoFlood Authors")
		fmt.Println("Released under the terms of the MIT License")
		return
	}

	if shouldListChecks {
		for _, registration := range check.All() {
			fmt.Printf("%-24s %s\n", registration.ID, registration.Help)
		}
		return
	}

	if configFileName != "" {
		core.LoadConfig(configFileName)
	}
	core.InitializeLogger()

	ctx := check.NewContextFromConfig()
	if pcapDir != "" {
		ctx.PcapDir = pcapDir
	}
	if snapshotDir != "" {
		ctx.SnapshotDir = snapshotDir
	}

	var requested []check.Registration
	if flag.NArg() == 0 {
		requested = check.All()
	} else {
		for _, id := range flag.Args() {
			registration, ok := check.Lookup(id)
			if !ok {
				fmt.Fprintln(os.Stderr, "Unknown check id:", id)
				os.Exit(2)
			}
			requested = append(requested, registration)
		}
	}

	core.LogInfo("Main", "Running ", len(requested), " check(s) against captures in ", ctx.PcapDir)

	anyFailed := false
	for _, registration := range requested {
		result := registration.Run(ctx)
		fmt.Println(result.String())
		if !result.Passed {
			anyFailed = true
		}
	}
	if anyFailed {
		os.Exit(1)
	}
}
