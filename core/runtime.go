/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

// Version of tracecheck.
var Version string

// BuildTime contains the timestamp of when this version of tracecheck was built.
var BuildTime string
