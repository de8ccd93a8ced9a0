/* tracecheck - OptoFlood handoff trace validator
 *
 * Copyright (C) 2026 The OptoFlood Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package comparison

import "golang.org/x/exp/constraints"

func Min[V constraints.Ordered](a, b V) V {
	if a < b {
		return a
	} else {
		return b
	}
}

func Max[V constraints.Ordered](a, b V) V {
	if a > b {
		return a
	} else {
		return b
	}
}
