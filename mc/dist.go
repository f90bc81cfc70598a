// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"math"

	"github.com/cpmech/gorad/phys"
)

// DistanceToLine returns the flight distance until the packet's co-moving
// frequency redshifts onto nuLine. Differences within CloseLineThreshold of
// the co-moving frequency are clamped to zero; a genuinely negative
// difference means the packet already crossed the line and is a logic fault
func DistanceToLine(nu, comovNu, nuLine, texp float64) (d float64, err error) {
	if nuLine == 0 {
		return MissDistance, nil
	}
	nuDiff := comovNu - nuLine
	if math.Abs(nuDiff/comovNu) < CloseLineThreshold {
		nuDiff = 0
	}
	if nuDiff < 0 {
		return 0, packetErr("frequency difference to line is negative: nu_diff=%g comov_nu=%g nu_line=%g", nuDiff, comovNu, nuLine)
	}
	return nuDiff / nu * phys.C * texp, nil
}

// DistanceToContinuumEvent returns the flight distance at which the optical
// depth budget tau is exhausted by the continuous opacity chi
func DistanceToContinuumEvent(chi, tau float64) float64 {
	return tau / chi
}

// TauContinuum returns the continuous optical depth accumulated over distance d
func TauContinuum(chi, d float64) float64 {
	return chi * d
}
