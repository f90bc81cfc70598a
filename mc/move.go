// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"math"

	"github.com/cpmech/gorad/geo"
	"github.com/cpmech/gorad/pkt"
)

// MovePacket advances the packet by the flight distance d and accumulates the
// J and ν̄J estimators with the co-moving pre-move values. In full relativity
// the path element picks up one more Doppler factor to land in the lab frame.
// The lab frequency does not change on a free flight
func MovePacket(p *pkt.Packet, g *geo.Grid, cfg *Config, est *Estimators, d float64) (err error) {

	dop := DopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
	comovNu := p.Nu * dop
	comovE := p.E * dop
	de := d
	if cfg.Relativity == RelFull {
		de = d * dop
	}
	est.J[p.Shell] += comovE * de
	est.NuBar[p.Shell] += comovE * de * comovNu

	if d > 0 {
		rNew := math.Sqrt(p.R*p.R + d*d + 2.0*d*p.R*p.Mu)
		p.Mu = (p.Mu*p.R + d) / rNew
		p.R = rNew
	}

	if !isFinite(p.R) || !isFinite(p.Mu) || !isFinite(p.Nu) || !isFinite(p.E) {
		return packetErr("non-finite packet state after move: r=%g mu=%g nu=%g E=%g", p.R, p.Mu, p.Nu, p.E)
	}
	return
}

// CrossBoundary moves the packet across a shell boundary, terminating it when
// it leaves the domain through either end
func CrossBoundary(p *pkt.Packet, dshell, nshells int) {
	next := p.Shell + dshell
	switch {
	case next >= nshells:
		p.Status = pkt.Emitted
	case next < 0:
		p.Status = pkt.Reabsorbed
	default:
		p.Shell = next
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
