// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"math"

	"github.com/cpmech/gorad/geo"
	"github.com/cpmech/gorad/opac"
	"github.com/cpmech/gorad/pkt"
	"gonum.org/v1/gonum/stat/distuv"
)

// TracePacket walks the line list from the packet's cursor, accumulating
// Sobolev depths against a fresh Exp(1) optical-depth budget, and decides the
// next event among boundary crossing, electron/continuum scattering, and line
// interaction. Equality favors the boundary first, then the continuous
// event, then the line. The packet's line cursor is left at the line where
// the walk stopped
func TracePacket(p *pkt.Packet, g *geo.Grid, st *opac.State, cfg *Config, est *Estimators) (distance float64, itype pkt.Interaction, dshell int, err error) {

	dBoundary, dshell := g.DistanceToBoundary(p.R, p.Mu, p.Shell)

	// continuous opacity of the current shell: Thomson + optional continuum
	chiE := st.Ne[p.Shell] * cfg.SigmaThomson
	chi := chiE
	if st.Cont != nil {
		chi += st.Cont.Chi(p.Shell)
	}

	tauEvent := distuv.Exponential{Rate: 1, Src: p.Rng}.Rand()
	tauLines := 0.0
	dElectron := DistanceToContinuumEvent(chi, tauEvent)

	dop := DopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
	comovNu := p.Nu * dop

	cur := p.NextLine
	for ; cur < st.Nlines; cur++ {
		nuLine := st.LineNu[cur]
		tauLines += st.Tau(cur, p.Shell)

		var dLine float64
		dLine, err = DistanceToLine(p.Nu, comovNu, nuLine, g.Texp)
		if err != nil {
			return
		}
		tauCombined := tauLines + TauContinuum(chi, dLine)

		if dBoundary <= dLine && dBoundary <= dElectron {
			p.NextLine = cur
			return dBoundary, pkt.Boundary, dshell, nil
		}
		if dElectron <= dLine && dElectron < dBoundary {
			p.NextLine = cur
			return dElectron, continuousEventType(p, chiE, chi), 0, nil
		}

		updateLineEstimator(est, p, g, cfg, cur, dLine)

		if tauCombined > tauEvent {
			p.NextLine = cur
			return dLine, pkt.Line, 0, nil
		}

		// the walk passes this line; shrink the continuous-event distance by
		// the budget the line consumed
		dElectron = DistanceToContinuumEvent(chi, tauEvent-tauLines)
	}

	// past the reddest line: only the boundary and the continuous event remain
	p.NextLine = st.Nlines
	if dElectron < dBoundary {
		return dElectron, continuousEventType(p, chiE, chi), 0, nil
	}
	return dBoundary, pkt.Boundary, dshell, nil
}

// continuousEventType splits a continuous-opacity event between Thomson
// scattering and the continuum channels by their partial opacities
func continuousEventType(p *pkt.Packet, chiE, chi float64) pkt.Interaction {
	if chi <= chiE {
		return pkt.EScatter
	}
	if p.Rng.Float64() < chiE/chi {
		return pkt.EScatter
	}
	return pkt.ContProcess
}

// updateLineEstimator accumulates the per-line mean-intensity estimator at
// the point where the trajectory meets line l, using the Doppler factor at
// that point
func updateLineEstimator(est *Estimators, p *pkt.Packet, g *geo.Grid, cfg *Config, l int, dLine float64) {
	if est == nil || est.JBlue == nil || dLine >= MissDistance {
		return
	}
	rNew := math.Sqrt(p.R*p.R + dLine*dLine + 2.0*p.R*dLine*p.Mu)
	muNew := (p.Mu*p.R + dLine) / rNew
	dop := DopplerFactor(rNew, muNew, g.Texp, cfg.Relativity)
	est.AddJBlue(l, p.Shell, p.E*dop/p.Nu)
}
