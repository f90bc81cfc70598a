// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"math"

	"github.com/cpmech/gorad/geo"
	"github.com/cpmech/gorad/opac"
	"github.com/cpmech/gorad/pkt"
)

// VCollection accumulates the virtual-packet spectrum of one worker. Virtual
// packets never alter the real packet's state or the J/ν̄J estimators
type VCollection struct {
	NuEdges []float64 // [nbins+1] histogram bin edges, ascending
	Hist    []float64 // [nbins] accumulated E·e^(−τ)

	// optional per-virtual-packet buffer
	Nus, Es   []float64
	Truncated bool

	track bool
	cap   int
}

// DefaultVTrackCap bounds the per-run virtual-packet buffer
const DefaultVTrackCap = 1 << 20

// NewVCollection returns an empty collection on the given frequency grid
func NewVCollection(nuEdges []float64, track bool, capacity int) (o *VCollection) {
	o = new(VCollection)
	o.NuEdges = nuEdges
	o.Hist = make([]float64, len(nuEdges)-1)
	o.track = track
	if capacity == 0 {
		capacity = DefaultVTrackCap
	}
	o.cap = capacity
	return
}

// add books one emergent virtual packet
func (o *VCollection) add(nu, e float64) {
	if i := histBin(o.NuEdges, nu); i >= 0 {
		o.Hist[i] += e
	}
	if o.track {
		if len(o.Nus) >= o.cap {
			o.Truncated = true
			return
		}
		o.Nus = append(o.Nus, nu)
		o.Es = append(o.Es, e)
	}
}

// Merge folds the thread-local collection v into o
func (o *VCollection) Merge(v *VCollection) {
	for i, h := range v.Hist {
		o.Hist[i] += h
	}
	if o.track {
		o.Nus = append(o.Nus, v.Nus...)
		o.Es = append(o.Es, v.Es...)
		o.Truncated = o.Truncated || v.Truncated
		if len(o.Nus) > o.cap {
			o.Nus = o.Nus[:o.cap]
			o.Es = o.Es[:o.cap]
			o.Truncated = true
		}
	}
}

// histBin returns the bin of value x on the ascending edge grid, or -1
func histBin(edges []float64, x float64) int {
	if x < edges[0] || x >= edges[len(edges)-1] {
		return -1
	}
	lo, hi := 0, len(edges)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x < edges[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// vpacket is the phantom-ray state
type vpacket struct {
	r, mu, nu float64
	shell     int
	nextLine  int
}

// TraceVPacketVolley spawns the virtual-packet volley from the real packet's
// current position: after initialization and after every physical
// interaction. Directions are stratified over the unocculted cone; rays that
// would hit the photosphere are not spawned
func TraceVPacketVolley(p *pkt.Packet, vcol *VCollection, g *geo.Grid, st *opac.State, cfg *Config) {
	if cfg.Nvpackets == 0 || vcol == nil {
		return
	}
	if cfg.VSpawnNuMin > 0 && (p.Nu < cfg.VSpawnNuMin || p.Nu > cfg.VSpawnNuMax) {
		return
	}

	onBoundary := p.R <= g.Rin[0]*(1.0+geo.TieTol)
	muMin := 0.0
	if !onBoundary {
		x := g.Rin[0] / p.R
		muMin = -math.Sqrt(1.0 - x*x)
		if cfg.Relativity == RelFull {
			muMin = AngleAberrationLFtoCMF(muMin, Beta(p.R, g.Texp))
		}
	}
	muBin := (1.0 - muMin) / float64(cfg.Nvpackets)

	dop := DopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
	comovNu := p.Nu * dop
	comovE := p.E * dop

	for i := 0; i < cfg.Nvpackets; i++ {
		muCmf := muMin + (float64(i)+p.Rng.Float64())*muBin
		var weight float64
		if onBoundary {
			weight = 2.0 * muCmf / float64(cfg.Nvpackets)
		} else {
			weight = muBin / 2.0
		}

		mu := muCmf
		if cfg.Relativity == RelFull {
			mu = AngleAberrationCMFtoLF(muCmf, Beta(p.R, g.Texp))
		}
		inv := InverseDopplerFactor(p.R, mu, g.Texp, cfg.Relativity)
		vnu := comovNu * inv
		ve := comovE * inv * weight

		v := vpacket{r: p.R, mu: mu, nu: vnu, shell: p.Shell}
		v.nextLine = searchLine(st.LineNu, vnu*DopplerFactor(v.r, v.mu, g.Texp, cfg.Relativity))
		tau, ok := traceVPacket(&v, g, st, cfg)
		if !ok {
			continue
		}
		vcol.add(vnu, ve*math.Exp(-tau))
	}
}

// traceVPacket integrates the optical depth the ray accumulates on its way to
// the outer boundary: the Sobolev depths of every line it sweeps through plus
// the continuous opacity along each shell segment. Rays falling back onto the
// photosphere, or deeper than any contribution can survive, report ok=false
func traceVPacket(v *vpacket, g *geo.Grid, st *opac.State, cfg *Config) (tau float64, ok bool) {
	for {
		dBoundary, dshell := g.DistanceToBoundary(v.r, v.mu, v.shell)

		dop := DopplerFactor(v.r, v.mu, g.Texp, cfg.Relativity)
		comovNu := v.nu * dop
		for v.nextLine < st.Nlines {
			dLine, err := DistanceToLine(v.nu, comovNu, st.LineNu[v.nextLine], g.Texp)
			if err != nil || dLine > dBoundary {
				break
			}
			tau += st.Tau(v.nextLine, v.shell)
			v.nextLine++
		}

		chi := st.Ne[v.shell] * cfg.SigmaThomson
		if st.Cont != nil {
			chi += st.Cont.Chi(v.shell)
		}
		tau += TauContinuum(chi, dBoundary)
		if tau > maxVPacketTau {
			return tau, false
		}

		rNew := math.Sqrt(v.r*v.r + dBoundary*dBoundary + 2.0*dBoundary*v.r*v.mu)
		v.mu = (v.mu*v.r + dBoundary) / rNew
		v.r = rNew

		next := v.shell + dshell
		if next >= g.Nshells() {
			return tau, true
		}
		if next < 0 {
			return tau, false
		}
		v.shell = next
	}
}
