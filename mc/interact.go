// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"sort"

	"github.com/cpmech/gorad/geo"
	"github.com/cpmech/gorad/opac"
	"github.com/cpmech/gorad/pkt"
)

// initialization /////////////////////////////////////////////////////////////////////////////////

// InitializePacket applies the one-shot frame adjustment on entry to
// transport. The source emits in the local co-moving frame; frequency and
// energy are boosted to the lab frame and, in full relativity, the direction
// is aberrated as well. The line cursor is primed afterwards
func InitializePacket(p *pkt.Packet, g *geo.Grid, st *opac.State, cfg *Config) {
	inv := InverseDopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
	p.Nu *= inv
	p.E *= inv
	if cfg.Relativity == RelFull {
		p.Mu = AngleAberrationCMFtoLF(p.Mu, Beta(p.R, g.Texp))
	}
	InitializeLineID(p, g, st, cfg)
}

// InitializeLineID points the line cursor at the reddest line the packet has
// not yet passed in its co-moving frame
func InitializeLineID(p *pkt.Packet, g *geo.Grid, st *opac.State, cfg *Config) {
	comovNu := p.Nu * DopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
	p.NextLine = searchLine(st.LineNu, comovNu)
}

// searchLine returns the cursor position for a co-moving frequency within the
// descending line list: the number of lines with ν_line ≥ ν_cmf
func searchLine(lineNu []float64, comovNu float64) int {
	n := len(lineNu)
	idx := sort.Search(n, func(j int) bool { return lineNu[n-1-j] >= comovNu })
	return n - idx
}

// electron scattering ////////////////////////////////////////////////////////////////////////////

// ThomsonScatter re-emits the packet isotropically in the co-moving frame,
// preserving its co-moving frequency, and re-primes the line cursor
func ThomsonScatter(p *pkt.Packet, g *geo.Grid, st *opac.State, cfg *Config) {
	p.LastType = pkt.EScatter
	p.LastNuIn = p.Nu
	p.LastShell = p.Shell
	comovNu := isotropicReemit(p, g, cfg)
	inv := InverseDopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
	p.Nu = comovNu * inv
	InitializeLineID(p, g, st, cfg)
}

// isotropicReemit draws a fresh co-moving direction, transforms it to the lab
// frame, and rescales the packet energy so the co-moving energy is conserved.
// It returns the co-moving frequency at the interaction point; the caller
// decides the emergent frequency
func isotropicReemit(p *pkt.Packet, g *geo.Grid, cfg *Config) (comovNu float64) {
	dopOld := DopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
	comovNu = p.Nu * dopOld
	comovE := p.E * dopOld

	muCmf := 2.0*p.Rng.Float64() - 1.0
	if cfg.Relativity == RelFull {
		p.Mu = AngleAberrationCMFtoLF(muCmf, Beta(p.R, g.Texp))
	} else {
		p.Mu = muCmf
	}

	inv := InverseDopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
	p.E = comovE * inv
	return
}

// line interactions //////////////////////////////////////////////////////////////////////////////

// LineScatter handles a line interaction at the packet's cursor line in the
// configured mode. The τ budget is implicitly resampled on the next trace
func LineScatter(p *pkt.Packet, g *geo.Grid, st *opac.State, cfg *Config) (err error) {
	lineIn := p.NextLine
	p.LastType = pkt.Line
	p.LastNuIn = p.Nu
	p.LastLineIn = lineIn
	p.LastShell = p.Shell

	isotropicReemit(p, g, cfg)

	emission := lineIn
	switch cfg.LineMode {
	case LineScatterMode:
		// resonance scatter
	case LineDownbranch:
		emission, err = downbranch(p, st, lineIn)
	case LineMacroAtom:
		emission, err = macroAtom(p, st, st.Line2Macro[lineIn])
	}
	if err != nil {
		return
	}
	LineEmission(p, g, st, cfg, emission)
	return
}

// LineEmission sets the packet frequency to the emission line in the
// co-moving frame, converts to the lab frame with the current direction, and
// advances the cursor past the emission line
func LineEmission(p *pkt.Packet, g *geo.Grid, st *opac.State, cfg *Config, emission int) {
	inv := InverseDopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
	p.Nu = st.LineNu[emission] * inv
	p.NextLine = emission + 1
	p.LastLineOut = emission
}

// macroAtom runs the internal-jump Markov chain from the given activation
// level until a radiative de-excitation is drawn. The transition matrix is
// stochastic, so termination is almost sure; the hop cap only bounds
// worst-case latency
func macroAtom(p *pkt.Packet, st *opac.State, level int) (emission int, err error) {
	ntrans := len(st.TransType)
	for hops := 0; hops < MaxMacroHops; hops++ {
		start, end := st.BlockRef[level], st.BlockRef[level+1]
		if start >= end {
			return 0, packetErr("macro-atom level %d has an empty transition block", level)
		}
		xi := p.Rng.Float64()
		sum := 0.0
		chosen := end - 1 // normalization round-off lands on the last entry
		for t := start; t < end; t++ {
			sum += st.TransProb[p.Shell*ntrans+t]
			if sum > xi {
				chosen = t
				break
			}
		}
		if st.TransType[chosen] == opac.TransEmission {
			return st.TransLine[chosen], nil
		}
		level = st.TransDest[chosen]
	}
	return 0, packetErr("macro-atom chain did not terminate within %d hops", MaxMacroHops)
}

// downbranch samples a single downward radiative transition from the upper
// level of the absorbed line, weighted by the radiative probabilities of its
// block. A level without radiative transitions degenerates to resonance
// scatter
func downbranch(p *pkt.Packet, st *opac.State, lineIn int) (emission int, err error) {
	level := st.Line2Macro[lineIn]
	ntrans := len(st.TransType)
	start, end := st.BlockRef[level], st.BlockRef[level+1]

	total := 0.0
	for t := start; t < end; t++ {
		if st.TransType[t] == opac.TransEmission {
			total += st.TransProb[p.Shell*ntrans+t]
		}
	}
	if total == 0 {
		return lineIn, nil
	}

	xi := p.Rng.Float64() * total
	sum := 0.0
	for t := start; t < end; t++ {
		if st.TransType[t] != opac.TransEmission {
			continue
		}
		sum += st.TransProb[p.Shell*ntrans+t]
		if sum > xi {
			return st.TransLine[t], nil
		}
	}
	// round-off: fall back to the last radiative entry
	for t := end - 1; t >= start; t-- {
		if st.TransType[t] == opac.TransEmission {
			return st.TransLine[t], nil
		}
	}
	return lineIn, nil
}

// continuum //////////////////////////////////////////////////////////////////////////////////////

// ContinuumEvent handles an absorption by the continuum. The channel is
// selected by the normalized partial opacities of the shell: a bound-free
// absorption activates the macro-atom at the level fed by the chosen species'
// photoionization edge; free-free and collisional absorptions re-emit
// coherently like a Thomson scatter
func ContinuumEvent(p *pkt.Packet, g *geo.Grid, st *opac.State, cfg *Config) (err error) {
	c := st.Cont
	s := p.Shell
	p.LastType = pkt.ContProcess
	p.LastNuIn = p.Nu
	p.LastShell = s

	comovNu := isotropicReemit(p, g, cfg)

	chiBf := c.ChiBfTotal(s)
	chiTot := chiBf + c.ChiFf[s] + c.ChiColl[s]
	if chiTot <= 0 || p.Rng.Float64() >= chiBf/chiTot {
		// free-free or collisional: coherent re-emission
		inv := InverseDopplerFactor(p.R, p.Mu, g.Texp, cfg.Relativity)
		p.Nu = comovNu * inv
		InitializeLineID(p, g, st, cfg)
		return
	}

	// bound-free: pick the species by its partial opacity and hand the packet
	// to the macro-atom
	xi := p.Rng.Float64() * chiBf
	sum := 0.0
	sp := c.Nspecies - 1
	for i := 0; i < c.Nspecies; i++ {
		sum += c.ChiBf[s*c.Nspecies+i]
		if sum > xi {
			sp = i
			break
		}
	}
	emission, err := macroAtom(p, st, c.ActLevel[sp])
	if err != nil {
		return
	}
	LineEmission(p, g, st, cfg, emission)
	return
}
