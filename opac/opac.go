// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package opac implements the immutable per-iteration opacity tables: the
// sorted line list, Sobolev optical depths, electron densities, macro-atom
// transition tables, and the optional continuum tables
package opac

import (
	"github.com/cpmech/gosl/chk"
)

// macro-atom transition types
const (
	TransEmission    = -1 // radiative de-excitation; terminates the internal chain
	TransInternalDn  = 0  // internal downward jump
	TransInternalUp  = 1  // internal upward jump
	TransCollisional = 2  // collisional jump; internal as far as the chain is concerned
)

// Continuum holds the optional continuum opacity tables. Bound-free opacities
// are resolved per species so that an absorption can activate the macro-atom
// at the level fed by the corresponding photoionization edge
type Continuum struct {
	Nspecies int
	ChiBf    []float64 // [nshells·nspecies] bound-free opacity, shell-major
	ChiFf    []float64 // [nshells] free-free opacity
	ChiColl  []float64 // [nshells] collisional opacity
	ActLevel []int     // [nspecies] macro-atom activation level after bound-free absorption
}

// Chi returns the total continuum opacity in shell s
func (o *Continuum) Chi(s int) (chi float64) {
	for i := 0; i < o.Nspecies; i++ {
		chi += o.ChiBf[s*o.Nspecies+i]
	}
	return chi + o.ChiFf[s] + o.ChiColl[s]
}

// ChiBfTotal returns the bound-free opacity summed over species in shell s
func (o *Continuum) ChiBfTotal(s int) (chi float64) {
	for i := 0; i < o.Nspecies; i++ {
		chi += o.ChiBf[s*o.Nspecies+i]
	}
	return
}

// State holds the opacity tables of one iteration. All slices are laid out
// flat; two-dimensional tables are shell-major so the inner line walk over a
// fixed shell stays contiguous in memory
type State struct {
	Nshells int
	Nlines  int

	LineNu []float64 // [nlines] line frequencies [Hz], sorted descending
	TauSob []float64 // [nshells·nlines] Sobolev optical depths, shell-major
	Ne     []float64 // [nshells] free-electron densities [cm⁻³]

	// macro-atom tables (downbranch and macroatom line modes)
	TransProb  []float64 // [nshells·ntrans] transition probabilities, shell-major
	TransType  []int     // [ntrans] transition types
	TransDest  []int     // [ntrans] destination activation level of internal jumps
	TransLine  []int     // [ntrans] line id of radiative transitions
	BlockRef   []int     // [nlevels+1] per-level slices into the transition arrays
	Line2Macro []int     // [nlines] upper activation level of each line

	Cont *Continuum // optional continuum tables
}

// Tau returns the Sobolev optical depth of line l in shell s
func (o *State) Tau(l, s int) float64 { return o.TauSob[s*o.Nlines+l] }

// Prob returns the probability of transition t in shell s
func (o *State) Prob(t, s int) float64 { return o.TransProb[s*len(o.TransType)+t] }

// HasMacro tells whether macro-atom tables are present
func (o *State) HasMacro() bool { return len(o.BlockRef) > 1 }

// Check verifies table shapes and invariants
func (o *State) Check() (err error) {
	if o.Nshells < 1 {
		return chk.Err("at least one shell is required. nshells=%d is invalid", o.Nshells)
	}
	if len(o.LineNu) != o.Nlines {
		return chk.Err("line list size %d differs from nlines=%d", len(o.LineNu), o.Nlines)
	}
	for l := 1; l < o.Nlines; l++ {
		if o.LineNu[l] > o.LineNu[l-1] {
			return chk.Err("line list must be sorted descending. LineNu[%d]=%g > LineNu[%d]=%g", l, o.LineNu[l], l-1, o.LineNu[l-1])
		}
	}
	if len(o.TauSob) != o.Nshells*o.Nlines {
		return chk.Err("tau_sobolev table has %d entries; %d·%d=%d are required", len(o.TauSob), o.Nshells, o.Nlines, o.Nshells*o.Nlines)
	}
	for i, tau := range o.TauSob {
		if tau < 0 {
			return chk.Err("tau_sobolev must be non-negative. entry %d is %g", i, tau)
		}
	}
	if len(o.Ne) != o.Nshells {
		return chk.Err("electron density table has %d entries; %d are required", len(o.Ne), o.Nshells)
	}
	for s, ne := range o.Ne {
		if ne < 0 {
			return chk.Err("electron density must be non-negative. shell %d has n_e=%g", s, ne)
		}
	}
	if o.HasMacro() {
		ntrans := len(o.TransType)
		if len(o.TransProb) != o.Nshells*ntrans {
			return chk.Err("transition probability table has %d entries; %d·%d=%d are required", len(o.TransProb), o.Nshells, ntrans, o.Nshells*ntrans)
		}
		if len(o.TransDest) != ntrans || len(o.TransLine) != ntrans {
			return chk.Err("macro-atom transition arrays have inconsistent sizes: %d %d %d", ntrans, len(o.TransDest), len(o.TransLine))
		}
		if o.BlockRef[0] != 0 || o.BlockRef[len(o.BlockRef)-1] != ntrans {
			return chk.Err("block references must span [0,%d]; got [%d,%d]", ntrans, o.BlockRef[0], o.BlockRef[len(o.BlockRef)-1])
		}
		if len(o.Line2Macro) != o.Nlines {
			return chk.Err("line-to-level map has %d entries; %d are required", len(o.Line2Macro), o.Nlines)
		}
	}
	if o.Cont != nil {
		if len(o.Cont.ChiBf) != o.Nshells*o.Cont.Nspecies {
			return chk.Err("bound-free opacity table has %d entries; %d·%d=%d are required", len(o.Cont.ChiBf), o.Nshells, o.Cont.Nspecies, o.Nshells*o.Cont.Nspecies)
		}
		if len(o.Cont.ChiFf) != o.Nshells || len(o.Cont.ChiColl) != o.Nshells {
			return chk.Err("free-free/collisional opacity tables have inconsistent sizes: %d %d", len(o.Cont.ChiFf), len(o.Cont.ChiColl))
		}
		if len(o.Cont.ActLevel) != o.Cont.Nspecies {
			return chk.Err("activation-level table has %d entries; %d are required", len(o.Cont.ActLevel), o.Cont.Nspecies)
		}
	}
	return
}

// NormalizeProbs normalizes the transition probabilities within each level
// block, independently per shell, so raw Einstein-A weights can be fed
// directly. Blocks summing to zero are left untouched
func (o *State) NormalizeProbs() {
	if !o.HasMacro() {
		return
	}
	ntrans := len(o.TransType)
	for s := 0; s < o.Nshells; s++ {
		for lev := 0; lev < len(o.BlockRef)-1; lev++ {
			sum := 0.0
			for t := o.BlockRef[lev]; t < o.BlockRef[lev+1]; t++ {
				sum += o.TransProb[s*ntrans+t]
			}
			if sum == 0 {
				continue
			}
			for t := o.BlockRef[lev]; t < o.BlockRef[lev+1]; t++ {
				o.TransProb[s*ntrans+t] /= sum
			}
		}
	}
}
