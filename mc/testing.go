// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"github.com/cpmech/gorad/geo"
	"github.com/cpmech/gorad/opac"
	"github.com/cpmech/gosl/utl"
)

// TestingGrid returns a uniform grid with nshells shells between rin and rout
func TestingGrid(nshells int, rin, rout, texp float64) *geo.Grid {
	return geo.NewGrid(utl.LinSpace(rin, rout, nshells+1), texp)
}

// TestingScatterState returns opacity tables of a pure electron-scattering
// atmosphere with uniform electron density ne
func TestingScatterState(nshells int, ne float64) (st *opac.State) {
	st = new(opac.State)
	st.Nshells = nshells
	st.Ne = make([]float64, nshells)
	for s := 0; s < nshells; s++ {
		st.Ne[s] = ne
	}
	st.TauSob = []float64{}
	st.LineNu = []float64{}
	return
}

// TestingLineState returns opacity tables with the given descending line list
// and per-line per-shell Sobolev depths tau[nlines][nshells], on top of a
// uniform electron density
func TestingLineState(nshells int, ne float64, lineNu []float64, tau [][]float64) (st *opac.State) {
	st = TestingScatterState(nshells, ne)
	st.Nlines = len(lineNu)
	st.LineNu = lineNu
	st.TauSob = make([]float64, nshells*st.Nlines)
	for l := range lineNu {
		for s := 0; s < nshells; s++ {
			st.TauSob[s*st.Nlines+l] = tau[l][s]
		}
	}
	return
}

// TestingMacroState attaches simple two-level macro-atom tables to a line
// state: the upper level of line l is level l; each level block holds one
// radiative de-excitation through its own line with unit probability
func TestingMacroState(st *opac.State) *opac.State {
	n := st.Nlines
	st.TransType = make([]int, n)
	st.TransDest = make([]int, n)
	st.TransLine = make([]int, n)
	st.TransProb = make([]float64, st.Nshells*n)
	st.BlockRef = make([]int, n+1)
	st.Line2Macro = make([]int, n)
	for l := 0; l < n; l++ {
		st.TransType[l] = opac.TransEmission
		st.TransLine[l] = l
		st.BlockRef[l] = l
		st.Line2Macro[l] = l
		for s := 0; s < st.Nshells; s++ {
			st.TransProb[s*n+l] = 1.0
		}
	}
	st.BlockRef[n] = n
	return st
}
