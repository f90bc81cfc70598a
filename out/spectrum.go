// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"sort"

	"github.com/cpmech/gorad/mc"
	"gonum.org/v1/gonum/stat"
)

// Spectrum holds a luminosity spectrum binned on a frequency grid
type Spectrum struct {
	NuEdges []float64 // [nbins+1] bin edges [Hz], ascending
	L       []float64 // [nbins] luminosity per bin [erg/s]
}

// EmittedSpectrum bins the luminosity of the escaped packets
func EmittedSpectrum(res *mc.Result, nuEdges []float64) *Spectrum {
	return packetSpectrum(res, nuEdges, true)
}

// ReabsorbedSpectrum bins the luminosity of the reabsorbed packets
func ReabsorbedSpectrum(res *mc.Result, nuEdges []float64) *Spectrum {
	return packetSpectrum(res, nuEdges, false)
}

// VirtualSpectrum converts the accumulated virtual-packet histogram into a
// luminosity spectrum
func VirtualSpectrum(res *mc.Result, nuEdges []float64) (o *Spectrum) {
	o = new(Spectrum)
	o.NuEdges = nuEdges
	o.L = make([]float64, len(res.VHist))
	for i, e := range res.VHist {
		o.L[i] = e / res.Tsim
	}
	return
}

// IsZero tells whether no luminosity was collected at all
func (o *Spectrum) IsZero() bool {
	for _, l := range o.L {
		if l != 0 {
			return false
		}
	}
	return true
}

// EmittedLuminosity sums the luminosity of escaped packets with
// nuStart < ν < nuEnd
func EmittedLuminosity(res *mc.Result, nuStart, nuEnd float64) (lum float64) {
	for i, e := range res.E {
		if e > 0 && res.Nu[i] > nuStart && res.Nu[i] < nuEnd {
			lum += e / res.Tsim
		}
	}
	return
}

// ReabsorbedLuminosity sums the luminosity of reabsorbed packets with
// nuStart < ν < nuEnd
func ReabsorbedLuminosity(res *mc.Result, nuStart, nuEnd float64) (lum float64) {
	for i, e := range res.E {
		if e < 0 && res.Nu[i] > nuStart && res.Nu[i] < nuEnd {
			lum += -e / res.Tsim
		}
	}
	return
}

// packetSpectrum histograms one sign class of packets on the frequency grid
func packetSpectrum(res *mc.Result, nuEdges []float64, emitted bool) (o *Spectrum) {
	var nus, lums []float64
	lo, hi := nuEdges[0], nuEdges[len(nuEdges)-1]
	for i, e := range res.E {
		if emitted && e <= 0 || !emitted && e >= 0 {
			continue
		}
		nu := res.Nu[i]
		if nu < lo || nu >= hi {
			continue
		}
		lum := e / res.Tsim
		if !emitted {
			lum = -lum
		}
		nus = append(nus, nu)
		lums = append(lums, lum)
	}
	sortPairs(nus, lums)
	o = new(Spectrum)
	o.NuEdges = nuEdges
	o.L = stat.Histogram(make([]float64, len(nuEdges)-1), nuEdges, nus, lums)
	return
}

// sortPairs co-sorts weights by ascending frequency
func sortPairs(nus, lums []float64) {
	idx := make([]int, len(nus))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return nus[idx[a]] < nus[idx[b]] })
	sortedNu := make([]float64, len(nus))
	sortedLum := make([]float64, len(lums))
	for i, j := range idx {
		sortedNu[i] = nus[j]
		sortedLum[i] = lums[j]
	}
	copy(nus, sortedNu)
	copy(lums, sortedLum)
}
