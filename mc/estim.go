// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"gonum.org/v1/gonum/floats"
)

// Estimators hold the per-shell radiation-field accumulators. They store raw
// Monte Carlo sums; volume and simulation time divide only in the derivation
// of T_rad and W downstream. All slices are sized at construction and never
// reallocated during a run
type Estimators struct {
	J     []float64 // [nshells] energy-density proxy ΣE·D·d
	NuBar []float64 // [nshells] frequency-weighted sum ΣE·D·d·ν·D
	JBlue []float64 // [nshells·nlines] per-line mean intensity, shell-major; nil when disabled

	nlines int
}

// NewEstimators returns zeroed accumulators
func NewEstimators(nshells, nlines int, withJBlue bool) (o *Estimators) {
	o = new(Estimators)
	o.J = make([]float64, nshells)
	o.NuBar = make([]float64, nshells)
	o.nlines = nlines
	if withJBlue {
		o.JBlue = make([]float64, nshells*nlines)
	}
	return
}

// AddJBlue accumulates the line intensity estimator of line l in shell s
func (o *Estimators) AddJBlue(l, s int, v float64) {
	if o.JBlue != nil {
		o.JBlue[s*o.nlines+l] += v
	}
}

// GetJBlue returns the accumulated line intensity of line l in shell s
func (o *Estimators) GetJBlue(l, s int) float64 {
	if o.JBlue == nil {
		return 0
	}
	return o.JBlue[s*o.nlines+l]
}

// Reset zeroes the accumulators for a new iteration
func (o *Estimators) Reset() {
	for i := range o.J {
		o.J[i] = 0
		o.NuBar[i] = 0
	}
	for i := range o.JBlue {
		o.JBlue[i] = 0
	}
}

// Merge adds the thread-local accumulators e into o. Called once per worker
// after the parallel region; the hot path never synchronizes
func (o *Estimators) Merge(e *Estimators) {
	floats.Add(o.J, e.J)
	floats.Add(o.NuBar, e.NuBar)
	if o.JBlue != nil && e.JBlue != nil {
		floats.Add(o.JBlue, e.JBlue)
	}
}
