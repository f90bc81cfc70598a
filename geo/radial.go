// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geo implements the radial shell grid of a homologously expanding atmosphere
package geo

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// TieTol is the relative tolerance of the boundary tie-break: when the inward
// and outward flight distances agree within TieTol·r_outer the outward
// crossing wins
const TieTol = 1e-10

// Grid holds an immutable radial shell grid. Shells are contiguous:
//
//	Rout[s] == Rin[s+1]  for  s < nshells-1
type Grid struct {
	Rin  []float64 // [nshells] inner radii of shells [cm]
	Rout []float64 // [nshells] outer radii of shells [cm]
	Vol  []float64 // [nshells] shell volumes [cm³]
	Texp float64   // time since explosion [s]
}

// NewGrid returns a grid built from the radii of the shell interfaces
//
//	Input:
//	 radii -- [nshells+1] interface radii, strictly increasing
//	 texp  -- time since explosion
func NewGrid(radii []float64, texp float64) (o *Grid) {
	nshells := len(radii) - 1
	if nshells < 1 {
		chk.Panic("at least two interface radii are required. len(radii)=%d is invalid", len(radii))
	}
	if texp <= 0 {
		chk.Panic("time since explosion must be positive. texp=%g is invalid", texp)
	}
	o = new(Grid)
	o.Texp = texp
	o.Rin = make([]float64, nshells)
	o.Rout = make([]float64, nshells)
	o.Vol = make([]float64, nshells)
	for s := 0; s < nshells; s++ {
		if radii[s+1] <= radii[s] {
			chk.Panic("interface radii must be strictly increasing. radii[%d]=%g ≥ radii[%d]=%g", s, radii[s], s+1, radii[s+1])
		}
		o.Rin[s] = radii[s]
		o.Rout[s] = radii[s+1]
		o.Vol[s] = 4.0 * math.Pi / 3.0 * (cube(radii[s+1]) - cube(radii[s]))
	}
	return
}

// NewGridHomol returns a grid built from the interface velocities of a
// homologous flow: r = v·texp
func NewGridHomol(velocities []float64, texp float64) (o *Grid) {
	radii := make([]float64, len(velocities))
	for i, v := range velocities {
		radii[i] = v * texp
	}
	return NewGrid(radii, texp)
}

// Nshells returns the number of shells
func (o *Grid) Nshells() int { return len(o.Rin) }

// Velocity returns the material velocity at radius r
func (o *Grid) Velocity(r float64) float64 { return r / o.Texp }

// DistanceToBoundary computes the flight distance from position r along
// direction μ to the boundary of shell s, together with the shell increment:
// +1 for an outward crossing and -1 for an inward one. An inward-pointing ray
// whose impact parameter exceeds Rin misses the inner boundary and exits
// outward
func (o *Grid) DistanceToBoundary(r, mu float64, s int) (d float64, dshell int) {
	rout := o.Rout[s]
	dout := math.Sqrt(rout*rout+(mu*mu-1.0)*r*r) - r*mu
	if mu >= 0 {
		return dout, +1
	}
	rin := o.Rin[s]
	disc := rin*rin + r*r*(mu*mu-1.0)
	if disc < 0 {
		return dout, +1
	}
	din := -r*mu - math.Sqrt(disc)
	if math.Abs(din-dout) < TieTol*rout {
		return dout, +1
	}
	return din, -1
}

// Contains tells whether radius r lies within shell s up to the absolute
// tolerance tol
func (o *Grid) Contains(r float64, s int, tol float64) bool {
	return r >= o.Rin[s]-tol && r <= o.Rout[s]+tol
}

func cube(x float64) float64 { return x * x * x }
