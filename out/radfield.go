// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements post-processing of transport results: radiation-field
// properties, emergent spectra, and state persistence
package out

import (
	"github.com/cpmech/gorad/geo"
	"github.com/cpmech/gorad/mc"
	"github.com/cpmech/gorad/phys"
)

// RadiationField derives the radiative temperature and the dilution factor of
// every shell from the raw estimator sums:
//
//	T_rad[s] = K_T · ν̄J[s] / J[s]
//	W[s]     = J[s] / (4 σ_SB T_rad⁴ t_sim V[s])
//
// Shells no packet crossed keep T_rad = W = 0
func RadiationField(est *mc.Estimators, g *geo.Grid, tsim float64) (trad, w []float64) {
	nshells := g.Nshells()
	trad = make([]float64, nshells)
	w = make([]float64, nshells)
	for s := 0; s < nshells; s++ {
		j := est.J[s]
		if j <= 0 {
			continue
		}
		t := phys.KTrad * est.NuBar[s] / j
		trad[s] = t
		w[s] = j / (4.0 * phys.SigmaSB * t * t * t * t * tsim * g.Vol[s])
	}
	return
}
