// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"math"
	"testing"

	"github.com/cpmech/gorad/phys"
	"github.com/cpmech/gosl/chk"
)

func Test_frame01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame01. Doppler factors")

	r, texp := 1e15, 1e6
	beta := r / (texp * phys.C)
	chk.Scalar(tst, "beta", 1e-15, Beta(r, texp), beta)

	// static mode leaves frequencies untouched
	chk.Scalar(tst, "D off", 1e-17, DopplerFactor(r, 0.7, texp, RelOff), 1.0)
	chk.Scalar(tst, "D⁻¹ off", 1e-17, InverseDopplerFactor(r, 0.7, texp, RelOff), 1.0)

	// partial relativity: first order in β
	mu := 0.3
	chk.Scalar(tst, "D partial", 1e-15, DopplerFactor(r, mu, texp, RelPartial), 1.0-mu*beta)
	chk.Scalar(tst, "D⁻¹ partial", 1e-15, InverseDopplerFactor(r, mu, texp, RelPartial), 1.0/(1.0-mu*beta))

	// full relativity picks up the Lorentz factor
	gamma := 1.0 / math.Sqrt(1.0-beta*beta)
	chk.Scalar(tst, "D full", 1e-15, DopplerFactor(r, mu, texp, RelFull), (1.0-mu*beta)*gamma)
	chk.Scalar(tst, "D⁻¹ full", 1e-15, InverseDopplerFactor(r, mu, texp, RelFull), (1.0+mu*beta)*gamma)
}

func Test_frame02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("frame02. angle aberration round trip")

	beta := 0.2
	for _, mu := range []float64{-0.9, -0.3, 0.0, 0.4, 1.0} {
		muCmf := AngleAberrationLFtoCMF(mu, beta)
		chk.Scalar(tst, "mu round trip", 1e-14, AngleAberrationCMFtoLF(muCmf, beta), mu)
	}
}
