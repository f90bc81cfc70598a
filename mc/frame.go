// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"math"

	"github.com/cpmech/gorad/phys"
)

// Beta returns v(r)/c of the homologous flow
func Beta(r, texp float64) float64 {
	return r / (texp * phys.C)
}

// DopplerFactor converts a lab frequency to the co-moving frame:
// ν_cmf = ν·D. In partial relativity D = 1−μβ; in full relativity the
// Lorentz factor enters as well
func DopplerFactor(r, mu, texp float64, rel RelMode) float64 {
	if rel == RelOff {
		return 1.0
	}
	beta := Beta(r, texp)
	if rel == RelFull {
		return (1.0 - mu*beta) / math.Sqrt(1.0-beta*beta)
	}
	return 1.0 - mu*beta
}

// InverseDopplerFactor converts a co-moving frequency back to the lab frame
func InverseDopplerFactor(r, mu, texp float64, rel RelMode) float64 {
	if rel == RelOff {
		return 1.0
	}
	beta := Beta(r, texp)
	if rel == RelFull {
		return (1.0 + mu*beta) / math.Sqrt(1.0-beta*beta)
	}
	return 1.0 / (1.0 - mu*beta)
}

// AngleAberrationCMFtoLF transforms a co-moving direction cosine to the lab frame
func AngleAberrationCMFtoLF(mu, beta float64) float64 {
	return (mu + beta) / (1.0 + beta*mu)
}

// AngleAberrationLFtoCMF transforms a lab direction cosine to the co-moving frame
func AngleAberrationLFtoCMF(mu, beta float64) float64 {
	return (mu - beta) / (1.0 - beta*mu)
}
