// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkt

import (
	"math"
	"math/rand/v2"

	"github.com/cpmech/gorad/phys"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// SourceKind selects the packet source variant
type SourceKind int

const (
	BlackBody SourceKind = iota // Planck spectrum at Tinner, 2μ-weighted directions
	Custom                      // user frequency profile; for synthetic setups and tests
)

// Source produces the initial packet ensemble at the inner boundary
type Source struct {
	Kind     SourceKind
	Npackets int     // number of packets per iteration
	Tinner   float64 // inner-boundary temperature [K]
	Rin      float64 // inner-boundary radius [cm]
	BaseSeed uint64  // base seed of the deterministic per-packet generators

	// Custom source only
	NuProfile fun.Func // frequency as a function of a uniform deviate ξ∈[0,1)
	MuFixed   float64  // fixed direction cosine; 0 means sample the 2μ law
}

// Collection holds one iteration's worth of freshly sampled packets
type Collection struct {
	Nu    []float64 // [n] initial lab-frame frequencies
	Mu    []float64 // [n] initial direction cosines
	E     []float64 // [n] initial energies; identical by construction
	Seeds []uint64  // [n] per-packet generator seeds
	Rin   float64   // launch radius
	Tsim  float64   // simulated wall-time of packet emission [s]
}

// CreatePackets samples the initial ensemble for one iteration. Sampling is
// single-threaded on a generator seeded by (BaseSeed, iteration) so the same
// (BaseSeed, iteration, n) reproduces bit-identical packets
func (o *Source) CreatePackets(n, iteration int) (c *Collection) {
	if n < 1 {
		chk.Panic("number of packets must be positive. n=%d is invalid", n)
	}
	rng := rand.New(rand.NewPCG(o.BaseSeed, uint64(iteration)))
	c = new(Collection)
	c.Nu = make([]float64, n)
	c.Mu = make([]float64, n)
	c.E = make([]float64, n)
	c.Seeds = make([]uint64, n)
	c.Rin = o.Rin

	// each packet carries the same share of a 1 erg ensemble; the simulated
	// emission time follows from the inner-boundary luminosity
	lum := 4.0 * math.Pi * o.Rin * o.Rin * phys.SigmaSB * math.Pow(o.Tinner, 4)
	c.Tsim = 1.0 / lum

	for i := 0; i < n; i++ {
		switch o.Kind {
		case BlackBody:
			c.Mu[i] = math.Sqrt(rng.Float64())
			c.Nu[i] = sampleBlackBody(rng, o.Tinner)
		case Custom:
			if o.MuFixed != 0 {
				c.Mu[i] = o.MuFixed
			} else {
				c.Mu[i] = math.Sqrt(rng.Float64())
			}
			c.Nu[i] = o.NuProfile.F(rng.Float64(), nil)
		default:
			chk.Panic("unknown packet source kind %d", o.Kind)
		}
		c.E[i] = 1.0 / float64(n)
		c.Seeds[i] = PacketSeed(o.BaseSeed, iteration, i)
	}
	return
}

// NewPacket materializes packet i of the collection at the inner boundary
func (o *Collection) NewPacket(i int) (p Packet) {
	p.R = o.Rin
	p.Mu = o.Mu[i]
	p.Nu = o.Nu[i]
	p.E = o.E[i]
	p.Shell = 0
	p.Status = InProcess
	p.Index = i
	p.Rng = NewRng(o.Seeds[i])
	p.LastLineIn = -1
	p.LastLineOut = -1
	p.LastShell = -1
	return
}

// Len returns the number of packets in the collection
func (o *Collection) Len() int { return len(o.Nu) }

// sampleBlackBody draws a frequency from the Planck distribution at
// temperature T with the rejection-free scheme of Carter & Cashwell: pick the
// term l of the series expansion from ξ0·π⁴/90, then
// ν = -(kT/h)·ln(ξ1ξ2ξ3ξ4)/l
func sampleBlackBody(rng *rand.Rand, T float64) float64 {
	target := rng.Float64() * math.Pow(math.Pi, 4) / 90.0
	l := 0
	sum := 0.0
	for sum < target && l < 1024 {
		l++
		fl := float64(l)
		sum += 1.0 / (fl * fl * fl * fl)
	}
	x := -math.Log(rng.Float64()*rng.Float64()*rng.Float64()*rng.Float64()) / float64(l)
	return x * phys.KB * T / phys.H
}
