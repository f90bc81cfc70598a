// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkt

import (
	"math"
	"testing"

	"github.com/cpmech/gorad/phys"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/stat"
)

func Test_source01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("source01. deterministic blackbody ensemble")

	src := &Source{Kind: BlackBody, Npackets: 1000, Tinner: 1e4, Rin: 1e15, BaseSeed: 23}
	a := src.CreatePackets(1000, 0)
	b := src.CreatePackets(1000, 0)

	// bit-identical reproduction
	for i := 0; i < 1000; i++ {
		if a.Nu[i] != b.Nu[i] || a.Mu[i] != b.Mu[i] || a.Seeds[i] != b.Seeds[i] {
			tst.Errorf("packet %d is not reproduced bit-identically", i)
			return
		}
	}

	// a different iteration must give a different ensemble
	c := src.CreatePackets(1000, 1)
	same := 0
	for i := 0; i < 1000; i++ {
		if a.Nu[i] == c.Nu[i] {
			same++
		}
	}
	if same == 1000 {
		tst.Errorf("iteration offset did not change the ensemble")
		return
	}

	// uniform energies summing to one erg
	esum := 0.0
	for _, e := range a.E {
		chk.Scalar(tst, "E", 1e-17, e, 1.0/1000.0)
		esum += e
	}
	chk.Scalar(tst, "sum(E)", 1e-12, esum, 1.0)

	// directions follow the 2μ law: all outgoing, mean 2/3
	mus := make([]float64, 1000)
	for i, mu := range a.Mu {
		if mu < 0 || mu > 1 {
			tst.Errorf("mu=%g is outside [0,1]", mu)
			return
		}
		mus[i] = mu
	}
	muMean := stat.Mean(mus, nil)
	io.Pforan("mean(mu) = %g\n", muMean)
	chk.Scalar(tst, "mean(mu)", 0.02, muMean, 2.0/3.0)

	// simulated emission time follows from the inner-boundary luminosity
	lum := 4.0 * math.Pi * 1e30 * phys.SigmaSB * 1e16
	chk.Scalar(tst, "tsim", 1e-12*a.Tsim, a.Tsim, 1.0/lum)
}

func Test_source02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("source02. Planck frequency sampling")

	src := &Source{Kind: BlackBody, Npackets: 20000, Tinner: 1e4, Rin: 1e15, BaseSeed: 1234}
	c := src.CreatePackets(20000, 0)

	// the mean of x = hν/kT over the Planck energy spectrum is 360·ζ(5)/π⁴
	xs := make([]float64, len(c.Nu))
	for i, nu := range c.Nu {
		xs[i] = phys.H * nu / (phys.KB * 1e4)
	}
	xMean := stat.Mean(xs, nil)
	io.Pforan("mean(x) = %g\n", xMean)
	chk.Scalar(tst, "mean(x)", 0.05, xMean, 360.0*phys.Zeta5/math.Pow(math.Pi, 4))
}

func Test_source03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("source03. packet materialization")

	src := &Source{Kind: BlackBody, Npackets: 10, Tinner: 1e4, Rin: 1e15, BaseSeed: 5}
	c := src.CreatePackets(10, 2)
	p := c.NewPacket(3)

	chk.Scalar(tst, "R", 1e-17, p.R, 1e15)
	chk.IntAssert(p.Shell, 0)
	chk.IntAssert(int(p.Status), int(InProcess))
	chk.IntAssert(p.Index, 3)
	chk.IntAssert(p.LastLineIn, -1)
	chk.IntAssert(p.LastLineOut, -1)

	// packet generators are independent streams: the same draw from the same
	// seed repeats
	q := c.NewPacket(3)
	chk.Scalar(tst, "rng stream", 1e-17, p.Rng.Float64(), q.Rng.Float64())

	// seeds are a pure function of (base, iteration, index)
	if PacketSeed(5, 2, 3) != c.Seeds[3] {
		tst.Errorf("seed derivation is not reproducible")
	}
	if PacketSeed(5, 2, 3) == PacketSeed(5, 3, 3) {
		tst.Errorf("iteration does not enter the seed")
	}
}
