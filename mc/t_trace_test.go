// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"testing"

	"github.com/cpmech/gorad/phys"
	"github.com/cpmech/gorad/pkt"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_dist01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dist01. distance to line")

	texp := 1e6
	nu, comov := 1.0e15, 0.99e15

	// plain redshift distance
	d, err := DistanceToLine(nu, comov, 0.98e15, texp)
	if err != nil {
		tst.Errorf("DistanceToLine failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "d line", 1e-8, d, (0.01e15/nu)*phys.C*texp)

	// close-line clamp: within 1e-7 of the co-moving frequency the
	// difference collapses to zero
	d, err = DistanceToLine(nu, comov, comov*(1.0-5e-8), texp)
	if err != nil {
		tst.Errorf("DistanceToLine failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "d clamped", 1e-17, d, 0.0)
	d, err = DistanceToLine(nu, comov, comov*(1.0+5e-8), texp)
	if err != nil {
		tst.Errorf("clamp must also absorb slightly bluer lines:\n%v", err)
		return
	}
	chk.Scalar(tst, "d clamped blue", 1e-17, d, 0.0)

	// a line the packet already passed is a logic fault
	_, err = DistanceToLine(nu, comov, 1.01e15, texp)
	if err == nil {
		tst.Errorf("negative frequency difference was not rejected")
		return
	}
	if !IsPacketErr(err) {
		tst.Errorf("fault must be a packet error, got %v", err)
		return
	}
	io.Pforan("err = %v\n", err)

	// absent line never matches
	d, _ = DistanceToLine(nu, comov, 0, texp)
	chk.Scalar(tst, "d miss", 1e-17, d, MissDistance)
}

func Test_trace01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("trace01. event decisions")

	g := TestingGrid(1, 1e15, 2e15, 1e9)
	cfg := NewConfig()
	cfg.SpectrumNu = []float64{1e14, 1e15}

	// transparent shell: the boundary always wins
	st := TestingScatterState(1, 0)
	p := newTestPacket(1e15, 1.0, 1e15, 1.0, 11)
	d, itype, dshell, err := TracePacket(&p, g, st, cfg, nil)
	if err != nil {
		tst.Errorf("trace failed:\n%v", err)
		return
	}
	chk.IntAssert(int(itype), int(pkt.Boundary))
	chk.IntAssert(dshell, 1)
	chk.Scalar(tst, "d boundary", 1e-8*1e15, d, 1e15)

	// dense electron gas: scattering wins long before the boundary
	st = TestingScatterState(1, 1e20)
	p = newTestPacket(1e15, 1.0, 1e15, 1.0, 11)
	d, itype, _, err = TracePacket(&p, g, st, cfg, nil)
	if err != nil {
		tst.Errorf("trace failed:\n%v", err)
		return
	}
	chk.IntAssert(int(itype), int(pkt.EScatter))
	if d >= 1e15 {
		tst.Errorf("scattering distance %g is not shorter than the shell", d)
		return
	}

	// resonant thick line: the line wins immediately
	st = TestingLineState(1, 0, []float64{1e15 * (1.0 - 1e-9)}, [][]float64{{1e3}})
	p = newTestPacket(1e15, 1.0, 1e15, 1.0, 11)
	cfg.Relativity = RelOff
	InitializeLineID(&p, g, st, cfg)
	chk.IntAssert(p.NextLine, 0)
	d, itype, _, err = TracePacket(&p, g, st, cfg, nil)
	if err != nil {
		tst.Errorf("trace failed:\n%v", err)
		return
	}
	chk.IntAssert(int(itype), int(pkt.Line))
	chk.Scalar(tst, "d line", 1e-17, d, 0.0)
	chk.IntAssert(p.NextLine, 0)
}

func Test_trace02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("trace02. line cursor priming")

	g := TestingGrid(1, 1e15, 2e15, 1e9)
	cfg := NewConfig()
	cfg.Relativity = RelOff
	st := TestingLineState(1, 0, []float64{9e14, 7e14, 5e14}, [][]float64{{0}, {0}, {0}})

	for _, tc := range []struct {
		nu   float64
		next int
	}{
		{1e15, 0}, // bluer than every line
		{8e14, 1}, // between the first two
		{6e14, 2}, // between the last two
		{4e14, 3}, // redder than every line: past the list
		{7e14, 2}, // exactly on a line: the line counts as passed
	} {
		p := newTestPacket(1.5e15, 0.5, tc.nu, 1.0, 3)
		InitializeLineID(&p, g, st, cfg)
		chk.IntAssert(p.NextLine, tc.next)
	}
}

// newTestPacket builds an in-flight packet with a seeded generator
func newTestPacket(r, mu, nu, e float64, seed uint64) (p pkt.Packet) {
	p.R = r
	p.Mu = mu
	p.Nu = nu
	p.E = e
	p.Status = pkt.InProcess
	p.Rng = pkt.NewRng(seed)
	p.LastLineIn = -1
	p.LastLineOut = -1
	p.LastShell = -1
	return
}
