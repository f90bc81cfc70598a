// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geo

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. construction and volumes")

	g := NewGrid([]float64{1e15, 2e15, 4e15}, 1e6)
	chk.IntAssert(g.Nshells(), 2)
	chk.Scalar(tst, "Rin[0]", 1e-17, g.Rin[0], 1e15)
	chk.Scalar(tst, "Rout[0]", 1e-17, g.Rout[0], 2e15)
	chk.Scalar(tst, "Rin[1]", 1e-17, g.Rin[1], 2e15)

	V0 := 4.0 * math.Pi / 3.0 * (math.Pow(2e15, 3) - math.Pow(1e15, 3))
	chk.Scalar(tst, "Vol[0]", 1e-8*V0, g.Vol[0], V0)

	chk.Scalar(tst, "v(r)", 1e-17, g.Velocity(3e15), 3e15/1e6)

	// homologous constructor
	gh := NewGridHomol([]float64{1e9, 2e9}, 1e6)
	chk.Scalar(tst, "homol Rin", 1e-17, gh.Rin[0], 1e15)
	chk.Scalar(tst, "homol Rout", 1e-17, gh.Rout[0], 2e15)
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. boundary distances")

	g := NewGrid([]float64{1e15, 2e15}, 1e6)

	// radially outward from the inner boundary
	d, ds := g.DistanceToBoundary(1e15, 1.0, 0)
	chk.IntAssert(ds, 1)
	chk.Scalar(tst, "d outward", 1e-8*1e15, d, 1e15)

	// radially inward from the outer boundary
	d, ds = g.DistanceToBoundary(2e15, -1.0, 0)
	chk.IntAssert(ds, -1)
	chk.Scalar(tst, "d inward", 1e-8*1e15, d, 1e15)

	// inward ray missing the inner boundary exits outward; the impact
	// parameter r·√(1-μ²) exceeds Rin for shallow angles
	r, mu := 1.9e15, -0.1
	d, ds = g.DistanceToBoundary(r, mu, 0)
	chk.IntAssert(ds, 1)
	dExpected := math.Sqrt(4e30+(mu*mu-1.0)*r*r) - r*mu
	chk.Scalar(tst, "d miss", 1e-8*dExpected, d, dExpected)
	io.Pforan("d(miss) = %g\n", d)

	// tangential ray
	d, ds = g.DistanceToBoundary(1.5e15, 0.0, 0)
	chk.IntAssert(ds, 1)
	chk.Scalar(tst, "d tangent", 1e-8*1e15, d, math.Sqrt(4e30-1.5e15*1.5e15))

	// containment
	if !g.Contains(1.5e15, 0, 0) {
		tst.Errorf("containment check failed")
	}
	if g.Contains(2.5e15, 0, 0) {
		tst.Errorf("containment check failed for outside point")
	}
}
