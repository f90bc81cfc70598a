// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opac

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_opac01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opac01. table shapes and indexing")

	st := &State{
		Nshells: 2,
		Nlines:  2,
		LineNu:  []float64{6e14, 5e14},
		TauSob:  []float64{0.1, 0.2, 0.3, 0.4}, // shell-major
		Ne:      []float64{1e8, 2e8},
	}
	err := st.Check()
	if err != nil {
		tst.Errorf("Check failed:\n%v", err)
		return
	}

	// Tau(l,s) addresses the shell-major layout
	chk.Scalar(tst, "tau(0,0)", 1e-17, st.Tau(0, 0), 0.1)
	chk.Scalar(tst, "tau(1,0)", 1e-17, st.Tau(1, 0), 0.2)
	chk.Scalar(tst, "tau(0,1)", 1e-17, st.Tau(0, 1), 0.3)
	chk.Scalar(tst, "tau(1,1)", 1e-17, st.Tau(1, 1), 0.4)

	// unsorted line list must be rejected
	bad := &State{
		Nshells: 1,
		Nlines:  2,
		LineNu:  []float64{5e14, 6e14},
		TauSob:  []float64{0, 0},
		Ne:      []float64{0},
	}
	err = bad.Check()
	if err == nil {
		tst.Errorf("unsorted line list was not rejected")
		return
	}
	io.Pforan("err = %v\n", err)

	// negative tau must be rejected
	bad = &State{
		Nshells: 1,
		Nlines:  1,
		LineNu:  []float64{5e14},
		TauSob:  []float64{-1},
		Ne:      []float64{0},
	}
	if bad.Check() == nil {
		tst.Errorf("negative tau was not rejected")
	}
}

func Test_opac02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opac02. macro-atom block normalization")

	// two levels; level 0 has two transitions, level 1 has one
	st := &State{
		Nshells:    2,
		Nlines:     2,
		LineNu:     []float64{6e14, 5e14},
		TauSob:     []float64{0, 0, 0, 0},
		Ne:         []float64{0, 0},
		TransType:  []int{TransEmission, TransInternalDn, TransEmission},
		TransDest:  []int{-1, 1, -1},
		TransLine:  []int{0, -1, 1},
		BlockRef:   []int{0, 2, 3},
		Line2Macro: []int{0, 1},
		TransProb:  []float64{3, 1, 5, 2, 2, 7}, // shell-major
	}
	err := st.Check()
	if err != nil {
		tst.Errorf("Check failed:\n%v", err)
		return
	}

	st.NormalizeProbs()
	chk.Scalar(tst, "P(0,s0)", 1e-15, st.Prob(0, 0), 0.75)
	chk.Scalar(tst, "P(1,s0)", 1e-15, st.Prob(1, 0), 0.25)
	chk.Scalar(tst, "P(2,s0)", 1e-15, st.Prob(2, 0), 1.0)
	chk.Scalar(tst, "P(0,s1)", 1e-15, st.Prob(0, 1), 0.5)
	chk.Scalar(tst, "P(1,s1)", 1e-15, st.Prob(1, 1), 0.5)
	chk.Scalar(tst, "P(2,s1)", 1e-15, st.Prob(2, 1), 1.0)
}

func Test_opac03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opac03. continuum tables")

	cont := &Continuum{
		Nspecies: 2,
		ChiBf:    []float64{1e-18, 3e-18},
		ChiFf:    []float64{2e-18},
		ChiColl:  []float64{0},
		ActLevel: []int{0, 1},
	}
	chk.Scalar(tst, "chi", 1e-32, cont.Chi(0), 6e-18)
	chk.Scalar(tst, "chiBf", 1e-32, cont.ChiBfTotal(0), 4e-18)
}
