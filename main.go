// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"math"

	"github.com/cpmech/gorad/geo"
	"github.com/cpmech/gorad/inp"
	"github.com/cpmech/gorad/mc"
	"github.com/cpmech/gorad/opac"
	"github.com/cpmech/gorad/out"
	"github.com/cpmech/gorad/pkt"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// message
	io.PfWhite("\nGorad -- Go Monte Carlo Radiative Transfer\n\n")

	// simulation filenamepath
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a filename. Ex.: ejecta.sim")
	}

	// check extension
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".sim"
	}

	// verbosity
	verbose := true
	if len(flag.Args()) > 1 {
		verbose = io.Atob(flag.Arg(1))
	}

	// read and validate input
	sim := inp.ReadSim(fnamepath, true)
	if err := sim.Validate(); err != nil {
		chk.Panic("invalid simulation input:\n%v", err)
	}

	// shell grid
	var grid *geo.Grid
	if len(sim.Grid.Radii) > 0 {
		grid = geo.NewGrid(sim.Grid.Radii, sim.Grid.Texp)
	} else {
		grid = geo.NewGridHomol(sim.Grid.Velocities, sim.Grid.Texp)
	}

	// opacity tables
	st := stateFromInput(sim, grid.Nshells())

	// packet source
	src := &pkt.Source{
		Kind:     pkt.BlackBody,
		Npackets: sim.Transport.Npackets,
		Tinner:   sim.Transport.Tinner,
		Rin:      grid.Rin[0],
		BaseSeed: sim.Transport.Seed,
	}

	// transport configuration
	cfg := mc.NewConfig()
	var err error
	cfg.LineMode, err = mc.LineModeFromString(sim.Transport.LineMode)
	if err != nil {
		chk.Panic("%v", err)
	}
	cfg.Relativity, err = mc.RelModeFromString(sim.Transport.Relativity)
	if err != nil {
		chk.Panic("%v", err)
	}
	if sim.Transport.NoEScat {
		cfg.DisableElectronScattering()
	}
	cfg.Nvpackets = sim.Transport.Nvpackets
	cfg.Tracking = sim.Transport.Tracking
	cfg.Nthreads = sim.Transport.Nthreads
	cfg.Compute = sim.Transport.Compute
	cfg.SpecMethod = sim.Transport.SpecMethod
	cfg.SpectrumNu = sim.SpectrumNu

	// transport state
	t, err := mc.Initialize(grid, st, src, cfg)
	if err != nil {
		chk.Panic("cannot initialize transport:\n%v", err)
	}
	if verbose {
		io.Pf("> Initialisation step completed\n")
		io.Pf("> Simulation (.sim) file read\n")
	}

	// prescribed inner-temperature evolution
	var tinnerFcn func(it int) float64
	if sim.Transport.TinnerFunc != "" {
		fcn, err := sim.Functions.Get(sim.Transport.TinnerFunc)
		if err != nil {
			chk.Panic("%v", err)
		}
		tinnerFcn = func(it int) float64 { return fcn.F(float64(it), nil) }
	}

	// iterations
	niter := sim.Transport.Niterations
	if niter < 1 {
		niter = 1
	}
	for it := 0; it < niter; it++ {
		if tinnerFcn != nil {
			src.Tinner = tinnerFcn(it)
		}
		res, err := t.Run(context.Background(), it, niter)
		if err != nil {
			chk.Panic("transport run failed:\n%v", err)
		}
		trad, w := out.RadiationField(t.Est, grid, res.Tsim)
		if verbose {
			lum := out.EmittedLuminosity(res, 0, math.Inf(1))
			io.Pf("iteration %2d/%d: L_emitted = %g erg/s  errors = %d\n", it+1, niter, lum, res.Nerrors)
			io.Pfgrey("  t_rad[0] = %g K  w[0] = %g\n", trad[0], w[0])
		}
		if sim.Transport.Nvpackets > 0 {
			if out.VirtualSpectrum(res, sim.SpectrumNu).IsZero() {
				io.Pfyel("virtual spectrum is zero; consider more virtual packets\n")
			}
		}
		rec := out.DumpState(t, res, it)
		if err = rec.Save(sim.Data.DirOut, sim.Key, sim.EncType); err != nil {
			chk.Panic("cannot save record:\n%v", err)
		}
	}
	if verbose {
		io.Pf("> Results saved in %s\n", sim.Data.DirOut)
	}
}

// stateFromInput assembles the opacity tables of a standalone run from the
// plasma section of the input file
func stateFromInput(sim *inp.Simulation, nshells int) (st *opac.State) {
	st = new(opac.State)
	st.Nshells = nshells
	st.Nlines = len(sim.Plasma.LineNu)
	st.LineNu = sim.Plasma.LineNu
	st.Ne = sim.Plasma.Ne
	if len(st.Ne) == 0 {
		st.Ne = make([]float64, nshells)
	}
	st.TauSob = make([]float64, nshells*st.Nlines)
	for l, row := range sim.Plasma.TauSob {
		for s, tau := range row {
			st.TauSob[s*st.Nlines+l] = tau
		}
	}
	return
}
