// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/gorad
	Encoder string `json:"encoder"` // encoder name; "gob" or "json"
}

// GridData defines the radial shell grid
type GridData struct {
	Radii      []float64 `json:"radii"`      // [nshells+1] interface radii [cm]
	Velocities []float64 `json:"velocities"` // [nshells+1] interface velocities [cm/s]; alternative to radii
	Texp       float64   `json:"texp"`       // time since explosion [s]
}

// TransportData holds the Monte Carlo transport options
type TransportData struct {
	Npackets    int     `json:"npackets"`    // packets per iteration
	Nvpackets   int     `json:"nvpackets"`   // virtual packets per volley
	Niterations int     `json:"niterations"` // outer iterations
	Tinner      float64 `json:"tinner"`      // inner-boundary temperature [K]
	TinnerFunc  string  `json:"tinnerfunc"`  // optional prescribed T_inner(t) function name
	Seed        uint64  `json:"seed"`        // base seed
	LineMode    string  `json:"linemode"`    // "scatter", "downbranch" or "macroatom"
	Relativity  string  `json:"relativity"`  // "off", "partial" or "full"
	NoEScat     bool    `json:"noescat"`     // disable electron scattering
	Tracking    bool    `json:"tracking"`    // record per-packet traces
	Nthreads    int     `json:"nthreads"`    // worker count
	Compute     string  `json:"compute"`     // "cpu" or "gpu"
	SpecMethod  string  `json:"specmethod"`  // "real" or "integrated"
	NuStart     float64 `json:"nustart"`     // spectrum grid start [Hz]
	NuStop      float64 `json:"nustop"`      // spectrum grid stop [Hz]
	Nbins       int     `json:"nbins"`       // spectrum bins
}

// PlasmaData holds pre-computed opacity tables for standalone runs. Full
// plasma solutions come from an external collaborator; these tables cover
// scattering-dominated test atmospheres
type PlasmaData struct {
	Ne     []float64   `json:"ne"`     // [nshells] electron densities [cm⁻³]
	LineNu []float64   `json:"linenu"` // [nlines] line frequencies [Hz], descending
	TauSob [][]float64 `json:"tausob"` // [nlines][nshells] Sobolev optical depths
}

// Simulation holds all simulation data read from a .sim file
type Simulation struct {
	Data      Data          `json:"data"`
	Grid      GridData      `json:"grid"`
	Transport TransportData `json:"transport"`
	Plasma    PlasmaData    `json:"plasma"`
	Functions FuncsData     `json:"functions"`

	// derived
	Key        string    // simulation key; e.g. mysim01
	EncType    string    // encoder type
	SpectrumNu []float64 // [nbins+1] frequency bin edges, ascending
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string, createDirOut bool) *Simulation {

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		chk.Panic("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// decode
	var o Simulation
	o.Transport.Nthreads = 1
	o.Transport.Compute = "cpu"
	o.Transport.SpecMethod = "real"
	err = json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key
	fn := filepath.Base(simfilepath)
	o.Key = io.FnKey(fn)

	// output directory
	if o.Data.DirOut == "" {
		o.Data.DirOut = "/tmp/gorad/" + o.Key
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// create directory
	if createDirOut {
		err = os.MkdirAll(o.Data.DirOut, 0777)
		if err != nil {
			chk.Panic("cannot create directory for output results (%s): %v", o.Data.DirOut, err)
		}
	}

	// spectrum frequency grid
	if o.Transport.Nbins > 0 {
		o.SpectrumNu = utl.LinSpace(o.Transport.NuStart, o.Transport.NuStop, o.Transport.Nbins+1)
	}
	return &o
}

// Validate rejects inconsistent input before any transport state is built
func (o *Simulation) Validate() (err error) {
	t := &o.Transport
	if t.Npackets <= 0 {
		return chk.Err("number of packets must be positive. npackets=%d is invalid", t.Npackets)
	}
	if t.Nvpackets < 0 {
		return chk.Err("number of virtual packets cannot be negative. nvpackets=%d is invalid", t.Nvpackets)
	}
	if t.Tinner <= 0 {
		return chk.Err("inner-boundary temperature must be positive. tinner=%g is invalid", t.Tinner)
	}
	if t.Nthreads < 1 {
		return chk.Err("at least one worker thread is required. nthreads=%d is invalid", t.Nthreads)
	}
	if t.Compute != "cpu" && t.Compute != "gpu" {
		return chk.Err("unknown compute option %q; the two valid values are \"cpu\" and \"gpu\"", t.Compute)
	}
	if t.SpecMethod != "real" && t.SpecMethod != "integrated" {
		return chk.Err("unknown spectrum method %q; the two valid values are \"real\" and \"integrated\"", t.SpecMethod)
	}
	if t.Nbins < 1 {
		return chk.Err("at least one spectrum bin is required. nbins=%d is invalid", t.Nbins)
	}
	if t.NuStop <= t.NuStart {
		return chk.Err("spectrum frequency range is empty: nustart=%g nustop=%g", t.NuStart, t.NuStop)
	}
	if len(o.Grid.Radii) == 0 && len(o.Grid.Velocities) == 0 {
		return chk.Err("either interface radii or interface velocities must be given")
	}
	if o.Grid.Texp <= 0 {
		return chk.Err("time since explosion must be positive. texp=%g is invalid", o.Grid.Texp)
	}
	return
}
