// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mc implements the Monte Carlo transport kernel: frame
// transformations, distance computations, the line-trace loop, interaction
// handlers, virtual packets, estimators, and the parallel driver
package mc

import (
	"github.com/cpmech/gorad/phys"
	"github.com/cpmech/gosl/chk"
)

// engine constants
const (
	CloseLineThreshold = 1e-7 // relative Δν below which two frequencies count as the same line
	MissDistance       = 1e99 // distance assigned to events that cannot occur
	MaxMacroHops       = 1000000
	DefaultChunkSize   = 1024 // packets claimed per worker round; also the cancel-poll granularity
	maxVPacketTau      = 70.0 // e^-70 ≈ 4e-31; deeper rays cannot contribute
)

// LineMode selects how line interactions re-emit
type LineMode int

const (
	LineScatterMode LineMode = iota // resonance scatter: emission line = absorbed line
	LineDownbranch                  // one downward radiative transition from the upper level
	LineMacroAtom                   // full macro-atom internal chain
)

// RelMode selects the treatment of the expansion velocity field
type RelMode int

const (
	RelOff     RelMode = iota // static atmosphere; no frame transformation
	RelPartial                // first-order Doppler factors, no aberration
	RelFull                   // special-relativistic factors and angle aberration
)

// Config holds the immutable transport options of one run. No process-wide
// state survives a run; every transport call receives this record by reference
type Config struct {
	LineMode     LineMode
	Relativity   RelMode
	SigmaThomson float64   // effective Thomson cross-section [cm²]
	Nvpackets    int       // virtual packets per volley
	Tracking     bool      // record per-packet traces
	TrackVirtual bool      // keep the per-virtual-packet (ν,E) buffer
	Nthreads     int       // worker count
	SpectrumNu   []float64 // [nbins+1] frequency bin edges, ascending [Hz]
	VSpawnNuMin  float64   // virtual volleys only for packets within [min,max]; 0 disables the bound
	VSpawnNuMax  float64
	Compute      string // "cpu" or "gpu"; "gpu" is rejected at initialization
	SpecMethod   string // "real" or "integrated"
	ChunkSize    int    // packets per worker claim; 0 means DefaultChunkSize
	TraceCap     int    // hard cap of a per-packet trace; 0 means DefaultTraceCap

	Progress func(done, total int) // optional coarse progress callback
}

// NewConfig returns a configuration with the defaults of a plain scattering run
func NewConfig() (o *Config) {
	o = new(Config)
	o.SigmaThomson = phys.SigmaThomson
	o.Nthreads = 1
	o.Compute = "cpu"
	o.SpecMethod = "real"
	return
}

// DisableElectronScattering sets the effectively-zero cross-section so the
// formula path stays identical
func (o *Config) DisableElectronScattering() {
	o.SigmaThomson = phys.SigmaThomsonOff
}

// LineModeFromString parses a line-interaction mode name
func LineModeFromString(name string) (mode LineMode, err error) {
	switch name {
	case "scatter":
		mode = LineScatterMode
	case "downbranch":
		mode = LineDownbranch
	case "macroatom":
		mode = LineMacroAtom
	default:
		err = chk.Err("unknown line interaction type %q", name)
	}
	return
}

// RelModeFromString parses a relativity mode name
func RelModeFromString(name string) (mode RelMode, err error) {
	switch name {
	case "off", "":
		mode = RelOff
	case "partial":
		mode = RelPartial
	case "full":
		mode = RelFull
	default:
		err = chk.Err("unknown relativity mode %q", name)
	}
	return
}
