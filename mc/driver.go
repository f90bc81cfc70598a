// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cpmech/gorad/geo"
	"github.com/cpmech/gorad/opac"
	"github.com/cpmech/gorad/pkt"
	"github.com/cpmech/gosl/chk"
	"golang.org/x/sync/errgroup"
)

// Transport holds the state of one Monte Carlo iteration: the shared
// immutables (grid, opacity tables, configuration) and the global estimators
// filled by Run
type Transport struct {
	Grid   *geo.Grid
	State  *opac.State
	Source *pkt.Source
	Cfg    *Config
	Est    *Estimators
}

// Result holds the outputs of one transport run
type Result struct {
	Nu []float64 // [n] emergent lab frequencies; -1 flags a failed packet
	E  []float64 // [n] signed emergent energies; negative means reabsorbed

	LastType    []pkt.Interaction // [n] type of the last physical interaction
	LastNuIn    []float64         // [n] lab frequency entering the last interaction
	LastLineIn  []int             // [n] absorbed line id; -1 if none
	LastLineOut []int             // [n] emitted line id; -1 if none
	LastShell   []int             // [n] shell of the last interaction; -1 if none

	VHist     []float64  // virtual-packet energy histogram on Cfg.SpectrumNu
	VNus, VEs []float64  // per-virtual-packet buffer, when Cfg.TrackVirtual is on
	Trackers  []*Tracker // per-packet traces, when tracking is on

	Nerrors int     // packets aborted by numerical faults
	Tsim    float64 // simulated wall-time of packet emission [s]
}

// Initialize validates the configuration against the tables and returns a
// ready transport state. Configuration faults are rejected here and never
// surface from the hot path
func Initialize(g *geo.Grid, st *opac.State, src *pkt.Source, cfg *Config) (o *Transport, err error) {
	if err = st.Check(); err != nil {
		return
	}
	if st.Nshells != g.Nshells() {
		return nil, chk.Err("opacity tables have %d shells but the grid has %d", st.Nshells, g.Nshells())
	}
	if src.Npackets <= 0 {
		return nil, chk.Err("number of packets must be positive. npackets=%d is invalid", src.Npackets)
	}
	if cfg.Nthreads < 1 {
		return nil, chk.Err("at least one worker thread is required. nthreads=%d is invalid", cfg.Nthreads)
	}
	if len(cfg.SpectrumNu) < 2 {
		return nil, chk.Err("the spectrum frequency grid needs at least two edges. got %d", len(cfg.SpectrumNu))
	}
	for i := 1; i < len(cfg.SpectrumNu); i++ {
		if cfg.SpectrumNu[i] <= cfg.SpectrumNu[i-1] {
			return nil, chk.Err("the spectrum frequency grid must be strictly increasing")
		}
	}
	if cfg.Compute == "gpu" {
		return nil, chk.Err("the GPU option was selected but no CUDA device is available")
	}
	if cfg.SpecMethod == "integrated" && cfg.Relativity == RelFull {
		return nil, chk.Err("the integrated spectrum method is not available in full relativity mode")
	}
	if (cfg.LineMode == LineDownbranch || cfg.LineMode == LineMacroAtom) && !st.HasMacro() {
		return nil, chk.Err("the %q line interaction type requires macro-atom tables", []string{"scatter", "downbranch", "macroatom"}[cfg.LineMode])
	}
	if st.Cont != nil && !st.HasMacro() {
		return nil, chk.Err("continuum tables require macro-atom tables for bound-free re-emission")
	}
	o = new(Transport)
	o.Grid = g
	o.State = st
	o.Source = src
	o.Cfg = cfg
	o.Est = NewEstimators(g.Nshells(), st.Nlines, true)
	return
}

// Run executes one Monte Carlo iteration: creates the packet ensemble,
// partitions it across the workers, and reduces the thread-local accumulators
// into the global estimators. Per-packet outputs depend only on the packet's
// deterministic seed, never on the thread assignment
func (o *Transport) Run(ctx context.Context, iteration, totalIterations int) (res *Result, err error) {

	n := o.Source.Npackets
	col := o.Source.CreatePackets(n, iteration)
	o.Est.Reset()
	chunk := o.Cfg.ChunkSize
	if chunk == 0 {
		chunk = DefaultChunkSize
	}

	res = newResult(n, len(o.Cfg.SpectrumNu)-1)
	res.Tsim = col.Tsim
	if o.Cfg.Tracking {
		res.Trackers = make([]*Tracker, n)
	}

	// thread-local accumulators
	locEst := make([]*Estimators, o.Cfg.Nthreads)
	locV := make([]*VCollection, o.Cfg.Nthreads)
	for w := 0; w < o.Cfg.Nthreads; w++ {
		locEst[w] = NewEstimators(o.Grid.Nshells(), o.State.Nlines, true)
		locV[w] = NewVCollection(o.Cfg.SpectrumNu, o.Cfg.TrackVirtual, 0)
	}

	var cursor, done, nerr int64
	var progressMu sync.Mutex

	eg, gctx := errgroup.WithContext(ctx)
	for w := 0; w < o.Cfg.Nthreads; w++ {
		est, vcol := locEst[w], locV[w]
		eg.Go(func() error {
			for {
				start := atomic.AddInt64(&cursor, int64(chunk)) - int64(chunk)
				if start >= int64(n) {
					return nil
				}
				if gctx.Err() != nil {
					return ErrCancelled
				}
				end := start + int64(chunk)
				if end > int64(n) {
					end = int64(n)
				}
				for i := start; i < end; i++ {
					p := col.NewPacket(int(i))
					var trk *Tracker
					if o.Cfg.Tracking {
						trk = NewTracker(int(i), o.Cfg.TraceCap)
						res.Trackers[i] = trk
					}
					perr := SinglePacketLoop(&p, o.Grid, o.State, o.Cfg, est, vcol, trk)
					if perr != nil {
						if !IsPacketErr(perr) {
							return perr
						}
						res.Nu[i] = -1
						res.E[i] = 0
						atomic.AddInt64(&nerr, 1)
						continue
					}
					res.Nu[i] = p.Nu
					if p.Status == pkt.Reabsorbed {
						res.E[i] = -p.E
					} else {
						res.E[i] = p.E
					}
					res.LastType[i] = p.LastType
					res.LastNuIn[i] = p.LastNuIn
					res.LastLineIn[i] = p.LastLineIn
					res.LastLineOut[i] = p.LastLineOut
					res.LastShell[i] = p.LastShell
				}
				d := atomic.AddInt64(&done, end-start)
				if o.Cfg.Progress != nil {
					progressMu.Lock()
					o.Cfg.Progress(int(d), n)
					progressMu.Unlock()
				}
			}
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	// reduce the thread-local accumulators
	vall := NewVCollection(o.Cfg.SpectrumNu, o.Cfg.TrackVirtual, 0)
	for w := 0; w < o.Cfg.Nthreads; w++ {
		o.Est.Merge(locEst[w])
		vall.Merge(locV[w])
	}
	res.VHist = vall.Hist
	res.VNus = vall.Nus
	res.VEs = vall.Es
	res.Nerrors = int(nerr)
	return
}

func newResult(n, nbins int) (o *Result) {
	o = new(Result)
	o.Nu = make([]float64, n)
	o.E = make([]float64, n)
	o.LastType = make([]pkt.Interaction, n)
	o.LastNuIn = make([]float64, n)
	o.LastLineIn = make([]int, n)
	o.LastLineOut = make([]int, n)
	o.LastShell = make([]int, n)
	for i := 0; i < n; i++ {
		o.LastLineIn[i] = -1
		o.LastLineOut[i] = -1
		o.LastShell[i] = -1
	}
	o.VHist = make([]float64, nbins)
	return
}
