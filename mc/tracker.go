// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"github.com/cpmech/gorad/pkt"
)

// DefaultTraceCap bounds the number of recorded steps of one packet trace.
// Exceeding the cap marks the trace truncated but never aborts the packet
const DefaultTraceCap = 65536

// initial capacity; most packets terminate within a few dozen steps
const traceInitCap = 64

// Tracker records the trajectory of a single packet: state after priming and
// after every event of the state machine
type Tracker struct {
	Index     int
	R         []float64
	Mu        []float64
	Nu        []float64
	E         []float64
	Shell     []int
	Itype     []pkt.Interaction
	Truncated bool

	cap int
}

// NewTracker returns a tracker for packet index with the given hard cap
func NewTracker(index, capacity int) (o *Tracker) {
	o = new(Tracker)
	o.Index = index
	if capacity == 0 {
		capacity = DefaultTraceCap
	}
	o.cap = capacity
	o.R = make([]float64, 0, traceInitCap)
	o.Mu = make([]float64, 0, traceInitCap)
	o.Nu = make([]float64, 0, traceInitCap)
	o.E = make([]float64, 0, traceInitCap)
	o.Shell = make([]int, 0, traceInitCap)
	o.Itype = make([]pkt.Interaction, 0, traceInitCap)
	return
}

// Track appends the packet's current state
func (o *Tracker) Track(p *pkt.Packet, itype pkt.Interaction) {
	if len(o.R) >= o.cap {
		o.Truncated = true
		return
	}
	o.R = append(o.R, p.R)
	o.Mu = append(o.Mu, p.Mu)
	o.Nu = append(o.Nu, p.Nu)
	o.E = append(o.E, p.E)
	o.Shell = append(o.Shell, p.Shell)
	o.Itype = append(o.Itype, itype)
}
