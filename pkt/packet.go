// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pkt implements the Monte Carlo energy packet and the packet source
package pkt

import (
	"math/rand/v2"
)

// Status is the life-cycle state of a packet
type Status int

const (
	InProcess  Status = 0 // still inside the computational domain
	Emitted    Status = 1 // escaped through the outer boundary
	Reabsorbed Status = 2 // fell back through the inner boundary
)

// Interaction labels the event types of the transport state machine
type Interaction int

const (
	NoInteraction Interaction = 0
	Boundary      Interaction = 1
	Line          Interaction = 2
	EScatter      Interaction = 3
	ContProcess   Interaction = 4
)

// Packet holds the mutable state of one Monte Carlo energy packet. Position,
// direction, frequency and energy are lab-frame quantities
type Packet struct {
	R        float64    // radial position [cm]
	Mu       float64    // cosine of the angle to the outward radial direction
	Nu       float64    // frequency [Hz]
	E        float64    // energy [erg]
	Shell    int        // index of the current shell
	NextLine int        // index of the next line the packet may interact with; nlines means past the reddest line
	Status   Status     // life-cycle state
	Index    int        // packet index within the collection
	Rng      *rand.Rand // packet-local generator

	// diagnostics: last interaction
	LastType    Interaction // type of the last physical interaction
	LastNuIn    float64     // lab frequency just before the last interaction
	LastLineIn  int         // absorbed line id of the last line interaction
	LastLineOut int         // emitted line id of the last line interaction
	LastShell   int         // shell of the last interaction
}

// PacketSeed derives the generator seed of packet index within iteration.
// It is a pure function of its arguments: the same (base, iteration, index)
// always yields the same seed, which makes runs bit-reproducible regardless
// of how packets are assigned to threads
func PacketSeed(base uint64, iteration, index int) uint64 {
	s := base + uint64(index)*0x9e3779b97f4a7c15
	s ^= uint64(iteration) * 0xda942042e4dd58b5
	return s
}

// NewRng returns the packet-local generator for the given seed
func NewRng(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
