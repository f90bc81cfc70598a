// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gorad/mc"
	"github.com/cpmech/gorad/pkt"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Record is the serializable snapshot of one transport iteration, flat enough
// for an external collaborator to persist as-is
type Record struct {
	Iteration int

	// per-packet outputs
	Nu          []float64
	E           []float64
	LastType    []pkt.Interaction
	LastNuIn    []float64
	LastLineIn  []int
	LastLineOut []int
	LastShell   []int

	// estimators
	J     []float64
	NuBar []float64
	JBlue []float64

	// virtual spectrum
	VHist []float64

	Tsim    float64
	Nerrors int
}

// DumpState collects the serializable state of a finished iteration
func DumpState(t *mc.Transport, res *mc.Result, iteration int) (o *Record) {
	o = new(Record)
	o.Iteration = iteration
	o.Nu = res.Nu
	o.E = res.E
	o.LastType = res.LastType
	o.LastNuIn = res.LastNuIn
	o.LastLineIn = res.LastLineIn
	o.LastLineOut = res.LastLineOut
	o.LastShell = res.LastShell
	o.J = t.Est.J
	o.NuBar = t.Est.NuBar
	o.JBlue = t.Est.JBlue
	o.VHist = res.VHist
	o.Tsim = res.Tsim
	o.Nerrors = res.Nerrors
	return
}

// Save writes the record to dirout using the given encoder type ("gob" or "json")
func (o *Record) Save(dirout, key, enctype string) (err error) {
	fil, err := os.Create(filepath.Join(dirout, io.Sf("%s-it%d.rec", key, o.Iteration)))
	if err != nil {
		return chk.Err("cannot create record file:\n%v", err)
	}
	defer fil.Close()
	enc := utl.GetEncoder(fil, enctype)
	if err = enc.Encode(o); err != nil {
		return chk.Err("cannot encode record:\n%v", err)
	}
	return
}

// ReadRecord reads a record written by Save
func ReadRecord(dirout, key string, iteration int, enctype string) (o *Record, err error) {
	fil, err := os.Open(filepath.Join(dirout, io.Sf("%s-it%d.rec", key, iteration)))
	if err != nil {
		return nil, chk.Err("cannot open record file:\n%v", err)
	}
	defer fil.Close()
	o = new(Record)
	dec := utl.GetDecoder(fil, enctype)
	if err = dec.Decode(o); err != nil {
		return nil, chk.Err("cannot decode record:\n%v", err)
	}
	return
}
