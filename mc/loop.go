// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"github.com/cpmech/gorad/geo"
	"github.com/cpmech/gorad/opac"
	"github.com/cpmech/gorad/pkt"
)

// SinglePacketLoop propagates one packet until it leaves the domain. The loop
// is the per-packet state machine: trace the next event, move, then dispatch
// on the event type. Virtual-packet volleys fire after priming and after
// every physical interaction, never after plain boundary crossings
func SinglePacketLoop(p *pkt.Packet, g *geo.Grid, st *opac.State, cfg *Config, est *Estimators, vcol *VCollection, trk *Tracker) (err error) {

	InitializePacket(p, g, st, cfg)
	TraceVPacketVolley(p, vcol, g, st, cfg)
	if trk != nil {
		trk.Track(p, pkt.NoInteraction)
	}

	for p.Status == pkt.InProcess {
		distance, itype, dshell, terr := TracePacket(p, g, st, cfg, est)
		if terr != nil {
			return terr
		}
		if err = MovePacket(p, g, cfg, est, distance); err != nil {
			return
		}
		switch itype {
		case pkt.Boundary:
			CrossBoundary(p, dshell, g.Nshells())
		case pkt.EScatter:
			ThomsonScatter(p, g, st, cfg)
			TraceVPacketVolley(p, vcol, g, st, cfg)
		case pkt.Line:
			if err = LineScatter(p, g, st, cfg); err != nil {
				return
			}
			TraceVPacketVolley(p, vcol, g, st, cfg)
		case pkt.ContProcess:
			if err = ContinuumEvent(p, g, st, cfg); err != nil {
				return
			}
			TraceVPacketVolley(p, vcol, g, st, cfg)
		}
		if trk != nil {
			trk.Track(p, itype)
		}
	}
	return
}
