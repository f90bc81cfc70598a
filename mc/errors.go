// Copyright 2016 The Gorad Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mc

import (
	"errors"
	"fmt"
)

// PacketErr is a numerical fault confined to a single packet: a negative
// frequency difference, a non-finite state variable, or a macro-atom chain
// overflow. The driver marks the packet's outputs as sentinel and continues
type PacketErr struct {
	Msg string
}

// Error returns the message
func (e *PacketErr) Error() string { return e.Msg }

func packetErr(msg string, args ...interface{}) *PacketErr {
	return &PacketErr{Msg: fmt.Sprintf(msg, args...)}
}

// IsPacketErr tells whether err is a per-packet numerical fault
func IsPacketErr(err error) bool {
	var pe *PacketErr
	return errors.As(err, &pe)
}

// ErrCancelled is returned by Run when the cooperative cancel flag fires;
// partial estimators are discarded
var ErrCancelled = errors.New("transport run cancelled")
