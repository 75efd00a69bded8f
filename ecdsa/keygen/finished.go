// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import "github.com/go-tss/tss-core/tss"

// Finished is keygen's terminal round: the joint ECDSA public key and
// this party's additive share are settled, and there is nothing left
// to send or receive. Driving code recognizes it via tss.IsTerminal
// and publishes Result() through the party's End channel.
type Finished struct{ base }

func (f *Finished) Advance(tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	return tss.Gone, nil, nil
}

func (f *Finished) IsFinished() bool { return true }

// Result returns the completed save data: this party's key share,
// every peer's public share and auxiliary parameters, and the joint
// ECDSA public key.
func (f *Finished) Result() SaveData { return f.save }

var _ tss.Terminal = (*Finished)(nil)
