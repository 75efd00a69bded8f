// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package signing

import "github.com/go-tss/tss-core/tss"

// Finished is sign's terminal round: the aggregated (r, s, recovery)
// signature has already verified against the joint public key, and
// there is nothing left to send or receive.
type Finished struct {
	base
	sig Signature
}

func (f *Finished) Advance(tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	return tss.Gone, nil, nil
}

func (f *Finished) IsFinished() bool { return true }

// Result returns the completed signature.
func (f *Finished) Result() Signature { return f.sig }

var _ tss.Terminal = (*Finished)(nil)
