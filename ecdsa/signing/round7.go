// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package signing

import (
	"errors"
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/tss"
)

// round7 is the state a party occupies while waiting for every peer's
// Round7Message, the phase-5c commitment to (U_j, T_j). Advancing it
// just records the commitments and reveals this party's own decommit;
// the sum check happens once every decommit is in hand, in round8.
type round7 struct {
	base
	R            *crypto.ECPoint
	rX, sI       *big.Int
	U, T         *crypto.ECPoint
	utCommitment commitments.HashCommitment
	utDecommit   commitments.HashDeCommitment
}

func (r *round7) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round7: expected a Round7Message from every peer"), taskName, r.RoundLabel())
	}

	peerUTCommits := make([]commitments.HashCommitment, n)
	for _, pm := range batch {
		j := pm.From.Index
		content, ok := pm.Content.(Round7Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round7: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		peerUTCommits[j] = content.UTCommitment
	}

	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round8", Round8Message{UTDecommitment: r.utDecommit})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round8{
		base:          base{BaseRound: baseRound(params, 8, "round8"), save: r.save, m: r.m},
		R:             r.R,
		rX:            r.rX,
		sI:            r.sI,
		U:             r.U,
		T:             r.T,
		peerUTCommits: peerUTCommits,
	}
	return next, []tss.Message{msg}, nil
}
