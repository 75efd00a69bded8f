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
	"github.com/go-tss/tss-core/crypto/schnorr"
	"github.com/go-tss/tss-core/crypto/zkp"
	"github.com/go-tss/tss-core/tss"
)

// round5 is the state a party occupies while waiting for every peer's
// Round5Message, the phase-5a commitment to (V_j, A_j, B_j). Advancing
// it records the peer commitments and reveals this party's own
// (V_i, A_i, B_i) together with the proofs binding them.
type round5 struct {
	base
	R             *crypto.ECPoint
	rX, sI, l, rho *big.Int
	V, A, B       *crypto.ECPoint
	vabCommitment commitments.HashCommitment
	vabDecommit   commitments.HashDeCommitment
}

func (r *round5) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round5: expected a Round5Message from every peer"), taskName, r.RoundLabel())
	}

	peerVABCommits := make([]commitments.HashCommitment, n)
	for _, pm := range batch {
		j := pm.From.Index
		content, ok := pm.Content.(Round5Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round5: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		peerVABCommits[j] = content.VABCommitment
	}

	homoProof, err := zkp.NewHomoElGamalProof(params.SessionID(), r.R, r.A, r.V, r.B, r.sI, r.l, params.Rand())
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}
	rhoProof, err := schnorr.NewZKProof(params.SessionID(), r.rho, r.A, params.Rand())
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round6", Round6Message{
		VABDecommitment: r.vabDecommit,
		HomoProof:       homoProof,
		RhoProof:        rhoProof,
	})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round6{
		base:           base{BaseRound: baseRound(params, 6, "round6"), save: r.save, m: r.m},
		R:              r.R,
		rX:             r.rX,
		sI:             r.sI,
		l:              r.l,
		V:              r.V,
		A:              r.A,
		B:              r.B,
		peerVABCommits: peerVABCommits,
	}
	return next, []tss.Message{msg}, nil
}
