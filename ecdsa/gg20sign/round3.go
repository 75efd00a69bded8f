// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg20sign

import (
	"errors"
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/schnorr"
	"github.com/go-tss/tss-core/tss"
)

// round3 is the state a party occupies while waiting for every peer's
// Round3Message. Advancing it sums delta over the signer set, aborting
// if the sum is zero, and reveals this party's gamma commitment
// together with a proof of knowledge of gamma.
type round3 struct {
	base
	k, gamma, w, sigma, delta *big.Int
	kCipher, kRand            *big.Int
	Gamma                     *crypto.ECPoint
	gammaDecommit             commitments.HashDeCommitment
	peerGammaCommits          []commitments.HashCommitment
	peerKCiphers              []*big.Int
}

func (r *round3) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	q := params.EC().Params().N
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round3: expected a Round3Message from every peer"), taskName, r.RoundLabel())
	}

	deltaSum := new(big.Int).Set(r.delta)
	for _, pm := range batch {
		content, ok := pm.Content.(Round3Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round3: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		deltaSum = new(big.Int).Add(deltaSum, content.Delta)
	}
	deltaSum = new(big.Int).Mod(deltaSum, q)
	if deltaSum.Sign() == 0 {
		return nil, nil, tss.NewError(tss.KindInternal, errors.New("round3: aggregate delta is zero"), taskName, r.RoundLabel())
	}

	proof, err := schnorr.NewZKProof(params.SessionID(), r.gamma, r.Gamma, params.Rand())
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round4", Round4Message{GammaDecommitment: r.gammaDecommit, GammaProof: proof})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round4{
		base:             base{BaseRound: baseRound(params, 4, "round4"), save: r.save, m: r.m},
		k:                r.k,
		kCipher:          r.kCipher,
		kRand:            r.kRand,
		gamma:            r.gamma,
		w:                r.w,
		sigma:            r.sigma,
		delta:            deltaSum,
		Gamma:            r.Gamma,
		peerGammaCommits: r.peerGammaCommits,
		peerKCiphers:     r.peerKCiphers,
	}
	return next, []tss.Message{msg}, nil
}
