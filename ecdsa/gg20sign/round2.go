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
	"github.com/go-tss/tss-core/crypto/mta"
	"github.com/go-tss/tss-core/tss"
)

// round2 is the state a party occupies while waiting for every peer's
// Round2Message, the MtA "B" responses. Advancing it completes the
// MtA as Alice and folds the result into delta/sigma shares.
type round2 struct {
	base
	k, gamma, w    *big.Int
	kCipher, kRand *big.Int
	Gamma            *crypto.ECPoint
	gammaDecommit    commitments.HashDeCommitment
	peerGammaCommits []commitments.HashCommitment
	peerKCiphers     []*big.Int
	betaSum, nuSum   *big.Int
}

func (r *round2) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	q := ec.Params().N
	n := params.PartyCount()
	i := params.PartyID().Index

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round2: expected a Round2Message from every peer"), taskName, r.RoundLabel())
	}

	ownPK := r.save.PaillierPKs[i]
	alphaSum, muSum := big.NewInt(0), big.NewInt(0)
	var culprits []*tss.PartyID
	for _, pm := range batch {
		j := pm.From.Index
		content, ok := pm.Content.(Round2Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round2: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}

		alpha, err := mta.AliceEnd(ec, ownPK, content.ProofGamma, r.save.H1j[i], r.save.H2j[i], r.kCipher, content.CGamma, r.save.NTildej[i], r.save.PaillierSK)
		if err != nil {
			culprits = append(culprits, pm.From)
			continue
		}
		mu, err := mta.AliceEndWC(ec, ownPK, content.ProofW, bigW(ec, r.save, j), r.kCipher, content.CW, r.save.NTildej[i], r.save.H1j[i], r.save.H2j[i], r.save.PaillierSK)
		if err != nil {
			culprits = append(culprits, pm.From)
			continue
		}
		alphaSum = new(big.Int).Add(alphaSum, alpha)
		muSum = new(big.Int).Add(muSum, mu)
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("mta-bob", taskName, r.RoundLabel(), culprits...)
	}

	kGamma := new(big.Int).Mod(new(big.Int).Mul(r.k, r.gamma), q)
	deltaI := new(big.Int).Mod(new(big.Int).Add(kGamma, new(big.Int).Add(alphaSum, r.betaSum)), q)

	kW := new(big.Int).Mod(new(big.Int).Mul(r.k, r.w), q)
	sigmaI := new(big.Int).Mod(new(big.Int).Add(kW, new(big.Int).Add(muSum, r.nuSum)), q)

	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round3", Round3Message{Delta: deltaI})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round3{
		base:             base{BaseRound: baseRound(params, 3, "round3"), save: r.save, m: r.m},
		k:                r.k,
		kCipher:          r.kCipher,
		kRand:            r.kRand,
		gamma:            r.gamma,
		w:                r.w,
		sigma:            sigmaI,
		delta:            deltaI,
		Gamma:            r.Gamma,
		gammaDecommit:    r.gammaDecommit,
		peerGammaCommits: r.peerGammaCommits,
		peerKCiphers:     r.peerKCiphers,
	}
	return next, []tss.Message{msg}, nil
}
