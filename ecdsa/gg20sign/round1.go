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

// round1 is the state a party occupies while waiting for every peer's
// Round1CommitMessage and Round1MtAMessage. Advancing it responds, as
// Bob, to each peer's MtA "A" message.
type round1 struct {
	base
	k, gamma, w   *big.Int
	kCipher, kRand *big.Int
	Gamma         *crypto.ECPoint
	gammaDecommit commitments.HashDeCommitment
}

func (r *round1) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	n := params.PartyCount()
	i := params.PartyID().Index

	if len(batch) != 2*(n-1) {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round1: expected a commitment and an MtA message from every peer"), taskName, r.RoundLabel())
	}

	peerCommitments := make([]commitments.HashCommitment, n)
	peerCKIs := make([]*big.Int, n)
	peerProofs := make([]*mta.RangeProofAlice, n)
	byIndex := make(map[int]*tss.PartyID, n-1)

	for _, pm := range batch {
		j := pm.From.Index
		byIndex[j] = pm.From
		switch content := pm.Content.(type) {
		case Round1CommitMessage:
			peerCommitments[j] = content.GammaCommitment
		case Round1MtAMessage:
			peerCKIs[j] = content.CKI
			peerProofs[j] = content.Proof
		default:
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round1: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
	}

	myBigW := bigW(ec, r.save, i)

	betaSum, nuSum := big.NewInt(0), big.NewInt(0)
	var out []tss.Message
	var culprits []*tss.PartyID
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		if peerCKIs[j] == nil || peerProofs[j] == nil {
			culprits = append(culprits, byIndex[j])
			continue
		}
		beta, cGamma, _, proofGamma, err := mta.BobMid(
			params.Rand(), ec, r.save.PaillierPKs[j], peerProofs[j],
			r.gamma, peerCKIs[j],
			r.save.NTildej[j], r.save.H1j[j], r.save.H2j[j],
			r.save.NTildej[i], r.save.H1j[i], r.save.H2j[i],
		)
		if err != nil {
			culprits = append(culprits, byIndex[j])
			continue
		}
		nu, cW, _, proofW, err := mta.BobMidWC(
			params.Rand(), ec, r.save.PaillierPKs[j], peerProofs[j],
			r.w, peerCKIs[j],
			r.save.NTildej[j], r.save.H1j[j], r.save.H2j[j],
			r.save.NTildej[i], r.save.H1j[i], r.save.H2j[i],
			myBigW,
		)
		if err != nil {
			culprits = append(culprits, byIndex[j])
			continue
		}
		betaSum = new(big.Int).Add(betaSum, beta)
		nuSum = new(big.Int).Add(nuSum, nu)

		Pj := byIndex[j]
		wireMsg, err := directedMessage(params.PartyID(), Pj, params.SessionID(), "round2", Round2Message{CGamma: cGamma, ProofGamma: proofGamma, CW: cW, ProofW: proofW})
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
		out = append(out, wireMsg)
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("mta-range", taskName, r.RoundLabel(), culprits...)
	}

	betaSum = new(big.Int).Mod(betaSum, ec.Params().N)
	nuSum = new(big.Int).Mod(nuSum, ec.Params().N)

	next := &round2{
		base:             base{BaseRound: baseRound(params, 2, "round2"), save: r.save, m: r.m},
		k:                r.k,
		kCipher:          r.kCipher,
		kRand:            r.kRand,
		gamma:            r.gamma,
		w:                r.w,
		Gamma:            r.Gamma,
		gammaDecommit:    r.gammaDecommit,
		peerGammaCommits: peerCommitments,
		peerKCiphers:     peerCKIs,
		betaSum:          betaSum,
		nuSum:            nuSum,
	}
	return next, out, nil
}
