// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg20sign

import (
	"errors"
	"math/big"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/zkp"
	"github.com/go-tss/tss-core/tss"
)

// round4 is the state a party occupies while waiting for every peer's
// Round4Message. Advancing it recovers R = delta^-1 * sum(g^gamma_j),
// then publishes R'_i = k_i*R together with a PDL-with-slack proof
// binding it to the Paillier ciphertext of k_i broadcast back in R1.
type round4 struct {
	base
	k, gamma, w, sigma, delta *big.Int
	kCipher, kRand            *big.Int
	Gamma                     *crypto.ECPoint
	peerGammaCommits          []commitments.HashCommitment
	peerKCiphers              []*big.Int
}

func (r *round4) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	q := ec.Params().N
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round4: expected a Round4Message from every peer"), taskName, r.RoundLabel())
	}

	bigR := r.Gamma
	var culprits []*tss.PartyID
	for _, pm := range batch {
		j := pm.From.Index
		content, ok := pm.Content.(Round4Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round4: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		cmtDeCmt := commitments.HashCommitDecommit{C: r.peerGammaCommits[j], D: content.GammaDecommitment}
		ok, secrets := cmtDeCmt.DeCommit()
		if !ok || len(secrets) != 2 {
			culprits = append(culprits, pm.From)
			continue
		}
		GammaJ, err := crypto.NewECPoint(ec, secrets[0], secrets[1])
		if err != nil {
			culprits = append(culprits, pm.From)
			continue
		}
		if !content.GammaProof.Verify(params.SessionID(), GammaJ) {
			culprits = append(culprits, pm.From)
			continue
		}
		bigR, err = bigR.Add(GammaJ)
		if err != nil {
			culprits = append(culprits, pm.From)
			continue
		}
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("gamma-commit", taskName, r.RoundLabel(), culprits...)
	}

	modQ := common.ModInt(q)
	deltaInv := modQ.ModInverse(r.delta)
	R := bigR.ScalarMult(deltaInv)

	RBarI := R.ScalarMult(r.k)

	ownPK := r.save.PaillierPKs[params.PartyID().Index]
	pdlSt := zkp.PDLwSlackStatement{
		CipherText: r.kCipher,
		PK:         ownPK,
		Q:          RBarI,
		G:          R,
		H1:         r.save.H1j[params.PartyID().Index],
		H2:         r.save.H2j[params.PartyID().Index],
		NTilde:     r.save.NTildej[params.PartyID().Index],
	}
	pdlWit := zkp.PDLwSlackWitness{X: r.k, R: r.kRand, SK: r.save.PaillierSK}
	pdlProof, err := zkp.NewPDLwSlackProof(params.Rand(), q, pdlWit, pdlSt)
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round5", Round5Message{RBarI: RBarI, Proof: pdlProof})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round5{
		base:         base{BaseRound: baseRound(params, 5, "round5"), save: r.save, m: r.m},
		k:            r.k,
		gamma:        r.gamma,
		w:            r.w,
		sigma:        r.sigma,
		R:            R,
		RBarI:        RBarI,
		peerKCiphers: r.peerKCiphers,
	}
	return next, []tss.Message{msg}, nil
}
