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
	"github.com/go-tss/tss-core/crypto/zkp"
	"github.com/go-tss/tss-core/tss"
)

// round5 is the state a party occupies while waiting for every peer's
// Round5Message, the phase-5 R'_j = kj*R reveal and its PDL-with-slack
// proof binding it to the Paillier ciphertext of kj each peer broadcast
// back in R1. Advancing it verifies every proof, then checks the
// phase-5 consistency identity sum(R'_j) == G: since R = k^-1*G (k the
// joint nonce, folded through delta = k*Gamma), k_j*R summed over all
// j reconstructs k*R = G exactly when every R'_j is honest.
type round5 struct {
	base
	k, gamma, w, sigma *big.Int
	R, RBarI           *crypto.ECPoint
	peerKCiphers       []*big.Int
}

func (r *round5) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	q := ec.Params().N
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round5: expected a Round5Message from every peer"), taskName, r.RoundLabel())
	}

	rBarSum := r.RBarI
	peerRBarIs := make(map[int]*crypto.ECPoint, n)
	peerRBarIs[params.PartyID().Index] = r.RBarI
	var culprits []*tss.PartyID
	for _, pm := range batch {
		j := pm.From.Index
		content, ok := pm.Content.(Round5Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round5: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		peerRBarIs[j] = content.RBarI
		if r.peerKCiphers[j] == nil {
			culprits = append(culprits, pm.From)
			continue
		}
		st := zkp.PDLwSlackStatement{
			CipherText: r.peerKCiphers[j],
			PK:         r.save.PaillierPKs[j],
			Q:          content.RBarI,
			G:          r.R,
			H1:         r.save.H1j[j],
			H2:         r.save.H2j[j],
			NTilde:     r.save.NTildej[j],
		}
		if !content.Proof.Verify(q, st) {
			culprits = append(culprits, pm.From)
			continue
		}
		var err error
		rBarSum, err = rBarSum.Add(content.RBarI)
		if err != nil {
			culprits = append(culprits, pm.From)
		}
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("pdl-w-slack", taskName, r.RoundLabel(), culprits...)
	}

	g := crypto.NewECPointNoCurveCheck(ec, ec.Params().Gx, ec.Params().Gy)
	if !rBarSum.Equals(g) {
		reveal := BlameReveal{K: r.k, Gamma: r.gamma, W: r.w, Sigma: r.sigma, L: nil}
		msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round6-blame", Round6BlameMessage{Reveal: reveal})
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
		next := &blameRound{
			base:       base{BaseRound: baseRound(params, 6, "round6-blame"), save: r.save, m: r.m},
			phase:      phase5BadSum,
			R:          r.R,
			peerRBarIs: peerRBarIs,
			reveals:    map[int]BlameReveal{params.PartyID().Index: reveal},
		}
		return next, []tss.Message{msg}, nil
	}

	l := common.GetRandomPositiveInt(params.Rand(), q)
	h := secondGenerator(ec)

	S := r.R.ScalarMult(r.sigma)
	gSigma := crypto.ScalarBaseMult(ec, r.sigma)
	hL := h.ScalarMult(l)
	T, err := gSigma.Add(hL)
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	pf, err := zkp.NewPedersenProof(params.Rand(), T, h, r.sigma, l)
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round6", Round6SuccessMessage{SI: S, TI: T, PedersenProof: pf})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round6{
		base:       base{BaseRound: baseRound(params, 6, "round6"), save: r.save, m: r.m},
		k:          r.k,
		gamma:      r.gamma,
		w:          r.w,
		sigma:      r.sigma,
		l:          l,
		R:          r.R,
		S:          S,
		T:          T,
		h:          h,
		peerRBarIs: peerRBarIs,
	}
	return next, []tss.Message{msg}, nil
}
