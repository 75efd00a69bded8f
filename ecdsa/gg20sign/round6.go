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
	"github.com/go-tss/tss-core/tss"
)

// round6 is the state a party occupies while waiting for every peer's
// phase-6 reply: either a Round6SuccessMessage (Si = R^sigmai, Ti =
// g^sigmai*h^li, and a PedersenProof binding Ti) if phase5 passed for
// them, or a Round6BlameMessage if it didn't. A single dishonest
// broadcast back in round4/round5 makes the phase-5 sum check fail
// identically for every honest party, so a batch mixing both message
// kinds only happens if a party's R'_i/proof was accepted by some
// peers and rejected by others — itself cause to fall back to blame.
type round6 struct {
	base
	k, gamma, w, sigma, l *big.Int
	R, S, T, h            *crypto.ECPoint
	peerRBarIs            map[int]*crypto.ECPoint
}

func (r *round6) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	q := ec.Params().N
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round6: expected a phase-6 message from every peer"), taskName, r.RoundLabel())
	}

	successes := make(map[int]Round6SuccessMessage, n)
	blames := make(map[int]BlameReveal, n)
	byIndex := make(map[int]*tss.PartyID, n-1)
	for _, pm := range batch {
		j := pm.From.Index
		byIndex[j] = pm.From
		switch content := pm.Content.(type) {
		case Round6SuccessMessage:
			successes[j] = content
		case Round6BlameMessage:
			blames[j] = content.Reveal
		default:
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round6: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
	}

	if len(blames) > 0 {
		reveal := BlameReveal{K: r.k, Gamma: r.gamma, W: r.w, Sigma: r.sigma, L: r.l}
		msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round6-blame", Round6BlameMessage{Reveal: reveal})
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
		reveals := make(map[int]BlameReveal, n)
		for j, b := range blames {
			reveals[j] = b
		}
		reveals[params.PartyID().Index] = reveal
		next := &blameRound{
			base:       base{BaseRound: baseRound(params, 6, "round6-blame"), save: r.save, m: r.m},
			phase:      phase5BadSum,
			R:          r.R,
			peerRBarIs: r.peerRBarIs,
			reveals:    reveals,
		}
		return next, []tss.Message{msg}, nil
	}

	sSum := r.S
	peerSTs := map[int]stPair{params.PartyID().Index: {S: r.S, T: r.T}}
	var culprits []*tss.PartyID
	for j, succ := range successes {
		peerSTs[j] = stPair{S: succ.SI, T: succ.TI}
		if !succ.PedersenProof.Verify(succ.TI, r.h) {
			culprits = append(culprits, byIndex[j])
			continue
		}
		var err error
		sSum, err = sSum.Add(succ.SI)
		if err != nil {
			culprits = append(culprits, byIndex[j])
		}
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("pedersen", taskName, r.RoundLabel(), culprits...)
	}

	Y, err := crypto.NewECPoint(ec, r.save.ECDSAPub.X(), r.save.ECDSAPub.Y())
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}
	if !sSum.Equals(Y) {
		reveal := BlameReveal{K: r.k, Gamma: r.gamma, W: r.w, Sigma: r.sigma, L: r.l}
		msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round7-blame", BlameRevealMessage{Reveal: reveal})
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
		next := &blameRound{
			base:    base{BaseRound: baseRound(params, 7, "round7-blame"), save: r.save, m: r.m},
			phase:   phase6BadSum,
			R:       r.R,
			Y:       Y,
			peerSTs: peerSTs,
			reveals: map[int]BlameReveal{params.PartyID().Index: reveal},
		}
		return next, []tss.Message{msg}, nil
	}

	rX := new(big.Int).Mod(r.R.X(), q)
	mk := new(big.Int).Mod(new(big.Int).Mul(r.m, r.k), q)
	rSigma := new(big.Int).Mod(new(big.Int).Mul(rX, r.sigma), q)
	sI := new(big.Int).Mod(new(big.Int).Add(mk, rSigma), q)

	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round7", Round7Message{Si: sI})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round7{
		base:  base{BaseRound: baseRound(params, 7, "round7"), save: r.save, m: r.m},
		k:     r.k,
		gamma: r.gamma,
		w:     r.w,
		sigma: r.sigma,
		l:     r.l,
		R:     r.R,
		Y:     Y,
		rX:    rX,
		sI:    sI,
	}
	return next, []tss.Message{msg}, nil
}
