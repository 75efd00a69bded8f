// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg20sign

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/tss"
)

// round7 is the state a party occupies while waiting for every peer's
// Round7Message, the final signature share s_j. By the time this round
// assembles s, phase5 and phase6 have already passed for every honest
// party; phase7 (the ecdsa.Verify check below) catches an s_i-level
// cheat that the earlier sum checks could not see.
type round7 struct {
	base
	k, gamma, w, sigma, l *big.Int
	R, Y                  *crypto.ECPoint
	rX, sI                *big.Int
}

func (r *round7) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	q := ec.Params().N
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round7: expected a Round7Message from every peer"), taskName, r.RoundLabel())
	}

	s := new(big.Int).Set(r.sI)
	peerSIs := map[int]*big.Int{params.PartyID().Index: r.sI}
	for _, pm := range batch {
		j := pm.From.Index
		content, ok := pm.Content.(Round7Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round7: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		peerSIs[j] = content.Si
		s = new(big.Int).Add(s, content.Si)
	}
	s = new(big.Int).Mod(s, q)

	recovery := byte(0)
	if r.R.X().Cmp(q) > 0 {
		recovery |= 2
	}
	if r.R.Y().Bit(0) == 1 {
		recovery |= 1
	}
	halfQ := new(big.Int).Rsh(q, 1)
	if s.Cmp(halfQ) > 0 {
		s = new(big.Int).Sub(q, s)
		recovery ^= 1
	}

	pk := &ecdsa.PublicKey{Curve: ec, X: r.Y.X(), Y: r.Y.Y()}
	if !ecdsa.Verify(pk, r.m.Bytes(), r.rX, s) {
		reveal := BlameReveal{K: r.k, Gamma: r.gamma, W: r.w, Sigma: r.sigma, L: r.l}
		next := &blameRound{
			base:    base{BaseRound: baseRound(params, 8, "round8-blame"), save: r.save, m: r.m},
			phase:   phase7BadSig,
			R:       r.R,
			Y:       r.Y,
			peerSIs: peerSIs,
			reveals: map[int]BlameReveal{params.PartyID().Index: reveal},
		}
		msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round8-blame", BlameRevealMessage{Reveal: reveal})
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
		return next, []tss.Message{msg}, nil
	}

	sig := Signature{M: r.m, R: r.rX, S: s, Recovery: recovery}
	finished := &Finished{base: base{BaseRound: baseRound(params, 9, "finished"), save: r.save, m: r.m}, sig: sig}
	return finished, nil, nil
}
