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

// blameRound resolves a phase5/phase6/phase7 consistency failure. Every
// party reveals its ephemeral per-session scalars (BlameReveal) instead
// of the zero-knowledge partial-reveal machinery a production GG20
// implementation would run: since k, gamma, w, sigma, and l are all
// single-use nonces or values derived from them, never the long-term
// key share xi itself, disclosing them after a session has already
// decided to abort costs nothing. Each party's earlier public
// broadcast is then recomputed from its own revealed scalars and
// compared against what it actually sent, which identifies every
// party whose reveal doesn't match its own prior message.
type blameRound struct {
	base
	phase      string
	R, Y       *crypto.ECPoint
	peerRBarIs map[int]*crypto.ECPoint
	peerSTs    map[int]stPair
	peerSIs    map[int]*big.Int
	reveals    map[int]BlameReveal
}

func (r *blameRound) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	n := params.PartyCount()

	for _, pm := range batch {
		j := pm.From.Index
		switch content := pm.Content.(type) {
		case Round6BlameMessage:
			r.reveals[j] = content.Reveal
		case BlameRevealMessage:
			r.reveals[j] = content.Reveal
		default:
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("blame: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
	}
	if len(r.reveals) != n {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("blame: did not receive a reveal from every party"), taskName, r.RoundLabel())
	}

	byIndex := make(map[int]*tss.PartyID, n)
	for _, pid := range params.PeerCtx().IDs() {
		byIndex[pid.Index] = pid
	}

	var culprits []*tss.PartyID
	switch r.phase {
	case phase5BadSum:
		for j, reveal := range r.reveals {
			actual := r.peerRBarIs[j]
			if actual == nil || reveal.K == nil {
				culprits = append(culprits, byIndex[j])
				continue
			}
			expected := r.R.ScalarMult(reveal.K)
			if !expected.Equals(actual) {
				culprits = append(culprits, byIndex[j])
			}
		}
	case phase6BadSum:
		for j, reveal := range r.reveals {
			pair, ok := r.peerSTs[j]
			if !ok || reveal.Sigma == nil {
				culprits = append(culprits, byIndex[j])
				continue
			}
			expected := r.R.ScalarMult(reveal.Sigma)
			if !expected.Equals(pair.S) {
				culprits = append(culprits, byIndex[j])
			}
		}
	case phase7BadSig:
		q := params.EC().Params().N
		rX := new(big.Int).Mod(r.R.X(), q)
		for j, reveal := range r.reveals {
			actual := r.peerSIs[j]
			if actual == nil || reveal.K == nil || reveal.Sigma == nil {
				culprits = append(culprits, byIndex[j])
				continue
			}
			mk := new(big.Int).Mod(new(big.Int).Mul(r.m, reveal.K), q)
			rSigma := new(big.Int).Mod(new(big.Int).Mul(rX, reveal.Sigma), q)
			expected := new(big.Int).Mod(new(big.Int).Add(mk, rSigma), q)
			if expected.Cmp(actual) != 0 {
				culprits = append(culprits, byIndex[j])
			}
		}
	default:
		return nil, nil, tss.NewError(tss.KindInternal, errors.New("blame: unknown phase"), taskName, r.RoundLabel())
	}

	return nil, nil, tss.NewBlameResultError(taskName, r.RoundLabel(), culprits...)
}
