// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package signing

import (
	"errors"
	"math/big"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/schnorr"
	"github.com/go-tss/tss-core/tss"
)

// round4 is the state a party occupies while waiting for every peer's
// Round4Message, the decommit of g^gamma_j plus a proof of knowledge of
// gamma_j. Advancing it recovers R = delta^-1 * sum(g^gamma_j), derives
// this party's local signature share s_i, and the phase-5a artifacts
// (V_i, A_i, B_i) that bind it without revealing it.
type round4 struct {
	base
	k, sigma, delta  *big.Int
	Gamma            *crypto.ECPoint
	peerGammaCommits []commitments.HashCommitment
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
	rX := new(big.Int).Mod(R.X(), q)

	sI := modQ.Add(modQ.Mul(r.m, r.k), modQ.Mul(rX, r.sigma))

	rho := common.GetRandomPositiveInt(params.Rand(), q)
	l := common.GetRandomPositiveInt(params.Rand(), q)

	g := crypto.NewECPointNoCurveCheck(ec, ec.Params().Gx, ec.Params().Gy)
	lG := g.ScalarMult(l)
	V, err := R.ScalarMult(sI).Add(lG)
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}
	A := g.ScalarMult(rho)
	B, err := A.ScalarMult(sI).Add(lG)
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	cmt := commitments.NewHashCommitment(params.Rand(), V.X(), V.Y(), A.X(), A.Y(), B.X(), B.Y())
	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round5", Round5Message{VABCommitment: cmt.C})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round5{
		base:          base{BaseRound: baseRound(params, 5, "round5"), save: r.save, m: r.m},
		R:             R,
		rX:            rX,
		sI:            sI,
		l:             l,
		rho:           rho,
		V:             V,
		A:             A,
		B:             B,
		vabCommitment: cmt.C,
		vabDecommit:   cmt.D,
	}
	return next, []tss.Message{msg}, nil
}
