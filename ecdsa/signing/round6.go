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
	"github.com/go-tss/tss-core/tss"
)

// round6 is the state a party occupies while waiting for every peer's
// Round6Message, the phase-5a decommit plus the HomoElGamalProof and
// Schnorr proof binding it. Advancing it rejects any peer whose proofs
// don't check out, then derives the phase-5c consistency artifacts
// (U_i, T_i) whose sum across all signers telescopes to the genuine
// ECDSA verification equation iff every s_j was computed honestly.
type round6 struct {
	base
	R              *crypto.ECPoint
	rX, sI, l      *big.Int
	V, A, B        *crypto.ECPoint
	peerVABCommits []commitments.HashCommitment
}

func (r *round6) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round6: expected a Round6Message from every peer"), taskName, r.RoundLabel())
	}

	var culprits []*tss.PartyID
	for _, pm := range batch {
		j := pm.From.Index
		content, ok := pm.Content.(Round6Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round6: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		cmtDeCmt := commitments.HashCommitDecommit{C: r.peerVABCommits[j], D: content.VABDecommitment}
		ok, secrets := cmtDeCmt.DeCommit()
		if !ok || len(secrets) != 6 {
			culprits = append(culprits, pm.From)
			continue
		}
		Vj, errV := crypto.NewECPoint(ec, secrets[0], secrets[1])
		Aj, errA := crypto.NewECPoint(ec, secrets[2], secrets[3])
		Bj, errB := crypto.NewECPoint(ec, secrets[4], secrets[5])
		if errV != nil || errA != nil || errB != nil {
			culprits = append(culprits, pm.From)
			continue
		}
		if !content.HomoProof.Verify(params.SessionID(), r.R, Aj, Vj, Bj) {
			culprits = append(culprits, pm.From)
			continue
		}
		if !content.RhoProof.Verify(params.SessionID(), Aj) {
			culprits = append(culprits, pm.From)
			continue
		}
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("homo-el-gamal", taskName, r.RoundLabel(), culprits...)
	}

	i := params.PartyID().Index
	q := ec.Params().N
	modQ := common.ModInt(q)
	g := crypto.NewECPointNoCurveCheck(ec, ec.Params().Gx, ec.Params().Gy)

	lNeg := modQ.Sub(big.NewInt(0), r.l)
	U := g.ScalarMult(lNeg)

	T := r.V
	var err error
	if i == lowestSignerIndex(params) {
		mG := g.ScalarMult(r.m)
		T, err = T.Sub(mG)
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
	}
	rW := bigW(ec, r.save, i).ScalarMult(r.rX)
	T, err = T.Sub(rW)
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	cmt := commitments.NewHashCommitment(params.Rand(), U.X(), U.Y(), T.X(), T.Y())
	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round7", Round7Message{UTCommitment: cmt.C})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round7{
		base:         base{BaseRound: baseRound(params, 7, "round7"), save: r.save, m: r.m},
		R:            r.R,
		rX:           r.rX,
		sI:           r.sI,
		U:            U,
		T:            T,
		utCommitment: cmt.C,
		utDecommit:   cmt.D,
	}
	return next, []tss.Message{msg}, nil
}
