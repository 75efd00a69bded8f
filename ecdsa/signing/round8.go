// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package signing

import (
	"errors"
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/tss"
)

// round8 is the state a party occupies while waiting for every peer's
// Round8Message, the phase-5c decommit of (U_j, T_j). Advancing it
// checks that every (U_j, T_j) pair telescopes to the identity point;
// if it doesn't, some party's s_j was inconsistent with the jointly
// reconstructed R and public key, and the session aborts without
// revealing any s_j at all. Only once the sum checks out does anyone
// broadcast their share of the final signature.
type round8 struct {
	base
	R             *crypto.ECPoint
	rX, sI        *big.Int
	U, T          *crypto.ECPoint
	peerUTCommits []commitments.HashCommitment
}

func (r *round8) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round8: expected a Round8Message from every peer"), taskName, r.RoundLabel())
	}

	sum, err := r.U.Add(r.T)
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	culprits := make([]*tss.PartyID, 0, n-1)
	for _, pm := range batch {
		j := pm.From.Index
		content, ok := pm.Content.(Round8Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round8: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		cmtDeCmt := commitments.HashCommitDecommit{C: r.peerUTCommits[j], D: content.UTDecommitment}
		ok, secrets := cmtDeCmt.DeCommit()
		if !ok || len(secrets) != 4 {
			culprits = append(culprits, pm.From)
			continue
		}
		Uj, errU := crypto.NewECPoint(ec, secrets[0], secrets[1])
		Tj, errT := crypto.NewECPoint(ec, secrets[2], secrets[3])
		if errU != nil || errT != nil {
			culprits = append(culprits, pm.From)
			continue
		}
		sum, err = sum.Add(Uj)
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
		sum, err = sum.Add(Tj)
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("ut-commit", taskName, r.RoundLabel(), culprits...)
	}
	if !isIdentity(sum) {
		return nil, nil, tss.NewError(tss.KindPhase5BadSum, errors.New("sum of U_j+T_j is not the identity point"), taskName, r.RoundLabel())
	}

	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round9", Round9Message{Si: r.sI})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round9{
		base: base{BaseRound: baseRound(params, 9, "round9"), save: r.save, m: r.m},
		R:    r.R,
		rX:   r.rX,
		sI:   r.sI,
	}
	return next, []tss.Message{msg}, nil
}
