// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"errors"

	"github.com/go-tss/tss-core/tss"
)

// round3 is the state a party occupies while waiting for every peer's
// Schnorr proof of knowledge of its additive key share. Advancing it
// verifies every proof against the peer's Xj (recovered in round2),
// sums all of the Xj into the joint ECDSA public key, and terminates.
type round3 struct{ base }

func (r *round3) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	n := params.PartyCount()
	i := params.PartyID().Index

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round3: expected a share proof from every peer"), taskName, r.RoundLabel())
	}

	var culprits []*tss.PartyID
	for _, pm := range batch {
		j := pm.From.Index
		msg, ok := pm.Content.(Round3Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round3: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		if r.save.BigXj[j] == nil || msg.ShareProof == nil || !msg.ShareProof.Verify(params.SessionID(), r.save.BigXj[j]) {
			culprits = append(culprits, pm.From)
		}
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("share-proof", taskName, r.RoundLabel(), culprits...)
	}

	ecdsaPub := r.save.BigXj[i]
	for j, Xj := range r.save.BigXj {
		if j == i {
			continue
		}
		var err error
		ecdsaPub, err = ecdsaPub.Add(Xj)
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
	}
	r.save.ECDSAPub = ecdsaPub

	finished := &Finished{base{BaseRound: baseRound(params, 4, "finished"), save: r.save, ownVs: r.ownVs, ownShares: r.ownShares, ownDeCommitment: r.ownDeCommitment}}
	return finished, nil, nil
}
