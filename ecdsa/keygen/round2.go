// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"errors"
	"math/big"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/schnorr"
	"github.com/go-tss/tss-core/crypto/vss"
	"github.com/go-tss/tss-core/tss"
)

// round2 is the state a party occupies while waiting for every peer's
// Round2 de-commitment (opening its Round1 VSS-vector hash) and its
// directed, Paillier-encrypted Feldman share. Advancing it opens and
// verifies both, decrypts and verifies the share meant for this party,
// sums all of them (including this party's own self-share) into the
// final additive key share Xi, and broadcasts a Schnorr proof of
// knowledge of Xi.
type round2 struct {
	base
	peerCommitments []commitments.HashCommitment
}

func (r *round2) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	n := params.PartyCount()
	threshold := params.Threshold()
	i := params.PartyID().Index

	if len(batch) != 2*(n-1) {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round2: expected a share and a de-commitment from every peer"), taskName, r.RoundLabel())
	}

	shareOf := make(map[int]*big.Int, n-1)
	decommitOf := make(map[int]commitments.HashDeCommitment, n-1)
	byIndex := make(map[int]*tss.PartyID, n-1)

	for _, pm := range batch {
		j := pm.From.Index
		byIndex[j] = pm.From
		switch content := pm.Content.(type) {
		case Round2ShareMessage:
			m, err := r.save.PaillierSK.Decrypt(content.EncryptedShare)
			if err != nil {
				return nil, nil, tss.NewInvalidProofError("share-decrypt", taskName, r.RoundLabel(), pm.From)
			}
			shareOf[j] = m
		case Round2DecommitMessage:
			decommitOf[j] = content.VDecommitment
		default:
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round2: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
	}

	modQ := common.ModInt(ec.Params().N)
	// this party's own Feldman self-share: the value its own polynomial
	// evaluates to at its own index, which round1 never sends over the
	// wire since there is no peer to encrypt it to.
	Xi := new(big.Int).Set(r.ownShares[i].Share)

	var culprits []*tss.PartyID
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		share, haveShare := shareOf[j]
		d, haveDecommit := decommitOf[j]
		if !haveShare || !haveDecommit {
			culprits = append(culprits, byIndex[j])
			continue
		}
		cmt := &commitments.HashCommitDecommit{C: r.peerCommitments[j], D: d}
		ok, flat := cmt.DeCommit()
		if !ok {
			culprits = append(culprits, byIndex[j])
			continue
		}
		vsj, err := crypto.UnFlattenECPoints(ec, flat)
		if err != nil {
			culprits = append(culprits, byIndex[j])
			continue
		}
		peerShare := &vss.Share{Threshold: threshold, ID: r.save.ShareID, Share: share}
		if !peerShare.Verify(ec, threshold, vsj) {
			culprits = append(culprits, byIndex[j])
			continue
		}
		r.save.BigXj[j] = bigXjFromVs(vsj)
		Xi = modQ.Add(Xi, share)
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("feldman-share", taskName, r.RoundLabel(), culprits...)
	}

	r.save.BigXj[i] = bigXjFromVs(r.ownVs)
	r.save.Xi = Xi

	proof, err := schnorr.NewZKProof(params.SessionID(), Xi, r.save.BigXj[i], params.Rand())
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}
	msg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round3", Round3Message{ShareProof: proof})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}

	next := &round3{base{BaseRound: baseRound(params, 3, "round3"), save: r.save, ownVs: r.ownVs, ownShares: r.ownShares, ownDeCommitment: r.ownDeCommitment}}
	return next, []tss.Message{msg}, nil
}
