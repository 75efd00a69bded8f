// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"encoding/hex"
	"errors"

	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/tss"
)

const paillierBitsLen = 2048

// round1 is the state a party occupies while waiting for every peer's
// Round1Message (Paillier key, Pedersen parameters, DLN proofs, VSS
// commitment hash). Advancing it verifies all of that, then sends this
// party's Round2 de-commitment and its directed, Paillier-encrypted
// Feldman shares.
type round1 struct{ base }

func (r *round1) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	n := params.PartyCount()
	i := params.PartyID().Index
	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round1: expected one message from every peer"), taskName, r.RoundLabel())
	}

	dlnVerifier := newDlnProofVerifier(n)
	seen := make(map[string]struct{}, 2*n)
	type result struct {
		j          int
		ok1, ok2   bool
	}
	results := make(chan result, 2*len(batch))

	kgCommitments := make([]commitments.HashCommitment, n)

	for _, pm := range batch {
		j := pm.From.Index
		msg, ok := pm.Content.(Round1Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round1: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
		if msg.PaillierPK.N.BitLen() != paillierBitsLen {
			return nil, nil, tss.NewInvalidProofError("paillier-bits", taskName, r.RoundLabel(), pm.From)
		}
		if msg.H1i.Cmp(msg.H2i) == 0 {
			return nil, nil, tss.NewInvalidProofError("h1-h2-distinct", taskName, r.RoundLabel(), pm.From)
		}
		if msg.NTildei.BitLen() != paillierBitsLen {
			return nil, nil, tss.NewInvalidProofError("ntilde-bits", taskName, r.RoundLabel(), pm.From)
		}
		h1Hex, h2Hex := hex.EncodeToString(msg.H1i.Bytes()), hex.EncodeToString(msg.H2i.Bytes())
		if _, found := seen[h1Hex]; found {
			return nil, nil, tss.NewInvalidProofError("h-reused", taskName, r.RoundLabel(), pm.From)
		}
		if _, found := seen[h2Hex]; found {
			return nil, nil, tss.NewInvalidProofError("h-reused", taskName, r.RoundLabel(), pm.From)
		}
		seen[h1Hex], seen[h2Hex] = struct{}{}, struct{}{}

		r.save.PaillierPKs[j] = msg.PaillierPK
		r.save.NTildej[j] = msg.NTildei
		r.save.H1j[j], r.save.H2j[j] = msg.H1i, msg.H2i
		kgCommitments[j] = msg.VCommitment

		jj, m := j, msg
		dlnVerifier.verify(m.DlnProof1, m.H1i, m.H2i, m.NTildei, func(ok bool) { results <- result{jj, ok, false} })
		dlnVerifier.verify(m.DlnProof2, m.H2i, m.H1i, m.NTildei, func(ok bool) { results <- result{jj, false, ok} })
	}

	ok1 := make([]bool, n)
	ok2 := make([]bool, n)
	for k := 0; k < 2*len(batch); k++ {
		res := <-results
		if res.ok1 {
			ok1[res.j] = true
		}
		if res.ok2 {
			ok2[res.j] = true
		}
	}
	byIndex := make(map[int]*tss.PartyID, len(batch))
	for _, pm := range batch {
		byIndex[pm.From.Index] = pm.From
	}
	var culprits []*tss.PartyID
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		if !ok1[j] || !ok2[j] {
			culprits = append(culprits, byIndex[j])
		}
	}
	if len(culprits) > 0 {
		return nil, nil, tss.NewInvalidProofError("dln", taskName, r.RoundLabel(), culprits...)
	}

	var out []tss.Message
	for j, Pj := range params.PeerCtx().IDs() {
		if j == i {
			continue
		}
		cij, err := r.save.PaillierPKs[j].Encrypt(params.Rand(), r.ownShares[j].Share)
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
		wireMsg, err := directedMessage(params.PartyID(), Pj, params.SessionID(), "round2-share", Round2ShareMessage{EncryptedShare: cij})
		if err != nil {
			return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
		}
		out = append(out, wireMsg)
	}
	decommitMsg, err := broadcastMessage(params.PartyID(), params.SessionID(), "round2-decommit", Round2DecommitMessage{VDecommitment: r.ownDeCommitment})
	if err != nil {
		return nil, nil, tss.NewError(tss.KindInternal, err, taskName, r.RoundLabel())
	}
	out = append(out, decommitMsg)

	next := &round2{
		base:            base{BaseRound: baseRound(params, 2, "round2"), save: r.save, ownVs: r.ownVs, ownShares: r.ownShares, ownDeCommitment: r.ownDeCommitment},
		peerCommitments: kgCommitments,
	}
	return next, out, nil
}
