// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"errors"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/vss"
	"github.com/go-tss/tss-core/tss"
)

// LocalParty is the per-session state holder one participant constructs
// once to run a keygen; Start produces the round-1 state and its
// outgoing broadcast.
type LocalParty struct {
	tss.BaseParty
	params *tss.Parameters

	preParams *PreParams
}

func NewLocalParty(params *tss.Parameters, out chan<- tss.Message, end chan<- interface{}, optionalPreParams ...*PreParams) *LocalParty {
	p := &LocalParty{
		params: params,
	}
	p.Out, p.End = out, end
	if len(optionalPreParams) > 0 && optionalPreParams[0] != nil {
		p.preParams = optionalPreParams[0]
	}
	return p
}

func (p *LocalParty) Params() *tss.Parameters { return p.params }

// Start checks the supplied pre-params (Paillier keypair and Pedersen
// parameters with DLN proofs; it returns an error when they are missing),
// generates this party's partial key share, its VSS commitment vector
// and shares, then broadcasts the Round1Message and returns the round-1
// state awaiting every peer's.
func (p *LocalParty) Start() (tss.Round, []tss.Message, *tss.Error) {
	params := p.params
	Pi := params.PartyID()
	i := Pi.Index
	n := params.PartyCount()

	if !p.preParams.ValidateWithProof() {
		return nil, nil, wrapStartError(errors.New("pre-params were not supplied or are invalid; call GeneratePreParams first"))
	}

	save := NewSaveData(n)
	save.PreParams = *p.preParams
	save.NTildej[i] = p.preParams.NTildei
	save.H1j[i], save.H2j[i] = p.preParams.H1i, p.preParams.H2i
	save.PaillierPKs[i] = &p.preParams.PaillierSK.PublicKey

	ui := common.GetRandomPositiveInt(params.Rand(), params.EC().Params().N)
	ids := params.PeerCtx().IDs().Keys()
	vs, shares, err := vss.Create(params.Rand(), params.EC(), params.Threshold(), ui, ids)
	if err != nil {
		return nil, nil, wrapStartError(err)
	}
	save.Ks = ids
	save.ShareID = ids[i]

	pGFlat, err := crypto.FlattenECPoints(vs)
	if err != nil {
		return nil, nil, wrapStartError(err)
	}
	cmt := commitments.NewHashCommitment(params.Rand(), pGFlat...)

	msg := Round1Message{
		PaillierPK:  &p.preParams.PaillierSK.PublicKey,
		NTildei:     p.preParams.NTildei,
		H1i:         p.preParams.H1i,
		H2i:         p.preParams.H2i,
		DlnProof1:   p.preParams.DlnProof1,
		DlnProof2:   p.preParams.DlnProof2,
		VCommitment: cmt.C,
	}

	wireMsg, err := broadcastMessage(Pi, params.SessionID(), "round1", msg)
	if err != nil {
		return nil, nil, wrapStartError(err)
	}

	r1 := &round1{base{BaseRound: baseRound(params, 1, "round1"), save: save, ownVs: vs, ownShares: shares, ownDeCommitment: cmt.D}}
	out := p.Emit([]tss.Message{wireMsg})
	return r1, out, nil
}

func wrapStartError(cause error) *tss.Error {
	return tss.NewError(tss.KindInternal, cause, taskName, "start")
}

func baseRound(params *tss.Parameters, number int, label string) tss.BaseRound {
	return tss.BaseRound{P: params, Number: number, Label: label, TaskNm: taskName}
}
