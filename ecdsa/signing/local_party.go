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
	"github.com/go-tss/tss-core/crypto/mta"
	"github.com/go-tss/tss-core/ecdsa/keygen"
	"github.com/go-tss/tss-core/tss"
)

// LocalParty is the per-session state holder one of the t+1 active
// signers constructs once to run a sign session over save (already
// re-keyed onto this signer subset via keygen.BuildSaveDataSubset) and
// message digest m. Start derives this party's MtA inputs, broadcasts
// its phase-1 commitment, and sends its directed MtA "A" messages.
type LocalParty struct {
	tss.BaseParty
	params *tss.Parameters

	save keygen.SaveData
	m    *big.Int
}

func NewLocalParty(params *tss.Parameters, save keygen.SaveData, m *big.Int, out chan<- tss.Message, end chan<- interface{}) *LocalParty {
	p := &LocalParty{params: params, save: save, m: m}
	p.Out, p.End = out, end
	return p
}

func (p *LocalParty) Params() *tss.Parameters { return p.params }

func (p *LocalParty) Start() (tss.Round, []tss.Message, *tss.Error) {
	params := p.params
	ec := params.EC()
	q := ec.Params().N
	Pi := params.PartyID()
	i := Pi.Index
	n := params.PartyCount()

	if i2, dup := duplicateIndex(params); dup {
		return nil, nil, tss.NewError(tss.KindInvalidSession, errors.New("duplicate signer index"), taskName, "start", params.PeerCtx().IDs()[i2])
	}
	if p.m == nil || p.m.Cmp(q) >= 0 {
		return nil, nil, wrapStartError(errors.New("message digest is nil or not reduced mod q"))
	}
	if p.save.Xi == nil || p.save.ECDSAPub == nil {
		return nil, nil, wrapStartError(errors.New("save data is missing the party's key share or the joint public key"))
	}

	modQ := common.ModInt(q)
	k := common.GetRandomPositiveInt(params.Rand(), q)
	gamma := common.GetRandomPositiveInt(params.Rand(), q)
	lambda := lagrangeCoefficient(ec, p.save.Ks, i)
	w := modQ.Mul(lambda, p.save.Xi)

	Gamma := crypto.ScalarBaseMult(ec, gamma)
	cmt := commitments.NewHashCommitment(params.Rand(), Gamma.X(), Gamma.Y())

	commitMsg, err := broadcastMessage(Pi, params.SessionID(), "round1-commit", Round1CommitMessage{GammaCommitment: cmt.C})
	if err != nil {
		return nil, nil, wrapStartError(err)
	}
	out := []tss.Message{commitMsg}

	ownPK := p.save.PaillierPKs[i]
	cKIs := make([]*big.Int, n)
	for j, Pj := range params.PeerCtx().IDs() {
		if j == i {
			continue
		}
		cKI, proof, err := mta.AliceInit(params.Rand(), ec, ownPK, k, p.save.NTildej[j], p.save.H1j[j], p.save.H2j[j])
		if err != nil {
			return nil, nil, wrapStartError(err)
		}
		cKIs[j] = cKI
		wireMsg, err := directedMessage(Pi, Pj, params.SessionID(), "round1-mta", Round1MtAMessage{CKI: cKI, Proof: proof})
		if err != nil {
			return nil, nil, wrapStartError(err)
		}
		out = append(out, wireMsg)
	}

	r1 := &round1{
		base:          base{BaseRound: baseRound(params, 1, "round1"), save: p.save, m: p.m},
		k:             k,
		gamma:         gamma,
		w:             w,
		Gamma:         Gamma,
		gammaDecommit: cmt.D,
		ownCKIs:       cKIs,
	}
	return r1, p.Emit(out), nil
}

// duplicateIndex reports whether two signers in the session roster
// share the same index, the InvalidSession condition the tie-break
// rules call out explicitly.
func duplicateIndex(params *tss.Parameters) (int, bool) {
	seen := make(map[int]bool, params.PartyCount())
	for _, pid := range params.PeerCtx().IDs() {
		if seen[pid.Index] {
			return pid.Index, true
		}
		seen[pid.Index] = true
	}
	return 0, false
}
