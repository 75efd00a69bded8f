// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package signing

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/tss"
)

// round9 is the state a party occupies while waiting for every peer's
// Round9Message, the final signature share s_j. Every peer only ever
// sees this message once the phase-5c sum check in round8 has already
// passed for them, so by the time this round assembles s it is either
// the valid ECDSA signature or every honest party aborted earlier.
type round9 struct {
	base
	R      *crypto.ECPoint
	rX, sI *big.Int
}

func (r *round9) Advance(batch tss.InboundBatch) (tss.Round, []tss.Message, *tss.Error) {
	if !r.Consume() {
		return tss.Gone, nil, nil
	}
	params := r.Params()
	ec := params.EC()
	q := ec.Params().N
	n := params.PartyCount()

	if len(batch) != n-1 {
		return nil, nil, tss.NewError(tss.KindIncomplete, errors.New("round9: expected a Round9Message from every peer"), taskName, r.RoundLabel())
	}

	s := new(big.Int).Set(r.sI)
	for _, pm := range batch {
		content, ok := pm.Content.(Round9Message)
		if !ok {
			return nil, nil, tss.NewError(tss.KindDecode, errors.New("round9: unexpected content type"), taskName, r.RoundLabel(), pm.From)
		}
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

	pk := &ecdsa.PublicKey{Curve: ec, X: r.save.ECDSAPub.X(), Y: r.save.ECDSAPub.Y()}
	if !ecdsa.Verify(pk, r.m.Bytes(), r.rX, s) {
		return nil, nil, tss.NewError(tss.KindInvalidSig, errors.New("aggregated signature failed verification against the joint public key"), taskName, r.RoundLabel())
	}

	sig := Signature{M: r.m, R: r.rX, S: s, Recovery: recovery}
	finished := &Finished{base: base{BaseRound: baseRound(params, 10, "finished"), save: r.save, m: r.m}, sig: sig}
	return finished, nil, nil
}
