// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package zkp carries the non-interactive proofs the GG18/GG20 sign
// chain needs beyond the Schnorr and range proofs already ported under
// crypto/schnorr and crypto/mta.
package zkp

import (
	"errors"
	"io"
	"math/big"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/tss"
)

// HomoElGamalProof proves knowledge of a pair (s, l) satisfying two
// Pedersen-style openings against different first generators at once:
//
//	V = s*R + l*G
//	B = s*A + l*G
//
// the GG18 phase-5 "local signature" construction uses it to bind the
// same (sᵢ, lᵢ) behind the committed Vᵢ and the homomorphic-ElGamal
// pair (Aᵢ, Bᵢ) published alongside it, so a peer can check consistency
// of a party's contribution before sᵢ itself is ever revealed.
type HomoElGamalProof struct {
	A1, A2 *crypto.ECPoint
	Z1, Z2 *big.Int
}

// NewHomoElGamalProof proves the relation above for witnesses s, l and
// public statement (R, A, V, B). session binds the challenge to one
// protocol run.
func NewHomoElGamalProof(session []byte, R, A, V, B *crypto.ECPoint, s, l *big.Int, rand io.Reader) (*HomoElGamalProof, error) {
	if R == nil || A == nil || V == nil || B == nil || s == nil || l == nil {
		return nil, errors.New("HomoElGamalProof constructor received nil value(s)")
	}
	ec := tss.EC()
	q := ec.Params().N
	g := crypto.NewECPointNoCurveCheck(ec, ec.Params().Gx, ec.Params().Gy)

	u1, u2 := common.GetRandomPositiveInt(rand, q), common.GetRandomPositiveInt(rand, q)
	u1R := R.ScalarMult(u1)
	u2G := crypto.ScalarBaseMult(ec, u2)
	a1, err := u1R.Add(u2G)
	if err != nil {
		return nil, err
	}
	u1A := A.ScalarMult(u1)
	a2, err := u1A.Add(u2G)
	if err != nil {
		return nil, err
	}

	c := challenge(session, g, R, A, V, B, a1, a2)
	modQ := common.ModInt(q)
	z1 := modQ.Add(u1, modQ.Mul(c, s))
	z2 := modQ.Add(u2, modQ.Mul(c, l))

	return &HomoElGamalProof{A1: a1, A2: a2, Z1: z1, Z2: z2}, nil
}

// Verify checks the proof against the same session that produced it.
func (pf *HomoElGamalProof) Verify(session []byte, R, A, V, B *crypto.ECPoint) bool {
	if pf == nil || !pf.ValidateBasic() {
		return false
	}
	if R == nil || A == nil || V == nil || B == nil {
		return false
	}
	ec := tss.EC()
	g := crypto.NewECPointNoCurveCheck(ec, ec.Params().Gx, ec.Params().Gy)

	c := challenge(session, g, R, A, V, B, pf.A1, pf.A2)

	z1R := R.ScalarMult(pf.Z1)
	z2G := crypto.ScalarBaseMult(ec, pf.Z2)
	lhs1, err := z1R.Add(z2G)
	if err != nil {
		return false
	}
	cV := V.ScalarMult(c)
	rhs1, err := pf.A1.Add(cV)
	if err != nil {
		return false
	}
	if !lhs1.Equals(rhs1) {
		return false
	}

	z1A := A.ScalarMult(pf.Z1)
	lhs2, err := z1A.Add(z2G)
	if err != nil {
		return false
	}
	cB := B.ScalarMult(c)
	rhs2, err := pf.A2.Add(cB)
	if err != nil {
		return false
	}
	return lhs2.Equals(rhs2)
}

func (pf *HomoElGamalProof) ValidateBasic() bool {
	return pf.A1 != nil && pf.A2 != nil && pf.Z1 != nil && pf.Z2 != nil
}

func challenge(session []byte, pts ...*crypto.ECPoint) *big.Int {
	parts := make([]*big.Int, 0, 2*len(pts)+1)
	parts = append(parts, new(big.Int).SetBytes(session))
	for _, p := range pts {
		parts = append(parts, p.X(), p.Y())
	}
	ec := tss.EC()
	cHash := common.SHA512_256i(parts...)
	return common.RejectionSample(ec.Params().N, cHash)
}
