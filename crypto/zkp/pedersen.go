// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package zkp

import (
	"errors"
	"io"
	"math/big"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/tss"
)

// PedersenProof proves knowledge of (sigma, l) such that T = g^sigma *
// h^l, the GG20 phase-6 binding of a party's sigma share to the Ti it
// published without yet revealing sigma itself.
type PedersenProof struct {
	Alpha *crypto.ECPoint
	T, U  *big.Int
}

// NewPedersenProof proves knowledge of sigma, l behind T = g^sigma * h^l.
func NewPedersenProof(rand io.Reader, T, h *crypto.ECPoint, sigma, l *big.Int) (*PedersenProof, error) {
	if T == nil || h == nil || sigma == nil || l == nil {
		return nil, errors.New("NewPedersenProof received nil value(s)")
	}
	ec := tss.EC()
	ecParams := ec.Params()
	q := ecParams.N
	g := crypto.NewECPointNoCurveCheck(ec, ecParams.Gx, ecParams.Gy)

	a, b := common.GetRandomPositiveInt(rand, q), common.GetRandomPositiveInt(rand, q)
	aG, bH := crypto.ScalarBaseMult(ec, a), h.ScalarMult(b)
	alpha, err := aG.Add(bH)
	if err != nil {
		return nil, err
	}

	cHash := common.SHA512_256i(T.X(), T.Y(), h.X(), h.Y(), g.X(), g.Y(), alpha.X(), alpha.Y())
	c := common.RejectionSample(q, cHash)

	modQ := common.ModInt(q)
	t := modQ.Add(a, modQ.Mul(c, sigma))
	u := modQ.Add(b, modQ.Mul(c, l))
	return &PedersenProof{Alpha: alpha, T: t, U: u}, nil
}

// Verify checks the proof against the published T and the joint
// second-generator h.
func (pf *PedersenProof) Verify(T, h *crypto.ECPoint) bool {
	if pf == nil || pf.Alpha == nil || pf.T == nil || pf.U == nil {
		return false
	}
	ec := tss.EC()
	ecParams := ec.Params()
	q := ecParams.N
	g := crypto.NewECPointNoCurveCheck(ec, ecParams.Gx, ecParams.Gy)

	cHash := common.SHA512_256i(T.X(), T.Y(), h.X(), h.Y(), g.X(), g.Y(), pf.Alpha.X(), pf.Alpha.Y())
	c := common.RejectionSample(q, cHash)

	tG, uH := crypto.ScalarBaseMult(ec, pf.T), h.ScalarMult(pf.U)
	tGuH, err := tG.Add(uH)
	if err != nil {
		return false
	}

	Tc := T.ScalarMult(c)
	aTc, err := pf.Alpha.Add(Tc)
	if err != nil {
		return false
	}
	return tGuH.Equals(aTc)
}
