// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package gg20sign implements the GG20 delta of GG18 sign: the MtA/delta/sigma
// rounds are unchanged, but phase-5 substitutes a PDL-with-slack proof of
// R'_i = k_i*R for GG18's homomorphic-ElGamal construction, and a phase-5/6/7
// consistency failure triggers an identifiable-abort blame round instead of a
// bare abort.
package gg20sign

import (
	"crypto/elliptic"
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/ecdsa/keygen"
	"github.com/go-tss/tss-core/tss"
)

const taskName = "gg20sign"

// base is embedded by every concrete gg20 sign round.
type base struct {
	tss.BaseRound
	save keygen.SaveData
	m    *big.Int
}

func baseRound(params *tss.Parameters, number int, label string) tss.BaseRound {
	return tss.BaseRound{P: params, Number: number, Label: label, TaskNm: taskName}
}

func wrapStartError(cause error) *tss.Error {
	return tss.NewError(tss.KindInternal, cause, taskName, "start")
}

// Signature is the final artifact a gg20 sign session publishes.
type Signature struct {
	M        *big.Int
	R, S     *big.Int
	Recovery byte
}

// Blame phases identify which consistency check a blame round is
// resolving, since the expected public value differs per phase (the
// curve generator for phase5, the joint public key for phase6).
const (
	phase5BadSum = "phase5"
	phase6BadSum = "phase6"
	phase7BadSig = "phase7"
)

// stPair is a peer's phase-6 (Si, Ti) pair, carried forward so a
// phase-6 blame round can recompute Si from a revealed sigma and
// compare it against what that peer actually published.
type stPair struct {
	S, T *crypto.ECPoint
}

func bigW(ec elliptic.Curve, save keygen.SaveData, j int) *crypto.ECPoint {
	lambda := lagrangeCoefficient(ec, save.Ks, j)
	return save.BigXj[j].ScalarMult(lambda)
}

// secondGenerator is the Pedersen commitment's second base h, derived
// deterministically from the curve generator so every party computes
// the identical point without a trusted setup. Grounded on the same
// hash-to-curve idea the teacher's crypto.ECBasePoint2 uses, specialized
// here via rejection sampling over the curve equation; this module's own
// crypto.ECBasePoint2 is not called for it.
func secondGenerator(ec elliptic.Curve) *crypto.ECPoint {
	params := ec.Params()
	one := big.NewInt(1)
	x := new(big.Int).Set(params.Gx)
	for {
		x = new(big.Int).Add(x, one)
		x.Mod(x, params.P)
		ySq := new(big.Int).Exp(x, big.NewInt(3), params.P)
		ySq.Add(ySq, new(big.Int).Mul(params.B, one))
		ySq.Mod(ySq, params.P)
		y := new(big.Int).ModSqrt(ySq, params.P)
		if y == nil {
			continue
		}
		return crypto.NewECPointNoCurveCheck(ec, x, y)
	}
}
