// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package signing

import (
	"crypto/elliptic"
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/ecdsa/keygen"
	"github.com/go-tss/tss-core/tss"
)

const taskName = "sign"

// base is embedded by every concrete sign round. save is the keygen
// bundle already re-keyed onto the active signer roster (see
// keygen.BuildSaveDataSubset); m is the message digest to sign, reduced
// mod q by the caller.
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

// Signature is the final artifact a sign session publishes: an
// ECDSA (r, s) pair over the message it was constructed for, plus the
// recovery id needed to extract the public key from (r, s, recovery)
// alone.
type Signature struct {
	M        *big.Int
	R, S     *big.Int
	Recovery byte
}

// isIdentity reports whether p is the point at infinity, the
// representation crypto.ECPoint.Add leaves behind when two inverse
// points are combined.
func isIdentity(p *crypto.ECPoint) bool {
	return p == nil || (p.X().Sign() == 0 && p.Y().Sign() == 0)
}

// lowestSignerIndex is the deterministic carrier of the public message
// term m*G in the phase-5c (Ui, Ti) consistency split (round6.go):
// exactly one party folds m*G into its Ti so that summing every
// party's Ti telescopes to the full verification equation exactly
// once, not n times. Signer indices need not be contiguous or start at
// zero, so this picks the minimum index actually present in the
// session rather than assuming 0 is a participant.
func lowestSignerIndex(params *tss.Parameters) int {
	ids := params.PeerCtx().IDs()
	lowest := params.PartyID().Index
	for _, pid := range ids {
		if pid.Index < lowest {
			lowest = pid.Index
		}
	}
	return lowest
}

// bigW returns peer j's public commitment to its wj = lambdaj*xj
// contribution, recomputable by anyone from the keygen bundle's BigXj
// and the active signer set's Lagrange map.
func bigW(ec elliptic.Curve, save keygen.SaveData, j int) *crypto.ECPoint {
	lambda := lagrangeCoefficient(ec, save.Ks, j)
	return save.BigXj[j].ScalarMult(lambda)
}
