// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg20sign

import (
	"crypto/elliptic"
	"math/big"

	"github.com/go-tss/tss-core/common"
)

// lagrangeCoefficient computes lambda_i, the Lagrange coefficient that
// converts party i's Shamir share into its additive contribution over
// the active signer set ks.
func lagrangeCoefficient(ec elliptic.Curve, ks []*big.Int, i int) *big.Int {
	modQ := common.ModInt(ec.Params().N)
	num := big.NewInt(1)
	den := big.NewInt(1)
	for j, kj := range ks {
		if j == i {
			continue
		}
		num = modQ.Mul(num, kj)
		den = modQ.Mul(den, modQ.Sub(kj, ks[i]))
	}
	return modQ.Mul(num, modQ.ModInverse(den))
}
