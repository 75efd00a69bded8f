// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/vss"
	"github.com/go-tss/tss-core/tss"
)

const taskName = "keygen"

// base is embedded by every concrete keygen round. It carries the save
// data accumulated so far plus the sender's own not-yet-revealed secrets
// (VSS shares, hash de-commitment) that a later round still needs.
type base struct {
	tss.BaseRound
	save SaveData

	ownVs            vss.Vs
	ownShares        vss.Shares
	ownDeCommitment  commitments.HashDeCommitment
}

// bigXjFromVs recomputes a peer's public share commitment Xj as the
// constant term v0 of that peer's Feldman commitment vector.
func bigXjFromVs(vs vss.Vs) *crypto.ECPoint {
	if len(vs) == 0 {
		return nil
	}
	return vs[0]
}
