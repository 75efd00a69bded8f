// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/dlnproof"
	"github.com/go-tss/tss-core/crypto/paillier"
	"github.com/go-tss/tss-core/tss"
)

// PreParams is the Paillier keypair and Pedersen (NTilde, h1, h2) triple
// one party generates before a keygen session starts — slow enough that
// a caller is expected to generate it out-of-band and pass it into
// NewLocalParty when available.
type PreParams struct {
	PaillierSK *paillier.PrivateKey
	NTildei    *big.Int
	H1i, H2i   *big.Int
	Alpha, Beta,
	P, Q *big.Int // p, q: Sophie Germain primes behind NTildei = (2p+1)(2q+1)
	DlnProof1, DlnProof2 *dlnproof.Proof
}

func (pp *PreParams) Validate() bool {
	return pp != nil && pp.PaillierSK != nil && pp.NTildei != nil && pp.H1i != nil && pp.H2i != nil
}

func (pp *PreParams) ValidateWithProof() bool {
	return pp.Validate() && pp.DlnProof1 != nil && pp.DlnProof2 != nil
}

// LocalSecrets is the portion of the Saved Key Bundle that must never
// leave the local party: the additive share of the ECDSA private key
// and the share's index into the Feldman polynomial.
type LocalSecrets struct {
	Xi, ShareID *big.Int
}

// SaveData is the Saved Key Bundle of §3: everything a local party needs
// to participate in a later signing session, assembled incrementally
// across the keygen round chain and returned whole by Finished.Result.
type SaveData struct {
	PreParams
	LocalSecrets

	Ks []*big.Int // every party's share index, in session order

	NTildej, H1j, H2j []*big.Int // every party's Pedersen parameters

	BigXj       []*crypto.ECPoint     // Xj = xj*G, the public share commitments
	PaillierPKs []*paillier.PublicKey // every party's Paillier public key

	ECDSAPub *crypto.ECPoint // the combined public key y = sum(xj)*G
}

func NewSaveData(partyCount int) (save SaveData) {
	save.Ks = make([]*big.Int, partyCount)
	save.NTildej = make([]*big.Int, partyCount)
	save.H1j, save.H2j = make([]*big.Int, partyCount), make([]*big.Int, partyCount)
	save.BigXj = make([]*crypto.ECPoint, partyCount)
	save.PaillierPKs = make([]*paillier.PublicKey, partyCount)
	return
}

// BuildSaveDataSubset re-keys a save bundle produced over one roster onto
// the (possibly smaller) roster that will actually sign, preserving each
// party's original share data under its new session index.
func BuildSaveDataSubset(source SaveData, signers tss.SortedPartyIDs) SaveData {
	byKey := make(map[string]int, len(source.Ks))
	for j, kj := range source.Ks {
		byKey[kj.String()] = j
	}
	out := NewSaveData(signers.Len())
	out.PreParams = source.PreParams
	out.LocalSecrets = source.LocalSecrets
	out.ECDSAPub = source.ECDSAPub
	for j, id := range signers {
		srcIdx, ok := byKey[id.KeyInt().String()]
		if !ok {
			continue
		}
		out.Ks[j] = source.Ks[srcIdx]
		out.NTildej[j] = source.NTildej[srcIdx]
		out.H1j[j] = source.H1j[srcIdx]
		out.H2j[j] = source.H2j[srcIdx]
		out.BigXj[j] = source.BigXj[srcIdx]
		out.PaillierPKs[j] = source.PaillierPKs[srcIdx]
	}
	return out
}
