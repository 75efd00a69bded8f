// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"math/big"

	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/dlnproof"
	"github.com/go-tss/tss-core/crypto/paillier"
	"github.com/go-tss/tss-core/crypto/schnorr"
)

// Round1Message is the broadcast every party sends at the start of a
// keygen session: its Paillier public key, its (NTilde, h1, h2) Pedersen
// parameters with the DLN proofs binding them to one modulus, and the
// hash commitment to its Feldman VSS commitment vector (the "C" half of
// the commit/decommit pair; "D" follows in Round2Message).
type Round1Message struct {
	PaillierPK         *paillier.PublicKey
	NTildei, H1i, H2i  *big.Int
	DlnProof1, DlnProof2 *dlnproof.Proof
	VCommitment        commitments.HashCommitment
}

// Round2ShareMessage is the directed message carrying one party's Feldman
// share of the sender's polynomial, encrypted under the recipient's
// Paillier key so that only the recipient can ever learn it in plaintext.
type Round2ShareMessage struct {
	EncryptedShare *big.Int
}

// Round2DecommitMessage is the broadcast de-commitment of the sender's
// Round1 hash commitment: the flattened Feldman VSS commitment vector
// v0..vt, which every recipient combines with the committed hash to
// verify the sender did not change its polynomial after seeing others'
// commitments.
type Round2DecommitMessage struct {
	VDecommitment commitments.HashDeCommitment
}

// Round3Message is the broadcast Schnorr proof of knowledge of the
// discrete log of this party's share-of-the-secret exponent Xi = xi*G,
// proving the share it holds corresponds to the public commitment it
// published in Round2's de-commitment.
type Round3Message struct {
	ShareProof *schnorr.ZKProof
}
