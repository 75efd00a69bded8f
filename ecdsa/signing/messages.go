// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package signing

import (
	"math/big"

	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/mta"
	"github.com/go-tss/tss-core/crypto/schnorr"
	"github.com/go-tss/tss-core/crypto/zkp"
)

// Round1CommitMessage is the broadcast hash commitment to gi = g^gammai
// every party sends immediately on Start, before any MtA traffic.
type Round1CommitMessage struct {
	GammaCommitment commitments.HashCommitment
}

// Round1MtAMessage is the directed MtA "A message" carrying this
// party's Paillier-encrypted ki and the range proof binding it to the
// recipient's Pedersen parameters, per crypto/mta.AliceInit.
type Round1MtAMessage struct {
	CKI   *big.Int
	Proof *mta.RangeProofAlice
}

// Round2Message is the directed MtA "B message" this party sends back
// to the sender of a Round1MtAMessage: its Bob-side response for both
// the gammai-flavoured and the wi-flavoured (with-check) MtA.
type Round2Message struct {
	CGamma      *big.Int
	ProofGamma  *mta.ProofBob
	CW          *big.Int
	ProofW      *mta.ProofBobWC
}

// Round3Message broadcasts this party's additive delta share.
type Round3Message struct {
	Delta *big.Int
}

// Round4Message broadcasts the de-commitment of gi = g^gammai plus a
// Schnorr proof of knowledge of gammai, so peers can recompute R only
// once both check out.
type Round4Message struct {
	GammaDecommitment commitments.HashDeCommitment
	GammaProof        *schnorr.ZKProof
}

// Round5Message broadcasts the phase-5a commitment to this party's
// local-signature artifacts (Vi, Ai, Bi).
type Round5Message struct {
	VABCommitment commitments.HashCommitment
}

// Round6Message broadcasts the phase-5a de-commitment together with the
// HomoElGamalProof binding Vi to (Ai, Bi), and a plain DLog proof of
// rhoi behind Ai.
type Round6Message struct {
	VABDecommitment commitments.HashDeCommitment
	HomoProof       *zkp.HomoElGamalProof
	RhoProof        *schnorr.ZKProof
}

// Round7Message broadcasts the phase-5c commitment to (Ui, Ti).
type Round7Message struct {
	UTCommitment commitments.HashCommitment
}

// Round8Message broadcasts the phase-5c de-commitment of (Ui, Ti).
type Round8Message struct {
	UTDecommitment commitments.HashDeCommitment
}

// Round9Message broadcasts this party's final signature share si, only
// once every peer's phase-5d consistency check has already passed.
type Round9Message struct {
	Si *big.Int
}
