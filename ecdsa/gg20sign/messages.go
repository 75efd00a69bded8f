// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg20sign

import (
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/mta"
	"github.com/go-tss/tss-core/crypto/schnorr"
	"github.com/go-tss/tss-core/crypto/zkp"
)

// Round1CommitMessage is the broadcast hash commitment to g^gammai.
type Round1CommitMessage struct {
	GammaCommitment commitments.HashCommitment
}

// Round1MtAMessage is the directed MtA "A message" carrying this
// party's Paillier-encrypted ki (the same ciphertext reused for every
// peer, so phase-5's PDL-with-slack proof can reference one c_A) and
// the range proof binding it to the recipient's Pedersen parameters.
type Round1MtAMessage struct {
	CKI   *big.Int
	Proof *mta.RangeProofAlice
}

// Round2Message is the directed MtA "B message".
type Round2Message struct {
	CGamma     *big.Int
	ProofGamma *mta.ProofBob
	CW         *big.Int
	ProofW     *mta.ProofBobWC
}

// Round3Message broadcasts this party's additive delta share.
type Round3Message struct {
	Delta *big.Int
}

// Round4Message broadcasts the de-commitment of g^gammai plus a
// Schnorr proof of knowledge of gammai.
type Round4Message struct {
	GammaDecommitment commitments.HashDeCommitment
	GammaProof        *schnorr.ZKProof
}

// Round5Message broadcasts R'_i = ki*R together with the PDL-with-slack
// proof binding it to this party's phase-1 Paillier ciphertext of ki.
type Round5Message struct {
	RBarI *crypto.ECPoint
	Proof *zkp.PDLwSlackProof
}

// Round6SuccessMessage is sent once every peer's phase-5 PDL proof has
// verified and the R'_i sum checks out: it reveals S_i = R^sigmai and
// T_i = g^sigmai*h^li together with the PedersenProof binding T_i.
type Round6SuccessMessage struct {
	SI, TI        *crypto.ECPoint
	PedersenProof *zkp.PedersenProof
}

// Round6BlameMessage is sent instead of Round6SuccessMessage when the
// phase-5 R'_i sum failed to reconstruct G: it reveals every secret
// scalar this party holds for the session so the blame round can
// recompute each party's public commitments and identify whoever's
// revealed scalar disagrees with what they broadcast earlier.
type Round6BlameMessage struct {
	Reveal BlameReveal
}

// BlameReveal is the full secret-scalar disclosure used to resolve a
// phase-5/6/7 consistency failure. Revealing the ephemeral per-session
// scalars (k, gamma, the MtA cross terms, sigma, l) does not expose the
// long-term key share xi, so this is a safe trade once a session has
// already decided to abort.
type BlameReveal struct {
	K, Gamma, W, Sigma, L *big.Int
}

// BlameRevealMessage carries a BlameReveal broadcast during a phase-6
// or phase-7 consistency failure (phase-5's own reveal rides inside
// Round6BlameMessage since that is the first round in which a phase-5
// mismatch is detected).
type BlameRevealMessage struct {
	Reveal BlameReveal
}

// Round7Message broadcasts this party's final signature share si.
type Round7Message struct {
	Si *big.Int
}
