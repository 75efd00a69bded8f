// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package lindell

import (
	"errors"
	"io"
	"math/big"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/commitments"
	"github.com/go-tss/tss-core/crypto/schnorr"
	"github.com/go-tss/tss-core/tss"
)

// Every signature needs a fresh ephemeral keypair per party. The
// commit-then-reveal role is swapped relative to the main keygen: here
// party two commits first and party one reveals directly, so that
// neither role is forced to always be the one biased against (a single
// long-lived keygen session could otherwise be followed by arbitrarily
// many signing sessions, all favoring the same party).

// Party2EphFirstMessage is party two's ephemeral commitment to R2 = g^k2.
type Party2EphFirstMessage struct {
	Commitment *big.Int
}

// Party2EphWitness is party two's bookkeeping between its ephemeral
// first and second messages.
type Party2EphWitness struct {
	KeyPair     ECKeyPair
	BlindFactor *big.Int
}

// Party2EphCreateCommitments generates party two's ephemeral secret k2
// and commits to R2 = g^k2.
func Party2EphCreateCommitments(rand io.Reader) (*Party2EphFirstMessage, *Party2EphWitness, error) {
	k2 := common.GetRandomPositiveInt(rand, tss.EC().Params().N)
	R2 := crypto.ScalarBaseMult(tss.EC(), k2)
	cmt := commitments.NewHashCommitment(rand, R2.X(), R2.Y())
	witness := &Party2EphWitness{
		KeyPair:     ECKeyPair{SecretShare: k2, PublicShare: R2},
		BlindFactor: cmt.D[0],
	}
	return &Party2EphFirstMessage{Commitment: cmt.C}, witness, nil
}

// Party1EphFirstMessage is party one's ephemeral message: R1 = g^k1,
// revealed directly alongside a proof of knowledge of k1.
type Party1EphFirstMessage struct {
	R1    *crypto.ECPoint
	Proof *schnorr.ZKProof
}

// Party1EphCreateFirstMessage generates party one's ephemeral secret k1.
func Party1EphCreateFirstMessage(rand io.Reader, session []byte) (*Party1EphFirstMessage, *ECKeyPair, error) {
	k1 := common.GetRandomPositiveInt(rand, tss.EC().Params().N)
	R1 := crypto.ScalarBaseMult(tss.EC(), k1)
	proof, err := schnorr.NewZKProof(session, k1, R1, rand)
	if err != nil {
		return nil, nil, err
	}
	return &Party1EphFirstMessage{R1: R1, Proof: proof}, &ECKeyPair{SecretShare: k1, PublicShare: R1}, nil
}

// Party2EphSecondMessage decommits R2 and proves knowledge of k2, once
// party one's ephemeral proof has checked out.
type Party2EphSecondMessage struct {
	R2          *crypto.ECPoint
	Proof       *schnorr.ZKProof
	BlindFactor *big.Int
}

// Party2EphVerifyAndDecommit checks party one's ephemeral DLog proof and
// decommits party two's own earlier commitment.
func Party2EphVerifyAndDecommit(rand io.Reader, session []byte, witness *Party2EphWitness, party1Msg *Party1EphFirstMessage) (*Party2EphSecondMessage, error) {
	if !party1Msg.Proof.Verify(session, party1Msg.R1) {
		return nil, errors.New("lindell: party one's ephemeral DLog proof failed to verify")
	}
	proof, err := schnorr.NewZKProof(session, witness.KeyPair.SecretShare, witness.KeyPair.PublicShare, rand)
	if err != nil {
		return nil, err
	}
	return &Party2EphSecondMessage{
		R2:          witness.KeyPair.PublicShare,
		Proof:       proof,
		BlindFactor: witness.BlindFactor,
	}, nil
}

// Party1EphVerifyCommitmentsAndDLogProof checks that party two's second
// ephemeral message decommits its first, and that the enclosed proof of
// knowledge of k2 verifies.
func Party1EphVerifyCommitmentsAndDLogProof(session []byte, party2First *Party2EphFirstMessage, party2Second *Party2EphSecondMessage) error {
	cmt := &commitments.HashCommitDecommit{
		C: party2First.Commitment,
		D: []*big.Int{party2Second.BlindFactor, party2Second.R2.X(), party2Second.R2.Y()},
	}
	if !cmt.Verify() {
		return errors.New("lindell: party two's ephemeral commitment did not open to its second message")
	}
	if !party2Second.Proof.Verify(session, party2Second.R2) {
		return errors.New("lindell: party two's ephemeral DLog proof failed to verify")
	}
	return nil
}
