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

// Party1FirstMessage is party one's keygen opening move: a commitment to
// Y1 = g^x1, sent before party two reveals anything so party one cannot
// bias its share in response to party two's public share (the standard
// commit-then-reveal defense against two-party ECDSA's rushing attack).
type Party1FirstMessage struct {
	Commitment *big.Int
}

// Party1KeyGenWitness is party one's private bookkeeping between its
// first and second keygen message: the committed keypair plus the
// blinding factor the commitment used, needed later to decommit.
type Party1KeyGenWitness struct {
	KeyPair     ECKeyPair
	BlindFactor *big.Int
}

// Party1CreateCommitments generates party one's multiplicative share x1 and
// commits to Y1 = g^x1.
func Party1CreateCommitments(rand io.Reader) (*Party1FirstMessage, *Party1KeyGenWitness, error) {
	x1 := common.GetRandomPositiveInt(rand, tss.EC().Params().N)
	return party1CreateCommitmentsWithShare(rand, x1)
}

func party1CreateCommitmentsWithShare(rand io.Reader, x1 *big.Int) (*Party1FirstMessage, *Party1KeyGenWitness, error) {
	Y1 := crypto.ScalarBaseMult(tss.EC(), x1)
	cmt := commitments.NewHashCommitment(rand, Y1.X(), Y1.Y())
	witness := &Party1KeyGenWitness{
		KeyPair:     ECKeyPair{SecretShare: x1, PublicShare: Y1},
		BlindFactor: cmt.D[0],
	}
	return &Party1FirstMessage{Commitment: cmt.C}, witness, nil
}

// Party2FirstMessage is party two's only keygen message: party two has
// nothing to hide its share from (party one already published a
// commitment it cannot retract), so it reveals Y2 = g^x2 directly
// alongside a proof of knowledge of x2.
type Party2FirstMessage struct {
	Y2    *crypto.ECPoint
	Proof *schnorr.ZKProof
}

// Party2CreateFirstMessage generates party two's multiplicative share x2.
func Party2CreateFirstMessage(rand io.Reader, session []byte) (*Party2FirstMessage, *ECKeyPair, error) {
	x2 := common.GetRandomPositiveInt(rand, tss.EC().Params().N)
	return party2CreateFirstMessageWithShare(rand, session, x2)
}

func party2CreateFirstMessageWithShare(rand io.Reader, session []byte, x2 *big.Int) (*Party2FirstMessage, *ECKeyPair, error) {
	Y2 := crypto.ScalarBaseMult(tss.EC(), x2)
	proof, err := schnorr.NewZKProof(session, x2, Y2, rand)
	if err != nil {
		return nil, nil, err
	}
	return &Party2FirstMessage{Y2: Y2, Proof: proof}, &ECKeyPair{SecretShare: x2, PublicShare: Y2}, nil
}

// Party1SecondMessage decommits Y1 and proves knowledge of x1, once
// party two's proof of knowledge of x2 has checked out.
type Party1SecondMessage struct {
	Y1          *crypto.ECPoint
	Proof       *schnorr.ZKProof
	BlindFactor *big.Int
}

// Party1VerifyAndDecommit checks party two's DLog proof and, if it
// holds, opens party one's earlier commitment.
func Party1VerifyAndDecommit(rand io.Reader, session []byte, witness *Party1KeyGenWitness, party2Msg *Party2FirstMessage) (*Party1SecondMessage, error) {
	if !party2Msg.Proof.Verify(session, party2Msg.Y2) {
		return nil, errors.New("lindell: party two's keygen DLog proof failed to verify")
	}
	proof, err := schnorr.NewZKProof(session, witness.KeyPair.SecretShare, witness.KeyPair.PublicShare, rand)
	if err != nil {
		return nil, err
	}
	return &Party1SecondMessage{
		Y1:          witness.KeyPair.PublicShare,
		Proof:       proof,
		BlindFactor: witness.BlindFactor,
	}, nil
}

// Party2VerifyCommitmentsAndDLogProof checks that party one's second
// message decommits its first message, and that the enclosed proof of
// knowledge of x1 verifies against the decommitted Y1.
func Party2VerifyCommitmentsAndDLogProof(session []byte, party1First *Party1FirstMessage, party1Second *Party1SecondMessage) error {
	cmt := &commitments.HashCommitDecommit{
		C: party1First.Commitment,
		D: []*big.Int{party1Second.BlindFactor, party1Second.Y1.X(), party1Second.Y1.Y()},
	}
	if !cmt.Verify() {
		return errors.New("lindell: party one's keygen commitment did not open to its second message")
	}
	if !party1Second.Proof.Verify(session, party1Second.Y1) {
		return errors.New("lindell: party one's keygen DLog proof failed to verify")
	}
	return nil
}

// ComputePubkey derives the joint public key Y = Y2^x1 = g^(x1*x2) from
// party one's private share and party two's public share.
func ComputePubkey(party1 *Party1Private, y2 *crypto.ECPoint) *crypto.ECPoint {
	return y2.ScalarMult(party1.X1)
}
