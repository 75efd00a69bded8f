// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package lindell

import (
	"context"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-tss/tss-core/ecdsa/keygen"
)

var testSession = []byte("lindell-test-session")

func runKeyGen(t *testing.T) (*Party1Private, *Party2Private, *ECKeyPair /* party2 full keypair */, *PaillierKeyPair) {
	party1First, party1Witness, err := Party1CreateCommitments(rand.Reader)
	assert.NoError(t, err)

	party2First, party2KeyPair, err := Party2CreateFirstMessage(rand.Reader, testSession)
	assert.NoError(t, err)

	party1Second, err := Party1VerifyAndDecommit(rand.Reader, testSession, party1Witness, party2First)
	assert.NoError(t, err)

	err = Party2VerifyCommitmentsAndDLogProof(testSession, party1First, party1Second)
	assert.NoError(t, err)

	preParams, err := keygen.GeneratePreParams(context.Background(), rand.Reader)
	assert.NoError(t, err)

	paillierKP, err := GeneratePaillierKeyPair(rand.Reader, party1Witness.KeyPair, preParams)
	assert.NoError(t, err)

	correctKeyProof := GenerateCorrectKeyProof(paillierKP, party1Witness.KeyPair.PublicShare)
	pub := &PaillierPublic{PK: paillierKP.PK, EncryptedShare: paillierKP.EncryptedShare}
	err = VerifyCorrectKeyProof(correctKeyProof, pub, party1Witness.KeyPair.PublicShare)
	assert.NoError(t, err)

	st, pdlProof, err := GeneratePDLProof(rand.Reader, Party1SetPrivateKey(party1Witness.KeyPair, paillierKP), paillierKP, party1Witness.KeyPair.PublicShare)
	assert.NoError(t, err)
	err = VerifyPDLProof(preParams.DlnProof1, st, pdlProof, pub, party1Second.Y1)
	assert.NoError(t, err)

	party1Private := Party1SetPrivateKey(party1Witness.KeyPair, paillierKP)
	party2Private := Party2SetPrivateKey(*party2KeyPair)

	return party1Private, party2Private, party2KeyPair, paillierKP
}

func TestFullKeyGen(t *testing.T) {
	party1Private, party2Private, party2KeyPair, paillierKP := runKeyGen(t)
	assert.NotNil(t, party1Private.X1)
	assert.NotNil(t, party2Private.X2)
	assert.NotNil(t, paillierKP.EncryptedShare)

	Y := ComputePubkey(party1Private, party2KeyPair.PublicShare)
	assert.True(t, Y.IsOnCurve())
}

func TestTwoPartySignMessage1234(t *testing.T) {
	party1Private, party2Private, party2KeyPair, paillierKP := runKeyGen(t)
	Y := ComputePubkey(party1Private, party2KeyPair.PublicShare)

	party2EphFirst, party2EphWitness, err := Party2EphCreateCommitments(rand.Reader)
	assert.NoError(t, err)

	party1EphFirst, party1EphKeyPair, err := Party1EphCreateFirstMessage(rand.Reader, testSession)
	assert.NoError(t, err)

	party2EphSecond, err := Party2EphVerifyAndDecommit(rand.Reader, testSession, party2EphWitness, party1EphFirst)
	assert.NoError(t, err)

	err = Party1EphVerifyCommitmentsAndDLogProof(testSession, party2EphFirst, party2EphSecond)
	assert.NoError(t, err)

	message := big.NewInt(1234)

	pub := &PaillierPublic{PK: paillierKP.PK, EncryptedShare: paillierKP.EncryptedShare}
	partialSig, err := PartialSigCompute(rand.Reader, pub, party2Private, &party2EphWitness.KeyPair, party1EphFirst.R1, message)
	assert.NoError(t, err)

	sig, err := SignatureCompute(party1Private, partialSig, party1EphKeyPair, party2EphSecond.R2, message)
	assert.NoError(t, err)

	err = Verify(sig, Y, message)
	assert.NoError(t, err)
}
