// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package lindell

import (
	"errors"
	"io"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/dlnproof"
	"github.com/go-tss/tss-core/crypto/paillier"
	"github.com/go-tss/tss-core/crypto/zkp"
	"github.com/go-tss/tss-core/ecdsa/keygen"
	"github.com/go-tss/tss-core/tss"
)

// GeneratePaillierKeyPair takes party one's freshly generated pre-params
// (Paillier keypair plus the Pedersen NTilde/H1/H2 this module's keygen
// package already knows how to produce) and encrypts x1 under the
// Paillier public key, once, under a single fixed randomness — unlike
// the per-peer MtA ciphertexts the n-party signing chains generate, this
// same ciphertext is reused for every future signature party one and
// two produce together.
func GeneratePaillierKeyPair(rand io.Reader, party1KeyPair ECKeyPair, preParams *keygen.PreParams) (*PaillierKeyPair, error) {
	c, r, err := preParams.PaillierSK.PublicKey.EncryptAndReturnRandomness(rand, party1KeyPair.SecretShare)
	if err != nil {
		return nil, err
	}
	return &PaillierKeyPair{
		PK:             &preParams.PaillierSK.PublicKey,
		SK:             preParams.PaillierSK,
		EncryptedShare: c,
		Randomness:     r,
		PreParams:      preParams,
	}, nil
}

// Party1SetPrivateKey assembles party one's long-lived signing material
// once keygen and the Paillier setup above have both finished.
func Party1SetPrivateKey(keyPair ECKeyPair, paillierKP *PaillierKeyPair) *Party1Private {
	return &Party1Private{X1: keyPair.SecretShare, PaillierSK: paillierKP.SK, PreParams: paillierKP.PreParams}
}

// Party2SetPrivateKey assembles party two's signing material: just x2.
func Party2SetPrivateKey(keyPair ECKeyPair) *Party2Private {
	return &Party2Private{X2: keyPair.SecretShare}
}

// GenerateCorrectKeyProof proves that party one's Paillier modulus was
// formed correctly (as a product of two safe primes), without revealing
// its factorization. Y1 binds the proof's Fiat-Shamir challenge to this
// specific keygen session so it cannot be replayed against a different
// Paillier key.
func GenerateCorrectKeyProof(paillierKP *PaillierKeyPair, Y1 *crypto.ECPoint) paillier.Proof {
	return paillierKP.SK.Proof(Y1.X(), Y1)
}

// VerifyCorrectKeyProof checks the proof produced by GenerateCorrectKeyProof.
func VerifyCorrectKeyProof(proof paillier.Proof, pub *PaillierPublic, Y1 *crypto.ECPoint) error {
	ok, err := proof.Verify(pub.PK.N, Y1.X(), Y1)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("lindell: party one's Paillier correct-key proof failed to verify")
	}
	return nil
}

// GeneratePDLProof proves that PaillierKeyPair.EncryptedShare really
// does encrypt the discrete log of Y1, using the already-ported
// PDL-with-slack proof and party one's own Pedersen pre-parameters as
// the proof's composite modulus. The accompanying DLN proof (generated
// once, during pre-param setup) lets party two confirm H1/H2/NTilde
// themselves are well-formed before trusting the PDL proof that uses them.
func GeneratePDLProof(rand io.Reader, party1 *Party1Private, paillierKP *PaillierKeyPair, Y1 *crypto.ECPoint) (*zkp.PDLwSlackStatement, *zkp.PDLwSlackProof, error) {
	ec := tss.EC()
	g := crypto.NewECPointNoCurveCheck(ec, ec.Params().Gx, ec.Params().Gy)
	st := zkp.PDLwSlackStatement{
		CipherText: paillierKP.EncryptedShare,
		PK:         paillierKP.PK,
		Q:          Y1,
		G:          g,
		H1:         paillierKP.PreParams.H1i,
		H2:         paillierKP.PreParams.H2i,
		NTilde:     paillierKP.PreParams.NTildei,
	}
	wit := zkp.PDLwSlackWitness{X: party1.X1, R: paillierKP.Randomness, SK: paillierKP.SK}
	proof, err := zkp.NewPDLwSlackProof(rand, ec.Params().N, wit, st)
	if err != nil {
		return nil, nil, err
	}
	return &st, proof, nil
}

// VerifyPDLProof checks a PDL-with-slack proof and its supporting DLN
// proof, and confirms the statement actually refers to the ciphertext
// and public share party two already holds from keygen (otherwise party
// one could prove a fact about some other, unrelated ciphertext).
func VerifyPDLProof(dlnProof *dlnproof.Proof, st *zkp.PDLwSlackStatement, proof *zkp.PDLwSlackProof, pub *PaillierPublic, Y1 *crypto.ECPoint) error {
	if !dlnProof.Verify(st.H1, st.H2, st.NTilde) {
		return errors.New("lindell: party one's Pedersen DLN proof failed to verify")
	}
	if !st.Q.Equals(Y1) {
		return errors.New("lindell: PDL statement's public share does not match party one's decommitted Y1")
	}
	if st.CipherText.Cmp(pub.EncryptedShare) != 0 {
		return errors.New("lindell: PDL statement's ciphertext does not match the encrypted share from keygen")
	}
	if !proof.Verify(tss.EC().Params().N, *st) {
		return errors.New("lindell: PDL-with-slack proof failed to verify")
	}
	return nil
}
