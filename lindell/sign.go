// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package lindell

import (
	"crypto/ecdsa"
	"errors"
	"io"
	"math/big"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/tss"
)

// PartialSig is party two's contribution to a signature: a Paillier
// ciphertext that, once party one decrypts and scales it by k1^-1,
// yields s. Party two never learns k1, x1, or s itself.
type PartialSig struct {
	C3 *big.Int
	R  *big.Int
}

// PartialSigCompute is party two's half of signing. It folds x2, k2,
// and the message into party one's Paillier-encrypted x1 purely via the
// cryptosystem's additive homomorphism (HomoMult then HomoAdd), and
// masks the result with a random multiple of q (rho*q) so that whatever
// party one decrypts reveals nothing about k2 or m beyond what s itself
// already leaks — the rho*q term vanishes once party one reduces mod q.
func PartialSigCompute(rand io.Reader, pub *PaillierPublic, party2 *Party2Private, ephKeyPair2 *ECKeyPair, R1 *crypto.ECPoint, message *big.Int) (*PartialSig, error) {
	q := tss.EC().Params().N
	modQ := common.ModInt(q)

	R := R1.ScalarMult(ephKeyPair2.SecretShare) // R = R1^k2 = g^(k1*k2)
	r := new(big.Int).Mod(R.X(), q)

	k2Inv := new(big.Int).ModInverse(ephKeyPair2.SecretShare, q)
	if k2Inv == nil {
		return nil, errors.New("lindell: ephemeral share k2 has no inverse mod q")
	}

	// rk2x2 = k2^-1 * r * x2 mod q, the coefficient HomoMult raises
	// Enc(x1) to; multiplying the ciphertext's plaintext by this value
	// homomorphically computes Enc(k2^-1*r*x1*x2).
	rk2x2 := modQ.Mul(modQ.Mul(k2Inv, r), party2.X2)
	c1, err := pub.PK.HomoMult(rk2x2, pub.EncryptedShare)
	if err != nil {
		return nil, err
	}

	rho := common.GetRandomPositiveInt(rand, q)
	k2InvM := modQ.Mul(k2Inv, message)
	masked := new(big.Int).Add(new(big.Int).Mul(rho, q), k2InvM)
	c2, err := pub.PK.Encrypt(rand, masked)
	if err != nil {
		return nil, err
	}

	c3, err := pub.PK.HomoAdd(c1, c2)
	if err != nil {
		return nil, err
	}
	return &PartialSig{C3: c3, R: r}, nil
}

// SignatureCompute is party one's half of signing: decrypt party two's
// partial ciphertext and scale by k1^-1 mod q to recover s. The rho*q
// blinding term party two added vanishes under this final mod q
// reduction, leaving exactly s = k^-1*(m + r*x1*x2) where k = k1*k2 and
// x1*x2 is the joint private key neither party alone ever holds.
func SignatureCompute(party1 *Party1Private, partialSig *PartialSig, ephKeyPair1 *ECKeyPair, R2 *crypto.ECPoint, message *big.Int) (*Signature, error) {
	q := tss.EC().Params().N

	R := R2.ScalarMult(ephKeyPair1.SecretShare) // R = R2^k1 = g^(k1*k2), same point party two derived
	r := new(big.Int).Mod(R.X(), q)
	if r.Cmp(partialSig.R) != 0 {
		return nil, errors.New("lindell: party one and party two disagree on R.x")
	}

	sTag, err := party1.PaillierSK.Decrypt(partialSig.C3)
	if err != nil {
		return nil, err
	}
	k1Inv := new(big.Int).ModInverse(ephKeyPair1.SecretShare, q)
	if k1Inv == nil {
		return nil, errors.New("lindell: ephemeral share k1 has no inverse mod q")
	}
	s := common.ModInt(q).Mul(k1Inv, sTag)

	halfQ := new(big.Int).Rsh(q, 1)
	if s.Cmp(halfQ) > 0 {
		s = new(big.Int).Sub(q, s)
	}
	return &Signature{M: message, R: r, S: s}, nil
}

// Verify checks a completed signature against the joint public key.
func Verify(sig *Signature, pubkey *crypto.ECPoint, message *big.Int) error {
	pk := &ecdsa.PublicKey{Curve: tss.EC(), X: pubkey.X(), Y: pubkey.Y()}
	if !ecdsa.Verify(pk, message.Bytes(), sig.R, sig.S) {
		return errors.New("lindell: signature failed to verify against the joint public key")
	}
	return nil
}
