// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package lindell implements the Lindell (2017) two-party ECDSA protocol:
// a fixed pair of parties, party one and party two, hold a multiplicative
// share x1, x2 of a private key x = x1*x2 behind a joint public key
// Y = g^x. Unlike the n-party GG18/GG20 chains elsewhere in this module,
// the two roles are asymmetric (party one alone holds the Paillier secret
// key; party two alone holds the Paillier-encrypted share of x1) and the
// protocol is expressed as a direct sequence of message constructors
// rather than a tss.Round state machine, since there is no broadcast
// topology to drive: every message in this protocol has exactly one
// sender and one receiver.
package lindell

import (
	"math/big"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/paillier"
	"github.com/go-tss/tss-core/ecdsa/keygen"
)

// ECKeyPair is a party's share of a multiplicative or ephemeral EC keypair:
// a secret scalar and its public point g^secret.
type ECKeyPair struct {
	SecretShare *big.Int
	PublicShare *crypto.ECPoint
}

// Party1Private is everything party one needs to take part in signing
// once keygen has finished: its share x1, the Paillier keypair it
// generated (and alone holds the secret half of), and the Pedersen
// pre-parameters it proved correct during keygen.
type Party1Private struct {
	X1         *big.Int
	PaillierSK *paillier.PrivateKey
	PreParams  *keygen.PreParams
}

// Party2Private is party two's share x2.
type Party2Private struct {
	X2 *big.Int
}

// PaillierKeyPair is the output of party one's post-keygen Paillier setup:
// a fresh Paillier keypair together with an encryption of x1 under it.
type PaillierKeyPair struct {
	PK             *paillier.PublicKey
	SK             *paillier.PrivateKey
	EncryptedShare *big.Int
	Randomness     *big.Int
	PreParams      *keygen.PreParams
}

// PaillierPublic is what party two retains after keygen: party one's
// Paillier public key and its encryption of x1. Party two never learns
// x1 itself, only this ciphertext.
type PaillierPublic struct {
	PK             *paillier.PublicKey
	EncryptedShare *big.Int
}

// Signature is the completed two-party ECDSA signature.
type Signature struct {
	M    *big.Int
	R, S *big.Int
}
