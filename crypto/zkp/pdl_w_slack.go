// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package zkp

import (
	"errors"
	"io"
	"math/big"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/paillier"
)

// PDLwSlackStatement is the public side of a proof that CipherText
// encrypts the discrete log of Q = X*G under PK, relative to the
// prover's own Pedersen modulus (NTilde, H1, H2). The GG20 sign
// chain uses this in place of GG18's MtA range check to bind the R'_i
// a party reveals at phase-5 to the k_i it committed to back in R1.
type PDLwSlackStatement struct {
	CipherText     *big.Int
	PK             *paillier.PublicKey
	Q, G           *crypto.ECPoint
	H1, H2, NTilde *big.Int
}

// PDLwSlackWitness is the prover's secret: the encrypted scalar X and
// the Paillier randomness R used to produce CipherText.
type PDLwSlackWitness struct {
	X, R *big.Int
	SK   *paillier.PrivateKey
}

// PDLwSlackProof is the non-interactive proof transcript.
type PDLwSlackProof struct {
	Z  *big.Int
	U1 *crypto.ECPoint
	U2, U3,
	S1, S2, S3 *big.Int
}

var pdlOne = big.NewInt(1)

// NewPDLwSlackProof proves the statement for the given witness. ec_N is
// the order of the curve group Q and G live in.
func NewPDLwSlackProof(rand io.Reader, ec_N *big.Int, wit PDLwSlackWitness, st PDLwSlackStatement) (*PDLwSlackProof, error) {
	if st.CipherText == nil || st.PK == nil || st.Q == nil || st.G == nil || wit.X == nil || wit.R == nil {
		return nil, errors.New("NewPDLwSlackProof received nil value(s)")
	}
	q := ec_N
	q3 := new(big.Int).Mul(q, q)
	q3.Mul(q3, q)
	qNTilde := new(big.Int).Mul(q, st.NTilde)
	q3NTilde := new(big.Int).Mul(q3, st.NTilde)

	alpha := common.GetRandomPositiveInt(rand, q3)
	nSubOne := new(big.Int).Sub(st.PK.N, pdlOne)
	beta := new(big.Int).Add(pdlOne, common.GetRandomPositiveInt(rand, nSubOne))
	rho := common.GetRandomPositiveInt(rand, qNTilde)
	gamma := common.GetRandomPositiveInt(rand, q3NTilde)

	z := pdlCommitmentUnknownOrder(st.H1, st.H2, st.NTilde, wit.X, rho)
	u1 := st.G.ScalarMult(alpha)
	nOne := new(big.Int).Add(st.PK.N, pdlOne)
	u2 := pdlCommitmentUnknownOrder(nOne, beta, st.PK.NSquare(), alpha, st.PK.N)
	u3 := pdlCommitmentUnknownOrder(st.H1, st.H2, st.NTilde, alpha, gamma)

	e := common.SHA512_256i(st.G.X(), st.G.Y(), st.Q.X(), st.Q.Y(), st.CipherText, z, u1.X(), u1.Y(), u2, u3)
	s1 := new(big.Int).Mul(e, wit.X)
	s3 := new(big.Int).Mul(e, rho)
	s1.Add(s1, alpha)
	s2 := pdlCommitmentUnknownOrder(wit.R, beta, st.PK.N, e, pdlOne)
	s3.Add(s3, gamma)

	return &PDLwSlackProof{Z: z, U1: u1, U2: u2, U3: u3, S1: s1, S2: s2, S3: s3}, nil
}

// Verify checks the proof against the statement. q is the group order
// Q, G live in (the secp256k1 curve order at every known caller).
func (pf *PDLwSlackProof) Verify(q *big.Int, st PDLwSlackStatement) bool {
	if pf == nil || pf.Z == nil || pf.U1 == nil || pf.U2 == nil || pf.U3 == nil || pf.S1 == nil || pf.S2 == nil || pf.S3 == nil {
		return false
	}

	e := common.SHA512_256i(st.G.X(), st.G.Y(), st.Q.X(), st.Q.Y(), st.CipherText, pf.Z, pf.U1.X(), pf.U1.Y(), pf.U2, pf.U3)
	gS1 := st.G.ScalarMult(pf.S1)
	eNeg := new(big.Int).Sub(q, e)
	yMinusE := st.Q.ScalarMult(eNeg)
	u1Test, err := gS1.Add(yMinusE)
	if err != nil {
		return false
	}

	nOne, eInv := new(big.Int).Add(st.PK.N, pdlOne), new(big.Int).Neg(e)
	u2TestTmp := pdlCommitmentUnknownOrder(nOne, pf.S2, st.PK.NSquare(), pf.S1, st.PK.N)
	u2Test := pdlCommitmentUnknownOrder(u2TestTmp, st.CipherText, st.PK.NSquare(), pdlOne, eInv)
	u3TestTmp := pdlCommitmentUnknownOrder(st.H1, st.H2, st.NTilde, pf.S1, pf.S3)
	u3Test := pdlCommitmentUnknownOrder(u3TestTmp, pf.Z, st.NTilde, pdlOne, eInv)

	return pf.U1.Equals(u1Test) &&
		pf.U2.Cmp(u2Test) == 0 &&
		pf.U3.Cmp(u3Test) == 0
}

// pdlCommitmentUnknownOrder computes h1^x * h2^r mod NTilde, the
// commitment scheme used throughout range/PDL proofs whose modulus has
// unknown factorization to the verifier.
func pdlCommitmentUnknownOrder(h1, h2, NTilde, x, r *big.Int) *big.Int {
	modNTilde := common.ModInt(NTilde)
	h1X := modNTilde.Exp(h1, x)
	h2R := modNTilde.Exp(h2, r)
	return modNTilde.Mul(h1X, h2R)
}
