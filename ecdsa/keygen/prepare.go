// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"context"
	"errors"
	"io"
	"math/big"
	"runtime"
	"time"

	"github.com/go-tss/tss-core/common"
	"github.com/go-tss/tss-core/crypto/dlnproof"
	"github.com/go-tss/tss-core/crypto/paillier"
)

const (
	// Using a modulus length of 2048 is recommended in the GG18 spec.
	paillierModulusLen = 2048
	// Two 1024-bit safe primes produce NTilde.
	safePrimeBitLen = 1024

	logProgressTickInterval = 8 * time.Second
)

// GeneratePreParams finds two safe primes and the Paillier secret this
// party needs before a keygen session can start. It is slow — callers
// on a time budget should run it out-of-band ahead of the session and
// pass the result into NewLocalParty.
func GeneratePreParams(ctx context.Context, rnd io.Reader, optionalConcurrency ...int) (*PreParams, error) {
	var concurrency int
	if len(optionalConcurrency) > 0 {
		if len(optionalConcurrency) > 1 {
			panic(errors.New("GeneratePreParams: expected 0 or 1 item in optionalConcurrency"))
		}
		concurrency = optionalConcurrency[0]
	} else {
		concurrency = runtime.NumCPU()
	}
	if concurrency /= 3; concurrency < 1 {
		concurrency = 1
	}

	paiCh := make(chan *paillier.PrivateKey, 1)
	sgpCh := make(chan []*common.GermainSafePrime, 1)

	go func(ch chan<- *paillier.PrivateKey) {
		common.Logger.Debug("generating the Paillier modulus, please wait...")
		start := time.Now()
		sk, _, err := paillier.GenerateKeyPair(ctx, paillierModulusLen, concurrency*2)
		if err != nil {
			ch <- nil
			return
		}
		common.Logger.Debugf("paillier modulus generated, took %s", time.Since(start))
		ch <- sk
	}(paiCh)

	go func(ch chan<- []*common.GermainSafePrime) {
		common.Logger.Debug("generating the safe primes for the signing proofs, please wait...")
		start := time.Now()
		sgps, err := common.GetRandomSafePrimesConcurrent(ctx, safePrimeBitLen, 2, concurrency)
		if err != nil {
			ch <- nil
			return
		}
		common.Logger.Debugf("safe primes generated, took %s", time.Since(start))
		ch <- sgps
	}(sgpCh)

	ticker := time.NewTicker(logProgressTickInterval)
	defer ticker.Stop()

	var sgps []*common.GermainSafePrime
	var paiSK *paillier.PrivateKey
consumer:
	for {
		select {
		case <-ticker.C:
			common.Logger.Debug("still generating pre-params...")
		case sgps = <-sgpCh:
			if sgps == nil || sgps[0] == nil || sgps[1] == nil ||
				!sgps[0].Prime().ProbablyPrime(30) || !sgps[1].Prime().ProbablyPrime(30) ||
				!sgps[0].SafePrime().ProbablyPrime(30) || !sgps[1].SafePrime().ProbablyPrime(30) {
				return nil, errors.New("timeout or error while generating the safe primes")
			}
			if paiSK != nil {
				break consumer
			}
		case paiSK = <-paiCh:
			if paiSK == nil {
				return nil, errors.New("timeout or error while generating the Paillier secret key")
			}
			if sgps != nil {
				break consumer
			}
		}
	}

	P, Q := sgps[0].SafePrime(), sgps[1].SafePrime()
	NTildei := new(big.Int).Mul(P, Q)
	modNTildei := common.ModInt(NTildei)

	p, q := sgps[0].Prime(), sgps[1].Prime()
	modPQ := common.ModInt(new(big.Int).Mul(p, q))
	f1 := common.GetRandomPositiveRelativelyPrimeInt(rnd, NTildei)
	alpha := common.GetRandomPositiveRelativelyPrimeInt(rnd, NTildei)
	beta := modPQ.ModInverse(alpha)
	h1i := modNTildei.Mul(f1, f1)
	h2i := modNTildei.Exp(h1i, alpha)

	dlnProof1 := dlnproof.NewDLNProof(h1i, h2i, alpha, p, q, NTildei, rnd)
	dlnProof2 := dlnproof.NewDLNProof(h2i, h1i, beta, p, q, NTildei, rnd)

	return &PreParams{
		PaillierSK: paiSK,
		NTildei:    NTildei,
		H1i:        h1i,
		H2i:        h2i,
		Alpha:      alpha,
		Beta:       beta,
		P:          p,
		Q:          q,
		DlnProof1:  dlnProof1,
		DlnProof2:  dlnProof2,
	}, nil
}
