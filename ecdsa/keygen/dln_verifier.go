// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"errors"
	"math/big"
	"runtime"

	"github.com/go-tss/tss-core/crypto/dlnproof"
)

// dlnProofVerifier bounds the concurrency of the per-peer DLN proof
// checks in round1's Advance with a semaphore, so a large roster doesn't spawn
// one goroutine per peer per proof unchecked.
type dlnProofVerifier struct {
	semaphore chan struct{}
}

func newDlnProofVerifier(optionalConcurrency ...int) *dlnProofVerifier {
	var concurrency int
	if len(optionalConcurrency) > 0 {
		if len(optionalConcurrency) > 1 {
			panic(errors.New("newDlnProofVerifier: expected 0 or 1 item in optionalConcurrency"))
		}
		concurrency = optionalConcurrency[0]
	} else {
		concurrency = runtime.NumCPU()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &dlnProofVerifier{semaphore: make(chan struct{}, concurrency)}
}

func (dpv *dlnProofVerifier) verify(proof *dlnproof.Proof, h1, h2, n *big.Int, onDone func(bool)) {
	dpv.semaphore <- struct{}{}
	go func() {
		defer func() { <-dpv.semaphore }()
		if proof == nil {
			onDone(false)
			return
		}
		onDone(proof.Verify(h1, h2, n))
	}()
}
