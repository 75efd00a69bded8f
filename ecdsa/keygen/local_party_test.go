// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/crypto/vss"
	"github.com/go-tss/tss-core/tss"
)

const (
	testParticipants = 3
	testThreshold     = 1
)

func generateTestPartyIDs(n int) tss.SortedPartyIDs {
	ids := make([]*tss.PartyID, n)
	for i := 0; i < n; i++ {
		key := big.NewInt(int64(1000 + i))
		ids[i] = tss.NewPartyID(key.Bytes(), "")
	}
	return tss.SortPartyIDs(ids)
}

func generateTestPreParams(t *testing.T, n int) []*PreParams {
	out := make([]*PreParams, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pp, err := GeneratePreParams(context.Background(), rand.Reader)
			assert.NoError(t, err)
			out[i] = pp
		}(i)
	}
	wg.Wait()
	return out
}

// deliver routes every round's outgoing batch into the per-recipient
// InboundBatch each party will advance with next.
func deliver(t *testing.T, ids tss.SortedPartyIDs, outs [][]tss.Message) []tss.InboundBatch {
	batches := make([]tss.InboundBatch, len(ids))
	for _, out := range outs {
		for _, msg := range out {
			pm, err := parse(msg)
			assert.NoError(t, err)
			if msg.IsBroadcast {
				for _, Pj := range ids {
					if Pj.Index == msg.From.Index {
						continue
					}
					batches[Pj.Index] = append(batches[Pj.Index], pm)
				}
			} else {
				batches[msg.To.Index] = append(batches[msg.To.Index], pm)
			}
		}
	}
	return batches
}

func TestKeygenEndToEnd(t *testing.T) {
	ids := generateTestPartyIDs(testParticipants)
	p2pCtx := tss.NewPeerContext(ids)
	preParams := generateTestPreParams(t, testParticipants)

	parties := make([]*LocalParty, testParticipants)
	rounds := make([]tss.Round, testParticipants)
	var startOuts [][]tss.Message

	for i := 0; i < testParticipants; i++ {
		params := tss.NewParameters(tss.S256(), p2pCtx, ids[i], testParticipants, testThreshold, nil)
		parties[i] = NewLocalParty(params, nil, nil, preParams[i])
		r1, out, err := parties[i].Start()
		assert.Nil(t, err)
		rounds[i] = r1
		startOuts = append(startOuts, out)
	}

	batches := deliver(t, ids, startOuts)
	var round2Outs [][]tss.Message
	for i := 0; i < testParticipants; i++ {
		next, out, err := rounds[i].Advance(batches[i])
		assert.Nil(t, err)
		rounds[i] = next
		round2Outs = append(round2Outs, out)
	}

	batches = deliver(t, ids, round2Outs)
	var round3Outs [][]tss.Message
	for i := 0; i < testParticipants; i++ {
		next, out, err := rounds[i].Advance(batches[i])
		assert.Nil(t, err)
		rounds[i] = next
		round3Outs = append(round3Outs, out)
	}

	batches = deliver(t, ids, round3Outs)
	results := make([]SaveData, testParticipants)
	for i := 0; i < testParticipants; i++ {
		next, out, err := rounds[i].Advance(batches[i])
		assert.Nil(t, err)
		assert.Empty(t, out)
		finished, ok := next.(*Finished)
		assert.True(t, ok)
		assert.True(t, tss.IsTerminal(finished))
		results[i] = finished.Result()
	}

	// every party settles on the same joint public key
	for i := 1; i < testParticipants; i++ {
		assert.True(t, results[0].ECDSAPub.Equals(results[i].ECDSAPub))
	}

	// each party's recorded BigXj matches xi*G
	for i := 0; i < testParticipants; i++ {
		gXi := crypto.ScalarBaseMult(tss.S256(), results[i].Xi)
		assert.True(t, gXi.Equals(results[i].BigXj[i]))
	}

	// reconstructing the joint secret from a quorum of shares recovers
	// the same public key every party agreed on
	shares := make(vss.Shares, testParticipants)
	for i := 0; i < testParticipants; i++ {
		shares[i] = &vss.Share{Threshold: testThreshold, ID: results[i].ShareID, Share: results[i].Xi}
	}
	secret, err := shares[:testThreshold+1].ReConstruct(tss.S256())
	assert.NoError(t, err)
	gSecret := crypto.ScalarBaseMult(tss.S256(), secret)
	assert.True(t, gSecret.Equals(results[0].ECDSAPub))
}
