// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package signing

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/gob"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-tss/tss-core/ecdsa/keygen"
	"github.com/go-tss/tss-core/testutils"
	"github.com/go-tss/tss-core/tss"
)

// keygenParse decodes a keygen-package wire message from this (separate)
// package. gob's type registry is process-global, so keygen's init()
// (run via the import above) is enough to make this work without
// reaching into keygen's unexported parse/decodeContent.
func keygenParse(msg tss.Message) (tss.ParsedMessage, error) {
	var content interface{}
	if err := gob.NewDecoder(bytes.NewReader(msg.Payload)).Decode(&content); err != nil {
		return tss.ParsedMessage{}, err
	}
	return tss.ParsedMessage{Message: msg, Content: content}, nil
}

const testParticipants = 3

func generateTestPartyIDs(n int) tss.SortedPartyIDs {
	ids := make([]*tss.PartyID, n)
	for i := 0; i < n; i++ {
		key := big.NewInt(int64(2000 + i))
		ids[i] = tss.NewPartyID(key.Bytes(), "")
	}
	return tss.SortPartyIDs(ids)
}

func generateTestPreParams(t *testing.T, n int) []*keygen.PreParams {
	out := make([]*keygen.PreParams, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pp, err := keygen.GeneratePreParams(context.Background(), rand.Reader)
			assert.NoError(t, err)
			out[i] = pp
		}(i)
	}
	wg.Wait()
	return out
}

// runKeygen drives a full GG18 keygen round-trip over ids and returns
// every party's Saved Key Bundle, ready to hand to a signing session.
func runKeygen(t *testing.T, ids tss.SortedPartyIDs, threshold int) []keygen.SaveData {
	p2pCtx := tss.NewPeerContext(ids)
	preParams := generateTestPreParams(t, len(ids))

	parties := make([]*keygen.LocalParty, len(ids))
	rounds := make([]tss.Round, len(ids))
	var outs [][]tss.Message

	for i := range ids {
		params := tss.NewParameters(tss.S256(), p2pCtx, ids[i], len(ids), threshold, nil)
		parties[i] = keygen.NewLocalParty(params, nil, nil, preParams[i])
		r1, out, err := parties[i].Start()
		assert.Nil(t, err)
		rounds[i] = r1
		outs = append(outs, out)
	}

	for !testutils.AllTerminal(rounds) {
		batches, err := testutils.Route(ids, outs, keygenParse)
		assert.NoError(t, err)
		outs = nil
		for i := range ids {
			if tss.IsTerminal(rounds[i]) {
				continue
			}
			next, out, err := rounds[i].Advance(batches[i])
			assert.Nil(t, err)
			rounds[i] = next
			outs = append(outs, out)
		}
	}

	results := make([]keygen.SaveData, len(ids))
	for i := range ids {
		finished, ok := rounds[i].(*keygen.Finished)
		assert.True(t, ok)
		results[i] = finished.Result()
	}
	return results
}

func deliverSign(t *testing.T, ids tss.SortedPartyIDs, outs [][]tss.Message) []tss.InboundBatch {
	batches, err := testutils.Route(ids, outs, parse)
	assert.NoError(t, err)
	return batches
}

// runSign drives a full GG18 sign session to completion and returns
// each party's final round (either *Finished or, if err is set for
// that index, the round at which it aborted) alongside any errors.
func runSign(t *testing.T, ids tss.SortedPartyIDs, saves []keygen.SaveData, m *big.Int) ([]tss.Round, []*tss.Error) {
	p2pCtx := tss.NewPeerContext(ids)
	parties := make([]*LocalParty, len(ids))
	rounds := make([]tss.Round, len(ids))
	errs := make([]*tss.Error, len(ids))
	var outs [][]tss.Message

	for i := range ids {
		params := tss.NewParameters(tss.S256(), p2pCtx, ids[i], len(ids), len(ids)-1, nil)
		parties[i] = NewLocalParty(params, saves[i], m, nil, nil)
		r1, out, err := parties[i].Start()
		if err != nil {
			errs[i] = err
			continue
		}
		rounds[i] = r1
		outs = append(outs, out)
	}

	for {
		batches := deliverSign(t, ids, outs)
		outs = nil
		progressed := false
		for i := range ids {
			if errs[i] != nil || rounds[i] == nil || tss.IsTerminal(rounds[i]) {
				continue
			}
			next, out, err := rounds[i].Advance(batches[i])
			if err != nil {
				errs[i] = err
				continue
			}
			rounds[i] = next
			outs = append(outs, out)
			if !tss.IsTerminal(next) {
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return rounds, errs
}

func TestGG18SignEndToEnd(t *testing.T) {
	ids := generateTestPartyIDs(testParticipants)
	saves := runKeygen(t, ids, testParticipants-1)

	m := big.NewInt(1234)
	rounds, errs := runSign(t, ids, saves, m)

	sigs := make([]Signature, len(ids))
	for i := range ids {
		assert.Nil(t, errs[i])
		finished, ok := rounds[i].(*Finished)
		assert.True(t, ok)
		sigs[i] = finished.Result()
	}

	pk := &ecdsa.PublicKey{Curve: tss.S256(), X: saves[0].ECDSAPub.X(), Y: saves[0].ECDSAPub.Y()}
	for i := range ids {
		assert.True(t, ecdsa.Verify(pk, m.Bytes(), sigs[i].R, sigs[i].S))
		// every party agrees on the same (r, s)
		assert.Zero(t, sigs[0].R.Cmp(sigs[i].R))
		assert.Zero(t, sigs[0].S.Cmp(sigs[i].S))
	}
}

func TestGG18SignDuplicateSignerIndex(t *testing.T) {
	ids := generateTestPartyIDs(testParticipants)
	saves := runKeygen(t, ids, testParticipants-1)

	// clone party 0's index onto party 1 to simulate a misconfigured
	// caller handing out the same signer index twice.
	dup := append(tss.SortedPartyIDs{}, ids...)
	dup[1] = ids[0]

	p2pCtx := tss.NewPeerContext(dup)
	params := tss.NewParameters(tss.S256(), p2pCtx, dup[0], len(dup), len(dup)-1, nil)
	party := NewLocalParty(params, saves[0], big.NewInt(1234), nil, nil)

	_, _, err := party.Start()
	assert.NotNil(t, err)
	assert.Equal(t, tss.KindInvalidSession, err.Kind)
}
