// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package gg20sign

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

	"github.com/go-tss/tss-core/crypto"
	"github.com/go-tss/tss-core/ecdsa/keygen"
	"github.com/go-tss/tss-core/testutils"
	"github.com/go-tss/tss-core/tss"
)

const testParticipants = 3

func generateTestPartyIDs(n int) tss.SortedPartyIDs {
	ids := make([]*tss.PartyID, n)
	for i := 0; i < n; i++ {
		key := big.NewInt(int64(3000 + i))
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

// keygenParse mirrors keygen's own unexported parse: gob's type
// registry is process-global, so keygen's init() (run via the import
// above) is enough to decode its wire messages from this package too.
func keygenParse(msg tss.Message) (tss.ParsedMessage, error) {
	var content interface{}
	if err := gob.NewDecoder(bytes.NewReader(msg.Payload)).Decode(&content); err != nil {
		return tss.ParsedMessage{}, err
	}
	return tss.ParsedMessage{Message: msg, Content: content}, nil
}

// runKeygen drives a full GG18 keygen round-trip over ids (GG20 sign
// builds on the same distributed key generation; see DESIGN.md's "GG20
// keygen" entry) and returns every party's Saved Key Bundle.
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

func startSign(t *testing.T, ids tss.SortedPartyIDs, saves []keygen.SaveData, m *big.Int) ([]tss.Round, [][]tss.Message) {
	p2pCtx := tss.NewPeerContext(ids)
	rounds := make([]tss.Round, len(ids))
	var outs [][]tss.Message
	for i := range ids {
		params := tss.NewParameters(tss.S256(), p2pCtx, ids[i], len(ids), len(ids)-1, nil)
		party := NewLocalParty(params, saves[i], m, nil, nil)
		r1, out, err := party.Start()
		assert.Nil(t, err)
		rounds[i] = r1
		outs = append(outs, out)
	}
	return rounds, outs
}

// advanceAll advances every non-terminal, non-errored round one step
// using the given inbound batches, recording any *tss.Error in errs and
// returning the next round of outgoing messages.
func advanceAll(ids tss.SortedPartyIDs, rounds []tss.Round, errs []*tss.Error, batches []tss.InboundBatch) (bool, [][]tss.Message) {
	progressed := false
	var nextOuts [][]tss.Message
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
		nextOuts = append(nextOuts, out)
		progressed = true
	}
	return progressed, nextOuts
}

func runSignToCompletion(t *testing.T, ids tss.SortedPartyIDs, rounds []tss.Round, outs [][]tss.Message) []*tss.Error {
	errs := make([]*tss.Error, len(ids))
	for {
		batches := deliverSign(t, ids, outs)
		progressed, nextOuts := advanceAll(ids, rounds, errs, batches)
		outs = nextOuts
		if !progressed {
			break
		}
	}
	return errs
}

func TestGG20SignEndToEnd(t *testing.T) {
	ids := generateTestPartyIDs(testParticipants)
	saves := runKeygen(t, ids, testParticipants-1)

	m := big.NewInt(1234)
	rounds, outs := startSign(t, ids, saves, m)
	errs := runSignToCompletion(t, ids, rounds, outs)

	pk := &ecdsa.PublicKey{Curve: tss.S256(), X: saves[0].ECDSAPub.X(), Y: saves[0].ECDSAPub.Y()}
	sigs := make([]Signature, len(ids))
	for i := range ids {
		assert.Nil(t, errs[i])
		finished, ok := rounds[i].(*Finished)
		assert.True(t, ok)
		sigs[i] = finished.Result()
	}
	for i := range ids {
		assert.True(t, ecdsa.Verify(pk, m.Bytes(), sigs[i].R, sigs[i].S))
		assert.Zero(t, sigs[0].R.Cmp(sigs[i].R))
		assert.Zero(t, sigs[0].S.Cmp(sigs[i].S))
	}
}

// TestGG20SignBlameIdentifiesCheatingParty exercises §8's blame
// identifiability scenario with n=3 parties: one party's revealed ephemeral
// scalar, once disclosed during the blame round, disagrees with the
// R'_i it broadcast back in phase 5.
//
// A corrupted MtA "B message" (Round2Message's gamma/w ciphertexts) or
// a corrupted phase-5 R'_i broadcast can't be simulated by tampering
// with the wire bytes in transit here: round5's PDL-with-slack proof
// cryptographically binds R'_i to the ciphertext committed back in
// round 1, so any single-message corruption of either is caught by
// proof verification (KindInvalidProof) before the sum check ever
// runs — a stronger identifiable-abort guarantee than a bare
// sum-of-broadcasts check, but one that makes the sum check itself
// unreachable from a single tampered message. What the sum check and
// its blame round actually resolve is a party that reveals a scalar
// inconsistent with what it broadcast, so this test drives
// blameRound.Advance directly against a synthesized inconsistent
// reveal, the fault it exists to catch.
func TestGG20SignBlameIdentifiesCheatingParty(t *testing.T) {
	ids := generateTestPartyIDs(testParticipants)
	p2pCtx := tss.NewPeerContext(ids)
	params := tss.NewParameters(tss.S256(), p2pCtx, ids[0], len(ids), len(ids)-1, nil)
	ec := tss.S256()

	const cheater = 1
	k := make([]*big.Int, len(ids))
	rBarI := make(map[int]*crypto.ECPoint, len(ids))
	for i := range ids {
		k[i] = big.NewInt(int64(10 + i))
		rBarI[i] = crypto.ScalarBaseMult(ec, k[i])
	}
	// party 1 broadcast an R'_i that doesn't correspond to the k it
	// later reveals during blame.
	rBarI[cheater] = crypto.ScalarBaseMult(ec, big.NewInt(int64(10+cheater+1)))

	g := crypto.NewECPointNoCurveCheck(ec, ec.Params().Gx, ec.Params().Gy)
	br := &blameRound{
		base:       base{BaseRound: baseRound(params, 6, "round6-blame")},
		phase:      phase5BadSum,
		R:          g,
		peerRBarIs: rBarI,
		reveals:    map[int]BlameReveal{ids[0].Index: {K: k[0]}},
	}

	batch := tss.InboundBatch{
		{Message: tss.Message{From: ids[1]}, Content: Round6BlameMessage{Reveal: BlameReveal{K: k[1]}}},
		{Message: tss.Message{From: ids[2]}, Content: Round6BlameMessage{Reveal: BlameReveal{K: k[2]}}},
	}

	next, out, err := br.Advance(batch)
	assert.Nil(t, next)
	assert.Nil(t, out)
	assert.NotNil(t, err)
	assert.Equal(t, tss.KindBlameResult, err.Kind)

	found := false
	for _, culprit := range err.Actors() {
		if culprit.Index == ids[cheater].Index {
			found = true
		}
	}
	assert.True(t, found, "blame round did not flag the cheating party")
}

func TestGG20SignDuplicateSignerIndex(t *testing.T) {
	ids := generateTestPartyIDs(testParticipants)
	saves := runKeygen(t, ids, testParticipants-1)

	dup := append(tss.SortedPartyIDs{}, ids...)
	dup[1] = ids[0]

	p2pCtx := tss.NewPeerContext(dup)
	params := tss.NewParameters(tss.S256(), p2pCtx, dup[0], len(dup), len(dup)-1, nil)
	party := NewLocalParty(params, saves[0], big.NewInt(1234), nil, nil)

	_, _, err := party.Start()
	assert.NotNil(t, err)
	assert.Equal(t, tss.KindInvalidSession, err.Kind)
}
