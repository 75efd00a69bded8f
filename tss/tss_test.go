// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package tss

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPartyIDs(n int) SortedPartyIDs {
	ids := make([]*PartyID, n)
	for i := 0; i < n; i++ {
		// deliberately out of order so SortPartyIDs has real work to do
		key := big.NewInt(int64((n - i) * 100))
		ids[i] = NewPartyID(key.Bytes(), "")
	}
	return SortPartyIDs(ids)
}

func TestSortPartyIDsAssignsCanonicalIndex(t *testing.T) {
	ids := testPartyIDs(4)
	for i := 0; i < len(ids)-1; i++ {
		a := new(big.Int).SetBytes(ids[i].Key)
		b := new(big.Int).SetBytes(ids[i+1].Key)
		assert.True(t, a.Cmp(b) < 0)
		assert.Equal(t, i, ids[i].Index)
	}
	assert.Equal(t, len(ids)-1, ids[len(ids)-1].Index)
}

func TestPartyIDKeyIntIsOneIndexed(t *testing.T) {
	ids := testPartyIDs(3)
	for _, pid := range ids {
		assert.Equal(t, int64(pid.Index+1), pid.KeyInt().Int64())
	}
}

func TestPartyIDEquals(t *testing.T) {
	a := NewPartyID([]byte{1, 2, 3}, "a")
	b := NewPartyID([]byte{1, 2, 3}, "b") // moniker differs, key doesn't
	c := NewPartyID([]byte{9, 9, 9}, "c")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestFindByKey(t *testing.T) {
	ids := testPartyIDs(3)
	idx, found := ids.FindByKey(ids[1].Key)
	assert.Equal(t, 1, idx)
	assert.Equal(t, ids[1], found)

	_, notFound := ids.FindByKey([]byte("nonexistent"))
	assert.Nil(t, notFound)
}

func TestPeerContextIDs(t *testing.T) {
	ids := testPartyIDs(3)
	ctx := NewPeerContext(ids)
	assert.Equal(t, ids, ctx.IDs())
}

func TestParametersQuorumSizeAndAccessors(t *testing.T) {
	ids := testPartyIDs(3)
	ctx := NewPeerContext(ids)
	params := NewParameters(S256(), ctx, ids[0], 3, 1, []byte("session"))

	assert.Equal(t, 2, params.QuorumSize())
	assert.Equal(t, ids[0], params.PartyID())
	assert.Equal(t, 3, params.PartyCount())
	assert.Equal(t, 1, params.Threshold())
	assert.Equal(t, []byte("session"), params.SessionID())
	assert.NotNil(t, params.Rand())
	assert.Equal(t, S256(), params.EC())
}

func TestParametersWithRandOverridesEntropySource(t *testing.T) {
	ids := testPartyIDs(2)
	ctx := NewPeerContext(ids)
	fixed := newFixedReader(0x42)
	params := NewParameters(S256(), ctx, ids[0], 2, 1, nil).WithRand(fixed)
	assert.Same(t, fixed, params.Rand())
}

func TestNewParametersPanicsOnNilCurve(t *testing.T) {
	ids := testPartyIDs(2)
	ctx := NewPeerContext(ids)
	assert.Panics(t, func() {
		NewParameters(nil, ctx, ids[0], 2, 1, nil)
	})
}

// fixedReader always yields the same byte, just enough to prove
// WithRand's override is actually threaded through rather than ignored.
type fixedReader struct{ b byte }

func newFixedReader(b byte) *fixedReader { return &fixedReader{b: b} }

func (f *fixedReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = f.b
	}
	return len(p), nil
}

func TestCurveRegistry(t *testing.T) {
	c, ok := GetCurveByName(Secp256k1)
	assert.True(t, ok)
	assert.Equal(t, S256(), c)
	assert.Equal(t, S256(), EC())

	name, ok := GetCurveName(S256())
	assert.True(t, ok)
	assert.Equal(t, Secp256k1, name)

	_, ok = GetCurveByName(CurveName("not-registered"))
	assert.False(t, ok)
}

func TestMessageConstructors(t *testing.T) {
	ids := testPartyIDs(2)
	bc := NewBroadcastMessage(ids[0], []byte("sid"), "round1", []byte("payload"))
	assert.True(t, bc.IsBroadcast)
	assert.Nil(t, bc.To)
	assert.Equal(t, ids[0], bc.From)

	dm := NewDirectedMessage(ids[0], ids[1], []byte("sid"), "round1", []byte("payload"))
	assert.False(t, dm.IsBroadcast)
	assert.Equal(t, ids[1], dm.To)
}

func TestInboundBatchByFrom(t *testing.T) {
	ids := testPartyIDs(3)
	batch := InboundBatch{
		{Message: Message{From: ids[1]}, Content: "from-1"},
		{Message: Message{From: ids[2]}, Content: "from-2"},
	}

	pm, found := batch.ByFrom(ids[2])
	assert.True(t, found)
	assert.Equal(t, "from-2", pm.Content)

	_, notFound := batch.ByFrom(ids[0])
	assert.False(t, notFound)
}

func TestErrorConstructorsAndActors(t *testing.T) {
	ids := testPartyIDs(2)

	err := NewError(KindIncomplete, nil, "task", "round1", ids[0])
	assert.Equal(t, KindIncomplete, err.Kind)
	assert.Equal(t, []*PartyID{ids[0]}, err.Actors())

	invalidProof := NewInvalidProofError("schnorr", "task", "round5", ids[1])
	assert.Equal(t, KindInvalidProof, invalidProof.Kind)
	assert.Equal(t, "schnorr", invalidProof.Which)
	assert.Contains(t, invalidProof.Error(), "which=schnorr")
	assert.Contains(t, invalidProof.Error(), "culprits=")

	blame := NewBlameResultError("task", "round6-blame", ids[0], ids[1])
	assert.Equal(t, KindBlameResult, blame.Kind)
	assert.Len(t, blame.Actors(), 2)
}

func TestRoundConsumeIsSingleUse(t *testing.T) {
	base := &BaseRound{P: nil, Number: 1, Label: "round1", TaskNm: "task"}
	assert.True(t, base.Consume())
	assert.False(t, base.Consume())
	assert.Equal(t, 1, base.RoundNumber())
	assert.Equal(t, "round1", base.RoundLabel())
	assert.Equal(t, "task", base.Task())
}

func TestGoneRoundIsTerminalAndIdempotent(t *testing.T) {
	assert.True(t, IsTerminal(Gone))
	next, msgs, err := Gone.Advance(nil)
	assert.Equal(t, Gone, next)
	assert.Nil(t, msgs)
	assert.Nil(t, err)
}

// finishedStub is a minimal Terminal implementation, standing in for
// the Finished type every protocol package defines for itself.
type finishedStub struct{ BaseRound }

func (finishedStub) Advance(InboundBatch) (Round, []Message, *Error) { return Gone, nil, nil }
func (finishedStub) IsFinished() bool                                { return true }

func TestIsTerminalRecognizesFinishedRounds(t *testing.T) {
	var r Round = finishedStub{}
	assert.True(t, IsTerminal(r))
}

func TestWireScalarRoundTrip(t *testing.T) {
	x := big.NewInt(123456789)
	bz, err := EncodeScalar(x)
	assert.NoError(t, err)
	assert.Len(t, bz, ScalarWidth)

	back, err := DecodeScalar(bz)
	assert.NoError(t, err)
	assert.Zero(t, x.Cmp(back))
}

func TestWireScalarRejectsWrongWidth(t *testing.T) {
	_, err := DecodeScalar(make([]byte, ScalarWidth-1))
	assert.Error(t, err)
}

func TestWireBigIntFixedRejectsOverflowAndNegative(t *testing.T) {
	_, err := EncodeBigIntFixed(big.NewInt(-1), ScalarWidth)
	assert.Error(t, err)

	huge := new(big.Int).Lsh(big.NewInt(1), 8*(ScalarWidth+1))
	_, err = EncodeBigIntFixed(huge, ScalarWidth)
	assert.Error(t, err)

	_, err = EncodeBigIntFixed(nil, ScalarWidth)
	assert.Error(t, err)
}

func TestWirePointRoundTrip(t *testing.T) {
	curve := S256()
	x, y := curve.Params().Gx, curve.Params().Gy

	bz, err := EncodePoint(x, y)
	assert.NoError(t, err)
	assert.Len(t, bz, PointWidth)

	rx, ry, err := DecodePoint(curve, bz)
	assert.NoError(t, err)
	assert.Zero(t, x.Cmp(rx))
	assert.Zero(t, y.Cmp(ry))
}

func TestWirePointRejectsBadPrefixAndOffCurve(t *testing.T) {
	curve := S256()
	x, y := curve.Params().Gx, curve.Params().Gy
	bz, err := EncodePoint(x, y)
	assert.NoError(t, err)

	corruptPrefix := append([]byte{}, bz...)
	corruptPrefix[0] = 0x03
	_, _, err = DecodePoint(curve, corruptPrefix)
	assert.Error(t, err)

	offCurve := append([]byte{}, bz...)
	offCurve[64] ^= 0xff
	_, _, err = DecodePoint(curve, offCurve)
	assert.Error(t, err)

	_, _, err = DecodePoint(curve, bz[:PointWidth-1])
	assert.Error(t, err)
}

func TestBaseParty(t *testing.T) {
	outCh := make(chan Message, 2)
	endCh := make(chan interface{}, 1)
	bp := &BaseParty{Out: outCh, End: endCh}

	ids := testPartyIDs(1)
	msgs := []Message{NewBroadcastMessage(ids[0], nil, "round1", nil)}
	got := bp.Emit(msgs)
	assert.Equal(t, msgs, got)
	assert.Equal(t, msgs[0], <-outCh)

	result := bp.Finish("done")
	assert.Equal(t, "done", result)
	assert.Equal(t, "done", <-endCh)
}

func TestBaseChannelsAreOptional(t *testing.T) {
	bp := &BaseParty{}
	assert.NotPanics(t, func() {
		bp.Emit([]Message{{}})
		bp.Finish("done")
	})
}
