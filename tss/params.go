package tss

import (
	"crypto/elliptic"
	"crypto/rand"
	"io"
)

// Parameters binds one local participant into one session: the curve,
// the agreed roster, the local party's own identity within that roster,
// the threshold, and the entropy source every random draw in the
// session must go through. Carrying Rand explicitly (rather than always
// reaching for crypto/rand.Reader) is what makes the round state
// machine reproducible under a deterministic test reader.
type Parameters struct {
	curve        elliptic.Curve
	peerCtx      *PeerContext
	partyID      *PartyID
	partyCount   int
	threshold    int
	sessionID    []byte
	rand         io.Reader
	safePrimeGen bool
}

func NewParameters(curve elliptic.Curve, ctx *PeerContext, partyID *PartyID, partyCount, threshold int, sessionID []byte) *Parameters {
	return &Parameters{
		curve:      mustCurve(curve),
		peerCtx:    ctx,
		partyID:    partyID,
		partyCount: partyCount,
		threshold:  threshold,
		sessionID:  sessionID,
		rand:       rand.Reader,
	}
}

// WithRand overrides the entropy source, letting tests substitute a
// deterministic reader without touching the rest of the session setup.
func (params *Parameters) WithRand(r io.Reader) *Parameters {
	params.rand = r
	return params
}

func (params *Parameters) EC() elliptic.Curve       { return params.curve }
func (params *Parameters) PeerCtx() *PeerContext    { return params.peerCtx }
func (params *Parameters) PartyID() *PartyID        { return params.partyID }
func (params *Parameters) PartyCount() int          { return params.partyCount }
func (params *Parameters) Threshold() int           { return params.threshold }
func (params *Parameters) SessionID() []byte        { return params.sessionID }
func (params *Parameters) Rand() io.Reader          { return params.rand }

// QuorumSize returns the minimal signing quorum size: threshold + 1,
// the number of Feldman shares that must combine for a valid
// reconstruction.
func (params *Parameters) QuorumSize() int {
	return params.threshold + 1
}
