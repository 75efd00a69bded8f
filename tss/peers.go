package tss

// PeerContext is the participant roster every round consults to know who
// it is waiting for and where to address outgoing point-to-point
// messages. It is immutable for the lifetime of a session.
type PeerContext struct {
	parties SortedPartyIDs
}

func NewPeerContext(parties SortedPartyIDs) *PeerContext {
	return &PeerContext{parties: parties}
}

func (ctx *PeerContext) IDs() SortedPartyIDs {
	return ctx.parties
}
