package tss

// Message is the outgoing-message record of §6.1: from/to indices, the
// round label, an opaque wire payload, the session id, and whether it
// is a broadcast (To == nil) or a directed point-to-point send.
type Message struct {
	From        *PartyID
	To          *PartyID // nil means broadcast to every peer
	Round       string
	SessionID   []byte
	IsBroadcast bool
	Payload     []byte
}

func NewBroadcastMessage(from *PartyID, sessionID []byte, round string, payload []byte) Message {
	return Message{From: from, Round: round, SessionID: sessionID, IsBroadcast: true, Payload: payload}
}

func NewDirectedMessage(from, to *PartyID, sessionID []byte, round string, payload []byte) Message {
	return Message{From: from, To: to, Round: round, SessionID: sessionID, IsBroadcast: false, Payload: payload}
}

// ParsedMessage is what the transport hands back to advance: the wire
// envelope plus the payload already decoded into the round's expected
// content type. The core only ever re-derives Content by decoding
// bytes against the round label it expects — it never reinterprets an
// already-decoded value as something else.
type ParsedMessage struct {
	Message
	Content interface{}
}

// InboundBatch is the ordered, peer-indexed, self-elided batch that the
// transport assembles per round before calling advance — exactly the
// completeness and ordering contract of §4.4.
type InboundBatch []ParsedMessage

// ByFrom scans a batch for the entry whose sender key matches, for
// verification steps that need "the payload from peer j specifically"
// rather than positional iteration.
func (b InboundBatch) ByFrom(from *PartyID) (ParsedMessage, bool) {
	for _, m := range b {
		if m.From != nil && m.From.Equals(from) {
			return m, true
		}
	}
	return ParsedMessage{}, false
}
