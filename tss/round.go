package tss

// Round is the one interface every protocol state machine's typed
// round-state chain implements. Advance is pure computation over the
// complete per-round batch the transport assembled (§4.4): it never
// blocks and never performs I/O. A round value is single-use — once
// Advance has been called on it, the receiver's BaseRound.Consume
// guard makes any further call return Gone rather than recomputing,
// satisfying the state-consumption law of §8 property 4.
type Round interface {
	Advance(batch InboundBatch) (Round, []Message, *Error)

	// RoundNumber is the position in the state machine's chain (round1
	// reports 1; Gone reports -1).
	RoundNumber() int

	// RoundLabel is the wire label this round's outgoing artifacts carry.
	// The GG18 source labels round 3's output "round3" even though later
	// commentary treats it as phase-3 material (§9 open question a); the
	// label is preserved here for wire compatibility while the internal
	// RoundNumber is free to be renumbered.
	RoundLabel() string

	Params() *Parameters

	// Task names the protocol variant, for error attribution.
	Task() string
}

// BaseRound is embedded by every concrete round type across every
// protocol package; it carries the fields every round needs regardless
// of protocol (session parameters, position, label) and the one-shot
// consumption guard.
type BaseRound struct {
	P       *Parameters
	Number  int
	Label   string
	TaskNm  string
	used    bool
}

func (b *BaseRound) RoundNumber() int    { return b.Number }
func (b *BaseRound) RoundLabel() string  { return b.Label }
func (b *BaseRound) Params() *Parameters { return b.P }
func (b *BaseRound) Task() string        { return b.TaskNm }

// Consume reports whether this is the first call against this round
// value. Concrete Advance implementations must call it first and, on
// false, return (Gone, nil, nil) without touching any field.
func (b *BaseRound) Consume() bool {
	if b.used {
		return false
	}
	b.used = true
	return true
}

// goneRound is the terminal sentinel of §3: any advance against it, or
// against a round that already consumed itself, is a no-op that
// returns Gone again with no outgoing messages (§8 property 6).
type goneRound struct{}

func (goneRound) Advance(InboundBatch) (Round, []Message, *Error) { return Gone, nil, nil }
func (goneRound) RoundNumber() int                                { return -1 }
func (goneRound) RoundLabel() string                              { return "gone" }
func (goneRound) Params() *Parameters                             { return nil }
func (goneRound) Task() string                                    { return "" }

// Gone is the single shared instance every protocol's terminal chain
// collapses into.
var Gone Round = goneRound{}

// IsTerminal reports whether round cannot meaningfully advance further,
// covering both Gone and any protocol's Finished wrapper (which a
// protocol package marks by also implementing Terminal).
func IsTerminal(r Round) bool {
	if r == Gone {
		return true
	}
	_, ok := r.(Terminal)
	return ok
}

// Terminal marks a protocol-specific Finished round so generic TDC code
// can recognize completion without importing every protocol package.
type Terminal interface {
	Round
	IsFinished() bool
}
