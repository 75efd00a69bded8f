package tss

// Party is what new_party(...) in §6.1 returns: something that can be
// started once, producing the round-0 state and the round-0 outgoing
// batch.
type Party interface {
	Start() (Round, []Message, *Error)
	Params() *Parameters
}

// BaseParty is embedded by every protocol's concrete party type. It
// owns the single-producer outgoing-message and result channels of
// §5 ("Shared resources"): pushes are best-effort sends that also
// return the same values directly, so a caller that prefers the
// synchronous return form (§9 "Channels") can ignore the channels
// entirely by constructing the party with them nil.
type BaseParty struct {
	Out chan<- Message
	End chan<- interface{}
}

func (p *BaseParty) pushMessages(msgs []Message) {
	if p.Out == nil {
		return
	}
	for _, m := range msgs {
		p.Out <- m
	}
}

func (p *BaseParty) pushResult(result interface{}) {
	if p.End == nil {
		return
	}
	p.End <- result
}

// Emit is the shared plumbing concrete Start/advance-driving code calls
// after producing a round's outgoing batch: it fans the messages onto
// the channel (if any) and returns them unchanged for direct use.
func (p *BaseParty) Emit(msgs []Message) []Message {
	p.pushMessages(msgs)
	return msgs
}

// Finish is called once, by the driving code, when a round transitions
// into a protocol's Finished state; it publishes the result and
// returns it unchanged.
func (p *BaseParty) Finish(result interface{}) interface{} {
	p.pushResult(result)
	return result
}
