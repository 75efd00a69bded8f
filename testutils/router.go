// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package testutils provides an in-memory message router for driving a
// fixed-size set of parties' protocol state machines to completion
// inside a single test process, without any real network transport.
//
// It is grounded on the teacher's test/utils.go SharedPartyUpdater, but
// adapted from that helper's one-message-at-a-time channel/goroutine
// shape to this module's pure, round-at-a-time Advance chain: instead
// of pushing each parsed message into a party's update channel as soon
// as it is produced, Route fans an entire round's batch of outgoing
// messages out into every recipient's next InboundBatch at once.
package testutils

import "github.com/go-tss/tss-core/tss"

// ParseFunc decodes one protocol package's wire payload into a
// tss.ParsedMessage. Each protocol package (keygen, signing, gg20sign)
// registers its own wire types and defines its own unexported parse;
// this package has no protocol-specific wire knowledge, so callers
// supply their package's parse function directly.
type ParseFunc func(tss.Message) (tss.ParsedMessage, error)

// Route assembles the InboundBatch each party in ids will advance its
// next round with, given every party's outgoing messages from the
// round just finished: broadcast messages fan out to every other
// party (self-elided, per tss.InboundBatch's contract), directed
// messages go to their one named recipient.
func Route(ids tss.SortedPartyIDs, outs [][]tss.Message, parse ParseFunc) ([]tss.InboundBatch, error) {
	batches := make([]tss.InboundBatch, len(ids))
	for _, out := range outs {
		for _, msg := range out {
			pm, err := parse(msg)
			if err != nil {
				return nil, err
			}
			if msg.IsBroadcast {
				for _, pj := range ids {
					if pj.Index == msg.From.Index {
						continue
					}
					batches[pj.Index] = append(batches[pj.Index], pm)
				}
			} else {
				batches[msg.To.Index] = append(batches[msg.To.Index], pm)
			}
		}
	}
	return batches, nil
}

// AllTerminal reports whether every round in rounds has already
// reached a terminal state (Finished or Gone), the condition a
// round-stepping test loop stops on.
func AllTerminal(rounds []tss.Round) bool {
	for _, r := range rounds {
		if !tss.IsTerminal(r) {
			return false
		}
	}
	return true
}
