// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package signing

import (
	"bytes"
	"encoding/gob"

	"github.com/go-tss/tss-core/tss"
)

// Sign round payloads carry the same CPI-heavy values keygen's do
// (Paillier ciphertexts, range and Sigma-protocol proofs, VSS-derived
// points) so they are gob-encoded for the same reason keygen's are.
func init() {
	gob.Register(Round1CommitMessage{})
	gob.Register(Round1MtAMessage{})
	gob.Register(Round2Message{})
	gob.Register(Round3Message{})
	gob.Register(Round4Message{})
	gob.Register(Round5Message{})
	gob.Register(Round6Message{})
	gob.Register(Round7Message{})
	gob.Register(Round8Message{})
	gob.Register(Round9Message{})
}

func encodeContent(content interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&content); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeContent(payload []byte) (interface{}, error) {
	var content interface{}
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&content); err != nil {
		return nil, err
	}
	return content, nil
}

func broadcastMessage(from *tss.PartyID, sessionID []byte, round string, content interface{}) (tss.Message, error) {
	bz, err := encodeContent(content)
	if err != nil {
		return tss.Message{}, err
	}
	return tss.NewBroadcastMessage(from, sessionID, round, bz), nil
}

func directedMessage(from, to *tss.PartyID, sessionID []byte, round string, content interface{}) (tss.Message, error) {
	bz, err := encodeContent(content)
	if err != nil {
		return tss.Message{}, err
	}
	return tss.NewDirectedMessage(from, to, sessionID, round, bz), nil
}

// parse decodes a wire tss.Message into a ParsedMessage, the form
// InboundBatch entries take.
func parse(msg tss.Message) (tss.ParsedMessage, error) {
	content, err := decodeContent(msg.Payload)
	if err != nil {
		return tss.ParsedMessage{}, err
	}
	return tss.ParsedMessage{Message: msg, Content: content}, nil
}
