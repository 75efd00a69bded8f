// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package keygen

import (
	"bytes"
	"encoding/gob"

	"github.com/go-tss/tss-core/tss"
)

// Keygen's message contents carry CPI-heavy values (Paillier keys, DLN
// proofs, VSS commitment vectors) that §6.3's fixed-width scalar/point
// codec has no occasion to express — only the final signature leaving
// the signing package does. gob is the teacher's own choice for ad hoc
// struct marshalling elsewhere in the pack (crypto.ECPoint's GobEncode),
// so round payloads here are gob-encoded rather than given a bespoke
// binary layout each.
func init() {
	gob.Register(Round1Message{})
	gob.Register(Round2ShareMessage{})
	gob.Register(Round2DecommitMessage{})
	gob.Register(Round3Message{})
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

// broadcastMessage gob-encodes content and wraps it as a broadcast
// tss.Message under the given round label.
func broadcastMessage(from *tss.PartyID, sessionID []byte, round string, content interface{}) (tss.Message, error) {
	bz, err := encodeContent(content)
	if err != nil {
		return tss.Message{}, err
	}
	return tss.NewBroadcastMessage(from, sessionID, round, bz), nil
}

// directedMessage gob-encodes content and wraps it as a directed
// tss.Message under the given round label.
func directedMessage(from, to *tss.PartyID, sessionID []byte, round string, content interface{}) (tss.Message, error) {
	bz, err := encodeContent(content)
	if err != nil {
		return tss.Message{}, err
	}
	return tss.NewDirectedMessage(from, to, sessionID, round, bz), nil
}

// parse decodes a wire tss.Message into a ParsedMessage with Content
// populated, the form InboundBatch entries take.
func parse(msg tss.Message) (tss.ParsedMessage, error) {
	content, err := decodeContent(msg.Payload)
	if err != nil {
		return tss.ParsedMessage{}, err
	}
	return tss.ParsedMessage{Message: msg, Content: content}, nil
}
