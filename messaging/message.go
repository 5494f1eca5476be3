// Copyright 2016 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package messaging implements the client side of the validator's wire
// protocol: a single long-lived duplex connection over which concurrent
// requests are multiplexed by correlation id. Each frame on the wire is a
// 4-byte big-endian payload length followed by a CBOR-encoded Message.
package messaging

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/gbartosz/sawtooth-core/protocol"
)

// Frames larger than this are rejected as malformed rather than allocated
const maxFrameLength = 1 << 26

// Message is the outer frame body linking a typed payload to its correlation
// id. Content holds the CBOR encoding of the record named by MessageType.
type Message struct {
	_             struct{} `cbor:",toarray"`
	MessageType   protocol.MessageType
	CorrelationId string
	Content       []byte
}

// WriteMessage frames and writes a single message. It performs one Write
// call so concurrent writers only need to serialize calls to this function.
func WriteMessage(w io.Writer, msg *Message) error {
	body, err := cbor.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}
	frame := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(frame, uint32(len(body)))
	copy(frame[4:], body)
	if _, err := w.Write(frame); err != nil {
		return err
	}
	return nil
}

// ReadMessage reads and decodes a single framed message
func ReadMessage(r io.Reader) (*Message, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(header[:])
	if length > maxFrameLength {
		return nil, fmt.Errorf("frame length %d exceeds maximum %d", length, maxFrameLength)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	msg := &Message{}
	if err := cbor.Unmarshal(body, msg); err != nil {
		return nil, fmt.Errorf("decoding message: %w", err)
	}
	return msg, nil
}
