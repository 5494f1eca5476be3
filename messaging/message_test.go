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

package messaging_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbartosz/sawtooth-core/messaging"
	"github.com/gbartosz/sawtooth-core/protocol"
)

func TestMessageFraming(t *testing.T) {
	msg := &messaging.Message{
		MessageType:   protocol.MessageTypeClientStateGetRequest,
		CorrelationId: "corr-1",
		Content:       []byte{0x01, 0x02, 0x03},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, messaging.WriteMessage(buf, msg))

	// The frame starts with a 4-byte big-endian length of the body
	frame := buf.Bytes()
	require.Greater(t, len(frame), 4)
	assert.Equal(t, uint32(len(frame)-4), binary.BigEndian.Uint32(frame[:4]))

	decoded, err := messaging.ReadMessage(buf)
	require.NoError(t, err)
	assert.Equal(t, msg.MessageType, decoded.MessageType)
	assert.Equal(t, msg.CorrelationId, decoded.CorrelationId)
	assert.Equal(t, msg.Content, decoded.Content)
}

func TestReadMessageRejectsOversizedFrame(t *testing.T) {
	frame := make([]byte, 8)
	binary.BigEndian.PutUint32(frame, 1<<30)

	_, err := messaging.ReadMessage(bytes.NewReader(frame))
	assert.ErrorContains(t, err, "exceeds maximum")
}

func TestReadMessageTruncatedFrame(t *testing.T) {
	frame := make([]byte, 6)
	binary.BigEndian.PutUint32(frame, 100)

	_, err := messaging.ReadMessage(bytes.NewReader(frame))
	assert.Error(t, err)
}
