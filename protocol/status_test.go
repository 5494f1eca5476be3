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

package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gbartosz/sawtooth-core/protocol"
)

func TestSupportsStatus(t *testing.T) {
	tests := []struct {
		name      string
		msgType   protocol.MessageType
		status    protocol.Status
		supported bool
	}{
		{
			"submit reports invalid batch",
			protocol.MessageTypeClientBatchSubmitResponse,
			protocol.StatusInvalidBatch,
			true,
		},
		{
			"submit never reports missing root",
			protocol.MessageTypeClientBatchSubmitResponse,
			protocol.StatusNoRoot,
			false,
		},
		{
			"submit never reports missing resource",
			protocol.MessageTypeClientBatchSubmitResponse,
			protocol.StatusNoResource,
			false,
		},
		{
			"state list reports missing root",
			protocol.MessageTypeClientStateListResponse,
			protocol.StatusNoRoot,
			true,
		},
		{
			"block get never reports missing root",
			protocol.MessageTypeClientBlockGetResponse,
			protocol.StatusNoRoot,
			false,
		},
		{
			"block get reports missing resource",
			protocol.MessageTypeClientBlockGetResponse,
			protocol.StatusNoResource,
			true,
		},
		{
			"batch get never reports missing root",
			protocol.MessageTypeClientBatchGetResponse,
			protocol.StatusNoRoot,
			false,
		},
		{
			"unknown response type reports nothing",
			protocol.MessageTypeDefault,
			protocol.StatusOK,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.supported,
				protocol.SupportsStatus(tt.msgType, tt.status))
		})
	}
}

func TestSupportedStatusesEveryResponseReportsBaseline(t *testing.T) {
	responseTypes := []protocol.MessageType{
		protocol.MessageTypeClientBatchSubmitResponse,
		protocol.MessageTypeClientBatchStatusResponse,
		protocol.MessageTypeClientStateListResponse,
		protocol.MessageTypeClientStateGetResponse,
		protocol.MessageTypeClientBlockListResponse,
		protocol.MessageTypeClientBlockGetResponse,
		protocol.MessageTypeClientBatchListResponse,
		protocol.MessageTypeClientBatchGetResponse,
	}
	for _, msgType := range responseTypes {
		statuses := protocol.SupportedStatuses(msgType)
		assert.Contains(t, statuses, protocol.StatusOK, "%s", msgType)
		assert.Contains(t, statuses, protocol.StatusInternalError, "%s", msgType)
		assert.Contains(t, statuses, protocol.StatusNotReady, "%s", msgType)
	}
}

func TestSupportedStatusesReturnsCopy(t *testing.T) {
	first := protocol.SupportedStatuses(protocol.MessageTypeClientBlockListResponse)
	first[0] = protocol.StatusInvalidAddress
	second := protocol.SupportedStatuses(protocol.MessageTypeClientBlockListResponse)
	assert.Equal(t, protocol.StatusUnset, second[0])
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "OK", protocol.StatusOK.String())
	assert.Equal(t, "NO_ROOT", protocol.StatusNoRoot.String())
	assert.Equal(t, "INVALID_BATCH", protocol.StatusInvalidBatch.String())
	assert.Equal(t, "UNKNOWN", protocol.Status(999).String())
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "CLIENT_BATCH_SUBMIT_REQUEST",
		protocol.MessageTypeClientBatchSubmitRequest.String())
	assert.Equal(t, "CLIENT_BLOCK_GET_RESPONSE",
		protocol.MessageTypeClientBlockGetResponse.String())
}
