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

// Package protocol defines the message types and record layouts exchanged
// with the validator over its client wire protocol. The layouts are a fixed
// external contract: record fields are encoded as CBOR arrays in declaration
// order, and the numeric message type and status values must match the
// validator's.
package protocol

import "fmt"

// MessageType tags each wire frame with the kind of record its content holds
type MessageType uint16

const (
	MessageTypeDefault MessageType = 0

	// Client request/response pairs. Requests are even offsets, responses odd.
	MessageTypeClientBatchSubmitRequest  MessageType = 100
	MessageTypeClientBatchSubmitResponse MessageType = 101
	MessageTypeClientBatchStatusRequest  MessageType = 102
	MessageTypeClientBatchStatusResponse MessageType = 103
	MessageTypeClientStateListRequest    MessageType = 104
	MessageTypeClientStateListResponse   MessageType = 105
	MessageTypeClientStateGetRequest     MessageType = 106
	MessageTypeClientStateGetResponse    MessageType = 107
	MessageTypeClientBlockListRequest    MessageType = 108
	MessageTypeClientBlockListResponse   MessageType = 109
	MessageTypeClientBlockGetRequest     MessageType = 110
	MessageTypeClientBlockGetResponse    MessageType = 111
	MessageTypeClientBatchListRequest    MessageType = 112
	MessageTypeClientBatchListResponse   MessageType = 113
	MessageTypeClientBatchGetRequest     MessageType = 114
	MessageTypeClientBatchGetResponse    MessageType = 115
)

func (m MessageType) String() string {
	switch m {
	case MessageTypeDefault:
		return "DEFAULT"
	case MessageTypeClientBatchSubmitRequest:
		return "CLIENT_BATCH_SUBMIT_REQUEST"
	case MessageTypeClientBatchSubmitResponse:
		return "CLIENT_BATCH_SUBMIT_RESPONSE"
	case MessageTypeClientBatchStatusRequest:
		return "CLIENT_BATCH_STATUS_REQUEST"
	case MessageTypeClientBatchStatusResponse:
		return "CLIENT_BATCH_STATUS_RESPONSE"
	case MessageTypeClientStateListRequest:
		return "CLIENT_STATE_LIST_REQUEST"
	case MessageTypeClientStateListResponse:
		return "CLIENT_STATE_LIST_RESPONSE"
	case MessageTypeClientStateGetRequest:
		return "CLIENT_STATE_GET_REQUEST"
	case MessageTypeClientStateGetResponse:
		return "CLIENT_STATE_GET_RESPONSE"
	case MessageTypeClientBlockListRequest:
		return "CLIENT_BLOCK_LIST_REQUEST"
	case MessageTypeClientBlockListResponse:
		return "CLIENT_BLOCK_LIST_RESPONSE"
	case MessageTypeClientBlockGetRequest:
		return "CLIENT_BLOCK_GET_REQUEST"
	case MessageTypeClientBlockGetResponse:
		return "CLIENT_BLOCK_GET_RESPONSE"
	case MessageTypeClientBatchListRequest:
		return "CLIENT_BATCH_LIST_REQUEST"
	case MessageTypeClientBatchListResponse:
		return "CLIENT_BATCH_LIST_RESPONSE"
	case MessageTypeClientBatchGetRequest:
		return "CLIENT_BATCH_GET_REQUEST"
	case MessageTypeClientBatchGetResponse:
		return "CLIENT_BATCH_GET_RESPONSE"
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(m))
}
