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

package protocol

// Status is the outcome code carried by every client response record. The
// numeric space is shared across response types, but each response type only
// ever reports a subset of it. SupportsStatus exposes those subsets so
// callers can skip checks for statuses a response type never reports.
type Status uint16

const (
	StatusUnset Status = iota
	StatusOK
	StatusInternalError
	StatusNotReady
	StatusNoRoot
	StatusNoResource
	StatusInvalidBatch
	StatusInvalidId
	StatusInvalidAddress
)

func (s Status) String() string {
	switch s {
	case StatusUnset:
		return "STATUS_UNSET"
	case StatusOK:
		return "OK"
	case StatusInternalError:
		return "INTERNAL_ERROR"
	case StatusNotReady:
		return "NOT_READY"
	case StatusNoRoot:
		return "NO_ROOT"
	case StatusNoResource:
		return "NO_RESOURCE"
	case StatusInvalidBatch:
		return "INVALID_BATCH"
	case StatusInvalidId:
		return "INVALID_ID"
	case StatusInvalidAddress:
		return "INVALID_ADDRESS"
	}
	return "UNKNOWN"
}

// supportedStatuses maps each response message type to the set of status
// codes the validator may report for it
var supportedStatuses = map[MessageType][]Status{
	MessageTypeClientBatchSubmitResponse: {
		StatusUnset, StatusOK, StatusInternalError, StatusNotReady,
		StatusInvalidBatch,
	},
	MessageTypeClientBatchStatusResponse: {
		StatusUnset, StatusOK, StatusInternalError, StatusNotReady,
		StatusNoResource, StatusInvalidId,
	},
	MessageTypeClientStateListResponse: {
		StatusUnset, StatusOK, StatusInternalError, StatusNotReady,
		StatusNoRoot, StatusNoResource, StatusInvalidAddress,
	},
	MessageTypeClientStateGetResponse: {
		StatusUnset, StatusOK, StatusInternalError, StatusNotReady,
		StatusNoRoot, StatusNoResource, StatusInvalidAddress,
	},
	MessageTypeClientBlockListResponse: {
		StatusUnset, StatusOK, StatusInternalError, StatusNotReady,
		StatusNoRoot, StatusNoResource, StatusInvalidId,
	},
	MessageTypeClientBlockGetResponse: {
		StatusUnset, StatusOK, StatusInternalError, StatusNotReady,
		StatusNoResource, StatusInvalidId,
	},
	MessageTypeClientBatchListResponse: {
		StatusUnset, StatusOK, StatusInternalError, StatusNotReady,
		StatusNoRoot, StatusNoResource, StatusInvalidId,
	},
	MessageTypeClientBatchGetResponse: {
		StatusUnset, StatusOK, StatusInternalError, StatusNotReady,
		StatusNoResource, StatusInvalidId,
	},
}

// SupportsStatus reports whether the given response message type can carry
// the given status code
func SupportsStatus(msgType MessageType, status Status) bool {
	for _, s := range supportedStatuses[msgType] {
		if s == status {
			return true
		}
	}
	return false
}

// SupportedStatuses returns the status codes the given response message type
// can carry
func SupportedStatuses(msgType MessageType) []Status {
	statuses := supportedStatuses[msgType]
	ret := make([]Status, len(statuses))
	copy(ret, statuses)
	return ret
}
