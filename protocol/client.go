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

// Client request and response records. Each response carries a Status and
// implements ClientResponse so callers can inspect it without knowing the
// concrete type.

// ClientResponse is implemented by every client response record
type ClientResponse interface {
	StatusCode() Status
}

// ClientBatchSubmitRequest submits batches, optionally waiting for commit.
// Timeout is the validator-side wait bound in seconds and is only meaningful
// when WaitForCommit is set.
type ClientBatchSubmitRequest struct {
	_             struct{} `cbor:",toarray"`
	Batches       []Batch
	WaitForCommit bool
	Timeout       uint32
}

type ClientBatchSubmitResponse struct {
	_             struct{} `cbor:",toarray"`
	Status        Status
	BatchStatuses map[string]string
}

func (r *ClientBatchSubmitResponse) StatusCode() Status { return r.Status }

// ClientBatchStatusRequest looks up the commit status of specific batches
type ClientBatchStatusRequest struct {
	_             struct{} `cbor:",toarray"`
	BatchIds      []string
	WaitForCommit bool
	Timeout       uint32
}

type ClientBatchStatusResponse struct {
	_             struct{} `cbor:",toarray"`
	Status        Status
	BatchStatuses map[string]string
	HeadId        string
}

func (r *ClientBatchStatusResponse) StatusCode() Status { return r.Status }

// ClientStateListRequest lists state leaves, optionally filtered by address
// prefix and pinned to a specific chain head
type ClientStateListRequest struct {
	_       struct{} `cbor:",toarray"`
	HeadId  string
	Address string
}

type ClientStateListResponse struct {
	_      struct{} `cbor:",toarray"`
	Status Status
	Leaves []Leaf
	HeadId string
}

func (r *ClientStateListResponse) StatusCode() Status { return r.Status }

// ClientStateGetRequest fetches the data stored at a single state address
type ClientStateGetRequest struct {
	_       struct{} `cbor:",toarray"`
	HeadId  string
	Address string
}

type ClientStateGetResponse struct {
	_      struct{} `cbor:",toarray"`
	Status Status
	Value  []byte
	HeadId string
}

func (r *ClientStateGetResponse) StatusCode() Status { return r.Status }

// ClientBlockListRequest lists blocks, optionally filtered by id
type ClientBlockListRequest struct {
	_        struct{} `cbor:",toarray"`
	HeadId   string
	BlockIds []string
}

type ClientBlockListResponse struct {
	_      struct{} `cbor:",toarray"`
	Status Status
	Blocks []Block
	HeadId string
}

func (r *ClientBlockListResponse) StatusCode() Status { return r.Status }

// ClientBlockGetRequest fetches a single block by id
type ClientBlockGetRequest struct {
	_       struct{} `cbor:",toarray"`
	BlockId string
}

type ClientBlockGetResponse struct {
	_      struct{} `cbor:",toarray"`
	Status Status
	Block  Block
}

func (r *ClientBlockGetResponse) StatusCode() Status { return r.Status }

// ClientBatchListRequest lists batches, optionally filtered by id
type ClientBatchListRequest struct {
	_        struct{} `cbor:",toarray"`
	HeadId   string
	BatchIds []string
}

type ClientBatchListResponse struct {
	_       struct{} `cbor:",toarray"`
	Status  Status
	Batches []Batch
	HeadId  string
}

func (r *ClientBatchListResponse) StatusCode() Status { return r.Status }

// ClientBatchGetRequest fetches a single batch by id
type ClientBatchGetRequest struct {
	_       struct{} `cbor:",toarray"`
	BatchId string
}

type ClientBatchGetResponse struct {
	_      struct{} `cbor:",toarray"`
	Status Status
	Batch  Batch
}

func (r *ClientBatchGetResponse) StatusCode() Status { return r.Status }
