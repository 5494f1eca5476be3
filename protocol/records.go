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

// Chain resource records as they appear inside validator replies. The Header
// fields are base64-encoded text holding a second CBOR record (BlockHeader,
// BatchHeader or TransactionHeader); they stay encoded until the REST layer
// expands them.

// Transaction is a single signed transaction as stored on the chain
type Transaction struct {
	_               struct{} `cbor:",toarray"`
	Header          string
	HeaderSignature string
	Payload         []byte
}

// TransactionHeader is the signed portion of a Transaction
type TransactionHeader struct {
	_             struct{} `cbor:",toarray"`
	BatcherPubkey string   `json:"batcher_pubkey"`
	Dependencies  []string `json:"dependencies"`
	FamilyName    string   `json:"family_name"`
	FamilyVersion string   `json:"family_version"`
	Inputs        []string `json:"inputs"`
	Nonce         string   `json:"nonce"`
	Outputs       []string `json:"outputs"`
	PayloadSha512 string   `json:"payload_sha512"`
	SignerPubkey  string   `json:"signer_pubkey"`
}

// Batch is a signed group of transactions, the atomic unit of submission
type Batch struct {
	_               struct{} `cbor:",toarray"`
	Header          string
	HeaderSignature string
	Transactions    []Transaction
	Trace           bool
}

// BatchHeader is the signed portion of a Batch
type BatchHeader struct {
	_              struct{} `cbor:",toarray"`
	SignerPubkey   string   `json:"signer_pubkey"`
	TransactionIds []string `json:"transaction_ids"`
}

// BatchList is the wire form of a batch submission body
type BatchList struct {
	_       struct{} `cbor:",toarray"`
	Batches []Batch
}

// Block is a committed block, with the batches it contains
type Block struct {
	_               struct{} `cbor:",toarray"`
	Header          string
	HeaderSignature string
	Batches         []Batch
}

// BlockHeader is the signed portion of a Block
type BlockHeader struct {
	_               struct{} `cbor:",toarray"`
	BatchIds        []string `json:"batch_ids"`
	BlockNum        uint64   `json:"block_num"`
	Consensus       []byte   `json:"consensus"`
	PreviousBlockId string   `json:"previous_block_id"`
	SignerPubkey    string   `json:"signer_pubkey"`
	StateRootHash   string   `json:"state_root_hash"`
}

// Leaf is a single address/data pair from the validator's state tree
type Leaf struct {
	_       struct{} `cbor:",toarray"`
	Address string   `json:"address"`
	Data    []byte   `json:"data"`
}
