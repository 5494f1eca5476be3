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

package restapi

import (
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/gbartosz/sawtooth-core/protocol"
)

// Chain records arrive from the validator with their signed headers still
// base64-encoded. Expansion decodes every header, depth first, into the
// Expanded* forms below so the JSON envelope never contains an opaque blob.
// A header that fails to decode is a validator contract violation and
// propagates as an error; it is never masked with an empty result.

// ExpandedTransaction is a Transaction with its header decoded
type ExpandedTransaction struct {
	Header          *protocol.TransactionHeader `json:"header"`
	HeaderSignature string                      `json:"header_signature"`
	Payload         []byte                      `json:"payload"`
}

// ExpandedBatch is a Batch with its own header and every transaction's
// header decoded
type ExpandedBatch struct {
	Header          *protocol.BatchHeader `json:"header"`
	HeaderSignature string                `json:"header_signature"`
	Trace           bool                  `json:"trace"`
	Transactions    []ExpandedTransaction `json:"transactions"`
}

// ExpandedBlock is a Block with headers decoded at every nesting depth
type ExpandedBlock struct {
	Batches         []ExpandedBatch       `json:"batches"`
	Header          *protocol.BlockHeader `json:"header"`
	HeaderSignature string                `json:"header_signature"`
}

// ExpandTransaction decodes a transaction's header
func ExpandTransaction(txn protocol.Transaction) (ExpandedTransaction, error) {
	header := &protocol.TransactionHeader{}
	if err := decodeHeader(txn.Header, header); err != nil {
		return ExpandedTransaction{}, fmt.Errorf("transaction %s: %w", txn.HeaderSignature, err)
	}
	return ExpandedTransaction{
		Header:          header,
		HeaderSignature: txn.HeaderSignature,
		Payload:         txn.Payload,
	}, nil
}

// ExpandBatch decodes a batch's header and the headers of its transactions
func ExpandBatch(batch protocol.Batch) (ExpandedBatch, error) {
	header := &protocol.BatchHeader{}
	if err := decodeHeader(batch.Header, header); err != nil {
		return ExpandedBatch{}, fmt.Errorf("batch %s: %w", batch.HeaderSignature, err)
	}
	txns := make([]ExpandedTransaction, len(batch.Transactions))
	for i, txn := range batch.Transactions {
		expanded, err := ExpandTransaction(txn)
		if err != nil {
			return ExpandedBatch{}, fmt.Errorf("batch %s: %w", batch.HeaderSignature, err)
		}
		txns[i] = expanded
	}
	return ExpandedBatch{
		Header:          header,
		HeaderSignature: batch.HeaderSignature,
		Trace:           batch.Trace,
		Transactions:    txns,
	}, nil
}

// ExpandBlock decodes a block's header and the headers of its batches and
// their transactions
func ExpandBlock(block protocol.Block) (ExpandedBlock, error) {
	header := &protocol.BlockHeader{}
	if err := decodeHeader(block.Header, header); err != nil {
		return ExpandedBlock{}, fmt.Errorf("block %s: %w", block.HeaderSignature, err)
	}
	batches := make([]ExpandedBatch, len(block.Batches))
	for i, batch := range block.Batches {
		expanded, err := ExpandBatch(batch)
		if err != nil {
			return ExpandedBlock{}, fmt.Errorf("block %s: %w", block.HeaderSignature, err)
		}
		batches[i] = expanded
	}
	return ExpandedBlock{
		Batches:         batches,
		Header:          header,
		HeaderSignature: block.HeaderSignature,
	}, nil
}

// decodeHeader runs the second decode pass over a base64-encoded header
func decodeHeader(encoded string, dest any) error {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("header is not valid base64: %w", err)
	}
	if err := cbor.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decoding header: %w", err)
	}
	return nil
}
