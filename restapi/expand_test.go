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
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbartosz/sawtooth-core/protocol"
)

func encodeHeader(t *testing.T, header any) string {
	t.Helper()
	raw, err := cbor.Marshal(header)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func testTransaction(t *testing.T, n int) protocol.Transaction {
	t.Helper()
	return protocol.Transaction{
		Header: encodeHeader(t, protocol.TransactionHeader{
			FamilyName:    "intkey",
			FamilyVersion: "1.0",
			Nonce:         fmt.Sprintf("nonce-%d", n),
			SignerPubkey:  "signer-pubkey",
		}),
		HeaderSignature: fmt.Sprintf("txn-sig-%d", n),
		Payload:         []byte{0x0a, byte(n)},
	}
}

func testBatch(t *testing.T, n int, numTxns int) protocol.Batch {
	t.Helper()
	txns := make([]protocol.Transaction, numTxns)
	txnIds := make([]string, numTxns)
	for i := range txns {
		txns[i] = testTransaction(t, n*10+i)
		txnIds[i] = txns[i].HeaderSignature
	}
	return protocol.Batch{
		Header: encodeHeader(t, protocol.BatchHeader{
			SignerPubkey:   "signer-pubkey",
			TransactionIds: txnIds,
		}),
		HeaderSignature: fmt.Sprintf("batch-sig-%d", n),
		Transactions:    txns,
	}
}

func testBlock(t *testing.T, numBatches, numTxns int) protocol.Block {
	t.Helper()
	batches := make([]protocol.Batch, numBatches)
	batchIds := make([]string, numBatches)
	for i := range batches {
		batches[i] = testBatch(t, i, numTxns)
		batchIds[i] = batches[i].HeaderSignature
	}
	return protocol.Block{
		Header: encodeHeader(t, protocol.BlockHeader{
			BatchIds:        batchIds,
			BlockNum:        12,
			PreviousBlockId: "prev-block-id",
			SignerPubkey:    "signer-pubkey",
			StateRootHash:   "state-root",
		}),
		HeaderSignature: "block-sig",
		Batches:         batches,
	}
}

func TestExpandBlock(t *testing.T) {
	block := testBlock(t, 2, 3)

	expanded, err := ExpandBlock(block)
	require.NoError(t, err)

	require.NotNil(t, expanded.Header)
	assert.Equal(t, uint64(12), expanded.Header.BlockNum)
	assert.Equal(t, "prev-block-id", expanded.Header.PreviousBlockId)
	assert.Equal(t, "block-sig", expanded.HeaderSignature)

	// Batch and transaction counts are preserved exactly, and every header
	// at every depth is structured
	require.Len(t, expanded.Batches, 2)
	for i, batch := range expanded.Batches {
		require.NotNil(t, batch.Header)
		assert.Equal(t, block.Batches[i].HeaderSignature, batch.HeaderSignature)
		assert.Len(t, batch.Header.TransactionIds, 3)
		require.Len(t, batch.Transactions, 3)
		for j, txn := range batch.Transactions {
			require.NotNil(t, txn.Header)
			assert.Equal(t, "intkey", txn.Header.FamilyName)
			assert.Equal(t, block.Batches[i].Transactions[j].HeaderSignature, txn.HeaderSignature)
			assert.Equal(t, block.Batches[i].Transactions[j].Payload, txn.Payload)
		}
	}
}

func TestExpandBatchWithoutTransactions(t *testing.T) {
	batch := protocol.Batch{
		Header:          encodeHeader(t, protocol.BatchHeader{SignerPubkey: "signer"}),
		HeaderSignature: "batch-sig",
	}

	expanded, err := ExpandBatch(batch)
	require.NoError(t, err)
	assert.Equal(t, "signer", expanded.Header.SignerPubkey)
	assert.NotNil(t, expanded.Transactions)
	assert.Len(t, expanded.Transactions, 0)
}

func TestExpandMalformedBase64Header(t *testing.T) {
	txn := protocol.Transaction{
		Header:          "not/valid/base64!!!",
		HeaderSignature: "txn-sig",
	}

	_, err := ExpandTransaction(txn)
	require.Error(t, err)
	assert.ErrorContains(t, err, "base64")
}

func TestExpandUndecodableHeader(t *testing.T) {
	block := protocol.Block{
		// Valid base64 of bytes that are not a header record
		Header:          base64.StdEncoding.EncodeToString([]byte{0xff, 0xff, 0xff}),
		HeaderSignature: "block-sig",
	}

	_, err := ExpandBlock(block)
	require.Error(t, err)
	assert.ErrorContains(t, err, "block-sig")
}

func TestExpandErrorPropagatesFromNestedRecord(t *testing.T) {
	block := testBlock(t, 1, 1)
	block.Batches[0].Transactions[0].Header = "%%%"

	_, err := ExpandBlock(block)
	require.Error(t, err)
	assert.ErrorContains(t, err, "transaction")
}
