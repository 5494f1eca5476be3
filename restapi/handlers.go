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

// Package restapi translates JSON/HTTP requests into validator queries and
// validator replies into JSON envelopes. Each handler builds a typed request
// record, sends it over the shared validator connection, checks the reply
// status against its error traps, expands any nested headers, and wraps the
// result in the {data?, head?, link} envelope.
package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/gbartosz/sawtooth-core/messaging"
	"github.com/gbartosz/sawtooth-core/protocol"
)

// DefaultTimeout is how long a handler waits for a validator reply before
// reporting the validator unavailable
const DefaultTimeout = 300 * time.Second

// waitTimeoutRatio is the share of the gateway timeout used as the
// validator-side wait bound when a wait query value is not parseable as an
// integer. Documented configuration default, not a validation rule.
const waitTimeoutRatio = 0.95

// RouteHandler holds the HTTP handlers for the REST API endpoints. Each
// handler uses the data in the request to send a typed message to the
// validator, parses the correlated reply, and writes a JSON response with
// data and metadata back to the client.
type RouteHandler struct {
	sender  messaging.Sender
	timeout time.Duration
	logger  *slog.Logger
}

// NewRouteHandler returns a RouteHandler that queries the validator through
// sender, waiting up to timeout for each reply
func NewRouteHandler(sender messaging.Sender, timeout time.Duration, logger *slog.Logger) *RouteHandler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RouteHandler{
		sender:  sender,
		timeout: timeout,
		logger:  logger,
	}
}

// RegisterRoutes binds the REST API endpoints on the given mux
func (h *RouteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /batches", h.SubmitBatches)
	mux.HandleFunc("GET /batches", h.ListBatches)
	mux.HandleFunc("GET /batches/{batch_id}", h.FetchBatch)
	mux.HandleFunc("POST /batch_status", h.ListStatuses)
	mux.HandleFunc("GET /batch_status", h.ListStatuses)
	mux.HandleFunc("GET /state", h.ListState)
	mux.HandleFunc("GET /state/{address}", h.FetchState)
	mux.HandleFunc("GET /blocks", h.ListBlocks)
	mux.HandleFunc("GET /blocks/{block_id}", h.FetchBlock)
}

// SubmitBatches accepts a binary-encoded batch list and submits it to the
// validator.
//
// Request:
//
//	body: octet-stream BatchList of one or more batches
//	query:
//	  - wait: request should not return until all batches are committed
//
// Response:
//
//	status:
//	  - 200: batches submitted, but wait timed out before commit
//	  - 201: all batches submitted and committed
//	  - 202: batches submitted and pending (not told to wait)
//	data: statuses of uncommitted batches (if any, when told to wait)
//	link: /batches or /batch_status link for the submitted batches
func (h *RouteHandler) SubmitBatches(w http.ResponseWriter, r *http.Request) {
	const endpoint = "submit_batches"
	if r.Header.Get("Content-Type") != "application/octet-stream" {
		h.writeError(w, endpoint, ErrWrongBodyType)
		return
	}
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, endpoint, fmt.Errorf("reading request body: %w", err))
		return
	}
	if len(payload) == 0 {
		h.writeError(w, endpoint, ErrEmptyPayload)
		return
	}
	batchList := protocol.BatchList{}
	if err := cbor.Unmarshal(payload, &batchList); err != nil {
		h.writeError(w, endpoint, ErrBadPayload)
		return
	}

	query := protocol.ClientBatchSubmitRequest{Batches: batchList.Batches}
	h.setWait(r, &query.WaitForCommit, &query.Timeout)
	traps := []StatusTrap{{Status: protocol.StatusInvalidBatch, Err: ErrInvalidBatch}}

	reply := protocol.ClientBatchSubmitResponse{}
	err = h.queryValidator(
		protocol.MessageTypeClientBatchSubmitRequest,
		protocol.MessageTypeClientBatchSubmitResponse,
		&query, &reply, traps)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}

	ids := make([]string, len(batchList.Batches))
	for i, batch := range batchList.Batches {
		ids[i] = batch.HeaderSignature
	}
	link := fmt.Sprintf("%s://%s/batch_status?id=%s",
		scheme(r), r.Host, strings.Join(ids, ","))

	var data any
	var status int
	switch {
	case len(reply.BatchStatuses) == 0:
		status = http.StatusAccepted
	case anyNotCommitted(reply.BatchStatuses):
		status = http.StatusOK
		data = reply.BatchStatuses
	default:
		status = http.StatusCreated
		link = strings.Replace(link, "/batch_status", "/batches", 1)
	}

	h.wrapResponse(w, endpoint, data, map[string]any{"link": link}, status)
}

// ListStatuses fetches the committed status of batches by either POST or GET.
//
// Request:
//
//	body: a JSON array of one or more id strings (if POST)
//	query:
//	  - id: a comma-separated list of batch ids (if GET)
//	  - wait: request should not return until all batches are committed
//
// Response:
//
//	data: a JSON object with batch ids as keys and statuses as values
//	link: the /batch_status link queried (GET only)
func (h *RouteHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	const endpoint = "list_statuses"
	var ids []string
	if r.Method == http.MethodPost {
		parsed, err := statusIdsFromBody(r)
		if err != nil {
			h.writeError(w, endpoint, err)
			return
		}
		ids = parsed
	} else {
		raw, ok := r.URL.Query()["id"]
		if !ok {
			h.writeError(w, endpoint, ErrMissingStatusId)
			return
		}
		ids = strings.Split(raw[0], ",")
	}

	query := protocol.ClientBatchStatusRequest{BatchIds: ids}
	h.setWait(r, &query.WaitForCommit, &query.Timeout)
	traps := []StatusTrap{{Status: protocol.StatusNoResource, Err: ErrStatusesNotReturned}}

	reply := protocol.ClientBatchStatusResponse{}
	err := h.queryValidator(
		protocol.MessageTypeClientBatchStatusRequest,
		protocol.MessageTypeClientBatchStatusResponse,
		&query, &reply, traps)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}

	// POST responses carry no link or head metadata
	var metadata map[string]any
	if r.Method != http.MethodPost {
		metadata = metadataFor(r, reply.HeadId)
	}

	// Status listings always carry a data map, even when nothing matched
	statuses := reply.BatchStatuses
	if statuses == nil {
		statuses = map[string]string{}
	}
	h.wrapResponse(w, endpoint, statuses, metadata, http.StatusOK)
}

// ListState fetches a list of state leaves, optionally filtered by address
// prefix.
//
// Request:
//
//	query:
//	  - head: the id of the block to use as the head of the chain
//	  - address: return leaves whose addresses begin with this prefix
//
// Response:
//
//	data: an array of leaf objects with address and data keys
//	head: the head used for this query (most recent if unspecified)
//	link: the link to this exact query, including head block
func (h *RouteHandler) ListState(w http.ResponseWriter, r *http.Request) {
	const endpoint = "list_state"
	query := protocol.ClientStateListRequest{
		HeadId:  r.URL.Query().Get("head"),
		Address: r.URL.Query().Get("address"),
	}

	reply := protocol.ClientStateListResponse{}
	err := h.queryValidator(
		protocol.MessageTypeClientStateListRequest,
		protocol.MessageTypeClientStateListResponse,
		&query, &reply, nil)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}

	leaves := reply.Leaves
	if leaves == nil {
		leaves = []protocol.Leaf{}
	}
	h.wrapResponse(w, endpoint, leaves, metadataFor(r, reply.HeadId), http.StatusOK)
}

// FetchState fetches the data stored at a specific address in the
// validator's state tree.
//
// Request:
//
//	path:
//	  - address: the 70-character address of the data to fetch
//	query:
//	  - head: the id of the block to use as the head of the chain
//
// Response:
//
//	data: the base64-encoded binary data stored at that address
//	head: the head used for this query (most recent if unspecified)
//	link: the link to this exact query, including head block
func (h *RouteHandler) FetchState(w http.ResponseWriter, r *http.Request) {
	const endpoint = "fetch_state"
	query := protocol.ClientStateGetRequest{
		HeadId:  r.URL.Query().Get("head"),
		Address: r.PathValue("address"),
	}
	traps := []StatusTrap{
		{Status: protocol.StatusNoResource, Err: ErrMissingLeaf},
		{Status: protocol.StatusInvalidAddress, Err: ErrBadAddress},
	}

	reply := protocol.ClientStateGetResponse{}
	err := h.queryValidator(
		protocol.MessageTypeClientStateGetRequest,
		protocol.MessageTypeClientStateGetResponse,
		&query, &reply, traps)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}

	h.wrapResponse(w, endpoint, reply.Value, metadataFor(r, reply.HeadId), http.StatusOK)
}

// ListBlocks fetches a list of blocks, optionally filtered by id.
//
// Request:
//
//	query:
//	  - head: the id of the block to use as the head of the chain
//	  - id: a comma-separated list of block ids to include
//
// Response:
//
//	data: a JSON array of fully expanded block objects
//	head: the head used for this query (most recent if unspecified)
//	link: the link to this exact query, including head block
func (h *RouteHandler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	const endpoint = "list_blocks"
	query := protocol.ClientBlockListRequest{
		HeadId:   r.URL.Query().Get("head"),
		BlockIds: filterIds(r),
	}

	reply := protocol.ClientBlockListResponse{}
	err := h.queryValidator(
		protocol.MessageTypeClientBlockListRequest,
		protocol.MessageTypeClientBlockListResponse,
		&query, &reply, nil)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}

	blocks := make([]ExpandedBlock, len(reply.Blocks))
	for i, block := range reply.Blocks {
		expanded, err := ExpandBlock(block)
		if err != nil {
			h.writeError(w, endpoint, err)
			return
		}
		blocks[i] = expanded
	}
	h.wrapResponse(w, endpoint, blocks, metadataFor(r, reply.HeadId), http.StatusOK)
}

// FetchBlock fetches a specific block by id.
//
// Request:
//
//	path:
//	  - block_id: the 128-character id of the block to fetch
//
// Response:
//
//	data: a JSON object with the fully expanded block
//	link: the link to this exact query
func (h *RouteHandler) FetchBlock(w http.ResponseWriter, r *http.Request) {
	const endpoint = "fetch_block"
	query := protocol.ClientBlockGetRequest{BlockId: r.PathValue("block_id")}
	traps := []StatusTrap{
		{Status: protocol.StatusNoResource, Err: ErrMissingBlock},
		{Status: protocol.StatusInvalidId, Err: ErrInvalidBlockId},
	}

	reply := protocol.ClientBlockGetResponse{}
	err := h.queryValidator(
		protocol.MessageTypeClientBlockGetRequest,
		protocol.MessageTypeClientBlockGetResponse,
		&query, &reply, traps)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}

	block, err := ExpandBlock(reply.Block)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}
	h.wrapResponse(w, endpoint, block, map[string]any{"link": requestURL(r)}, http.StatusOK)
}

// ListBatches fetches a list of batches, optionally filtered by id.
//
// Request:
//
//	query:
//	  - head: the id of the block to use as the head of the chain
//	  - id: a comma-separated list of batch ids to include
//
// Response:
//
//	data: a JSON array of fully expanded batch objects
//	head: the head used for this query (most recent if unspecified)
//	link: the link to this exact query, including head block
func (h *RouteHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	const endpoint = "list_batches"
	query := protocol.ClientBatchListRequest{
		HeadId:   r.URL.Query().Get("head"),
		BatchIds: filterIds(r),
	}

	reply := protocol.ClientBatchListResponse{}
	err := h.queryValidator(
		protocol.MessageTypeClientBatchListRequest,
		protocol.MessageTypeClientBatchListResponse,
		&query, &reply, nil)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}

	batches := make([]ExpandedBatch, len(reply.Batches))
	for i, batch := range reply.Batches {
		expanded, err := ExpandBatch(batch)
		if err != nil {
			h.writeError(w, endpoint, err)
			return
		}
		batches[i] = expanded
	}
	h.wrapResponse(w, endpoint, batches, metadataFor(r, reply.HeadId), http.StatusOK)
}

// FetchBatch fetches a specific batch by id.
//
// Request:
//
//	path:
//	  - batch_id: the 128-character id of the batch to fetch
//
// Response:
//
//	data: a JSON object with the fully expanded batch
//	link: the link to this exact query
func (h *RouteHandler) FetchBatch(w http.ResponseWriter, r *http.Request) {
	const endpoint = "fetch_batch"
	query := protocol.ClientBatchGetRequest{BatchId: r.PathValue("batch_id")}
	traps := []StatusTrap{
		{Status: protocol.StatusNoResource, Err: ErrMissingBatch},
		{Status: protocol.StatusInvalidId, Err: ErrInvalidBatchId},
	}

	reply := protocol.ClientBatchGetResponse{}
	err := h.queryValidator(
		protocol.MessageTypeClientBatchGetRequest,
		protocol.MessageTypeClientBatchGetResponse,
		&query, &reply, traps)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}

	batch, err := ExpandBatch(reply.Batch)
	if err != nil {
		h.writeError(w, endpoint, err)
		return
	}
	h.wrapResponse(w, endpoint, batch, map[string]any{"link": requestURL(r)}, http.StatusOK)
}

// queryValidator sends a typed request to the validator, waits for the
// correlated reply, decodes it into reply, and checks its status against the
// endpoint traps followed by the baseline traps. Timeouts and connection
// loss both surface as ErrValidatorUnavailable; they are never retried here.
func (h *RouteHandler) queryValidator(
	reqType protocol.MessageType,
	replyType protocol.MessageType,
	request any,
	reply protocol.ClientResponse,
	traps []StatusTrap,
) error {
	content, err := cbor.Marshal(request)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", reqType, err)
	}
	start := time.Now()
	future, err := h.sender.Send(reqType, content)
	if err != nil {
		validatorUnavailableTotal.Inc()
		h.logger.Warn("validator send failed",
			"component", "restapi",
			"message_type", reqType.String(),
			"error", err,
		)
		return ErrValidatorUnavailable
	}
	msg, err := future.Result(h.timeout)
	validatorRoundtripSeconds.WithLabelValues(reqType.String()).
		Observe(time.Since(start).Seconds())
	if err != nil {
		validatorUnavailableTotal.Inc()
		h.logger.Warn("validator query failed",
			"component", "restapi",
			"message_type", reqType.String(),
			"error", err,
		)
		return ErrValidatorUnavailable
	}
	if err := cbor.Unmarshal(msg.Content, reply); err != nil {
		return fmt.Errorf("decoding %s: %w", replyType, err)
	}
	return checkTraps(replyType, reply.StatusCode(), traps)
}

// wrapResponse writes the JSON envelope with the given HTTP status
func (h *RouteHandler) wrapResponse(
	w http.ResponseWriter,
	endpoint string,
	data any,
	metadata map[string]any,
	status int,
) {
	body, err := renderEnvelope(data, metadata)
	if err != nil {
		h.writeError(w, endpoint, fmt.Errorf("rendering envelope: %w", err))
		return
	}
	observeRequest(endpoint, status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// writeError writes a structured JSON error body. Errors that are not REST
// API errors are validator contract violations or gateway bugs and map to
// the generic internal fault.
func (h *RouteHandler) writeError(w http.ResponseWriter, endpoint string, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		h.logger.Error("internal error",
			"component", "restapi",
			"endpoint", endpoint,
			"error", err,
		)
		apiErr = ErrValidatorFault
	}
	body, _ := json.MarshalIndent(map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
			"title":   apiErr.Title,
		},
	}, "", "  ")
	observeRequest(endpoint, apiErr.StatusCode)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	w.Write(body)
}

// setWait parses the wait query parameter into the request's WaitForCommit
// and Timeout fields. A bare or unparseable wait value falls back to 95% of
// the gateway timeout, leaving headroom to answer before the gateway itself
// gives up.
func (h *RouteHandler) setWait(r *http.Request, waitForCommit *bool, timeout *uint32) {
	values, present := r.URL.Query()["wait"]
	if !present {
		return
	}
	wait := values[0]
	if strings.EqualFold(wait, "false") {
		return
	}
	*waitForCommit = true
	if n, err := strconv.Atoi(wait); err == nil && n >= 0 {
		*timeout = uint32(n)
	} else {
		*timeout = uint32(h.timeout.Seconds() * waitTimeoutRatio)
	}
}

// statusIdsFromBody parses the batch ids from a POST status request
func statusIdsFromBody(r *http.Request) ([]string, error) {
	if r.Header.Get("Content-Type") != "application/json" {
		return nil, ErrBadStatusBody
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, ErrBadStatusBody
	}
	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, ErrBadStatusBody
	}
	// A JSON null unmarshals without error but is not an array
	if ids == nil {
		return nil, ErrBadStatusBody
	}
	if len(ids) == 0 {
		return nil, ErrMissingStatusId
	}
	return ids, nil
}

// filterIds parses the comma-separated id filter from the query. An absent
// filter means no filtering, not an empty result.
func filterIds(r *http.Request) []string {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func anyNotCommitted(statuses map[string]string) bool {
	for _, status := range statuses {
		if status != "COMMITTED" {
			return true
		}
	}
	return false
}
