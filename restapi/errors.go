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

import "fmt"

// Error is a client-visible REST API error. StatusCode is the HTTP status it
// maps to; Code is a stable machine-readable identifier that survives
// message wording changes.
type Error struct {
	StatusCode int
	Code       int
	Title      string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

var (
	// Backend-reported and transport errors

	ErrValidatorFault = &Error{
		StatusCode: 500,
		Code:       10,
		Title:      "Unknown Validator Error",
		Message: "An unknown error occurred with the validator while " +
			"processing the request.",
	}
	ErrValidatorUnavailable = &Error{
		StatusCode: 503,
		Code:       15,
		Title:      "Validator Not Available",
		Message: "The validator could not be reached for this request. It " +
			"may be unavailable or overloaded; try again later.",
	}
	ErrValidatorNotReady = &Error{
		StatusCode: 503,
		Code:       17,
		Title:      "Validator Not Ready",
		Message: "The validator has no genesis block or is still catching " +
			"up with the rest of the network, and cannot answer yet.",
	}
	ErrStatusesNotReturned = &Error{
		StatusCode: 500,
		Code:       18,
		Title:      "Statuses Not Returned",
		Message: "The validator did not return any batch statuses for the " +
			"requested ids.",
	}

	// Client input errors, detected before any validator call

	ErrWrongBodyType = &Error{
		StatusCode: 400,
		Code:       20,
		Title:      "Wrong Content Type",
		Message: "Batch submissions must have a Content-Type of " +
			"\"application/octet-stream\".",
	}
	ErrEmptyPayload = &Error{
		StatusCode: 400,
		Code:       21,
		Title:      "Empty Submission",
		Message:    "The request body was empty; no batches were submitted.",
	}
	ErrBadPayload = &Error{
		StatusCode: 400,
		Code:       22,
		Title:      "Undecodable Submission",
		Message: "The request body could not be decoded as a batch list. " +
			"It was not submitted to the validator.",
	}
	ErrBadStatusBody = &Error{
		StatusCode: 400,
		Code:       25,
		Title:      "Bad Status Request",
		Message: "Batch status requests sent as POST must have a " +
			"Content-Type of \"application/json\" and a body that is a " +
			"JSON array of batch id strings.",
	}
	ErrMissingStatusId = &Error{
		StatusCode: 400,
		Code:       26,
		Title:      "Missing Batch Ids",
		Message: "Batch status requests must include at least one batch " +
			"id, as an \"id\" query parameter or in the POST body.",
	}

	// Resource-specific validator statuses

	ErrInvalidBatch = &Error{
		StatusCode: 400,
		Code:       30,
		Title:      "Invalid Batch Submitted",
		Message: "The submitted batch list was rejected by the validator. " +
			"It was poorly formed or had an invalid signature.",
	}
	ErrMissingHead = &Error{
		StatusCode: 404,
		Code:       50,
		Title:      "Head Not Found",
		Message:    "There is no block with the id specified by \"head\".",
	}
	ErrBadAddress = &Error{
		StatusCode: 400,
		Code:       60,
		Title:      "Invalid State Address",
		Message: "The state address submitted was not valid. State " +
			"addresses are 70 hex characters.",
	}
	ErrInvalidBlockId = &Error{
		StatusCode: 400,
		Code:       62,
		Title:      "Invalid Block Id",
		Message: "The block id submitted was invalid. Block ids are " +
			"128 hex characters.",
	}
	ErrInvalidBatchId = &Error{
		StatusCode: 400,
		Code:       64,
		Title:      "Invalid Batch Id",
		Message: "The batch id submitted was invalid. Batch ids are " +
			"128 hex characters.",
	}
	ErrMissingLeaf = &Error{
		StatusCode: 404,
		Code:       70,
		Title:      "State Not Found",
		Message:    "There is no state data at the address specified.",
	}
	ErrMissingBlock = &Error{
		StatusCode: 404,
		Code:       71,
		Title:      "Block Not Found",
		Message:    "There is no block with the id specified.",
	}
	ErrMissingBatch = &Error{
		StatusCode: 404,
		Code:       72,
		Title:      "Batch Not Found",
		Message:    "There is no batch with the id specified.",
	}
)
