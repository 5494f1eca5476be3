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

package messaging

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrTimeout is returned by Future.Result when no reply arrives within
	// the caller's timeout
	ErrTimeout = errors.New("timed out waiting for validator reply")

	// ErrConnectionClosed is returned for requests that were outstanding when
	// the connection was torn down, and for sends after close
	ErrConnectionClosed = errors.New("validator connection closed")

	// ErrNotConnected is returned by Send before a connection is established
	ErrNotConnected = errors.New("not connected to validator")
)

type futureResult struct {
	msg *Message
	err error
}

// Future is a single-assignment slot for one correlated reply. Exactly one
// writer fulfills it (the matching reply or the teardown broadcast) and
// exactly one reader consumes it via Result.
type Future struct {
	correlationId string
	resultChan    chan futureResult
	onceFulfill   sync.Once
	expire        func()
}

// NewFuture returns an unfulfilled future for the given correlation id
func NewFuture(correlationId string) *Future {
	return &Future{
		correlationId: correlationId,
		resultChan:    make(chan futureResult, 1),
		expire:        func() {},
	}
}

// CorrelationId returns the correlation id this future is waiting on
func (f *Future) CorrelationId() string {
	return f.correlationId
}

// Fulfill resolves the future with a reply or an error. Only the first call
// has any effect.
func (f *Future) Fulfill(msg *Message, err error) {
	f.onceFulfill.Do(func() {
		f.resultChan <- futureResult{msg: msg, err: err}
	})
}

// Result blocks until the future is fulfilled or the timeout elapses. On
// timeout it returns ErrTimeout and releases the pending slot so an abandoned
// wait doesn't hold resources past its deadline.
func (f *Future) Result(timeout time.Duration) (*Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res := <-f.resultChan:
		return res.msg, res.err
	case <-timer.C:
		f.expire()
		return nil, ErrTimeout
	}
}
