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
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/gbartosz/sawtooth-core/protocol"
)

// Sender is the part of Connection that request issuers depend on
type Sender interface {
	Send(msgType protocol.MessageType, content []byte) (*Future, error)
}

// The Connection type multiplexes correlated request/reply exchanges with a
// validator over a single net.Conn. Sends never block on the reply; callers
// wait on the returned Future with their own timeout. Replies may arrive in
// any order and are matched to waiters by correlation id alone.
type Connection struct {
	conn         net.Conn
	logger       *slog.Logger
	errorChan    chan error
	doneChan     chan struct{}
	onceClose    sync.Once
	sendMutex    sync.Mutex
	pendingMutex sync.Mutex
	pending      map[string]*Future
	waitGroup    sync.WaitGroup
}

// NewConnection returns a new Connection object with the specified options.
// If a net.Conn is provided via WithConnection, the read loop is started
// immediately; otherwise Dial must be called first.
func NewConnection(options ...ConnectionOptionFunc) (*Connection, error) {
	c := &Connection{
		doneChan: make(chan struct{}),
		pending:  make(map[string]*Future),
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.errorChan == nil {
		c.errorChan = make(chan error, 10)
	}
	if c.conn != nil {
		c.setupConnection()
	}
	return c, nil
}

// Dial will establish a connection using the specified protocol and address,
// as passed to the [net.Dial] func, and start the read loop. An error is
// returned if a connection was already established or the dial fails.
func (c *Connection) Dial(proto string, address string) error {
	if c.conn != nil {
		return errors.New("a connection was already established")
	}
	conn, err := net.Dial(proto, address)
	if err != nil {
		return err
	}
	c.conn = conn
	c.setupConnection()
	return nil
}

// ErrorChan returns the channel for asynchronous connection errors
func (c *Connection) ErrorChan() chan error {
	return c.errorChan
}

// Send encodes and writes a request frame tagged with a fresh correlation id
// and returns the Future its reply will be delivered on. Send itself never
// waits for the reply. Correlation ids are never reused: each send registers
// a new id and the id is retired when its slot resolves.
func (c *Connection) Send(msgType protocol.MessageType, content []byte) (*Future, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	select {
	case <-c.doneChan:
		return nil, ErrConnectionClosed
	default:
	}
	correlationId := uuid.NewString()
	future := NewFuture(correlationId)
	future.expire = func() {
		c.removePending(correlationId)
	}
	c.pendingMutex.Lock()
	c.pending[correlationId] = future
	c.pendingMutex.Unlock()
	msg := &Message{
		MessageType:   msgType,
		CorrelationId: correlationId,
		Content:       content,
	}
	c.logger.Debug("sending request",
		"component", "messaging",
		"message_type", msgType.String(),
		"correlation_id", correlationId,
	)
	// Only one request may be written at a time to keep frames intact
	c.sendMutex.Lock()
	err := WriteMessage(c.conn, msg)
	c.sendMutex.Unlock()
	if err != nil {
		c.removePending(correlationId)
		c.teardown(fmt.Errorf("write error: %w", err))
		return nil, ErrConnectionClosed
	}
	return future, nil
}

// Close will shut down the connection. Every outstanding request is resolved
// with ErrConnectionClosed so no waiter blocks past its own timeout. Close is
// safe to call more than once.
func (c *Connection) Close() error {
	c.teardown(nil)
	c.waitGroup.Wait()
	return nil
}

func (c *Connection) setupConnection() {
	c.waitGroup.Add(1)
	go func() {
		defer c.waitGroup.Done()
		c.readLoop()
	}()
}

// readLoop delivers each inbound frame to the waiter registered under its
// correlation id. Frames with no matching waiter (stale ids after timeout or
// duplicate delivery) are dropped, never handed to another request.
func (c *Connection) readLoop() {
	for {
		msg, err := ReadMessage(c.conn)
		if err != nil {
			select {
			case <-c.doneChan:
				// Local close already tore the connection down
				return
			default:
			}
			c.teardown(err)
			return
		}
		c.pendingMutex.Lock()
		future, ok := c.pending[msg.CorrelationId]
		if ok {
			delete(c.pending, msg.CorrelationId)
		}
		c.pendingMutex.Unlock()
		if !ok {
			c.logger.Warn("dropping reply with unknown correlation id",
				"component", "messaging",
				"message_type", msg.MessageType.String(),
				"correlation_id", msg.CorrelationId,
			)
			continue
		}
		c.logger.Debug("received reply",
			"component", "messaging",
			"message_type", msg.MessageType.String(),
			"correlation_id", msg.CorrelationId,
		)
		future.Fulfill(msg, nil)
	}
}

// teardown closes the connection once and broadcasts the failure to every
// pending slot. A nil err means an orderly local close. Pending slots are
// resolved before the error-channel send so waiters never block on a slow
// error consumer.
func (c *Connection) teardown(err error) {
	c.onceClose.Do(func() {
		close(c.doneChan)
		if c.conn != nil {
			c.conn.Close()
		}
		c.pendingMutex.Lock()
		for correlationId, future := range c.pending {
			delete(c.pending, correlationId)
			future.Fulfill(nil, ErrConnectionClosed)
		}
		c.pendingMutex.Unlock()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				// Report a bare io.EOF for remote hangups
				c.errorChan <- io.EOF
			} else {
				c.errorChan <- fmt.Errorf("connection error: %w", err)
			}
		}
		close(c.errorChan)
	})
}

func (c *Connection) removePending(correlationId string) {
	c.pendingMutex.Lock()
	delete(c.pending, correlationId)
	c.pendingMutex.Unlock()
}
