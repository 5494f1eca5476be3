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

package main

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		network  string
		address  string
		valid    bool
	}{
		{"tcp://localhost:4004", "tcp", "localhost:4004", true},
		{"unix:///tmp/validator.sock", "unix", "/tmp/validator.sock", true},
		{"localhost:4004", "tcp", "localhost:4004", true},
		{"zmq://localhost:4004", "", "", false},
	}
	for _, tt := range tests {
		network, address, err := parseEndpoint(tt.endpoint)
		if !tt.valid {
			assert.Error(t, err, tt.endpoint)
			continue
		}
		require.NoError(t, err, tt.endpoint)
		assert.Equal(t, tt.network, network)
		assert.Equal(t, tt.address, address)
	}
}

// The process must exit non-zero when the validator connection fails so a
// supervisor configured to restart on failure actually restarts it
func TestRunReturnsErrorOnValidatorConnectionFailure(t *testing.T) {
	listener, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	defer listener.Close()

	// Validator that accepts the connection and immediately hangs up
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}()

	runErr := make(chan error, 1)
	go func() {
		runErr <- newApp().Run([]string{
			"sawtooth-rest-api",
			"--connect", "tcp://" + listener.Addr().String(),
			"--bind", "localhost:0",
		})
	}()

	select {
	case err := <-runErr:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validator connection failed")
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the validator hung up")
	}
}
