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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/gbartosz/sawtooth-core/messaging"
	"github.com/gbartosz/sawtooth-core/restapi"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sawtooth-rest-api",
		Usage: "serves a JSON/HTTP API backed by a validator node",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bind",
				Aliases: []string{"B"},
				Value:   "localhost:8080",
				Usage:   "host:port to serve the REST API on",
				EnvVars: []string{"SAWTOOTH_REST_API_BIND"},
			},
			&cli.StringFlag{
				Name:    "connect",
				Aliases: []string{"C"},
				Value:   "tcp://localhost:4004",
				Usage:   "endpoint of the validator to connect to",
				EnvVars: []string{"SAWTOOTH_REST_API_CONNECT"},
			},
			&cli.IntFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Value:   300,
				Usage:   "seconds to wait for a validator reply before reporting it unavailable",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	network, address, err := parseEndpoint(c.String("connect"))
	if err != nil {
		return err
	}
	conn, err := messaging.NewConnection(messaging.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := conn.Dial(network, address); err != nil {
		return fmt.Errorf("connecting to validator at %s: %w", address, err)
	}
	defer conn.Close()
	logger.Info("connected to validator", "endpoint", c.String("connect"))

	timeout := time.Duration(c.Int("timeout")) * time.Second
	handler := restapi.NewRouteHandler(conn, timeout, logger)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              c.String("bind"),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErrChan := make(chan error, 1)
	go func() {
		serveErrChan <- srv.ListenAndServe()
	}()
	logger.Info("serving REST API", "bind", c.String("bind"))

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A validator connection failure must surface as a non-zero exit so a
	// supervisor restarts the process
	var connErr error
	select {
	case <-sigCtx.Done():
		logger.Info("shutting down")
	case err, ok := <-conn.ErrorChan():
		if ok && err != nil {
			logger.Error("validator connection failed", "error", err)
			connErr = fmt.Errorf("validator connection failed: %w", err)
		}
	case err := <-serveErrChan:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return connErr
}

// parseEndpoint splits a validator endpoint like tcp://host:port into the
// network and address forms net.Dial expects
func parseEndpoint(endpoint string) (string, string, error) {
	network, address, found := strings.Cut(endpoint, "://")
	if !found {
		return "tcp", endpoint, nil
	}
	switch network {
	case "tcp", "unix":
		return network, address, nil
	}
	return "", "", fmt.Errorf("unsupported validator endpoint scheme: %q", network)
}
