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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sawtooth_rest_api",
			Name:      "requests_total",
			Help:      "Requests served, by endpoint and HTTP status code.",
		},
		[]string{"endpoint", "code"},
	)
	validatorRoundtripSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sawtooth_rest_api",
			Name:      "validator_roundtrip_seconds",
			Help:      "Round-trip time of validator queries, by message type.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"message_type"},
	)
	validatorUnavailableTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "sawtooth_rest_api",
			Name:      "validator_unavailable_total",
			Help:      "Validator queries that timed out or hit a closed connection.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		validatorRoundtripSeconds,
		validatorUnavailableTotal,
	)
}

func observeRequest(endpoint string, code int) {
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}
