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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// renderEnvelope builds the canonical response body: the metadata keys
// (always "link", plus "head" when the validator reported one) merged with
// "data" when present. Envelopes are maps so encoding/json emits keys in
// sorted order, keeping output diffable and cache-friendly.
func renderEnvelope(data any, metadata map[string]any) ([]byte, error) {
	envelope := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		envelope[k] = v
	}
	if data != nil {
		envelope["data"] = data
	}
	return json.MarshalIndent(envelope, "", "  ")
}

// metadataFor derives the head and link metadata from the original request
// and the head id the validator reported. With no head id the link is the
// request URL verbatim. Otherwise the link is rebuilt to pin the exact chain
// head used, preserving every other caller-supplied query parameter.
func metadataFor(r *http.Request, headId string) map[string]any {
	if headId == "" {
		return map[string]any{"link": requestURL(r)}
	}
	link := fmt.Sprintf("%s://%s%s?head=%s", scheme(r), r.Host, r.URL.Path, headId)
	if r.URL.RawQuery != "" {
		headless := make([]string, 0, 4)
		for _, pair := range strings.Split(r.URL.RawQuery, "&") {
			if pair == "" || strings.HasPrefix(pair, "head=") || pair == "head" {
				continue
			}
			headless = append(headless, pair)
		}
		if len(headless) > 0 {
			link += "&" + strings.Join(headless, "&")
		}
	}
	return map[string]any{"head": headId, "link": link}
}

// requestURL reconstructs the full URL the client requested
func requestURL(r *http.Request) string {
	return fmt.Sprintf("%s://%s%s", scheme(r), r.Host, r.URL.RequestURI())
}

// scheme determines the outward-facing scheme for link building. A
// terminating proxy is expected to set X-Forwarded-Proto.
func scheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
