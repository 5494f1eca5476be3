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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEnvelopeSortedKeys(t *testing.T) {
	body, err := renderEnvelope("some-data", map[string]any{
		"link": "http://rest.example.com/state",
		"head": "abc",
	})
	require.NoError(t, err)

	expected := `{
  "data": "some-data",
  "head": "abc",
  "link": "http://rest.example.com/state"
}`
	assert.Equal(t, expected, string(body))
}

func TestRenderEnvelopeOmitsAbsentData(t *testing.T) {
	body, err := renderEnvelope(nil, map[string]any{
		"link": "http://rest.example.com/state",
	})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "data")
	assert.Contains(t, string(body), `"link"`)
}

func TestMetadataForWithoutHead(t *testing.T) {
	r := httptest.NewRequest("GET", "http://rest.example.com/batch_status?id=aaa,bbb", nil)

	metadata := metadataFor(r, "")
	assert.Equal(t, map[string]any{
		"link": "http://rest.example.com/batch_status?id=aaa,bbb",
	}, metadata)
}

func TestMetadataForRebuildsLink(t *testing.T) {
	// The link is rebuilt to pin the head the validator used, preserving
	// every other caller-supplied parameter
	r := httptest.NewRequest("GET", "http://rest.example.com/state?address=000000&head=abc", nil)

	metadata := metadataFor(r, "abc")
	assert.Equal(t, map[string]any{
		"head": "abc",
		"link": "http://rest.example.com/state?head=abc&address=000000",
	}, metadata)
}

func TestMetadataForAddsHeadToBareQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "http://rest.example.com/blocks", nil)

	metadata := metadataFor(r, "def")
	assert.Equal(t, map[string]any{
		"head": "def",
		"link": "http://rest.example.com/blocks?head=def",
	}, metadata)
}

func TestMetadataForForwardedProto(t *testing.T) {
	r := httptest.NewRequest("GET", "http://rest.example.com/blocks", nil)
	r.Header.Set("X-Forwarded-Proto", "https")

	metadata := metadataFor(r, "")
	assert.Equal(t, "https://rest.example.com/blocks", metadata["link"])
}
