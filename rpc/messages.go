// Copyright 2026 Blink Labs Software
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

package rpc

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// Request is the JSON-RPC request envelope sent to the node
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// NewRequest builds a request envelope for the given method with a freshly
// generated identifier. The identifier is unique per call and is used only
// to correlate the response to this request. A nil params slice marshals as
// an empty array.
func NewRequest(method string, params []any) Request {
	if params == nil {
		params = []any{}
	}
	return Request{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	}
}

// Response is the JSON-RPC response envelope returned by the node. Result
// and Error are mutually exclusive: an envelope carrying neither or both is
// a protocol violation.
type Response struct {
	Result json.RawMessage `json:"result"`
	Error  *ResponseError  `json:"error"`
	ID     string          `json:"id"`
}

// ResponseError is a structured application error reported by the node's
// JSON-RPC layer. Code and Message are passed through to callers verbatim.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var jsonNull = []byte("null")

// HasResult reports whether the envelope carries a result. A JSON null
// result counts as absent, matching the node's 1.0-style error replies.
func (r *Response) HasResult() bool {
	return len(r.Result) > 0 && !bytes.Equal(r.Result, jsonNull)
}
