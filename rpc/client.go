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

// Package rpc implements the JSON-RPC transport of the node client. It
// builds request envelopes, performs authenticated HTTP POSTs, and unwraps
// response envelopes into a raw JSON result or a taxonomy error.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/blinklabs-io/gsvnode/transport"
)

// ErrIDMismatch indicates the response identifier did not match the request
// identifier. Calls are single-request (no pipelining), so a mismatched
// reply cannot be correlated and is reported as a decode failure.
var ErrIDMismatch = errors.New("response id does not match request id")

// Config describes how the RPC client reaches the node
type Config struct {
	// BaseURL is the node's RPC endpoint, e.g. http://localhost:8332
	BaseURL string
	// Username and Password enable HTTP Basic authentication. The facade
	// guarantees both are set or neither is; when unset, no Authorization
	// header is sent at all.
	Username string
	Password string
	// HTTPClient is the shared HTTP connection resource. A fresh client is
	// created when nil.
	HTTPClient *http.Client
	// Logger receives per-call debug logging. slog.Default() is used when
	// nil.
	Logger *slog.Logger
}

// Client issues JSON-RPC calls against a node over HTTP POST. It holds no
// per-call state and is safe for concurrent use.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient validates the configured base URL and returns an RPC client
// ready for use.
func NewClient(cfg Config) (*Client, error) {
	baseURL, err := transport.NormalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Call invokes the named JSON-RPC method with the given ordered parameters
// and returns the raw result value. Application errors reported by the node
// surface as KindRPC with the node's code and message verbatim, regardless
// of the HTTP status they arrived with.
func (c *Client) Call(
	ctx context.Context,
	method string,
	params []any,
) (json.RawMessage, error) {
	reqMsg := NewRequest(method, params)
	reqBody, err := json.Marshal(reqMsg)
	if err != nil {
		return nil, transport.NewDecodeError(
			method,
			fmt.Errorf("marshal request: %w", err),
		)
	}
	c.logger.Debug(
		"sending request",
		"component", "rpc",
		"method", method,
		"id", reqMsg.ID,
	)
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, transport.NewTransportError(method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.username != "" || c.password != "" {
		httpReq.SetBasicAuth(c.username, c.password)
	}
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transport.NewTransportError(method, err)
	}
	defer transport.DrainAndClose(httpResp.Body)
	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, transport.NewTransportError(method, err)
	}
	return c.unwrap(method, reqMsg.ID, httpResp.StatusCode, respBody)
}

// unwrap applies the envelope rules to a raw response. The node reports
// application errors with a non-success HTTP status, so a parseable
// envelope carrying an error wins over the status code.
func (c *Client) unwrap(
	method string,
	requestID string,
	status int,
	respBody []byte,
) (json.RawMessage, error) {
	var respMsg Response
	parseErr := json.Unmarshal(respBody, &respMsg)
	if parseErr == nil && respMsg.Error != nil {
		if respMsg.HasResult() {
			return nil, transport.NewDecodeError(
				method,
				errors.New("envelope carries both result and error"),
			)
		}
		return nil, transport.NewRPCError(
			method,
			respMsg.Error.Code,
			respMsg.Error.Message,
		)
	}
	if !transport.StatusSuccess(status) {
		return nil, transport.NewHTTPError(method, status)
	}
	if parseErr != nil {
		return nil, transport.NewDecodeError(
			method,
			fmt.Errorf("unmarshal response envelope: %w", parseErr),
		)
	}
	if !respMsg.HasResult() {
		return nil, transport.NewDecodeError(
			method,
			errors.New("envelope carries neither result nor error"),
		)
	}
	if respMsg.ID != requestID {
		return nil, transport.NewDecodeError(method, ErrIDMismatch)
	}
	c.logger.Debug(
		"received result",
		"component", "rpc",
		"method", method,
		"bytes", len(respMsg.Result),
	)
	return respMsg.Result, nil
}
