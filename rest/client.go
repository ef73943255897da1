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

// Package rest implements the binary REST transport of the node client. The
// node's REST interface serves whole blocks as raw bytes, which avoids
// JSON-encoding overhead proportional to block size.
package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/blinklabs-io/gsvnode/transport"
)

// BlockPath returns the REST resource path selecting the binary form of the
// block with the given hex-encoded hash.
func BlockPath(hexHash string) string {
	return "/rest/block/" + hexHash + ".bin"
}

// Config describes how the REST client reaches the node
type Config struct {
	// BaseURL is the node's REST endpoint, served on the same port as RPC
	BaseURL string
	// HTTPClient is the shared HTTP connection resource. A fresh client is
	// created when nil.
	HTTPClient *http.Client
	// Logger receives per-call debug logging. slog.Default() is used when
	// nil.
	Logger *slog.Logger
}

// Client fetches binary resources from the node's REST interface. The REST
// interface is unauthenticated; no Authorization header is ever sent.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient validates the configured base URL and returns a REST client
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
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// FetchBinary issues a GET for the given resource path and returns the full
// response body as an opaque byte sequence. The path must already encode
// the binary-mode selector. No parsing happens at this layer.
func (c *Client) FetchBinary(
	ctx context.Context,
	resourcePath string,
) ([]byte, error) {
	c.logger.Debug(
		"fetching resource",
		"component", "rest",
		"path", resourcePath,
	)
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+resourcePath,
		nil,
	)
	if err != nil {
		return nil, transport.NewTransportError(resourcePath, err)
	}
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transport.NewTransportError(resourcePath, err)
	}
	defer transport.DrainAndClose(httpResp.Body)
	if !transport.StatusSuccess(httpResp.StatusCode) {
		return nil, transport.NewHTTPError(resourcePath, httpResp.StatusCode)
	}
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, transport.NewTransportError(resourcePath, err)
	}
	c.logger.Debug(
		"fetched resource",
		"component", "rest",
		"path", resourcePath,
		"bytes", len(body),
	)
	return body, nil
}
