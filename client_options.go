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

package svnode

import (
	"log/slog"
	"net/http"
	"time"
)

// ClientOptionFunc is a type that represents functions that modify the Client config
type ClientOptionFunc func(*Client)

// WithAddress specifies the node base URL, e.g. http://localhost:8332
func WithAddress(address string) ClientOptionFunc {
	return func(c *Client) {
		c.address = address
	}
}

// WithNetwork specifies the network the node participates in. When no
// address is configured, the network's default local endpoint is used.
func WithNetwork(network Network) ClientOptionFunc {
	return func(c *Client) {
		c.network = network
	}
}

// WithUsername specifies the RPC username. Must be paired with WithPassword.
func WithUsername(username string) ClientOptionFunc {
	return func(c *Client) {
		c.username = username
	}
}

// WithPassword specifies the RPC password. Must be paired with WithUsername.
func WithPassword(password string) ClientOptionFunc {
	return func(c *Client) {
		c.password = password
	}
}

// WithHTTPClient specifies a custom HTTP client to share between both
// transports. The caller remains responsible for its lifecycle; Close will
// not touch it.
func WithHTTPClient(httpClient *http.Client) ClientOptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout specifies a client-level timeout on the HTTP client the
// facade creates. The zero value means no timeout, leaving call bounds to
// the caller's context. It has no effect when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger specifies the logger for both transports. slog.Default() is
// used when unset.
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}
