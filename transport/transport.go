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

// Package transport holds what the RPC and REST transports share: the error
// taxonomy every failure is reported through, and the small amount of HTTP
// plumbing both clients use.
package transport

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// NormalizeBaseURL validates a node base URL and returns it with any
// trailing slash removed. Only http and https schemes are accepted.
// Failures are reported as KindConfig.
func NormalizeBaseURL(raw string) (string, error) {
	if raw == "" {
		return "", NewConfigError(errors.New("empty node address"))
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", NewConfigError(
			fmt.Errorf("invalid node address %q: %w", raw, err),
		)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", NewConfigError(
			fmt.Errorf(
				"invalid node address %q: scheme must be http or https",
				raw,
			),
		)
	}
	if u.Host == "" {
		return "", NewConfigError(
			fmt.Errorf("invalid node address %q: missing host", raw),
		)
	}
	return strings.TrimRight(raw, "/"), nil
}

// StatusSuccess reports whether an HTTP status code is in the 2xx range
func StatusSuccess(status int) bool {
	return status >= 200 && status < 300
}

// DrainAndClose discards any unread portion of a response body and closes
// it, so the underlying connection can be reused for the next call.
func DrainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
