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

package transport

import (
	"errors"
	"fmt"
)

// Kind classifies a client failure. The set is closed: the RPC and REST
// transports and the client facade report every failure as one of these
// kinds, so callers have a single matching surface regardless of which
// operation they invoked.
type Kind int

const (
	// KindTransport indicates the underlying connection failed (DNS, TCP,
	// TLS, timeout, interrupted body read) before a usable protocol-level
	// response was obtained.
	KindTransport Kind = iota + 1
	// KindHTTP indicates the HTTP layer returned a non-success status with
	// no protocol envelope to inspect.
	KindHTTP
	// KindRPC indicates the node's JSON-RPC layer returned a structured
	// application error. Code and message pass through verbatim.
	KindRPC
	// KindDecode indicates a received payload could not be parsed into the
	// expected shape.
	KindDecode
	// KindConfig indicates invalid client configuration detected at
	// construction time.
	KindConfig
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTP:
		return "http"
	case KindRPC:
		return "rpc"
	case KindDecode:
		return "decode"
	case KindConfig:
		return "config"
	}
	return "unknown"
}

// Error is the single error type shared by both transports and the client
// facade. Kind selects which of the remaining fields are meaningful.
type Error struct {
	// Kind classifies the failure
	Kind Kind
	// Op names the logical operation that failed, such as an RPC method
	// name or a REST resource path. Empty for configuration errors.
	Op string
	// Status holds the HTTP status code for KindHTTP errors
	Status int
	// Code and Message hold the node-reported values for KindRPC errors
	Code    int
	Message string
	// Err is the wrapped cause, if any
	Err error
}

func (e *Error) Error() string {
	var desc string
	switch e.Kind {
	case KindHTTP:
		desc = fmt.Sprintf("unexpected HTTP status %d", e.Status)
	case KindRPC:
		desc = fmt.Sprintf("node error code %d: %s", e.Code, e.Message)
	default:
		if e.Err != nil {
			desc = fmt.Sprintf("%s error: %s", e.Kind, e.Err)
		} else {
			desc = fmt.Sprintf("%s error", e.Kind)
		}
	}
	if e.Op == "" {
		return desc
	}
	return e.Op + ": " + desc
}

// Unwrap returns the wrapped cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether any error in err's chain is an *Error of the given
// kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// NewTransportError wraps a connection-level failure for the named
// operation.
func NewTransportError(op string, err error) *Error {
	return &Error{
		Kind: KindTransport,
		Op:   op,
		Err:  err,
	}
}

// NewHTTPError reports a non-success HTTP status that carried no protocol
// envelope.
func NewHTTPError(op string, status int) *Error {
	return &Error{
		Kind:   KindHTTP,
		Op:     op,
		Status: status,
	}
}

// NewRPCError passes through a structured application error reported by the
// node's JSON-RPC layer.
func NewRPCError(op string, code int, message string) *Error {
	return &Error{
		Kind:    KindRPC,
		Op:      op,
		Code:    code,
		Message: message,
	}
}

// NewDecodeError reports a payload that could not be parsed into the
// expected shape. err names the offending field or shape violation.
func NewDecodeError(op string, err error) *Error {
	return &Error{
		Kind: KindDecode,
		Op:   op,
		Err:  err,
	}
}

// NewConfigError reports invalid client configuration detected at
// construction time.
func NewConfigError(err error) *Error {
	return &Error{
		Kind: KindConfig,
		Err:  err,
	}
}
